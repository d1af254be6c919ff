package db_models

import (
	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "Pending"
	PaymentPaid    PaymentStatus = "Paid"
)

type PaymentMethod string

const (
	MethodCash PaymentMethod = "Cash"
	MethodUPI  PaymentMethod = "UPI"
)

func ValidPaymentStatus(s PaymentStatus) bool {
	return s == PaymentPending || s == PaymentPaid
}

func ValidPaymentMethod(m PaymentMethod) bool {
	return m == MethodCash || m == MethodUPI
}

// PaymentRecord is the ledger entry for one (student, month) pair; the
// composite unique index is what makes that pairing the ledger's primary
// key even under concurrent creation. Amount is snapshotted from the fee
// resolution at creation time and is deliberately independent of later
// fee-history edits.
type PaymentRecord struct {
	BaseModel
	StudentID uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_payment_student_month;not null"`
	Month     string    `gorm:"size:7;uniqueIndex:idx_payment_student_month;not null"`

	Amount int64          `gorm:"not null"`
	Status PaymentStatus  `gorm:"default:'Pending'"`
	Method *PaymentMethod

	// MarkedAt is stamped the first time the record turns Paid and is never
	// cleared or overwritten, so "when did this month first get marked"
	// survives later Pending/Paid toggles.
	MarkedAt *int64

	Student Student `gorm:"foreignKey:StudentID"`
}

// PaymentPatch carries the fields of a partial ledger update; nil fields
// are left untouched.
type PaymentPatch struct {
	Amount *int64
	Status *PaymentStatus
	Method *PaymentMethod
}

// Apply folds a patch into the record. The MarkedAt stamp is set only on
// the transition into Paid, and only if it has never been set.
func (p *PaymentRecord) Apply(patch PaymentPatch, now int64) {
	if patch.Amount != nil {
		p.Amount = *patch.Amount
	}
	if patch.Method != nil {
		p.Method = patch.Method
	}
	if patch.Status != nil {
		if *patch.Status == PaymentPaid && p.MarkedAt == nil {
			p.MarkedAt = &now
		}
		p.Status = *patch.Status
	}
}
