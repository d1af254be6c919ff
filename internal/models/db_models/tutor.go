package db_models

import (
	"time"

	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubStatusTrial  SubscriptionStatus = "trial"
	SubStatusActive SubscriptionStatus = "active"
	SubStatusGrace  SubscriptionStatus = "grace"
	SubStatusLocked SubscriptionStatus = "locked"
)

type PlanType string

const (
	PlanTrial     PlanType = "trial"
	PlanSolo      PlanType = "solo"
	PlanPro       PlanType = "pro"
	PlanInstitute PlanType = "institute"
)

// DefaultStudentLimit returns the student capacity for a plan tier.
func DefaultStudentLimit(plan PlanType) int {
	switch plan {
	case PlanSolo:
		return 50
	case PlanPro:
		return 200
	case PlanInstitute:
		return 1000
	default:
		return 25
	}
}

const trialPeriod = 14 * 24 * time.Hour

// Tutor owns students and their payment ledgers. AuthSubject is the opaque
// identity-provider user id; one tutor profile exists per subject, at most
// once (second onboarding attempt is rejected, never upserted).
//
// SubscriptionStatus is the persisted state only. An elapsed TrialExpiry or
// PlanExpiry makes the tutor effectively locked before the stored field
// catches up, so entitlement checks must go through the computed state, not
// this column.
type Tutor struct {
	BaseModel
	AuthSubject string   `gorm:"uniqueIndex;not null"`
	Name        string   `gorm:"not null"`
	Phone       string
	PlanType    PlanType `gorm:"default:'trial'"`

	StudentLimit       int                `gorm:"default:25"`
	SubscriptionStatus SubscriptionStatus `gorm:"default:'trial';index"`
	TrialExpiry        int64
	PlanExpiry         *int64

	Students []Student `gorm:"foreignKey:TutorID"`
}

func (t *Tutor) BeforeCreate(tx *gorm.DB) error {
	if err := t.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if t.TrialExpiry == 0 {
		t.TrialExpiry = time.Now().Add(trialPeriod).Unix()
	}
	return nil
}
