package db_models

import (
	"sort"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FeeHistoryEntry records one fee change: Amount applies from EffectiveFrom
// ("YYYY-MM") onwards, until the next entry's month.
type FeeHistoryEntry struct {
	Amount        int64  `json:"amount"`
	EffectiveFrom string `json:"effectiveFrom"`
}

// Student belongs to exactly one tutor. The fee history is embedded as a
// JSONB column, kept sorted ascending by EffectiveFrom with at most one
// entry per month. MonthlyFee always mirrors the chronologically last
// entry; when the history is empty (students predating history tracking)
// it is the sole source of truth.
type Student struct {
	BaseModel
	TutorID uuid.UUID `gorm:"type:uuid;index;not null"`
	Name    string    `gorm:"not null"`
	Phone   string

	MonthlyFee int64                                `gorm:"not null"`
	FeeHistory datatypes.JSONSlice[FeeHistoryEntry] `gorm:"type:jsonb"`
	StartDate  *string                              `gorm:"size:7"`

	// PublicToken grants unauthenticated read access to this student's
	// ledger. Generated once at creation, never reissued.
	PublicToken string `gorm:"uniqueIndex;not null"`

	Tutor    Tutor           `gorm:"foreignKey:TutorID"`
	Payments []PaymentRecord `gorm:"foreignKey:StudentID"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseModel.BeforeCreate(tx); err != nil {
		return err
	}
	if s.PublicToken == "" {
		s.PublicToken = uuid.NewString()
	}
	return nil
}

func sortedHistory(history []FeeHistoryEntry) []FeeHistoryEntry {
	out := make([]FeeHistoryEntry, len(history))
	copy(out, history)
	sort.Slice(out, func(i, j int) bool {
		return out[i].EffectiveFrom < out[j].EffectiveFrom
	})
	return out
}

// FeeForMonth resolves the fee in effect for a given "YYYY-MM" month: the
// amount of the last history entry effective at or before that month. A
// month before all recorded history uses the earliest entry as a floor
// rather than zero; an empty history falls back to MonthlyFee. Callers
// validate the month format at the boundary.
func (s *Student) FeeForMonth(month string) int64 {
	if len(s.FeeHistory) == 0 {
		return s.MonthlyFee
	}

	history := sortedHistory(s.FeeHistory)
	fee := history[0].Amount
	for _, entry := range history {
		if entry.EffectiveFrom > month {
			break
		}
		fee = entry.Amount
	}
	return fee
}

// ApplyFeeChange amends the entry for effectiveFrom in place if one exists,
// otherwise appends a new one, then re-sorts and refreshes MonthlyFee from
// the chronologically last entry. A back-dated change therefore alters what
// FeeForMonth returns for intervening months without touching the current
// displayed fee, and never touches amounts already snapshotted on payment
// records.
func (s *Student) ApplyFeeChange(amount int64, effectiveFrom string) {
	history := []FeeHistoryEntry(s.FeeHistory)

	amended := false
	for i := range history {
		if history[i].EffectiveFrom == effectiveFrom {
			history[i].Amount = amount
			amended = true
			break
		}
	}
	if !amended {
		history = append(history, FeeHistoryEntry{Amount: amount, EffectiveFrom: effectiveFrom})
	}

	history = sortedHistory(history)
	s.FeeHistory = datatypes.JSONSlice[FeeHistoryEntry](history)
	s.MonthlyFee = history[len(history)-1].Amount
}
