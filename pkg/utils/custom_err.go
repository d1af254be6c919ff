package utils

import "errors"

var (
	ErrTutorNotFound      = errors.New("tutor not found")
	ErrProfileExists      = errors.New("tutor profile already exists")
	ErrOnboardingRequired = errors.New("tutor profile required")
	ErrStudentNotFound    = errors.New("student not found")
	ErrPaymentNotFound    = errors.New("payment record not found")
	ErrInvalidMonth       = errors.New("invalid month format")
	ErrInvalidAmount      = errors.New("amount must not be negative")
	ErrInvalidName        = errors.New("name is required")
	ErrInvalidPlan        = errors.New("unknown plan type")
	ErrMethodRequired     = errors.New("payment method is required when marking as paid")
	ErrInvalidMethod      = errors.New("invalid payment method")
	ErrInvalidStatus      = errors.New("invalid payment status")
	ErrTrialExpired       = errors.New("trial period expired")
	ErrPlanExpired        = errors.New("subscription plan expired")
	ErrSubscriptionLocked = errors.New("subscription locked")
	ErrStudentLimitHit    = errors.New("student limit reached")
	ErrPaymentConflict    = errors.New("conflicting payment write for the same month")
	ErrDatabaseError      = errors.New("database error")
)
