package response_models

import "tuitionledger/internal/models/db_models"

type MeResponse struct {
	NeedsOnboarding bool             `json:"needs_onboarding"`
	Tutor           *db_models.Tutor `json:"tutor,omitempty"`
}

type UpsertPaymentResponse struct {
	Payment db_models.PaymentRecord `json:"payment"`
	Created bool                    `json:"created"`
}
