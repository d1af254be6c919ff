package request_models

type OnboardingRequest struct {
	Name  string `json:"name" binding:"required"`
	Phone string `json:"phone"`
}

// BillingRenewalRequest is posted by the external billing system when a
// subscription is purchased or renewed.
type BillingRenewalRequest struct {
	AuthSubject string `json:"auth_subject" binding:"required"`
	PlanType    string `json:"plan_type" binding:"required"`
	// Unix seconds; when the renewed plan lapses.
	PlanExpiry int64 `json:"plan_expiry" binding:"required"`
}
