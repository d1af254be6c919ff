package response_models

// PublicPaymentEntry is one ledger row as shown on the shared payment page.
type PublicPaymentEntry struct {
	Month    string  `json:"month"`
	Amount   int64   `json:"amount"`
	Status   string  `json:"status"`
	Method   *string `json:"method,omitempty"`
	MarkedAt *int64  `json:"marked_at,omitempty"`
}

// PublicView is the token-addressed, read-only projection of one student's
// ledger. It deliberately carries display names only, never ids.
type PublicView struct {
	TutorName   string               `json:"tutor_name"`
	StudentName string               `json:"student_name"`
	MonthlyFee  int64                `json:"monthly_fee"`
	Payments    []PublicPaymentEntry `json:"payments"`
	Disclaimer  string               `json:"disclaimer"`
}
