package request_models

// UpsertPaymentRequest creates or partially updates the ledger record for
// one month. All fields but Month are optional: on create, a missing amount
// defaults to the fee resolved for that month and a missing status to
// Pending; on update, absent fields are left untouched.
type UpsertPaymentRequest struct {
	Month  string  `json:"month" binding:"required"`
	Amount *int64  `json:"amount"`
	Status *string `json:"status"`
	Method *string `json:"method"`
}

type UpdatePaymentRequest struct {
	Amount *int64  `json:"amount"`
	Status *string `json:"status"`
	Method *string `json:"method"`
}

type UpdatePaymentMethodRequest struct {
	Method string `json:"method" binding:"required"`
}
