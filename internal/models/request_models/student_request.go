package request_models

type CreateStudentRequest struct {
	Name       string `json:"name" binding:"required"`
	Phone      string `json:"phone"`
	MonthlyFee *int64 `json:"monthly_fee" binding:"required"`
	// Optional first month of tuition, "YYYY-MM".
	StartDate *string `json:"start_date"`
}

type UpdateStudentRequest struct {
	Name      *string `json:"name"`
	Phone     *string `json:"phone"`
	StartDate *string `json:"start_date"`
}

type UpdateFeeRequest struct {
	Amount        *int64 `json:"amount" binding:"required"`
	EffectiveFrom string `json:"effective_from" binding:"required"`
}
