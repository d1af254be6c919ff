package response_models

// MonthSummary aggregates one tutor's ledger for a single calendar month.
// ExpectedTotal resolves each student's fee for the month; CollectedTotal
// sums the snapshotted amounts of records already marked Paid.
type MonthSummary struct {
	Month           string `json:"month"`
	TotalStudents   int64  `json:"total_students"`
	PaidCount       int64  `json:"paid_count"`
	PendingCount    int64  `json:"pending_count"`
	UnrecordedCount int64  `json:"unrecorded_count"`
	ExpectedTotal   int64  `json:"expected_total"`
	CollectedTotal  int64  `json:"collected_total"`
}
