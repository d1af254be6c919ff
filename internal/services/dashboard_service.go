package services

import (
	"context"

	"github.com/google/uuid"

	"tuitionledger/internal/models/db_models"
	"tuitionledger/internal/models/response_models"
	"tuitionledger/internal/repositories"
	"tuitionledger/pkg/utils"
)

type DashboardServiceInterface interface {
	BuildMonthSummary(ctx context.Context, tutor *db_models.Tutor, month string) (*response_models.MonthSummary, error)
}

type DashboardService struct {
	studentRepo repositories.StudentRepository
	paymentRepo repositories.PaymentRepository
}

func NewDashboardService(studentRepo repositories.StudentRepository, paymentRepo repositories.PaymentRepository) DashboardServiceInterface {
	return &DashboardService{
		studentRepo: studentRepo,
		paymentRepo: paymentRepo,
	}
}

// BuildMonthSummary aggregates one tutor's ledger for a single month.
// Expected totals resolve each student's fee for that month through the fee
// history; collected totals sum the snapshotted amounts of Paid records.
func (d *DashboardService) BuildMonthSummary(ctx context.Context, tutor *db_models.Tutor, month string) (*response_models.MonthSummary, error) {
	if month == "" {
		month = utils.CurrentMonth()
	}
	if err := utils.ValidateMonth(month); err != nil {
		return nil, err
	}

	students, err := d.studentRepo.ListByOwner(ctx, tutor.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	summary := &response_models.MonthSummary{
		Month:         month,
		TotalStudents: int64(len(students)),
	}

	ids := make([]uuid.UUID, 0, len(students))
	for _, st := range students {
		summary.ExpectedTotal += st.FeeForMonth(month)
		ids = append(ids, st.ID)
	}

	records, err := d.paymentRepo.ListByStudentAndMonth(ctx, ids, month)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	for _, r := range records {
		switch r.Status {
		case db_models.PaymentPaid:
			summary.PaidCount++
			summary.CollectedTotal += r.Amount
		case db_models.PaymentPending:
			summary.PendingCount++
		}
	}
	summary.UnrecordedCount = summary.TotalStudents - summary.PaidCount - summary.PendingCount

	return summary, nil
}
