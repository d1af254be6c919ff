package services

import (
	"context"
	"log"

	"tuitionledger/internal/models/response_models"
	"tuitionledger/internal/repositories"
	"tuitionledger/pkg/utils"
)

const publicDisclaimer = "Payment status is updated by the tutor. This platform does not process or verify payments."

type PublicServiceInterface interface {
	GetPublicView(ctx context.Context, token string) (*response_models.PublicView, error)
}

type PublicService struct {
	studentRepo repositories.StudentRepository
	tutorRepo   repositories.TutorRepository
	paymentRepo repositories.PaymentRepository
	cache       *PublicViewCache
}

func NewPublicService(
	studentRepo repositories.StudentRepository,
	tutorRepo repositories.TutorRepository,
	paymentRepo repositories.PaymentRepository,
	cache *PublicViewCache,
) PublicServiceInterface {
	return &PublicService{
		studentRepo: studentRepo,
		tutorRepo:   tutorRepo,
		paymentRepo: paymentRepo,
		cache:       cache,
	}
}

// GetPublicView assembles the token-addressed projection. The token is the
// only credential; no entitlement check applies. Every resolution failure
// collapses into the same NotFound so the endpoint never reveals whether a
// token almost matched something.
func (p *PublicService) GetPublicView(ctx context.Context, token string) (*response_models.PublicView, error) {
	if cached := p.cache.Get(ctx, token); cached != nil {
		return cached, nil
	}

	student, err := p.studentRepo.FindByPublicToken(ctx, token)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if student == nil {
		return nil, utils.ErrStudentNotFound
	}

	tutor, err := p.tutorRepo.FindByID(ctx, student.TutorID.String())
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tutor == nil {
		// Students never outlive their tutor.
		log.Printf("public token %s resolved to student %s with missing tutor", token, student.ID)
		return nil, utils.ErrStudentNotFound
	}

	records, err := p.paymentRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	payments := make([]response_models.PublicPaymentEntry, 0, len(records))
	for _, r := range records {
		var method *string
		if r.Method != nil {
			m := string(*r.Method)
			method = &m
		}
		payments = append(payments, response_models.PublicPaymentEntry{
			Month:    r.Month,
			Amount:   r.Amount,
			Status:   string(r.Status),
			Method:   method,
			MarkedAt: r.MarkedAt,
		})
	}

	view := &response_models.PublicView{
		TutorName:   tutor.Name,
		StudentName: student.Name,
		MonthlyFee:  student.MonthlyFee,
		Payments:    payments,
		Disclaimer:  publicDisclaimer,
	}
	p.cache.Set(ctx, token, view)
	return view, nil
}
