package services

import (
	"context"
	"log"
	"strings"
	"time"

	"tuitionledger/internal/models/db_models"
	"tuitionledger/internal/models/request_models"
	"tuitionledger/internal/models/response_models"
	"tuitionledger/internal/repositories"
	"tuitionledger/pkg/utils"
)

type TutorServiceInterface interface {
	Onboard(ctx context.Context, authSubject string, request request_models.OnboardingRequest) (*db_models.Tutor, error)
	Me(ctx context.Context, authSubject string) (*response_models.MeResponse, error)
	RequireTutor(ctx context.Context, authSubject string) (*db_models.Tutor, error)
	CheckWriteAccess(tutor *db_models.Tutor) error
	CheckCapacity(ctx context.Context, tutor *db_models.Tutor) error
	RenewSubscription(ctx context.Context, request request_models.BillingRenewalRequest) (*db_models.Tutor, error)
}

type TutorService struct {
	tutorRepo   repositories.TutorRepository
	studentRepo repositories.StudentRepository
}

func NewTutorService(tutorRepo repositories.TutorRepository, studentRepo repositories.StudentRepository) TutorServiceInterface {
	return &TutorService{
		tutorRepo:   tutorRepo,
		studentRepo: studentRepo,
	}
}

// computeEntitlement derives the effective subscription state at a point in
// time. The persisted status column lags behind expiry instants (nothing
// sweeps it in the background), so an elapsed trial or plan must deny
// writes even while the stored field still says "trial" or "active". Each
// denial keeps its own reason; the serving layer surfaces them as distinct
// codes.
func computeEntitlement(tutor *db_models.Tutor, now int64) error {
	switch tutor.SubscriptionStatus {
	case db_models.SubStatusLocked:
		return utils.ErrSubscriptionLocked
	case db_models.SubStatusTrial:
		if tutor.TrialExpiry > 0 && tutor.TrialExpiry < now {
			return utils.ErrTrialExpired
		}
	case db_models.SubStatusActive:
		if tutor.PlanExpiry != nil && *tutor.PlanExpiry < now {
			return utils.ErrPlanExpired
		}
	case db_models.SubStatusGrace:
		// Grace still writes; the billing system decides when it locks.
	}
	return nil
}

func (t *TutorService) Onboard(ctx context.Context, authSubject string, request request_models.OnboardingRequest) (*db_models.Tutor, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, utils.ErrInvalidName
	}

	existing, err := t.tutorRepo.FindByAuthSubject(ctx, authSubject)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil {
		return nil, utils.ErrProfileExists
	}

	tutor := &db_models.Tutor{
		AuthSubject:        authSubject,
		Name:               name,
		Phone:              strings.TrimSpace(request.Phone),
		PlanType:           db_models.PlanTrial,
		StudentLimit:       db_models.DefaultStudentLimit(db_models.PlanTrial),
		SubscriptionStatus: db_models.SubStatusTrial,
	}

	// The unique index on auth_subject is the real idempotency guard; a
	// concurrent second onboarding loses the race there.
	if err := t.tutorRepo.Insert(ctx, tutor); err != nil {
		log.Printf("onboarding insert failed for subject %s: %v", authSubject, err)
		return nil, utils.ErrDatabaseError
	}
	return tutor, nil
}

func (t *TutorService) Me(ctx context.Context, authSubject string) (*response_models.MeResponse, error) {
	tutor, err := t.tutorRepo.FindByAuthSubject(ctx, authSubject)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tutor == nil {
		return &response_models.MeResponse{NeedsOnboarding: true}, nil
	}
	return &response_models.MeResponse{NeedsOnboarding: false, Tutor: tutor}, nil
}

// RequireTutor resolves the caller's tutor profile or reports that
// onboarding is still pending.
func (t *TutorService) RequireTutor(ctx context.Context, authSubject string) (*db_models.Tutor, error) {
	tutor, err := t.tutorRepo.FindByAuthSubject(ctx, authSubject)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tutor == nil {
		return nil, utils.ErrOnboardingRequired
	}
	return tutor, nil
}

func (t *TutorService) CheckWriteAccess(tutor *db_models.Tutor) error {
	return computeEntitlement(tutor, time.Now().Unix())
}

// CheckCapacity gates student creation on a fresh count. Count-then-create
// is not transactional here; a benign race can land one student over the
// limit, which is an accepted trade-off rather than a corruption risk.
func (t *TutorService) CheckCapacity(ctx context.Context, tutor *db_models.Tutor) error {
	count, err := t.studentRepo.CountByOwner(ctx, tutor.ID)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if count >= int64(tutor.StudentLimit) {
		return utils.ErrStudentLimitHit
	}
	return nil
}

// RenewSubscription is the hook for the external billing event: it is the
// only path that moves a locked (or expired-in-effect) tutor back to
// active, with a fresh plan expiry and the tier's capacity.
func (t *TutorService) RenewSubscription(ctx context.Context, request request_models.BillingRenewalRequest) (*db_models.Tutor, error) {
	plan := db_models.PlanType(request.PlanType)
	switch plan {
	case db_models.PlanSolo, db_models.PlanPro, db_models.PlanInstitute:
	default:
		return nil, utils.ErrInvalidPlan
	}

	tutor, err := t.tutorRepo.FindByAuthSubject(ctx, request.AuthSubject)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if tutor == nil {
		return nil, utils.ErrTutorNotFound
	}

	expiry := request.PlanExpiry
	tutor.PlanType = plan
	tutor.StudentLimit = db_models.DefaultStudentLimit(plan)
	tutor.SubscriptionStatus = db_models.SubStatusActive
	tutor.PlanExpiry = &expiry

	if err := t.tutorRepo.Update(ctx, tutor); err != nil {
		return nil, utils.ErrDatabaseError
	}
	log.Printf("subscription renewed for tutor %s (plan %s)", tutor.ID, plan)
	return tutor, nil
}
