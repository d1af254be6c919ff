package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"tuitionledger/internal/models/db_models"
	"tuitionledger/internal/models/request_models"
	"tuitionledger/pkg/utils"
)

func TestComputeEntitlement(t *testing.T) {
	now := time.Now().Unix()
	past := now - 3600
	future := now + 3600

	tests := []struct {
		name    string
		tutor   db_models.Tutor
		wantErr error
	}{
		{
			name:    "trial within period writes",
			tutor:   db_models.Tutor{SubscriptionStatus: db_models.SubStatusTrial, TrialExpiry: future},
			wantErr: nil,
		},
		{
			name: "persisted trial with elapsed expiry is denied",
			// The stored status still says trial; only the computed state
			// matters for gating.
			tutor:   db_models.Tutor{SubscriptionStatus: db_models.SubStatusTrial, TrialExpiry: past},
			wantErr: utils.ErrTrialExpired,
		},
		{
			name:    "active with future plan expiry writes",
			tutor:   db_models.Tutor{SubscriptionStatus: db_models.SubStatusActive, PlanExpiry: &future},
			wantErr: nil,
		},
		{
			name:    "active with elapsed plan expiry is denied",
			tutor:   db_models.Tutor{SubscriptionStatus: db_models.SubStatusActive, PlanExpiry: &past},
			wantErr: utils.ErrPlanExpired,
		},
		{
			name:    "grace still writes",
			tutor:   db_models.Tutor{SubscriptionStatus: db_models.SubStatusGrace},
			wantErr: nil,
		},
		{
			name:    "locked is denied",
			tutor:   db_models.Tutor{SubscriptionStatus: db_models.SubStatusLocked},
			wantErr: utils.ErrSubscriptionLocked,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := computeEntitlement(&tt.tutor, now)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("computeEntitlement() = %v; want %v", err, tt.wantErr)
			}
		})
	}
}

func newTutorServiceForTest() (TutorServiceInterface, *fakeTutorRepo, *fakeStudentRepo) {
	payments := newFakePaymentRepo()
	students := newFakeStudentRepo(payments)
	tutors := newFakeTutorRepo()
	return NewTutorService(tutors, students), tutors, students
}

func TestOnboardRejectsSecondProfile(t *testing.T) {
	svc, _, _ := newTutorServiceForTest()
	ctx := context.Background()

	if _, err := svc.Onboard(ctx, "subject-1", request_models.OnboardingRequest{Name: "Asha"}); err != nil {
		t.Fatalf("first onboarding failed: %v", err)
	}
	_, err := svc.Onboard(ctx, "subject-1", request_models.OnboardingRequest{Name: "Asha again"})
	if !errors.Is(err, utils.ErrProfileExists) {
		t.Errorf("second onboarding = %v; want ErrProfileExists", err)
	}
}

func TestOnboardRequiresName(t *testing.T) {
	svc, _, _ := newTutorServiceForTest()
	_, err := svc.Onboard(context.Background(), "subject-2", request_models.OnboardingRequest{Name: "   "})
	if !errors.Is(err, utils.ErrInvalidName) {
		t.Errorf("blank name = %v; want ErrInvalidName", err)
	}
}

func TestCheckCapacity(t *testing.T) {
	svc, tutors, students := newTutorServiceForTest()
	ctx := context.Background()

	tutor := &db_models.Tutor{AuthSubject: "subject-3", Name: "Ravi", StudentLimit: 1}
	if err := tutors.Insert(ctx, tutor); err != nil {
		t.Fatal(err)
	}

	if err := svc.CheckCapacity(ctx, tutor); err != nil {
		t.Fatalf("capacity check with no students = %v; want nil", err)
	}

	student := &db_models.Student{TutorID: tutor.ID, Name: "Meena", MonthlyFee: 500}
	if err := students.Insert(ctx, student); err != nil {
		t.Fatal(err)
	}

	if err := svc.CheckCapacity(ctx, tutor); !errors.Is(err, utils.ErrStudentLimitHit) {
		t.Errorf("capacity check at limit = %v; want ErrStudentLimitHit", err)
	}

	// Deleting the student frees the slot; the count is always read fresh.
	if err := students.DeleteCascade(ctx, student); err != nil {
		t.Fatal(err)
	}
	if err := svc.CheckCapacity(ctx, tutor); err != nil {
		t.Errorf("capacity check after delete = %v; want nil", err)
	}
}

func TestRenewSubscriptionReactivatesLockedTutor(t *testing.T) {
	svc, tutors, _ := newTutorServiceForTest()
	ctx := context.Background()

	tutor := &db_models.Tutor{
		AuthSubject:        "subject-4",
		Name:               "Sunita",
		SubscriptionStatus: db_models.SubStatusLocked,
		StudentLimit:       25,
	}
	if err := tutors.Insert(ctx, tutor); err != nil {
		t.Fatal(err)
	}

	expiry := time.Now().Add(30 * 24 * time.Hour).Unix()
	renewed, err := svc.RenewSubscription(ctx, request_models.BillingRenewalRequest{
		AuthSubject: "subject-4",
		PlanType:    string(db_models.PlanPro),
		PlanExpiry:  expiry,
	})
	if err != nil {
		t.Fatalf("renewal failed: %v", err)
	}

	if renewed.SubscriptionStatus != db_models.SubStatusActive {
		t.Errorf("status = %s; want active", renewed.SubscriptionStatus)
	}
	if renewed.PlanExpiry == nil || *renewed.PlanExpiry != expiry {
		t.Errorf("plan expiry = %v; want %d", renewed.PlanExpiry, expiry)
	}
	if renewed.StudentLimit != db_models.DefaultStudentLimit(db_models.PlanPro) {
		t.Errorf("student limit = %d; want pro tier default", renewed.StudentLimit)
	}
	if err := svc.CheckWriteAccess(renewed); err != nil {
		t.Errorf("renewed tutor still denied: %v", err)
	}
}

func TestRenewSubscriptionRejectsUnknownPlan(t *testing.T) {
	svc, _, _ := newTutorServiceForTest()
	_, err := svc.RenewSubscription(context.Background(), request_models.BillingRenewalRequest{
		AuthSubject: "anyone",
		PlanType:    "platinum",
		PlanExpiry:  time.Now().Unix(),
	})
	if !errors.Is(err, utils.ErrInvalidPlan) {
		t.Errorf("unknown plan = %v; want ErrInvalidPlan", err)
	}
}
