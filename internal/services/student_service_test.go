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

type studentFixture struct {
	svc      StudentServiceInterface
	students *fakeStudentRepo
	payments *fakePaymentRepo
	tutor    *db_models.Tutor
}

func newStudentFixture(t *testing.T) *studentFixture {
	t.Helper()
	ctx := context.Background()

	payments := newFakePaymentRepo()
	students := newFakeStudentRepo(payments)
	tutors := newFakeTutorRepo()
	tutorSvc := NewTutorService(tutors, students)

	tutor := &db_models.Tutor{
		AuthSubject:        "subject-s",
		Name:               "Priya",
		SubscriptionStatus: db_models.SubStatusTrial,
		TrialExpiry:        time.Now().Add(24 * time.Hour).Unix(),
		StudentLimit:       2,
	}
	if err := tutors.Insert(ctx, tutor); err != nil {
		t.Fatal(err)
	}

	return &studentFixture{
		svc:      NewStudentService(students, tutorSvc, NewPublicViewCache(nil)),
		students: students,
		payments: payments,
		tutor:    tutor,
	}
}

func TestCreateStudentGeneratesToken(t *testing.T) {
	f := newStudentFixture(t)

	student, err := f.svc.CreateStudent(context.Background(), f.tutor, request_models.CreateStudentRequest{
		Name:       "Dev",
		MonthlyFee: int64Ptr(600),
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if student.PublicToken == "" {
		t.Error("no public token generated at creation")
	}
	if student.MonthlyFee != 600 {
		t.Errorf("MonthlyFee = %d; want 600", student.MonthlyFee)
	}
}

func TestCreateStudentEnforcesCapacity(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	for _, name := range []string{"One", "Two"} {
		if _, err := f.svc.CreateStudent(ctx, f.tutor, request_models.CreateStudentRequest{Name: name, MonthlyFee: int64Ptr(500)}); err != nil {
			t.Fatalf("create %s failed: %v", name, err)
		}
	}

	_, err := f.svc.CreateStudent(ctx, f.tutor, request_models.CreateStudentRequest{Name: "Three", MonthlyFee: int64Ptr(500)})
	if !errors.Is(err, utils.ErrStudentLimitHit) {
		t.Errorf("create over limit = %v; want ErrStudentLimitHit", err)
	}
}

func TestCreateStudentDeniedWhenLocked(t *testing.T) {
	f := newStudentFixture(t)
	f.tutor.SubscriptionStatus = db_models.SubStatusLocked

	_, err := f.svc.CreateStudent(context.Background(), f.tutor, request_models.CreateStudentRequest{Name: "Dev", MonthlyFee: int64Ptr(500)})
	if !errors.Is(err, utils.ErrSubscriptionLocked) {
		t.Errorf("locked create = %v; want ErrSubscriptionLocked", err)
	}
}

func TestUpdateFeeValidation(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.svc.CreateStudent(ctx, f.tutor, request_models.CreateStudentRequest{Name: "Dev", MonthlyFee: int64Ptr(500)})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		request request_models.UpdateFeeRequest
		wantErr error
	}{
		{"bad month", request_models.UpdateFeeRequest{Amount: int64Ptr(600), EffectiveFrom: "June 2024"}, utils.ErrInvalidMonth},
		{"negative amount", request_models.UpdateFeeRequest{Amount: int64Ptr(-5), EffectiveFrom: "2024-06"}, utils.ErrInvalidAmount},
		{"missing amount", request_models.UpdateFeeRequest{EffectiveFrom: "2024-06"}, utils.ErrInvalidAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.UpdateFee(ctx, f.tutor, student.ID.String(), tt.request)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v; want %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateFeeAppendsAndRefreshesCurrent(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.svc.CreateStudent(ctx, f.tutor, request_models.CreateStudentRequest{Name: "Dev", MonthlyFee: int64Ptr(500)})
	if err != nil {
		t.Fatal(err)
	}

	updated, err := f.svc.UpdateFee(ctx, f.tutor, student.ID.String(), request_models.UpdateFeeRequest{
		Amount:        int64Ptr(700),
		EffectiveFrom: "2024-06",
	})
	if err != nil {
		t.Fatalf("fee update failed: %v", err)
	}
	if updated.MonthlyFee != 700 {
		t.Errorf("MonthlyFee = %d; want 700", updated.MonthlyFee)
	}
	if len(updated.FeeHistory) != 1 {
		t.Errorf("history = %d entries; want 1", len(updated.FeeHistory))
	}
}

func TestDeleteStudentCascadesLedger(t *testing.T) {
	f := newStudentFixture(t)
	ctx := context.Background()

	student, err := f.svc.CreateStudent(ctx, f.tutor, request_models.CreateStudentRequest{Name: "Dev", MonthlyFee: int64Ptr(500)})
	if err != nil {
		t.Fatal(err)
	}
	if err := f.payments.Insert(ctx, &db_models.PaymentRecord{StudentID: student.ID, Month: "2024-05", Amount: 500}); err != nil {
		t.Fatal(err)
	}

	if err := f.svc.DeleteStudent(ctx, f.tutor, student.ID.String()); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	records, _ := f.payments.ListByStudent(ctx, student.ID)
	if len(records) != 0 {
		t.Errorf("%d payment records survived student deletion; want 0", len(records))
	}
	_, err = f.svc.GetStudent(ctx, f.tutor, student.ID.String())
	if !errors.Is(err, utils.ErrStudentNotFound) {
		t.Errorf("deleted student lookup = %v; want ErrStudentNotFound", err)
	}
}
