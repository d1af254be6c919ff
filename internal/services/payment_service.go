package services

import (
	"context"
	"errors"
	"log"
	"time"

	"tuitionledger/internal/models/db_models"
	"tuitionledger/internal/models/request_models"
	"tuitionledger/internal/models/response_models"
	"tuitionledger/internal/repositories"
	"tuitionledger/pkg/utils"
)

type PaymentServiceInterface interface {
	ListPayments(ctx context.Context, tutor *db_models.Tutor, studentID string) ([]db_models.PaymentRecord, error)
	UpsertPayment(ctx context.Context, tutor *db_models.Tutor, studentID string, request request_models.UpsertPaymentRequest) (*response_models.UpsertPaymentResponse, error)
	UpdatePayment(ctx context.Context, tutor *db_models.Tutor, paymentID string, request request_models.UpdatePaymentRequest) (*db_models.PaymentRecord, error)
	UpdatePaymentMethod(ctx context.Context, tutor *db_models.Tutor, paymentID string, method string) (*db_models.PaymentRecord, error)
	TogglePayment(ctx context.Context, tutor *db_models.Tutor, studentID string, month string, method *string) (*db_models.PaymentRecord, error)
}

type PaymentService struct {
	paymentRepo  repositories.PaymentRepository
	studentRepo  repositories.StudentRepository
	tutorService TutorServiceInterface
	cache        *PublicViewCache
}

func NewPaymentService(
	paymentRepo repositories.PaymentRepository,
	studentRepo repositories.StudentRepository,
	tutorService TutorServiceInterface,
	cache *PublicViewCache,
) PaymentServiceInterface {
	return &PaymentService{
		paymentRepo:  paymentRepo,
		studentRepo:  studentRepo,
		tutorService: tutorService,
		cache:        cache,
	}
}

func (p *PaymentService) ownedStudent(ctx context.Context, tutor *db_models.Tutor, studentID string) (*db_models.Student, error) {
	student, err := p.studentRepo.FindByOwnerAndID(ctx, tutor.ID, studentID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if student == nil {
		return nil, utils.ErrStudentNotFound
	}
	return student, nil
}

func (p *PaymentService) ListPayments(ctx context.Context, tutor *db_models.Tutor, studentID string) ([]db_models.PaymentRecord, error) {
	student, err := p.ownedStudent(ctx, tutor, studentID)
	if err != nil {
		return nil, err
	}
	records, err := p.paymentRepo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return records, nil
}

func parsePatch(amount *int64, status *string, method *string) (db_models.PaymentPatch, error) {
	var patch db_models.PaymentPatch

	if amount != nil {
		if *amount < 0 {
			return patch, utils.ErrInvalidAmount
		}
		patch.Amount = amount
	}
	if status != nil {
		st := db_models.PaymentStatus(*status)
		if !db_models.ValidPaymentStatus(st) {
			return patch, utils.ErrInvalidStatus
		}
		patch.Status = &st
	}
	if method != nil {
		m := db_models.PaymentMethod(*method)
		if !db_models.ValidPaymentMethod(m) {
			return patch, utils.ErrInvalidMethod
		}
		patch.Method = &m
	}
	return patch, nil
}

// UpsertPayment writes the ledger record for one (student, month): creation
// with defaults when no record exists, partial patch otherwise. Creation is
// optimistic; when a concurrent upsert wins the unique-index race we retry
// as an update exactly once instead of failing.
func (p *PaymentService) UpsertPayment(ctx context.Context, tutor *db_models.Tutor, studentID string, request request_models.UpsertPaymentRequest) (*response_models.UpsertPaymentResponse, error) {
	if err := p.tutorService.CheckWriteAccess(tutor); err != nil {
		return nil, err
	}
	if err := utils.ValidateMonth(request.Month); err != nil {
		return nil, err
	}
	patch, err := parsePatch(request.Amount, request.Status, request.Method)
	if err != nil {
		return nil, err
	}

	student, err := p.ownedStudent(ctx, tutor, studentID)
	if err != nil {
		return nil, err
	}

	existing, err := p.paymentRepo.FindByStudentAndMonth(ctx, student.ID, request.Month)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	if existing != nil {
		record, err := p.applyAndSave(ctx, existing, patch, student.PublicToken)
		if err != nil {
			return nil, err
		}
		return &response_models.UpsertPaymentResponse{Payment: *record, Created: false}, nil
	}

	record, err := p.createRecord(ctx, student, request.Month, patch)
	if err == nil {
		p.cache.Invalidate(ctx, student.PublicToken)
		return &response_models.UpsertPaymentResponse{Payment: *record, Created: true}, nil
	}
	if !errors.Is(err, repositories.ErrDuplicateMonth) {
		return nil, err
	}

	// Lost the creation race; the record exists now, so patch it instead.
	log.Printf("payment create conflict for student %s month %s, retrying as update", student.ID, request.Month)
	existing, findErr := p.paymentRepo.FindByStudentAndMonth(ctx, student.ID, request.Month)
	if findErr != nil || existing == nil {
		return nil, utils.ErrPaymentConflict
	}
	record, err = p.applyAndSave(ctx, existing, patch, student.PublicToken)
	if err != nil {
		return nil, utils.ErrPaymentConflict
	}
	return &response_models.UpsertPaymentResponse{Payment: *record, Created: false}, nil
}

// createRecord builds a new ledger entry. The amount defaults to the fee
// resolved for that month, snapshotted now and never revisited by later
// fee-history edits.
func (p *PaymentService) createRecord(ctx context.Context, student *db_models.Student, month string, patch db_models.PaymentPatch) (*db_models.PaymentRecord, error) {
	record := &db_models.PaymentRecord{
		StudentID: student.ID,
		Month:     month,
		Amount:    student.FeeForMonth(month),
		Status:    db_models.PaymentPending,
	}
	record.Apply(patch, time.Now().Unix())

	if record.Status == db_models.PaymentPaid && record.Method == nil {
		return nil, utils.ErrMethodRequired
	}

	if err := p.paymentRepo.Insert(ctx, record); err != nil {
		if errors.Is(err, repositories.ErrDuplicateMonth) {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}
	return record, nil
}

func (p *PaymentService) applyAndSave(ctx context.Context, record *db_models.PaymentRecord, patch db_models.PaymentPatch, publicToken string) (*db_models.PaymentRecord, error) {
	record.Apply(patch, time.Now().Unix())
	if record.Status == db_models.PaymentPaid && record.Method == nil {
		return nil, utils.ErrMethodRequired
	}
	if err := p.paymentRepo.Update(ctx, record); err != nil {
		return nil, utils.ErrDatabaseError
	}
	p.cache.Invalidate(ctx, publicToken)
	return record, nil
}

// ownedPayment resolves a record by id and checks, through the student, that
// it belongs to the caller. Missing and unowned records are indistinguishable.
func (p *PaymentService) ownedPayment(ctx context.Context, tutor *db_models.Tutor, paymentID string) (*db_models.PaymentRecord, *db_models.Student, error) {
	record, err := p.paymentRepo.FindByID(ctx, paymentID)
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if record == nil {
		return nil, nil, utils.ErrPaymentNotFound
	}
	student, err := p.studentRepo.FindByOwnerAndID(ctx, tutor.ID, record.StudentID.String())
	if err != nil {
		return nil, nil, utils.ErrDatabaseError
	}
	if student == nil {
		return nil, nil, utils.ErrPaymentNotFound
	}
	return record, student, nil
}

func (p *PaymentService) UpdatePayment(ctx context.Context, tutor *db_models.Tutor, paymentID string, request request_models.UpdatePaymentRequest) (*db_models.PaymentRecord, error) {
	if err := p.tutorService.CheckWriteAccess(tutor); err != nil {
		return nil, err
	}
	patch, err := parsePatch(request.Amount, request.Status, request.Method)
	if err != nil {
		return nil, err
	}

	record, student, err := p.ownedPayment(ctx, tutor, paymentID)
	if err != nil {
		return nil, err
	}
	return p.applyAndSave(ctx, record, patch, student.PublicToken)
}

// UpdatePaymentMethod amends the method on an existing record only; method
// changes are meaningless without a payment, so a missing record is NotFound
// rather than an implicit create.
func (p *PaymentService) UpdatePaymentMethod(ctx context.Context, tutor *db_models.Tutor, paymentID string, method string) (*db_models.PaymentRecord, error) {
	if err := p.tutorService.CheckWriteAccess(tutor); err != nil {
		return nil, err
	}
	m := db_models.PaymentMethod(method)
	if !db_models.ValidPaymentMethod(m) {
		return nil, utils.ErrInvalidMethod
	}

	record, student, err := p.ownedPayment(ctx, tutor, paymentID)
	if err != nil {
		return nil, err
	}
	return p.applyAndSave(ctx, record, db_models.PaymentPatch{Method: &m}, student.PublicToken)
}

// TogglePayment flips the month between Paid and Pending on top of the
// upsert path; it is a serving-layer convenience, not a storage primitive.
func (p *PaymentService) TogglePayment(ctx context.Context, tutor *db_models.Tutor, studentID string, month string, method *string) (*db_models.PaymentRecord, error) {
	if err := utils.ValidateMonth(month); err != nil {
		return nil, err
	}

	student, err := p.ownedStudent(ctx, tutor, studentID)
	if err != nil {
		return nil, err
	}

	next := string(db_models.PaymentPaid)
	existing, err := p.paymentRepo.FindByStudentAndMonth(ctx, student.ID, month)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if existing != nil && existing.Status == db_models.PaymentPaid {
		next = string(db_models.PaymentPending)
	}

	result, err := p.UpsertPayment(ctx, tutor, studentID, request_models.UpsertPaymentRequest{
		Month:  month,
		Status: &next,
		Method: method,
	})
	if err != nil {
		return nil, err
	}
	return &result.Payment, nil
}
