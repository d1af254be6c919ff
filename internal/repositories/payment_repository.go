package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"tuitionledger/internal/models/db_models"
)

// ErrDuplicateMonth reports that a record for the same (student, month)
// already exists. The upsert path treats it as "fall back to update".
var ErrDuplicateMonth = errors.New("payment record already exists for month")

type PaymentRepository interface {
	Insert(ctx context.Context, record *db_models.PaymentRecord) error
	FindByStudentAndMonth(ctx context.Context, studentID uuid.UUID, month string) (*db_models.PaymentRecord, error)
	FindByID(ctx context.Context, id string) (*db_models.PaymentRecord, error)
	ListByStudent(ctx context.Context, studentID uuid.UUID) ([]db_models.PaymentRecord, error)
	ListByStudentAndMonth(ctx context.Context, studentIDs []uuid.UUID, month string) ([]db_models.PaymentRecord, error)
	Update(ctx context.Context, record *db_models.PaymentRecord) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}
	return false
}

// Insert relies on the composite unique index on (student_id, month) to
// arbitrate concurrent creation; the database, not a read-then-write check,
// is what keeps the ledger to one record per month.
func (p *paymentRepository) Insert(ctx context.Context, record *db_models.PaymentRecord) error {
	err := p.db.WithContext(ctx).Create(record).Error
	if err != nil && isUniqueViolation(err) {
		return ErrDuplicateMonth
	}
	return err
}

func (p *paymentRepository) FindByStudentAndMonth(ctx context.Context, studentID uuid.UUID, month string) (*db_models.PaymentRecord, error) {
	var record db_models.PaymentRecord
	err := p.db.WithContext(ctx).
		Where("student_id = ? AND month = ?", studentID, month).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (p *paymentRepository) FindByID(ctx context.Context, id string) (*db_models.PaymentRecord, error) {
	var record db_models.PaymentRecord
	err := p.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (p *paymentRepository) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]db_models.PaymentRecord, error) {
	var records []db_models.PaymentRecord
	err := p.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("month DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (p *paymentRepository) ListByStudentAndMonth(ctx context.Context, studentIDs []uuid.UUID, month string) ([]db_models.PaymentRecord, error) {
	if len(studentIDs) == 0 {
		return nil, nil
	}
	var records []db_models.PaymentRecord
	err := p.db.WithContext(ctx).
		Where("student_id IN ? AND month = ?", studentIDs, month).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (p *paymentRepository) Update(ctx context.Context, record *db_models.PaymentRecord) error {
	return p.db.WithContext(ctx).Save(record).Error
}
