package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"tuitionledger/internal/models/db_models"
)

type StudentRepository interface {
	Insert(ctx context.Context, student *db_models.Student) error
	FindByOwnerAndID(ctx context.Context, tutorID uuid.UUID, id string) (*db_models.Student, error)
	FindByPublicToken(ctx context.Context, token string) (*db_models.Student, error)
	ListByOwner(ctx context.Context, tutorID uuid.UUID) ([]db_models.Student, error)
	CountByOwner(ctx context.Context, tutorID uuid.UUID) (int64, error)
	Update(ctx context.Context, student *db_models.Student) error
	DeleteCascade(ctx context.Context, student *db_models.Student) error
}

type studentRepository struct {
	db *gorm.DB
}

func NewStudentRepository(db *gorm.DB) StudentRepository {
	return &studentRepository{db: db}
}

func (s *studentRepository) Insert(ctx context.Context, student *db_models.Student) error {
	return s.db.WithContext(ctx).Create(student).Error
}

func (s *studentRepository) FindByOwnerAndID(ctx context.Context, tutorID uuid.UUID, id string) (*db_models.Student, error) {
	var student db_models.Student
	err := s.db.WithContext(ctx).
		Where("id = ? AND tutor_id = ?", id, tutorID).
		First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (s *studentRepository) FindByPublicToken(ctx context.Context, token string) (*db_models.Student, error) {
	var student db_models.Student
	err := s.db.WithContext(ctx).First(&student, "public_token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &student, nil
}

func (s *studentRepository) ListByOwner(ctx context.Context, tutorID uuid.UUID) ([]db_models.Student, error) {
	var students []db_models.Student
	err := s.db.WithContext(ctx).
		Where("tutor_id = ?", tutorID).
		Order("created_at DESC").
		Find(&students).Error
	if err != nil {
		return nil, err
	}
	return students, nil
}

// CountByOwner reads the live count; the capacity gate wants fresh numbers,
// not a cached counter.
func (s *studentRepository) CountByOwner(ctx context.Context, tutorID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&db_models.Student{}).
		Where("tutor_id = ?", tutorID).
		Count(&count).Error
	return count, err
}

func (s *studentRepository) Update(ctx context.Context, student *db_models.Student) error {
	return s.db.WithContext(ctx).Save(student).Error
}

// DeleteCascade removes the student and every payment record in its ledger
// inside one transaction.
func (s *studentRepository) DeleteCascade(ctx context.Context, student *db_models.Student) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", student.ID).Delete(&db_models.PaymentRecord{}).Error; err != nil {
			return err
		}
		return tx.Delete(student).Error
	})
}
