package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tuitionledger/internal/models/db_models"
)

type TutorRepository interface {
	Insert(ctx context.Context, tutor *db_models.Tutor) error
	FindByAuthSubject(ctx context.Context, authSubject string) (*db_models.Tutor, error)
	FindByID(ctx context.Context, id string) (*db_models.Tutor, error)
	Update(ctx context.Context, tutor *db_models.Tutor) error
}

type tutorRepository struct {
	db *gorm.DB
}

func NewTutorRepository(db *gorm.DB) TutorRepository {
	return &tutorRepository{db: db}
}

func (t *tutorRepository) Insert(ctx context.Context, tutor *db_models.Tutor) error {
	return t.db.WithContext(ctx).Create(tutor).Error
}

func (t *tutorRepository) FindByAuthSubject(ctx context.Context, authSubject string) (*db_models.Tutor, error) {
	var tutor db_models.Tutor
	err := t.db.WithContext(ctx).First(&tutor, "auth_subject = ?", authSubject).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tutor, nil
}

func (t *tutorRepository) FindByID(ctx context.Context, id string) (*db_models.Tutor, error) {
	var tutor db_models.Tutor
	err := t.db.WithContext(ctx).First(&tutor, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &tutor, nil
}

func (t *tutorRepository) Update(ctx context.Context, tutor *db_models.Tutor) error {
	return t.db.WithContext(ctx).Save(tutor).Error
}
