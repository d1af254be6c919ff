package services

import (
	"context"
	"strings"

	"tuitionledger/internal/models/db_models"
	"tuitionledger/internal/models/request_models"
	"tuitionledger/internal/repositories"
	"tuitionledger/pkg/utils"
)

type StudentServiceInterface interface {
	ListStudents(ctx context.Context, tutor *db_models.Tutor) ([]db_models.Student, error)
	GetStudent(ctx context.Context, tutor *db_models.Tutor, studentID string) (*db_models.Student, error)
	CreateStudent(ctx context.Context, tutor *db_models.Tutor, request request_models.CreateStudentRequest) (*db_models.Student, error)
	UpdateStudent(ctx context.Context, tutor *db_models.Tutor, studentID string, request request_models.UpdateStudentRequest) (*db_models.Student, error)
	DeleteStudent(ctx context.Context, tutor *db_models.Tutor, studentID string) error
	UpdateFee(ctx context.Context, tutor *db_models.Tutor, studentID string, request request_models.UpdateFeeRequest) (*db_models.Student, error)
}

type StudentService struct {
	studentRepo  repositories.StudentRepository
	tutorService TutorServiceInterface
	cache        *PublicViewCache
}

func NewStudentService(studentRepo repositories.StudentRepository, tutorService TutorServiceInterface, cache *PublicViewCache) StudentServiceInterface {
	return &StudentService{
		studentRepo:  studentRepo,
		tutorService: tutorService,
		cache:        cache,
	}
}

func (s *StudentService) ListStudents(ctx context.Context, tutor *db_models.Tutor) ([]db_models.Student, error) {
	students, err := s.studentRepo.ListByOwner(ctx, tutor.ID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	return students, nil
}

func (s *StudentService) GetStudent(ctx context.Context, tutor *db_models.Tutor, studentID string) (*db_models.Student, error) {
	student, err := s.studentRepo.FindByOwnerAndID(ctx, tutor.ID, studentID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if student == nil {
		// Unowned and unknown ids read the same from the outside.
		return nil, utils.ErrStudentNotFound
	}
	return student, nil
}

func (s *StudentService) CreateStudent(ctx context.Context, tutor *db_models.Tutor, request request_models.CreateStudentRequest) (*db_models.Student, error) {
	if err := s.tutorService.CheckWriteAccess(tutor); err != nil {
		return nil, err
	}
	if err := s.tutorService.CheckCapacity(ctx, tutor); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, utils.ErrInvalidName
	}
	if request.MonthlyFee == nil || *request.MonthlyFee < 0 {
		return nil, utils.ErrInvalidAmount
	}
	if request.StartDate != nil {
		if err := utils.ValidateMonth(*request.StartDate); err != nil {
			return nil, err
		}
	}

	student := &db_models.Student{
		TutorID:    tutor.ID,
		Name:       name,
		Phone:      strings.TrimSpace(request.Phone),
		MonthlyFee: *request.MonthlyFee,
		StartDate:  request.StartDate,
	}
	if err := s.studentRepo.Insert(ctx, student); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return student, nil
}

func (s *StudentService) UpdateStudent(ctx context.Context, tutor *db_models.Tutor, studentID string, request request_models.UpdateStudentRequest) (*db_models.Student, error) {
	if err := s.tutorService.CheckWriteAccess(tutor); err != nil {
		return nil, err
	}

	student, err := s.GetStudent(ctx, tutor, studentID)
	if err != nil {
		return nil, err
	}

	if request.Name != nil {
		name := strings.TrimSpace(*request.Name)
		if name == "" {
			return nil, utils.ErrInvalidName
		}
		student.Name = name
	}
	if request.Phone != nil {
		student.Phone = strings.TrimSpace(*request.Phone)
	}
	if request.StartDate != nil {
		if err := utils.ValidateMonth(*request.StartDate); err != nil {
			return nil, err
		}
		student.StartDate = request.StartDate
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, utils.ErrDatabaseError
	}
	s.cache.Invalidate(ctx, student.PublicToken)
	return student, nil
}

func (s *StudentService) DeleteStudent(ctx context.Context, tutor *db_models.Tutor, studentID string) error {
	if err := s.tutorService.CheckWriteAccess(tutor); err != nil {
		return err
	}

	student, err := s.GetStudent(ctx, tutor, studentID)
	if err != nil {
		return err
	}

	if err := s.studentRepo.DeleteCascade(ctx, student); err != nil {
		return utils.ErrDatabaseError
	}
	s.cache.Invalidate(ctx, student.PublicToken)
	return nil
}

// UpdateFee amends or appends one fee-history entry. Tutors use this to
// raise fees retroactively without re-entering payments; existing payment
// records keep the amounts they snapshotted at creation.
func (s *StudentService) UpdateFee(ctx context.Context, tutor *db_models.Tutor, studentID string, request request_models.UpdateFeeRequest) (*db_models.Student, error) {
	if err := s.tutorService.CheckWriteAccess(tutor); err != nil {
		return nil, err
	}
	if err := utils.ValidateMonth(request.EffectiveFrom); err != nil {
		return nil, err
	}
	if request.Amount == nil || *request.Amount < 0 {
		return nil, utils.ErrInvalidAmount
	}

	student, err := s.GetStudent(ctx, tutor, studentID)
	if err != nil {
		return nil, err
	}

	student.ApplyFeeChange(*request.Amount, request.EffectiveFrom)

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, utils.ErrDatabaseError
	}
	s.cache.Invalidate(ctx, student.PublicToken)
	return student, nil
}
