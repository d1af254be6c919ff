package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"tuitionledger/internal/models/db_models"
	"tuitionledger/internal/repositories"
)

// In-memory repositories for service tests. The payment fake enforces the
// (student, month) uniqueness the real composite index provides, so the
// conflict path is exercisable without a database.

type fakeTutorRepo struct {
	tutors map[string]*db_models.Tutor // by auth subject
}

func newFakeTutorRepo() *fakeTutorRepo {
	return &fakeTutorRepo{tutors: make(map[string]*db_models.Tutor)}
}

func (f *fakeTutorRepo) Insert(ctx context.Context, tutor *db_models.Tutor) error {
	if tutor.ID == uuid.Nil {
		tutor.ID = uuid.New()
	}
	f.tutors[tutor.AuthSubject] = tutor
	return nil
}

func (f *fakeTutorRepo) FindByAuthSubject(ctx context.Context, authSubject string) (*db_models.Tutor, error) {
	return f.tutors[authSubject], nil
}

func (f *fakeTutorRepo) FindByID(ctx context.Context, id string) (*db_models.Tutor, error) {
	for _, t := range f.tutors {
		if t.ID.String() == id {
			return t, nil
		}
	}
	return nil, nil
}

func (f *fakeTutorRepo) Update(ctx context.Context, tutor *db_models.Tutor) error {
	f.tutors[tutor.AuthSubject] = tutor
	return nil
}

type fakeStudentRepo struct {
	students map[uuid.UUID]*db_models.Student
	payments *fakePaymentRepo
}

func newFakeStudentRepo(payments *fakePaymentRepo) *fakeStudentRepo {
	return &fakeStudentRepo{
		students: make(map[uuid.UUID]*db_models.Student),
		payments: payments,
	}
}

func (f *fakeStudentRepo) Insert(ctx context.Context, student *db_models.Student) error {
	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	if student.PublicToken == "" {
		student.PublicToken = uuid.NewString()
	}
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentRepo) FindByOwnerAndID(ctx context.Context, tutorID uuid.UUID, id string) (*db_models.Student, error) {
	for _, s := range f.students {
		if s.ID.String() == id && s.TutorID == tutorID {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentRepo) FindByPublicToken(ctx context.Context, token string) (*db_models.Student, error) {
	for _, s := range f.students {
		if s.PublicToken == token {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeStudentRepo) ListByOwner(ctx context.Context, tutorID uuid.UUID) ([]db_models.Student, error) {
	var out []db_models.Student
	for _, s := range f.students {
		if s.TutorID == tutorID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeStudentRepo) CountByOwner(ctx context.Context, tutorID uuid.UUID) (int64, error) {
	var count int64
	for _, s := range f.students {
		if s.TutorID == tutorID {
			count++
		}
	}
	return count, nil
}

func (f *fakeStudentRepo) Update(ctx context.Context, student *db_models.Student) error {
	f.students[student.ID] = student
	return nil
}

func (f *fakeStudentRepo) DeleteCascade(ctx context.Context, student *db_models.Student) error {
	delete(f.students, student.ID)
	if f.payments != nil {
		for key, r := range f.payments.records {
			if r.StudentID == student.ID {
				delete(f.payments.records, key)
			}
		}
	}
	return nil
}

type paymentKey struct {
	studentID uuid.UUID
	month     string
}

type fakePaymentRepo struct {
	records map[paymentKey]*db_models.PaymentRecord
	// insertHook runs before each Insert; tests use it to inject a racing
	// writer between the service's existence check and its create.
	insertHook func()
}

func newFakePaymentRepo() *fakePaymentRepo {
	return &fakePaymentRepo{records: make(map[paymentKey]*db_models.PaymentRecord)}
}

func (f *fakePaymentRepo) Insert(ctx context.Context, record *db_models.PaymentRecord) error {
	if f.insertHook != nil {
		f.insertHook()
	}
	key := paymentKey{record.StudentID, record.Month}
	if _, exists := f.records[key]; exists {
		return repositories.ErrDuplicateMonth
	}
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	f.records[key] = record
	return nil
}

func (f *fakePaymentRepo) FindByStudentAndMonth(ctx context.Context, studentID uuid.UUID, month string) (*db_models.PaymentRecord, error) {
	if r, ok := f.records[paymentKey{studentID, month}]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, nil
}

func (f *fakePaymentRepo) FindByID(ctx context.Context, id string) (*db_models.PaymentRecord, error) {
	for _, r := range f.records {
		if r.ID.String() == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakePaymentRepo) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]db_models.PaymentRecord, error) {
	var out []db_models.PaymentRecord
	for _, r := range f.records {
		if r.StudentID == studentID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out, nil
}

func (f *fakePaymentRepo) ListByStudentAndMonth(ctx context.Context, studentIDs []uuid.UUID, month string) ([]db_models.PaymentRecord, error) {
	var out []db_models.PaymentRecord
	for _, id := range studentIDs {
		if r, ok := f.records[paymentKey{id, month}]; ok {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) Update(ctx context.Context, record *db_models.PaymentRecord) error {
	copied := *record
	f.records[paymentKey{record.StudentID, record.Month}] = &copied
	return nil
}
