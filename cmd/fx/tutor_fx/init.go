package tutor_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tuitionledger/internal/repositories"
	"tuitionledger/internal/services"
)

var Module = fx.Provide(
	provideTutorService, provideTutorRepo)

func provideTutorRepo(db *gorm.DB) repositories.TutorRepository {
	return repositories.NewTutorRepository(db)
}

func provideTutorService(tutorRepo repositories.TutorRepository, studentRepo repositories.StudentRepository) services.TutorServiceInterface {
	return services.NewTutorService(tutorRepo, studentRepo)
}
