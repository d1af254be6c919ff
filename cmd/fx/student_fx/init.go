package student_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tuitionledger/internal/repositories"
	"tuitionledger/internal/services"
)

var Module = fx.Provide(
	provideStudentService, provideStudentRepo)

func provideStudentRepo(db *gorm.DB) repositories.StudentRepository {
	return repositories.NewStudentRepository(db)
}

func provideStudentService(studentRepo repositories.StudentRepository, tutorService services.TutorServiceInterface, cache *services.PublicViewCache) services.StudentServiceInterface {
	return services.NewStudentService(studentRepo, tutorService, cache)
}
