package public_fx

import (
	"go.uber.org/fx"

	"tuitionledger/internal/repositories"
	"tuitionledger/internal/services"
)

var Module = fx.Provide(
	providePublicService)

func providePublicService(
	studentRepo repositories.StudentRepository,
	tutorRepo repositories.TutorRepository,
	paymentRepo repositories.PaymentRepository,
	cache *services.PublicViewCache,
) services.PublicServiceInterface {
	return services.NewPublicService(studentRepo, tutorRepo, paymentRepo, cache)
}
