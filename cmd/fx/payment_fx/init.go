package payment_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tuitionledger/internal/repositories"
	"tuitionledger/internal/services"
)

var Module = fx.Provide(
	providePaymentService, providePaymentRepo)

func providePaymentRepo(db *gorm.DB) repositories.PaymentRepository {
	return repositories.NewPaymentRepository(db)
}

func providePaymentService(
	paymentRepo repositories.PaymentRepository,
	studentRepo repositories.StudentRepository,
	tutorService services.TutorServiceInterface,
	cache *services.PublicViewCache,
) services.PaymentServiceInterface {
	return services.NewPaymentService(paymentRepo, studentRepo, tutorService, cache)
}
