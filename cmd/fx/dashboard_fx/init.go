package dashboard_fx

import (
	"go.uber.org/fx"

	"tuitionledger/internal/repositories"
	"tuitionledger/internal/services"
)

var Module = fx.Provide(
	provideDashboardService)

func provideDashboardService(studentRepo repositories.StudentRepository, paymentRepo repositories.PaymentRepository) services.DashboardServiceInterface {
	return services.NewDashboardService(studentRepo, paymentRepo)
}
