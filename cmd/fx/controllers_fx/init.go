package controllers_fx

import (
	"go.uber.org/fx"

	"tuitionledger/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewTutorController),
	fx.Provide(controllers.NewStudentController),
	fx.Provide(controllers.NewPaymentController),
	fx.Provide(controllers.NewPublicController),
	fx.Provide(controllers.NewDashboardController))
