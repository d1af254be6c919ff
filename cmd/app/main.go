package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tuitionledger/cmd/fx/cache_fx"
	"tuitionledger/cmd/fx/controllers_fx"
	"tuitionledger/cmd/fx/dashboard_fx"
	"tuitionledger/cmd/fx/db_fx"
	"tuitionledger/cmd/fx/payment_fx"
	"tuitionledger/cmd/fx/public_fx"
	"tuitionledger/cmd/fx/student_fx"
	"tuitionledger/cmd/fx/tutor_fx"
	"tuitionledger/internal/api/controllers"
	"tuitionledger/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	app := fx.New(
		db_fx.Module,
		cache_fx.Module,
		tutor_fx.Module,
		student_fx.Module,
		payment_fx.Module,
		public_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	tutorController *controllers.TutorController,
	studentController *controllers.StudentController,
	paymentController *controllers.PaymentController,
	publicController *controllers.PublicController,
	dashboardController *controllers.DashboardController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, tutorController, studentController, paymentController, publicController, dashboardController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	tutorController *controllers.TutorController,
	studentController *controllers.StudentController,
	paymentController *controllers.PaymentController,
	publicController *controllers.PublicController,
	dashboardController *controllers.DashboardController) {

	api := r.Group("/api")

	// Token-addressed read path and the billing webhook carry their own
	// credentials; everything else requires a bearer token.
	api.GET("/public/:token", publicController.GetPublicView)
	api.POST("/billing/renew", tutorController.RenewSubscription)

	authed := api.Group("")
	authed.Use(middleware.JWTAuthMiddleware())

	authed.POST("/onboarding", tutorController.Onboard)
	authed.GET("/me", tutorController.Me)
	authed.GET("/dashboard", dashboardController.GetMonthSummary)

	students := authed.Group("/students")
	students.GET("", studentController.ListStudents)
	students.POST("", studentController.CreateStudent)
	students.GET("/:id", studentController.GetStudent)
	students.PUT("/:id", studentController.UpdateStudent)
	students.DELETE("/:id", studentController.DeleteStudent)
	students.PUT("/:id/fee", studentController.UpdateFee)
	students.GET("/:id/payments", paymentController.ListPayments)
	students.POST("/:id/payments", paymentController.UpsertPayment)
	students.POST("/:id/payments/:month/toggle", paymentController.TogglePayment)

	payments := authed.Group("/payments")
	payments.PUT("/:id", paymentController.UpdatePayment)
	payments.PUT("/:id/method", paymentController.UpdatePaymentMethod)
}
