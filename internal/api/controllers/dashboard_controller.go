package controllers

import (
	"github.com/gin-gonic/gin"

	"tuitionledger/internal/services"
	"tuitionledger/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	tutorService     services.TutorServiceInterface
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, tutorService services.TutorServiceInterface) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		tutorService:     tutorService,
	}
}

// GetMonthSummary returns the month's collection summary for the caller's
// students. Month defaults to the current calendar month.
func (d *DashboardController) GetMonthSummary(c *gin.Context) {
	tutor, ok := requireTutor(c, d.tutorService)
	if !ok {
		return
	}

	summary, err := d.dashboardService.BuildMonthSummary(c.Request.Context(), tutor, c.Query("month"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, summary, "Dashboard fetched successfully")
}
