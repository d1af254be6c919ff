package controllers

import (
	"crypto/subtle"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"tuitionledger/internal/models/request_models"
	"tuitionledger/internal/services"
	"tuitionledger/pkg/utils"
)

type TutorController struct {
	tutorService services.TutorServiceInterface
}

func NewTutorController(tutorService services.TutorServiceInterface) *TutorController {
	return &TutorController{
		tutorService: tutorService,
	}
}

// Onboard godoc
// @Summary Complete tutor profile after authentication
// @Description Creates the tutor profile for the authenticated identity, starting a 14-day trial
// @Tags Tutors
// @Accept json
// @Produce json
// @Param request body request_models.OnboardingRequest true "Onboarding Request"
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /onboarding [post]
func (t *TutorController) Onboard(c *gin.Context) {
	var request request_models.OnboardingRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	subject := c.GetString("user_id")
	if subject == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Missing identity")
		return
	}

	tutor, err := t.tutorService.Onboard(c.Request.Context(), subject, request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccessWithCode(c, http.StatusCreated, tutor, "Profile created successfully")
}

// Me returns the caller's tutor profile, or flags that onboarding is still
// pending.
func (t *TutorController) Me(c *gin.Context) {
	subject := c.GetString("user_id")
	if subject == "" {
		utils.RespondError(c, http.StatusUnauthorized, "Missing identity")
		return
	}

	me, err := t.tutorService.Me(c.Request.Context(), subject)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, me, "Profile fetched successfully")
}

// RenewSubscription is the billing-system webhook. It is authenticated by a
// shared secret, not a user token, and is the only path back to active for
// a locked tutor.
func (t *TutorController) RenewSubscription(c *gin.Context) {
	secret := os.Getenv("BILLING_WEBHOOK_SECRET")
	provided := c.GetHeader("X-Billing-Secret")
	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(provided)) != 1 {
		utils.RespondError(c, http.StatusUnauthorized, "Invalid webhook secret")
		return
	}

	var request request_models.BillingRenewalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	tutor, err := t.tutorService.RenewSubscription(c.Request.Context(), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, tutor, "Subscription renewed")
}
