package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tuitionledger/internal/models/request_models"
	"tuitionledger/internal/services"
	"tuitionledger/pkg/utils"
)

type PaymentController struct {
	paymentService services.PaymentServiceInterface
	tutorService   services.TutorServiceInterface
}

func NewPaymentController(paymentService services.PaymentServiceInterface, tutorService services.TutorServiceInterface) *PaymentController {
	return &PaymentController{
		paymentService: paymentService,
		tutorService:   tutorService,
	}
}

func (p *PaymentController) ListPayments(c *gin.Context) {
	tutor, ok := requireTutor(c, p.tutorService)
	if !ok {
		return
	}

	payments, err := p.paymentService.ListPayments(c.Request.Context(), tutor, c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, payments, "Payments fetched successfully")
}

// UpsertPayment godoc
// @Summary Record or update a month's payment
// @Description Creates the ledger record for the month if absent (current or advance), otherwise applies a partial update
// @Tags Payments
// @Accept json
// @Produce json
// @Param id path string true "Student ID"
// @Param request body request_models.UpsertPaymentRequest true "Upsert Payment Request"
// @Success 200 {object} utils.APIResponse
// @Success 201 {object} utils.APIResponse
// @Security BearerAuth
// @Router /students/{id}/payments [post]
func (p *PaymentController) UpsertPayment(c *gin.Context) {
	var request request_models.UpsertPaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	tutor, ok := requireTutor(c, p.tutorService)
	if !ok {
		return
	}

	result, err := p.paymentService.UpsertPayment(c.Request.Context(), tutor, c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	if result.Created {
		utils.RespondSuccessWithCode(c, http.StatusCreated, result, "Payment record created")
		return
	}
	utils.RespondSuccess(c, result, "Payment record updated")
}

func (p *PaymentController) UpdatePayment(c *gin.Context) {
	var request request_models.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	tutor, ok := requireTutor(c, p.tutorService)
	if !ok {
		return
	}

	payment, err := p.paymentService.UpdatePayment(c.Request.Context(), tutor, c.Param("id"), request)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, payment, "Payment updated successfully")
}

func (p *PaymentController) UpdatePaymentMethod(c *gin.Context) {
	var request request_models.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}

	tutor, ok := requireTutor(c, p.tutorService)
	if !ok {
		return
	}

	payment, err := p.paymentService.UpdatePaymentMethod(c.Request.Context(), tutor, c.Param("id"), request.Method)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, payment, "Payment method updated")
}

// TogglePayment flips a month between Paid and Pending. The method query
// parameter is only needed when the flip lands on Paid and the record has
// no method yet.
func (p *PaymentController) TogglePayment(c *gin.Context) {
	tutor, ok := requireTutor(c, p.tutorService)
	if !ok {
		return
	}

	var method *string
	if m := c.Query("method"); m != "" {
		method = &m
	}

	payment, err := p.paymentService.TogglePayment(c.Request.Context(), tutor, c.Param("id"), c.Param("month"), method)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, payment, "Payment status toggled")
}
