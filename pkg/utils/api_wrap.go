package utils

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Reason  string      `json:"reason,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	if v, ok := c.Get("trace_id"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	RespondSuccessWithCode(c, http.StatusOK, data, message)
}

func RespondSuccessWithCode(c *gin.Context, code int, data interface{}, message string) {
	c.JSON(code, APIResponse{
		Status:  "success",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func respondDenied(c *gin.Context, reason string, message string) {
	c.JSON(http.StatusForbidden, APIResponse{
		Status:  "error",
		Code:    http.StatusForbidden,
		Message: message,
		Reason:  reason,
		TraceID: traceID(c),
	})
}

// HandleServiceError maps service-layer sentinel errors to HTTP responses.
// Entitlement denials carry a machine-readable reason so clients can show
// differentiated upgrade prompts; all of them refuse the write the same way.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTutorNotFound),
		errors.Is(err, ErrStudentNotFound),
		errors.Is(err, ErrPaymentNotFound):
		RespondError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidMonth),
		errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidName),
		errors.Is(err, ErrMethodRequired),
		errors.Is(err, ErrInvalidMethod),
		errors.Is(err, ErrInvalidStatus),
		errors.Is(err, ErrInvalidPlan):
		RespondError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrProfileExists):
		RespondError(c, http.StatusBadRequest, "Profile already exists")
	case errors.Is(err, ErrOnboardingRequired):
		respondDenied(c, "ONBOARDING_REQUIRED", "Please complete your profile first")
	case errors.Is(err, ErrTrialExpired):
		respondDenied(c, "TRIAL_EXPIRED", "Your trial period has ended. Please subscribe to continue.")
	case errors.Is(err, ErrPlanExpired):
		respondDenied(c, "PLAN_EXPIRED", "Your subscription has expired. Please renew to continue.")
	case errors.Is(err, ErrSubscriptionLocked):
		respondDenied(c, "SUBSCRIPTION_LOCKED", "Your subscription has expired. Please renew to continue adding or updating data.")
	case errors.Is(err, ErrStudentLimitHit):
		respondDenied(c, "STUDENT_LIMIT_REACHED", "You have reached your student limit. Please upgrade your plan to add more.")
	case errors.Is(err, ErrPaymentConflict):
		RespondError(c, http.StatusConflict, "Conflicting write, please retry")
	case errors.Is(err, ErrDatabaseError):
		log.Printf("Database error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	default:
		log.Printf("Unknown error: %v", err)
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
