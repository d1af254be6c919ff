package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tuitionledger/internal/services"
	"tuitionledger/pkg/utils"
)

type PublicController struct {
	publicService services.PublicServiceInterface
}

func NewPublicController(publicService services.PublicServiceInterface) *PublicController {
	return &PublicController{
		publicService: publicService,
	}
}

// GetPublicView godoc
// @Summary Shared payment view
// @Description Read-only payment history addressed by a student's public token; no authentication
// @Tags Public
// @Produce json
// @Param token path string true "Public token"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /public/{token} [get]
func (p *PublicController) GetPublicView(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		utils.RespondError(c, http.StatusNotFound, "Not found")
		return
	}

	view, err := p.publicService.GetPublicView(c.Request.Context(), token)
	if errors.Is(err, utils.ErrDatabaseError) {
		utils.HandleServiceError(c, err)
		return
	}
	if err != nil {
		// Uniform outcome for every resolution failure.
		utils.RespondError(c, http.StatusNotFound, "Not found")
		return
	}

	utils.RespondSuccess(c, view, "Payment view fetched successfully")
}
