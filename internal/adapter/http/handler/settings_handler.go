package handler

import (
	"taverna-payment-service/internal/adapter/http/dto"
	"taverna-payment-service/internal/adapter/http/middleware"
	"taverna-payment-service/internal/core/domain"
	"taverna-payment-service/internal/core/ports"
	"taverna-payment-service/pkg/apperror"
	"taverna-payment-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// SettingsHandler handles the admin gateway settings endpoints.
type SettingsHandler struct {
	settingsSvc ports.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settingsSvc ports.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsSvc: settingsSvc}
}

// List handles GET /api/v1/admin/gateways.
func (h *SettingsHandler) List(c *gin.Context) {
	gateways, err := h.settingsSvc.ListGateways(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"gateways": gateways})
}

// Toggle handles PUT /api/v1/admin/gateways/:name/toggle.
func (h *SettingsHandler) Toggle(c *gin.Context) {
	var req dto.ToggleGatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	st, err := h.settingsSvc.ToggleGateway(c.Request.Context(), c.Param("name"), *req.Active, middleware.Username(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, st)
}

// Save handles PUT /api/v1/admin/gateways/:name.
func (h *SettingsHandler) Save(c *gin.Context) {
	var req dto.GatewaySettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	st, err := h.settingsSvc.SaveSettings(c.Request.Context(), &domain.GatewaySettings{
		Gateway:     c.Param("name"),
		DisplayName: req.DisplayName,
		Active:      req.Active,
		Sandbox:     req.Sandbox,
		UpdatedBy:   middleware.Username(c),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, st)
}

// Test handles POST /api/v1/admin/gateways/:name/test.
func (h *SettingsHandler) Test(c *gin.Context) {
	if err := h.settingsSvc.TestGateway(c.Request.Context(), c.Param("name")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"reachable": true})
}
