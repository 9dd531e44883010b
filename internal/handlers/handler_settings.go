package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// settingsHandler handles HTTP requests for global settings and backups.
type settingsHandler struct {
	settingsService portssvc.SettingsSvc
	backupService   portssvc.BackupSvc
}

func newSettingsHandler(ss portssvc.SettingsSvc, bs portssvc.BackupSvc) *settingsHandler {
	return &settingsHandler{settingsService: ss, backupService: bs}
}

// registerSettingsRoutes registers the settings and backup routes.
func registerSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvc, backupService portssvc.BackupSvc) {
	h := newSettingsHandler(settingsService, backupService)

	rg.GET("/settings", h.getSettings)
	rg.PATCH("/settings", h.updateSettings)
	rg.POST("/backups/run", h.runBackup)
}

// getSettings godoc
// @Summary Get the global settings
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.SettingsResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// updateSettings godoc
// @Summary Update the global settings
// @Tags settings
// @Accept  json
// @Produce  json
// @Param   settings body dto.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} dto.SettingsResponse
// @Failure 400 {object} map[string]string "Invalid mode, frequency or rate"
// @Security BearerAuth
// @Router /settings [patch]
func (h *settingsHandler) updateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	settings, err := h.settingsService.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to update settings")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettingsResponse(settings))
}

// runBackup godoc
// @Summary Run a backup now
// @Description Dumps all data to a timestamped JSON file regardless of schedule
// @Tags settings
// @Produce  json
// @Success 200 {object} dto.BackupRunResponse
// @Security BearerAuth
// @Router /backups/run [post]
func (h *settingsHandler) runBackup(c *gin.Context) {
	result, err := h.backupService.RunBackup(c.Request.Context(), true)
	if err != nil {
		respondServiceError(c, err, "Failed to run backup")
		return
	}
	c.JSON(http.StatusOK, result)
}
