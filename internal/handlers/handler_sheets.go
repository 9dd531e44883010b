package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// sheetsHandler handles HTTP requests for spreadsheet synchronization.
type sheetsHandler struct {
	sheetsService portssvc.SheetsSvc
}

func newSheetsHandler(ss portssvc.SheetsSvc) *sheetsHandler {
	return &sheetsHandler{sheetsService: ss}
}

// registerSheetsRoutes registers the spreadsheet sync routes.
func registerSheetsRoutes(rg *gin.RouterGroup, sheetsService portssvc.SheetsSvc) {
	h := newSheetsHandler(sheetsService)

	sheet := rg.Group("/projects/:id/sheet")
	{
		sheet.GET("", h.getStatus)
		sheet.POST("/link", h.linkSheet)
		sheet.POST("/publish", h.publish)
		sheet.POST("/import/preview", h.previewImport)
		sheet.POST("/import/apply", h.applyImport)
	}
}

// getStatus godoc
// @Summary Get a project's sheet link status
// @Tags sheets
// @Produce  json
// @Param   id path int true "Project ID"
// @Success 200 {object} dto.SheetStatusResponse
// @Security BearerAuth
// @Router /projects/{id}/sheet [get]
func (h *sheetsHandler) getStatus(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	status, err := h.sheetsService.GetStatus(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve sheet status")
		return
	}
	c.JSON(http.StatusOK, status)
}

// linkSheet godoc
// @Summary Link a project to a spreadsheet tab
// @Tags sheets
// @Accept  json
// @Produce  json
// @Param   id path int true "Project ID"
// @Param   link body dto.LinkSheetRequest true "Spreadsheet and tab"
// @Success 200 {object} dto.SheetStatusResponse
// @Security BearerAuth
// @Router /projects/{id}/sheet/link [post]
func (h *sheetsHandler) linkSheet(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.LinkSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	status, err := h.sheetsService.LinkSheet(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to link sheet")
		return
	}
	c.JSON(http.StatusOK, status)
}

// publish godoc
// @Summary Publish a project's estimate to its linked sheet
// @Tags sheets
// @Produce  json
// @Param   id path int true "Project ID"
// @Success 200 {object} dto.PublishSheetResponse
// @Failure 409 {object} map[string]string "Project is not linked"
// @Security BearerAuth
// @Router /projects/{id}/sheet/publish [post]
func (h *sheetsHandler) publish(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	result, err := h.sheetsService.Publish(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err, "Failed to publish sheet")
		return
	}
	c.JSON(http.StatusOK, result)
}

// previewImport godoc
// @Summary Preview sheet changes before importing
// @Description Diffs the linked sheet against stored items and returns a confirm token
// @Tags sheets
// @Produce  json
// @Param   id path int true "Project ID"
// @Success 200 {object} dto.ImportPreviewResponse
// @Failure 409 {object} map[string]string "Project is not linked"
// @Security BearerAuth
// @Router /projects/{id}/sheet/import/preview [post]
func (h *sheetsHandler) previewImport(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	preview, err := h.sheetsService.PreviewImport(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err, "Failed to preview import")
		return
	}
	c.JSON(http.StatusOK, preview)
}

// applyImport godoc
// @Summary Apply previewed sheet changes
// @Description Consumes a one-time confirm token and writes the previewed changes
// @Tags sheets
// @Accept  json
// @Produce  json
// @Param   id path int true "Project ID"
// @Param   confirm body dto.ImportApplyRequest true "Confirm token from the preview"
// @Success 200 {object} dto.ImportApplyResponse
// @Failure 409 {object} map[string]string "Token expired, used or bound to another project"
// @Security BearerAuth
// @Router /projects/{id}/sheet/import/apply [post]
func (h *sheetsHandler) applyImport(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.ImportApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	result, err := h.sheetsService.ApplyImport(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to apply import")
		return
	}
	c.JSON(http.StatusOK, result)
}
