package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/muhapauka-rgb/CXEMA-V7/internal/core/domain"
	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// reportingHandler handles the read-only reporting endpoints.
type reportingHandler struct {
	overviewService portssvc.OverviewSvc
	lifeService     portssvc.LifeSvc
	discountService portssvc.DiscountSvc
	estimateService portssvc.EstimateSvc
}

func newReportingHandler(ov portssvc.OverviewSvc, life portssvc.LifeSvc, disc portssvc.DiscountSvc, est portssvc.EstimateSvc) *reportingHandler {
	return &reportingHandler{
		overviewService: ov,
		lifeService:     life,
		discountService: disc,
		estimateService: est,
	}
}

// registerReportingRoutes registers the reporting routes.
func registerReportingRoutes(rg *gin.RouterGroup, services *portssvc.ServiceContainer) {
	h := newReportingHandler(services.Overview, services.Life, services.Discount, services.Estimate)

	rg.GET("/overview", h.getOverview)
	rg.GET("/overview/map", h.getOverviewMap)
	rg.GET("/life", h.getLifeCoverage)
	rg.GET("/discounts", h.getDiscountSummary)
	rg.GET("/projects/:id/estimate", h.getEstimate)
}

// getOverview godoc
// @Summary Get the portfolio snapshot
// @Description Rolls up every active project's financial state as of a day
// @Tags reporting
// @Produce  json
// @Param   as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.SnapshotResponse
// @Security BearerAuth
// @Router /overview [get]
func (h *reportingHandler) getOverview(c *gin.Context) {
	asOf, ok := parseAsOfQuery(c)
	if !ok {
		return
	}
	snapshot, err := h.overviewService.GetSnapshot(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build snapshot")
		return
	}
	c.JSON(http.StatusOK, dto.ToSnapshotResponse(snapshot))
}

// getOverviewMap godoc
// @Summary Get the snapshot as a mind-map tree
// @Description Renders the portfolio snapshot as nested title nodes
// @Tags reporting
// @Produce  json
// @Param   as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.OverviewMapResponse
// @Security BearerAuth
// @Router /overview/map [get]
func (h *reportingHandler) getOverviewMap(c *gin.Context) {
	asOf, ok := parseAsOfQuery(c)
	if !ok {
		return
	}
	snapshot, err := h.overviewService.GetSnapshot(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build snapshot")
		return
	}
	c.JSON(http.StatusOK, dto.ToOverviewMapResponse(snapshot))
}

// getLifeCoverage godoc
// @Summary Get life coverage for a month
// @Description Projects accumulated pocket income onto a monthly draw target
// @Tags reporting
// @Produce  json
// @Param   month query string true "Selected month (YYYY-MM)"
// @Param   target query string true "Monthly draw target amount"
// @Success 200 {object} dto.LifeCoverageResponse
// @Failure 400 {object} map[string]string "Invalid month or target"
// @Security BearerAuth
// @Router /life [get]
func (h *reportingHandler) getLifeCoverage(c *gin.Context) {
	month, err := domain.ParseMonthKey(c.Query("month"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month, expected YYYY-MM"})
		return
	}
	target, err := decimal.NewFromString(c.Query("target"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid target amount"})
		return
	}
	coverage, err := h.lifeService.GetLifeCoverage(c.Request.Context(), month, target)
	if err != nil {
		respondServiceError(c, err, "Failed to compute life coverage")
		return
	}
	c.JSON(http.StatusOK, dto.ToLifeCoverageResponse(coverage))
}

// getDiscountSummary godoc
// @Summary Get the discount summary
// @Description Lists discounts already in effect at a day, grouped by counterparty
// @Tags reporting
// @Produce  json
// @Param   as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} dto.DiscountSummaryResponse
// @Security BearerAuth
// @Router /discounts [get]
func (h *reportingHandler) getDiscountSummary(c *gin.Context) {
	asOf, ok := parseAsOfQuery(c)
	if !ok {
		return
	}
	summary, err := h.discountService.GetDiscountSummary(c.Request.Context(), asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to build discount summary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

// getEstimate godoc
// @Summary Get a project's printable estimate
// @Tags reporting
// @Produce  json
// @Param   id path int true "Project ID"
// @Success 200 {object} dto.EstimateResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/estimate [get]
func (h *reportingHandler) getEstimate(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	estimate, err := h.estimateService.GetEstimate(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err, "Failed to build estimate")
		return
	}
	c.JSON(http.StatusOK, estimate)
}
