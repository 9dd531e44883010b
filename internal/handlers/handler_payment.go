package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// paymentHandler handles HTTP requests for planned and realized payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers routes related to client payments.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	projects := rg.Group("/projects/:id")
	{
		projects.GET("/payments/planned", h.listPlanned)
		projects.GET("/payments/realized", h.listRealized)
		projects.POST("/plans", h.createPlan)
		projects.POST("/facts", h.createFact)
	}
	plans := rg.Group("/plans")
	{
		plans.PATCH("/:planID", h.updatePlan)
		plans.DELETE("/:planID", h.deletePlan)
	}
	facts := rg.Group("/facts")
	{
		facts.PATCH("/:factID", h.updateFact)
		facts.DELETE("/:factID", h.deleteFact)
	}
}

// listPlanned godoc
// @Summary List a project's planned payments
// @Description Returns plan rows with a pay date strictly after as_of
// @Tags payments
// @Produce  json
// @Param   id path int true "Project ID"
// @Param   as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} dto.PaymentRowResponse
// @Security BearerAuth
// @Router /projects/{id}/payments/planned [get]
func (h *paymentHandler) listPlanned(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	asOf, ok := parseAsOfQuery(c)
	if !ok {
		return
	}
	plans, err := h.paymentService.ListPlannedPayments(c.Request.Context(), projectID, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to list planned payments")
		return
	}
	rows := make([]dto.PaymentRowResponse, 0, len(plans))
	for i := range plans {
		rows = append(rows, dto.ToPlanRowResponse(&plans[i]))
	}
	c.JSON(http.StatusOK, rows)
}

// listRealized godoc
// @Summary List a project's realized payments
// @Description Returns stored facts merged with plan rows already due at as_of
// @Tags payments
// @Produce  json
// @Param   id path int true "Project ID"
// @Param   as_of query string false "Reference date (YYYY-MM-DD), defaults to today"
// @Success 200 {array} dto.PaymentRowResponse
// @Security BearerAuth
// @Router /projects/{id}/payments/realized [get]
func (h *paymentHandler) listRealized(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	asOf, ok := parseAsOfQuery(c)
	if !ok {
		return
	}
	rows, err := h.paymentService.ListRealizedPayments(c.Request.Context(), projectID, asOf)
	if err != nil {
		respondServiceError(c, err, "Failed to list realized payments")
		return
	}
	c.JSON(http.StatusOK, rows)
}

// createPlan godoc
// @Summary Create a planned payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   id path int true "Project ID"
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentRowResponse
// @Security BearerAuth
// @Router /projects/{id}/plans [post]
func (h *paymentHandler) createPlan(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	plan, err := h.paymentService.CreatePlan(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create plan")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPlanRowResponse(plan))
}

// updatePlan godoc
// @Summary Update a planned payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   planID path int true "Plan ID"
// @Param   payment body dto.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} dto.PaymentRowResponse
// @Security BearerAuth
// @Router /plans/{planID} [patch]
func (h *paymentHandler) updatePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return
	}
	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	plan, err := h.paymentService.UpdatePlan(c.Request.Context(), planID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update plan")
		return
	}
	c.JSON(http.StatusOK, dto.ToPlanRowResponse(plan))
}

// deletePlan godoc
// @Summary Delete a planned payment
// @Tags payments
// @Param   planID path int true "Plan ID"
// @Success 204 "Deleted"
// @Security BearerAuth
// @Router /plans/{planID} [delete]
func (h *paymentHandler) deletePlan(c *gin.Context) {
	planID, ok := parseIDParam(c, "planID")
	if !ok {
		return
	}
	if err := h.paymentService.DeletePlan(c.Request.Context(), planID); err != nil {
		respondServiceError(c, err, "Failed to delete plan")
		return
	}
	c.Status(http.StatusNoContent)
}

// createFact godoc
// @Summary Create a realized payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   id path int true "Project ID"
// @Param   payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentRowResponse
// @Security BearerAuth
// @Router /projects/{id}/facts [post]
func (h *paymentHandler) createFact(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	fact, err := h.paymentService.CreateFact(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create fact")
		return
	}
	c.JSON(http.StatusCreated, dto.ToFactRowResponse(fact))
}

// updateFact godoc
// @Summary Update a realized payment
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   factID path int true "Fact ID"
// @Param   payment body dto.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} dto.PaymentRowResponse
// @Security BearerAuth
// @Router /facts/{factID} [patch]
func (h *paymentHandler) updateFact(c *gin.Context) {
	factID, ok := parseIDParam(c, "factID")
	if !ok {
		return
	}
	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	fact, err := h.paymentService.UpdateFact(c.Request.Context(), factID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update fact")
		return
	}
	c.JSON(http.StatusOK, dto.ToFactRowResponse(fact))
}

// deleteFact godoc
// @Summary Delete a realized payment
// @Tags payments
// @Param   factID path int true "Fact ID"
// @Success 204 "Deleted"
// @Security BearerAuth
// @Router /facts/{factID} [delete]
func (h *paymentHandler) deleteFact(c *gin.Context) {
	factID, ok := parseIDParam(c, "factID")
	if !ok {
		return
	}
	if err := h.paymentService.DeleteFact(c.Request.Context(), factID); err != nil {
		respondServiceError(c, err, "Failed to delete fact")
		return
	}
	c.Status(http.StatusNoContent)
}
