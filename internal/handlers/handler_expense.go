package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// expenseHandler handles HTTP requests for groups, items and adjustments.
type expenseHandler struct {
	expenseService portssvc.ExpenseSvcFacade
}

func newExpenseHandler(es portssvc.ExpenseSvcFacade) *expenseHandler {
	return &expenseHandler{expenseService: es}
}

// registerExpenseRoutes registers routes related to expense structures.
func registerExpenseRoutes(rg *gin.RouterGroup, expenseService portssvc.ExpenseSvcFacade) {
	h := newExpenseHandler(expenseService)

	projects := rg.Group("/projects/:id")
	{
		projects.GET("/expenses", h.getExpenseTree)
		projects.POST("/groups", h.createGroup)
		projects.POST("/items", h.createItem)
	}
	groups := rg.Group("/groups")
	{
		groups.PATCH("/:groupID", h.updateGroup)
		groups.DELETE("/:groupID", h.deleteGroup)
	}
	items := rg.Group("/items")
	{
		items.GET("/:itemID", h.getItem)
		items.PATCH("/:itemID", h.updateItem)
		items.DELETE("/:itemID", h.deleteItem)
		items.GET("/:itemID/adjustment", h.getAdjustment)
		items.PUT("/:itemID/adjustment", h.upsertAdjustment)
		items.DELETE("/:itemID/adjustment", h.deleteAdjustment)
	}
}

// getExpenseTree godoc
// @Summary Get a project's expense tree
// @Description Returns groups with their items nested one level deep
// @Tags expenses
// @Produce  json
// @Param   id path int true "Project ID"
// @Success 200 {array} dto.GroupTreeResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /projects/{id}/expenses [get]
func (h *expenseHandler) getExpenseTree(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	groups, err := h.expenseService.ListGroups(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err, "Failed to list groups")
		return
	}
	items, err := h.expenseService.ListItems(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err, "Failed to list items")
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupTreeResponse(groups, items))
}

// createGroup godoc
// @Summary Create an expense group
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   id path int true "Project ID"
// @Param   group body dto.CreateGroupRequest true "Group details"
// @Success 201 {object} dto.GroupResponse
// @Security BearerAuth
// @Router /projects/{id}/groups [post]
func (h *expenseHandler) createGroup(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	group, err := h.expenseService.CreateGroup(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create group")
		return
	}
	c.JSON(http.StatusCreated, dto.ToGroupResponse(group))
}

// updateGroup godoc
// @Summary Update an expense group
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   groupID path int true "Group ID"
// @Param   group body dto.UpdateGroupRequest true "Fields to update"
// @Success 200 {object} dto.GroupResponse
// @Security BearerAuth
// @Router /groups/{groupID} [patch]
func (h *expenseHandler) updateGroup(c *gin.Context) {
	groupID, ok := parseIDParam(c, "groupID")
	if !ok {
		return
	}
	var req dto.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	group, err := h.expenseService.UpdateGroup(c.Request.Context(), groupID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update group")
		return
	}
	c.JSON(http.StatusOK, dto.ToGroupResponse(group))
}

// deleteGroup godoc
// @Summary Delete an expense group with its items
// @Tags expenses
// @Param   groupID path int true "Group ID"
// @Success 204 "Deleted"
// @Security BearerAuth
// @Router /groups/{groupID} [delete]
func (h *expenseHandler) deleteGroup(c *gin.Context) {
	groupID, ok := parseIDParam(c, "groupID")
	if !ok {
		return
	}
	if err := h.expenseService.DeleteGroup(c.Request.Context(), groupID); err != nil {
		respondServiceError(c, err, "Failed to delete group")
		return
	}
	c.Status(http.StatusNoContent)
}

// createItem godoc
// @Summary Create an expense item
// @Description Creates a top-level item or a child under a top-level parent
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   id path int true "Project ID"
// @Param   item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input or nesting rule violated"
// @Security BearerAuth
// @Router /projects/{id}/items [post]
func (h *expenseHandler) createItem(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	item, err := h.expenseService.CreateItem(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to create item")
		return
	}
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// getItem godoc
// @Summary Get an expense item
// @Tags expenses
// @Produce  json
// @Param   itemID path int true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Security BearerAuth
// @Router /items/{itemID} [get]
func (h *expenseHandler) getItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemID")
	if !ok {
		return
	}
	item, err := h.expenseService.GetItemByID(c.Request.Context(), itemID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// updateItem godoc
// @Summary Update an expense item
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   itemID path int true "Item ID"
// @Param   item body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input or nesting rule violated"
// @Security BearerAuth
// @Router /items/{itemID} [patch]
func (h *expenseHandler) updateItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemID")
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	item, err := h.expenseService.UpdateItem(c.Request.Context(), itemID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update item")
		return
	}
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// deleteItem godoc
// @Summary Delete an expense item and its children
// @Tags expenses
// @Param   itemID path int true "Item ID"
// @Success 204 "Deleted"
// @Security BearerAuth
// @Router /items/{itemID} [delete]
func (h *expenseHandler) deleteItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemID")
	if !ok {
		return
	}
	if err := h.expenseService.DeleteItem(c.Request.Context(), itemID); err != nil {
		respondServiceError(c, err, "Failed to delete item")
		return
	}
	c.Status(http.StatusNoContent)
}

// getAdjustment godoc
// @Summary Get an item's billing adjustment
// @Tags expenses
// @Produce  json
// @Param   itemID path int true "Item ID"
// @Success 200 {object} dto.AdjustmentResponse
// @Success 204 "No adjustment"
// @Security BearerAuth
// @Router /items/{itemID}/adjustment [get]
func (h *expenseHandler) getAdjustment(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemID")
	if !ok {
		return
	}
	adj, err := h.expenseService.GetAdjustment(c.Request.Context(), itemID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve adjustment")
		return
	}
	if adj == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adj))
}

// upsertAdjustment godoc
// @Summary Create or replace an item's billing adjustment
// @Tags expenses
// @Accept  json
// @Produce  json
// @Param   itemID path int true "Item ID"
// @Param   adjustment body dto.UpsertAdjustmentRequest true "Adjustment details"
// @Success 200 {object} dto.AdjustmentResponse
// @Security BearerAuth
// @Router /items/{itemID}/adjustment [put]
func (h *expenseHandler) upsertAdjustment(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemID")
	if !ok {
		return
	}
	var req dto.UpsertAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	adj, err := h.expenseService.UpsertAdjustment(c.Request.Context(), itemID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to upsert adjustment")
		return
	}
	c.JSON(http.StatusOK, dto.ToAdjustmentResponse(adj))
}

// deleteAdjustment godoc
// @Summary Delete an item's billing adjustment
// @Tags expenses
// @Param   itemID path int true "Item ID"
// @Success 204 "Deleted"
// @Security BearerAuth
// @Router /items/{itemID}/adjustment [delete]
func (h *expenseHandler) deleteAdjustment(c *gin.Context) {
	itemID, ok := parseIDParam(c, "itemID")
	if !ok {
		return
	}
	if err := h.expenseService.DeleteAdjustment(c.Request.Context(), itemID); err != nil {
		respondServiceError(c, err, "Failed to delete adjustment")
		return
	}
	c.Status(http.StatusNoContent)
}
