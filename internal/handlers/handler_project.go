package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	portssvc "github.com/muhapauka-rgb/CXEMA-V7/internal/core/ports/services"
	"github.com/muhapauka-rgb/CXEMA-V7/internal/dto"
)

// projectHandler handles HTTP requests related to projects.
type projectHandler struct {
	projectService portssvc.ProjectSvcFacade
}

func newProjectHandler(ps portssvc.ProjectSvcFacade) *projectHandler {
	return &projectHandler{projectService: ps}
}

// RegisterProjectRoutes registers routes related to projects.
func RegisterProjectRoutes(rg *gin.RouterGroup, projectService portssvc.ProjectSvcFacade) {
	h := newProjectHandler(projectService)

	projects := rg.Group("/projects")
	{
		projects.POST("", h.createProject)
		projects.GET("", h.listProjects)
		projects.GET("/:id", h.getProject)
		projects.PATCH("/:id", h.updateProject)
		projects.POST("/:id/close", h.closeProject)
		projects.DELETE("/:id", h.deleteProject)
	}
}

// createProject godoc
// @Summary Create a new project
// @Description Creates a project with its default expense groups
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   project body dto.CreateProjectRequest true "Project details"
// @Success 201 {object} dto.ProjectResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Security BearerAuth
// @Router /projects [post]
func (h *projectHandler) createProject(c *gin.Context) {
	var req dto.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, err, "Failed to create project")
		return
	}
	c.JSON(http.StatusCreated, dto.ToProjectResponse(project))
}

// listProjects godoc
// @Summary List projects
// @Description Lists projects, optionally including closed ones
// @Tags projects
// @Produce  json
// @Param   include_closed query bool false "Include closed projects"
// @Success 200 {array} dto.ProjectResponse
// @Security BearerAuth
// @Router /projects [get]
func (h *projectHandler) listProjects(c *gin.Context) {
	includeClosed := c.Query("include_closed") == "true"

	projects, err := h.projectService.ListProjects(c.Request.Context(), includeClosed)
	if err != nil {
		respondServiceError(c, err, "Failed to list projects")
		return
	}
	c.JSON(http.StatusOK, dto.ToListProjectResponse(projects))
}

// getProject godoc
// @Summary Get a project with its financials
// @Description Retrieves one project together with its computed lifetime totals
// @Tags projects
// @Produce  json
// @Param   id path int true "Project ID"
// @Success 200 {object} dto.ProjectDetailResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [get]
func (h *projectHandler) getProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	project, err := h.projectService.GetProjectByID(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err, "Failed to retrieve project")
		return
	}
	financials, err := h.projectService.GetProjectFinancials(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err, "Failed to compute project financials")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectDetailResponse(project, financials))
}

// updateProject godoc
// @Summary Update a project
// @Description Applies a partial update to a project
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path int true "Project ID"
// @Param   project body dto.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} dto.ProjectResponse
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [patch]
func (h *projectHandler) updateProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	project, err := h.projectService.UpdateProject(c.Request.Context(), projectID, req)
	if err != nil {
		respondServiceError(c, err, "Failed to update project")
		return
	}
	c.JSON(http.StatusOK, dto.ToProjectResponse(project))
}

// closeProject godoc
// @Summary Close a project
// @Description Marks a project closed as of the given day (today when omitted)
// @Tags projects
// @Accept  json
// @Produce  json
// @Param   id path int true "Project ID"
// @Param   body body dto.CloseProjectRequest false "Closing day"
// @Success 204 "Closed"
// @Failure 404 {object} map[string]string "Project not found"
// @Failure 409 {object} map[string]string "Already closed"
// @Security BearerAuth
// @Router /projects/{id}/close [post]
func (h *projectHandler) closeProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.CloseProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	var closedAt *time.Time
	if req.ClosedAt != "" {
		d, err := time.Parse("2006-01-02", req.ClosedAt)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid closedAt date"})
			return
		}
		closedAt = &d
	}

	if err := h.projectService.CloseProject(c.Request.Context(), projectID, closedAt); err != nil {
		respondServiceError(c, err, "Failed to close project")
		return
	}
	c.Status(http.StatusNoContent)
}

// deleteProject godoc
// @Summary Delete a project
// @Description Removes a project and everything under it
// @Tags projects
// @Param   id path int true "Project ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Project not found"
// @Security BearerAuth
// @Router /projects/{id} [delete]
func (h *projectHandler) deleteProject(c *gin.Context) {
	projectID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.projectService.DeleteProject(c.Request.Context(), projectID); err != nil {
		respondServiceError(c, err, "Failed to delete project")
		return
	}
	c.Status(http.StatusNoContent)
}
