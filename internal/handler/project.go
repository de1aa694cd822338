package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sumire/projecthub/internal/domain"
	"github.com/sumire/projecthub/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

// List handles GET /projects.
func (h *ProjectHandler) List(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	summaries, err := h.projects.List(c.Request().Context(), userID,
		c.QueryParam("searchQuery"), c.QueryParam("sortBy"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, summaries)
}

type createProjectRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description"`
	Template    string     `json:"template" validate:"required"`
	Location    string     `json:"location" validate:"required"`
	StartedAt   *time.Time `json:"startedAt"`
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := h.projects.Create(c.Request().Context(), userID, service.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Template:    req.Template,
		Location:    req.Location,
		StartedAt:   req.StartedAt,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Detail handles GET /projects/:projectId.
func (h *ProjectHandler) Detail(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	detail, err := h.projects.Detail(c.Request().Context(), userID, c.Param("projectId"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, detail)
}

type archiveRequest struct {
	IsArchived *bool `json:"isArchived" validate:"required"`
}

// Archive handles PATCH /projects/:projectId/archived.
func (h *ProjectHandler) Archive(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req archiveRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.projects.SetArchived(c.Request().Context(), userID, c.Param("projectId"), *req.IsArchived); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type deleteRequest struct {
	IsDeleted *bool `json:"isDeleted" validate:"required"`
}

// Delete handles PATCH /projects/:projectId/deleted.
func (h *ProjectHandler) Delete(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.projects.SetDeleted(c.Request().Context(), userID, c.Param("projectId"), *req.IsDeleted); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type editProjectRequest struct {
	Name        *string    `json:"name"`
	Description *string    `json:"description"`
	StartedAt   *time.Time `json:"startedAt"`
	EndedAt     *time.Time `json:"endedAt"`
}

// Edit handles PATCH /projects/:projectId. The editable fields are a closed
// set; audit fields are stamped server-side and cannot be supplied.
func (h *ProjectHandler) Edit(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req editProjectRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}

	err := h.projects.Edit(c.Request().Context(), userID, c.Param("projectId"), domain.ProjectPatch{
		Name:        req.Name,
		Description: req.Description,
		StartedAt:   req.StartedAt,
		EndedAt:     req.EndedAt,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
