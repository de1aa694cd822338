package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/projecthub/internal/domain"
	"github.com/sumire/projecthub/internal/service"
)

// CollaboratorHandler handles project membership endpoints.
type CollaboratorHandler struct {
	collaborators *service.CollaboratorService
}

// NewCollaboratorHandler creates a new CollaboratorHandler.
func NewCollaboratorHandler(collaborators *service.CollaboratorService) *CollaboratorHandler {
	return &CollaboratorHandler{collaborators: collaborators}
}

type inviteRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Permission string `json:"permission" validate:"required"`
}

// Invite handles POST /projects/:projectId/collaborator.
func (h *CollaboratorHandler) Invite(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req inviteRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.collaborators.Invite(c.Request().Context(), userID, c.Param("projectId"),
		req.Email, domain.PermissionName(req.Permission))
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// List handles GET /projects/:projectId/collaborator.
func (h *CollaboratorHandler) List(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	views, err := h.collaborators.List(c.Request().Context(), userID, c.Param("projectId"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, views)
}
