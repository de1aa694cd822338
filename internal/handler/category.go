package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/projecthub/internal/domain"
	"github.com/sumire/projecthub/internal/service"
)

// CategoryHandler handles category and entry endpoints.
type CategoryHandler struct {
	categories *service.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categories *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categories: categories}
}

type createCategoryRequest struct {
	Name       string   `json:"name" validate:"required"`
	Attributes []string `json:"attributes"`
}

// Create handles POST /projects/:projectId/category.
func (h *CategoryHandler) Create(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req createCategoryRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := h.categories.Create(c.Request().Context(), userID, c.Param("projectId"),
		req.Name, req.Attributes)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// Get handles GET /categories/:id.
func (h *CategoryHandler) Get(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	detail, err := h.categories.Get(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, detail)
}

// Attributes handles GET /categories/:id/entry.
func (h *CategoryHandler) Attributes(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	attributes, err := h.categories.Attributes(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, attributes)
}

type createEntryRequest struct {
	Values map[string]string `json:"values" validate:"required"`
}

// CreateEntry handles POST /categories/:id/entry.
func (h *CategoryHandler) CreateEntry(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req createEntryRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err := h.categories.CreateEntry(c.Request().Context(), userID, c.Param("id"), req.Values)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

type editCategoryRequest struct {
	Name       *string   `json:"name"`
	Attributes *[]string `json:"attributes"`
}

// Edit handles PUT /categories/:id.
func (h *CategoryHandler) Edit(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	var req editCategoryRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}

	err := h.categories.Edit(c.Request().Context(), userID, c.Param("id"), service.CategoryPatch{
		Name:       req.Name,
		Attributes: req.Attributes,
	})
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete handles DELETE /categories/:id.
func (h *CategoryHandler) Delete(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	if err := h.categories.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AllEntries handles GET /categories/:id/allEntry, where the id is a
// project id.
func (h *CategoryHandler) AllEntries(c echo.Context) error {
	userID, ok := GetUserID(c)
	if !ok {
		return domain.ErrUnauthorized
	}

	entries, err := h.categories.AllEntries(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, entries)
}
