package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/projecthub/internal/domain"
	"github.com/sumire/projecthub/internal/service"
)

// LocationHandler handles the location reference-data endpoints.
type LocationHandler struct {
	locations *service.LocationService
}

// NewLocationHandler creates a new LocationHandler.
func NewLocationHandler(locations *service.LocationService) *LocationHandler {
	return &LocationHandler{locations: locations}
}

type createLocationRequest struct {
	Name      string `json:"name" validate:"required"`
	LocalName string `json:"localName" validate:"required"`
}

// Create handles POST /locations.
func (h *LocationHandler) Create(c echo.Context) error {
	var req createLocationRequest
	if err := c.Bind(&req); err != nil {
		return domain.ErrInvalidInput
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if _, err := h.locations.Create(c.Request().Context(), req.Name, req.LocalName); err != nil {
		return err
	}
	return c.NoContent(http.StatusCreated)
}

// List handles GET /locations.
func (h *LocationHandler) List(c echo.Context) error {
	locations, err := h.locations.List(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, locations)
}
