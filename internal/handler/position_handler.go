package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/service"
)

// PositionHandler handles position endpoints.
type PositionHandler struct {
	positionService service.PositionService
}

// NewPositionHandler creates a new position handler.
func NewPositionHandler(positionService service.PositionService) *PositionHandler {
	return &PositionHandler{positionService: positionService}
}

// List godoc
// @Summary List positions
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search term"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} PagedResponse
// @Router /positions [get]
func (h *PositionHandler) List(c echo.Context) error {
	params := listParams(c)
	items, total, err := h.positionService.List(c.Request().Context(), params)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, paged("positions retrieved", items, total, params))
}

// Get godoc
// @Summary Get a position
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Position ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /positions/{id} [get]
func (h *PositionHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.positionService.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "position retrieved", Data: item})
}

// Create godoc
// @Summary Create a position
// @Tags positions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreatePositionInput true "Position data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /positions [post]
func (h *PositionHandler) Create(c echo.Context) error {
	var input service.CreatePositionInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	item, err := h.positionService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "position created", Data: item})
}

// Update godoc
// @Summary Update a position
// @Tags positions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Position ID"
// @Param request body service.UpdatePositionInput true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /positions/{id} [put]
func (h *PositionHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input service.UpdatePositionInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	item, err := h.positionService.Update(c.Request().Context(), id, input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "position updated", Data: item})
}

// Delete godoc
// @Summary Deactivate a position
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Position ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /positions/{id} [delete]
func (h *PositionHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.positionService.Delete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "position deactivated"})
}

// ToggleActive godoc
// @Summary Toggle a position's active flag
// @Tags positions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Position ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /positions/{id}/toggle-active [post]
func (h *PositionHandler) ToggleActive(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.positionService.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "position active flag toggled", Data: item})
}
