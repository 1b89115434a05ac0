package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/service"
)

// ClientHandler handles client endpoints.
type ClientHandler struct {
	clientService service.ClientService
}

// NewClientHandler creates a new client handler.
func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search term"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} PagedResponse
// @Router /clients [get]
func (h *ClientHandler) List(c echo.Context) error {
	params := listParams(c)
	items, total, err := h.clientService.List(c.Request().Context(), params)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, paged("clients retrieved", items, total, params))
}

// Get godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /clients/{id} [get]
func (h *ClientHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.clientService.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "client retrieved", Data: item})
}

// Create godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateClientInput true "Client data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /clients [post]
func (h *ClientHandler) Create(c echo.Context) error {
	var input service.CreateClientInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	item, err := h.clientService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "client created", Data: item})
}

// Update godoc
// @Summary Update a client
// @Tags clients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Param request body service.UpdateClientInput true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /clients/{id} [put]
func (h *ClientHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input service.UpdateClientInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	item, err := h.clientService.Update(c.Request().Context(), id, input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "client updated", Data: item})
}

// Delete godoc
// @Summary Deactivate a client
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /clients/{id} [delete]
func (h *ClientHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.clientService.Delete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "client deactivated"})
}

// ToggleActive godoc
// @Summary Toggle a client's active flag
// @Tags clients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Client ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /clients/{id}/toggle-active [post]
func (h *ClientHandler) ToggleActive(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.clientService.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "client active flag toggled", Data: item})
}
