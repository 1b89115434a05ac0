package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/service"
)

// ContactHandler handles contact endpoints.
type ContactHandler struct {
	contactService service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService service.ContactService) *ContactHandler {
	return &ContactHandler{contactService: contactService}
}

// List godoc
// @Summary List contacts
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search term"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} PagedResponse
// @Router /contacts [get]
func (h *ContactHandler) List(c echo.Context) error {
	params := listParams(c)
	contacts, total, err := h.contactService.List(c.Request().Context(), params)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, paged("contacts retrieved", contacts, total, params))
}

// Get godoc
// @Summary Get a contact
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/{id} [get]
func (h *ContactHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	contact, err := h.contactService.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "contact retrieved", Data: contact})
}

// Create godoc
// @Summary Create a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateContactInput true "Contact data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /contacts [post]
func (h *ContactHandler) Create(c echo.Context) error {
	var input service.CreateContactInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	contact, err := h.contactService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "contact created", Data: contact})
}

// Update godoc
// @Summary Update a contact
// @Tags contacts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Param request body service.UpdateContactInput true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/{id} [put]
func (h *ContactHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input service.UpdateContactInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	contact, err := h.contactService.Update(c.Request().Context(), id, input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "contact updated", Data: contact})
}

// Delete godoc
// @Summary Deactivate a contact
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /contacts/{id} [delete]
func (h *ContactHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.contactService.Delete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "contact deactivated"})
}

// ToggleActive godoc
// @Summary Toggle a contact's active flag
// @Tags contacts
// @Produce json
// @Security BearerAuth
// @Param id path int true "Contact ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /contacts/{id}/toggle-active [post]
func (h *ContactHandler) ToggleActive(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.contactService.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "contact active flag toggled", Data: item})
}
