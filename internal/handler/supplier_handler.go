package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/service"
)

// SupplierHandler handles supplier endpoints.
type SupplierHandler struct {
	supplierService service.SupplierService
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(supplierService service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List godoc
// @Summary List suppliers
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search term"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} PagedResponse
// @Router /suppliers [get]
func (h *SupplierHandler) List(c echo.Context) error {
	params := listParams(c)
	items, total, err := h.supplierService.List(c.Request().Context(), params)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, paged("suppliers retrieved", items, total, params))
}

// Get godoc
// @Summary Get a supplier
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /suppliers/{id} [get]
func (h *SupplierHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.supplierService.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "supplier retrieved", Data: item})
}

// Create godoc
// @Summary Create a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateSupplierInput true "Supplier data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /suppliers [post]
func (h *SupplierHandler) Create(c echo.Context) error {
	var input service.CreateSupplierInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	item, err := h.supplierService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "supplier created", Data: item})
}

// Update godoc
// @Summary Update a supplier
// @Tags suppliers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Param request body service.UpdateSupplierInput true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /suppliers/{id} [put]
func (h *SupplierHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input service.UpdateSupplierInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	item, err := h.supplierService.Update(c.Request().Context(), id, input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "supplier updated", Data: item})
}

// Delete godoc
// @Summary Deactivate a supplier
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /suppliers/{id} [delete]
func (h *SupplierHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.supplierService.Delete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "supplier deactivated"})
}

// ToggleActive godoc
// @Summary Toggle a supplier's active flag
// @Tags suppliers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Supplier ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /suppliers/{id}/toggle-active [post]
func (h *SupplierHandler) ToggleActive(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.supplierService.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "supplier active flag toggled", Data: item})
}
