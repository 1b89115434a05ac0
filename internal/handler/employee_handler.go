package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/service"
)

// EmployeeHandler handles employee endpoints.
type EmployeeHandler struct {
	employeeService service.EmployeeService
}

// NewEmployeeHandler creates a new employee handler.
func NewEmployeeHandler(employeeService service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// List godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search term"
// @Param active query bool false "Filter by active flag"
// @Success 200 {object} PagedResponse
// @Router /employees [get]
func (h *EmployeeHandler) List(c echo.Context) error {
	params := listParams(c)
	items, total, err := h.employeeService.List(c.Request().Context(), params)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, paged("employees retrieved", items, total, params))
}

// Get godoc
// @Summary Get an employee
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.employeeService.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "employee retrieved", Data: item})
}

// Create godoc
// @Summary Create an employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateEmployeeInput true "Employee data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c echo.Context) error {
	var input service.CreateEmployeeInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	item, err := h.employeeService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "employee created", Data: item})
}

// Update godoc
// @Summary Update an employee
// @Tags employees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Param request body service.UpdateEmployeeInput true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input service.UpdateEmployeeInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	item, err := h.employeeService.Update(c.Request().Context(), id, input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "employee updated", Data: item})
}

// Delete godoc
// @Summary Deactivate an employee
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.employeeService.Delete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "employee deactivated"})
}

// ToggleActive godoc
// @Summary Toggle an employee's active flag
// @Tags employees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Employee ID"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /employees/{id}/toggle-active [post]
func (h *EmployeeHandler) ToggleActive(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	item, err := h.employeeService.ToggleActive(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "employee active flag toggled", Data: item})
}
