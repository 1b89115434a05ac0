package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/model"
	"dealerdesk/internal/service"
)

// SaleHandler handles sale endpoints.
type SaleHandler struct {
	saleService service.SaleService
}

// NewSaleHandler creates a new sale handler.
func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// List godoc
// @Summary List sales
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Sale status"
// @Success 200 {object} PagedResponse
// @Router /sales [get]
func (h *SaleHandler) List(c echo.Context) error {
	params := listParams(c)
	status := model.SaleStatus(c.QueryParam("status"))
	sales, total, err := h.saleService.List(c.Request().Context(), params, status)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, paged("sales retrieved", sales, total, params))
}

// Get godoc
// @Summary Get a sale
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sales/{id} [get]
func (h *SaleHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	sale, err := h.saleService.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "sale retrieved", Data: sale})
}

// Create godoc
// @Summary Record a sale
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateSaleInput true "Sale data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /sales [post]
func (h *SaleHandler) Create(c echo.Context) error {
	var input service.CreateSaleInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	sale, err := h.saleService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "sale recorded", Data: sale})
}

// Update godoc
// @Summary Update a sale
// @Tags sales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Param request body service.UpdateSaleInput true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /sales/{id} [put]
func (h *SaleHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input service.UpdateSaleInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	sale, err := h.saleService.Update(c.Request().Context(), id, input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "sale updated", Data: sale})
}

// Cancel godoc
// @Summary Cancel a sale and release the vehicle
// @Tags sales
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sale ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /sales/{id}/cancel [post]
func (h *SaleHandler) Cancel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	sale, err := h.saleService.Cancel(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "sale cancelled", Data: sale})
}
