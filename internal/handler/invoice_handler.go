package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/model"
	"dealerdesk/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List godoc
// @Summary List invoices
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Invoice status"
// @Success 200 {object} PagedResponse
// @Router /invoices [get]
func (h *InvoiceHandler) List(c echo.Context) error {
	params := listParams(c)
	status := model.InvoiceStatus(c.QueryParam("status"))
	invoices, total, err := h.invoiceService.List(c.Request().Context(), params, status)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, paged("invoices retrieved", invoices, total, params))
}

// Get godoc
// @Summary Get an invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /invoices/{id} [get]
func (h *InvoiceHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	invoice, err := h.invoiceService.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "invoice retrieved", Data: invoice})
}

// Create godoc
// @Summary Issue an invoice for a sale
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateInvoiceInput true "Invoice data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /invoices [post]
func (h *InvoiceHandler) Create(c echo.Context) error {
	var input service.CreateInvoiceInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	invoice, err := h.invoiceService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "invoice issued", Data: invoice})
}

// Update godoc
// @Summary Update an invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Param request body service.UpdateInvoiceInput true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /invoices/{id} [put]
func (h *InvoiceHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input service.UpdateInvoiceInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	invoice, err := h.invoiceService.Update(c.Request().Context(), id, input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "invoice updated", Data: invoice})
}

// Void godoc
// @Summary Void an invoice
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /invoices/{id}/void [post]
func (h *InvoiceHandler) Void(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	invoice, err := h.invoiceService.Void(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "invoice voided", Data: invoice})
}
