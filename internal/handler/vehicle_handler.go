package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/model"
	"dealerdesk/internal/repository"
	"dealerdesk/internal/service"
)

// VehicleHandler handles vehicle inventory endpoints.
type VehicleHandler struct {
	vehicleService service.VehicleService
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicleService service.VehicleService) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService}
}

func vehicleFilter(c echo.Context) repository.VehicleFilter {
	filter := repository.VehicleFilter{
		Status: model.VehicleStatus(c.QueryParam("status")),
	}
	parse := func(name string) uint {
		v, _ := strconv.ParseUint(c.QueryParam(name), 10, 32)
		return uint(v)
	}
	filter.BrandID = parse("brand_id")
	filter.ModelID = parse("model_id")
	filter.ColorID = parse("color_id")
	filter.FuelTypeID = parse("fuel_type_id")
	filter.TransmissionTypeID = parse("transmission_type_id")
	if year, err := strconv.Atoi(c.QueryParam("year")); err == nil {
		filter.Year = year
	}
	return filter
}

// List godoc
// @Summary List vehicles
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param search query string false "Search over VIN, engine, chassis, model and brand"
// @Param status query string false "Inventory status"
// @Param brand_id query int false "Brand filter"
// @Param model_id query int false "Model filter"
// @Param year query int false "Year filter"
// @Success 200 {object} PagedResponse
// @Router /vehicles [get]
func (h *VehicleHandler) List(c echo.Context) error {
	params := listParams(c)
	vehicles, total, err := h.vehicleService.List(c.Request().Context(), params, vehicleFilter(c))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, paged("vehicles retrieved", vehicles, total, params))
}

// Get godoc
// @Summary Get a vehicle with its acquisition and features
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /vehicles/{id} [get]
func (h *VehicleHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	vehicle, err := h.vehicleService.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "vehicle retrieved", Data: vehicle})
}

// Create godoc
// @Summary Register a vehicle with its acquisition
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateVehicleInput true "Vehicle and acquisition data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /vehicles [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	var input service.CreateVehicleInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	vehicle, err := h.vehicleService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "vehicle registered", Data: vehicle})
}

// Update godoc
// @Summary Update a vehicle, its acquisition and its features
// @Tags vehicles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Param request body service.UpdateVehicleInput true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /vehicles/{id} [put]
func (h *VehicleHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var input service.UpdateVehicleInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	vehicle, err := h.vehicleService.Update(c.Request().Context(), id, input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "vehicle updated", Data: vehicle})
}

// Delete godoc
// @Summary Withdraw a vehicle from inventory
// @Tags vehicles
// @Produce json
// @Security BearerAuth
// @Param id path int true "Vehicle ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /vehicles/{id} [delete]
func (h *VehicleHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	if err := h.vehicleService.Delete(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "vehicle withdrawn"})
}
