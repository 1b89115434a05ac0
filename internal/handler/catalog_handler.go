package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/service"
)

// CatalogHandler handles the reference table endpoints: brands, models,
// colors, fuel types, transmission types and features.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// NameRequest is the payload for the simple named reference rows.
type NameRequest struct {
	Name string `json:"name" validate:"required"`
}

// ModelRequest is the payload for vehicle model rows.
type ModelRequest struct {
	BrandID uint   `json:"brand_id" validate:"required"`
	Name    string `json:"name" validate:"required"`
}

// FeatureRequest is the payload for feature rows.
type FeatureRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

func bindNamed(c echo.Context) (NameRequest, error) {
	var req NameRequest
	if err := c.Bind(&req); err != nil {
		return req, badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return req, badRequest(err.Error())
	}
	return req, nil
}

// ListBrands godoc
// @Summary List brands
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse
// @Router /brands [get]
func (h *CatalogHandler) ListBrands(c echo.Context) error {
	brands, err := h.catalogService.ListBrands(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "brands retrieved", Data: brands})
}

// CreateBrand godoc
// @Summary Create a brand
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NameRequest true "Brand name"
// @Success 201 {object} DataResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /brands [post]
func (h *CatalogHandler) CreateBrand(c echo.Context) error {
	req, err := bindNamed(c)
	if err != nil {
		return err
	}
	brand, err := h.catalogService.CreateBrand(c.Request().Context(), req.Name)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "brand created", Data: brand})
}

// UpdateBrand godoc
// @Summary Rename a brand
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Brand ID"
// @Param request body NameRequest true "Brand name"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /brands/{id} [put]
func (h *CatalogHandler) UpdateBrand(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	req, err := bindNamed(c)
	if err != nil {
		return err
	}
	brand, err := h.catalogService.UpdateBrand(c.Request().Context(), id, req.Name)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "brand updated", Data: brand})
}

// ListModels godoc
// @Summary List vehicle models
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Param brand_id query int false "Brand filter"
// @Success 200 {object} DataResponse
// @Router /models [get]
func (h *CatalogHandler) ListModels(c echo.Context) error {
	brandID, _ := strconv.ParseUint(c.QueryParam("brand_id"), 10, 32)
	models, err := h.catalogService.ListModels(c.Request().Context(), uint(brandID))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "models retrieved", Data: models})
}

// CreateModel godoc
// @Summary Create a vehicle model
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body ModelRequest true "Model data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Router /models [post]
func (h *CatalogHandler) CreateModel(c echo.Context) error {
	var req ModelRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}
	m, err := h.catalogService.CreateModel(c.Request().Context(), req.BrandID, req.Name)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "model created", Data: m})
}

// UpdateModel godoc
// @Summary Update a vehicle model
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Model ID"
// @Param request body ModelRequest true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /models/{id} [put]
func (h *CatalogHandler) UpdateModel(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req struct {
		BrandID *uint   `json:"brand_id"`
		Name    *string `json:"name"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	m, err := h.catalogService.UpdateModel(c.Request().Context(), id, req.BrandID, req.Name)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "model updated", Data: m})
}

// ListColors godoc
// @Summary List colors
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse
// @Router /colors [get]
func (h *CatalogHandler) ListColors(c echo.Context) error {
	colors, err := h.catalogService.ListColors(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "colors retrieved", Data: colors})
}

// CreateColor godoc
// @Summary Create a color
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NameRequest true "Color name"
// @Success 201 {object} DataResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /colors [post]
func (h *CatalogHandler) CreateColor(c echo.Context) error {
	req, err := bindNamed(c)
	if err != nil {
		return err
	}
	color, err := h.catalogService.CreateColor(c.Request().Context(), req.Name)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "color created", Data: color})
}

// ListFuelTypes godoc
// @Summary List fuel types
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse
// @Router /fuel-types [get]
func (h *CatalogHandler) ListFuelTypes(c echo.Context) error {
	fts, err := h.catalogService.ListFuelTypes(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "fuel types retrieved", Data: fts})
}

// CreateFuelType godoc
// @Summary Create a fuel type
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NameRequest true "Fuel type name"
// @Success 201 {object} DataResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /fuel-types [post]
func (h *CatalogHandler) CreateFuelType(c echo.Context) error {
	req, err := bindNamed(c)
	if err != nil {
		return err
	}
	ft, err := h.catalogService.CreateFuelType(c.Request().Context(), req.Name)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "fuel type created", Data: ft})
}

// ListTransmissionTypes godoc
// @Summary List transmission types
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse
// @Router /transmission-types [get]
func (h *CatalogHandler) ListTransmissionTypes(c echo.Context) error {
	tts, err := h.catalogService.ListTransmissionTypes(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "transmission types retrieved", Data: tts})
}

// CreateTransmissionType godoc
// @Summary Create a transmission type
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body NameRequest true "Transmission type name"
// @Success 201 {object} DataResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /transmission-types [post]
func (h *CatalogHandler) CreateTransmissionType(c echo.Context) error {
	req, err := bindNamed(c)
	if err != nil {
		return err
	}
	tt, err := h.catalogService.CreateTransmissionType(c.Request().Context(), req.Name)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "transmission type created", Data: tt})
}

// ListFeatures godoc
// @Summary List features
// @Tags catalog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse
// @Router /features [get]
func (h *CatalogHandler) ListFeatures(c echo.Context) error {
	features, err := h.catalogService.ListFeatures(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "features retrieved", Data: features})
}

// CreateFeature godoc
// @Summary Create a feature
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FeatureRequest true "Feature data"
// @Success 201 {object} DataResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /features [post]
func (h *CatalogHandler) CreateFeature(c echo.Context) error {
	var req FeatureRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(err.Error())
	}
	feature, err := h.catalogService.CreateFeature(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "feature created", Data: feature})
}

// UpdateFeature godoc
// @Summary Update a feature
// @Tags catalog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Feature ID"
// @Param request body FeatureRequest true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /features/{id} [put]
func (h *CatalogHandler) UpdateFeature(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	feature, err := h.catalogService.UpdateFeature(c.Request().Context(), id, req.Name, req.Description)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "feature updated", Data: feature})
}
