package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/repository"
)

// DataResponse wraps a single resource.
type DataResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PagedResponse wraps a paginated listing.
type PagedResponse struct {
	Message     string      `json:"message"`
	Data        interface{} `json:"data"`
	TotalItems  int64       `json:"totalItems"`
	TotalPages  int         `json:"totalPages"`
	CurrentPage int         `json:"currentPage"`
}

func paged(message string, data interface{}, total int64, params repository.ListParams) PagedResponse {
	params.Normalize()
	pages := int(total) / params.Limit
	if int(total)%params.Limit != 0 {
		pages++
	}
	return PagedResponse{
		Message:     message,
		Data:        data,
		TotalItems:  total,
		TotalPages:  pages,
		CurrentPage: params.Page,
	}
}

// listParams reads the common pagination and filtering query parameters.
func listParams(c echo.Context) repository.ListParams {
	params := repository.ListParams{Search: c.QueryParam("search")}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil {
		params.Page = page
	}
	if limit, err := strconv.Atoi(c.QueryParam("limit")); err == nil {
		params.Limit = limit
	}
	if raw := c.QueryParam("active"); raw != "" {
		if active, err := strconv.ParseBool(raw); err == nil {
			params.Active = &active
		}
	}
	params.Normalize()
	return params
}

func parseID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "invalid id"})
	}
	return uint(id), nil
}

// fail maps a service error to its HTTP status and JSON body.
func fail(err error) error {
	return echo.NewHTTPError(errors.HTTPStatus(err), errors.ToResponse(err))
}

func badRequest(message string) error {
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: message})
}
