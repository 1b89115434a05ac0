package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"dealerdesk/internal/errors"
	"dealerdesk/internal/service"
)

// UserHandler handles admin user management endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RoleRequest names a single role.
type RoleRequest struct {
	Role string `json:"role" validate:"required"`
}

// RolesRequest names a full role set.
type RolesRequest struct {
	Roles []string `json:"roles" validate:"required"`
}

func parseUserID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: "invalid user id"})
	}
	return id, nil
}

// List godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.userService.List(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "users retrieved", Data: users})
}

// Get godoc
// @Summary Get a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	user, err := h.userService.GetByID(c.Request().Context(), id)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "user retrieved", Data: user})
}

// Create godoc
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.CreateUserInput true "User data"
// @Success 201 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var input service.CreateUserInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	user, err := h.userService.Create(c.Request().Context(), input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusCreated, DataResponse{Message: "user created", Data: user})
}

// Update godoc
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body service.UpdateUserInput true "Fields to update"
// @Success 200 {object} DataResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	var input service.UpdateUserInput
	if err := c.Bind(&input); err != nil {
		return badRequest("invalid request body")
	}
	user, err := h.userService.Update(c.Request().Context(), id, input)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "user updated", Data: user})
}

// Deactivate godoc
// @Summary Deactivate a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id} [delete]
func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	if err := h.userService.Deactivate(c.Request().Context(), id); err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "user deactivated"})
}

// AssignRole godoc
// @Summary Assign a role to a user
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body RoleRequest true "Role name"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/{id}/roles [post]
func (h *UserHandler) AssignRole(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	var req RoleRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Message: err.Error()})
	}
	user, err := h.userService.AssignRole(c.Request().Context(), id, req.Role)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "role assigned", Data: user})
}

// RemoveRole godoc
// @Summary Remove a role from a user
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param role path string true "Role name"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/roles/{role} [delete]
func (h *UserHandler) RemoveRole(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	user, err := h.userService.RemoveRole(c.Request().Context(), id, c.Param("role"))
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "role removed", Data: user})
}

// ReplaceRoles godoc
// @Summary Replace a user's role set
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body RolesRequest true "Role names"
// @Success 200 {object} DataResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{id}/roles [put]
func (h *UserHandler) ReplaceRoles(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	var req RolesRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	user, err := h.userService.ReplaceRoles(c.Request().Context(), id, req.Roles)
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "roles replaced", Data: user})
}

// ListRoles godoc
// @Summary List available roles
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DataResponse
// @Router /roles [get]
func (h *UserHandler) ListRoles(c echo.Context) error {
	roles, err := h.userService.ListRoles(c.Request().Context())
	if err != nil {
		return fail(err)
	}
	return c.JSON(http.StatusOK, DataResponse{Message: "roles retrieved", Data: roles})
}
