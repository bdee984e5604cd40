package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devcollab/devcollab-api/internal/api/metrics"
	"github.com/devcollab/devcollab-api/internal/core/ports"
)

// AdminHandler serves the admin console routes. Authentication and the admin
// role check happen in middleware; every method here can assume an admin
// principal.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

type setRoleRequest struct {
	Role string `json:"role"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// ListUsers handles GET /admin/users. Password hashes are never serialized.
//
// @Summary      List all users
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string][]domain.User
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /admin/users [get]
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.service.ListUsers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// DeleteUser handles DELETE /admin/users/:id. Hard delete; the user's
// projects and messages are left in place.
//
// @Summary      Delete a user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [delete]
func (h *AdminHandler) DeleteUser(c echo.Context) error {
	if err := h.service.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.AdminDeletesTotal.WithLabelValues("user").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "user deleted"})
}

// SetUserRole handles PUT /admin/users/:id/role.
//
// @Summary      Set a user's role
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string          true  "User id"
// @Param        body  body      setRoleRequest  true  "New role"
// @Success      200   {object}  map[string]domain.User
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /admin/users/{id}/role [put]
func (h *AdminHandler) SetUserRole(c echo.Context) error {
	var req setRoleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.service.SetUserRole(c.Request().Context(), c.Param("id"), req.Role)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"user": user})
}

// UsersChart handles GET /admin/users/chart, registrations per month.
func (h *AdminHandler) UsersChart(c echo.Context) error {
	buckets, err := h.service.UsersByMonth(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"usersByMonth": buckets})
}

// UserRoles handles GET /admin/users/roles, the role distribution.
func (h *AdminHandler) UserRoles(c echo.Context) error {
	roles, err := h.service.RoleDistribution(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"roles": roles})
}

// ListProjects handles GET /admin/projects with the owner resolved.
func (h *AdminHandler) ListProjects(c echo.Context) error {
	projects, err := h.service.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"projects": projects})
}

// DeleteProject handles DELETE /admin/projects/:id.
func (h *AdminHandler) DeleteProject(c echo.Context) error {
	if err := h.service.DeleteProject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.AdminDeletesTotal.WithLabelValues("project").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "project deleted"})
}

// ProjectsChart handles GET /admin/projects/chart.
func (h *AdminHandler) ProjectsChart(c echo.Context) error {
	buckets, err := h.service.ProjectsByMonth(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"projectsByMonth": buckets})
}

// ListMessages handles GET /admin/messages, newest-first with both endpoints
// resolved.
func (h *AdminHandler) ListMessages(c echo.Context) error {
	messages, err := h.service.ListMessages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"messages": messages})
}

// DeleteMessage handles DELETE /admin/messages/:id.
func (h *AdminHandler) DeleteMessage(c echo.Context) error {
	if err := h.service.DeleteMessage(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	metrics.AdminDeletesTotal.WithLabelValues("message").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "message deleted"})
}

// MessagesChart handles GET /admin/messages/chart.
func (h *AdminHandler) MessagesChart(c echo.Context) error {
	buckets, err := h.service.MessagesByMonth(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"messagesByMonth": buckets})
}

// Stats handles GET /admin/stats.
//
// @Summary      Dashboard counters
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]domain.Stats
// @Router       /admin/stats [get]
func (h *AdminHandler) Stats(c echo.Context) error {
	stats, err := h.service.Stats(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"stats": stats})
}

// Charts handles GET /admin/charts, the combined dashboard payload.
func (h *AdminHandler) Charts(c echo.Context) error {
	payload, err := h.service.Charts(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, payload)
}
