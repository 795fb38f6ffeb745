package handler

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/schema"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the generic table browser. Everything it knows
// about a table comes from the schema registry, so new entities only
// need a descriptor to show up here.
type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(adminService service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) RegisterRoutes(router gin.IRouter, authService service.AuthService) {
	admin := router.Group("/admin", middleware.RequireAdmin(authService))
	{
		admin.GET("", h.Index)
		admin.GET("/tables/:name", h.Browse)
		admin.POST("/tables/:name", h.Create)
	}
}

// Index lists the registered tables.
// GET /admin
func (h *AdminHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"tables": h.adminService.Tables()})
}

// Browse returns a table's rows, field metadata and foreign-key choice
// lists.
// GET /admin/tables/:name
func (h *AdminHandler) Browse(c *gin.Context) {
	name := c.Param("name")

	view, err := h.adminService.Browse(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, schema.ErrUnknownTable) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tables":  h.adminService.Tables(),
		"table":   view.Table,
		"fields":  view.Fields,
		"rows":    view.Rows,
		"choices": view.Choices,
	})
}

// Create inserts one row built from the submitted form, then redirects
// back to the grid.
// POST /admin/tables/:name
func (h *AdminHandler) Create(c *gin.Context) {
	name := c.Param("name")

	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed form"})
		return
	}

	err := h.adminService.Create(c.Request.Context(), name, c.Request.PostForm)
	if err != nil {
		var typeErr *schema.TypeError
		switch {
		case errors.Is(err, schema.ErrUnknownTable):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.As(err, &typeErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": typeErr.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/admin/tables/%s", name))
}
