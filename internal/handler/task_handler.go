package handler

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/schema"
	"storefront/internal/service"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService service.TaskService
}

func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", middleware.RequireAuth(), h.List)
	router.GET("/task/:id", middleware.RequireAuth(), h.Get)
	router.POST("/task", middleware.RequireAuth(), h.Create)
	router.POST("/task/:id", middleware.RequireAuth(), h.Update)
	router.GET("/task/:id/delete", middleware.RequireAuth(), h.Delete)
}

// List shows the session user's tasks.
// GET /
func (h *TaskHandler) List(c *gin.Context) {
	sess := middleware.GetSession(c)

	tasks, err := h.taskService.ListForUser(c.Request.Context(), sess.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks":   tasks,
		"flashes": sess.PopFlashes(),
	})
}

// Get shows one task.
// GET /task/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	task, err := h.taskService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": task})
}

// Create builds a task from the form. Dates are coerced like admin
// input: empty means now, garbage is a 400 before any write.
// POST /task
func (h *TaskHandler) Create(c *gin.Context) {
	sess := middleware.GetSession(c)

	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed form"})
		return
	}
	form := c.Request.PostForm
	form.Set("user_id", strconv.FormatInt(sess.UserID, 10))

	task := &models.Task{}
	if err := task.SetValues(form); err != nil {
		var typeErr *schema.TypeError
		if errors.As(err, &typeErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": typeErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskService.Create(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sess.AddFlash("success", "task created")
	c.Redirect(http.StatusSeeOther, "/")
}

// Update rewrites a task from the form. A bad date aborts before any
// write.
// POST /task/:id
func (h *TaskHandler) Update(c *gin.Context) {
	sess := middleware.GetSession(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	existing, err := h.taskService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := c.Request.ParseForm(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed form"})
		return
	}
	form := c.Request.PostForm
	if form.Get("user_id") == "" {
		form.Set("user_id", strconv.FormatInt(existing.UserID, 10))
	}

	task := &models.Task{ID: id}
	if err := task.SetValues(form); err != nil {
		var typeErr *schema.TypeError
		if errors.As(err, &typeErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": typeErr.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.taskService.Update(c.Request.Context(), task); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sess.AddFlash("success", "task updated")
	c.Redirect(http.StatusSeeOther, "/")
}

// Delete removes a task.
// GET /task/:id/delete
func (h *TaskHandler) Delete(c *gin.Context) {
	sess := middleware.GetSession(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task ID"})
		return
	}

	if err := h.taskService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sess.AddFlash("info", "task deleted")
	c.Redirect(http.StatusSeeOther, "/")
}
