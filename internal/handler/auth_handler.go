package handler

import (
	"errors"
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/service"
	"storefront/internal/session"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService service.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService service.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{authService: authService, sessions: sessions}
}

// RegisterRoutes registers the credential routes. The login POST is
// rate limited by the caller-provided middleware.
func (h *AuthHandler) RegisterRoutes(router gin.IRouter, loginLimit gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.GET("/register", h.RegisterForm)
		auth.POST("/register", h.Register)
		auth.GET("/login", h.LoginForm)
		auth.POST("/login", loginLimit, h.Login)
		auth.GET("/logout", h.Logout)
	}
}

// RegisterForm answers the registration page request.
// GET /auth/register
func (h *AuthHandler) RegisterForm(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess.UserID != 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"flashes": sess.PopFlashes()})
}

// Register creates an account from the submitted form.
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess.UserID != 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}

	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	if email == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	_, err := h.authService.Register(c.Request.Context(), name, email, password)
	if err != nil {
		if errors.Is(err, service.ErrEmailInUse) {
			sess.AddFlash("danger", "a user with this email already exists")
			c.Redirect(http.StatusSeeOther, "/auth/register")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sess.AddFlash("success", "registration complete, please log in")
	c.Redirect(http.StatusSeeOther, "/auth/login")
}

// LoginForm answers the login page request.
// GET /auth/login
func (h *AuthHandler) LoginForm(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess.UserID != 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.JSON(http.StatusOK, gin.H{"flashes": sess.PopFlashes()})
}

// Login authenticates the form credentials and binds the user to the
// session.
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess.UserID != 0 {
		c.Redirect(http.StatusFound, "/")
		return
	}

	email := c.PostForm("email")
	password := c.PostForm("password")

	user, err := h.authService.Login(c.Request.Context(), email, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			sess.AddFlash("danger", "invalid email or password")
			c.Redirect(http.StatusSeeOther, "/auth/login")
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sess.UserID = user.ID
	c.Redirect(http.StatusSeeOther, "/")
}

// Logout detaches the user and destroys the server-side session.
// GET /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sess := middleware.GetSession(c)
	if sess.UserID == 0 {
		c.Redirect(http.StatusFound, "/auth/login")
		return
	}

	id := middleware.GetSessionID(c)
	_ = h.sessions.Destroy(c.Request.Context(), id)
	// The middleware re-saves the payload after the handler; wipe it so
	// nothing of the old session survives under the same ID.
	*sess = session.Data{}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/auth/login")
}
