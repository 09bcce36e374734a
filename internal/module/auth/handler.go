package auth

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the session token and its expiry.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Email     string    `json:"email"`
}

// Handler exposes the admin authentication endpoints.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts endpoints reachable without a session.
// loginLimiter, when non-nil, is applied to the login endpoint only.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup, loginLimiter gin.HandlerFunc) {
	if loginLimiter != nil {
		rg.POST("/login", loginLimiter, h.login)
	} else {
		rg.POST("/login", h.login)
	}
}

// RegisterProtectedRoutes mounts endpoints behind RequireAdmin.
func (h *Handler) RegisterProtectedRoutes(rg *gin.RouterGroup) {
	rg.POST("/logout", h.logout)
	rg.GET("/session", h.session)
}

// login verifies credentials and issues a session token.
//
//	@Summary	Admin sign-in
//	@Tags		admin
//	@Accept		json
//	@Produce	json
//	@Param		request	body		LoginRequest	true	"Credentials"
//	@Success	200		{object}	LoginResponse
//	@Failure	401		{object}	map[string]string
//	@Router		/admin/login [post]
func (h *Handler) login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email and password are required"})
		return
	}

	token, session, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign-in failed, please try again"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		Email:     session.Email,
	})
}

// logout revokes the current session token.
//
//	@Summary	Admin sign-out
//	@Tags		admin
//	@Produce	json
//	@Success	204
//	@Security	BearerAuth
//	@Router		/admin/logout [post]
func (h *Handler) logout(c *gin.Context) {
	if err := h.service.SignOut(c.Request.Context(), bearerToken(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "sign-out failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

// session returns the session carried by the request token.
//
//	@Summary	Current admin session
//	@Tags		admin
//	@Produce	json
//	@Success	200	{object}	Session
//	@Security	BearerAuth
//	@Router		/admin/session [get]
func (h *Handler) session(c *gin.Context) {
	session, err := h.service.CurrentSession(c.Request.Context(), bearerToken(c))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
		return
	}
	c.JSON(http.StatusOK, session)
}
