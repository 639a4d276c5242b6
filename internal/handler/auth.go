package handler

import (
	"errors"
	"net/http"
	"time"

	"sentient-journal/internal/logger"
	"sentient-journal/internal/middleware"
	"sentient-journal/internal/model"
	"sentient-journal/internal/store"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	store      store.Store
	fallback   store.Store // retry target for throttled signups, nil when disabled
	secret     []byte
	sessionTTL time.Duration
}

func NewAuthHandler(s store.Store, fallback store.Store, secret []byte, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{store: s, fallback: fallback, secret: secret, sessionTTL: sessionTTL}
}

func (h *AuthHandler) Index(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"app": "Sentient Journal", "status": "ok"})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid email or password"})
		return
	}

	u, err := h.store.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// One message for every failure path so accounts cannot be
		// enumerated.
		logger.Warn("login.failed", "email", req.Email)
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid email or password"})
		return
	}

	if err := middleware.IssueSession(c, h.secret, h.sessionTTL, u.ID, u.Email); err != nil {
		logger.Error("session.issue failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Login failed"})
		return
	}

	logger.Info("login.ok", "uid", u.ID)
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": "/dashboard"})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email and password are required"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Password must be at least 6 characters"})
		return
	}

	uid, err := h.store.CreateUser(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, store.ErrRateLimited) && h.fallback != nil {
		logger.Warn("signup.throttled, retrying on embedded store", "email", req.Email)
		uid, err = h.fallback.CreateUser(c.Request.Context(), req.Email, req.Password)
	}
	switch {
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Email already exists"})
		return
	case errors.Is(err, store.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"success": false, "error": "Too many signup attempts. Please try again in a few minutes."})
		return
	case err != nil:
		logger.Error("signup.failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create account"})
		return
	}

	logger.Info("signup.ok", "uid", uid)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account created! Please log in."})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.Redirect(http.StatusFound, "/")
}
