package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"seller-payout-vault/internal/adapter/http/dto"
	"seller-payout-vault/internal/core/ports"
	"seller-payout-vault/pkg/apperror"
	"seller-payout-vault/pkg/response"
)

// AuthHandler exposes seller registration and login.
type AuthHandler struct {
	auth ports.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	seller, err := h.auth.Register(c.Request.Context(), req.ToPort())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, seller)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	resp, err := h.auth.Login(c.Request.Context(), req.ToPort())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// HealthHandler reports dependency health.
type HealthHandler struct {
	checkers []ports.HealthChecker
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(checkers ...ports.HealthChecker) *HealthHandler {
	return &HealthHandler{checkers: checkers}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	type dependency struct {
		Name   string `json:"name"`
		Status string `json:"status"`
		Error  string `json:"error,omitempty"`
	}

	status := http.StatusOK
	deps := make([]dependency, 0, len(h.checkers))
	for _, checker := range h.checkers {
		d := dependency{Name: checker.Name(), Status: "up"}
		if err := checker.Check(c.Request.Context()); err != nil {
			d.Status = "down"
			d.Error = err.Error()
			status = http.StatusServiceUnavailable
		}
		deps = append(deps, d)
	}

	c.JSON(status, gin.H{
		"status":       map[bool]string{true: "ok", false: "degraded"}[status == http.StatusOK],
		"dependencies": deps,
		"timestamp":    time.Now().UTC(),
	})
}
