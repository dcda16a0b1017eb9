package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"seller-payout-vault/internal/adapter/http/dto"
	"seller-payout-vault/internal/adapter/http/middleware"
	"seller-payout-vault/internal/core/ports"
)

const maxRequestBody = 1 << 20 // 1 MB

// RouterDeps bundles everything the router needs.
type RouterDeps struct {
	Auth      *AuthHandler
	Payouts   *PayoutMethodHandler
	Health    *HealthHandler
	Tokens    ports.TokenService
	RateLimit middleware.RateLimitStore
	Logger    zerolog.Logger
	Mode      string
}

// NewRouter builds the gin engine with all routes and middleware.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(deps.Mode)
	dto.RegisterValidators()

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Recovery(deps.Logger),
		middleware.RequestLogger(deps.Logger),
		middleware.MaxBodySize(maxRequestBody),
	)

	r.GET("/health", deps.Health.Check)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register",
			middleware.RateLimit(deps.RateLimit, middleware.RuleAuthRegister, deps.Logger),
			deps.Auth.Register)
		auth.POST("/login",
			middleware.RateLimit(deps.RateLimit, middleware.RuleAuthLogin, deps.Logger),
			deps.Auth.Login)
	}

	methods := v1.Group("/payout-methods", middleware.JWTAuth(deps.Tokens))
	{
		readLimit := middleware.RateLimit(deps.RateLimit, middleware.RulePayoutRead, deps.Logger)
		writeLimit := middleware.RateLimit(deps.RateLimit, middleware.RulePayoutWrite, deps.Logger)

		methods.GET("", readLimit, deps.Payouts.List)
		methods.POST("", writeLimit, deps.Payouts.Add)
		methods.PUT("/:id", writeLimit, deps.Payouts.Update)
		methods.DELETE("/:id", writeLimit, deps.Payouts.Delete)
		methods.POST("/:id/verify", writeLimit, deps.Payouts.Verify)
	}

	return r
}
