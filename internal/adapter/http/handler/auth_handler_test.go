package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
	"seller-payout-vault/internal/core/ports/mocks"
	"seller-payout-vault/pkg/apperror"
)

func newAuthRouter(svc ports.AuthService) *gin.Engine {
	r := gin.New()
	h := NewAuthHandler(svc)
	r.POST("/api/v1/auth/register", h.Register)
	r.POST("/api/v1/auth/login", h.Login)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthService(ctrl)

	svc.EXPECT().Register(gomock.Any(), ports.RegisterRequest{
		Email:     "new@example.com",
		Password:  "hunter2hunter2",
		StoreName: "New Store",
	}).Return(&domain.Seller{
		ID:        uuid.New(),
		Email:     "new@example.com",
		StoreName: "New Store",
		Status:    domain.SellerStatusActive,
	}, nil)

	w := doJSON(t, newAuthRouter(svc), http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":      "new@example.com",
		"password":   "hunter2hunter2",
		"store_name": "New Store",
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "new@example.com")
	// password hash never leaves the server
	assert.NotContains(t, w.Body.String(), "password_hash")
}

func TestAuthHandler_Register_ShortPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthService(ctrl)

	w := doJSON(t, newAuthRouter(svc), http.MethodPost, "/api/v1/auth/register", gin.H{
		"email":      "new@example.com",
		"password":   "short",
		"store_name": "New Store",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VAL_001", errorCode(t, w))
}

func TestAuthHandler_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthService(ctrl)
	sellerID := uuid.New()

	svc.EXPECT().Login(gomock.Any(), ports.LoginRequest{
		Email:    "seller@example.com",
		Password: "hunter2",
	}).Return(&ports.LoginResponse{
		Token:     "signed.jwt.token",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		Seller:    &domain.Seller{ID: sellerID, Email: "seller@example.com"},
	}, nil)

	w := doJSON(t, newAuthRouter(svc), http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "seller@example.com",
		"password": "hunter2",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "signed.jwt.token")
}

func TestAuthHandler_Login_BadCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockAuthService(ctrl)

	svc.EXPECT().Login(gomock.Any(), gomock.Any()).
		Return(nil, apperror.ErrInvalidCredentials())

	w := doJSON(t, newAuthRouter(svc), http.MethodPost, "/api/v1/auth/login", gin.H{
		"email":    "seller@example.com",
		"password": "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTH_001", errorCode(t, w))
}
