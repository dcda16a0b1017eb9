package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"seller-payout-vault/internal/adapter/http/dto"
	"seller-payout-vault/internal/adapter/http/middleware"
	"seller-payout-vault/internal/core/ports"
	"seller-payout-vault/pkg/apperror"
	"seller-payout-vault/pkg/response"
)

// PayoutMethodHandler exposes payout method CRUD and verification.
type PayoutMethodHandler struct {
	methods ports.PayoutMethodService
}

// NewPayoutMethodHandler creates a new payout method handler.
func NewPayoutMethodHandler(methods ports.PayoutMethodService) *PayoutMethodHandler {
	return &PayoutMethodHandler{methods: methods}
}

func sellerFromContext(c *gin.Context) (uuid.UUID, bool) {
	id, ok := middleware.SellerID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
	}
	return id, ok
}

func methodIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid payout method id"))
		return uuid.Nil, false
	}
	return id, true
}

// List handles GET /api/v1/payout-methods.
func (h *PayoutMethodHandler) List(c *gin.Context) {
	sellerID, ok := sellerFromContext(c)
	if !ok {
		return
	}

	methods, err := h.methods.List(c.Request.Context(), sellerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, methods)
}

// Add handles POST /api/v1/payout-methods.
func (h *PayoutMethodHandler) Add(c *gin.Context) {
	sellerID, ok := sellerFromContext(c)
	if !ok {
		return
	}

	var req dto.AddPayoutMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	method, err := h.methods.Add(c.Request.Context(), sellerID, req.ToPort())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, method)
}

// Update handles PUT /api/v1/payout-methods/:id.
func (h *PayoutMethodHandler) Update(c *gin.Context) {
	sellerID, ok := sellerFromContext(c)
	if !ok {
		return
	}
	methodID, ok := methodIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePayoutMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	method, err := h.methods.Update(c.Request.Context(), sellerID, methodID, req.ToPort())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, method)
}

// Delete handles DELETE /api/v1/payout-methods/:id.
func (h *PayoutMethodHandler) Delete(c *gin.Context) {
	sellerID, ok := sellerFromContext(c)
	if !ok {
		return
	}
	methodID, ok := methodIDParam(c)
	if !ok {
		return
	}

	var req dto.DeletePayoutMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	if err := h.methods.Delete(c.Request.Context(), sellerID, methodID, req.ToPort()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Verify handles POST /api/v1/payout-methods/:id/verify.
func (h *PayoutMethodHandler) Verify(c *gin.Context) {
	sellerID, ok := sellerFromContext(c)
	if !ok {
		return
	}
	methodID, ok := methodIDParam(c)
	if !ok {
		return
	}

	var req dto.VerifyPayoutMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	method, err := h.methods.Verify(c.Request.Context(), sellerID, methodID, req.ToPort())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, method)
}
