package handler

import (
	"payment-hub/internal/adapter/http/dto"
	"payment-hub/internal/adapter/http/middleware"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"
	"payment-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

// LimitHandler manages limit configuration.
type LimitHandler struct {
	limitAdmin ports.LimitAdminService
}

func NewLimitHandler(limitAdmin ports.LimitAdminService) *LimitHandler {
	return &LimitHandler{limitAdmin: limitAdmin}
}

// Create handles POST /api/v1/admin/limits.
func (h *LimitHandler) Create(c *gin.Context) {
	var req dto.LimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	c.Set(middleware.CtxAuditDetails, req)

	limit, err := h.limitAdmin.CreateLimit(c.Request.Context(), req.ToDomain())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, limit)
}

// Update handles PUT /api/v1/admin/limits/:id.
func (h *LimitHandler) Update(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.LimitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	c.Set(middleware.CtxAuditDetails, req)

	l := req.ToDomain()
	l.ID = id
	limit, err := h.limitAdmin.UpdateLimit(c.Request.Context(), l)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, limit)
}

// Deactivate handles DELETE /api/v1/admin/limits/:id.
func (h *LimitHandler) Deactivate(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.limitAdmin.DeactivateLimit(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"id": id, "active": false})
}
