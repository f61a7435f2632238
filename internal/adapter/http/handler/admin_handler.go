package handler

import (
	"payment-hub/internal/adapter/http/dto"
	"payment-hub/internal/adapter/http/middleware"
	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"
	"payment-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves operator actions on transactions and alerts.
type AdminHandler struct {
	stateMachine ports.TransactionStateMachine
	dispatcher   ports.CallbackDispatcher
	limitAdmin   ports.LimitAdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(stateMachine ports.TransactionStateMachine, dispatcher ports.CallbackDispatcher, limitAdmin ports.LimitAdminService) *AdminHandler {
	return &AdminHandler{stateMachine: stateMachine, dispatcher: dispatcher, limitAdmin: limitAdmin}
}

// Revert handles POST /api/v1/admin/transactions/:uuid/revert.
func (h *AdminHandler) Revert(c *gin.Context) {
	id, err := uuidParam(c, "uuid")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.RevertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	c.Set(middleware.CtxAuditDetails, req)

	trx, err := h.stateMachine.GetByUUID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	revert := ports.RevertRequest{
		TransactionID: trx.ID,
		TargetStatus:  domain.TransactionStatus(req.TargetStatus),
		DeclineCode:   req.DeclineCode,
		Actor:         middleware.Subject(c),
		Reason:        req.Reason,
	}
	if req.ReapplyStatus != nil {
		s := domain.TransactionStatus(*req.ReapplyStatus)
		revert.ReapplyStatus = &s
	}
	trx, err = h.stateMachine.Revert(c.Request.Context(), revert)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionResponse(trx))
}

// CheckStatus handles POST /api/v1/admin/transactions/:uuid/check-status.
func (h *AdminHandler) CheckStatus(c *gin.Context) {
	id, err := uuidParam(c, "uuid")
	if err != nil {
		response.Error(c, err)
		return
	}
	trx, err := h.dispatcher.Reconcile(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionResponse(trx))
}

// ListAlerts handles GET /api/v1/admin/transactions/:uuid/alerts.
func (h *AdminHandler) ListAlerts(c *gin.Context) {
	id, err := uuidParam(c, "uuid")
	if err != nil {
		response.Error(c, err)
		return
	}
	alerts, err := h.limitAdmin.ListAlerts(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if alerts == nil {
		alerts = []domain.LimitAlert{}
	}
	response.OK(c, alerts)
}

// AcknowledgeAlert handles POST /api/v1/admin/alerts/:id/ack.
func (h *AdminHandler) AcknowledgeAlert(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.AcknowledgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	alert, err := h.limitAdmin.AcknowledgeAlert(c.Request.Context(), id, domain.AlertAcknowledgement{
		Actor: middleware.Subject(c),
		Note:  req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, alert)
}
