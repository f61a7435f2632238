package handler

import (
	"payment-hub/internal/adapter/http/dto"
	"payment-hub/internal/adapter/http/middleware"
	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"
	"payment-hub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TransactionHandler handles the merchant payment endpoints.
type TransactionHandler struct {
	paymentSvc ports.PaymentService
}

// NewTransactionHandler creates a new TransactionHandler.
func NewTransactionHandler(paymentSvc ports.PaymentService) *TransactionHandler {
	return &TransactionHandler{paymentSvc: paymentSvc}
}

// CreateDeposit handles POST /api/v1/deposits.
func (h *TransactionHandler) CreateDeposit(c *gin.Context) {
	merchantID, ok := middleware.MerchantID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	trx, err := h.paymentSvc.CreateDeposit(c.Request.Context(), paymentRequest(c, merchantID, req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewTransactionResponse(trx))
}

// CreateWithdrawal handles POST /api/v1/withdrawals.
func (h *TransactionHandler) CreateWithdrawal(c *gin.Context) {
	merchantID, ok := middleware.MerchantID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.WithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	preq := paymentRequest(c, merchantID, req.DepositRequest)
	preq.Destination = req.Destination
	trx, err := h.paymentSvc.CreateWithdrawal(c.Request.Context(), preq)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewTransactionResponse(trx))
}

// GetTransaction handles GET /api/v1/transactions/:uuid.
func (h *TransactionHandler) GetTransaction(c *gin.Context) {
	merchantID, ok := middleware.MerchantID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	id, err := uuidParam(c, "uuid")
	if err != nil {
		response.Error(c, err)
		return
	}

	trx, err := h.paymentSvc.GetTransaction(c.Request.Context(), merchantID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewTransactionResponse(trx))
}

func paymentRequest(c *gin.Context, merchantID uuid.UUID, req dto.DepositRequest) ports.PaymentRequest {
	out := ports.PaymentRequest{
		MerchantID:       merchantID,
		CurrencyWalletID: uuid.MustParse(req.CurrencyWalletID),
		ReferenceID:      req.ReferenceID,
		Amount:           req.Amount,
		Currency:         req.Currency,
		Fields:           req.Fields,
		Client: domain.ClientInfo{
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Locale:    req.Locale,
			ReturnURL: req.ReturnURL,
		},
	}
	if req.CustomerID != nil {
		id := uuid.MustParse(*req.CustomerID)
		out.CustomerID = &id
	}
	return out
}
