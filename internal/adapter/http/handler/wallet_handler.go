package handler

import (
	"strconv"

	"payment-hub/internal/adapter/http/dto"
	"payment-hub/internal/adapter/http/middleware"
	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"
	"payment-hub/pkg/apperror"
	"payment-hub/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	defaultEntriesLimit = 50
	maxEntriesLimit     = 500
)

// WalletHandler exposes currency wallet balances and the journal.
type WalletHandler struct {
	ledger ports.LedgerService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(ledger ports.LedgerService) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

// GetWallet handles GET /api/v1/wallets/:id.
func (h *WalletHandler) GetWallet(c *gin.Context) {
	wallet, ok := h.ownedWallet(c)
	if !ok {
		return
	}
	response.OK(c, wallet)
}

// ListEntries handles GET /api/v1/wallets/:id/entries?limit=N.
func (h *WalletHandler) ListEntries(c *gin.Context) {
	wallet, ok := h.ownedWallet(c)
	if !ok {
		return
	}

	limit := defaultEntriesLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.Error(c, apperror.Validation("limit must be a positive integer"))
			return
		}
		limit = min(n, maxEntriesLimit)
	}

	entries, err := h.ledger.ListEntries(c.Request.Context(), wallet.ID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, entries)
}

// ownedWallet loads the wallet in :id and hides wallets of other merchants.
func (h *WalletHandler) ownedWallet(c *gin.Context) (*domain.CurrencyWallet, bool) {
	merchantID, ok := middleware.MerchantID(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return nil, false
	}
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return nil, false
	}

	wallet, err := h.ledger.GetWallet(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	if wallet.MerchantID != merchantID {
		response.Error(c, apperror.ErrNotFound("currency wallet"))
		return nil, false
	}
	return wallet, true
}

// Adjust handles POST /api/v1/admin/wallets/:id/adjustments.
func (h *WalletHandler) Adjust(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.AdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)
	c.Set(middleware.CtxAuditDetails, req)

	entry, err := h.ledger.Adjust(c.Request.Context(), ports.AdjustmentRequest{
		CurrencyWalletID: id,
		Amount:           req.Amount,
		Actor:            middleware.Subject(c),
		Reason:           req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, entry)
}

// Verify handles GET /api/v1/admin/wallets/:id/verify.
func (h *WalletHandler) Verify(c *gin.Context) {
	id, err := uuidParam(c, "id")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.ledger.VerifyWallet(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}
