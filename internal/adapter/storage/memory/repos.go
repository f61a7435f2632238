package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// Repository accessors. Each returns a view over the shared store.

func (s *Store) Transactions() *TransactionRepo   { return &TransactionRepo{s} }
func (s *Store) Wallets() *WalletRepo             { return &WalletRepo{s} }
func (s *Store) Entries() *BalanceRepo            { return &BalanceRepo{s} }
func (s *Store) Limits() *LimitRepo               { return &LimitRepo{s} }
func (s *Store) Alerts() *AlertRepo               { return &AlertRepo{s} }
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s} }
func (s *Store) Audit() *AuditRepo                { return &AuditRepo{s} }

// ---- payment transactions ----

// TransactionRepo implements ports.TransactionRepository.
type TransactionRepo struct{ s *Store }

func (r *TransactionRepo) Create(_ context.Context, tx pgx.Tx, t *domain.PaymentTransaction) error {
	mt, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.transactions {
		if existing.MerchantID == t.MerchantID && existing.Type == t.Type && existing.ReferenceID == t.ReferenceID {
			return fmt.Errorf("insert payment transaction: %w", ports.ErrDuplicate)
		}
		if existing.UUID == t.UUID {
			return fmt.Errorf("insert payment transaction: %w", ports.ErrDuplicate)
		}
	}
	s.nextTrxID++
	t.ID = s.nextTrxID
	s.transactions[t.ID] = cloneTrx(t)
	id := t.ID
	mt.record(func() { delete(s.transactions, id) })
	return nil
}

func (r *TransactionRepo) find(match func(*domain.PaymentTransaction) bool) *domain.PaymentTransaction {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.transactions {
		if match(t) {
			return cloneTrx(t)
		}
	}
	return nil
}

func (r *TransactionRepo) GetByID(_ context.Context, id int64) (*domain.PaymentTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if t, ok := r.s.transactions[id]; ok {
		return cloneTrx(t), nil
	}
	return nil, nil
}

func (r *TransactionRepo) GetByUUID(_ context.Context, id uuid.UUID) (*domain.PaymentTransaction, error) {
	return r.find(func(t *domain.PaymentTransaction) bool { return t.UUID == id }), nil
}

func (r *TransactionRepo) GetByProviderID(_ context.Context, provider, providerID string) (*domain.PaymentTransaction, error) {
	return r.find(func(t *domain.PaymentTransaction) bool {
		return t.Provider == provider && t.ProviderID != nil && *t.ProviderID == providerID
	}), nil
}

func (r *TransactionRepo) GetByReference(_ context.Context, merchantID uuid.UUID, trxType domain.TransactionType, referenceID string) (*domain.PaymentTransaction, error) {
	return r.find(func(t *domain.PaymentTransaction) bool {
		return t.MerchantID == merchantID && t.Type == trxType && t.ReferenceID == referenceID
	}), nil
}

func (r *TransactionRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*domain.PaymentTransaction, error) {
	mt, err := r.s.tx(tx)
	if err != nil {
		return nil, err
	}
	if err := r.s.lock(ctx, mt, fmt.Sprintf("trx:%d", id)); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *TransactionRepo) Update(_ context.Context, tx pgx.Tx, t *domain.PaymentTransaction) error {
	mt, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.transactions[t.ID]
	if !ok {
		return fmt.Errorf("payment transaction %d: %w", t.ID, ports.ErrNotFound)
	}
	next := cloneTrx(prev)
	next.Status = t.Status
	next.ProviderID = t.ProviderID
	next.DeclineCode = t.DeclineCode
	next.DeclineReason = t.DeclineReason
	next.Extra = cloneTrx(t).Extra
	next.CheckStatusUntil = t.CheckStatusUntil
	next.UpdatedAt = t.UpdatedAt
	s.transactions[t.ID] = next
	mt.record(func() { s.transactions[prev.ID] = prev })
	return nil
}

func (r *TransactionRepo) ListPending(_ context.Context, p ports.PendingListParams) ([]domain.PaymentTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []domain.PaymentTransaction
	for _, t := range r.s.transactions {
		if t.Status != domain.TransactionStatusPending {
			continue
		}
		if p.ExpiredAt != nil && (t.CheckStatusUntil == nil || t.CheckStatusUntil.After(*p.ExpiredAt)) {
			continue
		}
		if p.IdleSince != nil && t.UpdatedAt.After(*p.IdleSince) {
			continue
		}
		list = append(list, *cloneTrx(t))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if p.Limit > 0 && len(list) > p.Limit {
		list = list[:p.Limit]
	}
	return list, nil
}

func (r *TransactionRepo) WindowStats(_ context.Context, f ports.StatsFilter) (*domain.LimitStatistics, error) {
	if f.CustomerID == nil && f.MerchantID == nil {
		return nil, fmt.Errorf("window stats: owner filter is required")
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stats := &domain.LimitStatistics{WindowStart: f.Since, SuccessAmount: decimal.Zero}
	for _, t := range r.s.transactions {
		switch {
		case f.CustomerID != nil && (t.CustomerID == nil || *t.CustomerID != *f.CustomerID):
			continue
		case f.MerchantID != nil && t.MerchantID != *f.MerchantID:
			continue
		case f.Type != nil && t.Type != *f.Type:
			continue
		case f.Currency != "" && t.Currency != f.Currency:
			continue
		case !f.Since.IsZero() && t.CreatedAt.Before(f.Since):
			continue
		}
		switch {
		case t.Status.ReachedSuccess():
			stats.SuccessCount++
			stats.SuccessAmount = stats.SuccessAmount.Add(t.Amount)
		case t.Status == domain.TransactionStatusFailed:
			if t.DeclineCode == nil || *t.DeclineCode != f.ExcludeDeclineCode {
				stats.FailedCount++
			}
		}
	}
	return stats, nil
}

// ---- currency wallets ----

// WalletRepo implements ports.CurrencyWalletRepository.
type WalletRepo struct{ s *Store }

func (r *WalletRepo) Create(_ context.Context, w *domain.CurrencyWallet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.wallets[w.ID]; ok {
		return fmt.Errorf("insert currency wallet: %w", ports.ErrDuplicate)
	}
	c := *w
	r.s.wallets[w.ID] = &c
	return nil
}

func (r *WalletRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.CurrencyWallet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if w, ok := r.s.wallets[id]; ok {
		c := *w
		return &c, nil
	}
	return nil, nil
}

func (r *WalletRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.CurrencyWallet, error) {
	mt, err := r.s.tx(tx)
	if err != nil {
		return nil, err
	}
	if err := r.s.lock(ctx, mt, "wallet:"+id.String()); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r *WalletRepo) UpdateBalances(_ context.Context, tx pgx.Tx, id uuid.UUID, b domain.Balances) error {
	mt, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[id]
	if !ok {
		return fmt.Errorf("currency wallet %s: %w", id, ports.ErrNotFound)
	}
	prev := *w
	next := *w
	next.Balances = b
	next.UpdatedAt = time.Now().UTC()
	s.wallets[id] = &next
	mt.record(func() { s.wallets[id] = &prev })
	return nil
}

// ---- ledger journal ----

// BalanceRepo implements ports.BalanceTransactionRepository.
type BalanceRepo struct{ s *Store }

func (r *BalanceRepo) Create(_ context.Context, tx pgx.Tx, e *domain.BalanceTransaction) error {
	mt, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append(s.entries, *e)
	id := e.ID
	mt.record(func() {
		for i := len(s.entries) - 1; i >= 0; i-- {
			if s.entries[i].ID == id {
				s.entries = append(s.entries[:i], s.entries[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (r *BalanceRepo) ListByWallet(_ context.Context, walletID uuid.UUID, limit int) ([]domain.BalanceTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []domain.BalanceTransaction
	for i := len(r.s.entries) - 1; i >= 0; i-- {
		if r.s.entries[i].CurrencyWalletID == walletID {
			list = append(list, r.s.entries[i])
			if limit > 0 && len(list) == limit {
				break
			}
		}
	}
	return list, nil
}

func (r *BalanceRepo) ListByTransaction(_ context.Context, trxID int64) ([]domain.BalanceTransaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []domain.BalanceTransaction
	for _, e := range r.s.entries {
		if e.TransactionID != nil && *e.TransactionID == trxID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (r *BalanceRepo) Totals(_ context.Context, walletID uuid.UUID) (*ports.LedgerTotals, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t := &ports.LedgerTotals{Operational: decimal.Zero, Frozen: decimal.Zero, Pending: decimal.Zero}
	for _, e := range r.s.entries {
		if e.CurrencyWalletID != walletID {
			continue
		}
		d := e.Delta()
		t.Operational = t.Operational.Add(e.Amount)
		t.Frozen = t.Frozen.Add(d.Frozen)
		t.Pending = t.Pending.Add(d.Pending)
		t.Entries++
	}
	return t, nil
}

// ---- limits and alerts ----

// LimitRepo implements ports.LimitRepository.
type LimitRepo struct{ s *Store }

func (r *LimitRepo) Create(_ context.Context, l *domain.Limit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c := *l
	r.s.limits[l.ID] = &c
	return nil
}

func (r *LimitRepo) Update(_ context.Context, l *domain.Limit) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.limits[l.ID]; !ok {
		return fmt.Errorf("limit %s: %w", l.ID, ports.ErrNotFound)
	}
	c := *l
	r.s.limits[l.ID] = &c
	return nil
}

func (r *LimitRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Limit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.limits[id]; ok {
		c := *l
		return &c, nil
	}
	return nil, nil
}

func (r *LimitRepo) ListActive(_ context.Context, scope domain.LimitScope, ownerID uuid.UUID) ([]domain.Limit, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := []domain.Limit{}
	for _, l := range r.s.limits {
		if l.Active && l.Scope == scope && l.OwnerID == ownerID {
			list = append(list, *l)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

// AlertRepo implements ports.LimitAlertRepository.
type AlertRepo struct{ s *Store }

func (r *AlertRepo) Create(_ context.Context, tx pgx.Tx, a *domain.LimitAlert) error {
	mt, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts[a.ID] = cloneAlert(a)
	id := a.ID
	mt.record(func() { delete(s.alerts, id) })
	return nil
}

func (r *AlertRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.LimitAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.alerts[id]; ok {
		return cloneAlert(a), nil
	}
	return nil, nil
}

func (r *AlertRepo) ListByTransaction(_ context.Context, trxUUID uuid.UUID) ([]domain.LimitAlert, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	list := []domain.LimitAlert{}
	for _, a := range r.s.alerts {
		if a.TransactionUUID == trxUUID {
			list = append(list, *cloneAlert(a))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	return list, nil
}

func (r *AlertRepo) AddAcknowledgement(_ context.Context, id uuid.UUID, ack domain.AlertAcknowledgement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.alerts[id]
	if !ok {
		return fmt.Errorf("limit alert %s: %w", id, ports.ErrNotFound)
	}
	a.Acknowledgements = append(a.Acknowledgements, ack)
	return nil
}

// ---- outbox and audit ----

// NotificationRepo implements ports.NotificationRepository.
type NotificationRepo struct{ s *Store }

func (r *NotificationRepo) Create(_ context.Context, tx pgx.Tx, n *domain.MerchantNotification) error {
	mt, err := r.s.tx(tx)
	if err != nil {
		return err
	}
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *n
	s.notifications = append(s.notifications, &c)
	id := n.ID
	mt.record(func() {
		for i, x := range s.notifications {
			if x.ID == id {
				s.notifications = append(s.notifications[:i], s.notifications[i+1:]...)
				return
			}
		}
	})
	return nil
}

func (r *NotificationRepo) ListUnpublished(_ context.Context, limit int) ([]domain.MerchantNotification, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var list []domain.MerchantNotification
	for _, n := range r.s.notifications {
		if n.State == domain.NotificationStatePending {
			list = append(list, *n)
			if limit > 0 && len(list) == limit {
				break
			}
		}
	}
	return list, nil
}

func (r *NotificationRepo) MarkPublished(_ context.Context, id uuid.UUID, at time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.ID == id {
			n.State = domain.NotificationStatePublished
			n.PublishedAt = &at
			n.Attempts++
			n.LastError = nil
			return nil
		}
	}
	return fmt.Errorf("notification %s: %w", id, ports.ErrNotFound)
}

func (r *NotificationRepo) MarkFailed(_ context.Context, id uuid.UUID, errMsg string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, n := range r.s.notifications {
		if n.ID == id {
			n.Attempts++
			n.LastError = &errMsg
			return nil
		}
	}
	return nil
}

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct{ s *Store }

func (r *AuditRepo) Create(_ context.Context, log *domain.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.audit = append(r.s.audit, *log)
	return nil
}

// AuditEntries returns a copy of the audit trail.
func (s *Store) AuditEntries() []domain.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.AuditLog(nil), s.audit...)
}

var (
	_ ports.DBTransactor                 = (*Store)(nil)
	_ ports.HealthChecker                = (*Store)(nil)
	_ ports.TransactionRepository        = (*TransactionRepo)(nil)
	_ ports.CurrencyWalletRepository     = (*WalletRepo)(nil)
	_ ports.BalanceTransactionRepository = (*BalanceRepo)(nil)
	_ ports.LimitRepository              = (*LimitRepo)(nil)
	_ ports.LimitAlertRepository         = (*AlertRepo)(nil)
	_ ports.NotificationRepository       = (*NotificationRepo)(nil)
	_ ports.AuditRepository              = (*AuditRepo)(nil)
)
