// Package memory is an in-process implementation of the persistence ports.
// It backs dev mode (storage.driver=memory) and the concurrency tests.
//
// Writes are applied immediately and undone on rollback, so non-locking reads
// may observe uncommitted rows. Locking reads (the ...ForUpdate methods) wait
// for the holder to commit or roll back, which is the isolation the engine
// relies on.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"payment-hub/internal/core/domain"
	"payment-hub/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var errForeignTx = errors.New("memory: transaction does not belong to this store")

// Store holds all tables behind one mutex and a keyed row-lock map.
type Store struct {
	mu          sync.Mutex
	lockTimeout time.Duration
	locks       map[string]*rowLock

	nextTrxID     int64
	transactions  map[int64]*domain.PaymentTransaction
	wallets       map[uuid.UUID]*domain.CurrencyWallet
	entries       []domain.BalanceTransaction
	limits        map[uuid.UUID]*domain.Limit
	alerts        map[uuid.UUID]*domain.LimitAlert
	notifications []*domain.MerchantNotification
	audit         []domain.AuditLog
}

// NewStore creates an empty store. lockTimeout bounds every row lock wait.
func NewStore(lockTimeout time.Duration) *Store {
	if lockTimeout <= 0 {
		lockTimeout = 3 * time.Second
	}
	return &Store{
		lockTimeout:  lockTimeout,
		locks:        make(map[string]*rowLock),
		transactions: make(map[int64]*domain.PaymentTransaction),
		wallets:      make(map[uuid.UUID]*domain.CurrencyWallet),
		limits:       make(map[uuid.UUID]*domain.Limit),
		alerts:       make(map[uuid.UUID]*domain.LimitAlert),
	}
}

// Begin implements ports.DBTransactor.
func (s *Store) Begin(_ context.Context) (pgx.Tx, error) {
	return &Tx{store: s}, nil
}

// Ping implements ports.HealthChecker.
func (s *Store) Ping(_ context.Context) error { return nil }

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "memory" }

// Tx is a unit of work. Only Commit and Rollback are meaningful; the embedded
// pgx.Tx is nil and must not be used for SQL.
type Tx struct {
	pgx.Tx
	store *Store
	held  []string
	undo  []func()
	done  bool
}

// Commit keeps the writes and releases every row lock.
func (t *Tx) Commit(_ context.Context) error {
	if t.done {
		return pgx.ErrTxClosed
	}
	t.done = true
	t.undo = nil
	t.store.release(t)
	return nil
}

// Rollback undoes the writes in reverse order. It is a no-op after Commit.
func (t *Tx) Rollback(_ context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.store.mu.Lock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.store.mu.Unlock()
	t.undo = nil
	t.store.release(t)
	return nil
}

// rowLock is a mutex with a timed acquire. A token in ch means unlocked.
type rowLock struct {
	ch    chan struct{}
	owner *Tx
}

func (s *Store) tx(tx pgx.Tx) (*Tx, error) {
	t, ok := tx.(*Tx)
	if !ok || t.store != s {
		return nil, errForeignTx
	}
	if t.done {
		return nil, pgx.ErrTxClosed
	}
	return t, nil
}

// lock acquires key for t. Locks are reentrant within a transaction.
func (s *Store) lock(ctx context.Context, t *Tx, key string) error {
	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &rowLock{ch: make(chan struct{}, 1)}
		l.ch <- struct{}{}
		s.locks[key] = l
	}
	if l.owner == t {
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	timer := time.NewTimer(s.lockTimeout)
	defer timer.Stop()

	select {
	case <-l.ch:
		s.mu.Lock()
		l.owner = t
		s.mu.Unlock()
		t.held = append(t.held, key)
		return nil
	case <-timer.C:
		return fmt.Errorf("lock %s: %w", key, ports.ErrLockTimeout)
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) release(t *Tx) {
	for _, key := range t.held {
		s.mu.Lock()
		l := s.locks[key]
		l.owner = nil
		s.mu.Unlock()
		l.ch <- struct{}{}
	}
	t.held = nil
}

// record registers an undo step. Callers hold s.mu.
func (t *Tx) record(fn func()) {
	t.undo = append(t.undo, fn)
}

func cloneTrx(t *domain.PaymentTransaction) *domain.PaymentTransaction {
	c := *t
	if t.Extra.Fields != nil {
		c.Extra.Fields = make(map[string]string, len(t.Extra.Fields))
		for k, v := range t.Extra.Fields {
			c.Extra.Fields[k] = v
		}
	}
	return &c
}

func cloneAlert(a *domain.LimitAlert) *domain.LimitAlert {
	c := *a
	c.Reasons = append([]string(nil), a.Reasons...)
	c.Acknowledgements = append([]domain.AlertAcknowledgement{}, a.Acknowledgements...)
	return &c
}
