package integration

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"seller-payout-vault/internal/core/domain"
	"seller-payout-vault/internal/core/ports"
)

// memStore backs the in-memory repositories used by integration
// tests. Per-seller mutexes emulate the row lock the real storage
// takes, so concurrency behavior matches production.
type memStore struct {
	mu          sync.Mutex
	sellers     map[uuid.UUID]*domain.Seller
	methods     map[uuid.UUID]*domain.PayoutMethod
	audits      []domain.AuditLog
	sellerLocks map[uuid.UUID]*sync.Mutex
}

func newMemStore() *memStore {
	return &memStore{
		sellers:     make(map[uuid.UUID]*domain.Seller),
		methods:     make(map[uuid.UUID]*domain.PayoutMethod),
		sellerLocks: make(map[uuid.UUID]*sync.Mutex),
	}
}

func (s *memStore) sellerLock(id uuid.UUID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.sellerLocks[id]
	if !ok {
		l = &sync.Mutex{}
		s.sellerLocks[id] = l
	}
	return l
}

// memTx emulates a transaction holding row locks until Commit or
// Rollback. Only the embedded methods the services call are overridden.
type memTx struct {
	pgx.Tx
	mu    sync.Mutex
	locks []*sync.Mutex
	done  bool
}

func (t *memTx) acquire(l *sync.Mutex) {
	l.Lock()
	t.mu.Lock()
	t.locks = append(t.locks, l)
	t.mu.Unlock()
}

func (t *memTx) finish() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.done {
		return
	}
	t.done = true
	for _, l := range t.locks {
		l.Unlock()
	}
}

func (t *memTx) Commit(ctx context.Context) error   { t.finish(); return nil }
func (t *memTx) Rollback(ctx context.Context) error { t.finish(); return nil }

// memTransactor hands out memTx instances.
type memTransactor struct{}

func (memTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &memTx{}, nil
}

// memSellerRepo is an in-memory ports.SellerRepository.
type memSellerRepo struct {
	store *memStore
}

func (r *memSellerRepo) Create(ctx context.Context, seller *domain.Seller) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *seller
	r.store.sellers[seller.ID] = &cp
	return nil
}

func (r *memSellerRepo) GetByEmail(ctx context.Context, email string) (*domain.Seller, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, s := range r.store.sellers {
		if s.Email == email {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memSellerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Seller, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	s, ok := r.store.sellers[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *memSellerRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.Seller, error) {
	if mt, ok := tx.(*memTx); ok {
		mt.acquire(r.store.sellerLock(id))
	}
	return r.GetByID(ctx, id)
}

// memPayoutMethodRepo is an in-memory ports.PayoutMethodRepository.
type memPayoutMethodRepo struct {
	store *memStore
}

func (r *memPayoutMethodRepo) Create(ctx context.Context, tx pgx.Tx, m *domain.PayoutMethod) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *m
	r.store.methods[m.ID] = &cp
	return nil
}

func (r *memPayoutMethodRepo) GetByID(ctx context.Context, id, sellerID uuid.UUID) (*domain.PayoutMethod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	m, ok := r.store.methods[id]
	if !ok || m.SellerID != sellerID {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *memPayoutMethodRepo) GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id, sellerID uuid.UUID) (*domain.PayoutMethod, error) {
	return r.GetByID(ctx, id, sellerID)
}

func (r *memPayoutMethodRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID) ([]domain.PayoutMethod, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.PayoutMethod
	for _, m := range r.store.methods {
		if m.SellerID == sellerID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AddedAt.Before(out[j].AddedAt) })
	return out, nil
}

func (r *memPayoutMethodRepo) CountByKind(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID, kind domain.PayoutMethodKind) (int, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	count := 0
	for _, m := range r.store.methods {
		if m.SellerID == sellerID && m.Kind == kind {
			count++
		}
	}
	return count, nil
}

func (r *memPayoutMethodRepo) ClearDefault(ctx context.Context, tx pgx.Tx, sellerID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	for _, m := range r.store.methods {
		if m.SellerID == sellerID {
			m.IsDefault = false
		}
	}
	return nil
}

func (r *memPayoutMethodRepo) Update(ctx context.Context, tx pgx.Tx, m *domain.PayoutMethod) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	cp := *m
	r.store.methods[m.ID] = &cp
	return nil
}

func (r *memPayoutMethodRepo) Delete(ctx context.Context, tx pgx.Tx, id, sellerID uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	delete(r.store.methods, id)
	return nil
}

// memAuditRepo is an in-memory ports.AuditRepository.
type memAuditRepo struct {
	store *memStore
}

func (r *memAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.audits = append(r.store.audits, *log)
	return nil
}

func (r *memAuditRepo) ListBySeller(ctx context.Context, sellerID uuid.UUID, limit, offset int) ([]domain.AuditLog, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	var out []domain.AuditLog
	for _, a := range r.store.audits {
		if a.SellerID != nil && *a.SellerID == sellerID {
			out = append(out, a)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var (
	_ ports.SellerRepository       = (*memSellerRepo)(nil)
	_ ports.PayoutMethodRepository = (*memPayoutMethodRepo)(nil)
	_ ports.AuditRepository        = (*memAuditRepo)(nil)
	_ ports.DBTransactor           = memTransactor{}
)
