package usecase

import (
	"context"
	"time"

	"github.com/rmacedo/contas/internal/domain"
)

// ListFilter narrows listing queries. Zero values mean "no constraint".
type ListFilter struct {
	HolderName string
	Status     string
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

// SaleRepository defines data access for sales.
type SaleRepository interface {
	Create(ctx context.Context, tx Transaction, sale *domain.Sale) error
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Sale, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Sale, error)
	Update(ctx context.Context, tx Transaction, sale *domain.Sale) error
	Delete(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Sale, error)
}

// DebtRepository defines data access for debts.
type DebtRepository interface {
	Create(ctx context.Context, tx Transaction, debt *domain.Debt) error
	GetByID(ctx context.Context, id string) (*domain.Debt, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Debt, error)
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Debt, error)
	Update(ctx context.Context, tx Transaction, debt *domain.Debt) error
	Delete(ctx context.Context, tx Transaction, id string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Debt, error)
}

// InstrumentRepository defines data access for checks and boletos.
type InstrumentRepository interface {
	CreateBatch(ctx context.Context, tx Transaction, instruments []*domain.Instrument) error
	GetByID(ctx context.Context, id string) (*domain.Instrument, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Instrument, error)
	Update(ctx context.Context, tx Transaction, instrument *domain.Instrument) error
	DeleteByParent(ctx context.Context, tx Transaction, parentKind domain.ParentKind, parentID string) error
	ListByParent(ctx context.Context, parentKind domain.ParentKind, parentID string) ([]*domain.Instrument, error)
	// ListReceivableDue returns pending sale-linked boletos and third-party
	// sale checks due inside [from, to].
	ListReceivableDue(ctx context.Context, from, to time.Time) ([]*domain.Instrument, error)
	// ListPayableDue returns pending company-payable instruments due inside
	// [from, to].
	ListPayableDue(ctx context.Context, from, to time.Time) ([]*domain.Instrument, error)
}

// PermutaRepository defines data access for trade-in credits. Update
// performs an optimistic version check and returns
// domain.ErrConcurrentModification on mismatch.
type PermutaRepository interface {
	Create(ctx context.Context, permuta *domain.Permuta) error
	GetByID(ctx context.Context, id string) (*domain.Permuta, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Permuta, error)
	Update(ctx context.Context, tx Transaction, permuta *domain.Permuta) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Permuta, error)
}

// AcertoRepository defines data access for running accounts. Lookup is by
// canonical holder key. Update performs an optimistic version check and
// returns domain.ErrConcurrentModification on mismatch.
type AcertoRepository interface {
	Create(ctx context.Context, tx Transaction, acerto *domain.Acerto) error
	GetByID(ctx context.Context, id string) (*domain.Acerto, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Acerto, error)
	GetByHolderForUpdate(ctx context.Context, tx Transaction, holderKey string, kind domain.HolderKind) (*domain.Acerto, error)
	Update(ctx context.Context, tx Transaction, acerto *domain.Acerto) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Acerto, error)
	// ListOutstanding returns acertos with pending or partial status whose
	// expected payment date falls inside [from, to].
	ListOutstanding(ctx context.Context, kind domain.HolderKind, from, to time.Time) ([]*domain.Acerto, error)
}

// TaxRepository defines data access for tax obligations.
type TaxRepository interface {
	Create(ctx context.Context, tax *domain.Tax) error
	GetByID(ctx context.Context, id string) (*domain.Tax, error)
	Update(ctx context.Context, tax *domain.Tax) error
	Delete(ctx context.Context, id string) error
	ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Tax, error)
}

// CommissionRepository defines data access for seller commissions.
type CommissionRepository interface {
	Create(ctx context.Context, tx Transaction, commission *domain.Commission) error
	GetByID(ctx context.Context, id string) (*domain.Commission, error)
	GetByIDForUpdate(ctx context.Context, tx Transaction, id string) (*domain.Commission, error)
	GetBySale(ctx context.Context, saleID string) (*domain.Commission, error)
	Update(ctx context.Context, tx Transaction, commission *domain.Commission) error
	DeleteBySale(ctx context.Context, tx Transaction, saleID string) error
	List(ctx context.Context, filter ListFilter) ([]*domain.Commission, error)
}

// CashFlowLedger receives realized amounts: instant payments at creation,
// cleared instruments, acerto pay-downs. Entries are written inside the
// caller's transaction so the notification shares its atomicity.
type CashFlowLedger interface {
	Record(ctx context.Context, tx Transaction, entry *domain.CashFlowEntry) error
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Clock supplies the current time. Injected so due-date bucketing and
// overdue-day counts stay deterministic under test.
type Clock interface {
	Now() time.Time
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
