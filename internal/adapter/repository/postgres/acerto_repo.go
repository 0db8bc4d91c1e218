package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
)

const acertoColumns = `id, holder_name, holder_key, kind, total_amount,
	paid_amount, payment_date, status, version, contributions, created_at, updated_at`

// AcertoRepository implements usecase.AcertoRepository on PostgreSQL.
// The canonical holder key is stored denormalized so holder lookups hit an
// index instead of normalizing names in SQL.
type AcertoRepository struct {
	pool *pgxpool.Pool
}

// NewAcertoRepository creates a new AcertoRepository.
func NewAcertoRepository(pool *pgxpool.Pool) *AcertoRepository {
	return &AcertoRepository{pool: pool}
}

// Create inserts an acerto within a transaction.
func (r *AcertoRepository) Create(ctx context.Context, tx usecase.Transaction, acerto *domain.Acerto) error {
	contributions, err := json.Marshal(acerto.Contributions)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO acertos (` + acertoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err = txQuerier(tx).Exec(ctx, query,
		acerto.ID,
		acerto.HolderName,
		domain.HolderKey(acerto.HolderName),
		string(acerto.Kind),
		decimalToNumeric(acerto.TotalAmount),
		decimalToNumeric(acerto.PaidAmount),
		paymentDateArg(acerto.PaymentDate),
		string(acerto.Status),
		acerto.Version,
		contributions,
		timeToPgTimestamptz(acerto.CreatedAt),
		timeToPgTimestamptz(acerto.UpdatedAt),
	)

	return err
}

// GetByID retrieves an acerto by ID.
func (r *AcertoRepository) GetByID(ctx context.Context, id string) (*domain.Acerto, error) {
	query := `SELECT ` + acertoColumns + ` FROM acertos WHERE id = $1`

	acerto, err := scanAcerto(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAcertoNotFound
		}
		return nil, err
	}

	return acerto, nil
}

// GetByIDForUpdate retrieves an acerto with a row lock.
func (r *AcertoRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Acerto, error) {
	query := `SELECT ` + acertoColumns + ` FROM acertos WHERE id = $1 FOR UPDATE`

	acerto, err := scanAcerto(txQuerier(tx).QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAcertoNotFound
		}
		return nil, err
	}

	return acerto, nil
}

// GetByHolderForUpdate locks and retrieves the open acerto of one holder.
func (r *AcertoRepository) GetByHolderForUpdate(ctx context.Context, tx usecase.Transaction, holderKey string, kind domain.HolderKind) (*domain.Acerto, error) {
	query := `
		SELECT ` + acertoColumns + `
		FROM acertos
		WHERE holder_key = $1 AND kind = $2 AND status != 'paid'
		ORDER BY created_at
		LIMIT 1
		FOR UPDATE
	`

	acerto, err := scanAcerto(txQuerier(tx).QueryRow(ctx, query, holderKey, string(kind)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAcertoNotFound
		}
		return nil, err
	}

	return acerto, nil
}

// Update rewrites an acerto, bumping its version. Fails with
// domain.ErrConcurrentModification when the in-memory version no longer
// matches the stored row.
func (r *AcertoRepository) Update(ctx context.Context, tx usecase.Transaction, acerto *domain.Acerto) error {
	contributions, err := json.Marshal(acerto.Contributions)
	if err != nil {
		return err
	}

	query := `
		UPDATE acertos
		SET total_amount = $3, paid_amount = $4, payment_date = $5, status = $6,
		    contributions = $7, version = version + 1, updated_at = $8
		WHERE id = $1 AND version = $2
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		acerto.ID,
		acerto.Version,
		decimalToNumeric(acerto.TotalAmount),
		decimalToNumeric(acerto.PaidAmount),
		paymentDateArg(acerto.PaymentDate),
		string(acerto.Status),
		contributions,
		timeToPgTimestamptz(acerto.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, acerto.ID); err != nil {
			return err
		}
		return fmt.Errorf("%w: acerto %s", domain.ErrConcurrentModification, acerto.ID)
	}

	acerto.Version++

	return nil
}

// List retrieves acertos with filtering.
func (r *AcertoRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*domain.Acerto, error) {
	query := `SELECT ` + acertoColumns + ` FROM acertos WHERE 1=1`
	args := []any{}

	if filter.HolderName != "" {
		args = append(args, domain.HolderKey(filter.HolderName))
		query += fmt.Sprintf(` AND holder_key = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}

	query += ` ORDER BY created_at DESC, id DESC`

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	return r.list(ctx, query, args...)
}

// ListOutstanding retrieves unpaid acertos of one side. Acertos without an
// agreed payment date are included as long as the window is open-ended on
// their side.
func (r *AcertoRepository) ListOutstanding(ctx context.Context, kind domain.HolderKind, from, to time.Time) ([]*domain.Acerto, error) {
	query := `
		SELECT ` + acertoColumns + `
		FROM acertos
		WHERE kind = $1 AND status != 'paid'
		  AND (payment_date IS NULL OR (payment_date >= $2 AND payment_date <= $3))
		ORDER BY payment_date NULLS LAST, created_at
	`

	return r.list(ctx, query, string(kind), timeToPgDate(from), timeToPgDate(to))
}

func (r *AcertoRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Acerto, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var acertos []*domain.Acerto
	for rows.Next() {
		acerto, err := scanAcerto(rows)
		if err != nil {
			return nil, err
		}
		acertos = append(acertos, acerto)
	}

	return acertos, rows.Err()
}

func scanAcerto(row pgx.Row) (*domain.Acerto, error) {
	var (
		acerto        domain.Acerto
		holderKey     string
		kind, status  string
		total, paid   pgtype.Numeric
		paymentDate   pgtype.Date
		contributions []byte
	)

	err := row.Scan(
		&acerto.ID,
		&acerto.HolderName,
		&holderKey,
		&kind,
		&total,
		&paid,
		&paymentDate,
		&status,
		&acerto.Version,
		&contributions,
		&acerto.CreatedAt,
		&acerto.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(contributions, &acerto.Contributions); err != nil {
		return nil, err
	}

	acerto.Kind = domain.HolderKind(kind)
	acerto.Status = domain.AcertoStatus(status)
	acerto.TotalAmount = numericToDecimal(total)
	acerto.PaidAmount = numericToDecimal(paid)
	if paymentDate.Valid {
		d := paymentDate.Time
		acerto.PaymentDate = &d
	}

	return &acerto, nil
}

func paymentDateArg(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: *t, Valid: true}
}
