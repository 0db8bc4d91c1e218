package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
)

const permutaColumns = `id, holder_name, description, credit_value,
	consumed_value, status, version, created_at, updated_at`

// PermutaRepository implements usecase.PermutaRepository on PostgreSQL
// with an optimistic version column.
type PermutaRepository struct {
	pool *pgxpool.Pool
}

// NewPermutaRepository creates a new PermutaRepository.
func NewPermutaRepository(pool *pgxpool.Pool) *PermutaRepository {
	return &PermutaRepository{pool: pool}
}

// Create inserts a new permuta.
func (r *PermutaRepository) Create(ctx context.Context, permuta *domain.Permuta) error {
	query := `
		INSERT INTO permutas (` + permutaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		permuta.ID,
		permuta.HolderName,
		permuta.Description,
		decimalToNumeric(permuta.CreditValue),
		decimalToNumeric(permuta.ConsumedValue),
		string(permuta.Status),
		permuta.Version,
		timeToPgTimestamptz(permuta.CreatedAt),
		timeToPgTimestamptz(permuta.UpdatedAt),
	)

	return err
}

// GetByID retrieves a permuta by ID.
func (r *PermutaRepository) GetByID(ctx context.Context, id string) (*domain.Permuta, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves a permuta with a row lock.
func (r *PermutaRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Permuta, error) {
	return r.getByID(ctx, txQuerier(tx), id, " FOR UPDATE")
}

func (r *PermutaRepository) getByID(ctx context.Context, q querier, id, suffix string) (*domain.Permuta, error) {
	query := `SELECT ` + permutaColumns + ` FROM permutas WHERE id = $1` + suffix

	permuta, err := scanPermuta(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrPermutaNotFound
		}
		return nil, err
	}

	return permuta, nil
}

// Update rewrites a permuta, bumping its version. Fails with
// domain.ErrConcurrentModification when the in-memory version no longer
// matches the stored row.
func (r *PermutaRepository) Update(ctx context.Context, tx usecase.Transaction, permuta *domain.Permuta) error {
	query := `
		UPDATE permutas
		SET consumed_value = $3, status = $4, version = version + 1, updated_at = $5
		WHERE id = $1 AND version = $2
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		permuta.ID,
		permuta.Version,
		decimalToNumeric(permuta.ConsumedValue),
		string(permuta.Status),
		timeToPgTimestamptz(permuta.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, err := r.GetByID(ctx, permuta.ID); err != nil {
			return err
		}
		return fmt.Errorf("%w: permuta %s", domain.ErrConcurrentModification, permuta.ID)
	}

	permuta.Version++

	return nil
}

// List retrieves permutas with filtering, newest first.
func (r *PermutaRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*domain.Permuta, error) {
	query := `SELECT ` + permutaColumns + ` FROM permutas WHERE 1=1`
	args := []any{}

	if filter.HolderName != "" {
		args = append(args, "%"+filter.HolderName+"%")
		query += fmt.Sprintf(` AND holder_name ILIKE $%d`, len(args))
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

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var permutas []*domain.Permuta
	for rows.Next() {
		permuta, err := scanPermuta(rows)
		if err != nil {
			return nil, err
		}
		permutas = append(permutas, permuta)
	}

	return permutas, rows.Err()
}

func scanPermuta(row pgx.Row) (*domain.Permuta, error) {
	var (
		permuta          domain.Permuta
		credit, consumed pgtype.Numeric
		status           string
	)

	err := row.Scan(
		&permuta.ID,
		&permuta.HolderName,
		&permuta.Description,
		&credit,
		&consumed,
		&status,
		&permuta.Version,
		&permuta.CreatedAt,
		&permuta.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	permuta.CreditValue = numericToDecimal(credit)
	permuta.ConsumedValue = numericToDecimal(consumed)
	permuta.Status = domain.PermutaStatus(status)

	return &permuta, nil
}
