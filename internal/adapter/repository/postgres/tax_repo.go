package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmacedo/contas/internal/domain"
)

const taxColumns = `id, tax_type, description, amount, due_date,
	reference_period, paid, created_at, updated_at`

// TaxRepository implements usecase.TaxRepository on PostgreSQL.
type TaxRepository struct {
	pool *pgxpool.Pool
}

// NewTaxRepository creates a new TaxRepository.
func NewTaxRepository(pool *pgxpool.Pool) *TaxRepository {
	return &TaxRepository{pool: pool}
}

// Create inserts a tax obligation.
func (r *TaxRepository) Create(ctx context.Context, tax *domain.Tax) error {
	query := `
		INSERT INTO taxes (` + taxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.pool.Exec(ctx, query,
		tax.ID,
		tax.TaxType,
		tax.Description,
		decimalToNumeric(tax.Amount),
		timeToPgDate(tax.DueDate),
		tax.ReferencePeriod,
		tax.Paid,
		timeToPgTimestamptz(tax.CreatedAt),
		timeToPgTimestamptz(tax.UpdatedAt),
	)

	return err
}

// GetByID retrieves a tax obligation by ID.
func (r *TaxRepository) GetByID(ctx context.Context, id string) (*domain.Tax, error) {
	query := `SELECT ` + taxColumns + ` FROM taxes WHERE id = $1`

	tax, err := scanTax(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTaxNotFound
		}
		return nil, err
	}

	return tax, nil
}

// Update rewrites a tax obligation.
func (r *TaxRepository) Update(ctx context.Context, tax *domain.Tax) error {
	query := `
		UPDATE taxes
		SET tax_type = $2, description = $3, amount = $4, due_date = $5,
		    reference_period = $6, paid = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		tax.ID,
		tax.TaxType,
		tax.Description,
		decimalToNumeric(tax.Amount),
		timeToPgDate(tax.DueDate),
		tax.ReferencePeriod,
		tax.Paid,
		timeToPgTimestamptz(tax.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaxNotFound
	}

	return nil
}

// Delete removes a tax obligation.
func (r *TaxRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM taxes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTaxNotFound
	}

	return nil
}

// ListDueBetween retrieves tax obligations due inside [from, to].
func (r *TaxRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Tax, error) {
	query := `
		SELECT ` + taxColumns + `
		FROM taxes
		WHERE due_date >= $1 AND due_date <= $2
		ORDER BY due_date
	`

	rows, err := r.pool.Query(ctx, query, timeToPgDate(from), timeToPgDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var taxes []*domain.Tax
	for rows.Next() {
		tax, err := scanTax(rows)
		if err != nil {
			return nil, err
		}
		taxes = append(taxes, tax)
	}

	return taxes, rows.Err()
}

func scanTax(row pgx.Row) (*domain.Tax, error) {
	var (
		tax    domain.Tax
		amount pgtype.Numeric
	)

	err := row.Scan(
		&tax.ID,
		&tax.TaxType,
		&tax.Description,
		&amount,
		&tax.DueDate,
		&tax.ReferencePeriod,
		&tax.Paid,
		&tax.CreatedAt,
		&tax.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	tax.Amount = numericToDecimal(amount)

	return &tax, nil
}
