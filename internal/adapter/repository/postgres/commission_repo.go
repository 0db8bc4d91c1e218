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

const commissionColumns = `id, sale_id, seller_name, sale_value, rate, amount,
	date, status, created_at, updated_at`

// CommissionRepository implements usecase.CommissionRepository on PostgreSQL.
type CommissionRepository struct {
	pool *pgxpool.Pool
}

// NewCommissionRepository creates a new CommissionRepository.
func NewCommissionRepository(pool *pgxpool.Pool) *CommissionRepository {
	return &CommissionRepository{pool: pool}
}

// Create inserts a commission within a transaction.
func (r *CommissionRepository) Create(ctx context.Context, tx usecase.Transaction, c *domain.Commission) error {
	query := `
		INSERT INTO commissions (` + commissionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		c.ID,
		c.SaleID,
		c.SellerName,
		decimalToNumeric(c.SaleValue),
		decimalToNumeric(c.Rate),
		decimalToNumeric(c.Amount),
		timeToPgDate(c.Date),
		string(c.Status),
		timeToPgTimestamptz(c.CreatedAt),
		timeToPgTimestamptz(c.UpdatedAt),
	)

	return err
}

// GetByID retrieves a commission by ID.
func (r *CommissionRepository) GetByID(ctx context.Context, id string) (*domain.Commission, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves a commission with a row lock.
func (r *CommissionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Commission, error) {
	return r.getByID(ctx, txQuerier(tx), id, " FOR UPDATE")
}

func (r *CommissionRepository) getByID(ctx context.Context, q querier, id, suffix string) (*domain.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE id = $1` + suffix

	c, err := scanCommission(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommissionNotFound
		}
		return nil, err
	}

	return c, nil
}

// GetBySale retrieves the commission attached to a sale.
func (r *CommissionRepository) GetBySale(ctx context.Context, saleID string) (*domain.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE sale_id = $1`

	c, err := scanCommission(r.pool.QueryRow(ctx, query, saleID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCommissionNotFound
		}
		return nil, err
	}

	return c, nil
}

// Update rewrites a commission's mutable state within a transaction.
func (r *CommissionRepository) Update(ctx context.Context, tx usecase.Transaction, c *domain.Commission) error {
	query := `
		UPDATE commissions
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		c.ID,
		string(c.Status),
		timeToPgTimestamptz(c.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrCommissionNotFound
	}

	return nil
}

// DeleteBySale removes the commission attached to a sale, if any.
func (r *CommissionRepository) DeleteBySale(ctx context.Context, tx usecase.Transaction, saleID string) error {
	_, err := txQuerier(tx).Exec(ctx, `DELETE FROM commissions WHERE sale_id = $1`, saleID)
	return err
}

// List retrieves commissions with filtering, newest first. The holder
// filter matches the seller name.
func (r *CommissionRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*domain.Commission, error) {
	query := `SELECT ` + commissionColumns + ` FROM commissions WHERE 1=1`
	args := []any{}

	if filter.HolderName != "" {
		args = append(args, "%"+filter.HolderName+"%")
		query += fmt.Sprintf(` AND seller_name ILIKE $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	if !filter.From.IsZero() {
		args = append(args, timeToPgDate(filter.From))
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if !filter.To.IsZero() {
		args = append(args, timeToPgDate(filter.To))
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}

	query += ` ORDER BY date DESC, id DESC`

	args = append(args, filter.Limit)
	query += fmt.Sprintf(` LIMIT $%d`, len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(` OFFSET $%d`, len(args))

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commissions []*domain.Commission
	for rows.Next() {
		c, err := scanCommission(rows)
		if err != nil {
			return nil, err
		}
		commissions = append(commissions, c)
	}

	return commissions, rows.Err()
}

func scanCommission(row pgx.Row) (*domain.Commission, error) {
	var (
		c                       domain.Commission
		saleValue, rate, amount pgtype.Numeric
		status                  string
	)

	err := row.Scan(
		&c.ID,
		&c.SaleID,
		&c.SellerName,
		&saleValue,
		&rate,
		&amount,
		&c.Date,
		&status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.SaleValue = numericToDecimal(saleValue)
	c.Rate = numericToDecimal(rate)
	c.Amount = numericToDecimal(amount)
	c.Status = domain.CommissionStatus(status)

	return &c, nil
}
