package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
)

const saleColumns = `id, date, client_name, seller_name, commission_rate,
	payment_methods, total_value, received_amount, pending_amount, status,
	observations, created_at, updated_at`

// SaleRepository implements usecase.SaleRepository on PostgreSQL. Payment
// methods are persisted as a JSONB document alongside the derived
// settlement columns.
type SaleRepository struct {
	pool *pgxpool.Pool
}

// NewSaleRepository creates a new SaleRepository.
func NewSaleRepository(pool *pgxpool.Pool) *SaleRepository {
	return &SaleRepository{pool: pool}
}

// Create inserts a sale within a transaction.
func (r *SaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	methods, err := json.Marshal(sale.PaymentMethods)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err = txQuerier(tx).Exec(ctx, query,
		sale.ID,
		timeToPgDate(sale.Date),
		sale.ClientName,
		sale.SellerName,
		decimalToNumeric(sale.CommissionRate),
		methods,
		decimalToNumeric(sale.TotalValue),
		decimalToNumeric(sale.ReceivedAmount),
		decimalToNumeric(sale.PendingAmount),
		string(sale.Status),
		sale.Observations,
		timeToPgTimestamptz(sale.CreatedAt),
		timeToPgTimestamptz(sale.UpdatedAt),
	)

	return err
}

// GetByID retrieves a sale by ID.
func (r *SaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves a sale with a row lock.
func (r *SaleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Sale, error) {
	return r.getByID(ctx, txQuerier(tx), id, " FOR UPDATE")
}

func (r *SaleRepository) getByID(ctx context.Context, q querier, id, suffix string) (*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1` + suffix

	sale, err := scanSale(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSaleNotFound
		}
		return nil, err
	}

	return sale, nil
}

// GetByIDsForUpdate locks and retrieves several sales at once, ordered by
// ID so concurrent settlements lock rows in a consistent order.
func (r *SaleRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := txQuerier(tx).Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []*domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	return sales, rows.Err()
}

// Update rewrites a sale within a transaction.
func (r *SaleRepository) Update(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	methods, err := json.Marshal(sale.PaymentMethods)
	if err != nil {
		return err
	}

	query := `
		UPDATE sales
		SET date = $2, client_name = $3, seller_name = $4, commission_rate = $5,
		    payment_methods = $6, total_value = $7, received_amount = $8,
		    pending_amount = $9, status = $10, observations = $11, updated_at = $12
		WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		sale.ID,
		timeToPgDate(sale.Date),
		sale.ClientName,
		sale.SellerName,
		decimalToNumeric(sale.CommissionRate),
		methods,
		decimalToNumeric(sale.TotalValue),
		decimalToNumeric(sale.ReceivedAmount),
		decimalToNumeric(sale.PendingAmount),
		string(sale.Status),
		sale.Observations,
		timeToPgTimestamptz(sale.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}

// Delete removes a sale within a transaction.
func (r *SaleRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := txQuerier(tx).Exec(ctx, `DELETE FROM sales WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSaleNotFound
	}

	return nil
}

// List retrieves sales with filtering, newest first.
func (r *SaleRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []any{}

	if filter.HolderName != "" {
		args = append(args, "%"+filter.HolderName+"%")
		query += fmt.Sprintf(` AND client_name ILIKE $%d`, len(args))
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

	var sales []*domain.Sale
	for rows.Next() {
		sale, err := scanSale(rows)
		if err != nil {
			return nil, err
		}
		sales = append(sales, sale)
	}

	return sales, rows.Err()
}

func scanSale(row pgx.Row) (*domain.Sale, error) {
	var (
		sale                           domain.Sale
		methods                        []byte
		rate, total, received, pending pgtype.Numeric
		status                         string
	)

	err := row.Scan(
		&sale.ID,
		&sale.Date,
		&sale.ClientName,
		&sale.SellerName,
		&rate,
		&methods,
		&total,
		&received,
		&pending,
		&status,
		&sale.Observations,
		&sale.CreatedAt,
		&sale.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(methods, &sale.PaymentMethods); err != nil {
		return nil, err
	}

	sale.CommissionRate = numericToDecimal(rate)
	sale.TotalValue = numericToDecimal(total)
	sale.ReceivedAmount = numericToDecimal(received)
	sale.PendingAmount = numericToDecimal(pending)
	sale.Status = domain.SettlementStatus(status)

	return &sale, nil
}
