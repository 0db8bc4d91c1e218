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

const debtColumns = `id, date, company_name, description, payment_methods,
	total_value, paid_amount, pending_amount, status, created_at, updated_at`

// DebtRepository implements usecase.DebtRepository on PostgreSQL.
type DebtRepository struct {
	pool *pgxpool.Pool
}

// NewDebtRepository creates a new DebtRepository.
func NewDebtRepository(pool *pgxpool.Pool) *DebtRepository {
	return &DebtRepository{pool: pool}
}

// Create inserts a debt within a transaction.
func (r *DebtRepository) Create(ctx context.Context, tx usecase.Transaction, debt *domain.Debt) error {
	methods, err := json.Marshal(debt.PaymentMethods)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO debts (` + debtColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = txQuerier(tx).Exec(ctx, query,
		debt.ID,
		timeToPgDate(debt.Date),
		debt.CompanyName,
		debt.Description,
		methods,
		decimalToNumeric(debt.TotalValue),
		decimalToNumeric(debt.PaidAmount),
		decimalToNumeric(debt.PendingAmount),
		string(debt.Status),
		timeToPgTimestamptz(debt.CreatedAt),
		timeToPgTimestamptz(debt.UpdatedAt),
	)

	return err
}

// GetByID retrieves a debt by ID.
func (r *DebtRepository) GetByID(ctx context.Context, id string) (*domain.Debt, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves a debt with a row lock.
func (r *DebtRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Debt, error) {
	return r.getByID(ctx, txQuerier(tx), id, " FOR UPDATE")
}

func (r *DebtRepository) getByID(ctx context.Context, q querier, id, suffix string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = $1` + suffix

	debt, err := scanDebt(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDebtNotFound
		}
		return nil, err
	}

	return debt, nil
}

// GetByIDsForUpdate locks and retrieves several debts, ordered by ID.
func (r *DebtRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE id = ANY($1) ORDER BY id FOR UPDATE`

	rows, err := txQuerier(tx).Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var debts []*domain.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}

	return debts, rows.Err()
}

// Update rewrites a debt within a transaction.
func (r *DebtRepository) Update(ctx context.Context, tx usecase.Transaction, debt *domain.Debt) error {
	methods, err := json.Marshal(debt.PaymentMethods)
	if err != nil {
		return err
	}

	query := `
		UPDATE debts
		SET date = $2, company_name = $3, description = $4, payment_methods = $5,
		    total_value = $6, paid_amount = $7, pending_amount = $8, status = $9,
		    updated_at = $10
		WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		debt.ID,
		timeToPgDate(debt.Date),
		debt.CompanyName,
		debt.Description,
		methods,
		decimalToNumeric(debt.TotalValue),
		decimalToNumeric(debt.PaidAmount),
		decimalToNumeric(debt.PendingAmount),
		string(debt.Status),
		timeToPgTimestamptz(debt.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDebtNotFound
	}

	return nil
}

// Delete removes a debt within a transaction.
func (r *DebtRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	tag, err := txQuerier(tx).Exec(ctx, `DELETE FROM debts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDebtNotFound
	}

	return nil
}

// List retrieves debts with filtering, newest first.
func (r *DebtRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts WHERE 1=1`
	args := []any{}

	if filter.HolderName != "" {
		args = append(args, "%"+filter.HolderName+"%")
		query += fmt.Sprintf(` AND company_name ILIKE $%d`, len(args))
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

	var debts []*domain.Debt
	for rows.Next() {
		debt, err := scanDebt(rows)
		if err != nil {
			return nil, err
		}
		debts = append(debts, debt)
	}

	return debts, rows.Err()
}

func scanDebt(row pgx.Row) (*domain.Debt, error) {
	var (
		debt                 domain.Debt
		methods              []byte
		total, paid, pending pgtype.Numeric
		status               string
	)

	err := row.Scan(
		&debt.ID,
		&debt.Date,
		&debt.CompanyName,
		&debt.Description,
		&methods,
		&total,
		&paid,
		&pending,
		&status,
		&debt.CreatedAt,
		&debt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(methods, &debt.PaymentMethods); err != nil {
		return nil, err
	}

	debt.TotalValue = numericToDecimal(total)
	debt.PaidAmount = numericToDecimal(paid)
	debt.PendingAmount = numericToDecimal(pending)
	debt.Status = domain.SettlementStatus(status)

	return &debt, nil
}
