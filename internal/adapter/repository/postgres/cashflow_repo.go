package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
)

const cashFlowColumns = `id, date, amount, direction, category, description,
	related_id, created_at`

// CashFlowRepository implements usecase.CashFlowLedger on PostgreSQL.
// Entries are written inside the caller's transaction so a realized amount
// and the mutation that realized it commit together.
type CashFlowRepository struct {
	pool *pgxpool.Pool
}

// NewCashFlowRepository creates a new CashFlowRepository.
func NewCashFlowRepository(pool *pgxpool.Pool) *CashFlowRepository {
	return &CashFlowRepository{pool: pool}
}

// Record inserts a cash flow entry within a transaction.
func (r *CashFlowRepository) Record(ctx context.Context, tx usecase.Transaction, entry *domain.CashFlowEntry) error {
	query := `
		INSERT INTO cash_flow_entries (` + cashFlowColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := txQuerier(tx).Exec(ctx, query,
		entry.ID,
		timeToPgDate(entry.Date),
		decimalToNumeric(entry.Amount),
		string(entry.Direction),
		entry.Category,
		entry.Description,
		entry.RelatedID,
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// ListBetween retrieves entries dated inside [from, to], oldest first.
func (r *CashFlowRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*domain.CashFlowEntry, error) {
	query := `
		SELECT ` + cashFlowColumns + `
		FROM cash_flow_entries
		WHERE date >= $1 AND date <= $2
		ORDER BY date, created_at
	`

	rows, err := r.pool.Query(ctx, query, timeToPgDate(from), timeToPgDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.CashFlowEntry
	for rows.Next() {
		entry, err := scanCashFlowEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func scanCashFlowEntry(row pgx.Row) (*domain.CashFlowEntry, error) {
	var (
		entry     domain.CashFlowEntry
		amount    pgtype.Numeric
		direction string
	)

	err := row.Scan(
		&entry.ID,
		&entry.Date,
		&amount,
		&direction,
		&entry.Category,
		&entry.Description,
		&entry.RelatedID,
		&entry.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Amount = numericToDecimal(amount)
	entry.Direction = domain.CashFlowDirection(direction)

	return &entry, nil
}
