package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
)

const instrumentColumns = `id, kind, parent_kind, parent_id, counterparty_name,
	value, due_date, status, installment_number, total_installments,
	is_own_instrument, is_company_payable, overdue_action, interest, penalty,
	notary_costs, discount_fee, final_amount, overdue_notes, created_at, updated_at`

// InstrumentRepository implements usecase.InstrumentRepository on
// PostgreSQL.
type InstrumentRepository struct {
	pool *pgxpool.Pool
}

// NewInstrumentRepository creates a new InstrumentRepository.
func NewInstrumentRepository(pool *pgxpool.Pool) *InstrumentRepository {
	return &InstrumentRepository{pool: pool}
}

// CreateBatch inserts a full installment schedule within a transaction.
func (r *InstrumentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, instruments []*domain.Instrument) error {
	query := `
		INSERT INTO instruments (` + instrumentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)
	`

	q := txQuerier(tx)
	for _, inst := range instruments {
		_, err := q.Exec(ctx, query,
			inst.ID,
			string(inst.Kind),
			string(inst.ParentKind),
			inst.ParentID,
			inst.CounterpartyName,
			decimalToNumeric(inst.Value),
			timeToPgDate(inst.DueDate),
			string(inst.Status),
			inst.InstallmentNumber,
			inst.TotalInstallments,
			inst.IsOwnInstrument,
			inst.IsCompanyPayable,
			string(inst.OverdueAction),
			decimalToNumeric(inst.Interest),
			decimalToNumeric(inst.Penalty),
			decimalToNumeric(inst.NotaryCosts),
			decimalToNumeric(inst.DiscountFee),
			decimalToNumeric(inst.FinalAmount),
			inst.OverdueNotes,
			timeToPgTimestamptz(inst.CreatedAt),
			timeToPgTimestamptz(inst.UpdatedAt),
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// GetByID retrieves an instrument by ID.
func (r *InstrumentRepository) GetByID(ctx context.Context, id string) (*domain.Instrument, error) {
	return r.getByID(ctx, r.pool, id, "")
}

// GetByIDForUpdate retrieves an instrument with a row lock.
func (r *InstrumentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Instrument, error) {
	return r.getByID(ctx, txQuerier(tx), id, " FOR UPDATE")
}

func (r *InstrumentRepository) getByID(ctx context.Context, q querier, id, suffix string) (*domain.Instrument, error) {
	query := `SELECT ` + instrumentColumns + ` FROM instruments WHERE id = $1` + suffix

	inst, err := scanInstrument(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrInstrumentNotFound
		}
		return nil, err
	}

	return inst, nil
}

// Update rewrites an instrument's mutable state within a transaction.
func (r *InstrumentRepository) Update(ctx context.Context, tx usecase.Transaction, inst *domain.Instrument) error {
	query := `
		UPDATE instruments
		SET status = $2, overdue_action = $3, interest = $4, penalty = $5,
		    notary_costs = $6, discount_fee = $7, final_amount = $8,
		    overdue_notes = $9, updated_at = $10
		WHERE id = $1
	`

	tag, err := txQuerier(tx).Exec(ctx, query,
		inst.ID,
		string(inst.Status),
		string(inst.OverdueAction),
		decimalToNumeric(inst.Interest),
		decimalToNumeric(inst.Penalty),
		decimalToNumeric(inst.NotaryCosts),
		decimalToNumeric(inst.DiscountFee),
		decimalToNumeric(inst.FinalAmount),
		inst.OverdueNotes,
		timeToPgTimestamptz(inst.UpdatedAt),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrInstrumentNotFound
	}

	return nil
}

// DeleteByParent removes every instrument issued for a parent record.
func (r *InstrumentRepository) DeleteByParent(ctx context.Context, tx usecase.Transaction, parentKind domain.ParentKind, parentID string) error {
	_, err := txQuerier(tx).Exec(ctx,
		`DELETE FROM instruments WHERE parent_kind = $1 AND parent_id = $2`,
		string(parentKind), parentID,
	)

	return err
}

// ListByParent retrieves the instruments of one parent, in schedule order.
func (r *InstrumentRepository) ListByParent(ctx context.Context, parentKind domain.ParentKind, parentID string) ([]*domain.Instrument, error) {
	query := `
		SELECT ` + instrumentColumns + `
		FROM instruments
		WHERE parent_kind = $1 AND parent_id = $2
		ORDER BY installment_number
	`

	return r.list(ctx, query, string(parentKind), parentID)
}

// ListReceivableDue retrieves pending receivable instruments due inside
// [from, to].
func (r *InstrumentRepository) ListReceivableDue(ctx context.Context, from, to time.Time) ([]*domain.Instrument, error) {
	query := `
		SELECT ` + instrumentColumns + `
		FROM instruments
		WHERE status = 'pending' AND NOT is_company_payable
		  AND due_date >= $1 AND due_date <= $2
		ORDER BY due_date
	`

	return r.list(ctx, query, timeToPgDate(from), timeToPgDate(to))
}

// ListPayableDue retrieves pending company-payable instruments due inside
// [from, to].
func (r *InstrumentRepository) ListPayableDue(ctx context.Context, from, to time.Time) ([]*domain.Instrument, error) {
	query := `
		SELECT ` + instrumentColumns + `
		FROM instruments
		WHERE status = 'pending' AND is_company_payable
		  AND due_date >= $1 AND due_date <= $2
		ORDER BY due_date
	`

	return r.list(ctx, query, timeToPgDate(from), timeToPgDate(to))
}

func (r *InstrumentRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Instrument, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var instruments []*domain.Instrument
	for rows.Next() {
		inst, err := scanInstrument(rows)
		if err != nil {
			return nil, err
		}
		instruments = append(instruments, inst)
	}

	return instruments, rows.Err()
}

func scanInstrument(row pgx.Row) (*domain.Instrument, error) {
	var (
		inst                                           domain.Instrument
		kind, parentKind, status, overdueAction        string
		value, interest, penalty, notary, fee, finalAm pgtype.Numeric
	)

	err := row.Scan(
		&inst.ID,
		&kind,
		&parentKind,
		&inst.ParentID,
		&inst.CounterpartyName,
		&value,
		&inst.DueDate,
		&status,
		&inst.InstallmentNumber,
		&inst.TotalInstallments,
		&inst.IsOwnInstrument,
		&inst.IsCompanyPayable,
		&overdueAction,
		&interest,
		&penalty,
		&notary,
		&fee,
		&finalAm,
		&inst.OverdueNotes,
		&inst.CreatedAt,
		&inst.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	inst.Kind = domain.InstrumentKind(kind)
	inst.ParentKind = domain.ParentKind(parentKind)
	inst.Status = domain.InstrumentStatus(status)
	inst.OverdueAction = domain.OverdueAction(overdueAction)
	inst.Value = numericToDecimal(value)
	inst.Interest = numericToDecimal(interest)
	inst.Penalty = numericToDecimal(penalty)
	inst.NotaryCosts = numericToDecimal(notary)
	inst.DiscountFee = numericToDecimal(fee)
	inst.FinalAmount = numericToDecimal(finalAm)

	return &inst, nil
}
