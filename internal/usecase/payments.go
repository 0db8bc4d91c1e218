package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/domain"
)

// PaymentMethodInput is the transport-agnostic description of one funding
// slice. Use cases turn it into a domain.PaymentMethod through the
// constructors, resolving permuta references inside the transaction.
type PaymentMethodInput struct {
	Kind         domain.PaymentKind
	Amount       decimal.Decimal
	Installments int
	IntervalDays int
	FirstDueDate time.Time
	CustomValues []decimal.Decimal
	PermutaID    string
	HolderName   string
}

// paymentProcessor bundles the collaborators every payment-carrying
// operation needs: permuta consumption, acerto contributions, instrument
// expansion and cash-flow reporting, all inside one transaction.
type paymentProcessor struct {
	permutaRepo    PermutaRepository
	acertoRepo     AcertoRepository
	instrumentRepo InstrumentRepository
	cashFlow       CashFlowLedger
	idGen          IDGenerator
	clock          Clock
}

// buildMethods constructs domain payment methods from inputs. Trade-in
// slices lock and consume their permuta as part of construction; the
// enclosing transaction rolls everything back on any later failure.
func (p *paymentProcessor) buildMethods(ctx context.Context, tx Transaction, inputs []PaymentMethodInput) ([]domain.PaymentMethod, error) {
	methods := make([]domain.PaymentMethod, 0, len(inputs))

	for i, in := range inputs {
		var (
			method domain.PaymentMethod
			err    error
		)

		switch in.Kind {
		case domain.PaymentCheck, domain.PaymentBoleto, domain.PaymentCreditCard:
			method, err = domain.NewDeferredPayment(in.Kind, in.Amount, domain.InstallmentPlan{
				Count:        in.Installments,
				IntervalDays: in.IntervalDays,
				FirstDueDate: in.FirstDueDate,
				CustomValues: in.CustomValues,
			})

		case domain.PaymentTradeInCredit:
			var permuta *domain.Permuta
			permuta, err = p.permutaRepo.GetByIDForUpdate(ctx, tx, in.PermutaID)
			if err != nil {
				return nil, fmt.Errorf("payment method %d: %w", i+1, err)
			}

			method, err = domain.NewTradeInPayment(in.Amount, permuta)
			if err == nil {
				if err = permuta.Consume(in.Amount); err == nil {
					err = p.permutaRepo.Update(ctx, tx, permuta)
				}
			}

		case domain.PaymentRunningAccount:
			method, err = domain.NewRunningAccountPayment(in.Amount, in.HolderName)

		default:
			method, err = domain.NewInstantPayment(in.Kind, in.Amount)
		}

		if err != nil {
			return nil, fmt.Errorf("payment method %d: %w", i+1, err)
		}

		methods = append(methods, method)
	}

	return methods, nil
}

// releaseTradeIns returns the credit consumed by methods, used when the
// owning transaction is deleted or about to be rebuilt on edit.
func (p *paymentProcessor) releaseTradeIns(ctx context.Context, tx Transaction, methods []domain.PaymentMethod) error {
	for _, m := range methods {
		if m.Kind != domain.PaymentTradeInCredit {
			continue
		}

		permuta, err := p.permutaRepo.GetByIDForUpdate(ctx, tx, m.PermutaID)
		if err != nil {
			return err
		}

		if err := permuta.Release(m.Amount); err != nil {
			return err
		}

		if err := p.permutaRepo.Update(ctx, tx, permuta); err != nil {
			return err
		}
	}

	return nil
}

// contributeRunningAccounts folds each running-account slice into its
// holder's acerto, creating the acerto on first contribution.
func (p *paymentProcessor) contributeRunningAccounts(
	ctx context.Context,
	tx Transaction,
	methods []domain.PaymentMethod,
	holderKind domain.HolderKind,
	parentKind domain.ParentKind,
	parentID string,
) error {
	now := p.clock.Now().UTC()

	for _, m := range methods {
		if m.Kind != domain.PaymentRunningAccount {
			continue
		}

		ref := domain.ContributionRef{Kind: parentKind, ID: parentID, Amount: m.Amount}

		acerto, err := p.acertoRepo.GetByHolderForUpdate(ctx, tx, domain.HolderKey(m.HolderName), holderKind)
		switch {
		case err == nil:
			if err := acerto.Contribute(ref); err != nil {
				return err
			}
			acerto.UpdatedAt = now
			if err := p.acertoRepo.Update(ctx, tx, acerto); err != nil {
				return err
			}

		case errors.Is(err, domain.ErrAcertoNotFound):
			acerto = &domain.Acerto{
				ID:         p.idGen.Generate(),
				HolderName: m.HolderName,
				Kind:       holderKind,
				Status:     domain.AcertoPending,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := acerto.Contribute(ref); err != nil {
				return err
			}
			if err := p.acertoRepo.Create(ctx, tx, acerto); err != nil {
				return err
			}

		default:
			return err
		}
	}

	return nil
}

// retractRunningAccounts undoes the contributions a transaction made, used
// on delete and before a rebuild on edit.
func (p *paymentProcessor) retractRunningAccounts(
	ctx context.Context,
	tx Transaction,
	methods []domain.PaymentMethod,
	holderKind domain.HolderKind,
	parentKind domain.ParentKind,
	parentID string,
) error {
	for _, m := range methods {
		if m.Kind != domain.PaymentRunningAccount {
			continue
		}

		acerto, err := p.acertoRepo.GetByHolderForUpdate(ctx, tx, domain.HolderKey(m.HolderName), holderKind)
		if err != nil {
			if errors.Is(err, domain.ErrAcertoNotFound) {
				continue
			}
			return err
		}

		acerto.Retract(parentKind, parentID)
		acerto.UpdatedAt = p.clock.Now().UTC()

		if err := p.acertoRepo.Update(ctx, tx, acerto); err != nil {
			return err
		}
	}

	return nil
}

// expandInstruments issues the scheduled instruments for every deferred
// method and persists them in one batch.
func (p *paymentProcessor) expandInstruments(
	ctx context.Context,
	tx Transaction,
	methods []domain.PaymentMethod,
	parentKind domain.ParentKind,
	parentID string,
	counterparty string,
	companyPayable bool,
) ([]*domain.Instrument, error) {
	now := p.clock.Now().UTC()

	var instruments []*domain.Instrument
	for _, m := range methods {
		if !m.Deferred() {
			continue
		}

		slots, err := domain.BuildSchedule(m)
		if err != nil {
			return nil, err
		}

		for _, slot := range slots {
			instruments = append(instruments, &domain.Instrument{
				ID:                p.idGen.Generate(),
				Kind:              domain.ScheduleKind(m),
				ParentKind:        parentKind,
				ParentID:          parentID,
				CounterpartyName:  counterparty,
				Value:             slot.Value,
				DueDate:           slot.DueDate,
				Status:            domain.InstrumentPending,
				InstallmentNumber: slot.Number,
				TotalInstallments: len(slots),
				IsOwnInstrument:   companyPayable,
				IsCompanyPayable:  companyPayable,
				CreatedAt:         now,
				UpdatedAt:         now,
			})
		}
	}

	if len(instruments) == 0 {
		return nil, nil
	}

	if err := p.instrumentRepo.CreateBatch(ctx, tx, instruments); err != nil {
		return nil, err
	}

	return instruments, nil
}

// recordInstantCash reports true cash movements to the cash-flow ledger:
// cash, pix, debit card, transfer, and single-installment credit card
// slices, which settle immediately. Trade-in and running-account slices
// settle the transaction but move no money today, so they are skipped.
func (p *paymentProcessor) recordInstantCash(
	ctx context.Context,
	tx Transaction,
	methods []domain.PaymentMethod,
	direction domain.CashFlowDirection,
	category string,
	description string,
	relatedID string,
) error {
	now := p.clock.Now().UTC()

	for _, m := range methods {
		switch m.Kind {
		case domain.PaymentCash, domain.PaymentPix, domain.PaymentDebitCard, domain.PaymentTransfer:
		case domain.PaymentCreditCard:
			if m.Deferred() {
				continue
			}
		default:
			continue
		}

		entry := &domain.CashFlowEntry{
			ID:          p.idGen.Generate(),
			Date:        domain.DateOnly(now),
			Amount:      m.Amount,
			Direction:   direction,
			Category:    category,
			Description: description,
			RelatedID:   relatedID,
			CreatedAt:   now,
		}

		if err := p.cashFlow.Record(ctx, tx, entry); err != nil {
			return err
		}
	}

	return nil
}
