package dto

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate runs struct validation on a request.
func Validate(req any) error {
	return validate.Struct(req)
}

// PaymentMethodRequest represents one funding slice of a sale or debt.
type PaymentMethodRequest struct {
	Kind         string            `json:"kind" validate:"required,oneof=cash pix credit_card debit_card check boleto transfer running_account trade_in_credit"`
	Amount       decimal.Decimal   `json:"amount" validate:"required"`
	Installments int               `json:"installments,omitempty" validate:"gte=0"`
	IntervalDays int               `json:"interval_days,omitempty" validate:"gte=0"`
	FirstDueDate *time.Time        `json:"first_due_date,omitempty"`
	CustomValues []decimal.Decimal `json:"custom_values,omitempty"`
	PermutaID    string            `json:"permuta_id,omitempty"`
	HolderName   string            `json:"holder_name,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *PaymentMethodRequest) ToUseCaseInput() usecase.PaymentMethodInput {
	input := usecase.PaymentMethodInput{
		Kind:         domain.PaymentKind(r.Kind),
		Amount:       r.Amount,
		Installments: r.Installments,
		IntervalDays: r.IntervalDays,
		CustomValues: r.CustomValues,
		PermutaID:    r.PermutaID,
		HolderName:   r.HolderName,
	}
	if r.FirstDueDate != nil {
		input.FirstDueDate = *r.FirstDueDate
	}
	return input
}

func paymentMethodInputs(methods []PaymentMethodRequest) []usecase.PaymentMethodInput {
	inputs := make([]usecase.PaymentMethodInput, len(methods))
	for i := range methods {
		inputs[i] = methods[i].ToUseCaseInput()
	}
	return inputs
}

// CreateSaleRequest represents a request to record a sale.
type CreateSaleRequest struct {
	Date           time.Time              `json:"date" validate:"required"`
	ClientName     string                 `json:"client_name" validate:"required"`
	SellerName     string                 `json:"seller_name,omitempty"`
	CommissionRate decimal.Decimal        `json:"commission_rate,omitempty"`
	TotalValue     decimal.Decimal        `json:"total_value" validate:"required"`
	PaymentMethods []PaymentMethodRequest `json:"payment_methods" validate:"required,min=1,dive"`
	Observations   string                 `json:"observations,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSaleRequest) ToUseCaseInput() usecase.CreateSaleInput {
	return usecase.CreateSaleInput{
		Date:           r.Date,
		ClientName:     r.ClientName,
		SellerName:     r.SellerName,
		CommissionRate: r.CommissionRate,
		TotalValue:     r.TotalValue,
		PaymentMethods: paymentMethodInputs(r.PaymentMethods),
		Observations:   r.Observations,
	}
}

// UpdateSaleRequest represents a request to rebuild a sale.
type UpdateSaleRequest struct {
	Date           time.Time              `json:"date" validate:"required"`
	ClientName     string                 `json:"client_name" validate:"required"`
	SellerName     string                 `json:"seller_name,omitempty"`
	CommissionRate decimal.Decimal        `json:"commission_rate,omitempty"`
	TotalValue     decimal.Decimal        `json:"total_value" validate:"required"`
	PaymentMethods []PaymentMethodRequest `json:"payment_methods" validate:"required,min=1,dive"`
	Observations   string                 `json:"observations,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateSaleRequest) ToUseCaseInput() usecase.UpdateSaleInput {
	return usecase.UpdateSaleInput{
		Date:           r.Date,
		ClientName:     r.ClientName,
		SellerName:     r.SellerName,
		CommissionRate: r.CommissionRate,
		TotalValue:     r.TotalValue,
		PaymentMethods: paymentMethodInputs(r.PaymentMethods),
		Observations:   r.Observations,
	}
}

// CreateDebtRequest represents a request to record a company payable.
type CreateDebtRequest struct {
	Date           time.Time              `json:"date" validate:"required"`
	CompanyName    string                 `json:"company_name" validate:"required"`
	Description    string                 `json:"description,omitempty"`
	TotalValue     decimal.Decimal        `json:"total_value" validate:"required"`
	PaymentMethods []PaymentMethodRequest `json:"payment_methods" validate:"required,min=1,dive"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateDebtRequest) ToUseCaseInput() usecase.CreateDebtInput {
	return usecase.CreateDebtInput{
		Date:           r.Date,
		CompanyName:    r.CompanyName,
		Description:    r.Description,
		TotalValue:     r.TotalValue,
		PaymentMethods: paymentMethodInputs(r.PaymentMethods),
	}
}

// UpdateDebtRequest represents a request to rebuild a debt.
type UpdateDebtRequest struct {
	Date           time.Time              `json:"date" validate:"required"`
	CompanyName    string                 `json:"company_name" validate:"required"`
	Description    string                 `json:"description,omitempty"`
	TotalValue     decimal.Decimal        `json:"total_value" validate:"required"`
	PaymentMethods []PaymentMethodRequest `json:"payment_methods" validate:"required,min=1,dive"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateDebtRequest) ToUseCaseInput() usecase.UpdateDebtInput {
	return usecase.UpdateDebtInput{
		Date:           r.Date,
		CompanyName:    r.CompanyName,
		Description:    r.Description,
		TotalValue:     r.TotalValue,
		PaymentMethods: paymentMethodInputs(r.PaymentMethods),
	}
}

// CreatePermutaRequest represents a request to register trade-in credit.
type CreatePermutaRequest struct {
	HolderName  string          `json:"holder_name" validate:"required"`
	Description string          `json:"description,omitempty"`
	CreditValue decimal.Decimal `json:"credit_value" validate:"required"`
}

// ToUseCaseInput converts to use case input.
func (r *CreatePermutaRequest) ToUseCaseInput() usecase.CreatePermutaInput {
	return usecase.CreatePermutaInput{
		HolderName:  r.HolderName,
		Description: r.Description,
		CreditValue: r.CreditValue,
	}
}

// CancelPermutaRequest carries the version check for a cancellation.
type CancelPermutaRequest struct {
	ExpectedVersion int64 `json:"expected_version" validate:"required,gt=0"`
}

// SettleAcertoRequest represents a request to settle a running account.
type SettleAcertoRequest struct {
	ExpectedVersion int64                  `json:"expected_version" validate:"required,gt=0"`
	TransactionIDs  []string               `json:"transaction_ids" validate:"required,min=1"`
	PaymentMethods  []PaymentMethodRequest `json:"payment_methods" validate:"required,min=1,dive"`
}

// ToUseCaseInput converts to use case input.
func (r *SettleAcertoRequest) ToUseCaseInput(acertoID string) usecase.SettleAcertoInput {
	return usecase.SettleAcertoInput{
		AcertoID:        acertoID,
		ExpectedVersion: r.ExpectedVersion,
		TransactionIDs:  r.TransactionIDs,
		PaymentMethods:  paymentMethodInputs(r.PaymentMethods),
	}
}

// PayOffAcertoRequest represents a request to close a running account in full.
type PayOffAcertoRequest struct {
	ExpectedVersion int64                  `json:"expected_version" validate:"required,gt=0"`
	PaymentMethods  []PaymentMethodRequest `json:"payment_methods" validate:"required,min=1,dive"`
}

// ToUseCaseInput converts to use case input.
func (r *PayOffAcertoRequest) ToUseCaseInput(acertoID string) usecase.PayOffAcertoInput {
	return usecase.PayOffAcertoInput{
		AcertoID:        acertoID,
		ExpectedVersion: r.ExpectedVersion,
		PaymentMethods:  paymentMethodInputs(r.PaymentMethods),
	}
}

// DiscountInstrumentRequest represents a request to settle an instrument
// early at a reduced amount.
type DiscountInstrumentRequest struct {
	Fee decimal.Decimal `json:"fee"`
}

// ResolveOverdueRequest represents a request to resolve an overdue instrument.
type ResolveOverdueRequest struct {
	Action      string          `json:"action" validate:"required,oneof=paid_with_interest paid_with_penalty paid_in_full agreement_reached protested negotiated cancelled total_loss"`
	Interest    decimal.Decimal `json:"interest"`
	Penalty     decimal.Decimal `json:"penalty"`
	NotaryCosts decimal.Decimal `json:"notary_costs"`
	Notes       string          `json:"notes,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *ResolveOverdueRequest) ToUseCaseInput(instrumentID string) usecase.ResolveOverdueInput {
	return usecase.ResolveOverdueInput{
		InstrumentID: instrumentID,
		Action:       domain.OverdueAction(r.Action),
		Interest:     r.Interest,
		Penalty:      r.Penalty,
		NotaryCosts:  r.NotaryCosts,
		Notes:        r.Notes,
	}
}

// CreateTaxRequest represents a request to register a tax obligation.
type CreateTaxRequest struct {
	TaxType         string          `json:"tax_type" validate:"required"`
	Description     string          `json:"description,omitempty"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
	DueDate         time.Time       `json:"due_date" validate:"required"`
	ReferencePeriod string          `json:"reference_period,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTaxRequest) ToUseCaseInput() usecase.CreateTaxInput {
	return usecase.CreateTaxInput{
		TaxType:         r.TaxType,
		Description:     r.Description,
		Amount:          r.Amount,
		DueDate:         r.DueDate,
		ReferencePeriod: r.ReferencePeriod,
	}
}
