package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
)

// InstallmentPlanResponse represents an installment plan in API responses.
type InstallmentPlanResponse struct {
	Count        int               `json:"count"`
	IntervalDays int               `json:"interval_days"`
	FirstDueDate time.Time         `json:"first_due_date"`
	CustomValues []decimal.Decimal `json:"custom_values,omitempty"`
}

// PaymentMethodResponse represents one funding slice in API responses.
type PaymentMethodResponse struct {
	Kind       string                   `json:"kind"`
	Amount     decimal.Decimal          `json:"amount"`
	Plan       *InstallmentPlanResponse `json:"plan,omitempty"`
	PermutaID  string                   `json:"permuta_id,omitempty"`
	HolderName string                   `json:"holder_name,omitempty"`
}

// PaymentMethodFromDomain converts a domain payment method to response.
func PaymentMethodFromDomain(m domain.PaymentMethod) PaymentMethodResponse {
	resp := PaymentMethodResponse{
		Kind:       string(m.Kind),
		Amount:     m.Amount,
		PermutaID:  m.PermutaID,
		HolderName: m.HolderName,
	}
	if m.Plan != nil {
		resp.Plan = &InstallmentPlanResponse{
			Count:        m.Plan.Count,
			IntervalDays: m.Plan.IntervalDays,
			FirstDueDate: m.Plan.FirstDueDate,
			CustomValues: m.Plan.CustomValues,
		}
	}
	return resp
}

func paymentMethodsFromDomain(methods []domain.PaymentMethod) []PaymentMethodResponse {
	result := make([]PaymentMethodResponse, len(methods))
	for i, m := range methods {
		result[i] = PaymentMethodFromDomain(m)
	}
	return result
}

// SaleResponse represents a sale in API responses.
type SaleResponse struct {
	ID             string                  `json:"id"`
	Date           time.Time               `json:"date"`
	ClientName     string                  `json:"client_name"`
	SellerName     string                  `json:"seller_name,omitempty"`
	CommissionRate decimal.Decimal         `json:"commission_rate"`
	TotalValue     decimal.Decimal         `json:"total_value"`
	PaymentMethods []PaymentMethodResponse `json:"payment_methods"`
	ReceivedAmount decimal.Decimal         `json:"received_amount"`
	PendingAmount  decimal.Decimal         `json:"pending_amount"`
	Status         string                  `json:"status"`
	Observations   string                  `json:"observations,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// SaleFromDomain converts a domain sale to response.
func SaleFromDomain(s *domain.Sale) *SaleResponse {
	return &SaleResponse{
		ID:             s.ID,
		Date:           s.Date,
		ClientName:     s.ClientName,
		SellerName:     s.SellerName,
		CommissionRate: s.CommissionRate,
		TotalValue:     s.TotalValue,
		PaymentMethods: paymentMethodsFromDomain(s.PaymentMethods),
		ReceivedAmount: s.ReceivedAmount,
		PendingAmount:  s.PendingAmount,
		Status:         string(s.Status),
		Observations:   s.Observations,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

// SalesFromDomain converts domain sales to responses.
func SalesFromDomain(sales []*domain.Sale) []*SaleResponse {
	result := make([]*SaleResponse, len(sales))
	for i, s := range sales {
		result[i] = SaleFromDomain(s)
	}
	return result
}

// DebtResponse represents a company payable in API responses.
type DebtResponse struct {
	ID             string                  `json:"id"`
	Date           time.Time               `json:"date"`
	CompanyName    string                  `json:"company_name"`
	Description    string                  `json:"description,omitempty"`
	TotalValue     decimal.Decimal         `json:"total_value"`
	PaymentMethods []PaymentMethodResponse `json:"payment_methods"`
	PaidAmount     decimal.Decimal         `json:"paid_amount"`
	PendingAmount  decimal.Decimal         `json:"pending_amount"`
	Status         string                  `json:"status"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

// DebtFromDomain converts a domain debt to response.
func DebtFromDomain(d *domain.Debt) *DebtResponse {
	return &DebtResponse{
		ID:             d.ID,
		Date:           d.Date,
		CompanyName:    d.CompanyName,
		Description:    d.Description,
		TotalValue:     d.TotalValue,
		PaymentMethods: paymentMethodsFromDomain(d.PaymentMethods),
		PaidAmount:     d.PaidAmount,
		PendingAmount:  d.PendingAmount,
		Status:         string(d.Status),
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// DebtsFromDomain converts domain debts to responses.
func DebtsFromDomain(debts []*domain.Debt) []*DebtResponse {
	result := make([]*DebtResponse, len(debts))
	for i, d := range debts {
		result[i] = DebtFromDomain(d)
	}
	return result
}

// InstrumentResponse represents a check or boleto in API responses.
type InstrumentResponse struct {
	ID                string          `json:"id"`
	Kind              string          `json:"kind"`
	ParentKind        string          `json:"parent_kind"`
	ParentID          string          `json:"parent_id"`
	CounterpartyName  string          `json:"counterparty_name"`
	Value             decimal.Decimal `json:"value"`
	DueDate           time.Time       `json:"due_date"`
	Status            string          `json:"status"`
	InstallmentNumber int             `json:"installment_number"`
	TotalInstallments int             `json:"total_installments"`
	IsOwnInstrument   bool            `json:"is_own_instrument"`
	IsCompanyPayable  bool            `json:"is_company_payable"`
	OverdueAction     string          `json:"overdue_action,omitempty"`
	Interest          decimal.Decimal `json:"interest"`
	Penalty           decimal.Decimal `json:"penalty"`
	NotaryCosts       decimal.Decimal `json:"notary_costs"`
	DiscountFee       decimal.Decimal `json:"discount_fee"`
	FinalAmount       decimal.Decimal `json:"final_amount"`
	OverdueNotes      string          `json:"overdue_notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// InstrumentFromDomain converts a domain instrument to response.
func InstrumentFromDomain(inst *domain.Instrument) *InstrumentResponse {
	return &InstrumentResponse{
		ID:                inst.ID,
		Kind:              string(inst.Kind),
		ParentKind:        string(inst.ParentKind),
		ParentID:          inst.ParentID,
		CounterpartyName:  inst.CounterpartyName,
		Value:             inst.Value,
		DueDate:           inst.DueDate,
		Status:            string(inst.Status),
		InstallmentNumber: inst.InstallmentNumber,
		TotalInstallments: inst.TotalInstallments,
		IsOwnInstrument:   inst.IsOwnInstrument,
		IsCompanyPayable:  inst.IsCompanyPayable,
		OverdueAction:     string(inst.OverdueAction),
		Interest:          inst.Interest,
		Penalty:           inst.Penalty,
		NotaryCosts:       inst.NotaryCosts,
		DiscountFee:       inst.DiscountFee,
		FinalAmount:       inst.FinalAmount,
		OverdueNotes:      inst.OverdueNotes,
		CreatedAt:         inst.CreatedAt,
		UpdatedAt:         inst.UpdatedAt,
	}
}

// InstrumentsFromDomain converts domain instruments to responses.
func InstrumentsFromDomain(instruments []*domain.Instrument) []*InstrumentResponse {
	result := make([]*InstrumentResponse, len(instruments))
	for i, inst := range instruments {
		result[i] = InstrumentFromDomain(inst)
	}
	return result
}

// PermutaResponse represents trade-in credit in API responses.
type PermutaResponse struct {
	ID             string          `json:"id"`
	HolderName     string          `json:"holder_name"`
	Description    string          `json:"description,omitempty"`
	CreditValue    decimal.Decimal `json:"credit_value"`
	ConsumedValue  decimal.Decimal `json:"consumed_value"`
	RemainingValue decimal.Decimal `json:"remaining_value"`
	Status         string          `json:"status"`
	Version        int64           `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// PermutaFromDomain converts a domain permuta to response.
func PermutaFromDomain(p *domain.Permuta) *PermutaResponse {
	return &PermutaResponse{
		ID:             p.ID,
		HolderName:     p.HolderName,
		Description:    p.Description,
		CreditValue:    p.CreditValue,
		ConsumedValue:  p.ConsumedValue,
		RemainingValue: p.RemainingValue(),
		Status:         string(p.Status),
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// PermutasFromDomain converts domain permutas to responses.
func PermutasFromDomain(permutas []*domain.Permuta) []*PermutaResponse {
	result := make([]*PermutaResponse, len(permutas))
	for i, p := range permutas {
		result[i] = PermutaFromDomain(p)
	}
	return result
}

// ContributionResponse represents one acerto contribution in API responses.
type ContributionResponse struct {
	Kind   string          `json:"kind"`
	ID     string          `json:"id"`
	Amount decimal.Decimal `json:"amount"`
}

// AcertoResponse represents a running account in API responses.
type AcertoResponse struct {
	ID            string                 `json:"id"`
	HolderName    string                 `json:"holder_name"`
	Kind          string                 `json:"kind"`
	TotalAmount   decimal.Decimal        `json:"total_amount"`
	PaidAmount    decimal.Decimal        `json:"paid_amount"`
	PendingAmount decimal.Decimal        `json:"pending_amount"`
	Status        string                 `json:"status"`
	Contributions []ContributionResponse `json:"contributions"`
	Version       int64                  `json:"version"`
	PaymentDate   *time.Time             `json:"payment_date,omitempty"`
	Observations  string                 `json:"observations,omitempty"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// AcertoFromDomain converts a domain acerto to response.
func AcertoFromDomain(a *domain.Acerto) *AcertoResponse {
	contributions := make([]ContributionResponse, len(a.Contributions))
	for i, c := range a.Contributions {
		contributions[i] = ContributionResponse{
			Kind:   string(c.Kind),
			ID:     c.ID,
			Amount: c.Amount,
		}
	}

	return &AcertoResponse{
		ID:            a.ID,
		HolderName:    a.HolderName,
		Kind:          string(a.Kind),
		TotalAmount:   a.TotalAmount,
		PaidAmount:    a.PaidAmount,
		PendingAmount: a.PendingAmount(),
		Status:        string(a.Status),
		Contributions: contributions,
		Version:       a.Version,
		PaymentDate:   a.PaymentDate,
		Observations:  a.Observations,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// AcertosFromDomain converts domain acertos to responses.
func AcertosFromDomain(acertos []*domain.Acerto) []*AcertoResponse {
	result := make([]*AcertoResponse, len(acertos))
	for i, a := range acertos {
		result[i] = AcertoFromDomain(a)
	}
	return result
}

// CommissionResponse represents a seller commission in API responses.
type CommissionResponse struct {
	ID         string          `json:"id"`
	SaleID     string          `json:"sale_id"`
	SellerName string          `json:"seller_name"`
	SaleValue  decimal.Decimal `json:"sale_value"`
	Rate       decimal.Decimal `json:"rate"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CommissionFromDomain converts a domain commission to response.
func CommissionFromDomain(c *domain.Commission) *CommissionResponse {
	return &CommissionResponse{
		ID:         c.ID,
		SaleID:     c.SaleID,
		SellerName: c.SellerName,
		SaleValue:  c.SaleValue,
		Rate:       c.Rate,
		Amount:     c.Amount,
		Date:       c.Date,
		Status:     string(c.Status),
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// CommissionsFromDomain converts domain commissions to responses.
func CommissionsFromDomain(commissions []*domain.Commission) []*CommissionResponse {
	result := make([]*CommissionResponse, len(commissions))
	for i, c := range commissions {
		result[i] = CommissionFromDomain(c)
	}
	return result
}

// TaxResponse represents a tax obligation in API responses.
type TaxResponse struct {
	ID              string          `json:"id"`
	TaxType         string          `json:"tax_type"`
	Description     string          `json:"description,omitempty"`
	Amount          decimal.Decimal `json:"amount"`
	DueDate         time.Time       `json:"due_date"`
	ReferencePeriod string          `json:"reference_period,omitempty"`
	Paid            bool            `json:"paid"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TaxFromDomain converts a domain tax to response.
func TaxFromDomain(t *domain.Tax) *TaxResponse {
	return &TaxResponse{
		ID:              t.ID,
		TaxType:         t.TaxType,
		Description:     t.Description,
		Amount:          t.Amount,
		DueDate:         t.DueDate,
		ReferencePeriod: t.ReferencePeriod,
		Paid:            t.Paid,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

// TaxesFromDomain converts domain taxes to responses.
func TaxesFromDomain(taxes []*domain.Tax) []*TaxResponse {
	result := make([]*TaxResponse, len(taxes))
	for i, t := range taxes {
		result[i] = TaxFromDomain(t)
	}
	return result
}

// DueDateItemResponse represents one timeline entry in API responses.
type DueDateItemResponse struct {
	ID                string          `json:"id"`
	Source            string          `json:"source"`
	CounterpartyName  string          `json:"counterparty_name"`
	Description       string          `json:"description,omitempty"`
	Value             decimal.Decimal `json:"value"`
	DueDate           time.Time       `json:"due_date"`
	Urgency           string          `json:"urgency"`
	DaysUntilDue      int             `json:"days_until_due"`
	InstallmentNumber int             `json:"installment_number,omitempty"`
	TotalInstallments int             `json:"total_installments,omitempty"`
	RelatedID         string          `json:"related_id,omitempty"`
	Status            string          `json:"status"`
}

// DueDateItemsFromDomain converts domain timeline items to responses.
func DueDateItemsFromDomain(items []domain.DueDateItem) []DueDateItemResponse {
	result := make([]DueDateItemResponse, len(items))
	for i, item := range items {
		result[i] = DueDateItemResponse{
			ID:                item.ID,
			Source:            item.Source,
			CounterpartyName:  item.CounterpartyName,
			Description:       item.Description,
			Value:             item.Value,
			DueDate:           item.DueDate,
			Urgency:           string(item.Urgency),
			DaysUntilDue:      item.DaysUntilDue,
			InstallmentNumber: item.InstallmentNumber,
			TotalInstallments: item.TotalInstallments,
			RelatedID:         item.RelatedID,
			Status:            item.Status,
		}
	}
	return result
}

// OverdueSuggestionResponse represents suggested overdue charges.
type OverdueSuggestionResponse struct {
	Interest    decimal.Decimal `json:"interest"`
	Penalty     decimal.Decimal `json:"penalty"`
	DaysOverdue int             `json:"days_overdue"`
}

// OverdueSuggestionFromUseCase converts a use case suggestion to response.
func OverdueSuggestionFromUseCase(s *usecase.OverdueSuggestion) *OverdueSuggestionResponse {
	return &OverdueSuggestionResponse{
		Interest:    s.Interest,
		Penalty:     s.Penalty,
		DaysOverdue: s.Days,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
