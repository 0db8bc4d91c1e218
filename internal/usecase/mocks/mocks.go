package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/usecase"
)

// MockSaleRepository is a mock implementation of SaleRepository.
type MockSaleRepository struct {
	mu    sync.RWMutex
	sales map[string]*domain.Sale

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Sale, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Sale, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Sale, error)
	UpdateFunc            func(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error
	DeleteFunc            func(ctx context.Context, tx usecase.Transaction, id string) error
	ListFunc              func(ctx context.Context, filter usecase.ListFilter) ([]*domain.Sale, error)
}

func NewMockSaleRepository() *MockSaleRepository {
	return &MockSaleRepository{
		sales: make(map[string]*domain.Sale),
	}
}

func (m *MockSaleRepository) Create(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, sale)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sales[sale.ID] = sale
	return nil
}

func (m *MockSaleRepository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sales[id]; ok {
		return s, nil
	}
	return nil, domain.ErrSaleNotFound
}

func (m *MockSaleRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Sale, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockSaleRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Sale, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Sale
	for _, id := range ids {
		if s, ok := m.sales[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *MockSaleRepository) Update(ctx context.Context, tx usecase.Transaction, sale *domain.Sale) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, sale)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sales[sale.ID]; !ok {
		return domain.ErrSaleNotFound
	}
	m.sales[sale.ID] = sale
	return nil
}

func (m *MockSaleRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sales[id]; !ok {
		return domain.ErrSaleNotFound
	}
	delete(m.sales, id)
	return nil
}

func (m *MockSaleRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*domain.Sale, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Sale
	for _, s := range m.sales {
		out = append(out, s)
	}
	return out, nil
}

// MockDebtRepository is a mock implementation of DebtRepository.
type MockDebtRepository struct {
	mu    sync.RWMutex
	debts map[string]*domain.Debt

	CreateFunc            func(ctx context.Context, tx usecase.Transaction, debt *domain.Debt) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Debt, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Debt, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Debt, error)
	UpdateFunc            func(ctx context.Context, tx usecase.Transaction, debt *domain.Debt) error
	DeleteFunc            func(ctx context.Context, tx usecase.Transaction, id string) error
	ListFunc              func(ctx context.Context, filter usecase.ListFilter) ([]*domain.Debt, error)
}

func NewMockDebtRepository() *MockDebtRepository {
	return &MockDebtRepository{
		debts: make(map[string]*domain.Debt),
	}
}

func (m *MockDebtRepository) Create(ctx context.Context, tx usecase.Transaction, debt *domain.Debt) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, debt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debts[debt.ID] = debt
	return nil
}

func (m *MockDebtRepository) GetByID(ctx context.Context, id string) (*domain.Debt, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if d, ok := m.debts[id]; ok {
		return d, nil
	}
	return nil, domain.ErrDebtNotFound
}

func (m *MockDebtRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Debt, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockDebtRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Debt, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Debt
	for _, id := range ids {
		if d, ok := m.debts[id]; ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MockDebtRepository) Update(ctx context.Context, tx usecase.Transaction, debt *domain.Debt) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, debt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.debts[debt.ID]; !ok {
		return domain.ErrDebtNotFound
	}
	m.debts[debt.ID] = debt
	return nil
}

func (m *MockDebtRepository) Delete(ctx context.Context, tx usecase.Transaction, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.debts[id]; !ok {
		return domain.ErrDebtNotFound
	}
	delete(m.debts, id)
	return nil
}

func (m *MockDebtRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*domain.Debt, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Debt
	for _, d := range m.debts {
		out = append(out, d)
	}
	return out, nil
}

// MockInstrumentRepository is a mock implementation of InstrumentRepository.
type MockInstrumentRepository struct {
	mu          sync.RWMutex
	instruments map[string]*domain.Instrument

	CreateBatchFunc       func(ctx context.Context, tx usecase.Transaction, instruments []*domain.Instrument) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Instrument, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Instrument, error)
	UpdateFunc            func(ctx context.Context, tx usecase.Transaction, instrument *domain.Instrument) error
	DeleteByParentFunc    func(ctx context.Context, tx usecase.Transaction, parentKind domain.ParentKind, parentID string) error
	ListByParentFunc      func(ctx context.Context, parentKind domain.ParentKind, parentID string) ([]*domain.Instrument, error)
	ListReceivableDueFunc func(ctx context.Context, from, to time.Time) ([]*domain.Instrument, error)
	ListPayableDueFunc    func(ctx context.Context, from, to time.Time) ([]*domain.Instrument, error)
}

func NewMockInstrumentRepository() *MockInstrumentRepository {
	return &MockInstrumentRepository{
		instruments: make(map[string]*domain.Instrument),
	}
}

func (m *MockInstrumentRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, instruments []*domain.Instrument) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, instruments)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, inst := range instruments {
		m.instruments[inst.ID] = inst
	}
	return nil
}

func (m *MockInstrumentRepository) GetByID(ctx context.Context, id string) (*domain.Instrument, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inst, ok := m.instruments[id]; ok {
		return inst, nil
	}
	return nil, domain.ErrInstrumentNotFound
}

func (m *MockInstrumentRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Instrument, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockInstrumentRepository) Update(ctx context.Context, tx usecase.Transaction, instrument *domain.Instrument) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, instrument)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.instruments[instrument.ID]; !ok {
		return domain.ErrInstrumentNotFound
	}
	m.instruments[instrument.ID] = instrument
	return nil
}

func (m *MockInstrumentRepository) DeleteByParent(ctx context.Context, tx usecase.Transaction, parentKind domain.ParentKind, parentID string) error {
	if m.DeleteByParentFunc != nil {
		return m.DeleteByParentFunc(ctx, tx, parentKind, parentID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, inst := range m.instruments {
		if inst.ParentKind == parentKind && inst.ParentID == parentID {
			delete(m.instruments, id)
		}
	}
	return nil
}

func (m *MockInstrumentRepository) ListByParent(ctx context.Context, parentKind domain.ParentKind, parentID string) ([]*domain.Instrument, error) {
	if m.ListByParentFunc != nil {
		return m.ListByParentFunc(ctx, parentKind, parentID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Instrument
	for _, inst := range m.instruments {
		if inst.ParentKind == parentKind && inst.ParentID == parentID {
			out = append(out, inst)
		}
	}
	return out, nil
}

func (m *MockInstrumentRepository) ListReceivableDue(ctx context.Context, from, to time.Time) ([]*domain.Instrument, error) {
	if m.ListReceivableDueFunc != nil {
		return m.ListReceivableDueFunc(ctx, from, to)
	}
	return m.listDue(from, to, false), nil
}

func (m *MockInstrumentRepository) ListPayableDue(ctx context.Context, from, to time.Time) ([]*domain.Instrument, error) {
	if m.ListPayableDueFunc != nil {
		return m.ListPayableDueFunc(ctx, from, to)
	}
	return m.listDue(from, to, true), nil
}

func (m *MockInstrumentRepository) listDue(from, to time.Time, payable bool) []*domain.Instrument {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Instrument
	for _, inst := range m.instruments {
		if inst.Status != domain.InstrumentPending || inst.IsCompanyPayable != payable {
			continue
		}
		if inst.DueDate.Before(from) || inst.DueDate.After(to) {
			continue
		}
		out = append(out, inst)
	}
	return out
}

// MockPermutaRepository is a mock implementation of PermutaRepository.
type MockPermutaRepository struct {
	mu       sync.RWMutex
	permutas map[string]*domain.Permuta

	CreateFunc           func(ctx context.Context, permuta *domain.Permuta) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Permuta, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Permuta, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, permuta *domain.Permuta) error
	ListFunc             func(ctx context.Context, filter usecase.ListFilter) ([]*domain.Permuta, error)
}

func NewMockPermutaRepository() *MockPermutaRepository {
	return &MockPermutaRepository{
		permutas: make(map[string]*domain.Permuta),
	}
}

func (m *MockPermutaRepository) Create(ctx context.Context, permuta *domain.Permuta) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, permuta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.permutas[permuta.ID] = permuta
	return nil
}

func (m *MockPermutaRepository) GetByID(ctx context.Context, id string) (*domain.Permuta, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.permutas[id]; ok {
		return p, nil
	}
	return nil, domain.ErrPermutaNotFound
}

func (m *MockPermutaRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Permuta, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockPermutaRepository) Update(ctx context.Context, tx usecase.Transaction, permuta *domain.Permuta) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, permuta)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.permutas[permuta.ID]; !ok {
		return domain.ErrPermutaNotFound
	}
	permuta.Version++
	m.permutas[permuta.ID] = permuta
	return nil
}

func (m *MockPermutaRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*domain.Permuta, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Permuta
	for _, p := range m.permutas {
		out = append(out, p)
	}
	return out, nil
}

// MockAcertoRepository is a mock implementation of AcertoRepository.
type MockAcertoRepository struct {
	mu      sync.RWMutex
	acertos map[string]*domain.Acerto

	CreateFunc               func(ctx context.Context, tx usecase.Transaction, acerto *domain.Acerto) error
	GetByIDFunc              func(ctx context.Context, id string) (*domain.Acerto, error)
	GetByIDForUpdateFunc     func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Acerto, error)
	GetByHolderForUpdateFunc func(ctx context.Context, tx usecase.Transaction, holderKey string, kind domain.HolderKind) (*domain.Acerto, error)
	UpdateFunc               func(ctx context.Context, tx usecase.Transaction, acerto *domain.Acerto) error
	ListFunc                 func(ctx context.Context, filter usecase.ListFilter) ([]*domain.Acerto, error)
	ListOutstandingFunc      func(ctx context.Context, kind domain.HolderKind, from, to time.Time) ([]*domain.Acerto, error)
}

func NewMockAcertoRepository() *MockAcertoRepository {
	return &MockAcertoRepository{
		acertos: make(map[string]*domain.Acerto),
	}
}

func (m *MockAcertoRepository) Create(ctx context.Context, tx usecase.Transaction, acerto *domain.Acerto) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, acerto)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.acertos[acerto.ID] = acerto
	return nil
}

func (m *MockAcertoRepository) GetByID(ctx context.Context, id string) (*domain.Acerto, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.acertos[id]; ok {
		return a, nil
	}
	return nil, domain.ErrAcertoNotFound
}

func (m *MockAcertoRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Acerto, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAcertoRepository) GetByHolderForUpdate(ctx context.Context, tx usecase.Transaction, holderKey string, kind domain.HolderKind) (*domain.Acerto, error) {
	if m.GetByHolderForUpdateFunc != nil {
		return m.GetByHolderForUpdateFunc(ctx, tx, holderKey, kind)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, a := range m.acertos {
		if a.Kind == kind && domain.HolderKey(a.HolderName) == holderKey {
			return a, nil
		}
	}
	return nil, domain.ErrAcertoNotFound
}

func (m *MockAcertoRepository) Update(ctx context.Context, tx usecase.Transaction, acerto *domain.Acerto) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, acerto)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.acertos[acerto.ID]; !ok {
		return domain.ErrAcertoNotFound
	}
	acerto.Version++
	m.acertos[acerto.ID] = acerto
	return nil
}

func (m *MockAcertoRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*domain.Acerto, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Acerto
	for _, a := range m.acertos {
		out = append(out, a)
	}
	return out, nil
}

func (m *MockAcertoRepository) ListOutstanding(ctx context.Context, kind domain.HolderKind, from, to time.Time) ([]*domain.Acerto, error) {
	if m.ListOutstandingFunc != nil {
		return m.ListOutstandingFunc(ctx, kind, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Acerto
	for _, a := range m.acertos {
		if a.Kind == kind && a.Status != domain.AcertoPaid {
			out = append(out, a)
		}
	}
	return out, nil
}

// MockCommissionRepository is a mock implementation of CommissionRepository.
type MockCommissionRepository struct {
	mu          sync.RWMutex
	commissions map[string]*domain.Commission

	CreateFunc           func(ctx context.Context, tx usecase.Transaction, commission *domain.Commission) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Commission, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Transaction, id string) (*domain.Commission, error)
	GetBySaleFunc        func(ctx context.Context, saleID string) (*domain.Commission, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Transaction, commission *domain.Commission) error
	DeleteBySaleFunc     func(ctx context.Context, tx usecase.Transaction, saleID string) error
	ListFunc             func(ctx context.Context, filter usecase.ListFilter) ([]*domain.Commission, error)
}

func NewMockCommissionRepository() *MockCommissionRepository {
	return &MockCommissionRepository{
		commissions: make(map[string]*domain.Commission),
	}
}

func (m *MockCommissionRepository) Create(ctx context.Context, tx usecase.Transaction, commission *domain.Commission) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, commission)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commissions[commission.ID] = commission
	return nil
}

func (m *MockCommissionRepository) GetByID(ctx context.Context, id string) (*domain.Commission, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.commissions[id]; ok {
		return c, nil
	}
	return nil, domain.ErrCommissionNotFound
}

func (m *MockCommissionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Transaction, id string) (*domain.Commission, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockCommissionRepository) GetBySale(ctx context.Context, saleID string) (*domain.Commission, error) {
	if m.GetBySaleFunc != nil {
		return m.GetBySaleFunc(ctx, saleID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.commissions {
		if c.SaleID == saleID {
			return c, nil
		}
	}
	return nil, domain.ErrCommissionNotFound
}

func (m *MockCommissionRepository) Update(ctx context.Context, tx usecase.Transaction, commission *domain.Commission) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, commission)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.commissions[commission.ID]; !ok {
		return domain.ErrCommissionNotFound
	}
	m.commissions[commission.ID] = commission
	return nil
}

func (m *MockCommissionRepository) DeleteBySale(ctx context.Context, tx usecase.Transaction, saleID string) error {
	if m.DeleteBySaleFunc != nil {
		return m.DeleteBySaleFunc(ctx, tx, saleID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.commissions {
		if c.SaleID == saleID {
			delete(m.commissions, id)
		}
	}
	return nil
}

func (m *MockCommissionRepository) List(ctx context.Context, filter usecase.ListFilter) ([]*domain.Commission, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Commission
	for _, c := range m.commissions {
		if filter.HolderName != "" && domain.HolderKey(c.SellerName) != domain.HolderKey(filter.HolderName) {
			continue
		}
		if filter.Status != "" && string(c.Status) != filter.Status {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// MockTaxRepository is a mock implementation of TaxRepository.
type MockTaxRepository struct {
	mu    sync.RWMutex
	taxes map[string]*domain.Tax

	CreateFunc         func(ctx context.Context, tax *domain.Tax) error
	GetByIDFunc        func(ctx context.Context, id string) (*domain.Tax, error)
	UpdateFunc         func(ctx context.Context, tax *domain.Tax) error
	DeleteFunc         func(ctx context.Context, id string) error
	ListDueBetweenFunc func(ctx context.Context, from, to time.Time) ([]*domain.Tax, error)
}

func NewMockTaxRepository() *MockTaxRepository {
	return &MockTaxRepository{
		taxes: make(map[string]*domain.Tax),
	}
}

func (m *MockTaxRepository) Create(ctx context.Context, tax *domain.Tax) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tax)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.taxes[tax.ID] = tax
	return nil
}

func (m *MockTaxRepository) GetByID(ctx context.Context, id string) (*domain.Tax, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.taxes[id]; ok {
		return t, nil
	}
	return nil, domain.ErrTaxNotFound
}

func (m *MockTaxRepository) Update(ctx context.Context, tax *domain.Tax) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tax)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.taxes[tax.ID]; !ok {
		return domain.ErrTaxNotFound
	}
	m.taxes[tax.ID] = tax
	return nil
}

func (m *MockTaxRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.taxes[id]; !ok {
		return domain.ErrTaxNotFound
	}
	delete(m.taxes, id)
	return nil
}

func (m *MockTaxRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]*domain.Tax, error) {
	if m.ListDueBetweenFunc != nil {
		return m.ListDueBetweenFunc(ctx, from, to)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Tax
	for _, t := range m.taxes {
		if !t.DueDate.Before(from) && !t.DueDate.After(to) {
			out = append(out, t)
		}
	}
	return out, nil
}

// MockCashFlowLedger is a mock implementation of CashFlowLedger that
// captures every recorded entry.
type MockCashFlowLedger struct {
	mu      sync.Mutex
	Entries []*domain.CashFlowEntry

	RecordFunc func(ctx context.Context, tx usecase.Transaction, entry *domain.CashFlowEntry) error
}

func NewMockCashFlowLedger() *MockCashFlowLedger {
	return &MockCashFlowLedger{}
}

func (m *MockCashFlowLedger) Record(ctx context.Context, tx usecase.Transaction, entry *domain.CashFlowEntry) error {
	if m.RecordFunc != nil {
		return m.RecordFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
}

func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	return &MockTransaction{}, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	return nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string
	counter      int
	mu           sync.Mutex
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("mock-id-%d", m.counter)
}

// MockClock is a mock implementation of Clock pinned to a fixed instant.
type MockClock struct {
	NowFunc func() time.Time
	Fixed   time.Time
}

func NewMockClock(fixed time.Time) *MockClock {
	return &MockClock{Fixed: fixed}
}

func (m *MockClock) Now() time.Time {
	if m.NowFunc != nil {
		return m.NowFunc()
	}
	return m.Fixed
}
