package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/rmacedo/contas/internal/domain"
	"github.com/rmacedo/contas/internal/infrastructure/metrics"
)

// DueDateUseCase assembles the receivables and payables timelines from
// every source that can fall due: instruments, outstanding acertos and
// taxes. Results are cached briefly; the cache is read-through and a cache
// failure never fails the request.
type DueDateUseCase struct {
	instrumentRepo InstrumentRepository
	acertoRepo     AcertoRepository
	taxRepo        TaxRepository
	cache          Cache
	clock          Clock
	logger         zerolog.Logger
	metrics        *metrics.Metrics
}

// NewDueDateUseCase creates a new DueDateUseCase.
func NewDueDateUseCase(
	instrumentRepo InstrumentRepository,
	acertoRepo AcertoRepository,
	taxRepo TaxRepository,
	cache Cache,
	clock Clock,
	logger zerolog.Logger,
	m *metrics.Metrics,
) *DueDateUseCase {
	return &DueDateUseCase{
		instrumentRepo: instrumentRepo,
		acertoRepo:     acertoRepo,
		taxRepo:        taxRepo,
		cache:          cache,
		clock:          clock,
		logger:         logger,
		metrics:        m,
	}
}

// TimelineInput bounds the timeline window. A zero To defaults to 90 days
// past From; a zero From defaults to today minus 30 days so recent overdue
// items stay visible.
type TimelineInput struct {
	From time.Time
	To   time.Time
}

func (in *TimelineInput) normalize(now time.Time) {
	today := domain.DateOnly(now)
	if in.From.IsZero() {
		in.From = domain.AddDays(today, -30)
	} else {
		in.From = domain.DateOnly(in.From)
	}
	if in.To.IsZero() {
		in.To = domain.AddDays(in.From, 90)
	} else {
		in.To = domain.DateOnly(in.To)
	}
}

// Receivables returns the incoming timeline: pending sale boletos,
// third-party checks held from clients, and outstanding client acertos,
// ordered by due date with urgency annotated.
func (uc *DueDateUseCase) Receivables(ctx context.Context, input TimelineInput) ([]domain.DueDateItem, error) {
	now := uc.clock.Now()
	input.normalize(now)

	cacheKey := timelineCacheKey("receivables", input, now)
	if items, ok := uc.cacheGet(ctx, cacheKey); ok {
		return items, nil
	}

	instruments, err := uc.instrumentRepo.ListReceivableDue(ctx, input.From, input.To)
	if err != nil {
		return nil, err
	}

	items := instrumentItems(instruments)

	acertos, err := uc.acertoRepo.ListOutstanding(ctx, domain.HolderClient, input.From, input.To)
	if err != nil {
		return nil, err
	}
	items = append(items, acertoItems(acertos, input.To)...)

	items = domain.AnnotateAndSort(items, now)
	uc.cacheSet(ctx, cacheKey, items)

	return items, nil
}

// Payables returns the outgoing timeline: company-payable instruments,
// outstanding company acertos and unpaid taxes.
func (uc *DueDateUseCase) Payables(ctx context.Context, input TimelineInput) ([]domain.DueDateItem, error) {
	now := uc.clock.Now()
	input.normalize(now)

	cacheKey := timelineCacheKey("payables", input, now)
	if items, ok := uc.cacheGet(ctx, cacheKey); ok {
		return items, nil
	}

	instruments, err := uc.instrumentRepo.ListPayableDue(ctx, input.From, input.To)
	if err != nil {
		return nil, err
	}

	items := instrumentItems(instruments)

	acertos, err := uc.acertoRepo.ListOutstanding(ctx, domain.HolderCompany, input.From, input.To)
	if err != nil {
		return nil, err
	}
	items = append(items, acertoItems(acertos, input.To)...)

	taxes, err := uc.taxRepo.ListDueBetween(ctx, input.From, input.To)
	if err != nil {
		return nil, err
	}
	for _, tax := range taxes {
		if tax.Paid {
			continue
		}
		items = append(items, domain.DueDateItem{
			ID:               tax.ID,
			Source:           "tax",
			CounterpartyName: tax.TaxType,
			Description:      tax.Description,
			Value:            tax.Amount,
			DueDate:          tax.DueDate,
			RelatedID:        tax.ID,
			Status:           "pending",
		})
	}

	items = domain.AnnotateAndSort(items, now)
	uc.cacheSet(ctx, cacheKey, items)

	return items, nil
}

func instrumentItems(instruments []*domain.Instrument) []domain.DueDateItem {
	items := make([]domain.DueDateItem, 0, len(instruments))
	for _, inst := range instruments {
		items = append(items, domain.DueDateItem{
			ID:                inst.ID,
			Source:            string(inst.Kind),
			CounterpartyName:  inst.CounterpartyName,
			Value:             inst.Value,
			DueDate:           inst.DueDate,
			InstallmentNumber: inst.InstallmentNumber,
			TotalInstallments: inst.TotalInstallments,
			RelatedID:         inst.ParentID,
			Status:            string(inst.Status),
		})
	}
	return items
}

// acertoItems projects outstanding running-account balances onto the
// timeline. An acerto without an agreed payment date falls due at the
// window end so it still shows up instead of silently dropping out.
func acertoItems(acertos []*domain.Acerto, windowEnd time.Time) []domain.DueDateItem {
	var items []domain.DueDateItem
	for _, a := range acertos {
		pending := a.PendingAmount()
		if pending.LessThanOrEqual(domain.Epsilon) {
			continue
		}

		due := windowEnd
		if a.PaymentDate != nil {
			due = *a.PaymentDate
		}

		items = append(items, domain.DueDateItem{
			ID:               a.ID,
			Source:           "acerto",
			CounterpartyName: a.HolderName,
			Value:            pending,
			DueDate:          due,
			RelatedID:        a.ID,
			Status:           string(a.Status),
		})
	}
	return items
}

func timelineCacheKey(side string, input TimelineInput, now time.Time) string {
	return fmt.Sprintf("duedates:%s:%s:%s:%s",
		side,
		input.From.Format("2006-01-02"),
		input.To.Format("2006-01-02"),
		domain.DateOnly(now).Format("2006-01-02"),
	)
}

func (uc *DueDateUseCase) cacheGet(ctx context.Context, key string) ([]domain.DueDateItem, bool) {
	data, err := uc.cache.Get(ctx, key)
	if err != nil || data == nil {
		uc.cacheMiss()
		return nil, false
	}

	var items []domain.DueDateItem
	if err := json.Unmarshal(data, &items); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("discarding corrupt timeline cache entry")
		uc.cacheMiss()
		return nil, false
	}

	if uc.metrics != nil {
		uc.metrics.TimelineCacheHits.Inc()
	}

	return items, true
}

func (uc *DueDateUseCase) cacheMiss() {
	if uc.metrics != nil {
		uc.metrics.TimelineCacheMisses.Inc()
	}
}

func (uc *DueDateUseCase) cacheSet(ctx context.Context, key string, items []domain.DueDateItem) {
	data, err := json.Marshal(items)
	if err != nil {
		return
	}

	if err := uc.cache.Set(ctx, key, data, TimelineCacheTTL); err != nil {
		uc.logger.Warn().Err(err).Str("key", key).Msg("failed to cache timeline")
	}
}
