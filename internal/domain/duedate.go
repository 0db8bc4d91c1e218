package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Urgency buckets a due-date item by how soon it falls due. Presentation
// metadata only, but deterministic: computed from date-only day diffs.
type Urgency string

const (
	UrgencyOverdue     Urgency = "overdue"
	UrgencyDueToday    Urgency = "due_today"
	UrgencyDueTomorrow Urgency = "due_tomorrow"
	UrgencySoon        Urgency = "soon"
	UrgencyThisWeek    Urgency = "this_week"
	UrgencyLater       Urgency = "later"
)

// UrgencyFor buckets a due date relative to today.
func UrgencyFor(dueDate, today time.Time) Urgency {
	days := DaysBetween(today, dueDate)

	switch {
	case days < 0:
		return UrgencyOverdue
	case days == 0:
		return UrgencyDueToday
	case days == 1:
		return UrgencyDueTomorrow
	case days <= 3:
		return UrgencySoon
	case days <= 7:
		return UrgencyThisWeek
	default:
		return UrgencyLater
	}
}

// DueDateItem is one row of the receivables/payables timeline: an
// outstanding instrument, acerto balance, or tax, annotated with urgency.
type DueDateItem struct {
	ID                string
	Source            string // "check", "boleto", "acerto", "tax"
	CounterpartyName  string
	Description       string
	Value             decimal.Decimal
	DueDate           time.Time
	Urgency           Urgency
	DaysUntilDue      int
	InstallmentNumber int
	TotalInstallments int
	RelatedID         string
	Status            string
}

// AnnotateAndSort stamps urgency on every item and orders the timeline by
// due date ascending, then by counterparty for a stable order on ties.
func AnnotateAndSort(items []DueDateItem, today time.Time) []DueDateItem {
	for idx := range items {
		items[idx].DueDate = DateOnly(items[idx].DueDate)
		items[idx].DaysUntilDue = DaysBetween(today, items[idx].DueDate)
		items[idx].Urgency = UrgencyFor(items[idx].DueDate, today)
	}

	sort.SliceStable(items, func(a, b int) bool {
		if !items[a].DueDate.Equal(items[b].DueDate) {
			return items[a].DueDate.Before(items[b].DueDate)
		}
		return items[a].CounterpartyName < items[b].CounterpartyName
	})

	return items
}
