package domain

import (
	"testing"
	"time"
)

func TestUrgencyFor(t *testing.T) {
	today := date("2025-06-10")

	tests := []struct {
		due  string
		want Urgency
	}{
		{"2025-06-01", UrgencyOverdue},
		{"2025-06-09", UrgencyOverdue},
		{"2025-06-10", UrgencyDueToday},
		{"2025-06-11", UrgencyDueTomorrow},
		{"2025-06-12", UrgencySoon},
		{"2025-06-13", UrgencySoon},
		{"2025-06-14", UrgencyThisWeek},
		{"2025-06-17", UrgencyThisWeek},
		{"2025-06-18", UrgencyLater},
		{"2026-01-01", UrgencyLater},
	}

	for _, tt := range tests {
		if got := UrgencyFor(date(tt.due), today); got != tt.want {
			t.Errorf("UrgencyFor(%s): expected %s, got %s", tt.due, tt.want, got)
		}
	}
}

func TestUrgencyFor_IgnoresTimeOfDay(t *testing.T) {
	// 23:59 today against 00:01 tomorrow is still one calendar day apart
	today := time.Date(2025, 6, 10, 23, 59, 0, 0, time.UTC)
	due := time.Date(2025, 6, 11, 0, 1, 0, 0, time.UTC)

	if got := UrgencyFor(due, today); got != UrgencyDueTomorrow {
		t.Errorf("expected due_tomorrow, got %s", got)
	}
}

func TestAnnotateAndSort(t *testing.T) {
	today := date("2025-06-10")

	items := []DueDateItem{
		{ID: "c", Source: "boleto", CounterpartyName: "Zeca", Value: dec("100"), DueDate: date("2025-06-20")},
		{ID: "a", Source: "check", CounterpartyName: "Maria", Value: dec("200"), DueDate: date("2025-06-05")},
		{ID: "b", Source: "tax", CounterpartyName: "Alice", Value: dec("300"), DueDate: date("2025-06-20")},
	}

	got := AnnotateAndSort(items, today)

	wantOrder := []string{"a", "b", "c"}
	for i, id := range wantOrder {
		if got[i].ID != id {
			t.Fatalf("position %d: expected %s, got %s", i, id, got[i].ID)
		}
	}

	if got[0].Urgency != UrgencyOverdue || got[0].DaysUntilDue != -5 {
		t.Errorf("overdue item: got %s / %d days", got[0].Urgency, got[0].DaysUntilDue)
	}
	if got[1].Urgency != UrgencyLater || got[1].DaysUntilDue != 10 {
		t.Errorf("later item: got %s / %d days", got[1].Urgency, got[1].DaysUntilDue)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from string
		to   string
		want int
	}{
		{"2025-01-01", "2025-01-01", 0},
		{"2025-01-01", "2025-01-31", 30},
		{"2025-01-31", "2025-01-01", -30},
		{"2024-02-28", "2024-03-01", 2}, // leap year
		{"2025-02-28", "2025-03-01", 1},
	}

	for _, tt := range tests {
		if got := DaysBetween(date(tt.from), date(tt.to)); got != tt.want {
			t.Errorf("DaysBetween(%s, %s): expected %d, got %d", tt.from, tt.to, tt.want, got)
		}
	}
}
