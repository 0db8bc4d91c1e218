package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func activePermuta(credit string) *Permuta {
	return &Permuta{
		ID:          "perm-1",
		HolderName:  "Carlos",
		CreditValue: dec(credit),
		Status:      PermutaActive,
	}
}

func TestPermuta_Consume(t *testing.T) {
	t.Run("sequential consumption tracks remaining", func(t *testing.T) {
		p := activePermuta("20000")

		if err := p.Consume(dec("5000")); err != nil {
			t.Fatalf("first consume: %v", err)
		}

		if !p.RemainingValue().Equal(dec("15000")) {
			t.Errorf("expected remaining 15000, got %s", p.RemainingValue())
		}

		err := p.Consume(dec("16000"))
		if !errors.Is(err, ErrInsufficientCredit) {
			t.Fatalf("expected ErrInsufficientCredit, got %v", err)
		}

		// failed consume must not mutate state
		if !p.ConsumedValue.Equal(dec("5000")) {
			t.Errorf("consumed changed after failure: %s", p.ConsumedValue)
		}
		if p.Status != PermutaActive {
			t.Errorf("status changed after failure: %s", p.Status)
		}
	})

	t.Run("consuming the full credit exhausts it", func(t *testing.T) {
		p := activePermuta("1000")

		if err := p.Consume(dec("1000")); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if p.Status != PermutaExhausted {
			t.Errorf("expected exhausted, got %s", p.Status)
		}
		if !p.RemainingValue().IsZero() {
			t.Errorf("expected zero remaining, got %s", p.RemainingValue())
		}
	})

	t.Run("cancelled credit rejects consumption", func(t *testing.T) {
		p := activePermuta("1000")
		if err := p.Cancel(); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		if err := p.Consume(dec("100")); !errors.Is(err, ErrCreditUnavailable) {
			t.Errorf("expected ErrCreditUnavailable, got %v", err)
		}
	})

	t.Run("non-positive amounts rejected", func(t *testing.T) {
		p := activePermuta("1000")

		if err := p.Consume(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
			t.Errorf("expected ErrInvalidAmount, got %v", err)
		}
	})
}

func TestPermuta_Release(t *testing.T) {
	p := activePermuta("1000")

	if err := p.Consume(dec("1000")); err != nil {
		t.Fatalf("consume: %v", err)
	}
	if p.Status != PermutaExhausted {
		t.Fatalf("expected exhausted, got %s", p.Status)
	}

	if err := p.Release(dec("400")); err != nil {
		t.Fatalf("release: %v", err)
	}

	if p.Status != PermutaActive {
		t.Errorf("expected active after release, got %s", p.Status)
	}
	if !p.RemainingValue().Equal(dec("400")) {
		t.Errorf("expected remaining 400, got %s", p.RemainingValue())
	}

	// releasing more than consumed clamps at zero
	if err := p.Release(dec("9999")); err != nil {
		t.Fatalf("release: %v", err)
	}
	if !p.ConsumedValue.IsZero() {
		t.Errorf("expected zero consumed, got %s", p.ConsumedValue)
	}
}

func TestPermuta_InvariantsHoldOverSequences(t *testing.T) {
	p := activePermuta("5000")

	steps := []struct {
		op     string
		amount string
	}{
		{"consume", "1200"},
		{"consume", "800"},
		{"release", "500"},
		{"consume", "3500"},
		{"consume", "400"}, // fails, nothing remains at this point
		{"release", "5000"},
		{"consume", "5000"},
	}

	for i, s := range steps {
		switch s.op {
		case "consume":
			_ = p.Consume(dec(s.amount))
		case "release":
			_ = p.Release(dec(s.amount))
		}

		if p.ConsumedValue.IsNegative() || p.ConsumedValue.GreaterThan(p.CreditValue) {
			t.Fatalf("step %d: consumed %s outside [0, %s]", i, p.ConsumedValue, p.CreditValue)
		}

		exhausted := p.RemainingValue().IsZero()
		if (p.Status == PermutaExhausted) != exhausted {
			t.Fatalf("step %d: status %s inconsistent with remaining %s", i, p.Status, p.RemainingValue())
		}
	}
}
