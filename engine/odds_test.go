package engine

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestCalculateOdds_Basic(t *testing.T) {
	odds, err := CalculateOdds(100, 50, 0.40, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !almostEqual(odds.PotOddsRatio, 1.0/3.0, 1e-9) {
		t.Errorf("ratio = %v, want 0.3333", odds.PotOddsRatio)
	}
	if !almostEqual(odds.PotOddsPercentage, 100.0/3.0, 1e-9) {
		t.Errorf("percentage = %v, want 33.33", odds.PotOddsPercentage)
	}
	if odds.BreakEvenEquity != odds.PotOddsPercentage {
		t.Error("break-even equity should equal the pot odds percentage")
	}
	// EV = 0.40*100 - 0.60*50 = 10
	if !almostEqual(odds.ExpectedValue, 10, 1e-9) {
		t.Errorf("EV = %v, want 10", odds.ExpectedValue)
	}
	if !odds.IsProfitable {
		t.Error("40%% equity vs 33.33%% pot odds should be profitable")
	}
}

func TestCalculateOdds_ZeroBet(t *testing.T) {
	odds, err := CalculateOdds(100, 0, 0.25, nil)
	if err != nil {
		t.Fatal(err)
	}
	if odds.PotOddsRatio != 0 || odds.PotOddsPercentage != 0 {
		t.Errorf("zero bet should give zero pot odds, got %v / %v", odds.PotOddsRatio, odds.PotOddsPercentage)
	}
	// EV of a free option is equity * pot.
	if !almostEqual(odds.ExpectedValue, 25, 1e-9) {
		t.Errorf("EV = %v, want 25", odds.ExpectedValue)
	}
	if !odds.IsProfitable {
		t.Error("any equity beats a zero price")
	}
}

func TestCalculateOdds_ImpliedOdds(t *testing.T) {
	stack := 200.0

	// Behind on current odds: shortfall times stack.
	odds, err := CalculateOdds(100, 50, 0.30, &stack)
	if err != nil {
		t.Fatal(err)
	}
	wantImplied := (100.0/3.0 - 30.0) / 100.0 * stack
	if !almostEqual(odds.ImpliedOdds, wantImplied, 1e-9) {
		t.Errorf("implied = %v, want %v", odds.ImpliedOdds, wantImplied)
	}

	// Ahead on current odds: clamps to zero.
	odds, err = CalculateOdds(100, 50, 0.50, &stack)
	if err != nil {
		t.Fatal(err)
	}
	if odds.ImpliedOdds != 0 {
		t.Errorf("implied = %v, want 0 when already profitable", odds.ImpliedOdds)
	}

	// No stack data: zero.
	odds, err = CalculateOdds(100, 50, 0.30, nil)
	if err != nil {
		t.Fatal(err)
	}
	if odds.ImpliedOdds != 0 {
		t.Errorf("implied = %v, want 0 without stack data", odds.ImpliedOdds)
	}
}

func TestCalculateOdds_NegativeInput(t *testing.T) {
	if _, err := CalculateOdds(-1, 50, 0.3, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative pot: error = %v, want ErrInvalidInput", err)
	}
	if _, err := CalculateOdds(100, -1, 0.3, nil); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("negative bet: error = %v, want ErrInvalidInput", err)
	}
}

func TestCalculateOdds_BreakEvenBoundary(t *testing.T) {
	// Exactly at break-even is not profitable.
	odds, err := CalculateOdds(100, 50, 1.0/3.0, nil)
	if err != nil {
		t.Fatal(err)
	}
	if odds.IsProfitable {
		t.Error("equity exactly at break-even should not be profitable")
	}
}
