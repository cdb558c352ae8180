package engine

import (
	"fmt"
	"math"
)

// OddsResult is the pure-arithmetic layer: pot odds, break-even equity,
// implied odds, and expected value for a call decision.
type OddsResult struct {
	PotOddsRatio      float64
	PotOddsPercentage float64
	BreakEvenEquity   float64
	ImpliedOdds       float64
	ExpectedValue     float64
	IsProfitable      bool
}

// CalculateOdds converts pot size, bet to call, and equity (a fraction in
// 0..1) into the odds breakdown.
//
// The expected value follows the calling convention
//
//	EV = equity*potSize - (1-equity)*betToCall
//
// i.e. the EV of calling relative to not having already contributed
// betToCall. Implied odds estimate future winnings when behind on current
// odds: max(0, (breakEvenEquity - equity%)/100 * stackRemaining) when
// stack data is supplied, else 0.
func CalculateOdds(potSize, betToCall, equity float64, stackRemaining *float64) (OddsResult, error) {
	if potSize < 0 || betToCall < 0 {
		return OddsResult{}, fmt.Errorf("%w: pot size and bet to call must be non-negative", ErrInvalidInput)
	}

	var ratio float64
	if potSize+betToCall > 0 {
		ratio = betToCall / (potSize + betToCall)
	}
	percentage := ratio * 100

	implied := 0.0
	if stackRemaining != nil && *stackRemaining > 0 {
		implied = math.Max(0, (percentage-equity*100)/100**stackRemaining)
	}

	return OddsResult{
		PotOddsRatio:      ratio,
		PotOddsPercentage: percentage,
		BreakEvenEquity:   percentage,
		ImpliedOdds:       implied,
		ExpectedValue:     equity*potSize - (1-equity)*betToCall,
		IsProfitable:      equity*100 > percentage,
	}, nil
}
