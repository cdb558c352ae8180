package engine

import (
	"potlogic/models"
)

// Action is the discrete recommendation outcome.
type Action string

const (
	ActionFold  Action = "fold"
	ActionCall  Action = "call"
	ActionRaise Action = "raise"
)

// Street is the betting round, determined by how many community cards are
// visible.
type Street string

const (
	StreetPreflop Street = "preflop"
	StreetFlop    Street = "flop"
	StreetTurn    Street = "turn"
	StreetRiver   Street = "river"
)

// StreetForBoard maps a community card count to its street.
func StreetForBoard(boardLen int) Street {
	switch boardLen {
	case 3:
		return StreetFlop
	case 4:
		return StreetTurn
	case 5:
		return StreetRiver
	default:
		return StreetPreflop
	}
}

// Recommendation is a discrete action plus the rationale and the
// equity/break-even pair that justified it. Equity and BreakEvenEquity are
// percentages.
type Recommendation struct {
	Action          Action  `json:"action"`
	Rationale       string  `json:"rationale"`
	Equity          float64 `json:"equity"`
	BreakEvenEquity float64 `json:"break_even_equity"`
}

// Recommend applies the decision table. equity is a fraction in 0..1;
// made/hasMade describe the best made hand when at least 5 cards are
// visible. The table is evaluated in precedence order:
//
//  1. equity more than MarginThreshold below break-even: Fold.
//  2. equity more than MarginThreshold above break-even, position allows a
//     raise signal, and the made hand reaches StrongHandMin on the turn or
//     river: Raise.
//  3. otherwise Call, with the rationale depending on the margin sign.
func Recommend(cfg Config, equity float64, odds OddsResult, made HandRank, hasMade bool, street Street, position models.Position) Recommendation {
	eq := equity * 100
	be := odds.BreakEvenEquity

	rec := Recommendation{Equity: eq, BreakEvenEquity: be}

	switch {
	case eq < be-cfg.MarginThreshold:
		rec.Action = ActionFold
		rec.Rationale = "equity below pot odds"
	case eq > be+cfg.MarginThreshold &&
		position.AllowsRaiseSignal() &&
		hasMade && made >= cfg.StrongHandMin &&
		(street == StreetTurn || street == StreetRiver):
		rec.Action = ActionRaise
		rec.Rationale = "significant equity edge"
	default:
		rec.Action = ActionCall
		if eq >= be {
			rec.Rationale = "marginal but profitable"
		} else {
			rec.Rationale = "close decision, proceed with caution"
		}
	}
	return rec
}
