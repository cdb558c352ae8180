package engine

import (
	"testing"

	"potlogic/models"
)

func TestStreetForBoard(t *testing.T) {
	cases := []struct {
		boardLen int
		want     Street
	}{
		{0, StreetPreflop},
		{3, StreetFlop},
		{4, StreetTurn},
		{5, StreetRiver},
	}
	for _, tc := range cases {
		if got := StreetForBoard(tc.boardLen); got != tc.want {
			t.Errorf("StreetForBoard(%d) = %s, want %s", tc.boardLen, got, tc.want)
		}
	}
}

func TestRecommend(t *testing.T) {
	cfg := DefaultConfig()
	odds := OddsResult{BreakEvenEquity: 33.33}

	cases := []struct {
		name      string
		equity    float64
		made      HandRank
		hasMade   bool
		street    Street
		position  models.Position
		want      Action
		rationale string
	}{
		{
			name:   "deep underdog folds",
			equity: 0.20, made: OnePair, hasMade: true, street: StreetRiver,
			position: models.PositionButton,
			want:     ActionFold, rationale: "equity below pot odds",
		},
		{
			name:   "strong hand big edge raises on river",
			equity: 0.60, made: FullHouse, hasMade: true, street: StreetRiver,
			position: models.PositionButton,
			want:     ActionRaise, rationale: "significant equity edge",
		},
		{
			name:   "early position suppresses the raise",
			equity: 0.60, made: FullHouse, hasMade: true, street: StreetRiver,
			position: models.PositionEarly,
			want:     ActionCall,
		},
		{
			name:   "weak made hand calls despite the edge",
			equity: 0.60, made: OnePair, hasMade: true, street: StreetRiver,
			position: models.PositionButton,
			want:     ActionCall,
		},
		{
			name:   "flop never raises",
			equity: 0.60, made: FullHouse, hasMade: true, street: StreetFlop,
			position: models.PositionButton,
			want:     ActionCall,
		},
		{
			name:   "preflop without a made hand calls",
			equity: 0.60, hasMade: false, street: StreetPreflop,
			position: models.PositionButton,
			want:     ActionCall,
		},
		{
			name:   "ahead inside the margin calls as profitable",
			equity: 0.34, made: OnePair, hasMade: true, street: StreetTurn,
			position: models.PositionButton,
			want:     ActionCall, rationale: "marginal but profitable",
		},
		{
			name:   "behind inside the margin calls with caution",
			equity: 0.32, made: OnePair, hasMade: true, street: StreetTurn,
			position: models.PositionButton,
			want:     ActionCall, rationale: "close decision, proceed with caution",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := Recommend(cfg, tc.equity, odds, tc.made, tc.hasMade, tc.street, tc.position)
			if rec.Action != tc.want {
				t.Fatalf("action = %s, want %s", rec.Action, tc.want)
			}
			if tc.rationale != "" && rec.Rationale != tc.rationale {
				t.Errorf("rationale = %q, want %q", rec.Rationale, tc.rationale)
			}
			if rec.Equity != tc.equity*100 {
				t.Errorf("recommendation equity = %v, want %v", rec.Equity, tc.equity*100)
			}
		})
	}
}
