package engine

import (
	"context"
	"fmt"
	"math"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"potlogic/models"
)

// Request is the single request shape consumed from the UI layer. Card
// tokens follow the (2-9|T|J|Q|K|A)(s|h|d|c) grammar, case-insensitive.
type Request struct {
	PotSize        float64  `json:"pot_size"`
	BetToCall      float64  `json:"bet_to_call"`
	PlayerCards    []string `json:"player_cards"`
	CommunityCards []string `json:"community_cards"`
	Position       string   `json:"position"`
	NumPlayers     int      `json:"num_players"`
	StackSize      *float64 `json:"stack_size,omitempty"`
	Seed           *int64   `json:"seed,omitempty"`
}

// DecisionResult is the full response contract. Equity, pot odds, and
// break-even equity are percentages; the expected value is in pot
// currency units.
type DecisionResult struct {
	PotOddsRatio      float64 `json:"pot_odds_ratio"`
	PotOddsPercentage float64 `json:"pot_odds_percentage"`
	ImpliedOdds       float64 `json:"implied_odds"`
	Equity            float64 `json:"equity"`
	ExpectedValue     float64 `json:"expected_value"`
	IsProfitable      bool    `json:"is_profitable"`
	Recommendation    string  `json:"recommendation"`
	BreakEvenEquity   float64 `json:"break_even_equity"`
}

// ProbabilityResult is the win/tie/lose breakdown returned by the
// probabilities endpoint, in percentages.
type ProbabilityResult struct {
	WinProbability  float64 `json:"win_probability"`
	TieProbability  float64 `json:"tie_probability"`
	LoseProbability float64 `json:"lose_probability"`
	Simulations     int     `json:"simulations"`
	Exact           bool    `json:"exact"`
}

// Engine orchestrates the hand evaluator, equity engine, odds arithmetic,
// and recommendation policy behind a single request/response contract.
// Each evaluation is stateless; the only shared state is the equity cache,
// which is explicit and bounded.
type Engine struct {
	cfg    Config
	local  *lru.Cache[string, EquityEstimate]
	shared EquityCache
}

// NewEngine builds an engine with the given configuration and an optional
// shared equity cache (nil disables cross-instance caching). A zero-value
// Config is replaced by DefaultConfig.
func NewEngine(cfg Config, shared EquityCache) *Engine {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Engine{
		cfg:    cfg,
		local:  newLocalCache(cfg.EquityCacheSize),
		shared: shared,
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Evaluate validates the request, computes equity, odds, and a
// recommendation, and assembles the response. Any component failure
// short-circuits with a tagged error; partial results are never returned
// for validation failures.
func (e *Engine) Evaluate(ctx context.Context, req Request) (DecisionResult, error) {
	if req.PotSize <= 0 {
		return DecisionResult{}, fmt.Errorf("%w: pot size must be positive", ErrInvalidInput)
	}
	if req.BetToCall < 0 {
		return DecisionResult{}, fmt.Errorf("%w: bet to call must be non-negative", ErrInvalidInput)
	}
	if req.NumPlayers < 2 || req.NumPlayers > 10 {
		return DecisionResult{}, fmt.Errorf("%w: num players must be between 2 and 10, got %d", ErrInvalidInput, req.NumPlayers)
	}
	if req.StackSize != nil && *req.StackSize < 0 {
		return DecisionResult{}, fmt.Errorf("%w: stack size must be non-negative", ErrInvalidInput)
	}

	hole, board, err := parseHoleAndBoard(req.PlayerCards, req.CommunityCards)
	if err != nil {
		return DecisionResult{}, err
	}

	position, err := models.ParsePosition(req.Position)
	if err != nil {
		return DecisionResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	est, err := e.ComputeEquity(ctx, hole, board, req.NumPlayers-1, req.Seed)
	if err != nil {
		return DecisionResult{}, err
	}
	equity := est.Equity()

	odds, err := CalculateOdds(req.PotSize, req.BetToCall, equity, req.StackSize)
	if err != nil {
		return DecisionResult{}, err
	}

	var made HandRank
	hasMade := false
	if len(board) >= 3 {
		all := make([]models.Card, 0, 7)
		all = append(all, hole...)
		all = append(all, board...)
		eval, evalErr := EvaluateBest(all)
		if evalErr != nil {
			return DecisionResult{}, evalErr
		}
		made = eval.Rank
		hasMade = true
	}

	rec := Recommend(e.cfg, equity, odds, made, hasMade, StreetForBoard(len(board)), position)

	return DecisionResult{
		PotOddsRatio:      round(odds.PotOddsRatio, 4),
		PotOddsPercentage: round(odds.PotOddsPercentage, 2),
		ImpliedOdds:       round(odds.ImpliedOdds, 2),
		Equity:            round(equity*100, 2),
		ExpectedValue:     round(odds.ExpectedValue, 2),
		IsProfitable:      odds.IsProfitable,
		Recommendation:    formatRecommendation(rec),
		BreakEvenEquity:   round(odds.BreakEvenEquity, 2),
	}, nil
}

// CalculateProbabilities runs the equity engine directly and reports the
// win/tie/lose split. numSimulations overrides the configured Monte Carlo
// sample count when non-zero and must stay within [1000, 100000].
func (e *Engine) CalculateProbabilities(ctx context.Context, playerCards, communityCards []string, numPlayers, numSimulations int, seed *int64) (ProbabilityResult, error) {
	if numPlayers < 2 || numPlayers > 10 {
		return ProbabilityResult{}, fmt.Errorf("%w: num players must be between 2 and 10, got %d", ErrInvalidInput, numPlayers)
	}

	eng := e
	if numSimulations != 0 {
		if numSimulations < 1000 || numSimulations > 100_000 {
			return ProbabilityResult{}, fmt.Errorf("%w: num simulations must be between 1000 and 100000, got %d", ErrInvalidInput, numSimulations)
		}
		override := *e
		override.cfg.MonteCarloSamples = numSimulations
		eng = &override
	}

	hole, board, err := parseHoleAndBoard(playerCards, communityCards)
	if err != nil {
		return ProbabilityResult{}, err
	}

	est, err := eng.ComputeEquity(ctx, hole, board, numPlayers-1, seed)
	if err != nil {
		return ProbabilityResult{}, err
	}

	return ProbabilityResult{
		WinProbability:  round(est.Win*100, 2),
		TieProbability:  round(est.Tie*100, 2),
		LoseProbability: round(est.Loss*100, 2),
		Simulations:     est.Samples,
		Exact:           est.Exact,
	}, nil
}

// parseHoleAndBoard parses and cross-checks hole and community tokens.
// Duplicate cards across the two sets fail; they are never silently
// deduplicated.
func parseHoleAndBoard(playerCards, communityCards []string) (hole, board []models.Card, err error) {
	if len(playerCards) != 2 {
		return nil, nil, fmt.Errorf("%w: need exactly 2 player cards, got %d", ErrInvalidInput, len(playerCards))
	}
	switch len(communityCards) {
	case 0, 3, 4, 5:
	default:
		return nil, nil, fmt.Errorf("%w: community cards must number 0, 3, 4 or 5, got %d", ErrInvalidInput, len(communityCards))
	}

	all := make([]string, 0, len(playerCards)+len(communityCards))
	all = append(all, playerCards...)
	all = append(all, communityCards...)
	cards, err := models.ParseCards(all)
	if err != nil {
		return nil, nil, err
	}
	return cards[:2], cards[2:], nil
}

func formatRecommendation(rec Recommendation) string {
	action := strings.ToUpper(string(rec.Action)[:1]) + string(rec.Action)[1:]
	return action + " - " + rec.Rationale
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
