package engine

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"potlogic/models"
)

// EquityEstimate is the win/tie/loss breakdown for the hero hand against a
// uniform-random opponent field. Probabilities sum to 1 within floating
// tolerance. Exact marks exhaustive enumeration; otherwise the estimate is
// Monte Carlo sampled and StdError carries the binomial standard error.
type EquityEstimate struct {
	Win      float64 `json:"win"`
	Tie      float64 `json:"tie"`
	Loss     float64 `json:"loss"`
	Samples  int     `json:"samples"`
	Exact    bool    `json:"exact"`
	StdError float64 `json:"std_error"`
}

// Equity is the showdown equity: win probability plus half credit for ties.
func (e EquityEstimate) Equity() float64 {
	return e.Win + e.Tie/2
}

// ConfidenceInterval returns the 95% interval around the equity for
// sampled estimates. For exact results both bounds equal the equity.
func (e EquityEstimate) ConfidenceInterval() (lower, upper float64) {
	eq := e.Equity()
	margin := 1.96 * e.StdError
	return math.Max(0, eq-margin), math.Min(1, eq+margin)
}

type tally struct {
	win, tie, loss int64
}

func (t *tally) merge(o tally) {
	t.win += o.win
	t.tie += o.tie
	t.loss += o.loss
}

func (t tally) total() int64 {
	return t.win + t.tie + t.loss
}

func newEstimate(t tally, exact bool) EquityEstimate {
	n := float64(t.total())
	est := EquityEstimate{
		Win:     float64(t.win) / n,
		Tie:     float64(t.tie) / n,
		Loss:    float64(t.loss) / n,
		Samples: int(t.total()),
		Exact:   exact,
	}
	if !exact {
		eq := est.Equity()
		est.StdError = math.Sqrt(eq * (1 - eq) / n)
	}
	return est
}

// ComputeEquity estimates the hero's equity given 2 hole cards, a board of
// 0/3/4/5 community cards, and the number of opponents. Small state spaces
// are enumerated exhaustively; larger ones are Monte Carlo sampled with an
// optional fixed seed for reproducibility.
func (e *Engine) ComputeEquity(ctx context.Context, hole, board []models.Card, opponents int, seed *int64) (EquityEstimate, error) {
	if len(hole) != 2 {
		return EquityEstimate{}, fmt.Errorf("%w: need exactly 2 hole cards, got %d", ErrInvalidInput, len(hole))
	}
	switch len(board) {
	case 0, 3, 4, 5:
	default:
		return EquityEstimate{}, fmt.Errorf("%w: board must have 0, 3, 4 or 5 cards, got %d", ErrInvalidInput, len(board))
	}
	if opponents < 1 {
		return EquityEstimate{}, fmt.Errorf("%w: need at least 1 opponent", ErrInvalidInput)
	}

	deck := models.NewDeck()
	if err := deck.Remove(hole...); err != nil {
		return EquityEstimate{}, err
	}
	if err := deck.Remove(board...); err != nil {
		return EquityEstimate{}, err
	}
	unknown := deck.Cards()

	boardNeed := 5 - len(board)
	need := boardNeed + 2*opponents
	if len(unknown) < need {
		return EquityEstimate{}, fmt.Errorf("%w: %d opponents plus %d board cards need %d cards, only %d unknown",
			ErrInsufficientCards, opponents, boardNeed, need, len(unknown))
	}

	key := CacheKey(hole, board, opponents, seed, e.cfg.MonteCarloSamples)
	if est, ok := e.cachedEquity(ctx, key); ok {
		return est, nil
	}

	var est EquityEstimate
	var err error
	if completionCount(len(unknown), boardNeed, opponents) <= float64(e.cfg.ExactEnumerationLimit) {
		est = enumerateEquity(hole, board, unknown, opponents)
	} else {
		est, err = e.sampleEquity(ctx, hole, board, unknown, opponents, seed)
		if err != nil {
			return EquityEstimate{}, err
		}
	}

	e.storeEquity(ctx, key, est)
	return est, nil
}

// completionCount is the number of deal completions the exact mode would
// visit: board combinations times sequential 2-card opponent combinations.
func completionCount(unknown, boardNeed, opponents int) float64 {
	count := binom(unknown, boardNeed)
	rem := unknown - boardNeed
	for i := 0; i < opponents; i++ {
		count *= binom(rem, 2)
		rem -= 2
	}
	return count
}

func binom(n, k int) float64 {
	if k < 0 || k > n {
		return 0
	}
	out := 1.0
	for i := 0; i < k; i++ {
		out *= float64(n-i) / float64(i+1)
	}
	return out
}

func evalValue(hole, board []models.Card) int {
	all := make([]models.Card, 0, 7)
	all = append(all, hole...)
	all = append(all, board...)
	ev, _ := EvaluateBest(all)
	return ev.Value
}

// enumerateEquity walks every board completion and every opponent hole
// combination. Opponents are dealt sequentially, so each unordered
// assignment is visited the same number of times and probabilities are
// unaffected.
func enumerateEquity(hole, board, unknown []models.Card, opponents int) EquityEstimate {
	var t tally
	boardNeed := 5 - len(board)

	full := make([]models.Card, len(board), 5)
	copy(full, board)

	var dealOpponents func(rest []models.Card, left int, best int, heroVal int)
	dealOpponents = func(rest []models.Card, left int, best int, heroVal int) {
		if left == 0 {
			switch {
			case heroVal > best:
				t.win++
			case heroVal == best:
				t.tie++
			default:
				t.loss++
			}
			return
		}
		for i := 0; i < len(rest)-1; i++ {
			for j := i + 1; j < len(rest); j++ {
				oppVal := evalValue([]models.Card{rest[i], rest[j]}, full)
				next := best
				if oppVal > next {
					next = oppVal
				}
				remaining := make([]models.Card, 0, len(rest)-2)
				remaining = append(remaining, rest[:i]...)
				remaining = append(remaining, rest[i+1:j]...)
				remaining = append(remaining, rest[j+1:]...)
				dealOpponents(remaining, left-1, next, heroVal)
			}
		}
	}

	var completeBoard func(start int, picked []models.Card)
	completeBoard = func(start int, picked []models.Card) {
		if len(picked) == boardNeed {
			full = full[:len(board)]
			full = append(full, picked...)
			heroVal := evalValue(hole, full)
			rest := make([]models.Card, 0, len(unknown)-boardNeed)
			for _, c := range unknown {
				used := false
				for _, p := range picked {
					if c == p {
						used = true
						break
					}
				}
				if !used {
					rest = append(rest, c)
				}
			}
			dealOpponents(rest, opponents, -1, heroVal)
			return
		}
		for i := start; i < len(unknown); i++ {
			completeBoard(i+1, append(picked, unknown[i]))
		}
	}

	completeBoard(0, make([]models.Card, 0, boardNeed))
	return newEstimate(t, true)
}

// sampleEquity draws independent random completions split across workers.
// The tally reduction is commutative and associative, so partial worker
// results combine exactly. Workers stop at the sampling deadline; the
// estimate reports however many samples actually completed.
func (e *Engine) sampleEquity(ctx context.Context, hole, board, unknown []models.Card, opponents int, seed *int64) (EquityEstimate, error) {
	total := e.cfg.MonteCarloSamples
	workers := e.cfg.SampleWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > total {
		workers = total
	}

	baseSeed := time.Now().UnixNano()
	if seed != nil {
		baseSeed = *seed
	}

	deadline := time.Now().Add(e.cfg.SampleBudget)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	boardNeed := 5 - len(board)
	need := boardNeed + 2*opponents

	results := make(chan tally, workers)
	per := total / workers
	extra := total % workers

	for w := 0; w < workers; w++ {
		quota := per
		if w < extra {
			quota++
		}
		go func(worker, quota int) {
			rng := rand.New(rand.NewSource(baseSeed + int64(worker)))
			pool := make([]models.Card, len(unknown))
			copy(pool, unknown)
			full := make([]models.Card, 0, 5)
			var t tally

			for i := 0; i < quota; i++ {
				if i%128 == 0 && (ctx.Err() != nil || time.Now().After(deadline)) {
					break
				}
				// Partial Fisher-Yates: only the cards actually dealt.
				for j := 0; j < need; j++ {
					k := j + rng.Intn(len(pool)-j)
					pool[j], pool[k] = pool[k], pool[j]
				}
				full = full[:0]
				full = append(full, board...)
				full = append(full, pool[:boardNeed]...)

				heroVal := evalValue(hole, full)
				best := -1
				for o := 0; o < opponents; o++ {
					idx := boardNeed + 2*o
					if v := evalValue(pool[idx:idx+2], full); v > best {
						best = v
					}
				}
				switch {
				case heroVal > best:
					t.win++
				case heroVal == best:
					t.tie++
				default:
					t.loss++
				}
			}
			results <- t
		}(w, quota)
	}

	var agg tally
	for w := 0; w < workers; w++ {
		agg.merge(<-results)
	}

	if agg.total() == 0 {
		return EquityEstimate{}, fmt.Errorf("%w: no samples completed within budget", ErrTimeout)
	}
	return newEstimate(agg, false), nil
}
