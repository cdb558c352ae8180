package engine

import (
	"runtime"
	"time"
)

// Config holds the tunables of the decision engine. All thresholds are
// explicit so tests and callers can override them; DefaultConfig documents
// the shipped values.
type Config struct {
	// ExactEnumerationLimit is the maximum number of deal completions
	// (remaining board cards plus all opponent hole cards) that the equity
	// engine enumerates exhaustively. Above it, Monte Carlo sampling is
	// used instead.
	ExactEnumerationLimit int

	// MonteCarloSamples is the number of random completions drawn when
	// sampling. Matches the original default of 10,000 simulations.
	MonteCarloSamples int

	// SampleWorkers is the number of goroutines the sample count is split
	// across. Partial tallies combine exactly, so the split only affects
	// throughput.
	SampleWorkers int

	// SampleBudget bounds the wall-clock time spent sampling for one
	// request. When exceeded, the estimate gathered so far is returned
	// with its actual sample count; ErrTimeout is raised only when zero
	// samples completed.
	SampleBudget time.Duration

	// MarginThreshold is the equity-vs-pot-odds margin (in percentage
	// points) inside which the recommendation stays at Call, preventing
	// flapping from floating noise.
	MarginThreshold float64

	// StrongHandMin is the minimum made-hand category required for a
	// Raise recommendation on the turn or river.
	StrongHandMin HandRank

	// EquityCacheSize bounds the in-process equity cache. Zero disables
	// caching.
	EquityCacheSize int
}

// DefaultConfig returns the shipped engine configuration.
func DefaultConfig() Config {
	return Config{
		ExactEnumerationLimit: 200_000,
		MonteCarloSamples:     10_000,
		SampleWorkers:         runtime.NumCPU(),
		SampleBudget:          2 * time.Second,
		MarginThreshold:       2.0,
		StrongHandMin:         TwoPair,
		EquityCacheSize:       1024,
	}
}
