package models

import (
	"errors"
	"fmt"
	"strings"
)

// Position is the hero's seat relative to the button.
type Position string

const (
	PositionEarly      Position = "early"
	PositionMiddle     Position = "middle"
	PositionCutoff     Position = "cutoff"
	PositionButton     Position = "button"
	PositionSmallBlind Position = "small_blind"
	PositionBigBlind   Position = "big_blind"
	PositionUnknown    Position = "unknown"
)

// ErrInvalidPosition is returned for position strings outside the enum.
var ErrInvalidPosition = errors.New("invalid position")

var allPositions = []Position{
	PositionEarly, PositionMiddle, PositionCutoff, PositionButton,
	PositionSmallBlind, PositionBigBlind, PositionUnknown,
}

// ParsePosition parses a position token. The empty string maps to unknown.
func ParsePosition(s string) (Position, error) {
	if s == "" {
		return PositionUnknown, nil
	}
	lower := strings.ToLower(s)
	for _, p := range allPositions {
		if string(p) == lower {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPosition, s)
}

// AllowsRaiseSignal reports whether the seat supports an aggressive line.
// Early position is the only seat that suppresses the raise signal.
func (p Position) AllowsRaiseSignal() bool {
	return p != PositionEarly
}
