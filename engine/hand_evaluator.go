package engine

import (
	"fmt"
	"sort"

	"potlogic/models"
)

type HandRank int

const (
	HighCard HandRank = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
	RoyalFlush
)

func (hr HandRank) String() string {
	names := []string{"High Card", "One Pair", "Two Pair", "Three of a Kind", "Straight", "Flush", "Full House", "Four of a Kind", "Straight Flush", "Royal Flush"}
	return names[hr]
}

// Code returns the wire-format category name consumed by the UI.
func (hr HandRank) Code() string {
	codes := []string{"HIGH_CARD", "PAIR", "TWO_PAIR", "THREE_OF_A_KIND", "STRAIGHT", "FLUSH", "FULL_HOUSE", "FOUR_OF_A_KIND", "STRAIGHT_FLUSH", "ROYAL_FLUSH"}
	return codes[hr]
}

// EvaluatedHand is the best 5-card subset of an input hand: its category,
// a packed tie-break key that totally orders any two hands, the concrete
// 5 cards chosen, and the descending significant ranks behind the key.
type EvaluatedHand struct {
	Rank      HandRank
	Value     int
	Cards     []models.Card
	Tiebreaks []int
}

// packKey builds the total-order key: category in the top bits, then up to
// five significant ranks as 4-bit nibbles, most significant first. Two
// hands compare equal only when category and every significant rank match.
func packKey(rank HandRank, tiebreaks []int) int {
	key := int(rank) << 20
	shift := 16
	for _, t := range tiebreaks {
		key |= t << shift
		shift -= 4
	}
	return key
}

// EvaluateBest returns the single best 5-card hand obtainable from 5, 6,
// or 7 cards. The result is deterministic under any permutation of the
// input. Wrong card counts and duplicates fail with ErrInvalidHand.
func EvaluateBest(cards []models.Card) (EvaluatedHand, error) {
	n := len(cards)
	if n < 5 || n > 7 {
		return EvaluatedHand{}, fmt.Errorf("%w: need 5-7 cards, got %d", ErrInvalidHand, n)
	}

	seen := make(map[models.Card]bool, n)
	for _, c := range cards {
		if seen[c] {
			return EvaluatedHand{}, fmt.Errorf("%w: duplicate card %s", ErrInvalidHand, c)
		}
		seen[c] = true
	}

	// Canonical input order makes the chosen 5 cards permutation-invariant.
	sorted := make([]models.Card, n)
	copy(sorted, cards)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Value() != sorted[j].Value() {
			return sorted[i].Value() > sorted[j].Value()
		}
		return suitOrder(sorted[i].Suit) < suitOrder(sorted[j].Suit)
	})

	best := EvaluatedHand{Value: -1}
	var pick [5]models.Card
	for a := 0; a < n-4; a++ {
		for b := a + 1; b < n-3; b++ {
			for c := b + 1; c < n-2; c++ {
				for d := c + 1; d < n-1; d++ {
					for e := d + 1; e < n; e++ {
						pick[0], pick[1], pick[2], pick[3], pick[4] =
							sorted[a], sorted[b], sorted[c], sorted[d], sorted[e]
						eval := rankFive(pick)
						if eval.Value > best.Value {
							best = eval
						}
					}
				}
			}
		}
	}
	return best, nil
}

// CompareHands orders two evaluated hands: 1 if the first wins, -1 if the
// second wins, 0 only when the full tie-break key is equal.
func CompareHands(a, b EvaluatedHand) int {
	if a.Value > b.Value {
		return 1
	}
	if a.Value < b.Value {
		return -1
	}
	return 0
}

func suitOrder(s models.Suit) int {
	for i, suit := range models.AllSuits {
		if suit == s {
			return i
		}
	}
	return len(models.AllSuits)
}

// rankFive classifies exactly 5 cards by the fixed precedence order:
// straight flush, four of a kind, full house, flush, straight, three of a
// kind, two pair, pair, high card.
func rankFive(pick [5]models.Card) EvaluatedHand {
	cards := pick[:]

	byValue := make([]models.Card, 5)
	copy(byValue, cards)
	sort.Slice(byValue, func(i, j int) bool { return byValue[i].Value() > byValue[j].Value() })

	counts := make(map[int]int, 5)
	flush := true
	for i, c := range cards {
		counts[c.Value()]++
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
	}

	straightHigh := 0
	if len(counts) == 5 {
		hi, lo := byValue[0].Value(), byValue[4].Value()
		if hi-lo == 4 {
			straightHigh = hi
		} else if hi == 14 && byValue[1].Value() == 5 && lo == 2 {
			// Wheel: A-2-3-4-5 plays as a 5-high straight.
			straightHigh = 5
		}
	}

	if flush && straightHigh > 0 {
		ordered := straightOrder(byValue, straightHigh)
		rank := StraightFlush
		if straightHigh == 14 {
			rank = RoyalFlush
		}
		ties := []int{straightHigh}
		return EvaluatedHand{Rank: rank, Value: packKey(rank, ties), Cards: ordered, Tiebreaks: ties}
	}

	// groups: distinct values ordered by count desc, then value desc.
	type group struct{ value, count int }
	groups := make([]group, 0, 5)
	for v, c := range counts {
		groups = append(groups, group{v, c})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].count != groups[j].count {
			return groups[i].count > groups[j].count
		}
		return groups[i].value > groups[j].value
	})

	groupedCards := groupOrder(byValue, groups[0].value, len(groups) > 1, func() int {
		return groups[1].value
	})

	switch {
	case groups[0].count == 4:
		ties := []int{groups[0].value, groups[1].value}
		return EvaluatedHand{Rank: FourOfAKind, Value: packKey(FourOfAKind, ties), Cards: groupedCards, Tiebreaks: ties}
	case groups[0].count == 3 && groups[1].count == 2:
		ties := []int{groups[0].value, groups[1].value}
		return EvaluatedHand{Rank: FullHouse, Value: packKey(FullHouse, ties), Cards: groupedCards, Tiebreaks: ties}
	case flush:
		ties := valuesOf(byValue)
		return EvaluatedHand{Rank: Flush, Value: packKey(Flush, ties), Cards: byValue, Tiebreaks: ties}
	case straightHigh > 0:
		ties := []int{straightHigh}
		ordered := straightOrder(byValue, straightHigh)
		return EvaluatedHand{Rank: Straight, Value: packKey(Straight, ties), Cards: ordered, Tiebreaks: ties}
	case groups[0].count == 3:
		ties := []int{groups[0].value, groups[1].value, groups[2].value}
		return EvaluatedHand{Rank: ThreeOfAKind, Value: packKey(ThreeOfAKind, ties), Cards: groupedCards, Tiebreaks: ties}
	case groups[0].count == 2 && groups[1].count == 2:
		ties := []int{groups[0].value, groups[1].value, groups[2].value}
		return EvaluatedHand{Rank: TwoPair, Value: packKey(TwoPair, ties), Cards: groupedCards, Tiebreaks: ties}
	case groups[0].count == 2:
		ties := []int{groups[0].value, groups[1].value, groups[2].value, groups[3].value}
		return EvaluatedHand{Rank: OnePair, Value: packKey(OnePair, ties), Cards: groupedCards, Tiebreaks: ties}
	default:
		ties := valuesOf(byValue)
		return EvaluatedHand{Rank: HighCard, Value: packKey(HighCard, ties), Cards: byValue, Tiebreaks: ties}
	}
}

func valuesOf(cards []models.Card) []int {
	out := make([]int, len(cards))
	for i, c := range cards {
		out[i] = c.Value()
	}
	return out
}

// straightOrder arranges straight cards high-to-low; the wheel puts the
// ace last where it plays low.
func straightOrder(byValue []models.Card, high int) []models.Card {
	ordered := make([]models.Card, 5)
	copy(ordered, byValue)
	if high == 5 && ordered[0].Value() == 14 {
		ace := ordered[0]
		copy(ordered, ordered[1:])
		ordered[4] = ace
	}
	return ordered
}

// groupOrder arranges cards so the primary group comes first, then the
// secondary group, then remaining kickers in descending order.
func groupOrder(byValue []models.Card, primary int, hasSecondary bool, secondary func() int) []models.Card {
	sec := -1
	if hasSecondary {
		sec = secondary()
	}
	ordered := make([]models.Card, 0, 5)
	for _, c := range byValue {
		if c.Value() == primary {
			ordered = append(ordered, c)
		}
	}
	for _, c := range byValue {
		if sec >= 0 && c.Value() == sec {
			ordered = append(ordered, c)
		}
	}
	for _, c := range byValue {
		if c.Value() != primary && c.Value() != sec {
			ordered = append(ordered, c)
		}
	}
	return ordered
}

// Description renders the hand for display, e.g. "Full House, Kings over
// Twos" or "Ace-high Flush".
func (e EvaluatedHand) Description() string {
	name := func(i int) string { return models.RankName(e.Tiebreaks[i]) }
	switch e.Rank {
	case RoyalFlush:
		return "Royal Flush"
	case StraightFlush:
		return fmt.Sprintf("%s-high Straight Flush", name(0))
	case FourOfAKind:
		return fmt.Sprintf("Four %ss", name(0))
	case FullHouse:
		return fmt.Sprintf("Full House, %ss over %ss", name(0), name(1))
	case Flush:
		return fmt.Sprintf("%s-high Flush", name(0))
	case Straight:
		return fmt.Sprintf("%s-high Straight", name(0))
	case ThreeOfAKind:
		return fmt.Sprintf("Three %ss", name(0))
	case TwoPair:
		return fmt.Sprintf("Two Pair, %ss and %ss", name(0), name(1))
	case OnePair:
		return fmt.Sprintf("Pair of %ss", name(0))
	default:
		return fmt.Sprintf("%s High", name(0))
	}
}

// StrengthPercentage is a coarse 0-100 indicator of category strength used
// for display only; equity is the authoritative measure.
func (e EvaluatedHand) StrengthPercentage() float64 {
	bases := map[HandRank]float64{
		RoyalFlush:    100.0,
		StraightFlush: 95.0,
		FourOfAKind:   90.0,
		FullHouse:     85.0,
		Flush:         80.0,
		Straight:      75.0,
		ThreeOfAKind:  70.0,
		TwoPair:       65.0,
		OnePair:       60.0,
		HighCard:      50.0,
	}
	base := bases[e.Rank]
	if len(e.Tiebreaks) > 0 {
		base += float64(e.Tiebreaks[0]-2) * 0.5
	}
	if base > 100 {
		base = 100
	}
	return base
}
