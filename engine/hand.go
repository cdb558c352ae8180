package engine

import (
	"sort"

	"potlogic/models"
)

// HandEvaluation is the response contract for direct hand evaluation.
type HandEvaluation struct {
	HandRank           string         `json:"hand_rank"`
	HandValue          int            `json:"hand_value"`
	StrengthPercentage float64        `json:"strength_percentage"`
	HandDescription    string         `json:"hand_description"`
	Outs               map[string]int `json:"outs"`
	HoleCards          []string       `json:"hole_cards"`
	BoardCards         []string       `json:"board_cards"`
}

// EvaluateHand classifies the best hand available from the hole and
// community cards. Before the flop only pair and high card categories are
// reachable; from the flop on, the full best-of-five evaluation runs.
func (e *Engine) EvaluateHand(playerCards, communityCards []string) (HandEvaluation, error) {
	hole, board, err := parseHoleAndBoard(playerCards, communityCards)
	if err != nil {
		return HandEvaluation{}, err
	}

	var eval EvaluatedHand
	if len(board) == 0 {
		eval = evaluateHoleOnly(hole)
	} else {
		all := make([]models.Card, 0, 7)
		all = append(all, hole...)
		all = append(all, board...)
		eval, err = EvaluateBest(all)
		if err != nil {
			return HandEvaluation{}, err
		}
	}

	return HandEvaluation{
		HandRank:           eval.Rank.Code(),
		HandValue:          eval.Value,
		StrengthPercentage: round(eval.StrengthPercentage(), 2),
		HandDescription:    eval.Description(),
		Outs:               countOuts(hole, board),
		HoleCards:          models.CardStrings(hole),
		BoardCards:         models.CardStrings(board),
	}, nil
}

// evaluateHoleOnly classifies two cards on their own. Only a pair or a
// high card is possible.
func evaluateHoleOnly(hole []models.Card) EvaluatedHand {
	a, b := hole[0], hole[1]
	if a.Value() < b.Value() {
		a, b = b, a
	}
	if a.Value() == b.Value() {
		return EvaluatedHand{
			Rank:      OnePair,
			Value:     packKey(OnePair, []int{a.Value()}),
			Cards:     []models.Card{a, b},
			Tiebreaks: []int{a.Value()},
		}
	}
	ties := []int{a.Value(), b.Value()}
	return EvaluatedHand{
		Rank:      HighCard,
		Value:     packKey(HighCard, ties),
		Cards:     []models.Card{a, b},
		Tiebreaks: ties,
	}
}

// countOuts estimates draw outs on the flop and turn. Counts assume no
// knowledge of opponent holdings; overlapping outs (a card completing both
// a flush and a straight) are counted once per category. All categories
// are zero before the flop and on the river.
func countOuts(hole, board []models.Card) map[string]int {
	outs := map[string]int{
		"flush_draw":    0,
		"straight_draw": 0,
		"open_ended":    0,
		"gutshot":       0,
		"overcards":     0,
	}
	if len(board) < 3 || len(board) >= 5 {
		return outs
	}

	all := make([]models.Card, 0, len(hole)+len(board))
	all = append(all, hole...)
	all = append(all, board...)

	suitCounts := make(map[models.Suit]int)
	values := make(map[int]bool)
	for _, c := range all {
		suitCounts[c.Suit]++
		values[c.Value()] = true
	}

	for _, n := range suitCounts {
		if n == 4 {
			outs["flush_draw"] = 9
			break
		}
	}

	if !hasStraightAmong(values) {
		completing := straightCompleters(values)
		if len(completing) >= 2 {
			outs["open_ended"] = 4 * len(completing)
			outs["straight_draw"] = 4 * len(completing)
		} else if len(completing) == 1 {
			outs["gutshot"] = 4
			outs["straight_draw"] = 4
		}
	}

	boardHigh := 0
	for _, c := range board {
		if c.Value() > boardHigh {
			boardHigh = c.Value()
		}
	}
	boardValues := make(map[int]bool, len(board))
	for _, c := range board {
		boardValues[c.Value()] = true
	}
	if hole[0].Value() != hole[1].Value() {
		for _, c := range hole {
			if c.Value() > boardHigh && !boardValues[c.Value()] {
				outs["overcards"] += 3
			}
		}
	}

	return outs
}

// straightCompleters lists the absent rank values whose arrival would
// complete a five-card straight, sorted ascending.
func straightCompleters(values map[int]bool) []int {
	var completers []int
	for r := 2; r <= 14; r++ {
		if values[r] {
			continue
		}
		values[r] = true
		if hasStraightAmong(values) {
			completers = append(completers, r)
		}
		delete(values, r)
	}
	sort.Ints(completers)
	return completers
}

// hasStraightAmong reports whether the value set contains five
// consecutive ranks, treating the ace as low for the wheel.
func hasStraightAmong(values map[int]bool) bool {
	for hi := 14; hi >= 6; hi-- {
		run := true
		for v := hi; v > hi-5; v-- {
			if !values[v] {
				run = false
				break
			}
		}
		if run {
			return true
		}
	}
	// wheel: A-2-3-4-5
	return values[14] && values[2] && values[3] && values[4] && values[5]
}
