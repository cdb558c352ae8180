package models

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

type Suit string
type Rank string

const (
	Hearts   Suit = "h"
	Diamonds Suit = "d"
	Clubs    Suit = "c"
	Spades   Suit = "s"
)

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "T"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

var (
	// ErrParse is returned for card tokens that do not match the
	// (2-9|T|J|Q|K|A)(s|h|d|c) grammar.
	ErrParse = errors.New("malformed card token")
	// ErrInvalidCard is returned when a card is removed from a deck it is
	// not part of, including the same card removed twice.
	ErrInvalidCard = errors.New("invalid card")
)

// AllSuits and AllRanks define the canonical deck order: suits in the order
// below, ranks low to high within each suit.
var (
	AllSuits = []Suit{Hearts, Diamonds, Clubs, Spades}
	AllRanks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}
)

type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Rank, c.Suit)
}

func (c Card) Value() int {
	switch c.Rank {
	case Two:
		return 2
	case Three:
		return 3
	case Four:
		return 4
	case Five:
		return 5
	case Six:
		return 6
	case Seven:
		return 7
	case Eight:
		return 8
	case Nine:
		return 9
	case Ten:
		return 10
	case Jack:
		return 11
	case Queen:
		return 12
	case King:
		return 13
	case Ace:
		return 14
	}
	return 0
}

// RankName returns the long rank name used in hand descriptions.
func (c Card) RankName() string {
	return RankName(c.Value())
}

// RankName maps an ordinal rank value (2-14) to its long name.
func RankName(value int) string {
	switch value {
	case 11:
		return "Jack"
	case 12:
		return "Queen"
	case 13:
		return "King"
	case 14:
		return "Ace"
	case 10:
		return "10"
	default:
		return fmt.Sprintf("%d", value)
	}
}

// ParseCard parses a card token such as "Ah" or "td". Input is
// case-insensitive; the canonical spelling is upper-case rank plus
// lower-case suit. "10h" is accepted as an alias for "Th".
func ParseCard(token string) (Card, error) {
	t := strings.TrimSpace(token)
	if len(t) < 2 || len(t) > 3 {
		return Card{}, fmt.Errorf("%w: %q", ErrParse, token)
	}

	rankPart := strings.ToUpper(t[:len(t)-1])
	suitPart := strings.ToLower(t[len(t)-1:])

	if rankPart == "10" {
		rankPart = string(Ten)
	}
	if len(rankPart) != 1 {
		return Card{}, fmt.Errorf("%w: %q", ErrParse, token)
	}

	var rank Rank
	for _, r := range AllRanks {
		if string(r) == rankPart {
			rank = r
			break
		}
	}
	if rank == "" {
		return Card{}, fmt.Errorf("%w: unknown rank in %q", ErrParse, token)
	}

	var suit Suit
	for _, s := range AllSuits {
		if string(s) == suitPart {
			suit = s
			break
		}
	}
	if suit == "" {
		return Card{}, fmt.Errorf("%w: unknown suit in %q", ErrParse, token)
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a list of card tokens and rejects duplicates.
func ParseCards(tokens []string) ([]Card, error) {
	cards := make([]Card, 0, len(tokens))
	seen := make(map[Card]bool, len(tokens))
	for _, token := range tokens {
		card, err := ParseCard(token)
		if err != nil {
			return nil, err
		}
		if seen[card] {
			return nil, fmt.Errorf("%w: duplicate card %s", ErrInvalidCard, card)
		}
		seen[card] = true
		cards = append(cards, card)
	}
	return cards, nil
}

// CardStrings renders cards in their canonical token form.
func CardStrings(cards []Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.String()
	}
	return out
}

type Deck struct {
	cards []Card
}

// NewDeck returns all 52 cards in deterministic order.
func NewDeck() *Deck {
	deck := &Deck{cards: make([]Card, 0, 52)}
	for _, suit := range AllSuits {
		for _, rank := range AllRanks {
			deck.cards = append(deck.cards, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// Remove takes the given cards out of the deck. It fails with
// ErrInvalidCard if any card is not present, which also catches the same
// card appearing twice in the input.
func (d *Deck) Remove(cards ...Card) error {
	for _, card := range cards {
		found := -1
		for i, c := range d.cards {
			if c == card {
				found = i
				break
			}
		}
		if found < 0 {
			return fmt.Errorf("%w: %s not in deck", ErrInvalidCard, card)
		}
		d.cards = append(d.cards[:found], d.cards[found+1:]...)
	}
	return nil
}

// Cards returns a copy of the remaining cards.
func (d *Deck) Cards() []Card {
	out := make([]Card, len(d.cards))
	copy(out, d.cards)
	return out
}

func (d *Deck) Shuffle(rng *rand.Rand) {
	rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

func (d *Deck) Deal() (Card, error) {
	if len(d.cards) == 0 {
		return Card{}, fmt.Errorf("deck is empty - no more cards to deal")
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

func (d *Deck) DealMultiple(n int) ([]Card, error) {
	if len(d.cards) < n {
		return nil, fmt.Errorf("not enough cards in deck: requested %d, available %d", n, len(d.cards))
	}
	cards := make([]Card, n)
	for i := 0; i < n; i++ {
		card, err := d.Deal()
		if err != nil {
			return nil, err
		}
		cards[i] = card
	}
	return cards, nil
}

func (d *Deck) CardsRemaining() int {
	return len(d.cards)
}
