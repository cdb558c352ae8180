package models

import (
	"errors"
	"math/rand"
	"testing"
)

func TestParseCard_Canonicalization(t *testing.T) {
	cases := []struct {
		token string
		want  string
	}{
		{"As", "As"},
		{"as", "As"},
		{"AS", "As"},
		{"tC", "Tc"},
		{"10h", "Th"},
		{"2d", "2d"},
		{"kH", "Kh"},
	}
	for _, tc := range cases {
		card, err := ParseCard(tc.token)
		if err != nil {
			t.Errorf("ParseCard(%q) unexpected error: %v", tc.token, err)
			continue
		}
		if card.String() != tc.want {
			t.Errorf("ParseCard(%q) = %q, want %q", tc.token, card.String(), tc.want)
		}
	}
}

func TestParseCard_Invalid(t *testing.T) {
	tokens := []string{"", "A", "Asd", "1s", "Az", "Xs", "ss", "10", "10x", "T10"}
	for _, token := range tokens {
		if _, err := ParseCard(token); !errors.Is(err, ErrParse) {
			t.Errorf("ParseCard(%q) error = %v, want ErrParse", token, err)
		}
	}
}

func TestParseCards_RejectsDuplicates(t *testing.T) {
	_, err := ParseCards([]string{"As", "Kh", "as"})
	if !errors.Is(err, ErrInvalidCard) {
		t.Fatalf("expected ErrInvalidCard for duplicate, got %v", err)
	}
}

func TestCardValue(t *testing.T) {
	cases := []struct {
		token string
		want  int
	}{
		{"2c", 2}, {"9d", 9}, {"Th", 10}, {"Js", 11}, {"Qc", 12}, {"Kd", 13}, {"Ah", 14},
	}
	for _, tc := range cases {
		card, err := ParseCard(tc.token)
		if err != nil {
			t.Fatalf("ParseCard(%q): %v", tc.token, err)
		}
		if got := card.Value(); got != tc.want {
			t.Errorf("%q Value() = %d, want %d", tc.token, got, tc.want)
		}
	}
}

func TestNewDeck_FullAndDistinct(t *testing.T) {
	deck := NewDeck()
	if deck.CardsRemaining() != 52 {
		t.Fatalf("new deck has %d cards, want 52", deck.CardsRemaining())
	}
	seen := make(map[Card]bool)
	for _, c := range deck.Cards() {
		if seen[c] {
			t.Errorf("duplicate card %s in fresh deck", c)
		}
		seen[c] = true
	}
}

func TestDeckRemove(t *testing.T) {
	deck := NewDeck()
	ace, _ := ParseCard("As")
	king, _ := ParseCard("Kh")

	if err := deck.Remove(ace, king); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if deck.CardsRemaining() != 50 {
		t.Errorf("deck has %d cards after removing 2, want 50", deck.CardsRemaining())
	}

	// Removing an already-removed card fails.
	if err := deck.Remove(ace); !errors.Is(err, ErrInvalidCard) {
		t.Errorf("second remove error = %v, want ErrInvalidCard", err)
	}
}

func TestDeckShuffleDeterministic(t *testing.T) {
	a := NewDeck()
	b := NewDeck()
	a.Shuffle(rand.New(rand.NewSource(7)))
	b.Shuffle(rand.New(rand.NewSource(7)))

	ca, cb := a.Cards(), b.Cards()
	for i := range ca {
		if ca[i] != cb[i] {
			t.Fatalf("same seed produced different orders at index %d: %s vs %s", i, ca[i], cb[i])
		}
	}
}

func TestDeckDeal(t *testing.T) {
	deck := NewDeck()
	cards, err := deck.DealMultiple(5)
	if err != nil {
		t.Fatalf("DealMultiple: %v", err)
	}
	if len(cards) != 5 {
		t.Fatalf("dealt %d cards, want 5", len(cards))
	}
	if deck.CardsRemaining() != 47 {
		t.Errorf("deck has %d cards after dealing 5, want 47", deck.CardsRemaining())
	}
	if _, err := deck.DealMultiple(48); err == nil {
		t.Error("expected error dealing more cards than remain")
	}
}

func TestParsePosition(t *testing.T) {
	cases := []struct {
		in      string
		want    Position
		wantErr bool
	}{
		{"early", PositionEarly, false},
		{"BUTTON", PositionButton, false},
		{"big_blind", PositionBigBlind, false},
		{"", PositionUnknown, false},
		{"utg+1", "", true},
	}
	for _, tc := range cases {
		got, err := ParsePosition(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidPosition) {
				t.Errorf("ParsePosition(%q) error = %v, want ErrInvalidPosition", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParsePosition(%q) unexpected error: %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePosition(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAllowsRaiseSignal(t *testing.T) {
	if PositionEarly.AllowsRaiseSignal() {
		t.Error("early position should not allow a raise signal")
	}
	for _, p := range []Position{PositionMiddle, PositionCutoff, PositionButton, PositionSmallBlind, PositionBigBlind, PositionUnknown} {
		if !p.AllowsRaiseSignal() {
			t.Errorf("%s should allow a raise signal", p)
		}
	}
}
