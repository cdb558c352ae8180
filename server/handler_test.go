package server

import (
	"context"
	"encoding/json"
	"testing"

	"potlogic/engine"
	"potlogic/models"
)

func newTestHandler() *CommandHandler {
	cfg := engine.DefaultConfig()
	cfg.MonteCarloSamples = 2000
	return NewCommandHandler(engine.NewEngine(cfg, nil))
}

func command(t *testing.T, name string, payload interface{}) models.Command {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	return models.Command{Command: name, Data: data}
}

func TestHandle_PotOdds(t *testing.T) {
	h := newTestHandler()

	resp := h.Handle(context.Background(), command(t, "analysis.potOdds", map[string]interface{}{
		"pot_size":        100,
		"bet_to_call":     50,
		"player_cards":    []string{"As", "Ah"},
		"community_cards": []string{"Ac", "Ad", "Kh", "Qd", "2c"},
		"num_players":     2,
	}))

	if !resp.Success {
		t.Fatalf("expected success, got error: %s", resp.Error)
	}
	result, ok := resp.Data.(engine.DecisionResult)
	if !ok {
		t.Fatalf("unexpected data type %T", resp.Data)
	}
	if result.Equity != 100 {
		t.Errorf("equity = %v, want 100", result.Equity)
	}
}

func TestHandle_EvaluateHand(t *testing.T) {
	h := newTestHandler()

	resp := h.Handle(context.Background(), command(t, "analysis.evaluateHand", map[string]interface{}{
		"player_cards":    []string{"As", "Ks"},
		"community_cards": []string{"Qs", "Js", "Ts"},
	}))

	if !resp.Success {
		t.Fatalf("expected success, got error: %s", resp.Error)
	}
	result, ok := resp.Data.(engine.HandEvaluation)
	if !ok {
		t.Fatalf("unexpected data type %T", resp.Data)
	}
	if result.HandRank != "ROYAL_FLUSH" {
		t.Errorf("hand rank = %q, want ROYAL_FLUSH", result.HandRank)
	}
}

func TestHandle_InvalidInput(t *testing.T) {
	h := newTestHandler()

	resp := h.Handle(context.Background(), command(t, "analysis.potOdds", map[string]interface{}{
		"pot_size":     -5,
		"player_cards": []string{"As", "Ah"},
		"num_players":  2,
	}))

	if resp.Success {
		t.Fatal("expected failure for negative pot")
	}
	if resp.Kind != engine.KindInvalidInput {
		t.Errorf("kind = %q, want %q", resp.Kind, engine.KindInvalidInput)
	}
}

func TestHandle_UnknownCommand(t *testing.T) {
	h := newTestHandler()

	resp := h.Handle(context.Background(), models.Command{Command: "table.create"})
	if resp.Success {
		t.Fatal("expected failure for unknown command")
	}
}
