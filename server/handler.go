package server

import (
	"context"
	"encoding/json"
	"fmt"

	"potlogic/engine"
	"potlogic/models"
)

// CommandHandler dispatches analysis commands to the decision engine.
type CommandHandler struct {
	engine *engine.Engine
}

func NewCommandHandler(eng *engine.Engine) *CommandHandler {
	return &CommandHandler{engine: eng}
}

func (h *CommandHandler) Handle(ctx context.Context, cmd models.Command) models.Response {
	switch cmd.Command {
	case "analysis.potOdds":
		return h.handlePotOdds(ctx, cmd.Data)
	case "analysis.evaluateHand":
		return h.handleEvaluateHand(cmd.Data)
	case "analysis.probabilities":
		return h.handleProbabilities(ctx, cmd.Data)
	case "analysis.config":
		return models.Response{Success: true, Data: h.engine.Config()}
	default:
		return models.Response{Success: false, Error: fmt.Sprintf("unknown command: %s", cmd.Command)}
	}
}

func (h *CommandHandler) handlePotOdds(ctx context.Context, data json.RawMessage) models.Response {
	var req engine.Request
	if err := json.Unmarshal(data, &req); err != nil {
		return models.Response{Success: false, Error: err.Error(), Kind: engine.KindParse}
	}

	result, err := h.engine.Evaluate(ctx, req)
	if err != nil {
		return errorResponse(err)
	}
	return models.Response{Success: true, Data: result}
}

func (h *CommandHandler) handleEvaluateHand(data json.RawMessage) models.Response {
	var req struct {
		PlayerCards    []string `json:"player_cards"`
		CommunityCards []string `json:"community_cards"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return models.Response{Success: false, Error: err.Error(), Kind: engine.KindParse}
	}

	result, err := h.engine.EvaluateHand(req.PlayerCards, req.CommunityCards)
	if err != nil {
		return errorResponse(err)
	}
	return models.Response{Success: true, Data: result}
}

func (h *CommandHandler) handleProbabilities(ctx context.Context, data json.RawMessage) models.Response {
	var req struct {
		PlayerCards    []string `json:"player_cards"`
		CommunityCards []string `json:"community_cards"`
		NumPlayers     int      `json:"num_players"`
		NumSimulations int      `json:"num_simulations"`
		Seed           *int64   `json:"seed"`
	}
	if err := json.Unmarshal(data, &req); err != nil {
		return models.Response{Success: false, Error: err.Error(), Kind: engine.KindParse}
	}
	if req.NumPlayers == 0 {
		req.NumPlayers = 2
	}

	result, err := h.engine.CalculateProbabilities(ctx, req.PlayerCards, req.CommunityCards, req.NumPlayers, req.NumSimulations, req.Seed)
	if err != nil {
		return errorResponse(err)
	}
	return models.Response{Success: true, Data: result}
}

func errorResponse(err error) models.Response {
	return models.Response{Success: false, Error: err.Error(), Kind: engine.Kind(err)}
}
