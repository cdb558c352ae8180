package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"potlogic/engine"
	"potlogic/internal/history"
)

// WSMessage is the envelope for analysis traffic in both directions.
type WSMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WSResponse wraps an outgoing result.
type WSResponse struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Client represents a WebSocket analysis session.
type Client struct {
	ID   string
	Send chan []byte
}

// handleWebSocket upgrades the connection and serves analysis requests
// until the client disconnects. When auth is configured, a valid session
// token must be passed in the "token" query parameter.
func (s *Server) handleWebSocket(c *gin.Context) {
	if s.authService.Enabled() {
		if _, err := s.authService.ValidateToken(c.Query("token")); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}
	}

	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("[WS] Upgrade failed: %v", err)
		return
	}

	client := &Client{
		ID:   uuid.NewString(),
		Send: make(chan []byte, 16),
	}
	log.Printf("[WS] Client %s connected", client.ID)

	go func() {
		defer conn.Close()
		for message := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		}
	}()

	defer func() {
		close(client.Send)
		log.Printf("[WS] Client %s disconnected", client.ID)
	}()

	for {
		var msg WSMessage
		if err := conn.ReadJSON(&msg); err != nil {
			return
		}

		if !s.msgLimiter.AllowMessage(client.ID) {
			client.send(WSResponse{Type: "error", Data: gin.H{"message": "rate limit exceeded"}})
			continue
		}

		s.dispatchMessage(c, client, msg)
	}
}

func (s *Server) dispatchMessage(c *gin.Context, client *Client, msg WSMessage) {
	switch msg.Type {
	case "pot_odds_request":
		var req engine.Request
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			client.sendError(engine.KindParse, err)
			return
		}
		result, err := s.engine.Evaluate(c.Request.Context(), req)
		if err != nil {
			client.sendError(engine.Kind(err), err)
			return
		}
		client.send(WSResponse{Type: "pot_odds_response", Data: result})

	case "hand_evaluation_request":
		var req struct {
			PlayerCards    []string `json:"player_cards"`
			CommunityCards []string `json:"community_cards"`
		}
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			client.sendError(engine.KindParse, err)
			return
		}
		result, err := s.engine.EvaluateHand(req.PlayerCards, req.CommunityCards)
		if err != nil {
			client.sendError(engine.Kind(err), err)
			return
		}
		client.send(WSResponse{Type: "hand_evaluation_response", Data: result})

	case "probability_request":
		var req struct {
			PlayerCards    []string `json:"player_cards"`
			CommunityCards []string `json:"community_cards"`
			NumPlayers     int      `json:"num_players"`
			NumSimulations int      `json:"num_simulations"`
			Seed           *int64   `json:"seed"`
		}
		if err := json.Unmarshal(msg.Payload, &req); err != nil {
			client.sendError(engine.KindParse, err)
			return
		}
		if req.NumPlayers == 0 {
			req.NumPlayers = 2
		}
		result, err := s.engine.CalculateProbabilities(c.Request.Context(),
			req.PlayerCards, req.CommunityCards, req.NumPlayers, req.NumSimulations, req.Seed)
		if err != nil {
			client.sendError(engine.Kind(err), err)
			return
		}
		client.send(WSResponse{Type: "probability_response", Data: result})

	case "save_game_request":
		var input history.GameInput
		if err := json.Unmarshal(msg.Payload, &input); err != nil {
			client.sendError(engine.KindParse, err)
			return
		}
		id, err := s.historySvc.SaveGame(input)
		if err != nil {
			client.send(WSResponse{Type: "error", Data: gin.H{"message": "failed to save game"}})
			return
		}
		client.send(WSResponse{Type: "save_game_response", Data: gin.H{"game_id": id}})

	default:
		client.send(WSResponse{
			Type: "error",
			Data: gin.H{"message": "unknown message type: " + msg.Type},
		})
	}
}

func (cl *Client) send(resp WSResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		return
	}
	select {
	case cl.Send <- raw:
	default:
		log.Printf("[WS] Client %s send buffer full, dropping message", cl.ID)
	}
}

func (cl *Client) sendError(kind string, err error) {
	cl.send(WSResponse{Type: "error", Data: gin.H{"kind": kind, "message": err.Error()}})
}
