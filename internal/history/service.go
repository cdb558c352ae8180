package history

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"strings"

	"potlogic/internal/db"
	"potlogic/internal/models"
)

// Service records analyzed decisions and derives session statistics.
type Service struct {
	db *db.DB
}

// NewService creates a history service backed by the given database.
func NewService(database *db.DB) *Service {
	return &Service{db: database}
}

// GameInput is the payload for saving a completed game.
type GameInput struct {
	PotSize             float64  `json:"pot_size" binding:"required"`
	BetAmount           float64  `json:"bet_amount"`
	PlayerCards         []string `json:"player_cards" binding:"required"`
	CommunityCards      []string `json:"community_cards"`
	Position            string   `json:"position"`
	NumPlayers          int      `json:"num_players" binding:"required"`
	ActionTaken         string   `json:"action_taken" binding:"required"`
	Result              string   `json:"result" binding:"required"`
	ProfitLoss          float64  `json:"profit_loss"`
	PotOddsCalculated   float64  `json:"pot_odds_calculated"`
	EquityCalculated    float64  `json:"equity_calculated"`
	RecommendationGiven string   `json:"recommendation_given"`
}

// Game is a stored game with the card lists decoded.
type Game struct {
	models.GameRecord
	PlayerCards    []string `json:"player_cards"`
	CommunityCards []string `json:"community_cards"`
}

// Statistics is the aggregate view over all stored games.
type Statistics struct {
	TotalGames             int     `json:"total_games"`
	WinRate                float64 `json:"win_rate"`
	AveragePotOdds         float64 `json:"average_pot_odds"`
	SessionProfit          float64 `json:"session_profit"`
	TotalHands             int     `json:"total_hands"`
	ProfitableHands        int     `json:"profitable_hands"`
	AverageEquity          float64 `json:"average_equity"`
	RecommendationAccuracy float64 `json:"recommendation_accuracy"`
	BestHands              [][]string `json:"best_hands"`
}

// SaveGame persists one game record and returns its ID.
func (s *Service) SaveGame(input GameInput) (int64, error) {
	playerJSON, err := json.Marshal(input.PlayerCards)
	if err != nil {
		return 0, fmt.Errorf("failed to encode player cards: %w", err)
	}
	communityCards := input.CommunityCards
	if communityCards == nil {
		communityCards = []string{}
	}
	communityJSON, err := json.Marshal(communityCards)
	if err != nil {
		return 0, fmt.Errorf("failed to encode community cards: %w", err)
	}

	record := models.GameRecord{
		PotSize:             input.PotSize,
		BetAmount:           input.BetAmount,
		PlayerCards:         string(playerJSON),
		CommunityCards:      string(communityJSON),
		Position:            input.Position,
		NumPlayers:          input.NumPlayers,
		ActionTaken:         input.ActionTaken,
		Result:              input.Result,
		ProfitLoss:          input.ProfitLoss,
		PotOddsCalculated:   input.PotOddsCalculated,
		EquityCalculated:    input.EquityCalculated,
		RecommendationGiven: input.RecommendationGiven,
	}

	if err := s.db.Create(&record).Error; err != nil {
		log.Printf("[HISTORY] ERROR: failed to save game: %v", err)
		return 0, err
	}
	log.Printf("[HISTORY] Saved game id=%d action=%s result=%s", record.ID, record.ActionTaken, record.Result)
	return record.ID, nil
}

// GameHistory returns the most recent games, newest first.
func (s *Service) GameHistory(limit int) ([]Game, error) {
	if limit <= 0 || limit > 1000 {
		limit = 100
	}

	var records []models.GameRecord
	if err := s.db.Order("timestamp desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}

	games := make([]Game, 0, len(records))
	for _, r := range records {
		g := Game{GameRecord: r}
		if err := json.Unmarshal([]byte(r.PlayerCards), &g.PlayerCards); err != nil {
			log.Printf("[HISTORY] WARN: game %d has corrupt player cards: %v", r.ID, err)
		}
		if err := json.Unmarshal([]byte(r.CommunityCards), &g.CommunityCards); err != nil {
			log.Printf("[HISTORY] WARN: game %d has corrupt community cards: %v", r.ID, err)
		}
		games = append(games, g)
	}
	return games, nil
}

// Statistics aggregates all stored games into the session view.
func (s *Service) Statistics() (Statistics, error) {
	var total int64
	if err := s.db.Model(&models.GameRecord{}).Count(&total).Error; err != nil {
		return Statistics{}, err
	}
	if total == 0 {
		return Statistics{BestHands: [][]string{}}, nil
	}

	var wins int64
	if err := s.db.Model(&models.GameRecord{}).Where("result = ?", "win").Count(&wins).Error; err != nil {
		return Statistics{}, err
	}

	var profitable int64
	if err := s.db.Model(&models.GameRecord{}).Where("profit_loss > 0").Count(&profitable).Error; err != nil {
		return Statistics{}, err
	}

	type sums struct {
		PotOdds float64
		Equity  float64
		Profit  float64
	}
	var agg sums
	err := s.db.Model(&models.GameRecord{}).
		Select("SUM(pot_odds_calculated) as pot_odds, SUM(equity_calculated) as equity, SUM(profit_loss) as profit").
		Scan(&agg).Error
	if err != nil {
		return Statistics{}, err
	}

	best, err := s.BestHands(10)
	if err != nil {
		return Statistics{}, err
	}

	n := float64(total)
	return Statistics{
		TotalGames:             int(total),
		WinRate:                round2(float64(wins) / n * 100),
		AveragePotOdds:         round2(agg.PotOdds / n),
		SessionProfit:          round2(agg.Profit),
		TotalHands:             int(total),
		ProfitableHands:        int(profitable),
		AverageEquity:          round2(agg.Equity / n),
		RecommendationAccuracy: s.recommendationAccuracy(),
		BestHands:              best,
	}, nil
}

// BestHands lists the hole cards from the highest-equity games.
func (s *Service) BestHands(limit int) ([][]string, error) {
	if limit <= 0 {
		limit = 10
	}

	var records []models.GameRecord
	if err := s.db.Order("equity_calculated desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}

	hands := make([][]string, 0, len(records))
	for _, r := range records {
		var cards []string
		if err := json.Unmarshal([]byte(r.PlayerCards), &cards); err != nil {
			continue
		}
		hands = append(hands, cards)
	}
	return hands, nil
}

// recommendationAccuracy is the share of games where following the given
// recommendation lined up with a profitable outcome.
func (s *Service) recommendationAccuracy() float64 {
	var records []models.GameRecord
	if err := s.db.Select("action_taken", "recommendation_given", "profit_loss").Find(&records).Error; err != nil {
		return 0
	}
	if len(records) == 0 {
		return 0
	}

	accurate := 0
	for _, r := range records {
		followed := r.RecommendationGiven != "" && r.ActionTaken != "" &&
			strings.HasPrefix(strings.ToLower(r.RecommendationGiven), strings.ToLower(r.ActionTaken))
		if followed == (r.ProfitLoss > 0) {
			accurate++
		}
	}
	return round2(float64(accurate) / float64(len(records)) * 100)
}

// SaveSetting inserts or updates a key/value setting.
func (s *Service) SaveSetting(key, value, description string) error {
	var setting models.Setting
	err := s.db.Where(&models.Setting{Key: key}).First(&setting).Error
	if err == nil {
		setting.Value = value
		if description != "" {
			setting.Description = description
		}
		return s.db.Save(&setting).Error
	}

	setting = models.Setting{Key: key, Value: value, Description: description}
	return s.db.Create(&setting).Error
}

// GetSetting returns the value for a key, or the fallback when unset.
func (s *Service) GetSetting(key, fallback string) string {
	var setting models.Setting
	if err := s.db.Where(&models.Setting{Key: key}).First(&setting).Error; err != nil {
		return fallback
	}
	return setting.Value
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
