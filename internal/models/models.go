package models

import (
	"time"
)

// GameRecord stores one analyzed decision and its eventual outcome.
// Card lists are stored as JSON strings so the schema stays portable
// across SQLite and MySQL.
type GameRecord struct {
	ID                  int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Timestamp           time.Time `gorm:"column:timestamp;autoCreateTime;index" json:"timestamp"`
	PotSize             float64   `gorm:"column:pot_size;not null" json:"pot_size"`
	BetAmount           float64   `gorm:"column:bet_amount;not null" json:"bet_amount"`
	PlayerCards         string    `gorm:"column:player_cards;type:text;not null" json:"-"`
	CommunityCards      string    `gorm:"column:community_cards;type:text;not null" json:"-"`
	Position            string    `gorm:"column:position;type:varchar(20);not null" json:"position"`
	NumPlayers          int       `gorm:"column:num_players;not null" json:"num_players"`
	ActionTaken         string    `gorm:"column:action_taken;type:varchar(20);not null" json:"action_taken"`
	Result              string    `gorm:"column:result;type:varchar(20);not null" json:"result"`
	ProfitLoss          float64   `gorm:"column:profit_loss;not null" json:"profit_loss"`
	PotOddsCalculated   float64   `gorm:"column:pot_odds_calculated;not null" json:"pot_odds_calculated"`
	EquityCalculated    float64   `gorm:"column:equity_calculated;not null;index" json:"equity_calculated"`
	RecommendationGiven string    `gorm:"column:recommendation_given;type:text;not null" json:"recommendation_given"`
}

// TableName specifies the table name for GameRecord
func (GameRecord) TableName() string {
	return "games"
}

// StatisticsSnapshot is a periodic rollup of session performance.
type StatisticsSnapshot struct {
	ID                     int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Timestamp              time.Time `gorm:"column:timestamp;autoCreateTime" json:"timestamp"`
	TotalGames             int       `gorm:"column:total_games;not null;default:0" json:"total_games"`
	WinRate                float64   `gorm:"column:win_rate;not null;default:0" json:"win_rate"`
	AveragePotOdds         float64   `gorm:"column:average_pot_odds;not null;default:0" json:"average_pot_odds"`
	SessionProfit          float64   `gorm:"column:session_profit;not null;default:0" json:"session_profit"`
	TotalHands             int       `gorm:"column:total_hands;not null;default:0" json:"total_hands"`
	ProfitableHands        int       `gorm:"column:profitable_hands;not null;default:0" json:"profitable_hands"`
	AverageEquity          float64   `gorm:"column:average_equity;not null;default:0" json:"average_equity"`
	RecommendationAccuracy float64   `gorm:"column:recommendation_accuracy;not null;default:0" json:"recommendation_accuracy"`
}

// TableName specifies the table name for StatisticsSnapshot
func (StatisticsSnapshot) TableName() string {
	return "statistics"
}

// Setting is a key/value application setting.
type Setting struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Key         string    `gorm:"column:key;type:varchar(100);uniqueIndex;not null" json:"key"`
	Value       string    `gorm:"column:value;type:text;not null" json:"value"`
	Description string    `gorm:"column:description;type:text" json:"description,omitempty"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for Setting
func (Setting) TableName() string {
	return "settings"
}
