package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"potlogic/internal/db"
	"potlogic/internal/models"
)

func setupTestDB(t *testing.T) *db.DB {
	// Use in-memory SQLite for tests
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = gormDB.AutoMigrate(&models.GameRecord{}, &models.StatisticsSnapshot{}, &models.Setting{})
	require.NoError(t, err)

	return &db.DB{DB: gormDB}
}

func sampleGame() GameInput {
	return GameInput{
		PotSize:             100,
		BetAmount:           50,
		PlayerCards:         []string{"As", "Kh"},
		CommunityCards:      []string{"Qd", "Jc", "2h"},
		Position:            "button",
		NumPlayers:          4,
		ActionTaken:         "call",
		Result:              "win",
		ProfitLoss:          150,
		PotOddsCalculated:   33.33,
		EquityCalculated:    42.5,
		RecommendationGiven: "Call - marginal but profitable",
	}
}

func TestSaveGameAndHistory(t *testing.T) {
	svc := NewService(setupTestDB(t))

	id, err := svc.SaveGame(sampleGame())
	require.NoError(t, err)
	assert.Greater(t, id, int64(0))

	games, err := svc.GameHistory(10)
	require.NoError(t, err)
	require.Len(t, games, 1)

	g := games[0]
	assert.Equal(t, id, g.ID)
	assert.Equal(t, []string{"As", "Kh"}, g.PlayerCards)
	assert.Equal(t, []string{"Qd", "Jc", "2h"}, g.CommunityCards)
	assert.Equal(t, "win", g.Result)
	assert.Equal(t, 150.0, g.ProfitLoss)
}

func TestGameHistory_LimitAndOrder(t *testing.T) {
	svc := NewService(setupTestDB(t))

	for i := 0; i < 5; i++ {
		game := sampleGame()
		game.ProfitLoss = float64(i)
		_, err := svc.SaveGame(game)
		require.NoError(t, err)
	}

	games, err := svc.GameHistory(3)
	require.NoError(t, err)
	assert.Len(t, games, 3)
}

func TestStatistics_Empty(t *testing.T) {
	svc := NewService(setupTestDB(t))

	stats, err := svc.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalGames)
	assert.Equal(t, 0.0, stats.WinRate)
	assert.Empty(t, stats.BestHands)
}

func TestStatistics_Aggregates(t *testing.T) {
	svc := NewService(setupTestDB(t))

	win := sampleGame()
	win.Result = "win"
	win.ProfitLoss = 100
	win.EquityCalculated = 60
	_, err := svc.SaveGame(win)
	require.NoError(t, err)

	loss := sampleGame()
	loss.PlayerCards = []string{"7d", "2c"}
	loss.Result = "loss"
	loss.ProfitLoss = -50
	loss.EquityCalculated = 20
	loss.ActionTaken = "fold"
	loss.RecommendationGiven = "Fold - equity below pot odds"
	_, err = svc.SaveGame(loss)
	require.NoError(t, err)

	stats, err := svc.Statistics()
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalGames)
	assert.Equal(t, 50.0, stats.WinRate)
	assert.Equal(t, 50.0, stats.SessionProfit)
	assert.Equal(t, 1, stats.ProfitableHands)
	assert.Equal(t, 40.0, stats.AverageEquity)

	// Best hands are ordered by equity.
	require.Len(t, stats.BestHands, 2)
	assert.Equal(t, []string{"As", "Kh"}, stats.BestHands[0])
	assert.Equal(t, []string{"7d", "2c"}, stats.BestHands[1])
}

func TestBestHands_Limit(t *testing.T) {
	svc := NewService(setupTestDB(t))

	for i := 0; i < 4; i++ {
		game := sampleGame()
		game.EquityCalculated = float64(i * 10)
		_, err := svc.SaveGame(game)
		require.NoError(t, err)
	}

	hands, err := svc.BestHands(2)
	require.NoError(t, err)
	assert.Len(t, hands, 2)
}

func TestSettings(t *testing.T) {
	svc := NewService(setupTestDB(t))

	assert.Equal(t, "fallback", svc.GetSetting("theme", "fallback"))

	require.NoError(t, svc.SaveSetting("theme", "dark", "UI theme"))
	assert.Equal(t, "dark", svc.GetSetting("theme", "fallback"))

	// Update keeps a single row.
	require.NoError(t, svc.SaveSetting("theme", "light", ""))
	assert.Equal(t, "light", svc.GetSetting("theme", "fallback"))
}
