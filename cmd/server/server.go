package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"potlogic/engine"
	"potlogic/internal/auth"
	"potlogic/internal/cache"
	"potlogic/internal/db"
	"potlogic/internal/history"
	"potlogic/internal/middleware"
)

// Server wires the decision engine, persistence, and transports together.
type Server struct {
	config Config
	db     *db.DB

	engine      *engine.Engine
	authService *auth.Service
	historySvc  *history.Service
	equityStore *cache.EquityStore

	rateLimiter *middleware.RateLimiter
	msgLimiter  *middleware.MessageLimiter

	upgrader websocket.Upgrader
}

// NewServer creates and initializes a new Server instance
func NewServer(config Config) (*Server, error) {
	database, err := db.New(config.DBConfig)
	if err != nil {
		return nil, err
	}

	var shared engine.EquityCache
	var store *cache.EquityStore
	if config.RedisEnabled {
		store, err = cache.New(config.RedisConfig)
		if err != nil {
			// The shared cache is an optimization; run without it.
			log.Printf("[SERVER] WARN: Redis unavailable, continuing without shared cache: %v", err)
		} else {
			shared = store
		}
	}

	server := &Server{
		config:      config,
		db:          database,
		engine:      engine.NewEngine(config.EngineConfig, shared),
		authService: auth.NewService(config.JWTSecret, config.APIKeyHash),
		historySvc:  history.NewService(database),
		equityStore: store,
		rateLimiter: middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig),
		msgLimiter:  middleware.NewMessageLimiter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	return server, nil
}

// Run starts the server and blocks until it exits
func (s *Server) Run() error {
	if s.config.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := s.setupRoutes()

	log.Printf("[SERVER] Starting on port %s", s.config.ServerPort)
	return r.Run(":" + s.config.ServerPort)
}

// Shutdown releases held connections.
func (s *Server) Shutdown() {
	s.rateLimiter.Stop()
	s.msgLimiter.Stop()
	if s.equityStore != nil {
		s.equityStore.Close()
	}
	if err := s.db.Close(); err != nil {
		log.Printf("[SERVER] WARN: closing database: %v", err)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return true // Allow all origins
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400 * time.Second,
	}
	r.Use(cors.New(corsConfig))

	r.GET("/", s.handleRoot)
	r.GET("/api/health", s.handleHealth)
	r.POST("/api/session", s.handleSession)

	analysis := r.Group("/")
	analysis.Use(s.rateLimiter.GinMiddleware())
	{
		analysis.POST("/api/calculate-pot-odds", s.handleCalculatePotOdds)
		analysis.POST("/api/evaluate-hand", s.handleEvaluateHand)
		analysis.POST("/api/calculate-probabilities", s.handleCalculateProbabilities)
	}

	protected := r.Group("/")
	protected.Use(s.authMiddleware())
	{
		protected.GET("/api/game-history", s.handleGameHistory)
		protected.POST("/api/save-game", s.handleSaveGame)
		protected.GET("/api/statistics", s.handleStatistics)
		protected.GET("/api/settings/:key", s.handleGetSetting)
		protected.PUT("/api/settings/:key", s.handleSaveSetting)
	}

	// WebSocket endpoint (handles auth internally)
	r.GET("/ws/poker-analysis", s.handleWebSocket)

	return r
}

// authMiddleware gates routes behind a session token when API-key auth is
// configured. An unconfigured service leaves the routes open.
func (s *Server) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.authService.Enabled() {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		clientID, err := s.authService.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}
		c.Set("client_id", clientID)
		c.Next()
	}
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"name":    "Pot Logic",
		"message": "Poker decision analysis API",
		"version": "1.0.0",
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	health := gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	sqlDB, err := s.db.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		health["status"] = "degraded"
		health["database"] = "unreachable"
	} else {
		health["database"] = "ok"
	}

	if s.equityStore != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if s.equityStore.HealthCheck(ctx) != nil {
			health["redis"] = "unreachable"
		} else {
			health["redis"] = "ok"
		}
	}

	c.JSON(http.StatusOK, health)
}

func (s *Server) handleSession(c *gin.Context) {
	if !s.authService.Enabled() {
		c.JSON(http.StatusOK, gin.H{"message": "authentication not configured"})
		return
	}

	var req struct {
		APIKey string `json:"api_key" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "api_key is required"})
		return
	}

	token, clientID, err := s.authService.NewSession(req.APIKey)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "client_id": clientID})
}

func (s *Server) handleCalculatePotOdds(c *gin.Context) {
	var req engine.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": engine.KindParse})
		return
	}

	result, err := s.engine.Evaluate(c.Request.Context(), req)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleEvaluateHand(c *gin.Context) {
	var req struct {
		PlayerCards    []string `json:"player_cards" binding:"required"`
		CommunityCards []string `json:"community_cards"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": engine.KindParse})
		return
	}

	result, err := s.engine.EvaluateHand(req.PlayerCards, req.CommunityCards)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleCalculateProbabilities(c *gin.Context) {
	var req struct {
		PlayerCards    []string `json:"player_cards" binding:"required"`
		CommunityCards []string `json:"community_cards"`
		NumPlayers     int      `json:"num_players"`
		NumSimulations int      `json:"num_simulations"`
		Seed           *int64   `json:"seed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": engine.KindParse})
		return
	}
	if req.NumPlayers == 0 {
		req.NumPlayers = 2
	}

	result, err := s.engine.CalculateProbabilities(c.Request.Context(),
		req.PlayerCards, req.CommunityCards, req.NumPlayers, req.NumSimulations, req.Seed)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *Server) handleGameHistory(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = n
		}
	}

	games, err := s.historySvc.GameHistory(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load game history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"games": games, "total_games": len(games)})
}

func (s *Server) handleSaveGame(c *gin.Context) {
	var input history.GameInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := s.historySvc.SaveGame(input)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save game"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Game saved successfully", "game_id": id})
}

func (s *Server) handleStatistics(c *gin.Context) {
	stats, err := s.historySvc.Statistics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute statistics"})
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) handleGetSetting(c *gin.Context) {
	key := c.Param("key")
	value := s.historySvc.GetSetting(key, "")
	if value == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "setting not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": value})
}

func (s *Server) handleSaveSetting(c *gin.Context) {
	var req struct {
		Value       string `json:"value" binding:"required"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := c.Param("key")
	if err := s.historySvc.SaveSetting(key, req.Value, req.Description); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save setting"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"key": key, "value": req.Value})
}

// writeEngineError maps the engine error taxonomy onto HTTP statuses.
func (s *Server) writeEngineError(c *gin.Context, err error) {
	kind := engine.Kind(err)

	status := http.StatusBadRequest
	switch {
	case errors.Is(err, engine.ErrTimeout):
		status = http.StatusGatewayTimeout
	case kind == engine.KindInternal:
		status = http.StatusInternalServerError
	}

	c.JSON(status, gin.H{"error": err.Error(), "kind": kind})
}
