package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Service issues and validates session tokens. Access is gated by a
// single API key whose bcrypt hash is held in configuration; a valid key
// exchange yields a short-lived JWT identifying the client session.
type Service struct {
	jwtSecret  []byte
	apiKeyHash string
	tokenTTL   time.Duration
}

func NewService(secret, apiKeyHash string) *Service {
	return &Service{
		jwtSecret:  []byte(secret),
		apiKeyHash: apiKeyHash,
		tokenTTL:   24 * time.Hour,
	}
}

// Enabled reports whether API-key gating is configured. With no key hash
// the endpoints stay open.
func (s *Service) Enabled() bool {
	return s.apiKeyHash != ""
}

// HashAPIKey produces the bcrypt hash to store in configuration.
func HashAPIKey(key string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), 14)
	return string(bytes), err
}

// CheckAPIKey verifies a presented key against the configured hash.
func (s *Service) CheckAPIKey(key string) bool {
	if !s.Enabled() {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(s.apiKeyHash), []byte(key)) == nil
}

// NewSession validates the API key and returns a session token plus the
// generated client ID.
func (s *Service) NewSession(apiKey string) (token, clientID string, err error) {
	if !s.CheckAPIKey(apiKey) {
		return "", "", errors.New("invalid api key")
	}
	clientID = uuid.NewString()
	token, err = s.GenerateToken(clientID)
	return token, clientID, err
}

func (s *Service) GenerateToken(clientID string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"client_id": clientID,
		"exp":       time.Now().Add(s.tokenTTL).Unix(),
	})
	return token.SignedString(s.jwtSecret)
}

func (s *Service) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	})
	if err != nil {
		return "", err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		clientID, ok := claims["client_id"].(string)
		if !ok {
			return "", errors.New("invalid token claims")
		}
		return clientID, nil
	}

	return "", errors.New("invalid token")
}
