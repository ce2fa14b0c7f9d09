package accounts

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/booking/pkg/config"
)

// TokenManager issues and validates the bearer tokens that identify a
// logged-in patient on each request.
type TokenManager struct {
	secret   []byte
	ttl      time.Duration
	issuer   string
	audience string
}

// NewTokenManager creates a new token manager from JWT configuration
func NewTokenManager(cfg *config.JWTConfig) *TokenManager {
	return &TokenManager{
		secret:   []byte(cfg.SecretKey),
		ttl:      time.Duration(cfg.AccessTokenTTL) * time.Second,
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Issue generates a signed token for the given patient
func (tm *TokenManager) Issue(patientID string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"patient_id": patientID,
		"iss":        tm.issuer,
		"aud":        tm.audience,
		"exp":        now.Add(tm.ttl).Unix(),
		"iat":        now.Unix(),
		"nbf":        now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Validate parses and verifies a token and returns the patient ID it was
// issued for.
func (tm *TokenManager) Validate(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid token claims")
	}

	patientID, ok := claims["patient_id"].(string)
	if !ok || patientID == "" {
		return "", fmt.Errorf("token carries no patient identity")
	}

	return patientID, nil
}
