package accounts

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/clinicdesk/booking/pkg/config"
)

func testTokenConfig() *config.JWTConfig {
	return &config.JWTConfig{
		SecretKey:      "test-secret",
		AccessTokenTTL: 3600,
		Issuer:         "clinicdesk-booking",
		Audience:       "clinicdesk-patients",
	}
}

func TestTokenManager_IssueAndValidate(t *testing.T) {
	tm := NewTokenManager(testTokenConfig())

	token, err := tm.Issue("patient-123")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	patientID, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("Failed to validate issued token: %v", err)
	}

	if patientID != "patient-123" {
		t.Errorf("Expected patient ID 'patient-123', got '%s'", patientID)
	}
}

func TestTokenManager_Validate_InvalidToken(t *testing.T) {
	tm := NewTokenManager(testTokenConfig())

	if _, err := tm.Validate("invalid-token"); err == nil {
		t.Error("Expected error for malformed token")
	}
}

func TestTokenManager_Validate_WrongSecret(t *testing.T) {
	tm := NewTokenManager(testTokenConfig())

	other := NewTokenManager(&config.JWTConfig{
		SecretKey:      "other-secret",
		AccessTokenTTL: 3600,
	})
	token, err := other.Issue("patient-123")
	if err != nil {
		t.Fatalf("Failed to issue token: %v", err)
	}

	if _, err := tm.Validate(token); err == nil {
		t.Error("Expected error for token signed with a different secret")
	}
}

func TestTokenManager_Validate_Expired(t *testing.T) {
	tm := NewTokenManager(testTokenConfig())

	claims := jwt.MapClaims{
		"patient_id": "patient-123",
		"exp":        time.Now().Add(-time.Hour).Unix(),
		"iat":        time.Now().Add(-2 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to create expired token: %v", err)
	}

	if _, err := tm.Validate(tokenString); err == nil {
		t.Error("Expected error for expired token")
	}
}

func TestTokenManager_Validate_MissingPatientID(t *testing.T) {
	tm := NewTokenManager(testTokenConfig())

	claims := jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("Failed to create token: %v", err)
	}

	if _, err := tm.Validate(tokenString); err == nil {
		t.Error("Expected error for token without a patient identity")
	}
}
