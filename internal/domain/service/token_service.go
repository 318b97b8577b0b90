package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by session tokens.
type Claims struct {
	UserID uuid.UUID `json:"-"` // Parsed from the subject claim.
	Email  string    `json:"email"`
	Roles  []string  `json:"roles"`
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and validating stateless session tokens.
type TokenService interface {
	// IssueToken signs a token for the given identity and roles.
	IssueToken(userID uuid.UUID, email string, roles []string) (token string, expiresAt time.Time, err error)

	// ValidateToken checks signature and expiry and returns the claims.
	ValidateToken(tokenString string) (*Claims, error)
}
