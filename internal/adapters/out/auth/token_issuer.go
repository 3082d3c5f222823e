// Package auth issues and validates the HS256 bearer tokens that carry the
// caller's application user id in the app_user_id claim.
package auth

import (
	"errors"
	"fmt"
	"time"

	"shiptrack/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	audience = "authenticated"
	role     = "authenticated"
)

var (
	ErrSecretIsRequired = errors.New("token secret is required")
	ErrInvalidToken     = errors.New("invalid bearer token")
)

type accessClaims struct {
	jwt.RegisteredClaims
	Role      string `json:"role,omitempty"`
	AppUserID int64  `json:"app_user_id"`
	Email     string `json:"email,omitempty"`
}

// Token is a signed bearer token and the moment it stops being accepted.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// TokenIssuer signs and verifies HS256 tokens with a shared secret.
type TokenIssuer struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  kernel.Clock
}

func NewTokenIssuer(secret, issuer string, ttl time.Duration, clock kernel.Clock) (*TokenIssuer, error) {
	if secret == "" {
		return nil, ErrSecretIsRequired
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive, got %s", ttl)
	}
	if clock == nil {
		clock = kernel.SystemClock{}
	}
	return &TokenIssuer{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		clock:  clock,
	}, nil
}

// Issue signs a token for the user. Every token gets a random subject and id.
func (t *TokenIssuer) Issue(userID kernel.ID, email string) (Token, error) {
	if err := userID.Validate(); err != nil {
		return Token{}, err
	}

	now := t.clock.Now()
	expiresAt := now.Add(t.ttl)
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.issuer,
			Audience:  jwt.ClaimStrings{audience},
			Subject:   uuid.NewString(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Role:      role,
		AppUserID: userID.Int64(),
		Email:     email,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return Token{}, err
	}

	return Token{Value: signed, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Validate verifies signature, issuer, audience and expiry, and returns the
// app_user_id claim. Every failure wraps ErrInvalidToken.
func (t *TokenIssuer) Validate(tokenString string) (kernel.ID, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&accessClaims{},
		func(*jwt.Token) (any, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.clock.Now),
	)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*accessClaims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	userID, err := kernel.NewID(claims.AppUserID)
	if err != nil {
		return 0, fmt.Errorf("%w: app_user_id: %w", ErrInvalidToken, err)
	}

	return userID, nil
}
