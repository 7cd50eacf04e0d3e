package auth

import (
	stderrors "errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissingToken is returned when no bearer credential was presented.
	ErrMissingToken = stderrors.New("missing bearer token")
	// ErrInvalidToken covers bad signatures, wrong algorithms and malformed tokens.
	ErrInvalidToken = stderrors.New("invalid token")
	// ErrExpiredToken is returned for tokens past their expiry.
	ErrExpiredToken = stderrors.New("token expired")
)

// User is the identity carried in a token.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}

// GuestUser is the mock identity issued by the public token endpoint.
var GuestUser = User{ID: 2, Username: "guest"}

// Claims represents JWT claims structure
type Claims struct {
	User User `json:"user"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies HS256 tokens. The secret is passed per
// call so one service backs both the standard and the elevated gate.
type TokenService struct {
	now func() time.Time
}

// NewTokenService creates a TokenService using the wall clock.
func NewTokenService() *TokenService {
	return &TokenService{now: time.Now}
}

// Issue signs a token for user that expires after ttl.
func (s *TokenService) Issue(user User, secret string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("issue token: empty secret")
	}

	now := s.now()
	claims := Claims{
		User: user,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of tokenString against secret.
func (s *TokenService) Verify(tokenString, secret string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Verify signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())

	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
