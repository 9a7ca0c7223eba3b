package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/auratask-go/config"
)

// ErrInvalidToken is returned by Verify for any token that is malformed,
// carries a bad signature, or has expired.
var ErrInvalidToken = errors.New("invalid token")

// TokenService issues and verifies bearer tokens binding a request to a
// user identity. It is an interface so handlers and middleware can be
// tested with a fake, and so the signing mechanism can be swapped without
// touching the API layer.
type TokenService interface {
	// Issue produces a signed token encoding the given user id.
	Issue(userID string) (string, error)
	// Verify checks the token's signature and claims and returns the
	// embedded user id, or ErrInvalidToken.
	Verify(token string) (string, error)
}

// Claims is the JWT payload: registered claims plus the owning user's id.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTTokenService signs and verifies HS256 tokens with a process-wide
// secret loaded once at startup.
type JWTTokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokenService builds a JWTTokenService from the auth configuration.
func NewJWTTokenService(cfg *config.AuthConfig) *JWTTokenService {
	return &JWTTokenService{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.AccessTokenDuration,
	}
}

// Issue creates a signed token for the given user id.
func (s *JWTTokenService) Issue(userID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   userID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Verify parses and validates a token string and returns the user id it
// encodes. Any tampering with the encoded claims invalidates the signature
// check and yields ErrInvalidToken.
func (s *JWTTokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}
