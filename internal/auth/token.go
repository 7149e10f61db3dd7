package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer turns a username into a bearer token and back.
type TokenIssuer interface {
	Issue(username string) (string, error)
	Subject(token string) (string, error)
}

// UsernameTokens is the legacy scheme: the bearer token is the username itself.
// It provides no security at all.
type UsernameTokens struct{}

// Issue returns the username unchanged.
func (UsernameTokens) Issue(username string) (string, error) {
	return username, nil
}

// Subject returns the token unchanged.
func (UsernameTokens) Subject(token string) (string, error) {
	return token, nil
}

// JWTTokens issues HS256-signed tokens whose subject is the username.
// Tokens carry no expiry.
type JWTTokens struct {
	secret []byte
	now    func() time.Time
}

// NewJWTTokens returns an issuer signing with secret.
func NewJWTTokens(secret string) *JWTTokens {
	return &JWTTokens{secret: []byte(secret), now: time.Now}
}

// Issue creates a new signed JWT string for a given username.
func (j *JWTTokens) Issue(username string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  username,
		IssuedAt: jwt.NewNumericDate(j.now()),
	}

	// HS256 (HMAC using SHA-256) is a common and secure signing method.
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Subject parses and validates a JWT string and returns its subject claim.
func (j *JWTTokens) Subject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		// Security check: ensure the token's signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return j.secret, nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}
