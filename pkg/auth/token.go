package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the session identity embedded in every issued token.
// The role claim is informational only - handlers re-read the role from
// the database so a stale token cannot keep elevated access.
type Claims struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	expiry time.Duration
}

func NewTokenIssuer(secret string, expiry time.Duration) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), expiry: expiry}
}

// Issue creates a signed session token for the given identity.
func (t *TokenIssuer) Issue(c Claims) (string, error) {
	if len(t.secret) == 0 {
		return "", errors.New("auth: JWT secret not configured")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   c.UserID,
		"email": c.Email,
		"name":  c.Name,
		"role":  c.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(t.expiry).Unix(),
	})
	return token.SignedString(t.secret)
}

// Parse validates a token string and returns its claims.
func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("auth: invalid token")
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("auth: invalid claims")
	}

	sub, _ := mapClaims["sub"].(string)
	if sub == "" {
		return nil, errors.New("auth: token missing subject")
	}
	email, _ := mapClaims["email"].(string)
	name, _ := mapClaims["name"].(string)
	role, _ := mapClaims["role"].(string)

	return &Claims{UserID: sub, Email: email, Name: name, Role: role}, nil
}
