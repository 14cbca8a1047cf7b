// Package auth mints and validates the admin JWTs and provides the Gin
// middleware guarding the admin surface.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is the only lifecycle control on a token; there is no
// revocation list.
const TokenLifetime = 24 * time.Hour

// GenerateToken signs an HS256 token for the given admin identity.
func GenerateToken(adminID, username, secret string) (string, error) {
	claims := jwt.MapClaims{
		"id":       adminID,
		"username": username,
		"exp":      time.Now().Add(TokenLifetime).Unix(),
		"iat":      time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken checks the token signature and expiry and returns its claims.
func ValidateToken(tokenString, secret string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token claims")
}

// AdminID extracts the admin id claim from validated claims.
func AdminID(claims jwt.MapClaims) (string, error) {
	id, ok := claims["id"].(string)
	if !ok || id == "" {
		return "", fmt.Errorf("token missing admin id claim")
	}
	return id, nil
}
