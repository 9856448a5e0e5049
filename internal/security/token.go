package security

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VisitorClaims carry the opaque visitor identity inside the signed cookie.
// This is identity, not authentication: the token only makes the visitor id
// tamper-evident so one visitor cannot claim another's exclusion set.
type VisitorClaims struct {
	VisitorID string `json:"vid"`
	jwt.RegisteredClaims
}

func GenerateVisitorToken(secret string, visitorID string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := VisitorClaims{
		VisitorID: visitorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   visitorID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign visitor token: %w", err)
	}
	return signed, nil
}

func ParseVisitorToken(tokenStr string, secret string) (*VisitorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &VisitorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*VisitorClaims); ok && token.Valid && claims.VisitorID != "" {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid visitor token")
}
