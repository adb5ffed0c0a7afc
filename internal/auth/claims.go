package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// OperatorClaims is the JWT payload carried by every authenticated
// request. Subject holds the operator id.
type OperatorClaims struct {
	OperatorName string `json:"operator_name,omitempty"`
	jwt.RegisteredClaims
}

// OperatorID returns the parsed subject.
func (c *OperatorClaims) OperatorID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// GenerateToken signs a token for the given operator, valid for ttl.
func GenerateToken(secret string, operatorID uuid.UUID, operatorName string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &OperatorClaims{
		OperatorName: operatorName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   operatorID.String(),
			Issuer:    "skyfleet-registry",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates the signature and expiry of a token and returns
// its claims.
func ParseToken(secret, tokenString string) (*OperatorClaims, error) {
	claims := &OperatorClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
