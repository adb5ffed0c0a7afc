package auth

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

var operatorClaimsKey contextKey = "operator_claims"

func SetOperatorClaims(ctx context.Context, claims *OperatorClaims) context.Context {
	return context.WithValue(ctx, operatorClaimsKey, claims)
}

func GetOperatorClaims(ctx context.Context) *OperatorClaims {
	val := ctx.Value(operatorClaimsKey)
	if claims, ok := val.(*OperatorClaims); ok {
		return claims
	}
	return nil
}

// CallerID returns the operator id of the authenticated caller, or
// uuid.Nil when the request carries no claims.
func CallerID(ctx context.Context) uuid.UUID {
	claims := GetOperatorClaims(ctx)
	if claims == nil {
		return uuid.Nil
	}
	id, err := claims.OperatorID()
	if err != nil {
		return uuid.Nil
	}
	return id
}
