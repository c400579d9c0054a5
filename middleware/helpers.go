package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v4"
)

type contextKey string

const (
	userContextKey   contextKey = "user"
	playerContextKey contextKey = "player"
)

const (
	jwtClaimSubject  = "sub"
	jwtClaimRole     = "role"
	jwtClaimPlayerID = "player_id"
)

func GetRoleFromContext(ctx context.Context) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	role, ok := claims[jwtClaimRole].(string)
	if !ok {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimRole)
	}
	return role, nil
}

func GetSubjectFromContext(ctx context.Context) (string, error) {
	claims, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}
	sub, ok := claims[jwtClaimSubject].(string)
	if !ok || sub == "" {
		return "", fmt.Errorf("missing '%s' claim in token", jwtClaimSubject)
	}
	return sub, nil
}

func claimsFromContext(ctx context.Context) (jwt.MapClaims, error) {
	claims, ok := ctx.Value(userContextKey).(jwt.MapClaims)
	if ok {
		return claims, nil
	}
	return nil, errors.New("user claims not found in context or invalid type")
}

// intClaim reads a positive integer claim. JSON numbers decode as float64.
func intClaim(claims jwt.MapClaims, name string) (int, error) {
	v, ok := claims[name].(float64)
	if !ok {
		return 0, fmt.Errorf("missing '%s' claim", name)
	}
	if v != float64(int(v)) || v <= 0 {
		return 0, fmt.Errorf("invalid '%s' claim: %v", name, v)
	}
	return int(v), nil
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
