package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/MassBabyGeek/StepLeague-backend/internal/database"
	model "github.com/MassBabyGeek/StepLeague-backend/internal/models"
	"github.com/MassBabyGeek/StepLeague-backend/internal/scanner"
	"github.com/MassBabyGeek/StepLeague-backend/internal/utils"
)

// Context keys
type contextKey string

const userContextKey = contextKey("user")

// AuthMiddleware valide le token de session et injecte l'utilisateur dans le
// contexte. La création des sessions (login, OAuth...) est gérée ailleurs ;
// ici on ne fait que vérifier un token opaque contre la table sessions.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			utils.Error(w, http.StatusUnauthorized, "missing authorization token", nil)
			return
		}

		user, err := validateTokenAndGetUser(r.Context(), token)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "invalid token", err)
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, *user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserFromContext récupère l'utilisateur injecté par AuthMiddleware
func GetUserFromContext(r *http.Request) (*model.UserProfile, error) {
	user, ok := r.Context().Value(userContextKey).(model.UserProfile)
	if !ok {
		return nil, fmt.Errorf("no user in request context")
	}
	return &user, nil
}

// validateTokenAndGetUser valide le token et retourne l'utilisateur associé
func validateTokenAndGetUser(ctx context.Context, token string) (*model.UserProfile, error) {
	row := database.DB.QueryRow(ctx, `
		SELECT u.id, u.name, u.email, u.avatar, u.join_date, u.created_at, u.updated_at
		FROM users u
		JOIN sessions s ON u.id = s.user_id
		WHERE s.token = $1
			AND s.is_active = true
			AND s.expires_at > NOW()
			AND u.deleted_at IS NULL
	`, token)

	user, err := scanner.ScanUserProfile(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("token not found or expired")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	return user, nil
}
