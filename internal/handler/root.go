package handler

import (
	"net/http"

	"github.com/MassBabyGeek/StepLeague-backend/internal/utils"
)

// RootHandler affiche toutes les routes disponibles de l'API
func RootHandler(w http.ResponseWriter, r *http.Request) {
	routes := map[string]interface{}{
		"name":    "StepLeague API",
		"version": "1.0.0",
		"status":  "running",
		"routes": map[string]interface{}{
			"leaderboard": []map[string]string{
				{"method": "GET", "path": "/leaderboard", "description": "Classement général (params: period, start, end, compare, limit, offset, verified_only)"},
				{"method": "GET", "path": "/leaderboard/top", "description": "Podium (params: period, limit)"},
				{"method": "GET", "path": "/leaderboard/users/{userId}", "description": "Rang d'un utilisateur (params: period)"},
				{"method": "GET", "path": "/leagues/{leagueId}/leaderboard", "description": "Classement d'une ligue"},
			},
			"activities": []map[string]string{
				{"method": "POST", "path": "/activities", "description": "Soumettre les pas d'un jour (authentifié)"},
				{"method": "GET", "path": "/users/{userId}/activities", "description": "Historique des soumissions (params: period, limit, offset)"},
			},
			"stats": []map[string]string{
				{"method": "GET", "path": "/users/{userId}/stats", "description": "Records personnels, streaks et badges"},
				{"method": "GET", "path": "/users/{userId}/trends", "description": "Série de tendance (params: bucket=week|month, count)"},
			},
			"health": []map[string]string{
				{"method": "GET", "path": "/health", "description": "Health check de l'API"},
			},
		},
		"documentation": map[string]string{
			"description": "API REST pour StepLeague - Compétition de pas entre amis",
			"contact":     "support@stepleague.app",
		},
	}

	utils.Success(w, routes)
}
