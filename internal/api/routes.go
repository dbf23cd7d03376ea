package api

import (
	"net/http"

	"github.com/fatih/color"
	"github.com/gorilla/mux"

	"github.com/MassBabyGeek/StepLeague-backend/internal/handler"
	"github.com/MassBabyGeek/StepLeague-backend/internal/logger"
	"github.com/MassBabyGeek/StepLeague-backend/internal/middleware"
)

func SetupRouter() http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.LoggerMiddleware)

	authenticatedRoutes := r.PathPrefix("/").Subrouter()
	authenticatedRoutes.Use(middleware.AuthMiddleware)

	// Root - API documentation
	r.HandleFunc("/", handler.RootHandler).Methods(http.MethodGet)

	// Leaderboard
	r.HandleFunc("/leaderboard", handler.GetLeaderboard).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/top", handler.GetTopPerformers).Methods(http.MethodGet)
	r.HandleFunc("/leaderboard/users/{userId}", handler.GetUserRank).Methods(http.MethodGet)

	// League leaderboard
	r.HandleFunc("/leagues/{leagueId}/leaderboard", handler.GetLeagueLeaderboard).Methods(http.MethodGet)

	// Activities
	authenticatedRoutes.HandleFunc("/activities", handler.SubmitActivity).Methods(http.MethodPost)
	r.HandleFunc("/users/{userId}/activities", handler.GetUserActivities).Methods(http.MethodGet)

	// User stats & trends
	r.HandleFunc("/users/{userId}/stats", handler.GetUserStats).Methods(http.MethodGet)
	r.HandleFunc("/users/{userId}/trends", handler.GetUserTrends).Methods(http.MethodGet)

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Warning("404 Not Found: %s %s", r.Method, r.URL.Path)
		color.Yellow("[404] %s %s (route non trouvée)", r.Method, r.URL.Path)
		http.Error(w, "Route not found", http.StatusNotFound)
	})

	return r
}
