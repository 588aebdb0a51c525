package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/strengthsync/strengthsync/internal/api/handler"
	"github.com/strengthsync/strengthsync/internal/api/middleware"
	"github.com/strengthsync/strengthsync/internal/services/auth"
	"github.com/strengthsync/strengthsync/internal/services/badges"
	"github.com/strengthsync/strengthsync/internal/services/challenge"
	"github.com/strengthsync/strengthsync/internal/services/notify"
	"github.com/strengthsync/strengthsync/internal/services/org"
	"github.com/strengthsync/strengthsync/internal/services/report"
	"github.com/strengthsync/strengthsync/internal/services/strengths"
	"github.com/strengthsync/strengthsync/internal/storage"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger              *slog.Logger
	Storage             storage.Storage
	AuthService         *auth.Service
	OrgService          *org.Service
	StrengthsService    *strengths.Service
	ReportService       *report.Service
	BadgeService        *badges.Service
	ChallengeController *challenge.Controller
	Bot                 *notify.Bot
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	orgHandler := handler.NewOrgHandler(cfg.OrgService)
	strengthsHandler := handler.NewStrengthsHandler(cfg.StrengthsService, cfg.ReportService, cfg.OrgService)
	challengeHandler := handler.NewChallengeHandler(cfg.ChallengeController, cfg.OrgService)
	badgeHandler := handler.NewBadgeHandler(cfg.BadgeService)
	botHandler := handler.NewBotHandler(cfg.Bot, cfg.Storage)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Auth routes (no auth required for registering/logging in)
	api.HandleFunc("/auth/register", authHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/auth/login", authHandler.Login).Methods(http.MethodPost)

	// Protected auth routes
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(authMiddleware)
	authProtected.HandleFunc("/logout", authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", authHandler.GetMe).Methods(http.MethodGet)

	// Organization routes (all require auth)
	orgs := api.PathPrefix("/orgs").Subrouter()
	orgs.Use(authMiddleware)
	orgs.HandleFunc("", orgHandler.Create).Methods(http.MethodPost)
	orgs.HandleFunc("/{orgId}", orgHandler.Get).Methods(http.MethodGet)
	orgs.HandleFunc("/{orgId}/members", orgHandler.ListMembers).Methods(http.MethodGet)
	orgs.HandleFunc("/{orgId}/members/{memberId}/role", orgHandler.SetRole).Methods(http.MethodPut)
	orgs.HandleFunc("/{orgId}/members/{memberId}/deactivate", orgHandler.Deactivate).Methods(http.MethodPost)

	// Org-scoped challenge routes
	orgs.HandleFunc("/{orgId}/challenges", challengeHandler.Create).Methods(http.MethodPost)
	orgs.HandleFunc("/{orgId}/challenges", challengeHandler.List).Methods(http.MethodGet)

	// Strengths routes (all require auth)
	strengthsRoutes := api.PathPrefix("/strengths").Subrouter()
	strengthsRoutes.Use(authMiddleware)
	strengthsRoutes.HandleFunc("/report", strengthsHandler.UploadReport).Methods(http.MethodPost)
	strengthsRoutes.HandleFunc("/me", strengthsHandler.GetMine).Methods(http.MethodGet)
	strengthsRoutes.HandleFunc("/{memberId}", strengthsHandler.GetForMember).Methods(http.MethodGet)

	// Challenge routes (all require auth)
	challenges := api.PathPrefix("/challenges").Subrouter()
	challenges.Use(authMiddleware)
	challenges.HandleFunc("/{challengeId}", challengeHandler.Get).Methods(http.MethodGet)
	challenges.HandleFunc("/{challengeId}/activate", challengeHandler.Activate).Methods(http.MethodPost)
	challenges.HandleFunc("/{challengeId}/complete", challengeHandler.Complete).Methods(http.MethodPost)
	challenges.HandleFunc("/{challengeId}/archive", challengeHandler.Archive).Methods(http.MethodPost)
	challenges.HandleFunc("/{challengeId}/join", challengeHandler.Join).Methods(http.MethodPost)
	challenges.HandleFunc("/{challengeId}/progress", challengeHandler.GetProgress).Methods(http.MethodGet)
	challenges.HandleFunc("/{challengeId}/claim", challengeHandler.Claim).Methods(http.MethodPost)
	challenges.HandleFunc("/{challengeId}/leaderboard", challengeHandler.Leaderboard).Methods(http.MethodGet)

	// Badge routes
	badgeRoutes := api.PathPrefix("/badges").Subrouter()
	badgeRoutes.Use(authMiddleware)
	badgeRoutes.HandleFunc("/me", badgeHandler.ListMine).Methods(http.MethodGet)

	// Chat integration webhook (transport-level auth, no session)
	api.HandleFunc("/integrations/chat/commands", botHandler.Command).Methods(http.MethodPost)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
