package handler

import (
	"log/slog"
	"net/http"

	"github.com/huntrbrooks/Money-sub001/internal/domain/services"
	"github.com/huntrbrooks/Money-sub001/internal/middleware"
)

// RouterDeps carries everything the route table needs.
type RouterDeps struct {
	SiteConfig    services.SiteConfigService
	Assistant     services.AssistantService
	Content       services.ContentService
	Auth          services.AuthService
	Assets        services.AssetService
	LoginLimiter  *middleware.LimiterPool
	Backend       string
	SecureCookies bool
	Metrics       http.Handler // optional
	Logger        *slog.Logger
}

// NewRouter registers every route (Go 1.22+ enhanced patterns). Admin
// routes other than login and session require a valid session cookie.
func NewRouter(deps RouterDeps) *http.ServeMux {
	siteConfigHandler := NewSiteConfigHandler(deps.SiteConfig, deps.Assistant, deps.Logger)
	contentHandler := NewContentHandler(deps.Content, deps.Logger)
	authHandler := NewAuthHandler(deps.Auth, deps.SecureCookies, deps.Logger)
	assetHandler := NewAssetHandler(deps.Assets, deps.Logger)
	healthHandler := NewHealthHandler(deps.Backend)

	requireSession := middleware.RequireSession(deps.Auth)
	admin := func(h http.HandlerFunc) http.Handler { return requireSession(h) }

	mux := http.NewServeMux()

	// Health check and metrics
	mux.HandleFunc("GET /health", healthHandler.HealthCheck)
	if deps.Metrics != nil {
		mux.Handle("GET /metrics", deps.Metrics)
	}

	// Public reads
	mux.HandleFunc("GET /api/site-config", siteConfigHandler.GetSiteConfig)
	mux.HandleFunc("GET /api/content/{type}", contentHandler.ListContent)
	mux.HandleFunc("GET /api/content/{type}/{slug}", contentHandler.GetContent)
	mux.HandleFunc("GET /media/{key...}", assetHandler.Media)

	// Session
	login := http.Handler(http.HandlerFunc(authHandler.Login))
	if deps.LoginLimiter != nil {
		login = middleware.RateLimit(deps.LoginLimiter)(login)
	}
	mux.Handle("POST /api/admin/login", login)
	mux.HandleFunc("POST /api/admin/logout", authHandler.Logout)
	mux.HandleFunc("GET /api/admin/session", authHandler.Session)

	// Site configuration
	mux.Handle("PUT /api/admin/site-config", admin(siteConfigHandler.PutSiteConfig))
	mux.Handle("GET /api/admin/site-config/versions", admin(siteConfigHandler.ListVersions))
	mux.Handle("POST /api/admin/site-config/rollback", admin(siteConfigHandler.Rollback))
	mux.Handle("POST /api/admin/site-config/assistant", admin(siteConfigHandler.Assistant))

	// Content
	mux.Handle("POST /api/admin/content/{type}", admin(contentHandler.CreateContent))
	mux.Handle("PUT /api/admin/content/{type}/{slug}", admin(contentHandler.UpdateContent))

	// Uploads
	mux.Handle("POST /api/admin/uploads", admin(assetHandler.Upload))

	return mux
}
