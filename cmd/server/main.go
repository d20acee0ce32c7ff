package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adekunleadebayo/ticketapp/internal/auth"
	"github.com/adekunleadebayo/ticketapp/internal/config"
	"github.com/adekunleadebayo/ticketapp/internal/handlers"
	"github.com/adekunleadebayo/ticketapp/internal/session"
	"github.com/adekunleadebayo/ticketapp/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init storage
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}
	if err := db.InitSchema(); err != nil {
		slog.Error("Failed to initialize schema", "error", err)
		os.Exit(1)
	}

	// 3. Session setup: the flash-message cookie store and the app's
	// own session manager (token record + mirrored cookie).
	flashStore := sessions.NewCookieStore(cfg.SessionKey)
	flashStore.Options.HttpOnly = true
	flashStore.Options.Secure = cfg.CookieSecure
	flashStore.Options.SameSite = http.SameSiteLaxMode
	flashStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		flashStore.Options.Domain = cfg.CookieDomain
	}

	sessionManager := session.NewManager(db, cfg.CookieDomain, cfg.CookieSecure)
	authService := auth.NewService(db, sessionManager)

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Setup Handlers
	landingHandler := &handlers.LandingHandler{
		Sessions:     sessionManager,
		SessionStore: flashStore,
		Templates:    templates,
	}
	authHandler := &handlers.AuthHandler{
		Auth:         authService,
		SessionStore: flashStore,
		Templates:    templates,
	}
	dashboardHandler := &handlers.DashboardHandler{
		Store:        db,
		Sessions:     sessionManager,
		SessionStore: flashStore,
		Templates:    templates,
	}
	ticketsHandler := &handlers.TicketsHandler{
		Store:        db,
		Sessions:     sessionManager,
		SessionStore: flashStore,
		Templates:    templates,
		SeedURL:      cfg.SeedURL,
	}

	mux := http.NewServeMux()

	// Static files and the seed-data collaborator endpoint
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))
	dataServer := http.FileServer(http.Dir(cfg.DataDir))
	mux.Handle("/data/", http.StripPrefix("/data", dataServer))

	// Rate limiter on the auth POSTs (5s window)
	rateLimiter := handlers.NewRateLimiter(5 * time.Second)

	// Public routes
	mux.HandleFunc("/", landingHandler.Index)
	mux.HandleFunc("/auth/login", authHandler.LoginGet)
	mux.HandleFunc("POST /auth/login", rateLimiter.Middleware(authHandler.LoginPost))
	mux.HandleFunc("/auth/signup", authHandler.SignupGet)
	mux.HandleFunc("POST /auth/signup", rateLimiter.Middleware(authHandler.SignupPost))
	mux.HandleFunc("POST /auth/logout", authHandler.Logout)

	// Protected routes: cookie-presence gate only, per the front
	// controller contract.
	guard := &handlers.RouteGuard{SessionStore: flashStore}
	mux.HandleFunc("/dashboard", guard.Protect(dashboardHandler.Dashboard))
	mux.HandleFunc("POST /dashboard/tickets", guard.Protect(dashboardHandler.SubmitTicket))
	mux.HandleFunc("POST /dashboard/tickets/delete", guard.Protect(dashboardHandler.DeleteTicket))
	mux.HandleFunc("/tickets", guard.Protect(ticketsHandler.Tickets))
	mux.HandleFunc("POST /tickets", guard.Protect(ticketsHandler.SubmitTicket))
	mux.HandleFunc("POST /tickets/delete", guard.Protect(ticketsHandler.DeleteTicket))

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure),
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	<-stop

	slog.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
