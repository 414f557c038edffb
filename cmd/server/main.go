package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/dinesplit/internal/api"
	"github.com/mmynk/dinesplit/internal/catalog"
	"github.com/mmynk/dinesplit/internal/config"
	"github.com/mmynk/dinesplit/internal/metrics"
	"github.com/mmynk/dinesplit/internal/middleware"
	"github.com/mmynk/dinesplit/internal/ratelimit"
	"github.com/mmynk/dinesplit/internal/service"
	"github.com/mmynk/dinesplit/internal/storage"
	"github.com/mmynk/dinesplit/internal/storage/memory"
	"github.com/mmynk/dinesplit/internal/storage/sqlite"
	"github.com/mmynk/dinesplit/internal/token"
	"github.com/mmynk/dinesplit/pkg/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file (optional)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logging.Configure(os.Stderr, cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.Storage.Driver)

	secret := cfg.Session.Secret
	if secret == "" {
		if secret, err = token.RandomSecret(); err != nil {
			return err
		}
		slog.Warn("SESSION_SECRET not set, using a random secret; tokens will not survive a restart")
	}
	tokens := token.NewManager(secret, cfg.Session.TTL)

	m := metrics.New()

	janitor := &storage.Janitor{
		Store:     store,
		TTL:       cfg.Session.TTL,
		Interval:  cfg.Session.SweepInterval,
		OnExpired: m.SessionsExpired,
	}
	go janitor.Run(ctx)

	// Outermost first: metrics see every call, logging sees the session.
	chain := []connect.Interceptor{m.Interceptor()}
	if cfg.RateLimit.PerMinute > 0 {
		limiter := ratelimit.NewLimiter(ratelimit.PerMinute(cfg.RateLimit.PerMinute), cfg.RateLimit.Burst)
		go limiter.Run(ctx)
		chain = append(chain, middleware.RateLimit(limiter))
	}
	publicChain := append(append([]connect.Interceptor{}, chain...),
		middleware.OptionalSession(tokens),
		middleware.LoggingInterceptor(),
	)
	chain = append(chain,
		middleware.RequireSession(tokens, api.OrderServiceStartSessionProcedure),
		middleware.LoggingInterceptor(),
	)
	interceptors := connect.WithInterceptors(chain...)

	menu := catalog.Default()
	opts := service.Options{
		MaxParticipants: cfg.Split.MaxParticipants,
		TTL:             cfg.Session.TTL,
	}

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(api.NewMenuServiceHandler(service.NewMenuService(menu), connect.WithInterceptors(publicChain...)))
	mux.Handle(api.NewOrderServiceHandler(service.NewOrderService(store, menu, tokens, m, opts), interceptors))
	mux.Handle(api.NewSplitServiceHandler(service.NewSplitService(store, m, opts), interceptors))

	mux.Handle("/metrics", m.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.Server.StaticPath != "" {
		staticDir, err := filepath.Abs(cfg.Server.StaticPath)
		if err != nil {
			return fmt.Errorf("failed to resolve static path: %w", err)
		}
		slog.Info("Serving static files", "path", staticDir)
		mux.Handle("/", staticHandler(staticDir))
	}

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down", "timeout", cfg.Server.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openStore(cfg config.StorageConfig) (storage.Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		return sqlite.New(cfg.DSN)
	default:
		return memory.New(), nil
	}
}

// staticHandler serves the browser bundle, falling back to index.html.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Check if this is an API request (Connect RPC)
		if strings.HasPrefix(r.URL.Path, "/dinesplit.v1.") {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))

		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			// The menu and split screens are routed in the browser.
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
