package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	apphttp "bookreview/internal/http"
	"bookreview/internal/config"
	"bookreview/internal/httpx"
	"bookreview/internal/logger"
	"bookreview/internal/platform/imagehost"
	"bookreview/internal/store"
	"bookreview/internal/usecase"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Read()
	if err != nil {
		zlog := logger.Get()
		zlog.Fatal().Err(err).Msg("read config failed")
	}
	log := logger.Get(cfg.Debug)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		<-c
		log.Debug().Msg("os signal caught, shutting down")
		cancel()
	}()

	dbPool := mustOpenDB(ctx, cfg.DBDSN)
	defer dbPool.Close()

	bookRepo := store.NewBookPG(dbPool)
	userRepo := store.NewUserPG(dbPool)
	reviewRepo := store.NewReviewPG(dbPool)
	likeRepo := store.NewLikePG(dbPool)

	discovery := usecase.NewDiscovery(bookRepo, likeRepo)

	var covers apphttp.CoverUploader
	if cfg.ImageHostURL != "" {
		covers = imagehost.NewClient(cfg.ImageHostURL, cfg.ImageHostPreset)
	}

	authHandler := apphttp.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	bookHandler := apphttp.NewBookHandler(bookRepo, reviewRepo, discovery, covers)
	reviewHandler := apphttp.NewReviewHandler(reviewRepo, bookRepo)
	likeHandler := apphttp.NewLikeHandler(likeRepo, bookRepo)

	requireAuth := httpx.RequireAuth(cfg.JWTSecret)
	optionalAuth := httpx.OptionalAuth(cfg.JWTSecret)

	router := http.NewServeMux()

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, pingCancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
		defer pingCancel()
		if err := dbPool.Ping(pingCtx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.Handle("/api/v1/auth/register", httpx.MethodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Register),
	}))
	router.Handle("/api/v1/auth/login", httpx.MethodMux(map[string]http.Handler{
		http.MethodPost: http.HandlerFunc(authHandler.Login),
	}))

	router.Handle("/api/v1/genres", httpx.MethodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(bookHandler.Genres),
	}))

	router.Handle("/api/v1/books", httpx.MethodMux(map[string]http.Handler{
		http.MethodGet:  optionalAuth(http.HandlerFunc(bookHandler.List)),
		http.MethodPost: requireAuth(http.HandlerFunc(bookHandler.Create)),
	}))
	router.Handle("/api/v1/books/mine", httpx.MethodMux(map[string]http.Handler{
		http.MethodGet: requireAuth(http.HandlerFunc(bookHandler.ListMine)),
	}))

	// /api/v1/books/{id}, /api/v1/books/{id}/reviews, /api/v1/books/{id}/like
	bookDetail := http.HandlerFunc(bookHandler.GetByID)
	createReview := requireAuth(http.HandlerFunc(reviewHandler.Create))
	toggleLike := requireAuth(http.HandlerFunc(likeHandler.Toggle))
	router.Handle("/api/v1/books/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet:
			bookDetail.ServeHTTP(w, r)
		case r.Method == http.MethodPost && pathEndsWith(r.URL.Path, "reviews"):
			createReview.ServeHTTP(w, r)
		case r.Method == http.MethodPost && pathEndsWith(r.URL.Path, "like"):
			toggleLike.ServeHTTP(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))

	rateLimit := httpx.NewRateLimitMiddleware(cfg.RateRPS, cfg.RateBurst)

	var handler http.Handler = router
	handler = rateLimit.Middleware(handler)
	handler = httpx.RequestSizeLimitMiddleware(cfg.MaxBodyBytes)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	handler = httpx.CORSMiddleware(cfg.AllowedOrigins)(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	group, gCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Msg("server started")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error().Err(err).Msg("server stopped")
		return
	}
	log.Info().Msg("server stopped")
}

func pathEndsWith(path, action string) bool {
	return strings.HasSuffix(strings.TrimSuffix(path, "/"), "/"+action)
}

func mustOpenDB(ctx context.Context, dsn string) *pgxpool.Pool {
	log := logger.Get()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create db pool")
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatal().Err(err).Msg("cannot ping database")
	}
	log.Info().Msg("database connection OK")
	return pool
}
