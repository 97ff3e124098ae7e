package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"obrasapi/internal/export"
	"obrasapi/internal/httpx"
	"obrasapi/internal/ingest"
	"obrasapi/internal/obra"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const maxUploadBytes = 10 << 20

func main() {
	_ = godotenv.Load(".env.local")

	serverAddress := getEnv("APP_ADDR", ":8080")
	databaseDSN := getEnv("DB_DSN", "")

	var repo obra.Repository
	var dbPool *pgxpool.Pool
	if databaseDSN != "" {
		dbPool = mustOpenDB(databaseDSN)
		defer dbPool.Close()
		repo = obra.NewPostgresRepo(dbPool, 5*time.Second)
	} else {
		log.Println("DB_DSN not set, using in-memory store")
		repo = obra.NewMemoryRepo()
	}

	router := newRouter(repo, dbPool)

	rateLimit := httpx.NewRateLimitMiddleware(getEnvFloat("RATE_LIMIT_RPS", 50), 100)

	handler := http.Handler(router)
	handler = httpx.RequestSizeLimitMiddleware(maxUploadBytes)(handler)
	handler = httpx.SecurityHeadersMiddleware(handler)
	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		handler = httpx.CORSMiddleware(strings.Split(origins, ","))(handler)
	}
	handler = rateLimit.Middleware(handler)
	handler = httpx.RecoveryMiddleware(handler)
	handler = httpx.AccessLogMiddleware(handler)
	handler = httpx.RequestIDMiddleware(handler)

	httpServer := &http.Server{
		Addr:         serverAddress,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Starting server on %s", serverAddress)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server error: %v", err)
	}
}

// newRouter wires the obra routes onto a ServeMux. dbPool may be nil when
// running on the in-memory store.
func newRouter(repo obra.Repository, dbPool *pgxpool.Pool) *http.ServeMux {
	obraHandler := obra.NewHTTPHandler(obra.NewService(repo))
	ingestHandler := ingest.NewHTTPHandler(ingest.NewService(repo))
	exportHandler := export.NewHTTPHandler(export.NewService(repo))

	router := http.NewServeMux()

	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if dbPool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := dbPool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	router.HandleFunc("POST /obras", obraHandler.Create)
	router.HandleFunc("GET /obras", obraHandler.List)
	router.HandleFunc("PUT /obras/{id}", obraHandler.Update)
	router.HandleFunc("DELETE /obras/{id}", obraHandler.Delete)
	router.HandleFunc("POST /upload-obras", ingestHandler.Upload)
	router.HandleFunc("GET /file-obras", exportHandler.Download)

	return router
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func mustOpenDB(dsn string) *pgxpool.Pool {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("cannot create db pool: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		log.Fatalf("cannot ping database (%s): %v", redactDSN(dsn), err)
	}
	log.Println("database connection OK")
	return pool
}

func redactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
