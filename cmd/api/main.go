package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"healthassist/backend/internal/assistant"
	"healthassist/backend/internal/config"
	"healthassist/backend/internal/db"
	"healthassist/backend/internal/llm"
	"healthassist/backend/internal/server"
	"healthassist/backend/internal/session"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx := context.Background()

	var store session.Store
	if strings.TrimSpace(cfg.SessionBackend) == "postgres" {
		pool, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("database connect failed: %v", err)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			log.Fatalf("database ping failed: %v", err)
		}
		pgStore := session.NewPostgresStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatalf("session schema setup failed: %v", err)
		}
		store = pgStore
	} else {
		store = session.NewMemoryStore()
	}

	var generator assistant.Generator
	if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		log.Printf("GEMINI_API_KEY not set; using mock model client")
		generator = llm.MockClient{}
	} else {
		generator = llm.NewGeminiClient(cfg)
	}

	svc := assistant.New(store, generator)
	app := server.New(cfg, svc)
	httpServer := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           app.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("healthassist api listening on http://localhost:%s", cfg.AppPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}
