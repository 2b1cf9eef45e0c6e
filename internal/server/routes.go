package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"typetutor/internal/auth"
	"typetutor/internal/classes"
	"typetutor/internal/config"
	"typetutor/internal/db"
	"typetutor/internal/events"
	"typetutor/internal/notify"
	"typetutor/internal/stats"
)

func Run() error {
	cfg := config.Load()

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	database, err := db.Connect(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	if err := database.Migrate(); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	log.Println("[DB] Database connected and migrations applied")

	bus := events.NewBus()

	srv := &Server{
		DB:            database,
		Auth:          auth.NewService(cfg.JWTSecret, time.Duration(cfg.TokenTTLHours)*time.Hour),
		Stats:         stats.NewService(database, bus),
		Classes:       classes.NewService(database),
		Hub:           notify.NewHub(bus),
		AttemptBuffer: make(chan db.PracticeAttempt, 1000),
	}
	go attemptBatchWriter(database, srv.AttemptBuffer)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/register", srv.handleRegister)
	mux.HandleFunc("POST /auth/login", srv.handleLogin)
	mux.HandleFunc("GET /auth/me", srv.withUser(srv.handleMe))
	mux.HandleFunc("GET /lessons", srv.handleListLessons)
	mux.HandleFunc("GET /lessons/{id}", srv.handleGetLesson)
	mux.HandleFunc("POST /lessons", srv.withUser(srv.handleCreateLesson))
	mux.HandleFunc("POST /progress", srv.handleSaveProgress)
	mux.HandleFunc("GET /progress", srv.withUser(srv.handleListProgress))
	mux.HandleFunc("GET /badges/definitions", srv.handleBadgeDefinitions)
	mux.HandleFunc("GET /badges/current", srv.withUser(srv.handleBadgeCurrent))
	mux.HandleFunc("GET /badges/progress", srv.withUser(srv.handleBadgeProgress))
	mux.HandleFunc("GET /badges/all", srv.withUser(srv.handleBadgeAll))
	mux.HandleFunc("POST /classes", srv.withUser(srv.handleCreateClass))
	mux.HandleFunc("POST /classes/join", srv.withUser(srv.handleJoinClass))
	mux.HandleFunc("GET /classes", srv.withUser(srv.handleListClasses))
	mux.HandleFunc("GET /classes/{id}/roster", srv.withUser(srv.handleClassRoster))
	mux.HandleFunc("GET /leaderboard", srv.handleLeaderboard)
	mux.HandleFunc("GET /ws", srv.handleWS)
	mux.HandleFunc("GET /health", srv.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	addr := "0.0.0.0:" + cfg.Port
	fmt.Printf("Server listening on http://localhost:%s\n", cfg.Port)
	return http.ListenAndServe(addr, mux)
}

// attemptBatchWriter flushes buffered anonymous attempts every half second
// or once 50 pile up, whichever comes first.
func attemptBatchWriter(database *db.DB, buffer chan db.PracticeAttempt) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	batch := make([]db.PracticeAttempt, 0, 50)

	for {
		select {
		case a := <-buffer:
			batch = append(batch, a)
			if len(batch) >= 50 {
				if err := database.BatchRecordAttempts(batch); err != nil {
					log.Printf("[DB] BatchRecordAttempts error: %v\n", err)
				}
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				if err := database.BatchRecordAttempts(batch); err != nil {
					log.Printf("[DB] BatchRecordAttempts error: %v\n", err)
				}
				batch = batch[:0]
			}
		}
	}
}
