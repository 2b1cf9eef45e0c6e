package server

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"typetutor/internal/db"
	"typetutor/internal/metrics"
)

type attemptRequest struct {
	LessonID  string  `json:"lessonId"`
	WPM       float64 `json:"wpm"`
	Accuracy  float64 `json:"accuracy"`
	Completed bool    `json:"completed"`
}

func (req attemptRequest) validate() string {
	if req.LessonID == "" {
		return "lessonId is required"
	}
	if req.WPM < 0 {
		return "wpm cannot be negative"
	}
	if req.Accuracy < 0 || req.Accuracy > 100 {
		return "accuracy must be between 0 and 100"
	}
	return ""
}

// handleSaveProgress records a practice attempt. Authenticated submissions
// run the badge pipeline inline; anonymous ones are queued for batch insert
// and never touch stats or badges.
func (s *Server) handleSaveProgress(w http.ResponseWriter, r *http.Request) {
	var req attemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if msg := req.validate(); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	userID := ""
	if token := extractToken(r); token != "" {
		id, err := s.Auth.ParseToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		userID = id
	}

	if userID == "" {
		attempt := db.PracticeAttempt{
			LessonID:    req.LessonID,
			WPM:         req.WPM,
			Accuracy:    req.Accuracy,
			Completed:   req.Completed,
			IsAnonymous: true,
			OccurredAt:  time.Now(),
		}
		select {
		case s.AttemptBuffer <- attempt:
			metrics.AttemptsRecorded.WithLabelValues("true").Inc()
		default:
			log.Println("[DB] Attempt buffer full, dropping anonymous attempt")
		}
		writeJSON(w, http.StatusAccepted, map[string]string{"status": "recorded"})
		return
	}

	attemptID, err := s.DB.RecordAttempt(db.PracticeAttempt{
		UserID:     &userID,
		LessonID:   req.LessonID,
		WPM:        req.WPM,
		Accuracy:   req.Accuracy,
		Completed:  req.Completed,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("[DB] RecordAttempt error: %v\n", err)
		writeError(w, http.StatusBadRequest, "failed to record attempt")
		return
	}
	metrics.AttemptsRecorded.WithLabelValues("false").Inc()

	// The attempt is durable from here on; a failed recompute leaves stats
	// stale until the next submission, never loses the attempt.
	userStats, newBadge, err := s.Stats.Refresh(userID)
	if err != nil {
		log.Printf("[Badges] Refresh error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "attempt saved, stats refresh failed")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"attemptId":     attemptID,
		"stats":         userStats,
		"newBadgeLevel": badgeLevelOrNil(newBadge, userStats.BadgeLevel),
	})
}

func badgeLevelOrNil(newBadge bool, level int) any {
	if !newBadge {
		return nil
	}
	return level
}

func (s *Server) handleListProgress(w http.ResponseWriter, r *http.Request, userID string) {
	attempts, err := s.DB.ListUserAttempts(userID, 50)
	if err != nil {
		log.Printf("[DB] ListUserAttempts error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load attempts")
		return
	}

	type attemptView struct {
		ID         string    `json:"id"`
		LessonID   string    `json:"lessonId"`
		WPM        float64   `json:"wpm"`
		Accuracy   float64   `json:"accuracy"`
		Completed  bool      `json:"completed"`
		OccurredAt time.Time `json:"occurredAt"`
	}
	views := make([]attemptView, 0, len(attempts))
	for _, a := range attempts {
		views = append(views, attemptView{
			ID: a.ID, LessonID: a.LessonID, WPM: a.WPM,
			Accuracy: a.Accuracy, Completed: a.Completed, OccurredAt: a.OccurredAt,
		})
	}
	writeJSON(w, http.StatusOK, views)
}
