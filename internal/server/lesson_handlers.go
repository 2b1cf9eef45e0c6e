package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"typetutor/internal/db"
)

type lessonView struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
	Body  string `json:"body"`
}

func lessonViewOf(l db.LessonRecord) lessonView {
	return lessonView{ID: l.ID, Title: l.Title, Level: l.Level, Body: l.Body}
}

func (s *Server) handleListLessons(w http.ResponseWriter, r *http.Request) {
	lessons, err := s.DB.ListLessons()
	if err != nil {
		log.Printf("[Lessons] ListLessons error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load lessons")
		return
	}

	views := make([]lessonView, 0, len(lessons))
	for _, l := range lessons {
		views = append(views, lessonViewOf(l))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetLesson(w http.ResponseWriter, r *http.Request) {
	lesson, err := s.DB.GetLesson(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "lesson not found")
		return
	}
	writeJSON(w, http.StatusOK, lessonViewOf(*lesson))
}

// handleCreateLesson is teacher-only.
func (s *Server) handleCreateLesson(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := s.DB.GetUser(userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}
	if user.Role != db.RoleTeacher {
		writeError(w, http.StatusForbidden, "only teachers can create lessons")
		return
	}

	var req struct {
		Title string `json:"title"`
		Level int    `json:"level"`
		Body  string `json:"body"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || strings.TrimSpace(req.Body) == "" {
		writeError(w, http.StatusBadRequest, "title and body are required")
		return
	}
	if req.Level < 1 {
		req.Level = 1
	}

	id, err := s.DB.CreateLesson(req.Title, req.Level, req.Body)
	if err != nil {
		log.Printf("[Lessons] CreateLesson error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to create lesson")
		return
	}
	writeJSON(w, http.StatusCreated, lessonView{ID: id, Title: req.Title, Level: req.Level, Body: req.Body})
}
