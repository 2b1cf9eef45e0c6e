package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"typetutor/internal/classes"
	"typetutor/internal/db"
)

type classView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
}

func classViewOf(c *db.ClassRecord) classView {
	return classView{ID: c.ID, Name: c.Name, Code: c.Code, CreatedAt: c.CreatedAt}
}

func (s *Server) handleCreateClass(w http.ResponseWriter, r *http.Request, userID string) {
	user, err := s.DB.GetUser(userID)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "user not found")
		return
	}
	if user.Role != db.RoleTeacher {
		writeError(w, http.StatusForbidden, "only teachers can create classes")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "class name is required")
		return
	}

	class, err := s.Classes.Create(userID, req.Name)
	if err != nil {
		log.Printf("[Classes] Create error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to create class")
		return
	}
	writeJSON(w, http.StatusCreated, classViewOf(class))
}

func (s *Server) handleJoinClass(w http.ResponseWriter, r *http.Request, userID string) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	code := strings.ToUpper(strings.TrimSpace(req.Code))
	class, joined, err := s.Classes.Join(code, userID)
	if err != nil {
		writeError(w, http.StatusNotFound, "class not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"class":  classViewOf(class),
		"joined": joined, // false when already a member
	})
}

func (s *Server) handleListClasses(w http.ResponseWriter, r *http.Request, userID string) {
	records, err := s.DB.ListClassesByTeacher(userID)
	if err != nil {
		log.Printf("[Classes] ListClassesByTeacher error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load classes")
		return
	}
	views := make([]classView, 0, len(records))
	for i := range records {
		views = append(views, classViewOf(&records[i]))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleClassRoster(w http.ResponseWriter, r *http.Request, userID string) {
	roster, err := s.Classes.Roster(r.PathValue("id"), userID)
	if err != nil {
		if errors.Is(err, classes.ErrNotClassTeacher) {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		writeError(w, http.StatusNotFound, "class not found")
		return
	}

	type rosterView struct {
		UserID           string    `json:"userId"`
		Name             string    `json:"name"`
		AverageWPM       float64   `json:"averageWpm"`
		AverageAccuracy  float64   `json:"averageAccuracy"`
		LessonsCompleted int       `json:"lessonsCompleted"`
		BadgeLevel       int       `json:"badgeLevel"`
		JoinedAt         time.Time `json:"joinedAt"`
	}
	views := make([]rosterView, 0, len(roster))
	for _, e := range roster {
		views = append(views, rosterView{
			UserID: e.UserID, Name: e.Name, AverageWPM: e.AverageWPM,
			AverageAccuracy: e.AverageAccuracy, LessonsCompleted: e.LessonsCompleted,
			BadgeLevel: e.BadgeLevel, JoinedAt: e.JoinedAt,
		})
	}
	writeJSON(w, http.StatusOK, views)
}
