package server

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"typetutor/internal/badges"
)

func (s *Server) handleBadgeDefinitions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, badges.Tiers)
}

// handleBadgeCurrent refreshes the pipeline before answering, so a user who
// crossed a threshold since their last submission still sees the new badge.
func (s *Server) handleBadgeCurrent(w http.ResponseWriter, r *http.Request, userID string) {
	userStats, _, err := s.Stats.Refresh(userID)
	if err != nil {
		log.Printf("[Badges] Refresh error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to refresh badge state")
		return
	}

	resp := map[string]any{
		"currentBadge": nil,
		"nextBadge":    nil,
		"stats":        userStats,
	}

	if userStats.BadgeLevel >= 1 {
		tier, _ := badges.ByLevel(userStats.BadgeLevel)
		earnedAt, err := s.DB.GetBadgeEarnedAt(userID, userStats.BadgeLevel)
		if err != nil {
			log.Printf("[Badges] GetBadgeEarnedAt error: %v\n", err)
			writeError(w, http.StatusInternalServerError, "failed to load badge")
			return
		}
		resp["currentBadge"] = map[string]any{
			"tier":     tier,
			"earnedAt": earnedAt,
		}
	}
	if next, ok := badges.Next(userStats.BadgeLevel); ok {
		resp["nextBadge"] = next
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBadgeProgress(w http.ResponseWriter, r *http.Request, userID string) {
	userStats, err := s.Stats.Current(userID)
	if err != nil {
		log.Printf("[Badges] Current stats error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load stats")
		return
	}
	writeJSON(w, http.StatusOK, badges.BuildReport(userStats))
}

// handleBadgeAll lists every tier with its earned/locked state. Earned rows
// come from the permanent ledger: a tier stays earned even when the user's
// current averages have regressed below its gates.
func (s *Server) handleBadgeAll(w http.ResponseWriter, r *http.Request, userID string) {
	earned, err := s.DB.GetUserBadges(userID)
	if err != nil {
		log.Printf("[Badges] GetUserBadges error: %v\n", err)
		writeError(w, http.StatusInternalServerError, "failed to load badges")
		return
	}
	earnedAt := make(map[int]time.Time, len(earned))
	for _, b := range earned {
		earnedAt[b.Level] = b.EarnedAt
	}

	type badgeView struct {
		Tier     badges.Tier `json:"tier"`
		Earned   bool        `json:"earned"`
		EarnedAt *time.Time  `json:"earnedAt"`
	}
	views := make([]badgeView, 0, len(badges.Tiers))
	for _, tier := range badges.Tiers {
		v := badgeView{Tier: tier}
		if at, ok := earnedAt[tier.Level]; ok {
			v.Earned = true
			v.EarnedAt = &at
		}
		views = append(views, v)
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("cat")
	if category == "" {
		category = "wpm"
	}
	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	entries, err := s.Stats.Leaderboard(category, limit)
	if err != nil {
		log.Printf("[Stats] Leaderboard error: %v\n", err)
		writeError(w, http.StatusBadRequest, "failed to load leaderboard")
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
