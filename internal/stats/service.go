package stats

import (
	"fmt"
	"strconv"

	"typetutor/internal/badges"
	"typetutor/internal/db"
	"typetutor/internal/events"
	"typetutor/internal/metrics"
)

// Service maintains per-user aggregate stats and runs the badge pipeline.
// All state lives in the database; the service itself is stateless and safe
// for concurrent use.
type Service struct {
	DB  *db.DB
	Bus *events.Bus // nil disables badge-earned notifications
}

func NewService(database *db.DB, bus *events.Bus) *Service {
	return &Service{DB: database, Bus: bus}
}

// Recompute re-derives a user's rollup from the full practice log and writes
// it back, replacing prior values. Only non-anonymous completed attempts
// count. The full rescan makes concurrent recomputes idempotent and
// order-independent; the next recompute self-corrects any staleness.
func (s *Service) Recompute(userID string) (badges.UserStats, error) {
	stats := badges.UserStats{UserID: userID}

	err := s.DB.QueryRow(`
		SELECT
			COALESCE(AVG(wpm), 0),
			COALESCE(AVG(accuracy), 0),
			COUNT(DISTINCT lesson_id),
			COUNT(DISTINCT lesson_id) FILTER (WHERE accuracy >= 80),
			COUNT(DISTINCT lesson_id) FILTER (WHERE accuracy >= 85),
			COUNT(DISTINCT lesson_id) FILTER (WHERE accuracy >= 90),
			COUNT(DISTINCT lesson_id) FILTER (WHERE accuracy >= 95),
			COUNT(DISTINCT lesson_id) FILTER (WHERE accuracy >= 98)
		FROM practice_attempts
		WHERE user_id = $1 AND completed AND NOT is_anonymous
	`, userID).Scan(&stats.AverageWPM, &stats.AverageAccuracy, &stats.LessonsCompleted,
		&stats.LessonsAbove80, &stats.LessonsAbove85, &stats.LessonsAbove90,
		&stats.LessonsAbove95, &stats.LessonsAbove98)
	if err != nil {
		return stats, fmt.Errorf("aggregating attempts: %w", err)
	}

	stats.BadgeLevel = badges.Classify(stats)

	if err := s.DB.UpsertUserStats(toRecord(stats)); err != nil {
		return stats, err
	}
	metrics.StatRecomputes.Inc()
	return stats, nil
}

// Refresh runs the full pipeline: recompute, classify, and record the tier
// in the ledger if newly reached. Returns the fresh stats and whether a new
// ledger row was written.
func (s *Service) Refresh(userID string) (badges.UserStats, bool, error) {
	stats, err := s.Recompute(userID)
	if err != nil {
		return stats, false, err
	}
	if stats.BadgeLevel < 1 {
		return stats, false, nil
	}

	awarded, err := s.DB.AwardBadge(userID, stats.BadgeLevel)
	if err != nil {
		return stats, false, err
	}
	if awarded {
		metrics.BadgesAwarded.WithLabelValues(strconv.Itoa(stats.BadgeLevel)).Inc()
		if s.Bus != nil {
			s.Bus.Publish(events.BadgeEarned{UserID: userID, Level: stats.BadgeLevel})
		}
	}
	return stats, awarded, nil
}

// Current reads the stored rollup without recomputing. A user with no row
// yet reads as all-zero stats.
func (s *Service) Current(userID string) (badges.UserStats, error) {
	rec, err := s.DB.GetUserStats(userID)
	if err != nil {
		return badges.UserStats{UserID: userID}, err
	}
	return fromRecord(rec), nil
}

func toRecord(s badges.UserStats) db.UserStatsRecord {
	return db.UserStatsRecord{
		UserID:            s.UserID,
		AverageWPM:        s.AverageWPM,
		AverageAccuracy:   s.AverageAccuracy,
		LessonsCompleted:  s.LessonsCompleted,
		LessonsAbove80:    s.LessonsAbove80,
		LessonsAbove85:    s.LessonsAbove85,
		LessonsAbove90:    s.LessonsAbove90,
		LessonsAbove95:    s.LessonsAbove95,
		LessonsAbove98:    s.LessonsAbove98,
		CurrentBadgeLevel: s.BadgeLevel,
	}
}

func fromRecord(r db.UserStatsRecord) badges.UserStats {
	return badges.UserStats{
		UserID:           r.UserID,
		AverageWPM:       r.AverageWPM,
		AverageAccuracy:  r.AverageAccuracy,
		LessonsCompleted: r.LessonsCompleted,
		LessonsAbove80:   r.LessonsAbove80,
		LessonsAbove85:   r.LessonsAbove85,
		LessonsAbove90:   r.LessonsAbove90,
		LessonsAbove95:   r.LessonsAbove95,
		LessonsAbove98:   r.LessonsAbove98,
		BadgeLevel:       r.CurrentBadgeLevel,
	}
}
