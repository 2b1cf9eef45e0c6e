package stats

import "fmt"

type LeaderboardEntry struct {
	UserID string  `json:"userId"`
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Rank   int     `json:"rank"`
}

// Leaderboard ranks users over their stored rollups.
func (s *Service) Leaderboard(category string, limit int) ([]LeaderboardEntry, error) {
	var query string
	switch category {
	case "wpm":
		query = `
			SELECT u.id, u.name, s.average_wpm AS value
			FROM user_stats s
			JOIN users u ON u.id = s.user_id
			WHERE s.lessons_completed > 0
			ORDER BY value DESC
			LIMIT $1`
	case "accuracy":
		query = `
			SELECT u.id, u.name, s.average_accuracy AS value
			FROM user_stats s
			JOIN users u ON u.id = s.user_id
			WHERE s.lessons_completed > 0
			ORDER BY value DESC
			LIMIT $1`
	case "lessons":
		query = `
			SELECT u.id, u.name, s.lessons_completed::float AS value
			FROM user_stats s
			JOIN users u ON u.id = s.user_id
			ORDER BY value DESC
			LIMIT $1`
	case "badges":
		query = `
			SELECT u.id, u.name, s.current_badge_level::float AS value
			FROM user_stats s
			JOIN users u ON u.id = s.user_id
			ORDER BY value DESC, s.average_wpm DESC
			LIMIT $1`
	default:
		return nil, fmt.Errorf("unknown leaderboard category: %s", category)
	}

	rows, err := s.DB.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("getting leaderboard: %w", err)
	}
	defer rows.Close()

	var entries []LeaderboardEntry
	rank := 1
	for rows.Next() {
		var e LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.Name, &e.Value); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
