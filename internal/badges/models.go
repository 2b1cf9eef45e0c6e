package badges

// UserStats is the per-user rollup the classifier reads. All fields are
// re-derived from the full practice log on every recompute, never patched
// incrementally.
type UserStats struct {
	UserID           string  `json:"userId"`
	AverageWPM       float64 `json:"averageWpm"`
	AverageAccuracy  float64 `json:"averageAccuracy"`
	LessonsCompleted int     `json:"lessonsCompleted"`
	LessonsAbove80   int     `json:"lessonsAbove80"`
	LessonsAbove85   int     `json:"lessonsAbove85"`
	LessonsAbove90   int     `json:"lessonsAbove90"`
	LessonsAbove95   int     `json:"lessonsAbove95"`
	LessonsAbove98   int     `json:"lessonsAbove98"`
	BadgeLevel       int     `json:"badgeLevel"`
}

// LessonsAtThreshold maps a tier's lesson-accuracy gate to the matching
// distinct-lesson counter. Invariant: counters nest, so
// LessonsAbove98 <= LessonsAbove95 <= ... <= LessonsAbove80 <= LessonsCompleted.
func (s UserStats) LessonsAtThreshold(threshold int) int {
	switch threshold {
	case 98:
		return s.LessonsAbove98
	case 95:
		return s.LessonsAbove95
	case 90:
		return s.LessonsAbove90
	case 85:
		return s.LessonsAbove85
	default:
		return s.LessonsAbove80
	}
}
