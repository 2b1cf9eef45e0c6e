package badges

// Classify maps aggregate stats to the highest badge level whose gates are
// all met, or 0 for no badge. Tiers are checked from the top down and the
// first match wins, so a user satisfying levels 3 and 5 classifies as 5.
// All comparisons are inclusive. This is the only place tier logic lives;
// both the submit pipeline and the read endpoints go through it.
func Classify(stats UserStats) int {
	for i := len(Tiers) - 1; i >= 0; i-- {
		if meets(stats, Tiers[i]) {
			return Tiers[i].Level
		}
	}
	return 0
}

func meets(stats UserStats, tier Tier) bool {
	if stats.LessonsCompleted < tier.MinLessons {
		return false
	}
	if stats.AverageWPM < tier.MinWPM {
		return false
	}
	if stats.AverageAccuracy < tier.MinAvgAccuracy {
		return false
	}
	return stats.LessonsAtThreshold(tier.MinLessonAccuracy) >= tier.MinLessons
}
