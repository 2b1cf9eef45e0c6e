package badges

// GateProgress reports how far a user is along one of the next tier's
// numeric gates. Pct is capped at 100 and is not zeroed once the gate is
// met, so an already-satisfied gate still contributes its full share.
type GateProgress struct {
	Current  float64 `json:"current"`
	Required float64 `json:"required"`
	Pct      float64 `json:"pct"`
	Met      bool    `json:"met"`
}

// Report describes progress toward the next badge tier.
type Report struct {
	IsMaxLevel   bool          `json:"isMaxLevel"`
	CurrentLevel int           `json:"currentLevel"`
	NextTier     *Tier         `json:"nextTier,omitempty"`
	Lessons      *GateProgress `json:"lessons,omitempty"`
	WPM          *GateProgress `json:"wpm,omitempty"`
	Accuracy     *GateProgress `json:"accuracy,omitempty"`
	Overall      float64       `json:"overallProgress"`
}

// BuildReport computes distance to the next tier from current stats. The
// lessons gate counts only lessons at the next tier's accuracy threshold.
// Overall is the plain mean of the three gate percentages.
func BuildReport(stats UserStats) Report {
	current := Classify(stats)
	next, ok := Next(current)
	if !ok {
		return Report{IsMaxLevel: true, CurrentLevel: current, Overall: 100}
	}

	lessons := gate(float64(stats.LessonsAtThreshold(next.MinLessonAccuracy)), float64(next.MinLessons))
	wpm := gate(stats.AverageWPM, next.MinWPM)
	accuracy := gate(stats.AverageAccuracy, next.MinAvgAccuracy)

	return Report{
		CurrentLevel: current,
		NextTier:     &next,
		Lessons:      &lessons,
		WPM:          &wpm,
		Accuracy:     &accuracy,
		Overall:      (lessons.Pct + wpm.Pct + accuracy.Pct) / 3,
	}
}

func gate(current, required float64) GateProgress {
	pct := 100 * current / required
	if pct > 100 {
		pct = 100
	}
	return GateProgress{
		Current:  current,
		Required: required,
		Pct:      pct,
		Met:      current >= required,
	}
}
