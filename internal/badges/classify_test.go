package badges

import "testing"

func TestClassify_NoStats(t *testing.T) {
	level := Classify(UserStats{})
	if level != 0 {
		t.Errorf("Classify() = %d, want 0 for empty stats", level)
	}
}

func TestClassify_ExactBoundary(t *testing.T) {
	// 3 completed lessons all at 80% accuracy, avg wpm 10.0, avg accuracy 80.0
	// meets every level 1 gate exactly — comparisons are inclusive.
	stats := UserStats{
		AverageWPM:       10.0,
		AverageAccuracy:  80.0,
		LessonsCompleted: 3,
		LessonsAbove80:   3,
	}
	if level := Classify(stats); level != 1 {
		t.Errorf("Classify() = %d, want 1 at exact level 1 boundary", level)
	}
}

func TestClassify_JustUnderBoundary(t *testing.T) {
	stats := UserStats{
		AverageWPM:       9.9,
		AverageAccuracy:  80.0,
		LessonsCompleted: 3,
		LessonsAbove80:   3,
	}
	if level := Classify(stats); level != 0 {
		t.Errorf("Classify() = %d, want 0 with wpm below level 1", level)
	}
}

func TestClassify_HighestTierWins(t *testing.T) {
	// Satisfies levels 1-5 simultaneously; must report 5, never a lower level.
	stats := UserStats{
		AverageWPM:       55,
		AverageAccuracy:  91,
		LessonsCompleted: 10,
		LessonsAbove80:   10,
		LessonsAbove85:   10,
		LessonsAbove90:   9,
	}
	if level := Classify(stats); level != 5 {
		t.Errorf("Classify() = %d, want 5", level)
	}
}

func TestClassify_Level3NeedsFewerLessonsThanLevel2(t *testing.T) {
	// 3 excellent lessons: enough for level 3 (3 lessons) but not level 2
	// (5 lessons). Lessons-required is per-tier configuration, not monotonic.
	stats := UserStats{
		AverageWPM:       35,
		AverageAccuracy:  90,
		LessonsCompleted: 3,
		LessonsAbove80:   3,
		LessonsAbove85:   3,
		LessonsAbove90:   3,
	}
	if level := Classify(stats); level != 3 {
		t.Errorf("Classify() = %d, want 3", level)
	}
}

func TestClassify_ThresholdCounterGates(t *testing.T) {
	// Averages and lesson count clear level 5, but only 4 lessons reached
	// 90% accuracy — the threshold counter blocks the tier.
	stats := UserStats{
		AverageWPM:       60,
		AverageAccuracy:  91,
		LessonsCompleted: 12,
		LessonsAbove80:   12,
		LessonsAbove85:   10,
		LessonsAbove90:   4,
	}
	if level := Classify(stats); level == 5 || level == 6 {
		t.Errorf("Classify() = %d, want below 5 with only 4 lessons above 90", level)
	}
}

func TestClassify_TopTier(t *testing.T) {
	stats := UserStats{
		AverageWPM:       85,
		AverageAccuracy:  98.5,
		LessonsCompleted: 15,
		LessonsAbove80:   15,
		LessonsAbove85:   15,
		LessonsAbove90:   14,
		LessonsAbove95:   13,
		LessonsAbove98:   12,
	}
	if level := Classify(stats); level != 8 {
		t.Errorf("Classify() = %d, want 8", level)
	}
}

func TestTiers_OrderedAscending(t *testing.T) {
	for i, tier := range Tiers {
		if tier.Level != i+1 {
			t.Errorf("Tiers[%d].Level = %d, want %d", i, tier.Level, i+1)
		}
	}
	if len(Tiers) != MaxLevel {
		t.Errorf("len(Tiers) = %d, want %d", len(Tiers), MaxLevel)
	}
}

func TestByLevel(t *testing.T) {
	tier, ok := ByLevel(3)
	if !ok || tier.Level != 3 {
		t.Errorf("ByLevel(3) = %+v, %v", tier, ok)
	}
	if _, ok := ByLevel(0); ok {
		t.Error("ByLevel(0) should not resolve")
	}
	if _, ok := ByLevel(9); ok {
		t.Error("ByLevel(9) should not resolve")
	}
}

func TestLessonsAtThreshold(t *testing.T) {
	stats := UserStats{
		LessonsAbove80: 10,
		LessonsAbove85: 8,
		LessonsAbove90: 6,
		LessonsAbove95: 4,
		LessonsAbove98: 2,
	}
	cases := map[int]int{80: 10, 85: 8, 90: 6, 95: 4, 98: 2, 0: 10}
	for threshold, want := range cases {
		if got := stats.LessonsAtThreshold(threshold); got != want {
			t.Errorf("LessonsAtThreshold(%d) = %d, want %d", threshold, got, want)
		}
	}
}
