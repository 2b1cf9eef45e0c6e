package badges

// Tier is one badge level's criteria. A user holds a tier when all four
// gates are met at once: distinct completed lessons, average wpm, average
// accuracy, and the lesson counter at MinLessonAccuracy reaching MinLessons.
type Tier struct {
	Level             int     `json:"level"`
	Name              string  `json:"name"`
	Icon              string  `json:"icon"`
	MinLessons        int     `json:"minLessons"`
	MinWPM            float64 `json:"minWpm"`
	MinAvgAccuracy    float64 `json:"minAvgAccuracy"`
	MinLessonAccuracy int     `json:"minLessonAccuracy"`
}

// Tiers holds the 8 badge levels in ascending order. MinLessons is not
// monotonic across levels (level 3 asks for fewer lessons than level 2 but
// higher accuracy everywhere else); only the combination of gates gets
// stricter with level.
var Tiers = []Tier{
	{Level: 1, Name: "Keyboard Novice", Icon: "⌨️", MinLessons: 3, MinWPM: 10, MinAvgAccuracy: 80, MinLessonAccuracy: 80},
	{Level: 2, Name: "Steady Starter", Icon: "🐢", MinLessons: 5, MinWPM: 20, MinAvgAccuracy: 82, MinLessonAccuracy: 80},
	{Level: 3, Name: "Accuracy Apprentice", Icon: "🎯", MinLessons: 3, MinWPM: 30, MinAvgAccuracy: 85, MinLessonAccuracy: 85},
	{Level: 4, Name: "Word Wrangler", Icon: "📝", MinLessons: 7, MinWPM: 40, MinAvgAccuracy: 87, MinLessonAccuracy: 85},
	{Level: 5, Name: "Speed Scholar", Icon: "⚡", MinLessons: 9, MinWPM: 50, MinAvgAccuracy: 90, MinLessonAccuracy: 90},
	{Level: 6, Name: "Rhythm Ranger", Icon: "🔥", MinLessons: 11, MinWPM: 60, MinAvgAccuracy: 92, MinLessonAccuracy: 90},
	{Level: 7, Name: "Typing Master", Icon: "🏆", MinLessons: 11, MinWPM: 70, MinAvgAccuracy: 95, MinLessonAccuracy: 95},
	{Level: 8, Name: "Grandmaster", Icon: "👑", MinLessons: 11, MinWPM: 80, MinAvgAccuracy: 98, MinLessonAccuracy: 98},
}

// MaxLevel is the highest badge level.
const MaxLevel = 8

// ByLevel returns the tier definition for a level between 1 and MaxLevel.
func ByLevel(level int) (Tier, bool) {
	if level < 1 || level > len(Tiers) {
		return Tier{}, false
	}
	return Tiers[level-1], true
}

// Next returns the lowest tier above the given level, if any.
func Next(level int) (Tier, bool) {
	if level >= MaxLevel {
		return Tier{}, false
	}
	if level < 0 {
		level = 0
	}
	return Tiers[level], true
}
