package mastery

import "fmt"

// Level buckets a mastery percentage for display.
type Level int

const (
	LevelNone      Level = iota // never completed
	LevelStarted                // below 50%
	LevelPracticed              // 50% to 89%
	LevelMastered               // 90% and above
)

// ResolveLevel maps a chapter's mastery into a display level.
func ResolveLevel(percent int, attempted bool) Level {
	switch {
	case !attempted:
		return LevelNone
	case percent >= 90:
		return LevelMastered
	case percent >= 50:
		return LevelPracticed
	default:
		return LevelStarted
	}
}

// Badge renders a short label such as "75%" or "—".
func Badge(percent int, attempted bool) string {
	if !attempted {
		return "—"
	}
	if ResolveLevel(percent, attempted) == LevelMastered {
		return fmt.Sprintf("★ %d%%", percent)
	}
	return fmt.Sprintf("%d%%", percent)
}
