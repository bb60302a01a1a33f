package mastery

// Snapshot is the persisted mastery map: course id → chapter id → best
// percent.
type Snapshot map[string]map[string]int

// Transition records the effect of a completed quiz on a chapter.
type Transition struct {
	CourseID  string
	ChapterID string
	Previous  int
	Current   int
}

// Improved reports whether the completion raised the stored value.
func (t Transition) Improved() bool {
	return t.Current > t.Previous
}
