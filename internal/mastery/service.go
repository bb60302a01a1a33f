package mastery

// Service tracks the best quiz result for every chapter. Values only ever
// increase.
type Service struct {
	chapters Snapshot
}

// NewService creates a mastery service, loading state from the snapshot.
func NewService(snap Snapshot) *Service {
	s := &Service{chapters: make(Snapshot)}
	for course, chapters := range snap {
		for chapter, pct := range chapters {
			s.set(course, chapter, clampPercent(pct))
		}
	}
	return s
}

// RecordCompletion folds a finished session's percentage into the chapter's
// mastery: the stored value becomes max(previous, percent).
func (s *Service) RecordCompletion(courseID, chapterID string, percent int) Transition {
	prev := s.Get(courseID, chapterID)
	cur := max(prev, clampPercent(percent))
	s.set(courseID, chapterID, cur)
	return Transition{CourseID: courseID, ChapterID: chapterID, Previous: prev, Current: cur}
}

// Get returns the chapter's mastery, 0 when it has never been completed.
func (s *Service) Get(courseID, chapterID string) int {
	return s.chapters[courseID][chapterID]
}

// Has reports whether the chapter has a recorded completion.
func (s *Service) Has(courseID, chapterID string) bool {
	_, ok := s.chapters[courseID][chapterID]
	return ok
}

// Course returns a copy of one course's chapter values.
func (s *Service) Course(courseID string) map[string]int {
	out := make(map[string]int, len(s.chapters[courseID]))
	for id, pct := range s.chapters[courseID] {
		out[id] = pct
	}
	return out
}

// CourseAverage returns the mean mastery over the given chapter ids,
// counting unattempted chapters as 0.
func (s *Service) CourseAverage(courseID string, chapterIDs []string) int {
	if len(chapterIDs) == 0 {
		return 0
	}
	total := 0
	for _, id := range chapterIDs {
		total += s.Get(courseID, id)
	}
	return total / len(chapterIDs)
}

// SnapshotData exports the current mastery state for persistence.
func (s *Service) SnapshotData() Snapshot {
	out := make(Snapshot, len(s.chapters))
	for course := range s.chapters {
		out[course] = s.Course(course)
	}
	return out
}

func (s *Service) set(courseID, chapterID string, pct int) {
	m, ok := s.chapters[courseID]
	if !ok {
		m = make(map[string]int)
		s.chapters[courseID] = m
	}
	m[chapterID] = pct
}

func clampPercent(p int) int {
	return min(max(p, 0), 100)
}
