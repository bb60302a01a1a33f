package mastery

import "testing"

func TestService_NewService_Empty(t *testing.T) {
	svc := NewService(nil)
	if got := svc.Get("es-en", "ch1"); got != 0 {
		t.Errorf("Get = %d, want 0", got)
	}
	if svc.Has("es-en", "ch1") {
		t.Error("expected no record")
	}
}

func TestService_RecordCompletion_FirstSets(t *testing.T) {
	svc := NewService(nil)

	tr := svc.RecordCompletion("es-en", "ch1", 75)
	if svc.Get("es-en", "ch1") != 75 {
		t.Errorf("Get = %d, want 75", svc.Get("es-en", "ch1"))
	}
	if tr.Previous != 0 || tr.Current != 75 || !tr.Improved() {
		t.Errorf("transition = %+v", tr)
	}
}

func TestService_RecordCompletion_NeverDecreases(t *testing.T) {
	tests := []struct {
		name  string
		order []int
		want  int
	}{
		{"increasing", []int{40, 70}, 70},
		{"decreasing", []int{70, 40}, 70},
		{"repeat", []int{70, 70}, 70},
		{"zero after", []int{100, 0}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(nil)
			for _, p := range tt.order {
				svc.RecordCompletion("es-en", "ch1", p)
			}
			if got := svc.Get("es-en", "ch1"); got != tt.want {
				t.Errorf("Get = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestService_RecordCompletion_WorseIsNotImproved(t *testing.T) {
	svc := NewService(Snapshot{"es-en": {"ch1": 80}})
	tr := svc.RecordCompletion("es-en", "ch1", 60)
	if tr.Improved() {
		t.Error("worse attempt reported as improvement")
	}
	if tr.Previous != 80 || tr.Current != 80 {
		t.Errorf("transition = %+v", tr)
	}
}

func TestService_ChaptersAreIndependent(t *testing.T) {
	svc := NewService(nil)
	svc.RecordCompletion("es-en", "ch1", 50)
	svc.RecordCompletion("ja-ko", "ch1", 90)

	if svc.Get("es-en", "ch1") != 50 || svc.Get("ja-ko", "ch1") != 90 {
		t.Errorf("courses leaked: %v", svc.SnapshotData())
	}
	if svc.Has("es-en", "ch2") {
		t.Error("unexpected chapter")
	}
}

func TestService_ClampsOutOfRange(t *testing.T) {
	svc := NewService(Snapshot{"es-en": {"a": 140, "b": -5}})
	if svc.Get("es-en", "a") != 100 || svc.Get("es-en", "b") != 0 {
		t.Errorf("loaded = %v", svc.SnapshotData())
	}
}

func TestService_SnapshotRoundTrip(t *testing.T) {
	svc := NewService(nil)
	svc.RecordCompletion("es-en", "ch1", 75)
	svc.RecordCompletion("es-en", "ch2", 100)

	snap := svc.SnapshotData()
	restored := NewService(snap)
	if restored.Get("es-en", "ch1") != 75 || restored.Get("es-en", "ch2") != 100 {
		t.Errorf("restored = %v", restored.SnapshotData())
	}

	// The snapshot is a copy.
	snap["es-en"]["ch1"] = 0
	if svc.Get("es-en", "ch1") != 75 {
		t.Error("snapshot aliases service state")
	}
}

func TestService_CourseAverage(t *testing.T) {
	svc := NewService(Snapshot{"es-en": {"a": 100, "b": 50}})
	if got := svc.CourseAverage("es-en", []string{"a", "b", "c"}); got != 50 {
		t.Errorf("CourseAverage = %d, want 50", got)
	}
	if got := svc.CourseAverage("es-en", nil); got != 0 {
		t.Errorf("CourseAverage(nil) = %d, want 0", got)
	}
}
