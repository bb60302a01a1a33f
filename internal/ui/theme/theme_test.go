package theme

import "testing"

func TestChapterColor(t *testing.T) {
	tests := []struct {
		class string
		want  any
	}{
		{"from-amber-200 to-amber-50", chapterColors["amber"]},
		{"from-brand-200 to-brand-50", chapterColors["brand"]},
		{"to-pink-50 from-pink-200", chapterColors["pink"]},
		{"from-chartreuse-200", Secondary},
		{"", Secondary},
	}
	for _, tt := range tests {
		if got := ChapterColor(tt.class); got != tt.want {
			t.Errorf("ChapterColor(%q) = %v, want %v", tt.class, got, tt.want)
		}
	}
}
