package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

var (
	quizColumns = []string{"session_id", "course_id", "chapter_id", "kind",
		"action", "total_questions", "correct_answers", "percent", "duration_secs"}
	answerColumns = []string{"session_id", "course_id", "chapter_id", "kind",
		"item_id", "prompt", "expected", "given", "correct"}
)

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	return r.insert(ctx, "quiz_events", quizColumns,
		data.SessionID, data.CourseID, data.ChapterID, data.Kind,
		data.Action, data.TotalQuestions, data.CorrectAnswers, data.Percent, data.DurationSecs)
}

func (r *eventRepo) AppendAnswerEvent(ctx context.Context, data AnswerEventData) error {
	return r.insert(ctx, "answer_events", answerColumns,
		data.SessionID, data.CourseID, data.ChapterID, data.Kind,
		data.ItemID, data.Prompt, data.Expected, data.Given, data.Correct)
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEventRecord, error) {
	sel := builder().
		Select("id", "sequence", "timestamp", "session_id", "course_id", "chapter_id", "kind",
			"action", "total_questions", "correct_answers", "percent", "duration_secs").
		From(entsql.Table("quiz_events"))
	applyOpts(sel, opts)

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}
	defer rows.Close()

	var out []QuizEventRecord
	for rows.Next() {
		var e QuizEventRecord
		if err := rows.Scan(&e.ID, &e.Sequence, &e.Timestamp, &e.SessionID, &e.CourseID, &e.ChapterID,
			&e.Kind, &e.Action, &e.TotalQuestions, &e.CorrectAnswers, &e.Percent, &e.DurationSecs); err != nil {
			return nil, fmt.Errorf("scan quiz event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) ChapterStats(ctx context.Context, courseID string) ([]ChapterStats, error) {
	stats := map[string]*ChapterStats{}
	var order []string
	get := func(course, chapter string) *ChapterStats {
		k := course + "\x00" + chapter
		cs, ok := stats[k]
		if !ok {
			cs = &ChapterStats{CourseID: course, ChapterID: chapter}
			stats[k] = cs
			order = append(order, k)
		}
		return cs
	}

	quizSel := builder().
		Select("course_id", "chapter_id", "COUNT(*)", "MAX(percent)", "MAX(timestamp)").
		From(entsql.Table("quiz_events")).
		Where(entsql.EQ("action", QuizActionComplete)).
		GroupBy("course_id", "chapter_id").
		OrderBy("course_id", "chapter_id")
	if courseID != "" {
		quizSel.Where(entsql.EQ("course_id", courseID))
	}
	query, args := quizSel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query chapter stats: %w", err)
	}
	for rows.Next() {
		var (
			course, chapter string
			n, best         int
			last            string
		)
		if err := rows.Scan(&course, &chapter, &n, &best, &last); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan chapter stats: %w", err)
		}
		cs := get(course, chapter)
		cs.Completed = n
		cs.BestPercent = best
		cs.LastActivity = parseSQLiteTime(last)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ansSel := builder().
		Select("course_id", "chapter_id", "COUNT(*)", "COALESCE(SUM(correct), 0)").
		From(entsql.Table("answer_events")).
		GroupBy("course_id", "chapter_id").
		OrderBy("course_id", "chapter_id")
	if courseID != "" {
		ansSel.Where(entsql.EQ("course_id", courseID))
	}
	query, args = ansSel.Query()
	rows, err = r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			course, chapter string
			n, correct      int
		)
		if err := rows.Scan(&course, &chapter, &n, &correct); err != nil {
			return nil, fmt.Errorf("scan answer stats: %w", err)
		}
		cs := get(course, chapter)
		cs.Answers = n
		cs.Correct = correct
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]ChapterStats, 0, len(order))
	for _, k := range order {
		out = append(out, *stats[k])
	}
	return out, nil
}

// applyOpts adds QueryOpts filters to a selector and orders newest first.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}

// Aggregates over TIMESTAMP columns come back as text.
var sqliteTimeLayouts = []string{
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

func parseSQLiteTime(s string) time.Time {
	for _, layout := range sqliteTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
