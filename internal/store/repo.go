package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// KV is a durable key-value store for JSON blobs. Reads of a missing key
// report found=false; the caller supplies the default.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
}

// Quiz event actions.
const (
	QuizActionStart    = "start"
	QuizActionComplete = "complete"
	QuizActionAbandon  = "abandon"
)

// QuizEventData captures a quiz lifecycle event.
type QuizEventData struct {
	SessionID      string
	CourseID       string
	ChapterID      string
	Kind           string
	Action         string
	TotalQuestions int
	CorrectAnswers int
	Percent        int
	DurationSecs   int
}

// QuizEventRecord is a stored quiz event.
type QuizEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizEventData
}

// AnswerEventData captures one graded answer.
type AnswerEventData struct {
	SessionID string
	CourseID  string
	ChapterID string
	Kind      string
	ItemID    string
	Prompt    string
	Expected  string
	Given     string
	Correct   bool
}

// ChapterStats aggregates completed quizzes for one chapter.
type ChapterStats struct {
	CourseID     string
	ChapterID    string
	Completed    int
	BestPercent  int
	Answers      int
	Correct      int
	LastActivity time.Time
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	AppendQuizEvent(ctx context.Context, data QuizEventData) error
	AppendAnswerEvent(ctx context.Context, data AnswerEventData) error
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryQuizEvents returns quiz events, most recent first.
	QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEventRecord, error)

	// ChapterStats aggregates completed quizzes and answers per chapter.
	ChapterStats(ctx context.Context, courseID string) ([]ChapterStats, error)

	// QueryLLMEvents returns LLM events, most recent first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)
}
