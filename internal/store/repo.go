package store

import (
	"context"
	"time"

	"github.com/abhisek/mathwheel/internal/wheel"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	Purpose string    // exact purpose match when non-empty
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
}

// Round is one answered question.
type Round struct {
	ID        string
	SessionID string
	Operation wheel.Operation
	OperandA  int
	OperandB  int
	Answer    int
	Options   []int
	Chosen    int
	Correct   bool
	CreatedAt time.Time
}

// OperationStats aggregates rounds for one operation.
type OperationStats struct {
	Operation wheel.Operation `json:"operation"`
	Attempts  int             `json:"attempts"`
	Correct   int             `json:"correct"`
}

// Accuracy returns the fraction of correct answers, or 0 with no attempts.
func (s OperationStats) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// Stats summarises all recorded play.
type Stats struct {
	Attempts      int              `json:"attempts"`
	Correct       int              `json:"correct"`
	Sessions      int              `json:"sessions"`
	BestStreak    int              `json:"best_streak"`
	CurrentStreak int              `json:"current_streak"`
	LastPlayed    time.Time        `json:"last_played,omitzero"`
	ByOperation   []OperationStats `json:"by_operation"`
}

// Accuracy returns the overall fraction of correct answers.
func (s Stats) Accuracy() float64 {
	return OperationStats{Attempts: s.Attempts, Correct: s.Correct}.Accuracy()
}

// RoundRepo persists answered rounds.
type RoundRepo interface {
	// AppendRound stores r, filling ID and CreatedAt when they are zero.
	AppendRound(ctx context.Context, r *Round) error

	// RecentRounds returns up to limit rounds, newest first.
	RecentRounds(ctx context.Context, limit int) ([]Round, error)

	// Stats aggregates every stored round.
	Stats(ctx context.Context) (*Stats, error)

	// Reset deletes all rounds.
	Reset(ctx context.Context) error
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

// LLMRequestEventRecord is a stored LLM request event.
type LLMRequestEventRecord struct {
	ID        int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates token usage for one purpose or model.
type LLMUsage struct {
	Purpose      string
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMEvent returns one event or ErrNotFound.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose sums usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel sums usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}
