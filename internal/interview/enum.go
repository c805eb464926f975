package interview

// Status transitions only move forward: PENDING -> IN_PROGRESS ->
// COMPLETED. ABANDONED is a declared terminal value with no transition
// wired to it yet.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusAbandoned  Status = "ABANDONED"
)

type Difficulty string

const (
	DifficultyJunior Difficulty = "JUNIOR"
	DifficultyMid    Difficulty = "MID"
	DifficultySenior Difficulty = "SENIOR"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyJunior, DifficultyMid, DifficultySenior:
		return true
	}
	return false
}

type PerformanceTrend string

const (
	TrendImproving  PerformanceTrend = "IMPROVING"
	TrendDeclining  PerformanceTrend = "DECLINING"
	TrendConsistent PerformanceTrend = "CONSISTENT"
)
