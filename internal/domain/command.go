package domain

import "time"

// Command kinds.
const (
	CommandForceRun = "FORCE_RUN"
	CommandCronRun  = "CRON_RUN"
)

// Command statuses.
const (
	CommandStatusPending    = "PENDING"
	CommandStatusProcessing = "PROCESSING"
	CommandStatusCompleted  = "COMPLETED"
	CommandStatusFailed     = "FAILED"
)

// Command represents one discrete scrape-run request with a tracked
// lifecycle. Historical commands persist for audit.
type Command struct {
	ID         string     `db:"id" json:"id"`
	Command    string     `db:"command" json:"command"`
	Status     string     `db:"status" json:"status"`
	Payload    *string    `db:"payload" json:"payload,omitempty"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	ExecutedAt *time.Time `db:"executed_at" json:"executed_at,omitempty"`
}

// IsTerminal reports whether the command reached a final state.
func (c *Command) IsTerminal() bool {
	return c.Status == CommandStatusCompleted || c.Status == CommandStatusFailed
}

// RunStats aggregates ingestion outcomes for one run or one mapping.
type RunStats struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Skipped  int `json:"skipped"`
	Failed   int `json:"failed"`
}

// Add accumulates another stats value into the receiver.
func (s *RunStats) Add(other RunStats) {
	s.Inserted += other.Inserted
	s.Updated += other.Updated
	s.Skipped += other.Skipped
	s.Failed += other.Failed
}

// Total returns the number of articles that produced any outcome.
func (s *RunStats) Total() int {
	return s.Inserted + s.Updated + s.Skipped + s.Failed
}
