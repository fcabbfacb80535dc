package analytics

import (
	"time"

	"github.com/google/uuid"
)

type Result string

const (
	ResultHit        Result = "hit"
	ResultZeroResult Result = "zero_result"
	ResultError      Result = "error"
)

// QueryEvent describes one executed query.
type QueryEvent struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Variant   string    `json:"variant,omitempty"`
	Query     string    `json:"query"`
	Result    Result    `json:"result"`
	Hits      int       `json:"hits"`
	LatencyUs int64     `json:"latency_us"`
	ErrorKind string    `json:"error_kind,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// NewQueryID returns a fresh random query identifier.
func NewQueryID() string {
	return uuid.NewString()
}
