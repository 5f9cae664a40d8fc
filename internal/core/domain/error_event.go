package domain

import "time"

// ErrorEvent is a structured failure report handed to an error sink.
type ErrorEvent struct {
	Kind       string         `json:"kind"`
	Operation  string         `json:"operation"`
	UserID     string         `json:"userID,omitempty"`
	Message    string         `json:"message"`
	Partial    bool           `json:"partial"` // true when the operation left records behind
	Details    map[string]any `json:"details,omitempty"`
	OccurredAt time.Time      `json:"occurredAt"`
}
