package domain

import "time"

// UserActionEvent records a single user-visible operation. Immutable and
// append-only; Timestamp is taken at record time, not at flush time.
type UserActionEvent struct {
	ID         string         `json:"id,omitempty" bson:"_id,omitempty"`
	UserID     string         `json:"user_id" bson:"user_id"`
	Action     string         `json:"action" bson:"action"`
	Timestamp  time.Time      `json:"timestamp" bson:"timestamp"`
	Success    bool           `json:"success" bson:"success"`
	DurationMS int64          `json:"duration_ms,omitempty" bson:"duration_ms,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
}

// PerformanceEvent records the wall-clock duration of one function
// invocation. Immutable and append-only.
type PerformanceEvent struct {
	ID           string    `json:"id,omitempty" bson:"_id,omitempty"`
	FunctionName string    `json:"function_name" bson:"function_name"`
	DurationMS   int64     `json:"duration_ms" bson:"duration_ms"`
	Timestamp    time.Time `json:"timestamp" bson:"timestamp"`
	Success      bool      `json:"success" bson:"success"`
	UserID       string    `json:"user_id,omitempty" bson:"user_id,omitempty"`
}

// SystemMetrics is a 24h aggregate served to administrators.
type SystemMetrics struct {
	Timestamp       time.Time `json:"timestamp"`
	ActiveUsers     int       `json:"active_users"`
	TotalRequests   int       `json:"total_requests"`
	ErrorRate       float64   `json:"error_rate"`
	AvgResponseTime float64   `json:"avg_response_time_ms"`
}

// UserMetrics aggregates one user's recent actions.
type UserMetrics struct {
	TotalActions      int               `json:"total_actions"`
	SuccessfulActions int               `json:"successful_actions"`
	ErrorRate         float64           `json:"error_rate"`
	ActionCounts      map[string]int    `json:"action_counts"`
	RecentActions     []UserActionEvent `json:"recent_actions"`
}
