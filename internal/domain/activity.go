package domain

import "time"

// ActivityLog records one study session interval reported by the client.
type ActivityLog struct {
	ID              string
	UserID          string
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	Country         string
	CreatedAt       time.Time
}
