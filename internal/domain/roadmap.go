package domain

import "time"

// ProgressStatus enumerates per-user per-node completion states.
type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// ValidProgressStatus reports whether v names a known progress status.
func ValidProgressStatus(v string) bool {
	switch ProgressStatus(v) {
	case ProgressNotStarted, ProgressInProgress, ProgressCompleted:
		return true
	}
	return false
}

// Roadmap is the per-user aggregate root. One roadmap per user, enforced
// by a unique constraint on the user reference.
type Roadmap struct {
	ID          string
	UserID      string
	TargetRole  string
	GeneratedAt time.Time
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Resource is a (title, url) learning reference attached to a node.
type Resource struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Node is a single learning module within a roadmap.
type Node struct {
	ID        string
	RoadmapID string
	Title     string
	Details   string
	Resources []Resource
	Position  int
}

// NodeDependency is a directed must-complete-before edge. DependencyID is
// the prerequisite, NodeID the dependent node.
type NodeDependency struct {
	ID           string
	NodeID       string
	DependencyID string
}

// UserNodeProgress is one row per (user, node) pair.
type UserNodeProgress struct {
	ID          string
	UserID      string
	NodeID      string
	Status      ProgressStatus
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
