package domain

import "time"

// Resume holds one markdown resume per user.
type Resume struct {
	ID        string
	UserID    string
	Content   string
	ATSScore  *int
	Feedback  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CoverLetterStatus enumerates cover letter lifecycle states.
type CoverLetterStatus string

const (
	CoverLetterDraft     CoverLetterStatus = "draft"
	CoverLetterCompleted CoverLetterStatus = "completed"
)

// ValidCoverLetterStatus reports whether v names a known status.
func ValidCoverLetterStatus(v string) bool {
	switch CoverLetterStatus(v) {
	case CoverLetterDraft, CoverLetterCompleted:
		return true
	}
	return false
}

// CoverLetter is a generated or drafted letter for one job application.
type CoverLetter struct {
	ID             string
	UserID         string
	Content        string
	JobDescription string
	CompanyName    string
	JobTitle       string
	Status         CoverLetterStatus
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AssessmentQuestion is one answered quiz question inside an assessment.
type AssessmentQuestion struct {
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	UserAnswer string `json:"user_answer"`
	IsCorrect  bool   `json:"is_correct"`
}

// Assessment records one completed quiz run.
type Assessment struct {
	ID             string
	UserID         string
	QuizScore      float64
	Questions      []AssessmentQuestion
	Category       string
	ImprovementTip string
	CreatedAt      time.Time
}

// ChatRole enumerates transcript message authors.
type ChatRole string

const (
	ChatRoleUser      ChatRole = "user"
	ChatRoleAssistant ChatRole = "assistant"
)

// ChatMessage is a single transcript turn.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// MaxChatMessages caps the stored transcript at the most recent turns.
const MaxChatMessages = 15

// Chat holds the single assistant transcript per user.
type Chat struct {
	ID        string
	UserID    string
	Messages  []ChatMessage
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TrimMessages drops all but the most recent MaxChatMessages entries.
func (c *Chat) TrimMessages() {
	if len(c.Messages) > MaxChatMessages {
		c.Messages = c.Messages[len(c.Messages)-MaxChatMessages:]
	}
}
