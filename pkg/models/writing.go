package models

import "time"

// Essay is a piece of written practice
type Essay struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"userId" db:"user_id"`
	Title     string    `json:"title" db:"title"`
	Topic     string    `json:"topic" db:"topic"`
	Prompt    string    `json:"prompt" db:"prompt"`
	Content   string    `json:"content" db:"content"`
	WordCount int       `json:"wordCount" db:"word_count"`
	Grade     string    `json:"grade" db:"grade"`
	Notes     string    `json:"notes" db:"notes"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Vocabulary is a word with its definition and example sentences
type Vocabulary struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"userId" db:"user_id"`
	Word       string     `json:"word" db:"word"`
	Definition string     `json:"definition" db:"definition"`
	Sentences  StringList `json:"sentences" db:"sentences"`
	Category   string     `json:"category" db:"category"`
	Learned    bool       `json:"learned" db:"learned"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// Grammar rule statuses
const (
	GrammarNeedsWork  = "needs_work"
	GrammarUnderstood = "understood"
)

// GrammarRule is a grammar point being learned
type GrammarRule struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"userId" db:"user_id"`
	Title       string     `json:"title" db:"title"`
	Explanation string     `json:"explanation" db:"explanation"`
	Examples    StringList `json:"examples" db:"examples"`
	Category    string     `json:"category" db:"category"`
	Status      string     `json:"status" db:"status"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// ErrorEntry is a recurring mistake and its correction
type ErrorEntry struct {
	ID          int64      `json:"id" db:"id"`
	UserID      int64      `json:"userId" db:"user_id"`
	Category    string     `json:"category" db:"category"`
	Description string     `json:"description" db:"description"`
	Correction  string     `json:"correction" db:"correction"`
	Context     string     `json:"context" db:"context"`
	Resolved    bool       `json:"resolved" db:"resolved"`
	ResolvedAt  *time.Time `json:"resolvedAt" db:"resolved_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
