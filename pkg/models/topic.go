package models

import "time"

// Subject groups the topics a user studies
type Subject struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Name       string    `json:"name" db:"name"`
	Type       string    `json:"type" db:"type"`
	Level      string    `json:"level" db:"level"`
	Color      string    `json:"color" db:"color"`
	Icon       string    `json:"icon" db:"icon"`
	TopicCount int       `json:"topicCount" db:"topic_count"`
	Topics     []Topic   `json:"topics,omitempty" db:"-"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Topic represents a unit of subject material that can be marked as learned
type Topic struct {
	ID          int64      `json:"id" db:"id"`
	SubjectID   int64      `json:"subjectId" db:"subject_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Order       int        `json:"order" db:"sort_order"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completedAt" db:"completed_at"`
	Revisions   []Revision `json:"revisions,omitempty" db:"-"`
	Subtopics   []Subtopic `json:"subtopics,omitempty" db:"-"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}

// Subtopic splits a topic into smaller pieces that are ticked off on their own
type Subtopic struct {
	ID          int64      `json:"id" db:"id"`
	TopicID     int64      `json:"topicId" db:"topic_id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Order       int        `json:"order" db:"sort_order"`
	Completed   bool       `json:"completed" db:"completed"`
	CompletedAt *time.Time `json:"completedAt" db:"completed_at"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" db:"updated_at"`
}
