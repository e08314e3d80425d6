package models

import "time"

// Exam is an upcoming exam with a countdown
type Exam struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"userId" db:"user_id"`
	SubjectID     *int64    `json:"subjectId" db:"subject_id"`
	SubjectName   *string   `json:"subjectName" db:"subject_name"`
	Name          string    `json:"name" db:"name"`
	ExamDate      time.Time `json:"examDate" db:"exam_date"`
	Board         string    `json:"board" db:"board"`
	Notes         string    `json:"notes" db:"notes"`
	Completed     bool      `json:"completed" db:"completed"`
	DaysRemaining int       `json:"daysRemaining" db:"-"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}
