package models

import "time"

const (
	PaperTypeTopical = "topical"

	QuestionRedo  = "redo"
	QuestionFocus = "focus"
	QuestionLater = "later"
)

// PracticePaper is a past or practice paper worked through question by question
type PracticePaper struct {
	ID             int64      `json:"id" db:"id"`
	SubjectID      int64      `json:"subjectId" db:"subject_id"`
	SubjectName    string     `json:"subjectName" db:"subject_name"`
	TopicID        *int64     `json:"topicId" db:"topic_id"`
	TopicName      *string    `json:"topicName" db:"topic_name"`
	PaperName      string     `json:"paperName" db:"paper_name"`
	PaperType      string     `json:"paperType" db:"paper_type"`
	PDFURL         string     `json:"pdfUrl" db:"pdf_url"`
	QuestionStart  string     `json:"questionStart" db:"question_start"`
	QuestionEnd    string     `json:"questionEnd" db:"question_end"`
	TotalQuestions *int       `json:"totalQuestions" db:"total_questions"`
	Completed      bool       `json:"completed" db:"completed"`
	Score          *int       `json:"score" db:"score"`
	TotalMarks     *int       `json:"totalMarks" db:"total_marks"`
	Notes          string     `json:"notes" db:"notes"`
	ReminderDays   *int       `json:"reminderDays" db:"reminder_days"`
	ReminderDate   *time.Time `json:"reminderDate" db:"reminder_date"`
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

// PracticePaperQuestion flags one question of a paper to come back to
type PracticePaperQuestion struct {
	ID              int64     `json:"id" db:"id"`
	PracticePaperID int64     `json:"practicePaperId" db:"practice_paper_id"`
	QuestionNumber  string    `json:"questionNumber" db:"question_number"`
	Status          string    `json:"status" db:"status"` // redo, focus or later
	Notes           string    `json:"notes" db:"notes"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time `json:"updatedAt" db:"updated_at"`
}

// PracticePaperLog records one sitting on a paper
type PracticePaperLog struct {
	ID              int64     `json:"id" db:"id"`
	PracticePaperID int64     `json:"practicePaperId" db:"practice_paper_id"`
	QuestionStart   string    `json:"questionStart" db:"question_start"`
	QuestionEnd     string    `json:"questionEnd" db:"question_end"`
	Completed       bool      `json:"completed" db:"completed"`
	Score           *int      `json:"score" db:"score"`
	TotalMarks      *int      `json:"totalMarks" db:"total_marks"`
	Duration        int       `json:"duration" db:"duration"` // minutes
	Notes           string    `json:"notes" db:"notes"`
	Date            time.Time `json:"date" db:"date"`
}
