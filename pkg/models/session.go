package models

import "time"

// Study activity tags recorded on a daily study session
const (
	ActivityGrammar    = "grammar"
	ActivityVocabulary = "vocabulary"
	ActivityEssay      = "essay"
)

// StudySession is one day of general study
type StudySession struct {
	ID         int64      `json:"id" db:"id"`
	UserID     int64      `json:"userId" db:"user_id"`
	Date       time.Time  `json:"date" db:"date"`
	Activities StringList `json:"activities" db:"activities"`
	Duration   int        `json:"duration" db:"duration"` // minutes
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
}

// SATSession records an SAT practice session, optionally from a YouTube video
type SATSession struct {
	ID         int64     `json:"id" db:"id"`
	UserID     int64     `json:"userId" db:"user_id"`
	Topic      string    `json:"topic" db:"topic"`
	Source     string    `json:"source" db:"source"`
	YoutubeURL string    `json:"youtubeUrl" db:"youtube_url"`
	VideoID    string    `json:"videoId" db:"video_id"`
	Timestamp  int       `json:"timestamp" db:"video_timestamp"` // seconds into the video
	Duration   int       `json:"duration" db:"duration"`
	Notes      string    `json:"notes" db:"notes"`
	Completed  bool      `json:"completed" db:"completed"`
	Date       time.Time `json:"date" db:"date"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// Learning project statuses
const (
	ProjectInProgress = "in_progress"
	ProjectCompleted  = "completed"
)

// LearningProject is a self-paced course or book split into units
type LearningProject struct {
	ID                 int64             `json:"id" db:"id"`
	UserID             int64             `json:"userId" db:"user_id"`
	Name               string            `json:"name" db:"name"`
	Category           string            `json:"category" db:"category"`
	Description        string            `json:"description" db:"description"`
	TotalUnits         int               `json:"totalUnits" db:"total_units"`
	CompletedUnits     int               `json:"completedUnits" db:"completed_units"`
	DaysSpent          int               `json:"daysSpent" db:"days_spent"`
	Status             string            `json:"status" db:"status"`
	LastStudied        *time.Time        `json:"lastStudied" db:"last_studied"`
	ProgressPercentage int               `json:"progressPercentage" db:"-"`
	Sessions           []LearningSession `json:"sessions,omitempty" db:"-"`
	CreatedAt          time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time         `json:"updatedAt" db:"updated_at"`
}

// LearningSession is one sitting spent on a learning project
type LearningSession struct {
	ID             int64     `json:"id" db:"id"`
	ProjectID      int64     `json:"projectId" db:"project_id"`
	UnitsCompleted int       `json:"unitsCompleted" db:"units_completed"`
	UnitCovered    string    `json:"unitCovered" db:"unit_covered"`
	Duration       int       `json:"duration" db:"duration"`
	Progress       string    `json:"progress" db:"progress"`
	Notes          string    `json:"notes" db:"notes"`
	Date           time.Time `json:"date" db:"date"`
}
