package models

import "time"

// Streaks holds the dashboard streak counters
type Streaks struct {
	Unified  int `json:"unified"`
	Study    int `json:"study"`
	SAT      int `json:"sat"`
	Learning int `json:"learning"`
}

// DashboardCounts summarises the dashboard lists
type DashboardCounts struct {
	TotalExams        int `json:"totalExams"`
	TotalRevisionsDue int `json:"totalRevisionsDue"`
	ActiveProjects    int `json:"activeProjects"`
}

// Dashboard is the read-only home page summary
type Dashboard struct {
	Streaks                Streaks           `json:"streaks"`
	UpcomingExams          []Exam            `json:"upcomingExams"`
	PendingRevisions       []Revision        `json:"pendingRevisions"`
	ActiveLearningProjects []LearningProject `json:"activeLearningProjects"`
	UpcomingReminders      []PracticePaper   `json:"upcomingReminders"`
	Stats                  DashboardCounts   `json:"stats"`
}

// GrammarStats counts grammar rules by status
type GrammarStats struct {
	Total      int `json:"total"`
	Understood int `json:"understood"`
	NeedsWork  int `json:"needsWork"`
}

// VocabularyStats counts vocabulary entries
type VocabularyStats struct {
	Total    int `json:"total"`
	Learned  int `json:"learned"`
	ThisWeek int `json:"thisWeek"`
}

// WordCountPoint is one essay on the word count trend
type WordCountPoint struct {
	Date      time.Time `json:"date"`
	WordCount int       `json:"wordCount"`
}

// EssayStats counts essays and their lengths over time
type EssayStats struct {
	Total          int              `json:"total"`
	WordCountTrend []WordCountPoint `json:"wordCountTrend"`
}

// ErrorStats counts logged errors
type ErrorStats struct {
	Total      int `json:"total"`
	Unresolved int `json:"unresolved"`
}

// StreakStats describes the study session streak
type StreakStats struct {
	Current    int `json:"current"`
	Longest    int `json:"longest"`
	TotalDays  int `json:"totalDays"`
	DaysMissed int `json:"daysMissed"`
}

// Statistics is the progress report of a user
type Statistics struct {
	Grammar    GrammarStats    `json:"grammar"`
	Vocabulary VocabularyStats `json:"vocabulary"`
	Essays     EssayStats      `json:"essays"`
	Errors     ErrorStats      `json:"errors"`
	Streak     StreakStats     `json:"streak"`
}

// CalendarDay lists the kinds of activity recorded on one day
type CalendarDay struct {
	Date       string   `json:"date"` // YYYY-MM-DD
	Activities []string `json:"activities"`
}
