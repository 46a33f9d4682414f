package models

import "time"

// GameSession is one tracked run of an arcade mode or worksheet use.
type GameSession struct {
	ID         string
	UserID     *string
	Mode       string
	ListName   string
	ListSize   int
	Meta       string // JSON blob
	StartedAt  time.Time
	EndedAt    *time.Time
	Summary    string // JSON blob, set on end
}

// WordAttempt is a single scored interaction inside a session.
type WordAttempt struct {
	ID            int64
	SessionID     string
	Mode          string
	Word          string
	IsCorrect     bool
	Answer        string
	CorrectAnswer string
	Extra         string // JSON blob
	AttemptedAt   time.Time
}

// SessionSummary aggregates a finished session for reporting.
type SessionSummary struct {
	Session       GameSession
	TotalAttempts int
	CorrectCount  int
	Accuracy      float64
}
