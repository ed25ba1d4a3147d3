package domain

import "time"

// Report records a single export action.
type Report struct {
	ID              int64
	UserID          int64
	ReportName      string
	ArchiveLocation string
	CreatedAt       time.Time
}
