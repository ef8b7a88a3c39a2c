package models

import "time"

// ExportBundle is the user-initiated data-portability document: a consistent
// snapshot of one user's account with all owned records, taken at a single
// point in time.
type ExportBundle struct {
	User       User       `json:"user"`
	Schedules  []Schedule `json:"schedules"`
	Notes      []Note     `json:"notes"`
	ExportDate time.Time  `json:"exportDate"`
}
