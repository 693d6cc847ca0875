package domain

import "time"

// Project is a single portfolio entry. It is intentionally
// storage-agnostic and used across repository, service and HTTP layers.
type Project struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Description  string    `json:"description"`
	Technologies []string  `json:"technologies"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Fields holds every mutable column of a project. ID and CreatedAt are
// never replaced after insert.
type Fields struct {
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	Description  string
	Technologies []string
	Image        string
}
