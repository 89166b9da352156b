// internal/models/export_run.go
package models

import (
	"time"
)

type ExportRun struct {
	ID         string    `json:"id"`
	Dimension  string    `json:"dimension"`
	Format     string    `json:"format"`
	Status     RunStatus `json:"status"`
	Message    string    `json:"message,omitempty"`
	Rows       int       `json:"rows"`
	Columns    int       `json:"columns"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Artifact   []byte    `json:"-"`
}

type RunStatus string

const (
	RunSucceeded RunStatus = "succeeded"
	RunNoData    RunStatus = "no_data"
	RunFailed    RunStatus = "failed"
)
