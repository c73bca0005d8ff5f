package domain

import "time"

type Run struct {
	ID          int64     `json:"id"`
	Operation   string    `json:"operation"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
	OutputPath  string    `json:"outputPath"`
	RecordCount int       `json:"recordCount"`
}
