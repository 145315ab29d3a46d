// internal/model/generation.go
package model

import "time"

const (
	GenerationSucceeded = "success"
	GenerationFailed    = "failed"
)

// GenerationEvent describes one call to the model, successful or not.
type GenerationEvent struct {
	RequestID  string          `json:"request_id"`
	Request    CampaignRequest `json:"request"`
	Model      string          `json:"model"`
	Status     string          `json:"status"`
	LastError  string          `json:"last_error,omitempty"`
	RawOutput  string          `json:"raw_output,omitempty"`
	DurationMs int64           `json:"duration_ms"`
	CreatedAt  time.Time       `json:"created_at"`
}

type Generation struct {
	ID                 int       `db:"id" json:"id"`
	RequestID          string    `db:"request_id" json:"request_id"`
	ProductName        string    `db:"product_name" json:"product_name"`
	ProductDescription string    `db:"product_description" json:"product_description"`
	TargetAudience     string    `db:"target_audience" json:"target_audience"`
	Goal               string    `db:"goal" json:"goal"`
	Model              string    `db:"model" json:"model"`
	Status             string    `db:"status" json:"status"` // success, failed
	LastError          string    `db:"last_error" json:"last_error,omitempty"`
	RawOutput          string    `db:"raw_output" json:"raw_output,omitempty"`
	DurationMs         int64     `db:"duration_ms" json:"duration_ms"`
	CreatedAt          time.Time `db:"created_at" json:"created_at"`
}

// GenerationFromEvent flattens an event into its stored form.
func GenerationFromEvent(e GenerationEvent) *Generation {
	return &Generation{
		RequestID:          e.RequestID,
		ProductName:        e.Request.ProductName,
		ProductDescription: e.Request.ProductDescription,
		TargetAudience:     e.Request.TargetAudience,
		Goal:               e.Request.Goal,
		Model:              e.Model,
		Status:             e.Status,
		LastError:          e.LastError,
		RawOutput:          e.RawOutput,
		DurationMs:         e.DurationMs,
		CreatedAt:          e.CreatedAt,
	}
}
