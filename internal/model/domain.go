package model

import (
	"time"
)

// Webhook is a single captured inbound request as stored in the database.
// Records are immutable after creation; only deletion removes them.
type Webhook struct {
	ID          int       `json:"id"`
	Path        string    `json:"path"`
	Method      string    `json:"method"`
	Headers     Payload   `json:"headers"`
	Body        Payload   `json:"body"`
	QueryParams Payload   `json:"query_params"`
	SourceIP    string    `json:"source_ip"`
	WebhookType *string   `json:"webhook_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// Capture holds a normalized inbound request before it is classified and
// persisted. Header keys are lowercased by the ingestion handler.
type Capture struct {
	Path        string
	Method      string
	Headers     map[string]string
	Body        Payload
	QueryParams map[string]any
	SourceIP    string
}
