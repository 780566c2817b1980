package model

import (
	"time"
)

// IngestResponse is returned by the capture endpoint.
type IngestResponse struct {
	Success   bool       `json:"success"`
	Message   string     `json:"message"`
	ID        int        `json:"id,omitempty"`
	Path      string     `json:"path,omitempty"`
	Type      string     `json:"type,omitempty"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// Pagination describes the position of a page within the full result set.
type Pagination struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// WebhookPage is one page of captured webhooks plus pagination info.
type WebhookPage struct {
	Webhooks   []*Webhook `json:"webhooks"`
	Pagination Pagination `json:"pagination"`
}
