package service

import (
	"context"

	"github.com/hookscope/hookscope-be/internal/model"
)

// ListParams are the raw, un-sanitized paging and filter inputs from a
// listing request. The service coerces invalid values to defaults.
type ListParams struct {
	Page  int
	Limit int
	Path  string
	Type  string
}

// IWebhookService captures inbound requests and serves the query API over
// the capture store.
type IWebhookService interface {
	Ingest(ctx context.Context, capture *model.Capture) (*model.Webhook, error)
	ListPaged(ctx context.Context, params ListParams) (*model.WebhookPage, error)
	Get(ctx context.Context, id int) (*model.Webhook, error)
	Delete(ctx context.Context, id int) error
	ListTypes(ctx context.Context) ([]string, error)
}
