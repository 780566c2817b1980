package repository

import (
	"context"

	"github.com/hookscope/hookscope-be/internal/model"
)

// ListFilter narrows List and Count. Zero values mean "no filter"; both
// filters combine with AND semantics.
type ListFilter struct {
	// PathContains is a case-sensitive infix match on the capture path.
	PathContains string
	// WebhookType is an exact match on the classified type.
	WebhookType string
	Limit       int
	Offset      int
}

// IWebhookRepository is the capture store: durable persistence and querying
// of webhook records. Implementations do not retry on storage failure;
// that is the caller's concern.
type IWebhookRepository interface {
	Create(ctx context.Context, webhook *model.Webhook) error
	List(ctx context.Context, filter ListFilter) ([]*model.Webhook, error)
	Count(ctx context.Context, filter ListFilter) (int, error)
	GetByID(ctx context.Context, id int) (*model.Webhook, error)
	Delete(ctx context.Context, id int) (*model.Webhook, error)
	DeleteOlderThan(ctx context.Context, days int) (int64, error)
	DistinctTypes(ctx context.Context) ([]string, error)
}
