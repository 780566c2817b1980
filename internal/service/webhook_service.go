package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hookscope/hookscope-be/internal/classifier"
	"github.com/hookscope/hookscope-be/internal/model"
	"github.com/hookscope/hookscope-be/internal/repository"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// WebhookService is the concrete IWebhookService over a capture store.
type WebhookService struct {
	repo   repository.IWebhookRepository
	logger zerolog.Logger
}

// NewWebhookService is the constructor for WebhookService.
func NewWebhookService(repo repository.IWebhookRepository, logger zerolog.Logger) *WebhookService {
	return &WebhookService{
		repo:   repo,
		logger: logger,
	}
}

// Ingest classifies a normalized capture and persists it. It only fails when
// the store itself is unavailable.
func (s *WebhookService) Ingest(ctx context.Context, capture *model.Capture) (*model.Webhook, error) {
	label := classifier.Classify(capture.Body, capture.Headers)

	headers := make(map[string]any, len(capture.Headers))
	for k, v := range capture.Headers {
		headers[k] = v
	}

	webhook := &model.Webhook{
		Path:        capture.Path,
		Method:      capture.Method,
		Headers:     model.ObjectPayload(headers),
		Body:        capture.Body,
		QueryParams: model.ObjectPayload(capture.QueryParams),
		SourceIP:    capture.SourceIP,
		WebhookType: &label,
	}

	if err := s.repo.Create(ctx, webhook); err != nil {
		return nil, fmt.Errorf("store webhook: %w", err)
	}

	s.logger.Info().
		Str("method", webhook.Method).
		Str("path", webhook.Path).
		Str("type", label).
		Int("id", webhook.ID).
		Msg("webhook received")

	return webhook, nil
}

// ListPaged returns one page of captures plus pagination totals. The list
// and count queries run concurrently and are not snapshot-consistent: a
// write landing between them can make the page and the total disagree.
func (s *WebhookService) ListPaged(ctx context.Context, params ListParams) (*model.WebhookPage, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}

	filter := repository.ListFilter{
		PathContains: params.Path,
		WebhookType:  params.Type,
		Limit:        limit,
		Offset:       (page - 1) * limit,
	}

	var (
		webhooks []*model.Webhook
		total    int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		webhooks, err = s.repo.List(gctx, filter)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gctx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list webhooks: %w", err)
	}

	if webhooks == nil {
		webhooks = []*model.Webhook{}
	}
	totalPages := 0
	if total > 0 {
		totalPages = (total + limit - 1) / limit
	}

	return &model.WebhookPage{
		Webhooks: webhooks,
		Pagination: model.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// Get returns one capture by id, or ErrNotFound.
func (s *WebhookService) Get(ctx context.Context, id int) (*model.Webhook, error) {
	webhook, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get webhook %d: %w", id, err)
	}
	if webhook == nil {
		return nil, ErrNotFound
	}
	return webhook, nil
}

// Delete removes one capture by id. Deleting a capture that does not exist
// (or was already deleted) returns ErrNotFound.
func (s *WebhookService) Delete(ctx context.Context, id int) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete webhook %d: %w", id, err)
	}
	if deleted == nil {
		return ErrNotFound
	}

	s.logger.Info().Int("id", id).Msg("webhook deleted")
	return nil
}

// ListTypes returns every distinct classified type, sorted ascending.
func (s *WebhookService) ListTypes(ctx context.Context) ([]string, error) {
	types, err := s.repo.DistinctTypes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list webhook types: %w", err)
	}
	if types == nil {
		types = []string{}
	}
	return types, nil
}
