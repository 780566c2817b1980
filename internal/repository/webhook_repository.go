package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hookscope/hookscope-be/internal/model"
)

// webhookRepository is the Postgres implementation of IWebhookRepository.
type webhookRepository struct {
	db *sql.DB
}

// NewWebhookRepository is the constructor for webhookRepository.
func NewWebhookRepository(db *sql.DB) IWebhookRepository {
	return &webhookRepository{db: db}
}

const webhookColumns = "id, path, method, headers, body, query_params, source_ip, webhook_type, created_at"

// Create inserts a new webhook record. The database assigns id and
// created_at; both are written back into the given record.
func (r *webhookRepository) Create(ctx context.Context, webhook *model.Webhook) error {
	query := `
		INSERT INTO webhooks (path, method, headers, body, query_params, source_ip, webhook_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	return r.db.QueryRowContext(ctx, query,
		webhook.Path,
		webhook.Method,
		webhook.Headers,
		webhook.Body,
		webhook.QueryParams,
		webhook.SourceIP,
		webhook.WebhookType,
	).Scan(&webhook.ID, &webhook.CreatedAt)
}

// buildFilterClause renders the WHERE clause for a ListFilter. It returns an
// empty string when no filter is set, otherwise a clause with placeholders
// numbered from 1, plus the matching arguments.
func buildFilterClause(filter ListFilter) (string, []any) {
	var conditions []string
	var args []any

	if filter.PathContains != "" {
		args = append(args, filter.PathContains)
		conditions = append(conditions, fmt.Sprintf("position($%d in path) > 0", len(args)))
	}
	if filter.WebhookType != "" {
		args = append(args, filter.WebhookType)
		conditions = append(conditions, fmt.Sprintf("webhook_type = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

// List returns records matching the filter, newest first. The id tiebreaker
// keeps pages stable when several records share a created_at.
func (r *webhookRepository) List(ctx context.Context, filter ListFilter) ([]*model.Webhook, error) {
	where, args := buildFilterClause(filter)
	query := fmt.Sprintf(
		"SELECT %s FROM webhooks%s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		webhookColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var webhooks []*model.Webhook
	for rows.Next() {
		wh, err := scanWebhook(rows)
		if err != nil {
			return nil, err
		}
		webhooks = append(webhooks, wh)
	}
	return webhooks, rows.Err()
}

// Count returns the number of records matching the filter.
func (r *webhookRepository) Count(ctx context.Context, filter ListFilter) (int, error) {
	where, args := buildFilterClause(filter)
	query := "SELECT COUNT(*) FROM webhooks" + where

	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// GetByID returns one record by id, or nil if not found.
func (r *webhookRepository) GetByID(ctx context.Context, id int) (*model.Webhook, error) {
	query := fmt.Sprintf("SELECT %s FROM webhooks WHERE id = $1", webhookColumns)

	wh, err := scanWebhook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return wh, nil
}

// Delete removes one record by id and returns it, or nil if not found.
func (r *webhookRepository) Delete(ctx context.Context, id int) (*model.Webhook, error) {
	query := fmt.Sprintf("DELETE FROM webhooks WHERE id = $1 RETURNING %s", webhookColumns)

	wh, err := scanWebhook(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return wh, nil
}

// DeleteOlderThan removes records strictly older than now minus the given
// number of days and returns how many were removed.
func (r *webhookRepository) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	query := "DELETE FROM webhooks WHERE created_at < now() - make_interval(days => $1)"

	result, err := r.db.ExecContext(ctx, query, days)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// DistinctTypes returns every non-null webhook_type, deduplicated and
// sorted ascending.
func (r *webhookRepository) DistinctTypes(ctx context.Context) ([]string, error) {
	query := `
		SELECT DISTINCT webhook_type FROM webhooks
		WHERE webhook_type IS NOT NULL
		ORDER BY webhook_type`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	return types, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWebhook(row rowScanner) (*model.Webhook, error) {
	var wh model.Webhook
	err := row.Scan(
		&wh.ID,
		&wh.Path,
		&wh.Method,
		&wh.Headers,
		&wh.Body,
		&wh.QueryParams,
		&wh.SourceIP,
		&wh.WebhookType,
		&wh.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &wh, nil
}
