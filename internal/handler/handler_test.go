package handler

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/hookscope/hookscope-be/internal/model"
	"github.com/hookscope/hookscope-be/internal/repository"
	"github.com/hookscope/hookscope-be/internal/service"
)

// memRepo is an in-memory capture store for handler tests.
type memRepo struct {
	mu      sync.Mutex
	records []*model.Webhook
	nextID  int
	fail    error
}

func newMemRepo() *memRepo {
	return &memRepo{nextID: 1}
}

func (m *memRepo) Create(ctx context.Context, wh *model.Webhook) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	wh.ID = m.nextID
	m.nextID++
	wh.CreatedAt = time.Now()
	cp := *wh
	m.records = append(m.records, &cp)
	return nil
}

func (m *memRepo) List(ctx context.Context, f repository.ListFilter) ([]*model.Webhook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	var out []*model.Webhook
	for i := len(m.records) - 1; i >= 0; i-- {
		wh := m.records[i]
		if f.PathContains != "" && !strings.Contains(wh.Path, f.PathContains) {
			continue
		}
		if f.WebhookType != "" && (wh.WebhookType == nil || *wh.WebhookType != f.WebhookType) {
			continue
		}
		out = append(out, wh)
	}
	if f.Offset >= len(out) {
		return nil, nil
	}
	out = out[f.Offset:]
	if f.Limit < len(out) {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *memRepo) Count(ctx context.Context, f repository.ListFilter) (int, error) {
	all, err := m.List(ctx, repository.ListFilter{
		PathContains: f.PathContains,
		WebhookType:  f.WebhookType,
		Limit:        1 << 30,
	})
	return len(all), err
}

func (m *memRepo) GetByID(ctx context.Context, id int) (*model.Webhook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for _, wh := range m.records {
		if wh.ID == id {
			return wh, nil
		}
	}
	return nil, nil
}

func (m *memRepo) Delete(ctx context.Context, id int) (*model.Webhook, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	for i, wh := range m.records {
		if wh.ID == id {
			m.records = append(m.records[:i], m.records[i+1:]...)
			return wh, nil
		}
	}
	return nil, nil
}

func (m *memRepo) DeleteOlderThan(ctx context.Context, days int) (int64, error) {
	return 0, m.fail
}

func (m *memRepo) DistinctTypes(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return nil, m.fail
	}
	seen := map[string]bool{}
	for _, wh := range m.records {
		if wh.WebhookType != nil {
			seen[*wh.WebhookType] = true
		}
	}
	var types []string
	for t := range seen {
		types = append(types, t)
	}
	sort.Strings(types)
	return types, nil
}

func newTestService(repo repository.IWebhookRepository) *service.WebhookService {
	return service.NewWebhookService(repo, zerolog.Nop())
}
