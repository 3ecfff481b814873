package usecase

import (
	"context"
	"sync"
	"time"

	"subscription-activation-bot/internal/domain"
	"subscription-activation-bot/internal/domain/model"
)

// ---- in-memory fakes shared by the router tests ----

type memActivationRepo struct {
	mu    sync.Mutex
	data  map[string]model.ActivationRecord
	saves int
	finds int
	err   error
}

func newMemActivationRepo() *memActivationRepo {
	return &memActivationRepo{data: map[string]model.ActivationRecord{}}
}

func (m *memActivationRepo) Save(ctx context.Context, senderID string, rec *model.ActivationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.saves++
	m.data[senderID] = *rec
	return nil
}

func (m *memActivationRepo) Find(ctx context.Context, senderID string) (*model.ActivationRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.finds++
	rec, ok := m.data[senderID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := rec
	return &out, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
	err  error
}

func (f *fakeSender) SendText(ctx context.Context, chatID int64, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, text)
	return nil
}

func (f *fakeSender) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.sent) == 0 {
		return ""
	}
	return f.sent[len(f.sent)-1]
}

func (f *fakeSender) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

type fakeLimiter struct {
	allowed bool
	err     error
	calls   int
}

func (f *fakeLimiter) Allow(ctx context.Context, senderID string, limit int, window time.Duration) (bool, error) {
	f.calls++
	return f.allowed, f.err
}
