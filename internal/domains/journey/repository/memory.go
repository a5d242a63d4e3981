package repository

import (
	"context"
	"naturekids/internal/domains/journey/model"
	"slices"
	"sync"
	"time"
)

type memoryImpl struct {
	mu      sync.RWMutex
	entries []model.Entry
	rewards []model.Reward
}

func NewMemory() Journal {
	return &memoryImpl{}
}

func (m *memoryImpl) Track(_ context.Context, entry model.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = append(m.entries, entry)

	return nil
}

func (m *memoryImpl) Get(_ context.Context, owner, id string) (model.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.ID == id && e.UserID == owner {
			return e, nil
		}
	}

	return model.Entry{}, nil
}

func (m *memoryImpl) Complete(_ context.Context, owner, id string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.entries {
		e := &m.entries[i]
		if e.ID != id || e.UserID != owner || e.Status != model.StatusInProgress {
			continue
		}

		e.Status = model.StatusCompleted
		e.CompletedAt = &at
		e.ModifiedAt = at
		e.ModifiedBy = owner

		return true, nil
	}

	return false, nil
}

func (m *memoryImpl) ListByOwner(_ context.Context, owner string) ([]model.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := []model.Entry{}

	for _, e := range slices.Backward(m.entries) {
		if e.UserID == owner {
			res = append(res, e)
		}
	}

	return res, nil
}

func (m *memoryImpl) Award(_ context.Context, reward model.Reward) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	held := slices.ContainsFunc(m.rewards, func(r model.Reward) bool {
		return r.UserID == reward.UserID && r.Type == reward.Type
	})
	if held {
		return false, nil
	}

	m.rewards = append(m.rewards, reward)

	return true, nil
}

func (m *memoryImpl) Rewards(_ context.Context, owner string) ([]model.Reward, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := []model.Reward{}

	for _, r := range m.rewards {
		if r.UserID == owner {
			res = append(res, r)
		}
	}

	return res, nil
}
