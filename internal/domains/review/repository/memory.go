package repository

import (
	"context"
	"naturekids/internal/domains/review/model"
	"sync"
)

type memoryImpl struct {
	mu      sync.RWMutex
	reviews []model.Review
}

func NewMemory() Ledger {
	return &memoryImpl{}
}

func (m *memoryImpl) Insert(_ context.Context, review model.Review) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.reviews = append(m.reviews, review)

	return nil
}

func (m *memoryImpl) ListByActivity(_ context.Context, activityID int64) ([]model.Review, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := []model.Review{}

	for _, r := range m.reviews {
		if r.ActivityID == activityID {
			res = append(res, r)
		}
	}

	return res, nil
}
