package repository

import (
	"context"
	"naturekids/internal/domains/booking/model"
	"naturekids/shared/timezone"
	"sync"
)

type memoryImpl struct {
	mu       sync.RWMutex
	bookings []model.Booking
}

// NewMemory keeps bookings in process memory, in insertion order.
func NewMemory() Ledger {
	return &memoryImpl{}
}

func (m *memoryImpl) Insert(_ context.Context, booking model.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.bookings = append(m.bookings, booking)

	return nil
}

func (m *memoryImpl) Get(_ context.Context, owner, id string) (model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, b := range m.bookings {
		if b.ID == id && b.UserID == owner {
			return b, nil
		}
	}

	return model.Booking{}, nil
}

func (m *memoryImpl) ListByOwner(_ context.Context, owner string) ([]model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := []model.Booking{}

	for _, b := range m.bookings {
		if b.UserID == owner {
			res = append(res, b)
		}
	}

	return res, nil
}

func (m *memoryImpl) UpdateStatus(_ context.Context, owner, id string, from, to model.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.bookings {
		b := &m.bookings[i]
		if b.ID != id || b.UserID != owner {
			continue
		}

		if b.Status != from {
			return false, nil
		}

		b.Status = to
		b.ModifiedAt = timezone.Now()
		b.ModifiedBy = owner

		return true, nil
	}

	return false, nil
}
