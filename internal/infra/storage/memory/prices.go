package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m04kA/SMC-TurfBookingService/internal/domain"
	pricesRepo "github.com/m04kA/SMC-TurfBookingService/internal/infra/storage/prices"
)

// PriceStore переопределения цен в памяти
type PriceStore struct {
	mu        sync.RWMutex
	overrides map[int]domain.PriceOverride
}

func NewPriceStore() *PriceStore {
	return &PriceStore{overrides: make(map[int]domain.PriceOverride)}
}

func (s *PriceStore) GetAll(_ context.Context) ([]domain.PriceOverride, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.PriceOverride, 0, len(s.overrides))
	for _, o := range s.overrides {
		out = append(out, o)
	}
	sort.Slice(out, func(i, j int) bool {
		return domain.ChronologicalKey(out[i].Hour) < domain.ChronologicalKey(out[j].Hour)
	})
	return out, nil
}

func (s *PriceStore) Upsert(_ context.Context, hour, price int) (*domain.PriceOverride, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o := domain.PriceOverride{Hour: hour, Price: price, UpdatedAt: time.Now()}
	s.overrides[hour] = o
	return &o, nil
}

func (s *PriceStore) Delete(_ context.Context, hour int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.overrides[hour]; !ok {
		return pricesRepo.ErrOverrideNotFound
	}
	delete(s.overrides, hour)
	return nil
}

func (s *PriceStore) DeleteAll(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(len(s.overrides))
	s.overrides = make(map[int]domain.PriceOverride)
	return n, nil
}
