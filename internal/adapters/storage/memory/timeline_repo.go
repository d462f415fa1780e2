package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"petpals/internal/domain/timeline"
)

type timelineRepo struct {
	mu    sync.RWMutex
	byPet map[string][]timeline.Entry
}

func NewTimelineRepo() timeline.Repository {
	return &timelineRepo{
		byPet: make(map[string][]timeline.Entry),
	}
}

func (r *timelineRepo) Create(ctx context.Context, e timeline.Entry) error {
	if e.ID == "" || e.PetID == "" {
		return errors.New("entry id and pet id required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.byPet[e.PetID] = append(r.byPet[e.PetID], e)
	return nil
}

func (r *timelineRepo) ListByPet(ctx context.Context, petID string, filter timeline.ListFilter) ([]timeline.Entry, error) {
	r.mu.RLock()
	items := r.byPet[petID]
	out := make([]timeline.Entry, 0, len(items))
	for _, e := range items {
		if filter.Match(e) {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})

	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
