package timeline

import (
	"context"
	"time"

	"petpals/internal/domain/pets"
)

type Repository interface {
	Create(ctx context.Context, e Entry) error
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Entry, error)
}

type ListFilter struct {
	To    []pets.Status // solo entradas hacia estos status
	From  *time.Time
	Until *time.Time
	Limit int
}

// Match lo usan los adapters que filtran en memoria.
func (f ListFilter) Match(e Entry) bool {
	if len(f.To) > 0 {
		ok := false
		for _, st := range f.To {
			if e.To == st {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.From != nil && e.OccurredAt.Before(*f.From) {
		return false
	}
	if f.Until != nil && e.OccurredAt.After(*f.Until) {
		return false
	}
	return true
}
