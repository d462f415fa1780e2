package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"petpals/internal/adapters/storage/codec"
	"petpals/internal/domain/timeline"
)

type TimelineRepo struct {
	col *firestore.CollectionRef
}

func (r *TimelineRepo) Create(ctx context.Context, e timeline.Entry) error {
	data, err := codec.ToMap(codec.FromEntry(e))
	if err != nil {
		return fmt.Errorf("encode timeline entry: %w", err)
	}
	_, err = r.col.Doc(e.ID).Create(ctx, data)
	return err
}

// ListByPet consulta solo por petId (sin índice compuesto) y filtra/ordena en memoria.
func (r *TimelineRepo) ListByPet(ctx context.Context, petID string, filter timeline.ListFilter) ([]timeline.Entry, error) {
	it := r.col.Where("petId", "==", petID).Documents(ctx)
	defer it.Stop()

	out := make([]timeline.Entry, 0)
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		var d codec.EntryDoc
		if err := codec.FromMap(snap.Data(), &d); err != nil {
			return nil, fmt.Errorf("decode timeline entry %s: %w", snap.Ref.ID, err)
		}
		e := d.Entry()
		if filter.Match(e) {
			out = append(out, e)
		}
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}
