package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"petpals/internal/adapters/storage/codec"
	"petpals/internal/domain/pets"
)

type PetsRepo struct {
	client *firestore.Client
	col    *firestore.CollectionRef
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	data, err := codec.ToMap(p)
	if err != nil {
		return fmt.Errorf("encode pet: %w", err)
	}
	_, err = r.col.Doc(p.ID).Create(ctx, data)
	return err
}

// Update reemplaza el documento entero; falla con ErrNotFound si no existe.
func (r *PetsRepo) Update(ctx context.Context, p pets.Pet) error {
	data, err := codec.ToMap(p)
	if err != nil {
		return fmt.Errorf("encode pet: %w", err)
	}

	ref := r.col.Doc(p.ID)
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(ref); err != nil {
			if isNotFound(err) {
				return errNotFoundInTx
			}
			return err
		}
		return tx.Set(ref, data)
	})
	if errors.Is(err, errNotFoundInTx) {
		return pets.ErrNotFound
	}
	return err
}

func (r *PetsRepo) Delete(ctx context.Context, id string) error {
	_, err := r.col.Doc(id).Delete(ctx, firestore.Exists)
	if isNotFound(err) {
		return pets.ErrNotFound
	}
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}
	snap, err := r.col.Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return decodePet(snap)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	items, err := r.query(ctx, r.col.Where("ownerId", "==", ownerID))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	return items, nil
}

func (r *PetsRepo) ListByStatus(ctx context.Context, st pets.Status) ([]pets.Pet, error) {
	items, err := r.query(ctx, r.col.Where("status", "==", string(st)))
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (r *PetsRepo) query(ctx context.Context, q firestore.Query) ([]pets.Pet, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	out := make([]pets.Pet, 0)
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		p, err := decodePet(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func decodePet(snap *firestore.DocumentSnapshot) (pets.Pet, error) {
	var p pets.Pet
	if err := codec.FromMap(snap.Data(), &p); err != nil {
		return pets.Pet{}, fmt.Errorf("decode pet %s: %w", snap.Ref.ID, err)
	}
	// Docs viejos de la app web no guardaban el id adentro.
	if p.ID == "" {
		p.ID = snap.Ref.ID
	}
	return p, nil
}
