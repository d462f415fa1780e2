package firestore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"petpals/internal/adapters/storage/codec"
	"petpals/internal/domain/reunions"
)

type ReunionsRepo struct {
	client *firestore.Client
	col    *firestore.CollectionRef
}

func (r *ReunionsRepo) Create(ctx context.Context, req reunions.Request) error {
	data, err := codec.ToMap(codec.FromRequest(req))
	if err != nil {
		return fmt.Errorf("encode reunion request: %w", err)
	}
	_, err = r.col.Doc(req.ID).Create(ctx, data)
	return err
}

func (r *ReunionsRepo) Update(ctx context.Context, req reunions.Request) error {
	data, err := codec.ToMap(codec.FromRequest(req))
	if err != nil {
		return fmt.Errorf("encode reunion request: %w", err)
	}

	ref := r.col.Doc(req.ID)
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
		return reunions.ErrNotFound
	}
	return err
}

func (r *ReunionsRepo) GetByID(ctx context.Context, id string) (reunions.Request, error) {
	if id == "" {
		return reunions.Request{}, reunions.ErrNotFound
	}
	snap, err := r.col.Doc(id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return reunions.Request{}, reunions.ErrNotFound
		}
		return reunions.Request{}, err
	}
	return decodeRequest(snap)
}

func (r *ReunionsRepo) ListByPet(ctx context.Context, petID string) ([]reunions.Request, error) {
	return r.query(ctx, r.col.Where("petId", "==", petID))
}

func (r *ReunionsRepo) ListByOwner(ctx context.Context, ownerID string) ([]reunions.Request, error) {
	return r.query(ctx, r.col.Where("originalOwnerId", "==", ownerID))
}

func (r *ReunionsRepo) ListByFinder(ctx context.Context, finderID string) ([]reunions.Request, error) {
	return r.query(ctx, r.col.Where("finderId", "==", finderID))
}

func (r *ReunionsRepo) query(ctx context.Context, q firestore.Query) ([]reunions.Request, error) {
	it := q.Documents(ctx)
	defer it.Stop()

	out := make([]reunions.Request, 0)
	for {
		snap, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, err
		}
		req, err := decodeRequest(snap)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].RequestedAt.Before(out[j].RequestedAt) })
	return out, nil
}

func decodeRequest(snap *firestore.DocumentSnapshot) (reunions.Request, error) {
	var d codec.RequestDoc
	if err := codec.FromMap(snap.Data(), &d); err != nil {
		return reunions.Request{}, fmt.Errorf("decode reunion request %s: %w", snap.Ref.ID, err)
	}
	if d.ID == "" {
		d.ID = snap.Ref.ID
	}
	return d.Request(), nil
}
