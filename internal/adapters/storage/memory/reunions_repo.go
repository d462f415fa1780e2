package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"petpals/internal/domain/reunions"
)

type reunionRepo struct {
	mu   sync.RWMutex
	byID map[string]reunions.Request
}

func NewReunionRepo() reunions.Repository {
	return &reunionRepo{
		byID: make(map[string]reunions.Request),
	}
}

func (r *reunionRepo) Create(ctx context.Context, req reunions.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(req.ID) == "" {
		return errors.New("request id required")
	}
	if _, exists := r.byID[req.ID]; exists {
		return errors.New("request already exists")
	}
	r.byID[req.ID] = req
	return nil
}

func (r *reunionRepo) Update(ctx context.Context, req reunions.Request) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[req.ID]; !exists {
		return reunions.ErrNotFound
	}
	r.byID[req.ID] = req
	return nil
}

func (r *reunionRepo) GetByID(ctx context.Context, id string) (reunions.Request, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	req, ok := r.byID[id]
	if !ok {
		return reunions.Request{}, reunions.ErrNotFound
	}
	return req, nil
}

func (r *reunionRepo) ListByPet(ctx context.Context, petID string) ([]reunions.Request, error) {
	return r.list(func(req reunions.Request) bool { return req.PetID == petID }), nil
}

func (r *reunionRepo) ListByOwner(ctx context.Context, ownerID string) ([]reunions.Request, error) {
	return r.list(func(req reunions.Request) bool { return req.OriginalOwnerID == ownerID }), nil
}

func (r *reunionRepo) ListByFinder(ctx context.Context, finderID string) ([]reunions.Request, error) {
	return r.list(func(req reunions.Request) bool { return req.FinderID == finderID }), nil
}

func (r *reunionRepo) list(match func(reunions.Request) bool) []reunions.Request {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]reunions.Request, 0)
	for _, req := range r.byID {
		if match(req) {
			out = append(out, req)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].RequestedAt.Before(out[j].RequestedAt)
	})
	return out
}
