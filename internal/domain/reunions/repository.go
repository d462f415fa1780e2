package reunions

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("reunion request not found")

type Repository interface {
	Create(ctx context.Context, req Request) error
	Update(ctx context.Context, req Request) error
	GetByID(ctx context.Context, id string) (Request, error)
	ListByPet(ctx context.Context, petID string) ([]Request, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Request, error)
	ListByFinder(ctx context.Context, finderID string) ([]Request, error)
}
