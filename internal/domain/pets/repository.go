package pets

import (
	"context"
	"errors"
)

// ErrNotFound lo devuelven todos los adapters cuando el id no existe.
var ErrNotFound = errors.New("pet not found")

type Repository interface {
	Create(ctx context.Context, p Pet) error
	Update(ctx context.Context, p Pet) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)
	ListByStatus(ctx context.Context, status Status) ([]Pet, error)
}
