package pets

import (
	"context"
	"errors"
	"time"
)

var ErrMirrorMiss = errors.New("mirror miss")

// Mirror es la copia local de lecturas. Solo sirve de fallback cuando el store
// falla; nunca recibe escrituras que el store no haya aceptado.
type Mirror interface {
	Put(ctx context.Context, p Pet) error
	Get(ctx context.Context, id string) (Pet, time.Time, error)
	Delete(ctx context.Context, id string) error
	PutList(ctx context.Context, status Status, items []Pet) error
	GetList(ctx context.Context, status Status) ([]Pet, time.Time, error)
}

// Source indica de dónde salió una lectura.
type Source string

const (
	SourceStore  Source = "store"
	SourceMirror Source = "mirror"
)

// NopMirror siempre falla en lectura; se usa si no hay Redis.
type NopMirror struct{}

func (NopMirror) Put(context.Context, Pet) error { return nil }
func (NopMirror) Get(context.Context, string) (Pet, time.Time, error) {
	return Pet{}, time.Time{}, ErrMirrorMiss
}
func (NopMirror) Delete(context.Context, string) error         { return nil }
func (NopMirror) PutList(context.Context, Status, []Pet) error { return nil }
func (NopMirror) GetList(context.Context, Status) ([]Pet, time.Time, error) {
	return nil, time.Time{}, ErrMirrorMiss
}
