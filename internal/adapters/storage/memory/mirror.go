package memory

import (
	"context"
	"sync"
	"time"

	"petpals/internal/domain/pets"
)

// Mirror es el mirror en proceso; sirve para dev y tests sin Redis.
type Mirror struct {
	mu      sync.RWMutex
	now     func() time.Time
	records map[string]mirrorEntry
	lists   map[pets.Status]mirrorList
}

type mirrorEntry struct {
	pet         pets.Pet
	lastUpdated time.Time
}

type mirrorList struct {
	items       []pets.Pet
	lastUpdated time.Time
}

func NewMirror() *Mirror {
	return &Mirror{
		now:     time.Now,
		records: make(map[string]mirrorEntry),
		lists:   make(map[pets.Status]mirrorList),
	}
}

func (m *Mirror) Put(ctx context.Context, p pets.Pet) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[p.ID] = mirrorEntry{pet: p, lastUpdated: m.now()}
	return nil
}

func (m *Mirror) Get(ctx context.Context, id string) (pets.Pet, time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.records[id]
	if !ok {
		return pets.Pet{}, time.Time{}, pets.ErrMirrorMiss
	}
	return e.pet, e.lastUpdated, nil
}

func (m *Mirror) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.records, id)
	return nil
}

// PutList reemplaza el listado completo (no hace merge).
func (m *Mirror) PutList(ctx context.Context, status pets.Status, items []pets.Pet) error {
	cp := make([]pets.Pet, len(items))
	copy(cp, items)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lists[status] = mirrorList{items: cp, lastUpdated: m.now()}
	return nil
}

func (m *Mirror) GetList(ctx context.Context, status pets.Status) ([]pets.Pet, time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	l, ok := m.lists[status]
	if !ok {
		return nil, time.Time{}, pets.ErrMirrorMiss
	}
	out := make([]pets.Pet, len(l.items))
	copy(out, l.items)
	return out, l.lastUpdated, nil
}
