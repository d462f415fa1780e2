package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"petpals/internal/domain/pets"
)

const keyPrefix = "petpals:mirror:"

// commands es el subconjunto de go-redis que usa el mirror (facilita fakes en tests).
type commands interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

// Mirror guarda la última lectura buena de cada pet y de cada listado público.
type Mirror struct {
	client commands
	ttl    time.Duration
	now    func() time.Time
	log    *zap.Logger
}

type recordEntry struct {
	LastUpdated time.Time `json:"lastUpdated"`
	Record      pets.Pet  `json:"record"`
}

type listEntry struct {
	LastUpdated time.Time  `json:"lastUpdated"`
	Items       []pets.Pet `json:"items"`
}

func NewClient(addr, password string, db int) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewMirror(client commands, ttl time.Duration, log *zap.Logger) *Mirror {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mirror{client: client, ttl: ttl, now: time.Now, log: log}
}

func recordKey(id string) string        { return keyPrefix + "pet:" + id }
func listKey(status pets.Status) string { return keyPrefix + "list:" + string(status) }

func (m *Mirror) Put(ctx context.Context, p pets.Pet) error {
	return m.set(ctx, recordKey(p.ID), recordEntry{LastUpdated: m.now(), Record: p})
}

func (m *Mirror) Get(ctx context.Context, id string) (pets.Pet, time.Time, error) {
	var e recordEntry
	if err := m.get(ctx, recordKey(id), &e); err != nil {
		return pets.Pet{}, time.Time{}, err
	}
	return e.Record, e.LastUpdated, nil
}

func (m *Mirror) Delete(ctx context.Context, id string) error {
	if err := m.client.Del(ctx, recordKey(id)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", id, err)
	}
	return nil
}

func (m *Mirror) PutList(ctx context.Context, status pets.Status, items []pets.Pet) error {
	if items == nil {
		items = []pets.Pet{}
	}
	return m.set(ctx, listKey(status), listEntry{LastUpdated: m.now(), Items: items})
}

func (m *Mirror) GetList(ctx context.Context, status pets.Status) ([]pets.Pet, time.Time, error) {
	var e listEntry
	if err := m.get(ctx, listKey(status), &e); err != nil {
		return nil, time.Time{}, err
	}
	return e.Items, e.LastUpdated, nil
}

func (m *Mirror) set(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal mirror value for %s: %w", key, err)
	}
	if err := m.client.Set(ctx, key, payload, m.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (m *Mirror) get(ctx context.Context, key string, dest any) error {
	raw, err := m.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return pets.ErrMirrorMiss
		}
		// Si Redis tampoco responde, para el caller es un miss más.
		m.log.Warn("mirror read failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: %v", pets.ErrMirrorMiss, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%w: unmarshal %s: %v", pets.ErrMirrorMiss, key, err)
	}
	return nil
}
