package timeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petpals/internal/domain/pets"
	"petpals/internal/platform/apperr"
)

type testRepo struct {
	entries   []Entry
	lastLimit int
}

func (r *testRepo) Create(ctx context.Context, e Entry) error {
	r.entries = append(r.entries, e)
	return nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string, f ListFilter) ([]Entry, error) {
	r.lastLimit = f.Limit
	out := make([]Entry, 0)
	for _, e := range r.entries {
		if e.PetID == petID && f.Match(e) {
			out = append(out, e)
		}
	}
	return out, nil
}

func TestRecord(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)
	at := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)

	err := svc.Record(context.Background(), pets.TransitionEvent{
		Pet:       pets.Pet{ID: "pet-1"},
		From:      pets.StatusLost,
		To:        pets.StatusFoundByCommunity,
		Actor:     pets.Actor{ID: "finder-1"},
		ActorRole: pets.RoleCommunity,
		Note:      "  near the park ",
		At:        at,
	})
	require.NoError(t, err)
	require.Len(t, repo.entries, 1)

	e := repo.entries[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, pets.StatusLost, e.From)
	assert.Equal(t, pets.StatusFoundByCommunity, e.To)
	assert.Equal(t, pets.RoleCommunity, e.ActorRole)
	assert.Equal(t, at, e.OccurredAt)
	assert.Equal(t, "near the park", e.Note)
}

func TestRecord_RejectsInvalid(t *testing.T) {
	svc := NewService(&testRepo{})

	err := svc.Record(context.Background(), pets.TransitionEvent{To: pets.StatusLost})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	err = svc.Record(context.Background(), pets.TransitionEvent{Pet: pets.Pet{ID: "pet-1"}, To: "adopted"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestListByPet_LimitAndFilter(t *testing.T) {
	repo := &testRepo{}
	svc := NewService(repo)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, to := range []pets.Status{pets.StatusLost, pets.StatusReunited, pets.StatusLost} {
		require.NoError(t, svc.Record(context.Background(), pets.TransitionEvent{
			Pet: pets.Pet{ID: "pet-1"}, To: to, At: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	_, err := svc.ListByPet(context.Background(), "pet-1", ListFilter{})
	require.NoError(t, err)
	assert.Equal(t, defaultLimit, repo.lastLimit)

	_, err = svc.ListByPet(context.Background(), "pet-1", ListFilter{Limit: 10_000})
	require.NoError(t, err)
	assert.Equal(t, maxLimit, repo.lastLimit)

	items, err := svc.ListByPet(context.Background(), "pet-1", ListFilter{To: []pets.Status{pets.StatusLost}})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	from := base.Add(30 * time.Minute)
	items, err = svc.ListByPet(context.Background(), "pet-1", ListFilter{From: &from})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	_, err = svc.ListByPet(context.Background(), " ", ListFilter{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
