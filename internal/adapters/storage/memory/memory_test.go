package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petpals/internal/domain/pets"
	"petpals/internal/domain/reunions"
	"petpals/internal/domain/timeline"
)

func TestPetRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewPetRepo()

	p := pets.Pet{ID: "pet-1", Status: pets.StatusLost, OwnerID: "owner-1"}
	require.NoError(t, repo.Create(ctx, p))
	assert.Error(t, repo.Create(ctx, p))

	got, err := repo.GetByID(ctx, "pet-1")
	require.NoError(t, err)
	assert.Equal(t, p, got)

	lost, err := repo.ListByStatus(ctx, pets.StatusLost)
	require.NoError(t, err)
	assert.Len(t, lost, 1)

	assert.ErrorIs(t, repo.Update(ctx, pets.Pet{ID: "nope"}), pets.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, "pet-1"))
	_, err = repo.GetByID(ctx, "pet-1")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestMirror(t *testing.T) {
	ctx := context.Background()
	m := NewMirror()
	t0 := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return t0 }

	_, _, err := m.Get(ctx, "pet-1")
	assert.ErrorIs(t, err, pets.ErrMirrorMiss)

	require.NoError(t, m.Put(ctx, pets.Pet{ID: "pet-1", Status: pets.StatusLost}))
	got, updated, err := m.Get(ctx, "pet-1")
	require.NoError(t, err)
	assert.Equal(t, pets.StatusLost, got.Status)
	assert.Equal(t, t0, updated)

	items := []pets.Pet{{ID: "a"}, {ID: "b"}}
	require.NoError(t, m.PutList(ctx, pets.StatusLost, items))
	items[0].ID = "mutated"

	list, _, err := m.GetList(ctx, pets.StatusLost)
	require.NoError(t, err)
	assert.Equal(t, "a", list[0].ID, "stored list must be a copy")

	require.NoError(t, m.PutList(ctx, pets.StatusLost, nil))
	list, _, err = m.GetList(ctx, pets.StatusLost)
	require.NoError(t, err)
	assert.Empty(t, list, "PutList replaces the whole list")
}

func TestReunionRepo(t *testing.T) {
	ctx := context.Background()
	repo := NewReunionRepo()

	require.NoError(t, repo.Create(ctx, reunions.Request{ID: "r1", PetID: "pet-1", OriginalOwnerID: "o", FinderID: "f"}))
	require.NoError(t, repo.Create(ctx, reunions.Request{ID: "r2", PetID: "pet-2", OriginalOwnerID: "o", FinderID: "g"}))

	byOwner, err := repo.ListByOwner(ctx, "o")
	require.NoError(t, err)
	assert.Len(t, byOwner, 2)

	byFinder, err := repo.ListByFinder(ctx, "f")
	require.NoError(t, err)
	assert.Len(t, byFinder, 1)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, reunions.ErrNotFound)
}

func TestTimelineRepo_SortAndLimit(t *testing.T) {
	ctx := context.Background()
	repo := NewTimelineRepo()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, timeline.Entry{ID: "2", PetID: "pet-1", To: pets.StatusReunited, OccurredAt: base.Add(time.Hour)}))
	require.NoError(t, repo.Create(ctx, timeline.Entry{ID: "1", PetID: "pet-1", To: pets.StatusLost, OccurredAt: base}))

	items, err := repo.ListByPet(ctx, "pet-1", timeline.ListFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "1", items[0].ID)
}
