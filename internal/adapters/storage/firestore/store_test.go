package firestore

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petpals/internal/domain/pets"
	"petpals/internal/domain/reunions"
	"petpals/internal/domain/timeline"
)

// Estos tests corren solo contra el emulador (FIRESTORE_EMULATOR_HOST).
func newTestStore(t *testing.T) *Store {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "petpals-test")
	require.NoError(t, err)
	s := New(client)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPetsRepo_RoundTrip(t *testing.T) {
	s := newTestStore(t)
	repo := s.Pets()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Millisecond)
	owner := "owner-" + uuid.NewString()
	p := pets.Pet{
		ID:        uuid.NewString(),
		Status:    pets.StatusRegistered,
		OwnerID:   owner,
		Profile:   pets.Profile{Name: "Milo"},
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, p))

	p.Status = pets.StatusLost
	p.Lost = &pets.LostReport{LastSeenLocation: "Main St"}
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, pets.StatusLost, got.Status)
	assert.Equal(t, "Main St", got.Lost.LastSeenLocation)

	mine, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, repo.Delete(ctx, p.ID))
	_, err = repo.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestPetsRepo_UpdateMissing(t *testing.T) {
	s := newTestStore(t)
	err := s.Pets().Update(context.Background(), pets.Pet{ID: uuid.NewString(), Status: pets.StatusLost})
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestReunionsAndTimeline(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	petID := uuid.NewString()
	now := time.Now().UTC()

	req := reunions.Request{
		ID:              uuid.NewString(),
		PetID:           petID,
		OriginalOwnerID: "owner",
		FinderID:        "finder",
		Status:          reunions.StatusPending,
		RequestedAt:     now,
		UpdatedAt:       now,
	}
	require.NoError(t, s.Reunions().Create(ctx, req))

	byPet, err := s.Reunions().ListByPet(ctx, petID)
	require.NoError(t, err)
	require.Len(t, byPet, 1)
	assert.Equal(t, reunions.StatusPending, byPet[0].Status)

	require.NoError(t, s.Timeline().Create(ctx, timeline.Entry{
		ID: uuid.NewString(), PetID: petID, From: pets.StatusRegistered, To: pets.StatusLost, OccurredAt: now,
	}))
	entries, err := s.Timeline().ListByPet(ctx, petID, timeline.ListFilter{Limit: 10})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
