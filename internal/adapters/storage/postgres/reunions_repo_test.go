package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petpals/internal/adapters/storage/codec"
	"petpals/internal/domain/pets"
	"petpals/internal/domain/reunions"
	"petpals/internal/domain/timeline"
)

func sampleRequest() reunions.Request {
	now := time.Date(2024, 5, 2, 9, 30, 0, 0, time.UTC)
	return reunions.Request{
		ID:              "req-1",
		PetID:           "pet-1",
		OriginalOwnerID: "owner-1",
		FinderID:        "finder-1",
		Status:          reunions.StatusPending,
		FoundLocation:   "Park Ave",
		Message:         "Pet found by Ana",
		RequestedAt:     now,
		UpdatedAt:       now,
	}
}

func TestReunionsRepo_CreateAndGet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReunionsRepo(db)
	req := sampleRequest()

	mock.ExpectExec(`INSERT INTO reunited_requests`).
		WithArgs(req.ID, req.PetID, req.OriginalOwnerID, req.FinderID, "pending", sqlmock.AnyArg(), req.RequestedAt, req.UpdatedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))

	doc, err := json.Marshal(codec.FromRequest(req))
	require.NoError(t, err)
	mock.ExpectQuery(`SELECT doc FROM reunited_requests WHERE id = \$1`).
		WithArgs("req-1").
		WillReturnRows(sqlmock.NewRows([]string{"doc"}).AddRow(doc))

	require.NoError(t, repo.Create(context.Background(), req))
	got, err := repo.GetByID(context.Background(), "req-1")
	require.NoError(t, err)
	assert.Equal(t, req, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReunionsRepo_Update_NotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewReunionsRepo(db)

	mock.ExpectExec(`UPDATE reunited_requests`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), sampleRequest())
	assert.ErrorIs(t, err, reunions.ErrNotFound)
}

func TestTimelineRepo_ListByPet_BuildsFilter(t *testing.T) {
	db, mock := newMock(t)
	repo := NewTimelineRepo(db)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT doc FROM pet_timeline WHERE pet_id = \$1 AND to_status IN \(\$2,\$3\) AND occurred_at >= \$4 ORDER BY occurred_at ASC LIMIT \$5`).
		WithArgs("pet-1", "lost", "reunited", from, 10).
		WillReturnRows(sqlmock.NewRows([]string{"doc"}))

	items, err := repo.ListByPet(context.Background(), "pet-1", timeline.ListFilter{
		To:    []pets.Status{pets.StatusLost, pets.StatusReunited},
		From:  &from,
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}
