package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"petpals/internal/domain/pets"
	"petpals/internal/domain/reunions"
)

func TestPetMapKeepsStoredFieldNames(t *testing.T) {
	p := pets.Pet{
		ID:      "p1",
		Status:  pets.StatusLost,
		OwnerID: "u1",
		Profile: pets.Profile{Name: "Milo", MicrochipID: "123"},
		Lost:    &pets.LostReport{LastSeenLocation: "Main St"},
	}

	m, err := ToMap(p)
	require.NoError(t, err)
	assert.Equal(t, "lost", m["status"])
	assert.Equal(t, "u1", m["ownerId"])
	assert.Equal(t, "123", m["microchipId"])

	var back pets.Pet
	require.NoError(t, FromMap(m, &back))
	assert.Equal(t, "Main St", back.Lost.LastSeenLocation)
	assert.Equal(t, "Milo", back.Name)
}

func TestRequestDocConversion(t *testing.T) {
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r := reunions.Request{
		ID:              "r1",
		PetID:           "p1",
		OriginalOwnerID: "owner",
		FinderID:        "finder",
		Status:          reunions.StatusPending,
		FoundLocation:   "Park Ave",
		Message:         "Pet found by Ana",
		RequestedAt:     now,
		UpdatedAt:       now,
	}

	got := FromRequest(r).Request()
	assert.Equal(t, r, got)
}
