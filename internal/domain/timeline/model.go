package timeline

import (
	"time"

	"petpals/internal/domain/pets"
)

// Entry es un cambio de status aplicado. Append-only: no se edita ni se borra.
type Entry struct {
	ID    string
	PetID string

	From pets.Status
	To   pets.Status

	ActorID   string
	ActorRole pets.Role

	OccurredAt time.Time
	Note       string
}
