// Package codec define la forma de documento (camelCase) compartida por los stores
// documentales: columna JSONB en Postgres y documentos de Firestore.
package codec

import (
	"encoding/json"
	"time"

	"petpals/internal/domain/pets"
	"petpals/internal/domain/reunions"
	"petpals/internal/domain/timeline"
)

// RequestDoc es la forma persistida de un pedido de reencuentro.
type RequestDoc struct {
	ID              string     `json:"id"`
	PetID           string     `json:"petId"`
	OriginalOwnerID string     `json:"originalOwnerId"`
	FinderID        string     `json:"finderId"`
	FinderName      string     `json:"finderName,omitempty"`
	FinderEmail     string     `json:"finderEmail,omitempty"`
	FinderPhone     string     `json:"finderPhone,omitempty"`
	Status          string     `json:"status"`
	FoundDate       string     `json:"foundDate,omitempty"`
	FoundTime       string     `json:"foundTime,omitempty"`
	FoundLocation   string     `json:"foundLocation,omitempty"`
	CurrentLocation string     `json:"currentLocation,omitempty"`
	Message         string     `json:"message"`
	RequestedAt     time.Time  `json:"requestedAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
	ResolvedAt      *time.Time `json:"resolvedAt,omitempty"`
	ResolvedBy      string     `json:"resolvedBy,omitempty"`
	ResolutionNote  string     `json:"resolutionNote,omitempty"`
}

func FromRequest(r reunions.Request) RequestDoc {
	return RequestDoc{
		ID:              r.ID,
		PetID:           r.PetID,
		OriginalOwnerID: r.OriginalOwnerID,
		FinderID:        r.FinderID,
		FinderName:      r.FinderName,
		FinderEmail:     r.FinderEmail,
		FinderPhone:     r.FinderPhone,
		Status:          string(r.Status),
		FoundDate:       r.FoundDate,
		FoundTime:       r.FoundTime,
		FoundLocation:   r.FoundLocation,
		CurrentLocation: r.CurrentLocation,
		Message:         r.Message,
		RequestedAt:     r.RequestedAt,
		UpdatedAt:       r.UpdatedAt,
		ResolvedAt:      r.ResolvedAt,
		ResolvedBy:      r.ResolvedBy,
		ResolutionNote:  r.ResolutionNote,
	}
}

func (d RequestDoc) Request() reunions.Request {
	return reunions.Request{
		ID:              d.ID,
		PetID:           d.PetID,
		OriginalOwnerID: d.OriginalOwnerID,
		FinderID:        d.FinderID,
		FinderName:      d.FinderName,
		FinderEmail:     d.FinderEmail,
		FinderPhone:     d.FinderPhone,
		Status:          reunions.Status(d.Status),
		FoundDate:       d.FoundDate,
		FoundTime:       d.FoundTime,
		FoundLocation:   d.FoundLocation,
		CurrentLocation: d.CurrentLocation,
		Message:         d.Message,
		RequestedAt:     d.RequestedAt,
		UpdatedAt:       d.UpdatedAt,
		ResolvedAt:      d.ResolvedAt,
		ResolvedBy:      d.ResolvedBy,
		ResolutionNote:  d.ResolutionNote,
	}
}

// EntryDoc es la forma persistida de una entrada del timeline.
type EntryDoc struct {
	ID         string    `json:"id"`
	PetID      string    `json:"petId"`
	From       string    `json:"from"`
	To         string    `json:"to"`
	ActorID    string    `json:"actorId"`
	ActorRole  string    `json:"actorRole"`
	OccurredAt time.Time `json:"occurredAt"`
	Note       string    `json:"note,omitempty"`
}

func FromEntry(e timeline.Entry) EntryDoc {
	return EntryDoc{
		ID:         e.ID,
		PetID:      e.PetID,
		From:       string(e.From),
		To:         string(e.To),
		ActorID:    e.ActorID,
		ActorRole:  string(e.ActorRole),
		OccurredAt: e.OccurredAt,
		Note:       e.Note,
	}
}

func (d EntryDoc) Entry() timeline.Entry {
	return timeline.Entry{
		ID:         d.ID,
		PetID:      d.PetID,
		From:       pets.Status(d.From),
		To:         pets.Status(d.To),
		ActorID:    d.ActorID,
		ActorRole:  pets.Role(d.ActorRole),
		OccurredAt: d.OccurredAt,
		Note:       d.Note,
	}
}

// ToMap pasa v por JSON para obtener el documento plano (Firestore lo guarda así).
func ToMap(v any) (map[string]any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// FromMap es la inversa de ToMap.
func FromMap(m map[string]any, dst any) error {
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
