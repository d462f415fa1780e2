package timeline

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"petpals/internal/domain/pets"
	"petpals/internal/platform/apperr"
)

var ErrInvalidInput = errors.New("invalid input")

type Service struct {
	repo Repository
	now  func() time.Time
}

const (
	defaultLimit = 50
	maxLimit     = 200
)

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Record es el observer de pets: una entrada por transición persistida.
func (s *Service) Record(ctx context.Context, ev pets.TransitionEvent) error {
	if strings.TrimSpace(ev.Pet.ID) == "" || !ev.To.Valid() {
		return apperr.Validation("timeline", ErrInvalidInput.Error())
	}

	at := ev.At
	if at.IsZero() {
		at = s.now()
	}

	e := Entry{
		ID:         uuid.NewString(),
		PetID:      ev.Pet.ID,
		From:       ev.From,
		To:         ev.To,
		ActorID:    ev.Actor.ID,
		ActorRole:  ev.ActorRole,
		OccurredAt: at,
		Note:       strings.TrimSpace(ev.Note),
	}

	if err := s.repo.Create(ctx, e); err != nil {
		return apperr.Storage("timeline.create", err)
	}
	return nil
}

func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]Entry, error) {
	petID = strings.TrimSpace(petID)
	if petID == "" {
		return nil, apperr.Validation("petID", "is required")
	}
	switch {
	case filter.Limit <= 0:
		filter.Limit = defaultLimit
	case filter.Limit > maxLimit:
		filter.Limit = maxLimit
	}

	items, err := s.repo.ListByPet(ctx, petID, filter)
	if err != nil {
		return nil, apperr.Storage("timeline.list", err)
	}
	return items, nil
}
