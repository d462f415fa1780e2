package reunions

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petpals/internal/domain/pets"
	"petpals/internal/platform/apperr"
	"petpals/internal/platform/metrics"
)

// PetReunifier es lo que reunions necesita de pets (sin importar el Service concreto).
type PetReunifier interface {
	GetByID(ctx context.Context, id string) (pets.Pet, error)
	ForceReunite(ctx context.Context, id string, actor pets.Actor, note string) (pets.Pet, error)
}

type Service struct {
	repo     Repository
	pets     PetReunifier
	notifier Notifier
	now      func() time.Time
	log      *zap.Logger
	metrics  *metrics.Metrics
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifier = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(repo Repository, petsSvc PetReunifier, opts ...Option) *Service {
	s := &Service{
		repo:     repo,
		pets:     petsSvc,
		notifier: NopNotifier{},
		now:      time.Now,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// HandleTransition es el observer de pets. Solo actúa en lost -> found_by_community:
// abre un pedido pending con el id que ya quedó en el claim del pet.
func (s *Service) HandleTransition(ctx context.Context, ev pets.TransitionEvent) error {
	if ev.To != pets.StatusFoundByCommunity {
		return nil
	}

	p := ev.Pet
	now := ev.At
	if now.IsZero() {
		now = s.now()
	}

	id := uuid.NewString()
	if p.Claim != nil && p.Claim.RequestID != "" {
		id = p.Claim.RequestID
	}

	req := Request{
		ID:              id,
		PetID:           p.ID,
		OriginalOwnerID: p.OwnerID,
		FinderID:        ev.Actor.ID,
		FinderName:      ev.Actor.Name,
		FinderEmail:     ev.Actor.Email,
		Status:          StatusPending,
		Message:         strings.TrimSpace(ev.Note),
		RequestedAt:     now,
		UpdatedAt:       now,
	}
	if f := p.Found; f != nil {
		req.FoundDate = f.FoundDate
		req.FoundTime = f.FoundTime
		req.FoundLocation = f.FoundLocation
		req.CurrentLocation = f.CurrentLocation
		req.FinderPhone = f.ContactPhone
		if req.FinderName == "" {
			req.FinderName = f.ContactName
		}
		if req.FinderEmail == "" {
			req.FinderEmail = f.ContactEmail
		}
	}
	if req.Message == "" {
		req.Message = fmt.Sprintf("Pet found by %s", displayName(req.FinderName, req.FinderID))
	}

	// Sin rollback: si esto falla el pet ya quedó en found_by_community.
	if err := s.repo.Create(ctx, req); err != nil {
		return apperr.Storage("reunions.create", err)
	}

	s.log.Info("reunion request opened",
		zap.String("request_id", req.ID),
		zap.String("pet_id", req.PetID),
		zap.String("finder_id", req.FinderID),
	)

	s.notify(ctx, "request_opened", Notice{
		Request: req,
		PetName: p.Name,
		ToEmail: p.OwnerEmail,
		ToName:  p.OwnerName,
	})
	return nil
}

// Approve: pedido approved, pet forzado a reunited y el resto de pedidos pending
// del mismo pet se rechazan solos.
func (s *Service) Approve(ctx context.Context, requestID string, actor pets.Actor) (Request, error) {
	req, err := s.loadForResolution(ctx, requestID, actor)
	if err != nil {
		s.metrics.ObserveResolution(string(DecisionApprove), string(apperr.KindOf(err)))
		return Request{}, err
	}

	now := s.now()
	resolved := resolve(req, StatusApproved, actor.ID, "", now)

	// Primero el pedido (protegido por el chequeo de pending), después el pet.
	if err := s.repo.Update(ctx, resolved); err != nil {
		s.metrics.ObserveResolution(string(DecisionApprove), string(apperr.KindStorage))
		return Request{}, apperr.Storage("reunions.update", err)
	}

	p, err := s.pets.ForceReunite(ctx, resolved.PetID, actor, "reunion request "+resolved.ID+" approved")
	if err != nil {
		s.metrics.ObserveResolution(string(DecisionApprove), string(apperr.KindOf(err)))
		return resolved, err
	}
	s.metrics.ObserveResolution(string(DecisionApprove), "ok")

	s.log.Info("reunion request approved",
		zap.String("request_id", resolved.ID),
		zap.String("pet_id", resolved.PetID),
	)

	s.notify(ctx, "request_approved", finderNotice(resolved, p.Name))
	s.rejectSiblings(ctx, resolved, actor.ID, p.Name, now)

	return resolved, nil
}

// Reject solo cambia el pedido; el pet queda como está.
func (s *Service) Reject(ctx context.Context, requestID string, actor pets.Actor, note string) (Request, error) {
	req, err := s.loadForResolution(ctx, requestID, actor)
	if err != nil {
		s.metrics.ObserveResolution(string(DecisionReject), string(apperr.KindOf(err)))
		return Request{}, err
	}

	resolved := resolve(req, StatusRejected, actor.ID, note, s.now())
	if err := s.repo.Update(ctx, resolved); err != nil {
		s.metrics.ObserveResolution(string(DecisionReject), string(apperr.KindStorage))
		return Request{}, apperr.Storage("reunions.update", err)
	}
	s.metrics.ObserveResolution(string(DecisionReject), "ok")

	s.log.Info("reunion request rejected",
		zap.String("request_id", resolved.ID),
		zap.String("pet_id", resolved.PetID),
	)

	petName := ""
	if p, err := s.pets.GetByID(ctx, resolved.PetID); err == nil {
		petName = p.Name
	}
	s.notify(ctx, "request_rejected", finderNotice(resolved, petName))

	return resolved, nil
}

// Get: solo el dueño original o el finder del pedido.
func (s *Service) Get(ctx context.Context, requestID string, actor pets.Actor) (Request, error) {
	if !actor.Authenticated() {
		return Request{}, apperr.Unauthenticated("login required")
	}
	req, err := s.getByID(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if actor.ID != req.OriginalOwnerID && actor.ID != req.FinderID {
		return Request{}, apperr.Forbidden("only the owner or the finder can view this request")
	}
	return req, nil
}

// ListByPet: el dueño ve todos; cualquier otro usuario ve solo los suyos.
func (s *Service) ListByPet(ctx context.Context, petID string, actor pets.Actor) ([]Request, error) {
	if !actor.Authenticated() {
		return nil, apperr.Unauthenticated("login required")
	}
	p, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListByPet(ctx, p.ID)
	if err != nil {
		return nil, apperr.Storage("reunions.list_by_pet", err)
	}
	if actor.ID == p.OwnerID {
		return sortByRequestedAt(items), nil
	}

	out := make([]Request, 0)
	for _, r := range items {
		if r.FinderID == actor.ID {
			out = append(out, r)
		}
	}
	return sortByRequestedAt(out), nil
}

type Role string

const (
	RoleOwner  Role = "owner"
	RoleFinder Role = "finder"
)

// ListMine: pedidos recibidos (owner) o enviados (finder).
func (s *Service) ListMine(ctx context.Context, actor pets.Actor, role Role) ([]Request, error) {
	if !actor.Authenticated() {
		return nil, apperr.Unauthenticated("login required")
	}

	var (
		items []Request
		err   error
	)
	switch role {
	case RoleOwner, "":
		items, err = s.repo.ListByOwner(ctx, actor.ID)
	case RoleFinder:
		items, err = s.repo.ListByFinder(ctx, actor.ID)
	default:
		return nil, apperr.Validation("role", "must be owner or finder")
	}
	if err != nil {
		return nil, apperr.Storage("reunions.list_mine", err)
	}
	return sortByRequestedAt(items), nil
}

func (s *Service) loadForResolution(ctx context.Context, requestID string, actor pets.Actor) (Request, error) {
	if !actor.Authenticated() {
		return Request{}, apperr.Unauthenticated("login required")
	}
	req, err := s.getByID(ctx, requestID)
	if err != nil {
		return Request{}, err
	}
	if actor.ID != req.OriginalOwnerID {
		return Request{}, apperr.Forbidden("only the original owner can resolve this request")
	}
	if req.Status.Resolved() {
		return Request{}, apperr.Conflict("reunion request already resolved")
	}
	return req, nil
}

func (s *Service) getByID(ctx context.Context, id string) (Request, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Request{}, apperr.NotFound("reunion request not found", ErrNotFound)
	}
	req, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Request{}, apperr.NotFound("reunion request not found", err)
		}
		return Request{}, apperr.Storage("reunions.get", err)
	}
	return req, nil
}

func (s *Service) rejectSiblings(ctx context.Context, approved Request, ownerID, petName string, now time.Time) {
	items, err := s.repo.ListByPet(ctx, approved.PetID)
	if err != nil {
		s.log.Warn("could not list sibling requests", zap.String("pet_id", approved.PetID), zap.Error(err))
		return
	}
	for _, r := range items {
		if r.ID == approved.ID || r.Status != StatusPending {
			continue
		}
		rejected := resolve(r, StatusRejected, ownerID, "another reunion request was approved", now)
		// best-effort
		if err := s.repo.Update(ctx, rejected); err != nil {
			s.log.Warn("could not auto-reject sibling request", zap.String("request_id", r.ID), zap.Error(err))
			continue
		}
		s.notify(ctx, "request_rejected", finderNotice(rejected, petName))
	}
}

func (s *Service) notify(ctx context.Context, template string, n Notice) {
	if strings.TrimSpace(n.ToEmail) == "" {
		s.metrics.ObserveNotification(template, "skipped")
		return
	}

	var err error
	if template == "request_opened" {
		err = s.notifier.RequestOpened(ctx, n)
	} else {
		err = s.notifier.RequestResolved(ctx, n)
	}
	if err != nil {
		s.metrics.ObserveNotification(template, "failed")
		s.log.Warn("reunion notification failed",
			zap.String("template", template),
			zap.String("request_id", n.Request.ID),
			zap.Error(err),
		)
		return
	}
	s.metrics.ObserveNotification(template, "sent")
}

func resolve(r Request, st Status, by, note string, now time.Time) Request {
	r.Status = st
	r.ResolvedAt = &now
	r.ResolvedBy = by
	r.ResolutionNote = strings.TrimSpace(note)
	r.UpdatedAt = now
	return r
}

func finderNotice(r Request, petName string) Notice {
	return Notice{
		Request: r,
		PetName: petName,
		ToEmail: r.FinderEmail,
		ToName:  r.FinderName,
	}
}

func displayName(name, id string) string {
	if strings.TrimSpace(name) != "" {
		return strings.TrimSpace(name)
	}
	return id
}

func sortByRequestedAt(items []Request) []Request {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].RequestedAt.Before(items[j].RequestedAt)
	})
	return items
}
