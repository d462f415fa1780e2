package pets

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"petpals/internal/platform/apperr"
	"petpals/internal/platform/metrics"
	"petpals/internal/platform/validation"
)

// TransitionEvent se emite después de persistir un cambio de status.
type TransitionEvent struct {
	Pet       Pet // estado ya persistido
	From      Status
	To        Status
	Actor     Actor
	ActorRole Role
	Note      string
	At        time.Time
}

// TransitionObserver evita que pets importe reunions/timeline (ciclos).
type TransitionObserver func(ctx context.Context, ev TransitionEvent) error

type Service struct {
	repo             Repository
	mirror           Mirror
	now              func() time.Time
	log              *zap.Logger
	metrics          *metrics.Metrics
	legacyFinderCopy bool
	observers        []TransitionObserver
}

type Option func(*Service)

func WithMirror(m Mirror) Option {
	return func(s *Service) {
		if m != nil {
			s.mirror = m
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
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

// WithLegacyFinderCopy además del claim crea el doc duplicado del finder.
func WithLegacyFinderCopy(enabled bool) Option {
	return func(s *Service) { s.legacyFinderCopy = enabled }
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		mirror: NopMirror{},
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnTransition registra un observer. Se llaman en orden de registro.
func (s *Service) OnTransition(obs TransitionObserver) {
	s.observers = append(s.observers, obs)
}

// Register crea una mascota en status registered a nombre del actor.
func (s *Service) Register(ctx context.Context, actor Actor, in Profile) (Pet, error) {
	if !actor.Authenticated() {
		return Pet{}, apperr.Unauthenticated("login required to register a pet")
	}
	in = trimProfile(in)
	if err := validation.Struct(in, ""); err != nil {
		return Pet{}, err
	}

	now := s.now()
	p := Pet{
		ID:         uuid.NewString(),
		Status:     StatusRegistered,
		OwnerID:    actor.ID,
		OwnerName:  actor.Name,
		OwnerEmail: actor.Email,
		Profile:    in,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

type ReportFoundInput struct {
	Profile Profile
	Found   FoundReport
}

// ReportFound publica una mascota encontrada sin dueño conocido.
// El que reporta queda como owner y finder del registro.
func (s *Service) ReportFound(ctx context.Context, actor Actor, in ReportFoundInput) (Pet, error) {
	if !actor.Authenticated() {
		return Pet{}, apperr.Unauthenticated("login required to report a found pet")
	}
	profile := trimProfile(in.Profile)
	if profile.Name == "" {
		// Los reportes de encontrados suelen venir sin nombre.
		profile.Name = "Unknown"
	}
	if err := validation.Struct(profile, ""); err != nil {
		return Pet{}, err
	}
	if err := validation.Struct(in.Found, "foundReport"); err != nil {
		return Pet{}, err
	}

	now := s.now()
	found := in.Found
	p := Pet{
		ID:         uuid.NewString(),
		Status:     StatusFound,
		OwnerID:    actor.ID,
		OwnerName:  actor.Name,
		OwnerEmail: actor.Email,
		FinderID:   actor.ID,
		Profile:    profile,
		Found:      &found,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Get lee del store; si el store falla (no un not-found) cae al mirror.
func (s *Service) Get(ctx context.Context, id string) (Pet, Source, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Pet{}, SourceStore, apperr.NotFound("pet not found", ErrNotFound)
	}

	p, err := s.repo.GetByID(ctx, id)
	if err == nil {
		s.refreshRecord(ctx, p)
		return p, SourceStore, nil
	}
	if errors.Is(err, ErrNotFound) {
		return Pet{}, SourceStore, apperr.NotFound("pet not found", err)
	}

	cached, lastUpdated, merr := s.mirror.Get(ctx, id)
	if merr != nil {
		s.metrics.ObserveMirror("record", "miss")
		return Pet{}, SourceStore, apperr.Storage("pets.get", err)
	}
	s.metrics.ObserveMirror("record", "hit")
	s.log.Warn("store read failed, serving mirror",
		zap.String("pet_id", id),
		zap.Time("mirror_updated_at", lastUpdated),
		zap.Error(err),
	)
	return cached, SourceMirror, nil
}

// GetForViewer aplica la proyección según quién mira.
func (s *Service) GetForViewer(ctx context.Context, id string, viewer Actor) (Pet, Source, error) {
	p, src, err := s.Get(ctx, id)
	if err != nil {
		return Pet{}, src, err
	}
	return Project(p, viewer), src, nil
}

// GetByID sin fallback; lo usan otros módulos que necesitan el dato fresco.
func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	p, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Pet{}, apperr.NotFound("pet not found", err)
		}
		return Pet{}, apperr.Storage("pets.get", err)
	}
	return p, nil
}

type ListFilter struct {
	Status   Status
	Breed    string
	Location string
	Query    string
}

// List devuelve el listado público de un status, filtrado como en las páginas
// de listado (substring sin mayúsculas).
func (s *Service) List(ctx context.Context, f ListFilter) ([]Pet, Source, error) {
	if !f.Status.Public() {
		return nil, SourceStore, apperr.Validation("status", "must be one of lost, found, found_by_community, reunited")
	}

	items, src, err := s.listByStatus(ctx, f.Status)
	if err != nil {
		return nil, src, err
	}
	return filter(items, f), src, nil
}

func (s *Service) listByStatus(ctx context.Context, status Status) ([]Pet, Source, error) {
	items, err := s.repo.ListByStatus(ctx, status)
	if err == nil {
		if perr := s.mirror.PutList(ctx, status, items); perr != nil {
			s.log.Debug("mirror list refresh failed", zap.String("status", string(status)), zap.Error(perr))
		}
		return items, SourceStore, nil
	}

	cached, lastUpdated, merr := s.mirror.GetList(ctx, status)
	if merr != nil {
		s.metrics.ObserveMirror("list", "miss")
		return nil, SourceStore, apperr.Storage("pets.list", err)
	}
	s.metrics.ObserveMirror("list", "hit")
	s.log.Warn("store list failed, serving mirror",
		zap.String("status", string(status)),
		zap.Time("mirror_updated_at", lastUpdated),
		zap.Error(err),
	)
	return cached, SourceMirror, nil
}

func (s *Service) ListByOwner(ctx context.Context, ownerID string) ([]Pet, error) {
	ownerID = strings.TrimSpace(ownerID)
	if ownerID == "" {
		return nil, apperr.Unauthenticated("login required")
	}
	items, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperr.Storage("pets.list_by_owner", err)
	}
	return items, nil
}

// ProfilePatch: nil = no tocar.
type ProfilePatch struct {
	Type            *string
	Name            *string
	Breed           *string
	Age             *string
	Gender          *string
	Color           *string
	Size            *string
	MicrochipID     *string
	Collar          *string
	Description     *string
	SpecialFeatures *string
	ImageURL        *string
}

// UpdateProfile cambia solo datos descriptivos; nunca el status.
func (s *Service) UpdateProfile(ctx context.Context, id string, actor Actor, patch ProfilePatch) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}
	if err := CanEdit(actor, current); err != nil {
		return Pet{}, err
	}

	next := current
	next.Profile = applyPatch(current.Profile, patch)
	if err := validation.Struct(next.Profile, ""); err != nil {
		return Pet{}, err
	}
	next.UpdatedAt = s.now()

	if err := s.update(ctx, "pets.update_profile", next); err != nil {
		return Pet{}, err
	}
	return next, nil
}

// Delete es hard delete, solo owner.
func (s *Service) Delete(ctx context.Context, id string, actor Actor) error {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := CanEdit(actor, current); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, current.ID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("pet not found", err)
		}
		return apperr.Storage("pets.delete", err)
	}
	if err := s.mirror.Delete(ctx, current.ID); err != nil {
		s.log.Debug("mirror delete failed", zap.String("pet_id", current.ID), zap.Error(err))
	}
	return nil
}

// Transition aplica una arista de la tabla y notifica a los observers.
// Si la escritura del pet falla no se emite nada; si falla un observer el pet
// ya quedó actualizado y el error se propaga igual.
func (s *Service) Transition(ctx context.Context, id string, actor Actor, req TransitionRequest) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	next, err := Apply(current, actor, req, now)
	if err != nil {
		s.metrics.ObserveTransition(string(current.Status), string(req.To), string(apperr.KindOf(err)))
		return Pet{}, err
	}

	if next.Status == StatusFoundByCommunity {
		// El id del pedido de reencuentro se fija acá para no reescribir el pet después.
		next.Claim.RequestID = uuid.NewString()
	}

	if err := s.update(ctx, "pets.transition", next); err != nil {
		s.metrics.ObserveTransition(string(current.Status), string(req.To), string(apperr.KindStorage))
		return Pet{}, err
	}
	s.metrics.ObserveTransition(string(current.Status), string(next.Status), "ok")

	s.log.Info("pet status changed",
		zap.String("pet_id", next.ID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next.Status)),
		zap.String("actor_id", actor.ID),
	)

	if next.Status == StatusFoundByCommunity && s.legacyFinderCopy {
		if err := s.createFinderCopy(ctx, next, actor, now); err != nil {
			return next, err
		}
	}

	ev := TransitionEvent{
		Pet:       next,
		From:      current.Status,
		To:        next.Status,
		Actor:     actor,
		ActorRole: roleFor(next.Status),
		Note:      strings.TrimSpace(req.Note),
		At:        now,
	}
	if err := s.emit(ctx, ev); err != nil {
		return next, err
	}
	return next, nil
}

// ForceReunite lo usa la aprobación de un pedido: no pasa por la tabla.
func (s *Service) ForceReunite(ctx context.Context, id string, actor Actor, note string) (Pet, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return Pet{}, err
	}

	now := s.now()
	next := current
	next.Status = StatusReunited
	next.ReunitedAt = &now
	next.UpdatedAt = now

	if err := s.update(ctx, "pets.force_reunite", next); err != nil {
		return Pet{}, err
	}
	s.metrics.ObserveTransition(string(current.Status), string(StatusReunited), "forced")

	ev := TransitionEvent{
		Pet:       next,
		From:      current.Status,
		To:        StatusReunited,
		Actor:     actor,
		ActorRole: RoleSystem,
		Note:      note,
		At:        now,
	}
	if err := s.emit(ctx, ev); err != nil {
		return next, err
	}
	return next, nil
}

// RefreshMirror relee los listados públicos; lo dispara el cron.
func (s *Service) RefreshMirror(ctx context.Context) error {
	var errs []error
	for _, st := range PublicStatuses {
		items, err := s.repo.ListByStatus(ctx, st)
		if err != nil {
			errs = append(errs, apperr.Storage("pets.list", err))
			continue
		}
		if err := s.mirror.PutList(ctx, st, items); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) createFinderCopy(ctx context.Context, original Pet, finder Actor, now time.Time) error {
	cp := Pet{
		ID:              uuid.NewString(),
		Status:          StatusFound,
		OwnerID:         finder.ID,
		OwnerName:       finder.Name,
		OwnerEmail:      finder.Email,
		FinderID:        finder.ID,
		Profile:         original.Profile,
		Found:           original.Found,
		OriginalPetID:   original.ID,
		OriginalOwnerID: original.OwnerID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	return s.create(ctx, cp)
}

func (s *Service) emit(ctx context.Context, ev TransitionEvent) error {
	var errs []error
	for _, obs := range s.observers {
		if err := obs(ctx, ev); err != nil {
			s.log.Error("transition observer failed",
				zap.String("pet_id", ev.Pet.ID),
				zap.String("to", string(ev.To)),
				zap.Error(err),
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (s *Service) create(ctx context.Context, p Pet) error {
	if !p.Status.Valid() {
		return apperr.Validation("status", "invalid status")
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return apperr.Storage("pets.create", err)
	}
	s.refreshRecord(ctx, p)
	return nil
}

func (s *Service) update(ctx context.Context, op string, p Pet) error {
	if !p.Status.Valid() {
		return apperr.Validation("status", "invalid status")
	}
	if err := s.repo.Update(ctx, p); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("pet not found", err)
		}
		return apperr.Storage(op, err)
	}
	s.refreshRecord(ctx, p)
	return nil
}

func (s *Service) refreshRecord(ctx context.Context, p Pet) {
	if err := s.mirror.Put(ctx, p); err != nil {
		s.log.Debug("mirror refresh failed", zap.String("pet_id", p.ID), zap.Error(err))
	}
}

func filter(items []Pet, f ListFilter) []Pet {
	breed := strings.ToLower(strings.TrimSpace(f.Breed))
	loc := strings.ToLower(strings.TrimSpace(f.Location))
	q := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]Pet, 0, len(items))
	for _, p := range items {
		if breed != "" && !strings.Contains(strings.ToLower(p.Breed), breed) {
			continue
		}
		if loc != "" && !containsAny(loc, locations(p)...) {
			continue
		}
		if q != "" && !containsAny(q, p.Name, p.Breed, p.Color, p.Description, p.SpecialFeatures) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func locations(p Pet) []string {
	var out []string
	if p.Lost != nil {
		out = append(out, p.Lost.LastSeenLocation)
	}
	if p.Found != nil {
		out = append(out, p.Found.FoundLocation, p.Found.CurrentLocation)
	}
	return out
}

func containsAny(needle string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), needle) {
			return true
		}
	}
	return false
}

func trimProfile(p Profile) Profile {
	p.Type = strings.TrimSpace(p.Type)
	p.Name = strings.TrimSpace(p.Name)
	p.Breed = strings.TrimSpace(p.Breed)
	p.Age = strings.TrimSpace(p.Age)
	p.Gender = strings.TrimSpace(p.Gender)
	p.Color = strings.TrimSpace(p.Color)
	p.Size = strings.TrimSpace(p.Size)
	p.MicrochipID = strings.TrimSpace(p.MicrochipID)
	p.Collar = strings.TrimSpace(p.Collar)
	p.Description = strings.TrimSpace(p.Description)
	p.SpecialFeatures = strings.TrimSpace(p.SpecialFeatures)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	return p
}

func applyPatch(p Profile, in ProfilePatch) Profile {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&p.Type, in.Type)
	set(&p.Name, in.Name)
	set(&p.Breed, in.Breed)
	set(&p.Age, in.Age)
	set(&p.Gender, in.Gender)
	set(&p.Color, in.Color)
	set(&p.Size, in.Size)
	set(&p.MicrochipID, in.MicrochipID)
	set(&p.Collar, in.Collar)
	set(&p.Description, in.Description)
	set(&p.SpecialFeatures, in.SpecialFeatures)
	set(&p.ImageURL, in.ImageURL)
	return trimProfile(p)
}
