package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"

	_ "petpals/docs"
	mem "petpals/internal/adapters/storage/memory"
	"petpals/internal/domain/pets"
	"petpals/internal/domain/reunions"
	"petpals/internal/domain/timeline"
	"petpals/internal/middleware"
	"petpals/internal/platform/metrics"
	"petpals/internal/ports/auth"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // puede ser nil (modo dev)

	// Repos: si vienen nil se usan los in-memory.
	PetRepo      pets.Repository
	ReunionRepo  reunions.Repository
	TimelineRepo timeline.Repository

	Mirror   pets.Mirror       // nil = sin mirror
	Notifier reunions.Notifier // nil = no se manda nada

	Logger  *zap.Logger
	Metrics *metrics.Metrics // nil = sin /metrics

	LegacyFinderCopy bool
}

// Services son los services ya cableados entre sí; main los usa para los jobs.
type Services struct {
	Pets     *pets.Service
	Timeline *timeline.Service
	Reunions *reunions.Service
}

func NewServices(opts Options) Services {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	petRepo := opts.PetRepo
	if petRepo == nil {
		petRepo = mem.NewPetRepo()
	}
	reunionRepo := opts.ReunionRepo
	if reunionRepo == nil {
		reunionRepo = mem.NewReunionRepo()
	}
	timelineRepo := opts.TimelineRepo
	if timelineRepo == nil {
		timelineRepo = mem.NewTimelineRepo()
	}

	petsSvc := pets.NewService(petRepo,
		pets.WithMirror(opts.Mirror),
		pets.WithLogger(log.Named("pets")),
		pets.WithMetrics(opts.Metrics),
		pets.WithLegacyFinderCopy(opts.LegacyFinderCopy),
	)
	timelineSvc := timeline.NewService(timelineRepo)
	reunionsSvc := reunions.NewService(reunionRepo, petsSvc,
		reunions.WithNotifier(opts.Notifier),
		reunions.WithLogger(log.Named("reunions")),
		reunions.WithMetrics(opts.Metrics),
	)

	// Orden: primero el pedido de reencuentro, después el historial.
	petsSvc.OnTransition(reunionsSvc.HandleTransition)
	petsSvc.OnTransition(timelineSvc.Record)

	return Services{Pets: petsSvc, Timeline: timelineSvc, Reunions: reunionsSvc}
}

func NewRouter(opts Options) http.Handler {
	return Mount(opts, NewServices(opts))
}

// Mount arma el router chi sobre services ya construidos.
func Mount(opts Options, svcs Services) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recover(log))
	r.Use(middleware.RequestLogger(log, opts.Metrics))

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	// Rutas por módulo
	pets.RegisterRoutes(r, svcs.Pets)
	timeline.RegisterRoutes(r, svcs.Timeline, svcs.Pets)
	reunions.RegisterRoutes(r, svcs.Reunions)

	return r
}
