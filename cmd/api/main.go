package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	firebase "firebase.google.com/go/v4"
	"go.uber.org/zap"

	"petpals/internal/adapters/auth/firebaseauth"
	"petpals/internal/adapters/auth/jwtauth"
	rediscache "petpals/internal/adapters/cache/redis"
	"petpals/internal/adapters/notify/email"
	fs "petpals/internal/adapters/storage/firestore"
	pg "petpals/internal/adapters/storage/postgres"
	"petpals/internal/config"
	"petpals/internal/jobs"
	"petpals/internal/platform/firebaseapp"
	"petpals/internal/platform/logger"
	"petpals/internal/platform/metrics"
	"petpals/internal/ports/auth"
	"petpals/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg, err := logger.New(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		App:        cfg.AppName,
		Production: cfg.IsProduction(),
	})
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logg.Sync() }()

	if err := run(cfg, logg); err != nil {
		logg.Fatal("server error", zap.Error(err))
	}
}

func run(cfg *config.Config, logg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := router.Options{
		Logger:           logg,
		Metrics:          metrics.New(),
		LegacyFinderCopy: cfg.LegacyFinderCopy,
	}

	var closers []io.Closer
	defer func() {
		for _, c := range closers {
			_ = c.Close()
		}
	}()

	// Firebase se inicializa una sola vez si lo usa el store o la auth.
	var fbApp *firebase.App
	if cfg.Store.Driver == config.StoreFirestore || cfg.Auth.Mode == config.AuthFirebase {
		app, err := firebaseapp.New(ctx, cfg.Firebase.ProjectID, cfg.Firebase.CredentialsFile)
		if err != nil {
			return fmt.Errorf("firebase: %w", err)
		}
		fbApp = app
	}

	switch cfg.Store.Driver {
	case config.StorePostgres:
		if cfg.Store.AutoMigrate {
			if err := pg.Migrate(cfg.Store.DSN); err != nil {
				return err
			}
		}
		db, err := pg.Open(cfg.Store.DSN)
		if err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
		closers = append(closers, db)
		opts.PetRepo = pg.NewPetsRepo(db)
		opts.ReunionRepo = pg.NewReunionsRepo(db)
		opts.TimelineRepo = pg.NewTimelineRepo(db)
	case config.StoreFirestore:
		client, err := fbApp.Firestore(ctx)
		if err != nil {
			return fmt.Errorf("firestore: %w", err)
		}
		store := fs.New(client)
		closers = append(closers, store)
		opts.PetRepo = store.Pets()
		opts.ReunionRepo = store.Reunions()
		opts.TimelineRepo = store.Timeline()
	default:
		logg.Warn("using in-memory store; data is lost on restart")
	}

	verifier, err := buildVerifier(ctx, cfg, fbApp)
	if err != nil {
		return err
	}
	opts.AuthVerifier = verifier

	if cfg.Redis.Addr != "" {
		client := rediscache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		closers = append(closers, client)
		opts.Mirror = rediscache.NewMirror(client, cfg.Redis.TTL, logg.Named("mirror"))
	}

	if cfg.Mail.SendGridAPIKey != "" {
		opts.Notifier = email.NewNotifier(cfg.Mail.SendGridAPIKey, cfg.Mail.FromEmail, cfg.Mail.FromName)
	}

	svcs := router.NewServices(opts)

	sched, err := jobs.NewScheduler(svcs.Pets, cfg.Jobs.MirrorRefreshSchedule, logg.Named("jobs"))
	if err != nil {
		return err
	}
	sched.Start()
	defer sched.Stop()

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Mount(opts, svcs),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logg.Info("starting server",
			zap.String("addr", srv.Addr),
			zap.String("store", cfg.Store.Driver),
			zap.String("auth", cfg.Auth.Mode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logg.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func buildVerifier(ctx context.Context, cfg *config.Config, fb *firebase.App) (auth.AuthVerifier, error) {
	switch cfg.Auth.Mode {
	case config.AuthJWT:
		return jwtauth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer), nil
	case config.AuthFirebase:
		v, err := firebaseauth.NewVerifier(ctx, fb)
		if err != nil {
			return nil, err
		}
		return v, nil
	default:
		// sin verifier para modo dev
		return nil, nil
	}
}
