// Package app wires configuration, storage backends and services together.
// Both binaries build their dependencies through New.
package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
	"go.uber.org/multierr"

	"alcyxob/fitness-tracker/internal/api"
	"alcyxob/fitness-tracker/internal/cache"
	"alcyxob/fitness-tracker/internal/config"
	"alcyxob/fitness-tracker/internal/metrics"
	"alcyxob/fitness-tracker/internal/repository"
	"alcyxob/fitness-tracker/internal/repository/gormrepo"
	"alcyxob/fitness-tracker/internal/repository/mongo"
	"alcyxob/fitness-tracker/internal/service"
	"alcyxob/fitness-tracker/internal/storage"
)

type App struct {
	Config   config.Config
	Services api.Services
	Metrics  *metrics.Manager
	Registry *prometheus.Registry

	closers []func() error
}

type repositories struct {
	users     repository.UserRepository
	exercises repository.ExerciseRepository
	metrics   repository.ExerciseMetricRepository
	routines  repository.RoutineRepository
	workouts  repository.WorkoutRepository
}

// New opens the configured database and object storage and builds every service.
// Call Close to release them.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{Config: cfg}

	repos, err := a.openRepositories(ctx)
	if err != nil {
		return nil, multierr.Append(err, a.Close())
	}

	objectStorage, err := openObjectStorage(ctx, cfg.S3)
	if err != nil {
		return nil, multierr.Append(err, a.Close())
	}

	metricRepo := cache.NewExerciseMetricRepository(repos.metrics, cfg.Cache.MetricsSizeBytes, cfg.Cache.MetricsTTL)

	a.Services = api.Services{
		Auth:           service.NewAuthService(repos.users, cfg.JWT.Secret, cfg.JWT.Expiration),
		Exercise:       service.NewExerciseService(repos.exercises),
		ExerciseMetric: service.NewExerciseMetricService(metricRepo),
		Routine:        service.NewRoutineService(repos.routines),
		Workout:        service.NewWorkoutService(repos.workouts, repos.routines),
		SystemPrompt:   service.NewSystemPromptService(objectStorage, cfg.S3.PromptPrefix),
	}

	a.Registry = prometheus.NewRegistry()
	a.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	a.Metrics = metrics.NewManager(cfg.Metrics.Namespace, cfg.Metrics.Subsystem, a.Registry)

	return a, nil
}

// Router returns the HTTP handler serving the API.
func (a *App) Router() *gin.Engine {
	return api.NewRouter(a.Services, a.Metrics, a.Registry)
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	return err
}

func (a *App) openRepositories(ctx context.Context) (repositories, error) {
	switch a.Config.Database.Driver {
	case config.DriverSQLite:
		return a.openSQLite()
	case config.DriverMongo:
		return a.openMongo(ctx)
	default:
		return repositories{}, fmt.Errorf("unsupported database driver %q", a.Config.Database.Driver)
	}
}

func (a *App) openMongo(ctx context.Context) (repositories, error) {
	client, err := mongo.ConnectDB(ctx, a.Config.Database.URI)
	if err != nil {
		return repositories{}, fmt.Errorf("connect mongo: %w", err)
	}
	a.closers = append(a.closers, func() error {
		log.Debug("disconnecting mongo")
		return mongo.DisconnectDB(client)
	})

	db := client.Database(a.Config.Database.Name)
	if err := mongo.EnsureIndexes(ctx, db); err != nil {
		return repositories{}, fmt.Errorf("ensure indexes: %w", err)
	}

	log.Infof("using mongo database %s", a.Config.Database.Name)
	return repositories{
		users:     mongo.NewMongoUserRepository(db),
		exercises: mongo.NewMongoExerciseRepository(db),
		metrics:   mongo.NewMongoExerciseMetricRepository(db),
		routines:  mongo.NewMongoRoutineRepository(db),
		workouts:  mongo.NewMongoWorkoutRepository(db),
	}, nil
}

func (a *App) openSQLite() (repositories, error) {
	db, err := gormrepo.Open(a.Config.Database.SQLitePath)
	if err != nil {
		return repositories{}, fmt.Errorf("open sqlite: %w", err)
	}
	a.closers = append(a.closers, func() error {
		log.Debug("closing sqlite")
		return gormrepo.Close(db)
	})

	log.Infof("using sqlite database %s", a.Config.Database.SQLitePath)
	return repositories{
		users:     gormrepo.NewGormUserRepository(db),
		exercises: gormrepo.NewGormExerciseRepository(db),
		metrics:   gormrepo.NewGormExerciseMetricRepository(db),
		routines:  gormrepo.NewGormRoutineRepository(db),
		workouts:  gormrepo.NewGormWorkoutRepository(db),
	}, nil
}

func openObjectStorage(ctx context.Context, cfg config.S3Config) (storage.ObjectStorage, error) {
	if !cfg.Enabled {
		log.Warn("s3 disabled, system prompts are kept in memory")
		return storage.NewMemoryStorage(), nil
	}
	store, err := storage.NewS3Storage(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init s3 storage: %w", err)
	}
	return store, nil
}
