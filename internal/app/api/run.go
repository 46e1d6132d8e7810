package api

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	adoptermemory "github.com/pawhaven/adoption-api/internal/domains/adopters/adapters/memory"
	adopterpostgres "github.com/pawhaven/adoption-api/internal/domains/adopters/adapters/persistence/postgres"
	adopterapp "github.com/pawhaven/adoption-api/internal/domains/adopters/application"
	adopterports "github.com/pawhaven/adoption-api/internal/domains/adopters/ports"
	adoptionmemory "github.com/pawhaven/adoption-api/internal/domains/adoptions/adapters/memory"
	adoptionobs "github.com/pawhaven/adoption-api/internal/domains/adoptions/adapters/observability"
	adoptionpostgres "github.com/pawhaven/adoption-api/internal/domains/adoptions/adapters/persistence/postgres"
	adoptionapp "github.com/pawhaven/adoption-api/internal/domains/adoptions/application"
	adoptionports "github.com/pawhaven/adoption-api/internal/domains/adoptions/ports"
	catalogmemory "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/pawhaven/adoption-api/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/pawhaven/adoption-api/internal/domains/catalog/application"
	catalogports "github.com/pawhaven/adoption-api/internal/domains/catalog/ports"
	favoritememory "github.com/pawhaven/adoption-api/internal/domains/favorites/adapters/memory"
	favoritepostgres "github.com/pawhaven/adoption-api/internal/domains/favorites/adapters/persistence/postgres"
	favoriteapp "github.com/pawhaven/adoption-api/internal/domains/favorites/application"
	favoriteports "github.com/pawhaven/adoption-api/internal/domains/favorites/ports"
	"github.com/pawhaven/adoption-api/internal/httpapi"
	"github.com/pawhaven/adoption-api/internal/platform/migrations"
	platformobservability "github.com/pawhaven/adoption-api/internal/platform/observability"
	platformpostgres "github.com/pawhaven/adoption-api/internal/platform/postgres"
)

// Run boots the adoption HTTP API with observability and repositories wired.
func Run(ctx context.Context) error {
	const serviceName = "adoption-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	signingKey, err := signingKeyFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	repos, cleanup := buildRepositories(ctx, cfg, logger)
	defer cleanup()

	catalogService := catalogobs.New(
		catalogapp.NewService(repos.pets),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)
	adopterService := adopterapp.NewService(repos.adopters,
		adopterapp.WithSigningKey(signingKey),
		adopterapp.WithTokenTTL(cfg.TokenTTL),
	)
	adoptionService := adoptionobs.New(
		adoptionapp.NewService(repos.adoptions),
		adoptionobs.WithLogger(logger),
		adoptionobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
		adoptionobs.WithMeter(instruments.Meter("internal.adoptions.application")),
	)
	favoriteService := favoriteapp.NewService(repos.favorites)

	handlers := httpapi.ApiHandleFunctions{
		CatalogAPI:  httpapi.NewCatalogAPI(catalogService),
		AdopterAPI:  httpapi.NewAdopterAPI(adopterService),
		AdoptionAPI: httpapi.NewAdoptionAPI(adoptionService),
		FavoriteAPI: httpapi.NewFavoriteAPI(favoriteService),
	}
	router := httpapi.NewRouter(handlers, signingKey, otelgin.Middleware(serviceName))

	addr := ":" + cfg.Port
	logger.Info("adoption API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("adoption API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

type repositories struct {
	pets      catalogports.Repository
	adopters  adopterports.Repository
	adoptions adoptionports.Repository
	favorites favoriteports.Repository
}

// buildRepositories wires the storage layer: postgres when a DSN is set and
// reachable, in-memory otherwise. Both variants keep the cross-entity
// cascades intact.
func buildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (repositories, func()) {
	if cfg.PostgresDSN != "" {
		db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
		if err == nil {
			sqlDB, dbErr := db.DB()
			if dbErr == nil {
				repos := repositories{
					pets:      catalogpostgres.NewRepository(db),
					adopters:  adopterpostgres.NewRepository(db),
					adoptions: adoptionpostgres.NewRepository(db),
					favorites: favoritepostgres.NewRepository(db),
				}
				if err := migrations.Apply(db); err != nil {
					logger.Error("failed to apply schema constraints", slog.String("error", err.Error()))
				}
				logger.Info("repositories configured with postgres")
				return repos, func() { _ = sqlDB.Close() }
			}
			logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", dbErr.Error()))
		} else {
			logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		}
	} else {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
	}

	pets := catalogmemory.NewRepository()
	adopters := adoptermemory.NewRepository()
	adoptions := adoptionmemory.NewRepository(pets, adopters)
	favorites := favoritememory.NewRepository(pets, adopters)
	return repositories{
		pets:      pets,
		adopters:  adopters,
		adoptions: adoptions,
		favorites: favorites,
	}, func() {}
}

// signingKeyFromConfig returns the configured JWT secret, or a process-local
// random key when none is set. Tokens issued with an ephemeral key do not
// survive a restart. A failure to draw randomness aborts startup rather
// than running with a predictable key.
func signingKeyFromConfig(cfg Config, logger *slog.Logger) ([]byte, error) {
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), nil
	}
	key, err := ephemeralSigningKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ephemeral signing key: %w", err)
	}
	logger.Warn("JWT_SECRET not set, using an ephemeral signing key")
	return key, nil
}

func ephemeralSigningKey(random io.Reader) ([]byte, error) {
	buf := make([]byte, 32)
	if _, err := io.ReadFull(random, buf); err != nil {
		return nil, err
	}
	return []byte(hex.EncodeToString(buf)), nil
}
