package app

import (
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/draft-roster/external/docstore"
	"github.com/riskibarqy/draft-roster/external/feedsource"
	"github.com/riskibarqy/draft-roster/external/rosterpage"
	"github.com/riskibarqy/draft-roster/internal/config"
	"github.com/riskibarqy/draft-roster/internal/domain/claim"
	"github.com/riskibarqy/draft-roster/internal/domain/roster"
	"github.com/riskibarqy/draft-roster/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/draft-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-roster/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/draft-roster/internal/interfaces/httpapi"
	"github.com/riskibarqy/draft-roster/internal/platform/cache"
	idgen "github.com/riskibarqy/draft-roster/internal/platform/id"
	"github.com/riskibarqy/draft-roster/internal/platform/logging"
	"github.com/riskibarqy/draft-roster/internal/platform/resilience"
	"github.com/riskibarqy/draft-roster/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type claimRepositories struct {
	pending  claim.PendingRepository
	profiles claim.ProfileRepository
	users    claim.UserProfileRepository
	close    func() error
}

// NewHTTPServer wires the roster and claim services behind the HTTP API. The
// returned cleanup releases the claim store connection.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	repos, err := newClaimRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	feeds := feedsource.NewClient(feedsource.ClientConfig{
		Timeout:        cfg.FeedTimeout,
		MaxRetries:     cfg.FeedMaxRetries,
		MaxBodyBytes:   cfg.FeedMaxBodyBytes,
		BaseDir:        cfg.FeedBaseDir,
		Logger:         logger,
		CircuitBreaker: breakerConfig(cfg.FeedCircuit),
	})

	var details roster.DetailSource
	if cfg.RosterPagesEnabled && len(cfg.RosterPages) > 0 {
		details = rosterpage.NewClient(rosterpage.ClientConfig{
			Timeout: cfg.RosterPageTimeout,
			Logger:  logger,
		})
	}

	rosterSvc := usecase.NewRosterService(
		feeds,
		details,
		repos.profiles,
		cache.NewStore(cfg.RosterCacheTTL),
		usecase.RosterServiceConfig{
			Feeds:                 cfg.Feeds,
			MaxFeedWorkers:        cfg.FeedMaxWorkers,
			RosterPages:           cfg.RosterPages,
			MaxRosterPageRequests: cfg.RosterPagesMaxConcurrency,
		},
		logger,
	)
	claimSvc := usecase.NewClaimService(
		repos.pending,
		repos.profiles,
		repos.users,
		idgen.NewUUIDGenerator(),
		rosterSvc,
		logger,
	)

	anubisClient := anubis.NewClient(
		&http.Client{
			Timeout:   cfg.AnubisTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		cfg.AnubisBaseURL,
		cfg.AnubisIntrospectURL,
		cfg.AnubisAdminKey,
		breakerConfig(cfg.AnubisCircuit),
		logger,
	)

	handler := httpapi.NewHandler(rosterSvc, claimSvc, logger)
	router := httpapi.NewRouter(handler, anubisClient, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"claim_store", cfg.ClaimStore,
		"feeds", len(cfg.Feeds),
		"roster_pages", len(cfg.RosterPages),
		"roster_pages_enabled", details != nil,
	)
	return server, repos.close, nil
}

func newClaimRepositories(cfg config.Config, logger *logging.Logger) (claimRepositories, error) {
	switch cfg.ClaimStore {
	case config.ClaimStoreDocstore:
		client := docstore.NewClient(docstore.ClientConfig{
			BaseURL:        cfg.DocstoreBaseURL,
			APIKey:         cfg.DocstoreAPIKey,
			Timeout:        cfg.DocstoreTimeout,
			CircuitBreaker: breakerConfig(cfg.DocstoreCircuit),
		}, logger)
		return claimRepositories{
			pending:  docstore.NewPendingClaimRepository(client),
			profiles: docstore.NewClaimedProfileRepository(client),
			users:    docstore.NewUserProfileRepository(client),
			close:    func() error { return nil },
		}, nil
	case config.ClaimStorePostgres:
		db, err := openPostgres(cfg)
		if err != nil {
			return claimRepositories{}, err
		}
		return claimRepositories{
			pending:  postgres.NewPendingClaimRepository(db),
			profiles: postgres.NewClaimedProfileRepository(db),
			users:    postgres.NewUserProfileRepository(db),
			close:    db.Close,
		}, nil
	case config.ClaimStoreMemory, "":
		logger.Warn("claim store is in memory, claims are lost on restart")
		return claimRepositories{
			pending:  memory.NewPendingClaimRepository(),
			profiles: memory.NewClaimedProfileRepository(),
			users:    memory.NewUserProfileRepository(),
			close:    func() error { return nil },
		}, nil
	default:
		return claimRepositories{}, fmt.Errorf("unsupported claim store %q", cfg.ClaimStore)
	}
}

func openPostgres(cfg config.Config) (*sqlx.DB, error) {
	db, err := otelsqlx.Open("postgres", NormalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return db, nil
}

func breakerConfig(c config.CircuitConfig) resilience.CircuitBreakerConfig {
	return resilience.CircuitBreakerConfig{
		Enabled:          c.Enabled,
		FailureThreshold: c.FailureCount,
		OpenTimeout:      c.OpenTimeout,
		HalfOpenMaxReq:   c.HalfOpenMaxReq,
	}
}
