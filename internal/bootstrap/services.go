package bootstrap

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/workvortex/vortex-api/config"
	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/data"
	"github.com/workvortex/vortex-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Sessions      *service.SessionService // nil when auth is not configured
	Registration  *service.RegistrationService
	Jobs          *service.JobPostingService
	Applications  *service.ApplicationWorkflow
	Search        *service.CandidateSearch
	Cache         *core.ReadCache
	Observability ObservabilityContainer

	resolverOpts service.IdentityResolverOptions
}

// NewIdentityResolver returns a resolver for one signed-in user.
// Callers Start it against Sessions and Stop it when the user goes away.
func (c *ServiceContainer) NewIdentityResolver() *service.IdentityResolver {
	return service.NewIdentityResolver(c.resolverOpts)
}

// Close flushes notifications and releases observability resources.
func (c *ServiceContainer) Close() error {
	return c.Observability.Close()
}

// Infra groups the connections services run on.
type Infra struct {
	DB          *sql.DB
	RedisClient redis.UniversalClient // Optional
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	Infra  Infra
	Logger *slog.Logger
}

// serviceRepositories groups data adapters backing service ports.
type serviceRepositories struct {
	Profiles     *data.ProfileRepo
	Experiences  *data.ExperienceRepo
	Directory    *data.DirectoryRepo
	JobPostings  *data.JobPostingRepo
	Applications *data.ApplicationRepo
}

// buildRepositories builds repositories backing service ports; no business rules here.
func buildRepositories(db *sql.DB) *serviceRepositories {
	return &serviceRepositories{
		Profiles:     data.NewProfileRepo(db),
		Experiences:  data.NewExperienceRepo(db),
		Directory:    data.NewDirectoryRepo(db),
		JobPostings:  data.NewJobPostingRepo(db),
		Applications: data.NewApplicationRepo(db),
	}
}

// DomainServicesOptions groups dependencies for buildDomainServices.
type DomainServicesOptions struct {
	Repos     *serviceRepositories
	Cache     *core.ReadCache
	Telemetry service.Telemetry
}

func buildDomainServices(opts *DomainServicesOptions) ServiceContainer {
	repos := opts.Repos
	return ServiceContainer{
		Registration: service.NewRegistrationService(service.RegistrationServiceOptions{
			Profiles: repos.Profiles,
			Logger:   opts.Telemetry.Logger,
		}),
		Jobs: service.NewJobPostingService(service.JobPostingServiceOptions{
			Repo:      repos.JobPostings,
			Cache:     opts.Cache,
			Telemetry: opts.Telemetry,
		}),
		Applications: service.NewApplicationWorkflow(service.ApplicationWorkflowOptions{
			Repos: service.WorkflowRepos{
				Applications: repos.Applications,
				Jobs:         repos.JobPostings,
				Cache:        opts.Cache,
			},
			Telemetry: opts.Telemetry,
		}),
		Search: service.NewCandidateSearch(service.CandidateSearchOptions{
			Deps: service.SearchDeps{
				Directory:   repos.Directory,
				Experiences: repos.Experiences,
				Cache:       opts.Cache,
			},
			Telemetry: opts.Telemetry,
		}),
		Cache: opts.Cache,
		resolverOpts: service.IdentityResolverOptions{
			Repos: service.ResolverRepos{
				Profiles:    repos.Profiles,
				Experiences: repos.Experiences,
				Cache:       opts.Cache,
			},
			Telemetry: opts.Telemetry,
		},
	}
}

// NewServices wires repositories, caches, observability and every core service.
func NewServices(ctx context.Context, deps *ServiceDeps) ServiceContainer {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	observability := buildObservability(logger, cfg.Observability)
	cache := BuildReadCache(cfg.Cache, CacheDeps{
		RedisClient: deps.Infra.RedisClient,
		Metrics:     observability.Sink(),
		Logger:      logger,
	})
	telemetry := service.Telemetry{
		Logger:   logger,
		Notifier: observability.Notifier,
		Metrics:  observability.Sink(),
	}

	container := buildDomainServices(&DomainServicesOptions{
		Repos:     buildRepositories(deps.Infra.DB),
		Cache:     cache,
		Telemetry: telemetry,
	})
	container.Observability = observability
	container.resolverOpts.Media = BuildMedia(ctx, cfg.Storage, logger)
	container.Sessions = BuildSessionService(AuthConfig{
		Auth:        cfg.Auth,
		RedisClient: deps.Infra.RedisClient,
		Logger:      logger,
	})
	return container
}
