// Package devseed fills a development database with a demo employer, candidate and postings.
// Every step is idempotent so the seed can be re-run against an existing database.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/data"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
	"github.com/workvortex/vortex-api/internal/service"
)

// Demo account ids.
const (
	EmployerID  = "seed-employer-harbor"
	CandidateID = "seed-candidate-ana"
)

// Repos groups the storage ports the seed drives.
type Repos struct {
	Profiles     core.ProfileRepository
	Experiences  core.ExperienceRepository
	Directory    core.CandidateDirectory
	Jobs         core.JobPostingRepository
	Applications core.ApplicationRepository
}

// Services bundles the dependencies needed for development seeding.
type Services struct {
	profiles     core.ProfileRepository
	experiences  core.ExperienceRepository
	registration *service.RegistrationService
	jobs         *service.JobPostingService
	applications *service.ApplicationWorkflow
	search       *service.CandidateSearch
}

// NewServices constructs all required services for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	return NewServicesFromRepos(Repos{
		Profiles:     data.NewProfileRepo(db),
		Experiences:  data.NewExperienceRepo(db),
		Directory:    data.NewDirectoryRepo(db),
		Jobs:         data.NewJobPostingRepo(db),
		Applications: data.NewApplicationRepo(db),
	})
}

// NewServicesFromRepos builds the seeding services on top of repos.
func NewServicesFromRepos(repos Repos) Services {
	return Services{
		profiles:     repos.Profiles,
		experiences:  repos.Experiences,
		registration: service.NewRegistrationService(service.RegistrationServiceOptions{Profiles: repos.Profiles}),
		jobs:         service.NewJobPostingService(service.JobPostingServiceOptions{Repo: repos.Jobs}),
		applications: service.NewApplicationWorkflow(service.ApplicationWorkflowOptions{
			Repos: service.WorkflowRepos{Applications: repos.Applications, Jobs: repos.Jobs},
		}),
		search: service.NewCandidateSearch(service.CandidateSearchOptions{
			Deps: service.SearchDeps{Directory: repos.Directory, Experiences: repos.Experiences},
		}),
	}
}

func strPtr(s string) *string { return &s }

var (
	demoEmployer = model.RegisterRequest{
		ID:     EmployerID,
		Email:  "talent@harbor-logistics.example",
		Name:   "Harbor Logistics",
		Phone:  strPtr("555-0142"),
		Role:   model.RoleEmployer,
		Sector: "Logistics",
	}
	demoCandidate = model.RegisterRequest{
		ID:    CandidateID,
		Email: "ana.silva@example.com",
		Name:  "Ana Silva",
		Phone: strPtr("(555) 010-0100"),
		Role:  model.RoleCandidate,
	}
	demoPostings = []model.CreateJobPostingRequest{
		{
			Title:          "Warehouse Associate",
			Location:       "Rotterdam",
			EmploymentType: model.EmploymentFullTime,
			Description:    "Receive, store and ship goods across our main distribution centre.",
			Requirements:   []string{"Able to lift 20kg", "Shift availability"},
			Salary:         strPtr("EUR 2,600 / month"),
		},
		{
			Title:          "Forklift Operator",
			Location:       "Antwerp",
			EmploymentType: model.EmploymentContract,
			Description:    "Operate counterbalance and reach trucks on the night shift.",
			Requirements:   []string{"Valid forklift certificate"},
		},
	}
)

// Run executes the full development seeding workflow.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	for _, req := range []model.RegisterRequest{demoEmployer, demoCandidate} {
		if err := ensureAccount(ctx, svcs, req, logger); err != nil {
			return err
		}
	}

	employer, err := loadEmployer(ctx, svcs.profiles)
	if err != nil {
		return err
	}

	jobs, err := ensurePostings(ctx, svcs.jobs, employer, logger)
	if err != nil {
		return err
	}

	if err := ensureExperience(ctx, svcs, employer, logger); err != nil {
		return err
	}

	if len(jobs) > 0 {
		_, err := svcs.applications.Apply(ctx, jobs[0].ID, CandidateID)
		switch {
		case apperrors.IsAlreadyApplied(err):
			logger.InfoContext(ctx, "demo application already exists", "job_id", jobs[0].ID)
		case err != nil:
			return fmt.Errorf("seed application: %w", err)
		default:
			logger.InfoContext(ctx, "seeded demo application", "job_id", jobs[0].ID)
		}
	}
	return nil
}

func ensureAccount(ctx context.Context, svcs Services, req model.RegisterRequest, logger *slog.Logger) error {
	_, err := svcs.profiles.GetAccount(ctx, req.ID)
	if err == nil {
		logger.InfoContext(ctx, "account already exists", "account_id", req.ID)
		return nil
	}
	if !apperrors.IsNotFound(err) {
		return fmt.Errorf("look up account %s: %w", req.ID, err)
	}
	if _, err := svcs.registration.Register(ctx, &req); err != nil {
		return fmt.Errorf("register %s: %w", req.ID, err)
	}
	return nil
}

func loadEmployer(ctx context.Context, profiles core.ProfileRepository) (*model.EmployerPrincipal, error) {
	acct, err := profiles.GetAccount(ctx, EmployerID)
	if err != nil {
		return nil, fmt.Errorf("load demo employer: %w", err)
	}
	rec, err := profiles.GetEmployer(ctx, EmployerID)
	if err != nil {
		return nil, fmt.Errorf("load demo employer record: %w", err)
	}
	return model.NewEmployerPrincipal(*acct, *rec), nil
}

func ensurePostings(
	ctx context.Context,
	jobs *service.JobPostingService,
	employer *model.EmployerPrincipal,
	logger *slog.Logger,
) ([]*model.JobPosting, error) {
	existing, err := jobs.ListForEmployer(ctx, employer)
	if err != nil {
		return nil, fmt.Errorf("list demo postings: %w", err)
	}
	byTitle := make(map[string]*model.JobPosting, len(existing))
	for _, j := range existing {
		byTitle[j.Title] = j
	}

	out := make([]*model.JobPosting, 0, len(demoPostings))
	for _, p := range demoPostings {
		if j, ok := byTitle[p.Title]; ok {
			out = append(out, j)
			continue
		}
		req := p
		deadline := time.Now().UTC().AddDate(0, 2, 0)
		req.Deadline = &deadline
		j, err := jobs.Create(ctx, employer, &req)
		if err != nil {
			return nil, fmt.Errorf("create posting %q: %w", p.Title, err)
		}
		logger.InfoContext(ctx, "seeded job posting", "job_id", j.ID, "title", j.Title)
		out = append(out, j)
	}
	return out, nil
}

func ensureExperience(ctx context.Context, svcs Services, employer *model.EmployerPrincipal, logger *slog.Logger) error {
	history, err := svcs.experiences.ListByCandidate(ctx, CandidateID)
	if err != nil {
		return fmt.Errorf("list demo experiences: %w", err)
	}
	if len(history) > 0 {
		return nil
	}

	end := time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)
	desc := "Picked and packed outbound orders."
	_, err = svcs.search.RecordExperience(ctx, employer, CandidateID, model.ExperienceInput{
		Role:        "Order Picker",
		Company:     employer.Name,
		StartDate:   time.Date(2022, time.June, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     &end,
		Description: &desc,
	})
	if err != nil {
		return fmt.Errorf("seed experience: %w", err)
	}
	logger.InfoContext(ctx, "seeded attested experience", "candidate_id", CandidateID)
	return nil
}

// ErrNotSeeded is returned by Check when the demo accounts are missing.
var ErrNotSeeded = errors.New("development data has not been seeded")

// Check reports whether the demo candidate can be found by phone, which exercises
// both the registration rows and the phone lookup function.
func Check(ctx context.Context, svcs Services) error {
	p, err := svcs.search.SearchByPhone(ctx, *demoCandidate.Phone)
	if err != nil {
		return fmt.Errorf("search demo candidate: %w", err)
	}
	if p == nil || p.ID != CandidateID {
		return ErrNotSeeded
	}
	return nil
}
