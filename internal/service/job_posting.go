package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
)

const (
	defaultJobListLimit = 50
	maxJobListLimit     = 200
)

// JobPostingServiceOptions groups dependencies for JobPostingService.
type JobPostingServiceOptions struct {
	Repo      core.JobPostingRepository // Required
	Cache     *core.ReadCache           // Optional
	Telemetry Telemetry
}

// JobPostingService manages employer postings and the candidate-facing listing.
type JobPostingService struct {
	repo      core.JobPostingRepository
	cache     *core.ReadCache
	telemetry Telemetry
	logger    *slog.Logger
}

// NewJobPostingService constructs a JobPostingService.
func NewJobPostingService(opts JobPostingServiceOptions) *JobPostingService {
	if opts.Repo == nil {
		panic("JobPostingRepository is required")
	}
	return &JobPostingService{
		repo:      opts.Repo,
		cache:     opts.Cache,
		telemetry: opts.Telemetry,
		logger:    opts.Telemetry.logger("job_posting_service"),
	}
}

func asEmployer(actor model.Principal) (*model.EmployerPrincipal, error) {
	if actor == nil {
		return nil, apperrors.Unauthenticated("sign in to manage job postings")
	}
	emp, ok := actor.(*model.EmployerPrincipal)
	if !ok {
		return nil, apperrors.Forbidden("only employers manage job postings")
	}
	return emp, nil
}

// Create publishes a new active posting owned by actor.
func (s *JobPostingService) Create(ctx context.Context, actor model.Principal, req *model.CreateJobPostingRequest) (*model.JobPosting, error) {
	emp, err := asEmployer(actor)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, apperrors.Validation("job posting is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	start := time.Now()
	job, err := s.repo.Create(ctx, emp.ID, req)
	s.telemetry.observe("job_posting.create", start, err, nil)
	if err != nil {
		return nil, fmt.Errorf("create job posting: %w", err)
	}
	s.logger.InfoContext(ctx, "job posting created", "job_id", job.ID, "employer_id", emp.ID)
	return job, nil
}

// SetActive opens or closes a posting. Only the owning employer may do this.
func (s *JobPostingService) SetActive(ctx context.Context, actor model.Principal, jobID string, active bool) (*model.JobPosting, error) {
	emp, err := asEmployer(actor)
	if err != nil {
		return nil, err
	}
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load job posting: %w", err)
	}
	if job.EmployerID != emp.ID {
		return nil, apperrors.Forbidden("job posting belongs to another employer")
	}
	if job.IsActive == active {
		return job, nil
	}

	job, err = s.repo.SetActive(ctx, core.SetActiveParams{ID: jobID, EmployerID: emp.ID, Active: active})
	if err != nil {
		return nil, fmt.Errorf("set job posting active: %w", err)
	}
	if err := s.cache.Invalidate(ctx, core.Key(core.EntityJobPosting, jobID)); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation incomplete", "job_id", jobID, "error", err)
	}
	s.logger.InfoContext(ctx, "job posting toggled", "job_id", jobID, "active", active)
	return job, nil
}

// Get returns a posting with its employer summary. Inactive postings remain addressable by id.
func (s *JobPostingService) Get(ctx context.Context, jobID string) (*model.JobWithEmployer, error) {
	if jobID == "" {
		return nil, apperrors.ValidationField("job_id", "job id is required")
	}
	job, err := s.repo.GetWithEmployer(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("get job posting: %w", err)
	}
	return job, nil
}

// ListActive returns active postings, newest first, optionally filtered by a text query.
func (s *JobPostingService) ListActive(ctx context.Context, opts model.JobListOptions) ([]*model.JobWithEmployer, error) {
	switch {
	case opts.Limit <= 0:
		opts.Limit = defaultJobListLimit
	case opts.Limit > maxJobListLimit:
		opts.Limit = maxJobListLimit
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	start := time.Now()
	jobs, err := s.repo.ListActive(ctx, opts)
	s.telemetry.observe("job_posting.list_active", start, err, nil)
	if err != nil {
		return nil, fmt.Errorf("list active job postings: %w", err)
	}
	return jobs, nil
}

// ListForEmployer returns every posting of actor, active or not.
func (s *JobPostingService) ListForEmployer(ctx context.Context, actor model.Principal) ([]*model.JobPosting, error) {
	emp, err := asEmployer(actor)
	if err != nil {
		return nil, err
	}
	jobs, err := s.repo.ListByEmployer(ctx, emp.ID)
	if err != nil {
		return nil, fmt.Errorf("list employer job postings: %w", err)
	}
	return jobs, nil
}
