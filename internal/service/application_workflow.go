package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
	"github.com/workvortex/vortex-api/internal/observability/notify"
)

// WorkflowRepos groups the storage dependencies of ApplicationWorkflow.
type WorkflowRepos struct {
	Applications core.ApplicationRepository // Required
	Jobs         core.JobPostingRepository  // Required
	Cache        *core.ReadCache            // Optional
}

// ApplicationWorkflowOptions groups dependencies for ApplicationWorkflow.
type ApplicationWorkflowOptions struct {
	Repos     WorkflowRepos
	Telemetry Telemetry
	Now       func() time.Time // Optional: defaults to time.Now
}

// ApplicationWorkflow drives the application lifecycle: candidates apply, the owning employer moves status.
type ApplicationWorkflow struct {
	apps      core.ApplicationRepository
	jobs      core.JobPostingRepository
	cache     *core.ReadCache
	telemetry Telemetry
	logger    *slog.Logger
	now       func() time.Time
}

// NewApplicationWorkflow constructs an ApplicationWorkflow.
func NewApplicationWorkflow(opts ApplicationWorkflowOptions) *ApplicationWorkflow {
	if opts.Repos.Applications == nil {
		panic("ApplicationRepository is required")
	}
	if opts.Repos.Jobs == nil {
		panic("JobPostingRepository is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &ApplicationWorkflow{
		apps:      opts.Repos.Applications,
		jobs:      opts.Repos.Jobs,
		cache:     opts.Repos.Cache,
		telemetry: opts.Telemetry,
		logger:    opts.Telemetry.logger("application_workflow"),
		now:       now,
	}
}

func (w *ApplicationWorkflow) posting(ctx context.Context, jobID string) (*model.JobPosting, error) {
	return core.Cached(ctx, w.cache, core.Key(core.EntityJobPosting, jobID), func(ctx context.Context) (*model.JobPosting, error) {
		return w.jobs.GetByID(ctx, jobID)
	})
}

// Apply creates a pending application of candidateID to jobID.
// Inactive postings fail with InvalidState; a second application fails with AlreadyApplied.
func (w *ApplicationWorkflow) Apply(ctx context.Context, jobID, candidateID string) (app *model.Application, err error) {
	start := time.Now()
	defer func() { w.telemetry.observe("application.apply", start, err, nil) }()

	if jobID == "" {
		return nil, apperrors.ValidationField("job_id", "job id is required")
	}
	if candidateID == "" {
		return nil, apperrors.Unauthenticated("candidate id is required")
	}

	job, err := w.posting(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("load job posting: %w", err)
	}
	if !job.IsActive {
		return nil, apperrors.InvalidState("this job posting is no longer accepting applications")
	}

	app, err = w.apps.Create(ctx, jobID, candidateID)
	if err != nil {
		if apperrors.IsUniqueViolation(err, "") {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeAlreadyApplied, "candidate has already applied to this job posting")
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	w.logger.InfoContext(ctx, "application submitted",
		"application_id", app.ID, "job_id", jobID, "candidate_id", candidateID)
	w.telemetry.notify(ctx, notify.Event{
		Kind:      notify.KindApplicationSubmitted,
		Severity:  notify.SeverityInfo,
		Summary:   fmt.Sprintf("New application for %s", job.Title),
		SubjectID: app.ID,
		ActorID:   candidateID,
		Fields:    map[string]string{"job_id": jobID, "employer_id": job.EmployerID},
	})
	return app, nil
}

// SetStatus moves an application to status on behalf of actor, who must be the employer owning the posting.
// Setting the current status again is a no-op.
func (w *ApplicationWorkflow) SetStatus(
	ctx context.Context,
	applicationID string,
	actor model.Principal,
	status model.ApplicationStatus,
) (app *model.Application, err error) {
	start := time.Now()
	defer func() { w.telemetry.observe("application.set_status", start, err, map[string]string{"status": string(status)}) }()

	if actor == nil {
		return nil, apperrors.Unauthenticated("sign in to manage applications")
	}
	employer, ok := actor.(*model.EmployerPrincipal)
	if !ok {
		return nil, apperrors.Forbidden("only employers can change application status")
	}
	if !status.Valid() {
		return nil, apperrors.ValidationField("status", fmt.Sprintf("unknown status %q", status))
	}

	details, err := w.apps.GetDetails(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("load application: %w", err)
	}
	if details.EmployerID != employer.ID {
		return nil, apperrors.Forbidden("application belongs to another employer's posting")
	}

	current := details.Status
	if current == status {
		return &details.Application, nil
	}
	if !current.CanTransitionTo(status) {
		return nil, apperrors.InvalidTransitionf("cannot move application from %s to %s", current, status)
	}

	app, err = w.apps.UpdateStatus(ctx, core.UpdateStatusParams{
		ID:         applicationID,
		EmployerID: employer.ID,
		From:       current,
		Status:     status,
		UpdatedAt:  w.now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("update application status: %w", err)
	}

	w.logger.InfoContext(ctx, "application status changed",
		"application_id", applicationID, "from", string(current), "to", string(status), "employer_id", employer.ID)
	w.telemetry.notify(ctx, notify.Event{
		Kind:      notify.KindApplicationStatusChanged,
		Severity:  notify.SeverityInfo,
		Summary:   fmt.Sprintf("%s moved from %s to %s", details.JobTitle, current, status),
		SubjectID: applicationID,
		ActorID:   employer.ID,
		Fields: map[string]string{
			"candidate_id": details.CandidateID,
			"from":         string(current),
			"to":           string(status),
		},
	})
	return app, nil
}

// Details returns the composite application view to its candidate or the owning employer.
func (w *ApplicationWorkflow) Details(ctx context.Context, applicationID string, actor model.Principal) (*model.ApplicationDetails, error) {
	if actor == nil {
		return nil, apperrors.Unauthenticated("sign in to view applications")
	}
	details, err := w.apps.GetDetails(ctx, applicationID)
	if err != nil {
		return nil, fmt.Errorf("load application: %w", err)
	}

	id := actor.Base().ID
	switch actor.(type) {
	case *model.CandidatePrincipal:
		if details.CandidateID == id {
			return details, nil
		}
	case *model.EmployerPrincipal:
		if details.EmployerID == id {
			return details, nil
		}
	}
	return nil, apperrors.Forbidden("not allowed to view this application")
}

// ListForCandidate returns the candidate's applications, newest first.
func (w *ApplicationWorkflow) ListForCandidate(ctx context.Context, candidateID string) ([]*model.CandidateApplicationView, error) {
	if candidateID == "" {
		return nil, apperrors.Unauthenticated("candidate id is required")
	}
	views, err := w.apps.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("list candidate applications: %w", err)
	}
	return views, nil
}

// ListForEmployer returns applications to the employer's postings, newest first.
func (w *ApplicationWorkflow) ListForEmployer(ctx context.Context, employerID string) ([]*model.EmployerApplicationView, error) {
	if employerID == "" {
		return nil, apperrors.Unauthenticated("employer id is required")
	}
	views, err := w.apps.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, fmt.Errorf("list employer applications: %w", err)
	}
	return views, nil
}

// HasApplied reports whether candidateID has an application for jobID.
func (w *ApplicationWorkflow) HasApplied(ctx context.Context, jobID, candidateID string) (bool, error) {
	if jobID == "" || candidateID == "" {
		return false, nil
	}
	ok, err := w.apps.Exists(ctx, jobID, candidateID)
	if err != nil {
		return false, fmt.Errorf("check application: %w", err)
	}
	return ok, nil
}

// CountForJob returns the number of applications jobID has received.
func (w *ApplicationWorkflow) CountForJob(ctx context.Context, jobID string) (int, error) {
	n, err := w.apps.CountByJob(ctx, jobID)
	if err != nil {
		return 0, fmt.Errorf("count applications: %w", err)
	}
	return n, nil
}
