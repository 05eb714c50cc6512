// Package core defines the repository ports and shared read cache used by the service layer.
package core

import (
	"context"
	"time"

	"github.com/workvortex/vortex-api/internal/domain/model"
)

// ProfileRepository reads and writes accounts and their role records.
type ProfileRepository interface {
	GetAccount(ctx context.Context, id string) (*model.Account, error)
	GetCandidate(ctx context.Context, accountID string) (*model.CandidateRecord, error)
	GetEmployer(ctx context.Context, accountID string) (*model.EmployerRecord, error)
	// UpdateProfile applies upd to the account row and, for employers, the employer row.
	UpdateProfile(ctx context.Context, acct model.Account, upd model.ProfileUpdate) error
	SetMediaURL(ctx context.Context, params SetMediaURLParams) error
	// Register creates the account and its role record atomically.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error)
}

// SetMediaURLParams groups parameters for ProfileRepository.SetMediaURL.
type SetMediaURLParams struct {
	AccountID string
	Kind      model.MediaKind
	URL       string
}

// ExperienceRepository manages candidate work history.
// Mutations are scoped to the owning candidate in SQL.
type ExperienceRepository interface {
	// ListByCandidate returns experiences ordered current desc, start_date desc.
	ListByCandidate(ctx context.Context, candidateID string) ([]model.Experience, error)
	Create(ctx context.Context, candidateID string, in model.ExperienceInput) (*model.Experience, error)
	Update(ctx context.Context, params UpdateExperienceParams) (*model.Experience, error)
	// Delete returns false when no row owned by candidateID matched id.
	Delete(ctx context.Context, id, candidateID string) (bool, error)
}

// UpdateExperienceParams groups parameters for ExperienceRepository.Update.
type UpdateExperienceParams struct {
	ID          string
	CandidateID string
	Input       model.ExperienceInput
}

// JobPostingRepository manages employer postings.
type JobPostingRepository interface {
	Create(ctx context.Context, employerID string, req *model.CreateJobPostingRequest) (*model.JobPosting, error)
	GetByID(ctx context.Context, id string) (*model.JobPosting, error)
	// GetWithEmployer is the composite read of a posting with its employer summary.
	GetWithEmployer(ctx context.Context, id string) (*model.JobWithEmployer, error)
	// ListActive returns active postings ordered posted_at desc.
	ListActive(ctx context.Context, opts model.JobListOptions) ([]*model.JobWithEmployer, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*model.JobPosting, error)
	// SetActive only updates a posting owned by params.EmployerID.
	SetActive(ctx context.Context, params SetActiveParams) (*model.JobPosting, error)
}

// SetActiveParams groups parameters for JobPostingRepository.SetActive.
type SetActiveParams struct {
	ID         string
	EmployerID string
	Active     bool
}

// ApplicationRepository manages applications. Rows are never deleted.
type ApplicationRepository interface {
	// Create inserts a pending application; duplicate (job, candidate) pairs fail with a unique violation.
	Create(ctx context.Context, jobID, candidateID string) (*model.Application, error)
	GetDetails(ctx context.Context, id string) (*model.ApplicationDetails, error)
	// UpdateStatus only updates an application whose posting is owned by params.EmployerID.
	UpdateStatus(ctx context.Context, params UpdateStatusParams) (*model.Application, error)
	ListByCandidate(ctx context.Context, candidateID string) ([]*model.CandidateApplicationView, error)
	ListByEmployer(ctx context.Context, employerID string) ([]*model.EmployerApplicationView, error)
	Exists(ctx context.Context, jobID, candidateID string) (bool, error)
	CountByJob(ctx context.Context, jobID string) (int, error)
}

// UpdateStatusParams groups parameters for ApplicationRepository.UpdateStatus.
type UpdateStatusParams struct {
	ID         string
	EmployerID string
	// From is the status the caller validated the transition against. The write only
	// lands while the row still holds it; empty skips the check.
	From      model.ApplicationStatus
	Status    model.ApplicationStatus
	UpdatedAt time.Time
}

// CandidateDirectory looks candidates up by phone number.
type CandidateDirectory interface {
	// FindByPhoneFunction queries the search_candidate_by_phone database function.
	FindByPhoneFunction(ctx context.Context, normalized string) (*model.CandidateMatch, error)
	// FindByPhoneDirect joins accounts and candidates on the stored phone value.
	FindByPhoneDirect(ctx context.Context, normalized, raw string) (*model.CandidateMatch, error)
}
