package data

import (
	"errors"

	apperrors "github.com/workvortex/vortex-api/internal/errors"
)

// Shared sentinel errors for data-layer repositories.
// They carry an error code so callers can use either errors.Is or the apperrors predicates.
var (
	// Profile repository sentinels.
	ErrAccountNotFound   = apperrors.NotFound("account not found")
	ErrCandidateNotFound = apperrors.NotFound("candidate record not found")
	ErrEmployerNotFound  = apperrors.NotFound("employer record not found")
	ErrEmailExists       = apperrors.ValidationField("email", "an account with this email already exists")
	ErrAccountExists     = apperrors.Conflict("account already registered")

	// Experience repository sentinels.
	ErrExperienceNotFound = apperrors.NotFound("experience not found")

	// Job posting repository sentinels.
	ErrJobPostingNotFound = apperrors.NotFound("job posting not found")

	// Application repository sentinels.
	ErrApplicationNotFound = apperrors.NotFound("application not found")
	ErrAlreadyApplied      = apperrors.AlreadyApplied("candidate has already applied to this job posting")

	// ErrNilDB is returned when a repository is constructed without a database handle.
	ErrNilDB = errors.New("database handle is required")
)

// Constraint names referenced by repositories.
const (
	constraintAccountsEmail          = "accounts_email_key"
	constraintAccountsPK             = "accounts_pkey"
	constraintApplicationsJobCand    = "applications_job_candidate_key"
	constraintExperiencesCurrentOpen = "experiences_current_open_check"
	constraintExperiencesDateOrder   = "experiences_date_order_check"
	constraintExperiencesCandidate   = "experiences_candidate_id_fkey"
)
