package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/data/pgxutil"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
)

// ApplicationRepo provides database operations for job applications.
// Applications are never deleted.
type ApplicationRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewApplicationRepo creates a new ApplicationRepo with real time provider.
func NewApplicationRepo(db *sql.DB) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewApplicationRepoWithTimeProvider creates a new ApplicationRepo with a custom time provider.
func NewApplicationRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ApplicationRepo {
	return &ApplicationRepo{DB: db, timeProvider: tp}
}

var _ core.ApplicationRepository = (*ApplicationRepo)(nil)

const (
	applicationColumns = `id, job_id, candidate_id, status, applied_at, updated_at`

	applicationInsertQuery = `
		INSERT INTO applications (job_id, candidate_id, status, applied_at, updated_at)
		VALUES ($1, $2, 'pending', $3, $3)
		RETURNING ` + applicationColumns

	applicationDetailsQuery = `SELECT * FROM application_details($1)`

	// The ownership and from-status predicates live in the UPDATE so a status change
	// can only land on the caller's application while it is still in the checked state.
	applicationUpdateStatusQuery = `
		UPDATE applications ap
		SET status = $3, updated_at = $4
		FROM job_postings j
		WHERE ap.id = $1 AND j.id = ap.job_id AND j.employer_id = $2
		  AND ($5::text = '' OR ap.status = $5::text)
		RETURNING ap.id, ap.job_id, ap.candidate_id, ap.status, ap.applied_at, ap.updated_at`

	applicationOwnedQuery = `
		SELECT ap.id, ap.job_id, ap.candidate_id, ap.status, ap.applied_at, ap.updated_at
		FROM applications ap
		JOIN job_postings j ON j.id = ap.job_id
		WHERE ap.id = $1 AND j.employer_id = $2`

	applicationByCandidateQuery = `
		SELECT ap.id, ap.job_id, ap.candidate_id, ap.status, ap.applied_at, ap.updated_at,
		       j.title AS job_title, j.location AS job_location,
		       j.employer_id, ea.name AS employer_name
		FROM applications ap
		JOIN job_postings j ON j.id = ap.job_id
		JOIN accounts ea ON ea.id = j.employer_id
		WHERE ap.candidate_id = $1
		ORDER BY ap.applied_at DESC, ap.id`

	applicationByEmployerQuery = `
		SELECT ap.id, ap.job_id, ap.candidate_id, ap.status, ap.applied_at, ap.updated_at,
		       j.title AS job_title,
		       ca.name AS candidate_name, ca.email AS candidate_email, ca.phone AS candidate_phone
		FROM applications ap
		JOIN job_postings j ON j.id = ap.job_id
		JOIN accounts ca ON ca.id = ap.candidate_id
		WHERE j.employer_id = $1
		ORDER BY ap.applied_at DESC, ap.id`

	applicationExistsQuery = `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`

	applicationCountByJobQuery = `SELECT count(*) FROM applications WHERE job_id = $1`
)

// Create inserts a pending application. A second application for the same pair fails with ErrAlreadyApplied.
func (r *ApplicationRepo) Create(ctx context.Context, jobID, candidateID string) (*model.Application, error) {
	var out model.Application
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, applicationInsertQuery, jobID, candidateID, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Application])
		return err
	})
	if err != nil {
		if apperrors.IsUniqueViolation(err, constraintApplicationsJobCand) {
			return nil, ErrAlreadyApplied
		}
		return nil, mapRepoErr("create application", err)
	}
	return &out, nil
}

// GetDetails reads the composite application view.
func (r *ApplicationRepo) GetDetails(ctx context.Context, id string) (*model.ApplicationDetails, error) {
	return getOne[model.ApplicationDetails](ctx, r.DB, getOneQuery{
		sql:      applicationDetailsQuery,
		notFound: ErrApplicationNotFound,
		op:       "get application details",
	}, id)
}

// errNoRowsUpdated marks a status UPDATE that matched nothing.
var errNoRowsUpdated = errors.New("no application row updated")

// UpdateStatus writes params.Status when the application's posting is owned by params.EmployerID
// and the row still holds params.From. If another writer moved the row first, the current row is
// returned when it already holds params.Status; otherwise the result is InvalidTransition.
func (r *ApplicationRepo) UpdateStatus(ctx context.Context, params core.UpdateStatusParams) (*model.Application, error) {
	updatedAt := params.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = r.timeProvider.Now()
	}
	app, err := getOne[model.Application](ctx, r.DB, getOneQuery{
		sql:      applicationUpdateStatusQuery,
		notFound: errNoRowsUpdated,
		op:       "update application status",
	}, params.ID, params.EmployerID, params.Status, updatedAt.UTC(), string(params.From))
	if !errors.Is(err, errNoRowsUpdated) {
		return app, err
	}

	cur, err := getOne[model.Application](ctx, r.DB, getOneQuery{
		sql:      applicationOwnedQuery,
		notFound: ErrApplicationNotFound,
		op:       "reload application",
	}, params.ID, params.EmployerID)
	if err != nil {
		return nil, err
	}
	if cur.Status == params.Status {
		return cur, nil
	}
	return nil, apperrors.InvalidTransitionf("application is now %s, not %s", cur.Status, params.From)
}

// ListByCandidate returns the candidate's applications, newest first.
func (r *ApplicationRepo) ListByCandidate(
	ctx context.Context,
	candidateID string,
) ([]*model.CandidateApplicationView, error) {
	rows, err := listAll[model.CandidateApplicationView](
		ctx, r.DB, "list candidate applications", applicationByCandidateQuery, candidateID,
	)
	if err != nil {
		return nil, err
	}
	return toPtrs(rows), nil
}

// ListByEmployer returns applications to the employer's postings, newest first.
func (r *ApplicationRepo) ListByEmployer(
	ctx context.Context,
	employerID string,
) ([]*model.EmployerApplicationView, error) {
	rows, err := listAll[model.EmployerApplicationView](
		ctx, r.DB, "list employer applications", applicationByEmployerQuery, employerID,
	)
	if err != nil {
		return nil, err
	}
	return toPtrs(rows), nil
}

// Exists reports whether candidateID has applied to jobID.
func (r *ApplicationRepo) Exists(ctx context.Context, jobID, candidateID string) (bool, error) {
	var exists bool
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, applicationExistsQuery, jobID, candidateID).Scan(&exists)
	})
	if err != nil {
		if isMalformedID(err) {
			return false, nil
		}
		return false, mapRepoErr("check application exists", err)
	}
	return exists, nil
}

// CountByJob returns how many applications jobID has received.
func (r *ApplicationRepo) CountByJob(ctx context.Context, jobID string) (int, error) {
	var n int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, applicationCountByJobQuery, jobID).Scan(&n)
	})
	if err != nil {
		if isMalformedID(err) || errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, mapRepoErr("count applications", err)
	}
	return int(n), nil
}
