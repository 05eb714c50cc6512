package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/data/pgxutil"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
)

// JobPostingRepo provides database operations for job postings.
type JobPostingRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewJobPostingRepo creates a new JobPostingRepo with real time provider.
func NewJobPostingRepo(db *sql.DB) *JobPostingRepo {
	return &JobPostingRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewJobPostingRepoWithTimeProvider creates a new JobPostingRepo with a custom time provider.
func NewJobPostingRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *JobPostingRepo {
	return &JobPostingRepo{DB: db, timeProvider: tp}
}

var _ core.JobPostingRepository = (*JobPostingRepo)(nil)

const (
	jobPostingColumns = `id, employer_id, title, location, employment_type, description, requirements,
		       salary, posted_at, deadline, is_active`

	jobPostingGetByIDQuery = `
		SELECT ` + jobPostingColumns + `
		FROM job_postings
		WHERE id = $1`

	jobPostingWithEmployerQuery = `SELECT * FROM job_with_employer($1)`

	jobPostingByEmployerQuery = `
		SELECT ` + jobPostingColumns + `
		FROM job_postings
		WHERE employer_id = $1
		ORDER BY posted_at DESC`

	jobPostingSetActiveQuery = `
		UPDATE job_postings
		SET is_active = $3
		WHERE id = $1 AND employer_id = $2
		RETURNING ` + jobPostingColumns

	defaultJobListLimit = 50
	maxJobListLimit     = 200
)

// Create inserts an active posting owned by employerID.
func (r *JobPostingRepo) Create(
	ctx context.Context,
	employerID string,
	req *model.CreateJobPostingRequest,
) (*model.JobPosting, error) {
	if req == nil {
		return nil, errors.New("create job posting request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	requirements := req.Requirements
	if requirements == nil {
		requirements = []string{}
	}

	var out model.JobPosting
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO job_postings (
				employer_id, title, location, employment_type, description, requirements, salary, posted_at, deadline, is_active
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, true
			) RETURNING `+jobPostingColumns,
			employerID,
			req.Title,
			req.Location,
			req.EmploymentType,
			req.Description,
			requirements,
			nullIfEmpty(req.Salary),
			r.timeProvider.Now().UTC(),
			req.Deadline,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.JobPosting])
		return err
	})
	if err != nil {
		return nil, mapRepoErr("create job posting", err)
	}
	return &out, nil
}

// GetByID retrieves a posting by ID.
func (r *JobPostingRepo) GetByID(ctx context.Context, id string) (*model.JobPosting, error) {
	return getOne[model.JobPosting](ctx, r.DB, getOneQuery{
		sql:      jobPostingGetByIDQuery,
		notFound: ErrJobPostingNotFound,
		op:       "get job posting",
	}, id)
}

// GetWithEmployer reads a posting together with its employer name and sector.
func (r *JobPostingRepo) GetWithEmployer(ctx context.Context, id string) (*model.JobWithEmployer, error) {
	return getOne[model.JobWithEmployer](ctx, r.DB, getOneQuery{
		sql:      jobPostingWithEmployerQuery,
		notFound: ErrJobPostingNotFound,
		op:       "get job posting with employer",
	}, id)
}

// ListActive returns active postings, newest first, optionally filtered by a title/description match.
func (r *JobPostingRepo) ListActive(
	ctx context.Context,
	opts model.JobListOptions,
) ([]*model.JobWithEmployer, error) {
	query, args := buildActiveJobsQuery(opts)
	rows, err := listAll[model.JobWithEmployer](ctx, r.DB, "list active job postings", query, args...)
	if err != nil {
		return nil, err
	}
	return toPtrs(rows), nil
}

func buildActiveJobsQuery(opts model.JobListOptions) (string, []any) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultJobListLimit
	}
	limit = min(limit, maxJobListLimit)
	offset := max(opts.Offset, 0)

	var b strings.Builder
	b.WriteString(`
		SELECT j.id, j.employer_id, j.title, j.location, j.employment_type, j.description, j.requirements,
		       j.salary, j.posted_at, j.deadline, j.is_active,
		       a.name AS employer_name, e.sector AS employer_sector
		FROM job_postings j
		JOIN employers e ON e.account_id = j.employer_id
		JOIN accounts a ON a.id = e.account_id
		WHERE j.is_active`)

	args := make([]any, 0, 3)
	if q := strings.TrimSpace(opts.Query); q != "" {
		args = append(args, "%"+escapeLike(q)+"%")
		fmt.Fprintf(&b, " AND (j.title ILIKE $%d OR j.description ILIKE $%d)", len(args), len(args))
	}
	args = append(args, limit, offset)
	fmt.Fprintf(&b, " ORDER BY j.posted_at DESC, j.id LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return b.String(), args
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// ListByEmployer returns every posting owned by employerID, newest first.
func (r *JobPostingRepo) ListByEmployer(ctx context.Context, employerID string) ([]*model.JobPosting, error) {
	rows, err := listAll[model.JobPosting](ctx, r.DB, "list employer job postings", jobPostingByEmployerQuery, employerID)
	if err != nil {
		return nil, err
	}
	return toPtrs(rows), nil
}

// SetActive toggles is_active on a posting owned by params.EmployerID.
func (r *JobPostingRepo) SetActive(ctx context.Context, params core.SetActiveParams) (*model.JobPosting, error) {
	return getOne[model.JobPosting](ctx, r.DB, getOneQuery{
		sql:      jobPostingSetActiveQuery,
		notFound: ErrJobPostingNotFound,
		op:       "set job posting active",
	}, params.ID, params.EmployerID, params.Active)
}
