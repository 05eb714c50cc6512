package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/data/pgxutil"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
)

// ExperienceRepo provides database operations for candidate work history.
type ExperienceRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewExperienceRepo creates a new ExperienceRepo with real time provider.
func NewExperienceRepo(db *sql.DB) *ExperienceRepo {
	return &ExperienceRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewExperienceRepoWithTimeProvider creates a new ExperienceRepo with a custom time provider.
func NewExperienceRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ExperienceRepo {
	return &ExperienceRepo{DB: db, timeProvider: tp}
}

var _ core.ExperienceRepository = (*ExperienceRepo)(nil)

const (
	experienceColumns = `id, candidate_id, role, company, start_date, end_date, current, description, created_at`

	experienceListQuery = `
		SELECT ` + experienceColumns + `
		FROM experiences
		WHERE candidate_id = $1
		ORDER BY current DESC, start_date DESC, created_at DESC`

	experienceInsertQuery = `
		INSERT INTO experiences (candidate_id, role, company, start_date, end_date, current, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + experienceColumns

	experienceUpdateQuery = `
		UPDATE experiences
		SET role = $3, company = $4, start_date = $5, end_date = $6, current = $7, description = $8
		WHERE id = $1 AND candidate_id = $2
		RETURNING ` + experienceColumns
)

// ListByCandidate returns a candidate's experiences, current first then newest start date.
func (r *ExperienceRepo) ListByCandidate(ctx context.Context, candidateID string) ([]model.Experience, error) {
	return listAll[model.Experience](ctx, r.DB, "list experiences", experienceListQuery, candidateID)
}

// Create inserts an experience for candidateID.
func (r *ExperienceRepo) Create(
	ctx context.Context,
	candidateID string,
	in model.ExperienceInput,
) (*model.Experience, error) {
	in.Normalize()
	if err := validateExperience(in); err != nil {
		return nil, err
	}

	var out model.Experience
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, experienceInsertQuery,
			candidateID, in.Role, in.Company, in.StartDate, in.EndDate, in.Current, in.Description,
			r.timeProvider.Now().UTC(),
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Experience])
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ForeignKeyViolation &&
			pgErr.ConstraintName == constraintExperiencesCandidate {
			return nil, apperrors.NotFoundf("candidate %s not found", candidateID)
		}
		return nil, mapExperienceErr("create experience", err)
	}
	return &out, nil
}

// Update replaces the writable fields of an experience owned by params.CandidateID.
func (r *ExperienceRepo) Update(ctx context.Context, params core.UpdateExperienceParams) (*model.Experience, error) {
	in := params.Input
	in.Normalize()
	if err := validateExperience(in); err != nil {
		return nil, err
	}

	var out model.Experience
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, experienceUpdateQuery,
			params.ID, params.CandidateID, in.Role, in.Company, in.StartDate, in.EndDate, in.Current, in.Description,
		)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Experience])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isMalformedID(err) {
			return nil, ErrExperienceNotFound
		}
		return nil, mapExperienceErr("update experience", err)
	}
	return &out, nil
}

// Delete removes an experience owned by candidateID.
func (r *ExperienceRepo) Delete(ctx context.Context, id, candidateID string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM experiences WHERE id = $1 AND candidate_id = $2`, id, candidateID)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		if isMalformedID(err) {
			return false, nil
		}
		return false, mapRepoErr("delete experience", err)
	}
	return rows > 0, nil
}

func validateExperience(in model.ExperienceInput) error {
	if err := in.Validate(); err != nil {
		if model.IsDateViolation(err) {
			return apperrors.Wrap(err, apperrors.ErrCodeInvalidState, err.Error())
		}
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	return nil
}

// mapExperienceErr turns the date check constraints into InvalidState errors.
func mapExperienceErr(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.CheckViolation {
		switch pgErr.ConstraintName {
		case constraintExperiencesCurrentOpen:
			return apperrors.Wrap(model.ErrCurrentWithEndDate, apperrors.ErrCodeInvalidState, model.ErrCurrentWithEndDate.Error())
		case constraintExperiencesDateOrder:
			return apperrors.Wrap(model.ErrEndBeforeStart, apperrors.ErrCodeInvalidState, model.ErrEndBeforeStart.Error())
		}
	}
	return mapRepoErr(op, err)
}
