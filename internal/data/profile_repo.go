package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/data/pgxutil"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
)

// ProfileRepo provides database operations for accounts and their role records.
type ProfileRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewProfileRepo creates a new ProfileRepo with real time provider.
func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewProfileRepoWithTimeProvider creates a new ProfileRepo with a custom time provider (useful for tests).
func NewProfileRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *ProfileRepo {
	return &ProfileRepo{DB: db, timeProvider: tp}
}

var _ core.ProfileRepository = (*ProfileRepo)(nil)

const (
	accountGetByIDQuery = `
		SELECT id, email, name, phone, role, created_at, updated_at
		FROM accounts
		WHERE id = $1`

	candidateGetQuery = `
		SELECT account_id, profile_image_url, resume_url, updated_at
		FROM candidates
		WHERE account_id = $1`

	employerGetQuery = `
		SELECT account_id, sector, logo_url, description, updated_at
		FROM employers
		WHERE account_id = $1`
)

// GetAccount retrieves an account by ID.
func (r *ProfileRepo) GetAccount(ctx context.Context, id string) (*model.Account, error) {
	return getOne[model.Account](ctx, r.DB, getOneQuery{
		sql:      accountGetByIDQuery,
		notFound: ErrAccountNotFound,
		op:       "get account",
	}, id)
}

// GetCandidate retrieves the candidate record for an account.
func (r *ProfileRepo) GetCandidate(ctx context.Context, accountID string) (*model.CandidateRecord, error) {
	return getOne[model.CandidateRecord](ctx, r.DB, getOneQuery{
		sql:      candidateGetQuery,
		notFound: ErrCandidateNotFound,
		op:       "get candidate",
	}, accountID)
}

// GetEmployer retrieves the employer record for an account.
func (r *ProfileRepo) GetEmployer(ctx context.Context, accountID string) (*model.EmployerRecord, error) {
	return getOne[model.EmployerRecord](ctx, r.DB, getOneQuery{
		sql:      employerGetQuery,
		notFound: ErrEmployerNotFound,
		op:       "get employer",
	}, accountID)
}

// UpdateProfile applies upd to the account row and, for employers, the employer row, in one transaction.
func (r *ProfileRepo) UpdateProfile(ctx context.Context, acct model.Account, upd model.ProfileUpdate) error {
	if err := upd.Validate(acct.Role); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	now := r.timeProvider.Now().UTC()

	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		if upd.HasAccountUpdates() {
			set, args := buildAccountUpdate(upd, now)
			args = append(args, acct.ID)
			ct, err := tx.Exec(ctx, "UPDATE accounts SET "+set+fmt.Sprintf(" WHERE id = $%d", len(args)), args...)
			if err != nil {
				return err
			}
			if ct.RowsAffected() == 0 {
				return ErrAccountNotFound
			}
		}
		if upd.HasEmployerUpdates() {
			set, args := buildEmployerUpdate(upd, now)
			args = append(args, acct.ID)
			ct, err := tx.Exec(ctx, "UPDATE employers SET "+set+fmt.Sprintf(" WHERE account_id = $%d", len(args)), args...)
			if err != nil {
				return err
			}
			if ct.RowsAffected() == 0 {
				return ErrEmployerNotFound
			}
		}
		return nil
	}})
	if err != nil {
		return mapRepoErr("update profile", err)
	}
	return nil
}

func buildAccountUpdate(upd model.ProfileUpdate, now time.Time) (string, []any) {
	parts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if upd.Name != nil {
		args = append(args, strings.TrimSpace(*upd.Name))
		parts = append(parts, fmt.Sprintf("name = $%d", len(args)))
	}
	if upd.Phone != nil {
		phone := strings.TrimSpace(*upd.Phone)
		if phone == "" {
			parts = append(parts, "phone = NULL")
		} else {
			args = append(args, phone)
			parts = append(parts, fmt.Sprintf("phone = $%d", len(args)))
		}
	}
	args = append(args, now)
	parts = append(parts, fmt.Sprintf("updated_at = $%d", len(args)))
	return strings.Join(parts, ", "), args
}

func buildEmployerUpdate(upd model.ProfileUpdate, now time.Time) (string, []any) {
	parts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	if upd.Sector != nil {
		args = append(args, strings.TrimSpace(*upd.Sector))
		parts = append(parts, fmt.Sprintf("sector = $%d", len(args)))
	}
	if upd.Description != nil {
		desc := strings.TrimSpace(*upd.Description)
		if desc == "" {
			parts = append(parts, "description = NULL")
		} else {
			args = append(args, desc)
			parts = append(parts, fmt.Sprintf("description = $%d", len(args)))
		}
	}
	args = append(args, now)
	parts = append(parts, fmt.Sprintf("updated_at = $%d", len(args)))
	return strings.Join(parts, ", "), args
}

// mediaColumn maps a media slot to its table and column.
func mediaColumn(kind model.MediaKind) (table, column string, err error) {
	switch kind {
	case model.MediaProfileImage:
		return "candidates", "profile_image_url", nil
	case model.MediaResume:
		return "candidates", "resume_url", nil
	case model.MediaLogo:
		return "employers", "logo_url", nil
	default:
		return "", "", apperrors.ValidationField("kind", fmt.Sprintf("unsupported media kind %q", kind))
	}
}

// SetMediaURL records an uploaded blob URL on the owning role record.
func (r *ProfileRepo) SetMediaURL(ctx context.Context, params core.SetMediaURLParams) error {
	table, column, err := mediaColumn(params.Kind)
	if err != nil {
		return err
	}
	notFound := ErrCandidateNotFound
	if table == "employers" {
		notFound = ErrEmployerNotFound
	}

	var affected int64
	err = pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		// table and column come from the fixed mediaColumn switch.
		ct, execErr := conn.Exec(ctx,
			"UPDATE "+table+" SET "+column+" = $1, updated_at = $2 WHERE account_id = $3",
			params.URL, r.timeProvider.Now().UTC(), params.AccountID)
		if execErr != nil {
			return execErr
		}
		affected = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return mapRepoErr("set media url", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

// Register creates the account and its role record atomically.
func (r *ProfileRepo) Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error) {
	if req == nil {
		return nil, errors.New("register request is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	now := r.timeProvider.Now().UTC()
	var out model.Account
	err := pgxutil.WithPgxTx(ctx, r.DB, pgxutil.TxConfig{Fn: func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, `
			INSERT INTO accounts (id, email, name, phone, role, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $6)
			RETURNING id, email, name, phone, role, created_at, updated_at`,
			req.ID, req.Email, req.Name, nullIfEmpty(req.Phone), req.Role, now)
		if err != nil {
			return err
		}
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Account])
		if err != nil {
			return err
		}

		switch req.Role {
		case model.RoleCandidate:
			_, err = tx.Exec(ctx,
				`INSERT INTO candidates (account_id, created_at, updated_at) VALUES ($1, $2, $2)`,
				out.ID, now)
		case model.RoleEmployer:
			_, err = tx.Exec(ctx,
				`INSERT INTO employers (account_id, sector, created_at, updated_at) VALUES ($1, $2, $3, $3)`,
				out.ID, req.Sector, now)
		}
		return err
	}})
	if err != nil {
		switch {
		case apperrors.IsUniqueViolation(err, constraintAccountsEmail):
			return nil, ErrEmailExists
		case apperrors.IsUniqueViolation(err, constraintAccountsPK):
			return nil, ErrAccountExists
		}
		return nil, mapRepoErr("register account", err)
	}
	return &out, nil
}

func nullIfEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
