package data

import (
	"context"
	"database/sql"
	"errors"

	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/domain/model"
)

// DirectoryRepo answers candidate phone lookups.
type DirectoryRepo struct {
	DB *sql.DB
}

// NewDirectoryRepo creates a new DirectoryRepo.
func NewDirectoryRepo(db *sql.DB) *DirectoryRepo {
	return &DirectoryRepo{DB: db}
}

var _ core.CandidateDirectory = (*DirectoryRepo)(nil)

const (
	directoryFunctionQuery = `SELECT * FROM search_candidate_by_phone($1)`

	// The stored phone is normalized with the same expression search_candidate_by_phone
	// uses, so this tier still matches formatted numbers when the function is unavailable.
	directoryDirectQuery = `
		SELECT a.id, a.name, a.email, a.phone, c.profile_image_url, c.resume_url
		FROM accounts a
		JOIN candidates c ON c.account_id = a.id
		WHERE a.role = 'candidate'
		  AND a.phone IS NOT NULL
		  AND (a.phone = $1
		       OR (CASE WHEN left(btrim(a.phone), 1) = '+' THEN '+' ELSE '' END
		           || regexp_replace(a.phone, '[^0-9]', '', 'g')) = $2)
		ORDER BY a.created_at
		LIMIT 1`
)

// errNoMatch marks an empty lookup; findOne translates it to (nil, nil).
var errNoMatch = errors.New("no directory match")

// FindByPhoneFunction queries the search_candidate_by_phone database function.
// Returns (nil, nil) when nothing matches.
func (r *DirectoryRepo) FindByPhoneFunction(ctx context.Context, normalized string) (*model.CandidateMatch, error) {
	return r.findOne(ctx, directoryFunctionQuery, "search candidate by phone", normalized)
}

// FindByPhoneDirect matches the stored phone verbatim against raw, or in normalized form against normalized.
// Returns (nil, nil) when nothing matches.
func (r *DirectoryRepo) FindByPhoneDirect(
	ctx context.Context,
	normalized, raw string,
) (*model.CandidateMatch, error) {
	return r.findOne(ctx, directoryDirectQuery, "find candidate by phone", raw, normalized)
}

func (r *DirectoryRepo) findOne(ctx context.Context, query, op string, args ...any) (*model.CandidateMatch, error) {
	m, err := getOne[model.CandidateMatch](ctx, r.DB, getOneQuery{sql: query, notFound: errNoMatch, op: op}, args...)
	if errors.Is(err, errNoMatch) {
		return nil, nil
	}
	return m, err
}
