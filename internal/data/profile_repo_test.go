package data

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
	"github.com/workvortex/vortex-api/internal/testutil"
)

func TestProfileRepo_RegisterAndGet(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
		repo := NewProfileRepoWithTimeProvider(db, NewFixedTimeProvider(fixed))

		req := testutil.NewCandidate().WithPhone("+1 (555) 010-2000").Build()
		req.Email = "  " + strings.ToUpper(req.Email) + " "
		acct, err := repo.Register(ctx, req)
		require.NoError(t, err)
		assert.Equal(t, model.RoleCandidate, acct.Role)
		assert.Equal(t, strings.ToLower(strings.TrimSpace(req.Email)), acct.Email)
		assert.True(t, acct.CreatedAt.Equal(fixed))

		got, err := repo.GetAccount(ctx, acct.ID)
		require.NoError(t, err)
		assert.Equal(t, acct.Email, got.Email)
		require.NotNil(t, got.Phone)
		assert.Equal(t, "+1 (555) 010-2000", *got.Phone)

		rec, err := repo.GetCandidate(ctx, acct.ID)
		require.NoError(t, err)
		assert.Nil(t, rec.ProfileImageURL)

		_, err = repo.GetEmployer(ctx, acct.ID)
		require.ErrorIs(t, err, ErrEmployerNotFound)
		assert.True(t, apperrors.IsNotFound(err))

		emp, err := repo.Register(ctx, testutil.NewEmployer().WithSector("Retail").Build())
		require.NoError(t, err)
		erec, err := repo.GetEmployer(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, "Retail", erec.Sector)
	})
}

func TestProfileRepo_RegisterDuplicateEmail(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewProfileRepo(db)

		first := testutil.NewCandidate().Build()
		_, err := repo.Register(ctx, first)
		require.NoError(t, err)

		dup := testutil.NewCandidate().WithEmail(first.Email).Build()
		_, err = repo.Register(ctx, dup)
		require.ErrorIs(t, err, ErrEmailExists)

		// The failed registration must not leave a half-created account behind.
		_, err = repo.GetAccount(ctx, dup.ID)
		require.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestProfileRepo_UpdateProfile(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewProfileRepo(db)
		emp := createTestEmployer(t, db)

		err := repo.UpdateProfile(ctx, *emp, model.ProfileUpdate{
			Name:        testutil.StringPtr("Acme Corp"),
			Description: testutil.StringPtr("We make anvils."),
		})
		require.NoError(t, err)

		got, err := repo.GetAccount(ctx, emp.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme Corp", got.Name)
		rec, err := repo.GetEmployer(ctx, emp.ID)
		require.NoError(t, err)
		require.NotNil(t, rec.Description)
		assert.Equal(t, "We make anvils.", *rec.Description)

		// clearing the phone stores NULL
		require.NoError(t, repo.UpdateProfile(ctx, *emp, model.ProfileUpdate{Phone: testutil.StringPtr("")}))
		got, err = repo.GetAccount(ctx, emp.ID)
		require.NoError(t, err)
		assert.Nil(t, got.Phone)

		cand := createTestCandidate(t, db, nil)
		err = repo.UpdateProfile(ctx, *cand, model.ProfileUpdate{Sector: testutil.StringPtr("x")})
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestProfileRepo_SetMediaURL(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewProfileRepo(db)
		cand := createTestCandidate(t, db, nil)
		emp := createTestEmployer(t, db)

		require.NoError(t, repo.SetMediaURL(ctx, core.SetMediaURLParams{
			AccountID: cand.ID, Kind: model.MediaResume, URL: "https://cdn/resume.pdf",
		}))
		rec, err := repo.GetCandidate(ctx, cand.ID)
		require.NoError(t, err)
		require.NotNil(t, rec.ResumeURL)
		assert.Equal(t, "https://cdn/resume.pdf", *rec.ResumeURL)

		require.NoError(t, repo.SetMediaURL(ctx, core.SetMediaURLParams{
			AccountID: emp.ID, Kind: model.MediaLogo, URL: "https://cdn/logo.png",
		}))

		// a candidate has no employer row to carry a logo
		err = repo.SetMediaURL(ctx, core.SetMediaURLParams{AccountID: cand.ID, Kind: model.MediaLogo, URL: "x"})
		require.ErrorIs(t, err, ErrEmployerNotFound)
	})
}

func TestBuildAccountUpdate(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	set, args := buildAccountUpdate(model.ProfileUpdate{
		Name:  testutil.StringPtr("  Ada  "),
		Phone: testutil.StringPtr(""),
	}, now)
	assert.Equal(t, "name = $1, phone = NULL, updated_at = $2", set)
	assert.Equal(t, []any{"Ada", now}, args)
}

func TestMediaColumn(t *testing.T) {
	t.Parallel()
	table, col, err := mediaColumn(model.MediaProfileImage)
	require.NoError(t, err)
	assert.Equal(t, "candidates", table)
	assert.Equal(t, "profile_image_url", col)

	_, _, err = mediaColumn(model.MediaKind("avatar"))
	assert.True(t, apperrors.IsValidation(err))
}
