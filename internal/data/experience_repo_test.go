package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
	"github.com/workvortex/vortex-api/internal/testutil"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExperienceRepo_CRUD(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewExperienceRepo(db)
		cand := createTestCandidate(t, db, nil)

		old, err := repo.Create(ctx, cand.ID, testutil.NewExperience().
			WithRole("Intern").Between(day(2018, 1, 1), day(2018, 12, 31)).Build())
		require.NoError(t, err)
		assert.Equal(t, cand.ID, old.CandidateID)

		recent, err := repo.Create(ctx, cand.ID, testutil.NewExperience().
			WithRole("Engineer").Between(day(2019, 1, 1), day(2023, 1, 1)).Build())
		require.NoError(t, err)

		current, err := repo.Create(ctx, cand.ID, testutil.NewExperience().
			WithRole("Lead").Current(day(2017, 1, 1)).Build())
		require.NoError(t, err)
		assert.True(t, current.Current)
		assert.Nil(t, current.EndDate)

		list, err := repo.ListByCandidate(ctx, cand.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, []string{current.ID, recent.ID, old.ID}, []string{list[0].ID, list[1].ID, list[2].ID})

		in := testutil.NewExperience().WithRole("Senior Engineer").Between(day(2019, 1, 1), day(2024, 1, 1)).Build()
		updated, err := repo.Update(ctx, core.UpdateExperienceParams{ID: recent.ID, CandidateID: cand.ID, Input: in})
		require.NoError(t, err)
		assert.Equal(t, "Senior Engineer", updated.Role)

		// another candidate cannot touch it
		other := createTestCandidate(t, db, nil)
		_, err = repo.Update(ctx, core.UpdateExperienceParams{ID: recent.ID, CandidateID: other.ID, Input: in})
		require.ErrorIs(t, err, ErrExperienceNotFound)
		deleted, err := repo.Delete(ctx, recent.ID, other.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		deleted, err = repo.Delete(ctx, recent.ID, cand.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = repo.Delete(ctx, "not-a-uuid", cand.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = repo.Update(ctx, core.UpdateExperienceParams{ID: uuid.NewString(), CandidateID: cand.ID, Input: in})
		require.ErrorIs(t, err, ErrExperienceNotFound)
	})
}

func TestExperienceRepo_DateInvariants(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewExperienceRepo(db)
		cand := createTestCandidate(t, db, nil)

		in := testutil.NewExperience().Current(day(2020, 1, 1)).Build()
		end := day(2021, 1, 1)
		in.EndDate = &end
		_, err := repo.Create(ctx, cand.ID, in)
		require.Error(t, err)
		assert.True(t, apperrors.IsInvalidState(err))
		assert.ErrorIs(t, err, model.ErrCurrentWithEndDate)

		_, err = repo.Create(ctx, cand.ID, testutil.NewExperience().Between(day(2021, 1, 1), day(2020, 1, 1)).Build())
		assert.True(t, apperrors.IsInvalidState(err))
		assert.ErrorIs(t, err, model.ErrEndBeforeStart)

		list, err := repo.ListByCandidate(ctx, cand.ID)
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}

func TestExperienceRepo_UnknownCandidate(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewExperienceRepo(db)
		_, err := repo.Create(context.Background(), "no-such-candidate", testutil.NewExperience().Build())
		require.Error(t, err)
		assert.True(t, apperrors.IsNotFound(err))
		assert.Contains(t, err.Error(), "candidate no-such-candidate not found")

		// an employer account has no candidate record
		emp := createTestEmployer(t, db)
		_, err = repo.Create(context.Background(), emp.ID, testutil.NewExperience().Build())
		assert.True(t, apperrors.IsNotFound(err))
	})
}
