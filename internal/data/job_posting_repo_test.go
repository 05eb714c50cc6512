package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
	"github.com/workvortex/vortex-api/internal/testutil"
)

func TestJobPostingRepo_CreateGetList(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		clock := NewFixedTimeProvider(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))
		repo := NewJobPostingRepoWithTimeProvider(db, clock)
		emp := createTestEmployer(t, db)

		first, err := repo.Create(ctx, emp.ID, testutil.NewJobPosting().WithTitle("Go Developer").Build())
		require.NoError(t, err)
		assert.True(t, first.IsActive)
		assert.Equal(t, []string{"Go", "PostgreSQL"}, first.Requirements)

		clock.AddTime(time.Hour)
		second, err := repo.Create(ctx, emp.ID, testutil.NewJobPosting().
			WithTitle("Data Analyst").WithDescription("SQL and 100% dashboards").Build())
		require.NoError(t, err)

		got, err := repo.GetWithEmployer(ctx, first.ID)
		require.NoError(t, err)
		assert.Equal(t, "Go Developer", got.Title)
		assert.Equal(t, emp.Name, got.EmployerName)
		assert.Equal(t, "Technology", got.EmployerSector)

		active, err := repo.ListActive(ctx, model.JobListOptions{})
		require.NoError(t, err)
		require.Len(t, active, 2)
		assert.Equal(t, second.ID, active[0].ID, "newest first")

		filtered, err := repo.ListActive(ctx, model.JobListOptions{Query: "go dev"})
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		assert.Equal(t, first.ID, filtered[0].ID)

		literal, err := repo.ListActive(ctx, model.JobListOptions{Query: "100%"})
		require.NoError(t, err)
		require.Len(t, literal, 1)
		assert.Equal(t, second.ID, literal[0].ID)

		mine, err := repo.ListByEmployer(ctx, emp.ID)
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		_, err = repo.GetByID(ctx, "not-a-uuid")
		require.ErrorIs(t, err, ErrJobPostingNotFound)
	})
}

func TestJobPostingRepo_SetActive(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewJobPostingRepo(db)
		emp := createTestEmployer(t, db)
		other := createTestEmployer(t, db)
		job := createTestPosting(t, db, emp.ID, nil)

		_, err := repo.SetActive(ctx, core.SetActiveParams{ID: job.ID, EmployerID: other.ID, Active: false})
		require.ErrorIs(t, err, ErrJobPostingNotFound)

		out, err := repo.SetActive(ctx, core.SetActiveParams{ID: job.ID, EmployerID: emp.ID, Active: false})
		require.NoError(t, err)
		assert.False(t, out.IsActive)

		active, err := repo.ListActive(ctx, model.JobListOptions{})
		require.NoError(t, err)
		for _, j := range active {
			assert.NotEqual(t, job.ID, j.ID)
		}
	})
}

func TestJobPostingRepo_CreateValidation(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		emp := createTestEmployer(t, db)
		_, err := NewJobPostingRepo(db).Create(context.Background(), emp.ID, testutil.NewJobPosting().WithTitle(" ").Build())
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestBuildActiveJobsQuery(t *testing.T) {
	t.Parallel()

	q, args := buildActiveJobsQuery(model.JobListOptions{})
	assert.Contains(t, q, "WHERE j.is_active ORDER BY j.posted_at DESC")
	assert.Equal(t, []any{defaultJobListLimit, 0}, args)

	q, args = buildActiveJobsQuery(model.JobListOptions{Query: " nurse_ ", Limit: 1000, Offset: -3})
	assert.Contains(t, q, "j.title ILIKE $1 OR j.description ILIKE $1")
	assert.Contains(t, q, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{`%nurse\_%`, maxJobListLimit, 0}, args)
}
