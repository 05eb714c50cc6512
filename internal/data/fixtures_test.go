package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/workvortex/vortex-api/internal/domain/model"
	"github.com/workvortex/vortex-api/internal/testutil"
)

func createTestCandidate(t *testing.T, db *sql.DB, b *testutil.RegisterRequestBuilder) *model.Account {
	t.Helper()
	if b == nil {
		b = testutil.NewCandidate()
	}
	acct, err := NewProfileRepo(db).Register(context.Background(), b.Build())
	require.NoError(t, err)
	return acct
}

func createTestEmployer(t *testing.T, db *sql.DB) *model.Account {
	t.Helper()
	acct, err := NewProfileRepo(db).Register(context.Background(), testutil.NewEmployer().Build())
	require.NoError(t, err)
	return acct
}

func createTestPosting(t *testing.T, db *sql.DB, employerID string, b *testutil.JobPostingBuilder) *model.JobPosting {
	t.Helper()
	if b == nil {
		b = testutil.NewJobPosting()
	}
	job, err := NewJobPostingRepo(db).Create(context.Background(), employerID, b.Build())
	require.NoError(t, err)
	return job
}
