package data

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workvortex/vortex-api/internal/domain/model"
	"github.com/workvortex/vortex-api/internal/testutil"
)

func TestDirectoryRepo_FindByPhone(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewDirectoryRepo(db)
		cand := createTestCandidate(t, db, testutil.NewCandidate().WithPhone("+1 (555) 123-4567"))

		// the function compares normalized forms
		m, err := repo.FindByPhoneFunction(ctx, model.NormalizePhone("+1 555 123 4567"))
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, cand.ID, m.ID)
		assert.Equal(t, cand.Email, m.Email)

		// direct lookup matches the stored text exactly
		m, err = repo.FindByPhoneDirect(ctx, "+15551234567", "+1 (555) 123-4567")
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, cand.ID, m.ID)

		// and normalizes the stored text before comparing with the normalized input
		m, err = repo.FindByPhoneDirect(ctx, "+15551234567", "+1.555.123.4567")
		require.NoError(t, err)
		require.NotNil(t, m)
		assert.Equal(t, cand.ID, m.ID)

		m, err = repo.FindByPhoneDirect(ctx, "5551234567", "555 123 4567")
		require.NoError(t, err)
		assert.Nil(t, m, "a leading + is significant")

		m, err = repo.FindByPhoneFunction(ctx, "000")
		require.NoError(t, err)
		assert.Nil(t, m)
	})
}

func TestDirectoryRepo_IgnoresEmployers(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		_, err := NewProfileRepo(db).Register(ctx, testutil.NewEmployer().WithPhone("5550001").Build())
		require.NoError(t, err)

		m, err := NewDirectoryRepo(db).FindByPhoneFunction(ctx, "5550001")
		require.NoError(t, err)
		assert.Nil(t, m)
	})
}
