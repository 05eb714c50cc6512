package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
	"github.com/workvortex/vortex-api/internal/mocks"
)

func TestRegistrationService_Register(t *testing.T) {
	t.Parallel()
	profiles := mocks.NewMockProfileRepository(gomock.NewController(t))
	svc := NewRegistrationService(RegistrationServiceOptions{Profiles: profiles})

	profiles.EXPECT().Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.RegisterRequest) (*model.Account, error) {
			assert.Equal(t, "ana@example.com", req.Email)
			assert.Equal(t, model.RoleCandidate, req.Role)
			return &model.Account{ID: "c-1", Email: req.Email, Role: req.Role}, nil
		})

	acct, err := svc.Register(context.Background(), &model.RegisterRequest{
		Email: "  Ana@Example.com ", Name: "Ana", Role: model.RoleCandidate,
	})
	require.NoError(t, err)
	assert.Equal(t, "c-1", acct.ID)
}

func TestRegistrationService_RegisterValidation(t *testing.T) {
	t.Parallel()
	svc := NewRegistrationService(RegistrationServiceOptions{
		Profiles: mocks.NewMockProfileRepository(gomock.NewController(t)),
	})
	ctx := context.Background()

	tests := map[string]*model.RegisterRequest{
		"nil":              nil,
		"missing email":    {Name: "A", Role: model.RoleCandidate},
		"bad role":         {Email: "a@example.com", Name: "A", Role: "admin"},
		"employer sector":  {Email: "a@example.com", Name: "A", Role: model.RoleEmployer},
		"phone w/o digits": {Email: "a@example.com", Name: "A", Role: model.RoleCandidate, Phone: strPtr("call me")},
	}
	for name, req := range tests {
		_, err := svc.Register(ctx, req)
		assert.True(t, apperrors.IsValidation(err), name)
	}
}

func TestRegistrationService_RegisterIdentity(t *testing.T) {
	t.Parallel()
	profiles := mocks.NewMockProfileRepository(gomock.NewController(t))
	svc := NewRegistrationService(RegistrationServiceOptions{Profiles: profiles})
	ctx := context.Background()

	profiles.EXPECT().Register(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req *model.RegisterRequest) (*model.Account, error) {
			assert.Equal(t, "idp|42", req.ID)
			require.NotNil(t, req.Phone)
			assert.Equal(t, "555-0100", *req.Phone)
			assert.Equal(t, "Freight", req.Sector)
			return &model.Account{ID: req.ID, Role: req.Role}, nil
		})

	acct, err := svc.RegisterIdentity(ctx, domainauth.Identity{
		Subject: "idp|42", Email: "ops@acme.example.com", Name: "Acme Ops", Phone: "555-0100",
	}, model.RoleEmployer, "Freight")
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployer, acct.Role)

	_, err = svc.RegisterIdentity(ctx, domainauth.Identity{}, model.RoleCandidate, "")
	assert.True(t, apperrors.IsUnauthenticated(err))
}
