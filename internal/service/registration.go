package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/workvortex/vortex-api/internal/core"
	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
)

// RegistrationServiceOptions groups dependencies for RegistrationService.
type RegistrationServiceOptions struct {
	Profiles core.ProfileRepository // Required
	Logger   *slog.Logger
}

// RegistrationService creates accounts together with their role record.
type RegistrationService struct {
	profiles core.ProfileRepository
	logger   *slog.Logger
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(opts RegistrationServiceOptions) *RegistrationService {
	if opts.Profiles == nil {
		panic("ProfileRepository is required")
	}
	return &RegistrationService{
		profiles: opts.Profiles,
		logger:   Telemetry{Logger: opts.Logger}.logger("registration_service"),
	}
}

// Register creates the account and role record described by req.
// The role cannot be changed afterwards.
func (s *RegistrationService) Register(ctx context.Context, req *model.RegisterRequest) (*model.Account, error) {
	if req == nil {
		return nil, apperrors.Validation("registration is required")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	acct, err := s.profiles.Register(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("register account: %w", err)
	}
	s.logger.InfoContext(ctx, "account registered", "account_id", acct.ID, "role", string(acct.Role))
	return acct, nil
}

// RegisterIdentity registers the account behind an IdP identity, keyed by its subject.
// The phone number is taken from the identity when the IdP provides one.
func (s *RegistrationService) RegisterIdentity(
	ctx context.Context,
	id domainauth.Identity,
	role model.Role,
	sector string,
) (*model.Account, error) {
	if id.Subject == "" {
		return nil, apperrors.Unauthenticated("identity has no subject")
	}
	req := &model.RegisterRequest{
		ID:     id.Subject,
		Email:  id.Email,
		Name:   id.Name,
		Role:   role,
		Sector: sector,
	}
	if id.Phone != "" {
		phone := id.Phone
		req.Phone = &phone
	}
	return s.Register(ctx, req)
}
