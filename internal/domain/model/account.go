package model

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"
)

// Role identifies which side of the marketplace an account belongs to.
type Role string

const (
	// RoleCandidate is a job seeker.
	RoleCandidate Role = "candidate"
	// RoleEmployer is a hiring organization.
	RoleEmployer Role = "employer"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleCandidate, RoleEmployer:
		return true
	default:
		return false
	}
}

// ParseRole converts a string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("invalid role: %q", s)
	}
	return r, nil
}

// Account is the role-independent record every principal is built from.
type Account struct {
	ID        string    `json:"id"         db:"id"`
	Email     string    `json:"email"      db:"email"`
	Name      string    `json:"name"       db:"name"`
	Phone     *string   `json:"phone"      db:"phone"`
	Role      Role      `json:"role"       db:"role"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CandidateRecord is the candidate-specific row keyed by account id.
type CandidateRecord struct {
	AccountID       string    `json:"account_id"        db:"account_id"`
	ProfileImageURL *string   `json:"profile_image_url" db:"profile_image_url"`
	ResumeURL       *string   `json:"resume_url"        db:"resume_url"`
	UpdatedAt       time.Time `json:"updated_at"        db:"updated_at"`
}

// EmployerRecord is the employer-specific row keyed by account id.
type EmployerRecord struct {
	AccountID   string    `json:"account_id"  db:"account_id"`
	Sector      string    `json:"sector"      db:"sector"`
	LogoURL     *string   `json:"logo_url"    db:"logo_url"`
	Description *string   `json:"description" db:"description"`
	UpdatedAt   time.Time `json:"updated_at"  db:"updated_at"`
}

// Principal is the resolved identity behind a session.
// The set of implementations is closed: *CandidatePrincipal and *EmployerPrincipal.
type Principal interface {
	// Base returns the shared account fields.
	Base() Account
	isPrincipal()
}

// CandidatePrincipal is a Principal whose account has RoleCandidate.
type CandidatePrincipal struct {
	Account
	ProfileImageURL *string      `json:"profile_image_url"`
	ResumeURL       *string      `json:"resume_url"`
	Experiences     []Experience `json:"experiences"`
}

// Base implements Principal.
func (p *CandidatePrincipal) Base() Account { return p.Account }

func (*CandidatePrincipal) isPrincipal() {}

// EmployerPrincipal is a Principal whose account has RoleEmployer.
type EmployerPrincipal struct {
	Account
	Sector      string  `json:"sector"`
	LogoURL     *string `json:"logo_url"`
	Description *string `json:"description"`
}

// Base implements Principal.
func (p *EmployerPrincipal) Base() Account { return p.Account }

func (*EmployerPrincipal) isPrincipal() {}

// NewCandidatePrincipal assembles a candidate principal. Experiences are sorted into display order.
func NewCandidatePrincipal(acct Account, rec CandidateRecord, exps []Experience) *CandidatePrincipal {
	SortExperiences(exps)
	return &CandidatePrincipal{
		Account:         acct,
		ProfileImageURL: rec.ProfileImageURL,
		ResumeURL:       rec.ResumeURL,
		Experiences:     exps,
	}
}

// NewEmployerPrincipal assembles an employer principal.
func NewEmployerPrincipal(acct Account, rec EmployerRecord) *EmployerPrincipal {
	return &EmployerPrincipal{
		Account:     acct,
		Sector:      rec.Sector,
		LogoURL:     rec.LogoURL,
		Description: rec.Description,
	}
}

// PrincipalID returns the account id of p, or "" when p is nil.
func PrincipalID(p Principal) string {
	if p == nil {
		return ""
	}
	return p.Base().ID
}

// ProfileUpdate carries the mutable profile fields. Nil fields are left unchanged.
// Sector and Description only apply to employers.
type ProfileUpdate struct {
	Name        *string `json:"name,omitempty"`
	Phone       *string `json:"phone,omitempty"`
	Sector      *string `json:"sector,omitempty"`
	Description *string `json:"description,omitempty"`
}

// HasUpdates reports whether any field is set.
func (u ProfileUpdate) HasUpdates() bool {
	return u.Name != nil || u.Phone != nil || u.Sector != nil || u.Description != nil
}

// HasAccountUpdates reports whether any account-level field is set.
func (u ProfileUpdate) HasAccountUpdates() bool {
	return u.Name != nil || u.Phone != nil
}

// HasEmployerUpdates reports whether any employer-only field is set.
func (u ProfileUpdate) HasEmployerUpdates() bool {
	return u.Sector != nil || u.Description != nil
}

// Validate checks field constraints for the given role.
func (u ProfileUpdate) Validate(role Role) error {
	if !u.HasUpdates() {
		return errors.New("no fields to update")
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return errors.New("name cannot be empty")
	}
	if u.Phone != nil && *u.Phone != "" && NormalizePhone(*u.Phone) == "" {
		return errors.New("phone must contain digits")
	}
	if role != RoleEmployer && u.HasEmployerUpdates() {
		return errors.New("sector and description apply to employers only")
	}
	if u.Sector != nil && strings.TrimSpace(*u.Sector) == "" {
		return errors.New("sector cannot be empty")
	}
	return nil
}

// RegisterRequest creates an account together with its role record.
type RegisterRequest struct {
	ID     string  `json:"id"`
	Email  string  `json:"email"`
	Name   string  `json:"name"`
	Phone  *string `json:"phone,omitempty"`
	Role   Role    `json:"role"`
	Sector string  `json:"sector,omitempty"`
}

// Normalize trims whitespace and lowercases the email.
func (r *RegisterRequest) Normalize() {
	r.ID = strings.TrimSpace(r.ID)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)
	r.Sector = strings.TrimSpace(r.Sector)
	if r.Phone != nil {
		p := strings.TrimSpace(*r.Phone)
		r.Phone = &p
	}
}

// Validate checks the registration payload.
func (r *RegisterRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	if !r.Role.Valid() {
		return fmt.Errorf("invalid role: %q", r.Role)
	}
	if r.Role == RoleEmployer && r.Sector == "" {
		return errors.New("sector is required for employers")
	}
	if r.Phone != nil && *r.Phone != "" && NormalizePhone(*r.Phone) == "" {
		return errors.New("phone must contain digits")
	}
	return nil
}
