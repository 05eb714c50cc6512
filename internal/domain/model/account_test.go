package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"555-123-4567":       "5551234567",
		" 555 123 4567 ":     "5551234567",
		"+1 (555) 123-4567":  "+15551234567",
		"(555).123.4567":     "5551234567",
		"1+555":              "1555",
		"---":                "",
		"":                   "",
		"+":                  "",
		"٥٥٥":                "",
		"+44\t20\n7946 0958": "+442079460958",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizePhone(in), "input %q", in)
	}
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Employer ")
	require.NoError(t, err)
	assert.Equal(t, RoleEmployer, r)

	_, err = ParseRole("admin")
	require.Error(t, err)
}

func TestPrincipalVariants(t *testing.T) {
	acct := Account{ID: "acc-1", Email: "a@example.com", Name: "Ada", Role: RoleCandidate}
	cand := NewCandidatePrincipal(acct, CandidateRecord{AccountID: "acc-1", ResumeURL: strPtr("r.pdf")}, nil)

	var p Principal = cand
	assert.Equal(t, "acc-1", PrincipalID(p))
	assert.Equal(t, RoleCandidate, p.Base().Role)

	switch v := p.(type) {
	case *CandidatePrincipal:
		require.NotNil(t, v.ResumeURL)
		assert.Equal(t, "r.pdf", *v.ResumeURL)
	case *EmployerPrincipal:
		t.Fatal("candidate resolved as employer")
	}

	emp := NewEmployerPrincipal(Account{ID: "acc-2", Role: RoleEmployer}, EmployerRecord{Sector: "Retail"})
	assert.Equal(t, "Retail", emp.Sector)
	assert.Empty(t, PrincipalID(nil))
}

func TestProfileUpdate_Validate(t *testing.T) {
	assert.Error(t, ProfileUpdate{}.Validate(RoleCandidate))
	assert.Error(t, ProfileUpdate{Name: strPtr("  ")}.Validate(RoleCandidate))
	assert.Error(t, ProfileUpdate{Phone: strPtr("abc")}.Validate(RoleCandidate))
	assert.Error(t, ProfileUpdate{Sector: strPtr("Tech")}.Validate(RoleCandidate))
	assert.NoError(t, ProfileUpdate{Sector: strPtr("Tech")}.Validate(RoleEmployer))
	assert.NoError(t, ProfileUpdate{Phone: strPtr("")}.Validate(RoleCandidate))
	assert.NoError(t, ProfileUpdate{Name: strPtr("Ada"), Phone: strPtr("555 0100")}.Validate(RoleCandidate))
}

func TestRegisterRequest_Validate(t *testing.T) {
	req := RegisterRequest{ID: " id-1 ", Email: " Ada@Example.com ", Name: " Ada ", Role: RoleCandidate}
	req.Normalize()
	require.NoError(t, req.Validate())
	assert.Equal(t, "ada@example.com", req.Email)
	assert.Equal(t, "id-1", req.ID)

	emp := RegisterRequest{Email: "hr@acme.test", Name: "Acme", Role: RoleEmployer}
	require.Error(t, emp.Validate())
	emp.Sector = "Retail"
	require.NoError(t, emp.Validate())

	bad := RegisterRequest{Email: "not-an-email", Name: "x", Role: RoleCandidate}
	require.Error(t, bad.Validate())
}

func TestMediaKind_AllowedFor(t *testing.T) {
	assert.True(t, MediaResume.AllowedFor(RoleCandidate))
	assert.True(t, MediaProfileImage.AllowedFor(RoleCandidate))
	assert.False(t, MediaLogo.AllowedFor(RoleCandidate))
	assert.True(t, MediaLogo.AllowedFor(RoleEmployer))
	assert.False(t, MediaResume.AllowedFor(RoleEmployer))

	k, err := ParseMediaKind("LOGO")
	require.NoError(t, err)
	assert.Equal(t, MediaLogo, k)
	assert.Equal(t, ".pdf", Blob{Filename: "CV.PDF"}.Ext())
}
