package model

// CandidateMatch is a directory hit for a phone search, before experiences are attached.
type CandidateMatch struct {
	ID              string  `json:"id"                db:"id"`
	Name            string  `json:"name"              db:"name"`
	Email           string  `json:"email"             db:"email"`
	Phone           *string `json:"phone"             db:"phone"`
	ProfileImageURL *string `json:"profile_image_url" db:"profile_image_url"`
	ResumeURL       *string `json:"resume_url"        db:"resume_url"`
}

// Principal converts the match into a CandidatePrincipal carrying exps in display order.
func (m CandidateMatch) Principal(exps []Experience) *CandidatePrincipal {
	return NewCandidatePrincipal(
		Account{ID: m.ID, Email: m.Email, Name: m.Name, Phone: m.Phone, Role: RoleCandidate},
		CandidateRecord{AccountID: m.ID, ProfileImageURL: m.ProfileImageURL, ResumeURL: m.ResumeURL},
		exps,
	)
}
