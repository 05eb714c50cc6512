package model

import (
	"fmt"
	"strings"
	"time"
)

// ApplicationStatus is the lifecycle state of an application.
type ApplicationStatus string

const (
	ApplicationPending   ApplicationStatus = "pending"
	ApplicationReviewing ApplicationStatus = "reviewing"
	ApplicationAccepted  ApplicationStatus = "accepted"
	ApplicationRejected  ApplicationStatus = "rejected"
)

// allowedTransitions lists the forward moves out of each non-terminal status.
var allowedTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationPending:   {ApplicationReviewing, ApplicationRejected},
	ApplicationReviewing: {ApplicationAccepted, ApplicationRejected},
}

// Valid reports whether s is a known status.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationPending, ApplicationReviewing, ApplicationAccepted, ApplicationRejected:
		return true
	default:
		return false
	}
}

// Terminal reports whether no further transitions are possible.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationAccepted || s == ApplicationRejected
}

// CanTransitionTo reports whether moving from s to next is allowed.
// Staying in the same status is always allowed and is a no-op.
func (s ApplicationStatus) CanTransitionTo(next ApplicationStatus) bool {
	if s == next {
		return s.Valid()
	}
	for _, candidate := range allowedTransitions[s] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ParseApplicationStatus converts a string into an ApplicationStatus.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	st := ApplicationStatus(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("invalid application status: %q", s)
	}
	return st, nil
}

// Application links a candidate to a posting.
type Application struct {
	ID          string            `json:"id"           db:"id"`
	JobID       string            `json:"job_id"       db:"job_id"`
	CandidateID string            `json:"candidate_id" db:"candidate_id"`
	Status      ApplicationStatus `json:"status"       db:"status"`
	AppliedAt   time.Time         `json:"applied_at"   db:"applied_at"`
	UpdatedAt   time.Time         `json:"updated_at"   db:"updated_at"`
}

// CandidateApplicationView is an application as the candidate sees it in their list.
type CandidateApplicationView struct {
	Application
	JobTitle     string `json:"job_title"     db:"job_title"`
	JobLocation  string `json:"job_location"  db:"job_location"`
	EmployerID   string `json:"employer_id"   db:"employer_id"`
	EmployerName string `json:"employer_name" db:"employer_name"`
}

// EmployerApplicationView is an application as the owning employer sees it in their list.
type EmployerApplicationView struct {
	Application
	JobTitle       string  `json:"job_title"       db:"job_title"`
	CandidateName  string  `json:"candidate_name"  db:"candidate_name"`
	CandidateEmail string  `json:"candidate_email" db:"candidate_email"`
	CandidatePhone *string `json:"candidate_phone" db:"candidate_phone"`
}

// ApplicationDetails is the composite read of one application with job and candidate summaries.
type ApplicationDetails struct {
	Application
	JobTitle                 string  `json:"job_title"                  db:"job_title"`
	EmployerID               string  `json:"employer_id"                db:"employer_id"`
	EmployerName             string  `json:"employer_name"              db:"employer_name"`
	CandidateName            string  `json:"candidate_name"             db:"candidate_name"`
	CandidateEmail           string  `json:"candidate_email"            db:"candidate_email"`
	CandidatePhone           *string `json:"candidate_phone"            db:"candidate_phone"`
	CandidateProfileImageURL *string `json:"candidate_profile_image_url" db:"candidate_profile_image_url"`
	CandidateResumeURL       *string `json:"candidate_resume_url"       db:"candidate_resume_url"`
}
