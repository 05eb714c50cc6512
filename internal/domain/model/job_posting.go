package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EmploymentType describes the contract form of a posting.
type EmploymentType string

const (
	EmploymentFullTime   EmploymentType = "full-time"
	EmploymentPartTime   EmploymentType = "part-time"
	EmploymentContract   EmploymentType = "contract"
	EmploymentInternship EmploymentType = "internship"
	EmploymentRemote     EmploymentType = "remote"
)

// Valid reports whether t is a known employment type.
func (t EmploymentType) Valid() bool {
	switch t {
	case EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentInternship, EmploymentRemote:
		return true
	default:
		return false
	}
}

// JobPosting is an employer-owned open position.
type JobPosting struct {
	ID             string         `json:"id"              db:"id"`
	EmployerID     string         `json:"employer_id"     db:"employer_id"`
	Title          string         `json:"title"           db:"title"`
	Location       string         `json:"location"        db:"location"`
	EmploymentType EmploymentType `json:"employment_type" db:"employment_type"`
	Description    string         `json:"description"     db:"description"`
	Requirements   []string       `json:"requirements"    db:"requirements"`
	Salary         *string        `json:"salary"          db:"salary"`
	PostedAt       time.Time      `json:"posted_at"       db:"posted_at"`
	Deadline       *time.Time     `json:"deadline"        db:"deadline"`
	IsActive       bool           `json:"is_active"       db:"is_active"`
}

// JobWithEmployer is a posting joined with a summary of its employer.
type JobWithEmployer struct {
	JobPosting
	EmployerName   string `json:"employer_name"   db:"employer_name"`
	EmployerSector string `json:"employer_sector" db:"employer_sector"`
}

// CreateJobPostingRequest carries the fields for a new posting.
type CreateJobPostingRequest struct {
	Title          string         `json:"title"`
	Location       string         `json:"location"`
	EmploymentType EmploymentType `json:"employment_type"`
	Description    string         `json:"description"`
	Requirements   []string       `json:"requirements"`
	Salary         *string        `json:"salary,omitempty"`
	Deadline       *time.Time     `json:"deadline,omitempty"`
}

// Normalize trims text and drops blank requirements.
func (r *CreateJobPostingRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Location = strings.TrimSpace(r.Location)
	r.Description = strings.TrimSpace(r.Description)
	r.EmploymentType = EmploymentType(strings.ToLower(strings.TrimSpace(string(r.EmploymentType))))
	reqs := r.Requirements[:0]
	for _, s := range r.Requirements {
		if s = strings.TrimSpace(s); s != "" {
			reqs = append(reqs, s)
		}
	}
	r.Requirements = reqs
}

// Validate checks required fields.
func (r *CreateJobPostingRequest) Validate() error {
	if r.Title == "" {
		return errors.New("title is required")
	}
	if r.Location == "" {
		return errors.New("location is required")
	}
	if r.Description == "" {
		return errors.New("description is required")
	}
	if !r.EmploymentType.Valid() {
		return fmt.Errorf("invalid employment type: %q", r.EmploymentType)
	}
	return nil
}

// JobListOptions filters the candidate-facing active listing.
type JobListOptions struct {
	// Query matches title or description case-insensitively.
	Query  string
	Limit  int
	Offset int
}
