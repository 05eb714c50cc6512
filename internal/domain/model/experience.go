package model

import (
	"errors"
	"sort"
	"strings"
	"time"
)

var (
	// ErrCurrentWithEndDate is returned when a current position carries an end date.
	ErrCurrentWithEndDate = errors.New("current position cannot have an end date")
	// ErrEndBeforeStart is returned when an experience ends before it starts.
	ErrEndBeforeStart = errors.New("end date must not be before start date")
)

// Experience is one entry of a candidate's work history.
type Experience struct {
	ID          string     `json:"id"           db:"id"`
	CandidateID string     `json:"candidate_id" db:"candidate_id"`
	Role        string     `json:"role"         db:"role"`
	Company     string     `json:"company"      db:"company"`
	StartDate   time.Time  `json:"start_date"   db:"start_date"`
	EndDate     *time.Time `json:"end_date"     db:"end_date"`
	Current     bool       `json:"current"      db:"current"`
	Description *string    `json:"description"  db:"description"`
	CreatedAt   time.Time  `json:"created_at"   db:"created_at"`
}

// ExperienceInput is the writable part of an Experience.
type ExperienceInput struct {
	Role        string     `json:"role"`
	Company     string     `json:"company"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Current     bool       `json:"current"`
	Description *string    `json:"description,omitempty"`
}

// Normalize trims text fields and drops an empty description.
func (in *ExperienceInput) Normalize() {
	in.Role = strings.TrimSpace(in.Role)
	in.Company = strings.TrimSpace(in.Company)
	if in.Description != nil {
		d := strings.TrimSpace(*in.Description)
		if d == "" {
			in.Description = nil
		} else {
			in.Description = &d
		}
	}
}

// Validate enforces required fields and the date invariants.
// Date violations return ErrCurrentWithEndDate or ErrEndBeforeStart.
func (in *ExperienceInput) Validate() error {
	if in.Role == "" {
		return errors.New("role is required")
	}
	if in.Company == "" {
		return errors.New("company is required")
	}
	if in.StartDate.IsZero() {
		return errors.New("start date is required")
	}
	return in.ValidateDates()
}

// ValidateDates checks only the date invariants.
func (in *ExperienceInput) ValidateDates() error {
	if in.Current && in.EndDate != nil {
		return ErrCurrentWithEndDate
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return ErrEndBeforeStart
	}
	return nil
}

// IsDateViolation reports whether err is one of the experience date invariant errors.
func IsDateViolation(err error) bool {
	return errors.Is(err, ErrCurrentWithEndDate) || errors.Is(err, ErrEndBeforeStart)
}

// SortExperiences orders experiences current first, then by start date descending.
func SortExperiences(exps []Experience) {
	sort.SliceStable(exps, func(i, j int) bool {
		if exps[i].Current != exps[j].Current {
			return exps[i].Current
		}
		return exps[i].StartDate.After(exps[j].StartDate)
	})
}
