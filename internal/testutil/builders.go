// Package testutil provides testing utilities and helpers for the vortex job board.
package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/workvortex/vortex-api/internal/domain/model"
)

var seq atomic.Int64

// RegisterRequestBuilder provides a fluent interface for building RegisterRequest objects for testing.
type RegisterRequestBuilder struct {
	req *model.RegisterRequest
}

// NewCandidate creates a RegisterRequestBuilder for a candidate with unique id and email.
func NewCandidate() *RegisterRequestBuilder {
	n := seq.Add(1)
	return &RegisterRequestBuilder{
		req: &model.RegisterRequest{
			ID:    uuid.NewString(),
			Email: fmt.Sprintf("candidate-%d-%s@example.com", n, uuid.NewString()[:8]),
			Name:  fmt.Sprintf("Candidate %d", n),
			Role:  model.RoleCandidate,
		},
	}
}

// NewEmployer creates a RegisterRequestBuilder for an employer with unique id and email.
func NewEmployer() *RegisterRequestBuilder {
	n := seq.Add(1)
	return &RegisterRequestBuilder{
		req: &model.RegisterRequest{
			ID:     uuid.NewString(),
			Email:  fmt.Sprintf("employer-%d-%s@example.com", n, uuid.NewString()[:8]),
			Name:   fmt.Sprintf("Employer %d", n),
			Role:   model.RoleEmployer,
			Sector: "Technology",
		},
	}
}

// WithName sets the display name.
func (b *RegisterRequestBuilder) WithName(name string) *RegisterRequestBuilder {
	b.req.Name = name
	return b
}

// WithEmail sets the email.
func (b *RegisterRequestBuilder) WithEmail(email string) *RegisterRequestBuilder {
	b.req.Email = email
	return b
}

// WithPhone sets the phone.
func (b *RegisterRequestBuilder) WithPhone(phone string) *RegisterRequestBuilder {
	b.req.Phone = &phone
	return b
}

// WithSector sets the employer sector.
func (b *RegisterRequestBuilder) WithSector(sector string) *RegisterRequestBuilder {
	b.req.Sector = sector
	return b
}

// Build returns the built request.
func (b *RegisterRequestBuilder) Build() *model.RegisterRequest {
	return b.req
}

// ExperienceBuilder builds ExperienceInput values.
type ExperienceBuilder struct {
	in model.ExperienceInput
}

// NewExperience creates an ExperienceBuilder for a finished role.
func NewExperience() *ExperienceBuilder {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2022, 6, 30, 0, 0, 0, 0, time.UTC)
	return &ExperienceBuilder{in: model.ExperienceInput{
		Role:      "Engineer",
		Company:   "Acme",
		StartDate: start,
		EndDate:   &end,
	}}
}

// WithRole sets the role title.
func (b *ExperienceBuilder) WithRole(role string) *ExperienceBuilder {
	b.in.Role = role
	return b
}

// WithCompany sets the company.
func (b *ExperienceBuilder) WithCompany(company string) *ExperienceBuilder {
	b.in.Company = company
	return b
}

// Between sets the start and end dates.
func (b *ExperienceBuilder) Between(start, end time.Time) *ExperienceBuilder {
	b.in.StartDate = start
	b.in.EndDate = &end
	b.in.Current = false
	return b
}

// Current marks the role as ongoing from start.
func (b *ExperienceBuilder) Current(start time.Time) *ExperienceBuilder {
	b.in.StartDate = start
	b.in.EndDate = nil
	b.in.Current = true
	return b
}

// Build returns the built input.
func (b *ExperienceBuilder) Build() model.ExperienceInput {
	return b.in
}

// JobPostingBuilder builds CreateJobPostingRequest values.
type JobPostingBuilder struct {
	req *model.CreateJobPostingRequest
}

// NewJobPosting creates a JobPostingBuilder with sensible defaults.
func NewJobPosting() *JobPostingBuilder {
	return &JobPostingBuilder{req: &model.CreateJobPostingRequest{
		Title:          "Backend Engineer",
		Location:       "Remote",
		EmploymentType: model.EmploymentFullTime,
		Description:    "Build services.",
		Requirements:   []string{"Go", "PostgreSQL"},
	}}
}

// WithTitle sets the title.
func (b *JobPostingBuilder) WithTitle(title string) *JobPostingBuilder {
	b.req.Title = title
	return b
}

// WithDescription sets the description.
func (b *JobPostingBuilder) WithDescription(desc string) *JobPostingBuilder {
	b.req.Description = desc
	return b
}

// WithSalary sets the salary text.
func (b *JobPostingBuilder) WithSalary(salary string) *JobPostingBuilder {
	b.req.Salary = &salary
	return b
}

// Build returns the built request.
func (b *JobPostingBuilder) Build() *model.CreateJobPostingRequest {
	return b.req
}
