package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
	"github.com/workvortex/vortex-api/internal/observability/notify"
)

// CandidateMatcher is one lookup strategy of the phone search.
// Match returns nil, nil when it finds nobody.
type CandidateMatcher interface {
	Name() string
	Match(ctx context.Context, normalized, raw string) (*model.CandidateMatch, error)
}

type matcherFunc struct {
	name string
	fn   func(ctx context.Context, normalized, raw string) (*model.CandidateMatch, error)
}

func (m matcherFunc) Name() string { return m.name }

func (m matcherFunc) Match(ctx context.Context, normalized, raw string) (*model.CandidateMatch, error) {
	return m.fn(ctx, normalized, raw)
}

// FunctionMatcher looks candidates up through the search_candidate_by_phone database function.
func FunctionMatcher(dir core.CandidateDirectory) CandidateMatcher {
	return matcherFunc{name: "phone_function", fn: func(ctx context.Context, normalized, _ string) (*model.CandidateMatch, error) {
		return dir.FindByPhoneFunction(ctx, normalized)
	}}
}

// DirectMatcher joins accounts and candidates on the stored phone.
// It covers rows the database function does not see yet.
func DirectMatcher(dir core.CandidateDirectory) CandidateMatcher {
	return matcherFunc{name: "phone_direct", fn: dir.FindByPhoneDirect}
}

// DefaultMatchers returns the function lookup followed by the direct join.
func DefaultMatchers(dir core.CandidateDirectory) []CandidateMatcher {
	return []CandidateMatcher{FunctionMatcher(dir), DirectMatcher(dir)}
}

// SearchDeps groups the storage dependencies of CandidateSearch.
type SearchDeps struct {
	Directory   core.CandidateDirectory   // Required
	Experiences core.ExperienceRepository // Required
	Cache       *core.ReadCache           // Optional
}

// CandidateSearchOptions groups dependencies for CandidateSearch.
type CandidateSearchOptions struct {
	Deps      SearchDeps
	Matchers  []CandidateMatcher // Optional: defaults to DefaultMatchers(Deps.Directory)
	Telemetry Telemetry
}

// CandidateSearch lets employers find candidates by phone and attest their work history.
type CandidateSearch struct {
	experiences core.ExperienceRepository
	cache       *core.ReadCache
	matchers    []CandidateMatcher
	telemetry   Telemetry
	logger      *slog.Logger
}

// NewCandidateSearch constructs a CandidateSearch.
func NewCandidateSearch(opts CandidateSearchOptions) *CandidateSearch {
	if opts.Deps.Directory == nil {
		panic("CandidateDirectory is required")
	}
	if opts.Deps.Experiences == nil {
		panic("ExperienceRepository is required")
	}
	matchers := opts.Matchers
	if len(matchers) == 0 {
		matchers = DefaultMatchers(opts.Deps.Directory)
	}
	return &CandidateSearch{
		experiences: opts.Deps.Experiences,
		cache:       opts.Deps.Cache,
		matchers:    matchers,
		telemetry:   opts.Telemetry,
		logger:      opts.Telemetry.logger("candidate_search"),
	}
}

// SearchByPhone finds the candidate whose phone matches raw once whitespace and punctuation are removed.
// It returns nil, nil when no matcher finds anyone.
func (s *CandidateSearch) SearchByPhone(ctx context.Context, raw string) (p *model.CandidatePrincipal, err error) {
	normalized := model.NormalizePhone(raw)
	if normalized == "" {
		return nil, apperrors.ValidationField("phone", "enter a phone number to search")
	}

	start := time.Now()
	tier := "none"
	defer func() { s.telemetry.observe("candidate_search.by_phone", start, err, map[string]string{"tier": tier}) }()

	var match *model.CandidateMatch
	for _, m := range s.matchers {
		match, err = m.Match(ctx, normalized, raw)
		if err != nil {
			return nil, fmt.Errorf("%s lookup: %w", m.Name(), err)
		}
		if match != nil {
			tier = m.Name()
			break
		}
	}
	if match == nil {
		s.logger.DebugContext(ctx, "no candidate matched phone", "phone", normalized)
		return nil, nil
	}

	exps, err := s.experiences.ListByCandidate(ctx, match.ID)
	if err != nil {
		return nil, fmt.Errorf("load experiences: %w", err)
	}
	return match.Principal(exps), nil
}

// RecordedExperience is the result of RecordExperience.
type RecordedExperience struct {
	Experience *model.Experience
	// History is the candidate's full work history after the insert, in display order.
	History []model.Experience
}

// RecordExperience lets an employer attest a work-history entry for candidateID.
// This is the only path by which one principal mutates another principal's records.
func (s *CandidateSearch) RecordExperience(
	ctx context.Context,
	actor model.Principal,
	candidateID string,
	in model.ExperienceInput,
) (*RecordedExperience, error) {
	if actor == nil {
		return nil, apperrors.Unauthenticated("sign in to record experience")
	}
	employer, ok := actor.(*model.EmployerPrincipal)
	if !ok {
		return nil, apperrors.Forbidden("only employers can attest work history")
	}
	if candidateID == "" {
		return nil, apperrors.ValidationField("candidate_id", "candidate id is required")
	}
	if err := validateExperience(&in); err != nil {
		return nil, err
	}

	exp, err := s.experiences.Create(ctx, candidateID, in)
	if err != nil {
		if apperrors.IsForeignKey(err) {
			return nil, apperrors.NotFoundf("candidate %s not found", candidateID)
		}
		return nil, fmt.Errorf("create experience: %w", err)
	}
	if err := s.cache.Invalidate(ctx, core.Key(core.EntityExperiences, candidateID)); err != nil {
		s.logger.WarnContext(ctx, "cache invalidation incomplete", "candidate_id", candidateID, "error", err)
	}

	history, err := s.experiences.ListByCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("reload experiences: %w", err)
	}
	model.SortExperiences(history)

	s.telemetry.notify(ctx, notify.Event{
		Kind:      notify.KindExperienceAttested,
		Severity:  notify.SeverityInfo,
		Summary:   fmt.Sprintf("%s attested %s at %s", employer.Name, in.Role, in.Company),
		SubjectID: candidateID,
		ActorID:   employer.ID,
		Fields:    map[string]string{"experience_id": exp.ID},
	})
	return &RecordedExperience{Experience: exp, History: history}, nil
}
