package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/workvortex/vortex-api/internal/core"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
	"github.com/workvortex/vortex-api/internal/mocks"
	"github.com/workvortex/vortex-api/internal/observability/notify"
)

type workflowFixture struct {
	wf       *ApplicationWorkflow
	apps     *mocks.MockApplicationRepository
	jobs     *mocks.MockJobPostingRepository
	notifier *notifierSpy
	metrics  *metricsSpy
	now      time.Time
}

func newWorkflowFixture(t *testing.T) workflowFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := workflowFixture{
		apps:     mocks.NewMockApplicationRepository(ctrl),
		jobs:     mocks.NewMockJobPostingRepository(ctrl),
		notifier: &notifierSpy{},
		metrics:  &metricsSpy{},
		now:      time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC),
	}
	f.wf = NewApplicationWorkflow(ApplicationWorkflowOptions{
		Repos:     WorkflowRepos{Applications: f.apps, Jobs: f.jobs},
		Telemetry: Telemetry{Notifier: f.notifier, Metrics: f.metrics},
		Now:       func() time.Time { return f.now },
	})
	return f
}

func posting(id string, active bool) *model.JobPosting {
	return &model.JobPosting{ID: id, EmployerID: "emp-1", Title: "Dispatcher", IsActive: active}
}

func detailsWith(status model.ApplicationStatus) *model.ApplicationDetails {
	return &model.ApplicationDetails{
		Application: model.Application{ID: "app-1", JobID: "job-1", CandidateID: "cand-1", Status: status},
		JobTitle:    "Dispatcher",
		EmployerID:  "emp-1",
	}
}

func TestNewApplicationWorkflow_RequiresRepos(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { NewApplicationWorkflow(ApplicationWorkflowOptions{}) })
}

func TestApplicationWorkflow_Apply(t *testing.T) {
	t.Parallel()
	f := newWorkflowFixture(t)
	ctx := context.Background()

	f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(posting("job-1", true), nil)
	f.apps.EXPECT().Create(gomock.Any(), "job-1", "cand-1").
		Return(&model.Application{ID: "app-1", JobID: "job-1", CandidateID: "cand-1", Status: model.ApplicationPending}, nil)

	app, err := f.wf.Apply(ctx, "job-1", "cand-1")
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationPending, app.Status)

	events := f.notifier.all()
	require.Len(t, events, 1)
	assert.Equal(t, notify.KindApplicationSubmitted, events[0].Kind)
	assert.Equal(t, "app-1", events[0].SubjectID)
	assert.Equal(t, "emp-1", events[0].Fields["employer_id"])
	assert.Equal(t, 1, f.metrics.count("application.apply.count"))
}

func TestApplicationWorkflow_ApplyRejects(t *testing.T) {
	t.Parallel()

	t.Run("inactive posting", func(t *testing.T) {
		t.Parallel()
		f := newWorkflowFixture(t)
		f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(posting("job-1", false), nil)

		_, err := f.wf.Apply(context.Background(), "job-1", "cand-1")
		assert.True(t, apperrors.IsInvalidState(err))
		assert.Empty(t, f.notifier.all())
	})

	t.Run("duplicate from repository", func(t *testing.T) {
		t.Parallel()
		f := newWorkflowFixture(t)
		f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(posting("job-1", true), nil)
		f.apps.EXPECT().Create(gomock.Any(), "job-1", "cand-1").Return(nil, apperrors.AlreadyApplied("dup"))

		_, err := f.wf.Apply(context.Background(), "job-1", "cand-1")
		assert.True(t, apperrors.IsAlreadyApplied(err))
		assert.Equal(t, apperrors.CategoryDuplicate, apperrors.CategoryOf(err))
	})

	t.Run("raw unique violation", func(t *testing.T) {
		t.Parallel()
		f := newWorkflowFixture(t)
		f.jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(posting("job-1", true), nil)
		f.apps.EXPECT().Create(gomock.Any(), "job-1", "cand-1").
			Return(nil, &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "applications_job_candidate_key"})

		_, err := f.wf.Apply(context.Background(), "job-1", "cand-1")
		assert.True(t, apperrors.IsAlreadyApplied(err))
	})

	t.Run("unknown posting", func(t *testing.T) {
		t.Parallel()
		f := newWorkflowFixture(t)
		f.jobs.EXPECT().GetByID(gomock.Any(), "nope").Return(nil, apperrors.NotFound("job posting not found"))

		_, err := f.wf.Apply(context.Background(), "nope", "cand-1")
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("missing ids", func(t *testing.T) {
		t.Parallel()
		f := newWorkflowFixture(t)
		_, err := f.wf.Apply(context.Background(), "", "cand-1")
		assert.True(t, apperrors.IsValidation(err))
		_, err = f.wf.Apply(context.Background(), "job-1", "")
		assert.True(t, apperrors.IsUnauthenticated(err))
	})
}

func TestApplicationWorkflow_ApplyUsesCachedPosting(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	apps := mocks.NewMockApplicationRepository(ctrl)
	jobs := mocks.NewMockJobPostingRepository(ctrl)
	wf := NewApplicationWorkflow(ApplicationWorkflowOptions{
		Repos: WorkflowRepos{Applications: apps, Jobs: jobs, Cache: core.NewReadCache(core.ReadCacheOptions{})},
	})

	jobs.EXPECT().GetByID(gomock.Any(), "job-1").Return(posting("job-1", true), nil).Times(1)
	apps.EXPECT().Create(gomock.Any(), "job-1", gomock.Any()).Return(&model.Application{ID: "a"}, nil).Times(2)

	_, err := wf.Apply(context.Background(), "job-1", "cand-1")
	require.NoError(t, err)
	_, err = wf.Apply(context.Background(), "job-1", "cand-2")
	require.NoError(t, err)
}

func TestApplicationWorkflow_SetStatusTransitions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		from    model.ApplicationStatus
		to      model.ApplicationStatus
		allowed bool
	}{
		{"pending to reviewing", model.ApplicationPending, model.ApplicationReviewing, true},
		{"pending to rejected", model.ApplicationPending, model.ApplicationRejected, true},
		{"reviewing to accepted", model.ApplicationReviewing, model.ApplicationAccepted, true},
		{"reviewing to rejected", model.ApplicationReviewing, model.ApplicationRejected, true},
		{"pending to accepted", model.ApplicationPending, model.ApplicationAccepted, false},
		{"reviewing to pending", model.ApplicationReviewing, model.ApplicationPending, false},
		{"accepted to rejected", model.ApplicationAccepted, model.ApplicationRejected, false},
		{"rejected to pending", model.ApplicationRejected, model.ApplicationPending, false},
		{"accepted to reviewing", model.ApplicationAccepted, model.ApplicationReviewing, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := newWorkflowFixture(t)
			f.apps.EXPECT().GetDetails(gomock.Any(), "app-1").Return(detailsWith(tt.from), nil)
			if tt.allowed {
				f.apps.EXPECT().UpdateStatus(gomock.Any(), core.UpdateStatusParams{
					ID: "app-1", EmployerID: "emp-1", From: tt.from, Status: tt.to, UpdatedAt: f.now,
				}).Return(&model.Application{ID: "app-1", Status: tt.to, UpdatedAt: f.now}, nil)
			}

			app, err := f.wf.SetStatus(context.Background(), "app-1", employerPrincipal("emp-1"), tt.to)
			if !tt.allowed {
				assert.True(t, apperrors.IsInvalidTransition(err))
				assert.False(t, apperrors.Retryable(err))
				assert.Empty(t, f.notifier.all())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.to, app.Status)
			assert.Equal(t, f.now, app.UpdatedAt)

			events := f.notifier.all()
			require.Len(t, events, 1)
			assert.Equal(t, notify.KindApplicationStatusChanged, events[0].Kind)
			assert.Equal(t, string(tt.to), events[0].Fields["to"])
		})
	}
}

func TestApplicationWorkflow_SetStatusSameIsNoop(t *testing.T) {
	t.Parallel()
	f := newWorkflowFixture(t)
	f.apps.EXPECT().GetDetails(gomock.Any(), "app-1").Return(detailsWith(model.ApplicationAccepted), nil)

	app, err := f.wf.SetStatus(context.Background(), "app-1", employerPrincipal("emp-1"), model.ApplicationAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationAccepted, app.Status)
	assert.Empty(t, f.notifier.all())
}

func TestApplicationWorkflow_SetStatusAuthorization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	f := newWorkflowFixture(t)
	_, err := f.wf.SetStatus(ctx, "app-1", nil, model.ApplicationReviewing)
	assert.True(t, apperrors.IsUnauthenticated(err))

	_, err = f.wf.SetStatus(ctx, "app-1", candidatePrincipal("cand-1"), model.ApplicationReviewing)
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.wf.SetStatus(ctx, "app-1", employerPrincipal("emp-1"), model.ApplicationStatus("archived"))
	assert.True(t, apperrors.IsValidation(err))

	f.apps.EXPECT().GetDetails(gomock.Any(), "app-1").Return(detailsWith(model.ApplicationPending), nil)
	_, err = f.wf.SetStatus(ctx, "app-1", employerPrincipal("emp-other"), model.ApplicationReviewing)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Equal(t, apperrors.CategoryNotAllowed, apperrors.CategoryOf(err))
}

func TestApplicationWorkflow_SetStatusStorageFailure(t *testing.T) {
	t.Parallel()
	f := newWorkflowFixture(t)
	f.apps.EXPECT().GetDetails(gomock.Any(), "app-1").Return(detailsWith(model.ApplicationPending), nil)
	f.apps.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.Wrap(errors.New("conn reset"), apperrors.ErrCodeTransientIO, "update"))

	_, err := f.wf.SetStatus(context.Background(), "app-1", employerPrincipal("emp-1"), model.ApplicationReviewing)
	assert.True(t, apperrors.Retryable(err))
	assert.Equal(t, 1, f.metrics.count("application.set_status.count"))
}

func TestApplicationWorkflow_SetStatusLostRace(t *testing.T) {
	t.Parallel()
	f := newWorkflowFixture(t)
	f.apps.EXPECT().GetDetails(gomock.Any(), "app-1").Return(detailsWith(model.ApplicationReviewing), nil)
	// another tab rejected the application between the read and the write
	f.apps.EXPECT().UpdateStatus(gomock.Any(), gomock.Any()).
		Return(nil, apperrors.InvalidTransitionf("application is now rejected, not reviewing"))

	_, err := f.wf.SetStatus(context.Background(), "app-1", employerPrincipal("emp-1"), model.ApplicationAccepted)
	assert.True(t, apperrors.IsInvalidTransition(err))
	assert.Empty(t, f.notifier.all())
}

func TestApplicationWorkflow_Details(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t)
	f.apps.EXPECT().GetDetails(gomock.Any(), "app-1").Return(detailsWith(model.ApplicationPending), nil).Times(4)

	d, err := f.wf.Details(ctx, "app-1", candidatePrincipal("cand-1"))
	require.NoError(t, err)
	assert.Equal(t, "Dispatcher", d.JobTitle)

	_, err = f.wf.Details(ctx, "app-1", employerPrincipal("emp-1"))
	require.NoError(t, err)

	_, err = f.wf.Details(ctx, "app-1", candidatePrincipal("cand-2"))
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.wf.Details(ctx, "app-1", employerPrincipal("emp-2"))
	assert.True(t, apperrors.IsForbidden(err))

	_, err = f.wf.Details(ctx, "app-1", nil)
	assert.True(t, apperrors.IsUnauthenticated(err))
}

func TestApplicationWorkflow_Queries(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	f := newWorkflowFixture(t)

	f.apps.EXPECT().ListByCandidate(gomock.Any(), "cand-1").
		Return([]*model.CandidateApplicationView{{JobTitle: "Dispatcher"}}, nil)
	f.apps.EXPECT().ListByEmployer(gomock.Any(), "emp-1").
		Return([]*model.EmployerApplicationView{{CandidateName: "Ana"}, {CandidateName: "Bo"}}, nil)
	f.apps.EXPECT().Exists(gomock.Any(), "job-1", "cand-1").Return(true, nil)
	f.apps.EXPECT().CountByJob(gomock.Any(), "job-1").Return(7, nil)

	cv, err := f.wf.ListForCandidate(ctx, "cand-1")
	require.NoError(t, err)
	assert.Len(t, cv, 1)

	ev, err := f.wf.ListForEmployer(ctx, "emp-1")
	require.NoError(t, err)
	assert.Len(t, ev, 2)

	ok, err := f.wf.HasApplied(ctx, "job-1", "cand-1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.wf.HasApplied(ctx, "", "cand-1")
	require.NoError(t, err)
	assert.False(t, ok)

	n, err := f.wf.CountForJob(ctx, "job-1")
	require.NoError(t, err)
	assert.Equal(t, 7, n)

	_, err = f.wf.ListForEmployer(ctx, "")
	assert.True(t, apperrors.IsUnauthenticated(err))
}
