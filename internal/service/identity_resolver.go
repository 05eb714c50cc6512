package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/workvortex/vortex-api/internal/core"
	domainauth "github.com/workvortex/vortex-api/internal/domain/auth"
	"github.com/workvortex/vortex-api/internal/domain/model"
	apperrors "github.com/workvortex/vortex-api/internal/errors"
	"github.com/workvortex/vortex-api/internal/observability/notify"
	"github.com/workvortex/vortex-api/internal/ports"
)

// IdentityState is the lifecycle state of the resolver's identity slot.
type IdentityState int

const (
	StateUnresolved IdentityState = iota
	StateResolving
	StateResolved
	StateErrored
)

func (s IdentityState) String() string {
	switch s {
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	case StateErrored:
		return "errored"
	default:
		return "unresolved"
	}
}

const orphanDeleteTimeout = 10 * time.Second

// ResolverRepos groups the storage dependencies of IdentityResolver.
type ResolverRepos struct {
	Profiles    core.ProfileRepository    // Required
	Experiences core.ExperienceRepository // Required
	Cache       *core.ReadCache           // Optional: nil always reads through
}

// MediaBuckets names the blob bucket used for each media kind.
type MediaBuckets struct {
	ProfileImages string
	Resumes       string
	Logos         string
}

func (b MediaBuckets) forKind(kind model.MediaKind) string {
	switch kind {
	case model.MediaProfileImage:
		return b.ProfileImages
	case model.MediaResume:
		return b.Resumes
	case model.MediaLogo:
		return b.Logos
	default:
		return ""
	}
}

// ResolverMedia groups the media upload dependencies of IdentityResolver.
type ResolverMedia struct {
	Blobs   ports.BlobStore // Optional: AttachMedia fails without it
	Buckets MediaBuckets
}

// IdentityResolverOptions groups dependencies for IdentityResolver.
type IdentityResolverOptions struct {
	Repos     ResolverRepos
	Media     ResolverMedia
	Telemetry Telemetry
}

// IdentityResolver turns a session into a role-specific Principal and keeps it current.
//
// A resolver owns a single identity slot. SignedIn binds an empty slot (or the same principal),
// TokenRefreshed re-resolves the bound principal and SignedOut clears it. Events for other
// principals are ignored. A failed re-resolution keeps the last good Principal.
type IdentityResolver struct {
	profiles    core.ProfileRepository
	experiences core.ExperienceRepository
	cache       *core.ReadCache
	media       ResolverMedia
	telemetry   Telemetry
	logger      *slog.Logger

	group singleflight.Group

	mu        sync.RWMutex
	session   domainauth.Session
	principal model.Principal
	state     IdentityState
	lastErr   error
	gen       uint64

	lifeMu      sync.Mutex
	unsubscribe func()
	runCtx      context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
}

// NewIdentityResolver constructs an IdentityResolver.
func NewIdentityResolver(opts IdentityResolverOptions) *IdentityResolver {
	if opts.Repos.Profiles == nil {
		panic("ProfileRepository is required")
	}
	if opts.Repos.Experiences == nil {
		panic("ExperienceRepository is required")
	}
	return &IdentityResolver{
		profiles:    opts.Repos.Profiles,
		experiences: opts.Repos.Experiences,
		cache:       opts.Repos.Cache,
		media:       opts.Media,
		telemetry:   opts.Telemetry,
		logger:      opts.Telemetry.logger("identity_resolver"),
	}
}

// Start subscribes the resolver to sessions. Calling Start twice is a no-op.
func (r *IdentityResolver) Start(ctx context.Context, sessions ports.SessionProvider) {
	if sessions == nil {
		panic("SessionProvider is required")
	}
	r.lifeMu.Lock()
	defer r.lifeMu.Unlock()
	if r.unsubscribe != nil {
		return
	}
	r.runCtx, r.cancel = context.WithCancel(context.WithoutCancel(ctx))
	r.unsubscribe = sessions.Subscribe(r.OnSessionChange)
}

// Stop unsubscribes, cancels in-flight background resolutions and waits for them to finish.
func (r *IdentityResolver) Stop() {
	r.lifeMu.Lock()
	unsub, cancel := r.unsubscribe, r.cancel
	r.unsubscribe, r.cancel = nil, nil
	r.lifeMu.Unlock()

	if unsub != nil {
		unsub()
	}
	if cancel != nil {
		cancel()
	}
	r.wg.Wait()
}

// State returns the current lifecycle state.
func (r *IdentityResolver) State() IdentityState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Principal returns the last successfully resolved Principal, or nil.
func (r *IdentityResolver) Principal() model.Principal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.principal
}

// Err returns the error of the last failed resolution while the state is Errored.
func (r *IdentityResolver) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.state != StateErrored {
		return nil
	}
	return r.lastErr
}

// OnSessionChange reacts to session lifecycle events. It never resolves on the caller's goroutine.
func (r *IdentityResolver) OnSessionChange(ev domainauth.SessionEvent) {
	switch ev.Kind {
	case domainauth.EventSignedIn, domainauth.EventTokenRefreshed:
		if !r.bind(ev.Session) {
			return
		}
		r.resolveAsync(ev.Session)
	case domainauth.EventSignedOut:
		r.clear(ev.Session)
	}
}

// bind adopts sess into the slot when the slot is empty or already holds the same principal.
func (r *IdentityResolver) bind(sess domainauth.Session) bool {
	if sess.PrincipalID == "" {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session.PrincipalID != "" && r.session.PrincipalID != sess.PrincipalID {
		return false
	}
	r.session = sess
	return true
}

func (r *IdentityResolver) clear(sess domainauth.Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.session.PrincipalID == "" {
		return
	}
	if sess.PrincipalID != "" && sess.PrincipalID != r.session.PrincipalID {
		return
	}
	if sess.ID != "" && r.session.ID != "" && sess.ID != r.session.ID {
		return
	}
	r.gen++
	r.session = domainauth.Session{}
	r.principal = nil
	r.lastErr = nil
	r.state = StateUnresolved
}

func (r *IdentityResolver) resolveAsync(sess domainauth.Session) {
	r.lifeMu.Lock()
	ctx := r.runCtx
	if ctx == nil {
		ctx = context.Background()
	}
	r.wg.Add(1)
	r.lifeMu.Unlock()

	go func() {
		defer r.wg.Done()
		if _, err := r.Resolve(ctx, sess); err != nil {
			r.logger.WarnContext(ctx, "background identity resolution failed",
				"principal_id", sess.PrincipalID, "error", err)
		}
	}()
}

// Resolve loads the Principal behind sess and stores it in the identity slot.
// A missing account yields NotFound; any other load failure yields ProfileResolution
// and the previously resolved Principal is kept.
func (r *IdentityResolver) Resolve(ctx context.Context, sess domainauth.Session) (model.Principal, error) {
	return r.resolve(ctx, sess, false)
}

// resolve stores the Principal for sess. With fresh set it skips both the
// singleflight group and cached entries, so the result reflects writes that
// completed before the call even if an older load is still in flight.
func (r *IdentityResolver) resolve(ctx context.Context, sess domainauth.Session, fresh bool) (model.Principal, error) {
	if sess.PrincipalID == "" {
		return nil, apperrors.Unauthenticated("session has no principal")
	}
	start := time.Now()

	r.mu.Lock()
	r.gen++
	gen := r.gen
	r.session = sess
	r.state = StateResolving
	r.mu.Unlock()

	var (
		v   any
		err error
	)
	if fresh {
		// later callers must not join a load that started before the write
		r.group.Forget(sess.PrincipalID)
		v, err = r.load(ctx, sess.PrincipalID, true)
	} else {
		v, err, _ = r.group.Do(sess.PrincipalID, func() (any, error) {
			return r.load(ctx, sess.PrincipalID, false)
		})
	}
	r.telemetry.observe("identity.resolve", start, err, nil)

	r.mu.Lock()
	defer r.mu.Unlock()
	current := r.gen == gen
	if err != nil {
		err = classifyResolveErr(err)
		if current {
			r.state = StateErrored
			r.lastErr = err
		}
		return nil, err
	}
	p, _ := v.(model.Principal)
	if current {
		r.principal = p
		r.lastErr = nil
		r.state = StateResolved
	}
	return p, nil
}

func classifyResolveErr(err error) error {
	switch {
	case apperrors.IsNotFound(err), apperrors.IsProfileResolution(err):
		return err
	case errors.Is(err, context.Canceled):
		return apperrors.Wrap(err, apperrors.ErrCodeCanceled, "identity resolution canceled")
	default:
		return apperrors.Wrap(err, apperrors.ErrCodeProfileResolution, "resolve profile")
	}
}

// load assembles the Principal for id. Candidate record and experiences load concurrently.
func (r *IdentityResolver) load(ctx context.Context, id string, fresh bool) (model.Principal, error) {
	acct, err := cachedOrFresh(ctx, r.cache, fresh, core.Key(core.EntityAccount, id), func(ctx context.Context) (*model.Account, error) {
		return r.profiles.GetAccount(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if acct == nil {
		return nil, apperrors.NotFoundf("account %s not found", id)
	}

	switch acct.Role {
	case model.RoleCandidate:
		var (
			rec  *model.CandidateRecord
			exps []model.Experience
		)
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var loadErr error
			rec, loadErr = cachedOrFresh(gctx, r.cache, fresh, core.Key(core.EntityCandidate, id),
				func(ctx context.Context) (*model.CandidateRecord, error) {
					return r.profiles.GetCandidate(ctx, id)
				})
			if loadErr != nil {
				return fmt.Errorf("load candidate record: %w", loadErr)
			}
			return nil
		})
		g.Go(func() error {
			var loadErr error
			exps, loadErr = cachedOrFresh(gctx, r.cache, fresh, core.Key(core.EntityExperiences, id),
				func(ctx context.Context) ([]model.Experience, error) {
					return r.experiences.ListByCandidate(ctx, id)
				})
			if loadErr != nil {
				return fmt.Errorf("load experiences: %w", loadErr)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeProfileResolution, "resolve candidate profile")
		}
		if rec == nil {
			return nil, apperrors.New(apperrors.ErrCodeProfileResolution, "candidate record missing")
		}
		return model.NewCandidatePrincipal(*acct, *rec, exps), nil

	case model.RoleEmployer:
		rec, err := cachedOrFresh(ctx, r.cache, fresh, core.Key(core.EntityEmployer, id),
			func(ctx context.Context) (*model.EmployerRecord, error) {
				return r.profiles.GetEmployer(ctx, id)
			})
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeProfileResolution, "resolve employer profile")
		}
		if rec == nil {
			return nil, apperrors.New(apperrors.ErrCodeProfileResolution, "employer record missing")
		}
		return model.NewEmployerPrincipal(*acct, *rec), nil

	default:
		return nil, apperrors.Newf(apperrors.ErrCodeProfileResolution, "account %s has unknown role %q", id, acct.Role)
	}
}

func cachedOrFresh[T any](ctx context.Context, c *core.ReadCache, fresh bool, key core.CacheKey, load func(context.Context) (T, error)) (T, error) {
	if fresh {
		return core.Refreshed(ctx, c, key, load)
	}
	return core.Cached(ctx, c, key, load)
}

// current returns the resolved Principal and its session, or Unauthenticated.
func (r *IdentityResolver) current() (model.Principal, domainauth.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.principal == nil {
		return nil, domainauth.Session{}, apperrors.Unauthenticated("no resolved principal")
	}
	return r.principal, r.session, nil
}

// reresolve drops the given cache entries and resolves the current session again.
func (r *IdentityResolver) reresolve(ctx context.Context, sess domainauth.Session, keys ...core.CacheKey) (model.Principal, error) {
	if err := r.cache.Invalidate(ctx, keys...); err != nil {
		r.logger.WarnContext(ctx, "cache invalidation incomplete", "principal_id", sess.PrincipalID, "error", err)
	}
	return r.resolve(ctx, sess, true)
}

// Mutate writes the mutable profile fields of the current Principal and re-resolves it.
func (r *IdentityResolver) Mutate(ctx context.Context, upd model.ProfileUpdate) (model.Principal, error) {
	p, sess, err := r.current()
	if err != nil {
		return nil, err
	}
	acct := p.Base()
	if err := upd.Validate(acct.Role); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}

	start := time.Now()
	err = r.profiles.UpdateProfile(ctx, acct, upd)
	r.telemetry.observe("identity.mutate", start, err, map[string]string{"role": string(acct.Role)})
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	keys := []core.CacheKey{core.Key(core.EntityAccount, acct.ID)}
	if acct.Role == model.RoleEmployer {
		keys = append(keys, core.Key(core.EntityEmployer, acct.ID))
	}
	return r.reresolve(ctx, sess, keys...)
}

// AttachMedia uploads blob for the current Principal, records its URL on the role record
// and re-resolves. If the record write fails the upload is deleted; an object that cannot
// be deleted is left behind and reported.
func (r *IdentityResolver) AttachMedia(ctx context.Context, kind model.MediaKind, blob model.Blob) (string, error) {
	p, sess, err := r.current()
	if err != nil {
		return "", err
	}
	acct := p.Base()
	if !kind.AllowedFor(acct.Role) {
		return "", apperrors.Forbiddenf("%s accounts cannot attach %s", acct.Role, kind)
	}
	if blob.Body == nil {
		return "", apperrors.ValidationField("file", "file is required")
	}
	if r.media.Blobs == nil {
		return "", apperrors.Internal("blob store not configured")
	}
	bucket := r.media.Buckets.forKind(kind)
	if bucket == "" {
		return "", apperrors.Internal(fmt.Sprintf("no bucket configured for %s", kind))
	}

	key := acct.ID + "/" + uuid.NewString() + blob.Ext()
	start := time.Now()
	url, err := r.media.Blobs.Put(ctx, ports.PutObjectInput{
		Bucket:      bucket,
		Key:         key,
		ContentType: blob.ContentType,
		Size:        blob.Size,
		Body:        blob.Body,
	})
	if err != nil {
		r.telemetry.observe("identity.attach_media", start, err, map[string]string{"kind": string(kind)})
		return "", apperrors.Wrap(err, apperrors.ErrCodeTransientIO, "upload media")
	}

	err = r.profiles.SetMediaURL(ctx, core.SetMediaURLParams{AccountID: acct.ID, Kind: kind, URL: url})
	r.telemetry.observe("identity.attach_media", start, err, map[string]string{"kind": string(kind)})
	if err != nil {
		r.discardUpload(ctx, acct.ID, bucket, key, err)
		return "", fmt.Errorf("record media url: %w", err)
	}

	entity := core.EntityCandidate
	if acct.Role == model.RoleEmployer {
		entity = core.EntityEmployer
	}
	if _, err := r.reresolve(ctx, sess, core.Key(entity, acct.ID)); err != nil {
		return url, err
	}
	return url, nil
}

// discardUpload deletes an object whose URL never reached the profile. It runs
// detached from ctx so a canceled request still cleans up.
func (r *IdentityResolver) discardUpload(ctx context.Context, principalID, bucket, key string, cause error) {
	delCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), orphanDeleteTimeout)
	defer cancel()
	if err := r.media.Blobs.Delete(delCtx, bucket, key); err != nil {
		r.reportOrphan(ctx, principalID, bucket, key, errors.Join(cause, fmt.Errorf("delete upload: %w", err)))
		return
	}
	r.logger.InfoContext(ctx, "deleted upload after failed record update",
		"principal_id", principalID, "bucket", bucket, "key", key, "error", cause)
}

func (r *IdentityResolver) reportOrphan(ctx context.Context, principalID, bucket, key string, cause error) {
	r.logger.WarnContext(ctx, "orphaned blob after failed record update",
		"principal_id", principalID, "bucket", bucket, "key", key, "error", cause)
	r.telemetry.notify(ctx, notify.Event{
		Kind:      notify.KindOrphanedBlob,
		Severity:  notify.SeverityWarning,
		Summary:   "Uploaded media was not recorded on the profile",
		SubjectID: bucket + "/" + key,
		ActorID:   principalID,
		Fields:    map[string]string{"error": cause.Error()},
	})
}

// candidate returns the current Principal when it is a candidate.
func (r *IdentityResolver) candidate() (*model.CandidatePrincipal, domainauth.Session, error) {
	p, sess, err := r.current()
	if err != nil {
		return nil, sess, err
	}
	c, ok := p.(*model.CandidatePrincipal)
	if !ok {
		return nil, sess, apperrors.Forbidden("only candidates have work history")
	}
	return c, sess, nil
}

// AddExperience appends an entry to the current candidate's history and returns the re-resolved history.
func (r *IdentityResolver) AddExperience(ctx context.Context, in model.ExperienceInput) ([]model.Experience, error) {
	c, sess, err := r.candidate()
	if err != nil {
		return nil, err
	}
	if err := validateExperience(&in); err != nil {
		return nil, err
	}
	if _, err := r.experiences.Create(ctx, c.ID, in); err != nil {
		return nil, fmt.Errorf("create experience: %w", err)
	}
	return r.experiencesAfterWrite(ctx, sess, c.ID)
}

// UpdateExperience replaces an entry owned by the current candidate.
func (r *IdentityResolver) UpdateExperience(ctx context.Context, id string, in model.ExperienceInput) ([]model.Experience, error) {
	c, sess, err := r.candidate()
	if err != nil {
		return nil, err
	}
	if err := validateExperience(&in); err != nil {
		return nil, err
	}
	_, err = r.experiences.Update(ctx, core.UpdateExperienceParams{ID: id, CandidateID: c.ID, Input: in})
	if err != nil {
		return nil, fmt.Errorf("update experience: %w", err)
	}
	return r.experiencesAfterWrite(ctx, sess, c.ID)
}

// DeleteExperience removes an entry owned by the current candidate.
func (r *IdentityResolver) DeleteExperience(ctx context.Context, id string) ([]model.Experience, error) {
	c, sess, err := r.candidate()
	if err != nil {
		return nil, err
	}
	deleted, err := r.experiences.Delete(ctx, id, c.ID)
	if err != nil {
		return nil, fmt.Errorf("delete experience: %w", err)
	}
	if !deleted {
		return nil, apperrors.NotFoundf("experience %s not found", id)
	}
	return r.experiencesAfterWrite(ctx, sess, c.ID)
}

func (r *IdentityResolver) experiencesAfterWrite(ctx context.Context, sess domainauth.Session, candidateID string) ([]model.Experience, error) {
	p, err := r.reresolve(ctx, sess, core.Key(core.EntityExperiences, candidateID))
	if err != nil {
		return nil, err
	}
	c, ok := p.(*model.CandidatePrincipal)
	if !ok {
		return nil, apperrors.Internal("principal changed role")
	}
	return c.Experiences, nil
}

// validateExperience normalizes in and maps date invariant violations to InvalidState.
func validateExperience(in *model.ExperienceInput) error {
	in.Normalize()
	if err := in.Validate(); err != nil {
		if model.IsDateViolation(err) {
			return apperrors.Wrap(err, apperrors.ErrCodeInvalidState, err.Error())
		}
		return apperrors.Wrap(err, apperrors.ErrCodeValidation, err.Error())
	}
	return nil
}
