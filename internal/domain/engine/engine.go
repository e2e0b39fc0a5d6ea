// Package engine implements the session activation, teardown, transient
// composition and reclaim state machine. All operations run to
// completion on a single control thread in response to discrete UI
// events; activation and deactivation of a given surface never
// interleave. Periodic-refresh ticks follow the same model: the timer
// goroutine only flags a tick, and the next operation on the control
// thread applies it (see PumpRefresh).
package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pathlane/dirview/internal/domain/resolve"
	"github.com/pathlane/dirview/internal/domain/session"
	"github.com/pathlane/dirview/internal/domain/surface"
	"github.com/pathlane/dirview/internal/infrastructure/config"
	"github.com/pathlane/dirview/internal/infrastructure/logging"
	"github.com/pathlane/dirview/internal/infrastructure/monitoring"
	"github.com/pathlane/dirview/internal/shared/id"
	"github.com/pathlane/dirview/internal/shared/types"
)

// DefaultRefreshInterval is how often current sessions re-resolve their
// derived configuration while any session is alive.
const DefaultRefreshInterval = 30 * time.Second

// Observer is notified of lifecycle transitions after they complete.
// Notification failures are the observer's problem; the engine never
// blocks a transition on one.
type Observer interface {
	SessionActivated(surfaceID id.SurfaceID, sessionID id.SessionID)
	SessionKilled(surfaceID id.SurfaceID, sessionID id.SessionID)
	SurfaceReclaimed(surfaceID id.SurfaceID, currentID id.SessionID)
}

// Engine is the single entry point for making a session current on a
// surface and for unwinding it again.
type Engine struct {
	surfaces *surface.Table
	prims    surface.Primitives
	resolver *resolve.Resolver
	cfg      *config.Config
	log      *logging.Logger
	metrics  *monitoring.Metrics
	shared   *SharedState

	refreshInterval time.Duration
	observers       []Observer
}

// New creates an activation engine. metrics may be nil.
func New(surfaces *surface.Table, prims surface.Primitives, resolver *resolve.Resolver, cfg *config.Config, log *logging.Logger, metrics *monitoring.Metrics) *Engine {
	if log == nil {
		log = logging.NewNop()
	}
	return &Engine{
		surfaces:        surfaces,
		prims:           prims,
		resolver:        resolver,
		cfg:             cfg,
		log:             log,
		metrics:         metrics,
		shared:          NewSharedState(),
		refreshInterval: DefaultRefreshInterval,
	}
}

// WithRefreshInterval overrides the periodic-refresh cadence.
func (e *Engine) WithRefreshInterval(d time.Duration) *Engine {
	e.refreshInterval = d
	return e
}

// AddObserver registers a lifecycle observer.
func (e *Engine) AddObserver(obs Observer) {
	e.observers = append(e.observers, obs)
}

// Shared exposes the process-wide shared state.
func (e *Engine) Shared() *SharedState {
	return e.shared
}

// Surfaces exposes the surface table.
func (e *Engine) Surfaces() *surface.Table {
	return e.surfaces
}

// Create constructs a session, captures the surface layout when the
// caller did not, registers the session immediately, and arms the
// periodic-refresh timer.
func (e *Engine) Create(surf *surface.Context, opts session.Options) (*session.Session, error) {
	e.PumpRefresh()
	if !opts.Snapshot.Valid() {
		opts.Snapshot = e.prims.CaptureLayout()
	}
	s, err := session.New(opts, e.cfg.Session.DefaultDepth, e.cfg.Session.ListingSwitches)
	if err != nil {
		return nil, err
	}
	if s.RootResolver == nil {
		s.RootResolver = e.prims.FocusedRegion
	}
	if err := surf.Sessions.Insert(s); err != nil {
		return nil, err
	}

	e.shared.EnsureRefresh(e.refreshInterval)
	e.metrics.SetLive(e.surfaces.TotalSessions())
	e.log.Debug("Session created",
		zap.String("surface_id", string(surf.ID)),
		zap.String("session_id", string(s.ID)),
		zap.Int("depth", s.Depth))
	return s, nil
}

// Activate makes s the current session of its surface, negotiating with
// the previously-current session in exactly one of three ways.
func (e *Engine) Activate(surf *surface.Context, s *session.Session) (*session.Session, error) {
	e.PumpRefresh()
	old := surf.Current()

	switch {
	case s.TransientParent != "":
		// Child transients always take over; no negotiation.

	case old != nil && old != s && !old.IsPlain() && !s.IsPlain():
		// Only one overlay session may own a surface at a time: overlay
		// sessions replace the entire surface layout. The old session is
		// still deactivated so the surface ends up with zero or one
		// current session regardless of the error.
		e.Deactivate(surf, old)
		e.metrics.RecordActivation("conflict")
		e.log.Warn("Overlay session conflict",
			zap.String("surface_id", string(surf.ID)),
			zap.String("session_id", string(s.ID)),
			zap.String("old_session_id", string(old.ID)))
		return nil, fmt.Errorf("surface %s: %w", surf.ID, types.ErrSessionConflict)

	case old != nil && old != s && old.OwnsWindow(e.prims.FocusedRegion()):
		e.Deactivate(surf, old)
	}

	return e.proceed(surf, s)
}

func (e *Engine) proceed(surf *surface.Context, s *session.Session) (*session.Session, error) {
	// Global configuration or the attribute set may have changed since
	// the last activation of this session.
	e.resolver.Refresh(s)

	resolveRoot := s.RootResolver
	if resolveRoot == nil {
		resolveRoot = e.prims.FocusedRegion
	}
	root := resolveRoot()
	if e.prims.IsProtectedRegion(root) {
		root = e.prims.NextRegion()
	}
	s.RootWindow = root

	surf.SetCurrent(s)

	e.metrics.RecordActivation("ok")
	e.metrics.SetLive(e.surfaces.TotalSessions())
	e.log.Info("Session activated",
		zap.String("surface_id", string(surf.ID)),
		zap.String("session_id", string(s.ID)),
		zap.String("root_window", string(root)))
	for _, obs := range e.observers {
		obs.SessionActivated(surf.ID, s.ID)
	}
	return s, nil
}

// StartTransient spawns child as a transient of parent: parent is
// pushed onto the surface's transient stack and child takes over.
func (e *Engine) StartTransient(surf *surface.Context, parent, child *session.Session) (*session.Session, error) {
	child.TransientParent = parent.ID
	surf.PushTransient(parent.ID)
	e.metrics.RecordTransient()
	return e.Activate(surf, child)
}

// EndTransient tears down every live descendant of the target session,
// then deactivates the target itself. An unresolvable target is a
// no-op.
func (e *Engine) EndTransient(surf *surface.Context, target id.SessionID) {
	t, ok := surf.Sessions.Lookup(target)
	if !ok {
		return
	}
	e.killDescendants(surf, t.ID)
	e.Deactivate(surf, t)
}

// EndTransientSession is EndTransient for callers holding the session
// itself rather than its identifier.
func (e *Engine) EndTransientSession(surf *surface.Context, target *session.Session) {
	e.EndTransient(surf, target.ID)
}

// killDescendants walks the registry for children of pid and tears them
// down depth-first, so every descendant dies before its ancestor.
func (e *Engine) killDescendants(surf *surface.Context, pid id.SessionID) {
	for _, s := range surf.Sessions.All() {
		if s.TransientParent == pid {
			e.killDescendants(surf, s.ID)
			e.Kill(surf, s, nil)
		}
	}
}

// Kill unconditionally removes a session from circulation: restores the
// captured layout (non-plain sessions only, exactly once), drops the
// session from the transient stack, releases every owned resource,
// unregisters it, runs the caller-supplied finalization body, and
// finishes with a reclaim pass.
func (e *Engine) Kill(surf *surface.Context, s *session.Session, finalize func()) {
	if !s.IsPlain() && s.WindowSnapshot.Valid() {
		if err := e.prims.RestoreLayout(s.WindowSnapshot); err != nil {
			e.log.Error("Layout restore failed",
				zap.String("session_id", string(s.ID)),
				zap.Error(err))
		} else {
			e.metrics.RecordRestore()
		}
		s.WindowSnapshot = types.Snapshot{}
	}

	surf.RemoveTransient(s.ID)

	// Release is idempotent; dead handles are silently skipped.
	for _, buf := range s.OwnedBuffers() {
		e.prims.ReleaseBuffer(buf)
	}
	for _, win := range s.OwnedWindows() {
		e.prims.ReleaseWindow(win)
	}

	surf.Sessions.Remove(s.ID)
	if surf.Current() == s {
		surf.DropCurrent()
	}

	if finalize != nil {
		finalize()
	}

	e.metrics.RecordTeardown()
	e.metrics.SetLive(e.surfaces.TotalSessions())
	e.log.Info("Session killed",
		zap.String("surface_id", string(surf.ID)),
		zap.String("session_id", string(s.ID)))
	for _, obs := range e.observers {
		obs.SessionKilled(surf.ID, s.ID)
	}

	e.Reclaim(surf)
}

// Deactivate kills the session with the standard finalization body: if
// no sessions remain across all surfaces, shared scroll-buffer state is
// cleared and the periodic-refresh timer canceled.
func (e *Engine) Deactivate(surf *surface.Context, s *session.Session) {
	e.Kill(surf, s, func() {
		if e.surfaces.TotalSessions() == 0 {
			e.shared.ClearScroll()
			e.shared.CancelRefresh()
		}
	})
}

// Reclaim re-derives the surface's current session from persistent
// per-surface state. A resolvable sticky session installs the
// navigation-intercept override; otherwise the override is removed and
// the ephemeral display-parameter cache consulted, then cleared if it
// no longer resolves. Idempotent; runs after every teardown.
func (e *Engine) Reclaim(surf *surface.Context) {
	e.metrics.RecordReclaim()

	if sticky := surf.Sticky(); sticky != "" {
		if s, ok := surf.Sessions.Lookup(sticky); ok {
			surf.SetCurrent(s)
			surf.SetInterceptNavigation(true)
			e.notifyReclaimed(surf, s.ID)
			return
		}
	}

	surf.SetInterceptNavigation(false)
	if cached, ok := surf.CachedCurrent(); ok {
		if s, live := surf.Sessions.Lookup(cached); live {
			surf.SetCurrent(s)
			e.notifyReclaimed(surf, s.ID)
			return
		}
	}
	surf.DropCurrent()
	surf.ClearParams()
	e.notifyReclaimed(surf, "")
}

func (e *Engine) notifyReclaimed(surf *surface.Context, current id.SessionID) {
	for _, obs := range e.observers {
		obs.SurfaceReclaimed(surf.ID, current)
	}
}

// IsLive reports whether the focused display region belongs to the
// session's owned windows.
func (e *Engine) IsLive(s *session.Session) bool {
	return s.OwnsWindow(e.prims.FocusedRegion())
}

// PumpRefresh applies a pending periodic-refresh tick, re-resolving
// every surface's current session. The timer goroutine only flags the
// tick; the mutation happens here, on the caller's thread, so session
// fields are never written outside an engine operation. Create and
// Activate drain the flag on entry; hosts with idle control loops may
// also call it directly.
func (e *Engine) PumpRefresh() {
	if !e.shared.ConsumeRefreshDue() {
		return
	}
	for _, surf := range e.surfaces.All() {
		if cur := surf.Current(); cur != nil {
			e.resolver.Refresh(cur)
		}
	}
}
