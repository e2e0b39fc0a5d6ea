// Package surface holds per-display-surface state: the session
// registry, the transient stack, and the current-session slot. One
// Context exists per independent display surface; contexts are created
// lazily on first use and never explicitly destroyed.
package surface

import (
	"sort"
	"sync"

	"github.com/pathlane/dirview/internal/domain/registry"
	"github.com/pathlane/dirview/internal/domain/session"
	"github.com/pathlane/dirview/internal/shared/id"
)

// currentParam is the display-parameter cache key holding the last
// current session. Reclaim re-derives the current pointer from it.
const currentParam = "current-session"

// Context is the per-surface state container. No hidden process-wide
// singletons: every operation receives its Context explicitly.
type Context struct {
	ID       id.SurfaceID
	Sessions *registry.Registry

	mu         sync.Mutex
	transients []id.SessionID
	current    *session.Session

	// StickyID pins a session as the surface's fixed current session
	// across teardowns. Distinct from the ephemeral parameter cache.
	stickyID id.SessionID
	params   map[string]string

	// interceptNavigation is the surface-wide override installed by
	// reclaim while a sticky session is resolvable.
	interceptNavigation bool
}

func newContext(sid id.SurfaceID) *Context {
	return &Context{
		ID:       sid,
		Sessions: registry.New(),
		params:   make(map[string]string),
	}
}

// Current returns the surface's current session, or nil.
func (c *Context) Current() *session.Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// SetCurrent installs a session as current and mirrors it into the
// display-parameter cache. Passing nil clears the slot.
func (c *Context) SetCurrent(s *session.Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = s
	if s == nil {
		delete(c.params, currentParam)
		return
	}
	c.params[currentParam] = string(s.ID)
}

// DropCurrent clears the current slot without touching the parameter
// cache. Teardown uses it so the following reclaim pass re-derives the
// pointer from persistent per-surface state.
func (c *Context) DropCurrent() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = nil
}

// CachedCurrent returns the session ID remembered in the ephemeral
// parameter cache, if any.
func (c *Context) CachedCurrent() (id.SessionID, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.params[currentParam]
	return id.SessionID(v), ok
}

// PushTransient records a session as the parent of an active transient.
func (c *Context) PushTransient(sid id.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, have := range c.transients {
		if have == sid {
			return
		}
	}
	c.transients = append(c.transients, sid)
}

// RemoveTransient drops a session from the transient stack. No-op when
// absent.
func (c *Context) RemoveTransient(sid id.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, have := range c.transients {
		if have == sid {
			c.transients = append(c.transients[:i], c.transients[i+1:]...)
			return
		}
	}
}

// Transients returns a copy of the transient stack, oldest first.
func (c *Context) Transients() []id.SessionID {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]id.SessionID, len(c.transients))
	copy(out, c.transients)
	return out
}

// SetSticky pins (or, with the zero ID, unpins) the surface's fixed
// current session.
func (c *Context) SetSticky(sid id.SessionID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stickyID = sid
}

// Sticky returns the pinned session ID, zero when unset.
func (c *Context) Sticky() id.SessionID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stickyID
}

// SetParam stores an ephemeral display parameter.
func (c *Context) SetParam(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params[key] = value
}

// Param reads an ephemeral display parameter.
func (c *Context) Param(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.params[key]
	return v, ok
}

// ClearParams drops the whole ephemeral parameter cache.
func (c *Context) ClearParams() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params = make(map[string]string)
}

// SetInterceptNavigation installs or removes the surface-wide
// row-navigation override.
func (c *Context) SetInterceptNavigation(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.interceptNavigation = on
}

// InterceptNavigation reports whether external row-navigation commands
// are currently intercepted on this surface.
func (c *Context) InterceptNavigation() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.interceptNavigation
}

// Table tracks every surface context, created lazily by handle.
type Table struct {
	mu       sync.RWMutex
	surfaces map[id.SurfaceID]*Context
}

// NewTable creates an empty surface table.
func NewTable() *Table {
	return &Table{
		surfaces: make(map[id.SurfaceID]*Context),
	}
}

// Get returns the context for a surface handle, creating it on first
// use.
func (t *Table) Get(sid id.SurfaceID) *Context {
	t.mu.Lock()
	defer t.mu.Unlock()

	if ctx, ok := t.surfaces[sid]; ok {
		return ctx
	}
	ctx := newContext(sid)
	t.surfaces[sid] = ctx
	return ctx
}

// All returns every known context ordered by surface ID.
func (t *Table) All() []*Context {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*Context, 0, len(t.surfaces))
	for _, ctx := range t.surfaces {
		out = append(out, ctx)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// TotalSessions counts live sessions across every surface.
func (t *Table) TotalSessions() int {
	total := 0
	for _, ctx := range t.All() {
		total += ctx.Sessions.Len()
	}
	return total
}

// CollectAll gathers a field across every surface's registry, flattened
// and deduplicated with first-seen order preserved.
func (t *Table) CollectAll(selector registry.FieldSelector) []string {
	var all []*session.Session
	for _, ctx := range t.All() {
		all = append(all, ctx.Sessions.All()...)
	}
	return registry.Dedupe(all, selector)
}
