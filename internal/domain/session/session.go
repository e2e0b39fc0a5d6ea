// Package session defines the Session entity: one browsing context with
// its own depth, owned display resources, and rendering configuration.
package session

import (
	"fmt"
	"time"

	"github.com/pathlane/dirview/internal/shared/id"
	"github.com/pathlane/dirview/internal/shared/types"
)

// RootResolver yields the display region that should act as a session's
// primary region. Invoked at activation time, not at construction.
type RootResolver func() id.RegionID

// Session is one browsing context. It is created via New, registered
// into its surface's registry immediately, mutated by the activation
// engine and row navigation during its life, and destroyed by teardown.
type Session struct {
	ID   id.SessionID `json:"id"`
	Name string       `json:"name"`

	// Depth is -1 for plain sessions and >=0 for overlay sessions with
	// that many visible ancestor levels. Mutated by the resolver.
	Depth           int `json:"depth"`
	FullscreenDepth int `json:"fullscreen_depth"`
	readOnlyDepth   int

	// TransientParent is a weak back-reference by identifier; the parent
	// never owns its children.
	TransientParent id.SessionID `json:"transient_parent,omitempty"`

	// Ownership lists: display resources released at teardown.
	ParentBuffers  []id.ResourceID `json:"parent_buffers"`
	PreviewBuffers []id.ResourceID `json:"preview_buffers"`
	ParentWindows  []id.RegionID   `json:"parent_windows"`
	PreviewWindow  id.RegionID     `json:"preview_window,omitempty"`
	RootWindow     id.RegionID     `json:"root_window,omitempty"`

	// WindowSnapshot restores the surface's prior layout on teardown.
	// Never restored for plain sessions.
	WindowSnapshot types.Snapshot `json:"window_snapshot"`

	RootResolver RootResolver `json:"-"`

	// IndexPath is the currently focused entry; row navigation writes it.
	IndexPath string `json:"index_path"`

	// Derived chains, recomputed on every activation. Never persisted.
	AttributeChain []types.AttributePair `json:"-"`
	PreviewChain   []types.Dispatcher    `json:"-"`

	ListingSwitches string             `json:"listing_switches"`
	SortCriteria    types.SortCriteria `json:"sort_criteria"`

	CreatedAt time.Time `json:"created_at"`
}

// Options configures session construction. Zero values fall back to
// the supplied defaults.
type Options struct {
	Name            string
	Depth           *int // nil means the configured default depth
	RootResolver    RootResolver
	TransientParent id.SessionID
	Snapshot        types.Snapshot
	IndexPath       string
	ListingSwitches string
	SortCriteria    *types.SortCriteria
}

// New constructs a session, deriving the fixed depth variants. Depth -1
// marks a plain session; any other negative depth is rejected.
func New(opts Options, defaultDepth int, defaultSwitches string) (*Session, error) {
	depth := defaultDepth
	if opts.Depth != nil {
		depth = *opts.Depth
	}
	if depth < types.PlainDepth {
		return nil, fmt.Errorf("depth %d: %w", depth, types.ErrInvalidDepth)
	}

	switches := opts.ListingSwitches
	if switches == "" {
		switches = defaultSwitches
	}
	criteria := types.DefaultSortCriteria()
	if opts.SortCriteria != nil {
		criteria = *opts.SortCriteria
	}

	s := &Session{
		ID:              id.NewSessionID(),
		Name:            opts.Name,
		Depth:           depth,
		FullscreenDepth: depth,
		readOnlyDepth:   depth,
		TransientParent: opts.TransientParent,
		WindowSnapshot:  opts.Snapshot,
		RootResolver:    opts.RootResolver,
		IndexPath:       opts.IndexPath,
		ListingSwitches: switches,
		SortCriteria:    criteria,
		CreatedAt:       time.Now(),
	}
	if s.Name == "" {
		s.Name = string(s.ID)
	}
	return s, nil
}

// ReadOnlyDepth returns the depth fixed at construction. It never
// changes afterward.
func (s *Session) ReadOnlyDepth() int {
	return s.readOnlyDepth
}

// IsPlain reports whether the session runs in plain (non-overlay) mode.
func (s *Session) IsPlain() bool {
	return s.Depth == types.PlainDepth
}

// AddParentBuffer records ownership of a parent buffer. Duplicates are
// ignored to keep the ownership lists handle-unique.
func (s *Session) AddParentBuffer(r id.ResourceID) {
	s.ParentBuffers = appendUniqueResource(s.ParentBuffers, r)
}

// AddPreviewBuffer records ownership of a preview buffer.
func (s *Session) AddPreviewBuffer(r id.ResourceID) {
	s.PreviewBuffers = appendUniqueResource(s.PreviewBuffers, r)
}

// AddParentWindow records ownership of a parent window.
func (s *Session) AddParentWindow(w id.RegionID) {
	s.ParentWindows = appendUniqueRegion(s.ParentWindows, w)
}

// OwnedBuffers returns all buffers the session owns.
func (s *Session) OwnedBuffers() []id.ResourceID {
	out := make([]id.ResourceID, 0, len(s.ParentBuffers)+len(s.PreviewBuffers))
	out = append(out, s.ParentBuffers...)
	out = append(out, s.PreviewBuffers...)
	return out
}

// OwnedWindows returns all windows the session owns, root included.
func (s *Session) OwnedWindows() []id.RegionID {
	out := make([]id.RegionID, 0, len(s.ParentWindows)+2)
	out = append(out, s.ParentWindows...)
	if s.PreviewWindow != "" {
		out = appendUniqueRegion(out, s.PreviewWindow)
	}
	if s.RootWindow != "" {
		out = appendUniqueRegion(out, s.RootWindow)
	}
	return out
}

// OwnsWindow reports whether the given region is among the session's
// owned windows.
func (s *Session) OwnsWindow(w id.RegionID) bool {
	if w == "" {
		return false
	}
	for _, owned := range s.OwnedWindows() {
		if owned == w {
			return true
		}
	}
	return false
}

func appendUniqueResource(list []id.ResourceID, r id.ResourceID) []id.ResourceID {
	for _, have := range list {
		if have == r {
			return list
		}
	}
	return append(list, r)
}

func appendUniqueRegion(list []id.RegionID, w id.RegionID) []id.RegionID {
	for _, have := range list {
		if have == w {
			return list
		}
	}
	return append(list, w)
}
