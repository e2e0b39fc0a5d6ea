package surface

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pathlane/dirview/internal/shared/id"
	"github.com/pathlane/dirview/internal/shared/types"
)

// Fake is an in-memory Primitives implementation used by tests and by
// the reference binary when no host environment is attached. Snapshot
// tokens are opaque uuid strings; the fake only checks that a restored
// token was previously captured.
type Fake struct {
	mu sync.Mutex

	regions    []id.RegionID
	focusedIdx int
	protected  map[id.RegionID]bool

	capturedTokens  map[string]bool
	restoreCounts   map[string]int
	releasedBuffers map[id.ResourceID]bool
	releasedWindows map[id.RegionID]bool
}

// NewFake creates a fake surface with a single unprotected region.
func NewFake() *Fake {
	f := &Fake{
		protected:       make(map[id.RegionID]bool),
		capturedTokens:  make(map[string]bool),
		restoreCounts:   make(map[string]int),
		releasedBuffers: make(map[id.ResourceID]bool),
		releasedWindows: make(map[id.RegionID]bool),
	}
	f.regions = append(f.regions, id.NewRegionID())
	return f
}

// AddRegion grows the region ring and returns the new region.
func (f *Fake) AddRegion() id.RegionID {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := id.NewRegionID()
	f.regions = append(f.regions, r)
	return r
}

// Focus moves focus to a region. Unknown regions are added first.
func (f *Fake) Focus(r id.RegionID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, have := range f.regions {
		if have == r {
			f.focusedIdx = i
			return
		}
	}
	f.regions = append(f.regions, r)
	f.focusedIdx = len(f.regions) - 1
}

// Protect marks a region as a protected side region.
func (f *Fake) Protect(r id.RegionID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.protected[r] = true
}

// CaptureLayout returns a fresh snapshot token.
func (f *Fake) CaptureLayout() types.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	token := uuid.New().String()
	f.capturedTokens[token] = true
	return types.Snapshot{Token: token, TakenAt: time.Now()}
}

// RestoreLayout restores a previously captured snapshot.
func (f *Fake) RestoreLayout(snap types.Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.capturedTokens[snap.Token] {
		return fmt.Errorf("unknown layout snapshot %q", snap.Token)
	}
	f.restoreCounts[snap.Token]++
	return nil
}

// RestoreCount reports how many times a snapshot was restored.
func (f *Fake) RestoreCount(snap types.Snapshot) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.restoreCounts[snap.Token]
}

// FocusedRegion returns the region currently holding focus.
func (f *Fake) FocusedRegion() id.RegionID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regions[f.focusedIdx]
}

// IsProtectedRegion reports whether a region was marked protected.
func (f *Fake) IsProtectedRegion(r id.RegionID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.protected[r]
}

// NextRegion returns the region after the focused one in the ring.
func (f *Fake) NextRegion() id.RegionID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.regions[(f.focusedIdx+1)%len(f.regions)]
}

// ReleaseBuffer marks a buffer released. Already-released handles are
// silently skipped.
func (f *Fake) ReleaseBuffer(r id.ResourceID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releasedBuffers[r] = true
}

// ReleaseWindow marks a window released. Idempotent.
func (f *Fake) ReleaseWindow(w id.RegionID) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.releasedWindows[w] = true
}

// BufferReleased reports whether a buffer handle was released.
func (f *Fake) BufferReleased(r id.ResourceID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releasedBuffers[r]
}

// WindowReleased reports whether a window handle was released.
func (f *Fake) WindowReleased(w id.RegionID) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.releasedWindows[w]
}
