package surface

import (
	"github.com/pathlane/dirview/internal/shared/id"
	"github.com/pathlane/dirview/internal/shared/types"
)

// Primitives is the display-surface port. The core never manipulates
// layout beyond these calls; the host environment supplies the real
// implementation.
type Primitives interface {
	// CaptureLayout snapshots the current layout for later restore.
	CaptureLayout() types.Snapshot
	// RestoreLayout undoes a session's visual takeover.
	RestoreLayout(types.Snapshot) error
	// FocusedRegion returns the region currently holding focus.
	FocusedRegion() id.RegionID
	// IsProtectedRegion reports whether a region is a protected side
	// region that sessions must not claim as their root.
	IsProtectedRegion(id.RegionID) bool
	// NextRegion returns the fallback region after the focused one.
	NextRegion() id.RegionID
	// ReleaseBuffer releases an owned buffer. Idempotent: releasing a
	// dead handle is a silent no-op.
	ReleaseBuffer(id.ResourceID)
	// ReleaseWindow releases an owned window. Idempotent.
	ReleaseWindow(id.RegionID)
}
