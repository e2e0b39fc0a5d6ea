package types

import "time"

// PlainDepth is the sentinel depth of a plain (non-overlay) session.
// Any other negative depth is invalid input.
const PlainDepth = -1

// Snapshot is an opaque captured layout state for a display surface.
// The core never inspects the token; it only hands it back to the
// surface primitives at teardown.
type Snapshot struct {
	Token   string    `json:"token"`
	TakenAt time.Time `json:"taken_at"`
}

// Valid reports whether the snapshot captured anything restorable.
func (s Snapshot) Valid() bool {
	return s.Token != ""
}

// RowContext carries the boundary positions of one rendered row plus an
// optional highlight flag. Capabilities that don't need a field simply
// don't read it.
type RowContext struct {
	Begin     int  `json:"begin"`
	End       int  `json:"end"`
	Highlight bool `json:"highlight"`
}

// SortKey selects the listing sort order.
type SortKey string

const (
	SortByName  SortKey = "name"
	SortBySize  SortKey = "size"
	SortByMtime SortKey = "mtime"
)

// SortCriteria is the sort configuration consumed by the listing
// collaborator. The core only stores and forwards it.
type SortCriteria struct {
	Key       SortKey `json:"key"`
	Reverse   bool    `json:"reverse"`
	DirsFirst bool    `json:"dirs_first"`
}

// DefaultSortCriteria returns name-ascending, directories first.
func DefaultSortCriteria() SortCriteria {
	return SortCriteria{Key: SortByName, DirsFirst: true}
}
