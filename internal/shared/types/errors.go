package types

import "errors"

var (
	// ErrSessionConflict is returned when an overlay session is activated
	// on a surface that already has a current overlay session. The old
	// session is deactivated before this error surfaces, so the surface is
	// left with zero or one current session either way.
	ErrSessionConflict = errors.New("there is already an active overlay session on this surface")

	// ErrDuplicateID is returned on registry insert with a key that is
	// already present. With generated ULIDs this indicates a programming
	// defect, not a recoverable condition.
	ErrDuplicateID = errors.New("duplicate session id")

	// ErrInvalidDepth is returned at construction for negative depths other
	// than PlainDepth.
	ErrInvalidDepth = errors.New("invalid session depth: only -1 marks a plain session")
)
