// Package types provides shared data structures for the dirview core.
//
// This package defines value types used across all core components,
// ensuring type safety and consistent data structures.
//
// Core Types:
//   - Snapshot: opaque captured surface layout
//   - RowContext: per-row boundary positions and highlight flag
//   - AttributePair: named setup/per-row decorator capability pair
//   - Dispatcher: named preview dispatcher in a priority chain
//   - PreviewContent: output of a dispatcher that accepted an entry
//   - SortCriteria: listing sort configuration
//
// Error Values:
//   - ErrSessionConflict: a second overlay session tried to take a surface
//   - ErrDuplicateID: registry insert with an already-present key
//   - ErrInvalidDepth: a negative depth other than the plain sentinel
package types
