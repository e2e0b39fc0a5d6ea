// Package id provides centralized ID generation for dirview.
//
// This package offers type-safe ULID generation with:
//   - Lexicographic sortability: registry dumps come out in creation order
//   - Prefixed types: type-specific prefixes for debugging (sess_*, srf_*, rsrc_*)
//   - Type safety: separate types prevent ID misuse across registries
//
// Design Principles:
//   - ULIDs only: single ID format across the whole system
//   - K-sortable: timeline queries without timestamps
//   - Debuggable: prefixes make logs readable
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ============================================================================
// Type-Safe ID Wrappers
// ============================================================================

// SessionID identifies a browsing session
type SessionID string

// SurfaceID identifies an independent display surface
type SurfaceID string

// ResourceID identifies an owned display resource (buffer or window)
type ResourceID string

// RegionID identifies a display region within a surface
type RegionID string

// ============================================================================
// ID Prefixes (for debugging and type identification)
// ============================================================================

const (
	SessionPrefix  = "sess"
	SurfacePrefix  = "srf"
	ResourcePrefix = "rsrc"
	RegionPrefix   = "rgn"
)

// ============================================================================
// ULID Generator
// ============================================================================

// Generator generates ULIDs with optional prefixes
type Generator struct {
	entropy   io.Reader
	entropyMu sync.Mutex // Protects entropy reader
}

var (
	// Default generator with cryptographically secure entropy
	defaultGenerator *Generator
	once             sync.Once
)

// Default returns the singleton generator instance
func Default() *Generator {
	once.Do(func() {
		defaultGenerator = NewGenerator()
	})
	return defaultGenerator
}

// NewGenerator creates a new ULID generator. Entropy is monotonic so
// IDs generated within the same millisecond still sort in creation
// order.
func NewGenerator() *Generator {
	return &Generator{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// NewGeneratorWithEntropy creates a generator with custom entropy source
// Useful for testing with deterministic entropy
func NewGeneratorWithEntropy(entropy io.Reader) *Generator {
	return &Generator{
		entropy: entropy,
	}
}

// Generate creates a new ULID
func (g *Generator) Generate() ulid.ULID {
	g.entropyMu.Lock()
	defer g.entropyMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), g.entropy)
}

// GenerateString creates a new ULID as a string
func (g *Generator) GenerateString() string {
	return g.Generate().String()
}

// GenerateWithPrefix creates a prefixed ULID string
func (g *Generator) GenerateWithPrefix(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, g.GenerateString())
}

// ============================================================================
// Typed ID Generators
// ============================================================================

// NewSessionID generates a new session ID
func NewSessionID() SessionID {
	return SessionID(Default().GenerateWithPrefix(SessionPrefix))
}

// NewSurfaceID generates a new surface ID
func NewSurfaceID() SurfaceID {
	return SurfaceID(Default().GenerateWithPrefix(SurfacePrefix))
}

// NewResourceID generates a new resource ID
func NewResourceID() ResourceID {
	return ResourceID(Default().GenerateWithPrefix(ResourcePrefix))
}

// NewRegionID generates a new region ID
func NewRegionID() RegionID {
	return RegionID(Default().GenerateWithPrefix(RegionPrefix))
}

// String methods for ID types
func (id SessionID) String() string  { return string(id) }
func (id SurfaceID) String() string  { return string(id) }
func (id ResourceID) String() string { return string(id) }
func (id RegionID) String() string   { return string(id) }

// ============================================================================
// Validation
// ============================================================================

// IsValid checks if an ID string is a valid ULID
func IsValid(id string) bool {
	_, err := ulid.Parse(id)
	return err == nil
}

// Parse parses a ULID string
func Parse(id string) (ulid.ULID, error) {
	return ulid.Parse(id)
}

// Timestamp extracts the timestamp from a ULID
func Timestamp(id string) (time.Time, error) {
	parsed, err := Parse(id)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(parsed.Time()), nil
}
