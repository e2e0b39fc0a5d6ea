package resolve

import (
	"go.uber.org/zap"

	"github.com/pathlane/dirview/internal/domain/session"
	"github.com/pathlane/dirview/internal/infrastructure/config"
	"github.com/pathlane/dirview/internal/infrastructure/logging"
	"github.com/pathlane/dirview/internal/shared/types"
)

// Resolver recomputes a session's derived rendering configuration. It
// runs on every activation because global configuration may have
// changed between activations of the same session.
type Resolver struct {
	registry *Registry
	cfg      *config.Config
	log      *logging.Logger
}

// NewResolver creates a resolver over a capability registry and the
// loaded global configuration.
func NewResolver(registry *Registry, cfg *config.Config, log *logging.Logger) *Resolver {
	if log == nil {
		log = logging.NewNop()
	}
	return &Resolver{
		registry: registry,
		cfg:      cfg,
		log:      log,
	}
}

// Refresh recomputes the session's attribute chain, preview dispatcher
// chain, and depth variants. Idempotent for unchanged configuration.
func (r *Resolver) Refresh(s *session.Session) {
	names := r.activeAttributes()
	s.AttributeChain = r.resolveAttributes(names)
	s.PreviewChain = r.resolveDispatchers()

	// Enlarge-class attributes require full-width rendering; force the
	// overlay flat. Otherwise restore the construction-time depth.
	if r.intersectsEnlarge(names) {
		if !s.IsPlain() {
			s.Depth = 0
		}
		s.FullscreenDepth = 0
	} else {
		if !s.IsPlain() {
			s.Depth = s.ReadOnlyDepth()
		}
		s.FullscreenDepth = s.ReadOnlyDepth()
	}
}

// activeAttributes is the built-in set unioned with configured extras,
// first-seen order preserved.
func (r *Resolver) activeAttributes() []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range BuiltinAttributes() {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	for _, name := range r.cfg.Render.Attributes {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

func (r *Resolver) resolveAttributes(names []string) []types.AttributePair {
	chain := make([]types.AttributePair, 0, len(names))
	for _, name := range names {
		pair, ok := r.registry.Attribute(name)
		if !ok {
			// Unknown names are rejected at config load; a miss here
			// means a capability was never seeded.
			r.log.Warn("Skipping unresolved attribute", zap.String("attribute", name))
			continue
		}
		if pair.Setup == nil && pair.Render == nil {
			continue
		}
		chain = append(chain, pair)
	}
	return chain
}

// resolveDispatchers builds the priority chain: disable first, the
// configured dispatchers in declared order, default last.
func (r *Resolver) resolveDispatchers() []types.Dispatcher {
	var chain []types.Dispatcher
	seen := make(map[string]bool)

	appendByName := func(name string) {
		if seen[name] {
			return
		}
		d, ok := r.registry.Dispatcher(name)
		if !ok {
			r.log.Warn("Skipping unresolved preview dispatcher", zap.String("dispatcher", name))
			return
		}
		seen[name] = true
		chain = append(chain, d)
	}

	appendByName(DispatcherDisable)
	for _, name := range r.cfg.Render.Dispatchers {
		if name == DispatcherDisable || name == DispatcherDefault {
			continue
		}
		appendByName(name)
	}
	appendByName(DispatcherDefault)
	return chain
}

func (r *Resolver) intersectsEnlarge(names []string) bool {
	if len(r.cfg.Render.Enlarge) == 0 {
		return false
	}
	enlarge := make(map[string]bool, len(r.cfg.Render.Enlarge))
	for _, name := range r.cfg.Render.Enlarge {
		enlarge[name] = true
	}
	for _, name := range names {
		if enlarge[name] {
			return true
		}
	}
	return false
}

// DispatchPreview walks a session's chain and returns the first
// dispatcher's content for the entry. The disable dispatcher can veto
// preview entirely; default is the universal fallback, so a fully
// seeded chain always produces content.
func DispatchPreview(s *session.Session, entry string) (types.PreviewContent, bool) {
	for _, d := range s.PreviewChain {
		if content, ok := d.Dispatch(entry); ok {
			return content, true
		}
	}
	return types.PreviewContent{}, false
}
