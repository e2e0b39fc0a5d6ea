// Package preview ships the built-in preview dispatchers: the disable
// veto, the configurable glob rules, content-type sniffing, and the
// universal default fallback.
package preview

import (
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gabriel-vasile/mimetype"
	"go.uber.org/zap"

	"github.com/pathlane/dirview/internal/domain/resolve"
	"github.com/pathlane/dirview/internal/infrastructure/config"
	"github.com/pathlane/dirview/internal/infrastructure/logging"
	"github.com/pathlane/dirview/internal/shared/types"
)

// Disable builds the veto dispatcher: entries matching any of the
// configured globs get an explicit "disabled" preview, which stops the
// chain. Everything else is declined to the next dispatcher.
func Disable(globs []string) types.Dispatcher {
	return types.Dispatcher{
		Name: resolve.DispatcherDisable,
		Dispatch: func(entry string) (types.PreviewContent, bool) {
			for _, pattern := range globs {
				if ok, err := doublestar.Match(pattern, filepath.Base(entry)); err == nil && ok {
					return types.PreviewContent{Kind: "disabled"}, true
				}
			}
			return types.PreviewContent{}, false
		},
	}
}

// Rules builds the glob-rule dispatcher: the first configured pattern
// matching the entry decides the preview kind.
func Rules(rules []config.PreviewRule) types.Dispatcher {
	return types.Dispatcher{
		Name: "rules",
		Dispatch: func(entry string) (types.PreviewContent, bool) {
			for _, rule := range rules {
				if ok, err := doublestar.Match(rule.Pattern, filepath.Base(entry)); err == nil && ok {
					return types.PreviewContent{Kind: rule.Kind, Data: entry}, true
				}
			}
			return types.PreviewContent{}, false
		},
	}
}

// Mime builds the content-sniffing dispatcher. Text entries preview as
// text; anything unreadable or binary is declined so a later dispatcher
// can attempt it.
func Mime() types.Dispatcher {
	return types.Dispatcher{
		Name: "mime",
		Dispatch: func(entry string) (types.PreviewContent, bool) {
			mtype, err := mimetype.DetectFile(entry)
			if err != nil {
				return types.PreviewContent{}, false
			}
			if strings.HasPrefix(mtype.String(), "text/") {
				return types.PreviewContent{Kind: "text", Data: mtype.String()}, true
			}
			return types.PreviewContent{}, false
		},
	}
}

// Default builds the universal fallback: it never declines.
func Default() types.Dispatcher {
	return types.Dispatcher{
		Name: resolve.DispatcherDefault,
		Dispatch: func(entry string) (types.PreviewContent, bool) {
			return types.PreviewContent{Kind: "info", Data: entry}, true
		},
	}
}

// Seed registers the built-in dispatchers with the capability registry.
func Seed(reg *resolve.Registry, cfg *config.Config, log *logging.Logger) error {
	if log == nil {
		log = logging.NewNop()
	}

	dispatchers := []types.Dispatcher{
		Disable(cfg.Render.DisableGlobs),
		Rules(cfg.Render.PreviewRules),
		Mime(),
		Default(),
	}
	for _, d := range dispatchers {
		if err := reg.RegisterDispatcher(d); err != nil {
			return err
		}
		log.Debug("Registered preview dispatcher", zap.String("dispatcher", d.Name))
	}
	return nil
}
