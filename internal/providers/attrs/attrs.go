// Package attrs seeds the built-in attribute capability pairs into the
// resolver's static registry. The rendering pipeline invokes the pairs;
// the core only resolves the ordered list per session.
package attrs

import (
	"go.uber.org/zap"

	"github.com/pathlane/dirview/internal/domain/resolve"
	"github.com/pathlane/dirview/internal/infrastructure/logging"
	"github.com/pathlane/dirview/internal/shared/types"
)

// Seed registers the built-in attribute pairs plus the optional extras
// shipped with the reference binary. Must run once at startup, before
// configuration validation.
func Seed(reg *resolve.Registry, log *logging.Logger) error {
	if log == nil {
		log = logging.NewNop()
	}

	pairs := []types.AttributePair{
		{
			Name:   resolve.AttrHighlightLine,
			Setup:  func() {},
			Render: func(row types.RowContext) { _ = row.Highlight },
		},
		{
			Name:   resolve.AttrZoom,
			Setup:  func() {},
			Render: func(types.RowContext) {},
		},
		{
			Name:   resolve.AttrSymlinkTarget,
			Setup:  func() {},
			Render: func(row types.RowContext) { _ = row.End },
		},
		// Extras available for the configured attribute list.
		{
			Name:   "file-size",
			Setup:  func() {},
			Render: func(types.RowContext) {},
		},
		{
			Name:   "vc-state",
			Setup:  func() {},
			Render: func(types.RowContext) {},
		},
		// media-thumb is the usual enlarge-class attribute: thumbnails
		// need the full surface width.
		{
			Name:   "media-thumb",
			Setup:  func() {},
			Render: func(types.RowContext) {},
		},
	}

	for _, pair := range pairs {
		if err := reg.RegisterAttribute(pair); err != nil {
			return err
		}
		log.Debug("Registered attribute", zap.String("attribute", pair.Name))
	}
	return nil
}
