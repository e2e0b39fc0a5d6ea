package types

// SetupFunc is the one-shot per-activation half of an attribute pair.
type SetupFunc func()

// RenderFunc is the per-row half of an attribute pair. It receives the
// row boundaries and highlight flag; invocation is the rendering
// pipeline's responsibility, the core only resolves the ordered list.
type RenderFunc func(RowContext)

// AttributePair is a named line/row decorator: a setup capability run
// once per activation and a render capability run per row.
type AttributePair struct {
	Name   string
	Setup  SetupFunc
	Render RenderFunc
}

// PreviewContent is what a dispatcher produced for a focused entry.
type PreviewContent struct {
	Kind string `json:"kind"` // e.g. "text", "image", "disabled", "info"
	Data string `json:"data"`
}

// DispatchFunc inspects the focused entry and either produces preview
// content or declines, letting the next dispatcher in the chain attempt.
type DispatchFunc func(entry string) (PreviewContent, bool)

// Dispatcher is a named member of the preview priority chain. The first
// dispatcher willing to handle an entry wins.
type Dispatcher struct {
	Name     string
	Dispatch DispatchFunc
}

// DispatcherNames returns the names of a chain in order. Used by
// diagnostics and tests.
func DispatcherNames(chain []Dispatcher) []string {
	names := make([]string, 0, len(chain))
	for _, d := range chain {
		names = append(names, d.Name)
	}
	return names
}

// AttributeNames returns the names of an attribute chain in order.
func AttributeNames(chain []AttributePair) []string {
	names := make([]string, 0, len(chain))
	for _, a := range chain {
		names = append(names, a.Name)
	}
	return names
}
