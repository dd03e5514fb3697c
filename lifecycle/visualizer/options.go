package visualizer

import "github.com/stateline-labs/stateline/lifecycle"

// Options configures the visualization output.
type Options struct {
	// ShowActions labels transition edges with their action names
	ShowActions bool

	// ShowLabels adds title-cased display names to tag nodes
	ShowLabels bool

	// Direction controls diagram flow: "TD" (top-down) or "LR" (left-right)
	Direction string

	// HighlightPath highlights specific tags in the diagram
	HighlightPath []lifecycle.Tag
}

// DefaultOptions returns sensible defaults for visualization.
func DefaultOptions() Options {
	return Options{
		ShowActions: true,
		ShowLabels:  true,
		Direction:   "TD",
	}
}

// WithShowActions enables/disables edge action labels.
func (o Options) WithShowActions(show bool) Options {
	o.ShowActions = show

	return o
}

// WithShowLabels enables/disables tag display names.
func (o Options) WithShowLabels(show bool) Options {
	o.ShowLabels = show

	return o
}

// WithDirection sets the diagram direction.
func (o Options) WithDirection(direction string) Options {
	o.Direction = direction

	return o
}

// WithHighlightPath sets tags to highlight.
func (o Options) WithHighlightPath(path []lifecycle.Tag) Options {
	o.HighlightPath = path

	return o
}
