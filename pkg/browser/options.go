package browser

import "time"

// Options holds browser configuration.
type Options struct {
	// Headless controls whether the browser runs without a visible window.
	Headless bool

	// SlowMo inserts a delay before every browser action. Useful when
	// watching a non-headless run.
	SlowMo time.Duration

	// ControlURL attaches to an existing browser's DevTools endpoint
	// instead of launching one.
	ControlURL string

	// NavigationTimeout bounds page navigation and the advisory load
	// heuristics that follow it.
	NavigationTimeout time.Duration

	// InteractionTimeout bounds the wait for an interactive control. A
	// control absent past this bound is a hard failure.
	InteractionTimeout time.Duration

	// ToastTimeout bounds the wait for a post-action confirmation.
	ToastTimeout time.Duration

	// ViewportWidth and ViewportHeight fix the page dimensions so setup
	// layouts render their desktop variant.
	ViewportWidth  int
	ViewportHeight int
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		Headless:           true,
		NavigationTimeout:  30 * time.Second,
		InteractionTimeout: 10 * time.Second,
		ToastTimeout:       15 * time.Second,
		ViewportWidth:      1920,
		ViewportHeight:     1080,
	}
}

// withDefaults fills zero-valued fields from DefaultOptions.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.NavigationTimeout == 0 {
		o.NavigationTimeout = def.NavigationTimeout
	}
	if o.InteractionTimeout == 0 {
		o.InteractionTimeout = def.InteractionTimeout
	}
	if o.ToastTimeout == 0 {
		o.ToastTimeout = def.ToastTimeout
	}
	if o.ViewportWidth == 0 {
		o.ViewportWidth = def.ViewportWidth
	}
	if o.ViewportHeight == 0 {
		o.ViewportHeight = def.ViewportHeight
	}
	return o
}
