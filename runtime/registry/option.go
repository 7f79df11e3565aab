package registry

// Option represents registry option
type Option func(r *Registry)

// WithListeners sets overwrite listeners
func WithListeners(listeners ...Listener) Option {
	return func(r *Registry) {
		r.listeners = append(r.listeners, listeners...)
	}
}

// WithDiffContext sets number of context lines in overwrite diffs
func WithDiffContext(lines int) Option {
	return func(r *Registry) {
		if lines >= 0 {
			r.diffContext = lines
		}
	}
}
