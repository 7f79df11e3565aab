package executable

type options struct {
	name string
	list bool
}

// Option represents executable option
type Option func(o *options)

// WithName sets the executable name used in events and traces
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// AsList makes a model-backed executable produce a list concept
func AsList() Option {
	return func(o *options) {
		o.list = true
	}
}

func newOptions(defaultName string, opts []Option) *options {
	ret := &options{name: defaultName}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}
