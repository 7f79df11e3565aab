package builder

// Option configures the builder
type Option func(s *Service)

// WithPromptLoader sets the loader used for promptURL steps
func WithPromptLoader(loader PromptLoader) Option {
	return func(s *Service) {
		s.loader = loader
	}
}

// WithDefaultModel sets the model used by steps that name none
func WithDefaultModel(name string) Option {
	return func(s *Service) {
		s.defaultModel = name
	}
}
