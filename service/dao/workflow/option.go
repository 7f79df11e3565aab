package workflow

import "github.com/viant/afs"

type Option func(*Service)

// WithRootNodeName sets the key holding the root step
func WithRootNodeName(name string) Option {
	return func(s *Service) {
		s.rootNodeName = name
	}
}

// WithFS sets the storage service used to load workflows and prompts
func WithFS(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}
