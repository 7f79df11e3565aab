// Package model contains the in-memory representation of concept workflow
// definitions.
//
// A workflow is typically loaded from a YAML document into the structures
// defined here and in the `graph` and `state` sub-packages, then turned into
// runnable executables and orchestrators by the builder service.
package model
