// Package extension provides run-time registries that let declarative
// workflows refer to language models and Go functions by name.
//
// The registries are normally modified through the public APIs under the
// root conceptflow package, therefore most applications do not need to
// import this package directly.
package extension
