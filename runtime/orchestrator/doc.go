// Package orchestrator runs composition trees of leaves (executables) and
// composites (Chain, Threads) against a concept registry.
//
// Chain runs its children in declaration order and publishes each leaf's
// outputs before the next child starts. Threads runs its children as one
// batch and publishes leaf outputs together once all children finished, so
// sibling leaves never observe each other. Sequentially, nested composites
// inside a batch write through to the registry and carry the level on to the
// siblings after them. With WithConcurrency above one, every child reads a
// snapshot taken when the batch starts and nested composites start from the
// batch level on their own cursor.
//
// Every published concept is stamped with a level. Chain advances the level
// after each leaf; Threads advances it once for the whole batch.
package orchestrator
