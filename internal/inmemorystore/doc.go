// Package inmemorystore provides a thread-safe, in-memory implementation
// of the nodestore.Store interface. It is suitable for local evaluation, where
// the state of one run never needs to outlive it.
package inmemorystore
