// Package inmemorytopology provides a thread-safe, in-memory implementation
// of the topologystore.Store interface. Model graphs range from a handful to
// a few thousand nodes, which fit comfortably in memory.
package inmemorytopology
