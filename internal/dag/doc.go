// Package dag is a small directed graph keyed by string ids.
//
// It answers the structural questions a model build asks: which nodes are
// weakly connected (Components), whether the directed edges contain a cycle
// (DetectCycles), and in which order nodes can be evaluated
// (TopologicalSort). Every result is deterministic: ties are broken
// by id, so two graphs with the same nodes and edges always produce the same
// answers regardless of insertion order.
package dag
