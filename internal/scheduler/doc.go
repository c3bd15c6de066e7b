// Package scheduler decides the order in which the steps of an executable
// plan may run. Steps are grouped into levels by dependency depth: every step
// of a level only reads steps of earlier levels, so the steps of one level can
// be evaluated concurrently.
package scheduler
