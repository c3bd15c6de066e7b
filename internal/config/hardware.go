package config

import (
	"runtime"

	"github.com/klauspost/cpuid/v2"
)

// AvailableCores returns the number of cores this process may use. It is the
// scheduler's view (which honours CPU affinity), bounded by the logical core
// count the CPU reports when that is known.
func AvailableCores() int {
	n := runtime.NumCPU()
	if logical := cpuid.CPU.LogicalCores; logical > 0 && logical < n {
		n = logical
	}
	if n < 1 {
		return 1
	}
	return n
}
