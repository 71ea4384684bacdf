package core

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// DefaultWorkers returns the worker pool size for this machine: logical
// cores minus one, leaving a core for the driver goroutine. On a single
// core machine it returns zero and chunks run inline.
func DefaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		n = runtime.NumCPU()
	}
	if n <= 1 {
		return 0
	}
	return n - 1
}
