package util

import "runtime"

// GetOptimalPoolSize returns the worker count for CPU-bound scan work:
// min(max(runtime.NumCPU() * 2, 4), 32).
//
// Bulk scans interleave file reads with regex extraction, so 2x the
// core count keeps workers busy while others block on I/O. The floor of
// 4 preserves some parallelism on small machines; the cap of 32 keeps
// the per-worker channel buffers and in-flight file text bounded on
// high-core hosts.
func GetOptimalPoolSize() int {
	cores := runtime.NumCPU()
	poolSize := cores * 2

	if poolSize < 4 {
		poolSize = 4
	}
	if poolSize > 32 {
		poolSize = 32
	}

	return poolSize
}

// GetOptimalPoolSizeWithOverride returns override when positive,
// otherwise the auto-detected size. The override exists for tests and
// deployment tuning.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}
