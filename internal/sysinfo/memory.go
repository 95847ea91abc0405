// file: internal/sysinfo/memory.go
// version: 1.1.0
// guid: 7a8b9c0d-1e2f-3a4b-5c6d-7e8f9a0b1c2d

// Package sysinfo reports process and system memory figures for the
// server health endpoint.
package sysinfo

import "runtime"

// Providers are variables so tests can stub the platform queries.
var (
	totalMemoryProvider     = platformTotalMemory
	availableMemoryProvider = platformAvailableMemory
)

// Snapshot is a point-in-time memory reading. System figures stay zero
// when the platform query fails; process figures always come from the
// Go runtime.
type Snapshot struct {
	ProcessAllocBytes uint64  `json:"process_alloc_bytes"`
	ProcessSysBytes   uint64  `json:"process_sys_bytes"`
	SystemTotalBytes  uint64  `json:"system_total_bytes"`
	SystemUsedPercent float64 `json:"system_used_percent"`
}

// Collect gathers a memory Snapshot.
func Collect() Snapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	snap := Snapshot{
		ProcessAllocBytes: m.Alloc,
		ProcessSysBytes:   m.Sys,
	}

	total := totalMemoryProvider()
	if total == 0 {
		return snap
	}
	snap.SystemTotalBytes = total
	if avail := availableMemoryProvider(); avail <= total {
		snap.SystemUsedPercent = float64(total-avail) / float64(total) * 100.0
	}
	return snap
}
