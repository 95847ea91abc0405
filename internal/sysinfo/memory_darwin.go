// file: internal/sysinfo/memory_darwin.go
// version: 1.1.0
// guid: 8b9c0d1e-2f3a-4b5c-6d7e-8f9a0b1c2d3e

//go:build darwin

package sysinfo

import (
	"syscall"
	"unsafe"
)

func platformTotalMemory() uint64 {
	mib := []int32{6 /* CTL_HW */, 24 /* HW_MEMSIZE */}
	var memsize uint64
	length := unsafe.Sizeof(memsize)

	_, _, err := syscall.Syscall6(
		syscall.SYS___SYSCTL,
		uintptr(unsafe.Pointer(&mib[0])),
		uintptr(len(mib)),
		uintptr(unsafe.Pointer(&memsize)),
		uintptr(unsafe.Pointer(&length)),
		0, 0,
	)
	if err != 0 {
		return 0
	}
	return memsize
}

// platformAvailableMemory approximates free memory on macOS. An exact
// figure needs host_statistics64; assuming 20% system overhead is close
// enough for a health readout.
func platformAvailableMemory() uint64 {
	total := platformTotalMemory()
	if total == 0 {
		return 0
	}
	return total * 80 / 100
}
