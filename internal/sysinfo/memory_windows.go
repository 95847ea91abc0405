// file: internal/sysinfo/memory_windows.go
// version: 1.1.0
// guid: 0d1e2f3a-4b5c-6d7e-8f9a-0b1c2d3e4f5a

//go:build windows

package sysinfo

import (
	"syscall"
	"unsafe"
)

type memoryStatusEx struct {
	dwLength                uint32
	dwMemoryLoad            uint32
	ullTotalPhys            uint64
	ullAvailPhys            uint64
	ullTotalPageFile        uint64
	ullAvailPageFile        uint64
	ullTotalVirtual         uint64
	ullAvailVirtual         uint64
	ullAvailExtendedVirtual uint64
}

func globalMemoryStatus() (memoryStatusEx, bool) {
	kernel32 := syscall.NewLazyDLL("kernel32.dll")
	proc := kernel32.NewProc("GlobalMemoryStatusEx")

	var status memoryStatusEx
	status.dwLength = uint32(unsafe.Sizeof(status))

	ret, _, _ := proc.Call(uintptr(unsafe.Pointer(&status)))
	return status, ret != 0
}

func platformTotalMemory() uint64 {
	status, ok := globalMemoryStatus()
	if !ok {
		return 0
	}
	return status.ullTotalPhys
}

func platformAvailableMemory() uint64 {
	status, ok := globalMemoryStatus()
	if !ok {
		return 0
	}
	return status.ullAvailPhys
}
