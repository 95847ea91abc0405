// file: internal/sysinfo/memory_linux.go
// version: 1.1.0
// guid: 9c0d1e2f-3a4b-5c6d-7e8f-9a0b1c2d3e4f

//go:build linux

package sysinfo

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

func platformTotalMemory() uint64 {
	return meminfoBytes("MemTotal:")
}

func platformAvailableMemory() uint64 {
	return meminfoBytes("MemAvailable:")
}

// meminfoBytes pulls one field out of /proc/meminfo. Values there are
// in kB.
func meminfoBytes(key string) uint64 {
	file, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, key) {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0
		}
		return kb * 1024
	}
	return 0
}
