// Package metrics probes host-level usage figures for the panel dashboard.
package metrics

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"
	"github.com/shirou/gopsutil/net"
)

type MemoryStats struct {
	Total       uint64  `json:"total"`
	Used        uint64  `json:"used"`
	UsedPercent float64 `json:"usedPercent"`
}

type DriveStats struct {
	Path        string  `json:"path"`
	Total       uint64  `json:"total"`
	Free        uint64  `json:"free"`
	UsedPercent float64 `json:"usedPercent"`
}

type NetStats struct {
	Name      string `json:"name"`
	BytesSent uint64 `json:"bytesSent"`
	BytesRecv uint64 `json:"bytesRecv"`
}

// Snapshot is one point-in-time reading of host usage.
type Snapshot struct {
	CPU       float64     `json:"cpu"`
	Memory    MemoryStats `json:"memory"`
	Drive     DriveStats  `json:"drive"`
	NetStats  []NetStats  `json:"netStats"`
	Timestamp int64       `json:"timestamp"`
}

// Collect gathers a full snapshot. Any probe failure fails the whole call;
// the handler surfaces it to the requester.
func Collect() (Snapshot, error) {
	cpuPct, err := cpu.Percent(0, false)
	if err != nil {
		return Snapshot{}, fmt.Errorf("probe cpu: %w", err)
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		return Snapshot{}, fmt.Errorf("probe memory: %w", err)
	}
	usage, err := disk.Usage("/")
	if err != nil {
		return Snapshot{}, fmt.Errorf("probe drive: %w", err)
	}
	counters, err := net.IOCounters(true)
	if err != nil {
		return Snapshot{}, fmt.Errorf("probe network: %w", err)
	}

	snap := Snapshot{
		Memory: MemoryStats{
			Total:       vm.Total,
			Used:        vm.Used,
			UsedPercent: vm.UsedPercent,
		},
		Drive: DriveStats{
			Path:        usage.Path,
			Total:       usage.Total,
			Free:        usage.Free,
			UsedPercent: usage.UsedPercent,
		},
		Timestamp: time.Now().UnixMilli(),
	}
	if len(cpuPct) > 0 {
		snap.CPU = cpuPct[0]
	}
	for _, c := range counters {
		snap.NetStats = append(snap.NetStats, NetStats{
			Name:      c.Name,
			BytesSent: c.BytesSent,
			BytesRecv: c.BytesRecv,
		})
	}
	return snap, nil
}

// Usage returns the quick cpu/memory pair embedded in the room-list response.
// Probe failures degrade to zero rather than failing the listing.
func Usage() (cpuPercent, memPercent float64) {
	if pct, err := cpu.Percent(0, false); err == nil && len(pct) > 0 {
		cpuPercent = pct[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		memPercent = vm.UsedPercent
	}
	return cpuPercent, memPercent
}
