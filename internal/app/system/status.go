package system

import (
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
)

// Status is a point-in-time snapshot of the host and process, served on the
// operational status endpoint.
type Status struct {
	Time          time.Time `json:"time"`
	GoVersion     string    `json:"go_version"`
	NumGoroutine  int       `json:"num_goroutine"`
	HostUptimeSec uint64    `json:"host_uptime_sec,omitempty"`
	MemUsedPct    float64   `json:"mem_used_pct,omitempty"`
	CPUUsedPct    float64   `json:"cpu_used_pct,omitempty"`
	Services      []string  `json:"services,omitempty"`
}

// Snapshot collects the current status. Host probes are best-effort; a probe
// failure leaves its field zero rather than failing the snapshot.
func Snapshot(mgr *Manager) Status {
	st := Status{
		Time:         time.Now().UTC(),
		GoVersion:    runtime.Version(),
		NumGoroutine: runtime.NumGoroutine(),
	}
	if mgr != nil {
		st.Services = mgr.Names()
	}
	if uptime, err := host.Uptime(); err == nil {
		st.HostUptimeSec = uptime
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		st.MemUsedPct = vm.UsedPercent
	}
	if pcts, err := cpu.Percent(0, false); err == nil && len(pcts) > 0 {
		st.CPUUsedPct = pcts[0]
	}
	return st
}
