// Package runinfo identifies a training run and the host it runs on.
package runinfo

import (
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/cpuid/v2"
)

// Info is logged once at the start of a run.
type Info struct {
	ID        uuid.UUID
	StartedAt time.Time
	CPU       string
	Cores     int
	AVX2      bool
	GoVersion string
}

// New returns Info for a fresh run on the current host.
func New() Info {
	brand := cpuid.CPU.BrandName
	if brand == "" {
		brand = "unknown"
	}
	cores := cpuid.CPU.PhysicalCores
	if cores <= 0 {
		cores = runtime.NumCPU()
	}
	return Info{
		ID:        uuid.New(),
		StartedAt: time.Now(),
		CPU:       brand,
		Cores:     cores,
		AVX2:      cpuid.CPU.Supports(cpuid.AVX2),
		GoVersion: runtime.Version(),
	}
}

// String formats the header line.
func (i Info) String() string {
	return fmt.Sprintf("run=%s cpu=%q cores=%d avx2=%t go=%s",
		i.ID, i.CPU, i.Cores, i.AVX2, i.GoVersion)
}
