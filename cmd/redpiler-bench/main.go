// Command redpiler-bench compiles a scene and drives it for a fixed tick
// count, reporting tick throughput alongside process RSS/CPU sampled via
// gopsutil, in the spirit of the pack's profiling-focused tooling.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/shirou/gopsutil/process"

	"github.com/sarchlab/redpiler/internal/builder"
	"github.com/sarchlab/redpiler/internal/compiler"
	"github.com/sarchlab/redpiler/internal/sceneconfig"
	"github.com/sarchlab/redpiler/internal/voxelstore"
)

func main() {
	scenePath := flag.String("scene", "", "path to a scene YAML file")
	ticks := flag.Int("ticks", 100000, "number of ticks to drive")
	optimize := flag.Bool("optimize", true, "run the optimize-only passes")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "usage: redpiler-bench -scene scene.yaml [-ticks N]")
		os.Exit(2)
	}

	storage := voxelstore.NewMemory()
	min, max, err := sceneconfig.Load(*scenePath, storage)
	if err != nil {
		slog.Error("failed to load scene", "error", err)
		os.Exit(1)
	}

	driver := compiler.New(storage)
	opts := compiler.Options{Bounds: builder.Bounds{Min: min, Max: max}, Optimize: *optimize}
	if err := driver.Compile(opts, storage.AllPendingTicks()); err != nil {
		slog.Error("compile failed", "error", err)
		os.Exit(1)
	}

	proc, procErr := process.NewProcess(int32(os.Getpid()))
	if procErr != nil {
		slog.Warn("gopsutil process handle unavailable, RSS/CPU will not be reported", "error", procErr)
	}

	start := time.Now()
	for i := 0; i < *ticks; i++ {
		if err := driver.Tick(); err != nil {
			slog.Error("tick failed", "error", err)
			os.Exit(1)
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("nodes=%d ticks=%d elapsed=%s ticks/s=%.0f\n",
		driver.NodeCount(), *ticks, elapsed, float64(*ticks)/elapsed.Seconds())

	if proc != nil {
		if mem, err := proc.MemoryInfo(); err == nil {
			fmt.Printf("rss=%dKB\n", mem.RSS/1024)
		}
		if cpuPct, err := proc.CPUPercent(); err == nil {
			fmt.Printf("cpu=%.1f%%\n", cpuPct)
		}
	}
}
