// Command redpiler is a small demo CLI: it loads a scene file, compiles it,
// drives a fixed number of ticks, and prints the resulting node states.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/tebeka/atexit"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sarchlab/redpiler/internal/builder"
	"github.com/sarchlab/redpiler/internal/cell"
	"github.com/sarchlab/redpiler/internal/compiler"
	"github.com/sarchlab/redpiler/internal/sceneconfig"
	"github.com/sarchlab/redpiler/internal/voxelstore"
)

var titleCaser = cases.Title(language.English)

func main() {
	scenePath := flag.String("scene", "", "path to a scene YAML file")
	ticks := flag.Int("ticks", 20, "number of ticks to drive")
	optimize := flag.Bool("optimize", true, "run the optimize-only passes")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "usage: redpiler -scene scene.yaml [-ticks N] [-optimize=false]")
		os.Exit(2)
	}

	storage := voxelstore.NewMemory()
	min, max, err := sceneconfig.Load(*scenePath, storage)
	if err != nil {
		slog.Error("failed to load scene", "error", err)
		atexit.Exit(1)
	}

	driver := compiler.New(storage)
	atexit.Register(func() {
		if driver.Active() {
			driver.Flush(false)
		}
	})

	bounds := builder.Bounds{Min: min, Max: max}
	opts := compiler.Options{Bounds: bounds, Optimize: *optimize}
	if err := driver.Compile(opts, storage.AllPendingTicks()); err != nil {
		slog.Error("compile failed", "error", err)
		atexit.Exit(1)
	}

	for i := 0; i < *ticks; i++ {
		if err := driver.Tick(); err != nil {
			slog.Error("tick failed", "error", err)
			atexit.Exit(1)
		}
	}
	driver.Flush(false)

	printScene(driver, bounds)
	driver.Reset()
	atexit.Exit(0)
}

// printScene renders every compiled node's state as a table, titlecasing
// kind and facing names the way core/emu.go's toTitleCase does.
func printScene(driver *compiler.Driver, bounds builder.Bounds) {
	t := table.NewWriter()
	t.SetTitle("Compiled Node States")
	t.AppendHeader(table.Row{"Pos", "Kind", "Output", "Powered", "Locked", "Facing"})

	bounds.ForEach(func(pos cell.Pos) {
		n, ok := driver.Inspect(pos)
		if !ok {
			return
		}
		t.AppendRow(table.Row{
			pos.String(),
			titleCaser.String(n.Type.String()),
			n.Output,
			n.Powered,
			n.Locked,
			titleCaser.String(n.Facing.String()),
		})
	})

	fmt.Println(t.Render())
}
