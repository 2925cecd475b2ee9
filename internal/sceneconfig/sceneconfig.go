// Package sceneconfig loads a small YAML description of a voxel region
// into a cell.Storage, for the CLI demo and benchmark harness. It is not
// part of the compiler core's contract — the core only ever depends on
// cell.Storage — it is scaffolding for exercising it from a plain text
// file, the same role core.LoadProgramFile plays for a zeonica program.
package sceneconfig

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sarchlab/redpiler/internal/cell"
)

// YAMLScene is the on-disk shape of a scene file.
type YAMLScene struct {
	Bounds YAMLBounds `yaml:"bounds"`
	Cells  []YAMLCell `yaml:"cells"`
}

// YAMLBounds is the inclusive region to compile.
type YAMLBounds struct {
	Min [3]int32 `yaml:"min"`
	Max [3]int32 `yaml:"max"`
}

// YAMLCell places one component at a position. Facing and Delay are only
// meaningful for kinds that use them; zero values are fine otherwise.
type YAMLCell struct {
	Pos     [3]int32 `yaml:"pos"`
	Kind    string   `yaml:"kind"`
	Powered bool     `yaml:"powered"`
	Facing  string   `yaml:"facing"`
	Delay   uint8    `yaml:"delay"`
	Mode    string   `yaml:"mode"`
}

var kindNames = map[string]cell.Kind{
	"wire":           cell.Wire,
	"repeater":       cell.Repeater,
	"comparator":     cell.Comparator,
	"torch":          cell.Torch,
	"wall_torch":     cell.WallTorch,
	"lever":          cell.Lever,
	"button":         cell.Button,
	"pressure_plate": cell.PressurePlate,
	"lamp":           cell.Lamp,
	"trapdoor":       cell.Trapdoor,
	"block":          cell.Block15,
	"terrain":        cell.Terrain,
}

var directionNames = map[string]cell.Direction{
	"north": cell.DirNorth,
	"east":  cell.DirEast,
	"south": cell.DirSouth,
	"west":  cell.DirWest,
}

// Load reads path and populates storage, returning the bounds to compile.
func Load(path string, storage cell.Storage) (cell.Pos, cell.Pos, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cell.Pos{}, cell.Pos{}, fmt.Errorf("sceneconfig: read %s: %w", path, err)
	}

	var scene YAMLScene
	if err := yaml.Unmarshal(data, &scene); err != nil {
		return cell.Pos{}, cell.Pos{}, fmt.Errorf("sceneconfig: parse %s: %w", path, err)
	}

	for _, yc := range scene.Cells {
		kind, ok := kindNames[yc.Kind]
		if !ok {
			return cell.Pos{}, cell.Pos{}, fmt.Errorf("sceneconfig: unknown kind %q", yc.Kind)
		}
		pos := cell.Pos{X: yc.Pos[0], Y: yc.Pos[1], Z: yc.Pos[2]}
		c := cell.Cell{Kind: kind, Powered: yc.Powered, Delay: yc.Delay, Solid: true}
		if kind == cell.Wire || kind == cell.Lamp || kind == cell.Trapdoor {
			c.Solid = false
		}
		if yc.Facing != "" {
			dir, ok := directionNames[yc.Facing]
			if !ok {
				return cell.Pos{}, cell.Pos{}, fmt.Errorf("sceneconfig: unknown facing %q", yc.Facing)
			}
			c.Facing = dir
		}
		if yc.Mode == "subtract" {
			c.Mode = cell.Subtract
		}
		if kind == cell.Block15 {
			c.Output = 15
		}
		storage.Set(pos, c)
	}

	min := cell.Pos{X: scene.Bounds.Min[0], Y: scene.Bounds.Min[1], Z: scene.Bounds.Min[2]}
	max := cell.Pos{X: scene.Bounds.Max[0], Y: scene.Bounds.Max[1], Z: scene.Bounds.Max[2]}
	return min, max, nil
}
