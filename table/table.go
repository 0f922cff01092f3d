// Package table loads table descriptions and builds their items
package table

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/item"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/toml"
)

// ErrInvalidItem wraps every entry excluded from a table
var ErrInvalidItem = errors.New("invalid item")

// Header is the [table] section
type Header struct {
	Name   string  `toml:"name"`
	Width  float32 `toml:"width"`
	Height float32 `toml:"height"`
	// GlassHeight is the z of the glass above the playfield
	GlassHeight float32 `toml:"glass_height"`
}

// BallSpawn places a ball when the player starts
type BallSpawn struct {
	Position mgl32.Vec3 `toml:"position,required"`
	Velocity mgl32.Vec3 `toml:"velocity"`
}

// Description is a decoded table file
// Entries that failed to decode are absent from the lists and recorded in Skipped
type Description struct {
	Table      Header
	Surfaces   []item.SurfaceData
	Bumpers    []item.BumperData
	HitTargets []item.HitTargetData
	Triggers   []item.TriggerData
	Kickers    []item.KickerData
	Lights     []item.LightData
	Primitives []item.PrimitiveData
	Balls      []BallSpawn
	Skipped    []error
}

func defaultHeader() Header {
	return Header{Width: 1000, Height: 2000, GlassHeight: 210}
}

// Load reads and parses the table file at path
func Load(path string) (*Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read table: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a table file
// A syntax error fails the whole file; a bad entry is logged and skipped
func Parse(data []byte) (*Description, error) {
	doc, err := toml.NewParser(data).Parse()
	if err != nil {
		return nil, err
	}

	d := &Description{Table: defaultHeader()}
	if raw, ok := doc["table"]; ok {
		if err := toml.Decode(raw, &d.Table); err != nil {
			return nil, err
		}
	}
	if d.Table.Width <= 0 || d.Table.Height <= 0 || d.Table.GlassHeight <= 0 {
		return nil, fmt.Errorf("table %q: dimensions %vx%vx%v must be positive",
			d.Table.Name, d.Table.Width, d.Table.Height, d.Table.GlassHeight)
	}

	d.Surfaces = section(doc, "surface", func() item.SurfaceData {
		return item.SurfaceData{Top: 50, Material: item.DefaultMaterial()}
	}, &d.Skipped)
	d.Bumpers = section(doc, "bumper", func() item.BumperData {
		return item.BumperData{Radius: 45, Force: 15, Threshold: 1, Material: item.DefaultMaterial()}
	}, &d.Skipped)
	d.HitTargets = section(doc, "hit_target", func() item.HitTargetData {
		return item.HitTargetData{Width: 50, Threshold: 2, Material: item.DefaultMaterial()}
	}, &d.Skipped)
	d.Triggers = section(doc, "trigger", func() item.TriggerData {
		return item.TriggerData{Radius: 25, Depth: 8}
	}, &d.Skipped)
	d.Kickers = section(doc, "kicker", func() item.KickerData {
		return item.KickerData{Radius: 25, HitHeight: parameter.KickerHitHeight}
	}, &d.Skipped)
	d.Lights = section(doc, "light", func() item.LightData {
		return item.LightData{}
	}, &d.Skipped)
	d.Primitives = section(doc, "primitive", func() item.PrimitiveData {
		return item.PrimitiveData{Material: item.DefaultMaterial()}
	}, &d.Skipped)
	d.Balls = section(doc, "ball", func() BallSpawn {
		return BallSpawn{Position: mgl32.Vec3{0, 0, parameter.BallRadius}}
	}, &d.Skipped)
	return d, nil
}

// section decodes every entry of the array of tables key onto a fresh preset value
func section[T any](doc map[string]any, key string, preset func() T, skipped *[]error) []T {
	raw, ok := doc[key]
	if !ok {
		return nil
	}
	var entries []any
	if err := toml.Decode(raw, &entries); err != nil {
		*skipped = append(*skipped, skip(fmt.Errorf("%s: %w: %w", key, ErrInvalidItem, err)))
		return nil
	}
	out := make([]T, 0, len(entries))
	for i, e := range entries {
		v := preset()
		if err := toml.Decode(e, &v); err != nil {
			*skipped = append(*skipped, skip(fmt.Errorf("%s[%d]: %w: %w", key, i, ErrInvalidItem, err)))
			continue
		}
		out = append(out, v)
	}
	return out
}

func skip(err error) error {
	log.Printf("[table] skip %v", err)
	return err
}
