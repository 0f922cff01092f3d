package table

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/item"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/toml"
)

type fixedClock int64

func (c fixedClock) TimeMsec() int64 { return int64(c) }

func releaseAll(items []item.Item) {
	for _, it := range items {
		it.Release()
	}
}

func TestLoad_Demo(t *testing.T) {
	d, err := Load("testdata/demo.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Skipped) != 0 {
		t.Fatalf("skipped %v", d.Skipped)
	}
	if d.Table.Name != "Demo" || d.Table.GlassHeight != 210 {
		t.Errorf("header %+v", d.Table)
	}

	counts := []struct {
		name string
		got  int
		want int
	}{
		{"surfaces", len(d.Surfaces), 3},
		{"bumpers", len(d.Bumpers), 3},
		{"hit targets", len(d.HitTargets), 3},
		{"triggers", len(d.Triggers), 1},
		{"lights", len(d.Lights), 2},
		{"primitives", len(d.Primitives), 1},
		{"balls", len(d.Balls), 1},
	}
	for _, c := range counts {
		if c.got != c.want {
			t.Errorf("%s: %d, want %d", c.name, c.got, c.want)
		}
	}

	// presets survive fields the file leaves out
	if b := d.Bumpers[1]; b.Radius != 45 || b.Force != 15 {
		t.Errorf("bumper defaults %+v", b)
	}
	if m := d.Surfaces[0].Material; m.Elasticity != 0.6 || m.Friction != 0.1 {
		t.Errorf("inline material %+v", m)
	}
	if s := d.Surfaces[1].Slingshot; s == nil || s.Force != -15 || len(s.Segments) != 1 {
		t.Errorf("slingshot %+v", s)
	}
	if v := d.Balls[0].Velocity; v != (mgl32.Vec3{0, -20, 0}) {
		t.Errorf("ball velocity %v", v)
	}

	rec := event.NewRecorder()
	items, errs := Build(d, rec, fixedClock(0))
	defer releaseAll(items)
	if len(errs) != 0 {
		t.Fatalf("build errors %v", errs)
	}
	if len(items) != 13 {
		t.Fatalf("items %d, want 13", len(items))
	}
	if items[0].Name() != "Outer" || items[len(items)-1].Name() != "Ramp" {
		t.Errorf("order %s .. %s", items[0].Name(), items[len(items)-1].Name())
	}
	for _, it := range items {
		it.Init()
	}
	if rec.Count("Bumper3", "Init") != 1 || len(rec.Records()) != 13 {
		t.Errorf("init records %v", rec.Records())
	}
}

func TestParse_SkipsInvalidEntries(t *testing.T) {
	d, err := Load("testdata/broken.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(d.Skipped) != 2 {
		t.Fatalf("skipped %v, want 2", d.Skipped)
	}
	for _, e := range d.Skipped {
		if !errors.Is(e, ErrInvalidItem) || !errors.Is(e, toml.ErrMissingField) {
			t.Errorf("%v does not wrap ErrInvalidItem and ErrMissingField", e)
		}
	}
	if len(d.Bumpers) != 3 {
		t.Fatalf("bumpers %d, want 3", len(d.Bumpers))
	}

	items, errs := Build(d, nil, fixedClock(0))
	defer releaseAll(items)
	if len(items) != 1 || items[0].Name() != "Good" {
		t.Fatalf("items %v", items)
	}
	if len(errs) != 2 {
		t.Fatalf("errors %v, want 2", errs)
	}
	if !errors.Is(errs[0], item.ErrGeometry) {
		t.Errorf("%v does not wrap ErrGeometry", errs[0])
	}
	for _, e := range errs {
		if !errors.Is(e, ErrInvalidItem) {
			t.Errorf("%v does not wrap ErrInvalidItem", e)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"syntax", "[table\n"},
		{"bad header", "[table]\nwidth = \"wide\"\n"},
		{"zero width", "[table]\nwidth = 0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParse_Empty(t *testing.T) {
	d, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Table != defaultHeader() || d.Surfaces != nil {
		t.Errorf("description %+v", d)
	}
}

func TestParse_Kickers(t *testing.T) {
	d, err := Parse([]byte(`
[[kicker]]
name = "Saucer"
center = [300, 400]

[[kicker]]
name = "Hole"
center = [600, 400]
radius = 40
hit_height = 60
fall_through = true
legacy_mode = true

[[kicker]]
name = "Nowhere"
`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(d.Kickers) != 2 || len(d.Skipped) != 1 {
		t.Fatalf("kickers %d skipped %v", len(d.Kickers), d.Skipped)
	}
	if k := d.Kickers[0]; k.Radius != 25 || k.HitHeight != parameter.KickerHitHeight || k.FallThrough {
		t.Errorf("preset kicker %+v", k)
	}
	if k := d.Kickers[1]; k.Radius != 40 || k.HitHeight != 60 || !k.FallThrough || !k.LegacyMode {
		t.Errorf("kicker %+v", k)
	}

	items, errs := Build(d, nil, fixedClock(0))
	defer releaseAll(items)
	if len(items) != 2 || len(errs) != 0 {
		t.Fatalf("items %d errors %v", len(items), errs)
	}
	if _, ok := items[0].(*item.Kicker); !ok {
		t.Errorf("item %T", items[0])
	}
}
