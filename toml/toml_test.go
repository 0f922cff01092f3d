package toml

import (
	"errors"
	"math"
	"testing"
)

type vec2 [2]float32
type vec3 [3]float32

type wall struct {
	Name      string  `toml:"name,required"`
	Points    []vec2  `toml:"points,required"`
	Height    float32 `toml:"height"`
	Slingshot bool    `toml:"slingshot"`
}

type bumper struct {
	Name   string  `toml:"name,required"`
	Center vec2    `toml:"center,required"`
	Radius float32 `toml:"radius"`
}

type layout struct {
	Name    string   `toml:"name"`
	Gravity float32  `toml:"gravity"`
	Spawn   vec3     `toml:"spawn"`
	Seed    uint64   `toml:"seed"`
	Tags    []string `toml:"tags"`
	Walls   []wall   `toml:"wall"`
	Bumpers []bumper `toml:"bumper"`
	Meta    map[string]any
	skipped int
}

func TestUnmarshal_TableLayout(t *testing.T) {
	input := []byte(`
# a small table
name = 'Test Table'
gravity = 1.5
spawn = [100, 200.5, 25]
seed = 0x2a
tags = [
  "demo",   # trailing comment
  "small",
]
Meta = { author = "me", rev = 3 }

[[wall]]
name = "Left"
points = [[0, 0], [0, 1000]]
height = 50

[[wall]]
name = "Sling"
points = [[10, 10], [60, -40.5]]
slingshot = true

[[bumper]]
name = "Bumper1"
center = [300, 400]
radius = 45
`)
	cfg := layout{Gravity: 9}
	if err := Unmarshal(input, &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if cfg.Name != "Test Table" || cfg.Gravity != 1.5 || cfg.Seed != 42 {
		t.Errorf("scalars: %q %v %d", cfg.Name, cfg.Gravity, cfg.Seed)
	}
	if cfg.Spawn != (vec3{100, 200.5, 25}) {
		t.Errorf("spawn %v", cfg.Spawn)
	}
	if len(cfg.Tags) != 2 || cfg.Tags[1] != "small" {
		t.Errorf("tags %v", cfg.Tags)
	}
	if cfg.Meta["author"] != "me" || cfg.Meta["rev"] != 3 {
		t.Errorf("meta %v", cfg.Meta)
	}
	if len(cfg.Walls) != 2 {
		t.Fatalf("walls %d, want 2", len(cfg.Walls))
	}
	if cfg.Walls[1].Points[1] != (vec2{60, -40.5}) || !cfg.Walls[1].Slingshot {
		t.Errorf("wall 1 %+v", cfg.Walls[1])
	}
	if len(cfg.Bumpers) != 1 || cfg.Bumpers[0].Center != (vec2{300, 400}) {
		t.Errorf("bumpers %+v", cfg.Bumpers)
	}
}

func TestUnmarshal_KeepsDefaults(t *testing.T) {
	cfg := layout{Gravity: 9, Name: "default"}
	if err := Unmarshal([]byte("seed = 7\n"), &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if cfg.Gravity != 9 || cfg.Name != "default" || cfg.Seed != 7 {
		t.Errorf("got %+v", cfg)
	}
}

func TestUnmarshal_Required(t *testing.T) {
	input := []byte(`
[[bumper]]
name = "NoCenter"
`)
	var cfg layout
	err := Unmarshal(input, &cfg)
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("got %v, want ErrMissingField", err)
	}
	if want := "toml: bumper[0].center: missing required field"; err.Error() != want {
		t.Errorf("error %q, want %q", err, want)
	}
}

func TestUnmarshal_ArrayLength(t *testing.T) {
	var cfg layout
	if err := Unmarshal([]byte("spawn = [1, 2]\n"), &cfg); err == nil {
		t.Error("short fixed-size array accepted")
	}
}

func TestDecode_TypeErrors(t *testing.T) {
	tests := []struct {
		name string
		data map[string]any
	}{
		{"string to float", map[string]any{"gravity": "fast"}},
		{"negative to uint", map[string]any{"seed": -1}},
		{"float to uint", map[string]any{"seed": 1.5}},
		{"scalar to slice", map[string]any{"tags": "one"}},
		{"table to array", map[string]any{"spawn": map[string]any{}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg layout
			if err := Decode(tt.data, &cfg); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestDecode_TargetValidation(t *testing.T) {
	var tgt struct{}
	if err := Decode(map[string]any{}, tgt); err == nil {
		t.Error("non-pointer target accepted")
	}
	var ptr *struct{}
	if err := Decode(map[string]any{}, ptr); err == nil {
		t.Error("nil pointer target accepted")
	}
}

func TestDecode_PointerAndMap(t *testing.T) {
	type inner struct {
		V int `toml:"v"`
	}
	type outer struct {
		P *inner                     `toml:"p"`
		M map[string]map[string]bool `toml:"m"`
	}
	data := map[string]any{
		"p": map[string]any{"v": 3},
		"m": map[string]any{"lights": map[string]any{"on": true}},
	}
	var tgt outer
	if err := Decode(data, &tgt); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if tgt.P == nil || tgt.P.V != 3 {
		t.Errorf("pointer %+v", tgt.P)
	}
	if !tgt.M["lights"]["on"] {
		t.Error("nested map lost")
	}
}

func TestParse_Values(t *testing.T) {
	doc, err := NewParser([]byte(`
a = -5
b = 1_000
c = -2.5e-1
d = +inf
e = "tab\there A"
f = 0b101
g.h = true
`)).Parse()
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if doc["a"] != -5 || doc["b"] != 1000 || doc["f"] != 5 {
		t.Errorf("integers %v %v %v", doc["a"], doc["b"], doc["f"])
	}
	if doc["c"] != -0.25 {
		t.Errorf("float %v", doc["c"])
	}
	if f, ok := doc["d"].(float64); !ok || !math.IsInf(f, 1) {
		t.Errorf("inf %v", doc["d"])
	}
	if doc["e"] != "tab\there A" {
		t.Errorf("string %q", doc["e"])
	}
	g, ok := doc["g"].(map[string]any)
	if !ok || g["h"] != true {
		t.Errorf("dotted key %v", doc["g"])
	}
}

func TestParse_SubTablePerElement(t *testing.T) {
	input := []byte(`
[[surface]]
name = "A"
[surface.slingshot]
force = -20

[[surface]]
name = "B"
[surface.slingshot]
force = -10
`)
	doc, err := NewParser(input).Parse()
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	list := doc["surface"].([]map[string]any)
	if len(list) != 2 {
		t.Fatalf("surfaces %d", len(list))
	}
	for i, want := range []int{-20, -10} {
		got := list[i]["slingshot"].(map[string]any)["force"]
		if got != want {
			t.Errorf("surface %d force %v, want %d", i, got, want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		line  int
	}{
		{"duplicate key", "a = 1\na = 2\n", 2},
		{"table twice", "[t]\n[t]\n", 2},
		{"missing value", "a = \n", 1},
		{"unterminated", "a = \"x\n", 1},
		{"garbage after value", "a = 1 2\n", 1},
		{"key conflict", "a = 1\n[a]\n", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParser([]byte(tt.input)).Parse()
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("got %v, want ParseError", err)
			}
			if pe.Pos.Line != tt.line {
				t.Errorf("line %d, want %d", pe.Pos.Line, tt.line)
			}
		})
	}
}

func TestLexer_Tokens(t *testing.T) {
	l := NewLexer([]byte(`v1.x = 1.5 # c`))
	want := []TokenType{TokenIdent, TokenDot, TokenIdent, TokenEqual, TokenFloat, TokenComment, TokenEOF}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w {
			t.Fatalf("token %d = %v (%s), want %v", i, tok.Type, tok, w)
		}
	}
}
