// Package render draws a top-down view of a running table into a tcell screen
package render

import (
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/item"
)

// Scene collects the visual state items push through item.Renderer
// Names that were never set read as their defaults: identity transform, visible, no material, zero intensity
type Scene struct {
	transforms  map[string]mgl32.Mat4
	visible     map[string]bool
	materials   map[string]string
	intensities map[string]float32
}

var _ item.Renderer = (*Scene)(nil)

func NewScene() *Scene {
	return &Scene{
		transforms:  make(map[string]mgl32.Mat4),
		visible:     make(map[string]bool),
		materials:   make(map[string]string),
		intensities: make(map[string]float32),
	}
}

func (s *Scene) SetTransform(name string, m mgl32.Mat4) { s.transforms[name] = m }

func (s *Scene) SetVisible(name string, visible bool) { s.visible[name] = visible }

func (s *Scene) SetMaterial(name, material, _ string) { s.materials[name] = material }

func (s *Scene) SetIntensity(name string, intensity float32) { s.intensities[name] = intensity }

func (s *Scene) Transform(name string) mgl32.Mat4 {
	if m, ok := s.transforms[name]; ok {
		return m
	}
	return mgl32.Ident4()
}

func (s *Scene) Visible(name string) bool {
	v, ok := s.visible[name]
	return v || !ok
}

// Shown reports whether name was explicitly made visible
func (s *Scene) Shown(name string) bool { return s.visible[name] }

func (s *Scene) Intensity(name string) float32 { return s.intensities[name] }

// Lowered reports whether the transform of name moves it below its rest height
func (s *Scene) Lowered(name string) bool {
	return s.Transform(name).Col(3)[2] < 0
}

// colour picks the tint for a material, falling back to def
func (s *Scene) colour(name string, def RGB) RGB {
	mat := s.materials[name]
	if mat == "" {
		return def
	}
	for _, mc := range materialColours {
		if strings.Contains(mat, mc.frag) {
			return mc.rgb
		}
	}
	return def
}
