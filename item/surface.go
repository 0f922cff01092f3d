package item

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/physics"
	"github.com/lixenwraith/pinball/state"
)

// ErrGeometry marks item data that cannot form colliders
var ErrGeometry = errors.New("invalid geometry")

type SlingshotData struct {
	Force     float32 `toml:"force"`
	Threshold float32 `toml:"threshold"`
	// Segments lists the edge indices that kick; empty means every edge
	Segments []int `toml:"segments"`
}

type SurfaceData struct {
	Name      string         `toml:"name,required"`
	Points    []mgl32.Vec2   `toml:"points,required"`
	Closed    bool           `toml:"closed"`
	Bottom    float32        `toml:"bottom"`
	Top       float32        `toml:"top"`
	Threshold float32        `toml:"threshold"`
	Material  Material       `toml:"material"`
	Slingshot *SlingshotData `toml:"slingshot"`
	Disabled  bool           `toml:"disabled"`
}

// Surface is a wall: an extruded polyline with corner posts and optional slingshot edges
type Surface struct {
	base
	data       SurfaceData
	objs       []physics.HitObject
	slingshots []*physics.Slingshot
	live       *state.SurfaceState
	disabled   bool
}

func NewSurface(d SurfaceData, sink event.Sink, clock physics.Clock) (*Surface, error) {
	n := len(d.Points)
	if n < 2 || (d.Closed && n < 3) {
		return nil, fmt.Errorf("surface %s: %d points: %w", d.Name, n, ErrGeometry)
	}
	if d.Top <= d.Bottom {
		return nil, fmt.Errorf("surface %s: top %v not above bottom %v: %w", d.Name, d.Top, d.Bottom, ErrGeometry)
	}

	s := &Surface{base: newBase(d.Name, sink), data: d, disabled: d.Disabled}
	pts := d.Points
	reversed := d.Closed && signedArea(pts) > 0
	if reversed {
		// reverse so edge normals face out of the polygon
		pts = make([]mgl32.Vec2, n)
		for i, p := range d.Points {
			pts[n-1-i] = p
		}
	}

	edges := n - 1
	if d.Closed {
		edges = n
	}
	kicks := make(map[int]bool)
	if d.Slingshot != nil {
		for _, i := range d.Slingshot.Segments {
			kicks[i] = true
		}
	}

	for i := 0; i < edges; i++ {
		v1, v2 := pts[i], pts[(i+1)%n]
		if v1.ApproxEqual(v2) {
			continue
		}
		seg := physics.NewLineSeg(v1, v2, d.Bottom, d.Top)
		edge := i
		if reversed {
			edge = (2*n - 2 - i) % n
		}
		if d.Slingshot != nil && (len(kicks) == 0 || kicks[edge]) {
			sl := physics.NewSlingshot(seg, d.Slingshot.Force, s, clock)
			bind(sl, d.Material, d.Threshold, s.events, physics.TypeSlingshot)
			s.slingshots = append(s.slingshots, sl)
			s.objs = append(s.objs, sl)
			continue
		}
		bind(seg, d.Material, d.Threshold, s.events, physics.TypeLine)
		s.objs = append(s.objs, seg)
	}
	if len(s.objs) == 0 {
		return nil, fmt.Errorf("surface %s: all edges degenerate: %w", d.Name, ErrGeometry)
	}

	for _, p := range pts {
		post := physics.NewLineZ(p, d.Bottom, d.Top)
		bind(post, d.Material, d.Threshold, s.events, physics.TypeLineZ)
		s.objs = append(s.objs, post)
	}

	if len(s.slingshots) > 0 {
		s.live = state.ClaimSurfaceState(d.Name, false)
	}
	s.applyEnabled()
	return s, nil
}

func signedArea(pts []mgl32.Vec2) float32 {
	var a float32
	for i := range pts {
		p, q := pts[i], pts[(i+1)%len(pts)]
		a += p[0]*q[1] - q[0]*p[1]
	}
	return a / 2
}

func (s *Surface) HitObjects() []physics.HitObject { return s.objs }

// SlingshotEnabled and SlingshotThreshold expose the surface to its slingshot edges
func (s *Surface) SlingshotEnabled() bool { return !s.disabled }

func (s *Surface) SlingshotThreshold() float32 {
	if s.data.Slingshot == nil {
		return 0
	}
	return s.data.Slingshot.Threshold
}

// SetDisabled removes the wall from play, takes effect on the next hit test
func (s *Surface) SetDisabled(disabled bool) {
	s.disabled = disabled
	s.applyEnabled()
}

func (s *Surface) applyEnabled() {
	for _, o := range s.objs {
		o.Base().Enabled = !s.disabled
	}
}

func (s *Surface) State() state.ItemState {
	if s.live == nil {
		return nil
	}
	return s.live
}

func (s *Surface) Update(nowMsec int64, _ float32) {
	if s.live == nil {
		return
	}
	extended := false
	for _, sl := range s.slingshots {
		if sl.Extended(nowMsec) {
			extended = true
		}
	}
	s.live.SlingshotExtended = extended
}

func (s *Surface) ApplyState(r Renderer, old state.ItemState) {
	if s.live == nil {
		return
	}
	if o, ok := old.(*state.SurfaceState); ok && o != nil && o.SlingshotExtended == s.live.SlingshotExtended {
		return
	}
	r.SetVisible(s.name+".arm", s.live.SlingshotExtended)
}

// Release returns the live state to its pool
func (s *Surface) Release() {
	if s.live != nil {
		s.live.Release()
		s.live = nil
	}
}
