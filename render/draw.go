package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/table"
)

// cellAspect is the height of a terminal cell in widths
const cellAspect = 2

// View projects a table onto a screen, playfield y growing downward
type View struct {
	desc  *table.Description
	scene *Scene

	screen        tcell.Screen
	width, height int
	scale         float64 // columns per table unit
	offsetX       int
}

func NewView(desc *table.Description, scene *Scene) *View {
	return &View{desc: desc, scene: scene}
}

func (v *View) Scene() *Scene { return v.scene }

// Draw renders the table, balls and a status line into screen
// The caller shows the screen
func (v *View) Draw(screen tcell.Screen, balls []mgl32.Vec3, status string) {
	v.screen = screen
	v.width, v.height = screen.Size()
	rows := v.height - 1
	if v.width <= 0 || rows <= 0 {
		return
	}
	w, h := float64(v.desc.Table.Width), float64(v.desc.Table.Height)
	v.scale = math.Min(float64(v.width)/w, cellAspect*float64(rows)/h)
	v.offsetX = (v.width - int(w*v.scale)) / 2

	bg := RgbBackground.Style()
	for y := 0; y < v.height; y++ {
		for x := 0; x < v.width; x++ {
			screen.SetContent(x, y, ' ', nil, bg)
		}
	}

	v.drawSurfaces()
	v.drawPrimitives()
	v.drawTriggers()
	v.drawKickers()
	v.drawLights()
	v.drawHitTargets()
	v.drawBumpers()

	ball := RgbBall.Style().Bold(true)
	for _, p := range balls {
		v.plot(p[0], p[1], '●', ball)
	}

	st := RgbStatus.Style()
	for i, r := range []rune(status) {
		if i >= v.width {
			break
		}
		screen.SetContent(i, v.height-1, r, nil, st)
	}
}

func (v *View) project(x, y float32) (int, int) {
	col := v.offsetX + int(math.Floor(float64(x)*v.scale))
	row := int(math.Floor(float64(y) * v.scale / cellAspect))
	return col, row
}

func (v *View) set(col, row int, r rune, style tcell.Style) {
	if col < 0 || row < 0 || col >= v.width || row >= v.height-1 {
		return
	}
	v.screen.SetContent(col, row, r, nil, style)
}

func (v *View) plot(x, y float32, r rune, style tcell.Style) {
	col, row := v.project(x, y)
	v.set(col, row, r, style)
}

// line draws a Bresenham line between two table points
func (v *View) line(a, b mgl32.Vec2, r rune, style tcell.Style) {
	x0, y0 := v.project(a[0], a[1])
	x1, y1 := v.project(b[0], b[1])
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	e := dx + dy
	for {
		v.set(x0, y0, r, style)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (v *View) circle(c mgl32.Vec2, radius float32, r rune, style tcell.Style) {
	steps := max(8, int(2*math.Pi*float64(radius)*v.scale*2))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		v.plot(c[0]+radius*float32(math.Cos(a)), c[1]+radius*float32(math.Sin(a)), r, style)
	}
}

func (v *View) drawSurfaces() {
	for _, s := range v.desc.Surfaces {
		style := RgbWall.Style()
		if s.Slingshot != nil && v.scene.Shown(s.Name+".arm") {
			style = RgbSlingshot.Style().Bold(true)
		}
		n := len(s.Points)
		for i := 0; i+1 < n; i++ {
			v.line(s.Points[i], s.Points[i+1], '█', style)
		}
		if s.Closed && n > 2 {
			v.line(s.Points[n-1], s.Points[0], '█', style)
		}
	}
}

func (v *View) drawPrimitives() {
	style := RgbWire.Style()
	for _, p := range v.desc.Primitives {
		at := func(i int) mgl32.Vec2 {
			w := p.Position.Add(p.Vertices[i])
			return mgl32.Vec2{w[0], w[1]}
		}
		if len(p.Edges) == 0 {
			for i := 0; i+1 < len(p.Vertices); i++ {
				v.line(at(i), at(i+1), '░', style)
			}
			continue
		}
		for _, e := range p.Edges {
			if e[0] < 0 || e[1] < 0 || e[0] >= len(p.Vertices) || e[1] >= len(p.Vertices) {
				continue
			}
			v.line(at(e[0]), at(e[1]), '░', style)
		}
	}
}

func (v *View) drawTriggers() {
	for _, t := range v.desc.Triggers {
		c := RgbTrigger
		if v.scene.Lowered(t.Name) {
			c = RgbTriggerHit
		}
		v.circle(t.Center, t.Radius, '·', c.Style())
	}
}

func (v *View) drawKickers() {
	for _, k := range v.desc.Kickers {
		c := RgbKicker
		if v.scene.Shown(k.Name + ".held") {
			c = RgbKickerHeld
		}
		v.circle(k.Center, k.Radius, '◦', c.Style())
		v.plot(k.Center[0], k.Center[1], '◉', c.Style())
	}
}

func (v *View) drawLights() {
	for _, l := range v.desc.Lights {
		c := Lerp(RgbLightOff, RgbLightOn, float64(v.scene.Intensity(l.Name)))
		v.plot(l.Center[0], l.Center[1], '✱', c.Style())
	}
}

func (v *View) drawHitTargets() {
	for _, t := range v.desc.HitTargets {
		rad := mgl32.DegToRad(t.Rotation)
		half := mgl32.Vec2{float32(math.Cos(float64(rad))), float32(math.Sin(float64(rad)))}.Mul(t.Width / 2)
		a, b := t.Position.Sub(half), t.Position.Add(half)
		if !v.scene.Visible(t.Name) {
			v.line(a, b, '_', RgbTargetDown.Style())
			continue
		}
		v.line(a, b, '▬', v.scene.colour(t.Name, RgbTarget).Style().Bold(true))
	}
}

func (v *View) drawBumpers() {
	for _, b := range v.desc.Bumpers {
		c := RgbBumper
		if v.scene.Lowered(b.Name + ".ring") {
			c = RgbBumperLit
		}
		v.circle(b.Center, b.Radius, 'o', c.Style())
		v.plot(b.Center[0], b.Center[1], 'O', Scale(c, 0.8).Style().Bold(true))
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
