package render

import "github.com/gdamore/tcell/v2"

// RGB is a 24-bit colour
type RGB struct {
	R, G, B uint8
}

var (
	RgbBackground = RGB{16, 20, 32}
	RgbWall       = RGB{170, 170, 190}
	RgbSlingshot  = RGB{255, 80, 200}
	RgbBumper     = RGB{230, 200, 40}
	RgbBumperLit  = RGB{255, 255, 200}
	RgbTarget     = RGB{220, 220, 220}
	RgbTargetDown = RGB{70, 70, 70}
	RgbTrigger    = RGB{60, 120, 60}
	RgbTriggerHit = RGB{80, 255, 80}
	RgbKicker     = RGB{120, 90, 60}
	RgbKickerHeld = RGB{255, 140, 60}
	RgbLightOff   = RGB{60, 30, 0}
	RgbLightOn    = RGB{255, 160, 0}
	RgbWire       = RGB{110, 140, 170}
	RgbBall       = RGB{240, 240, 255}
	RgbStatus     = RGB{200, 200, 200}
)

// materialColours maps material name fragments to target colours, first match wins
var materialColours = []struct {
	frag string
	rgb  RGB
}{
	{"Red", RGB{255, 70, 70}},
	{"Green", RGB{70, 220, 70}},
	{"Blue", RGB{90, 140, 255}},
	{"Yellow", RGB{255, 230, 60}},
	{"White", RGB{240, 240, 240}},
}

func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// Scale multiplies all channels by factor
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// Lerp linearly interpolates between two colours
// t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: uint8(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: uint8(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: uint8(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Style returns c as foreground on the table background
func (c RGB) Style() tcell.Style {
	return tcell.StyleDefault.Foreground(c.Color()).Background(RgbBackground.Color())
}
