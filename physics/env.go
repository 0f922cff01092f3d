package physics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/vmath"
)

// Env is the physical environment shared by every ball of a simulation
type Env struct {
	Gravity mgl32.Vec3
	// Rand feeds scatter; one generator per simulation keeps runs replayable
	Rand        *vmath.FastRand
	Difficulty  float32
	HardScatter float32
}

func NewEnv(gravity mgl32.Vec3, seed uint64, difficulty, hardScatter float32) *Env {
	return &Env{
		Gravity:     gravity,
		Rand:        vmath.NewFastRand(seed),
		Difficulty:  difficulty,
		HardScatter: hardScatter,
	}
}
