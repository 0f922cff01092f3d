package parameter

import "time"

// Audio output
const (
	AudioSampleRate = 44100
	// AudioBufferDuration sets speaker latency
	AudioBufferDuration = 50 * time.Millisecond
	// MinSoundGap between two sounds of the same item
	MinSoundGap = 50 * time.Millisecond
)

// Bumper: metallic ring, fundamental plus inharmonic overtone
const (
	BumperSoundDuration = 250 * time.Millisecond
	BumperSoundAttack   = 2 * time.Millisecond
	BumperSoundRelease  = 220 * time.Millisecond
	BumperSoundFreq     = 520.0
	BumperOvertoneFreq  = 1390.0
)

// Slingshot: low square thump over a noise burst
const (
	SlingshotSoundDuration = 90 * time.Millisecond
	SlingshotSoundAttack   = 1 * time.Millisecond
	SlingshotSoundRelease  = 70 * time.Millisecond
	SlingshotSoundFreq     = 110.0
)

// Hit: short click for walls and targets
const (
	HitSoundDuration = 30 * time.Millisecond
	HitSoundAttack   = 1 * time.Millisecond
	HitSoundRelease  = 25 * time.Millisecond
	HitSoundFreq     = 1800.0
)

// Drop: falling saw sweep played when a drop target goes down
const (
	DropSoundDuration  = 160 * time.Millisecond
	DropSoundAttack    = 5 * time.Millisecond
	DropSoundRelease   = 120 * time.Millisecond
	DropSoundStartFreq = 400.0
	DropSoundEndFreq   = 120.0
)

// Rollover: soft sine blip for triggers
const (
	RolloverSoundDuration = 60 * time.Millisecond
	RolloverSoundAttack   = 5 * time.Millisecond
	RolloverSoundRelease  = 40 * time.Millisecond
	RolloverSoundFreq     = 880.0
)
