package state

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestPool_ClaimRelease(t *testing.T) {
	p := NewPool[BumperState]("test", 2)
	s1, r1 := p.Claim()
	r1.RingOffset = 7
	s2, _ := p.Claim()
	s3, _ := p.Claim()
	if p.Cap() != 3 || p.InUse() != 3 {
		t.Fatalf("cap %d in use %d, want 3 and 3", p.Cap(), p.InUse())
	}
	if !p.Release(s1) {
		t.Fatal("release failed")
	}
	if p.Release(s1) {
		t.Error("double release accepted")
	}
	if p.Release(Slot(99)) {
		t.Error("foreign release accepted")
	}
	if p.Get(s1) != nil {
		t.Error("free slot readable")
	}

	s4, r4 := p.Claim()
	if s4 != s1 {
		t.Errorf("claimed slot %d, want reused %d", s4, s1)
	}
	if r4.RingOffset != 0 {
		t.Errorf("reclaimed record leaked ring offset %v", r4.RingOffset)
	}
	p.Release(s2)
	p.Release(s3)
	p.Release(s4)
	if p.InUse() != 0 {
		t.Errorf("in use %d after releasing all", p.InUse())
	}
}

func TestState_CloneEquals(t *testing.T) {
	states := []ItemState{
		ClaimBumperState("Bumper1", 12.5, mgl32.Vec3{1, 2, 3}),
		ClaimHitTargetState("Target1", -52, 13, "Red", "Tex", false),
		ClaimLightState("Light1", 0.75),
		ClaimTriggerState("Trigger1", -10),
		ClaimKickerState("Saucer", true),
		ClaimSurfaceState("Sling1", true),
		ClaimBallState("Ball0", mgl32.Vec3{100, 200, 25}, mgl32.Vec3{0, -3, 0}),
	}
	for _, s := range states {
		c := s.Clone()
		if !c.Equals(s) || !s.Equals(c) {
			t.Errorf("%s: clone not equal", s.Kind())
		}
		if c == s {
			t.Errorf("%s: clone aliases source", s.Kind())
		}
		c.Release()
		s.Release()
	}
}

func TestState_CloneDoesNotAlias(t *testing.T) {
	live := ClaimBumperState("Bumper1", 0, mgl32.Vec3{1, 2, 3})
	snap := live.Clone().(*BumperState)
	live.BallHitPosition[0] = 99
	live.RingOffset = -20
	if snap.BallHitPosition != (mgl32.Vec3{1, 2, 3}) || snap.RingOffset != 0 {
		t.Errorf("snapshot changed with live state: %+v", snap)
	}
	snap.Release()
	live.Release()
}

func TestState_ReclaimDoesNotLeak(t *testing.T) {
	a := ClaimHitTargetState("A", 5, 6, "Mat", "Tex", true)
	a.Release()
	b := ClaimHitTargetState("B", 0, 0, "", "", false)
	defer b.Release()
	if b.ZOffset != 0 || b.XRotation != 0 || b.Material != "" || b.Texture != "" || b.Visible {
		t.Errorf("reclaimed state leaked fields: %+v", b)
	}
	if b.Name() != "B" {
		t.Errorf("name %q", b.Name())
	}
}

func TestState_Diff(t *testing.T) {
	prev := ClaimHitTargetState("T", 0, 13, "Red", "Tex", true)
	cur := ClaimHitTargetState("T", -10, 13, "Red", "Tex", true)
	defer prev.Release()
	defer cur.Release()

	d := cur.Diff(prev).(*HitTargetState)
	defer d.Release()
	if d.Present() != HitTargetZOffset {
		t.Errorf("present %b, want only zOffset", d.Present())
	}
	if got := d.Fields(); len(got) != 1 || got["zOffset"] != float32(-10) {
		t.Errorf("fields %v", got)
	}

	same := cur.Diff(cur)
	defer same.Release()
	if !same.Empty() {
		t.Errorf("self diff not empty: %v", same.Fields())
	}

	full := cur.Diff(nil)
	defer full.Release()
	if !full.Equals(cur) {
		t.Error("diff against nil is not a full clone")
	}

	other := ClaimLightState("T", 1)
	defer other.Release()
	foreign := cur.Diff(other)
	defer foreign.Release()
	if !foreign.Equals(cur) {
		t.Error("diff against a different kind is not a full clone")
	}
}

func TestDiffer_Pop(t *testing.T) {
	d := NewDiffer()
	light := ClaimLightState("L", 0)
	bumper := ClaimBumperState("B", 0, mgl32.Vec3{})
	defer light.Release()
	defer bumper.Release()

	f := d.Pop(0, []ItemState{light, bumper})
	if len(f.States) != 2 {
		t.Fatalf("first frame has %d states, want 2", len(f.States))
	}
	f.Release()

	f = d.Pop(10, []ItemState{light, bumper})
	if !f.Empty() {
		t.Errorf("unchanged frame not empty: %d states", len(f.States))
	}
	f.Release()

	light.Intensity = 0.5
	f = d.Pop(20, []ItemState{light, bumper})
	if len(f.States) != 1 || f.States[0].Name() != "L" {
		t.Fatalf("changed frame: %+v", f.States)
	}
	f.Release()

	f = d.Pop(30, []ItemState{bumper})
	if len(f.Removed) != 1 || f.Removed[0] != "L" {
		t.Errorf("removed %v, want [L]", f.Removed)
	}
	f.Release()
	d.Reset()

	before := lightPool.InUse()
	f = d.Pop(40, []ItemState{light})
	f.Release()
	d.Reset()
	if lightPool.InUse() != before {
		t.Errorf("light pool leaked: %d in use, want %d", lightPool.InUse(), before)
	}
}

func TestFrame_MarshalJSON(t *testing.T) {
	prev := ClaimBumperState("B", 0, mgl32.Vec3{1, 2, 3})
	cur := ClaimBumperState("B", -45, mgl32.Vec3{1, 2, 3})
	defer prev.Release()
	defer cur.Release()

	f := &Frame{TimeMsec: 120, States: []ItemState{cur.Diff(prev)}}
	defer f.Release()
	b, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got := string(b)
	want := `{"time":120,"states":[{"name":"B","kind":"bumper","fields":{"ringOffset":-45}}]}`
	if got != want {
		t.Errorf("got %s\nwant %s", got, want)
	}
	if strings.Contains(got, "ballHitPosition") {
		t.Error("unchanged field serialised")
	}
}

func TestKickerState_Diff(t *testing.T) {
	prev := ClaimKickerState("Saucer", false)
	cur := ClaimKickerState("Saucer", true)
	defer prev.Release()
	defer cur.Release()

	d := cur.Diff(prev)
	defer d.Release()
	if got := d.Fields(); len(got) != 1 || got["holding"] != true {
		t.Errorf("fields %v", got)
	}
	same := cur.Diff(cur)
	defer same.Release()
	if !same.Empty() {
		t.Errorf("self diff not empty: %v", same.Fields())
	}
}
