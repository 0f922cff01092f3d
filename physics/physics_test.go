package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lixenwraith/pinball/event"
	"github.com/lixenwraith/pinball/parameter"
	"github.com/lixenwraith/pinball/vmath"
)

const eps = 1e-4

func testEnv() *Env {
	return NewEnv(mgl32.Vec3{0, 0, -1}, 1, 0, 0)
}

func testBall(pos, vel mgl32.Vec3) *Ball {
	return NewBall(BallData{Radius: 25, Mass: 1}, pos, vel, testEnv())
}

func hitTest(obj HitObject, ball *Ball, dtime float32) (float32, CollisionEvent) {
	var coll CollisionEvent
	coll.Reset(ball, dtime)
	t := obj.HitTest(ball, dtime, &coll)
	return t, coll
}

func TestPlane_NoTunneling(t *testing.T) {
	p := NewPlane(mgl32.Vec3{0, 0, 1}, 0)
	// centre 60 below the surface: 85 beyond contact, more than a diameter
	ball := testBall(mgl32.Vec3{0, 0, -60}, mgl32.Vec3{0, 0, -5})
	if got, _ := hitTest(p, ball, 1); got != NoHit {
		t.Errorf("deep penetration: got %v, want NoHit", got)
	}

	// shallow penetration collides immediately
	ball = testBall(mgl32.Vec3{0, 0, 20}, mgl32.Vec3{0, 0, -5})
	got, coll := hitTest(p, ball, 1)
	if got != 0 || coll.IsContact {
		t.Errorf("shallow penetration: got %v contact=%v, want immediate impact", got, coll.IsContact)
	}
}

func TestPlane_ContactIdempotent(t *testing.T) {
	p := NewPlane(mgl32.Vec3{0, 0, 1}, 0)
	ball := testBall(mgl32.Vec3{10, 10, 25.01}, mgl32.Vec3{1, 0, -0.05})
	for i := 0; i < 3; i++ {
		got, coll := hitTest(p, ball, 1)
		if got != 0 || !coll.IsContact {
			t.Fatalf("call %d: got %v contact=%v, want 0 contact", i, got, coll.IsContact)
		}
		if coll.HitOrgNormalVelocity != -0.05 {
			t.Errorf("call %d: normal velocity %v", i, coll.HitOrgNormalVelocity)
		}
	}
	if ball.State.Pos != (mgl32.Vec3{10, 10, 25.01}) {
		t.Errorf("hit test moved the ball: %v", ball.State.Pos)
	}
}

func TestPlane_RecedingNoHit(t *testing.T) {
	p := NewPlane(mgl32.Vec3{0, 0, 1}, 0)
	for _, z := range []float32{-10, 25, 26, 1000} {
		ball := testBall(mgl32.Vec3{0, 0, z}, mgl32.Vec3{0, 0, parameter.ContactVelocity + 0.01})
		if got, _ := hitTest(p, ball, 10); got != NoHit {
			t.Errorf("z=%v: got %v, want NoHit", z, got)
		}
	}
}

func TestPlane_HitTimeAndResponse(t *testing.T) {
	p := NewPlane(mgl32.Vec3{0, 0, 1}, 0)
	p.Elasticity = 0.5
	ball := testBall(mgl32.Vec3{0, 0, 45}, mgl32.Vec3{0, 0, -10})

	got, coll := hitTest(p, ball, 5)
	if vmath.Abs(got-2) > eps {
		t.Fatalf("hit time %v, want 2", got)
	}
	coll.Obj = p
	ball.Mover().UpdateDisplacements(got)
	p.Collide(&coll)
	if vmath.Abs(ball.Hit.Vel[2]-5) > eps {
		t.Errorf("reflected velocity %v, want 5", ball.Hit.Vel[2])
	}
}

func TestPlane_PushOut(t *testing.T) {
	p := NewPlane(mgl32.Vec3{0, 0, 1}, 0)
	ball := testBall(mgl32.Vec3{0, 0, 20}, mgl32.Vec3{0, 0, -3})
	got, coll := hitTest(p, ball, 1)
	if got != 0 {
		t.Fatalf("hit time %v, want 0", got)
	}
	p.Collide(&coll)
	if ball.State.Pos[2] < 25-eps {
		t.Errorf("ball left inside plane at z=%v", ball.State.Pos[2])
	}
}

func TestDisabledNeverHits(t *testing.T) {
	objs := []HitObject{
		NewPlane(mgl32.Vec3{0, 0, 1}, 0),
		NewLineSeg(mgl32.Vec2{-100, 0}, mgl32.Vec2{100, 0}, 0, 50),
		NewLineZ(mgl32.Vec2{0, 0}, 0, 50),
		NewPoint(mgl32.Vec3{0, 0, 25}),
		NewCircle(mgl32.Vec2{0, 0}, 10, 0, 50),
	}
	ball := testBall(mgl32.Vec3{0, 40, 30}, mgl32.Vec3{0, -10, -10})
	for _, o := range objs {
		o.Base().Enabled = false
		if got, _ := hitTest(o, ball, 10); got != NoHit {
			t.Errorf("%v disabled: got %v", o.Type(), got)
		}
		o.Base().Enabled = true
		if got, _ := hitTest(o, ball, 10); got == NoHit {
			t.Errorf("%v re-enabled: no hit", o.Type())
		}
	}
}

func TestLineSeg_HitAndEndpoints(t *testing.T) {
	l := NewLineSeg(mgl32.Vec2{0, 0}, mgl32.Vec2{100, 0}, 0, 50)
	if l.Normal != (mgl32.Vec2{0, 1}) {
		t.Fatalf("normal %v, want (0,1)", l.Normal)
	}

	tests := []struct {
		name string
		pos  mgl32.Vec3
		vel  mgl32.Vec3
		want float32
	}{
		{"front", mgl32.Vec3{50, 45, 25}, mgl32.Vec3{0, -10, 0}, 2},
		{"past end", mgl32.Vec3{150, 45, 25}, mgl32.Vec3{0, -10, 0}, NoHit},
		{"back face", mgl32.Vec3{50, -45, 25}, mgl32.Vec3{0, 10, 0}, NoHit},
		{"receding", mgl32.Vec3{50, 45, 25}, mgl32.Vec3{0, 10, 0}, NoHit},
		{"above", mgl32.Vec3{50, 45, 200}, mgl32.Vec3{0, -10, 0}, NoHit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, coll := hitTest(l, testBall(tt.pos, tt.vel), 5)
			if vmath.Abs(got-tt.want) > eps {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got >= 0 && coll.HitNormal != (mgl32.Vec3{0, 1, 0}) {
				t.Errorf("normal %v", coll.HitNormal)
			}
		})
	}
}

func TestLineSeg_FiresHitOncePerLocation(t *testing.T) {
	rec := event.NewRecorder()
	l := NewLineSeg(mgl32.Vec2{0, 0}, mgl32.Vec2{100, 0}, 0, 50)
	l.Events = NewEventProxy("Wall1", rec.Bind("Wall1"))
	l.Threshold = 1

	ball := testBall(mgl32.Vec3{50, 25, 25}, mgl32.Vec3{0, -5, 0})
	coll := CollisionEvent{Ball: ball, Obj: l, HitNormal: mgl32.Vec3{0, 1, 0}}
	l.Collide(&coll)
	ball.Hit.Vel = mgl32.Vec3{0, -5, 0}
	l.Collide(&coll)

	if n := rec.Count("Wall1", "Hit"); n != 1 {
		t.Errorf("hit events %d, want 1", n)
	}
	if l.Events.CurrentHitThreshold != 5 {
		t.Errorf("current hit threshold %v, want 5", l.Events.CurrentHitThreshold)
	}

	// below threshold
	ball.State.Pos = mgl32.Vec3{10, 25, 25}
	ball.Hit.Vel = mgl32.Vec3{0, -0.5, 0}
	l.Collide(&coll)
	if n := rec.Count("Wall1", "Hit"); n != 1 {
		t.Errorf("soft hit fired: %d events", n)
	}
}

func TestLineZ_Hit(t *testing.T) {
	l := NewLineZ(mgl32.Vec2{0, 0}, 0, 100)
	ball := testBall(mgl32.Vec3{-65, 0, 25}, mgl32.Vec3{10, 0, 0})
	got, coll := hitTest(l, ball, 10)
	if vmath.Abs(got-4) > eps {
		t.Fatalf("hit time %v, want 4", got)
	}
	if !coll.HitNormal.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, eps) {
		t.Errorf("normal %v", coll.HitNormal)
	}

	// exact centre is degenerate
	ball = testBall(mgl32.Vec3{0, 0, 25}, mgl32.Vec3{10, 0, 0})
	if got, _ := hitTest(l, ball, 10); got != NoHit {
		t.Errorf("centre: got %v", got)
	}
}

func TestLine3D_MatchesAlignedLineZ(t *testing.T) {
	v1 := mgl32.Vec3{100, 100, 0}
	v2 := mgl32.Vec3{200, 150, 80}
	l := NewLine3D(v1, v2)

	mid := v1.Add(v2).Mul(0.5)
	dir := v2.Sub(v1).Normalize()
	perp := dir.Cross(mgl32.Vec3{0, 0, 1}).Normalize()
	pos := mid.Add(perp.Mul(100))
	vel := perp.Mul(-10)
	ball := testBall(pos, vel)

	got, coll := hitTest(l, ball, 20)
	if vmath.Abs(got-7.5) > 1e-3 {
		t.Fatalf("hit time %v, want 7.5", got)
	}
	if ball.State.Pos != pos || ball.Hit.Vel != vel {
		t.Errorf("hit test mutated ball: pos %v vel %v", ball.State.Pos, ball.Hit.Vel)
	}
	if !coll.HitNormal.ApproxEqualThreshold(perp, 1e-3) {
		t.Errorf("world normal %v, want %v", coll.HitNormal, perp)
	}

	lz, rot := l.Aligned()
	aligned := testBall(rot.Mul3x1(pos), rot.Mul3x1(vel))
	gotZ, collZ := hitTest(lz, aligned, 20)
	if vmath.Abs(got-gotZ) > eps {
		t.Errorf("aligned hit time %v, world %v", gotZ, got)
	}
	back := vmath.MulTransposed(rot, collZ.HitNormal)
	if !back.ApproxEqualThreshold(coll.HitNormal, eps) {
		t.Errorf("aligned normal back %v, world %v", back, coll.HitNormal)
	}
}

func TestLine3D_VerticalFallback(t *testing.T) {
	l := NewLine3D(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 0, 100})
	ball := testBall(mgl32.Vec3{-65, 0, 50}, mgl32.Vec3{10, 0, 0})
	got, coll := hitTest(l, ball, 10)
	if vmath.Abs(got-4) > eps {
		t.Fatalf("hit time %v, want 4", got)
	}
	if !coll.HitNormal.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, eps) {
		t.Errorf("normal %v", coll.HitNormal)
	}
}

func TestPoint_Hit(t *testing.T) {
	p := NewPoint(mgl32.Vec3{0, 0, 0})
	ball := testBall(mgl32.Vec3{0, 0, 45}, mgl32.Vec3{0, 0, -10})
	got, coll := hitTest(p, ball, 5)
	if vmath.Abs(got-2) > eps {
		t.Fatalf("hit time %v, want 2", got)
	}
	if !coll.HitNormal.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, eps) {
		t.Errorf("normal %v", coll.HitNormal)
	}
}

type fakeSurface struct {
	enabled   bool
	threshold float32
}

func (s fakeSurface) SlingshotEnabled() bool      { return s.enabled }
func (s fakeSurface) SlingshotThreshold() float32 { return s.threshold }

type fakeClock int64

func (c fakeClock) TimeMsec() int64 { return int64(c) }

func TestSlingshot_ForceBounds(t *testing.T) {
	seg := NewLineSeg(mgl32.Vec2{0, 0}, mgl32.Vec2{100, 0}, 0, 50)
	for _, force := range []float32{-80, -1, 3, 40} {
		s := NewSlingshot(seg, force, fakeSurface{true, 0}, fakeClock(0))
		if s.Impulse(-1) != 0 || s.Impulse(1) != 0 {
			t.Errorf("force %v: endpoint impulse %v %v", force, s.Impulse(-1), s.Impulse(1))
		}
		for x := float32(-1); x <= 1; x += 0.05 {
			if vmath.Abs(s.Impulse(x)) > 0.5*vmath.Abs(force)+eps {
				t.Errorf("force %v: impulse %v at %v exceeds bound", force, s.Impulse(x), x)
			}
		}
	}

	s := NewSlingshot(seg, -80, fakeSurface{true, 0}, fakeClock(0))
	for _, tc := range []struct{ x, want float32 }{{0, -1}, {50, 0}, {100, 1}} {
		if got := s.strikePosition(tc.x, 25, 0, 1, 25); vmath.Abs(got-tc.want) > eps {
			t.Errorf("strike at x=%v: %v, want %v", tc.x, got, tc.want)
		}
	}
}

func TestSlingshot_Collide(t *testing.T) {
	rec := event.NewRecorder()
	seg := NewLineSeg(mgl32.Vec2{0, 0}, mgl32.Vec2{100, 0}, 0, 50)
	s := NewSlingshot(seg, -20, fakeSurface{true, 2}, fakeClock(1000))
	s.Events = NewEventProxy("Sling", rec.Bind("Sling"))

	ball := testBall(mgl32.Vec3{50, 25, 25}, mgl32.Vec3{0, -5, 0})
	coll := CollisionEvent{Ball: ball, Obj: s, HitNormal: mgl32.Vec3{0, 1, 0}}
	s.Collide(&coll)

	// the midpoint kick of 10 turns -5 into +5, the wall then sees a receding ball
	if vmath.Abs(ball.Hit.Vel[1]-5) > eps {
		t.Errorf("velocity after kick %v, want 5", ball.Hit.Vel[1])
	}
	if n := rec.Count("Sling", "Slingshot"); n != 1 {
		t.Errorf("slingshot events %d, want 1", n)
	}
	if !s.Extended(1050) {
		t.Error("arm not extended 50ms after firing")
	}
	if s.Extended(1100) {
		t.Error("arm still extended after reset time")
	}

	// disabled surface behaves like a plain wall
	s2 := NewSlingshot(seg, -20, fakeSurface{false, 2}, fakeClock(0))
	s2.Elasticity = 1
	ball = testBall(mgl32.Vec3{50, 25, 25}, mgl32.Vec3{0, -5, 0})
	coll.Ball = ball
	s2.Collide(&coll)
	if vmath.Abs(ball.Hit.Vel[1]-5) > eps {
		t.Errorf("plain reflection %v, want 5", ball.Hit.Vel[1])
	}
}

func TestBumper_Kick(t *testing.T) {
	rec := event.NewRecorder()
	b := NewBumperCircle(mgl32.Vec2{0, 0}, 50, 0, 60, 10)
	b.Threshold = 1
	b.Elasticity = 0.5
	b.Events = NewEventProxy("Bumper1", rec.Bind("Bumper1"))

	ball := testBall(mgl32.Vec3{-95, 0, 25}, mgl32.Vec3{10, 0, 0})
	got, coll := hitTest(b, ball, 5)
	if vmath.Abs(got-2) > eps {
		t.Fatalf("hit time %v, want 2", got)
	}
	ball.Mover().UpdateDisplacements(got)
	b.Collide(&coll)
	// reflected to -5 by the wall, then kicked by 10
	if vmath.Abs(ball.Hit.Vel[0]+15) > eps {
		t.Errorf("velocity %v, want -15", ball.Hit.Vel[0])
	}
	if hit, _ := b.Animated(); !hit {
		t.Error("no animation latched")
	}
	if hit, _ := b.Animated(); hit {
		t.Error("animation latch not cleared")
	}
	if n := rec.Count("Bumper1", "Hit"); n != 1 {
		t.Errorf("hit events %d, want 1", n)
	}
}

func TestTrigger_EnterLeave(t *testing.T) {
	rec := event.NewRecorder()
	tr := NewTriggerCircle(mgl32.Vec2{0, 0}, 20, 0, 60)
	tr.Events = NewEventProxy("Trigger1", rec.Bind("Trigger1"))

	ball := testBall(mgl32.Vec3{-100, 0, 25}, mgl32.Vec3{10, 0, 0})
	got, coll := hitTest(tr, ball, 10)
	if vmath.Abs(got-5.5) > eps || coll.HitFlag {
		t.Fatalf("enter: time %v unhit=%v", got, coll.HitFlag)
	}
	ball.Mover().UpdateDisplacements(got)
	tr.Collide(&coll)
	if !tr.Occupied() || !ball.InVolume(tr) {
		t.Fatal("ball not registered inside trigger")
	}

	// past the centre the ball recedes and the exit root is found
	ball.State.Pos = mgl32.Vec3{10, 0, 25}
	got, coll = hitTest(tr, ball, 20)
	if vmath.Abs(got-3.5) > eps || !coll.HitFlag {
		t.Fatalf("leave: time %v unhit=%v", got, coll.HitFlag)
	}
	ball.Mover().UpdateDisplacements(got)
	tr.Collide(&coll)
	if tr.Occupied() || ball.InVolume(tr) {
		t.Error("ball still inside trigger")
	}
	want := []string{"Trigger1.Hit", "Trigger1.Unhit"}
	recs := rec.Records()
	if len(recs) != len(want) {
		t.Fatalf("records %v", recs)
	}
	for i, r := range recs {
		if r.String() != want[i] {
			t.Errorf("record %d = %s, want %s", i, r, want[i])
		}
	}
}

func TestBallBall_Exchange(t *testing.T) {
	a := testBall(mgl32.Vec3{0, 0, 25}, mgl32.Vec3{10, 0, 0})
	b := testBall(mgl32.Vec3{70, 0, 25}, mgl32.Vec3{})

	got, coll := hitTest(b.Target(), a, 5)
	if vmath.Abs(got-2) > eps {
		t.Fatalf("hit time %v, want 2", got)
	}
	if !coll.HitNormal.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, eps) {
		t.Fatalf("normal %v", coll.HitNormal)
	}
	a.Mover().UpdateDisplacements(got)
	b.Target().Collide(&coll)

	// restitution 0.8 on equal masses: 10 -> 1 and 9
	if vmath.Abs(a.Hit.Vel[0]-1) > eps || vmath.Abs(b.Hit.Vel[0]-9) > eps {
		t.Errorf("velocities %v %v, want 1 and 9", a.Hit.Vel[0], b.Hit.Vel[0])
	}
	momentum := a.Hit.Vel[0] + b.Hit.Vel[0]
	if vmath.Abs(momentum-10) > eps {
		t.Errorf("momentum %v, want 10", momentum)
	}
}

func TestBallBall_Coincident(t *testing.T) {
	a := testBall(mgl32.Vec3{0, 0, 25}, mgl32.Vec3{})
	b := testBall(mgl32.Vec3{0, 0, 25}, mgl32.Vec3{})
	got, coll := hitTest(b.Target(), a, 1)
	if got != 0 || coll.HitNormal != (mgl32.Vec3{0, 0, 1}) {
		t.Fatalf("coincident: time %v normal %v", got, coll.HitNormal)
	}
	if a.State.Pos != b.State.Pos {
		t.Error("hit test moved a ball")
	}
	b.Target().Collide(&coll)
	if a.State.Pos[2] <= b.State.Pos[2] {
		t.Errorf("balls not separated: %v %v", a.State.Pos, b.State.Pos)
	}
}

func TestBallIDsUnique(t *testing.T) {
	seen := make(map[uint64]bool)
	for i := 0; i < 100; i++ {
		b := testBall(mgl32.Vec3{}, mgl32.Vec3{})
		if seen[b.ID()] {
			t.Fatalf("duplicate id %d", b.ID())
		}
		seen[b.ID()] = true
	}
}

func TestStaticContact_StopsSinking(t *testing.T) {
	p := NewPlane(mgl32.Vec3{0, 0, 1}, 0)
	p.Friction = 0.3
	ball := testBall(mgl32.Vec3{0, 0, 25}, mgl32.Vec3{0, 0, -0.05})
	got, coll := hitTest(p, ball, 1)
	if got != 0 || !coll.IsContact {
		t.Fatalf("no contact: %v", got)
	}
	p.Contact(&coll, 1)
	if vmath.Abs(ball.Hit.Vel[2]) > eps {
		t.Errorf("normal velocity after contact %v", ball.Hit.Vel[2])
	}
}

func TestScatter_Deterministic(t *testing.T) {
	run := func() mgl32.Vec3 {
		env := NewEnv(mgl32.Vec3{0, 0, -1}, 42, 1, 0)
		p := NewPlane(mgl32.Vec3{0, 1, 0}, 0)
		p.Elasticity = 0.8
		p.Scatter = 0.2
		ball := NewBall(BallData{Radius: 25, Mass: 1}, mgl32.Vec3{0, 25, 25}, mgl32.Vec3{3, -10, 0}, env)
		coll := CollisionEvent{Ball: ball, Obj: p, HitNormal: p.Normal}
		p.Collide(&coll)
		return ball.Hit.Vel
	}
	a, b := run(), run()
	if a != b {
		t.Errorf("scatter not reproducible: %v vs %v", a, b)
	}
}

func TestEventProxy_UnknownKind(t *testing.T) {
	rec := event.NewRecorder()
	p := NewEventProxy("Timer1", rec.Bind("Timer1"))
	if got := p.FireVoidEvent(event.KindTimerEventsTimer); got != event.UnknownEvent {
		t.Errorf("got %q, want %q", got, event.UnknownEvent)
	}
	if len(rec.Records()) != 0 {
		t.Errorf("unknown kind emitted: %v", rec.Records())
	}
	if got := p.FireVoidEventParm(event.KindTargetEventsDropped, 1); got != "Dropped" {
		t.Errorf("got %q", got)
	}
}

func TestAbortHitTest(t *testing.T) {
	l := NewLineSeg(mgl32.Vec2{0, 0}, mgl32.Vec2{100, 0}, 0, 50)
	if !Collidable(l) {
		t.Fatal("anonymous segment not collidable")
	}
	down := false
	l.Events = NewEventProxy("Target", nil)
	l.Events.AbortHitTest = func() bool { return down }
	if !Collidable(l) {
		t.Error("collidable before drop")
	}
	down = true
	if Collidable(l) {
		t.Error("collidable after drop")
	}
}

func TestHookSeesCurrentHitThreshold(t *testing.T) {
	l := NewLineSeg(mgl32.Vec2{0, 0}, mgl32.Vec2{100, 0}, 0, 50)
	l.Events = NewEventProxy("Target", nil)
	l.Threshold = 1
	var seen float32
	calls := 0
	l.Events.OnCollision = func(_ HitObject, _ *Ball, dot float32) {
		calls++
		seen = l.Events.CurrentHitThreshold
		if seen != dot {
			t.Errorf("threshold %v inside hook, dot %v", seen, dot)
		}
	}

	ball := testBall(mgl32.Vec3{50, 25, 25}, mgl32.Vec3{0, -4, 0})
	l.Collide(&CollisionEvent{Ball: ball, Obj: l, HitNormal: mgl32.Vec3{0, 1, 0}})
	if calls != 1 || seen != 4 {
		t.Errorf("calls %d threshold %v, want 1 and 4", calls, seen)
	}
}

func TestKicker_CaptureAndKick(t *testing.T) {
	rec := event.NewRecorder()
	k := NewKickerCircle(mgl32.Vec2{0, 0}, 30, 0, 40)
	k.Events = NewEventProxy("Saucer", rec.Bind("Saucer"))

	ball := testBall(mgl32.Vec3{-100, 0, 25}, mgl32.Vec3{10, 0, 0})
	got, coll := hitTest(k, ball, 10)
	if vmath.Abs(got-4.5) > eps || coll.HitFlag {
		t.Fatalf("enter: time %v unhit=%v", got, coll.HitFlag)
	}
	ball.Mover().UpdateDisplacements(got)
	k.Collide(&coll)

	if k.Held() != ball || !ball.Frozen {
		t.Fatal("ball not held")
	}
	if ball.State.Pos != (mgl32.Vec3{0, 0, 25}) || ball.Hit.Vel != (mgl32.Vec3{}) {
		t.Errorf("held at %v moving %v", ball.State.Pos, ball.Hit.Vel)
	}
	ball.Mover().UpdateVelocities()
	ball.Mover().UpdateDisplacements(5)
	if ball.State.Pos != (mgl32.Vec3{0, 0, 25}) {
		t.Errorf("frozen ball moved to %v", ball.State.Pos)
	}

	// a second ball passes while the kicker is busy
	other := testBall(mgl32.Vec3{-100, 0, 25}, mgl32.Vec3{10, 0, 0})
	if got, _ := hitTest(k, other, 10); got != NoHit {
		t.Errorf("busy kicker hit at %v", got)
	}

	if k.Kick(90, 10, 0) != ball || ball.Frozen || k.Held() != nil {
		t.Fatal("kick did not release the ball")
	}
	if vmath.Abs(ball.Hit.Vel[0]-10) > eps || vmath.Abs(ball.Hit.Vel[1]) > eps {
		t.Errorf("kick velocity %v", ball.Hit.Vel)
	}
	if k.Kick(90, 10, 0) != nil {
		t.Error("empty kicker kicked")
	}

	got, coll = hitTest(k, ball, 10)
	if got < 0 || !coll.HitFlag {
		t.Fatalf("leave: time %v unhit=%v", got, coll.HitFlag)
	}
	ball.Mover().UpdateDisplacements(got)
	k.Collide(&coll)
	if k.Occupied() || ball.InVolume(k) {
		t.Error("ball still inside kicker")
	}
	want := []string{"Saucer.Hit", "Saucer.Unhit"}
	recs := rec.Records()
	if len(recs) != len(want) {
		t.Fatalf("records %v", recs)
	}
	for i, r := range recs {
		if r.String() != want[i] {
			t.Errorf("record %d = %s, want %s", i, r, want[i])
		}
	}
}

func TestKicker_CaptureNewBallSilently(t *testing.T) {
	rec := event.NewRecorder()
	k := NewKickerCircle(mgl32.Vec2{200, 300}, 30, 0, 40)
	k.Events = NewEventProxy("Saucer", rec.Bind("Saucer"))

	ball := testBall(mgl32.Vec3{200, 300, 25}, mgl32.Vec3{})
	if !k.Capture(ball) {
		t.Fatal("new ball not held")
	}
	if k.Capture(testBall(mgl32.Vec3{200, 300, 25}, mgl32.Vec3{})) {
		t.Error("busy kicker took a second ball")
	}
	ball.Vacate()
	if k.Held() != nil || k.Occupied() || ball.Frozen {
		t.Error("vacated ball still held")
	}
	if len(rec.Records()) != 0 {
		t.Errorf("events %v", rec.Records())
	}
}

func TestKicker_FallThrough(t *testing.T) {
	k := NewKickerCircle(mgl32.Vec2{0, 0}, 30, 0, 40)
	k.FallThrough = true
	ball := testBall(mgl32.Vec3{-100, 0, 25}, mgl32.Vec3{10, 0, 0})
	got, coll := hitTest(k, ball, 10)
	if got < 0 {
		t.Fatal("no entry")
	}
	ball.Mover().UpdateDisplacements(got)
	k.Collide(&coll)
	if k.Held() != nil || ball.Frozen || !k.Occupied() {
		t.Errorf("held %v frozen %v occupied %v", k.Held(), ball.Frozen, k.Occupied())
	}
}

func TestBallBall_FrozenTargetStays(t *testing.T) {
	a := testBall(mgl32.Vec3{0, 0, 25}, mgl32.Vec3{10, 0, 0})
	b := testBall(mgl32.Vec3{70, 0, 25}, mgl32.Vec3{})
	b.Frozen = true

	got, coll := hitTest(b.Target(), a, 5)
	if vmath.Abs(got-2) > eps {
		t.Fatalf("hit time %v, want 2", got)
	}
	a.Mover().UpdateDisplacements(got)
	coll.Obj = b.Target()
	b.Target().Collide(&coll)

	if b.Hit.Vel != (mgl32.Vec3{}) || b.State.Pos != (mgl32.Vec3{70, 0, 25}) {
		t.Errorf("frozen ball moved: pos %v vel %v", b.State.Pos, b.Hit.Vel)
	}
	if vmath.Abs(a.Hit.Vel[0]+8) > eps {
		t.Errorf("rebound %v, want -8", a.Hit.Vel[0])
	}
}
