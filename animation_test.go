package trolleyyard

import (
	"errors"
	"testing"
)

// run advances a by dt until nothing is pending or limit frames elapse.
func run(a *Animator, dt float32, limit int) int {
	frames := 0
	for a.Pending() > 0 && frames < limit {
		a.Update(dt)
		frames++
	}
	return frames
}

func TestAnimatorReachesTarget(t *testing.T) {
	u := NewUnit("d", KindDrawer, PropertyOffsetZ, 0.1, 2.5)
	a := NewAnimator()
	done := 0
	err := a.Animate(AnimationRequest{
		Unit: u, Property: PropertyOffsetZ, To: 2.5, Duration: 1,
		Easing: "power2.inOut", OnComplete: func() { done++ },
	})
	if err != nil {
		t.Fatal(err)
	}

	a.Update(0.5)
	if u.Value <= 0.1 || u.Value >= 2.5 {
		t.Errorf("Value mid-animation = %f, want strictly between", u.Value)
	}
	if done != 0 {
		t.Error("callback fired early")
	}

	run(a, 1.0/60, 120)
	if u.Value != 2.5 {
		t.Errorf("Value = %v, want exactly 2.5", u.Value)
	}
	if done != 1 {
		t.Errorf("callback fired %d times, want 1", done)
	}
	if a.Pending() != 0 {
		t.Errorf("Pending = %d after completion", a.Pending())
	}
}

func TestAnimatorSupersede(t *testing.T) {
	u := NewUnit("b", KindTrolleyBay, PropertyOffsetZ, 0, 3.5)
	a := NewAnimator()
	var fired []string

	first, err := a.Start(AnimationRequest{
		Unit: u, Property: PropertyOffsetZ, To: 3.5, Duration: 1,
		OnComplete: func() { fired = append(fired, "out") },
	})
	if err != nil {
		t.Fatal(err)
	}
	a.Update(0.5)
	mid := u.Value

	second, err := a.Start(AnimationRequest{
		Unit: u, Property: PropertyOffsetZ, To: 0, Duration: 1,
		OnComplete: func() { fired = append(fired, "in") },
	})
	if err != nil {
		t.Fatal(err)
	}
	if !first.Canceled || !first.Done {
		t.Error("superseded task should be canceled and done")
	}
	if a.Pending() != 1 {
		t.Errorf("Pending = %d, want 1", a.Pending())
	}
	if u.Value != mid {
		t.Errorf("Start moved Value from %f to %f", mid, u.Value)
	}

	// The new tween starts from the interpolated value, not from rest.
	a.Update(1.0 / 60)
	if u.Value > mid || u.Value < mid-0.5 {
		t.Errorf("Value after one frame = %f, want just below %f", u.Value, mid)
	}

	run(a, 1.0/60, 120)
	if len(fired) != 1 || fired[0] != "in" {
		t.Errorf("fired = %v, want [in]", fired)
	}
	if u.Value != 0 {
		t.Errorf("Value = %f, want 0", u.Value)
	}
	if second.Canceled {
		t.Error("latest task should not be canceled")
	}
}

func TestAnimatorIndependentKeys(t *testing.T) {
	a := NewAnimator()
	u1 := NewUnit("1", KindDrawer, PropertyOffsetZ, 0, 1)
	u2 := NewUnit("2", KindDrawer, PropertyOffsetZ, 0, 1)
	count := 0
	cb := func() { count++ }
	for _, u := range []*Unit{u1, u2} {
		if err := a.Animate(AnimationRequest{Unit: u, To: 1, Duration: 0.2, OnComplete: cb}); err != nil {
			t.Fatal(err)
		}
	}
	if a.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", a.Pending())
	}
	run(a, 1.0/60, 60)
	if count != 2 {
		t.Errorf("callbacks = %d, want 2", count)
	}
}

func TestAnimatorZeroDuration(t *testing.T) {
	u := NewUnit("d", KindDrawer, PropertyOffsetZ, 0, 1)
	a := NewAnimator()
	done := false
	if err := a.Animate(AnimationRequest{Unit: u, To: 1, OnComplete: func() { done = true }}); err != nil {
		t.Fatal(err)
	}
	a.Update(1.0 / 60)
	if u.Value != 1 || !done {
		t.Errorf("Value = %f done = %v, want 1 true after one frame", u.Value, done)
	}
}

func TestAnimatorCallbackMayStartAnimation(t *testing.T) {
	u := NewUnit("d", KindDrawer, PropertyOffsetZ, 0, 1)
	a := NewAnimator()
	chained := false
	err := a.Animate(AnimationRequest{Unit: u, To: 1, Duration: 0.1, OnComplete: func() {
		chained = true
		_ = a.Animate(AnimationRequest{Unit: u, To: 0, Duration: 0.1})
	}})
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 60 && !chained; i++ {
		a.Update(1.0 / 60)
	}
	if !chained {
		t.Fatal("first animation never completed")
	}
	if a.Pending() != 1 {
		t.Errorf("Pending = %d, want the chained task", a.Pending())
	}
	run(a, 1.0/60, 60)
	if u.Value != 0 {
		t.Errorf("Value = %f, want 0", u.Value)
	}
}

func TestAnimatorErrors(t *testing.T) {
	a := NewAnimator()
	if err := a.Animate(AnimationRequest{To: 1}); !errors.Is(err, ErrMissingUnit) {
		t.Errorf("nil unit err = %v, want ErrMissingUnit", err)
	}
	u := NewUnit("d", KindDrawer, PropertyOffsetZ, 0, 1)
	if err := a.Animate(AnimationRequest{Unit: u, To: 1, Easing: "wobble"}); !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("bad easing err = %v, want ErrUnknownEasing", err)
	}
	if a.Pending() != 0 {
		t.Error("failed requests should not leave tasks")
	}
}

func TestAnimatorActiveAndClear(t *testing.T) {
	a := NewAnimator()
	u := NewUnit("d", KindDrawer, PropertyOffsetZ, 0, 1)
	fired := false
	task, _ := a.Start(AnimationRequest{Unit: u, To: 1, Duration: 1, OnComplete: func() { fired = true }})

	got, ok := a.Active(u, PropertyOffsetZ)
	if !ok || got != task {
		t.Error("Active should return the running task")
	}
	if _, ok := a.Active(u, PropertyRotationY); ok {
		t.Error("no task for the other property")
	}

	a.Update(0.25)
	v := u.Value
	a.Clear()
	if !task.Canceled || a.Pending() != 0 {
		t.Error("Clear should cancel every task")
	}
	a.Update(1)
	if fired {
		t.Error("cleared task fired its callback")
	}
	if u.Value != v {
		t.Errorf("Clear moved Value from %f to %f", v, u.Value)
	}
}

func TestEasingFunc(t *testing.T) {
	valid := []string{"", "linear", "InOutCubic", "power2.inOut", "POWER1.OUT", "none", "outBounce"}
	for _, name := range valid {
		if fn, err := EasingFunc(name); err != nil || fn == nil {
			t.Errorf("EasingFunc(%q) = %v", name, err)
		}
	}
	if _, err := EasingFunc("elastic.out(1, 0.3)"); !errors.Is(err, ErrUnknownEasing) {
		t.Errorf("err = %v, want ErrUnknownEasing", err)
	}

	// GSAP power2.inOut is a cubic ease: symmetric about the midpoint.
	fn, _ := EasingFunc("power2.inOut")
	if got := fn(0.5, 0, 1, 1); !approxEqual(float64(got), 0.5, 1e-6) {
		t.Errorf("power2.inOut(0.5) = %f, want 0.5", got)
	}
	if got := fn(0.25, 0, 1, 1); !approxEqual(float64(got), 0.0625, 1e-6) {
		t.Errorf("power2.inOut(0.25) = %f, want 0.0625", got)
	}
}
