package trolleyyard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ErrUnknownEasing is returned by EasingFunc for an unrecognized name.
var ErrUnknownEasing = errors.New("trolleyyard: unknown easing")

// AnimationRequest asks the animation system to move one property of a
// unit toward To. OnComplete, if set, fires once when the animation
// finishes. It does not fire if the animation is superseded.
type AnimationRequest struct {
	Unit       *Unit
	Property   Property
	To         float64
	Duration   float32 // seconds
	Easing     string
	OnComplete func()
}

// Animation is the capability the Coordinator uses to start animations.
type Animation interface {
	Animate(req AnimationRequest) error
}

type taskKey struct {
	unit uint32
	prop Property
}

// AnimationTask is a single in-flight tween driving one unit property.
type AnimationTask struct {
	key        taskKey
	tween      *gween.Tween // nil for zero-duration requests
	unit       *Unit
	to         float64
	onComplete func()

	// Done is set when the tween finishes or the task is superseded.
	Done bool
	// Canceled is set when a newer request for the same unit and property
	// replaced this task.
	Canceled bool
}

// Animator drives AnimationRequests with gween tweens. There is no global
// animation manager; call Update once per frame.
//
// At most one task exists per (unit, property). A new request cancels the
// previous task and starts from the property's current interpolated value.
type Animator struct {
	tasks []*AnimationTask
	byKey map[taskKey]*AnimationTask
}

// NewAnimator creates an idle animator.
func NewAnimator() *Animator {
	return &Animator{byKey: make(map[taskKey]*AnimationTask)}
}

// Animate implements Animation.
func (a *Animator) Animate(req AnimationRequest) error {
	_, err := a.Start(req)
	return err
}

// Start begins req and returns its task handle.
func (a *Animator) Start(req AnimationRequest) (*AnimationTask, error) {
	if req.Unit == nil {
		return nil, fmt.Errorf("animate: %w", ErrMissingUnit)
	}
	fn, err := EasingFunc(req.Easing)
	if err != nil {
		return nil, fmt.Errorf("animate %s: %w", req.Unit.Name, err)
	}

	key := taskKey{unit: req.Unit.ID, prop: req.Property}
	if prev := a.byKey[key]; prev != nil {
		prev.Canceled = true
		prev.Done = true
		a.remove(prev)
	}

	t := &AnimationTask{
		key:        key,
		unit:       req.Unit,
		to:         req.To,
		onComplete: req.OnComplete,
	}
	if req.Duration > 0 {
		t.tween = gween.New(float32(req.Unit.Value), float32(req.To), req.Duration, fn)
	}
	a.tasks = append(a.tasks, t)
	a.byKey[key] = t
	return t, nil
}

// Update advances every task by dt seconds in request order, writes the
// interpolated values to their units, and fires completion callbacks for
// tasks that finished this frame.
func (a *Animator) Update(dt float32) {
	if len(a.tasks) == 0 {
		return
	}
	var finished []*AnimationTask
	for _, t := range a.tasks {
		if t.Done {
			continue
		}
		done := true
		if t.tween != nil {
			var val float32
			val, done = t.tween.Update(dt)
			t.unit.Value = float64(val)
		}
		if done {
			// Snap to the exact target; gween interpolates in float32.
			t.unit.Value = t.to
			t.Done = true
			finished = append(finished, t)
		}
	}
	for _, t := range finished {
		a.remove(t)
	}
	// Callbacks run after bookkeeping so they may start new animations.
	for _, t := range finished {
		if t.onComplete != nil && !t.Canceled {
			t.onComplete()
		}
	}
}

func (a *Animator) remove(t *AnimationTask) {
	if a.byKey[t.key] == t {
		delete(a.byKey, t.key)
	}
	for i, x := range a.tasks {
		if x == t {
			copy(a.tasks[i:], a.tasks[i+1:])
			a.tasks[len(a.tasks)-1] = nil
			a.tasks = a.tasks[:len(a.tasks)-1]
			return
		}
	}
}

// Pending returns the number of in-flight tasks.
func (a *Animator) Pending() int { return len(a.tasks) }

// Active returns the in-flight task for the unit property, if any.
func (a *Animator) Active(u *Unit, prop Property) (*AnimationTask, bool) {
	t, ok := a.byKey[taskKey{unit: u.ID, prop: prop}]
	return t, ok
}

// Clear cancels every task without firing callbacks. Values stay where
// they are.
func (a *Animator) Clear() {
	for _, t := range a.tasks {
		t.Canceled = true
		t.Done = true
	}
	a.tasks = a.tasks[:0]
	clear(a.byKey)
}

// --- Easing ---

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"inquart":    ease.InQuart,
	"outquart":   ease.OutQuart,
	"inoutquart": ease.InOutQuart,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"outback":    ease.OutBack,
	"outbounce":  ease.OutBounce,

	// GSAP-style names: powerN is a polynomial of degree N+1.
	"none":         ease.Linear,
	"power1.in":    ease.InQuad,
	"power1.out":   ease.OutQuad,
	"power1.inout": ease.InOutQuad,
	"power2.in":    ease.InCubic,
	"power2.out":   ease.OutCubic,
	"power2.inout": ease.InOutCubic,
	"power3.in":    ease.InQuart,
	"power3.out":   ease.OutQuart,
	"power3.inout": ease.InOutQuart,
}

// EasingFunc returns the gween easing function for name. Names are case
// insensitive. An empty name means linear.
func EasingFunc(name string) (ease.TweenFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	fn, ok := easings[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownEasing, name)
	}
	return fn, nil
}
