package trolleyyard

import (
	"errors"
	"fmt"
)

// Interaction errors. Click and Dispatch return them for inspection; none
// of them leaves any unit state changed.
var (
	ErrInvalidPick           = errors.New("trolleyyard: pick hit nothing")
	ErrPreconditionViolation = errors.New("trolleyyard: toggle rejected")
)

// ToggleEvent describes an accepted toggle.
type ToggleEvent struct {
	UnitID uint32
	Name   string
	Kind   Kind
	Owner  int
	Index  int
	State  State
	Target float64
}

// RejectEvent describes a toggle refused by a precondition or a failed pick.
type RejectEvent struct {
	Unit *Unit // nil when nothing was picked
	Err  error
}

// EventSink receives accepted toggles, for example to forward them to an ECS.
type EventSink interface {
	EmitToggle(event ToggleEvent)
}

// --- Handler registry ---

type toggleHandler struct {
	id uint32
	fn func(ToggleEvent)
}

type rejectHandler struct {
	id uint32
	fn func(RejectEvent)
}

type handlerRegistry struct {
	toggle []toggleHandler
	reject []rejectHandler
	nextID uint32
}

// CallbackHandle allows removing a registered coordinator callback.
type CallbackHandle struct {
	id     uint32
	reg    *handlerRegistry
	reject bool
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	if h.reject {
		for i := range h.reg.reject {
			if h.reg.reject[i].id == h.id {
				h.reg.reject = append(h.reg.reject[:i], h.reg.reject[i+1:]...)
				return
			}
		}
		return
	}
	for i := range h.reg.toggle {
		if h.reg.toggle[i].id == h.id {
			h.reg.toggle = append(h.reg.toggle[:i], h.reg.toggle[i+1:]...)
			return
		}
	}
}

// --- Coordinator ---

// Coordinator applies the interaction rules. It owns the active trolley and
// is the only writer of unit state. All methods must be called from the
// goroutine that drives the animation system.
type Coordinator struct {
	cfg      Config
	catalog  *Catalog
	anim     Animation
	active   *Unit
	handlers handlerRegistry
	sink     EventSink
	log      debugLogger
}

// NewCoordinator creates a coordinator over cat that starts animations
// through anim.
func NewCoordinator(cat *Catalog, anim Animation, cfg Config) *Coordinator {
	if cat == nil {
		cat = NewCatalog()
	}
	return &Coordinator{cfg: cfg, catalog: cat, anim: anim}
}

// Catalog returns the coordinator's pick catalog.
func (c *Coordinator) Catalog() *Catalog { return c.catalog }

// Config returns the active configuration.
func (c *Coordinator) Config() Config { return c.cfg }

// ActiveTrolley returns the bay currently out (or retracting), or nil.
func (c *Coordinator) ActiveTrolley() *Unit { return c.active }

// SetEventSink sets the optional receiver for accepted toggles.
func (c *Coordinator) SetEventSink(sink EventSink) { c.sink = sink }

// OnToggle registers a callback for accepted toggles.
func (c *Coordinator) OnToggle(fn func(ToggleEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.toggle = append(c.handlers.toggle, toggleHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers}
}

// OnReject registers a callback for rejected toggles and pick misses.
func (c *Coordinator) OnReject(fn func(RejectEvent)) CallbackHandle {
	c.handlers.nextID++
	id := c.handlers.nextID
	c.handlers.reject = append(c.handlers.reject, rejectHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, reject: true}
}

// Rebuild replaces the catalog contents (see Catalog.Rebuild). The active
// trolley is cleared if it is no longer registered.
func (c *Coordinator) Rebuild(units []*Unit, regions []*Region) error {
	if err := c.catalog.Rebuild(units, regions); err != nil {
		return err
	}
	if c.active != nil && !c.registered(c.active) {
		c.active = nil
	}
	c.log.logf("catalog rebuilt: %d units, %d regions", len(units), c.catalog.Len())
	return nil
}

func (c *Coordinator) registered(u *Unit) bool {
	for _, x := range c.catalog.Units() {
		if x == u {
			return true
		}
	}
	return false
}

// Click handles a pointer click at pixel (px, py) in a width×height
// viewport seen through cam. It returns the toggled unit, or an error
// describing why nothing happened.
func (c *Coordinator) Click(px, py, width, height float64, cam *Camera) (*Unit, error) {
	hits := Resolver{Camera: cam}.PickScreen(px, py, width, height, c.catalog.Regions())
	return c.Dispatch(hits)
}

// Dispatch acts on the nearest hit. Category is decided after resolution,
// from the owning unit's kind.
func (c *Coordinator) Dispatch(hits []Hit) (*Unit, error) {
	if len(hits) == 0 || hits[0].Region == nil {
		return nil, c.reject(nil, ErrInvalidPick)
	}
	region := hits[0].Region
	u, ok := c.catalog.Owner(region.ID)
	if !ok {
		return nil, c.reject(nil, fmt.Errorf("region %q: %w", region.Name, ErrMissingUnit))
	}
	if err := c.Toggle(u); err != nil {
		return u, err
	}
	return u, nil
}

// Toggle runs the unit's precondition check and, if it passes, flips the
// state and requests the animation.
func (c *Coordinator) Toggle(u *Unit) error {
	if u == nil {
		return c.reject(nil, ErrMissingUnit)
	}
	if err := c.check(u); err != nil {
		return c.reject(u, err)
	}

	target := u.RequestToggle()
	req := AnimationRequest{
		Unit:     u,
		Property: u.Property,
		To:       target,
		Duration: c.cfg.Duration,
		Easing:   c.cfg.Easing,
	}
	if u.Kind == KindTrolleyBay {
		if u.IsOpen() {
			c.active = u
		} else {
			req.OnComplete = c.releaseFunc(u)
		}
	}

	if c.anim != nil {
		if err := c.anim.Animate(req); err != nil {
			// State stays flipped; snap the value so it matches.
			c.log.logf("animate %s: %v", u.Name, err)
			u.Value = target
			if req.OnComplete != nil {
				req.OnComplete()
			}
		}
	} else {
		u.Value = target
		if req.OnComplete != nil {
			req.OnComplete()
		}
	}

	if c.log.enabled {
		debugCheckActive(c)
	}
	c.emitToggle(u, target)
	return nil
}

// releaseFunc clears the active trolley once bay u has finished retracting.
func (c *Coordinator) releaseFunc(u *Unit) func() {
	return func() {
		if c.active == u && !u.IsOpen() {
			c.active = nil
			c.log.logf("%s released", u.Name)
		}
	}
}

// check applies the kind-specific precondition.
func (c *Coordinator) check(u *Unit) error {
	switch u.Kind {
	case KindTrolleyBay:
		return c.checkBay(u)
	case KindDrawer:
		return c.checkDrawer(u)
	case KindCanisterDoor:
		return nil
	default:
		return fmt.Errorf("unit %q has unknown kind %d: %w", u.Name, u.Kind, ErrPreconditionViolation)
	}
}

func (c *Coordinator) checkBay(u *Unit) error {
	if u.IsOpen() {
		if c.active != u {
			return fmt.Errorf("bay %q is out but not active: %w", u.Name, ErrPreconditionViolation)
		}
		return nil
	}
	// A retracting bay is still active and may be pulled out again.
	if c.active != nil && c.active != u {
		return fmt.Errorf("bay %q cannot come out while %q is active: %w",
			u.Name, c.active.Name, ErrPreconditionViolation)
	}
	return nil
}

func (c *Coordinator) checkDrawer(u *Unit) error {
	if !c.cfg.RequireBayOutForDrawer {
		return nil
	}
	bay := u.Parent
	if bay == nil || !bay.IsOpen() {
		return fmt.Errorf("drawer %q: bay is in: %w", u.Name, ErrPreconditionViolation)
	}
	if c.cfg.RequireActiveTrolleyForDrawer && c.active != bay {
		return fmt.Errorf("drawer %q: bay %q is not the active trolley: %w",
			u.Name, bay.Name, ErrPreconditionViolation)
	}
	return nil
}

// reject logs err, notifies reject handlers, and returns err.
func (c *Coordinator) reject(u *Unit, err error) error {
	if u != nil {
		c.log.logf("rejected %s: %v", u, err)
	} else {
		c.log.logf("ignored click: %v", err)
	}
	for _, h := range c.handlers.reject {
		h.fn(RejectEvent{Unit: u, Err: err})
	}
	return err
}

func (c *Coordinator) emitToggle(u *Unit, target float64) {
	ev := ToggleEvent{
		UnitID: u.ID,
		Name:   u.Name,
		Kind:   u.Kind,
		Owner:  u.Owner,
		Index:  u.Index,
		State:  u.CurrentState(),
		Target: target,
	}
	for _, h := range c.handlers.toggle {
		h.fn(ev)
	}
	if c.sink != nil {
		c.sink.EmitToggle(ev)
	}
}
