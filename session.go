package trolleyyard

import (
	"errors"
	"fmt"
)

// ErrUnknownUnit is returned when a unit name is not registered.
var ErrUnknownUnit = errors.New("trolleyyard: unknown unit")

// DefaultTPS is the tick rate Session.Advance steps at.
const DefaultTPS = 60

// Session bundles an assembled yard with the coordinator, animator, and
// camera that drive it. It is the headless equivalent of the ebiten game
// loop: Click handles input, Advance runs animation frames.
type Session struct {
	Yard        *Yard
	Coordinator *Coordinator
	Animator    *Animator
	Camera      *Camera
	Width       float64
	Height      float64
}

// NewSession assembles layout and wires a coordinator for a viewport of
// the given size.
func NewSession(layout Layout, width, height float64) (*Session, error) {
	yard, err := Assemble(layout, nil)
	if err != nil {
		return nil, err
	}
	anim := NewAnimator()
	return &Session{
		Yard:        yard,
		Coordinator: NewCoordinator(yard.Catalog, anim, layout.Interaction),
		Animator:    anim,
		Camera:      NewCamera(width, height),
		Width:       width,
		Height:      height,
	}, nil
}

// Click handles a click at screen pixel (x, y).
func (s *Session) Click(x, y float64) (*Unit, error) {
	return s.Coordinator.Click(x, y, s.Width, s.Height, s.Camera)
}

// Advance runs animation frames at DefaultTPS until seconds have elapsed.
func (s *Session) Advance(seconds float64) {
	const dt = float32(1.0 / DefaultTPS)
	frames := int(seconds*DefaultTPS + 0.5)
	for i := 0; i < frames; i++ {
		s.Animator.Update(dt)
		s.Camera.Update(dt)
	}
}

// Settle advances until no animation is pending and the camera has stopped
// flying, up to limit seconds.
func (s *Session) Settle(limit float64) {
	const dt = float32(1.0 / DefaultTPS)
	for i := 0; i < int(limit*DefaultTPS) && (s.Animator.Pending() > 0 || s.Camera.Flying()); i++ {
		s.Animator.Update(dt)
		s.Camera.Update(dt)
	}
}

// Resize updates the viewport and the camera projection.
func (s *Session) Resize(width, height float64) {
	s.Width, s.Height = width, height
	s.Camera.Resize(width, height)
}

// Unit returns the registered unit with the given name.
func (s *Session) Unit(name string) (*Unit, error) {
	for _, u := range s.Yard.Catalog.Units() {
		if u.Name == name {
			return u, nil
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownUnit, name)
}

// aimFractions are the positions along each box axis ScreenPoint tries,
// center first.
var aimFractions = [...]float64{0.5, 0.25, 0.75, 0.1, 0.9}

// ScreenPoint returns a screen pixel where r, as currently placed, is the
// nearest region under the pointer, so a click there lands on r. Points
// through the box are tried from its center outward. ok is false when no
// tried point of r is visible in the viewport.
func (s *Session) ScreenPoint(r *Region) (x, y float64, ok bool) {
	b := r.World()
	size := b.Size()
	resolver := Resolver{Camera: s.Camera}
	candidates := s.Yard.Catalog.Regions()
	for _, fx := range aimFractions {
		for _, fy := range aimFractions {
			for _, fz := range aimFractions {
				p := b.Min.Add(Vec3{size.X * fx, size.Y * fy, size.Z * fz})
				nx, ny, _, visible := s.Camera.Project(p)
				if !visible || nx < -1 || nx > 1 || ny < -1 || ny > 1 {
					continue
				}
				px, py := NDCToScreen(nx, ny, s.Width, s.Height)
				hits := resolver.PickScreen(px, py, s.Width, s.Height, candidates)
				if len(hits) > 0 && hits[0].Region == r {
					return px, py, true
				}
			}
		}
	}
	return 0, 0, false
}

// ClickRegion clicks the screen point over region r.
func (s *Session) ClickRegion(r *Region) (*Unit, error) {
	x, y, ok := s.ScreenPoint(r)
	if !ok {
		return nil, fmt.Errorf("region %q: %w", r.Name, ErrInvalidPick)
	}
	return s.Click(x, y)
}

// ClickUnit clicks the region named name+"/"+part of the named unit. An
// empty part clicks the first of the unit's regions that is visible.
func (s *Session) ClickUnit(name, part string) (*Unit, error) {
	u, err := s.Unit(name)
	if err != nil {
		return nil, err
	}
	for _, r := range s.Yard.Catalog.RegionsOf(u) {
		if part != "" {
			if r.Name == name+"/"+part {
				return s.ClickRegion(r)
			}
			continue
		}
		if _, _, ok := s.ScreenPoint(r); ok {
			return s.ClickRegion(r)
		}
	}
	if part == "" {
		return nil, fmt.Errorf("unit %q has no visible region: %w", name, ErrInvalidPick)
	}
	return nil, fmt.Errorf("unit %q has no region %q: %w", name, part, ErrInvalidPick)
}
