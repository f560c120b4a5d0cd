package trolleyyard

import "fmt"

// Kind distinguishes the interaction rules applied to a Unit.
type Kind uint8

const (
	KindDrawer       Kind = iota // slides along Z inside its trolley
	KindTrolleyBay                // slides the whole trolley in or out
	KindCanisterDoor              // swings about a vertical hinge
)

func (k Kind) String() string {
	switch k {
	case KindDrawer:
		return "drawer"
	case KindTrolleyBay:
		return "bay"
	case KindCanisterDoor:
		return "door"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// State is the binary logical state of a Unit.
type State uint8

const (
	StateClosed State = iota
	StateOpen

	// StateIn and StateOut name the same two states for trolley bays.
	StateIn  = StateClosed
	StateOut = StateOpen
)

// Property identifies the visual property a Unit's animated value drives.
type Property uint8

const (
	PropertyOffsetZ   Property = iota // translation along Z
	PropertyRotationY                 // rotation about Y around Unit.Pivot, in radians
)

func (p Property) String() string {
	switch p {
	case PropertyOffsetZ:
		return "offsetZ"
	case PropertyRotationY:
		return "rotationY"
	default:
		return fmt.Sprintf("Property(%d)", p)
	}
}

// unitIDCounter is a plain counter (no atomic, units are created and
// mutated on a single goroutine).
var unitIDCounter uint32

func nextUnitID() uint32 {
	unitIDCounter++
	return unitIDCounter
}

// Unit is a toggleable entity: a drawer, a trolley bay, or a canister door.
//
// The logical state and the animated value are separate.
// RequestToggle flips the state immediately; Value is only ever written by
// the animation system as it interpolates toward the state's target.
type Unit struct {
	ID    uint32
	Name  string
	Kind  Kind
	Index int // index within the owning collection
	Owner int // index of the owning trolley or canister

	// Parent is the owning bay for drawers and nil for top-level units.
	// A drawer's world offset includes its parent's.
	Parent *Unit

	// Value is the current animated value (offset along Z or rotation angle).
	Value    float64
	Property Property

	// Rest is the value for the closed/in state, Target for open/out.
	Rest   float64
	Target float64

	// Base is the unit's rest translation relative to its parent.
	Base Vec3
	// Pivot is the hinge point for PropertyRotationY units, in world space
	// before the parent offset is applied.
	Pivot Vec3

	open bool
}

// NewUnit creates a unit in the closed state with Value at rest.
func NewUnit(name string, kind Kind, prop Property, rest, target float64) *Unit {
	return &Unit{
		ID:       nextUnitID(),
		Name:     name,
		Kind:     kind,
		Property: prop,
		Rest:     rest,
		Target:   target,
		Value:    rest,
	}
}

// CurrentState returns the unit's logical state.
func (u *Unit) CurrentState() State {
	if u.open {
		return StateOpen
	}
	return StateClosed
}

// IsOpen reports whether the unit is open (or out, for a bay).
func (u *Unit) IsOpen() bool { return u.open }

// StateName returns "in"/"out" for bays and "closed"/"open" for everything else.
func (u *Unit) StateName() string {
	if u.Kind == KindTrolleyBay {
		if u.open {
			return "out"
		}
		return "in"
	}
	if u.open {
		return "open"
	}
	return "closed"
}

// RequestToggle flips the logical state and returns the animation target
// for the new state. It never refuses: rule checks live in the Coordinator.
// Repeated calls during an in-flight animation derive the target from the
// logical state, not from Value.
func (u *Unit) RequestToggle() float64 {
	u.open = !u.open
	return u.TargetValue()
}

// TargetValue returns the animated value the current state settles at.
func (u *Unit) TargetValue() float64 {
	if u.open {
		return u.Target
	}
	return u.Rest
}

// Settled reports whether Value has reached the current state's target.
func (u *Unit) Settled() bool {
	return u.Value == u.TargetValue()
}

// Offset returns the unit's translation in world space, including its
// parent chain. Rotation units contribute only their Base.
func (u *Unit) Offset() Vec3 {
	off := u.Base
	if u.Property == PropertyOffsetZ {
		off.Z += u.Value
	}
	if u.Parent != nil {
		off = off.Add(u.Parent.Offset())
	}
	return off
}

// Angle returns the unit's current rotation about Y, or 0 for sliding units.
func (u *Unit) Angle() float64 {
	if u.Property == PropertyRotationY {
		return u.Value
	}
	return 0
}

func (u *Unit) String() string {
	return fmt.Sprintf("%s %q (%s)", u.Kind, u.Name, u.StateName())
}
