package trolleyyard

import "testing"

func TestNewUnitStartsClosedAtRest(t *testing.T) {
	u := NewUnit("d", KindDrawer, PropertyOffsetZ, 0.1, 2.5)
	if u.IsOpen() || u.CurrentState() != StateClosed {
		t.Error("new unit should be closed")
	}
	if u.Value != 0.1 {
		t.Errorf("Value = %f, want 0.1", u.Value)
	}
	if u.ID == 0 {
		t.Error("ID should be assigned")
	}
	if other := NewUnit("e", KindDrawer, PropertyOffsetZ, 0, 1); other.ID == u.ID {
		t.Error("IDs should be unique")
	}
}

func TestRequestToggleIgnoresValue(t *testing.T) {
	u := NewUnit("d", KindDrawer, PropertyOffsetZ, 0.1, 2.5)
	if got := u.RequestToggle(); got != 2.5 {
		t.Errorf("first toggle target = %f, want 2.5", got)
	}
	// Mid-animation: Value is between rest and open.
	u.Value = 1.3
	if got := u.RequestToggle(); got != 0.1 {
		t.Errorf("second toggle target = %f, want 0.1", got)
	}
	if u.IsOpen() {
		t.Error("two toggles should leave the unit closed")
	}
	if u.Value != 1.3 {
		t.Errorf("RequestToggle changed Value to %f", u.Value)
	}
}

func TestStateName(t *testing.T) {
	tests := []struct {
		kind         Kind
		closed, open string
	}{
		{KindDrawer, "closed", "open"},
		{KindTrolleyBay, "in", "out"},
		{KindCanisterDoor, "closed", "open"},
	}
	for _, tt := range tests {
		u := NewUnit("u", tt.kind, PropertyOffsetZ, 0, 1)
		if got := u.StateName(); got != tt.closed {
			t.Errorf("%v closed StateName = %q, want %q", tt.kind, got, tt.closed)
		}
		u.RequestToggle()
		if got := u.StateName(); got != tt.open {
			t.Errorf("%v open StateName = %q, want %q", tt.kind, got, tt.open)
		}
	}
}

func TestSettled(t *testing.T) {
	u := NewUnit("b", KindTrolleyBay, PropertyOffsetZ, 0, 3.5)
	if !u.Settled() {
		t.Error("new unit should be settled")
	}
	u.RequestToggle()
	if u.Settled() {
		t.Error("toggled unit should not be settled until Value reaches target")
	}
	u.Value = 3.5
	if !u.Settled() {
		t.Error("unit at target should be settled")
	}
}

func TestOffsetIncludesParent(t *testing.T) {
	bay := NewUnit("bay", KindTrolleyBay, PropertyOffsetZ, 0, 3.5)
	bay.Base = Vec3{-2, 0, 0}
	drawer := NewUnit("drawer", KindDrawer, PropertyOffsetZ, 0.1, 2.5)
	drawer.Parent = bay
	drawer.Base = Vec3{0, 1, 0}

	if got := drawer.Offset(); !vecApprox(got, Vec3{-2, 1, 0.1}, epsilon) {
		t.Errorf("Offset = %v, want (-2,1,0.1)", got)
	}
	bay.Value = 3.5
	if got := drawer.Offset(); !vecApprox(got, Vec3{-2, 1, 3.6}, epsilon) {
		t.Errorf("Offset with bay out = %v, want (-2,1,3.6)", got)
	}
}

func TestRotationUnitOffsetIgnoresValue(t *testing.T) {
	door := NewUnit("door", KindCanisterDoor, PropertyRotationY, 0, -1.5)
	door.Base = Vec3{1, 2, 3}
	door.Value = -1
	if got := door.Offset(); got != (Vec3{1, 2, 3}) {
		t.Errorf("Offset = %v, want Base", got)
	}
	if door.Angle() != -1 {
		t.Errorf("Angle = %f, want -1", door.Angle())
	}
}
