package trolleyyard

import (
	"math"
	"testing"
)

func TestAssembleDefaultLayout(t *testing.T) {
	y, err := Assemble(DefaultLayout(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(y.Trolleys) != 2 || len(y.Canisters) != 2 {
		t.Fatalf("got %d trolleys, %d canisters", len(y.Trolleys), len(y.Canisters))
	}

	// Per trolley: four tray walls plus five faces per drawer. One per door.
	wantRegions := 2*(4+DefaultDrawersPerTrolley*5) + 2
	if got := y.Catalog.Len(); got != wantRegions {
		t.Errorf("regions = %d, want %d", got, wantRegions)
	}
	wantUnits := 2*(1+DefaultDrawersPerTrolley) + 2
	if got := len(y.Catalog.Units()); got != wantUnits {
		t.Errorf("units = %d, want %d", got, wantUnits)
	}

	// Every region resolves to exactly its unit.
	seen := make(map[RegionID]bool)
	for _, r := range y.Catalog.Regions() {
		if seen[r.ID] {
			t.Errorf("region %s registered twice", r.Name)
		}
		seen[r.ID] = true
		if owner, ok := y.Catalog.Owner(r.ID); !ok || owner != r.Unit {
			t.Errorf("Owner(%s) = %v", r.Name, owner)
		}
	}

	for i, tr := range y.Trolleys {
		if tr.Bay.Kind != KindTrolleyBay || tr.Bay.Owner != i {
			t.Errorf("trolley %d bay = %v", i, tr.Bay)
		}
		if len(tr.Drawers) != DefaultDrawersPerTrolley {
			t.Errorf("trolley %d drawers = %d", i, len(tr.Drawers))
		}
		for j, d := range tr.Drawers {
			if d.Parent != tr.Bay || d.Index != j || d.Owner != i {
				t.Errorf("drawer %s wiring = parent %v index %d owner %d", d.Name, d.Parent, d.Index, d.Owner)
			}
			if d.Value != 0.1 {
				t.Errorf("drawer %s starts at %f, want rest 0.1", d.Name, d.Value)
			}
		}
		if got := y.Catalog.RegionsOf(tr.Bay)[0].Name; got != tr.Bay.Name+"/tray/front" {
			t.Errorf("first bay region = %s, want tray front", got)
		}
	}
	for _, c := range y.Canisters {
		if c.Door.Property != PropertyRotationY {
			t.Errorf("%s door property = %v", c.Name, c.Door.Property)
		}
	}

	if y.Trolley(5) != nil || y.Canister(-1) != nil {
		t.Error("out-of-range lookups should be nil")
	}
	if bays := y.Bays(); len(bays) != 2 || bays[1] != y.Trolley(1).Bay {
		t.Errorf("Bays = %v", bays)
	}
}

func TestAssembleDrawersStacked(t *testing.T) {
	y, err := Assemble(DefaultLayout(), nil)
	if err != nil {
		t.Fatal(err)
	}
	drawers := y.Trolley(0).Drawers
	for i := 1; i < len(drawers); i++ {
		lo := y.Catalog.RegionsOf(drawers[i-1])[0].World()
		hi := y.Catalog.RegionsOf(drawers[i])[0].World()
		if hi.Min.Y <= lo.Max.Y {
			t.Errorf("drawer %d front overlaps drawer %d", i+1, i)
		}
	}
}

func TestDrawersMoveWithBay(t *testing.T) {
	y, err := Assemble(DefaultLayout(), nil)
	if err != nil {
		t.Fatal(err)
	}
	tr := y.Trolley(0)
	front := y.Catalog.RegionsOf(tr.Drawers[2])[0]
	before := front.World().Center()
	tr.Bay.Value = 3.5
	after := front.World().Center()
	if !approxEqual(after.Z-before.Z, 3.5, 1e-9) {
		t.Errorf("drawer moved %f with the bay, want 3.5", after.Z-before.Z)
	}
}

func TestCanisterDoorSwingsOutward(t *testing.T) {
	y, err := Assemble(DefaultLayout(), nil)
	if err != nil {
		t.Fatal(err)
	}
	door := y.Canister(0).Door
	r := y.Catalog.RegionsOf(door)[0]
	closed := r.World()
	door.Value = -math.Pi / 2
	open := r.World()
	if open.Max.Z <= closed.Max.Z+0.5 {
		t.Errorf("open door max Z = %f, closed %f; want it swung toward the viewer", open.Max.Z, closed.Max.Z)
	}
	if !approxEqual(open.Max.X, door.Pivot.X+doorThickness/2, 1e-9) {
		t.Errorf("open door should end at the hinge, max X = %f pivot %f", open.Max.X, door.Pivot.X)
	}
}

func TestAssembleColorSettings(t *testing.T) {
	s := NewSettings()
	l := DefaultLayout()
	y, err := Assemble(l, s)
	if err != nil {
		t.Fatal(err)
	}
	find := func(name string) *Part {
		for _, p := range y.Parts {
			if p.Name == name {
				return p
			}
		}
		t.Fatalf("no part %q", name)
		return nil
	}
	left := find("trolley-1/face/left")
	back := find("trolley-2/face/back")
	front := find("trolley-2/face/front")

	if left.Material.Color.Hex() != "#040449" || back.Material.Color.Hex() != "#040449" {
		t.Errorf("initial colors left %s back %s", left.Material.Color.Hex(), back.Material.Color.Hex())
	}
	if front.Material.Opacity != 0 {
		t.Error("front face should be transparent")
	}

	if err := s.SetColor(SettingBlue, "#123456"); err != nil {
		t.Fatal(err)
	}
	if left.Material.Color.Hex() != "#123456" {
		t.Errorf("left after blue change = %s", left.Material.Color.Hex())
	}
	if err := s.SetColor(SettingLightBlue, "#abcdef"); err != nil {
		t.Fatal(err)
	}
	if back.Material.Color.Hex() != "#abcdef" || front.Material.Color.Hex() != "#abcdef" {
		t.Errorf("light blue change: back %s front %s", back.Material.Color.Hex(), front.Material.Color.Hex())
	}
}

func TestAssembleCustomLayout(t *testing.T) {
	l := Layout{
		DrawersPerTrolley: 3,
		Trolleys:          []Placement{{Position: [3]float64{0, 0, 0}}},
		Colors:            defaultColors(),
		Interaction:       DefaultConfig(),
	}
	y, err := Assemble(l, nil)
	if err != nil {
		t.Fatal(err)
	}
	if y.Trolley(0).Name != "trolley-1" {
		t.Errorf("default name = %q", y.Trolley(0).Name)
	}
	if got := y.Catalog.Len(); got != 4+3*5 {
		t.Errorf("regions = %d, want %d", got, 4+3*5)
	}

	l.DrawersPerTrolley = -2
	if _, err := Assemble(l, nil); err == nil {
		t.Error("expected error for a negative drawer count")
	}
}
