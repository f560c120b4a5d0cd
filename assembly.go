package trolleyyard

import (
	"fmt"
	"math"
)

// Trolley dimensions.
const (
	coverWidth     = 3.0
	coverHeight    = 6.0
	coverDepth     = 5.0
	coverThickness = 0.2
	coverLift      = 1.0 // cover center above the trolley base point

	drawerWidth  = 2.5
	drawerHeight = 0.82
	drawerDepth  = 4.9
	drawerGap    = 0.1

	trayWidth      = 3.0
	trayWall       = 0.1
	trayDepth      = 4.9
	traySideHeight = 0.5
	trayLift       = 4.25

	wheelRadius  = 0.4
	wheelWidth   = 0.2
	wheelSpacing = 0.24
	wheelDrop    = -3.3 // below the cover center

	canisterRadius = 0.6
	canisterHeight = 1.6
	doorWidth      = 0.9
	doorHeight     = 1.2
	doorThickness  = 0.04
)

// Part is one piece of static geometry for the renderer. Parts with a Unit
// move with it; parts with a Region are pickable.
type Part struct {
	Name     string
	Local    Box3
	Unit     *Unit
	Material *Material
	Region   *Region
}

// World returns the part's bounds in world space.
func (p *Part) World() Box3 {
	return placeBox(p.Local, p.Unit)
}

// Trolley groups a bay and its drawers.
type Trolley struct {
	Index    int
	Name     string
	Position Vec3
	Bay      *Unit
	Drawers  []*Unit
}

// Canister is a cylinder on the table with a hinged door.
type Canister struct {
	Index    int
	Name     string
	Position Vec3
	Door     *Unit
}

// Yard is the assembled scene: every part, every interactive unit, and the
// pick catalog built from them.
type Yard struct {
	Trolleys  []*Trolley
	Canisters []*Canister
	Parts     []*Part
	Units     []*Unit
	Regions   []*Region
	Catalog   *Catalog
	Settings  *Settings
}

// assembler accumulates parts while a Yard is built.
type assembler struct {
	yard *Yard
	cfg  Config
}

func (a *assembler) part(name string, local Box3, u *Unit, m *Material) *Part {
	p := &Part{Name: name, Local: local, Unit: u, Material: m}
	a.yard.Parts = append(a.yard.Parts, p)
	return p
}

func (a *assembler) pickable(name string, local Box3, u *Unit, m *Material) *Part {
	p := a.part(name, local, u, m)
	p.Region = NewRegion(name, local, u)
	a.yard.Regions = append(a.yard.Regions, p.Region)
	return p
}

func (a *assembler) unit(name string, kind Kind, prop Property) *Unit {
	rest, open := a.cfg.Limits(kind)
	u := NewUnit(name, kind, prop, rest, open)
	a.yard.Units = append(a.yard.Units, u)
	return u
}

// Assemble builds the scene described by layout. Settings may be nil; the
// layout's colors are registered on it and wired to the trolley faces. The
// catalog is built once, after every trolley and canister exists.
func Assemble(layout Layout, settings *Settings) (*Yard, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if settings == nil {
		settings = NewSettings()
	}
	a := &assembler{
		yard: &Yard{Catalog: NewCatalog(), Settings: settings},
		cfg:  layout.Interaction,
	}

	a.part("ground", BoxFromCenter(Vec3{0, -2.8, 0}, Vec3{100, 0, 100}), nil,
		NewMaterial("#808080", 0.5, 0.8))

	for i, pl := range layout.Trolleys {
		name := pl.name("trolley", i)
		t, faces := a.trolley(i, name, pl.Vec(), layout.DrawersPerTrolley)
		a.yard.Trolleys = append(a.yard.Trolleys, t)
		if err := wireFaceColors(settings, layout.Colors, faces); err != nil {
			return nil, err
		}
	}

	if layout.Table != nil {
		a.table(*layout.Table)
	}

	for i, pl := range layout.Canisters {
		name := pl.name("canister", i)
		a.yard.Canisters = append(a.yard.Canisters, a.canister(i, name, pl.Vec()))
	}

	if err := a.yard.Catalog.Rebuild(a.yard.Units, a.yard.Regions); err != nil {
		return nil, err
	}
	return a.yard, nil
}

// coloredFaces are the four panels the color settings drive.
type coloredFaces struct {
	front, back, left, right *Material
}

func wireFaceColors(s *Settings, colors map[string]string, f coloredFaces) error {
	blue, ok := colors[SettingBlue]
	if !ok {
		blue = defaultColors()[SettingBlue]
	}
	lightBlue, ok := colors[SettingLightBlue]
	if !ok {
		lightBlue = defaultColors()[SettingLightBlue]
	}
	err := s.AddColor(SettingBlue, blue, func(c Color) {
		f.left.Color = c
		f.right.Color = c
	})
	if err != nil {
		return err
	}
	// The back face starts blue and follows light blue once it is edited.
	initial := true
	return s.AddColor(SettingLightBlue, lightBlue, func(c Color) {
		f.front.Color = c
		if initial {
			initial = false
			return
		}
		f.back.Color = c
	})
}

func (a *assembler) trolley(index int, name string, pos Vec3, drawers int) (*Trolley, coloredFaces) {
	bay := a.unit(name+"/bay", KindTrolleyBay, PropertyOffsetZ)
	bay.Index = index
	bay.Owner = index
	bay.Base = pos
	t := &Trolley{Index: index, Name: name, Position: pos, Bay: bay}

	// Cover: five solid faces around the drawer stack.
	cover := NewMaterial("#6c757d", 0, 0.8)
	cy := coverLift
	half := coverThickness / 2
	a.part(name+"/cover/left", BoxFromCenter(Vec3{-(coverWidth/2 - half), cy, 0}, Vec3{coverThickness, coverHeight, coverDepth}), bay, cover)
	a.part(name+"/cover/right", BoxFromCenter(Vec3{coverWidth/2 - half, cy, 0}, Vec3{coverThickness, coverHeight, coverDepth}), bay, cover)
	a.part(name+"/cover/top", BoxFromCenter(Vec3{0, cy + coverHeight/2 - half, 0}, Vec3{coverWidth, coverThickness, coverDepth}), bay, cover)
	a.part(name+"/cover/bottom", BoxFromCenter(Vec3{0, cy - (coverHeight/2 - half), 0}, Vec3{coverWidth, coverThickness, coverDepth}), bay, cover)
	a.part(name+"/cover/back", BoxFromCenter(Vec3{0, cy, -(coverDepth/2 - half)}, Vec3{coverWidth, coverHeight, coverThickness}), bay, cover)

	// Colored panels just outside the cover. The front one is fully transparent.
	const inset = 0.01
	faces := coloredFaces{
		front: &Material{Color: MustHex("#00ace6"), Opacity: 0, Metalness: 0.2, Roughness: 0.5},
		back:  NewMaterial("#040449", 0.2, 0.5),
		left:  NewMaterial("#040449", 0.2, 0.5),
		right: NewMaterial("#040449", 0.2, 0.5),
	}
	a.part(name+"/face/front", BoxFromCenter(Vec3{0, cy, coverDepth/2 + inset}, Vec3{2.6, 5.6, 0}), bay, faces.front)
	a.part(name+"/face/back", BoxFromCenter(Vec3{0, cy, -coverDepth/2 - inset}, Vec3{2.6, 5.6, 0}), bay, faces.back)
	a.part(name+"/face/left", BoxFromCenter(Vec3{-coverWidth/2 - inset, cy, 0}, Vec3{0, 5.6, 4.6}), bay, faces.left)
	a.part(name+"/face/right", BoxFromCenter(Vec3{coverWidth/2 + inset, cy, 0}, Vec3{0, 5.6, 4.6}), bay, faces.right)

	// Tray on top: its four walls are the bay's hit region, named under the
	// bay so they can be addressed as the bay's parts.
	tray := NewMaterial("#adb5bd", 0.5, 0.8)
	a.pickable(bay.Name+"/tray/front", BoxFromCenter(Vec3{0, trayLift, trayDepth / 2}, Vec3{trayWidth, traySideHeight, trayWall}), bay, tray)
	a.pickable(bay.Name+"/tray/back", BoxFromCenter(Vec3{0, trayLift, -trayDepth / 2}, Vec3{trayWidth, traySideHeight, trayWall}), bay, tray)
	a.pickable(bay.Name+"/tray/left", BoxFromCenter(Vec3{-trayWidth/2 + 0.05, trayLift, 0}, Vec3{trayWall, traySideHeight, trayDepth}), bay, tray)
	a.pickable(bay.Name+"/tray/right", BoxFromCenter(Vec3{trayWidth/2 - 0.05, trayLift, 0}, Vec3{trayWall, traySideHeight, trayDepth}), bay, tray)

	// Wheels in pairs at each corner, axles along X.
	wheel := NewMaterial("#282424", 0.5, 0.8)
	for i := 0; i < 4; i++ {
		x := 1.2
		if i < 2 {
			x = -1.2
		}
		z := 2.1
		if i%2 == 0 {
			z = -2.1
		}
		inner := x - wheelSpacing
		if i < 2 {
			inner = x + wheelSpacing
		}
		size := Vec3{wheelWidth, 2 * wheelRadius, 2 * wheelRadius}
		a.part(fmt.Sprintf("%s/wheel-%d", name, 2*i), BoxFromCenter(Vec3{x, cy + wheelDrop, z}, size), bay, wheel)
		a.part(fmt.Sprintf("%s/wheel-%d", name, 2*i+1), BoxFromCenter(Vec3{inner, cy + wheelDrop, z}, size), bay, wheel)
	}

	// Brake paddles, tilted 45° about X; stored as their bounds.
	tilt := 0.1*math.Cos(math.Pi/4) + 0.5*math.Sin(math.Pi/4)
	a.part(name+"/paddle/left", BoxFromCenter(Vec3{-0.14, -2.1, 2.5}, Vec3{0.2, tilt, tilt}), bay, NewMaterial("#ff0000", 0.5, 0.8))
	a.part(name+"/paddle/right", BoxFromCenter(Vec3{0.1, -2.1, 2.5}, Vec3{0.2, tilt, tilt}), bay, NewMaterial("#008000", 0.5, 0.8))

	for i := 0; i < drawers; i++ {
		t.Drawers = append(t.Drawers, a.drawer(t, i))
	}
	return t, faces
}

// drawer builds drawer i of t, counted from the bottom of the cover. All
// five faces are pickable; the front is registered first.
func (a *assembler) drawer(t *Trolley, i int) *Unit {
	name := fmt.Sprintf("%s/drawer-%d", t.Name, i+1)
	d := a.unit(name, KindDrawer, PropertyOffsetZ)
	d.Index = i
	d.Owner = t.Index
	d.Parent = t.Bay
	d.Base = Vec3{0, coverLift + (float64(i)-2.5)*(drawerHeight+drawerGap), 0}

	m := NewMaterial("#66d9ff", 0.8, 0.5)
	a.pickable(name+"/front", BoxFromCenter(Vec3{0, 0, drawerDepth / 2}, Vec3{drawerWidth, drawerHeight, 0}), d, m)
	a.pickable(name+"/base", BoxFromCenter(Vec3{0, -drawerHeight / 2, 0}, Vec3{drawerWidth, 0, drawerDepth}), d, m)
	a.pickable(name+"/inner", BoxFromCenter(Vec3{0, 0, -0.1}, Vec3{drawerWidth, drawerHeight + 0.1, 0}), d, m)
	a.pickable(name+"/right", BoxFromCenter(Vec3{drawerWidth/2 - 0.01, 0, 0}, Vec3{0.01, drawerHeight, drawerDepth}), d, m)
	a.pickable(name+"/left", BoxFromCenter(Vec3{-drawerWidth/2 + 0.01, 0, 0}, Vec3{0.01, drawerHeight, drawerDepth}), d, m)
	return d
}

func (a *assembler) table(tl TableLayout) {
	pos := Vec3{tl.Position[0], tl.Position[1], tl.Position[2]}
	w, h, d := tl.Size[0], tl.Size[1], tl.Size[2]
	wood := NewMaterial("#8b5a2b", 0.1, 0.9)
	const top, leg = 0.1, 0.12
	a.part("table/top", BoxFromCenter(pos.Add(Vec3{0, h - top/2, 0}), Vec3{w, top, d}), nil, wood)
	legH := h - top
	for i, c := range [4][2]float64{{-1, -1}, {1, -1}, {-1, 1}, {1, 1}} {
		center := pos.Add(Vec3{c[0] * (w/2 - leg), legH / 2, c[1] * (d/2 - leg)})
		a.part(fmt.Sprintf("table/leg-%d", i+1), BoxFromCenter(center, Vec3{leg, legH, leg}), nil, wood)
	}
}

// canister builds a canister standing at pos with its door on the +Z side,
// hinged on the door's left edge.
func (a *assembler) canister(index int, name string, pos Vec3) *Canister {
	body := NewMaterial("#c0c0c0", 0.9, 0.3)
	center := pos.Add(Vec3{0, canisterHeight / 2, 0})
	a.part(name+"/body", BoxFromCenter(center, Vec3{2 * canisterRadius, canisterHeight, 2 * canisterRadius}), nil, body)

	door := a.unit(name+"/door", KindCanisterDoor, PropertyRotationY)
	door.Index = index
	door.Owner = index
	doorZ := pos.Z + canisterRadius + doorThickness/2
	door.Pivot = Vec3{pos.X - doorWidth/2, center.Y, doorZ}
	a.pickable(name+"/door", BoxFromCenter(Vec3{pos.X, center.Y, doorZ}, Vec3{doorWidth, doorHeight, doorThickness}), door,
		NewMaterial("#9aa0a6", 0.9, 0.3))

	return &Canister{Index: index, Name: name, Position: pos, Door: door}
}

// Trolley returns trolley i, or nil when out of range.
func (y *Yard) Trolley(i int) *Trolley {
	if i < 0 || i >= len(y.Trolleys) {
		return nil
	}
	return y.Trolleys[i]
}

// Canister returns canister i, or nil when out of range.
func (y *Yard) Canister(i int) *Canister {
	if i < 0 || i >= len(y.Canisters) {
		return nil
	}
	return y.Canisters[i]
}

// Bays returns every trolley bay in trolley order.
func (y *Yard) Bays() []*Unit {
	bays := make([]*Unit, len(y.Trolleys))
	for i, t := range y.Trolleys {
		bays[i] = t.Bay
	}
	return bays
}
