package trolleyyard

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Setting names wired by Assemble.
const (
	SettingBlue      = "blue"
	SettingLightBlue = "light_blue"
)

// DefaultDrawersPerTrolley matches the six-drawer trolley.
const DefaultDrawersPerTrolley = 6

// ErrInvalidLayout is returned for layouts Assemble cannot build.
var ErrInvalidLayout = errors.New("trolleyyard: invalid layout")

// Placement positions one trolley or canister. Position is the base point
// of the object on the floor plane.
type Placement struct {
	Name     string     `toml:"name"`
	Position [3]float64 `toml:"position"`
}

// Vec returns Position as a Vec3.
func (p Placement) Vec() Vec3 { return Vec3{p.Position[0], p.Position[1], p.Position[2]} }

// name returns p.Name, or prefix-N for the i-th unnamed placement.
func (p Placement) name(prefix string, i int) string {
	if p.Name != "" {
		return p.Name
	}
	return fmt.Sprintf("%s-%d", prefix, i+1)
}

// TableLayout positions the supporting table.
type TableLayout struct {
	Position [3]float64 `toml:"position"`
	Size     [3]float64 `toml:"size"`
}

// Layout describes what Assemble builds. It is usually read from a TOML
// file:
//
//	drawers_per_trolley = 6
//
//	[[trolley]]
//	name = "left"
//	position = [-2.0, 0.0, 0.0]
//
//	[[canister]]
//	position = [6.2, -0.8, 0.5]
//
//	[table]
//	position = [7.2, -2.8, 0.5]
//	size = [4.4, 2.0, 2.4]
//
//	[colors]
//	blue = "#040449"
//
//	[interaction]
//	require_bay_out_for_drawer = true
//	duration = 1.0
type Layout struct {
	DrawersPerTrolley int               `toml:"drawers_per_trolley"`
	Trolleys          []Placement       `toml:"trolley"`
	Canisters         []Placement       `toml:"canister"`
	Table             *TableLayout      `toml:"table"`
	Colors            map[string]string `toml:"colors"`
	Interaction       Config            `toml:"interaction"`
}

// DefaultLayout returns two trolleys side by side, two canisters on a table,
// and the default colors and interaction rules.
func DefaultLayout() Layout {
	return Layout{
		DrawersPerTrolley: DefaultDrawersPerTrolley,
		Trolleys: []Placement{
			{Name: "trolley-1", Position: [3]float64{-2, 0, 0}},
			{Name: "trolley-2", Position: [3]float64{2, 0, 0}},
		},
		Canisters: []Placement{
			{Name: "canister-1", Position: [3]float64{6.2, -0.8, 0.5}},
			{Name: "canister-2", Position: [3]float64{8.2, -0.8, 0.5}},
		},
		Table: &TableLayout{
			Position: [3]float64{7.2, -2.8, 0.5},
			Size:     [3]float64{4.4, 2, 2.4},
		},
		Colors:      defaultColors(),
		Interaction: DefaultConfig(),
	}
}

func defaultColors() map[string]string {
	return map[string]string{
		SettingBlue:      "#040449",
		SettingLightBlue: "#00ace6",
	}
}

// LoadLayout decodes a TOML layout. Keys absent from the document keep the
// values of DefaultLayout, and the trolley and canister lists default
// independently: a document listing only canisters still gets the default
// trolleys. Unknown keys are an error.
func LoadLayout(r io.Reader) (Layout, error) {
	l := Layout{
		DrawersPerTrolley: DefaultDrawersPerTrolley,
		Interaction:       DefaultConfig(),
	}
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&l); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return Layout{}, fmt.Errorf("parse layout: %s", strict.String())
		}
		return Layout{}, fmt.Errorf("parse layout: %w", err)
	}

	def := DefaultLayout()
	if l.Trolleys == nil {
		l.Trolleys = def.Trolleys
	}
	if l.Canisters == nil {
		l.Canisters = def.Canisters
	}
	if l.Table == nil {
		l.Table = def.Table
	}
	colors := defaultColors()
	for k, v := range l.Colors {
		colors[k] = v
	}
	l.Colors = colors

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LoadLayoutFile reads a TOML layout from path.
func LoadLayoutFile(path string) (Layout, error) {
	f, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("open layout: %w", err)
	}
	defer f.Close()
	return LoadLayout(f)
}

// Validate reports layouts Assemble cannot build. Two trolleys, or two
// canisters, resolving to the same name are rejected since their units
// could not be told apart by name.
func (l Layout) Validate() error {
	if l.DrawersPerTrolley < 0 {
		return fmt.Errorf("%w: drawers_per_trolley %d", ErrInvalidLayout, l.DrawersPerTrolley)
	}
	if err := uniqueNames("trolley", l.Trolleys); err != nil {
		return err
	}
	if err := uniqueNames("canister", l.Canisters); err != nil {
		return err
	}
	for name, hex := range l.Colors {
		if _, err := ParseHex(hex); err != nil {
			return fmt.Errorf("%w: color %q: %v", ErrInvalidLayout, name, err)
		}
	}
	if l.Table != nil {
		s := l.Table.Size
		if s[0] <= 0 || s[1] <= 0 || s[2] <= 0 {
			return fmt.Errorf("%w: table size %v", ErrInvalidLayout, s)
		}
	}
	if err := l.Interaction.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	return nil
}

func uniqueNames(prefix string, placements []Placement) error {
	seen := make(map[string]bool, len(placements))
	for i, p := range placements {
		name := p.name(prefix, i)
		if seen[name] {
			return fmt.Errorf("%w: duplicate %s name %q", ErrInvalidLayout, prefix, name)
		}
		seen[name] = true
	}
	return nil
}
