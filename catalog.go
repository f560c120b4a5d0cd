package trolleyyard

import (
	"errors"
	"fmt"
)

// Catalog errors.
var (
	ErrDuplicateRegion = errors.New("trolleyyard: region registered twice")
	ErrMissingUnit     = errors.New("trolleyyard: region has no owning unit")
)

// RegionID identifies a pickable shape. Zero is never assigned.
type RegionID uint32

var regionIDCounter uint32

func nextRegionID() RegionID {
	regionIDCounter++
	return RegionID(regionIDCounter)
}

// Region is a pickable shape owned by exactly one Unit. Local is expressed
// in the owning unit's space; World applies the unit's current animated
// offset so hit testing follows the animation.
type Region struct {
	ID    RegionID
	Name  string
	Local Box3
	Unit  *Unit
}

// NewRegion creates a region with a fresh ID.
func NewRegion(name string, local Box3, owner *Unit) *Region {
	return &Region{ID: nextRegionID(), Name: name, Local: local, Unit: owner}
}

// World returns the region's bounds in world space.
func (r *Region) World() Box3 {
	return placeBox(r.Local, r.Unit)
}

// placeBox moves a unit-local box into world space using the unit's
// current rotation and offset. A nil unit leaves the box unchanged.
func placeBox(local Box3, u *Unit) Box3 {
	if u == nil {
		return local
	}
	b := local
	if u.Property == PropertyRotationY {
		b = b.RotateY(u.Pivot, u.Value)
	}
	return b.Translate(u.Offset())
}

// Catalog maps every pickable region to its owning unit.
//
// Rebuild it whenever the set of interactive units changes. Each region ID
// appears exactly once.
type Catalog struct {
	units   []*Unit
	regions []*Region
	owners  map[RegionID]*Unit
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{owners: make(map[RegionID]*Unit)}
}

// Rebuild replaces the catalog contents. On error the previous contents are
// kept unchanged.
func (c *Catalog) Rebuild(units []*Unit, regions []*Region) error {
	owners := make(map[RegionID]*Unit, len(regions))
	for _, r := range regions {
		if r == nil {
			continue
		}
		if r.Unit == nil {
			return fmt.Errorf("rebuild catalog: region %q: %w", r.Name, ErrMissingUnit)
		}
		if _, dup := owners[r.ID]; dup {
			return fmt.Errorf("rebuild catalog: region %q (id %d): %w", r.Name, r.ID, ErrDuplicateRegion)
		}
		owners[r.ID] = r.Unit
	}

	c.units = append(c.units[:0:0], units...)
	c.regions = c.regions[:0:0]
	for _, r := range regions {
		if r != nil {
			c.regions = append(c.regions, r)
		}
	}
	c.owners = owners
	return nil
}

// Owner returns the unit that owns the region.
func (c *Catalog) Owner(id RegionID) (*Unit, bool) {
	u, ok := c.owners[id]
	return u, ok
}

// Regions returns every registered region. The returned slice MUST NOT be mutated.
func (c *Catalog) Regions() []*Region { return c.regions }

// Units returns every registered unit. The returned slice MUST NOT be mutated.
func (c *Catalog) Units() []*Unit { return c.units }

// UnitsOfKind returns the registered units of the given kind in registration order.
func (c *Catalog) UnitsOfKind(k Kind) []*Unit {
	var out []*Unit
	for _, u := range c.units {
		if u.Kind == k {
			out = append(out, u)
		}
	}
	return out
}

// RegionsOf returns the regions owned by u.
func (c *Catalog) RegionsOf(u *Unit) []*Region {
	var out []*Region
	for _, r := range c.regions {
		if r.Unit == u {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of registered regions.
func (c *Catalog) Len() int { return len(c.regions) }
