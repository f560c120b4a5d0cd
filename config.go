package trolleyyard

import (
	"fmt"
	"math"
)

// Config holds the interaction rules and animation constants.
type Config struct {
	// RequireBayOutForDrawer rejects drawer toggles unless the drawer's bay
	// is out. Disable it for the earlier scene behavior where drawers open
	// in place.
	RequireBayOutForDrawer bool `toml:"require_bay_out_for_drawer"`

	// RequireActiveTrolleyForDrawer additionally requires the drawer's bay
	// to be the active trolley. Only consulted when RequireBayOutForDrawer
	// is set.
	RequireActiveTrolleyForDrawer bool `toml:"require_active_trolley_for_drawer"`

	// Duration is the length of every toggle animation, in seconds.
	Duration float32 `toml:"duration"`
	// Easing names the easing curve (see EasingFunc).
	Easing string `toml:"easing"`

	DrawerRest float64 `toml:"drawer_rest"`
	DrawerOpen float64 `toml:"drawer_open"`
	BayIn      float64 `toml:"bay_in"`
	BayOut     float64 `toml:"bay_out"`
	DoorClosed float64 `toml:"door_closed"`
	DoorOpen   float64 `toml:"door_open"`
}

// DefaultConfig returns the rules and constants of the current scene.
func DefaultConfig() Config {
	return Config{
		RequireBayOutForDrawer: true,
		Duration:               1,
		Easing:                 "power2.inOut",
		DrawerRest:             0.1,
		DrawerOpen:             2.5,
		BayIn:                  0,
		BayOut:                 3.5,
		DoorClosed:             0,
		DoorOpen:               -math.Pi / 2,
	}
}

// Validate reports configuration values the coordinator cannot use.
func (c Config) Validate() error {
	if c.Duration < 0 {
		return fmt.Errorf("config: negative duration %v", c.Duration)
	}
	if _, err := EasingFunc(c.Easing); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Limits returns the rest and open values for a unit kind.
func (c Config) Limits(k Kind) (rest, open float64) {
	switch k {
	case KindDrawer:
		return c.DrawerRest, c.DrawerOpen
	case KindTrolleyBay:
		return c.BayIn, c.BayOut
	case KindCanisterDoor:
		return c.DoorClosed, c.DoorOpen
	}
	return 0, 0
}
