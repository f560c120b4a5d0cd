package trolleyyard

import (
	"errors"
	"fmt"
)

// ErrUnknownSetting is returned when a setting name is not registered.
var ErrUnknownSetting = errors.New("trolleyyard: unknown setting")

type colorSetting struct {
	value    Color
	onChange []func(Color)
}

// Settings holds live-editable named colors. A settings panel or key
// binding edits them through SetColor; registered callbacks push the new
// value into materials.
type Settings struct {
	colors map[string]*colorSetting
	order  []string
}

// NewSettings creates an empty settings registry.
func NewSettings() *Settings {
	return &Settings{colors: make(map[string]*colorSetting)}
}

// AddColor registers a named color with an initial hex value. Adding an
// existing name keeps its current value and appends onChange. onChange
// may be nil.
func (s *Settings) AddColor(name, hex string, onChange func(Color)) error {
	c, err := ParseHex(hex)
	if err != nil {
		return fmt.Errorf("setting %q: %w", name, err)
	}
	cs, ok := s.colors[name]
	if !ok {
		cs = &colorSetting{value: c}
		s.colors[name] = cs
		s.order = append(s.order, name)
	}
	if onChange != nil {
		cs.onChange = append(cs.onChange, onChange)
		onChange(cs.value)
	}
	return nil
}

// SetColor parses hex, stores it, and fires the change callbacks.
func (s *Settings) SetColor(name, hex string) error {
	cs, ok := s.colors[name]
	if !ok {
		return fmt.Errorf("%w %q", ErrUnknownSetting, name)
	}
	c, err := ParseHex(hex)
	if err != nil {
		return fmt.Errorf("setting %q: %w", name, err)
	}
	cs.value = c
	for _, fn := range cs.onChange {
		fn(c)
	}
	return nil
}

// Color returns the current value of a named color.
func (s *Settings) Color(name string) (Color, bool) {
	cs, ok := s.colors[name]
	if !ok {
		return Color{}, false
	}
	return cs.value, true
}

// Names returns the registered names in registration order.
func (s *Settings) Names() []string {
	return append([]string(nil), s.order...)
}
