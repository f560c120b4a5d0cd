package trolleyyard

import (
	"encoding/json"
	"fmt"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	Unit    string  `json:"unit,omitempty"`
	Part    string  `json:"part,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	State   string  `json:"state,omitempty"`
	Active  *string `json:"active,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// StepResult records what one script step did.
type StepResult struct {
	Action string
	Label  string
	Unit   *Unit // toggled unit for click steps, nil otherwise
	Err    error // rejection or failed expectation
}

// TestRunner replays a scripted sequence of clicks, animation time, and
// state expectations against a Session.
//
// Supported actions:
//
//	{"action": "click", "x": 320, "y": 200}
//	{"action": "click_unit", "unit": "trolley-1/bay", "part": "tray/front"}
//	{"action": "advance", "seconds": 1.0}
//	{"action": "wait", "frames": 30}
//	{"action": "expect", "unit": "trolley-1/bay", "state": "out", "active": "trolley-1/bay"}
//
// An "active" of "" expects no active trolley.
type TestRunner struct {
	steps   []testStep
	cursor  int
	results []StepResult
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to run against a Session.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "click_unit", "advance", "wait", "expect":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.cursor >= len(r.steps)
}

// Results returns the results of the steps executed so far.
func (r *TestRunner) Results() []StepResult {
	return r.results
}

// Run executes the remaining steps. Rejected clicks are recorded in the
// results and do not stop the run; a failed expectation does.
func (r *TestRunner) Run(s *Session) error {
	for !r.Done() {
		if err := r.step(s); err != nil {
			return err
		}
	}
	return nil
}

// step executes one step.
func (r *TestRunner) step(s *Session) error {
	st := r.steps[r.cursor]
	r.cursor++
	res := StepResult{Action: st.Action, Label: st.Label}

	switch st.Action {
	case "click":
		u, err := s.Click(st.X, st.Y)
		if err == nil {
			res.Unit = u
		}
		res.Err = err
	case "click_unit":
		u, err := s.ClickUnit(st.Unit, st.Part)
		if err == nil {
			res.Unit = u
		}
		res.Err = err
	case "advance":
		s.Advance(st.Seconds)
	case "wait":
		s.Advance(float64(st.Frames) / DefaultTPS)
	case "expect":
		res.Err = r.expect(s, st)
		r.results = append(r.results, res)
		if res.Err != nil {
			return fmt.Errorf("step %d (%s): %w", r.cursor-1, st.Label, res.Err)
		}
		return nil
	}
	r.results = append(r.results, res)
	return nil
}

func (r *TestRunner) expect(s *Session, st testStep) error {
	if st.Unit != "" && st.State != "" {
		u, err := s.Unit(st.Unit)
		if err != nil {
			return err
		}
		if got := u.StateName(); got != st.State {
			return fmt.Errorf("unit %q state = %s, want %s", st.Unit, got, st.State)
		}
	}
	if st.Active != nil {
		got := ""
		if a := s.Coordinator.ActiveTrolley(); a != nil {
			got = a.Name
		}
		if got != *st.Active {
			return fmt.Errorf("active trolley = %q, want %q", got, *st.Active)
		}
	}
	return nil
}
