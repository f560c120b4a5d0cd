// Package trolleyyard coordinates pointer interaction with a scene of
// medication trolleys, their drawers, and canisters with hinged doors.
//
// # Quick start
//
//	layout, err := trolleyyard.LoadLayoutFile("yard.toml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	s, err := trolleyyard.NewSession(layout, 1280, 720)
//	if err != nil {
//		log.Fatal(err)
//	}
//	s.Click(640, 200) // pulls out whatever trolley is under the pointer
//	s.Advance(1)      // runs one second of animation
//
// The ebitenview package renders a Session's yard in a window; the
// examples/yard program wires the two together.
//
// # Units and state
//
// Every interactive thing is a [Unit] with a binary logical state and a
// separate animated Value. [Unit.RequestToggle] flips the state at once;
// only the [Animator] writes Value as it eases toward the new target. A
// drawer's position includes the offset of its trolley bay, so pulling a
// trolley out carries its drawers with it.
//
// # Picking
//
// Each unit owns one or more [Region] boxes registered in a [Catalog].
// A click is turned into a [Ray] through the [Camera], intersected with
// every region, and the nearest hit wins regardless of kind. Regions
// follow their unit's animated value, so hit testing matches what is
// drawn mid-animation.
//
// # Rules
//
// The [Coordinator] owns the active trolley and enforces:
//
//   - At most one trolley bay is out at a time. Pulling out a second one is
//     rejected until the first has been pushed back in and finished
//     retracting.
//   - A drawer only opens or closes while its bay is out (see
//     [Config.RequireBayOutForDrawer]).
//   - Canister doors toggle unconditionally.
//
// Rejected toggles return an error wrapping [ErrPreconditionViolation] and
// change nothing. Clicks that hit nothing return [ErrInvalidPick].
//
// # Animation
//
// Animations are [github.com/tanema/gween] tweens keyed by unit and
// property. A new request for the same key supersedes the running one,
// starting from the current value; the superseded task's completion
// callback never fires. Easing names accept both gween style ("inOutCubic")
// and GSAP style ("power2.inOut").
//
// # Configuration
//
// [Layout] is read from TOML with unknown keys rejected. Its [interaction]
// table fills [Config]. Named colors live in [Settings], whose change
// callbacks repaint the trolley faces.
//
// # Debugging
//
// [Coordinator.SetDebugMode] logs rejected toggles and catalog rebuilds to
// stderr and panics if more than one bay is ever out. [TestRunner] replays
// JSON scripts of clicks, waits, and expectations against a [Session].
package trolleyyard
