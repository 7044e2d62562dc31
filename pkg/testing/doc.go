// Package testing provides deterministic test tooling for the tween engine.
//
// # Quick Start
//
// Create a tester, start a tween, and advance fake time:
//
//	func TestFade(t *testing.T) {
//	    tester := motiontest.NewTesterWithT(t)
//	    box := tester.Target("box", map[string]any{"opacity": 0.0})
//
//	    _, err := tester.Engine().Animate(box, tween.Spec{"opacity": 1.0},
//	        tween.Options{Duration: time.Second, Easing: "linear"})
//	    if err != nil {
//	        t.Fatal(err)
//	    }
//
//	    tester.Pump()                       // first tick at t=0
//	    tester.Advance(500 * time.Millisecond)
//	    if got := box.Get("opacity"); got != 0.5 {
//	        t.Errorf("opacity = %v", got)
//	    }
//	}
//
// # Snapshot Testing
//
// Every write made to targets created with [Tester.Target] is recorded per
// frame. Compare the trace against a golden file:
//
//	tester.Trace().MatchesFile(t, "testdata/fade.trace.json")
//
// Update golden files with:
//
//	MOTION_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import motiontest "github.com/go-drift/motion/pkg/testing"
package testing
