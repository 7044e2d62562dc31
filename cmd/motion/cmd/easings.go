package cmd

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-drift/motion/pkg/easing"
)

func init() {
	RegisterCommand(&Command{
		Name:  "easings",
		Short: "List easing functions",
		Long: `List every easing function known to the engine, with a sparkline of
its curve. Names are case-insensitive wherever an easing is accepted.`,
		Usage: "motion easings",
		Run:   runEasings,
	})
}

func runEasings(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument %q", args[0])
	}
	reg := easing.Default()
	for _, name := range reg.Names() {
		fn, err := reg.Get(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "  %-18s %s\n", name, sparkline(fn, 16))
	}
	return nil
}

var sparks = []rune("▁▂▃▄▅▆▇█")

// sparkline samples fn at n points and draws them with block characters,
// scaled to the curve's own range so overshoot stays visible.
func sparkline(fn easing.Func, n int) string {
	values := make([]float64, n)
	lo, hi := 0.0, 1.0
	for i := range values {
		v := fn(float64(i)/float64(n-1), 0, 1, 1)
		values[i] = v
		lo, hi = min(lo, v), max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		level := int(math.Round((v - lo) / (hi - lo) * float64(len(sparks)-1)))
		b.WriteRune(sparks[min(max(level, 0), len(sparks)-1)])
	}
	return b.String()
}
