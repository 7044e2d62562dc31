package cmd

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/go-drift/motion/pkg/easing"
	"github.com/go-drift/motion/pkg/value"
)

func init() {
	RegisterCommand(&Command{
		Name:  "plot",
		Short: "Render an easing curve to PNG",
		Long: `Render an easing curve to a PNG image.

The horizontal axis is normalized time and the vertical axis is progress.
Guide lines mark progress 0 and 1; curves that overshoot (back, elastic)
are scaled to fit.

Flags:
  -o FILE    Output file (default: <easing>.png)
  -size N    Image width and height in pixels, 64 to 4096 (default: 256)`,
		Usage: "motion plot <easing> [-o FILE] [-size N]",
		Run:   runPlot,
	})
}

var (
	plotBackground = mustColor("#ffffff")
	plotGuide      = mustColor("#d1d5db")
	plotCurve      = mustColor("#2563eb")
	plotLabel      = mustColor("#111827")
)

func mustColor(s string) value.Color {
	c, err := value.ParseColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func runPlot(args []string) error {
	var name, out string
	size := 256
	for i := 0; i < len(args); i++ {
		switch arg := args[i]; arg {
		case "-o", "--output":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a file path", arg)
			}
			out = args[i+1]
			i++
		case "-size", "--size":
			if i+1 >= len(args) {
				return fmt.Errorf("%s requires a number", arg)
			}
			n, err := strconv.Atoi(args[i+1])
			if err != nil || n < 64 || n > 4096 {
				return fmt.Errorf("invalid size %q (want 64 to 4096)", args[i+1])
			}
			size = n
			i++
		default:
			if strings.HasPrefix(arg, "-") {
				return fmt.Errorf("unknown flag %q", arg)
			}
			if name != "" {
				return fmt.Errorf("unexpected argument %q", arg)
			}
			name = arg
		}
	}
	if name == "" {
		return fmt.Errorf("easing name is required\n\nUsage: motion plot <easing>")
	}
	if out == "" {
		out = name + ".png"
	}

	fn, err := easing.Default().Get(name)
	if err != nil {
		return err
	}
	if err := writePNG(out, renderPlot(fn, name, size)); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s\n", out)
	return nil
}

// renderPlot draws fn over normalized time into a size x size image.
func renderPlot(fn easing.Func, label string, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(plotBackground), image.Point{}, draw.Src)

	samples := make([]float64, size)
	lo, hi := 0.0, 1.0
	for i := range samples {
		v := fn(float64(i)/float64(size-1), 0, 1, 1)
		samples[i] = v
		lo, hi = min(lo, v), max(hi, v)
	}

	margin := float32(size) / 8
	left, right := margin, float32(size)-margin
	top, bottom := margin, float32(size)-margin
	px := func(t float64) float32 { return value.Lerp(left, right, t) }
	py := func(v float64) float32 { return value.Lerp(bottom, top, (v-lo)/(hi-lo)) }

	z := vector.NewRasterizer(size, size)
	z.DrawOp = draw.Over
	for _, v := range []float64{0, 1} {
		stroke(z, px(0), py(v), px(1), py(v), 1)
	}
	z.Draw(img, img.Bounds(), image.NewUniform(plotGuide), image.Point{})

	z.Reset(size, size)
	z.DrawOp = draw.Over
	width := max(float32(size)/128, 1.5)
	for i := 1; i < len(samples); i++ {
		t0 := float64(i-1) / float64(size-1)
		t1 := float64(i) / float64(size-1)
		stroke(z, px(t0), py(samples[i-1]), px(t1), py(samples[i]), width)
	}
	z.Draw(img, img.Bounds(), image.NewUniform(plotCurve), image.Point{})

	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(plotLabel),
		Face: face,
		Dot:  fixed.P(int(left), int(margin)/2+face.Ascent/2),
	}
	d.DrawString(label)
	return img
}

// stroke adds the segment (x0, y0)-(x1, y1) to z as a quad of the given
// width.
func stroke(z *vector.Rasterizer, x0, y0, x1, y1, width float32) {
	dx, dy := x1-x0, y1-y0
	n := float32(math.Hypot(float64(dx), float64(dy)))
	if n == 0 {
		return
	}
	nx, ny := -dy/n*width/2, dx/n*width/2
	z.MoveTo(x0+nx, y0+ny)
	z.LineTo(x1+nx, y1+ny)
	z.LineTo(x1-nx, y1-ny)
	z.LineTo(x0-nx, y0-ny)
	z.ClosePath()
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}
