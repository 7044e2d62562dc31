package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Space is the component space of a [Color].
type Space int

const (
	// RGB components are red, green, blue, alpha.
	RGB Space = iota
	// HSL components are hue (fraction of a turn), saturation, lightness, alpha.
	HSL
)

// Color is a color with four components normalized to [0, 1].
type Color struct {
	Space Space
	C     [4]float64
}

// RGBA returns an RGB color from normalized components.
func RGBA(r, g, b, a float64) Color {
	return Color{Space: RGB, C: [4]float64{r, g, b, a}}
}

// HSLA returns an HSL color from normalized components.
func HSLA(h, s, l, a float64) Color {
	return Color{Space: HSL, C: [4]float64{h, s, l, a}}
}

// In converts c into the given space. Alpha is carried over unchanged.
func (c Color) In(space Space) Color {
	if c.Space == space {
		return c
	}
	switch space {
	case HSL:
		h, s, l := colorful.Color{R: c.C[0], G: c.C[1], B: c.C[2]}.Hsl()
		return HSLA(h/360, s, l, c.C[3])
	default:
		rgb := colorful.Hsl(c.C[0]*360, c.C[1], c.C[2]).Clamped()
		return RGBA(rgb.R, rgb.G, rgb.B, c.C[3])
	}
}

// RGBA implements image/color.Color with alpha-premultiplied 16-bit
// channels.
func (c Color) RGBA() (r, g, b, a uint32) {
	rgb := c.In(RGB).C
	alpha := clamp01(rgb[3])
	ch := func(v float64) uint32 {
		return uint32(clamp01(v)*alpha*0xffff + 0.5)
	}
	return ch(rgb[0]), ch(rgb[1]), ch(rgb[2]), uint32(alpha*0xffff + 0.5)
}

// String serializes the color: opaque RGB as #rrggbb, translucent RGB as
// rgba(), HSL as hsl() or hsla().
func (c Color) String() string {
	a := clamp01(c.C[3])
	if c.Space == HSL {
		h := formatFixed(clamp01(c.C[0])*360, 2)
		s := formatFixed(clamp01(c.C[1])*100, 2)
		l := formatFixed(clamp01(c.C[2])*100, 2)
		if a >= 1 {
			return fmt.Sprintf("hsl(%s, %s%%, %s%%)", h, s, l)
		}
		return fmt.Sprintf("hsla(%s, %s%%, %s%%, %s)", h, s, l, formatFixed(a, 3))
	}
	rgb := colorful.Color{R: c.C[0], G: c.C[1], B: c.C[2]}.Clamped()
	if a >= 1 {
		return rgb.Hex()
	}
	r, g, b := rgb.RGB255()
	return fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, formatFixed(a, 3))
}

func formatFixed(v float64, places int) string {
	p := math.Pow(10, float64(places))
	return strconv.FormatFloat(math.Round(v*p)/p, 'f', -1, 64)
}

// looksLikeColor reports whether s is written in one of the color notations.
// It does not validate the notation.
func looksLikeColor(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.HasPrefix(s, "#") || s == "transparent" {
		return true
	}
	for _, fn := range []string{"rgb(", "rgba(", "hsl(", "hsla("} {
		if strings.HasPrefix(s, fn) {
			return true
		}
	}
	return false
}

// ParseColor parses #rgb, #rgba, #rrggbb, #rrggbbaa, rgb(), rgba(), hsl(),
// hsla() and the keyword transparent.
func ParseColor(s string) (Color, error) {
	in := strings.ToLower(strings.TrimSpace(s))
	switch {
	case in == "transparent":
		return RGBA(0, 0, 0, 0), nil
	case strings.HasPrefix(in, "#"):
		c, ok := parseHex(in[1:])
		if !ok {
			return Color{}, fmt.Errorf("%w: malformed hex color %q", ErrInvalidValue, s)
		}
		return c, nil
	}

	open := strings.IndexByte(in, '(')
	if open < 0 || !strings.HasSuffix(in, ")") {
		return Color{}, fmt.Errorf("%w: malformed color %q", ErrInvalidValue, s)
	}
	fn := in[:open]
	args := splitArgs(in[open+1 : len(in)-1])

	var c Color
	var err error
	switch fn {
	case "rgb", "rgba":
		c, err = parseRGBArgs(args)
	case "hsl", "hsla":
		c, err = parseHSLArgs(args)
	default:
		err = fmt.Errorf("unknown color function %q", fn)
	}
	if err != nil {
		return Color{}, fmt.Errorf("%w: color %q: %v", ErrInvalidValue, s, err)
	}
	return c, nil
}

func parseHex(h string) (Color, bool) {
	switch len(h) {
	case 3, 4:
		var c [4]float64
		c[3] = 1
		for i := 0; i < len(h); i++ {
			n, err := strconv.ParseUint(h[i:i+1], 16, 8)
			if err != nil {
				return Color{}, false
			}
			c[i] = float64(n*17) / 255
		}
		return Color{Space: RGB, C: c}, true
	case 6, 8:
		var c [4]float64
		c[3] = 1
		for i := 0; i < len(h); i += 2 {
			n, err := strconv.ParseUint(h[i:i+2], 16, 8)
			if err != nil {
				return Color{}, false
			}
			c[i/2] = float64(n) / 255
		}
		return Color{Space: RGB, C: c}, true
	default:
		return Color{}, false
	}
}

func splitArgs(s string) []string {
	s = strings.ReplaceAll(s, "/", " ")
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

func parseRGBArgs(args []string) (Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("want 3 or 4 components, got %d", len(args))
	}
	c := RGBA(0, 0, 0, 1)
	for i := 0; i < 3; i++ {
		v, err := parseChannel(args[i], 255)
		if err != nil {
			return Color{}, err
		}
		c.C[i] = v
	}
	if len(args) == 4 {
		a, err := parseChannel(args[3], 1)
		if err != nil {
			return Color{}, err
		}
		c.C[3] = a
	}
	return c, nil
}

func parseHSLArgs(args []string) (Color, error) {
	if len(args) != 3 && len(args) != 4 {
		return Color{}, fmt.Errorf("want 3 or 4 components, got %d", len(args))
	}
	hue := strings.TrimSuffix(args[0], "deg")
	h, err := strconv.ParseFloat(hue, 64)
	if err != nil {
		return Color{}, fmt.Errorf("bad hue %q", args[0])
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := HSLA(h/360, 0, 0, 1)
	for i := 1; i < 3; i++ {
		if !strings.HasSuffix(args[i], "%") {
			return Color{}, fmt.Errorf("saturation and lightness must be percentages, got %q", args[i])
		}
		v, err := parseChannel(args[i], 100)
		if err != nil {
			return Color{}, err
		}
		c.C[i] = v
	}
	if len(args) == 4 {
		a, err := parseChannel(args[3], 1)
		if err != nil {
			return Color{}, err
		}
		c.C[3] = a
	}
	return c, nil
}

// parseChannel normalizes a component written either as a percentage or as a
// number on the 0..scale range.
func parseChannel(s string, scale float64) (float64, error) {
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, fmt.Errorf("bad component %q", s)
		}
		return clamp01(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("bad component %q", s)
	}
	return clamp01(v / scale), nil
}
