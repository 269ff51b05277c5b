package resolution

import (
	"fmt"
	"strconv"
	"strings"
)

// pixelsPerMegapixel is the divisor behind the "MP" annotations. The published
// tables count a megapixel as 1024*1024 pixels (768x768 reads 0.56MP).
const pixelsPerMegapixel = 1024 * 1024

func (r Ratio) String() string {
	return fmt.Sprintf("%d:%d", r.Width, r.Height)
}

// Reciprocal swaps the two sides, "16:9" becomes "9:16".
func (r Ratio) Reciprocal() Ratio {
	return Ratio{Width: r.Height, Height: r.Width}
}

// ParseRatio parses a "W:H" key.
func ParseRatio(s string) (Ratio, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Ratio{}, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}

	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return Ratio{}, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}

	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return Ratio{}, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}

	return Ratio{Width: width, Height: height}, nil
}

func (p Preset) Area() int {
	return p.Width * p.Height
}

// Swap returns the preset rotated by 90 degrees.
func (p Preset) Swap() Preset {
	return Preset{Width: p.Height, Height: p.Width}
}

// String renders the dropdown label, e.g. "1024x1024 ( 1MP )".
func (p Preset) String() string {
	return fmt.Sprintf("%dx%d ( %sMP )", p.Width, p.Height, FormatMegapixels(p.Width, p.Height))
}

// FormatMegapixels rounds width*height to hundredths of a megapixel (half up)
// and drops trailing zeros: 0.25, 0.5, 1, 1.56.
func FormatMegapixels(width, height int) string {
	pixels := int64(width) * int64(height)
	hundredths := (pixels*200 + pixelsPerMegapixel) / (2 * pixelsPerMegapixel)

	whole, frac := hundredths/100, hundredths%100
	switch {
	case frac == 0:
		return strconv.FormatInt(whole, 10)
	case frac%10 == 0:
		return fmt.Sprintf("%d.%d", whole, frac/10)
	default:
		return fmt.Sprintf("%d.%02d", whole, frac)
	}
}

// ParsePreset reads the width and height back out of a dropdown label. The
// megapixel annotation is optional and ignored.
func ParsePreset(label string) (Preset, error) {
	dims := strings.TrimSpace(label)
	if i := strings.Index(dims, "("); i >= 0 {
		dims = strings.TrimSpace(dims[:i])
	}

	w, h, ok := strings.Cut(strings.ToLower(dims), "x")
	if !ok {
		return Preset{}, fmt.Errorf("%w: %q", ErrInvalidPreset, label)
	}

	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return Preset{}, fmt.Errorf("%w: %q", ErrInvalidPreset, label)
	}

	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return Preset{}, fmt.Errorf("%w: %q", ErrInvalidPreset, label)
	}

	return Preset{Width: width, Height: height}, nil
}
