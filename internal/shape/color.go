package shape

import "fmt"

// Color is one of the fixed drawing colors. The zero value is Black.
type Color uint8

const (
	Black Color = iota
	Blue
	Red
	Green
	Yellow
	Cyan
)

var colorNames = [...]string{
	Black:  "black",
	Blue:   "blue",
	Red:    "red",
	Green:  "green",
	Yellow: "yellow",
	Cyan:   "cyan",
}

// Colors lists every valid color in declaration order.
func Colors() []Color {
	return []Color{Black, Blue, Red, Green, Yellow, Cyan}
}

func (c Color) Valid() bool {
	return int(c) < len(colorNames)
}

func (c Color) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Color(%d)", uint8(c))
	}
	return colorNames[c]
}

// ParseColor returns the color with the given lower-case name.
func ParseColor(name string) (Color, error) {
	for c, n := range colorNames {
		if n == name {
			return Color(c), nil
		}
	}
	return Black, fmt.Errorf("%w: %q", ErrInvalidColor, name)
}

func checkColor(c Color) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidColor, c)
	}
	return nil
}
