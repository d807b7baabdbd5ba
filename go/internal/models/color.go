package models

// Color identifies a button and the LED next to it. Red and Blue double as
// player identifiers; Yellow is the control button.
type Color string

const (
	ColorRed    Color = "Red"
	ColorYellow Color = "Yellow"
	ColorBlue   Color = "Blue"
)

// Colors lists every button in wiring order.
var Colors = []Color{ColorRed, ColorYellow, ColorBlue}

func (c Color) String() string {
	return string(c)
}

// IsPlayer reports whether the color belongs to one of the two players.
func (c Color) IsPlayer() bool {
	return c == ColorRed || c == ColorBlue
}

// Opponent returns the other player's color. Yellow has no opponent.
func (c Color) Opponent() Color {
	switch c {
	case ColorRed:
		return ColorBlue
	case ColorBlue:
		return ColorRed
	default:
		return c
	}
}
