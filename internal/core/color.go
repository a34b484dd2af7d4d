package core

// Color is the foreground color of a screen cell. The platform maps it to
// an ANSI 256-color code or an RGB value.
type Color uint8

// Palette used by the game and the HUD.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightYellow
	ColorBrightCyan
	ColorOrange
	ColorGray
)

// RGB returns the 8-bit components used by graphical frontends.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case ColorRed:
		return 0xcc, 0x33, 0x33
	case ColorGreen:
		return 0x33, 0xaa, 0x44
	case ColorYellow:
		return 0xdd, 0xbb, 0x22
	case ColorBlue:
		return 0x33, 0x66, 0xcc
	case ColorMagenta:
		return 0xaa, 0x44, 0xaa
	case ColorCyan:
		return 0x33, 0xaa, 0xaa
	case ColorBrightRed:
		return 0xff, 0x55, 0x55
	case ColorBrightYellow:
		return 0xff, 0xee, 0x55
	case ColorBrightCyan:
		return 0x66, 0xff, 0xff
	case ColorOrange:
		return 0xff, 0x88, 0x00
	case ColorGray:
		return 0x88, 0x88, 0x88
	default:
		return 0xee, 0xee, 0xee
	}
}

// Cell is one character of a Screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blankCell = Cell{Rune: ' ', Color: ColorDefault}
