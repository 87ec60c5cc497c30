package core

// Color represents a foreground color for a screen cell.
// Platforms map these onto ANSI colors (terminal) or RGBA (window).
type Color uint8

// Predefined colors for world elements.
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
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// RGB returns an approximate 8-bit RGB triple for the color.
func (c Color) RGB() (r, g, b uint8) {
	switch c {
	case ColorRed:
		return 0xcc, 0x33, 0x33
	case ColorGreen:
		return 0x33, 0x99, 0x44
	case ColorYellow:
		return 0xdd, 0xbb, 0x22
	case ColorBlue:
		return 0x33, 0x55, 0xcc
	case ColorMagenta:
		return 0xaa, 0x44, 0xaa
	case ColorCyan:
		return 0x22, 0xaa, 0xbb
	case ColorWhite:
		return 0xdd, 0xdd, 0xdd
	case ColorBrightRed:
		return 0xff, 0x55, 0x55
	case ColorBrightGreen:
		return 0x66, 0xdd, 0x66
	case ColorBrightYellow:
		return 0xff, 0xee, 0x55
	case ColorBrightBlue:
		return 0x66, 0x88, 0xff
	case ColorBrightMagenta:
		return 0xee, 0x77, 0xee
	case ColorBrightCyan:
		return 0x66, 0xee, 0xff
	case ColorBrightWhite:
		return 0xff, 0xff, 0xff
	case ColorOrange:
		return 0xff, 0x99, 0x33
	case ColorGray:
		return 0x77, 0x77, 0x77
	default:
		return 0xbb, 0xbb, 0xbb
	}
}
