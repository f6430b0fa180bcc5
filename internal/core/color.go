package core

// Color is a foreground color tag for a screen cell. The platform layer maps
// tags to actual terminal colors; the simulation side only deals in tags.
type Color uint8

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

// ansi256 maps color tags to ANSI 256-color palette indices. The zero entry
// is unused: ColorDefault renders unstyled.
var ansi256 = [...]string{
	ColorRed:           "1",
	ColorGreen:         "2",
	ColorYellow:        "3",
	ColorBlue:          "4",
	ColorMagenta:       "5",
	ColorCyan:          "6",
	ColorWhite:         "7",
	ColorBrightRed:     "9",
	ColorBrightGreen:   "10",
	ColorBrightYellow:  "11",
	ColorBrightBlue:    "12",
	ColorBrightMagenta: "13",
	ColorBrightCyan:    "14",
	ColorBrightWhite:   "15",
	ColorOrange:        "208",
	ColorGray:          "245",
}

// ANSI256 returns the ANSI 256-color palette index as a string, or "" for
// ColorDefault and unknown tags.
func (c Color) ANSI256() string {
	if int(c) >= len(ansi256) {
		return ""
	}
	return ansi256[c]
}
