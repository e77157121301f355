package core

// Color is a palette index. Terminal hosts map it to ANSI codes and pixel
// hosts to RGB, so games pick from a small shared palette.
type Color uint8

// Palette entries.
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

type rgb struct{ r, g, b uint8 }

var palette = [...]struct {
	name string
	rgb  rgb
}{
	ColorDefault:       {"default", rgb{0xe0, 0xe0, 0xe0}},
	ColorRed:           {"red", rgb{0xcd, 0x31, 0x31}},
	ColorGreen:         {"green", rgb{0x0d, 0xbc, 0x79}},
	ColorYellow:        {"yellow", rgb{0xe5, 0xe5, 0x10}},
	ColorBlue:          {"blue", rgb{0x24, 0x72, 0xc8}},
	ColorMagenta:       {"magenta", rgb{0xbc, 0x3f, 0xbc}},
	ColorCyan:          {"cyan", rgb{0x11, 0xa8, 0xcd}},
	ColorWhite:         {"white", rgb{0xe5, 0xe5, 0xe5}},
	ColorBrightRed:     {"bright-red", rgb{0xf1, 0x4c, 0x4c}},
	ColorBrightGreen:   {"bright-green", rgb{0x23, 0xd1, 0x8b}},
	ColorBrightYellow:  {"bright-yellow", rgb{0xf5, 0xf5, 0x43}},
	ColorBrightBlue:    {"bright-blue", rgb{0x3b, 0x8e, 0xea}},
	ColorBrightMagenta: {"bright-magenta", rgb{0xd6, 0x70, 0xd6}},
	ColorBrightCyan:    {"bright-cyan", rgb{0x29, 0xb8, 0xdb}},
	ColorBrightWhite:   {"bright-white", rgb{0xff, 0xff, 0xff}},
	ColorOrange:        {"orange", rgb{0xff, 0x87, 0x00}},
	ColorGray:          {"gray", rgb{0x8a, 0x8a, 0x8a}},
}

// Valid reports whether c is a palette entry.
func (c Color) Valid() bool {
	return int(c) < len(palette)
}

// RGB returns the color's components. Unknown colors map to ColorDefault.
func (c Color) RGB() (r, g, b uint8) {
	if !c.Valid() {
		c = ColorDefault
	}
	v := palette[c].rgb
	return v.r, v.g, v.b
}

// String returns the palette name.
func (c Color) String() string {
	if !c.Valid() {
		return "unknown"
	}
	return palette[c].name
}
