package launchpad

import "fmt"

const (
	// IntensityMin is the lowest intensity of a LED channel (off)
	IntensityMin = 0
	// IntensityMax is the highest intensity of a LED channel
	IntensityMax = 3
)

// Color is the combination of the red and green LED intensities of a pad or button
type Color struct {
	red, green uint8
}

var colorTable = func() (t [IntensityMax + 1][IntensityMax + 1]Color) {
	for r := range t {
		for g := range t[r] {
			t[r][g] = Color{red: uint8(r), green: uint8(g)}
		}
	}
	return t
}()

// Most used colors
var (
	Black  = colorTable[0][0]
	Red    = colorTable[3][0]
	Green  = colorTable[0][3]
	Orange = colorTable[3][2]
	Amber  = colorTable[3][3]
	Yellow = colorTable[2][3]
)

// ColorOf returns the color with the given red and green intensities
func ColorOf(red, green int) (Color, error) {
	if red < IntensityMin || red > IntensityMax {
		return Color{}, &ArgumentError{
			Arg:    "red",
			Value:  red,
			Reason: fmt.Sprintf("intensity must be in [%d..%d]", IntensityMin, IntensityMax),
		}
	}
	if green < IntensityMin || green > IntensityMax {
		return Color{}, &ArgumentError{
			Arg:    "green",
			Value:  green,
			Reason: fmt.Sprintf("intensity must be in [%d..%d]", IntensityMin, IntensityMax),
		}
	}
	return colorTable[red][green], nil
}

// MustColorOf is like ColorOf but panics on invalid intensities
func MustColorOf(red, green int) Color {
	c, err := ColorOf(red, green)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Color) Red() int { return int(c.red) }

func (c Color) Green() int { return int(c.green) }

func (c Color) String() string {
	return fmt.Sprintf("Color[r=%d,g=%d]", c.red, c.green)
}
