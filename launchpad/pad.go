package launchpad

import "fmt"

const (
	// PadMin is the lowest pad coordinate on either axis
	PadMin = 0
	// PadMax is the highest pad coordinate on either axis
	PadMax = 7
)

// Pad is one of the 64 square pads of the grid, addressed from the top-left corner
type Pad struct {
	x, y uint8
}

var padTable = func() (t [PadMax + 1][PadMax + 1]Pad) {
	for x := range t {
		for y := range t[x] {
			t[x][y] = Pad{x: uint8(x), y: uint8(y)}
		}
	}
	return t
}()

// PadAt returns the pad at the given coordinates
func PadAt(x, y int) (Pad, error) {
	if x < PadMin || x > PadMax || y < PadMin || y > PadMax {
		return Pad{}, &ArgumentError{
			Arg:    "pad",
			Value:  fmt.Sprintf("(%d,%d)", x, y),
			Reason: fmt.Sprintf("coordinates must be in [%d..%d] on both axes", PadMin, PadMax),
		}
	}
	return padTable[x][y], nil
}

// MustPadAt is like PadAt but panics on invalid coordinates
func MustPadAt(x, y int) Pad {
	p, err := PadAt(x, y)
	if err != nil {
		panic(err)
	}
	return p
}

// Pads returns all pads in row-major order, starting at the top-left corner
func Pads() []Pad {
	pads := make([]Pad, 0, (PadMax+1)*(PadMax+1))
	for y := PadMin; y <= PadMax; y++ {
		for x := PadMin; x <= PadMax; x++ {
			pads = append(pads, padTable[x][y])
		}
	}
	return pads
}

func (p Pad) X() int { return int(p.x) }

func (p Pad) Y() int { return int(p.y) }

func (p Pad) String() string {
	return fmt.Sprintf("Pad[%d,%d]", p.x, p.y)
}
