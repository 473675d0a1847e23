package launchpad

import "fmt"

const (
	brightnessMinLevel = 0
	brightnessMaxLevel = 15
	scrollSpeedMin     = 1
	scrollSpeedMax     = 7
)

// Brightness is the global brightness level of the device, from 0 to 15.
// The zero value is the lowest level.
type Brightness struct {
	level uint8
}

var brightnessTable = func() (t [brightnessMaxLevel + 1]Brightness) {
	for i := range t {
		t[i] = Brightness{level: uint8(i)}
	}
	return t
}()

var (
	BrightnessMin = brightnessTable[brightnessMinLevel]
	BrightnessMax = brightnessTable[brightnessMaxLevel]
)

// BrightnessOf returns the brightness for the given level
func BrightnessOf(level int) (Brightness, error) {
	if level < brightnessMinLevel || level > brightnessMaxLevel {
		return Brightness{}, &ArgumentError{
			Arg:    "brightness",
			Value:  level,
			Reason: fmt.Sprintf("level must be in [%d..%d]", brightnessMinLevel, brightnessMaxLevel),
		}
	}
	return brightnessTable[level], nil
}

func (b Brightness) Level() int { return int(b.level) }

// More returns the next brighter level, or b itself at the maximum
func (b Brightness) More() Brightness {
	if b.level < brightnessMaxLevel {
		return brightnessTable[b.level+1]
	}
	return b
}

// Less returns the next darker level, or b itself at the minimum
func (b Brightness) Less() Brightness {
	if b.level > brightnessMinLevel {
		return brightnessTable[b.level-1]
	}
	return b
}

func (b Brightness) String() string {
	return fmt.Sprintf("Brightness[%d]", b.level)
}

// ScrollSpeed is the speed of scrolling text, from 1 (slowest) to 7.
// The zero value is not a valid speed.
type ScrollSpeed struct {
	speed uint8
}

var scrollSpeedTable = func() (t [scrollSpeedMax - scrollSpeedMin + 1]ScrollSpeed) {
	for i := range t {
		t[i] = ScrollSpeed{speed: uint8(i + scrollSpeedMin)}
	}
	return t
}()

var (
	SpeedMin = scrollSpeedTable[0]
	SpeedMax = scrollSpeedTable[scrollSpeedMax-scrollSpeedMin]
)

// ScrollSpeedOf returns the scroll speed for the given value
func ScrollSpeedOf(speed int) (ScrollSpeed, error) {
	if speed < scrollSpeedMin || speed > scrollSpeedMax {
		return ScrollSpeed{}, &ArgumentError{
			Arg:    "speed",
			Value:  speed,
			Reason: fmt.Sprintf("speed must be in [%d..%d]", scrollSpeedMin, scrollSpeedMax),
		}
	}
	return scrollSpeedTable[speed-scrollSpeedMin], nil
}

func (s ScrollSpeed) Speed() int { return int(s.speed) }

// Valid reports whether s was obtained from ScrollSpeedOf or is one of the named speeds
func (s ScrollSpeed) Valid() bool {
	return s.speed >= scrollSpeedMin && s.speed <= scrollSpeedMax
}

func (s ScrollSpeed) String() string {
	return fmt.Sprintf("ScrollSpeed[%d]", s.speed)
}
