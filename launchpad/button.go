package launchpad

import "fmt"

const (
	// ButtonMin is the lowest button coordinate on either side
	ButtonMin = 0
	// ButtonMax is the highest button coordinate on either side
	ButtonMax = 7
)

// Button is one of the round buttons, either on the top row or in the right column.
// Top buttons are numbered left to right, right buttons top to bottom.
type Button struct {
	right bool
	c     uint8
}

var (
	Up      = Button{c: 0}
	Down    = Button{c: 1}
	Left    = Button{c: 2}
	Right   = Button{c: 3}
	Session = Button{c: 4}
	User1   = Button{c: 5}
	User2   = Button{c: 6}
	Mixer   = Button{c: 7}

	Vol     = Button{right: true, c: 0}
	Pan     = Button{right: true, c: 1}
	SndA    = Button{right: true, c: 2}
	SndB    = Button{right: true, c: 3}
	Stop    = Button{right: true, c: 4}
	TrackOn = Button{right: true, c: 5}
	Solo    = Button{right: true, c: 6}
	Arm     = Button{right: true, c: 7}
)

var (
	topButtons   = [...]Button{Up, Down, Left, Right, Session, User1, User2, Mixer}
	rightButtons = [...]Button{Vol, Pan, SndA, SndB, Stop, TrackOn, Solo, Arm}

	topNames   = [...]string{"UP", "DOWN", "LEFT", "RIGHT", "SESSION", "USER_1", "USER_2", "MIXER"}
	rightNames = [...]string{"VOL", "PAN", "SND_A", "SND_B", "STOP", "TRACK_ON", "SOLO", "ARM"}
)

func buttonAt(right bool, c int) (Button, error) {
	if c < ButtonMin || c > ButtonMax {
		return Button{}, &ArgumentError{
			Arg:    "button",
			Value:  c,
			Reason: fmt.Sprintf("coordinate must be in [%d..%d]", ButtonMin, ButtonMax),
		}
	}
	if right {
		return rightButtons[c], nil
	}
	return topButtons[c], nil
}

// ButtonAtTop returns the top button at column c
func ButtonAtTop(c int) (Button, error) {
	return buttonAt(false, c)
}

// ButtonAtRight returns the right button at row c
func ButtonAtRight(c int) (Button, error) {
	return buttonAt(true, c)
}

// MustButtonAtTop is like ButtonAtTop but panics on an invalid coordinate
func MustButtonAtTop(c int) Button {
	b, err := ButtonAtTop(c)
	if err != nil {
		panic(err)
	}
	return b
}

// MustButtonAtRight is like ButtonAtRight but panics on an invalid coordinate
func MustButtonAtRight(c int) Button {
	b, err := ButtonAtRight(c)
	if err != nil {
		panic(err)
	}
	return b
}

// TopButtons returns the top buttons from left to right
func TopButtons() []Button {
	return append([]Button(nil), topButtons[:]...)
}

// RightButtons returns the right buttons from top to bottom
func RightButtons() []Button {
	return append([]Button(nil), rightButtons[:]...)
}

func (b Button) IsTop() bool { return !b.right }

func (b Button) IsRight() bool { return b.right }

// Coordinate is the column of a top button or the row of a right button
func (b Button) Coordinate() int { return int(b.c) }

// Name returns the label printed on the button, e.g. "SND_A"
func (b Button) Name() string {
	if b.right {
		return rightNames[b.c]
	}
	return topNames[b.c]
}

func (b Button) String() string {
	side := "top"
	if b.right {
		side = "right"
	}
	return fmt.Sprintf("Button[%s(%s,%d)]", b.Name(), side, b.c)
}
