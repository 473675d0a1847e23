package midi

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

// eventLog records events as strings
type eventLog struct {
	events []string
}

func (l *eventLog) add(format string, args ...interface{}) {
	l.events = append(l.events, fmt.Sprintf(format, args...))
}

// protocolLog is a ProtocolListener
type protocolLog struct {
	eventLog
}

func (l *protocolLog) OnNoteOn(note uint8, ts int64) error {
	l.add("note on %d @%d", note, ts)
	return nil
}

func (l *protocolLog) OnNoteOff(note uint8, ts int64) error {
	l.add("note off %d @%d", note, ts)
	return nil
}

func (l *protocolLog) OnButtonOn(note uint8, ts int64) error {
	l.add("button on %d @%d", note, ts)
	return nil
}

func (l *protocolLog) OnButtonOff(note uint8, ts int64) error {
	l.add("button off %d @%d", note, ts)
	return nil
}

func (l *protocolLog) OnTextScrolled(ts int64) error {
	l.add("scrolled @%d", ts)
	return nil
}

// inputLog is a launchpad.Listener
type inputLog struct {
	eventLog
}

func (l *inputLog) OnPadPressed(p launchpad.Pad, ts int64) {
	l.add("pressed %v @%d", p, ts)
}

func (l *inputLog) OnPadReleased(p launchpad.Pad, ts int64) {
	l.add("released %v @%d", p, ts)
}

func (l *inputLog) OnButtonPressed(b launchpad.Button, ts int64) {
	l.add("pressed %v @%d", b, ts)
}

func (l *inputLog) OnButtonReleased(b launchpad.Button, ts int64) {
	l.add("released %v @%d", b, ts)
}

func (l *inputLog) OnTextScrolled(ts int64) {
	l.add("scrolled @%d", ts)
}

var (
	_ ProtocolListener   = (*protocolLog)(nil)
	_ launchpad.Listener = (*inputLog)(nil)
)

func TestReceiverClassification(t *testing.T) {
	log := &protocolLog{}
	r := NewReceiver(log)

	frames := [][]byte{
		{0xB0, 0, 3},
		{0x90, 8, 127},
		{0x90, 0, 0},
		{0xB0, 104, 127},
		{0xB0, 111, 0},
		{0x91, 17, 60},
	}
	for i, f := range frames {
		require.NoError(t, r.Receive(f, int64(i)))
	}

	assert.Equal(t, []string{
		"scrolled @0",
		"note on 8 @1",
		"note off 0 @2",
		"button on 104 @3",
		"button off 111 @4",
		"note on 17 @5",
	}, log.events)
}

func TestReceiverProtocolErrors(t *testing.T) {
	r := NewReceiver(&protocolLog{})

	frames := [][]byte{
		{0xF0, 0x00, 0x20, 0x29, 0xF7},
		{0x80, 0, 0},
		{0xE0, 0, 64},
		{0x90, 1},
		{0xFE},
		nil,
	}
	for _, f := range frames {
		err := r.Receive(f, 0)
		var lerr *launchpad.Error
		require.ErrorAs(t, err, &lerr, "% X", f)
		assert.Equal(t, "receive", lerr.Op)

		var perr *launchpad.ProtocolError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, []byte(f), perr.Message)
	}
}

func TestDispatcherEvents(t *testing.T) {
	log := &inputLog{}
	r := NewReceiver(NewDispatcher(log))

	frames := [][]byte{
		{0xB0, 0, 3},
		{0x90, 8, 127},
		{0x90, 8, 0},
		{0x90, 0, 0},
		{0x90, 0x77, 127},
		{0xB0, 104, 127},
		{0xB0, 107, 0},
		{0x90, 0x78, 1},
	}
	for i, f := range frames {
		require.NoError(t, r.Receive(f, int64(100+i)))
	}

	assert.Equal(t, []string{
		"scrolled @100",
		"pressed Button[VOL(right,0)] @101",
		"released Button[VOL(right,0)] @102",
		"released Pad[0,0] @103",
		"pressed Pad[7,7] @104",
		"pressed Button[UP(top,0)] @105",
		"released Button[RIGHT(top,3)] @106",
		"pressed Button[ARM(right,7)] @107",
	}, log.events)
}

func TestDispatcherTopButtonOutOfRange(t *testing.T) {
	r := NewReceiver(NewDispatcher(&inputLog{}))

	for _, ctrl := range []byte{1, 103, 112, 127} {
		err := r.Receive([]byte{0xB0, ctrl, 127}, 0)
		var perr *launchpad.ProtocolError
		assert.ErrorAs(t, err, &perr, "controller %d", ctrl)
	}
}

func TestDispatcherNilListener(t *testing.T) {
	d := NewDispatcher(nil)
	r := NewReceiver(d)

	assert.NoError(t, r.Receive([]byte{0x90, 0, 127}, 0))
	assert.NoError(t, r.Receive([]byte{0xB0, 0, 3}, 0))
	assert.Error(t, r.Receive([]byte{0xB0, 50, 127}, 0))

	log := &inputLog{}
	d.SetListener(log)
	require.NoError(t, r.Receive([]byte{0x90, 0, 127}, 1))
	d.SetListener(nil)
	require.NoError(t, r.Receive([]byte{0x90, 0, 0}, 2))

	assert.Equal(t, []string{"pressed Pad[0,0] @1"}, log.events)
}

func TestRoundTrip(t *testing.T) {
	rec := &recorder{}
	c := NewClient(rec.send)
	log := &inputLog{}
	r := NewReceiver(NewDispatcher(log))

	var want []string
	for _, p := range launchpad.Pads() {
		require.NoError(t, c.SetPadLight(p, launchpad.Red, launchpad.None))
		want = append(want, fmt.Sprintf("pressed %v @0", p))
	}
	for _, b := range append(launchpad.TopButtons(), launchpad.RightButtons()...) {
		require.NoError(t, c.SetButtonLight(b, launchpad.Red, launchpad.None))
		want = append(want, fmt.Sprintf("pressed %v @0", b))
	}

	// the device reports presses with the same addressing as the lights
	for _, msg := range rec.msgs {
		require.NoError(t, r.Receive([]byte{msg[0], msg[1], 127}, 0))
	}
	assert.Equal(t, want, log.events)
}
