package mididevice

import (
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/drivers"

	"github.com/PixPMusic/gopher-launchpad/launchpad"
)

type fakePort struct {
	name   string
	open   bool
	opened int
	closed int
}

func (p *fakePort) Open() error {
	p.open = true
	p.opened++
	return nil
}

func (p *fakePort) Close() error {
	p.open = false
	p.closed++
	return nil
}

func (p *fakePort) IsOpen() bool            { return p.open }
func (p *fakePort) Number() int             { return 0 }
func (p *fakePort) String() string          { return p.name }
func (p *fakePort) Underlying() interface{} { return nil }

type fakeOut struct {
	fakePort
	mu   sync.Mutex
	sent [][]byte
	err  error
}

func (o *fakeOut) Send(b []byte) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, append([]byte(nil), b...))
	return nil
}

type fakeIn struct {
	fakePort
	onMsg   func([]byte, int32)
	stopped int
}

func (i *fakeIn) Listen(onMsg func([]byte, int32), _ drivers.ListenConfig) (func(), error) {
	i.onMsg = onMsg
	return func() { i.stopped++ }, nil
}

func (i *fakeIn) emit(ms int32, b ...byte) {
	i.onMsg(b, ms)
}

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestOpenOutput(t *testing.T) {
	out := &fakeOut{fakePort: fakePort{name: "Launchpad S"}}
	lp, err := Open(Configuration{Out: out}, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.True(t, out.IsOpen())

	c, err := lp.Client()
	require.NoError(t, err)
	require.NoError(t, c.SetPadLight(launchpad.MustPadAt(0, 0), launchpad.Black, launchpad.Copy))
	require.NoError(t, c.SetButtonLight(launchpad.Up, launchpad.Black, launchpad.None))
	assert.Equal(t, [][]byte{{0x90, 0, 12}, {0xB0, 104, 0}}, out.sent)

	err = lp.SetListener(launchpad.ListenerFuncs{})
	assert.ErrorIs(t, err, launchpad.ErrNoInput)

	require.NoError(t, lp.Close())
	assert.False(t, out.IsOpen())
}

func TestOpenKeepsOpenPorts(t *testing.T) {
	out := &fakeOut{fakePort: fakePort{name: "out", open: true}}
	lp, err := Open(Configuration{Out: out}, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.Equal(t, 0, out.opened)
	require.NoError(t, lp.Close())
	assert.Equal(t, 1, out.closed)
}

func TestOpenInput(t *testing.T) {
	in := &fakeIn{fakePort: fakePort{name: "Launchpad S"}}
	var errs []error
	lp, err := Open(Configuration{In: in},
		WithLogger(quietLogger()),
		WithErrorHandler(func(err error) { errs = append(errs, err) }),
	)
	require.NoError(t, err)
	assert.True(t, in.IsOpen())

	_, err = lp.Client()
	assert.ErrorIs(t, err, launchpad.ErrNoOutput)

	var pads []launchpad.Pad
	var buttons []launchpad.Button
	var timestamps []int64
	require.NoError(t, lp.SetListener(launchpad.ListenerFuncs{
		PadReleased: func(p launchpad.Pad, ts int64) {
			pads = append(pads, p)
			timestamps = append(timestamps, ts)
		},
		ButtonPressed: func(b launchpad.Button, ts int64) {
			buttons = append(buttons, b)
			timestamps = append(timestamps, ts)
		},
	}))

	in.emit(10, 0x90, 8, 127)
	in.emit(20, 0x90, 0, 0)
	in.emit(30, 0xB0, 105, 127)
	in.emit(40, 0xF0, 0x01, 0xF7)

	assert.Equal(t, []launchpad.Pad{launchpad.MustPadAt(0, 0)}, pads)
	assert.Equal(t, []launchpad.Button{launchpad.Vol, launchpad.Down}, buttons)
	require.Len(t, timestamps, 3)
	assert.Equal(t, int64(10), timestamps[1]-timestamps[0])
	assert.Equal(t, int64(10), timestamps[2]-timestamps[1])

	require.Len(t, errs, 1)
	var perr *launchpad.ProtocolError
	assert.ErrorAs(t, errs[0], &perr)

	require.NoError(t, lp.Close())
	assert.Equal(t, 1, in.stopped)
	assert.False(t, in.IsOpen())
}

func TestCloseTwice(t *testing.T) {
	in := &fakeIn{fakePort: fakePort{name: "in"}}
	out := &fakeOut{fakePort: fakePort{name: "out"}}
	lp, err := Open(Configuration{In: in, Out: out}, WithLogger(quietLogger()))
	require.NoError(t, err)
	assert.False(t, lp.IsClosed())

	require.NoError(t, lp.Close())
	require.NoError(t, lp.Close())
	assert.True(t, lp.IsClosed())
	assert.Equal(t, 1, in.closed)
	assert.Equal(t, 1, out.closed)
	assert.Equal(t, 1, in.stopped)

	_, err = lp.Client()
	assert.ErrorIs(t, err, launchpad.ErrClosed)
	assert.ErrorIs(t, lp.SetListener(nil), launchpad.ErrClosed)
}

func TestOpenEmptyConfiguration(t *testing.T) {
	lp, err := Open(Configuration{}, WithLogger(quietLogger()))
	require.NoError(t, err)

	_, err = lp.Client()
	var lerr *launchpad.Error
	require.ErrorAs(t, err, &lerr)
	assert.ErrorIs(t, err, launchpad.ErrNoOutput)
	assert.ErrorIs(t, lp.SetListener(nil), launchpad.ErrNoInput)
	assert.NoError(t, lp.Close())
}

func TestClientTransportError(t *testing.T) {
	boom := errors.New("unplugged")
	out := &fakeOut{fakePort: fakePort{name: "out"}, err: boom}
	lp, err := Open(Configuration{Out: out}, WithLogger(quietLogger()))
	require.NoError(t, err)
	defer lp.Close()

	c, err := lp.Client()
	require.NoError(t, err)
	err = c.Reset()
	var lerr *launchpad.Error
	require.ErrorAs(t, err, &lerr)
	assert.ErrorIs(t, err, boom)
}

type fakePorts struct {
	ins  []drivers.In
	outs []drivers.Out
}

func (f fakePorts) InPorts() []drivers.In   { return f.ins }
func (f fakePorts) OutPorts() []drivers.Out { return f.outs }

func TestAutodetectWith(t *testing.T) {
	in := &fakeIn{fakePort: fakePort{name: "Launchpad S:Launchpad S MIDI 1 20:0"}}
	out := &fakeOut{fakePort: fakePort{name: "Launchpad S:Launchpad S MIDI 1 20:0"}}
	other := &fakeOut{fakePort: fakePort{name: "Midi Through"}}

	cfg, err := AutodetectWith(fakePorts{
		ins:  []drivers.In{&fakeIn{fakePort: fakePort{name: "Midi Through"}}, in},
		outs: []drivers.Out{other, out},
	})
	require.NoError(t, err)
	assert.Same(t, in, cfg.In)
	assert.Same(t, out, cfg.Out)

	_, err = AutodetectWith(fakePorts{ins: []drivers.In{in}, outs: []drivers.Out{other}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = AutodetectWith(fakePorts{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookup(t *testing.T) {
	first := &fakeIn{fakePort: fakePort{name: "Launchpad S 1"}}
	second := &fakeIn{fakePort: fakePort{name: "Launchpad S 2"}}
	out1 := &fakeOut{fakePort: fakePort{name: "Launchpad S 1"}}
	out2 := &fakeOut{fakePort: fakePort{name: "Launchpad S 2"}}
	ports := fakePorts{ins: []drivers.In{first, second}, outs: []drivers.Out{out1, out2}}

	cfg, err := Lookup(ports, DeviceSignature, "Launchpad S 2", "")
	require.NoError(t, err)
	assert.Same(t, second, cfg.In)
	assert.Same(t, out1, cfg.Out)

	cfg, err = Lookup(ports, "Launchpad S 2", "", "")
	require.NoError(t, err)
	assert.Same(t, second, cfg.In)
	assert.Same(t, out2, cfg.Out)

	_, err = Lookup(ports, DeviceSignature, "Launchpad S", "")
	assert.ErrorIs(t, err, ErrNotFound)
}
