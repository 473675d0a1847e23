package midi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2"
)

// recorder collects the messages sent through it
type recorder struct {
	msgs [][]byte
	err  error
}

func (r *recorder) send(msg midi.Message) error {
	if r.err != nil {
		return r.err
	}
	r.msgs = append(r.msgs, append([]byte(nil), msg...))
	return nil
}

func TestProtocolClientShortMessages(t *testing.T) {
	tests := []struct {
		name string
		call func(p *ProtocolClient) error
		want [][]byte
	}{
		{"reset", func(p *ProtocolClient) error { return p.Reset() }, [][]byte{{0xB0, 0, 0}}},
		{"lights on", func(p *ProtocolClient) error { return p.LightsOn(126) }, [][]byte{{0xB0, 0, 126}}},
		{"note on", func(p *ProtocolClient) error { return p.NoteOn(34, 12) }, [][]byte{{0x90, 34, 12}}},
		{"note off", func(p *ProtocolClient) error { return p.NoteOff(34) }, [][]byte{{0x80, 34, 0}}},
		{"button on", func(p *ProtocolClient) error { return p.ButtonOn(104, 3) }, [][]byte{{0xB0, 104, 3}}},
		{"brightness low", func(p *ProtocolClient) error { return p.Brightness(1, 3) }, [][]byte{{0xB0, 30, 0}}},
		{"brightness high", func(p *ProtocolClient) error { return p.Brightness(9, 3) }, [][]byte{{0xB0, 31, 0}}},
		{"brightness ratio", func(p *ProtocolClient) error { return p.Brightness(2, 5) }, [][]byte{{0xB0, 30, 18}}},
		{"buffers", func(p *ProtocolClient) error { return p.DoubleBufferMode(1, 0, false, false) }, [][]byte{{0xB0, 0, 33}}},
		{"buffers copy auto", func(p *ProtocolClient) error { return p.DoubleBufferMode(0, 1, true, true) }, [][]byte{{0xB0, 0, 60}}},
		{
			"notes on",
			func(p *ProtocolClient) error { return p.NotesOn(1, 2, 3, 4) },
			[][]byte{{0x93, 1, 2}, {0x93, 3, 4}},
		},
		{"notes on empty", func(p *ProtocolClient) error { return p.NotesOn() }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			require.NoError(t, tt.call(NewProtocolClient(rec.send)))
			assert.Equal(t, tt.want, rec.msgs)
		})
	}
}

func TestProtocolClientNotesOnOdd(t *testing.T) {
	rec := &recorder{}
	assert.Error(t, NewProtocolClient(rec.send).NotesOn(1, 2, 3))
	assert.Empty(t, rec.msgs)
}

func TestProtocolClientText(t *testing.T) {
	rec := &recorder{}
	p := NewProtocolClient(rec.send)

	require.NoError(t, p.Text("Hello", 12, 1, false))
	require.NoError(t, p.Text("Hello", 12, 1, true))
	require.NoError(t, p.Text("", 0, 7, false))
	require.NoError(t, p.Text("né", 3, 2, false))

	assert.Equal(t, [][]byte{
		{0xF0, 0x00, 0x20, 0x29, 0x09, 0x0C, 0x01, 0x48, 0x65, 0x6C, 0x6C, 0x6F, 0xF7},
		{0xF0, 0x00, 0x20, 0x29, 0x09, 0x4C, 0x01, 0x48, 0x65, 0x6C, 0x6C, 0x6F, 0xF7},
		{0xF0, 0x00, 0x20, 0x29, 0x09, 0x00, 0x07, 0xF7},
		{0xF0, 0x00, 0x20, 0x29, 0x09, 0x03, 0x02, 'n', '?', 0xF7},
	}, rec.msgs)
}

func TestProtocolClientRejectsWideBytes(t *testing.T) {
	rec := &recorder{}
	p := NewProtocolClient(rec.send)

	assert.Error(t, p.NoteOn(128, 0))
	assert.Error(t, p.ButtonOn(104, 200))
	assert.Error(t, p.DoubleBufferMode(2, 0, false, false))
	assert.Error(t, p.Brightness(1, 2))
	assert.Empty(t, rec.msgs)
}

func TestProtocolClientTransportError(t *testing.T) {
	boom := errors.New("boom")
	rec := &recorder{err: boom}
	p := NewProtocolClient(rec.send)

	assert.ErrorIs(t, p.Reset(), boom)
	assert.ErrorIs(t, p.NotesOn(1, 2), boom)
	assert.ErrorIs(t, p.Text("x", 0, 1, false), boom)
}
