package marlin

import (
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mastercactapus/cmm/machine"
)

// pipeRW is a fake serial device: reads come from a script, writes are
// captured.
type pipeRW struct {
	io.Reader

	mx      sync.Mutex
	written []byte
}

func newPipeRW(responses string) *pipeRW {
	return &pipeRW{Reader: strings.NewReader(responses)}
}

func (p *pipeRW) Write(b []byte) (int, error) {
	p.mx.Lock()
	defer p.mx.Unlock()
	p.written = append(p.written, b...)
	return len(b), nil
}

func (p *pipeRW) Written() string {
	p.mx.Lock()
	defer p.mx.Unlock()
	return string(p.written)
}

func TestConn_SendAwait(t *testing.T) {
	rw := newPipeRW("ok\n")
	c := NewConn(rw, zerolog.Nop())

	line, err := c.SendAwait("G0X5", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "ok", line)
	assert.Equal(t, "G0X5\n", rw.Written())
}

func TestConn_SendAwait_Timeout(t *testing.T) {
	rw := &pipeRW{Reader: blockReader{}}
	c := NewConn(rw, zerolog.Nop())

	_, err := c.SendAwait("G0X5", 10*time.Millisecond)
	assert.ErrorIs(t, err, machine.ErrTimeout)
}

func TestConn_SendAwait_EmptyResponse(t *testing.T) {
	rw := newPipeRW("\n")
	c := NewConn(rw, zerolog.Nop())

	_, err := c.SendAwait("G0X5", time.Second)
	var te *machine.TransportError
	assert.ErrorAs(t, err, &te)
}

func TestConn_Send_WhitespaceNoOp(t *testing.T) {
	rw := newPipeRW("")
	c := NewConn(rw, zerolog.Nop())

	require.NoError(t, c.Send("   \t"))
	require.NoError(t, c.Send(""))
	assert.Empty(t, rw.Written(), "whitespace commands must not be transmitted")

	// SendAwait on a whitespace command must not wait for a reply
	line, err := c.SendAwait(" ", time.Second)
	require.NoError(t, err)
	assert.Empty(t, line)
}

func TestConn_Send_WriteError(t *testing.T) {
	c := NewConn(failRW{}, zerolog.Nop())

	err := c.Send("G28")
	var te *machine.TransportError
	assert.ErrorAs(t, err, &te)
}

func TestConn_SendScript(t *testing.T) {
	rw := newPipeRW("")
	c := NewConn(rw, zerolog.Nop())

	require.NoError(t, c.SendScript("M107 P1 ; fan off\n\nG28\n"))
	assert.Equal(t, "M107 P1 ; fan off\nG28\n", rw.Written())
}

func TestConn_Wake(t *testing.T) {
	pr, pw := io.Pipe()
	rw := &pipeRW{Reader: pr}
	c := NewConn(rw, zerolog.Nop())
	c.WakeDelay = 0

	// firmware boot banner, queued before the wake-up completes
	_, err := pw.Write([]byte("start\nMarlin 2.1\necho:ready\n"))
	require.NoError(t, err)
	require.NoError(t, c.Wake())

	go pw.Write([]byte("ok\n"))
	line, err := c.SendAwait("G28", time.Second)
	require.NoError(t, err)
	assert.Equal(t, "ok", line, "banner lines must not satisfy a later command")
	assert.Equal(t, "\r\n\r\nG28\n", rw.Written())
}

func TestConn_QueryPosition(t *testing.T) {
	rw := newPipeRW("X:1.00 Y:2.00 Z:3.00 E:0.00\n")
	c := NewConn(rw, zerolog.Nop())

	p, err := c.QueryPosition(time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.X)
	assert.Equal(t, 2.0, p.Y)
	assert.Equal(t, 3.0, p.Z)
	assert.Equal(t, "M114\n", rw.Written())
}

// blockReader never returns, simulating a silent machine.
type blockReader struct{}

func (blockReader) Read([]byte) (int, error) {
	select {}
}

type failRW struct{}

func (failRW) Read([]byte) (int, error)  { return 0, io.EOF }
func (failRW) Write([]byte) (int, error) { return 0, errors.New("port closed") }
