// Package bridge connects to a machine exposed over a websocket
// serial bridge instead of a local port.
package bridge

import (
	"fmt"
	"io"
	"sync"

	"github.com/gorilla/websocket"
)

// Conn adapts a websocket connection to the byte-oriented duplex
// stream the command channel expects. Each Write becomes one text
// message; Reads consume incoming messages in order.
type Conn struct {
	ws *websocket.Conn

	mx  sync.Mutex
	buf []byte
}

var _ io.ReadWriteCloser = (*Conn)(nil)

// Dial connects to the bridge server at the given websocket URL.
func Dial(url string) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("bridge: dial %s: %w", url, err)
	}
	return &Conn{ws: ws}, nil
}

func (c *Conn) Write(p []byte) (int, error) {
	c.mx.Lock()
	defer c.mx.Unlock()
	err := c.ws.WriteMessage(websocket.TextMessage, p)
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

func (c *Conn) Read(p []byte) (int, error) {
	if len(c.buf) == 0 {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			return 0, err
		}
		c.buf = data
	}
	n := copy(p, c.buf)
	c.buf = c.buf[n:]
	return n, nil
}

func (c *Conn) Close() error {
	return c.ws.Close()
}
