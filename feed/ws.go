package feed

import (
	"context"
	"net"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"pulsebar/log"
)

const probeTimeout = 300 * time.Millisecond

// WSTransport subscribes over the engine's local WebSocket endpoint.
// Each channel is its own connection, keeping the two push streams as
// independent as the engine emits them. There is no reconnect: when
// the engine goes away the read loop ends and the widget falls back to
// its idle animation.
type WSTransport struct {
	addr string // e.g. ws://127.0.0.1:8517
}

// NewWS returns a transport for the engine at addr.
func NewWS(addr string) *WSTransport {
	return &WSTransport{addr: addr}
}

// Available probes the engine's listener once with a short timeout.
// Absence means pulsebar is running without its host engine; that is a
// supported mode, not an error.
func (t *WSTransport) Available() bool {
	u, err := url.Parse(t.addr)
	if err != nil || u.Host == "" {
		return false
	}
	conn, err := net.DialTimeout("tcp", u.Host, probeTimeout)
	if err != nil {
		return false
	}
	conn.Close()
	return true
}

// Attach dials the channel endpoint and pumps incoming messages into
// deliver until detached or the engine closes the connection.
func (t *WSTransport) Attach(ctx context.Context, channel string, deliver func(payload []byte)) (Detach, error) {
	endpoint := t.addr + "/events/" + channel
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, endpoint, nil)
	if err != nil {
		return nil, err
	}

	go func() {
		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				log.Infof("%s channel closed: %v", channel, err)
				return
			}
			deliver(payload)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			conn.Close()
		})
	}, nil
}
