// Package client implements the terminal chat client: the lockstep
// websocket connection with bounded reply polling, and the bubbletea UI
// that renders messages, suggestions, and the results table.
package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/ryuvi/carchat/chat/wire"
	"github.com/ryuvi/carchat/core/logger"
	"github.com/ryuvi/carchat/core/netutil"
)

const (
	dialTimeout   = 5 * time.Second
	sendTimeout   = 5 * time.Second
	dialRetryWait = 500 * time.Millisecond
)

// Conn is the client side of one lockstep session. Send transmits a single
// request; Poll waits a bounded interval for the pending reply so the UI
// loop stays responsive between polls. The caller must not send a second
// request before the previous reply was delivered.
type Conn struct {
	ws      *websocket.Conn
	replies chan wire.Reply
	errs    chan error
}

// Dial connects to the chat server, retrying transient failures a limited
// number of times before giving up.
func Dial(ctx context.Context, url string, retries int) (*Conn, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		dialCtx, cancel := context.WithTimeout(ctx, dialTimeout)
		ws, _, err := websocket.Dial(dialCtx, url, nil)
		cancel()
		if err == nil {
			c := &Conn{
				ws:      ws,
				replies: make(chan wire.Reply),
				errs:    make(chan error, 1),
			}
			go c.readPump()
			logger.CLI.Info("connected",
				slog.String("event", "dial"),
				slog.String("url", url),
				slog.Int("attempt", attempt+1),
			)
			return c, nil
		}
		lastErr = err
		if !netutil.ShouldRetry(err) || ctx.Err() != nil {
			break
		}
		logger.CLI.Debug("dial retry",
			slog.String("event", "dial"),
			slog.String("status", "retry"),
			slog.Int("attempt", attempt+1),
			slog.String("err", err.Error()),
		)
		select {
		case <-time.After(dialRetryWait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return nil, fmt.Errorf("dial %s: %w", url, lastErr)
}

// readPump keeps the blocking websocket reads off the UI loop. It exits on
// the first receive fault; per the error model a transport failure is fatal
// to the connection, not to the process.
func (c *Conn) readPump() {
	for {
		var reply wire.Reply
		if err := wsjson.Read(context.Background(), c.ws, &reply); err != nil {
			c.errs <- err
			return
		}
		c.replies <- reply
	}
}

// Send transmits one request.
func (c *Conn) Send(req wire.Request) error {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()
	if err := wsjson.Write(ctx, c.ws, req); err != nil {
		return fmt.Errorf("send: %w", err)
	}
	return nil
}

// Poll waits up to timeout for the pending reply. ok is false when the
// timeout elapsed with nothing received, which is not an error; the caller
// simply polls again.
func (c *Conn) Poll(timeout time.Duration) (reply wire.Reply, ok bool, err error) {
	select {
	case reply = <-c.replies:
		return reply, true, nil
	case err = <-c.errs:
		return wire.Reply{}, false, err
	case <-time.After(timeout):
		return wire.Reply{}, false, nil
	}
}

// Close releases the socket.
func (c *Conn) Close() error {
	return c.ws.Close(websocket.StatusNormalClosure, "bye")
}
