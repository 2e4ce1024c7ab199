package companion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

// Client is the companion's end of the link
type Client struct {
	conn      net.Conn
	logger    *slog.Logger
	bootstrap Bootstrap
	messages  chan Message
	done      chan struct{}

	mu     sync.Mutex
	enc    *cbor.Encoder
	closed bool
}

// Dial connects to the opener listening on socketPath and waits for the
// bootstrap snapshot. logger may be nil.
func Dial(ctx context.Context, socketPath string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", socketPath)
	if err != nil {
		return nil, &domain.ChannelError{Op: "dial", Err: err}
	}

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetReadDeadline(deadline)
	}
	dec := newDecoder(conn)
	var first Message
	if err := dec.Decode(&first); err != nil {
		conn.Close()
		return nil, &domain.ChannelError{Op: "bootstrap", Err: err}
	}
	if first.Action != ActionInit || first.Bootstrap == nil {
		conn.Close()
		return nil, &domain.ChannelError{Op: "bootstrap", Err: fmt.Errorf("expected %s, got %q", ActionInit, first.Action)}
	}
	conn.SetReadDeadline(time.Time{})

	c := &Client{
		conn:      conn,
		logger:    logger.With("component", "companion-client"),
		bootstrap: *first.Bootstrap,
		messages:  make(chan Message, 32),
		done:      make(chan struct{}),
		enc:       newEncoder(conn),
	}
	go c.readLoop(dec)
	return c, nil
}

// Bootstrap returns the snapshot received on connect
func (c *Client) Bootstrap() Bootstrap {
	return c.bootstrap
}

// Messages delivers opener messages; it is closed when the connection ends
func (c *Client) Messages() <-chan Message {
	return c.messages
}

// Send relays a command to the opener
func (c *Client) Send(action Action) error {
	if !action.FromCompanion() {
		return &domain.ChannelError{Op: "send", Err: fmt.Errorf("action %q is not a companion command", action)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return &domain.ChannelError{Op: "send", Err: net.ErrClosed}
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := c.enc.Encode(Message{Action: action}); err != nil {
		return &domain.ChannelError{Op: "send", Err: err}
	}
	return nil
}

// Close tells the opener the companion is going away, then disconnects
func (c *Client) Close() error {
	if err := c.Send(ActionCloseCompanion); err != nil {
		c.logger.Debug("close notice not delivered", "error", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	close(c.done)
	return c.conn.Close()
}

func (c *Client) readLoop(dec *cbor.Decoder) {
	defer close(c.messages)
	for {
		var msg Message
		if err := dec.Decode(&msg); err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				c.logger.Debug("companion read ended", "error", err)
			}
			return
		}
		if err := msg.Validate(); err != nil || !msg.Action.FromOpener() {
			c.logger.Warn("ignoring opener message", "action", msg.Action, "error", err)
			continue
		}
		select {
		case c.messages <- msg:
		case <-c.done:
			return
		}
	}
}
