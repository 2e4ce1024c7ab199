package companion

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"sync"
	"time"

	"github.com/fxamacker/cbor/v2"

	"github.com/riordanpawley/tomodoro/internal/domain"
)

// Surface is a launched companion window
type Surface interface {
	ID() string
	Focus(ctx context.Context) error
	Close(ctx context.Context) error
}

// Launcher starts a companion window that will dial socketPath.
// It returns domain.ErrCompanionUnavailable when no window can be created.
type Launcher interface {
	Launch(ctx context.Context, socketPath string) (Surface, error)
}

// Event is something the companion did that the opener must handle
type Event interface {
	isEvent()
}

// ConnectedEvent means the companion dialed in and received its bootstrap
type ConnectedEvent struct {
	Generation uint64
}

// CommandEvent carries a command sent by the companion
type CommandEvent struct {
	Action     Action
	Generation uint64
}

// ClosedEvent means the companion went away without the opener closing it
type ClosedEvent struct {
	Unexpected bool
	Err        error
	Generation uint64
}

func (ConnectedEvent) isEvent() {}
func (CommandEvent) isEvent()   {}
func (ClosedEvent) isEvent()    {}

// writeTimeout bounds a single frame write to the companion
const writeTimeout = 2 * time.Second

// Options configures a Channel
type Options struct {
	SocketPath     string
	ConnectTimeout time.Duration
	Logger         *slog.Logger
}

// Channel is the opener's end of the companion link. At most one companion
// is open at a time. Every Open issues a new generation; events carry the
// generation they belong to so handlers can ignore stale ones.
type Channel struct {
	launcher Launcher
	opts     Options
	logger   *slog.Logger
	events   chan Event
	quit     chan struct{}

	mu         sync.Mutex
	open       bool
	generation uint64
	surface    Surface
	listener   net.Listener
	conn       net.Conn
	enc        *cbor.Encoder
	shutdown   bool
}

// NewChannel creates a closed channel
func NewChannel(launcher Launcher, opts Options) *Channel {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 5 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Channel{
		launcher: launcher,
		opts:     opts,
		logger:   logger.With("component", "companion"),
		events:   make(chan Event, 32),
		quit:     make(chan struct{}),
	}
}

// Events delivers companion events until Shutdown
func (c *Channel) Events() <-chan Event {
	return c.events
}

// IsOpen reports whether a companion is open
func (c *Channel) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

// Connected reports whether the companion has dialed in
func (c *Channel) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn != nil
}

// Generation returns the generation of the current (or last) companion
func (c *Channel) Generation() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation
}

// Open launches the companion. When one is already open it is focused
// instead and alreadyOpen is true. The companion receives bootstrap as
// soon as it connects.
func (c *Channel) Open(ctx context.Context, bootstrap Bootstrap) (alreadyOpen bool, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.shutdown {
		return false, &domain.ChannelError{Op: "open", Err: net.ErrClosed}
	}

	if c.open {
		if err := c.surface.Focus(ctx); err != nil {
			c.logger.Warn("focusing companion failed", "surface", c.surface.ID(), "error", err)
		}
		return true, nil
	}

	if err := os.Remove(c.opts.SocketPath); err != nil && !os.IsNotExist(err) {
		return false, &domain.ChannelError{Op: "open", Err: fmt.Errorf("removing stale socket %s: %w", c.opts.SocketPath, err)}
	}
	listener, err := net.Listen("unix", c.opts.SocketPath)
	if err != nil {
		return false, &domain.ChannelError{Op: "open", Err: fmt.Errorf("listening on %s: %w", c.opts.SocketPath, err)}
	}

	surface, err := c.launcher.Launch(ctx, c.opts.SocketPath)
	if err != nil {
		listener.Close()
		os.Remove(c.opts.SocketPath)
		return false, &domain.ChannelError{Op: "open", Err: err}
	}

	c.generation++
	c.open = true
	c.surface = surface
	c.listener = listener
	generation := c.generation

	c.logger.Info("companion launched", "surface", surface.ID(), "generation", generation)
	go c.serve(generation, listener, bootstrap)
	return false, nil
}

// Close closes the companion window. Closing an already closed channel is
// a no-op.
func (c *Channel) Close(ctx context.Context) error {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return nil
	}
	surface := c.teardownLocked()
	c.mu.Unlock()

	c.logger.Info("companion closed", "surface", surface.ID())
	if err := surface.Close(ctx); err != nil {
		return &domain.ChannelError{Op: "close", Err: err}
	}
	return nil
}

// Shutdown closes the companion and stops event delivery
func (c *Channel) Shutdown(ctx context.Context) error {
	err := c.Close(ctx)
	c.mu.Lock()
	if !c.shutdown {
		c.shutdown = true
		close(c.quit)
	}
	c.mu.Unlock()
	return err
}

// Notify mirrors a notification into the companion. Dropped when the
// companion is not connected.
func (c *Channel) Notify(message string, kind domain.NotificationKind) {
	c.send(Message{Action: ActionShowNotification, Message: message, Kind: kind})
}

// UpdateTheme forwards a theme change to the companion
func (c *Channel) UpdateTheme(theme string) {
	c.send(Message{Action: ActionUpdateTheme, Theme: theme})
}

func (c *Channel) send(msg Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return
	}
	if err := c.writeLocked(msg); err != nil {
		c.logger.Debug("companion write failed", "action", msg.Action, "error", err)
	}
}

func (c *Channel) writeLocked(msg Message) error {
	c.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return c.enc.Encode(msg)
}

// teardownLocked marks the channel closed and releases the connection.
// The generation moves on so the serving goroutine's exit is silent.
func (c *Channel) teardownLocked() Surface {
	surface := c.surface
	c.open = false
	c.generation++
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
		c.enc = nil
	}
	if c.listener != nil {
		c.listener.Close()
		c.listener = nil
	}
	c.surface = nil
	os.Remove(c.opts.SocketPath)
	return surface
}

// serve accepts the companion's connection, sends the bootstrap and reads
// commands until the connection ends.
func (c *Channel) serve(generation uint64, listener net.Listener, bootstrap Bootstrap) {
	if unix, ok := listener.(*net.UnixListener); ok {
		unix.SetDeadline(time.Now().Add(c.opts.ConnectTimeout))
	}
	conn, err := listener.Accept()
	listener.Close()
	if err != nil {
		c.lost(generation, &domain.ChannelError{Op: "accept", Err: err})
		return
	}

	c.mu.Lock()
	if !c.open || c.generation != generation {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.listener = nil
	c.enc = newEncoder(conn)
	err = c.writeLocked(Message{Action: ActionInit, Bootstrap: &bootstrap})
	c.mu.Unlock()
	if err != nil {
		c.lost(generation, &domain.ChannelError{Op: "init", Err: err})
		return
	}

	c.emit(ConnectedEvent{Generation: generation})

	dec := newDecoder(conn)
	for {
		var msg Message
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				err = nil
			}
			c.lost(generation, err)
			return
		}
		if err := msg.Validate(); err != nil || !msg.Action.FromCompanion() {
			c.logger.Warn("ignoring companion message", "action", msg.Action, "error", err)
			continue
		}

		c.emit(CommandEvent{Action: msg.Action, Generation: generation})
		if msg.Action == ActionCloseCompanion {
			return
		}
	}
}

// lost reports a companion that disappeared on its own
func (c *Channel) lost(generation uint64, err error) {
	c.mu.Lock()
	if !c.open || c.generation != generation {
		c.mu.Unlock()
		return
	}
	surface := c.teardownLocked()
	c.mu.Unlock()

	c.logger.Info("companion connection lost", "generation", generation, "error", err)
	// The window usually exited already; this only reaps a hung one.
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	if closeErr := surface.Close(ctx); closeErr != nil {
		c.logger.Debug("closing lost companion failed", "surface", surface.ID(), "error", closeErr)
	}
	cancel()
	c.emit(ClosedEvent{Unexpected: true, Err: err, Generation: generation})
}

func (c *Channel) emit(event Event) {
	select {
	case c.events <- event:
	case <-c.quit:
	}
}
