package coolled

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	retry "github.com/avast/retry-go/v4"
	"github.com/google/uuid"
)

// Session defaults. Connecting to these signs is flaky: sometimes the sign
// is not advertising, sometimes the connect itself fails, and four attempts
// have always been enough in practice. Five leaves a little headroom.
const (
	DefaultDeviceName        = "CoolLEDX"
	DefaultConnectionTimeout = 10 * time.Second
	DefaultAckTimeout        = time.Second
	DefaultConnectionRetries = 5

	connectionRetryDelay = time.Second
)

// Client owns one transport link to one sign and sends commands over it,
// strictly one at a time. Concurrent SendCommand calls are serialized
// internally; there is no queue.
type Client struct {
	transport Transport

	address           string
	deviceName        string
	connectionTimeout time.Duration
	ackTimeout        time.Duration
	connectionRetries uint

	sendMu sync.Mutex // serializes command sends

	mu     sync.Mutex // guards link/panel/hw/status
	link   Link
	panel  Panel
	hw     Hardware
	status CommandStatus

	// ack is the single pending-acknowledgment slot. The notification
	// handler resolves it by value; the sender drains it before each
	// chunk so a stale notification can never satisfy a later wait.
	ack chan ErrorCode
}

// Option configures a Client.
type Option func(*Client)

// WithAddress targets a specific sign by MAC address instead of picking the
// first one matching the device name.
func WithAddress(address string) Option {
	return func(c *Client) { c.address = address }
}

// WithDeviceName changes the advertised name to scan for.
func WithDeviceName(name string) Option {
	return func(c *Client) { c.deviceName = name }
}

// WithConnectionTimeout bounds each scan and each connect attempt.
func WithConnectionTimeout(d time.Duration) Option {
	return func(c *Client) { c.connectionTimeout = d }
}

// WithAckTimeout bounds the wait for a device notification after each chunk.
func WithAckTimeout(d time.Duration) Option {
	return func(c *Client) { c.ackTimeout = d }
}

// WithConnectionRetries sets the number of full scan+connect attempts.
func WithConnectionRetries(n uint) Option {
	return func(c *Client) { c.connectionRetries = n }
}

// NewClient wires a client onto a transport. Connect must be called before
// sending, though SendCommand reconnects lazily if the link dropped.
func NewClient(transport Transport, options ...Option) *Client {
	c := &Client{
		transport:         transport,
		deviceName:        DefaultDeviceName,
		connectionTimeout: DefaultConnectionTimeout,
		ackTimeout:        DefaultAckTimeout,
		connectionRetries: DefaultConnectionRetries,
		ack:               make(chan ErrorCode, 1),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Panel returns the dimensions bound at connect time.
func (c *Client) Panel() Panel {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.panel
}

// Hardware returns the command table bound at connect time.
func (c *Client) Hardware() Hardware {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hw
}

// Status returns the lifecycle state of the most recent command.
func (c *Client) Status() CommandStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// Connect scans for the sign and establishes the link, retrying the full
// scan+connect sequence with a fixed delay until the attempt budget is
// exhausted. On success the panel dimensions and hardware table are bound
// from the advertisement and the notification subscription is established.
func (c *Client) Connect(ctx context.Context) error {
	filter := Filter{Address: c.address, Name: c.deviceName}
	target := c.deviceName
	if c.address != "" {
		target = c.address
	}

	err := retry.Do(
		func() error {
			peripheral, err := c.transport.Scan(ctx, filter, c.connectionTimeout)
			if err != nil {
				return err
			}
			adv := peripheral.Advertisement()

			// Transports skip these during scanning; a lax implementation
			// might not, and a sign of unknown dimensions is unusable.
			panel, ok := adv.Panel()
			if !ok {
				return fmt.Errorf("%s advertises no panel dimensions: %w", adv.Address, ErrDeviceNotFound)
			}

			link, err := peripheral.Connect(ctx, c.connectionTimeout, c.handleDisconnect)
			if err != nil {
				return err
			}

			c.mu.Lock()
			c.link = link
			c.panel = panel
			c.hw = HardwareForName(adv.Name)
			c.mu.Unlock()

			slog.Debug("connected",
				"device", adv.Address, "name", adv.Name,
				"generation", c.hw.Generation().String(),
				"panel", fmt.Sprintf("%dx%d", panel.Width, panel.Height))
			return nil
		},
		retry.Attempts(c.connectionRetries),
		retry.Delay(connectionRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			slog.Warn("connection attempt failed", "target", target, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("connecting to %s after %d attempts: %w", target, c.connectionRetries, err)
	}

	c.mu.Lock()
	link := c.link
	c.mu.Unlock()
	if err := link.Subscribe(c.handleNotification); err != nil {
		return fmt.Errorf("subscribing to notifications: %w", err)
	}
	return nil
}

// Disconnect unsubscribes and releases the link. Safe to call when already
// disconnected.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	link := c.link
	c.link = nil
	c.mu.Unlock()

	if link == nil {
		return nil
	}
	if err := link.Unsubscribe(); err != nil {
		slog.Warn("unsubscribe failed", "error", err)
	}
	return link.Close()
}

// SendCommand encodes the command against the connected device's panel and
// hardware table and writes its chunks sequentially. For commands that
// expect acknowledgment, each chunk blocks until the sign replies, errors,
// or the ack timeout expires; remaining chunks are abandoned on failure.
func (c *Client) SendCommand(ctx context.Context, cmd Command) error {
	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	if err := c.ensureConnected(ctx); err != nil {
		return err
	}

	c.mu.Lock()
	link, panel, hw := c.link, c.panel, c.hw
	c.status = StatusNotStarted
	c.mu.Unlock()

	chunks, err := EncodeCommand(cmd, panel, hw)
	if err != nil {
		return err
	}

	cmdID := uuid.NewString()[:8]
	slog.Debug("sending command", "id", cmdID, "chunks", len(chunks), "ack", cmd.ExpectsAck(), "raw", cmd.RawPassthrough())

	for i, chunk := range chunks {
		// Drop any notification left over from a previous command.
		select {
		case <-c.ack:
		default:
		}

		c.setStatus(StatusTransmitted)
		if err := link.Write(chunk, cmd.ExpectsAck()); err != nil {
			c.setStatus(StatusError)
			return fmt.Errorf("writing chunk %d/%d: %w", i+1, len(chunks), err)
		}
		slog.Debug("chunk written", "id", cmdID, "chunk", i+1, "of", len(chunks), "size", len(chunk))

		if !cmd.ExpectsAck() {
			continue
		}

		select {
		case code := <-c.ack:
			if code != Success {
				c.setStatus(StatusError)
				return fmt.Errorf("chunk %d/%d: %w", i+1, len(chunks), &DeviceError{Code: code})
			}
		case <-time.After(c.ackTimeout):
			c.setStatus(StatusError)
			return fmt.Errorf("chunk %d/%d after %s: %w", i+1, len(chunks), c.ackTimeout, ErrAckTimeout)
		case <-ctx.Done():
			// Leave the session reusable: the slot is drained on the
			// next send, the status must be terminal now.
			c.setStatus(StatusError)
			return ctx.Err()
		}
	}

	c.setStatus(StatusAcknowledged)
	return nil
}

func (c *Client) setStatus(s CommandStatus) {
	c.mu.Lock()
	c.status = s
	c.mu.Unlock()
}

// ensureConnected lazily reconnects when the link is missing or dropped.
func (c *Client) ensureConnected(ctx context.Context) error {
	c.mu.Lock()
	link := c.link
	c.mu.Unlock()

	if link != nil && link.Connected() {
		return nil
	}
	slog.Debug("link down, reconnecting")
	return c.Connect(ctx)
}

// handleNotification resolves the pending acknowledgment slot. Runs on the
// transport's notification goroutine.
func (c *Client) handleNotification(data []byte) {
	code := decodeNotification(data)
	select {
	case c.ack <- code:
	default:
		slog.Warn("notification without a pending command", "code", code.String())
	}
}

func (c *Client) handleDisconnect(err error) {
	// Nothing to tear down here; the next SendCommand notices the dead
	// link and reconnects.
	slog.Info("device disconnected", "error", err)
}

// decodeNotification extracts the status byte from a device notification.
// The reply format is only partially understood: a framed payload's first
// byte is taken as the status code, and anything undecodable counts as
// success, which matches how the vendor app behaves.
func decodeNotification(data []byte) ErrorCode {
	payload, _, err := DecodeFrame(data)
	if err != nil || len(payload) == 0 {
		return Success
	}
	return ErrorCode(payload[0])
}
