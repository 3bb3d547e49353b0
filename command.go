package coolled

import (
	"encoding/hex"
	"fmt"
)

// Command is one operation against the sign. A command produces its raw,
// unescaped payload segments; the session resolves panel dimensions and the
// hardware table once per connection and passes them in at encode time.
//
// Content commands (text, image, animation) return pre-chunked segments from
// ChopUpData; setting commands return a single small fixed-format buffer.
type Command interface {
	// RawDataChunks returns the unframed payload segments to transmit, in
	// order.
	RawDataChunks(panel Panel, hw Hardware) ([][]byte, error)

	// ExpectsAck reports whether the device acknowledges each segment with
	// a notification.
	ExpectsAck() bool

	// RawPassthrough marks debug commands whose segments are written to
	// the transport without framing or escaping.
	RawPassthrough() bool
}

// acked is embedded by commands the device replies to.
type acked struct{}

func (acked) ExpectsAck() bool     { return true }
func (acked) RawPassthrough() bool { return false }

// unacked is embedded by commands with no observed device reply.
type unacked struct{}

func (unacked) ExpectsAck() bool     { return false }
func (unacked) RawPassthrough() bool { return false }

// EncodeCommand turns a command into the exact byte sequences to write to
// the transport, one write per element.
func EncodeCommand(c Command, panel Panel, hw Hardware) ([][]byte, error) {
	raw, err := c.RawDataChunks(panel, hw)
	if err != nil {
		return nil, err
	}
	if c.RawPassthrough() {
		return raw, nil
	}
	framed := make([][]byte, 0, len(raw))
	for i, segment := range raw {
		// The frame's length prefix is 16 bits too.
		if len(segment) > 0xFFFF {
			return nil, fmt.Errorf("segment %d is %d bytes, the frame length field holds at most 65535", i, len(segment))
		}
		framed = append(framed, EncodeFrame(segment))
	}
	return framed, nil
}

// EncodeCommandHex is EncodeCommand with each chunk hex-encoded, for
// diagnostics and regression fixtures.
func EncodeCommandHex(c Command, panel Panel, hw Hardware) ([]string, error) {
	chunks, err := EncodeCommand(c, panel, hw)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		out = append(out, hex.EncodeToString(chunk))
	}
	return out, nil
}
