package coolled

import (
	"fmt"
	"strings"
)

// Capture is a decoded wire frame, used for passive traffic analysis. It is
// never part of the live send path; malformed captures produce an error
// instead of touching session state.
type Capture struct {
	// Action names the command byte, when recognized.
	Action string

	// DeclaredLen is the frame's length field. Devices have been seen
	// emitting frames where it disagrees with the payload size, so it is
	// reported rather than enforced; compare with len(Payload) when
	// hunting for corruption.
	DeclaredLen int

	// Payload is the decoded frame content, command byte included.
	Payload []byte
}

var actionNames = map[byte]string{
	0x01: "Music",
	0x02: "Text",
	0x03: "Image",
	0x04: "Animation",
	0x05: "Icon",
	0x06: "Mode",
	0x07: "Speed",
	0x08: "Brightness",
	0x09: "Switch",
	0x0A: "Transfer",
	0x0C: "Invert Display",
	0x0D: "Clear Maybe",
	0x11: "Show Icon",
	0x12: "Power Down",
	0x13: "Power On",
	0x15: "Invert Or Something",
	0x1F: "Request Something",
	0x23: "Initialize",
}

// DecodeCapture parses one captured frame back into its raw payload.
func DecodeCapture(raw []byte) (*Capture, error) {
	payload, declared, err := DecodeFrame(raw)
	if err != nil {
		return nil, err
	}

	action := "NA"
	if len(payload) > 0 {
		if name, ok := actionNames[payload[0]]; ok {
			action = name
		} else {
			action = fmt.Sprintf("Unknown 0x%02X", payload[0])
		}
	}

	return &Capture{
		Action:      action,
		DeclaredLen: declared,
		Payload:     payload,
	}, nil
}

// String renders the capture as an annotated hex dump, 16 bytes per line.
func (c *Capture) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s (declared %d, actual %d)", c.Action, c.DeclaredLen, len(c.Payload))
	for i := 0; i < len(c.Payload); i += 16 {
		end := i + 16
		if end > len(c.Payload) {
			end = len(c.Payload)
		}
		sb.WriteString("\n")
		for j, b := range c.Payload[i:end] {
			if j > 0 {
				sb.WriteString(" ")
			}
			fmt.Fprintf(&sb, "%02X", b)
		}
	}
	return sb.String()
}
