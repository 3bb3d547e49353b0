package coolled

import (
	"context"
	"strings"
	"time"
)

// minManufacturerDataLength is the smallest vendor advertisement payload
// that still carries panel dimensions.
const minManufacturerDataLength = 9

// Advertisement is what a scan learned about a peripheral before connecting.
type Advertisement struct {
	Name    string
	Address string

	// ManufacturerData is the vendor-specific advertisement payload:
	// bytes 0-5 MAC address, byte 6 panel height, byte 8 panel width.
	ManufacturerData []byte
}

// Panel extracts the sign's dimensions from the manufacturer data. It
// reports false when the payload is too short to carry them.
func (a Advertisement) Panel() (Panel, bool) {
	if len(a.ManufacturerData) < minManufacturerDataLength {
		return Panel{}, false
	}
	return Panel{
		Width:  int(a.ManufacturerData[8]),
		Height: int(a.ManufacturerData[6]),
	}, true
}

// Filter selects the peripheral to connect to. A non-empty address wins over
// the name.
type Filter struct {
	Address string
	Name    string
}

// Match reports whether an advertisement satisfies the filter.
func (f Filter) Match(adv Advertisement) bool {
	if f.Address != "" {
		return strings.EqualFold(adv.Address, f.Address)
	}
	return adv.Name == f.Name
}

// Transport abstracts the wireless stack. The driver only needs scanning,
// connecting and a single write/notify characteristic; everything else is
// the transport's business.
type Transport interface {
	// Scan locates a peripheral matching the filter within the timeout.
	Scan(ctx context.Context, filter Filter, timeout time.Duration) (Peripheral, error)
}

// Peripheral is a discovered but not yet connected device.
type Peripheral interface {
	Advertisement() Advertisement

	// Connect establishes the link. onDisconnect fires when the link
	// drops for any reason, including a local Close.
	Connect(ctx context.Context, timeout time.Duration, onDisconnect func(error)) (Link, error)
}

// Link is an established connection to the sign's command characteristic.
type Link interface {
	// Write sends one chunk. withResponse asks the transport for a
	// link-layer write confirmation; it is independent of the protocol's
	// notification acknowledgments.
	Write(data []byte, withResponse bool) error

	// Subscribe registers the single notification handler.
	Subscribe(handler func(data []byte)) error

	// Unsubscribe removes the notification handler.
	Unsubscribe() error

	// Connected reports whether the link is still up.
	Connected() bool

	// Close tears the link down.
	Close() error
}
