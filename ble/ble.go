// Package ble implements the coolled transport boundary on top of the
// tinygo-org bluetooth stack. The signs expose a single vendor service
// (0xFFF0) whose 0xFFF1 characteristic carries both command writes and
// acknowledgment notifications.
package ble

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"tinygo.org/x/bluetooth"

	"github.com/coolled/coolled"
)

var (
	serviceUUID        = bluetooth.New16BitUUID(0xFFF0)
	characteristicUUID = bluetooth.New16BitUUID(0xFFF1)
)

// Transport adapts the platform BLE adapter to coolled.Transport.
type Transport struct {
	adapter *bluetooth.Adapter

	enableOnce sync.Once
	enableErr  error

	// The driver owns exactly one connection per transport, so a single
	// disconnect callback slot is enough.
	mu           sync.Mutex
	onDisconnect func(error)
}

// NewTransport wraps the platform's default adapter.
func NewTransport() *Transport {
	return &Transport{adapter: bluetooth.DefaultAdapter}
}

func (t *Transport) enable() error {
	t.enableOnce.Do(func() {
		t.enableErr = t.adapter.Enable()
		if t.enableErr != nil {
			return
		}
		t.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
			if connected {
				return
			}
			t.mu.Lock()
			cb := t.onDisconnect
			t.onDisconnect = nil
			t.mu.Unlock()
			if cb != nil {
				cb(fmt.Errorf("link to %s dropped", device.Address.String()))
			}
		})
	})
	return t.enableErr
}

// Scan looks for an advertising sign matching the filter and stops at the
// first hit. Devices whose manufacturer data is too short to carry panel
// dimensions are unusable; scanning skips them and keeps looking.
func (t *Transport) Scan(ctx context.Context, filter coolled.Filter, timeout time.Duration) (coolled.Peripheral, error) {
	if err := t.enable(); err != nil {
		return nil, fmt.Errorf("enabling adapter: %w", err)
	}

	found := make(chan bluetooth.ScanResult, 1)
	scanErr := make(chan error, 1)
	go func() {
		err := t.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			adv := advertisementFrom(result)
			if !filter.Match(adv) {
				return
			}
			if _, ok := adv.Panel(); !ok {
				return
			}
			select {
			case found <- result:
			default:
			}
			adapter.StopScan()
		})
		if err != nil {
			scanErr <- err
		}
	}()

	select {
	case result := <-found:
		return &peripheral{transport: t, result: result}, nil
	case err := <-scanErr:
		return nil, fmt.Errorf("scanning: %w", err)
	case <-time.After(timeout):
		t.adapter.StopScan()
		return nil, coolled.ErrDeviceNotFound
	case <-ctx.Done():
		t.adapter.StopScan()
		return nil, ctx.Err()
	}
}

func advertisementFrom(result bluetooth.ScanResult) coolled.Advertisement {
	adv := coolled.Advertisement{
		Name:    result.LocalName(),
		Address: result.Address.String(),
	}
	if elements := result.ManufacturerData(); len(elements) > 0 {
		adv.ManufacturerData = elements[0].Data
	}
	return adv
}

type peripheral struct {
	transport *Transport
	result    bluetooth.ScanResult
}

func (p *peripheral) Advertisement() coolled.Advertisement {
	return advertisementFrom(p.result)
}

func (p *peripheral) Connect(ctx context.Context, timeout time.Duration, onDisconnect func(error)) (coolled.Link, error) {
	device, err := p.transport.adapter.Connect(p.result.Address, bluetooth.ConnectionParams{
		ConnectionTimeout: bluetooth.NewDuration(timeout),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", p.result.Address.String(), err)
	}

	services, err := device.DiscoverServices([]bluetooth.UUID{serviceUUID})
	if err != nil || len(services) == 0 {
		device.Disconnect()
		return nil, fmt.Errorf("discovering service %s: %w", serviceUUID.String(), err)
	}
	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{characteristicUUID})
	if err != nil || len(chars) == 0 {
		device.Disconnect()
		return nil, fmt.Errorf("discovering characteristic %s: %w", characteristicUUID.String(), err)
	}

	l := &link{device: device, char: chars[0]}
	l.connected.Store(true)

	p.transport.mu.Lock()
	p.transport.onDisconnect = func(err error) {
		l.connected.Store(false)
		if onDisconnect != nil {
			onDisconnect(err)
		}
	}
	p.transport.mu.Unlock()

	return l, nil
}

type link struct {
	device    bluetooth.Device
	char      bluetooth.DeviceCharacteristic
	connected atomic.Bool

	// Notifications are enabled once with a fixed dispatcher; Subscribe
	// and Unsubscribe just swap the target. Disabling notifications is
	// not portable across the stack's platform backends.
	mu        sync.Mutex
	notifying bool
	handler   func([]byte)
}

// Write sends one chunk. The stack only offers write-without-response on
// this characteristic; the protocol's own notification acknowledgments
// provide the delivery feedback, so the withResponse hint is ignored.
func (l *link) Write(data []byte, _ bool) error {
	if !l.connected.Load() {
		return coolled.ErrNotConnected
	}
	_, err := l.char.WriteWithoutResponse(data)
	return err
}

func (l *link) Subscribe(handler func(data []byte)) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = handler
	if l.notifying {
		return nil
	}
	if err := l.char.EnableNotifications(l.dispatch); err != nil {
		return err
	}
	l.notifying = true
	return nil
}

func (l *link) Unsubscribe() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handler = nil
	return nil
}

func (l *link) dispatch(buf []byte) {
	l.mu.Lock()
	handler := l.handler
	l.mu.Unlock()
	if handler != nil {
		handler(buf)
	}
}

func (l *link) Connected() bool {
	return l.connected.Load()
}

func (l *link) Close() error {
	l.connected.Store(false)
	return l.device.Disconnect()
}
