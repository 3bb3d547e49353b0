// Package coolled is a host-side driver for CoolLEDX/CoolLEDM bluetooth LED
// matrix signs. It renders text, images and animations into the sign's
// bit-packed three-plane pixel format, wraps payloads in the sign's escaped
// STX/ETX wire frames, and manages the per-command acknowledgment protocol
// over a pluggable transport.
//
// The protocol is reverse-engineered; command bytes marked unproven in
// hardware.go are preserved as observed but have not been verified on real
// hardware.
package coolled
