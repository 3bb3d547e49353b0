package coolled

import (
	"errors"
	"fmt"
)

var (
	// ErrFraming reports a captured frame that does not start with STX or
	// end with ETX, or that truncates an escape sequence.
	ErrFraming = errors.New("invalid frame structure")

	// ErrAckTimeout reports that the device did not acknowledge a chunk
	// within the configured timeout.
	ErrAckTimeout = errors.New("acknowledgment timeout")

	// ErrNotConnected reports an operation that requires an established
	// link.
	ErrNotConnected = errors.New("not connected")

	// ErrDeviceNotFound reports that scanning did not locate a matching
	// sign.
	ErrDeviceNotFound = errors.New("no matching device found")
)

// ErrorCode is a status byte reported by the sign in a notification.
type ErrorCode byte

const (
	Success            ErrorCode = 0x00
	TransmissionFailed ErrorCode = 0x01
	DeviceAbnormality  ErrorCode = 0x02
	DataError          ErrorCode = 0x03
	DataLengthError    ErrorCode = 0x04
	DataIDError        ErrorCode = 0x05
	DataChecksumError  ErrorCode = 0x06
)

func (e ErrorCode) String() string {
	switch e {
	case Success:
		return "success"
	case TransmissionFailed:
		return "transmission failed"
	case DeviceAbnormality:
		return "device abnormality"
	case DataError:
		return "data error"
	case DataLengthError:
		return "data length error"
	case DataIDError:
		return "data id error"
	case DataChecksumError:
		return "data checksum error"
	}
	return fmt.Sprintf("unknown error code 0x%02X", byte(e))
}

// DeviceError wraps a non-success ErrorCode decoded from a device
// notification. It is always fatal to the in-flight command.
type DeviceError struct {
	Code ErrorCode
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("device reported %s (0x%02X)", e.Code, byte(e.Code))
}

// CommandStatus is the lifecycle of the one in-flight command of a session.
type CommandStatus int

const (
	StatusNotStarted CommandStatus = iota
	StatusTransmitted
	StatusAcknowledged
	StatusError
)

func (s CommandStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "not started"
	case StatusTransmitted:
		return "transmitted"
	case StatusAcknowledged:
		return "acknowledged"
	case StatusError:
		return "error"
	}
	return fmt.Sprintf("CommandStatus(%d)", int(s))
}
