package coolled

import (
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

func TestDecodeCaptureSpeedFrame(t *testing.T) {
	frame, _ := hex.DecodeString("0100020607020503")
	capture, err := DecodeCapture(frame)
	if err != nil {
		t.Fatalf("DecodeCapture() error: %v", err)
	}
	if capture.Action != "Speed" {
		t.Errorf("Action = %q, want Speed", capture.Action)
	}
	if capture.DeclaredLen != 2 {
		t.Errorf("DeclaredLen = %d, want 2", capture.DeclaredLen)
	}
	if len(capture.Payload) != 2 || capture.Payload[0] != 0x07 || capture.Payload[1] != 0x01 {
		t.Errorf("Payload = % 02X, want 07 01", capture.Payload)
	}
}

func TestDecodeCaptureUnknownAction(t *testing.T) {
	capture, err := DecodeCapture(EncodeFrame([]byte{0x7E, 0x00}))
	if err != nil {
		t.Fatalf("DecodeCapture() error: %v", err)
	}
	if capture.Action != "Unknown 0x7E" {
		t.Errorf("Action = %q, want Unknown 0x7E", capture.Action)
	}
}

func TestDecodeCaptureMalformed(t *testing.T) {
	if _, err := DecodeCapture([]byte{0xDE, 0xAD}); !errors.Is(err, ErrFraming) {
		t.Errorf("DecodeCapture() error = %v, want ErrFraming", err)
	}
}

func TestCaptureString(t *testing.T) {
	payload := make([]byte, 20)
	payload[0] = 0x03
	capture, err := DecodeCapture(EncodeFrame(payload))
	if err != nil {
		t.Fatalf("DecodeCapture() error: %v", err)
	}

	s := capture.String()
	if !strings.HasPrefix(s, "Image (declared 20, actual 20)") {
		t.Errorf("String() header = %q", strings.SplitN(s, "\n", 2)[0])
	}
	lines := strings.Split(s, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header plus two hex rows)", len(lines))
	}
	if lines[1] != "03 00 00 00 00 00 00 00 00 00 00 00 00 00 00 00" {
		t.Errorf("first hex row = %q", lines[1])
	}
	if lines[2] != "00 00 00 00" {
		t.Errorf("second hex row = %q", lines[2])
	}
}
