package coolled

import "testing"

func TestParseWidthTreatment(t *testing.T) {
	tests := []struct {
		in   string
		want WidthTreatment
	}{
		{"scale", WidthScale},
		{"crop-pad", WidthCropPad},
		{"as-is", WidthAsIs},
	}
	for _, tt := range tests {
		got, err := ParseWidthTreatment(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseWidthTreatment(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseWidthTreatment("stretch"); err == nil {
		t.Error("expected error for unknown treatment")
	}
}

func TestParseAlignments(t *testing.T) {
	if got, err := ParseHorizontalAlignment("none"); err != nil || got != AlignNone {
		t.Errorf("ParseHorizontalAlignment(none) = %v, %v", got, err)
	}
	if got, err := ParseVerticalAlignment("center"); err != nil || got != AlignVCenter {
		t.Errorf("ParseVerticalAlignment(center) = %v, %v", got, err)
	}
	if _, err := ParseHorizontalAlignment("middle"); err == nil {
		t.Error("expected error for unknown horizontal alignment")
	}
	if _, err := ParseVerticalAlignment("baseline"); err == nil {
		t.Error("expected error for unknown vertical alignment")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"static", ModeStatic},
		{"1", ModeStatic},
		{"left", ModeLeft},
		{"snowflake", ModeSnowflake},
		{"laser", ModeLaser},
		{"8", ModeLaser},
	}
	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseMode(%q) = %v, %v", tt.in, got, err)
		}
	}
	if _, err := ParseMode("9"); err == nil {
		t.Error("expected error for out-of-range mode")
	}
}

func TestErrorCodeString(t *testing.T) {
	if got := DataChecksumError.String(); got != "data checksum error" {
		t.Errorf("String() = %q", got)
	}
	if got := ErrorCode(0x7F).String(); got != "unknown error code 0x7F" {
		t.Errorf("String() = %q", got)
	}
}

func TestCommandStatusString(t *testing.T) {
	tests := []struct {
		status CommandStatus
		want   string
	}{
		{StatusNotStarted, "not started"},
		{StatusTransmitted, "transmitted"},
		{StatusAcknowledged, "acknowledged"},
		{StatusError, "error"},
	}
	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestDeviceErrorMessage(t *testing.T) {
	err := &DeviceError{Code: DataLengthError}
	want := "device reported data length error (0x04)"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
