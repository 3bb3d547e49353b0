package coolled

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
)

var testHW = HardwareFor(CoolLEDX)

func encodeHex(t *testing.T, c Command) []string {
	t.Helper()
	out, err := EncodeCommandHex(c, DefaultPanel, testHW)
	if err != nil {
		t.Fatalf("EncodeCommandHex() error: %v", err)
	}
	return out
}

func TestSetSpeedWireFormat(t *testing.T) {
	tests := []struct {
		speed int
		want  string
	}{
		{0, "01000206070003"},
		{1, "0100020607020503"},
		{2, "0100020607020603"},
		{3, "0100020607020703"},
		{4, "01000206070403"},
		{255, "0100020607ff03"},
	}
	for _, tt := range tests {
		c, err := NewSetSpeed(tt.speed)
		if err != nil {
			t.Fatalf("NewSetSpeed(%d) error: %v", tt.speed, err)
		}
		got := encodeHex(t, c)
		if len(got) != 1 || got[0] != tt.want {
			t.Errorf("SetSpeed(%d) = %v, want [%s]", tt.speed, got, tt.want)
		}
	}
}

func TestByteRangeValidation(t *testing.T) {
	for _, v := range []int{-1, 256, 1000} {
		if _, err := NewSetSpeed(v); err == nil {
			t.Errorf("NewSetSpeed(%d): expected error", v)
		}
		if _, err := NewSetBrightness(v); err == nil {
			t.Errorf("NewSetBrightness(%d): expected error", v)
		}
		if _, err := NewStartupWithBatteryLevel(v); err == nil {
			t.Errorf("NewStartupWithBatteryLevel(%d): expected error", v)
		}
	}
}

func TestSettingCommandBytes(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want []byte
	}{
		{"initialize", &Initialize{}, []byte{0x23, 0x01}},
		{"battery", mustCmd(NewStartupWithBatteryLevel(42)), []byte{0x23, 0x2A}},
		{"brightness", mustCmd(NewSetBrightness(0x80)), []byte{0x08, 0x80}},
		{"mode", NewSetMode(ModeLaser), []byte{0x06, 0x08}},
		{"app on", NewTurnOnOffApp(true), []byte{0x09, 0x01}},
		{"app off", NewTurnOnOffApp(false), []byte{0x09, 0x00}},
		{"button on", NewTurnOnOffButton(true), []byte{0x13, 0x01}},
		{"button off", NewTurnOnOffButton(false), []byte{0x05, 0x00}},
		{"invert", NewInvertDisplay(true), []byte{0x0C, 0x01}},
		{"revert", NewInvertDisplay(false), []byte{0x0C, 0x00}},
		{"mirror", &InvertOrSomething{}, []byte{0x15}},
		{"power down", &PowerDown{}, []byte{0x12}},
		{"charging", &ShowChargingAnimation{}, []byte{0x11}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw, err := tt.cmd.RawDataChunks(DefaultPanel, testHW)
			if err != nil {
				t.Fatalf("RawDataChunks() error: %v", err)
			}
			if len(raw) != 1 || !bytes.Equal(raw[0], tt.want) {
				t.Errorf("raw = %v, want [% 02X]", raw, tt.want)
			}
		})
	}
}

func mustCmd[T Command](c T, err error) T {
	if err != nil {
		panic(err)
	}
	return c
}

func TestAckExpectations(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want bool
	}{
		{"speed", mustCmd(NewSetSpeed(1)), true},
		{"brightness", mustCmd(NewSetBrightness(1)), true},
		{"initialize", &Initialize{}, true},
		{"app switch", NewTurnOnOffApp(true), true},
		{"text", NewSetText("hi", TextOptions{}), true},
		{"raw", mustCmd(NewSendRawData("01")), true},
		{"mode", NewSetMode(ModeStatic), false},
		{"button switch", NewTurnOnOffButton(true), false},
		{"music", mustCmd(NewSetMusicBars(make([]byte, 8), make([]byte, 8))), false},
		{"invert", NewInvertDisplay(true), false},
		{"mirror", &InvertOrSomething{}, false},
		{"power down", &PowerDown{}, false},
		{"charging", &ShowChargingAnimation{}, false},
	}
	for _, tt := range tests {
		if got := tt.cmd.ExpectsAck(); got != tt.want {
			t.Errorf("%s: ExpectsAck() = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestSendRawDataPassthrough(t *testing.T) {
	c, err := NewSendRawData("01 00 02 06 07 ff 03")
	if err != nil {
		t.Fatalf("NewSendRawData() error: %v", err)
	}
	if !c.RawPassthrough() {
		t.Error("RawPassthrough() = false")
	}

	chunks, err := EncodeCommand(c, DefaultPanel, testHW)
	if err != nil {
		t.Fatalf("EncodeCommand() error: %v", err)
	}
	want := []byte{0x01, 0x00, 0x02, 0x06, 0x07, 0xFF, 0x03}
	if len(chunks) != 1 || !bytes.Equal(chunks[0], want) {
		t.Errorf("chunks = %v, want [% 02X]", chunks, want)
	}

	if _, err := NewSendRawData("zz"); err == nil {
		t.Error("NewSendRawData(zz): expected error")
	}
}

func TestSetMusicBars(t *testing.T) {
	heights := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	colors := []byte{8, 7, 6, 5, 4, 3, 2, 1}
	c, err := NewSetMusicBars(heights, colors)
	if err != nil {
		t.Fatalf("NewSetMusicBars() error: %v", err)
	}
	raw, err := c.RawDataChunks(DefaultPanel, testHW)
	if err != nil {
		t.Fatalf("RawDataChunks() error: %v", err)
	}
	want := append([]byte{0x01}, append(heights, colors...)...)
	if !bytes.Equal(raw[0], want) {
		t.Errorf("raw = % 02X, want % 02X", raw[0], want)
	}

	if _, err := NewSetMusicBars(heights[:7], colors); err == nil {
		t.Error("short heights: expected error")
	}
	if _, err := NewSetMusicBars(heights, append(colors, 0)); err == nil {
		t.Error("long colors: expected error")
	}
}

func TestSetImageWireFormat(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 8))
	for y := 0; y < 8; y++ {
		img.Set(0, y, color.RGBA{R: 0xFF, A: 0xFF})
	}

	got, err := EncodeCommandHex(NewSetImage(img, RenderOptions{}), Panel{Width: 1, Height: 8}, testHW)
	if err != nil {
		t.Fatalf("EncodeCommandHex() error: %v", err)
	}
	want := "0100250207" + "00001d00001d" + strings.Repeat("00", 24) + "000207ff0000fc03"
	if len(got) != 1 || got[0] != want {
		t.Errorf("SetImage = %v, want [%s]", got, want)
	}
}

func TestSetImageMultiChunkWireFormat(t *testing.T) {
	// 40 red columns on a 40x8 panel: 120 plane bytes plus the header make
	// a 146-byte payload, split across two chunks.
	img := image.NewRGBA(image.Rect(0, 0, 40, 8))
	for x := 0; x < 40; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: 0xFF, A: 0xFF})
		}
	}

	got, err := EncodeCommandHex(NewSetImage(img, RenderOptions{}), Panel{Width: 40, Height: 8}, testHW)
	if err != nil {
		t.Fatalf("EncodeCommandHex() error: %v", err)
	}
	want := []string{
		"0100880207" + "0000920000" + "80" +
			strings.Repeat("00", 24) + "0078" + strings.Repeat("ff", 40) + strings.Repeat("00", 62) +
			"6a03",
		"01001a0207" + "000092" + "000205" + "12" +
			strings.Repeat("00", 18) +
			"8103",
	}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("SetImage = %v, want %v", got, want)
	}
}

func TestSetAnimationPayloadTooLarge(t *testing.T) {
	// 255 frames at 96x16 pack to well over the 16-bit payload limit; the
	// encode path must refuse instead of wrapping the length fields.
	frame := image.NewRGBA(image.Rect(0, 0, 96, 16))
	frames := make([]image.Image, 255)
	for i := range frames {
		frames[i] = frame
	}

	cmd, err := NewSetAnimation(frames, 100, RenderOptions{})
	if err != nil {
		t.Fatalf("NewSetAnimation() error: %v", err)
	}
	if _, err := cmd.RawDataChunks(Panel{Width: 96, Height: 16}, testHW); err == nil {
		t.Fatal("RawDataChunks(): expected error for oversized payload")
	}
}

// oversizedSegment bypasses ChopUpData to hit EncodeCommand's own length
// guard on the frame prefix.
type oversizedSegment struct{ acked }

func (oversizedSegment) RawDataChunks(Panel, Hardware) ([][]byte, error) {
	return [][]byte{make([]byte, 70000)}, nil
}

func TestEncodeCommandOversizedSegment(t *testing.T) {
	if _, err := EncodeCommand(oversizedSegment{}, DefaultPanel, testHW); err == nil {
		t.Fatal("EncodeCommand(): expected error for oversized segment")
	}
}

func TestSetAnimationValidation(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	frames := []image.Image{frame}

	if _, err := NewSetAnimation(nil, 100, RenderOptions{}); err == nil {
		t.Error("no frames: expected error")
	}
	if _, err := NewSetAnimation(frames, -1, RenderOptions{}); err == nil {
		t.Error("negative speed: expected error")
	}
	if _, err := NewSetAnimation(frames, 0x10000, RenderOptions{}); err == nil {
		t.Error("speed overflow: expected error")
	}

	many := make([]image.Image, 256)
	for i := range many {
		many[i] = frame
	}
	if _, err := NewSetAnimation(many, 100, RenderOptions{}); err == nil {
		t.Error("256 frames: expected error")
	}
}

func TestSetJTSelectsAction(t *testing.T) {
	still := []byte(`[{"data":{"graffitiData":[1,2]}}]`)
	raw, err := NewSetJT(still).RawDataChunks(DefaultPanel, testHW)
	if err != nil {
		t.Fatalf("graffiti RawDataChunks() error: %v", err)
	}
	if raw[0][0] != testHW.CommandByte(ActionImage) {
		t.Errorf("graffiti action byte %02X, want image", raw[0][0])
	}

	ani := []byte(`[{"data":{"frameNum":2,"delays":100,"aniData":[1,2]}}]`)
	raw, err = NewSetJT(ani).RawDataChunks(DefaultPanel, testHW)
	if err != nil {
		t.Fatalf("aniData RawDataChunks() error: %v", err)
	}
	if raw[0][0] != testHW.CommandByte(ActionAnimation) {
		t.Errorf("animation action byte %02X, want animation", raw[0][0])
	}
}

func TestSetTextAsImageUsesImageAction(t *testing.T) {
	raw, err := NewSetText("hi", TextOptions{AsImage: true}).RawDataChunks(DefaultPanel, testHW)
	if err != nil {
		t.Fatalf("RawDataChunks() error: %v", err)
	}
	if raw[0][0] != testHW.CommandByte(ActionImage) {
		t.Errorf("action byte %02X, want image", raw[0][0])
	}

	raw, err = NewSetText("hi", TextOptions{}).RawDataChunks(DefaultPanel, testHW)
	if err != nil {
		t.Fatalf("RawDataChunks() error: %v", err)
	}
	if raw[0][0] != testHW.CommandByte(ActionText) {
		t.Errorf("action byte %02X, want text", raw[0][0])
	}
}
