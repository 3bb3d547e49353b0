package coolled

import (
	"encoding/hex"
	"fmt"
	"image"
	"strings"
)

const musicBarCount = 8

func validateByteRange(what string, v int) (byte, error) {
	if v < 0x00 || v > 0xFF {
		return 0, fmt.Errorf("%s must be between 0x00 and 0xFF, not %d", what, v)
	}
	return byte(v), nil
}

// SendRawData transmits pre-encoded bytes verbatim, bypassing chunking,
// framing and escaping. Debug use only.
type SendRawData struct {
	acked
	data []byte
}

// NewSendRawData parses a hex string (whitespace allowed) into a raw debug
// command.
func NewSendRawData(hexStr string) (*SendRawData, error) {
	clean := strings.Join(strings.Fields(hexStr), "")
	data, err := hex.DecodeString(clean)
	if err != nil {
		return nil, fmt.Errorf("parsing raw hex data: %w", err)
	}
	return &SendRawData{data: data}, nil
}

func (c *SendRawData) RawDataChunks(Panel, Hardware) ([][]byte, error) {
	return [][]byte{c.data}, nil
}

func (c *SendRawData) RawPassthrough() bool { return true }

// Initialize runs the sign's initialize action with its standard argument.
type Initialize struct {
	acked
}

func (c *Initialize) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	return [][]byte{{hw.CommandByte(ActionInitialize), 0x01}}, nil
}

// StartupWithBatteryLevel runs the initialize action carrying a battery
// level byte instead of the standard argument.
type StartupWithBatteryLevel struct {
	acked
	level byte
}

func NewStartupWithBatteryLevel(level int) (*StartupWithBatteryLevel, error) {
	b, err := validateByteRange("battery level", level)
	if err != nil {
		return nil, err
	}
	return &StartupWithBatteryLevel{level: b}, nil
}

func (c *StartupWithBatteryLevel) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	return [][]byte{{hw.CommandByte(ActionInitialize), c.level}}, nil
}

// SetSpeed sets the scroll speed, 0x00 (slowest) to 0xFF.
type SetSpeed struct {
	acked
	speed byte
}

func NewSetSpeed(speed int) (*SetSpeed, error) {
	b, err := validateByteRange("speed", speed)
	if err != nil {
		return nil, err
	}
	return &SetSpeed{speed: b}, nil
}

func (c *SetSpeed) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	return [][]byte{{hw.CommandByte(ActionSpeed), c.speed}}, nil
}

// SetBrightness sets the display brightness, 0x00 to 0xFF.
type SetBrightness struct {
	acked
	brightness byte
}

func NewSetBrightness(brightness int) (*SetBrightness, error) {
	b, err := validateByteRange("brightness", brightness)
	if err != nil {
		return nil, err
	}
	return &SetBrightness{brightness: b}, nil
}

func (c *SetBrightness) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	return [][]byte{{hw.CommandByte(ActionBrightness), c.brightness}}, nil
}

// SetMode sets the text movement style.
type SetMode struct {
	unacked
	mode Mode
}

func NewSetMode(mode Mode) *SetMode {
	return &SetMode{mode: mode}
}

func (c *SetMode) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	return [][]byte{{hw.CommandByte(ActionMode), byte(c.mode)}}, nil
}

// TurnOnOffApp switches the display on or off the way the vendor app does.
type TurnOnOffApp struct {
	acked
	on bool
}

func NewTurnOnOffApp(on bool) *TurnOnOffApp {
	return &TurnOnOffApp{on: on}
}

func (c *TurnOnOffApp) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	onoff := byte(0x00)
	if c.on {
		onoff = 0x01
	}
	return [][]byte{{hw.CommandByte(ActionSwitch), onoff}}, nil
}

// TurnOnOffButton switches the display on or off the way the hardware button
// does. The on and off variants use different command bytes.
type TurnOnOffButton struct {
	unacked
	on bool
}

func NewTurnOnOffButton(on bool) *TurnOnOffButton {
	return &TurnOnOffButton{on: on}
}

func (c *TurnOnOffButton) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	if c.on {
		return [][]byte{{hw.CommandByte(ActionButtonOn), 0x01}}, nil
	}
	return [][]byte{{hw.CommandByte(ActionButtonOff), 0x00}}, nil
}

// ShowChargingAnimation displays the charging icon.
type ShowChargingAnimation struct {
	unacked
}

func (c *ShowChargingAnimation) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	return [][]byte{{hw.CommandByte(ActionShowIcon)}}, nil
}

// InvertDisplay inverts (or restores) the display.
type InvertDisplay struct {
	unacked
	inverted bool
}

func NewInvertDisplay(inverted bool) *InvertDisplay {
	return &InvertDisplay{inverted: inverted}
}

func (c *InvertDisplay) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	arg := byte(0x00)
	if c.inverted {
		arg = 0x01
	}
	return [][]byte{{hw.CommandByte(ActionInvertDisplay), arg}}, nil
}

// InvertOrSomething mirrors the display. Unproven; preserved from traffic
// captures.
type InvertOrSomething struct {
	unacked
}

func (c *InvertOrSomething) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	return [][]byte{{hw.CommandByte(ActionInvertOrSomething)}}, nil
}

// PowerDown powers the sign off.
type PowerDown struct {
	unacked
}

func (c *PowerDown) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	return [][]byte{{hw.CommandByte(ActionPowerDown)}}, nil
}

// SetMusicBars drives the music visualizer: 8 bar heights and 8 bar colors.
type SetMusicBars struct {
	unacked
	heights []byte
	colors  []byte
}

func NewSetMusicBars(heights, colors []byte) (*SetMusicBars, error) {
	if len(heights) != musicBarCount {
		return nil, fmt.Errorf("heights must be %d bytes, not %d", musicBarCount, len(heights))
	}
	if len(colors) != musicBarCount {
		return nil, fmt.Errorf("colors must be %d bytes, not %d", musicBarCount, len(colors))
	}
	c := &SetMusicBars{
		heights: append([]byte(nil), heights...),
		colors:  append([]byte(nil), colors...),
	}
	return c, nil
}

func (c *SetMusicBars) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	data := make([]byte, 0, 1+2*musicBarCount)
	data = append(data, hw.CommandByte(ActionMusic))
	data = append(data, c.heights...)
	data = append(data, c.colors...)
	return [][]byte{data}, nil
}

// SetText renders text (with optional inline color runs) and sends it under
// the text action, or under the image action when Options.AsImage is set.
type SetText struct {
	acked
	text    string
	options TextOptions
}

func NewSetText(text string, options TextOptions) *SetText {
	options.applyDefaults()
	return &SetText{text: text, options: options}
}

func (c *SetText) RawDataChunks(panel Panel, hw Hardware) ([][]byte, error) {
	payload, err := TextPayload(c.text, panel, c.options)
	if err != nil {
		return nil, fmt.Errorf("rendering text: %w", err)
	}
	action := ActionText
	if c.options.AsImage {
		action = ActionImage
	}
	return ChopUpData(payload, hw.CommandByte(action))
}

// SetImage sends a still image. The image must already be decoded; file
// format handling belongs to the caller.
type SetImage struct {
	acked
	img     image.Image
	options RenderOptions
}

func NewSetImage(img image.Image, options RenderOptions) *SetImage {
	options.applyDefaults()
	return &SetImage{img: img, options: options}
}

func (c *SetImage) RawDataChunks(panel Panel, hw Hardware) ([][]byte, error) {
	payload, err := ImagePayload(c.img, panel, c.options)
	if err != nil {
		return nil, fmt.Errorf("rendering image: %w", err)
	}
	return ChopUpData(payload, hw.CommandByte(ActionImage))
}

// SetAnimation sends a frame sequence. Frames are composited cumulatively
// and force-fit to the panel.
type SetAnimation struct {
	acked
	frames  []image.Image
	speed   int
	options RenderOptions
}

func NewSetAnimation(frames []image.Image, speed int, options RenderOptions) (*SetAnimation, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("animation needs at least one frame")
	}
	if len(frames) > 0xFF {
		return nil, fmt.Errorf("animation has %d frames, at most 255 fit the payload", len(frames))
	}
	if speed < 0 || speed > 0xFFFF {
		return nil, fmt.Errorf("animation speed must be between 0 and 65535, not %d", speed)
	}
	options.applyDefaults()
	// None makes no sense for a force-fit animation; treat it as centered,
	// matching the vendor app.
	if options.Horizontal == AlignNone {
		options.Horizontal = AlignHCenter
	}
	return &SetAnimation{frames: frames, speed: speed, options: options}, nil
}

func (c *SetAnimation) RawDataChunks(panel Panel, hw Hardware) ([][]byte, error) {
	payload, err := AnimationPayload(c.frames, panel, c.speed, c.options)
	if err != nil {
		return nil, fmt.Errorf("rendering animation: %w", err)
	}
	return ChopUpData(payload, hw.CommandByte(ActionAnimation))
}

// SetJT sends a vendor "JT" container. The contained bit-stream is passed
// through verbatim; only the surrounding payload header is built here.
type SetJT struct {
	acked
	raw []byte
}

func NewSetJT(raw []byte) *SetJT {
	return &SetJT{raw: raw}
}

func (c *SetJT) RawDataChunks(_ Panel, hw Hardware) ([][]byte, error) {
	payload, static, err := JTPayload(c.raw)
	if err != nil {
		return nil, fmt.Errorf("parsing JT container: %w", err)
	}
	action := ActionAnimation
	if static {
		action = ActionImage
	}
	return ChopUpData(payload, hw.CommandByte(action))
}
