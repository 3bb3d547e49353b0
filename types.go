package coolled

import "fmt"

// Panel describes the physical LED matrix, addressed as width x height.
// Height is always a multiple of 8 on known hardware.
type Panel struct {
	Width  int
	Height int
}

// DefaultPanel is the common 96x16 layout, for encoding payloads without a
// connected device to read dimensions from.
var DefaultPanel = Panel{Width: 96, Height: 16}

// WidthTreatment controls how a source raster's width is fitted to the panel.
type WidthTreatment int

const (
	// WidthAsIs keeps the natural width of the rendered content.
	WidthAsIs WidthTreatment = iota
	// WidthScale resizes the content to the panel width, preserving aspect
	// ratio into the height.
	WidthScale
	// WidthCropPad keeps the content width but emits exactly the panel
	// width, cropping or padding according to the horizontal alignment.
	WidthCropPad
)

// HeightTreatment controls how a source raster's height is fitted to the
// panel. The output height is always the panel height.
type HeightTreatment int

const (
	// HeightCropPad crops or pads to the panel height per the vertical
	// alignment.
	HeightCropPad HeightTreatment = iota
	// HeightScale resizes the content to the panel height (and the width
	// proportionally when the width is left as-is).
	HeightScale
)

// HorizontalAlignment decides where cropped or padded content sits on the
// horizontal axis.
type HorizontalAlignment int

const (
	AlignNone HorizontalAlignment = iota
	AlignLeft
	AlignHCenter
	AlignRight
)

// VerticalAlignment decides where cropped or padded content sits on the
// vertical axis.
type VerticalAlignment int

const (
	AlignVCenter VerticalAlignment = iota
	AlignTop
	AlignBottom
)

// Mode is the text movement style of the sign.
type Mode byte

const (
	ModeStatic    Mode = 0x01
	ModeLeft      Mode = 0x02
	ModeRight     Mode = 0x03
	ModeUp        Mode = 0x04
	ModeDown      Mode = 0x05
	ModeSnowflake Mode = 0x06
	ModePicture   Mode = 0x07
	ModeLaser     Mode = 0x08
)

// ParseWidthTreatment maps the CLI spelling to a WidthTreatment.
func ParseWidthTreatment(s string) (WidthTreatment, error) {
	switch s {
	case "scale":
		return WidthScale, nil
	case "crop-pad":
		return WidthCropPad, nil
	case "as-is":
		return WidthAsIs, nil
	}
	return 0, fmt.Errorf("unknown width treatment %q (want scale/crop-pad/as-is)", s)
}

// ParseHeightTreatment maps the CLI spelling to a HeightTreatment.
func ParseHeightTreatment(s string) (HeightTreatment, error) {
	switch s {
	case "scale":
		return HeightScale, nil
	case "crop-pad":
		return HeightCropPad, nil
	}
	return 0, fmt.Errorf("unknown height treatment %q (want scale/crop-pad)", s)
}

// ParseHorizontalAlignment maps the CLI spelling to a HorizontalAlignment.
func ParseHorizontalAlignment(s string) (HorizontalAlignment, error) {
	switch s {
	case "left":
		return AlignLeft, nil
	case "center":
		return AlignHCenter, nil
	case "right":
		return AlignRight, nil
	case "none":
		return AlignNone, nil
	}
	return 0, fmt.Errorf("unknown horizontal alignment %q (want left/center/right/none)", s)
}

// ParseVerticalAlignment maps the CLI spelling to a VerticalAlignment.
func ParseVerticalAlignment(s string) (VerticalAlignment, error) {
	switch s {
	case "top":
		return AlignTop, nil
	case "center":
		return AlignVCenter, nil
	case "bottom":
		return AlignBottom, nil
	}
	return 0, fmt.Errorf("unknown vertical alignment %q (want top/center/bottom)", s)
}

// ParseMode maps the CLI spelling (or numeric value 1-8) to a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "static", "1":
		return ModeStatic, nil
	case "left", "2":
		return ModeLeft, nil
	case "right", "3":
		return ModeRight, nil
	case "up", "4":
		return ModeUp, nil
	case "down", "5":
		return ModeDown, nil
	case "snowflake", "6":
		return ModeSnowflake, nil
	case "picture", "7":
		return ModePicture, nil
	case "laser", "8":
		return ModeLaser, nil
	}
	return 0, fmt.Errorf("unknown mode %q", s)
}
