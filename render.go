package coolled

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/nfnt/resize"
	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultAnimationSpeed is the speed the vendor app uses when none is
	// given.
	DefaultAnimationSpeed = 512

	pixelsPerByte = 8

	// Text rendering scratch canvas; cropped to the drawn content
	// afterwards.
	textCanvasWidth  = 2048
	textCanvasHeight = 64

	// The text payload embeds a placeholder character block alongside the
	// rendered pixels. Messages longer than 255 characters widen the
	// length field to two bytes and shrink the block by one, a quirk the
	// hardware expects.
	maxShortTextLength = 255
	textBufferLength   = 80

	defaultStartColorMarker = "<"
	defaultEndColorMarker   = ">"
)

// RenderOptions controls how source rasters are fitted to the panel. The
// zero value keeps the natural width, crops/pads the height, applies no
// horizontal alignment and centers vertically, on a black background.
type RenderOptions struct {
	BackgroundColor color.RGBA
	Width           WidthTreatment
	Height          HeightTreatment
	Horizontal      HorizontalAlignment
	Vertical        VerticalAlignment
}

func (o *RenderOptions) applyDefaults() {
	if o.BackgroundColor.A == 0 {
		o.BackgroundColor = color.RGBA{A: 0xFF} // opaque black
	}
}

// TextOptions extends RenderOptions with text rendering parameters. The zero
// value renders white text with the built-in fixed font and <#rrggbb> color
// markers.
type TextOptions struct {
	RenderOptions

	// DefaultColor is used until the first inline color marker.
	DefaultColor color.RGBA

	// StartMarker/EndMarker delimit inline color tokens. Change them if
	// the message itself needs the default < > characters.
	StartMarker string
	EndMarker   string

	// Face draws the glyphs. Defaults to basicfont.Face7x13; load a
	// truetype face for anything nicer.
	Face font.Face

	// AsImage sends the rendering under the image action, without the
	// placeholder character block.
	AsImage bool
}

func (o *TextOptions) applyDefaults() {
	o.RenderOptions.applyDefaults()
	if o.DefaultColor.A == 0 {
		o.DefaultColor = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	if o.StartMarker == "" {
		o.StartMarker = defaultStartColorMarker
	}
	if o.EndMarker == "" {
		o.EndMarker = defaultEndColorMarker
	}
	if o.Face == nil {
		o.Face = basicfont.Face7x13
	}
}

// ParseColor accepts "#rrggbb" or an SVG 1.1 color name.
func ParseColor(s string) (color.RGBA, error) {
	if strings.HasPrefix(s, "#") {
		if len(s) != 7 {
			return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb", s)
		}
		var r, g, b uint8
		if _, err := fmt.Sscanf(s, "#%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
		}
		return color.RGBA{R: r, G: g, B: b, A: 0xFF}, nil
	}
	if c, ok := colornames.Map[strings.ToLower(s)]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("unknown color name %q", s)
}

// colorRun is a stretch of text plus the color token that follows it. The
// token changes the color for all subsequently rendered text, matching the
// marker's trailing position in the source.
type colorRun struct {
	text      string
	nextColor string // empty when the run ends without a marker
}

func parseColorRuns(text, startMarker, endMarker string) []colorRun {
	var runs []colorRun
	for _, segment := range strings.Split(text, endMarker) {
		pieces := strings.Split(segment, startMarker)
		if len(pieces) == 1 {
			runs = append(runs, colorRun{text: pieces[0]})
			continue
		}
		runs = append(runs, colorRun{
			text:      strings.Join(pieces[:len(pieces)-1], ""),
			nextColor: pieces[len(pieces)-1],
		})
	}
	return runs
}

// RenderText draws text with embedded color runs onto a scratch canvas and
// crops it to the tight bounding box of the drawn content. The extra bottom
// pixel keeps descenders from being clipped.
func RenderText(text string, opt TextOptions) (image.Image, error) {
	opt.applyDefaults()

	canvas := image.NewRGBA(image.Rect(0, 0, textCanvasWidth, textCanvasHeight))
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(opt.BackgroundColor), image.Point{}, draw.Src)

	ascent := opt.Face.Metrics().Ascent.Ceil()
	current := opt.DefaultColor
	xOffset := 0
	yMax := 1

	for _, run := range parseColorRuns(text, opt.StartMarker, opt.EndMarker) {
		if run.text != "" {
			d := font.Drawer{
				Dst:  canvas,
				Src:  image.NewUniform(current),
				Face: opt.Face,
				Dot:  fixed.P(xOffset, 1+ascent),
			}
			d.DrawString(run.text)

			bounds, advance := font.BoundString(opt.Face, run.text)
			xOffset += advance.Ceil()
			if extent := 1 + ascent + bounds.Max.Y.Ceil(); extent > yMax {
				yMax = extent
			}
		}
		if run.nextColor != "" {
			c, err := ParseColor(run.nextColor)
			if err != nil {
				return nil, err
			}
			current = c
		}
	}

	return canvas.SubImage(image.Rect(0, 0, xOffset, yMax+1)), nil
}

// TextPayload renders text and assembles the full content payload, including
// the placeholder character block (unless opt.AsImage is set).
func TextPayload(text string, panel Panel, opt TextOptions) ([]byte, error) {
	opt.applyDefaults()
	img, err := RenderText(text, opt)
	if err != nil {
		return nil, err
	}
	meta := &text
	if opt.AsImage {
		meta = nil
	}
	return contentPayload(img, panel, meta, opt.RenderOptions)
}

// ImagePayload assembles the content payload for a still image.
func ImagePayload(img image.Image, panel Panel, opt RenderOptions) ([]byte, error) {
	opt.applyDefaults()
	return contentPayload(img, panel, nil, opt)
}

// contentPayload fits the raster to the panel, packs it into bit-planes and
// wraps it in the payload header the sign expects.
func contentPayload(img image.Image, panel Panel, text *string, opt RenderOptions) ([]byte, error) {
	payload := make([]byte, 24) // reserved header block, all zero

	if text != nil {
		runes := utf8.RuneCountInString(*text)
		if runes > 0xFFFF {
			return nil, fmt.Errorf("text is %d characters, the length field holds at most 65535", runes)
		}
		bufLen := textBufferLength
		if runes > maxShortTextLength {
			payload = binary.BigEndian.AppendUint16(payload, uint16(runes))
			bufLen = textBufferLength - 1
		} else {
			payload = append(payload, byte(runes))
		}
		block := make([]byte, bufLen)
		for i := 0; i < runes && i < bufLen; i++ {
			block[i] = 0x30
		}
		payload = append(payload, block...)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	newWidth, newHeight, outWidth := width, height, width

	if width > 0 && height > 0 {
		switch opt.Width {
		case WidthScale:
			newWidth = panel.Width
			outWidth = panel.Width
			newHeight = panel.Width * height / width
		case WidthCropPad:
			outWidth = panel.Width
		}
		if opt.Height == HeightScale {
			newHeight = panel.Height
			if opt.Width == WidthAsIs {
				newWidth = panel.Height * width / height
				outWidth = newWidth
				if outWidth < panel.Width {
					outWidth = panel.Width
				}
			}
		}
		if newWidth != width || newHeight != height {
			img = resize.Resize(uint(newWidth), uint(newHeight), img, resize.Bilinear)
		}
	}

	r, g, b, err := pixelBitFields(img, outWidth, panel.Height, opt.BackgroundColor, opt.Horizontal, opt.Vertical)
	if err != nil {
		return nil, err
	}

	bits := make([]byte, 0, len(r)*3)
	bits = append(bits, r...)
	bits = append(bits, g...)
	bits = append(bits, b...)

	if len(bits) > 0xFFFF {
		return nil, fmt.Errorf("bit-stream is %d bytes, the length field holds at most 65535", len(bits))
	}
	payload = binary.BigEndian.AppendUint16(payload, uint16(len(bits)))
	return append(payload, bits...), nil
}

// AnimationPayload composites frames cumulatively (the hardware does not
// clear its frame buffer between frames) and packs every composite,
// force-fit to the exact panel size, into one payload.
func AnimationPayload(frames []image.Image, panel Panel, speed int, opt RenderOptions) ([]byte, error) {
	opt.applyDefaults()
	if len(frames) == 0 {
		return nil, fmt.Errorf("animation needs at least one frame")
	}

	// The first frame's bounds define the canvas; later frames composite
	// into that coordinate space.
	combined := image.NewRGBA(frames[0].Bounds())

	var bitsR, bitsG, bitsB []byte
	for _, frame := range frames {
		// Frames composite at their own bounds, so a delta frame covering
		// a sub-rectangle lands at its offset rather than the origin.
		draw.Draw(combined, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)

		r, g, b, err := pixelBitFields(combined, panel.Width, panel.Height, opt.BackgroundColor, opt.Horizontal, opt.Vertical)
		if err != nil {
			return nil, err
		}
		bitsR = append(bitsR, r...)
		bitsG = append(bitsG, g...)
		bitsB = append(bitsB, b...)
	}

	payload := make([]byte, 24)
	payload = append(payload, byte(len(frames)))
	payload = binary.BigEndian.AppendUint16(payload, uint16(speed))
	payload = append(payload, bitsR...)
	payload = append(payload, bitsG...)
	return append(payload, bitsB...), nil
}

// jtData is the first element's data object of a JT container: a UTF-8 JSON
// array carrying either a pre-rendered animation bit-stream or a static
// graffiti bit-stream.
type jtData struct {
	PixelWidth   int   `json:"pixelWidth"`
	PixelHeight  int   `json:"pixelHeight"`
	FrameNum     int   `json:"frameNum"`
	Delays       int   `json:"delays"`
	AniData      []int `json:"aniData"`
	GraffitiData []int `json:"graffitiData"`
}

// JTPayload builds a content payload from a JT container. The contained
// bit-stream is copied through verbatim. It reports static=true when the
// container holds graffiti (still image) data, which selects the image
// action and skips the frame/speed fields.
func JTPayload(raw []byte) (payload []byte, static bool, err error) {
	var docs []struct {
		Data jtData `json:"data"`
	}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, false, fmt.Errorf("decoding container: %w", err)
	}
	if len(docs) == 0 {
		return nil, false, fmt.Errorf("container holds no elements")
	}
	data := docs[0].Data

	bits := data.AniData
	if data.GraffitiData != nil {
		static = true
		bits = data.GraffitiData
	}
	if bits == nil {
		return nil, false, fmt.Errorf("container has neither aniData nor graffitiData")
	}
	if len(bits) > 0xFFFF {
		return nil, false, fmt.Errorf("bit-stream is %d bytes, the length field holds at most 65535", len(bits))
	}

	frames := data.FrameNum
	if frames == 0 {
		frames = 1
	}
	if frames > 0xFF {
		return nil, false, fmt.Errorf("container declares %d frames, at most 255 fit the payload", frames)
	}
	if data.Delays < 0 || data.Delays > 0xFFFF {
		return nil, false, fmt.Errorf("container delay %d out of range", data.Delays)
	}

	payload = make([]byte, 24)
	if !static {
		payload = append(payload, byte(frames))
		payload = binary.BigEndian.AppendUint16(payload, uint16(data.Delays))
	}
	payload = binary.BigEndian.AppendUint16(payload, uint16(len(bits)))
	for i, v := range bits {
		if v < 0 || v > 0xFF {
			return nil, false, fmt.Errorf("bit-stream byte %d out of range: %d", i, v)
		}
		payload = append(payload, byte(v))
	}
	return payload, static, nil
}

// pixelBitFields packs the raster into one bit-plane per color channel.
// Columns run left to right, rows top to bottom within a column, eight rows
// per byte with the topmost row in the most significant bit. Pixels outside
// the raster's aligned footprint take the background color. A channel is on
// when its component is at least 128.
func pixelBitFields(img image.Image, outWidth, outHeight int, bg color.RGBA, halign HorizontalAlignment, valign VerticalAlignment) (r, g, b []byte, err error) {
	if outHeight%pixelsPerByte != 0 {
		return nil, nil, nil, fmt.Errorf("target height %d must be divisible by 8", outHeight)
	}

	bounds := img.Bounds()
	imgWidth, imgHeight := bounds.Dx(), bounds.Dy()

	// leftOffset pads a narrow raster into the output; srcX0 crops a wide
	// one. Only one of the pair is ever non-zero per axis.
	leftOffset, srcX0 := 0, 0
	switch halign {
	case AlignHCenter:
		if imgWidth < outWidth {
			leftOffset = (outWidth - imgWidth) / 2
		} else {
			srcX0 = (imgWidth - outWidth) / 2
		}
	case AlignRight:
		if imgWidth < outWidth {
			leftOffset = outWidth - imgWidth
		} else {
			srcX0 = imgWidth - outWidth
		}
	}

	topOffset, srcY0 := 0, 0
	switch valign {
	case AlignVCenter:
		if imgHeight < outHeight {
			topOffset = (outHeight - imgHeight) / 2
		} else {
			srcY0 = (imgHeight - outHeight) / 2
		}
	case AlignBottom:
		if imgHeight < outHeight {
			topOffset = outHeight - imgHeight
		} else {
			srcY0 = imgHeight - outHeight
		}
	}

	planeSize := outWidth * outHeight / pixelsPerByte
	r = make([]byte, 0, planeSize)
	g = make([]byte, 0, planeSize)
	b = make([]byte, 0, planeSize)

	var accR, accG, accB byte
	for x := 0; x < outWidth; x++ {
		for y := 0; y < outHeight; y++ {
			px := bg
			xr, yr := x-leftOffset, y-topOffset
			if xr >= 0 && yr >= 0 && srcX0+xr < imgWidth && srcY0+yr < imgHeight {
				px = color.RGBAModel.Convert(img.At(bounds.Min.X+srcX0+xr, bounds.Min.Y+srcY0+yr)).(color.RGBA)
			}

			accR = accR<<1 | onBit(px.R)
			accG = accG<<1 | onBit(px.G)
			accB = accB<<1 | onBit(px.B)

			if y%pixelsPerByte == pixelsPerByte-1 {
				r = append(r, accR)
				g = append(g, accG)
				b = append(b, accB)
				accR, accG, accB = 0, 0, 0
			}
		}
	}
	return r, g, b, nil
}

func onBit(component uint8) byte {
	if component >= 128 {
		return 1
	}
	return 0
}
