package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/muesli/coral"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"

	"github.com/coolled/coolled"
)

var (
	flagTextColor   string
	flagStartMarker string
	flagEndMarker   string
	flagFontPath    string
	flagFontSize    float64
	flagAsImage     bool
)

var textCmd = &coral.Command{
	Use:   "text <message>",
	Short: "show a scrolling text message, with inline <#rrggbb> color markers",
	Args:  coral.MinimumNArgs(1),
	RunE: func(cmd *coral.Command, args []string) error {
		opt := coolled.TextOptions{AsImage: flagAsImage}
		render, err := renderOptionsFromFlags()
		if err != nil {
			return err
		}
		opt.RenderOptions = render
		if opt.DefaultColor, err = coolled.ParseColor(flagTextColor); err != nil {
			return err
		}
		opt.StartMarker = flagStartMarker
		opt.EndMarker = flagEndMarker
		if opt.Face, err = loadFace(flagFontPath, flagFontSize); err != nil {
			return err
		}
		return send(cmd, coolled.NewSetText(strings.Join(args, " "), opt))
	},
}

// loadFace loads a TrueType or OpenType font; an empty path keeps the
// built-in fixed font.
func loadFace(path string, size float64) (font.Face, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading font: %w", err)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing font %s: %w", path, err)
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func init() {
	f := textCmd.Flags()
	f.StringVarP(&flagTextColor, "color", "c", "white", "text color until the first inline marker")
	f.StringVar(&flagStartMarker, "start-marker", "<", "inline color token start marker")
	f.StringVar(&flagEndMarker, "end-marker", ">", "inline color token end marker")
	f.StringVar(&flagFontPath, "font", "", "path to a .ttf/.otf font, empty for the built-in fixed font")
	f.Float64Var(&flagFontSize, "font-size", 16, "font size in points, used with --font")
	f.BoolVar(&flagAsImage, "as-image", false, "send the rendering as a static image instead of text")
	addRenderFlags(textCmd, "as-is")
	RootCmd.AddCommand(textCmd)
}
