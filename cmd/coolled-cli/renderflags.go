package main

import (
	"github.com/muesli/coral"

	"github.com/coolled/coolled"
)

// Rendering flags shared by the text, image and animation commands.
var (
	flagWidthTreatment  string
	flagHeightTreatment string
	flagHAlign          string
	flagVAlign          string
	flagBackground      string
)

func addRenderFlags(cmd *coral.Command, defaultWidth string) {
	f := cmd.Flags()
	f.StringVar(&flagWidthTreatment, "width-treatment", defaultWidth, "fit content horizontally: scale, crop-pad or as-is")
	f.StringVar(&flagHeightTreatment, "height-treatment", "crop-pad", "fit content vertically: scale or crop-pad")
	f.StringVar(&flagHAlign, "halign", "none", "horizontal alignment: left, center, right or none")
	f.StringVar(&flagVAlign, "valign", "center", "vertical alignment: top, center or bottom")
	f.StringVar(&flagBackground, "background", "black", "background fill color")
}

func renderOptionsFromFlags() (coolled.RenderOptions, error) {
	var opt coolled.RenderOptions
	var err error
	if opt.Width, err = coolled.ParseWidthTreatment(flagWidthTreatment); err != nil {
		return opt, err
	}
	if opt.Height, err = coolled.ParseHeightTreatment(flagHeightTreatment); err != nil {
		return opt, err
	}
	if opt.Horizontal, err = coolled.ParseHorizontalAlignment(flagHAlign); err != nil {
		return opt, err
	}
	if opt.Vertical, err = coolled.ParseVerticalAlignment(flagVAlign); err != nil {
		return opt, err
	}
	if opt.BackgroundColor, err = coolled.ParseColor(flagBackground); err != nil {
		return opt, err
	}
	return opt, nil
}
