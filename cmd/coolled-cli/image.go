package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/muesli/coral"

	"github.com/coolled/coolled"
)

var imageCmd = &coral.Command{
	Use:   "image <file>",
	Short: "show a static image (png, jpeg or gif first frame)",
	Args:  coral.ExactArgs(1),
	RunE: func(cmd *coral.Command, args []string) error {
		img, err := loadImage(args[0])
		if err != nil {
			return err
		}
		opt, err := renderOptionsFromFlags()
		if err != nil {
			return err
		}
		return send(cmd, coolled.NewSetImage(img, opt))
	},
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return img, nil
}

func init() {
	addRenderFlags(imageCmd, "scale")
	RootCmd.AddCommand(imageCmd)
}
