package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"os"

	"github.com/muesli/coral"

	"github.com/coolled/coolled"
)

var flagAnimationSpeed int

var animationCmd = &coral.Command{
	Use:   "animation <file.gif>",
	Short: "show an animated gif",
	Args:  coral.ExactArgs(1),
	RunE: func(cmd *coral.Command, args []string) error {
		frames, err := loadAnimation(args[0])
		if err != nil {
			return err
		}
		opt, err := renderOptionsFromFlags()
		if err != nil {
			return err
		}
		c, err := coolled.NewSetAnimation(frames, flagAnimationSpeed, opt)
		if err != nil {
			return err
		}
		return send(cmd, c)
	},
}

// loadAnimation expands each gif frame onto the full logical canvas, so
// partial frames keep their offsets.
func loadAnimation(path string) ([]image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening animation: %w", err)
	}
	defer f.Close()
	g, err := gif.DecodeAll(f)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}

	canvas := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	frames := make([]image.Image, 0, len(g.Image))
	for _, frame := range g.Image {
		full := image.NewRGBA(canvas)
		draw.Draw(full, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		frames = append(frames, full)
	}
	return frames, nil
}

func init() {
	animationCmd.Flags().IntVar(&flagAnimationSpeed, "speed", coolled.DefaultAnimationSpeed, "frame delay, larger is slower")
	addRenderFlags(animationCmd, "scale")
	RootCmd.AddCommand(animationCmd)
}
