package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/muesli/coral"

	"github.com/coolled/coolled"
)

var speedCmd = &coral.Command{
	Use:   "speed <0-255>",
	Short: "set the scroll speed",
	Args:  coral.ExactArgs(1),
	RunE: func(cmd *coral.Command, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid speed %q", args[0])
		}
		c, err := coolled.NewSetSpeed(v)
		if err != nil {
			return err
		}
		return send(cmd, c)
	},
}

var brightnessCmd = &coral.Command{
	Use:   "brightness <0-255>",
	Short: "set the display brightness",
	Args:  coral.ExactArgs(1),
	RunE: func(cmd *coral.Command, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid brightness %q", args[0])
		}
		c, err := coolled.NewSetBrightness(v)
		if err != nil {
			return err
		}
		return send(cmd, c)
	},
}

var modeCmd = &coral.Command{
	Use:   "mode <name|1-8>",
	Short: "set the content display mode (scroll-left, stationary, ...)",
	Args:  coral.ExactArgs(1),
	RunE: func(cmd *coral.Command, args []string) error {
		m, err := coolled.ParseMode(args[0])
		if err != nil {
			return err
		}
		return send(cmd, coolled.NewSetMode(m))
	},
}

var onOffCmd = &coral.Command{
	Use:       "onoff <on|off>",
	Short:     "turn the display on or off",
	Args:      coral.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *coral.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return send(cmd, coolled.NewTurnOnOffApp(on))
	},
}

var buttonCmd = &coral.Command{
	Use:       "button <on|off>",
	Short:     "enable or disable the hardware button",
	Args:      coral.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *coral.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return send(cmd, coolled.NewTurnOnOffButton(on))
	},
}

var invertCmd = &coral.Command{
	Use:       "invert <on|off>",
	Short:     "invert the display colors",
	Args:      coral.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *coral.Command, args []string) error {
		on, err := parseOnOff(args[0])
		if err != nil {
			return err
		}
		return send(cmd, coolled.NewInvertDisplay(on))
	},
}

var mirrorCmd = &coral.Command{
	Use:   "mirror",
	Short: "mirror the display (unproven action)",
	Args:  coral.NoArgs,
	RunE: func(cmd *coral.Command, args []string) error {
		return send(cmd, &coolled.InvertOrSomething{})
	},
}

var initializeCmd = &coral.Command{
	Use:   "init",
	Short: "run the sign's initialize sequence",
	Args:  coral.NoArgs,
	RunE: func(cmd *coral.Command, args []string) error {
		return send(cmd, &coolled.Initialize{})
	},
}

var batteryCmd = &coral.Command{
	Use:   "battery <1-100>",
	Short: "run the startup sequence reporting a battery percentage",
	Args:  coral.ExactArgs(1),
	RunE: func(cmd *coral.Command, args []string) error {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid battery level %q", args[0])
		}
		c, err := coolled.NewStartupWithBatteryLevel(v)
		if err != nil {
			return err
		}
		return send(cmd, c)
	},
}

var powerDownCmd = &coral.Command{
	Use:   "powerdown",
	Short: "power the sign off",
	Args:  coral.NoArgs,
	RunE: func(cmd *coral.Command, args []string) error {
		return send(cmd, &coolled.PowerDown{})
	},
}

var chargingCmd = &coral.Command{
	Use:   "charging",
	Short: "show the charging animation",
	Args:  coral.NoArgs,
	RunE: func(cmd *coral.Command, args []string) error {
		return send(cmd, &coolled.ShowChargingAnimation{})
	},
}

var musicCmd = &coral.Command{
	Use:   "music <heights-hex> <colors-hex>",
	Short: "set the 8 music equalizer bars, 8 hex bytes each",
	Args:  coral.ExactArgs(2),
	RunE: func(cmd *coral.Command, args []string) error {
		heights, err := hex.DecodeString(args[0])
		if err != nil {
			return fmt.Errorf("invalid heights: %w", err)
		}
		colors, err := hex.DecodeString(args[1])
		if err != nil {
			return fmt.Errorf("invalid colors: %w", err)
		}
		c, err := coolled.NewSetMusicBars(heights, colors)
		if err != nil {
			return err
		}
		return send(cmd, c)
	},
}

func parseOnOff(s string) (bool, error) {
	switch s {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	return false, fmt.Errorf("expected on or off, got %q", s)
}

func init() {
	RootCmd.AddCommand(speedCmd, brightnessCmd, modeCmd, onOffCmd, buttonCmd,
		invertCmd, mirrorCmd, initializeCmd, batteryCmd, powerDownCmd,
		chargingCmd, musicCmd)
}
