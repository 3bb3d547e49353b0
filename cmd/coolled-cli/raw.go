package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/muesli/coral"

	"github.com/coolled/coolled"
)

var rawCmd = &coral.Command{
	Use:   "raw <hex>",
	Short: "send pre-framed hex bytes verbatim, for protocol experiments",
	Args:  coral.ExactArgs(1),
	RunE: func(cmd *coral.Command, args []string) error {
		c, err := coolled.NewSendRawData(args[0])
		if err != nil {
			return err
		}
		return send(cmd, c)
	},
}

var decodeCmd = &coral.Command{
	Use:   "decode <hex>",
	Short: "decode a captured frame and print its payload, offline",
	Args:  coral.ExactArgs(1),
	RunE: func(cmd *coral.Command, args []string) error {
		raw, err := hex.DecodeString(strings.ReplaceAll(args[0], " ", ""))
		if err != nil {
			return fmt.Errorf("invalid hex: %w", err)
		}
		capture, err := coolled.DecodeCapture(raw)
		if err != nil {
			return err
		}
		fmt.Println(capture)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(rawCmd, decodeCmd)
}
