package main

import (
	"fmt"
	"os"

	"github.com/muesli/coral"

	"github.com/coolled/coolled"
)

var jtCmd = &coral.Command{
	Use:   "jt <file.json>",
	Short: "send a JT container exported by the vendor app",
	Args:  coral.ExactArgs(1),
	RunE: func(cmd *coral.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading JT file: %w", err)
		}
		return send(cmd, coolled.NewSetJT(raw))
	},
}

func init() {
	RootCmd.AddCommand(jtCmd)
}
