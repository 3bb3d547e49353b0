package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/muesli/coral"

	"github.com/coolled/coolled"
	"github.com/coolled/coolled/ble"
)

var (
	flagAddress        string
	flagDeviceName     string
	flagConnectTimeout time.Duration
	flagAckTimeout     time.Duration
	flagRetries        uint
	flagLogLevel       string
)

var RootCmd = &coral.Command{
	Use:           "coolled-cli",
	Short:         "control CoolLEDX and CoolLEDM bluetooth LED signs",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *coral.Command, args []string) error {
		var level slog.Level
		if err := level.UnmarshalText([]byte(flagLogLevel)); err != nil {
			return fmt.Errorf("invalid log level %q", flagLogLevel)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	},
}

func init() {
	pf := RootCmd.PersistentFlags()
	pf.StringVarP(&flagAddress, "address", "a", "", "MAC address of the sign, skips name matching")
	pf.StringVarP(&flagDeviceName, "name", "n", coolled.DefaultDeviceName, "advertised device name to match")
	pf.DurationVar(&flagConnectTimeout, "connect-timeout", coolled.DefaultConnectionTimeout, "scan and connect timeout")
	pf.DurationVar(&flagAckTimeout, "ack-timeout", coolled.DefaultAckTimeout, "per-chunk acknowledgment timeout")
	pf.UintVar(&flagRetries, "retries", coolled.DefaultConnectionRetries, "connection attempts before giving up")
	pf.StringVar(&flagLogLevel, "log", "info", "log level: debug, info, warn or error")
}

// withClient connects to the sign, runs fn and disconnects. Every command
// that talks to hardware goes through here.
func withClient(cmd *coral.Command, fn func(client *coolled.Client) error) error {
	client := coolled.NewClient(ble.NewTransport(),
		coolled.WithAddress(flagAddress),
		coolled.WithDeviceName(flagDeviceName),
		coolled.WithConnectionTimeout(flagConnectTimeout),
		coolled.WithAckTimeout(flagAckTimeout),
		coolled.WithConnectionRetries(flagRetries),
	)
	if err := client.Connect(cmd.Context()); err != nil {
		return err
	}
	defer client.Disconnect()
	return fn(client)
}

func send(cmd *coral.Command, c coolled.Command) error {
	return withClient(cmd, func(client *coolled.Client) error {
		return client.SendCommand(cmd.Context(), c)
	})
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
