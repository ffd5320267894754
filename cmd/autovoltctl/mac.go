package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/urmzd/autovolt/pkg/device"
)

var macCmd = &cobra.Command{
	Use:   "mac <address>",
	Short: "Normalize a MAC address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatted := device.FormatMAC(args[0])
		canonical, err := device.CanonicalMAC(formatted)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "display:   %s\nstored:    %s\n", formatted, canonical)
		return nil
	},
}
