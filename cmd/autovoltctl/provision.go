package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/urmzd/autovolt/pkg/provision"
)

var provisionCmd = &cobra.Command{
	Use:   "provision [device-id]",
	Short: "Write a stored configuration to a controller over USB serial",
	Long:  "Fetches the device and its secret from the API and sends the GPIO mapping over the serial port. Use --list to show available ports.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runProvisionCommand,
}

func init() {
	provisionCmd.Flags().String("port", "", "Serial port of the controller, e.g. /dev/ttyUSB0")
	provisionCmd.Flags().String("pin", "", "Admin PIN (env "+envAdminPIN+")")
	provisionCmd.Flags().Duration("ack-timeout", provision.DefaultTimeout, "How long to wait for the controller to answer")
	provisionCmd.Flags().Bool("list", false, "List serial ports and exit")
}

func runProvisionCommand(cmd *cobra.Command, args []string) error {
	list, _ := cmd.Flags().GetBool("list")
	if list {
		ports, err := provision.ListPorts()
		if err != nil {
			return err
		}
		for _, p := range ports {
			fmt.Fprintln(os.Stdout, p)
		}
		return nil
	}

	if len(args) != 1 {
		return fmt.Errorf("device id required")
	}
	portPath, _ := cmd.Flags().GetString("port")
	if portPath == "" {
		return fmt.Errorf("--port required")
	}
	flagPIN, _ := cmd.Flags().GetString("pin")
	pin := adminPIN(flagPIN)
	if pin == "" {
		return errNoPIN
	}
	ackTimeout, _ := cmd.Flags().GetDuration("ack-timeout")

	ctx := cmd.Context()
	c := newClient()

	rec, err := c.GetDevice(ctx, args[0])
	if err != nil {
		return err
	}
	rec.Secret, err = c.RevealSecret(ctx, rec.ID, pin)
	if err != nil {
		return err
	}

	port, err := provision.OpenPort(portPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := port.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close serial port")
		}
	}()

	if err := provision.New(port, ackTimeout).Send(ctx, *rec); err != nil {
		return err
	}
	log.Info().Str("id", rec.ID).Str("port", portPath).Msg("Controller provisioned")
	return nil
}
