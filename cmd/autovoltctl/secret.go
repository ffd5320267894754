package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var errNoPIN = errors.New("admin PIN required: pass --pin or set " + envAdminPIN)

var secretCmd = &cobra.Command{
	Use:   "secret <device-id>",
	Short: "Print the shared secret of a device",
	Args:  cobra.ExactArgs(1),
	RunE:  runSecretCommand,
}

func init() {
	secretCmd.Flags().String("pin", "", "Admin PIN (env "+envAdminPIN+")")
}

func runSecretCommand(cmd *cobra.Command, args []string) error {
	flagPIN, _ := cmd.Flags().GetString("pin")
	pin := adminPIN(flagPIN)
	if pin == "" {
		return errNoPIN
	}

	secret, err := newClient().RevealSecret(cmd.Context(), args[0], pin)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, secret)
	return nil
}
