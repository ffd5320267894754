package main

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/urmzd/autovolt/pkg/configurator"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
)

var submitCmd = &cobra.Command{
	Use:   "submit <draft.yaml>",
	Short: "Validate and save a device configuration",
	Long:  "Creates a device from the file, or replaces the configuration of --id. The save only happens after the server confirms the GPIO layout.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubmitCommand,
}

func init() {
	submitCmd.Flags().String("id", "", "Existing device to update")
}

func runSubmitCommand(cmd *cobra.Command, args []string) error {
	id, _ := cmd.Flags().GetString("id")
	ctx := cmd.Context()

	d, err := loadDraft(args[0])
	if err != nil {
		return err
	}

	c := newClient()

	var existing *device.Record
	if id != "" {
		existing, err = c.GetDevice(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load device %s: %w", id, err)
		}
	}

	session := configurator.New(c, c, schema.NewValidator(), existing)
	if err := session.Open(ctx); err != nil {
		return err
	}
	defer session.Close()

	if err := session.ReplaceDraft(ctx, d); err != nil {
		return err
	}

	rec, err := session.Submit(ctx)
	for _, w := range session.Warnings() {
		printIssue(os.Stdout, "warn", w)
	}
	if err != nil {
		printSessionErrors(session)
		if errors.Is(err, configurator.ErrInvalid) {
			return errInvalidDraft
		}
		return err
	}

	log.Info().Str("id", rec.ID).Str("mac", rec.MACAddress).Msg("Device saved")
	fmt.Fprintln(os.Stdout, rec.ID)
	return nil
}

func printSessionErrors(session *configurator.Session) {
	for _, issue := range session.GeneralErrors() {
		printIssue(os.Stdout, "error", issue)
	}

	fields := session.FieldErrors()
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, issue := range fields[k] {
			printIssue(os.Stdout, "error", issue)
		}
	}
}
