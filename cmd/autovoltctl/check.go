package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/gpio"
)

var errInvalidDraft = errors.New("configuration is invalid")

var checkCmd = &cobra.Command{
	Use:   "check <draft.yaml>",
	Short: "Validate a device configuration file without saving it",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckCommand,
}

func init() {
	checkCmd.Flags().Bool("local", false, "Validate against the built-in catalog without contacting the API")
}

func runCheckCommand(cmd *cobra.Command, args []string) error {
	local, _ := cmd.Flags().GetBool("local")

	d, err := loadDraft(args[0])
	if err != nil {
		return err
	}

	if fields := schema.NewValidator().ValidateDraft(d); len(fields) > 0 {
		for _, f := range fields {
			fmt.Fprintf(os.Stdout, "error  %s: %s\n", fieldName(f.Field), f.Message)
		}
		return errInvalidDraft
	}

	normalized, err := device.Normalize(d)
	if err != nil {
		fmt.Fprintf(os.Stdout, "error  macAddress: %s\n", err)
		return errInvalidDraft
	}

	result, err := provider(local).ValidateConfig(cmd.Context(), normalized.ValidateRequest(nil))
	if err != nil {
		return fmt.Errorf("GPIO validation could not be obtained: %w", err)
	}
	for _, issue := range normalized.Notifications.Validate() {
		result.AddError(issue)
	}
	for _, issue := range normalized.PIRSchedule.Validate("pirDetectionSchedule") {
		result.AddError(issue)
	}

	printResult(os.Stdout, result)
	if !result.Valid {
		return errInvalidDraft
	}
	fmt.Fprintln(os.Stdout, "configuration is valid")
	return nil
}

func printResult(w io.Writer, result gpio.ValidationResult) {
	for _, e := range result.Errors {
		printIssue(w, "error", e)
	}
	for _, e := range result.Warnings {
		printIssue(w, "warn", e)
	}
}

func printIssue(w io.Writer, level string, issue gpio.Issue) {
	line := fmt.Sprintf("%-5s  %s: %s", level, fieldName(issue.Field), issue.Message)
	if issue.Suggestion != "" {
		line += " (" + issue.Suggestion + ")"
	}
	fmt.Fprintln(w, line)
}

func fieldName(field string) string {
	if field == "" {
		return "config"
	}
	return field
}
