package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/urmzd/autovolt/pkg/gpio"
)

var pinsCmd = &cobra.Command{
	Use:   "pins",
	Short: "Show the GPIO pin catalog of a board",
	Long:  "Lists every pin with its status and recommended roles. With --role the pins are ranked for that role; with --device the pins of that stored device are marked used.",
	RunE:  runPinsCommand,
}

func init() {
	pinsCmd.Flags().String("board", string(gpio.BoardESP32), "Board type (esp32, esp8266)")
	pinsCmd.Flags().String("role", "", "Rank pins for a role (relay, manual, pir)")
	pinsCmd.Flags().String("device", "", "Mark the pins held by this stored device as used")
	pinsCmd.Flags().Bool("local", false, "Use the built-in catalog without contacting the API")
}

func runPinsCommand(cmd *cobra.Command, args []string) error {
	board, _ := cmd.Flags().GetString("board")
	role, _ := cmd.Flags().GetString("role")
	deviceID, _ := cmd.Flags().GetString("device")
	local, _ := cmd.Flags().GetBool("local")

	pins, err := provider(local).PinInfo(cmd.Context(), gpio.BoardType(board), deviceID)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	header := "PIN\tSTATUS\tUSED\tRECOMMENDED FOR\tNOTES"
	if role != "" {
		header = "PIN\tSTATUS\tUSED\tTIER\tNOTES"
	}
	fmt.Fprintln(w, header)

	for _, p := range pins {
		used := ""
		if p.Used {
			used = "yes"
		}
		col := roleList(p.RecommendedFor)
		if role != "" {
			col = string(gpio.Classify(p.Pin, gpio.BoardType(board), gpio.Role(role)))
		}
		notes := p.Reason
		if len(p.AlternativePins) > 0 {
			notes = strings.TrimSpace(notes + " (try " + intList(p.AlternativePins) + ")")
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", p.Pin, p.Status, used, col, notes)
	}
	return w.Flush()
}

func roleList(roles []gpio.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ",")
}

func intList(pins []int) string {
	parts := make([]string, len(pins))
	for i, p := range pins {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return strings.Join(parts, ", ")
}
