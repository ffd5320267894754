package gpio

import (
	"fmt"
	"sort"
	"strings"
)

// SwitchPins is the pin-relevant subset of a switch configuration.
// Extra JSON fields of a full switch document are ignored on decode.
type SwitchPins struct {
	ID                  string `json:"id,omitempty"`
	Name                string `json:"name"`
	GPIO                *int   `json:"gpio,omitempty"`
	RelayGPIO           *int   `json:"relayGpio,omitempty"`
	ManualSwitchEnabled bool   `json:"manualSwitchEnabled"`
	ManualSwitchGPIO    *int   `json:"manualSwitchGpio,omitempty"`
}

// ValidateRequest is the body of a GPIO validation call.
type ValidateRequest struct {
	Switches        []SwitchPins `json:"switches"`
	PIREnabled      bool         `json:"pirEnabled"`
	PIRGPIO         *int         `json:"pirGpio,omitempty"`
	DeviceType      BoardType    `json:"deviceType"`
	IsUpdate        bool         `json:"isUpdate"`
	ExistingConfig  []SwitchPins `json:"existingConfig,omitempty"`
	ExistingPIRGPIO *int         `json:"existingPirGpio,omitempty"`
}

type assignment struct {
	pin   int
	role  Role
	field string
	owner string
}

// Validate checks a proposed switch/PIR layout against the board catalog.
//
// Pins are local to one board, so a layout is checked on its own. The
// existing configuration of an update does not change the outcome.
func Validate(req ValidateRequest) ValidationResult {
	result := NewResult()

	if !req.DeviceType.Valid() {
		result.AddError(Issue{
			Field:   "deviceType",
			Message: fmt.Sprintf("Unsupported device type %q", req.DeviceType),
		})
		return result
	}

	if limit := MaxSwitches(req.DeviceType); len(req.Switches) > limit {
		result.AddError(Issue{
			Field:      "switches",
			Message:    fmt.Sprintf("%s supports at most %d switches, got %d", req.DeviceType, limit, len(req.Switches)),
			Suggestion: fmt.Sprintf("Remove %d switch(es)", len(req.Switches)-limit),
		})
	}

	var assignments []assignment
	for i, sw := range req.Switches {
		owner := switchLabel(i, sw)
		if sw.GPIO == nil {
			result.AddError(Issue{
				Field:   fmt.Sprintf("switches.%d.gpio", i),
				Message: fmt.Sprintf("%s has no GPIO pin", owner),
			})
		} else {
			assignments = append(assignments, assignment{*sw.GPIO, RoleRelay, fmt.Sprintf("switches.%d.gpio", i), owner})
		}
		if sw.RelayGPIO != nil && (sw.GPIO == nil || *sw.RelayGPIO != *sw.GPIO) {
			assignments = append(assignments, assignment{*sw.RelayGPIO, RoleRelay, fmt.Sprintf("switches.%d.relayGpio", i), owner})
		}
		if sw.ManualSwitchEnabled {
			if sw.ManualSwitchGPIO == nil {
				result.AddError(Issue{
					Field:   fmt.Sprintf("switches.%d.manualSwitchGpio", i),
					Message: fmt.Sprintf("%s has a manual switch enabled but no manual GPIO pin", owner),
				})
			} else {
				assignments = append(assignments, assignment{*sw.ManualSwitchGPIO, RoleManual, fmt.Sprintf("switches.%d.manualSwitchGpio", i), owner + " manual switch"})
			}
		}
	}

	if req.PIREnabled {
		if req.PIRGPIO == nil {
			result.AddError(Issue{
				Field:   "pirGpio",
				Message: "Motion sensor is enabled but has no GPIO pin",
			})
		} else {
			assignments = append(assignments, assignment{*req.PIRGPIO, RolePIR, "pirGpio", "motion sensor"})
		}
	}

	taken := map[int]assignment{}
	for _, a := range assignments {
		checkPin(&result, req.DeviceType, a)

		if first, dup := taken[a.pin]; dup {
			result.AddError(Issue{
				Field:      a.field,
				Pin:        PinPtr(a.pin),
				Message:    fmt.Sprintf("GPIO %d is already assigned to %s", a.pin, first.owner),
				Suggestion: suggest(req.DeviceType, a.role, taken),
			})
			continue
		}
		taken[a.pin] = a
	}

	return result
}

func checkPin(result *ValidationResult, board BoardType, a assignment) {
	info, ok := Lookup(board, a.pin)
	if !ok {
		result.AddError(Issue{
			Field:   a.field,
			Pin:     PinPtr(a.pin),
			Message: fmt.Sprintf("GPIO %d does not exist on %s", a.pin, board),
		})
		return
	}

	switch {
	case info.Status == StatusReserved || info.Status == StatusInvalid:
		result.AddError(Issue{
			Field:      a.field,
			Pin:        PinPtr(a.pin),
			Message:    fmt.Sprintf("GPIO %d cannot be used: %s", a.pin, info.Reason),
			Suggestion: pinList(info.AlternativePins),
		})
	case info.InputOnly && a.role.Output():
		result.AddError(Issue{
			Field:      a.field,
			Pin:        PinPtr(a.pin),
			Message:    fmt.Sprintf("GPIO %d is input only and cannot drive a relay", a.pin),
			Suggestion: pinList(RecommendedPins(board, RoleRelay)),
		})
	case info.Status == StatusProblematic:
		result.AddWarning(Issue{
			Field:      a.field,
			Pin:        PinPtr(a.pin),
			Message:    fmt.Sprintf("GPIO %d may cause problems: %s", a.pin, info.Reason),
			Suggestion: pinList(info.AlternativePins),
		})
	}
}

// suggest lists recommended pins for role not yet taken in this layout.
func suggest(board BoardType, role Role, taken map[int]assignment) string {
	var free []int
	for _, p := range RecommendedPins(board, role) {
		if _, ok := taken[p]; ok {
			continue
		}
		free = append(free, p)
	}
	return pinList(free)
}

func pinList(pins []int) string {
	if len(pins) == 0 {
		return ""
	}
	parts := make([]string, len(pins))
	for i, p := range pins {
		parts[i] = fmt.Sprintf("%d", p)
	}
	return "Try GPIO " + strings.Join(parts, ", ")
}

func switchLabel(i int, sw SwitchPins) string {
	if sw.Name != "" {
		return fmt.Sprintf("switch %q", sw.Name)
	}
	return fmt.Sprintf("switch %d", i+1)
}

// pinsOf flattens every pin of a switch layout plus an optional sensor pin.
func pinsOf(switches []SwitchPins, pir *int) []int {
	var pins []int
	for _, sw := range switches {
		if sw.GPIO != nil {
			pins = append(pins, *sw.GPIO)
		}
		if sw.RelayGPIO != nil {
			pins = append(pins, *sw.RelayGPIO)
		}
		if sw.ManualSwitchEnabled && sw.ManualSwitchGPIO != nil {
			pins = append(pins, *sw.ManualSwitchGPIO)
		}
	}
	if pir != nil {
		pins = append(pins, *pir)
	}
	sort.Ints(pins)
	return pins
}

// PinsOf returns every pin a layout claims, sorted.
func PinsOf(switches []SwitchPins, pirEnabled bool, pir *int) []int {
	if !pirEnabled {
		pir = nil
	}
	return pinsOf(switches, pir)
}
