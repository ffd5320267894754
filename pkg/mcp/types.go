package mcp

import (
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/gpio"
)

// --- List Pins Tool ---

// ListPinsOutput is the output for the list_pins tool
type ListPinsOutput struct {
	DeviceType gpio.BoardType `json:"device_type" jsonschema:"description=Board the catalog belongs to"`
	Role       gpio.Role      `json:"role,omitempty" jsonschema:"description=Role the pins were ranked for"`
	Pins       []PinSummary   `json:"pins" jsonschema:"description=Pins of the board"`
}

// PinSummary is a catalog entry, ranked when a role was requested
type PinSummary struct {
	gpio.PinInfo
	Tier gpio.Recommendation `json:"tier,omitempty" jsonschema:"description=recommended, alternative, caution or unavailable for the role"`
}

// --- Classify Pin Tool ---

// ClassifyPinOutput is the output for the classify_pin tool
type ClassifyPinOutput struct {
	Pin        int                 `json:"pin" jsonschema:"description=GPIO number"`
	DeviceType gpio.BoardType      `json:"device_type" jsonschema:"description=Board type"`
	Role       gpio.Role           `json:"role" jsonschema:"description=Role the pin was assessed for"`
	Tier       gpio.Recommendation `json:"tier" jsonschema:"description=Suitability of the pin for the role"`
	Info       *gpio.PinInfo       `json:"info,omitempty" jsonschema:"description=Catalog entry, absent for pins the board lacks"`
}

// --- Validate Config Tool ---

// ValidateConfigOutput is the output for the validate_config tool
type ValidateConfigOutput struct {
	Valid    bool                `json:"valid" jsonschema:"description=Whether the configuration can be saved"`
	Fields   []schema.FieldError `json:"fields,omitempty" jsonschema:"description=Malformed fields, checked before any pin validation"`
	Errors   []gpio.Issue        `json:"errors,omitempty" jsonschema:"description=Blocking pin problems"`
	Warnings []gpio.Issue        `json:"warnings,omitempty" jsonschema:"description=Non-blocking pin concerns"`
}

// --- Format MAC Tool ---

// FormatMACOutput is the output for the format_mac tool
type FormatMACOutput struct {
	Formatted string `json:"formatted" jsonschema:"description=Display form, uppercase colon separated"`
	Canonical string `json:"canonical,omitempty" jsonschema:"description=Stored form, lowercase colon separated; empty when incomplete"`
	Complete  bool   `json:"complete" jsonschema:"description=Whether the input holds a full six-octet address"`
}

// --- List Devices Tool ---

// ListDevicesOutput is the output for the list_devices tool
type ListDevicesOutput struct {
	Devices []DeviceSummary `json:"devices" jsonschema:"description=Stored controllers"`
	Count   int             `json:"count" jsonschema:"description=Total number of devices"`
}

// DeviceSummary describes a stored controller
type DeviceSummary struct {
	ID         string         `json:"id" jsonschema:"description=Device ID"`
	Name       string         `json:"name" jsonschema:"description=Device name"`
	MACAddress string         `json:"mac_address" jsonschema:"description=Canonical MAC address"`
	DeviceType gpio.BoardType `json:"device_type" jsonschema:"description=Board type"`
	Location   string         `json:"location" jsonschema:"description=Where the controller is installed"`
	Switches   int            `json:"switches" jsonschema:"description=Number of configured switches"`
	Pins       []int          `json:"pins" jsonschema:"description=GPIO pins the device claims"`
}
