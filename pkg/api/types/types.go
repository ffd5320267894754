package types

import (
	"time"

	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/gpio"
)

// --- Response DTOs ---

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ValidationErrorResponse is returned with 400 when a device draft fails
// schema or GPIO validation on create/update
type ValidationErrorResponse struct {
	ErrorResponse
	Fields     []schema.FieldError    `json:"fields,omitempty"`
	Validation *gpio.ValidationResult `json:"validation,omitempty"`
}

// HealthResponse is returned from GET /health
type HealthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	MQTT      string    `json:"mqtt"`
	Timestamp time.Time `json:"timestamp"`
}

// PinInfoResponse is returned from GET /devices/gpio-pin-info
type PinInfoResponse struct {
	DeviceType gpio.BoardType `json:"deviceType"`
	Pins       []gpio.PinInfo `json:"pins"`
}

// ListDevicesResponse is returned from GET /devices
type ListDevicesResponse struct {
	Devices []device.Record `json:"devices"`
	Count   int             `json:"count"`
}

// DeviceResponse is returned from GET/POST/PUT /devices/:id
type DeviceResponse struct {
	Device device.Record `json:"device"`
}

// SecretResponse is returned from POST /devices/:id/secret
type SecretResponse struct {
	DeviceSecret string `json:"deviceSecret"`
}
