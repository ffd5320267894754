package device

import (
	"context"

	"github.com/urmzd/autovolt/pkg/gpio"
)

// PinProvider supplies pin catalogs and validates proposed layouts.
// Implementations talk to the AutoVolt backend or evaluate locally.
type PinProvider interface {
	// PinInfo returns the board's pins with Used set for pins held by
	// devices other than deviceID (empty for a new device)
	PinInfo(ctx context.Context, board gpio.BoardType, deviceID string) ([]gpio.PinInfo, error)

	// ValidateConfig checks a layout. A returned error means no answer was
	// obtained; it never implies the layout is valid.
	ValidateConfig(ctx context.Context, req gpio.ValidateRequest) (gpio.ValidationResult, error)
}

// Persister stores device drafts.
type Persister interface {
	// CreateDevice stores a new device
	CreateDevice(ctx context.Context, d Draft) (*Record, error)

	// UpdateDevice replaces the configuration of an existing device
	UpdateDevice(ctx context.Context, id string, d Draft) (*Record, error)
}

// SecretRevealer returns a device's shared secret to an administrator.
type SecretRevealer interface {
	RevealSecret(ctx context.Context, id, pin string) (string, error)
}
