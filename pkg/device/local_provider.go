package device

import (
	"context"

	"github.com/urmzd/autovolt/pkg/gpio"
)

// LocalProvider evaluates pins against the static board catalogs without a
// backend. It has no stored configurations, so Used is never set.
type LocalProvider struct{}

// NewLocalProvider creates a new LocalProvider.
func NewLocalProvider() *LocalProvider {
	return &LocalProvider{}
}

func (p *LocalProvider) PinInfo(ctx context.Context, board gpio.BoardType, deviceID string) ([]gpio.PinInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return gpio.Catalog(board)
}

func (p *LocalProvider) ValidateConfig(ctx context.Context, req gpio.ValidateRequest) (gpio.ValidationResult, error) {
	if err := ctx.Err(); err != nil {
		return gpio.ValidationResult{}, err
	}
	return gpio.Validate(req), nil
}
