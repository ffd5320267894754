// Package client talks to the AutoVolt backend over HTTP. It implements the
// pin provider, persister and secret revealer used by device sessions.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/autovolt/pkg/api/types"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/gpio"
)

var (
	// ErrTransport indicates the backend could not be reached or failed
	ErrTransport = errors.New("backend unavailable")

	// ErrRejected indicates the backend refused the request
	ErrRejected = errors.New("request rejected")

	// ErrNotFound indicates the requested device does not exist
	ErrNotFound = errors.New("not found")
)

// DefaultTimeout bounds every request.
const DefaultTimeout = 15 * time.Second

// APIError is a non-2xx backend response.
type APIError struct {
	Status int
	Body   types.ValidationErrorResponse
}

func (e *APIError) Error() string {
	if e.Body.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, e.Body.Error, e.Body.Message)
	}
	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

// Unwrap maps the status onto ErrNotFound, ErrRejected or ErrTransport.
func (e *APIError) Unwrap() error {
	switch {
	case e.Status == http.StatusNotFound:
		return ErrNotFound
	case e.Status >= 500:
		return ErrTransport
	default:
		return ErrRejected
	}
}

// Client is a backend client.
type Client struct {
	http *resty.Client
}

var (
	_ device.PinProvider    = (*Client)(nil)
	_ device.Persister      = (*Client)(nil)
	_ device.SecretRevealer = (*Client)(nil)
)

// New creates a client for the backend at baseURL. Requests are never
// retried; callers decide whether to try again.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient}
}

// PinInfo fetches the pin catalog for board.
func (c *Client) PinInfo(ctx context.Context, board gpio.BoardType, deviceID string) ([]gpio.PinInfo, error) {
	var out types.PinInfoResponse
	req := c.request(ctx).
		SetQueryParam("deviceType", string(board)).
		SetResult(&out)
	if deviceID != "" {
		req.SetQueryParam("deviceId", deviceID)
	}

	if err := check(req.Get("/api/v1/devices/gpio-pin-info")); err != nil {
		return nil, err
	}
	return out.Pins, nil
}

// ValidateConfig asks the backend to validate a pin layout. An invalid
// layout is a successful call with Valid false.
func (c *Client) ValidateConfig(ctx context.Context, req gpio.ValidateRequest) (gpio.ValidationResult, error) {
	var out gpio.ValidationResult
	resp, err := c.request(ctx).
		SetBody(req).
		SetResult(&out).
		Post("/api/v1/devices/gpio-validate")
	if err := check(resp, err); err != nil {
		return gpio.ValidationResult{}, err
	}
	return out, nil
}

// ListDevices returns every stored device.
func (c *Client) ListDevices(ctx context.Context) ([]device.Record, error) {
	var out types.ListDevicesResponse
	if err := check(c.request(ctx).SetResult(&out).Get("/api/v1/devices")); err != nil {
		return nil, err
	}
	return out.Devices, nil
}

// GetDevice fetches a stored device.
func (c *Client) GetDevice(ctx context.Context, id string) (*device.Record, error) {
	var out types.DeviceResponse
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetResult(&out).
		Get("/api/v1/devices/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.Device, nil
}

// CreateDevice stores a new device.
func (c *Client) CreateDevice(ctx context.Context, d device.Draft) (*device.Record, error) {
	var out types.DeviceResponse
	resp, err := c.request(ctx).
		SetBody(d).
		SetResult(&out).
		Post("/api/v1/devices")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.Device, nil
}

// UpdateDevice replaces a stored device's configuration.
func (c *Client) UpdateDevice(ctx context.Context, id string, d device.Draft) (*device.Record, error) {
	var out types.DeviceResponse
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetBody(d).
		SetResult(&out).
		Put("/api/v1/devices/{id}")
	if err := check(resp, err); err != nil {
		return nil, err
	}
	return &out.Device, nil
}

// RevealSecret returns the device secret when pin matches the admin PIN.
func (c *Client) RevealSecret(ctx context.Context, id, pin string) (string, error) {
	var out types.SecretResponse
	resp, err := c.request(ctx).
		SetPathParam("id", id).
		SetQueryParam("pin", pin).
		SetResult(&out).
		Post("/api/v1/devices/{id}/secret")
	if err := check(resp, err); err != nil {
		return "", err
	}
	return out.DeviceSecret, nil
}

func (c *Client) request(ctx context.Context) *resty.Request {
	return c.http.R().
		SetContext(ctx).
		SetError(&types.ValidationErrorResponse{})
}

// check turns transport failures and error statuses into sentinel errors.
func check(resp *resty.Response, err error) error {
	if err != nil {
		log.Debug().Err(err).Msg("Backend request failed")
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}
	if !resp.IsError() {
		return nil
	}

	apiErr := &APIError{Status: resp.StatusCode()}
	if body, ok := resp.Error().(*types.ValidationErrorResponse); ok && body != nil {
		apiErr.Body = *body
	}
	log.Debug().
		Str("method", resp.Request.Method).
		Str("url", resp.Request.URL).
		Int("status", apiErr.Status).
		Msg("Backend returned error")
	return apiErr
}
