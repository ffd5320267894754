package handlers

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/autovolt/pkg/api/types"
	"github.com/urmzd/autovolt/pkg/db"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/push"
)

// secretBytes is the entropy of a generated device secret
const secretBytes = 24

// DevicesHandler handles device CRUD endpoints
type DevicesHandler struct {
	devices   db.DeviceStore
	profiles  db.ProfileStore
	validator *schema.Validator
	publisher push.Publisher
}

// NewDevicesHandler creates a new devices handler
func NewDevicesHandler(devices db.DeviceStore, profiles db.ProfileStore, validator *schema.Validator, publisher push.Publisher) *DevicesHandler {
	return &DevicesHandler{
		devices:   devices,
		profiles:  profiles,
		validator: validator,
		publisher: publisher,
	}
}

// ListDevices handles GET /devices
// @Summary      List all devices
// @Tags         devices
// @Produce      json
// @Success      200  {object}  types.ListDevicesResponse
// @Failure      500  {object}  types.ErrorResponse  "Database error"
// @Router       /devices [get]
func (h *DevicesHandler) ListDevices(c *gin.Context) {
	records, err := h.devices.List(c.Request.Context())
	if err != nil {
		storeError(c, err)
		return
	}

	result := make([]device.Record, 0, len(records))
	for _, rec := range records {
		result = append(result, *rec)
	}
	c.JSON(http.StatusOK, types.ListDevicesResponse{
		Devices: result,
		Count:   len(result),
	})
}

// GetDevice handles GET /devices/:id
// @Summary      Get device details
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device ID"
// @Success      200  {object}  types.DeviceResponse
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      500  {object}  types.ErrorResponse  "Database error"
// @Router       /devices/{id} [get]
func (h *DevicesHandler) GetDevice(c *gin.Context) {
	rec, err := h.devices.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.DeviceResponse{Device: *rec})
}

// CreateDevice handles POST /devices
// @Summary      Create a device
// @Description  Validates the draft (shape and GPIO layout), stores it with a generated secret and pushes the GPIO mapping to the controller.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        device  body      device.Draft  true  "Device draft"
// @Success      201  {object}  types.DeviceResponse
// @Failure      400  {object}  types.ValidationErrorResponse  "Draft failed validation"
// @Failure      409  {object}  types.ErrorResponse  "MAC address already registered"
// @Failure      500  {object}  types.ErrorResponse  "Database error"
// @Router       /devices [post]
func (h *DevicesHandler) CreateDevice(c *gin.Context) {
	ctx := c.Request.Context()

	d, ok := h.bindDraft(c)
	if !ok {
		return
	}

	profile, err := h.profiles.GetActive(ctx)
	if err != nil {
		storeError(c, err)
		return
	}

	secret, err := newSecret()
	if err != nil {
		storeError(c, err)
		return
	}

	rec, err := h.devices.Create(ctx, profile.ID, d, secret)
	if err != nil {
		storeError(c, err)
		return
	}
	log.Info().Str("id", rec.ID).Str("mac", rec.MACAddress).Msg("Device created")

	h.push(c, rec)
	c.JSON(http.StatusCreated, types.DeviceResponse{Device: *rec})
}

// UpdateDevice handles PUT /devices/:id
// @Summary      Update a device
// @Description  Replaces the device configuration after the same validation as create.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id      path      string        true  "Device ID"
// @Param        device  body      device.Draft  true  "Device draft"
// @Success      200  {object}  types.DeviceResponse
// @Failure      400  {object}  types.ValidationErrorResponse  "Draft failed validation"
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      409  {object}  types.ErrorResponse  "MAC address already registered"
// @Router       /devices/{id} [put]
func (h *DevicesHandler) UpdateDevice(c *gin.Context) {
	ctx := c.Request.Context()

	existing, err := h.devices.Get(ctx, c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}

	d, ok := h.bindDraft(c)
	if !ok {
		return
	}

	rec, err := h.devices.Update(ctx, existing.ID, d)
	if err != nil {
		storeError(c, err)
		return
	}
	log.Info().Str("id", rec.ID).Str("mac", rec.MACAddress).Msg("Device updated")

	h.push(c, rec)
	c.JSON(http.StatusOK, types.DeviceResponse{Device: *rec})
}

// DeleteDevice handles DELETE /devices/:id
// @Summary      Delete a device
// @Tags         devices
// @Param        id   path      string  true  "Device ID"
// @Success      204  "Device deleted"
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id} [delete]
func (h *DevicesHandler) DeleteDevice(c *gin.Context) {
	if err := h.devices.Delete(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RevealSecret handles POST /devices/:id/secret
// @Summary      Reveal the device secret
// @Description  Returns the shared secret the firmware authenticates with. Requires the profile's admin PIN.
// @Tags         devices
// @Produce      json
// @Param        id   path      string  true  "Device ID"
// @Param        pin  query     string  true  "Admin PIN"
// @Success      200  {object}  types.SecretResponse
// @Failure      403  {object}  types.ErrorResponse  "Wrong or unset admin PIN"
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Router       /devices/{id}/secret [post]
func (h *DevicesHandler) RevealSecret(c *gin.Context) {
	ctx := c.Request.Context()

	profile, err := h.profiles.GetActive(ctx)
	if err != nil {
		storeError(c, err)
		return
	}
	if err := profile.CheckPIN(c.Query("pin")); err != nil {
		log.Warn().Str("id", c.Param("id")).Str("client_ip", c.ClientIP()).Msg("Device secret request refused")
		c.JSON(http.StatusForbidden, types.ErrorResponse{
			Error:   "forbidden",
			Message: err.Error(),
		})
		return
	}

	rec, err := h.devices.Get(ctx, c.Param("id"))
	if err != nil {
		storeError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.SecretResponse{DeviceSecret: rec.Secret})
}

// bindDraft decodes, shape-checks, normalizes and GPIO-validates the body.
// It writes the 400 response itself and reports false on any failure.
func (h *DevicesHandler) bindDraft(c *gin.Context) (device.Draft, bool) {
	var d device.Draft
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return d, false
	}

	if fields := h.validator.ValidateDraft(d); len(fields) > 0 {
		c.JSON(http.StatusBadRequest, types.ValidationErrorResponse{
			ErrorResponse: types.ErrorResponse{Error: "invalid_config", Message: "Device configuration is malformed"},
			Fields:        fields,
		})
		return d, false
	}

	normalized, err := device.Normalize(d)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ValidationErrorResponse{
			ErrorResponse: types.ErrorResponse{Error: "invalid_config", Message: err.Error()},
			Fields:        []schema.FieldError{{Field: "macAddress", Message: err.Error()}},
		})
		return d, false
	}

	result := device.Check(normalized)
	if !result.Valid {
		c.JSON(http.StatusBadRequest, types.ValidationErrorResponse{
			ErrorResponse: types.ErrorResponse{Error: "invalid_config", Message: "GPIO validation failed"},
			Validation:    &result,
		})
		return d, false
	}
	return normalized, true
}

// push sends the saved mapping to the controller. The device is already
// stored, so a failed push is logged rather than returned.
func (h *DevicesHandler) push(c *gin.Context, rec *device.Record) {
	if err := h.publisher.Publish(c.Request.Context(), *rec); err != nil {
		log.Warn().Err(err).Str("mac", rec.MACAddress).Msg("Failed to push config")
	}
}

func newSecret() (string, error) {
	buf := make([]byte, secretBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// storeError maps store errors onto HTTP statuses.
func storeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, device.ErrNotFound):
		c.JSON(http.StatusNotFound, types.ErrorResponse{
			Error:   "not_found",
			Message: "Device not found",
		})
	case errors.Is(err, db.ErrDuplicateMAC):
		c.JSON(http.StatusConflict, types.ErrorResponse{
			Error:   "duplicate_mac",
			Message: err.Error(),
		})
	case errors.Is(err, db.ErrNoActiveProfile), errors.Is(err, db.ErrProfileNotFound):
		c.JSON(http.StatusServiceUnavailable, types.ErrorResponse{
			Error:   "not_configured",
			Message: "No active profile",
		})
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{
			Error:   "database_error",
			Message: err.Error(),
		})
	}
}
