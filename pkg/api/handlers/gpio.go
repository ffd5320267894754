package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/urmzd/autovolt/pkg/api/types"
	"github.com/urmzd/autovolt/pkg/db"
	"github.com/urmzd/autovolt/pkg/gpio"
)

// GPIOHandler serves pin catalogs and layout validation
type GPIOHandler struct {
	devices db.DeviceStore
}

// NewGPIOHandler creates a new GPIO handler
func NewGPIOHandler(devices db.DeviceStore) *GPIOHandler {
	return &GPIOHandler{devices: devices}
}

// PinInfo handles GET /devices/gpio-pin-info
// @Summary      Pin catalog
// @Description  Returns every pin of a board with its status, recommended roles and alternatives. With deviceId, used marks the pins held by that device's stored configuration.
// @Tags         gpio
// @Produce      json
// @Param        deviceType  query     string  false  "Board type (esp32, esp8266)"  default(esp32)
// @Param        deviceId    query     string  false  "Device being edited"
// @Success      200  {object}  types.PinInfoResponse
// @Failure      400  {object}  types.ErrorResponse  "Unsupported device type"
// @Failure      404  {object}  types.ErrorResponse  "Device not found"
// @Failure      500  {object}  types.ErrorResponse  "Database error"
// @Router       /devices/gpio-pin-info [get]
func (h *GPIOHandler) PinInfo(c *gin.Context) {
	board := gpio.BoardType(c.DefaultQuery("deviceType", string(gpio.BoardESP32)))

	pins, err := gpio.Catalog(board)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "unsupported_device_type",
			Message: err.Error(),
		})
		return
	}

	used, err := h.devices.UsedPins(c.Request.Context(), c.Query("deviceId"))
	if err != nil {
		storeError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.PinInfoResponse{
		DeviceType: board,
		Pins:       gpio.MarkUsed(pins, used),
	})
}

// Validate handles POST /devices/gpio-validate
// @Summary      Validate a pin layout
// @Description  Checks pin uniqueness across relay, manual and PIR roles and the board limits. An invalid layout is still a 200 response with valid=false.
// @Tags         gpio
// @Accept       json
// @Produce      json
// @Param        request  body      gpio.ValidateRequest  true  "Proposed layout"
// @Success      200  {object}  gpio.ValidationResult
// @Failure      400  {object}  types.ErrorResponse  "Malformed request"
// @Router       /devices/gpio-validate [post]
func (h *GPIOHandler) Validate(c *gin.Context) {
	var req gpio.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{
			Error:   "invalid_request",
			Message: err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gpio.Validate(req))
}
