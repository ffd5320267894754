package device

import "errors"

var (
	// ErrNotFound indicates a device was not found
	ErrNotFound = errors.New("device not found")

	// ErrSwitchLimit indicates the board cannot carry another switch
	ErrSwitchLimit = errors.New("switch limit reached for device type")

	// ErrProtectedSwitch indicates an attempt to remove the first switch
	ErrProtectedSwitch = errors.New("the first switch cannot be removed")

	// ErrSwitchIndex indicates a switch position outside the list
	ErrSwitchIndex = errors.New("switch index out of range")

	// ErrInvalidMAC indicates a MAC address that is not six hex octets
	ErrInvalidMAC = errors.New("invalid MAC address")

	// ErrUnsupportedDeviceType indicates a board without a pin catalog
	ErrUnsupportedDeviceType = errors.New("unsupported device type")

	// ErrValidation indicates a draft failed validation
	ErrValidation = errors.New("validation error")
)
