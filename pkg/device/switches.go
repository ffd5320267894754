package device

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/urmzd/autovolt/pkg/gpio"
)

// MaxSwitches returns the switch ceiling for the draft's board.
func (d *Draft) MaxSwitches() int {
	return gpio.MaxSwitches(d.DeviceType)
}

// AddSwitch appends s, assigning it an id if it has none. It is rejected
// once the board's ceiling is reached.
func (d *Draft) AddSwitch(s Switch) (*Switch, error) {
	if !d.DeviceType.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDeviceType, d.DeviceType)
	}
	if len(d.Switches) >= d.MaxSwitches() {
		return nil, fmt.Errorf("%w: %s allows %d", ErrSwitchLimit, d.DeviceType, d.MaxSwitches())
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	d.Switches = append(d.Switches, s)
	return &d.Switches[len(d.Switches)-1], nil
}

// RemoveSwitch deletes the switch at i. The first switch is protected so a
// device always keeps at least one.
func (d *Draft) RemoveSwitch(i int) error {
	if i == 0 {
		return ErrProtectedSwitch
	}
	if i < 0 || i >= len(d.Switches) {
		return fmt.Errorf("%w: %d", ErrSwitchIndex, i)
	}
	d.Switches = append(d.Switches[:i], d.Switches[i+1:]...)
	return nil
}

// MoveSwitch swaps the switch at i with its neighbour delta positions away
// (-1 moves up, +1 moves down). Ids travel with their switches.
func (d *Draft) MoveSwitch(i, delta int) error {
	j := i + delta
	if i < 0 || i >= len(d.Switches) || j < 0 || j >= len(d.Switches) {
		return fmt.Errorf("%w: %d -> %d", ErrSwitchIndex, i, j)
	}
	d.Switches[i], d.Switches[j] = d.Switches[j], d.Switches[i]
	return nil
}

// SetDeviceType changes the board. A board whose ceiling is below the
// current switch count is refused so no switches are dropped silently.
func (d *Draft) SetDeviceType(board gpio.BoardType) error {
	if !board.Valid() {
		return fmt.Errorf("%w: %q", ErrUnsupportedDeviceType, board)
	}
	if limit := gpio.MaxSwitches(board); len(d.Switches) > limit {
		return fmt.Errorf("%w: %s allows %d, draft has %d", ErrSwitchLimit, board, limit, len(d.Switches))
	}
	d.DeviceType = board
	return nil
}

// SwitchPins converts the switch list to the layout the GPIO validator reads.
func SwitchPins(switches []Switch) []gpio.SwitchPins {
	out := make([]gpio.SwitchPins, len(switches))
	for i, s := range switches {
		out[i] = gpio.SwitchPins{
			ID:                  s.ID,
			Name:                s.Name,
			GPIO:                clonePin(s.GPIO),
			RelayGPIO:           clonePin(s.RelayGPIO),
			ManualSwitchEnabled: s.ManualSwitchEnabled,
			ManualSwitchGPIO:    clonePin(s.ManualSwitchGPIO),
		}
	}
	return out
}

// ValidateRequest builds the GPIO validation request for d. existing is the
// stored record when editing and nil when creating.
func (d Draft) ValidateRequest(existing *Record) gpio.ValidateRequest {
	req := gpio.ValidateRequest{
		Switches:   SwitchPins(d.Switches),
		PIREnabled: d.PIREnabled,
		PIRGPIO:    clonePin(d.PIRGPIO),
		DeviceType: d.DeviceType,
	}
	if existing != nil {
		req.IsUpdate = true
		req.ExistingConfig = SwitchPins(existing.Switches)
		if existing.PIREnabled {
			req.ExistingPIRGPIO = clonePin(existing.PIRGPIO)
		}
	}
	return req
}

// UsedPins returns every pin the record claims.
func (r Record) UsedPins() []int {
	return gpio.PinsOf(SwitchPins(r.Switches), r.PIREnabled, r.PIRGPIO)
}
