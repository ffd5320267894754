package device

import (
	"sort"

	"github.com/urmzd/autovolt/pkg/gpio"
)

// PinOption is one entry of a pin picker.
type PinOption struct {
	Pin    int                 `json:"pin"`
	Status gpio.PinStatus      `json:"status"`
	Tier   gpio.Recommendation `json:"tier"`
	Used   bool                `json:"used"` // held by the stored config of the device being edited
	Reason string              `json:"reason,omitempty"`
}

var tierOrder = map[gpio.Recommendation]int{
	gpio.Recommended: 0,
	gpio.Alternative: 1,
	gpio.Caution:     2,
}

// AvailablePins lists the pins a picker may offer for role on the switch at
// index (ignored for gpio.RolePIR). Pins held by any other switch, by another
// role of the same switch, or by the motion sensor are left out; the pin the
// switch currently holds for role stays in. Unavailable pins are never
// offered. Options are ordered by tier, then pin number.
func AvailablePins(catalog []gpio.PinInfo, d Draft, index int, role gpio.Role) []PinOption {
	current := currentPin(d, index, role)

	consumed := map[int]bool{}
	for _, s := range d.Switches {
		for _, p := range []*int{s.GPIO, s.RelayGPIO, manualPin(s)} {
			if p != nil {
				consumed[*p] = true
			}
		}
	}
	if d.PIREnabled && d.PIRGPIO != nil && role != gpio.RolePIR {
		consumed[*d.PIRGPIO] = true
	}
	if current != nil {
		delete(consumed, *current)
	}

	var out []PinOption
	for _, info := range catalog {
		if consumed[info.Pin] {
			continue
		}
		tier := gpio.Classify(info.Pin, d.DeviceType, role)
		if tier == gpio.Unavailable {
			continue
		}
		out = append(out, PinOption{
			Pin:    info.Pin,
			Status: info.Status,
			Tier:   tier,
			Used:   info.Used,
			Reason: info.Reason,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		if tierOrder[out[i].Tier] != tierOrder[out[j].Tier] {
			return tierOrder[out[i].Tier] < tierOrder[out[j].Tier]
		}
		return out[i].Pin < out[j].Pin
	})
	return out
}

func currentPin(d Draft, index int, role gpio.Role) *int {
	if role == gpio.RolePIR {
		return d.PIRGPIO
	}
	if index < 0 || index >= len(d.Switches) {
		return nil
	}
	s := d.Switches[index]
	if role == gpio.RoleManual {
		return s.ManualSwitchGPIO
	}
	return s.GPIO
}

func manualPin(s Switch) *int {
	if !s.ManualSwitchEnabled {
		return nil
	}
	return s.ManualSwitchGPIO
}
