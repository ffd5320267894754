package device

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Normalize returns the submission form of d: the MAC in canonical form,
// names trimmed, every switch carrying an id, relayGpio defaulted to gpio,
// and day sets sorted. d itself is not modified.
func Normalize(d Draft) (Draft, error) {
	out := d.Clone()

	mac, err := CanonicalMAC(out.MACAddress)
	if err != nil {
		return Draft{}, err
	}
	out.MACAddress = mac
	out.Name = strings.TrimSpace(out.Name)
	out.IPAddress = strings.TrimSpace(out.IPAddress)
	out.Location = strings.TrimSpace(out.Location)

	for i := range out.Switches {
		s := &out.Switches[i]
		s.Name = strings.TrimSpace(s.Name)
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		if s.RelayGPIO == nil {
			s.RelayGPIO = clonePin(s.GPIO)
		}
		if s.Type == "" {
			s.Type = SwitchRelay
		}
		if s.ManualMode == "" {
			s.ManualMode = ManualMaintained
		}
		if !s.ManualSwitchEnabled {
			s.ManualSwitchGPIO = nil
		}
	}

	if out.PIREnabled {
		if out.PIRSensorType == "" {
			out.PIRSensorType = SensorPIR
		}
		if out.DetectionLogic == "" {
			out.DetectionLogic = LogicAnd
		}
	}

	out.PIRSchedule.DaysOfWeek = sortedDays(out.PIRSchedule.DaysOfWeek)
	out.Notifications.DaysOfWeek = sortedDays(out.Notifications.DaysOfWeek)
	return out, nil
}

func sortedDays(days []int) []int {
	if days == nil {
		return []int{}
	}
	sort.Ints(days)
	return days
}
