// Package push delivers saved GPIO mappings to controllers, over MQTT for
// devices on the network.
package push

import (
	"encoding/json"

	"github.com/urmzd/autovolt/pkg/device"
)

// ConfigTopic is the topic controllers subscribe to for configuration.
const ConfigTopic = "esp32/config"

// SwitchFrame is one relay channel as the firmware consumes it.
type SwitchFrame struct {
	Name            string `json:"name"`
	GPIO            int    `json:"gpio"`
	ManualGPIO      *int   `json:"manualGpio,omitempty"`
	ManualMode      string `json:"manualMode,omitempty"`
	ManualActiveLow bool   `json:"manualActiveLow"`
	UsePIR          bool   `json:"usePir"`
	DontAutoOff     bool   `json:"dontAutoOff"`
	DefaultState    bool   `json:"defaultState"`
}

// MotionFrame is the motion sensor section of a frame.
type MotionFrame struct {
	GPIO         int    `json:"gpio"`
	SensorType   string `json:"sensorType"`
	AutoOffDelay int    `json:"autoOffDelay"`
	Logic        string `json:"logic"`
}

// Frame is the configuration message sent to one controller. Frames on the
// shared topic are told apart by MAC.
type Frame struct {
	Type       string        `json:"type"`
	MAC        string        `json:"mac"`
	Secret     string        `json:"secret,omitempty"`
	DeviceType string        `json:"deviceType"`
	Switches   []SwitchFrame `json:"switches"`
	Motion     *MotionFrame  `json:"motion,omitempty"`
}

// BuildFrame derives the firmware frame from a stored record. Switches
// without a relay pin are skipped. The secret is only included when
// withSecret is set, for provisioning over a local link.
func BuildFrame(rec device.Record, withSecret bool) Frame {
	f := Frame{
		Type:       "config",
		MAC:        rec.MACAddress,
		DeviceType: string(rec.DeviceType),
		Switches:   make([]SwitchFrame, 0, len(rec.Switches)),
	}
	if withSecret {
		f.Secret = rec.Secret
	}

	for _, s := range rec.Switches {
		relay := s.RelayGPIO
		if relay == nil {
			relay = s.GPIO
		}
		if relay == nil {
			continue
		}

		sf := SwitchFrame{
			Name:            s.Name,
			GPIO:            *relay,
			ManualActiveLow: s.ManualActiveLow,
			UsePIR:          s.UsePIR,
			DontAutoOff:     s.DontAutoOff,
			DefaultState:    s.State,
		}
		if s.ManualSwitchEnabled && s.ManualSwitchGPIO != nil {
			pin := *s.ManualSwitchGPIO
			sf.ManualGPIO = &pin
			sf.ManualMode = string(s.ManualMode)
		}
		f.Switches = append(f.Switches, sf)
	}

	if rec.PIREnabled && rec.PIRGPIO != nil {
		f.Motion = &MotionFrame{
			GPIO:         *rec.PIRGPIO,
			SensorType:   string(rec.PIRSensorType),
			AutoOffDelay: rec.PIRAutoOffDelay,
			Logic:        string(rec.DetectionLogic),
		}
	}
	return f
}

// Encode returns the frame as compact JSON.
func (f Frame) Encode() ([]byte, error) {
	return json.Marshal(f)
}
