package device

import (
	"time"

	"github.com/urmzd/autovolt/pkg/gpio"
)

// SwitchType is the kind of load a switch drives
type SwitchType string

// Switch type constants
const (
	SwitchRelay     SwitchType = "relay"
	SwitchLight     SwitchType = "light"
	SwitchFan       SwitchType = "fan"
	SwitchOutlet    SwitchType = "outlet"
	SwitchProjector SwitchType = "projector"
	SwitchAC        SwitchType = "ac"
)

// ManualMode is how a wall switch toggles its relay
type ManualMode string

// Manual mode constants
const (
	ManualMaintained ManualMode = "maintained" // rocker: relay follows the switch position
	ManualMomentary  ManualMode = "momentary"  // push button: each press toggles
)

// SensorType selects the motion sensor hardware
type SensorType string

// Sensor type constants
const (
	SensorPIR       SensorType = "pir-only"
	SensorMicrowave SensorType = "microwave-only"
	SensorDual      SensorType = "dual"
)

// DetectionLogic combines readings when two sensors are fitted
type DetectionLogic string

// Detection logic constants
const (
	LogicAnd      DetectionLogic = "and"
	LogicOr       DetectionLogic = "or"
	LogicWeighted DetectionLogic = "weighted"
)

// Switch is one relay channel of a device draft.
type Switch struct {
	ID                  string     `json:"id,omitempty"`   // Generated once on add, never reassigned
	Name                string     `json:"name"`           // User-facing label
	Type                SwitchType `json:"type"`           // Kind of load
	GPIO                *int       `json:"gpio,omitempty"` // Relay output pin, unset until picked
	RelayGPIO           *int       `json:"relayGpio,omitempty"`
	ManualSwitchEnabled bool       `json:"manualSwitchEnabled"`
	ManualSwitchGPIO    *int       `json:"manualSwitchGpio,omitempty"`
	ManualMode          ManualMode `json:"manualMode,omitempty"`
	ManualActiveLow     bool       `json:"manualActiveLow"`
	UsePIR              bool       `json:"usePir"`
	DontAutoOff         bool       `json:"dontAutoOff"`
	State               bool       `json:"state"`
}

// NewSwitch returns a switch with the firmware defaults: relay type,
// maintained wall switch wired active low.
func NewSwitch(name string) Switch {
	return Switch{
		Name:            name,
		Type:            SwitchRelay,
		ManualMode:      ManualMaintained,
		ManualActiveLow: true,
	}
}

// Schedule is a time window on selected weekdays (0 = Sunday).
type Schedule struct {
	Enabled    bool   `json:"enabled"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
	DaysOfWeek []int  `json:"daysOfWeek"`
}

// Notifications configures "still on after" alerts for a device.
type Notifications struct {
	Enabled    bool   `json:"enabled"`
	AfterTime  string `json:"afterTime,omitempty"`
	DaysOfWeek []int  `json:"daysOfWeek"`
}

// Draft is an unsaved device configuration.
type Draft struct {
	Name       string         `json:"name"`
	MACAddress string         `json:"macAddress"`
	IPAddress  string         `json:"ipAddress"`
	Location   string         `json:"location"`
	Block      string         `json:"block,omitempty"`
	Floor      string         `json:"floor,omitempty"`
	Classroom  string         `json:"classroom,omitempty"`
	DeviceType gpio.BoardType `json:"deviceType"`

	PIREnabled      bool           `json:"pirEnabled"`
	PIRGPIO         *int           `json:"pirGpio,omitempty"`
	PIRSensorType   SensorType     `json:"pirSensorType,omitempty"`
	PIRAutoOffDelay int            `json:"pirAutoOffDelay,omitempty"` // seconds
	DetectionLogic  DetectionLogic `json:"motionDetectionLogic,omitempty"`
	PIRSchedule     Schedule       `json:"pirDetectionSchedule"`

	Notifications Notifications `json:"deviceNotifications"`

	Switches []Switch `json:"switches"`
}

// NewDraft returns an empty draft for a board with a single default switch.
func NewDraft(board gpio.BoardType) Draft {
	d := Draft{
		DeviceType:    board,
		PIRSchedule:   Schedule{DaysOfWeek: []int{}},
		Notifications: Notifications{DaysOfWeek: []int{}},
	}
	_, _ = d.AddSwitch(NewSwitch("Switch 1"))
	return d
}

// Clone returns a deep copy of the draft.
func (d Draft) Clone() Draft {
	out := d
	out.PIRGPIO = clonePin(d.PIRGPIO)
	out.PIRSchedule.DaysOfWeek = cloneInts(d.PIRSchedule.DaysOfWeek)
	out.Notifications.DaysOfWeek = cloneInts(d.Notifications.DaysOfWeek)
	out.Switches = make([]Switch, len(d.Switches))
	for i, s := range d.Switches {
		s.GPIO = clonePin(s.GPIO)
		s.RelayGPIO = clonePin(s.RelayGPIO)
		s.ManualSwitchGPIO = clonePin(s.ManualSwitchGPIO)
		out.Switches[i] = s
	}
	return out
}

// Status constants for persisted devices
const (
	StatusOnline  = "online"
	StatusOffline = "offline"
)

// Record is a persisted device.
type Record struct {
	Draft
	ID        string     `json:"id"`
	Status    string     `json:"status"`
	LastSeen  *time.Time `json:"lastSeen,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	Secret    string     `json:"-"`
}

func clonePin(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneInts(s []int) []int {
	if s == nil {
		return nil
	}
	out := make([]int, len(s))
	copy(out, s)
	return out
}
