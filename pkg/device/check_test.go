package device

import (
	"testing"

	"github.com/urmzd/autovolt/pkg/gpio"
)

func pinnedDraft(pins ...int) Draft {
	d := NewDraft(gpio.BoardESP32)
	d.MACAddress = "AA:BB:CC:DD:EE:FF"
	d.Switches[0].GPIO = gpio.PinPtr(pins[0])
	for _, p := range pins[1:] {
		s := NewSwitch("extra")
		s.GPIO = gpio.PinPtr(p)
		_, _ = d.AddSwitch(s)
	}
	return d
}

func errorFields(r gpio.ValidationResult) map[string]bool {
	out := map[string]bool{}
	for _, e := range r.Errors {
		out[e.Field] = true
	}
	return out
}

func TestCheck_Clean(t *testing.T) {
	if r := Check(pinnedDraft(16, 17)); !r.Valid {
		t.Errorf("expected valid draft, got: %+v", r.Errors)
	}
}

func TestCheck_PinSetsIntersect(t *testing.T) {
	d := pinnedDraft(16, 17)
	d.Switches[1].ManualSwitchEnabled = true
	d.Switches[1].ManualSwitchGPIO = gpio.PinPtr(16)

	r := Check(d)
	if r.Valid {
		t.Fatal("expected pin conflict to fail")
	}
	if !errorFields(r)["switches.1.manualSwitchGpio"] {
		t.Errorf("expected conflict on switches.1.manualSwitchGpio, got: %+v", r.Errors)
	}
}

func TestCheck_DisabledManualPinIgnored(t *testing.T) {
	d := pinnedDraft(16, 17)
	d.Switches[1].ManualSwitchGPIO = gpio.PinPtr(16)

	if r := Check(d); !r.Valid {
		t.Errorf("expected disabled manual pin to be ignored, got: %+v", r.Errors)
	}
}

func TestCheck_NotificationWindow(t *testing.T) {
	d := pinnedDraft(16)
	d.Notifications = Notifications{Enabled: true, AfterTime: "25:00", DaysOfWeek: []int{1}}

	if r := Check(d); !errorFields(r)["deviceNotifications.afterTime"] {
		t.Errorf("expected afterTime error, got: %+v", r.Errors)
	}

	d.Notifications = Notifications{Enabled: true, AfterTime: "18:00"}
	if r := Check(d); !errorFields(r)["deviceNotifications.daysOfWeek"] {
		t.Errorf("expected daysOfWeek error, got: %+v", r.Errors)
	}

	d.Notifications = Notifications{Enabled: false}
	if r := Check(d); !r.Valid {
		t.Errorf("expected disabled notifications to pass, got: %+v", r.Errors)
	}
}

func TestCheck_PIRSchedule(t *testing.T) {
	d := pinnedDraft(16)
	d.PIRSchedule = Schedule{Enabled: true, StartTime: "8:00", EndTime: "17:00", DaysOfWeek: []int{1, 7}}

	fields := errorFields(Check(d))
	if !fields["pirDetectionSchedule.startTime"] {
		t.Error("expected startTime error for single-digit hour")
	}
	if fields["pirDetectionSchedule.endTime"] {
		t.Error("expected endTime to pass")
	}
	if !fields["pirDetectionSchedule.daysOfWeek"] {
		t.Error("expected daysOfWeek error for day 7")
	}
}

func TestValidTime(t *testing.T) {
	for _, ok := range []string{"00:00", "09:05", "23:59"} {
		if !ValidTime(ok) {
			t.Errorf("expected %q valid", ok)
		}
	}
	for _, bad := range []string{"24:00", "25:00", "12:60", "9:00", "", "12:00:00"} {
		if ValidTime(bad) {
			t.Errorf("expected %q invalid", bad)
		}
	}
}

func TestNormalize(t *testing.T) {
	d := pinnedDraft(16, 17)
	d.Name = "  Lab 3  "
	d.Switches[1].ID = ""
	d.Switches[1].ManualSwitchGPIO = gpio.PinPtr(25)
	d.Notifications.DaysOfWeek = []int{5, 1, 3}

	out, err := Normalize(d)
	if err != nil {
		t.Fatal(err)
	}
	if out.MACAddress != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("expected canonical MAC, got %s", out.MACAddress)
	}
	if out.Name != "Lab 3" {
		t.Errorf("expected trimmed name, got %q", out.Name)
	}
	for i, s := range out.Switches {
		if s.ID == "" {
			t.Errorf("switch %d has no id", i)
		}
		if s.RelayGPIO == nil || *s.RelayGPIO != *s.GPIO {
			t.Errorf("switch %d: expected relayGpio defaulted to gpio", i)
		}
	}
	if out.Switches[0].ID != d.Switches[0].ID {
		t.Error("expected existing id preserved")
	}
	if out.Switches[1].ManualSwitchGPIO != nil {
		t.Error("expected manual pin cleared while manual switch is disabled")
	}
	if got := out.Notifications.DaysOfWeek; got[0] != 1 || got[2] != 5 {
		t.Errorf("expected sorted days, got %v", got)
	}

	if d.MACAddress != "AA:BB:CC:DD:EE:FF" || d.Switches[1].ID != "" || d.Switches[1].RelayGPIO != nil {
		t.Error("expected input draft untouched")
	}
	if d.Notifications.DaysOfWeek[0] != 5 {
		t.Error("expected input day order untouched")
	}
}

func TestNormalize_KeepsExplicitRelayPin(t *testing.T) {
	d := pinnedDraft(16)
	d.Switches[0].RelayGPIO = gpio.PinPtr(18)

	out, err := Normalize(d)
	if err != nil {
		t.Fatal(err)
	}
	if *out.Switches[0].RelayGPIO != 18 {
		t.Errorf("expected explicit relay pin kept, got %d", *out.Switches[0].RelayGPIO)
	}
}

func TestNormalize_InvalidMAC(t *testing.T) {
	d := pinnedDraft(16)
	d.MACAddress = "12:34"
	if _, err := Normalize(d); err == nil {
		t.Error("expected error for invalid MAC")
	}
}

func TestCheck_SameLayoutOnAnotherController(t *testing.T) {
	first := pinnedDraft(16, 17)
	second := pinnedDraft(16, 17)
	second.MACAddress = "aa:bb:cc:dd:ee:02"

	if r := Check(first); !r.Valid {
		t.Fatalf("expected first controller valid, got: %+v", r.Errors)
	}
	if r := Check(second); !r.Valid {
		t.Errorf("expected same pins on another board valid, got: %+v", r.Errors)
	}
}
