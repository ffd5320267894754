package gpio

import (
	"strings"
	"testing"
)

func sw(name string, pin int) SwitchPins {
	return SwitchPins{Name: name, GPIO: PinPtr(pin)}
}

func withManual(s SwitchPins, pin int) SwitchPins {
	s.ManualSwitchEnabled = true
	s.ManualSwitchGPIO = PinPtr(pin)
	return s
}

func hasErrorFor(r ValidationResult, field string, pin int) bool {
	for _, e := range r.Errors {
		if e.Field == field && e.Pin != nil && *e.Pin == pin {
			return true
		}
	}
	return false
}

func TestValidate_CleanLayout(t *testing.T) {
	r := Validate(ValidateRequest{
		DeviceType: BoardESP32,
		Switches:   []SwitchPins{withManual(sw("Light", 16), 25), withManual(sw("Fan", 17), 26)},
		PIREnabled: true,
		PIRGPIO:    PinPtr(34),
	})

	if !r.Valid {
		t.Fatalf("expected valid layout, got errors: %+v", r.Errors)
	}
	if len(r.Warnings) != 0 {
		t.Errorf("expected no warnings, got: %+v", r.Warnings)
	}
}

func TestValidate_ManualPinCollidesWithPrimary(t *testing.T) {
	r := Validate(ValidateRequest{
		DeviceType: BoardESP32,
		Switches:   []SwitchPins{sw("A", 16), withManual(sw("B", 17), 16)},
	})

	if r.Valid {
		t.Fatal("expected conflict to fail validation")
	}
	if !hasErrorFor(r, "switches.1.manualSwitchGpio", 16) {
		t.Errorf("expected error on switches.1.manualSwitchGpio referencing pin 16, got: %+v", r.Errors)
	}
	if !strings.Contains(r.Errors[0].Message, `"A"`) {
		t.Errorf("expected message to name the first owner, got: %s", r.Errors[0].Message)
	}
	if r.Errors[0].Suggestion == "" {
		t.Error("expected a suggestion of free pins")
	}
}

func TestValidate_PIRCollidesWithManual(t *testing.T) {
	r := Validate(ValidateRequest{
		DeviceType: BoardESP32,
		Switches:   []SwitchPins{withManual(sw("A", 16), 35)},
		PIREnabled: true,
		PIRGPIO:    PinPtr(35),
	})

	if !hasErrorFor(r, "pirGpio", 35) {
		t.Errorf("expected PIR conflict on 35, got: %+v", r.Errors)
	}
}

func TestValidate_DisabledPIRIgnored(t *testing.T) {
	r := Validate(ValidateRequest{
		DeviceType: BoardESP32,
		Switches:   []SwitchPins{sw("A", 16)},
		PIREnabled: false,
		PIRGPIO:    PinPtr(16),
	})

	if !r.Valid {
		t.Errorf("expected disabled PIR pin to be ignored, got: %+v", r.Errors)
	}
}

func TestValidate_SwitchCeiling(t *testing.T) {
	r := Validate(ValidateRequest{
		DeviceType: BoardESP8266,
		Switches:   []SwitchPins{sw("1", 4), sw("2", 5), sw("3", 12), sw("4", 13), sw("5", 14)},
	})

	if r.Valid {
		t.Fatal("expected 5 switches on esp8266 to fail")
	}
	found := false
	for _, e := range r.Errors {
		if e.Field == "switches" {
			found = true
		}
	}
	if !found {
		t.Errorf("expected switches ceiling error, got: %+v", r.Errors)
	}
}

func TestValidate_ReservedAndInputOnly(t *testing.T) {
	r := Validate(ValidateRequest{
		DeviceType: BoardESP32,
		Switches:   []SwitchPins{sw("Flash", 6), sw("Input", 34)},
	})

	if !hasErrorFor(r, "switches.0.gpio", 6) {
		t.Errorf("expected reserved pin error, got: %+v", r.Errors)
	}
	if !hasErrorFor(r, "switches.1.gpio", 34) {
		t.Errorf("expected input-only relay error, got: %+v", r.Errors)
	}
}

func TestValidate_ProblematicIsWarning(t *testing.T) {
	r := Validate(ValidateRequest{
		DeviceType: BoardESP32,
		Switches:   []SwitchPins{sw("Boot", 0)},
	})

	if !r.Valid {
		t.Errorf("expected problematic pin to pass, got: %+v", r.Errors)
	}
	if len(r.Warnings) != 1 {
		t.Errorf("expected one warning, got %d", len(r.Warnings))
	}
}

func TestValidate_MissingPins(t *testing.T) {
	r := Validate(ValidateRequest{
		DeviceType: BoardESP32,
		Switches:   []SwitchPins{{Name: "Unset", ManualSwitchEnabled: true}},
		PIREnabled: true,
	})

	fields := map[string]bool{}
	for _, e := range r.Errors {
		fields[e.Field] = true
	}
	for _, f := range []string{"switches.0.gpio", "switches.0.manualSwitchGpio", "pirGpio"} {
		if !fields[f] {
			t.Errorf("expected error on %s, got: %+v", f, r.Errors)
		}
	}
}

func TestValidate_PinOutsideBoard(t *testing.T) {
	r := Validate(ValidateRequest{
		DeviceType: BoardESP8266,
		Switches:   []SwitchPins{sw("A", 21)},
	})

	if !hasErrorFor(r, "switches.0.gpio", 21) {
		t.Errorf("expected missing pin error, got: %+v", r.Errors)
	}
}

func TestValidate_ExistingConfigDoesNotChangeOutcome(t *testing.T) {
	// the stock firmware layout, once stored for another controller
	stock := []SwitchPins{sw("A", 16), sw("B", 17), sw("C", 18), sw("D", 19), sw("E", 21), sw("F", 22)}

	r := Validate(ValidateRequest{DeviceType: BoardESP32, Switches: stock})
	if !r.Valid {
		t.Errorf("expected stock layout valid, got: %+v", r.Errors)
	}

	r = Validate(ValidateRequest{
		DeviceType:     BoardESP32,
		Switches:       []SwitchPins{sw("A", 17), sw("B", 17)},
		IsUpdate:       true,
		ExistingConfig: []SwitchPins{sw("A", 17)},
	})
	if !hasErrorFor(r, "switches.1.gpio", 17) {
		t.Errorf("expected duplicate still rejected on update, got: %+v", r.Errors)
	}
}

func TestValidate_RelayAliasParticipatesInUniqueness(t *testing.T) {
	a := sw("A", 16)
	a.RelayGPIO = PinPtr(17)

	r := Validate(ValidateRequest{
		DeviceType: BoardESP32,
		Switches:   []SwitchPins{a, sw("B", 17)},
	})
	if !hasErrorFor(r, "switches.1.gpio", 17) {
		t.Errorf("expected relay alias conflict, got: %+v", r.Errors)
	}

	same := sw("C", 18)
	same.RelayGPIO = PinPtr(18)
	r = Validate(ValidateRequest{DeviceType: BoardESP32, Switches: []SwitchPins{same}})
	if !r.Valid {
		t.Errorf("expected matching relay alias to pass, got: %+v", r.Errors)
	}
}

func TestValidate_UnknownBoard(t *testing.T) {
	r := Validate(ValidateRequest{DeviceType: "esp32c3"})
	if r.Valid || r.Errors[0].Field != "deviceType" {
		t.Errorf("expected deviceType error, got: %+v", r.Errors)
	}
}

func TestPinsOf(t *testing.T) {
	pins := PinsOf([]SwitchPins{withManual(sw("A", 17), 25), sw("B", 16)}, true, PinPtr(34))
	want := []int{16, 17, 25, 34}
	if len(pins) != len(want) {
		t.Fatalf("expected %v, got %v", want, pins)
	}
	for i := range want {
		if pins[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, pins)
		}
	}

	if got := PinsOf(nil, false, PinPtr(34)); len(got) != 0 {
		t.Errorf("expected disabled sensor excluded, got %v", got)
	}
}
