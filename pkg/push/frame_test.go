package push

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/gpio"
)

func testRecord() device.Record {
	d := device.NewDraft(gpio.BoardESP32)
	d.MACAddress = "aa:bb:cc:dd:ee:ff"
	d.Switches[0].GPIO = gpio.PinPtr(16)
	d.Switches[0].RelayGPIO = gpio.PinPtr(16)
	d.Switches[0].ManualSwitchEnabled = true
	d.Switches[0].ManualSwitchGPIO = gpio.PinPtr(25)

	fan := device.NewSwitch("Fan")
	fan.GPIO = gpio.PinPtr(17)
	fan.ManualSwitchGPIO = gpio.PinPtr(26) // manual disabled
	_, _ = d.AddSwitch(fan)

	_, _ = d.AddSwitch(device.NewSwitch("Unwired"))

	d.PIREnabled = true
	d.PIRGPIO = gpio.PinPtr(34)
	d.PIRSensorType = device.SensorPIR
	d.PIRAutoOffDelay = 30
	d.DetectionLogic = device.LogicAnd

	return device.Record{ID: "dev-1", Draft: d, Secret: "s3cr3t"}
}

func TestBuildFrame(t *testing.T) {
	f := BuildFrame(testRecord(), false)

	if f.Type != "config" || f.MAC != "aa:bb:cc:dd:ee:ff" || f.DeviceType != "esp32" {
		t.Errorf("unexpected header: %+v", f)
	}
	if f.Secret != "" {
		t.Error("expected secret omitted")
	}
	if len(f.Switches) != 2 {
		t.Fatalf("expected unwired switch skipped, got: %+v", f.Switches)
	}
	if f.Switches[0].GPIO != 16 || f.Switches[0].ManualGPIO == nil || *f.Switches[0].ManualGPIO != 25 {
		t.Errorf("unexpected first switch: %+v", f.Switches[0])
	}
	if f.Switches[0].ManualMode != string(device.ManualMaintained) || !f.Switches[0].ManualActiveLow {
		t.Errorf("expected maintained active-low manual switch, got: %+v", f.Switches[0])
	}
	if f.Switches[1].GPIO != 17 || f.Switches[1].ManualGPIO != nil {
		t.Errorf("expected disabled manual pin dropped, got: %+v", f.Switches[1])
	}
	if f.Motion == nil || f.Motion.GPIO != 34 || f.Motion.AutoOffDelay != 30 {
		t.Errorf("unexpected motion section: %+v", f.Motion)
	}
}

func TestBuildFrame_WithSecret(t *testing.T) {
	f := BuildFrame(testRecord(), true)
	if f.Secret != "s3cr3t" {
		t.Errorf("expected secret, got: %q", f.Secret)
	}
}

func TestFrame_Encode(t *testing.T) {
	rec := testRecord()
	rec.PIREnabled = false

	raw, err := BuildFrame(rec, false).Encode()
	if err != nil {
		t.Fatal(err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded["motion"]; ok {
		t.Error("expected motion omitted when PIR is disabled")
	}
	if _, ok := decoded["secret"]; ok {
		t.Error("expected secret omitted")
	}
}

func TestNullPublisher(t *testing.T) {
	var p Publisher = NewNullPublisher()
	if err := p.Publish(context.Background(), testRecord()); err != nil {
		t.Errorf("expected nil error, got: %v", err)
	}
	if p.IsConnected() {
		t.Error("expected null publisher to report disconnected")
	}
	p.Close()
}
