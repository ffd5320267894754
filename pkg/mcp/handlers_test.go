package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/gpio"
)

type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

func newTestServer() *Server {
	return NewServer(device.NewLocalProvider(), schema.NewValidator(), nil)
}

func call(t *testing.T, h toolHandler, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := h(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("expected content")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got: %T", res.Content[0])
	}
	return tc.Text
}

func decodeResult[T any](t *testing.T, res *mcp.CallToolResult) T {
	t.Helper()
	if res.IsError {
		t.Fatalf("expected success, got error: %s", text(t, res))
	}
	var out T
	if err := json.Unmarshal([]byte(text(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return out
}

func TestListPins(t *testing.T) {
	s := newTestServer()

	out := decodeResult[ListPinsOutput](t, call(t, s.handleListPins, map[string]any{"device_type": "esp8266"}))
	if out.DeviceType != gpio.BoardESP8266 || len(out.Pins) != 17 {
		t.Errorf("expected 17 esp8266 pins, got: %s with %d", out.DeviceType, len(out.Pins))
	}
	if out.Pins[0].Tier != "" {
		t.Errorf("expected no tier without a role, got: %s", out.Pins[0].Tier)
	}

	out = decodeResult[ListPinsOutput](t, call(t, s.handleListPins, map[string]any{"role": "relay"}))
	if out.DeviceType != gpio.BoardESP32 {
		t.Errorf("expected esp32 default, got: %s", out.DeviceType)
	}
	for _, p := range out.Pins {
		if p.Pin == 16 && p.Tier != gpio.Recommended {
			t.Errorf("expected GPIO16 recommended for relay, got: %s", p.Tier)
		}
		if p.InputOnly && p.Tier != gpio.Unavailable {
			t.Errorf("expected input-only GPIO%d unavailable for relay, got: %s", p.Pin, p.Tier)
		}
	}
}

func TestListPins_UnknownBoard(t *testing.T) {
	s := newTestServer()

	res := call(t, s.handleListPins, map[string]any{"device_type": "nano"})
	if !res.IsError {
		t.Error("expected error for unknown board")
	}
}

func TestClassifyPin(t *testing.T) {
	s := newTestServer()

	out := decodeResult[ClassifyPinOutput](t, call(t, s.handleClassifyPin, map[string]any{
		"pin":  float64(34),
		"role": "relay",
	}))
	if out.Tier != gpio.Unavailable || out.Info == nil || !out.Info.InputOnly {
		t.Errorf("expected input-only GPIO34 unavailable for relay, got: %+v", out)
	}

	out = decodeResult[ClassifyPinOutput](t, call(t, s.handleClassifyPin, map[string]any{
		"pin":         float64(99),
		"role":        "manual",
		"device_type": "esp8266",
	}))
	if out.Tier != gpio.Unavailable || out.Info != nil {
		t.Errorf("expected missing pin unavailable without info, got: %+v", out)
	}

	if res := call(t, s.handleClassifyPin, map[string]any{"role": "relay"}); !res.IsError {
		t.Error("expected error without pin")
	}
	if res := call(t, s.handleClassifyPin, map[string]any{"pin": 4.5, "role": "relay"}); !res.IsError {
		t.Error("expected error for fractional pin")
	}
}

func TestValidateConfig(t *testing.T) {
	s := newTestServer()

	config := map[string]any{
		"name":       "Lab 3",
		"macAddress": "AA:BB:CC:DD:EE:FF",
		"ipAddress":  "192.168.1.50",
		"location":   "Block A",
		"deviceType": "esp32",
		"switches": []any{
			map[string]any{"name": "Lights", "type": "light", "gpio": 16},
			map[string]any{
				"name":                "Fan",
				"type":                "fan",
				"gpio":                17,
				"manualSwitchEnabled": true,
				"manualSwitchGpio":    16,
			},
		},
	}

	out := decodeResult[ValidateConfigOutput](t, call(t, s.handleValidateConfig, map[string]any{"config": config}))
	if out.Valid {
		t.Fatal("expected shared GPIO16 to fail")
	}
	found := false
	for _, e := range out.Errors {
		if e.Field == "switches.1.manualSwitchGpio" && e.Pin != nil && *e.Pin == 16 {
			found = true
		}
	}
	if !found {
		t.Errorf("expected manual pin conflict, got: %+v", out.Errors)
	}

	config["switches"].([]any)[1].(map[string]any)["manualSwitchGpio"] = 18
	out = decodeResult[ValidateConfigOutput](t, call(t, s.handleValidateConfig, map[string]any{"config": config}))
	if !out.Valid {
		t.Errorf("expected valid layout, got: %+v", out)
	}
}

func TestValidateConfig_FieldErrors(t *testing.T) {
	s := newTestServer()

	out := decodeResult[ValidateConfigOutput](t, call(t, s.handleValidateConfig, map[string]any{
		"config": map[string]any{"deviceType": "esp32", "switches": []any{}},
	}))
	if out.Valid || len(out.Fields) == 0 {
		t.Errorf("expected field errors, got: %+v", out)
	}
	if len(out.Errors) != 0 {
		t.Errorf("expected no pin validation for malformed drafts, got: %+v", out.Errors)
	}

	if res := call(t, s.handleValidateConfig, map[string]any{}); !res.IsError {
		t.Error("expected error without config")
	}
}

func TestFormatMAC(t *testing.T) {
	s := newTestServer()

	out := decodeResult[FormatMACOutput](t, call(t, s.handleFormatMAC, map[string]any{"mac": "aabbccddeeff"}))
	if out.Formatted != "AA:BB:CC:DD:EE:FF" || out.Canonical != "aa:bb:cc:dd:ee:ff" || !out.Complete {
		t.Errorf("unexpected output: %+v", out)
	}

	out = decodeResult[FormatMACOutput](t, call(t, s.handleFormatMAC, map[string]any{"mac": "aab"}))
	if out.Formatted != "AA:B" || out.Complete || out.Canonical != "" {
		t.Errorf("expected partial address, got: %+v", out)
	}
}
