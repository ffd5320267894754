package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/gpio"
)

func (s *Server) handleListPins(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	board, err := boardArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	role := gpio.Role(optionalString(request, "role"))

	pins, err := s.provider.PinInfo(ctx, board, optionalString(request, "device_id"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load pins: %s", err)), nil
	}

	out := ListPinsOutput{
		DeviceType: board,
		Role:       role,
		Pins:       make([]PinSummary, 0, len(pins)),
	}
	for _, p := range pins {
		summary := PinSummary{PinInfo: p}
		if role != "" {
			summary.Tier = gpio.Classify(p.Pin, board, role)
		}
		out.Pins = append(out.Pins, summary)
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleClassifyPin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	pin, err := requiredInt(request, "pin")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	role, err := requiredString(request, "role")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	board, err := boardArg(request)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := ClassifyPinOutput{
		Pin:        pin,
		DeviceType: board,
		Role:       gpio.Role(role),
		Tier:       gpio.Classify(pin, board, gpio.Role(role)),
	}
	if info, ok := gpio.Lookup(board, pin); ok {
		out.Info = &info
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleValidateConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, ok := request.GetArguments()["config"]
	if !ok || raw == nil {
		return mcp.NewToolResultError(`required parameter "config" is missing`), nil
	}

	var d device.Draft
	b, err := json.Marshal(raw)
	if err == nil {
		err = json.Unmarshal(b, &d)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("config is not a device draft: %s", err)), nil
	}

	if fields := s.validator.ValidateDraft(d); len(fields) > 0 {
		return mcp.NewToolResultText(formatJSON(ValidateConfigOutput{Fields: fields})), nil
	}

	normalized, err := device.Normalize(d)
	if err != nil {
		out := ValidateConfigOutput{
			Fields: []schema.FieldError{{Field: "macAddress", Message: err.Error()}},
		}
		return mcp.NewToolResultText(formatJSON(out)), nil
	}

	result, err := s.provider.ValidateConfig(ctx, normalized.ValidateRequest(nil))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("GPIO validation could not be obtained: %s", err)), nil
	}
	for _, issue := range normalized.Notifications.Validate() {
		result.AddError(issue)
	}
	for _, issue := range normalized.PIRSchedule.Validate("pirDetectionSchedule") {
		result.AddError(issue)
	}

	out := ValidateConfigOutput{
		Valid:    result.Valid,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}
	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleFormatMAC(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mac, err := requiredString(request, "mac")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	out := FormatMACOutput{Formatted: device.FormatMAC(mac)}
	if canonical, err := device.CanonicalMAC(out.Formatted); err == nil {
		out.Canonical = canonical
		out.Complete = true
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

func (s *Server) handleListDevices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	records, err := s.devices.List(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list devices: %s", err)), nil
	}

	out := ListDevicesOutput{
		Devices: make([]DeviceSummary, 0, len(records)),
		Count:   len(records),
	}
	for _, rec := range records {
		out.Devices = append(out.Devices, DeviceSummary{
			ID:         rec.ID,
			Name:       rec.Name,
			MACAddress: rec.MACAddress,
			DeviceType: rec.DeviceType,
			Location:   rec.Location,
			Switches:   len(rec.Switches),
			Pins:       rec.UsedPins(),
		})
	}

	return mcp.NewToolResultText(formatJSON(out)), nil
}

// Helper functions

func boardArg(request mcp.CallToolRequest) (gpio.BoardType, error) {
	board := gpio.BoardType(optionalString(request, "device_type"))
	if board == "" {
		return gpio.BoardESP32, nil
	}
	if !board.Valid() {
		return "", fmt.Errorf("%w: %q", gpio.ErrUnknownBoard, board)
	}
	return board, nil
}

func requiredString(request mcp.CallToolRequest, key string) (string, error) {
	args := request.GetArguments()
	v, ok := args[key]
	if !ok || v == nil {
		return "", fmt.Errorf("required parameter %q is missing", key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf("parameter %q must be a non-empty string", key)
	}
	return s, nil
}

func optionalString(request mcp.CallToolRequest, key string) string {
	s, _ := request.GetArguments()[key].(string)
	return s
}

func requiredInt(request mcp.CallToolRequest, key string) (int, error) {
	v, ok := request.GetArguments()[key]
	if !ok || v == nil {
		return 0, fmt.Errorf("required parameter %q is missing", key)
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("parameter %q must be a whole number", key)
		}
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, fmt.Errorf("parameter %q must be a number", key)
	}
}

func formatJSON(v any) string {
	b, err := encodeJSON(v)
	if err != nil {
		return fmt.Sprintf(`{"error":"failed to marshal response: %s"}`, err)
	}
	return string(b)
}

func encodeJSON(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}
