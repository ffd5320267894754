package mcp

import "github.com/mark3labs/mcp-go/mcp"

// registerTools registers all MCP tools with the server
func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("list_pins",
			mcp.WithDescription("List the GPIO pins of an ESP32 or ESP8266 board with status (safe, problematic, reserved, invalid), recommended roles and alternatives. Pass a role to rank pins for it."),
			mcp.WithString("device_type",
				mcp.Description("Board type: esp32 (default) or esp8266"),
				mcp.Enum("esp32", "esp8266"),
			),
			mcp.WithString("role",
				mcp.Description("Optional role to rank pins for"),
				mcp.Enum("relay", "manual", "pir"),
			),
			mcp.WithString("device_id",
				mcp.Description("Stored device being edited; its current pins are reported as used"),
			),
		),
		s.handleListPins,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("classify_pin",
			mcp.WithDescription("Assess one GPIO pin for a role on a board: recommended, alternative, caution or unavailable"),
			mcp.WithNumber("pin",
				mcp.Required(),
				mcp.Description("GPIO number"),
			),
			mcp.WithString("role",
				mcp.Required(),
				mcp.Description("Role the pin would serve"),
				mcp.Enum("relay", "manual", "pir"),
			),
			mcp.WithString("device_type",
				mcp.Description("Board type: esp32 (default) or esp8266"),
				mcp.Enum("esp32", "esp8266"),
			),
		),
		s.handleClassifyPin,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("validate_config",
			mcp.WithDescription("Validate a full device configuration: field shapes, schedules, and that no GPIO pin is assigned twice across relay, manual switch and motion sensor roles"),
			mcp.WithObject("config",
				mcp.Required(),
				mcp.Description("Device draft, e.g. {\"name\": \"Lab 3\", \"macAddress\": \"AA:BB:CC:DD:EE:FF\", \"ipAddress\": \"192.168.1.50\", \"location\": \"Block A\", \"deviceType\": \"esp32\", \"switches\": [{\"name\": \"Lights\", \"type\": \"light\", \"gpio\": 16}]}"),
			),
		),
		s.handleValidateConfig,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("format_mac",
			mcp.WithDescription("Format a MAC address as typed (uppercase, colon separated) and return its canonical stored form when complete"),
			mcp.WithString("mac",
				mcp.Required(),
				mcp.Description("MAC address in any common notation"),
			),
		),
		s.handleFormatMAC,
	)

	if s.devices != nil {
		s.mcpServer.AddTool(
			mcp.NewTool("list_devices",
				mcp.WithDescription("List stored controllers with the GPIO pins each one claims"),
			),
			s.handleListDevices,
		)
	}
}
