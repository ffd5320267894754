package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/autovolt/pkg/client"
	"github.com/urmzd/autovolt/pkg/db"
	"github.com/urmzd/autovolt/pkg/device"
	"github.com/urmzd/autovolt/pkg/device/schema"
	autovoltmcp "github.com/urmzd/autovolt/pkg/mcp"
)

func main() {
	// Logging must go to stderr, stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/autovolt/autovolt.db)")
	apiURL := flag.String("api", "", "AutoVolt API base URL; pins are validated locally when empty")
	timeout := flag.Duration("timeout", 15*time.Second, "API request timeout")
	flag.Parse()

	ctx := context.Background()

	// Open database
	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	log.Info().Str("path", database.Path()).Msg("Database opened")

	// Run migrations
	if err := database.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	// Against a running API the used flags come from stored devices
	var provider device.PinProvider = device.NewLocalProvider()
	if *apiURL != "" {
		provider = client.New(*apiURL, *timeout)
		log.Info().Str("api", *apiURL).Msg("Validating against API")
	}
	validator := schema.NewValidator()

	// Create and start MCP server
	mcpServer := autovoltmcp.NewServer(provider, validator, database.Devices())

	log.Info().Msg("Starting MCP server on stdio")

	if err := mcpServer.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
