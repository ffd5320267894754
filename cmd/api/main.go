package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urmzd/autovolt/pkg/api"
	"github.com/urmzd/autovolt/pkg/db"
	"github.com/urmzd/autovolt/pkg/device/schema"
	"github.com/urmzd/autovolt/pkg/push"

	_ "github.com/urmzd/autovolt/docs"
)

// @title           AutoVolt API
// @version         1.0
// @description     Device registry and GPIO configuration validation for AutoVolt classroom controllers

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http https

func main() {
	// Configure logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to read .env")
	}

	// Parse flags
	dbPath := flag.String("db", "", "Path to database file (default: ~/.config/autovolt/autovolt.db)")
	broker := flag.String("mqtt", "", "MQTT broker URL for config push (default: profile setting)")
	setPIN := flag.String("set-pin", "", "Save the admin PIN of the active profile and exit (empty clears it)")
	setBroker := flag.String("set-mqtt", "", "Save the MQTT broker URL of the active profile and exit")
	setListen := flag.String("set-listen", "", "Save the API listen address (host:port) and exit")
	flag.Parse()

	var settings db.Settings
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "set-pin":
			settings.AdminPIN = setPIN
		case "set-mqtt":
			settings.MQTTBroker = setBroker
		case "set-listen":
			settings.Listen = setListen
		}
	})

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

	// Bootstrap if needed (first run)
	needsBootstrap, err := database.NeedsBootstrap(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check bootstrap status")
	}
	if needsBootstrap {
		log.Info().Msg("First run detected, bootstrapping database...")
		if err := database.Bootstrap(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to bootstrap database")
		}
		log.Info().Msg("Database bootstrapped successfully")
	}

	if !settings.Empty() {
		if err := database.ApplySettings(ctx, settings); err != nil {
			log.Fatal().Err(err).Msg("Failed to save settings")
		}
		log.Info().
			Bool("admin_pin", settings.AdminPIN != nil).
			Bool("mqtt_broker", settings.MQTTBroker != nil).
			Bool("listen", settings.Listen != nil).
			Msg("Settings saved")
		return
	}

	// Load configuration
	cfg, err := database.ActiveConfig(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	brokerURL := *broker
	if brokerURL == "" {
		brokerURL = cfg.MQTTBroker()
	}

	log.Info().
		Str("profile", cfg.Profile.Name).
		Str("timezone", cfg.Location().String()).
		Str("api_address", cfg.APIAddress()).
		Str("mqtt_broker", brokerURL).
		Msg("Configuration loaded")

	// Try to reach the broker; fall back to NullPublisher
	var publisher push.Publisher = push.NewNullPublisher()
	if brokerURL != "" {
		mqttPublisher, err := push.Connect(
			brokerURL,
			"autovolt-api",
			os.Getenv("AUTOVOLT_MQTT_USERNAME"),
			os.Getenv("AUTOVOLT_MQTT_PASSWORD"),
		)
		if err != nil {
			log.Warn().Err(err).Str("broker", brokerURL).Msg("MQTT broker unavailable, config push disabled")
		} else {
			publisher = mqttPublisher
		}
	}
	defer publisher.Close()

	validator := schema.NewValidator()

	// Create and start API router
	router := api.NewRouter(database, validator, publisher)

	// Handle shutdown gracefully
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Shutting down...")
		publisher.Close()
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
		os.Exit(0)
	}()

	// Start server
	addr := cfg.APIAddress()
	log.Info().Str("address", addr).Msg("Starting API server")

	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
