package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/urmzd/autovolt/pkg/client"
	"github.com/urmzd/autovolt/pkg/device"
)

const (
	envAPIURL   = "AUTOVOLT_API_URL"
	envAdminPIN = "AUTOVOLT_ADMIN_PIN"

	defaultAPIURL = "http://localhost:8080"
)

var (
	apiURL     string
	apiTimeout time.Duration
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "autovoltctl",
	Short: "Configure AutoVolt classroom controllers",
	Long:  "Inspect GPIO pins, validate device configuration files and register controllers with the AutoVolt API",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		}
		if apiURL == "" {
			apiURL = os.Getenv(envAPIURL)
		}
		if apiURL == "" {
			apiURL = defaultAPIURL
		}
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "AutoVolt API base URL (env "+envAPIURL+")")
	rootCmd.PersistentFlags().DurationVar(&apiTimeout, "timeout", client.DefaultTimeout, "API request timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(
		pinsCmd,
		checkCmd,
		submitCmd,
		macCmd,
		secretCmd,
		provisionCmd,
	)
}

func main() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Failed to read .env")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newClient() *client.Client {
	log.Debug().Str("api", apiURL).Msg("Using API")
	return client.New(apiURL, apiTimeout)
}

// provider returns the local evaluator when local is set, otherwise the API.
func provider(local bool) device.PinProvider {
	if local {
		return device.NewLocalProvider()
	}
	return newClient()
}

func adminPIN(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return os.Getenv(envAdminPIN)
}
