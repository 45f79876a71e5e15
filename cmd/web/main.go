package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/loyalty-tools/receipt-points/pkg/server"
	"github.com/loyalty-tools/receipt-points/pkg/services/config"
	"github.com/loyalty-tools/receipt-points/pkg/services/validation"
	"github.com/loyalty-tools/receipt-points/pkg/store/memory"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the receipt points web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "",
		"Path to the server config file (defaults and env are used when omitted)")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load server config: %w", err)
	}

	webAPI := server.NewWebAPI(server.Config{
		Addr:            cfg.Addr,
		ShutdownTimeout: cfg.ShutdownTimeout,
		RateLimit: server.RateLimit{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		},
		Dependencies: server.Dependencies{
			Validator: validation.NewValidator(),
			Records:   memory.NewStore(),
			Logger:    logger,
		},
	})

	return webAPI.Start()
}
