package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mcoot/cardgame-go/internal/factory"
	redisstorage "github.com/mcoot/cardgame-go/internal/storage/redis"
)

var flags struct {
	CardDir     string
	StorageType string
	RedisURL    string
	Verbose     bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "cardbot",
		Short: "Chat card game session engine",
		Long: `cardbot runs prompt-and-response card game sessions driven by chat
commands and wall-clock timers.

The play command runs a local console session, decks inspects card-set
files, and serve runs the status API.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&flags.CardDir, "cards", "data", "Directory of card-set JSON files")
	rootCmd.PersistentFlags().StringVar(&flags.StorageType, "storage", factory.StorageTypeMemory, "Storage backend: memory, redis")
	rootCmd.PersistentFlags().StringVar(&flags.RedisURL, "redis-url", "", "Redis URL (required with --storage=redis)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Verbose logging")

	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newDecksCmd())
	rootCmd.AddCommand(newServeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func buildLogger() *slog.Logger {
	level := slog.LevelWarn
	if flags.Verbose {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func buildApp(cfg factory.Config) (*factory.App, error) {
	cfg.Logger = buildLogger()
	cfg.StorageType = flags.StorageType

	if flags.StorageType == factory.StorageTypeRedis {
		if flags.RedisURL == "" {
			return nil, fmt.Errorf("--redis-url required with --storage=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = flags.RedisURL
		cfg.RedisConfig = &redisCfg
	}

	app, err := factory.New(cfg)
	if err != nil {
		return nil, err
	}
	if err := app.CardsService.LoadDir(flags.CardDir); err != nil {
		return nil, fmt.Errorf("loading card sets: %w", err)
	}
	return app, nil
}
