// Package cmd provides the command-line interface for the aiwire application.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/connorhough/aiwire/internal/config"
	"github.com/connorhough/aiwire/internal/version"
)

var (
	cfgFile           string
	chatProvider      string
	embeddingProvider string
	rootCmd           *cobra.Command
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.go. It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) error {
	if rootCmd == nil {
		rootCmd = NewRootCmd()
	}
	return rootCmd.ExecuteContext(ctx)
}

// NewRootCmd creates and returns the root command for aiwire
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "aiwire",
		Short: "Assemble and call AI chat and embedding models",
		Long: `aiwire picks the active chat and embedding model from configuration,
builds the provider clients and lets you inspect or call them.

Providers: watsonx-ai, gemini.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.String(),
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default locations: $XDG_CONFIG_HOME/aiwire/config.yaml, ~/.config/aiwire/config.yaml, or ~/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&chatProvider, "chat-provider", "", "provider for the chat model (overrides ai.model.chat)")
	rootCmd.PersistentFlags().StringVar(&embeddingProvider, "embedding-provider", "", "provider for the embedding model (overrides ai.model.embedding)")

	// Add subcommands
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newAssembleCmd())
	rootCmd.AddCommand(newOptionsCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newEmbedCmd())

	// PersistentPreRun handles configuration initialization
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		initLogger(cmd)
		return nil
	}

	return rootCmd
}

// initConfig reads in config file and ENV variables if set.
func initConfig() error {
	// A .env in the working directory is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find config file in standard locations
		if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
			viper.AddConfigPath(filepath.Join(xdgConfigHome, config.AppName))
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("failed to get user home directory: %w", err)
			}
			viper.AddConfigPath(filepath.Join(home, ".config", config.AppName))
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match, e.g. AIWIRE_AI_WATSONX_IAM_TOKEN
	viper.SetEnvPrefix(strings.ToUpper(config.AppName))
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	viper.SetDefault("log_level", "info")
	config.SetDefaults(viper.GetViper())

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err != nil {
		// Config file not found; ignore error if desired. An explicit --config
		// path may not exist yet (aiwire init creates it).
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	return nil
}

func initLogger(cmd *cobra.Command) {
	level := config.LogLevel(viper.GetString("log_level"))
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

// selection returns the selector overrides given on the command line
func selection() config.Selection {
	return config.Selection{Chat: chatProvider, Embedding: embeddingProvider}
}
