// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arrestx CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/texreports/arrestx/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Running it with no subcommand processes the
// configured input reports, matching the original tool's default action.
var rootCmd = &cobra.Command{
	Use:   "arrestx [pdf...]",
	Short: "Extract structured arrest records from booked-in report PDFs",
	Long: `arrestx converts county "booked in" report PDFs into structured records.
It reads the text layer (or falls back to OCR), walks the report with a
line-oriented state machine, and writes JSON/CSV/NDJSON/XLSX outputs.

Without a subcommand it processes the configured inputs. Use fetch to
download the current daily report, search to look a name up across
ingested reports, and backup to archive a report file.`,
	Args: cobra.ArbitraryArgs,
	RunE: runProcess,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arrestx.yaml or ~/.config/arrestx/arrestx.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arrestx")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arrestx"))
		}
	}

	viper.SetEnvPrefix("ARRESTX")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: defaults overlaid with
// whatever the config file and environment provide.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
