// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/texreports/arrestx/internal/web"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Download the current daily report",
	Long: `Fetch downloads the daily report from the configured URL into the
download directory, naming the file after its printed report date. With
skip_if_existing set, a report already on disk for the same date is kept
and the download is discarded.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().String("url", "", "report URL (overrides configuration)")
	fetchCmd.Flags().Bool("backup", false, "archive the fetched report as well")
	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if url, _ := cmd.Flags().GetString("url"); url != "" {
		cfg.Web.URL = url
	}

	f := web.NewFetcher(cfg.Web)
	path, err := f.Fetch(context.Background(), os.Stderr)
	if err != nil {
		return err
	}
	fmt.Println(path)

	if doBackup, _ := cmd.Flags().GetBool("backup"); doBackup {
		date, err := web.ReportDate(path)
		if err != nil {
			return fmt.Errorf("archiving fetched report: %w", err)
		}
		if _, err := web.Backup(path, date, os.Stderr); err != nil {
			return err
		}
	}
	return nil
}
