// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/texreports/arrestx/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the record store as YAML",
	Long: `Export writes every record in the local store, with its charges, as a
YAML document to stdout or to --out.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("out", "", "write to a file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	out := os.Stdout
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	return s.ExportYAML(context.Background(), out)
}
