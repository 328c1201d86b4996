// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/texreports/arrestx/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search NAME...",
	Short: "Look a name up across every ingested report",
	Long: `Search queries the local record store for a person by printed or
normalized name. Each matching charge prints as one line; use --json for
machine-readable output.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Bool("json", false, "print matches as JSON")
	searchCmd.Flags().Int("limit", 0, "maximum matches to return (default 50)")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer s.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	matches, err := s.SearchName(context.Background(), strings.Join(args, " "), limit)
	if err != nil {
		return err
	}

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matches)
	}

	if len(matches) == 0 {
		fmt.Println("No matches found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-28s  %-10s  %-12s  %-11s  %s\n",
		"Name", "Identifier", "Book In", "Booking No", "Charge")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))
	for _, m := range matches {
		fmt.Fprintf(os.Stdout, "%-28s  %-10s  %-12s  %-11s  %s\n",
			m.Name, m.Identifier, m.BookInDate, m.BookingNo, m.Description)
	}
	fmt.Fprintf(os.Stdout, "\n%d match(es)\n", len(matches))
	return nil
}
