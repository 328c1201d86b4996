// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/texreports/arrestx/internal/web"
)

var backupCmd = &cobra.Command{
	Use:   "backup FILE [DATE]",
	Short: "Copy a report into the archive directory",
	Long: `Backup copies a report PDF into an archive/ directory beside it, with
the report date appended to the file name. The date is read from the
report itself unless given explicitly (as YYYY-MM-DD).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBackup,
}

func init() {
	rootCmd.AddCommand(backupCmd)
}

func runBackup(cmd *cobra.Command, args []string) error {
	path := args[0]

	var date string
	if len(args) == 2 {
		date = args[1]
	} else {
		var err error
		date, err = web.ReportDate(path)
		if err != nil {
			return fmt.Errorf("no date given and none found in report: %w", err)
		}
	}

	dest, err := web.Backup(path, date, os.Stderr)
	if err != nil {
		return err
	}
	fmt.Println(dest)
	return nil
}
