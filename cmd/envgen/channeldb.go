// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/envgen/internal/channeldb"
)

var channeldbCmd = &cobra.Command{
	Use:   "channeldb",
	Short: "Manage the SQLite channel snapshot database",
}

var channeldbImportCmd = &cobra.Command{
	Use:   "import [listing-file]",
	Short: "Import a package listing into the snapshot database",
	Long: `Import reads package names from the listing file (or stdin), one per line.
A line is either a bare PyPI name or "pypi-name=conda-name" when the conda
package is published under a different name. Lines starting with # are
comments.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")

		in := os.Stdin
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening listing: %w", err)
			}
			defer f.Close()
			in = f
		}

		store, err := channeldb.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		n, err := store.ImportListing(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "imported %d packages into %s\n", n, dbPath)
		return nil
	},
}

var channeldbStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print snapshot database contents summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, _ := cmd.Flags().GetString("db")

		store, err := channeldb.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		st, err := store.ReadStats()
		if err != nil {
			return err
		}
		fmt.Printf("%d packages (%d with renames)\n", st.Packages, st.Renames)
		return nil
	},
}

func init() {
	channeldbCmd.PersistentFlags().String("db", "channels.db", "path to the snapshot database")

	channeldbCmd.AddCommand(channeldbImportCmd)
	channeldbCmd.AddCommand(channeldbStatsCmd)
	rootCmd.AddCommand(channeldbCmd)
}
