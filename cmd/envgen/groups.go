// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/envgen/internal/manifest"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List the optional-dependency groups a manifest declares",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")

		m, err := manifest.Load(input)
		if err != nil {
			return err
		}

		if len(m.OptionalDependencies) == 0 {
			fmt.Println("no optional-dependency groups")
			return nil
		}
		for _, name := range m.GroupNames() {
			fmt.Printf("%s (%d dependencies)\n", name, len(m.OptionalDependencies[name]))
		}
		return nil
	},
}

func init() {
	groupsCmd.Flags().String("input", ".", "pyproject.toml file or directory containing one")

	rootCmd.AddCommand(groupsCmd)
}
