// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/envgen/internal/envfile"
	"github.com/pdiddy/envgen/internal/manifest"
	"github.com/pdiddy/envgen/internal/mapper"
	"github.com/pdiddy/envgen/pkg/types"
)

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Write one environment file per dependency table",
	Long: `Split writes a separate environment file for the main dependencies and for
each optional-dependency group: the main table under the project name, each
group under the group's name. Every file carries the interpreter pin so the
resulting environments are independently creatable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output := flagOrConfig(cmd, "output", "output")
		policyPath := flagOrConfig(cmd, "policy", "policy")
		dbPath := flagOrConfig(cmd, "channel-db", "channel-db")

		m, err := manifest.Load(input)
		if err != nil {
			return err
		}

		pol, extraChannels, closePolicy, err := loadPolicy(policyPath, dbPath)
		if err != nil {
			return err
		}
		defer closePolicy()

		envs, err := mapper.Split(m, mapper.Options{Channels: extraChannels, Policy: pol})
		if err != nil {
			return err
		}
		for _, env := range envs {
			if err := writeSplit(env, output); err != nil {
				return err
			}
		}
		return nil
	},
}

func writeSplit(env *types.Environment, dir string) error {
	path, err := envfile.Write(env, dir)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wrote %s (%d dependencies, %d via pip)\n",
		path, len(env.Dependencies), len(env.Pip))
	return nil
}

func init() {
	splitCmd.Flags().String("input", ".", "pyproject.toml file or directory containing one")
	splitCmd.Flags().String("output", ".", "directory to write the environment files to")
	splitCmd.Flags().String("policy", "", "YAML policy file for channel classification")
	splitCmd.Flags().String("channel-db", "", "SQLite channel snapshot database")

	rootCmd.AddCommand(splitCmd)
}
