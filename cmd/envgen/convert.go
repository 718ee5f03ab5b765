// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/envgen/internal/envfile"
	"github.com/pdiddy/envgen/internal/manifest"
	"github.com/pdiddy/envgen/internal/mapper"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a pyproject.toml into a conda environment file",
	Long: `Convert reads the main dependencies, the requires-python constraint, and
any selected optional-dependency groups from a pyproject.toml, and writes a
single conda environment.yaml containing all of them. Groups are merged in
the order they are given; declaration order is preserved within each list.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, _ := cmd.Flags().GetString("input")
		output := flagOrConfig(cmd, "output", "output")
		groups, _ := cmd.Flags().GetStringArray("group")
		name := flagOrConfig(cmd, "name", "name")
		channels, _ := cmd.Flags().GetStringArray("channel")
		policyPath := flagOrConfig(cmd, "policy", "policy")
		dbPath := flagOrConfig(cmd, "channel-db", "channel-db")
		dedup, _ := cmd.Flags().GetBool("dedup")
		toStdout, _ := cmd.Flags().GetBool("stdout")

		if len(channels) == 0 {
			channels = viper.GetStringSlice("channels")
		}

		m, err := manifest.Load(input)
		if err != nil {
			return err
		}

		pol, extraChannels, closePolicy, err := loadPolicy(policyPath, dbPath)
		if err != nil {
			return err
		}
		defer closePolicy()

		env, err := mapper.Transform(m, groups, mapper.Options{
			EnvName:  name,
			Channels: append(extraChannels, channels...),
			Policy:   pol,
			Dedup:    dedup,
		})
		if err != nil {
			return err
		}

		if toStdout {
			data, err := envfile.Marshal(env)
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		}

		path, err := envfile.Write(env, output)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s (%d dependencies, %d via pip)\n",
			path, len(env.Dependencies), len(env.Pip))
		return nil
	},
}

func init() {
	convertCmd.Flags().String("input", ".", "pyproject.toml file or directory containing one")
	convertCmd.Flags().String("output", ".", "directory to write the environment file to")
	convertCmd.Flags().StringArrayP("group", "g", nil, "optional-dependency group to include (repeatable)")
	convertCmd.Flags().String("name", "", "environment name (default: project name)")
	convertCmd.Flags().StringArray("channel", nil, "extra conda channel (repeatable)")
	convertCmd.Flags().String("policy", "", "YAML policy file for channel classification")
	convertCmd.Flags().String("channel-db", "", "SQLite channel snapshot database")
	convertCmd.Flags().Bool("dedup", false, "drop exact-duplicate dependency entries")
	convertCmd.Flags().Bool("stdout", false, "print the environment file instead of writing it")

	rootCmd.AddCommand(convertCmd)
}
