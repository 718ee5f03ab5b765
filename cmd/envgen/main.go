// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the envgen CLI, which converts
// pyproject.toml dependency declarations into conda environment files.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/envgen/internal/channeldb"
	"github.com/pdiddy/envgen/internal/policy"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the envgen CLI.
var rootCmd = &cobra.Command{
	Use:   "envgen",
	Short: "Generate conda environment files from pyproject.toml",
	Long: `envgen reads the dependencies declared in a pyproject.toml project table
and writes an equivalent conda environment.yaml. Optional-dependency groups
can be merged into the environment selectively; packages a channel does not
carry are placed in a nested pip: subsection.

Classification is data-driven: a built-in table covers the common scientific
stack, a policy file extends or overrides it, and a SQLite channel snapshot
can replace it entirely.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./envgen.yaml or ~/.config/envgen/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("envgen")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "envgen"))
		}
	}

	viper.SetEnvPrefix("ENVGEN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadPolicy resolves the classification policy for a run. A channel
// snapshot database wins over a policy file; with neither, the built-in
// table applies. The returned channels are extra channels contributed by a
// policy file. Callers must invoke the returned cleanup when the run is
// done, since the snapshot store answers lookups during the transform.
func loadPolicy(policyPath, dbPath string) (policy.Policy, []string, func(), error) {
	if dbPath != "" {
		store, err := channeldb.Open(dbPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return store, nil, func() { store.Close() }, nil
	}
	if policyPath != "" {
		t, err := policy.LoadFile(policyPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return t, t.Channels(), func() {}, nil
	}
	return policy.Default(), nil, func() {}, nil
}

// flagOrConfig returns the flag value if the user set it, falling back to
// the viper config key.
func flagOrConfig(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
