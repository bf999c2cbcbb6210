// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the psalm-parallels CLI.
// Implements: prd001-scrape, prd002-relations, prd003-lookup,
//             prd004-cache (CLI surface).
// See docs/ARCHITECTURE § Pipeline Interface.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the psalm-parallels CLI.
var rootCmd = &cobra.Command{
	Use:   "psalm-parallels",
	Short: "Cross-reference lookups over the parallel-Psalms relation",
	Long: `psalm-parallels scrapes the Blue Letter Bible parallel-Psalms table,
normalizes its scripture citations, and answers "what is related to
reference X" queries through an exact-match index with a chapter-level
fallback.

Build the snapshot once with "build"; it is cached in a local SQLite
database and reused by "lookup", "interactive", "verify", and "export".`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./psalm-parallels.yaml or ~/.config/psalm-parallels/config.yaml)")
	rootCmd.PersistentFlags().String("cache-dir", "", "directory for the snapshot database and exports (default: cache)")
	rootCmd.PersistentFlags().String("source-url", "", "override the parallel-Psalms table URL")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("psalm-parallels")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "psalm-parallels"))
		}
	}

	viper.SetEnvPrefix("PSALM_PARALLELS")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
