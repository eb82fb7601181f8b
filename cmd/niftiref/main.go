// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the niftiref CLI.
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

// rootCmd is the base command for the niftiref CLI.
var rootCmd = &cobra.Command{
	Use:   "niftiref",
	Short: "Reference header extraction for NIfTI and Analyze files",
	Long: `niftiref decodes the binary headers of neuroimaging volume files
(NIfTI-1, NIfTI-2, and legacy Analyze 7.5, gzip-compressed or not) and
renders them as a markdown reference document. The document serves as
ground truth for validating independently written NIfTI decoders: field
offsets, coded enumerations, byte order, and the voxel-to-world affine
are all spelled out per file.

Use 'report' to document a whole directory or 'inspect' for one file.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./niftiref.yaml or ~/.config/niftiref/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("niftiref")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "niftiref"))
		}
	}

	viper.SetEnvPrefix("NIFTIREF")
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
