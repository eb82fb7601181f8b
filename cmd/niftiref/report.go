// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/niftiref/internal/report"
	"github.com/pdiddy/niftiref/pkg/types"
)

var reportCmd = &cobra.Command{
	Use:   "report [dir]",
	Short: "Render a reference document for a directory of image files",
	Long: `Report scans a directory for neuroimaging files (.nii, .hdr, .img,
optionally gzip-compressed), decodes every header, and writes one markdown
document with a fixed-format section per file, in lexicographic order.

Files that fail to decode become one-line diagnostic sections; the run
still succeeds. Use --manifest to also emit a machine-readable YAML
companion with the decoded records.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg := reportConfig(cmd, args)
	_, err := report.Run(cfg, version, os.Stdout)
	return err
}

// reportConfig resolves the run settings: positional argument, then flags,
// then the viper config file, then defaults.
func reportConfig(cmd *cobra.Command, args []string) types.ReportConfig {
	inputDir := "."
	if len(args) > 0 {
		inputDir = args[0]
	}

	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		output = viper.GetString("report.output")
	}

	manifest, _ := cmd.Flags().GetBool("manifest")
	if !manifest {
		manifest = viper.GetBool("report.manifest")
	}

	manifestFile, _ := cmd.Flags().GetString("manifest-file")
	if manifestFile == "" {
		manifestFile = viper.GetString("report.manifest_file")
	}

	return types.ReportConfig{
		InputDir:     inputDir,
		OutputFile:   output,
		Manifest:     manifest,
		ManifestFile: manifestFile,
	}
}

func init() {
	reportCmd.Flags().String("output", "", "document path (default: TEST_FILES_REFERENCE.md in the scanned directory)")
	reportCmd.Flags().Bool("manifest", false, "also write a YAML manifest of the decoded headers")
	reportCmd.Flags().String("manifest-file", "", "manifest path (default: TEST_FILES_REFERENCE.yaml in the scanned directory)")

	rootCmd.AddCommand(reportCmd)
}
