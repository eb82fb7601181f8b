// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/niftiref/internal/nifti"
	"github.com/pdiddy/niftiref/internal/report"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Decode one file and print its reference section",
	Long: `Inspect decodes a single neuroimaging file and prints its reference
section to stdout, for quick checks without writing a document. Decode
failures print as the same one-line diagnostic the document would carry,
and make the command exit non-zero.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	path := args[0]
	rec, err := nifti.Decode(path)
	fmt.Print(report.Section(filepath.Base(path), rec, err))
	return err
}

func init() {
	// cobra would repeat the decode error after the section; the section is
	// the user-facing message.
	inspectCmd.SilenceErrors = true
	inspectCmd.SilenceUsage = true

	rootCmd.AddCommand(inspectCmd)
}
