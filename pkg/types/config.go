// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ReportConfig holds settings for a reference-document run.
type ReportConfig struct {
	// InputDir is the directory scanned for candidate image files.
	InputDir string `json:"input_dir" yaml:"input_dir"`

	// OutputFile is the markdown document path. Relative paths are resolved
	// against InputDir so the document lands next to the files it describes.
	OutputFile string `json:"output_file" yaml:"output_file"`

	// Manifest enables the machine-readable YAML manifest alongside the
	// markdown document.
	Manifest bool `json:"manifest" yaml:"manifest"`

	// ManifestFile is the manifest path, resolved like OutputFile.
	ManifestFile string `json:"manifest_file" yaml:"manifest_file"`
}

// DefaultOutputFile is the reference document name when none is configured.
const DefaultOutputFile = "TEST_FILES_REFERENCE.md"

// DefaultManifestFile is the manifest name when none is configured.
const DefaultManifestFile = "TEST_FILES_REFERENCE.yaml"
