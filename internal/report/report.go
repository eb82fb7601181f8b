// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report scans a directory of candidate image files and assembles
// the markdown reference document (plus an optional YAML manifest) from
// decoded headers. One malformed file never prevents documentation of the
// rest: decode errors become diagnostic sections.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/niftiref/internal/nifti"
	"github.com/pdiddy/niftiref/pkg/types"
)

// Entry is the decode outcome for one directory entry. Exactly one of
// Record and Err is meaningful.
type Entry struct {
	// Name is the bare filename, the section heading in the document.
	Name string

	// Record is the decoded header, nil when decoding failed.
	Record *types.HeaderRecord

	// Err is the decode error, nil on success.
	Err error
}

// Summary holds counts from one reference-document run.
type Summary struct {
	Rendered int
	Failed   int
	Skipped  int
}

// Total returns the number of files processed.
func (s Summary) Total() int {
	return s.Rendered + s.Failed + s.Skipped
}

// Scan decodes every regular file in dir, in lexicographic name order, and
// returns one Entry per file. Directories are skipped entirely. The order is
// a correctness requirement: the document must diff cleanly across runs.
func Scan(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Strings(names)

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		rec, err := nifti.Decode(filepath.Join(dir, name))
		entries = append(entries, Entry{Name: name, Record: rec, Err: err})
	}
	return entries, nil
}

// WriteDocument assembles the full reference document: title, preamble with
// the tool identity and version, then one section per entry in scan order.
func WriteDocument(w io.Writer, entries []Entry, version string) error {
	var b strings.Builder

	b.WriteString("# NIfTI Test Files Reference Data\n\n")
	b.WriteString("This document contains reference information about the scanned files,\n")
	b.WriteString("analyzed using niftiref. It can be used to verify the behavior of an\n")
	b.WriteString("independent NIfTI implementation.\n\n")
	fmt.Fprintf(&b, "Generated using niftiref version: %s\n\n", version)
	b.WriteString("Note: this data is provided as a reference only. An independent\n")
	b.WriteString("implementation may have valid reasons to interpret certain fields\n")
	b.WriteString("differently from niftiref.\n\n")
	b.WriteString("---\n\n")

	for _, e := range entries {
		b.WriteString(Section(e.Name, e.Record, e.Err))
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// manifest is the machine-readable companion to the markdown document.
type manifest struct {
	GeneratedBy string          `yaml:"generated_by"`
	Files       []manifestEntry `yaml:"files"`
}

type manifestEntry struct {
	File   string              `yaml:"file"`
	Header *types.HeaderRecord `yaml:"header,omitempty"`
	Error  string              `yaml:"error,omitempty"`
}

// WriteManifest emits the decoded records as YAML in the same order as the
// document, with errors carried as strings.
func WriteManifest(w io.Writer, entries []Entry, version string) error {
	m := manifest{GeneratedBy: "niftiref " + version}
	for _, e := range entries {
		me := manifestEntry{File: e.Name, Header: e.Record}
		if e.Err != nil {
			me.Error = e.Err.Error()
		}
		m.Files = append(m.Files, me)
	}

	data, err := yaml.Marshal(&m)
	if err != nil {
		return fmt.Errorf("marshalling manifest: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Run executes a full reference-document run: scan, render, write. Per-file
// status lines stream to w; the returned summary counts outcomes. Individual
// decode failures do not fail the run, since a diagnostic section is itself
// valid output.
func Run(cfg types.ReportConfig, version string, w io.Writer) (Summary, error) {
	entries, err := Scan(cfg.InputDir)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	for _, e := range entries {
		switch {
		case e.Err == nil:
			fmt.Fprintf(w, "rendered: %s\n", e.Name)
			summary.Rendered++
		case errors.Is(e.Err, nifti.ErrNotRecognizedFormat):
			fmt.Fprintf(w, "skipped:  %s (unrecognized extension)\n", e.Name)
			summary.Skipped++
		default:
			fmt.Fprintf(w, "failed:   %s (%v)\n", e.Name, e.Err)
			summary.Failed++
		}
	}

	outPath := resolvePath(cfg.InputDir, cfg.OutputFile, types.DefaultOutputFile)
	doc, err := os.Create(outPath)
	if err != nil {
		return summary, fmt.Errorf("creating document %s: %w", outPath, err)
	}
	defer doc.Close()

	if err := WriteDocument(doc, entries, version); err != nil {
		return summary, fmt.Errorf("writing document %s: %w", outPath, err)
	}

	if cfg.Manifest {
		manPath := resolvePath(cfg.InputDir, cfg.ManifestFile, types.DefaultManifestFile)
		man, err := os.Create(manPath)
		if err != nil {
			return summary, fmt.Errorf("creating manifest %s: %w", manPath, err)
		}
		defer man.Close()
		if err := WriteManifest(man, entries, version); err != nil {
			return summary, fmt.Errorf("writing manifest %s: %w", manPath, err)
		}
	}

	fmt.Fprintf(w, "\nRun summary: %d rendered, %d failed, %d skipped (total: %d)\n",
		summary.Rendered, summary.Failed, summary.Skipped, summary.Total())
	return summary, nil
}

// resolvePath applies the default name and anchors relative paths in dir,
// so the document lands next to the files it describes.
func resolvePath(dir, path, fallback string) string {
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
