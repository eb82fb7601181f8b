// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/niftiref/pkg/types"
)

// niftiBytes builds a minimal valid little-endian NIfTI-1 header: a 4x5x6
// int16 volume with 1x2x3 voxels, qform scanner-anatomical, magic "n+1".
func niftiBytes() []byte {
	buf := make([]byte, 348)
	le := binary.LittleEndian

	le.PutUint32(buf[0:], 348)
	le.PutUint16(buf[40:], 3) // dim[0]
	for i, extent := range []uint16{4, 5, 6, 1, 1, 1, 1} {
		le.PutUint16(buf[42+2*i:], extent)
	}
	le.PutUint16(buf[70:], 4)  // datatype: int16
	le.PutUint16(buf[72:], 16) // bitpix
	for i, zoom := range []float32{1, 1, 2, 3} {
		le.PutUint32(buf[76+4*i:], math.Float32bits(zoom))
	}
	le.PutUint32(buf[108:], math.Float32bits(352)) // vox_offset
	le.PutUint16(buf[252:], 1)                     // qform_code
	copy(buf[344:], "n+1\x00")
	return buf
}

// writeFiles populates a temp directory and returns its path.
func writeFiles(t *testing.T, files map[string][]byte) string {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestScanOrdering(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"b.nii": niftiBytes(),
		"a.nii": niftiBytes(),
		"c.hdr": niftiBytes(),
	})
	if err := os.Mkdir(filepath.Join(dir, "nested"), 0o755); err != nil {
		t.Fatal(err)
	}

	entries, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	want := []string{"a.nii", "b.nii", "c.hdr"}
	if len(names) != len(want) {
		t.Fatalf("entries = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("entry %d = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSectionSuccess(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{"vol.nii": niftiBytes()})
	entries, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	if entries[0].Err != nil {
		t.Fatalf("decode failed: %v", entries[0].Err)
	}

	section := Section(entries[0].Name, entries[0].Record, nil)

	for _, want := range []string{
		"## vol.nii",
		"### File Structure",
		"- File size: 348 bytes",
		"- Format detected: NIfTI-1",
		"### Header Information",
		"- Data shape: (4, 5, 6)",
		"- Data type: int16",
		"- Voxel dimensions: (1, 2, 3)",
		"- Header size: 348",
		"- Magic string: n+1",
		"- Voxel offset: 352",
		"- Byte order: Little Endian",
		"### Affine",
		"### Additional NIfTI Metadata",
		"- dims: [3, 4, 5, 6, 1, 1, 1, 1]",
		"- datatype: 4 (int16)",
		"- pixdim: [1.000000, 1.000000, 2.000000, 3.000000, 0.000000, 0.000000, 0.000000, 0.000000]",
		"- qform_code: 1 (SCANNER_ANAT)",
		"- sform_code: 0 (UNKNOWN)",
		"- quatern_b,c,d: 0.000000, 0.000000, 0.000000",
		"### Raw Binary Start",
		"First 16 bytes in hex:",
	} {
		if !strings.Contains(section, want) {
			t.Errorf("section missing %q\n%s", want, section)
		}
	}

	// Hex preview is lowercase, space-separated, two digits per byte;
	// sizeof_hdr 348 little-endian leads with 5c 01 00 00.
	if !strings.Contains(section, "`5c 01 00 00 ") {
		t.Errorf("section missing lowercase hex preview:\n%s", section)
	}

	// Affine rows are fixed-width 3-decimal columns inside a code fence.
	if !strings.Contains(section, "       1.000    0.000    0.000    0.000") {
		t.Errorf("section missing fixed-width affine row:\n%s", section)
	}
}

func TestSectionSkipAndError(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"notes.txt": []byte("plain text"),
		"bad.nii":   bytes.Repeat([]byte{0xAA}, 400),
	})
	entries, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}

	badSection := Section(entries[0].Name, entries[0].Record, entries[0].Err)
	if !strings.Contains(badSection, "Error reading file: ") {
		t.Errorf("bad.nii section missing diagnostic:\n%s", badSection)
	}
	if strings.Contains(badSection, "### File Structure") {
		t.Errorf("failed decode must render only heading and diagnostic:\n%s", badSection)
	}

	skipSection := Section(entries[1].Name, entries[1].Record, entries[1].Err)
	if !strings.Contains(skipSection, "Not a recognized neuroimaging format, skipping.") {
		t.Errorf("notes.txt section missing skip line:\n%s", skipSection)
	}
}

func TestWriteDocument(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"b.nii":    niftiBytes(),
		"a.nii":    niftiBytes(),
		"skip.txt": []byte("x"),
	})
	entries, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}

	var doc bytes.Buffer
	if err := WriteDocument(&doc, entries, "1.2.3"); err != nil {
		t.Fatal(err)
	}
	out := doc.String()

	if !strings.HasPrefix(out, "# NIfTI Test Files Reference Data\n") {
		t.Error("document missing title")
	}
	if !strings.Contains(out, "Generated using niftiref version: 1.2.3") {
		t.Error("document missing version preamble")
	}

	// Sections appear in lexicographic order.
	ai := strings.Index(out, "## a.nii")
	bi := strings.Index(out, "## b.nii")
	si := strings.Index(out, "## skip.txt")
	if ai < 0 || bi < 0 || si < 0 {
		t.Fatalf("document missing sections:\n%s", out)
	}
	if !(ai < bi && bi < si) {
		t.Errorf("sections out of order: a=%d b=%d skip=%d", ai, bi, si)
	}
}

func TestRun(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{
		"vol.nii":  niftiBytes(),
		"bad.nii":  bytes.Repeat([]byte{0xAA}, 400),
		"skip.txt": []byte("x"),
	})

	cfg := types.ReportConfig{InputDir: dir, Manifest: true}
	var log bytes.Buffer
	summary, err := Run(cfg, "dev", &log)
	if err != nil {
		t.Fatal(err)
	}

	if summary.Rendered != 1 || summary.Failed != 1 || summary.Skipped != 1 {
		t.Errorf("summary = %+v, want 1/1/1", summary)
	}
	if summary.Total() != 3 {
		t.Errorf("total = %d, want 3", summary.Total())
	}
	for _, want := range []string{"rendered: vol.nii", "failed:   bad.nii", "skipped:  skip.txt", "Run summary:"} {
		if !strings.Contains(log.String(), want) {
			t.Errorf("log missing %q:\n%s", want, log.String())
		}
	}

	if _, err := os.Stat(filepath.Join(dir, types.DefaultOutputFile)); err != nil {
		t.Errorf("expected document at default path: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, types.DefaultManifestFile))
	if err != nil {
		t.Fatalf("expected manifest at default path: %v", err)
	}
	var m struct {
		GeneratedBy string `yaml:"generated_by"`
		Files       []struct {
			File   string              `yaml:"file"`
			Header *types.HeaderRecord `yaml:"header"`
			Error  string              `yaml:"error"`
		} `yaml:"files"`
	}
	if err := yaml.Unmarshal(data, &m); err != nil {
		t.Fatalf("manifest is not valid YAML: %v", err)
	}
	if m.GeneratedBy != "niftiref dev" {
		t.Errorf("generated_by = %q", m.GeneratedBy)
	}
	if len(m.Files) != 3 {
		t.Fatalf("manifest holds %d files, want 3", len(m.Files))
	}
	if m.Files[2].Header == nil || m.Files[2].Header.Kind != types.FormatNIfTI1 {
		t.Errorf("manifest vol.nii entry missing decoded header")
	}
	if m.Files[0].Error == "" {
		t.Errorf("manifest bad.nii entry missing error string")
	}
}

func TestRunCustomOutputPath(t *testing.T) {
	dir := writeFiles(t, map[string][]byte{"vol.nii": niftiBytes()})
	out := filepath.Join(t.TempDir(), "reference.md")

	cfg := types.ReportConfig{InputDir: dir, OutputFile: out}
	if _, err := Run(cfg, "dev", &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("expected document at %s: %v", out, err)
	}
}
