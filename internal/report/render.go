// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package report

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/niftiref/internal/nifti"
	"github.com/pdiddy/niftiref/pkg/types"
)

// Section renders the markdown blocks for one file: the full field dump for
// a successful decode, a one-line diagnostic otherwise. It is total over any
// record/error combination; formatting (column widths, decimal precision,
// hex case) is part of the document contract because consumers diff the
// output byte for byte.
func Section(name string, rec *types.HeaderRecord, err error) string {
	var b strings.Builder

	fmt.Fprintf(&b, "## %s\n\n", name)

	if err != nil {
		if errors.Is(err, nifti.ErrNotRecognizedFormat) {
			b.WriteString("Not a recognized neuroimaging format, skipping.\n")
		} else {
			fmt.Fprintf(&b, "Error reading file: %v\n", err)
		}
		return b.String()
	}

	b.WriteString("Reference information from niftiref analysis:\n\n")

	b.WriteString("### File Structure\n")
	fmt.Fprintf(&b, "- File size: %d bytes\n", rec.FileSize)
	fmt.Fprintf(&b, "- Format detected: %s\n\n", rec.Kind)

	b.WriteString("### Header Information\n")
	fmt.Fprintf(&b, "- Data shape: %s\n", shapeTuple(rec.Shape))
	fmt.Fprintf(&b, "- Data type: %s\n", rec.DataType)
	fmt.Fprintf(&b, "- Voxel dimensions: %s\n", zoomTuple(rec.VoxelSpacing))
	fmt.Fprintf(&b, "- Header size: %d\n", rec.HeaderSize)
	if rec.Magic != "" {
		fmt.Fprintf(&b, "- Magic string: %s\n", rec.Magic)
	}
	fmt.Fprintf(&b, "- Voxel offset: %s\n", compactFloat(rec.VoxOffset))
	fmt.Fprintf(&b, "- Byte order: %s\n\n", rec.ByteOrder)

	b.WriteString("### Affine\n```\n")
	for _, row := range rec.Affine {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%8.3f", v)
		}
		fmt.Fprintf(&b, "    %s\n", strings.Join(cells, " "))
	}
	b.WriteString("```\n\n")

	if rec.Kind.IsNIfTI() && rec.NIfTI != nil {
		writeNIfTIMetadata(&b, rec)
	}

	b.WriteString("### Raw Binary Start\n")
	fmt.Fprintf(&b, "First %d bytes in hex:\n", len(rec.RawPrefix))
	fmt.Fprintf(&b, "`%s`\n", hexPreview(rec.RawPrefix))

	return b.String()
}

// writeNIfTIMetadata emits the NIfTI-only field block: every raw field an
// independent decoder must reproduce, with xform codes resolved to names and
// floating-point values at 6 decimal places.
func writeNIfTIMetadata(b *strings.Builder, rec *types.HeaderRecord) {
	f := rec.NIfTI

	b.WriteString("### Additional NIfTI Metadata\n")
	fmt.Fprintf(b, "- dim_info: %d\n", uint8(f.DimInfo))
	fmt.Fprintf(b, "- dims: %s\n", intList(f.Dim[:]))
	fmt.Fprintf(b, "- datatype: %d (%s)\n", f.DatatypeCode, rec.DataType)
	fmt.Fprintf(b, "- bitpix: %d\n", f.Bitpix)
	fmt.Fprintf(b, "- pixdim: %s\n", floatList(f.Pixdim[:]))
	fmt.Fprintf(b, "- qform_code: %s\n", f.QformCode)
	fmt.Fprintf(b, "- sform_code: %s\n", f.SformCode)
	fmt.Fprintf(b, "- xyzt_units: %d\n", uint8(f.XYZTUnits))
	fmt.Fprintf(b, "- quatern_b,c,d: %.6f, %.6f, %.6f\n", f.QuaternB, f.QuaternC, f.QuaternD)
	fmt.Fprintf(b, "- qoffset_x,y,z: %.6f, %.6f, %.6f\n", f.QoffsetX, f.QoffsetY, f.QoffsetZ)
	fmt.Fprintf(b, "- srow_x: %s\n", floatList(f.SrowX[:]))
	fmt.Fprintf(b, "- srow_y: %s\n", floatList(f.SrowY[:]))
	fmt.Fprintf(b, "- srow_z: %s\n\n", floatList(f.SrowZ[:]))
}

// shapeTuple formats dimension extents as a parenthesized tuple: (4, 5, 6).
func shapeTuple(shape []uint64) string {
	parts := make([]string, len(shape))
	for i, v := range shape {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// zoomTuple formats zoom factors as a parenthesized tuple with compact
// floats: (1, 2, 2.5).
func zoomTuple(spacing []float64) string {
	parts := make([]string, len(spacing))
	for i, v := range spacing {
		parts[i] = compactFloat(v)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// intList formats a raw integer vector as [3, 4, 5, 6, 1, 1, 1, 1].
func intList(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// floatList formats a raw float vector at 6 decimal places:
// [1.000000, 2.000000, ...].
func floatList(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = fmt.Sprintf("%.6f", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// compactFloat renders a float in its shortest exact form (352, 0.5).
func compactFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// hexPreview renders bytes as lowercase space-separated two-digit hex.
func hexPreview(data []byte) string {
	parts := make([]string, len(data))
	for i, v := range data {
		parts[i] = fmt.Sprintf("%02x", v)
	}
	return strings.Join(parts, " ")
}
