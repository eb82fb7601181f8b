// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared record and configuration types for niftiref.
package types

import "fmt"

// FormatKind identifies the on-disk header family of a scanned file.
type FormatKind string

const (
	FormatNIfTI1       FormatKind = "NIfTI-1"
	FormatNIfTI2       FormatKind = "NIfTI-2"
	FormatAnalyze      FormatKind = "Analyze 7.5"
	FormatUnrecognized FormatKind = "unrecognized"
)

// IsNIfTI reports whether the kind carries the NIfTI-only field set
// (dim_info, quaternions, srow matrix, and so on).
func (k FormatKind) IsNIfTI() bool {
	return k == FormatNIfTI1 || k == FormatNIfTI2
}

// ByteOrder is the endianness a header was stored with, inferred by probing
// sizeof_hdr under both interpretations.
type ByteOrder string

const (
	LittleEndian ByteOrder = "Little Endian"
	BigEndian    ByteOrder = "Big Endian"
)

// XformCode is a NIfTI coordinate-system code (qform_code / sform_code).
// Known codes resolve to their standard names; anything else prints
// UNKNOWN_<n> rather than a bare number.
type XformCode int32

const (
	XformUnknown     XformCode = 0
	XformScannerAnat XformCode = 1
	XformAlignedAnat XformCode = 2
	XformTalairach   XformCode = 3
	XformMNI152      XformCode = 4
)

var xformNames = map[XformCode]string{
	XformUnknown:     "UNKNOWN",
	XformScannerAnat: "SCANNER_ANAT",
	XformAlignedAnat: "ALIGNED_ANAT",
	XformTalairach:   "TALAIRACH",
	XformMNI152:      "MNI_152",
}

// Name returns the standard name for the code, or UNKNOWN_<n> for codes
// outside the documented set.
func (c XformCode) Name() string {
	if name, ok := xformNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN_%d", int32(c))
}

// String renders the code as "<int> (<name>)", the form used in reference
// documents.
func (c XformCode) String() string {
	return fmt.Sprintf("%d (%s)", int32(c), c.Name())
}

// DimInfo is the packed dim_info byte: frequency, phase, and slice axis
// selections in bit pairs 0-1, 2-3, and 4-5. A value of 0 in any pair means
// the axis is unspecified.
type DimInfo uint8

// FreqDim returns the frequency-encoding axis (1..3, or 0 if unset).
func (d DimInfo) FreqDim() int { return int(d) & 0x03 }

// PhaseDim returns the phase-encoding axis (1..3, or 0 if unset).
func (d DimInfo) PhaseDim() int { return int(d) >> 2 & 0x03 }

// SliceDim returns the slice-selection axis (1..3, or 0 if unset).
func (d DimInfo) SliceDim() int { return int(d) >> 4 & 0x03 }

// XYZTUnits is the packed xyzt_units byte: spatial unit code in bits 0-2,
// temporal unit code in bits 3-5.
type XYZTUnits uint8

// Spatial returns the spatial unit code (NIFTI_UNITS_METER/MM/MICRON).
func (u XYZTUnits) Spatial() int { return int(u) & 0x07 }

// Temporal returns the temporal unit code (NIFTI_UNITS_SEC/MSEC/USEC...).
func (u XYZTUnits) Temporal() int { return int(u) & 0x38 }

var spatialUnitNames = map[int]string{
	0: "unknown",
	1: "meter",
	2: "mm",
	3: "micron",
}

var temporalUnitNames = map[int]string{
	0:  "unknown",
	8:  "sec",
	16: "msec",
	24: "usec",
	32: "hz",
	40: "ppm",
	48: "rads",
}

// SpatialName returns the name of the spatial unit, or "unknown" for codes
// outside the documented set.
func (u XYZTUnits) SpatialName() string {
	if name, ok := spatialUnitNames[u.Spatial()]; ok {
		return name
	}
	return "unknown"
}

// TemporalName returns the name of the temporal unit, or "unknown" for codes
// outside the documented set.
func (u XYZTUnits) TemporalName() string {
	if name, ok := temporalUnitNames[u.Temporal()]; ok {
		return name
	}
	return "unknown"
}

// Affine is a homogeneous voxel-to-world transform: three meaningful rows
// plus the [0 0 0 1] bottom row.
type Affine [4][4]float64

// Translation returns the translation column (elements [0..2][3]).
func (a Affine) Translation() [3]float64 {
	return [3]float64{a[0][3], a[1][3], a[2][3]}
}

// NIfTIFields is the NIfTI-only extension of a HeaderRecord: the raw field
// set that a from-scratch decoder must reproduce bit-for-bit. Present only
// when the format kind is NIfTI-1 or NIfTI-2; Analyze headers carry none of
// these.
type NIfTIFields struct {
	// DimInfo is the packed frequency/phase/slice axis byte.
	DimInfo DimInfo `json:"dim_info" yaml:"dim_info"`

	// Dim is the raw 8-slot dimension vector; slot 0 holds the number of
	// dimensions in use.
	Dim [8]int64 `json:"dim" yaml:"dim"`

	// DatatypeCode is the raw numeric on-disk sample type tag.
	DatatypeCode int32 `json:"datatype" yaml:"datatype"`

	// Bitpix is the declared bits per voxel.
	Bitpix int32 `json:"bitpix" yaml:"bitpix"`

	// Pixdim is the raw 8-slot spacing vector; slot 0 carries the qform
	// handedness sign (qfac), not a spacing value.
	Pixdim [8]float64 `json:"pixdim" yaml:"pixdim"`

	// QformCode and SformCode select which affine encoding is authoritative.
	QformCode XformCode `json:"qform_code" yaml:"qform_code"`
	SformCode XformCode `json:"sform_code" yaml:"sform_code"`

	// XYZTUnits is the packed spatial/temporal unit byte.
	XYZTUnits XYZTUnits `json:"xyzt_units" yaml:"xyzt_units"`

	// QuaternB, QuaternC, QuaternD and QoffsetX, QoffsetY, QoffsetZ form the
	// quaternion encoding of the affine.
	QuaternB float64 `json:"quatern_b" yaml:"quatern_b"`
	QuaternC float64 `json:"quatern_c" yaml:"quatern_c"`
	QuaternD float64 `json:"quatern_d" yaml:"quatern_d"`
	QoffsetX float64 `json:"qoffset_x" yaml:"qoffset_x"`
	QoffsetY float64 `json:"qoffset_y" yaml:"qoffset_y"`
	QoffsetZ float64 `json:"qoffset_z" yaml:"qoffset_z"`

	// SrowX, SrowY, SrowZ are the direct-matrix encoding of the affine.
	SrowX [4]float64 `json:"srow_x" yaml:"srow_x"`
	SrowY [4]float64 `json:"srow_y" yaml:"srow_y"`
	SrowZ [4]float64 `json:"srow_z" yaml:"srow_z"`
}

// HeaderRecord is the canonical decoded representation of one file's header.
// A record is built once per input file, is immutable after construction, and
// is discarded after rendering.
type HeaderRecord struct {
	// Kind is the detected sub-format.
	Kind FormatKind `json:"format" yaml:"format"`

	// FileSize is the on-disk file size in bytes, taken from filesystem
	// metadata independently of header content.
	FileSize uint64 `json:"file_size" yaml:"file_size"`

	// Shape holds the per-dimension extents actually in use.
	Shape []uint64 `json:"shape" yaml:"shape"`

	// DataType is the resolved on-disk sample type.
	DataType DataType `json:"data_type" yaml:"data_type"`

	// VoxelSpacing holds the zoom factors, one per dimension in Shape.
	VoxelSpacing []float64 `json:"voxel_spacing" yaml:"voxel_spacing"`

	// HeaderSize is the sizeof_hdr value declared inside the header.
	HeaderSize int32 `json:"header_size" yaml:"header_size"`

	// Magic identifies the NIfTI sub-version; empty for Analyze headers.
	Magic string `json:"magic,omitempty" yaml:"magic,omitempty"`

	// VoxOffset is the byte offset where pixel data begins.
	VoxOffset float64 `json:"vox_offset" yaml:"vox_offset"`

	// ByteOrder is the endianness the header was stored with.
	ByteOrder ByteOrder `json:"byte_order" yaml:"byte_order"`

	// Affine is the resolved voxel-to-world transform: srow rows when
	// sform_code is set, the quaternion reconstruction otherwise.
	Affine Affine `json:"affine" yaml:"affine"`

	// RawPrefix holds up to the first 16 bytes of the file as stored on
	// disk, captured independently of header parsing.
	RawPrefix []byte `json:"raw_prefix" yaml:"raw_prefix"`

	// NIfTI carries the NIfTI-only field set; nil for Analyze headers.
	NIfTI *NIfTIFields `json:"nifti,omitempty" yaml:"nifti,omitempty"`
}
