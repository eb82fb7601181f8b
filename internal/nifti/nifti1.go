// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nifti

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pdiddy/niftiref/pkg/types"
)

// nifti1Header mirrors the 348-byte NIfTI-1 header layout from the official
// nifti1.h definition. The same layout (minus the magic semantics) is the
// Analyze 7.5 header, so Analyze decoding reuses this struct. Field order is
// the wire order; encoding/binary reads it with no padding.
type nifti1Header struct {
	SizeofHdr     int32    // 0: must be 348
	DataTypeName  [10]byte // 4: unused Analyze relic
	DBName        [18]byte // 14: unused Analyze relic
	Extents       int32    // 32: unused
	SessionError  int16    // 36: unused
	Regular       byte     // 38: unused
	DimInfo       byte     // 39: MRI slice ordering
	Dim           [8]int16 // 40: data array dimensions
	IntentP1      float32  // 56
	IntentP2      float32  // 60
	IntentP3      float32  // 64
	IntentCode    int16    // 68
	Datatype      int16    // 70: on-disk sample type code
	Bitpix        int16    // 72: bits per voxel
	SliceStart    int16    // 74
	Pixdim        [8]float32 // 76: grid spacing; pixdim[0] carries qfac
	VoxOffset     float32  // 108: offset to pixel data
	SclSlope      float32  // 112
	SclInter      float32  // 116
	SliceEnd      int16    // 120
	SliceCode     byte     // 122
	XyztUnits     byte     // 123: packed spatial/temporal units
	CalMax        float32  // 124
	CalMin        float32  // 128
	SliceDuration float32  // 132
	Toffset       float32  // 136
	Glmax         int32    // 140: unused
	Glmin         int32    // 144: unused
	Descrip       [80]byte // 148
	AuxFile       [24]byte // 228
	QformCode     int16    // 252
	SformCode     int16    // 254
	QuaternB      float32  // 256
	QuaternC      float32  // 260
	QuaternD      float32  // 264
	QoffsetX      float32  // 268
	QoffsetY      float32  // 272
	QoffsetZ      float32  // 276
	SrowX         [4]float32 // 280: first affine row
	SrowY         [4]float32 // 296
	SrowZ         [4]float32 // 312
	IntentName    [16]byte // 328
	Magic         [4]byte  // 344: "n+1\0", "ni1\0", or garbage for Analyze
}

// nifti1Magics are the two NIfTI-1 magic values: single-file ("n+1") and
// header/image pair ("ni1"). Anything else in the magic slot means the
// 348-byte header is a legacy Analyze file.
var nifti1Magics = [][4]byte{
	{'n', '+', '1', 0},
	{'n', 'i', '1', 0},
}

// decodeNIfTI1 parses a 348-byte header with the probed byte order and maps
// it to a HeaderRecord. It detects NIfTI-1 versus legacy Analyze by magic.
func decodeNIfTI1(data []byte, order binary.ByteOrder, bo types.ByteOrder) (*types.HeaderRecord, error) {
	var raw nifti1Header
	if err := binary.Read(bytes.NewReader(data), order, &raw); err != nil {
		return nil, fmt.Errorf("%w: reading NIfTI-1 fields: %v", ErrDecodeFailure, err)
	}

	isNIfTI := false
	for _, m := range nifti1Magics {
		if raw.Magic == m {
			isNIfTI = true
			break
		}
	}

	ndim := clampNDim(int(raw.Dim[0]))
	rec := &types.HeaderRecord{
		Kind:         types.FormatAnalyze,
		Shape:        shapeOf(ndim, func(i int) int64 { return int64(raw.Dim[i+1]) }),
		DataType:     types.ResolveDataType(int32(raw.Datatype)),
		VoxelSpacing: spacingOf(ndim, func(i int) float64 { return float64(raw.Pixdim[i+1]) }),
		HeaderSize:   raw.SizeofHdr,
		VoxOffset:    float64(raw.VoxOffset),
		ByteOrder:    bo,
	}

	if !isNIfTI {
		// Analyze carries no affine encoding; fall back to the x-flipped
		// diagonal zoom affine with the origin at the volume center.
		rec.Affine = baseAffine(rec.Shape, rec.VoxelSpacing)
		return rec, nil
	}

	rec.Kind = types.FormatNIfTI1
	rec.Magic = magicString(raw.Magic[:])

	f := &types.NIfTIFields{
		DimInfo:      types.DimInfo(raw.DimInfo),
		DatatypeCode: int32(raw.Datatype),
		Bitpix:       int32(raw.Bitpix),
		QformCode:    types.XformCode(raw.QformCode),
		SformCode:    types.XformCode(raw.SformCode),
		XYZTUnits:    types.XYZTUnits(raw.XyztUnits),
		QuaternB:     float64(raw.QuaternB),
		QuaternC:     float64(raw.QuaternC),
		QuaternD:     float64(raw.QuaternD),
		QoffsetX:     float64(raw.QoffsetX),
		QoffsetY:     float64(raw.QoffsetY),
		QoffsetZ:     float64(raw.QoffsetZ),
	}
	for i := 0; i < 8; i++ {
		f.Dim[i] = int64(raw.Dim[i])
		f.Pixdim[i] = float64(raw.Pixdim[i])
	}
	for i := 0; i < 4; i++ {
		f.SrowX[i] = float64(raw.SrowX[i])
		f.SrowY[i] = float64(raw.SrowY[i])
		f.SrowZ[i] = float64(raw.SrowZ[i])
	}
	rec.NIfTI = f
	rec.Affine = resolveAffine(f)
	return rec, nil
}

// clampNDim bounds the declared dimensionality to the valid 0..7 range.
func clampNDim(n int) int {
	if n < 0 {
		return 0
	}
	if n > 7 {
		return 7
	}
	return n
}

// shapeOf collects ndim extents via at(0..ndim-1), flooring negatives to 0.
func shapeOf(ndim int, at func(int) int64) []uint64 {
	shape := make([]uint64, ndim)
	for i := 0; i < ndim; i++ {
		if v := at(i); v > 0 {
			shape[i] = uint64(v)
		}
	}
	return shape
}

// spacingOf collects ndim zoom factors via at(0..ndim-1).
func spacingOf(ndim int, at func(int) float64) []float64 {
	spacing := make([]float64, ndim)
	for i := 0; i < ndim; i++ {
		spacing[i] = at(i)
	}
	return spacing
}

// magicString trims the trailing NUL padding from a magic field.
func magicString(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return string(b[:end])
}
