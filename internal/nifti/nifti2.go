// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nifti

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/pdiddy/niftiref/pkg/types"
)

// nifti2Header mirrors the 540-byte NIfTI-2 header layout. NIfTI-2 widens
// the dimension and spacing fields to 64 bits and moves the magic to offset
// 4, directly after sizeof_hdr.
type nifti2Header struct {
	SizeofHdr     int32      // 0: must be 540
	Magic         [8]byte    // 4: "n+2\0\r\n\x1a\n"
	Datatype      int16      // 12
	Bitpix        int16      // 14
	Dim           [8]int64   // 16
	IntentP1      float64    // 80
	IntentP2      float64    // 88
	IntentP3      float64    // 96
	Pixdim        [8]float64 // 104
	VoxOffset     int64      // 168
	SclSlope      float64    // 176
	SclInter      float64    // 184
	CalMax        float64    // 192
	CalMin        float64    // 200
	SliceDuration float64    // 208
	Toffset       float64    // 216
	SliceStart    int64      // 224
	SliceEnd      int64      // 232
	Descrip       [80]byte   // 240
	AuxFile       [24]byte   // 320
	QformCode     int32      // 344
	SformCode     int32      // 348
	QuaternB      float64    // 352
	QuaternC      float64    // 360
	QuaternD      float64    // 368
	QoffsetX      float64    // 376
	QoffsetY      float64    // 384
	QoffsetZ      float64    // 392
	SrowX         [4]float64 // 400
	SrowY         [4]float64 // 432
	SrowZ         [4]float64 // 464
	SliceCode     int32      // 496
	XyztUnits     int32      // 500
	IntentCode    int32      // 504
	IntentName    [16]byte   // 508
	DimInfo       byte       // 524
	UnusedStr     [15]byte   // 525
}

// nifti2Magic is the NIfTI-2 magic: version token plus a line-ending
// signature that catches text-mode corruption, in the PNG style.
var nifti2Magic = [8]byte{'n', '+', '2', 0, '\r', '\n', 0x1a, '\n'}

// decodeNIfTI2 parses a 540-byte header with the probed byte order. A header
// that declares size 540 but lacks the NIfTI-2 magic is internally
// inconsistent and fails decode.
func decodeNIfTI2(data []byte, order binary.ByteOrder, bo types.ByteOrder) (*types.HeaderRecord, error) {
	var raw nifti2Header
	if err := binary.Read(bytes.NewReader(data), order, &raw); err != nil {
		return nil, fmt.Errorf("%w: reading NIfTI-2 fields: %v", ErrDecodeFailure, err)
	}

	if raw.Magic[0] != 'n' || raw.Magic[2] != '2' {
		return nil, fmt.Errorf("%w: header declares size 540 but magic %q is not NIfTI-2",
			ErrDecodeFailure, magicString(raw.Magic[:]))
	}

	ndim := clampNDim(int(raw.Dim[0]))
	f := &types.NIfTIFields{
		DimInfo:      types.DimInfo(raw.DimInfo),
		Dim:          raw.Dim,
		DatatypeCode: int32(raw.Datatype),
		Bitpix:       int32(raw.Bitpix),
		Pixdim:       raw.Pixdim,
		QformCode:    types.XformCode(raw.QformCode),
		SformCode:    types.XformCode(raw.SformCode),
		XYZTUnits:    types.XYZTUnits(raw.XyztUnits),
		QuaternB:     raw.QuaternB,
		QuaternC:     raw.QuaternC,
		QuaternD:     raw.QuaternD,
		QoffsetX:     raw.QoffsetX,
		QoffsetY:     raw.QoffsetY,
		QoffsetZ:     raw.QoffsetZ,
		SrowX:        raw.SrowX,
		SrowY:        raw.SrowY,
		SrowZ:        raw.SrowZ,
	}

	rec := &types.HeaderRecord{
		Kind:         types.FormatNIfTI2,
		Shape:        shapeOf(ndim, func(i int) int64 { return raw.Dim[i+1] }),
		DataType:     types.ResolveDataType(int32(raw.Datatype)),
		VoxelSpacing: spacingOf(ndim, func(i int) float64 { return raw.Pixdim[i+1] }),
		HeaderSize:   raw.SizeofHdr,
		Magic:        magicString(raw.Magic[:4]),
		VoxOffset:    float64(raw.VoxOffset),
		ByteOrder:    bo,
		NIfTI:        f,
	}
	rec.Affine = resolveAffine(f)
	return rec, nil
}
