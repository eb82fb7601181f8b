// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// DataType is the semantic on-disk sample type resolved from a NIfTI/Analyze
// datatype code. Unrecognized codes are carried through rather than rejected,
// so a decode never fails on an exotic type tag.
type DataType struct {
	// Code is the raw numeric tag from the header.
	Code int32 `json:"code" yaml:"code"`

	// Name is the resolved type name, or "" when the code is unknown.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Standard NIfTI datatype codes, from the official nifti1.h definition.
const (
	DTUnknown    int32 = 0
	DTBinary     int32 = 1
	DTUint8      int32 = 2
	DTInt16      int32 = 4
	DTInt32      int32 = 8
	DTFloat32    int32 = 16
	DTComplex64  int32 = 32
	DTFloat64    int32 = 64
	DTRGB24      int32 = 128
	DTInt8       int32 = 256
	DTUint16     int32 = 512
	DTUint32     int32 = 768
	DTInt64      int32 = 1024
	DTUint64     int32 = 1280
	DTFloat128   int32 = 1536
	DTComplex128 int32 = 1792
	DTComplex256 int32 = 2048
	DTRGBA32     int32 = 2304
)

var dataTypeNames = map[int32]string{
	DTBinary:     "binary",
	DTUint8:      "uint8",
	DTInt16:      "int16",
	DTInt32:      "int32",
	DTFloat32:    "float32",
	DTComplex64:  "complex64",
	DTFloat64:    "float64",
	DTRGB24:      "rgb24",
	DTInt8:       "int8",
	DTUint16:     "uint16",
	DTUint32:     "uint32",
	DTInt64:      "int64",
	DTUint64:     "uint64",
	DTFloat128:   "float128",
	DTComplex128: "complex128",
	DTComplex256: "complex256",
	DTRGBA32:     "rgba32",
}

// ResolveDataType maps a raw datatype code to its semantic type. Codes
// outside the standard table yield a DataType with an empty Name.
func ResolveDataType(code int32) DataType {
	return DataType{Code: code, Name: dataTypeNames[code]}
}

// Known reports whether the code resolved to a standard type.
func (d DataType) Known() bool { return d.Name != "" }

// String returns the type name, or "unknown(<code>)" for unrecognized codes.
func (d DataType) String() string {
	if d.Name == "" {
		return fmt.Sprintf("unknown(%d)", d.Code)
	}
	return d.Name
}
