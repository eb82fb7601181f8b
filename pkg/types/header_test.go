// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "testing"

func TestXformCodeName(t *testing.T) {
	tests := []struct {
		code XformCode
		want string
	}{
		{XformUnknown, "UNKNOWN"},
		{XformScannerAnat, "SCANNER_ANAT"},
		{XformAlignedAnat, "ALIGNED_ANAT"},
		{XformTalairach, "TALAIRACH"},
		{XformMNI152, "MNI_152"},
		{XformCode(99), "UNKNOWN_99"},
		{XformCode(-1), "UNKNOWN_-1"},
	}
	for _, tt := range tests {
		if got := tt.code.Name(); got != tt.want {
			t.Errorf("Name(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestXformCodeString(t *testing.T) {
	if got := XformScannerAnat.String(); got != "1 (SCANNER_ANAT)" {
		t.Errorf("String() = %q", got)
	}
	if got := XformCode(99).String(); got != "99 (UNKNOWN_99)" {
		t.Errorf("String() = %q", got)
	}
}

func TestDimInfoUnpack(t *testing.T) {
	// freq=1 (bits 0-1), phase=2 (bits 2-3), slice=3 (bits 4-5).
	d := DimInfo(0x39)
	if d.FreqDim() != 1 {
		t.Errorf("FreqDim() = %d, want 1", d.FreqDim())
	}
	if d.PhaseDim() != 2 {
		t.Errorf("PhaseDim() = %d, want 2", d.PhaseDim())
	}
	if d.SliceDim() != 3 {
		t.Errorf("SliceDim() = %d, want 3", d.SliceDim())
	}

	zero := DimInfo(0)
	if zero.FreqDim() != 0 || zero.PhaseDim() != 0 || zero.SliceDim() != 0 {
		t.Error("zero dim_info must unpack to all-unset axes")
	}
}

func TestXYZTUnitsUnpack(t *testing.T) {
	// mm (2) + sec (8).
	u := XYZTUnits(10)
	if u.Spatial() != 2 {
		t.Errorf("Spatial() = %d, want 2", u.Spatial())
	}
	if u.Temporal() != 8 {
		t.Errorf("Temporal() = %d, want 8", u.Temporal())
	}
	if u.SpatialName() != "mm" {
		t.Errorf("SpatialName() = %q, want mm", u.SpatialName())
	}
	if u.TemporalName() != "sec" {
		t.Errorf("TemporalName() = %q, want sec", u.TemporalName())
	}

	if XYZTUnits(0).SpatialName() != "unknown" {
		t.Error("unset spatial unit must name as unknown")
	}
}

func TestResolveDataType(t *testing.T) {
	tests := []struct {
		code int32
		want string
	}{
		{DTUint8, "uint8"},
		{DTInt16, "int16"},
		{DTInt32, "int32"},
		{DTFloat32, "float32"},
		{DTFloat64, "float64"},
		{DTComplex64, "complex64"},
		{DTComplex128, "complex128"},
		{DTInt64, "int64"},
		{DTUint64, "uint64"},
		{DTRGB24, "rgb24"},
		{9999, "unknown(9999)"},
		{DTUnknown, "unknown(0)"},
	}
	for _, tt := range tests {
		if got := ResolveDataType(tt.code).String(); got != tt.want {
			t.Errorf("ResolveDataType(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestDataTypeKnown(t *testing.T) {
	if !ResolveDataType(DTInt16).Known() {
		t.Error("int16 must be a known type")
	}
	if ResolveDataType(12345).Known() {
		t.Error("code 12345 must be unknown")
	}
}

func TestAffineTranslation(t *testing.T) {
	var a Affine
	a[0][3], a[1][3], a[2][3] = -90, -126, -72
	if got := a.Translation(); got != [3]float64{-90, -126, -72} {
		t.Errorf("Translation() = %v", got)
	}
}

func TestFormatKindIsNIfTI(t *testing.T) {
	if !FormatNIfTI1.IsNIfTI() || !FormatNIfTI2.IsNIfTI() {
		t.Error("NIfTI kinds must report IsNIfTI")
	}
	if FormatAnalyze.IsNIfTI() || FormatUnrecognized.IsNIfTI() {
		t.Error("non-NIfTI kinds must not report IsNIfTI")
	}
}
