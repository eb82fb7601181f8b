// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nifti

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/niftiref/pkg/types"
)

func TestSformAffineWinsAndIsExact(t *testing.T) {
	f := &types.NIfTIFields{
		// A deliberately inconsistent qform: sform must take precedence.
		QformCode: types.XformScannerAnat,
		QuaternB:  0.5,
		Pixdim:    [8]float64{1, 9, 9, 9},
		SformCode: types.XformMNI152,
		SrowX:     [4]float64{2, 0, 0, -90.25},
		SrowY:     [4]float64{0, 2, 0, -126.5},
		SrowZ:     [4]float64{0, 0, 2, -72.125},
	}
	a := resolveAffine(f)

	// Translation reproduces srow_*[3] bit-for-bit, no reconstruction error.
	assert.Equal(t, [3]float64{-90.25, -126.5, -72.125}, a.Translation())
	assert.Equal(t, 2.0, a[0][0])
	assert.Equal(t, [4]float64{0, 0, 0, 1}, a[3])
}

func TestQformAffineIdentityQuaternion(t *testing.T) {
	f := &types.NIfTIFields{
		QformCode: types.XformScannerAnat,
		Pixdim:    [8]float64{1, 2, 3, 4},
		QoffsetX:  5,
		QoffsetY:  6,
		QoffsetZ:  7,
	}
	a := resolveAffine(f)

	// b=c=d=0 is the identity rotation: diagonal zooms plus qoffset.
	assert.Equal(t, 2.0, a[0][0])
	assert.Equal(t, 3.0, a[1][1])
	assert.Equal(t, 4.0, a[2][2])
	assert.Equal(t, 0.0, a[0][1])
	assert.Equal(t, [3]float64{5, 6, 7}, a.Translation())
}

func TestQformAffineNegativeQfacFlipsZ(t *testing.T) {
	f := &types.NIfTIFields{
		Pixdim: [8]float64{-1, 2, 3, 4},
	}
	a := qformAffine(f)
	assert.Equal(t, -4.0, a[2][2])
}

func TestQformAffineRotation(t *testing.T) {
	// Quaternion (a, b, 0, 0) with a=b=sqrt(1/2) is a 90 degree rotation
	// about x: y maps to z, z maps to -y.
	f := &types.NIfTIFields{
		QuaternB: math.Sqrt(0.5),
		Pixdim:   [8]float64{1, 1, 1, 1},
	}
	a := qformAffine(f)

	want := [3][3]float64{
		{1, 0, 0},
		{0, 0, -1},
		{0, 1, 0},
	}
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.InDelta(t, want[i][j], a[i][j], 1e-12, "element [%d][%d]", i, j)
		}
	}
}

func TestQformAffineRenormalizesDriftedQuaternion(t *testing.T) {
	// Stored components that sum just past 1 must not produce NaN.
	f := &types.NIfTIFields{
		QuaternB: 1.0000001,
		Pixdim:   [8]float64{1, 1, 1, 1},
	}
	a := qformAffine(f)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			assert.False(t, math.IsNaN(a[i][j]), "element [%d][%d] is NaN", i, j)
		}
	}
}

func TestQformAffineZeroZoomsDefaultToOne(t *testing.T) {
	a := qformAffine(&types.NIfTIFields{})
	assert.Equal(t, 1.0, a[0][0])
	assert.Equal(t, 1.0, a[1][1])
	assert.Equal(t, 1.0, a[2][2])
}

func TestBaseAffineCentersOrigin(t *testing.T) {
	a := baseAffine([]uint64{4, 5, 6}, []float64{1, 2, 3})
	assert.Equal(t, -1.0, a[0][0])
	assert.Equal(t, [3]float64{1.5, -4, -7.5}, a.Translation())
}

func TestBaseAffineHandlesMissingDimensions(t *testing.T) {
	a := baseAffine(nil, nil)
	assert.Equal(t, -1.0, a[0][0])
	assert.Equal(t, 1.0, a[1][1])
	assert.Equal(t, [3]float64{0, 0, 0}, a.Translation())
	assert.Equal(t, 1.0, a[3][3])
}
