// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nifti

import (
	"math"

	"github.com/pdiddy/niftiref/pkg/types"
)

// resolveAffine picks between the two affine encodings a NIfTI header
// carries: the direct srow matrix when sform_code is set, the quaternion
// reconstruction otherwise. The srow path copies the rows verbatim, so the
// translation column reproduces srow_*[3] exactly.
func resolveAffine(f *types.NIfTIFields) types.Affine {
	if f.SformCode != types.XformUnknown {
		return sformAffine(f)
	}
	return qformAffine(f)
}

// sformAffine builds the affine directly from the three srow rows plus the
// homogeneous bottom row.
func sformAffine(f *types.NIfTIFields) types.Affine {
	var a types.Affine
	for j := 0; j < 4; j++ {
		a[0][j] = f.SrowX[j]
		a[1][j] = f.SrowY[j]
		a[2][j] = f.SrowZ[j]
	}
	a[3][3] = 1
	return a
}

// qformAffine reconstructs the affine from the quaternion triple, the
// qoffset translation, and the handedness sign carried in pixdim[0],
// following the reference algorithm in nifti1_io.c (quatern_to_mat44).
func qformAffine(f *types.NIfTIFields) types.Affine {
	b, c, d := f.QuaternB, f.QuaternC, f.QuaternD

	// The a component is implied by the unit-quaternion constraint. Rounding
	// in stored b,c,d can push the sum just past 1; treat that as a = 0 and
	// renormalize, as nifti1_io does.
	a := 1.0 - (b*b + c*c + d*d)
	if a < 1e-7 {
		norm := math.Sqrt(b*b + c*c + d*d)
		b, c, d = b/norm, c/norm, d/norm
		a = 0
	} else {
		a = math.Sqrt(a)
	}

	// Zooms: non-positive spacing defaults to 1; pixdim[0] carries qfac, the
	// sign of the third column.
	dx, dy, dz := f.Pixdim[1], f.Pixdim[2], f.Pixdim[3]
	if dx <= 0 {
		dx = 1
	}
	if dy <= 0 {
		dy = 1
	}
	if dz <= 0 {
		dz = 1
	}
	if f.Pixdim[0] < 0 {
		dz = -dz
	}

	var m types.Affine
	m[0][0] = (a*a + b*b - c*c - d*d) * dx
	m[0][1] = 2 * (b*c - a*d) * dy
	m[0][2] = 2 * (b*d + a*c) * dz
	m[1][0] = 2 * (b*c + a*d) * dx
	m[1][1] = (a*a + c*c - b*b - d*d) * dy
	m[1][2] = 2 * (c*d - a*b) * dz
	m[2][0] = 2 * (b*d - a*c) * dx
	m[2][1] = 2 * (c*d + a*b) * dy
	m[2][2] = (a*a + d*d - c*c - b*b) * dz
	m[0][3] = f.QoffsetX
	m[1][3] = f.QoffsetY
	m[2][3] = f.QoffsetZ
	m[3][3] = 1
	return m
}

// baseAffine is the fallback for headers with no affine encoding at all
// (legacy Analyze): a diagonal zoom matrix with the x axis flipped and the
// origin moved to the volume center, matching nibabel's shape_zoom_affine.
func baseAffine(shape []uint64, spacing []float64) types.Affine {
	zooms := [3]float64{1, 1, 1}
	for i := 0; i < 3 && i < len(spacing); i++ {
		if spacing[i] != 0 {
			zooms[i] = spacing[i]
		}
	}
	zooms[0] = -zooms[0]

	var origin [3]float64
	for i := 0; i < 3 && i < len(shape); i++ {
		if shape[i] > 0 {
			origin[i] = float64(shape[i]-1) / 2
		}
	}

	var m types.Affine
	for i := 0; i < 3; i++ {
		m[i][i] = zooms[i]
		m[i][3] = -origin[i] * zooms[i]
	}
	m[3][3] = 1
	return m
}
