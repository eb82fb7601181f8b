// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package nifti

import "errors"

// Decode error taxonomy. Every error is local to one file; callers downgrade
// them to rendered diagnostics rather than aborting a batch.
var (
	// ErrNotRecognizedFormat means the filename extension is outside the
	// recognized set. This is a classification short-circuit, not a parse
	// failure: the file bytes are never inspected.
	ErrNotRecognizedFormat = errors.New("not a recognized neuroimaging format")

	// ErrUnrecognizedHeaderSize means neither byte-order interpretation of
	// sizeof_hdr yielded a canonical header size (348 or 540).
	ErrUnrecognizedHeaderSize = errors.New("unrecognized header size")

	// ErrTruncatedHeader means the stream is shorter than the smallest
	// recognized header, or shorter than the size the header declares.
	ErrTruncatedHeader = errors.New("truncated header")

	// ErrDecodeFailure covers decoder-internal inconsistencies, such as a
	// field value outside its documented domain.
	ErrDecodeFailure = errors.New("header decode failure")
)
