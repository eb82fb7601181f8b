// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package nifti decodes the fixed binary header layouts of the NIfTI-1,
// NIfTI-2, and legacy Analyze 7.5 neuroimaging formats into format-agnostic
// HeaderRecords. It reads headers only; pixel data is never touched.
package nifti

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/pdiddy/niftiref/pkg/types"
)

// Canonical declared header sizes: sizeof_hdr is 348 for NIfTI-1 and Analyze,
// 540 for NIfTI-2. These anchor the byte-order probe.
const (
	nifti1HeaderSize = 348
	nifti2HeaderSize = 540
)

// rawPrefixLen is how many leading on-disk bytes are captured for the hex
// preview, matching the reference document contract.
const rawPrefixLen = 16

// recognizedSuffixes gates decoding by filename; a trailing .gz layer is
// stripped before matching, so the compressed variants are covered too.
var recognizedSuffixes = []string{".nii", ".hdr", ".img"}

// RecognizedExtension reports whether the filename carries one of the
// recognized suffixes (.nii, .hdr, .img), optionally with a .gz layer.
func RecognizedExtension(name string) bool {
	lower := strings.ToLower(name)
	lower = strings.TrimSuffix(lower, ".gz")
	for _, suffix := range recognizedSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// Decode reads the file at path and produces its HeaderRecord. The sequence
// is: extension gate, raw prefix capture, transparent gzip decompression,
// byte-order probe on sizeof_hdr, then dispatch to the per-format decoder.
// Decoding either fully succeeds or fails as a unit; all errors are
// recoverable per file.
func Decode(path string) (*types.HeaderRecord, error) {
	if !RecognizedExtension(path) {
		return nil, fmt.Errorf("%w: %s", ErrNotRecognizedFormat, path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	prefix, err := RawPrefix(path)
	if err != nil {
		return nil, err
	}

	stream, err := readHeaderStream(path)
	if err != nil {
		return nil, err
	}

	rec, err := DecodeBytes(stream)
	if err != nil {
		return nil, err
	}
	rec.FileSize = uint64(info.Size())
	rec.RawPrefix = prefix
	return rec, nil
}

// RawPrefix reads up to the first 16 bytes of the file exactly as stored on
// disk, without decompression. Capture is deliberately decoupled from header
// decoding so a hex preview exists even for files that fail to parse; files
// shorter than 16 bytes yield a shorter prefix rather than an error.
func RawPrefix(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	buf := make([]byte, rawPrefixLen)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, fmt.Errorf("reading prefix of %s: %w", path, err)
	}
	return buf[:n], nil
}

// readHeaderStream returns the leading header bytes of the (possibly
// gzip-compressed) file, at most the largest recognized header size.
func readHeaderStream(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(strings.ToLower(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(io.LimitReader(r, nifti2HeaderSize))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// DecodeBytes decodes an already-read (and already-decompressed) header
// stream. The FileSize and RawPrefix fields are left for the caller, since
// both come from the raw file rather than the decoded stream.
func DecodeBytes(data []byte) (*types.HeaderRecord, error) {
	// Nothing shorter than the smallest recognized header can decode.
	if len(data) < nifti1HeaderSize {
		return nil, fmt.Errorf("%w: %d bytes is shorter than any recognized header",
			ErrTruncatedHeader, len(data))
	}

	declared, order, bo, err := probeByteOrder(data)
	if err != nil {
		return nil, err
	}

	if len(data) < declared {
		return nil, fmt.Errorf("%w: header declares %d bytes, stream holds %d",
			ErrTruncatedHeader, declared, len(data))
	}

	switch declared {
	case nifti1HeaderSize:
		return decodeNIfTI1(data[:nifti1HeaderSize], order, bo)
	default:
		return decodeNIfTI2(data[:nifti2HeaderSize], order, bo)
	}
}

// probeByteOrder reads the sizeof_hdr field under both endiannesses and
// selects whichever yields a canonical size. The valid range of the field is
// known a priori, which is what makes the probe sound.
func probeByteOrder(data []byte) (int, binary.ByteOrder, types.ByteOrder, error) {
	le := int32(binary.LittleEndian.Uint32(data[:4]))
	be := int32(binary.BigEndian.Uint32(data[:4]))

	canonical := func(v int32) bool { return v == nifti1HeaderSize || v == nifti2HeaderSize }

	switch {
	case canonical(le):
		return int(le), binary.LittleEndian, types.LittleEndian, nil
	case canonical(be):
		return int(be), binary.BigEndian, types.BigEndian, nil
	}
	return 0, nil, "", fmt.Errorf("%w: sizeof_hdr is %d little-endian, %d big-endian",
		ErrUnrecognizedHeaderSize, le, be)
}
