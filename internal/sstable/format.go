// Package sstable implements the on-disk SSTable format: the fixed
// BlockHandle/Footer types that stitch a file together, the
// restart-point prefix-compressed data block, and the divider-key
// index block that routes a lookup to the right data block.
//
// Layout of a complete SSTable file:
//
//	[ data block 0 ]
//	[ data block 1 ]
//	...
//	[ data block k ]
//	[ (optional) filter block ]
//	[ index block ]
//	[ footer: 40 bytes ]
//
// All multi-byte integers are little-endian. The footer at
// file_length-40 is the sole entry point: it names the index block's
// (and optionally the filter block's) byte range.
package sstable

import (
	"errors"

	"github.com/dreamvrutik/VrootKV/internal/encoding"
	"github.com/dreamvrutik/VrootKV/internal/logging"
)

// logger narrates corrupt-block diagnoses across the package; defaults
// to silent.
var logger logging.Logger = logging.NopLogger{}

// SetLogger installs l as the logger used for corruption diagnostics.
// Passing nil restores the silent default.
func SetLogger(l logging.Logger) {
	logger = logging.OrDefault(l)
}

// FooterMagic is the fixed sentinel at the end of every SSTable footer.
const FooterMagic uint64 = 0xF00DBAADF00DBAAD

// BlockHandleLength is the fixed encoded size of a BlockHandle.
const BlockHandleLength = 16

// FooterLength is the fixed encoded size of a Footer.
const FooterLength = 2*BlockHandleLength + 8

// ErrTruncated is returned when a BlockHandle or Footer is decoded
// from fewer bytes than its fixed encoded length.
var ErrTruncated = errors.New("sstable: truncated buffer")

// ErrBadMagicOrVersion is the error for a footer whose magic does not
// match FooterMagic. DecodeFooter does not return it; callers that
// compare the decoded magic against FooterMagic do.
var ErrBadMagicOrVersion = errors.New("sstable: bad footer magic")

// BlockHandle identifies a contiguous byte range within an SSTable
// file: (offset, size). Invariant: offset+size lies within the file.
type BlockHandle struct {
	Offset uint64
	Size   uint64
}

// Encode appends the 16-byte little-endian encoding of h to dst.
func (h BlockHandle) Encode(dst []byte) []byte {
	dst = encoding.AppendFixed64(dst, h.Offset)
	dst = encoding.AppendFixed64(dst, h.Size)
	return dst
}

// DecodeBlockHandle reads a BlockHandle from the front of b, returning
// the handle and the number of bytes consumed (always BlockHandleLength
// on success).
func DecodeBlockHandle(b []byte) (BlockHandle, int, error) {
	if len(b) < BlockHandleLength {
		return BlockHandle{}, 0, ErrTruncated
	}
	return BlockHandle{
		Offset: encoding.DecodeFixed64(b[0:8]),
		Size:   encoding.DecodeFixed64(b[8:16]),
	}, BlockHandleLength, nil
}

// Footer is the fixed 40-byte tail of every SSTable file.
type Footer struct {
	FilterHandle BlockHandle // may be (0,0) when no filter block is present
	IndexHandle  BlockHandle // always populated
	Magic        uint64
}

// Encode appends the 40-byte encoding of f to dst.
func (f Footer) Encode(dst []byte) []byte {
	dst = f.FilterHandle.Encode(dst)
	dst = f.IndexHandle.Encode(dst)
	dst = encoding.AppendFixed64(dst, f.Magic)
	return dst
}

// DecodeFooter reads a Footer from the front of b, returning the
// footer and bytes consumed (always FooterLength on success). It does
// not itself validate the magic; callers compare against FooterMagic
// (ErrBadMagicOrVersion is provided for that comparison's use).
func DecodeFooter(b []byte) (Footer, int, error) {
	if len(b) < FooterLength {
		return Footer{}, 0, ErrTruncated
	}
	filterHandle, n, err := DecodeBlockHandle(b)
	if err != nil {
		return Footer{}, 0, err
	}
	indexHandle, n2, err := DecodeBlockHandle(b[n:])
	if err != nil {
		return Footer{}, 0, err
	}
	magic := encoding.DecodeFixed64(b[n+n2:])
	return Footer{FilterHandle: filterHandle, IndexHandle: indexHandle, Magic: magic}, FooterLength, nil
}
