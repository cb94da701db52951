package sstable

import (
	"bytes"

	"github.com/dreamvrutik/VrootKV/internal/encoding"
	"github.com/dreamvrutik/VrootKV/internal/logging"
)

// IndexBlockBuilder maps strictly-increasing divider keys to
// BlockHandles. Divider keys are the smallest key of the data block
// they route to, so Find(target) identifies the unique block that
// could contain target.
//
// Entry format: (key_len varint32, key[key_len], handle BlockHandle(16)).
// Trailer: entry_offsets u32[num_entries]; num_entries u32.
type IndexBlockBuilder struct {
	buffer  []byte
	offsets []uint32
	lastKey []byte
}

// NewIndexBlockBuilder creates an empty index block builder.
func NewIndexBlockBuilder() *IndexBlockBuilder {
	return &IndexBlockBuilder{}
}

// Add appends a (dividerKey, handle) entry. dividerKey must be
// strictly greater than the previously added divider key.
func (b *IndexBlockBuilder) Add(dividerKey []byte, handle BlockHandle) error {
	if b.lastKey != nil && bytes.Compare(b.lastKey, dividerKey) >= 0 {
		return ErrOutOfOrder
	}
	b.offsets = append(b.offsets, uint32(len(b.buffer)))
	b.buffer = encoding.AppendVarint32(b.buffer, uint32(len(dividerKey)))
	b.buffer = append(b.buffer, dividerKey...)
	b.buffer = handle.Encode(b.buffer)

	b.lastKey = append(b.lastKey[:0], dividerKey...)
	return nil
}

// Finish appends the offset trailer and returns the serialized block.
func (b *IndexBlockBuilder) Finish() []byte {
	for _, off := range b.offsets {
		b.buffer = encoding.AppendFixed32(b.buffer, off)
	}
	b.buffer = encoding.AppendFixed32(b.buffer, uint32(len(b.offsets)))
	return b.buffer
}

// IndexBlockReader parses a block produced by IndexBlockBuilder and
// routes lookups via Find.
type IndexBlockReader struct {
	entries []byte
	offsets []uint32
}

// NewIndexBlockReader parses block, validating the trailer and that
// every offset lies within the entries region and is non-decreasing.
func NewIndexBlockReader(block []byte) (*IndexBlockReader, error) {
	if len(block) < 4 {
		logger.Errorf("%s index block too small for trailer: %d bytes", logging.NamespaceSSTable, len(block))
		return nil, ErrCorrupt
	}
	num := encoding.DecodeFixed32(block[len(block)-4:])
	offBytes := int(num) * 4
	if len(block) < 4+offBytes {
		logger.Errorf("%s index block trailer declares %d entries, too large for %d-byte block", logging.NamespaceSSTable, num, len(block))
		return nil, ErrCorrupt
	}
	entries := block[:len(block)-4-offBytes]
	trailer := block[len(block)-4-offBytes:]
	offsets := make([]uint32, num)
	var prev uint32
	for i := range offsets {
		o := encoding.DecodeFixed32(trailer[i*4:])
		if i > 0 && o < prev {
			logger.Errorf("%s index offsets not non-decreasing at entry %d", logging.NamespaceSSTable, i)
			return nil, ErrCorrupt
		}
		if int(o) > len(entries) {
			logger.Errorf("%s index offset %d out of bounds for %d-byte entries region", logging.NamespaceSSTable, o, len(entries))
			return nil, ErrCorrupt
		}
		offsets[i] = o
		prev = o
	}
	return &IndexBlockReader{entries: entries, offsets: offsets}, nil
}

// keyHandleAt decodes the divider key (and, if wantHandle, the
// BlockHandle) stored at offsets[idx].
func (r *IndexBlockReader) keyHandleAt(idx int, wantHandle bool) ([]byte, BlockHandle, error) {
	off := int(r.offsets[idx])
	if off > len(r.entries) {
		return nil, BlockHandle{}, ErrCorrupt
	}
	rest := r.entries[off:]
	klen, n, err := encoding.DecodeVarint32(rest)
	if err != nil {
		return nil, BlockHandle{}, ErrCorrupt
	}
	rest = rest[n:]
	if len(rest) < int(klen)+BlockHandleLength {
		return nil, BlockHandle{}, ErrCorrupt
	}
	key := rest[:klen]
	var handle BlockHandle
	if wantHandle {
		handle, _, err = DecodeBlockHandle(rest[klen:])
		if err != nil {
			return nil, BlockHandle{}, ErrCorrupt
		}
	}
	return key, handle, nil
}

// Find performs a binary search for the largest index whose divider
// key is <= target, returning its BlockHandle. It returns
// (BlockHandle{}, false, nil) when target is smaller than every divider key
// ("before first"); a non-nil error indicates structural corruption.
func (r *IndexBlockReader) Find(target []byte) (BlockHandle, bool, error) {
	if len(r.offsets) == 0 {
		return BlockHandle{}, false, nil
	}

	lo, hi := 0, len(r.offsets)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		k, _, err := r.keyHandleAt(mid, false)
		if err != nil {
			return BlockHandle{}, false, err
		}
		if bytes.Compare(k, target) <= 0 {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	key, handle, err := r.keyHandleAt(lo, true)
	if err != nil {
		return BlockHandle{}, false, err
	}
	if bytes.Compare(key, target) > 0 {
		return BlockHandle{}, false, nil
	}
	return handle, true, nil
}
