package sstable

import (
	"bytes"
	"errors"

	"github.com/dreamvrutik/VrootKV/internal/encoding"
	"github.com/dreamvrutik/VrootKV/internal/logging"
)

// DataBlockBuilder assembles a single SSTable data block from
// strictly-increasing (key, value) pairs using restart-point prefix
// compression.
//
// Entry format: (shared u32, non_shared u32, value_len u32,
// key_delta[non_shared], value[value_len]). Every restartInterval'th
// entry is a restart point and stores shared=0 (the full key).
// Trailer: restart_offsets u32[num_restarts]; num_restarts u32.
type DataBlockBuilder struct {
	buffer          []byte
	restarts        []uint32
	lastKey         []byte
	restartInterval int
	counter         int
	finished        bool
}

// ErrAlreadyFinished is returned by Add after Finish has been called.
var ErrAlreadyFinished = errors.New("sstable: add after finish")

// ErrOutOfOrder is returned by Add when key is not strictly greater
// than the previously added key.
var ErrOutOfOrder = errors.New("sstable: keys must be strictly increasing")

// NewDataBlockBuilder creates a builder with the given restart
// interval (entries between full-key restart points). restartInterval
// < 1 is treated as 1.
func NewDataBlockBuilder(restartInterval int) *DataBlockBuilder {
	if restartInterval < 1 {
		restartInterval = 1
	}
	return &DataBlockBuilder{
		restarts:        []uint32{0},
		restartInterval: restartInterval,
	}
}

// Add appends (key, value) to the block. key must be strictly greater
// than the previously added key.
func (b *DataBlockBuilder) Add(key, value []byte) error {
	if b.finished {
		return ErrAlreadyFinished
	}
	if b.lastKey != nil && bytes.Compare(b.lastKey, key) >= 0 {
		return ErrOutOfOrder
	}

	var shared int
	if b.counter < b.restartInterval {
		shared = sharedPrefixLen(b.lastKey, key)
	} else {
		b.restarts = append(b.restarts, uint32(len(b.buffer)))
		b.counter = 0
		shared = 0
	}
	nonShared := len(key) - shared

	b.buffer = encoding.AppendFixed32(b.buffer, uint32(shared))
	b.buffer = encoding.AppendFixed32(b.buffer, uint32(nonShared))
	b.buffer = encoding.AppendFixed32(b.buffer, uint32(len(value)))
	b.buffer = append(b.buffer, key[shared:]...)
	b.buffer = append(b.buffer, value...)

	b.lastKey = append(b.lastKey[:0], key...)
	b.counter++
	return nil
}

// Finish appends the restart trailer and returns the serialized
// block. Finish is idempotent: calling it again after the first call
// returns the identical bytes without re-appending the trailer.
func (b *DataBlockBuilder) Finish() []byte {
	if !b.finished {
		for _, r := range b.restarts {
			b.buffer = encoding.AppendFixed32(b.buffer, r)
		}
		b.buffer = encoding.AppendFixed32(b.buffer, uint32(len(b.restarts)))
		b.finished = true
	}
	return b.buffer
}

// CurrentSize estimates the block's serialized size if Finish were
// called now: the entries plus (len(restarts)+1)*4 trailer bytes, one
// u32 per restart offset and one for num_restarts. Until another Add,
// this equals the length Finish returns.
func (b *DataBlockBuilder) CurrentSize() int {
	return len(b.buffer) + (len(b.restarts)+1)*4
}

func sharedPrefixLen(a, b []byte) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// ErrCorrupt is returned by DataBlockReader/IndexBlockReader when a
// structural invariant of the serialized block is violated (bad
// trailer, non-monotone offsets, a shared-prefix length past the
// previous key's length, or a restart entry with shared != 0).
var ErrCorrupt = errors.New("sstable: corrupt block")

// DataBlockReader parses a block produced by DataBlockBuilder and
// supports point lookups via Get.
type DataBlockReader struct {
	entries  []byte
	restarts []uint32
}

// NewDataBlockReader parses block, validating the trailer up front.
func NewDataBlockReader(block []byte) (*DataBlockReader, error) {
	if len(block) < 4 {
		logger.Errorf("%s data block too small for trailer: %d bytes", logging.NamespaceSSTable, len(block))
		return nil, ErrCorrupt
	}
	numRestarts := encoding.DecodeFixed32(block[len(block)-4:])
	restartBytes := int(numRestarts) * 4
	if len(block) < 4+restartBytes {
		logger.Errorf("%s data block trailer declares %d restarts, too large for %d-byte block", logging.NamespaceSSTable, numRestarts, len(block))
		return nil, ErrCorrupt
	}
	restarts := make([]uint32, numRestarts)
	trailer := block[len(block)-4-restartBytes:]
	for i := range restarts {
		restarts[i] = encoding.DecodeFixed32(trailer[i*4:])
	}
	return &DataBlockReader{
		entries:  block[:len(block)-4-restartBytes],
		restarts: restarts,
	}, nil
}

// decodedEntry describes one entry in the entries region.
type decodedEntry struct {
	shared, nonShared, valueLen uint32
	keyDelta                    []byte
	value                       []byte
	next                        int // offset just past this entry
}

func (r *DataBlockReader) decodeAt(off int) (decodedEntry, bool) {
	if off+12 > len(r.entries) {
		return decodedEntry{}, false
	}
	shared := encoding.DecodeFixed32(r.entries[off:])
	nonShared := encoding.DecodeFixed32(r.entries[off+4:])
	valueLen := encoding.DecodeFixed32(r.entries[off+8:])
	need := 12 + int(nonShared) + int(valueLen)
	if off+need > len(r.entries) {
		return decodedEntry{}, false
	}
	keyDelta := r.entries[off+12 : off+12+int(nonShared)]
	value := r.entries[off+12+int(nonShared) : off+need]
	return decodedEntry{
		shared: shared, nonShared: nonShared, valueLen: valueLen,
		keyDelta: keyDelta, value: value, next: off + need,
	}, true
}

// keyAtRestart decodes the full key stored at a restart offset,
// requiring shared == 0 as the restart-point invariant demands.
func (r *DataBlockReader) keyAtRestart(off uint32) ([]byte, error) {
	e, ok := r.decodeAt(int(off))
	if !ok || e.shared != 0 {
		return nil, ErrCorrupt
	}
	return e.keyDelta, nil
}

// Get looks up key, returning (value, true, nil) on an exact match,
// (nil, false, nil) when key is definitively absent, and a non-nil
// error only on structural corruption.
func (r *DataBlockReader) Get(key []byte) ([]byte, bool, error) {
	if len(r.restarts) == 0 {
		return nil, false, nil
	}

	lo, hi := 0, len(r.restarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		k, err := r.keyAtRestart(r.restarts[mid])
		if err != nil {
			return nil, false, err
		}
		if bytes.Compare(k, key) <= 0 {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	off := int(r.restarts[lo])
	var prevKey []byte
	for off < len(r.entries) {
		if lo+1 < len(r.restarts) && off >= int(r.restarts[lo+1]) {
			break
		}
		e, ok := r.decodeAt(off)
		if !ok {
			return nil, false, ErrCorrupt
		}

		var curKey []byte
		if e.shared == 0 {
			curKey = e.keyDelta
		} else {
			if int(e.shared) > len(prevKey) {
				logger.Errorf("%s shared prefix length %d exceeds previous key length %d", logging.NamespaceSSTable, e.shared, len(prevKey))
				return nil, false, ErrCorrupt
			}
			curKey = append(append([]byte(nil), prevKey[:e.shared]...), e.keyDelta...)
		}

		switch bytes.Compare(curKey, key) {
		case 0:
			return append([]byte(nil), e.value...), true, nil
		case 1:
			return nil, false, nil
		}

		prevKey = curKey
		off = e.next
	}
	return nil, false, nil
}
