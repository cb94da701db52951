/*
Package vrootkv provides the storage-format substrate of an embeddable,
single-node, transactional key-value engine: a write-ahead log record
codec, an SSTable block/index/footer format with prefix-compressed data
blocks and a Bloom filter, and a single-threaded sorted skip-list
memtable.

This package is the storage core, not a database. It does not expose a
transaction manager, MVCC version tracking, compaction, garbage
collection, or a primary index — those are higher layers that consume
the types here. See the package docs under internal/ for the pieces:
internal/encoding, internal/bloom, internal/wal, internal/sstable,
internal/memtable, internal/vfs, internal/logging.

# Durability model

Callers are expected to append WAL frames (internal/wal) through an
internal/vfs.WritableFile and Sync before acknowledging a write.
Recovery replays WAL frames sequentially until EOF or the first
decode failure.

# On-disk compatibility

SSTable bytes produced by internal/sstable are self-describing: the
fixed 40-byte footer at the end of the file points at the index block,
which routes to data blocks, each independently readable given just
its byte range. All multi-byte integers are little-endian regardless
of host byte order.
*/
package vrootkv
