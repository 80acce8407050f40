// Package snapshot implements GraphSnapshot: capturing and restoring an
// engine's full state as a fixed binary wire format — epoch as a
// big-endian u64 followed by each Snapshotable node's self-sized payload,
// concatenated in topological order.
//
// Grounded on services/trace/dag's checkpoint design (AleutianLocal
// checkpoint.go): a payload plus an integrity check. That package
// checkpoints to JSON with a SHA-256 digest; this wire layout is raw
// big-endian binary with no length prefix or field tags (each node's
// payload size comes from its SnapshotSizeBytes), and the integrity check
// is a trailing CRC32 (hash/crc32) over the whole buffer. The checksum is
// opt-in, not required by Restore.
package snapshot
