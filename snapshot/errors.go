package snapshot

import "errors"

// ErrSizeMismatch is returned by Restore when the buffer's declared size
// (via its length) does not match the sum of every node's
// SnapshotSizeBytes plus the epoch header. A size mismatch is fatal to
// restore; the engine is left in its pre-restore state.
var ErrSizeMismatch = errors.New("snapshot: buffer size does not match topology")

// ErrChecksumMismatch is returned by VerifyChecksum when the trailing
// CRC32 does not match the recomputed checksum of the payload.
var ErrChecksumMismatch = errors.New("snapshot: checksum mismatch")

// ErrNoChecksum is returned by VerifyChecksum when the snapshot bytes are
// too short to contain a trailing CRC32 (i.e. were produced without one).
var ErrNoChecksum = errors.New("snapshot: no checksum trailer present")
