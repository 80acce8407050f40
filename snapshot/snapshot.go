package snapshot

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"

	"github.com/katalvlaran/stabilize/engine"
	"github.com/katalvlaran/stabilize/node"
	"github.com/katalvlaran/stabilize/topology"
)

// GraphSnapshot is an immutable, pre-sized capture of an engine's state:
// the epoch as a big-endian u64 followed by each snapshotable node's
// payload in topological order.
type GraphSnapshot struct {
	buf []byte
}

// Bytes returns the snapshot's wire-format payload (without a checksum
// trailer). The returned slice must not be mutated.
func (s *GraphSnapshot) Bytes() []byte { return s.buf }

// Epoch reports the epoch captured in this snapshot's header.
func (s *GraphSnapshot) Epoch() uint64 {
	return binary.BigEndian.Uint64(s.buf[0:8])
}

// Checksum computes the CRC32 (IEEE polynomial) of the snapshot payload.
func (s *GraphSnapshot) Checksum() uint32 {
	return crc32.ChecksumIEEE(s.buf)
}

// BytesWithChecksum appends a trailing big-endian CRC32 to Bytes(), for
// callers that want an extra integrity check beyond the exact-size
// validation Restore already performs.
func (s *GraphSnapshot) BytesWithChecksum() []byte {
	sum := s.Checksum()
	out := make([]byte, len(s.buf)+4)
	copy(out, s.buf)
	binary.BigEndian.PutUint32(out[len(s.buf):], sum)
	return out
}

// VerifyChecksum validates a trailing CRC32 appended by
// BytesWithChecksum and returns the payload beneath it (suitable for
// passing to Restore). It returns ErrNoChecksum if buf is too short to
// carry a trailer, or ErrChecksumMismatch if the trailer does not match.
func VerifyChecksum(buf []byte) ([]byte, error) {
	if len(buf) < 4 {
		return nil, ErrNoChecksum
	}
	payload := buf[:len(buf)-4]
	want := binary.BigEndian.Uint32(buf[len(buf)-4:])
	if crc32.ChecksumIEEE(payload) != want {
		return nil, ErrChecksumMismatch
	}
	return payload, nil
}

// snapshotableNodes returns, in topoIndex order, every node in topo that
// implements node.Snapshotable.
func snapshotableNodes(topo *topology.Topology) []struct {
	index int
	node  node.Snapshotable
} {
	n := topo.NodeCount()
	out := make([]struct {
		index int
		node  node.Snapshotable
	}, 0, n)
	for i := 0; i < n; i++ {
		if sn, ok := topo.Node(i).(node.Snapshotable); ok {
			out = append(out, struct {
				index int
				node  node.Snapshotable
			}{i, sn})
		}
	}
	return out
}

// Capture pre-sizes a buffer as 8 + Σ snapshotSizeBytes() and writes the
// engine's epoch followed by each snapshotable node's bytes, in
// topological order.
func Capture(eng *engine.Engine, topo *topology.Topology) (*GraphSnapshot, error) {
	snaps := snapshotableNodes(topo)
	total := 8
	for _, s := range snaps {
		total += s.node.SnapshotSizeBytes()
	}

	buf := make([]byte, total)
	binary.BigEndian.PutUint64(buf[0:8], eng.Epoch())

	offset := 8
	for _, s := range snaps {
		written, err := s.node.SnapshotTo(buf, offset)
		if err != nil {
			return nil, fmt.Errorf("snapshot: capturing node at topoIndex %d: %w", s.index, err)
		}
		offset += written
	}
	return &GraphSnapshot{buf: buf}, nil
}

// Restore reads epoch then each snapshotable node's state from buf, in
// the same topological order Capture used, and marks every restored node
// dirty so the next Stabilize call flushes the restored state through
// the graph. A size mismatch is fatal and returns ErrSizeMismatch without
// mutating any node.
func Restore(buf []byte, topo *topology.Topology, eng *engine.Engine) error {
	snaps := snapshotableNodes(topo)
	expected := 8
	for _, s := range snaps {
		expected += s.node.SnapshotSizeBytes()
	}
	if len(buf) != expected {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrSizeMismatch, len(buf), expected)
	}

	epoch := binary.BigEndian.Uint64(buf[0:8])
	offset := 8
	for _, s := range snaps {
		read, err := s.node.RestoreFrom(buf, offset)
		if err != nil {
			return fmt.Errorf("snapshot: restoring node at topoIndex %d: %w", s.index, err)
		}
		offset += read
		if err := eng.MarkDirty(s.index); err != nil {
			return fmt.Errorf("snapshot: marking topoIndex %d dirty: %w", s.index, err)
		}
	}
	eng.RestoreEpoch(epoch)
	return nil
}
