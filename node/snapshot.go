package node

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Snapshotable is implemented by nodes that carry state across cycles and
// therefore need to be captured and restored verbatim. Stateless computed
// nodes need not implement it — their values are re-derived by the next
// stabilization after a restore marks everything dirty.
type Snapshotable interface {
	// SnapshotSizeBytes reports the exact number of bytes SnapshotTo will
	// write, so GraphSnapshot can pre-size its buffer.
	SnapshotSizeBytes() int
	// SnapshotTo writes the node's state into buf starting at offset and
	// returns the number of bytes written (always SnapshotSizeBytes()).
	SnapshotTo(buf []byte, offset int) (int, error)
	// RestoreFrom reads the node's state from buf starting at offset and
	// returns the number of bytes consumed (always SnapshotSizeBytes()).
	RestoreFrom(buf []byte, offset int) (int, error)
}

// ErrSnapshotUnderrun indicates buf does not contain enough bytes at
// offset to satisfy a SnapshotTo/RestoreFrom call.
var ErrSnapshotUnderrun = fmt.Errorf("node: snapshot buffer underrun")

// SnapshotSizeBytes implements Snapshotable: one float64.
func (s *ScalarSourceNode) SnapshotSizeBytes() int { return 8 }

// SnapshotTo writes the source's current stabilized value as a
// big-endian IEEE-754 double.
func (s *ScalarSourceNode) SnapshotTo(buf []byte, offset int) (int, error) {
	if offset+8 > len(buf) {
		return 0, ErrSnapshotUnderrun
	}
	binary.BigEndian.PutUint64(buf[offset:], math.Float64bits(s.last))
	return 8, nil
}

// RestoreFrom reads a big-endian IEEE-754 double back into both current
// and last, so the node observes no spurious transition, and arms first
// so the restored value is still reported as changed on the next cycle
// (the engine marks every restored node dirty regardless; this keeps the
// node's own bookkeeping consistent).
func (s *ScalarSourceNode) RestoreFrom(buf []byte, offset int) (int, error) {
	if offset+8 > len(buf) {
		return 0, ErrSnapshotUnderrun
	}
	v := math.Float64frombits(binary.BigEndian.Uint64(buf[offset:]))
	s.current = v
	s.last = v
	s.first = true
	return 8, nil
}

// SnapshotSizeBytes implements Snapshotable: one float64 per element.
func (v *VectorSourceNode) SnapshotSizeBytes() int { return 8 * len(v.last) }

// SnapshotTo writes each stabilized element as a big-endian IEEE-754
// double, in index order.
func (v *VectorSourceNode) SnapshotTo(buf []byte, offset int) (int, error) {
	n := v.SnapshotSizeBytes()
	if offset+n > len(buf) {
		return 0, ErrSnapshotUnderrun
	}
	for i, x := range v.last {
		binary.BigEndian.PutUint64(buf[offset+8*i:], math.Float64bits(x))
	}
	return n, nil
}

// RestoreFrom reads each element back, in index order, and arms first so
// the restored values are reported as changed on the next cycle.
func (v *VectorSourceNode) RestoreFrom(buf []byte, offset int) (int, error) {
	n := v.SnapshotSizeBytes()
	if offset+n > len(buf) {
		return 0, ErrSnapshotUnderrun
	}
	for i := range v.last {
		x := math.Float64frombits(binary.BigEndian.Uint64(buf[offset+8*i:]))
		v.current[i] = x
		v.last[i] = x
	}
	v.first = true
	return n, nil
}
