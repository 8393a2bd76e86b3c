package gocorona

import "bytes"

// CanonicalKey is an order-preserving binary form of a corona's edge tuple,
// minimized over its cyclic rotations. Two coronas are rotations of each other
// exactly when their keys are equal, which makes the key a dedup and LSM db key.
//
// Each edge contributes its sorted segments as big-endian uint16 (size, offset)
// pairs followed by a double-NUL terminator. Sizes are >= 1, so the terminator
// sorts below any further segment and byte comparison of two keys agrees with
// lexicographic comparison of the nested (size, offset) tuples.
type CanonicalKey []byte

// AppendEdgeKey appends this edge's key material to the given buffer.
func (e Edge) AppendEdgeKey(dst []byte) []byte {
	for _, seg := range e.Sorted() {
		dst = append(dst,
			byte(seg.Size>>8), byte(seg.Size),
			byte(seg.Offset>>8), byte(seg.Offset),
		)
	}
	return append(dst, 0, 0)
}

// CanonicalKey returns the lexicographically smallest of the edge-tuple
// rotations of this corona. Only rotation is considered: a corona and its
// mirror image get distinct keys.
func (c Corona) CanonicalKey() CanonicalKey {
	numEdges := len(c.Edges)
	if numEdges == 0 {
		return nil
	}

	edgeKeys := make([][]byte, numEdges)
	keyLen := 0
	for i, edge := range c.Edges {
		edgeKeys[i] = edge.AppendEdgeKey(nil)
		keyLen += len(edgeKeys[i])
	}

	var best []byte
	for k := 0; k < numEdges; k++ {
		rot := make([]byte, 0, keyLen)
		for i := 0; i < numEdges; i++ {
			rot = append(rot, edgeKeys[(k+i)%numEdges]...)
		}
		if best == nil || bytes.Compare(rot, best) < 0 {
			best = rot
		}
	}
	return best
}

// Equal reports whether two keys denote the same rotation class.
func (key CanonicalKey) Equal(other CanonicalKey) bool {
	return bytes.Equal(key, other)
}

// Compare orders two keys lexicographically.
func (key CanonicalKey) Compare(other CanonicalKey) int {
	return bytes.Compare(key, other)
}
