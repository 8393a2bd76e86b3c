package gocorona

import (
	"sort"
	"strconv"
)

// Segment is one step of an edge walk: a stretch of Size cells starting at Offset.
type Segment struct {
	Size   int
	Offset int
}

// WalkCompare orders segments by (Offset, Size), the order they occur along a walk.
func (seg Segment) WalkCompare(other Segment) int {
	if d := seg.Offset - other.Offset; d != 0 {
		return d
	}
	return seg.Size - other.Size
}

// Edge is the walk along one side of a corona.
// Its identity is the multiset of its segments; input order carries no meaning.
type Edge []Segment

// Sorted returns this edge's segments sorted by (Offset, Size).
// All structural checks, key material, and encodings read this view, never input order.
func (e Edge) Sorted() Edge {
	if len(e) <= 1 {
		return e
	}
	segs := make(Edge, len(e))
	copy(segs, e)
	sort.Slice(segs, func(i, j int) bool {
		return segs[i].WalkCompare(segs[j]) < 0
	})
	return segs
}

// Equal reports whether two edges carry the same multiset of segments.
func (e Edge) Equal(other Edge) bool {
	if len(e) != len(other) {
		return false
	}
	a := e.Sorted()
	b := other.Sorted()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Corona is a center value plus EdgesPerCorona edges in fixed cyclic order.
// The edge order matters only up to rotation -- see CanonicalKey.
type Corona struct {
	Center int
	Edges  []Edge
}

// Equal reports structural equality: same center and, per cyclic position,
// the same segment multiset (no rotation is applied; compare CanonicalKeys for that).
func (c Corona) Equal(other Corona) bool {
	if c.Center != other.Center || len(c.Edges) != len(other.Edges) {
		return false
	}
	for i := range c.Edges {
		if !c.Edges[i].Equal(other.Edges[i]) {
			return false
		}
	}
	return true
}

// AppendCompactTo appends this corona's compact notation:
// "<center>|<edge>|<edge>|<edge>|<edge>", each edge a comma-joined list of
// "<size>^<offset>" tokens with segments emitted in sorted (offset, size) order.
// The emission is deterministic per edge content.
func (c Corona) AppendCompactTo(dst []byte) []byte {
	dst = strconv.AppendInt(dst, int64(c.Center), 10)
	for _, edge := range c.Edges {
		dst = append(dst, '|')
		for si, seg := range edge.Sorted() {
			if si > 0 {
				dst = append(dst, ',')
			}
			dst = strconv.AppendInt(dst, int64(seg.Size), 10)
			dst = append(dst, '^')
			dst = strconv.AppendInt(dst, int64(seg.Offset), 10)
		}
	}
	return dst
}

// CompactString returns this corona's compact notation.
func (c Corona) CompactString() string {
	var buf [96]byte
	return string(c.AppendCompactTo(buf[:0]))
}

func (c Corona) String() string {
	return c.CompactString()
}
