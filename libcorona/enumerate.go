package libcorona

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/tile-structures/corona.SDK/gocorona"
)

// EdgeGenerator produces the candidate edges for one side of a corona.
// It is the only center-dependent step of the enumeration search and can be
// swapped without touching validation or canonicalization.
type EdgeGenerator func(center int, sizes gocorona.AllowedSizes) []gocorona.Edge

// Enumerate returns the structurally valid coronas for the given center,
// deduplicated up to cyclic rotation of their four edges, in first-seen order.
func Enumerate(center int) ([]gocorona.Corona, error) {
	return EnumerateWith(center, gocorona.DefaultAllowedSizes, GenerateEdgeWalks)
}

// EnumerateWith runs the enumeration search with an explicit size set and edge
// generator. A malformed center or size set is surfaced as an error rather
// than silently filtering everything to an empty result.
func EnumerateWith(center int, sizes gocorona.AllowedSizes, genEdges EdgeGenerator) ([]gocorona.Corona, error) {
	if center <= 0 || center > gocorona.MaxCenter {
		return nil, errors.Wrapf(gocorona.ErrBadCenter, "got %d", center)
	}
	if err := sizes.CheckValid(); err != nil {
		return nil, err
	}
	if genEdges == nil {
		genEdges = GenerateEdgeWalks
	}

	cands := genEdges(center, sizes)

	seen := NewCoronaSet()
	var unique []gocorona.Corona

	// Cartesian product of 4 independent edge choices, last edge index varying
	// fastest. Candidates are validated as full coronas: a rejection filters
	// the combination out, it never fails the run.
	for _, e0 := range cands {
		for _, e1 := range cands {
			for _, e2 := range cands {
				for _, e3 := range cands {
					cor := gocorona.Corona{
						Center: center,
						Edges:  []gocorona.Edge{e0, e1, e2, e3},
					}
					if !cor.Validate(sizes).IsValid() {
						continue
					}
					if seen.TryAddCorona(cor) {
						unique = append(unique, cor)
					}
				}
			}
		}
	}

	return unique, nil
}

// EnumerateStream exposes Enumerate's results as a corona stream.
func EnumerateStream(center int) (*gocorona.CoronaStream, error) {
	unique, err := Enumerate(center)
	if err != nil {
		return nil, err
	}

	stream := gocorona.NewCoronaStream()
	go func() {
		for _, c := range unique {
			stream.Outlet <- c
		}
		stream.Close()
	}()
	return stream, nil
}

// GenerateEdgeWalks is the default EdgeGenerator: every walk from offset 0
// whose extent reaches at least center, with sizes drawn from the allowed set,
// no two adjacent segments of equal size, no center-sized segment at offset 0,
// and every offset within [0, center]. A walk at exactly the center extent may
// still be extended, so overhanging walks are produced too.
//
// The search uses an explicit stack, visiting smaller sizes first, so the
// output order is deterministic. For center 1 and the default size set this
// yields exactly the single-segment edges (2,0), (3,0), (4,0).
func GenerateEdgeWalks(center int, sizes gocorona.AllowedSizes) []gocorona.Edge {
	ordered := make([]int, 0, len(sizes))
	for _, si := range sizes {
		if si > 0 {
			ordered = append(ordered, si)
		}
	}
	sort.Ints(ordered)
	ordered = dropRepeats(ordered)

	type walkStep struct {
		segs gocorona.Edge
		end  int // running extent == next segment's offset
	}

	var walks []gocorona.Edge

	stack := []walkStep{{end: 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if top.end >= center && len(top.segs) > 0 {
			walks = append(walks, top.segs)
		}
		if top.end > center {
			continue // next offset would fall outside [0, center]
		}

		lastSize := 0
		if n := len(top.segs); n > 0 {
			lastSize = top.segs[n-1].Size
		}

		// Push larger sizes first so smaller ones pop first.
		for i := len(ordered) - 1; i >= 0; i-- {
			size := ordered[i]
			if size == lastSize {
				continue
			}
			if size == center && top.end == 0 {
				continue
			}
			next := make(gocorona.Edge, len(top.segs), len(top.segs)+1)
			copy(next, top.segs)
			next = append(next, gocorona.Segment{Size: size, Offset: top.end})
			stack = append(stack, walkStep{segs: next, end: top.end + size})
		}
	}

	return walks
}

func dropRepeats(sorted []int) []int {
	out := sorted[:0]
	for i, si := range sorted {
		if i == 0 || si != sorted[i-1] {
			out = append(out, si)
		}
	}
	return out
}
