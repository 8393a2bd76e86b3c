package gocorona

import (
	"fmt"

	"github.com/pkg/errors"
)

// Reason identifies which structural invariant a corona candidate violates.
type Reason int32

const (
	ReasonNone Reason = iota
	ReasonCenterInvalid
	ReasonEdgeCountInvalid
	ReasonEdgeEmpty
	ReasonSegmentSizeInvalid
	ReasonSegmentOffsetInvalid
	ReasonNotUnilateralAligned
	ReasonNotUnilateralAdjacentEqual
	ReasonEdgeNotStartAtZero
	ReasonInvalidWalkGap
	ReasonEdgeUndershoot
)

var reasonTags = [...]string{
	ReasonNone:                       "valid",
	ReasonCenterInvalid:              "center-invalid",
	ReasonEdgeCountInvalid:           "edge-count-invalid",
	ReasonEdgeEmpty:                  "edge-empty",
	ReasonSegmentSizeInvalid:         "segment-size-invalid",
	ReasonSegmentOffsetInvalid:       "segment-offset-invalid",
	ReasonNotUnilateralAligned:       "not-unilateral-aligned",
	ReasonNotUnilateralAdjacentEqual: "not-unilateral-adjacent-equal",
	ReasonEdgeNotStartAtZero:         "edge-not-start-at-zero",
	ReasonInvalidWalkGap:             "invalid-walk-gap",
	ReasonEdgeUndershoot:             "edge-undershoot",
}

func (r Reason) String() string {
	if r < 0 || int(r) >= len(reasonTags) {
		return fmt.Sprintf("reason(%d)", int32(r))
	}
	return reasonTags[r]
}

// Outcome reports the result of validating a corona candidate.
//
// EdgeIndex is the offending edge (-1 when the violation is not edge-specific)
// and SegIndex the offending segment within that edge's sorted view (-1 when
// not segment-specific). Both are informational; the pass/fail contract is Reason.
type Outcome struct {
	Reason    Reason
	EdgeIndex int
	SegIndex  int
}

// IsValid reports whether the candidate passed every structural check.
func (o Outcome) IsValid() bool {
	return o.Reason == ReasonNone
}

func (o Outcome) String() string {
	if o.IsValid() {
		return "valid"
	}
	s := o.Reason.String()
	if o.EdgeIndex >= 0 {
		s = fmt.Sprintf("%s at edge %d", s, o.EdgeIndex)
		if o.SegIndex >= 0 {
			s = fmt.Sprintf("%s, segment %d", s, o.SegIndex)
		}
	}
	return s
}

// Err returns nil for a valid outcome, otherwise an error wrapping ErrNotValid.
func (o Outcome) Err() error {
	if o.IsValid() {
		return nil
	}
	return errors.Wrap(ErrNotValid, o.String())
}

var valid = Outcome{Reason: ReasonNone, EdgeIndex: -1, SegIndex: -1}

func invalid(r Reason, edgeIdx, segIdx int) Outcome {
	return Outcome{Reason: r, EdgeIndex: edgeIdx, SegIndex: segIdx}
}

// Validate checks every structural invariant of this corona against the given
// size set, short-circuiting on the first violation. It is pure and total:
// any well-typed candidate yields either a valid Outcome or a tagged rejection,
// never a panic. Edges are checked in cyclic index order over their sorted views,
// so segment input order and duplicates never change the result.
func (c Corona) Validate(sizes AllowedSizes) Outcome {
	if c.Center <= 0 {
		return invalid(ReasonCenterInvalid, -1, -1)
	}
	if len(c.Edges) != EdgesPerCorona {
		return invalid(ReasonEdgeCountInvalid, -1, -1)
	}

	for ei, edge := range c.Edges {
		if len(edge) == 0 {
			return invalid(ReasonEdgeEmpty, ei, -1)
		}
		segs := edge.Sorted()

		for si, seg := range segs {
			if seg.Size <= 0 || !sizes.Contains(seg.Size) {
				return invalid(ReasonSegmentSizeInvalid, ei, si)
			}
			if seg.Offset < 0 || seg.Offset > c.Center {
				return invalid(ReasonSegmentOffsetInvalid, ei, si)
			}
			if seg.Size == c.Center && seg.Offset == 0 {
				return invalid(ReasonNotUnilateralAligned, ei, si)
			}
		}

		for si := 1; si < len(segs); si++ {
			if segs[si-1].Size == segs[si].Size {
				return invalid(ReasonNotUnilateralAdjacentEqual, ei, si)
			}
		}

		if segs[0].Offset != 0 {
			return invalid(ReasonEdgeNotStartAtZero, ei, 0)
		}

		// A real walk: each offset equals the exact running sum, so overlaps
		// and gaps are both rejected here.
		for si := 1; si < len(segs); si++ {
			prev := segs[si-1]
			if segs[si].Offset != prev.Offset+prev.Size {
				return invalid(ReasonInvalidWalkGap, ei, si)
			}
		}

		// Overshoot past the center is permitted, undershoot is not.
		last := segs[len(segs)-1]
		if last.Offset+last.Size < c.Center {
			return invalid(ReasonEdgeUndershoot, ei, len(segs)-1)
		}
	}

	return valid
}
