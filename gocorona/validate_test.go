package gocorona_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tile-structures/corona.SDK/gocorona"
)

func edgesOf(edges ...gocorona.Edge) []gocorona.Edge {
	return edges
}

func TestValidateAcceptsWellFormedCoronas(t *testing.T) {
	tests := []struct {
		name string
		cor  gocorona.Corona
	}{
		{
			name: "single segment per edge",
			cor: gocorona.Corona{
				Center: 1,
				Edges: edgesOf(
					gocorona.Edge{{Size: 2, Offset: 0}},
					gocorona.Edge{{Size: 3, Offset: 0}},
					gocorona.Edge{{Size: 4, Offset: 0}},
					gocorona.Edge{{Size: 2, Offset: 0}},
				),
			},
		},
		{
			name: "multi segment walk with overhang",
			cor: gocorona.Corona{
				Center: 5,
				Edges: edgesOf(
					gocorona.Edge{{Size: 2, Offset: 0}, {Size: 1, Offset: 2}, {Size: 2, Offset: 3}},
					gocorona.Edge{{Size: 2, Offset: 0}, {Size: 3, Offset: 2}},
					gocorona.Edge{{Size: 4, Offset: 0}, {Size: 2, Offset: 4}},
					gocorona.Edge{{Size: 3, Offset: 0}, {Size: 2, Offset: 3}},
				),
			},
		},
		{
			name: "segment input order is irrelevant",
			cor: gocorona.Corona{
				Center: 5,
				Edges: edgesOf(
					gocorona.Edge{{Size: 2, Offset: 3}, {Size: 1, Offset: 2}, {Size: 2, Offset: 0}},
					gocorona.Edge{{Size: 3, Offset: 2}, {Size: 2, Offset: 0}},
					gocorona.Edge{{Size: 2, Offset: 4}, {Size: 4, Offset: 0}},
					gocorona.Edge{{Size: 2, Offset: 3}, {Size: 3, Offset: 0}},
				),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := tt.cor.Validate(gocorona.DefaultAllowedSizes)
			require.True(t, outcome.IsValid(), "outcome: %s", outcome)
			require.NoError(t, outcome.Err())
		})
	}
}

// coronaWithEdge pads a corona under construction so only the edge under test varies.
func coronaWithEdge(center int, edge gocorona.Edge) gocorona.Corona {
	filler := gocorona.Edge{{Size: center + 1, Offset: 0}}
	return gocorona.Corona{
		Center: center,
		Edges:  edgesOf(edge, filler, filler, filler),
	}
}

func TestValidateRejections(t *testing.T) {
	sizes := gocorona.DefaultAllowedSizes

	tests := []struct {
		name    string
		cor     gocorona.Corona
		reason  gocorona.Reason
		tag     string
		edgeIdx int
	}{
		{
			name:    "zero center",
			cor:     gocorona.Corona{Center: 0, Edges: edgesOf(nil, nil, nil, nil)},
			reason:  gocorona.ReasonCenterInvalid,
			tag:     "center-invalid",
			edgeIdx: -1,
		},
		{
			name:    "negative center",
			cor:     gocorona.Corona{Center: -3, Edges: edgesOf(nil, nil, nil, nil)},
			reason:  gocorona.ReasonCenterInvalid,
			tag:     "center-invalid",
			edgeIdx: -1,
		},
		{
			name: "three edges",
			cor: gocorona.Corona{
				Center: 1,
				Edges: edgesOf(
					gocorona.Edge{{Size: 2, Offset: 0}},
					gocorona.Edge{{Size: 2, Offset: 0}},
					gocorona.Edge{{Size: 2, Offset: 0}},
				),
			},
			reason:  gocorona.ReasonEdgeCountInvalid,
			tag:     "edge-count-invalid",
			edgeIdx: -1,
		},
		{
			name: "empty edge",
			cor: gocorona.Corona{
				Center: 1,
				Edges: edgesOf(
					gocorona.Edge{{Size: 2, Offset: 0}},
					gocorona.Edge{},
					gocorona.Edge{{Size: 2, Offset: 0}},
					gocorona.Edge{{Size: 2, Offset: 0}},
				),
			},
			reason:  gocorona.ReasonEdgeEmpty,
			tag:     "edge-empty",
			edgeIdx: 1,
		},
		{
			name:    "size outside allowed set",
			cor:     coronaWithEdge(2, gocorona.Edge{{Size: 7, Offset: 0}}),
			reason:  gocorona.ReasonSegmentSizeInvalid,
			tag:     "segment-size-invalid",
			edgeIdx: 0,
		},
		{
			name:    "offset beyond center",
			cor:     coronaWithEdge(2, gocorona.Edge{{Size: 1, Offset: 0}, {Size: 2, Offset: 3}}),
			reason:  gocorona.ReasonSegmentOffsetInvalid,
			tag:     "segment-offset-invalid",
			edgeIdx: 0,
		},
		{
			name:    "negative offset",
			cor:     coronaWithEdge(2, gocorona.Edge{{Size: 1, Offset: -1}}),
			reason:  gocorona.ReasonSegmentOffsetInvalid,
			tag:     "segment-offset-invalid",
			edgeIdx: 0,
		},
		{
			name:    "center-sized segment aligned at zero",
			cor:     coronaWithEdge(1, gocorona.Edge{{Size: 1, Offset: 0}}),
			reason:  gocorona.ReasonNotUnilateralAligned,
			tag:     "not-unilateral-aligned",
			edgeIdx: 0,
		},
		{
			name:    "equal adjacent sizes",
			cor:     coronaWithEdge(4, gocorona.Edge{{Size: 2, Offset: 0}, {Size: 2, Offset: 2}}),
			reason:  gocorona.ReasonNotUnilateralAdjacentEqual,
			tag:     "not-unilateral-adjacent-equal",
			edgeIdx: 0,
		},
		{
			name:    "walk starts past zero",
			cor:     coronaWithEdge(3, gocorona.Edge{{Size: 2, Offset: 1}}),
			reason:  gocorona.ReasonEdgeNotStartAtZero,
			tag:     "edge-not-start-at-zero",
			edgeIdx: 0,
		},
		{
			name:    "gap in walk",
			cor:     coronaWithEdge(5, gocorona.Edge{{Size: 2, Offset: 0}, {Size: 1, Offset: 3}}),
			reason:  gocorona.ReasonInvalidWalkGap,
			tag:     "invalid-walk-gap",
			edgeIdx: 0,
		},
		{
			name:    "walk falls short of center",
			cor:     coronaWithEdge(5, gocorona.Edge{{Size: 2, Offset: 0}, {Size: 1, Offset: 2}}),
			reason:  gocorona.ReasonEdgeUndershoot,
			tag:     "edge-undershoot",
			edgeIdx: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := tt.cor.Validate(sizes)
			require.False(t, outcome.IsValid())
			require.Equal(t, tt.reason, outcome.Reason)
			require.Equal(t, tt.tag, outcome.Reason.String())
			require.Equal(t, tt.edgeIdx, outcome.EdgeIndex)
			require.ErrorIs(t, outcome.Err(), gocorona.ErrNotValid)
		})
	}
}

// Validate never panics for well-typed input: sweep a grid of degenerate
// candidates and require a structured outcome for each.
func TestValidateTotality(t *testing.T) {
	segments := []gocorona.Segment{
		{Size: -1, Offset: 0}, {Size: 0, Offset: 0}, {Size: 1, Offset: -5},
		{Size: 1, Offset: 0}, {Size: 9, Offset: 9}, {Size: 4, Offset: 3},
	}
	for center := -1; center <= 3; center++ {
		for _, segA := range segments {
			for _, segB := range segments {
				cor := gocorona.Corona{
					Center: center,
					Edges: edgesOf(
						gocorona.Edge{segA, segB},
						gocorona.Edge{segB},
						gocorona.Edge{segA},
						gocorona.Edge{segB, segA},
					),
				}
				outcome := cor.Validate(gocorona.DefaultAllowedSizes)
				if !outcome.IsValid() {
					require.NotEqual(t, gocorona.ReasonNone, outcome.Reason)
					require.NotEmpty(t, outcome.String())
				}
			}
		}
	}
}
