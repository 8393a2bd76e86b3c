package libcorona

import (
	"github.com/alecthomas/participle/v2"
	"github.com/pkg/errors"

	"github.com/tile-structures/corona.SDK/gocorona"
)

type CoronaExpr struct {
	NegCenter bool        `parser:"@\"-\"?"`
	Center    int         `parser:"@Int"`
	Edges     []*EdgeExpr `parser:"(\"|\" @@)*"`
}

type EdgeExpr struct {
	Segments []*SegExpr `parser:"@@ (\",\" @@)*"`
}

type SegExpr struct {
	Size      int  `parser:"@Int \"^\""`
	NegOffset bool `parser:"@\"-\"?"`
	Offset    int  `parser:"@Int"`
}

var parseCoronaExpr = participle.MustBuild[CoronaExpr]()

// ParseCompact decodes the compact notation
//
//	<center>|a^b,c^d|a^b|a^b,c^d|a^b
//
// into a corona. Parsing is purely syntactic: run Corona.Validate separately
// when structural well-formedness is required. Malformed text -- wrong field
// count, a token that is not <size>^<offset>, a non-integer field -- returns
// an error wrapping gocorona.ErrBadEncoding, and no partial corona is produced.
func ParseCompact(s string) (gocorona.Corona, error) {
	expr, err := parseCoronaExpr.ParseString("", s)
	if err != nil {
		return gocorona.Corona{}, errors.Wrapf(gocorona.ErrBadEncoding, "%v", err)
	}
	if len(expr.Edges) != gocorona.EdgesPerCorona {
		return gocorona.Corona{}, errors.Wrapf(gocorona.ErrBadEncoding,
			"expected a center and %d edges, got %d edges", gocorona.EdgesPerCorona, len(expr.Edges))
	}

	center := expr.Center
	if expr.NegCenter {
		center = -center
	}

	cor := gocorona.Corona{
		Center: center,
		Edges:  make([]gocorona.Edge, 0, gocorona.EdgesPerCorona),
	}
	for _, edge := range expr.Edges {
		segs := make(gocorona.Edge, 0, len(edge.Segments))
		for _, seg := range edge.Segments {
			offset := seg.Offset
			if seg.NegOffset {
				offset = -offset
			}
			segs = append(segs, gocorona.Segment{Size: seg.Size, Offset: offset})
		}
		cor.Edges = append(cor.Edges, segs)
	}
	return cor, nil
}
