package insertsite

import (
	"fmt"

	"github.com/grailbio/base/log"
	"github.com/grailbio/junction/alignment"
	"github.com/grailbio/junction/interval"
	"github.com/guptarohit/asciigraph"
)

// Estimator proposes an insertion boundary from the merged segments of both
// libraries.  It returns false when it cannot make an estimate.
type Estimator interface {
	Estimate(segs []alignment.Segment, insertName string, insertLen int) (int, bool)
}

// CoverageEstimator places the boundary in the middle of the longest run of
// insert bases covered by no segment, counting only runs with coverage on
// both sides.  Junction reads from the two ends of the insert leave its
// middle uncovered.
type CoverageEstimator struct {
	// Plot logs an ASCII plot of the insert coverage.
	Plot bool
}

// Estimate implements Estimator.
func (e CoverageEstimator) Estimate(segs []alignment.Segment, insertName string, insertLen int) (int, bool) {
	if insertLen <= 0 {
		return 0, false
	}
	var spans []interval.Span
	for _, s := range segs {
		if s.SeqName != insertName {
			continue
		}
		span := interval.Span{Start: s.Start, End: s.End}
		if span.Start < 1 {
			span.Start = 1
		}
		if span.End > insertLen {
			span.End = insertLen
		}
		if span.End >= span.Start {
			spans = append(spans, span)
		}
	}
	if e.Plot && len(spans) > 0 {
		log.Printf("%s coverage:\n%s", insertName, plotCoverage(spans, insertName, insertLen))
	}
	gaps := interval.Gaps(interval.Union(spans))
	if len(gaps) == 0 {
		return 0, false
	}
	longest := gaps[0]
	for _, g := range gaps[1:] {
		if g.Len() > longest.Len() {
			longest = g
		}
	}
	log.Debug.Printf("longest uncovered %s run: %v", insertName, longest)
	return (longest.Start + longest.End + 1) / 2, true
}

func plotCoverage(spans []interval.Span, insertName string, insertLen int) string {
	// delta[i] is the coverage change at insert position i+1.
	delta := make([]int, insertLen+1)
	for _, s := range spans {
		delta[s.Start-1]++
		delta[s.End]--
	}
	depth := make([]float64, insertLen)
	d := 0
	for i := range depth {
		d += delta[i]
		depth[i] = float64(d)
	}
	return asciigraph.Plot(depth,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("%s depth, positions 1-%d", insertName, insertLen)))
}
