package interval

import (
	"fmt"
	"sort"
)

// Span is a 1-based closed interval [Start, End] on one reference sequence.
type Span struct {
	Start int
	End   int
}

// Len returns the number of positions covered by s.
func (s Span) Len() int {
	return s.End - s.Start + 1
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// endpoints is a length-2N sequence, where N is the number of disjoint spans.
// The start of span #k is in element [2k] and its half-open limit (End+1) is
// in element [2k+1], in increasing order.
type endpoints []int

func (e endpoints) spans() []Span {
	spans := make([]Span, 0, len(e)/2)
	for i := 0; i < len(e); i += 2 {
		spans = append(spans, Span{Start: e[i], End: e[i+1] - 1})
	}
	return spans
}

// Union returns the minimal sequence of disjoint spans that covers every
// input span, in increasing order.  Two spans merge when they overlap or
// when one ends immediately before the other starts.  Spans with End < Start
// are ignored.  The input is not modified.
func Union(spans []Span) []Span {
	sorted := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.End >= s.Start {
			sorted = append(sorted, s)
		}
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Start != sorted[j].Start {
			return sorted[i].Start < sorted[j].Start
		}
		return sorted[i].End < sorted[j].End
	})
	e := make(endpoints, 0, 2*len(sorted))
	prevStart, prevLimit := sorted[0].Start, sorted[0].End+1
	for _, s := range sorted[1:] {
		if s.Start > prevLimit {
			e = append(e, prevStart, prevLimit)
			prevStart, prevLimit = s.Start, s.End+1
			continue
		}
		if s.End+1 > prevLimit {
			prevLimit = s.End + 1
		}
	}
	e = append(e, prevStart, prevLimit)
	return e.spans()
}

// Contains reports whether pos is covered by u, which must be the output of
// Union.
func Contains(u []Span, pos int) bool {
	i := sort.Search(len(u), func(i int) bool { return u[i].End >= pos })
	return i < len(u) && u[i].Start <= pos
}

// Gaps returns the uncovered runs of u that lie strictly between its first
// and last span.  u must be the output of Union.
func Gaps(u []Span) []Span {
	if len(u) < 2 {
		return nil
	}
	gaps := make([]Span, 0, len(u)-1)
	for i := 1; i < len(u); i++ {
		gaps = append(gaps, Span{Start: u[i-1].End + 1, End: u[i].Start - 1})
	}
	return gaps
}
