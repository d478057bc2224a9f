// Package cluster reduces the segment table of a library to one ReadCluster
// per read: the minimal covering intervals of the read on each reference
// sequence, and whether the read touches the insert before its boundary.
package cluster

import (
	"fmt"
	"sort"
	"strings"

	"github.com/grailbio/base/traverse"
	"github.com/grailbio/junction/alignment"
	"github.com/grailbio/junction/interval"
)

// Interval is a merged span of one read on one reference sequence.  Start and
// End are 1-based and inclusive.
type Interval struct {
	SeqName string
	Start   int
	End     int
}

func (iv Interval) String() string {
	return fmt.Sprintf("%s:%d-%d", iv.SeqName, iv.Start, iv.End)
}

// ReadCluster is the reduced form of all segments of one read.
type ReadCluster struct {
	ReadID string
	// Intervals are disjoint, ordered by sequence name then start.
	Intervals []Interval
	// BeforePad is true when an interval on the insert sequence starts
	// strictly before the insertion boundary.
	BeforePad bool
}

func (c ReadCluster) String() string {
	parts := make([]string, len(c.Intervals))
	for i, iv := range c.Intervals {
		parts[i] = iv.String()
	}
	return fmt.Sprintf("%s[%s]before=%v", c.ReadID, strings.Join(parts, ","), c.BeforePad)
}

// Opts defines how segments are clustered.
type Opts struct {
	// InsertName is the reference name of the inserted element.
	InsertName string
	// Boundary is the insertion-centre coordinate on the insert sequence.
	Boundary int
	// Parallelism bounds the number of concurrent clustering shards.
	Parallelism int
}

// Group partitions segments by read id.  Each read's segments keep their
// input order.  Read ids are returned sorted.
func Group(segs []alignment.Segment) (map[string][]alignment.Segment, []string) {
	byRead := make(map[string][]alignment.Segment)
	var ids []string
	for _, s := range segs {
		if _, ok := byRead[s.ReadID]; !ok {
			ids = append(ids, s.ReadID)
		}
		byRead[s.ReadID] = append(byRead[s.ReadID], s)
	}
	sort.Strings(ids)
	return byRead, ids
}

// stripStrand drops orientation from segs; only spans matter from here on.
func stripStrand(segs []alignment.Segment) []alignment.Segment {
	stripped := make([]alignment.Segment, len(segs))
	for i, s := range segs {
		s.Strand = alignment.StrandUnknown
		stripped[i] = s
	}
	return stripped
}

// Build reduces the segments of one read to its ReadCluster.  Segments on the
// same sequence are merged when they overlap or abut; the strand of a segment
// is ignored.
func Build(readID string, segs []alignment.Segment, insertName string, boundary int) ReadCluster {
	spans := make(map[string][]interval.Span)
	var names []string
	for _, s := range stripStrand(segs) {
		if _, ok := spans[s.SeqName]; !ok {
			names = append(names, s.SeqName)
		}
		spans[s.SeqName] = append(spans[s.SeqName], interval.Span{Start: s.Start, End: s.End})
	}
	sort.Strings(names)

	c := ReadCluster{ReadID: readID}
	for _, name := range names {
		for _, u := range interval.Union(spans[name]) {
			c.Intervals = append(c.Intervals, Interval{SeqName: name, Start: u.Start, End: u.End})
			if name == insertName && u.Start < boundary {
				c.BeforePad = true
			}
		}
	}
	return c
}

// Cluster builds the ReadCluster of every read in segs.  All segments of a
// read are collected before that read is clustered; distinct reads are
// clustered concurrently.  The result is ordered by read id.
func Cluster(segs []alignment.Segment, opts Opts) ([]ReadCluster, error) {
	byRead, ids := Group(segs)
	nReads := len(ids)
	if nReads == 0 {
		return nil, nil
	}
	parallelism := opts.Parallelism
	if parallelism < 1 {
		parallelism = 1
	}
	if parallelism > nReads {
		parallelism = nReads
	}
	clusters := make([]ReadCluster, nReads)
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * nReads) / parallelism
		endIdx := ((jobIdx + 1) * nReads) / parallelism
		for i := startIdx; i < endIdx; i++ {
			clusters[i] = Build(ids[i], byRead[ids[i]], opts.InsertName, opts.Boundary)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return clusters, nil
}

// OnInsert returns the intervals of c that lie on the insert sequence.
func (c ReadCluster) OnInsert(insertName string) []Interval {
	var ivs []Interval
	for _, iv := range c.Intervals {
		if iv.SeqName == insertName {
			ivs = append(ivs, iv)
		}
	}
	return ivs
}
