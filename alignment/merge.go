package alignment

import (
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
)

// MergeStats counts what Merge saw and produced.
type MergeStats struct {
	Records   int
	Segments  int
	DroppedSA int // malformed SA entries
	DroppedXA int // malformed XA entries
	SAEntries int // well-formed SA entries
	XAEntries int // well-formed XA entries
}

// Add accumulates o into s.
func (s *MergeStats) Add(o MergeStats) {
	s.Records += o.Records
	s.Segments += o.Segments
	s.DroppedSA += o.DroppedSA
	s.DroppedXA += o.DroppedXA
	s.SAEntries += o.SAEntries
	s.XAEntries += o.XAEntries
}

// Segments returns the primary segment of r followed by the segments decoded
// from its SA and XA tags.
func Segments(r PrimaryRecord) ([]Segment, MergeStats) {
	segs := []Segment{r.segment()}
	stats := MergeStats{Records: 1}
	if r.SA != "" {
		sa, dropped := DecodeSA(r.ReadID, r.SA)
		if dropped > 0 {
			log.Debug.Printf("read %s: dropped %d malformed SA entries from %q", r.ReadID, dropped, r.SA)
		}
		segs = append(segs, sa...)
		stats.SAEntries += len(sa)
		stats.DroppedSA += dropped
	}
	if r.XA != "" {
		xa, dropped := DecodeXA(r.ReadID, r.XA)
		if dropped > 0 {
			log.Debug.Printf("read %s: dropped %d malformed XA entries from %q", r.ReadID, dropped, r.XA)
		}
		segs = append(segs, xa...)
		stats.XAEntries += len(xa)
		stats.DroppedXA += dropped
	}
	stats.Segments = len(segs)
	return segs, stats
}

// Merge builds the segment table of one library: the union of every record's
// primary segment and its decoded SA and XA segments.  Records are decoded in
// up to parallelism shards; the output keeps the input record order.
func Merge(records []PrimaryRecord, parallelism int) ([]Segment, MergeStats, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	nRecords := len(records)
	if nRecords == 0 {
		return nil, MergeStats{}, nil
	}
	if parallelism > nRecords {
		parallelism = nRecords
	}
	shardSegs := make([][]Segment, parallelism)
	shardStats := make([]MergeStats, parallelism)
	err := traverse.Each(parallelism, func(jobIdx int) error {
		startIdx := (jobIdx * nRecords) / parallelism
		endIdx := ((jobIdx + 1) * nRecords) / parallelism
		var segs []Segment
		var stats MergeStats
		for _, r := range records[startIdx:endIdx] {
			s, st := Segments(r)
			segs = append(segs, s...)
			stats.Add(st)
		}
		shardSegs[jobIdx] = segs
		shardStats[jobIdx] = stats
		return nil
	})
	if err != nil {
		return nil, MergeStats{}, err
	}
	var stats MergeStats
	n := 0
	for i := range shardSegs {
		n += len(shardSegs[i])
		stats.Add(shardStats[i])
	}
	merged := make([]Segment, 0, n)
	for _, segs := range shardSegs {
		merged = append(merged, segs...)
	}
	return merged, stats, nil
}
