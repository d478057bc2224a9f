package insertsite

import (
	"fmt"

	"github.com/grailbio/junction/alignment"
	"github.com/grailbio/junction/encoding/bam"
	"github.com/grailbio/junction/markduplicates"
)

// LibraryMetrics summarizes the processing of one library.
type LibraryMetrics struct {
	// Read is filled only by Run.
	Read  bam.ReadStats
	Merge alignment.MergeStats
	Dedup markduplicates.Metrics

	// Classification of the retained clusters.
	BeforePad int // an insert interval starts before the boundary
	AfterPad  int // on the insert, but no interval starts before the boundary
	HostOnly  int // no interval on the insert
}

func (m LibraryMetrics) String() string {
	return fmt.Sprintf("records: %d, segments: %d, dropped SA/XA: %d/%d, clusters: %d, duplicates: %d (%.2f%%), retained: %d, before/after pad: %d/%d, host only: %d",
		m.Merge.Records, m.Merge.Segments, m.Merge.DroppedSA, m.Merge.DroppedXA,
		m.Dedup.Clusters, m.Dedup.Duplicates, m.Dedup.PercentDuplication(), m.Dedup.Retained,
		m.BeforePad, m.AfterPad, m.HostOnly)
}
