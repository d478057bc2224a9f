package markduplicates

import (
	"fmt"
	"strings"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/junction/cluster"
)

// locus is the part of an interval compared for duplicate detection.
type locus struct {
	seqName string
	start   int
}

// duplicateKey is a unique key for each group of duplicates.  loci follow the
// interval order of the cluster.
type duplicateKey struct {
	loci      []locus
	beforePad bool
}

func newDuplicateKey(c *cluster.ReadCluster) duplicateKey {
	k := duplicateKey{
		loci:      make([]locus, len(c.Intervals)),
		beforePad: c.BeforePad,
	}
	for i, iv := range c.Intervals {
		k.loci[i] = locus{iv.SeqName, iv.Start}
	}
	return k
}

func (k duplicateKey) String() string {
	parts := make([]string, len(k.loci))
	for i, l := range k.loci {
		parts[i] = fmt.Sprintf("%s:%d", l.seqName, l.start)
	}
	return fmt.Sprintf("(%s,%v)", strings.Join(parts, ","), k.beforePad)
}

func (k duplicateKey) compare(k2 duplicateKey) int {
	for i := 0; i < len(k.loci) && i < len(k2.loci); i++ {
		a, b := k.loci[i], k2.loci[i]
		if a.seqName != b.seqName {
			if a.seqName < b.seqName {
				return -1
			}
			return 1
		}
		if diff := a.start - b.start; diff != 0 {
			return diff
		}
	}
	if diff := len(k.loci) - len(k2.loci); diff != 0 {
		return diff
	}
	if k.beforePad == k2.beforePad {
		return 0
	}
	if !k.beforePad {
		return -1
	}
	return 1
}

// Compare compares two duplicate sets by key for use in llrb.
func (s *DuplicateSet) Compare(c llrb.Comparable) int {
	return s.key.compare(c.(*DuplicateSet).key)
}
