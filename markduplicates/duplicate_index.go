package markduplicates

import (
	"sort"

	"github.com/biogo/store/llrb"
	"github.com/grailbio/base/log"
	"github.com/grailbio/junction/cluster"
)

// DuplicateSet is one group of clusters that represent the same fragment.
type DuplicateSet struct {
	// Primary is the retained cluster, the one with the lowest read id.
	Primary cluster.ReadCluster
	// Duplicates lists the read ids of the removed clusters, sorted.
	Duplicates []string

	key duplicateKey
}

// Size returns the number of clusters in the set, including the primary.
func (s *DuplicateSet) Size() int {
	return 1 + len(s.Duplicates)
}

// add puts c into the set, making it the primary if its read id is lower.
func (s *DuplicateSet) add(c cluster.ReadCluster) {
	if c.ReadID < s.Primary.ReadID {
		s.Duplicates = append(s.Duplicates, s.Primary.ReadID)
		s.Primary = c
	} else {
		s.Duplicates = append(s.Duplicates, c.ReadID)
	}
}

// Opts for duplicate removal.
type Opts struct {
	// Disabled leaves every cluster in a set of its own.
	Disabled bool
}

// Result is the deduplicated form of one library.
type Result struct {
	Sets    []*DuplicateSet
	Metrics Metrics
}

// Primaries returns the retained cluster of every set, in set order.
func (r *Result) Primaries() []cluster.ReadCluster {
	p := make([]cluster.ReadCluster, len(r.Sets))
	for i, s := range r.Sets {
		p[i] = s.Primary
	}
	return p
}

// duplicateIndex groups clusters by duplicate key.
type duplicateIndex struct {
	byKey llrb.Tree // byKey maps a duplicateKey to its *DuplicateSet.
}

func (idx *duplicateIndex) insert(c cluster.ReadCluster) {
	q := &DuplicateSet{key: newDuplicateKey(&c)}
	if found := idx.byKey.Get(q); found != nil {
		set := found.(*DuplicateSet)
		log.Debug.Printf("read %s duplicates key %v", c.ReadID, set.key)
		set.add(c)
		return
	}
	q.Primary = c
	idx.byKey.Insert(q)
}

func (idx *duplicateIndex) sets() []*DuplicateSet {
	sets := make([]*DuplicateSet, 0, idx.byKey.Len())
	idx.byKey.Do(func(c llrb.Comparable) bool {
		s := c.(*DuplicateSet)
		sort.Strings(s.Duplicates)
		sets = append(sets, s)
		return false
	})
	return sets
}

// Mark groups clusters into duplicate sets.  The input must hold every
// cluster of the library, since a duplicate decision depends on the whole
// set.  The input slice is not modified.
func Mark(clusters []cluster.ReadCluster, opts Opts) *Result {
	r := &Result{}
	if opts.Disabled {
		r.Sets = make([]*DuplicateSet, len(clusters))
		for i, c := range clusters {
			r.Sets[i] = &DuplicateSet{Primary: c, key: newDuplicateKey(&c)}
		}
	} else {
		idx := duplicateIndex{}
		for _, c := range clusters {
			idx.insert(c)
		}
		r.Sets = idx.sets()
	}
	r.Metrics = newMetrics(r.Sets)
	return r
}
