package markduplicates

import "fmt"

// Metrics contains metrics from duplicate removal.
type Metrics struct {
	// Clusters is the number of read clusters examined.
	Clusters int

	// DuplicateSets is the number of sets with more than one cluster.
	DuplicateSets int

	// Duplicates is the number of clusters removed as duplicates.
	Duplicates int

	// Retained is the number of clusters kept, one per set.
	Retained int
}

func newMetrics(sets []*DuplicateSet) Metrics {
	m := Metrics{Retained: len(sets)}
	for _, s := range sets {
		m.Clusters += s.Size()
		m.Duplicates += len(s.Duplicates)
		if len(s.Duplicates) > 0 {
			m.DuplicateSets++
		}
	}
	return m
}

// PercentDuplication returns the share of examined clusters that were
// removed, in percent.
func (m *Metrics) PercentDuplication() float64 {
	if m.Clusters == 0 {
		return 0
	}
	return 100 * float64(m.Duplicates) / float64(m.Clusters)
}

// String returns a tab-separated representation of m.
func (m *Metrics) String() string {
	return fmt.Sprintf("%d\t%d\t%d\t%d\t%0.6f", m.Clusters, m.DuplicateSets, m.Duplicates,
		m.Retained, m.PercentDuplication())
}
