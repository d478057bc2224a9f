package insertsite

import (
	"context"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/traverse"
	"github.com/grailbio/junction/alignment"
	"github.com/grailbio/junction/cluster"
	"github.com/grailbio/junction/encoding/bam"
	"github.com/grailbio/junction/encoding/fasta"
	"github.com/grailbio/junction/markduplicates"
)

// Library identifies one of the two junction libraries.
type Library int

const (
	// Forward is the library sequenced from the forward junction.
	Forward Library = iota
	// Reverse is the library sequenced from the reverse junction.
	Reverse
	nLibraries
)

func (l Library) String() string {
	if l == Forward {
		return "fwd"
	}
	return "rev"
}

// LibraryResult is the deduplicated cluster set of one library.
type LibraryResult struct {
	Library Library
	// Sets are the duplicate sets in output order.  Each Primary is a
	// retained cluster.
	Sets    []*markduplicates.DuplicateSet
	Metrics LibraryMetrics
}

// Clusters returns the retained clusters.
func (r *LibraryResult) Clusters() []cluster.ReadCluster {
	clusters := make([]cluster.ReadCluster, len(r.Sets))
	for i, s := range r.Sets {
		clusters[i] = s.Primary
	}
	return clusters
}

// Result is the output of one run.
type Result struct {
	InsertName   string
	InsertLength int
	Boundary     Boundary
	Forward      LibraryResult
	Reverse      LibraryResult
}

// Library returns the result of library l.
func (r *Result) Library(l Library) *LibraryResult {
	if l == Forward {
		return &r.Forward
	}
	return &r.Reverse
}

// Process reconciles the primary records of the forward and reverse
// libraries.  It performs no I/O.  An empty library yields an empty
// LibraryResult.
func Process(opts Opts, insertLen int, fwd, rev []alignment.PrimaryRecord) (*Result, error) {
	if err := validate(&opts); err != nil {
		return nil, err
	}
	records := [nLibraries][]alignment.PrimaryRecord{fwd, rev}
	result := &Result{InsertName: opts.InsertName, InsertLength: insertLen}
	result.Forward.Library = Forward
	result.Reverse.Library = Reverse

	var segs [nLibraries][]alignment.Segment
	err := traverse.Each(int(nLibraries), func(i int) error {
		var (
			stats alignment.MergeStats
			err   error
		)
		segs[i], stats, err = alignment.Merge(records[i], opts.Parallelism)
		result.Library(Library(i)).Metrics.Merge = stats
		return err
	})
	if err != nil {
		return nil, err
	}

	est := opts.estimator()
	result.Boundary, err = Resolve(opts.Mode, insertLen, func() (int, bool) {
		all := make([]alignment.Segment, 0, len(segs[Forward])+len(segs[Reverse]))
		all = append(all, segs[Forward]...)
		all = append(all, segs[Reverse]...)
		return est.Estimate(all, opts.InsertName, insertLen)
	})
	if err != nil {
		return nil, err
	}
	log.Printf("insertion boundary on %s: %v", opts.InsertName, result.Boundary)

	clusterOpts := cluster.Opts{
		InsertName:  opts.InsertName,
		Boundary:    result.Boundary.Pos,
		Parallelism: opts.Parallelism,
	}
	err = traverse.Each(int(nLibraries), func(i int) error {
		lib := result.Library(Library(i))
		clusters, err := cluster.Cluster(segs[i], clusterOpts)
		if err != nil {
			return err
		}
		marked := markduplicates.Mark(clusters, markduplicates.Opts{Disabled: !opts.Dedup})
		lib.Sets = marked.Sets
		lib.Metrics.Dedup = marked.Metrics
		for _, s := range marked.Sets {
			switch {
			case s.Primary.BeforePad:
				lib.Metrics.BeforePad++
			case len(s.Primary.OnInsert(opts.InsertName)) > 0:
				lib.Metrics.AfterPad++
			default:
				lib.Metrics.HostOnly++
			}
		}
		log.Printf("%v: %v", lib.Library, lib.Metrics)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Run reads opts.ForwardPath and opts.ReversePath, processes them, and writes
// the requested outputs.
func Run(ctx context.Context, opts Opts) (*Result, error) {
	if err := validateInputs(&opts); err != nil {
		return nil, err
	}
	readOpts := bam.ReadOpts{
		InsertName:  opts.InsertName,
		InsertOnly:  opts.InsertOnly,
		MinMapQ:     opts.MinMapQ,
		Parallelism: opts.Parallelism,
	}
	paths := [nLibraries]string{opts.ForwardPath, opts.ReversePath}
	var inputs [nLibraries]*bam.Input
	err := traverse.Each(int(nLibraries), func(i int) error {
		var err error
		inputs[i], err = bam.ReadPrimary(ctx, paths[i], readOpts)
		return err
	})
	if err != nil {
		return nil, err
	}

	insertLen, err := insertLength(ctx, &opts, inputs[:])
	if err != nil {
		return nil, err
	}
	result, err := Process(opts, insertLen, inputs[Forward].Records, inputs[Reverse].Records)
	if err != nil {
		return nil, err
	}
	for i, in := range inputs {
		result.Library(Library(i)).Metrics.Read = in.Stats
	}

	if opts.OutputPrefix != "" {
		e := errors.Once{}
		_ = traverse.Each(int(nLibraries), func(i int) error {
			lib := result.Library(Library(i))
			e.Set(WriteClusters(ctx, ClustersPath(opts.OutputPrefix, lib.Library, opts.Compress), lib.Sets))
			return nil
		})
		if err := e.Err(); err != nil {
			return nil, err
		}
	}
	if opts.MetricsPath != "" {
		if err := WriteMetrics(ctx, opts.MetricsPath, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// insertLength returns opts.InsertLength if set, else the length of the
// insert from the first input header that has it, else its length in
// opts.InsertFasta.
func insertLength(ctx context.Context, opts *Opts, inputs []*bam.Input) (int, error) {
	if opts.InsertLength > 0 {
		return opts.InsertLength, nil
	}
	for _, in := range inputs {
		if n, ok := in.RefLen(opts.InsertName); ok && n > 0 {
			log.Printf("%s length %d from the header of %s", opts.InsertName, n, in.Path)
			return n, nil
		}
	}
	if opts.InsertFasta != "" {
		n, err := fasta.SeqLen(ctx, opts.InsertFasta, opts.InsertName)
		if err != nil {
			return 0, err
		}
		log.Printf("%s length %d from %s", opts.InsertName, n, opts.InsertFasta)
		return n, nil
	}
	return 0, errors.E(errors.NotExist, "length of insert sequence", opts.InsertName,
		"not found in the alignment headers; set the insert length or an insert FASTA")
}
