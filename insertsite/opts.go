package insertsite

import (
	"runtime"

	"github.com/pkg/errors"
)

// Opts configures Run and Process.
type Opts struct {
	// ForwardPath and ReversePath are the SAM or BAM files of the two
	// libraries.  Only Run reads them.
	ForwardPath string
	ReversePath string

	// InsertName is the reference name of the inserted element.
	InsertName string
	// InsertLength is the length of the insert sequence.  When zero, Run
	// takes it from the alignment headers, then from InsertFasta.
	InsertLength int
	// InsertFasta optionally names a FASTA file containing InsertName.
	InsertFasta string

	// Mode selects how the insertion boundary is resolved.
	Mode Mode
	// Estimator is used in Automatic mode.
	Estimator Estimator
	// PlotCoverage logs the insert coverage plot of the default estimator.
	PlotCoverage bool

	// Dedup collapses duplicate clusters.  When false every cluster is
	// retained in input order.
	Dedup bool

	// InsertOnly drops primary records that touch neither the insert nor
	// any SA or XA entry on it.
	InsertOnly bool
	// MinMapQ drops primary records with a lower mapping quality.
	MinMapQ int

	// Parallelism bounds the goroutines used by each stage.
	Parallelism int

	// OutputPrefix, when set, makes Run write <prefix>.fwd.tsv and
	// <prefix>.rev.tsv.
	OutputPrefix string
	// Compress gzips the cluster tables, adding a .gz suffix.  The metrics
	// file is compressed when MetricsPath ends in .gz.
	Compress bool
	// MetricsPath, when set, makes Run write the run metrics.
	MetricsPath string
}

// DefaultOpts is the default configuration.
var DefaultOpts = Opts{
	InsertName:  "LTR",
	Mode:        AutomaticMode,
	Dedup:       true,
	Parallelism: runtime.NumCPU(),
}

func (o *Opts) estimator() Estimator {
	if o.Estimator != nil {
		return o.Estimator
	}
	return CoverageEstimator{Plot: o.PlotCoverage}
}

func validate(opts *Opts) error {
	if opts.InsertName == "" {
		return errors.New("the insert sequence name must be set")
	}
	if opts.InsertLength < 0 {
		return errors.Errorf("insert length must not be negative, got %d", opts.InsertLength)
	}
	if opts.MinMapQ < 0 || opts.MinMapQ > 255 {
		return errors.Errorf("min mapping quality must be in [0, 255], got %d", opts.MinMapQ)
	}
	switch opts.Mode.Kind {
	case Automatic, Default, Fixed:
	default:
		return errors.Wrapf(ErrInvalidMode, "%v: must be one of %v, %v, %v",
			opts.Mode.Kind, Automatic, Default, Fixed)
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return nil
}

func validateInputs(opts *Opts) error {
	if opts.ForwardPath == "" {
		return errors.New("the forward library path must be set")
	}
	if opts.ReversePath == "" {
		return errors.New("the reverse library path must be set")
	}
	return validate(opts)
}
