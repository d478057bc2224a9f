package main

/*
  bio-insertsite reconciles the alignments of a forward and a reverse
  junction library against a host+insert hybrid reference into
  deduplicated read clusters, one table per library.  For more
  information, see github.com/grailbio/junction/insertsite/doc.go
*/

import (
	"flag"
	"runtime"
	"strings"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/junction/insertsite"
)

var (
	fwdFile      = flag.String("fwd", "", "Forward library SAM or BAM file. Files ending in .sam are read as text")
	revFile      = flag.String("rev", "", "Reverse library SAM or BAM file")
	outputPrefix = flag.String("output", "", "Output prefix; clusters are written to <prefix>.fwd.tsv and <prefix>.rev.tsv")
	metricsFile  = flag.String("metrics", "", "Output metrics file. Names ending in .gz are gzip compressed")
	compress     = flag.Bool("gzip", false, "gzip the cluster tables")
	insertName   = flag.String("insert-name", insertsite.DefaultOpts.InsertName, "Reference name of the insert sequence in the hybrid reference")
	insertLength = flag.Int("insert-length", 0, "Length of the insert sequence. By default, read from the BAM header, then from -insert-fasta")
	insertFasta  = flag.String("insert-fasta", "", "FASTA file containing the insert sequence")
	centre       = flag.String("insertion-centre", "auto", "Insertion boundary on the insert: 'auto', 'default' (half the insert length), or a 1-based coordinate")
	dedup        = flag.Bool("dedup", insertsite.DefaultOpts.Dedup, "collapse clusters with identical loci and classification")
	insertOnly   = flag.Bool("insert-only", false, "keep only primary records that touch the insert, directly or through SA/XA")
	minMapQ      = flag.Int("min-mapq", 0, "minimum mapping quality of primary records")
	plotCoverage = flag.Bool("plot-coverage", false, "log an ASCII plot of the insert coverage used by -insertion-centre=auto")
	parallelism  = flag.Int("parallelism", runtime.NumCPU(), "Number of parallel computations to run per library")
)

func main() {
	shutdown := grail.Init()
	defer shutdown()

	if flag.NArg() > 0 {
		a := flag.Args()
		log.Fatalf("unparsed flags, please check flag syntax: '%s'", strings.Join(a[len(a)-flag.NArg():], " "))
	}
	if *outputPrefix == "" {
		log.Fatalf("-output must be set")
	}
	mode, err := insertsite.ParseMode(*centre)
	if err != nil {
		log.Fatalf("-insertion-centre: %v", err)
	}

	opts := insertsite.Opts{
		ForwardPath:  *fwdFile,
		ReversePath:  *revFile,
		InsertName:   *insertName,
		InsertLength: *insertLength,
		InsertFasta:  *insertFasta,
		Mode:         mode,
		PlotCoverage: *plotCoverage,
		Dedup:        *dedup,
		InsertOnly:   *insertOnly,
		MinMapQ:      *minMapQ,
		Parallelism:  *parallelism,
		OutputPrefix: *outputPrefix,
		Compress:     *compress,
		MetricsPath:  *metricsFile,
	}

	ctx := vcontext.Background()
	result, err := insertsite.Run(ctx, opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("boundary %v; retained %d forward and %d reverse clusters", result.Boundary,
		result.Forward.Metrics.Dedup.Retained, result.Reverse.Metrics.Dedup.Retained)
	log.Debug.Printf("exiting")
}
