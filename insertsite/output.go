package insertsite

import (
	"context"
	"io"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/tsv"
	"github.com/grailbio/junction/markduplicates"
	"github.com/klauspost/compress/gzip"
)

// ClustersPath returns the path of the cluster table of library l.
func ClustersPath(prefix string, l Library, compress bool) string {
	path := prefix + "." + l.String() + ".tsv"
	if compress {
		path += ".gz"
	}
	return path
}

// writeFile creates path and passes its writer to write.  Paths ending in
// .gz are gzip compressed.
func writeFile(ctx context.Context, path string, write func(io.Writer) error) (err error) {
	var dst file.File
	if dst, err = file.Create(ctx, path); err != nil {
		return errors.E(err, "create", path)
	}
	defer file.CloseAndReport(ctx, dst, &err)
	w := dst.Writer(ctx)
	if fileio.DetermineType(path) != fileio.Gzip {
		return write(w)
	}
	gz := gzip.NewWriter(w)
	if err = write(gz); err != nil {
		return err
	}
	return gz.Close()
}

// WriteClusters writes one line per interval of every retained cluster in
// sets to path.
func WriteClusters(ctx context.Context, path string, sets []*markduplicates.DuplicateSet) error {
	return writeFile(ctx, path, func(w io.Writer) error {
		return writeClusters(w, sets)
	})
}

func writeClusters(out io.Writer, sets []*markduplicates.DuplicateSet) error {
	w := tsv.NewWriter(out)
	w.WriteString("#READ_ID\tSEQUENCE\tSTART\tEND\tBEFORE_PAD\tDUPLICATES")
	if err := w.EndLine(); err != nil {
		return err
	}
	for _, s := range sets {
		c := s.Primary
		for _, iv := range c.Intervals {
			w.WriteString(c.ReadID)
			w.WriteString(iv.SeqName)
			w.WriteUint32(uint32(iv.Start))
			w.WriteUint32(uint32(iv.End))
			writeBool(w, c.BeforePad)
			w.WriteUint32(uint32(len(s.Duplicates)))
			if err := w.EndLine(); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

func writeBool(w *tsv.Writer, b bool) {
	if b {
		w.WriteString("true")
	} else {
		w.WriteString("false")
	}
}

// WriteMetrics writes one metrics line per library to path.  The boundary and
// its source are repeated on each line.
func WriteMetrics(ctx context.Context, path string, result *Result) error {
	return writeFile(ctx, path, func(w io.Writer) error {
		return writeMetrics(w, result)
	})
}

func writeMetrics(out io.Writer, result *Result) error {
	w := tsv.NewWriter(out)
	w.WriteString("#LIBRARY\tINPUT_RECORDS\tPRIMARY_RECORDS\tSEGMENTS\tSA_ENTRIES\tSA_DROPPED\tXA_ENTRIES\tXA_DROPPED")
	w.WriteString("CLUSTERS\tDUPLICATE_SETS\tDUPLICATES\tRETAINED\tBEFORE_PAD\tAFTER_PAD\tHOST_ONLY")
	w.WriteString("INSERT\tINSERT_LENGTH\tBOUNDARY\tBOUNDARY_MODE\tBOUNDARY_SOURCE")
	if err := w.EndLine(); err != nil {
		return err
	}
	for l := Forward; l < nLibraries; l++ {
		m := &result.Library(l).Metrics
		w.WriteString(l.String())
		w.WriteUint32(uint32(m.Read.Records))
		w.WriteUint32(uint32(m.Merge.Records))
		w.WriteUint32(uint32(m.Merge.Segments))
		w.WriteUint32(uint32(m.Merge.SAEntries))
		w.WriteUint32(uint32(m.Merge.DroppedSA))
		w.WriteUint32(uint32(m.Merge.XAEntries))
		w.WriteUint32(uint32(m.Merge.DroppedXA))
		w.WriteUint32(uint32(m.Dedup.Clusters))
		w.WriteUint32(uint32(m.Dedup.DuplicateSets))
		w.WriteUint32(uint32(m.Dedup.Duplicates))
		w.WriteUint32(uint32(m.Dedup.Retained))
		w.WriteUint32(uint32(m.BeforePad))
		w.WriteUint32(uint32(m.AfterPad))
		w.WriteUint32(uint32(m.HostOnly))
		w.WriteString(result.InsertName)
		w.WriteUint32(uint32(result.InsertLength))
		w.WriteUint32(uint32(result.Boundary.Pos))
		w.WriteString(result.Boundary.Requested.String())
		w.WriteString(result.Boundary.Source.String())
		if err := w.EndLine(); err != nil {
			return err
		}
	}
	return w.Flush()
}
