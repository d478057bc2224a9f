package insertsite

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/junction/alignment"
	"github.com/grailbio/junction/cluster"
	"github.com/grailbio/testutil"
	"github.com/grailbio/testutil/assert"
	"github.com/grailbio/testutil/expect"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func newRecord(t *testing.T, readID, seqName string, pos int, cigar, sa string) alignment.PrimaryRecord {
	r, err := alignment.NewPrimaryRecord(readID, seqName, pos, alignment.StrandForward, cigar, sa, "")
	require.NoError(t, err)
	return r
}

func testOpts(mode Mode) Opts {
	opts := DefaultOpts
	opts.Mode = mode
	opts.Parallelism = 2
	return opts
}

// forward holds two duplicates (r1, r2) and two unique reads.
func forward(t *testing.T) []alignment.PrimaryRecord {
	return []alignment.PrimaryRecord{
		newRecord(t, "r2", "chr1", 100, "50M", ""),
		newRecord(t, "r1", "chr1", 100, "50M", ""),
		newRecord(t, "r3", "chr2", 10, "50M", ""),
		newRecord(t, "r4", "chr1", 1000, "20S30M", "LTR,20,+,30M20S,60,0;"),
	}
}

func reverse(t *testing.T) []alignment.PrimaryRecord {
	return []alignment.PrimaryRecord{
		newRecord(t, "r9", "LTR", 400, "100M", ""),
	}
}

func TestProcess(t *testing.T) {
	r, err := Process(testOpts(DefaultMode), 600, forward(t), reverse(t))
	assert.NoError(t, err)
	expect.EQ(t, r.Boundary, Boundary{Pos: 300, Requested: DefaultMode, Source: Default})

	fwd := r.Library(Forward)
	expect.EQ(t, fwd.Library, Forward)
	expect.EQ(t, fwd.Clusters(), []cluster.ReadCluster{
		{ReadID: "r4", Intervals: []cluster.Interval{{SeqName: "LTR", Start: 20, End: 49}, {SeqName: "chr1", Start: 1000, End: 1029}}, BeforePad: true},
		{ReadID: "r1", Intervals: []cluster.Interval{{SeqName: "chr1", Start: 100, End: 149}}},
		{ReadID: "r3", Intervals: []cluster.Interval{{SeqName: "chr2", Start: 10, End: 59}}},
	})
	expect.EQ(t, fwd.Sets[1].Duplicates, []string{"r2"})
	expect.EQ(t, fwd.Metrics.Merge, alignment.MergeStats{Records: 4, Segments: 5, SAEntries: 1})
	expect.EQ(t, fwd.Metrics.Dedup.Clusters, 4)
	expect.EQ(t, fwd.Metrics.Dedup.Duplicates, 1)
	expect.EQ(t, fwd.Metrics.Dedup.Retained, 3)
	expect.EQ(t, fwd.Metrics.BeforePad, 1)
	expect.EQ(t, fwd.Metrics.AfterPad, 0)
	expect.EQ(t, fwd.Metrics.HostOnly, 2)

	rev := r.Library(Reverse)
	expect.EQ(t, rev.Clusters(), []cluster.ReadCluster{
		{ReadID: "r9", Intervals: []cluster.Interval{{SeqName: "LTR", Start: 400, End: 499}}},
	})
	expect.EQ(t, rev.Metrics.AfterPad, 1)
}

func TestProcessNoDedup(t *testing.T) {
	opts := testOpts(DefaultMode)
	opts.Dedup = false
	r, err := Process(opts, 600, forward(t), nil)
	assert.NoError(t, err)
	ids := []string{}
	for _, c := range r.Forward.Clusters() {
		ids = append(ids, c.ReadID)
	}
	expect.EQ(t, ids, []string{"r1", "r2", "r3", "r4"})
	expect.EQ(t, r.Forward.Metrics.Dedup.Duplicates, 0)
	expect.EQ(t, len(r.Reverse.Sets), 0)
}

func TestProcessAutomatic(t *testing.T) {
	// Insert coverage 20-49 and 400-499 leaves 50-399 uncovered.
	r, err := Process(testOpts(AutomaticMode), 600, forward(t), reverse(t))
	assert.NoError(t, err)
	expect.EQ(t, r.Boundary, Boundary{Pos: 225, Requested: AutomaticMode, Source: Automatic})
	expect.True(t, r.Forward.Sets[0].Primary.BeforePad)
	expect.False(t, r.Reverse.Sets[0].Primary.BeforePad)

	// Automatic with no interior gap falls back to the default boundary.
	r, err = Process(testOpts(AutomaticMode), 600, nil, reverse(t))
	assert.NoError(t, err)
	expect.EQ(t, r.Boundary, Boundary{Pos: 300, Requested: AutomaticMode, Source: Default})
}

type fixedEstimator int

func (e fixedEstimator) Estimate([]alignment.Segment, string, int) (int, bool) {
	return int(e), true
}

func TestProcessEstimator(t *testing.T) {
	opts := testOpts(AutomaticMode)
	opts.Estimator = fixedEstimator(500)
	r, err := Process(opts, 600, nil, reverse(t))
	assert.NoError(t, err)
	expect.EQ(t, r.Boundary.Pos, 500)
	expect.True(t, r.Reverse.Sets[0].Primary.BeforePad)
}

func TestProcessEmpty(t *testing.T) {
	r, err := Process(testOpts(DefaultMode), 600, nil, nil)
	assert.NoError(t, err)
	expect.EQ(t, len(r.Forward.Sets), 0)
	expect.EQ(t, len(r.Reverse.Sets), 0)
	expect.EQ(t, r.Forward.Metrics, LibraryMetrics{})
}

func TestProcessErrors(t *testing.T) {
	_, err := Process(testOpts(FixedMode(601)), 600, forward(t), reverse(t))
	expect.EQ(t, errors.Cause(err), ErrInvalidBoundary)
	_, err = Process(testOpts(FixedMode(0)), 600, forward(t), reverse(t))
	expect.EQ(t, errors.Cause(err), ErrInvalidBoundary)
	_, err = Process(testOpts(Mode{}), 600, forward(t), reverse(t))
	expect.EQ(t, errors.Cause(err), ErrInvalidMode)

	opts := testOpts(DefaultMode)
	opts.InsertName = ""
	_, err = Process(opts, 600, forward(t), reverse(t))
	expect.NotNil(t, err)
}

func TestWriteClusters(t *testing.T) {
	r, err := Process(testOpts(DefaultMode), 600, forward(t), reverse(t))
	assert.NoError(t, err)
	var buf bytes.Buffer
	assert.NoError(t, writeClusters(&buf, r.Forward.Sets))
	expect.EQ(t, buf.String(), "#READ_ID\tSEQUENCE\tSTART\tEND\tBEFORE_PAD\tDUPLICATES\n"+
		"r4\tLTR\t20\t49\ttrue\t0\n"+
		"r4\tchr1\t1000\t1029\ttrue\t0\n"+
		"r1\tchr1\t100\t149\tfalse\t1\n"+
		"r3\tchr2\t10\t59\tfalse\t0\n")
}

const samHeader = `@HD	VN:1.3
@SQ	SN:chr1	LN:10000
@SQ	SN:chr2	LN:10000
@SQ	SN:LTR	LN:600
`

const fwdSAM = samHeader +
	`r2	0	chr1	100	60	50M	*	0	0	*	*
r1	0	chr1	100	60	50M	*	0	0	*	*
r3	0	chr2	10	60	50M	*	0	0	*	*
r4	0	chr1	1000	60	20S30M	*	0	0	*	*	SA:Z:LTR,20,+,30M20S,60,0;
r4	2048	LTR	20	60	30M20H	*	0	0	*	*	SA:Z:chr1,1000,+,20S30M,60,0;
`

const revSAM = samHeader +
	`r9	0	LTR	400	60	100M	*	0	0	*	*
r10	4	*	0	0	*	*	0	0	*	*
`

func TestRun(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	opts := testOpts(DefaultMode)
	opts.ForwardPath = filepath.Join(tempDir, "fwd.sam")
	opts.ReversePath = filepath.Join(tempDir, "rev.sam")
	opts.OutputPrefix = filepath.Join(tempDir, "out")
	opts.MetricsPath = filepath.Join(tempDir, "metrics.tsv")
	require.NoError(t, ioutil.WriteFile(opts.ForwardPath, []byte(fwdSAM), 0644))
	require.NoError(t, ioutil.WriteFile(opts.ReversePath, []byte(revSAM), 0644))

	r, err := Run(ctx, opts)
	assert.NoError(t, err)
	expect.EQ(t, r.InsertLength, 600)
	expect.EQ(t, r.Boundary.Pos, 300)
	expect.EQ(t, r.Forward.Metrics.Read.Records, 5)
	expect.EQ(t, r.Forward.Metrics.Read.NonPrimary, 1)
	expect.EQ(t, r.Reverse.Metrics.Read.Unmapped, 1)
	expect.EQ(t, len(r.Forward.Sets), 3)

	got, err := ioutil.ReadFile(ClustersPath(opts.OutputPrefix, Reverse, false))
	assert.NoError(t, err)
	expect.EQ(t, string(got), "#READ_ID\tSEQUENCE\tSTART\tEND\tBEFORE_PAD\tDUPLICATES\n"+
		"r9\tLTR\t400\t499\tfalse\t0\n")
	got, err = ioutil.ReadFile(ClustersPath(opts.OutputPrefix, Forward, false))
	assert.NoError(t, err)
	assert.HasSubstr(t, string(got), "r1\tchr1\t100\t149\tfalse\t1\n")

	got, err = ioutil.ReadFile(opts.MetricsPath)
	assert.NoError(t, err)
	assert.HasSubstr(t, string(got), "#LIBRARY\tINPUT_RECORDS\t")
	assert.HasSubstr(t, string(got),
		"fwd\t5\t4\t5\t1\t0\t0\t0\t4\t1\t1\t3\t1\t0\t2\tLTR\t600\t300\tdefault\tdefault\n")
	assert.HasSubstr(t, string(got),
		"rev\t2\t1\t1\t0\t0\t0\t0\t1\t0\t0\t1\t0\t1\t0\tLTR\t600\t300\tdefault\tdefault\n")
}

func TestRunCompressed(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	opts := testOpts(DefaultMode)
	opts.ForwardPath = filepath.Join(tempDir, "fwd.sam")
	opts.ReversePath = filepath.Join(tempDir, "rev.sam")
	opts.OutputPrefix = filepath.Join(tempDir, "out")
	opts.Compress = true
	require.NoError(t, ioutil.WriteFile(opts.ForwardPath, []byte(fwdSAM), 0644))
	require.NoError(t, ioutil.WriteFile(opts.ReversePath, []byte(revSAM), 0644))
	_, err := Run(ctx, opts)
	assert.NoError(t, err)

	path := ClustersPath(opts.OutputPrefix, Reverse, true)
	expect.EQ(t, filepath.Base(path), "out.rev.tsv.gz")
	f, err := os.Open(path)
	assert.NoError(t, err)
	defer f.Close() // nolint: errcheck
	gz, err := gzip.NewReader(f)
	assert.NoError(t, err)
	got, err := ioutil.ReadAll(gz)
	assert.NoError(t, err)
	expect.EQ(t, string(got), "#READ_ID\tSEQUENCE\tSTART\tEND\tBEFORE_PAD\tDUPLICATES\n"+
		"r9\tLTR\t400\t499\tfalse\t0\n")
}

func TestRunInsertLength(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	ctx := vcontext.Background()

	const header = "@HD\tVN:1.3\n@SQ\tSN:chr1\tLN:10000\n"
	opts := testOpts(DefaultMode)
	opts.ForwardPath = filepath.Join(tempDir, "fwd.sam")
	opts.ReversePath = filepath.Join(tempDir, "rev.sam")
	require.NoError(t, ioutil.WriteFile(opts.ForwardPath,
		[]byte(header+"r1\t0\tchr1\t100\t60\t50M\t*\t0\t0\t*\t*\n"), 0644))
	require.NoError(t, ioutil.WriteFile(opts.ReversePath, []byte(header), 0644))

	// The headers do not name the insert.
	_, err := Run(ctx, opts)
	assert.HasSubstr(t, err.Error(), "LTR")

	opts.InsertFasta = filepath.Join(tempDir, "insert.fa")
	require.NoError(t, ioutil.WriteFile(opts.InsertFasta, []byte(">LTR\nACGTACGTAC\nACG\n"), 0644))
	r, err := Run(ctx, opts)
	assert.NoError(t, err)
	expect.EQ(t, r.InsertLength, 13)
	expect.EQ(t, r.Boundary.Pos, 7)

	opts.InsertLength = 40
	r, err = Run(ctx, opts)
	assert.NoError(t, err)
	expect.EQ(t, r.Boundary.Pos, 20)

	opts.ReversePath = ""
	_, err = Run(ctx, opts)
	expect.NotNil(t, err)
}
