package bam

import (
	"reflect"
	"runtime"
	"testing"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/junction/alignment"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// getFunctionName returns the runtime function name.
func getFunctionName(i interface{}) string {
	return runtime.FuncForPC(reflect.ValueOf(i).Pointer()).Name()
}

func TestFlagParser(t *testing.T) {
	// Define tests.
	tests := []struct {
		flag sam.Flags
		f    func(record *sam.Record) bool
		want bool
	}{
		// Test true behavior.
		{sam.Unmapped, IsUnmapped, true},
		{sam.Reverse, IsReverse, true},
		{sam.Paired, IsPrimary, true},
		{sam.Reverse | sam.Duplicate, IsPrimary, true},
		// Test false behavior.
		{sam.QCFail, IsUnmapped, false},
		{sam.Read2, IsReverse, false},
		{sam.MateReverse, IsReverse, false},
		{sam.Secondary, IsPrimary, false},
		{sam.Supplementary, IsPrimary, false},
		{sam.Secondary | sam.Supplementary, IsPrimary, false},
	}

	ref, err := sam.NewReference("chrTest", "", "", 1000, nil, nil)
	if err != nil {
		t.Fatal(err)
	}

	for _, test := range tests {
		// Make sam.Record.
		myRecord := sam.Record{
			Name: "TestRead",
			Ref:  ref,
			Pos:  0,
			MapQ: 0,
			Cigar: []sam.CigarOp{
				sam.NewCigarOp(sam.CigarMatch, 5),
			},
			Flags:   sam.Flags(test.flag),
			MateRef: ref,
			MatePos: 0,
			TempLen: 0,
			Seq:     sam.NewSeq([]byte{}),
			Qual:    []byte{},
		}

		got := test.f(&myRecord)

		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("for flag %v and test %v: got %v, want %v", test.flag, getFunctionName(test.f), got, test.want)
		}
	}

	// A record without a reference is unmapped whatever its flags.
	assert.True(t, IsUnmapped(&sam.Record{Name: "NoRef"}))
}

func TestFromRecord(t *testing.T) {
	chr1, err := sam.NewReference("chr1", "", "", 1000, nil, nil)
	require.NoError(t, err)
	sa, err := sam.NewAux(saTag, "LTR,1,+,10S20M,60,0;")
	require.NoError(t, err)
	xa, err := sam.NewAux(xaTag, "chr2,-50,30M,1;")
	require.NoError(t, err)
	nm, err := sam.NewAux(sam.NewTag("NM"), 2)
	require.NoError(t, err)

	cigar := []sam.CigarOp{
		sam.NewCigarOp(sam.CigarSoftClipped, 2),
		sam.NewCigarOp(sam.CigarMatch, 20),
		sam.NewCigarOp(sam.CigarDeletion, 3),
		sam.NewCigarOp(sam.CigarMatch, 8),
	}
	record := &sam.Record{
		Name:      "r1",
		Ref:       chr1,
		Pos:       99,
		Flags:     sam.Reverse,
		Cigar:     cigar,
		AuxFields: sam.AuxFields{nm, sa, xa},
	}
	got, err := FromRecord(record)
	require.NoError(t, err)
	assert.Equal(t, alignment.PrimaryRecord{
		ReadID:  "r1",
		SeqName: "chr1",
		Start:   100,
		End:     130,
		Strand:  alignment.StrandReverse,
		Cigar:   "2S20M3D8M",
		SA:      "LTR,1,+,10S20M,60,0;",
		XA:      "chr2,-50,30M,1;",
	}, got)

	// Tags of a different type read as absent.
	record.AuxFields = sam.AuxFields{nm}
	record.Flags = 0
	got, err = FromRecord(record)
	require.NoError(t, err)
	assert.Equal(t, alignment.StrandForward, got.Strand)
	assert.Equal(t, "", got.SA)
	assert.Equal(t, "", stringTag(record, sam.NewTag("NM")))

	// A CIGAR without reference bases has no span.
	record.Cigar = []sam.CigarOp{sam.NewCigarOp(sam.CigarSoftClipped, 30)}
	_, err = FromRecord(record)
	assert.Error(t, err)
}
