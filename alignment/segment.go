package alignment

import (
	"fmt"

	"github.com/grailbio/hts/sam"
)

// Strand is the orientation of a segment on its reference sequence.
type Strand int8

const (
	// StrandUnknown is used once orientation has been stripped.
	StrandUnknown Strand = iota
	StrandForward
	StrandReverse
)

func (s Strand) String() string {
	switch s {
	case StrandForward:
		return "+"
	case StrandReverse:
		return "-"
	}
	return "*"
}

func parseStrand(s string) (Strand, bool) {
	switch s {
	case "+":
		return StrandForward, true
	case "-":
		return StrandReverse, true
	}
	return StrandUnknown, false
}

// Origin tells which part of a primary record a segment was derived from.
type Origin uint8

const (
	Primary Origin = iota
	Supplementary
	Alternative
)

func (o Origin) String() string {
	switch o {
	case Primary:
		return "primary"
	case Supplementary:
		return "supplementary"
	case Alternative:
		return "alternative"
	}
	return fmt.Sprintf("origin(%d)", uint8(o))
}

// Segment is one mapped span of one read.  Start and End are 1-based and
// inclusive, and Start <= End.
type Segment struct {
	ReadID  string
	SeqName string
	Start   int
	End     int
	Strand  Strand
	Cigar   string
	Origin  Origin
}

func (s Segment) String() string {
	return fmt.Sprintf("%s(%s:%d-%d%v,%s,%v)", s.ReadID, s.SeqName, s.Start, s.End, s.Strand, s.Cigar, s.Origin)
}

// PrimaryRecord is the subset of a primary alignment record consumed by
// Merge.  SA and XA hold the raw tag strings, empty when absent.
type PrimaryRecord struct {
	ReadID  string
	SeqName string
	Start   int
	End     int
	Strand  Strand
	Cigar   string
	SA      string
	XA      string
}

// NewPrimaryRecord builds a PrimaryRecord, deriving End from the 1-based
// start position and the CIGAR string.
func NewPrimaryRecord(readID, seqName string, pos int, strand Strand, cigar, sa, xa string) (PrimaryRecord, error) {
	end, ok := spanEnd(pos, cigar)
	if !ok {
		return PrimaryRecord{}, fmt.Errorf("read %s: cannot derive span from pos %d and CIGAR %q", readID, pos, cigar)
	}
	return PrimaryRecord{
		ReadID:  readID,
		SeqName: seqName,
		Start:   pos,
		End:     end,
		Strand:  strand,
		Cigar:   cigar,
		SA:      sa,
		XA:      xa,
	}, nil
}

func (r PrimaryRecord) segment() Segment {
	return Segment{
		ReadID:  r.ReadID,
		SeqName: r.SeqName,
		Start:   r.Start,
		End:     r.End,
		Strand:  r.Strand,
		Cigar:   r.Cigar,
		Origin:  Primary,
	}
}

// spanEnd returns the last reference position covered by an alignment that
// starts at the 1-based pos.  It fails when the CIGAR does not parse or
// consumes no reference bases.
func spanEnd(pos int, cigar string) (int, bool) {
	if pos <= 0 || cigar == "" || cigar == "*" {
		return 0, false
	}
	c, err := sam.ParseCigar([]byte(cigar))
	if err != nil {
		return 0, false
	}
	ref, _ := c.Lengths()
	if ref <= 0 {
		return 0, false
	}
	return pos + ref - 1, true
}
