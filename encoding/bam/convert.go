package bam

import (
	"strings"

	"github.com/grailbio/hts/sam"
	"github.com/grailbio/junction/alignment"
)

// FromRecord converts a mapped primary record.  SAM positions are 0-based in
// sam.Record, so the result starts at Pos+1.
func FromRecord(record *sam.Record) (alignment.PrimaryRecord, error) {
	strand := alignment.StrandForward
	if IsReverse(record) {
		strand = alignment.StrandReverse
	}
	return alignment.NewPrimaryRecord(record.Name, record.Ref.Name(), record.Pos+1, strand,
		record.Cigar.String(), stringTag(record, saTag), stringTag(record, xaTag))
}

// TouchesInsert returns true if the primary alignment of record, or any of
// its SA or XA entries, names the insert sequence.
func TouchesInsert(record *sam.Record, insertName string) bool {
	if record.Ref != nil && record.Ref.Name() == insertName {
		return true
	}
	for _, tag := range []sam.Tag{saTag, xaTag} {
		if namesSequence(stringTag(record, tag), insertName) {
			return true
		}
	}
	return false
}

// namesSequence reports whether any ';'-separated entry of a tag value starts
// with the sequence name.
func namesSequence(tag, name string) bool {
	for _, entry := range strings.Split(tag, ";") {
		if i := strings.IndexByte(entry, ','); i >= 0 && entry[:i] == name {
			return true
		}
	}
	return false
}
