package bam

import "github.com/grailbio/hts/sam"

var (
	saTag = sam.NewTag("SA")
	xaTag = sam.NewTag("XA")
)

// IsUnmapped returns true if record is unmapped.
func IsUnmapped(record *sam.Record) bool {
	return (record.Flags&sam.Unmapped) != 0 || record.Ref == nil
}

// IsPrimary returns true if record is neither a secondary nor a supplementary
// alignment.
func IsPrimary(record *sam.Record) bool {
	return (record.Flags & (sam.Secondary | sam.Supplementary)) == 0
}

// IsReverse returns true if record is aligned to the reverse strand.
func IsReverse(record *sam.Record) bool {
	return (record.Flags & sam.Reverse) != 0
}

// stringTag returns the value of a Z-typed aux tag, or "" when absent.
func stringTag(record *sam.Record, tag sam.Tag) string {
	aux := record.AuxFields.Get(tag)
	if aux == nil {
		return ""
	}
	s, ok := aux.Value().(string)
	if !ok {
		return ""
	}
	return s
}
