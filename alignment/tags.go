package alignment

import (
	"strconv"
	"strings"
)

const (
	entrySep = ";"
	fieldSep = ","

	saFields = 6 // rname,pos,strand,CIGAR,mapQ,NM
	xaFields = 5 // chr,strand,pos,CIGAR,NM once the sign is split off
)

// xaSignSplitter puts a field separator after the strand sign that XA glues
// onto the position.  Sequence names never contain commas, so a sign can only
// follow the separator that ends the name.
var xaSignSplitter = strings.NewReplacer(fieldSep+"+", fieldSep+"+"+fieldSep, fieldSep+"-", fieldSep+"-"+fieldSep)

// DecodeSA parses an SA:Z tag value into supplementary segments of readID.
// It returns the segments and the number of malformed entries dropped.
// Empty entries, such as the one after a trailing ';', are not counted.
func DecodeSA(readID, tag string) (segs []Segment, dropped int) {
	for _, entry := range strings.Split(tag, entrySep) {
		if entry == "" {
			continue
		}
		seg, ok := decodeSAEntry(readID, entry)
		if !ok {
			dropped++
			continue
		}
		segs = append(segs, seg)
	}
	return segs, dropped
}

func decodeSAEntry(readID, entry string) (Segment, bool) {
	f := strings.Split(entry, fieldSep)
	if len(f) != saFields || hasEmpty(f) {
		return Segment{}, false
	}
	pos, err := strconv.Atoi(f[1])
	if err != nil {
		return Segment{}, false
	}
	strand, ok := parseStrand(f[2])
	if !ok {
		return Segment{}, false
	}
	if !isCount(f[4]) || !isCount(f[5]) {
		return Segment{}, false
	}
	end, ok := spanEnd(pos, f[3])
	if !ok {
		return Segment{}, false
	}
	return Segment{
		ReadID:  readID,
		SeqName: f[0],
		Start:   pos,
		End:     end,
		Strand:  strand,
		Cigar:   f[3],
		Origin:  Supplementary,
	}, true
}

// DecodeXA parses an XA:Z tag value into alternative segments of readID.
// It returns the segments and the number of malformed entries dropped.
func DecodeXA(readID, tag string) (segs []Segment, dropped int) {
	for _, entry := range strings.Split(tag, entrySep) {
		if entry == "" {
			continue
		}
		seg, ok := decodeXAEntry(readID, entry)
		if !ok {
			dropped++
			continue
		}
		segs = append(segs, seg)
	}
	return segs, dropped
}

func decodeXAEntry(readID, entry string) (Segment, bool) {
	f := strings.Split(xaSignSplitter.Replace(entry), fieldSep)
	if len(f) != xaFields || hasEmpty(f) {
		return Segment{}, false
	}
	strand, ok := parseStrand(f[1])
	if !ok {
		return Segment{}, false
	}
	pos, err := strconv.Atoi(f[2])
	if err != nil {
		return Segment{}, false
	}
	if !isCount(f[4]) {
		return Segment{}, false
	}
	end, ok := spanEnd(pos, f[3])
	if !ok {
		return Segment{}, false
	}
	return Segment{
		ReadID:  readID,
		SeqName: f[0],
		Start:   pos,
		End:     end,
		Strand:  strand,
		Cigar:   f[3],
		Origin:  Alternative,
	}, true
}

func hasEmpty(fields []string) bool {
	for _, f := range fields {
		if f == "" {
			return true
		}
	}
	return false
}

// isCount reports whether s is a non-negative decimal integer, as mapQ and
// NM must be.
func isCount(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0
}
