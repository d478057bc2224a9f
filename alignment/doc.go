/*Package alignment turns primary alignment records and their secondary
  alignment annotations into flat AlignmentSegment values.

  Each primary record may carry two tag strings describing further placements
  of the same read:

    SA:Z  supplementary alignments, "rname,pos,strand,CIGAR,mapQ,NM;" per entry
    XA:Z  alternative hits, "chr,<+|->pos,CIGAR,NM;" per entry

  Entries that do not parse as complete tuples are dropped and counted, never
  reported as errors.  The primary span plus all decoded spans form the
  segment table consumed by package cluster.
*/
package alignment
