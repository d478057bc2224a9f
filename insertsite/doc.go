/*Package insertsite reconciles the alignments of a forward and a reverse
  junction library against a hybrid host+insert reference into deduplicated,
  orientation-labelled read clusters.

  For each library independently:

    1) the SA and XA tags of every primary record are decoded and merged with
       the primary span into one segment table (package alignment),
    2) the segments of each read are collapsed into minimal covering
       intervals and flagged before_pad when an insert interval starts before
       the insertion boundary (package cluster),
    3) clusters with identical loci and classification are reduced to one
       representative (package markduplicates).

  The insertion boundary splits the insert sequence into two arms.  It is
  resolved once per run, from both libraries, before clustering starts:

    auto     estimated from the insert coverage; half the insert length
             when no estimate is available
    default  half the insert length, rounded to the nearest integer
    <N>      the fixed coordinate N, 0 < N <= insert length

  The two libraries share nothing but the boundary and are processed
  concurrently.
*/
package insertsite
