/*Package markduplicates removes PCR duplicates from the read clusters of one
  library.

  Duplicate Marking Concepts:

  At the conceptual level, two read clusters A and B are duplicates
  (isDuplicate(A, B)) if their:
    1) reference sequence names
    2) interval start positions
    3) insert-boundary classification (before_pad)
  are ALL identical.  Interval end positions are not compared: duplicates of
  one fragment share where the fragment begins, but adapter trimming and
  sequencing errors make their far ends differ.

  Every cluster belongs to exactly one duplicate set.  The primary of a set
  is the cluster with the lowest read id; all others are duplicates.  Since
  the clusters of a set are assumed to carry the same information, the choice
  only needs to be deterministic.

  Implementation:

  Clusters are inserted into an ordered index keyed by their duplicate key,
  so the output lists the sets in genomic order of their leftmost locus.
  Deduplicating the primaries of a previous run yields the same primaries:
  keys are unique after one pass.

  When deduplication is disabled, each cluster forms its own set of size one
  and the input order is kept.
*/
package markduplicates
