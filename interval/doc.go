/*Package interval implements interval-union operations on the spans of a
  single reference sequence.
  (Note the 'union'.  Overlapping and abutting spans are merged, not tracked
  separately.)
  Coordinates are 1-based and inclusive, matching SAM POS; internally a union
  is kept as a flat endpoint sequence of half-open [start, end+1) pairs.
*/
package interval
