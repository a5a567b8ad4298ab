/*Package iso finds isomorphisms between molgraph graphs, comparing the
atom attributes (symbol, implicit hydrogens and, optionally, stereo parity) and the bond
attributes (order, optionally ignored, and stereo parity).

The search is a depth-first backtracking in the style of VF2. Atoms of the first graph are
matched in breadth-first order, and the candidates in the second graph are tried in ascending
key order, so for a given pair of graphs the same isomorphism is always returned.
Not finding an isomorphism is not an error: the functions return false.
*/
package iso
