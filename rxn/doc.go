/*Package rxn finds the atoms involved in a reaction, given the graphs of its reactants
and products. Three classes are recognized: hydrogen abstractions (QH + R -> Q + RH),
additions (X + Y -> XY, and their reverse, beta-scissions) and hydrogen migrations
(R -> P, a hydrogen moving within one molecule).

Each site search returns the matching atom keys, false if the species are not
related by that class of reaction, or an error if a graph is not valid.
When several combinations of sites match, the lexicographically smallest tuple of keys
is returned. The All* functions return every matching tuple, in ascending order.
*/
package rxn
