/*Package stereo builds 3D coordinates for molgraph graphs, in such a way that the configuration
of every atom and bond stereocenter in the graph can be read back from the coordinates.
The coordinates are not a realistic geometry. They are meant to be handed to programs that
derive structure identifiers from atoms, bonds and positions (see package molfile).

Atoms are placed by a depth-first walk over the graph. At each atom, a small set of reference
points (a stencil) chosen by the role of the atom (plain atom, atom stereocenter or end of a stereo
bond) is rotated so it matches the direction to the atom it was reached from, and the neighbors
that don't have a position yet are placed on it. Positions are never changed once set.

Rings are not supported.
*/
package stereo
