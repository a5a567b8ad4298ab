/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package v3 implements a Matrix type representing a row-major 3D matrix (i.e. a Nx3 matrix).
The v3.Matrix is used to represent the cartesian coordinates of sets of atoms in molgraph.
It is based on gonum's mat.Dense type, with some additional restrictions
because of the fixed number of columns, and some functions that are
useful for placing atoms: single vectors are handled as gonum's r3.Vec, and
rotations are 3x3 Dense matrices applied to the row vectors of a Matrix.

*/
package v3
