/*
 * parity.go, part of molgraph.
 *
 * Copyright 2024 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package stereo

import (
	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/canon"
	"gonum.org/v1/gonum/spatial/r3"
)

//AtomParity reads the parity of atom k from coordinates. The neighbors of k are taken
//by ascending rank, see directionParity for the convention.
func AtomParity(G *chem.Graph, coords map[int]r3.Vec, ranks map[int]int, k int) (chem.Parity, error) {
	nbrs := canon.Sorted(G.Neighbors(k), ranks)
	if len(nbrs) != 3 && len(nbrs) != 4 {
		return chem.NoParity, chem.NewError(chem.ErrUnsupportedStructure, "AtomParity", "atom %d has %d neighbors", k, len(nbrs))
	}
	dirs := make([]r3.Vec, len(nbrs))
	for i, n := range nbrs {
		dirs[i] = r3.Sub(coords[n], coords[k])
	}
	p, ok := directionParity(dirs)
	if !ok {
		return chem.NoParity, chem.NewError(chem.ErrInvalidGraph, "AtomParity", "a neighbor of atom %d shares its position", k)
	}
	return chem.ParityOf(p), nil
}

//BondParity reads the parity of the bond a-b from coordinates: true if the highest ranked
//substituents of a and b are on opposite sides of the bond (trans).
func BondParity(G *chem.Graph, coords map[int]r3.Vec, ranks map[int]int, a, b int) (chem.Parity, error) {
	sa := byRankDesc(without(G.Neighbors(a), b), ranks)
	sb := byRankDesc(without(G.Neighbors(b), a), ranks)
	if len(sa) == 0 || len(sb) == 0 {
		return chem.NoParity, chem.NewError(chem.ErrUnsupportedStructure, "BondParity", "bond %d-%d lacks substituents", a, b)
	}
	axis := r3.Sub(coords[b], coords[a])
	if r3.Norm(axis) == 0 {
		return chem.NoParity, chem.NewError(chem.ErrInvalidGraph, "BondParity", "atoms %d and %d share a position", a, b)
	}
	axis = r3.Unit(axis)
	perp := func(v r3.Vec) r3.Vec {
		return r3.Sub(v, r3.Scale(r3.Dot(v, axis), axis))
	}
	pa := perp(r3.Sub(coords[sa[0]], coords[a]))
	pb := perp(r3.Sub(coords[sb[0]], coords[b]))
	return chem.ParityOf(r3.Dot(pa, pb) < 0), nil
}

//Validate checks that every atom of the structure has a position, and that the parities of all the
//stereocenters of the graph can be read back from the positions.
func Validate(S *Structure) error {
	G := S.Graph
	if len(S.Coords) != G.Len() {
		return chem.NewError(ErrParityMismatch, "Validate", "%d coordinates for %d atoms", len(S.Coords), G.Len())
	}
	for _, k := range G.AtomKeys() {
		if _, ok := S.Coords[k]; !ok {
			return chem.NewError(ErrParityMismatch, "Validate", "atom %d has no position", k)
		}
	}
	for _, k := range G.StereoAtomKeys() {
		a, _ := G.Atom(k)
		p, err := AtomParity(G, S.Coords, S.Ranks, k)
		if err != nil {
			return chem.ErrDecorate(err, "Validate")
		}
		if p != a.Parity {
			return chem.NewError(ErrParityMismatch, "Validate", "atom %d should have parity %s, has %s", k, a.Parity, p)
		}
	}
	for _, bk := range G.StereoBondKeys() {
		b, _ := G.Bond(bk[0], bk[1])
		p, err := BondParity(G, S.Coords, S.Ranks, bk[0], bk[1])
		if err != nil {
			return chem.ErrDecorate(err, "Validate")
		}
		if p != b.Parity {
			return chem.NewError(ErrParityMismatch, "Validate", "bond %v should have parity %s, has %s", bk, b.Parity, p)
		}
	}
	return nil
}
