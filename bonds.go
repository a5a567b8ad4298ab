/*
 * bonds.go, part of molgraph.
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

package chem

import "sort"

//BondKey identifies a bond by the keys of the 2 atoms it joins. The smaller key
//always goes first, use NewBondKey to build one.
type BondKey [2]int

//NewBondKey returns the key for the bond between atoms a and b.
func NewBondKey(a, b int) BondKey {
	if a > b {
		return BondKey{b, a}
	}
	return BondKey{a, b}
}

//Contains returns true if the atom k is one of the ends of the bond.
func (B BondKey) Contains(k int) bool {
	return B[0] == k || B[1] == k
}

//Other returns the atom at the other end of the bond, crossing from k.
//It returns false if k is not in the bond.
func (B BondKey) Other(k int) (int, bool) {
	if B[0] == k {
		return B[1], true
	}
	if B[1] == k {
		return B[0], true
	}
	return -1, false
}

func sortBondKeys(keys []BondKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][0] != keys[j][0] {
			return keys[i][0] < keys[j][0]
		}
		return keys[i][1] < keys[j][1]
	})
}

//Bond contains the attributes of an edge in a molecular graph.
type Bond struct {
	Order  int
	Parity Parity
}

//BondKeys returns the bond keys, sorted by first and then second atom.
func (G *Graph) BondKeys() []BondKey {
	ret := make([]BondKey, 0, len(G.bonds))
	for k := range G.bonds {
		ret = append(ret, k)
	}
	sortBondKeys(ret)
	return ret
}

//Bond returns the bond between atoms a and b, and false if they are not bonded.
func (G *Graph) Bond(a, b int) (Bond, bool) {
	B, ok := G.bonds[NewBondKey(a, b)]
	return B, ok
}

//Bonds returns a copy of the bond map.
func (G *Graph) Bonds() map[BondKey]Bond {
	ret := make(map[BondKey]Bond, len(G.bonds))
	for k, v := range G.bonds {
		ret[k] = v
	}
	return ret
}

//BondedElectrons returns, for atom k, the sum of the orders of its bonds.
func (G *Graph) BondedElectrons(k int) int {
	n := 0
	for b, B := range G.bonds {
		if b.Contains(k) {
			n += B.Order
		}
	}
	return n
}

//AddAtom returns a copy of G with a new atom a, and the key assigned to it,
//which is the largest key in G plus one.
func (G *Graph) AddAtom(a Atom) (*Graph, int) {
	ret := G.copy()
	k := G.MaxKey() + 1
	ret.atoms[k] = a
	return ret, k
}

//AddBond returns a copy of G with a new bond between a and b.
func (G *Graph) AddBond(a, b int, B Bond) (*Graph, error) {
	if a == b {
		return nil, newError(ErrInvalidGraph, "AddBond", "atom %d bonded to itself", a)
	}
	if !G.HasAtom(a) || !G.HasAtom(b) {
		return nil, newError(ErrInvalidGraph, "AddBond", "bond %d-%d references a missing atom", a, b)
	}
	if B.Order < 1 {
		return nil, newError(ErrInvalidGraph, "AddBond", "bond %d-%d has order %d", a, b, B.Order)
	}
	k := NewBondKey(a, b)
	if _, ok := G.bonds[k]; ok {
		return nil, newError(ErrInvalidGraph, "AddBond", "atoms %d and %d are already bonded", a, b)
	}
	ret := G.copy()
	ret.bonds[k] = B
	return ret, nil
}

//SetBondOrder returns a copy of G where the bond a-b has the given order.
//An order of 0 removes the bond.
func (G *Graph) SetBondOrder(a, b, order int) (*Graph, error) {
	k := NewBondKey(a, b)
	B, ok := G.bonds[k]
	if !ok {
		return nil, newError(ErrInvalidGraph, "SetBondOrder", "atoms %d and %d are not bonded", a, b)
	}
	if order < 0 {
		return nil, newError(ErrInvalidGraph, "SetBondOrder", "bond %d-%d can't have order %d", a, b, order)
	}
	ret := G.copy()
	if order == 0 {
		delete(ret.bonds, k)
		return ret, nil
	}
	B.Order = order
	ret.bonds[k] = B
	return ret, nil
}

//WithoutBondOrders returns a copy of G where every bond has order 1, i.e.
//the connectivity graph.
func (G *Graph) WithoutBondOrders() *Graph {
	ret := G.copy()
	for k, b := range ret.bonds {
		b.Order = 1
		ret.bonds[k] = b
	}
	return ret
}

//RemoveAtoms returns a copy of G without the given atoms and their bonds.
func (G *Graph) RemoveAtoms(keys ...int) (*Graph, error) {
	del := make(map[int]bool, len(keys))
	for _, k := range keys {
		if !G.HasAtom(k) {
			return nil, newError(ErrRelabelMismatch, "RemoveAtoms", "atom %d is not in the graph", k)
		}
		del[k] = true
	}
	keep := make([]int, 0, len(G.atoms))
	for k := range G.atoms {
		if !del[k] {
			keep = append(keep, k)
		}
	}
	ret, err := G.Subgraph(keep)
	if err != nil {
		return nil, ErrDecorate(err, "RemoveAtoms")
	}
	return ret, nil
}

//Union returns the disjoint union of G and H. The atoms of G keep their keys, those of H
//are shifted so they don't collide with G's. The returned map takes each key in H
//to its key in the union.
func Union(G, H *Graph) (*Graph, map[int]int) {
	offset := G.MaxKey() + 1
	ret := G.copy()
	mapping := make(map[int]int, len(H.atoms))
	for k, a := range H.atoms {
		mapping[k] = k + offset
		ret.atoms[k+offset] = a
	}
	for k, b := range H.bonds {
		ret.bonds[NewBondKey(k[0]+offset, k[1]+offset)] = b
	}
	return ret, mapping
}
