/*
 * hydrogens.go, part of molgraph.
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

//isBackbone returns true for non-hydrogen atoms, and for hydrogens whose neighbors
//are all hydrogens with larger keys (so one atom of an H2-like cluster is the root).
func (G *Graph) isBackbone(k int, nb map[int][]int) bool {
	a := G.atoms[k]
	if a.Symbol != "H" {
		return true
	}
	for _, n := range nb[k] {
		if G.atoms[n].Symbol != "H" || n < k {
			return false
		}
	}
	return true
}

//BackboneKeys returns the keys of the backbone atoms of G, in ascending order.
func (G *Graph) BackboneKeys() []int {
	nb := G.NeighborMap()
	ret := make([]int, 0, len(G.atoms))
	for _, k := range G.AtomKeys() {
		if G.isBackbone(k, nb) {
			ret = append(ret, k)
		}
	}
	return ret
}

//IsBackbone returns true if k is a backbone atom of G.
func (G *Graph) IsBackbone(k int) bool {
	if !G.HasAtom(k) {
		return false
	}
	return G.isBackbone(k, G.NeighborMap())
}

//explicitHydrogens returns the hydrogens that can be folded into each backbone atom:
//non-backbone hydrogens with a single neighbor.
func (G *Graph) explicitHydrogens(nb map[int][]int) map[int][]int {
	ret := make(map[int][]int)
	for k, a := range G.atoms {
		if a.Symbol != "H" || G.isBackbone(k, nb) || len(nb[k]) != 1 {
			continue
		}
		parent := nb[k][0]
		if !G.isBackbone(parent, nb) {
			continue
		}
		ret[parent] = append(ret[parent], k)
	}
	for _, v := range ret {
		sort.Ints(v)
	}
	return ret
}

//ExplicitHydrogens returns the keys of the explicit hydrogens attached to the
//backbone atom k, ascending.
func (G *Graph) ExplicitHydrogens(k int) []int {
	return G.explicitHydrogens(G.NeighborMap())[k]
}

//backboneSelection returns the given keys, or all the backbone keys if none is given,
//and checks that they are all backbone atoms.
func (G *Graph) backboneSelection(caller string, nb map[int][]int, keys []int) ([]int, error) {
	if len(keys) == 0 {
		return G.BackboneKeys(), nil
	}
	for _, k := range keys {
		if !G.HasAtom(k) {
			return nil, newError(ErrInvalidGraph, caller, "atom %d is not in the graph", k)
		}
		if !G.isBackbone(k, nb) {
			return nil, newError(ErrInvalidGraph, caller, "atom %d is not a backbone atom", k)
		}
	}
	ret := append([]int(nil), keys...)
	sort.Ints(ret)
	return ret, nil
}

//Implicit returns a copy of G where the explicit hydrogens of the given backbone atoms
//(of all backbone atoms, if none is given) are removed and added to the implicit hydrogen
//count of the atom they are attached to.
func (G *Graph) Implicit(keys ...int) (*Graph, error) {
	nb := G.NeighborMap()
	sel, err := G.backboneSelection("Implicit", nb, keys)
	if err != nil {
		return nil, err
	}
	exp := G.explicitHydrogens(nb)
	ret := G.copy()
	for _, k := range sel {
		hs := exp[k]
		if len(hs) == 0 {
			continue
		}
		a := ret.atoms[k]
		a.ImplicitH += len(hs)
		ret.atoms[k] = a
		for _, h := range hs {
			delete(ret.atoms, h)
			delete(ret.bonds, NewBondKey(k, h))
		}
	}
	return ret, nil
}

//Explicit returns a copy of G where the implicit hydrogens of the given backbone atoms
//(of all backbone atoms, if none is given) are turned into hydrogen atoms, bonded to
//the atom that held them. The new atoms get keys above the largest key in G, assigned
//in ascending order of their parent atom. Existing keys are kept.
func (G *Graph) Explicit(keys ...int) (*Graph, error) {
	nb := G.NeighborMap()
	sel, err := G.backboneSelection("Explicit", nb, keys)
	if err != nil {
		return nil, err
	}
	ret := G.copy()
	next := G.MaxKey() + 1
	for _, k := range sel {
		a := ret.atoms[k]
		for i := 0; i < a.ImplicitH; i++ {
			ret.atoms[next] = Atom{Symbol: "H"}
			ret.bonds[NewBondKey(k, next)] = Bond{Order: 1}
			next++
		}
		a.ImplicitH = 0
		ret.atoms[k] = a
	}
	return ret, nil
}

//AddHydrogen returns a copy of G with a new, explicit hydrogen atom bonded to k,
//and the key of the new hydrogen.
func (G *Graph) AddHydrogen(k int) (*Graph, int, error) {
	if !G.HasAtom(k) {
		return nil, -1, newError(ErrInvalidGraph, "AddHydrogen", "atom %d is not in the graph", k)
	}
	ret, h := G.AddAtom(Atom{Symbol: "H"})
	ret.bonds[NewBondKey(k, h)] = Bond{Order: 1}
	return ret, h, nil
}
