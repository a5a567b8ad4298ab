/*
 * chem.go, part of molgraph.
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

import (
	"fmt"
	"sort"
	"strings"
)

/**Note: Graphs are immutable. Every function that "changes" a graph returns a new one
 * and leaves the receiver untouched, so graphs can be shared freely between the
 * resonance, isomorphism and coordinate code.**/

//Parity encodes the configuration of a stereocenter. The zero value means
//that the atom or bond is not a stereocenter.
type Parity int8

const (
	NoParity Parity = iota
	ParityFalse
	ParityTrue
)

//ParityOf returns the defined parity corresponding to b.
func ParityOf(b bool) Parity {
	if b {
		return ParityTrue
	}
	return ParityFalse
}

//Defined returns true if P marks a stereocenter.
func (P Parity) Defined() bool {
	return P != NoParity
}

//Bool returns the boolean value of a defined parity. It panics on NoParity,
//asking for it is a programming error.
func (P Parity) Bool() bool {
	switch P {
	case ParityTrue:
		return true
	case ParityFalse:
		return false
	}
	panic("Bool: parity is not defined")
}

//Flip returns the opposite parity. NoParity stays NoParity.
func (P Parity) Flip() Parity {
	switch P {
	case ParityTrue:
		return ParityFalse
	case ParityFalse:
		return ParityTrue
	}
	return NoParity
}

func (P Parity) String() string {
	switch P {
	case ParityTrue:
		return "true"
	case ParityFalse:
		return "false"
	}
	return "none"
}

//Atom contains the attributes of a node in a molecular graph.
type Atom struct {
	Symbol    string
	ImplicitH int //hydrogens folded into this atom
	Parity    Parity
}

//Graph is a molecule represented as an attributed graph. Atom keys are
//arbitrary non-negative integers, they don't need to be dense.
type Graph struct {
	atoms map[int]Atom
	bonds map[BondKey]Bond
}

//NewGraph builds a graph from the given atoms and bonds, after checking
//that every bond joins 2 different atoms present in the graph, that bond orders
//are positive and that implicit hydrogen counts are not negative. The maps are copied.
//Valences are not checked here, see RadicalElectrons.
func NewGraph(atoms map[int]Atom, bonds map[BondKey]Bond) (*Graph, error) {
	G := &Graph{atoms: make(map[int]Atom, len(atoms)), bonds: make(map[BondKey]Bond, len(bonds))}
	for k, a := range atoms {
		if k < 0 {
			return nil, newError(ErrInvalidGraph, "NewGraph", "negative atom key %d", k)
		}
		if a.ImplicitH < 0 {
			return nil, newError(ErrInvalidGraph, "NewGraph", "atom %d has %d implicit hydrogens", k, a.ImplicitH)
		}
		if a.Symbol == "" {
			return nil, newError(ErrInvalidGraph, "NewGraph", "atom %d has no symbol", k)
		}
		G.atoms[k] = a
	}
	for k, b := range bonds {
		if k[0] == k[1] {
			return nil, newError(ErrInvalidGraph, "NewGraph", "atom %d bonded to itself", k[0])
		}
		if _, ok := G.atoms[k[0]]; !ok {
			return nil, newError(ErrInvalidGraph, "NewGraph", "bond %v references missing atom %d", k, k[0])
		}
		if _, ok := G.atoms[k[1]]; !ok {
			return nil, newError(ErrInvalidGraph, "NewGraph", "bond %v references missing atom %d", k, k[1])
		}
		if b.Order < 1 {
			return nil, newError(ErrInvalidGraph, "NewGraph", "bond %v has order %d", k, b.Order)
		}
		G.bonds[NewBondKey(k[0], k[1])] = b
	}
	return G, nil
}

//MustGraph is like NewGraph but panics on error. Meant for tests and constant graphs.
func MustGraph(atoms map[int]Atom, bonds map[BondKey]Bond) *Graph {
	G, err := NewGraph(atoms, bonds)
	if err != nil {
		panic(err.Error())
	}
	return G
}

//copy returns a deep copy of G that can be modified by the caller.
func (G *Graph) copy() *Graph {
	ret := &Graph{atoms: make(map[int]Atom, len(G.atoms)), bonds: make(map[BondKey]Bond, len(G.bonds))}
	for k, v := range G.atoms {
		ret.atoms[k] = v
	}
	for k, v := range G.bonds {
		ret.bonds[k] = v
	}
	return ret
}

//Len returns the number of atoms in the graph.
func (G *Graph) Len() int {
	return len(G.atoms)
}

//AtomKeys returns the atom keys in ascending order.
func (G *Graph) AtomKeys() []int {
	ret := make([]int, 0, len(G.atoms))
	for k := range G.atoms {
		ret = append(ret, k)
	}
	sort.Ints(ret)
	return ret
}

//Atom returns the atom with key k, and false if there is no such atom.
func (G *Graph) Atom(k int) (Atom, bool) {
	a, ok := G.atoms[k]
	return a, ok
}

//Atoms returns a copy of the atom map.
func (G *Graph) Atoms() map[int]Atom {
	ret := make(map[int]Atom, len(G.atoms))
	for k, v := range G.atoms {
		ret[k] = v
	}
	return ret
}

//HasAtom returns true if an atom with key k is in the graph.
func (G *Graph) HasAtom(k int) bool {
	_, ok := G.atoms[k]
	return ok
}

//MaxKey returns the largest atom key, or -1 for an empty graph.
func (G *Graph) MaxKey() int {
	max := -1
	for k := range G.atoms {
		if k > max {
			max = k
		}
	}
	return max
}

//Neighbors returns the keys of the atoms bonded to k, in ascending order.
func (G *Graph) Neighbors(k int) []int {
	ret := make([]int, 0, 4)
	for b := range G.bonds {
		if o, ok := b.Other(k); ok {
			ret = append(ret, o)
		}
	}
	sort.Ints(ret)
	return ret
}

//NeighborMap returns the neighbors of every atom in the graph. It is cheaper
//than calling Neighbors for each atom when the whole table is needed.
func (G *Graph) NeighborMap() map[int][]int {
	ret := make(map[int][]int, len(G.atoms))
	for k := range G.atoms {
		ret[k] = make([]int, 0, 4)
	}
	for b := range G.bonds {
		ret[b[0]] = append(ret[b[0]], b[1])
		ret[b[1]] = append(ret[b[1]], b[0])
	}
	for _, v := range ret {
		sort.Ints(v)
	}
	return ret
}

//Subgraph returns the graph induced by the given atom keys, i.e. those atoms and
//every bond between them.
func (G *Graph) Subgraph(keys []int) (*Graph, error) {
	set := make(map[int]bool, len(keys))
	for _, k := range keys {
		if !G.HasAtom(k) {
			return nil, newError(ErrRelabelMismatch, "Subgraph", "atom %d is not in the graph", k)
		}
		set[k] = true
	}
	ret := &Graph{atoms: make(map[int]Atom, len(set)), bonds: make(map[BondKey]Bond)}
	for k := range set {
		ret.atoms[k] = G.atoms[k]
	}
	for k, b := range G.bonds {
		if set[k[0]] && set[k[1]] {
			ret.bonds[k] = b
		}
	}
	return ret, nil
}

//Relabel returns a copy of G where each atom key k is replaced by mapping[k].
//The mapping must be a bijection whose domain is exactly the set of atom keys of G.
func (G *Graph) Relabel(mapping map[int]int) (*Graph, error) {
	if len(mapping) != len(G.atoms) {
		return nil, newError(ErrRelabelMismatch, "Relabel", "mapping has %d keys, graph has %d atoms", len(mapping), len(G.atoms))
	}
	seen := make(map[int]bool, len(mapping))
	for k, v := range mapping {
		if !G.HasAtom(k) {
			return nil, newError(ErrRelabelMismatch, "Relabel", "atom %d is not in the graph", k)
		}
		if v < 0 {
			return nil, newError(ErrRelabelMismatch, "Relabel", "negative target key %d", v)
		}
		if seen[v] {
			return nil, newError(ErrRelabelMismatch, "Relabel", "key %d is the image of more than one atom", v)
		}
		seen[v] = true
	}
	ret := &Graph{atoms: make(map[int]Atom, len(G.atoms)), bonds: make(map[BondKey]Bond, len(G.bonds))}
	for k, a := range G.atoms {
		ret.atoms[mapping[k]] = a
	}
	for k, b := range G.bonds {
		ret.bonds[NewBondKey(mapping[k[0]], mapping[k[1]])] = b
	}
	return ret, nil
}

//Reflection returns the mirror image of G: every defined atom parity is inverted.
//Bond parities are not touched, cis/trans configurations are not changed by a reflection.
func (G *Graph) Reflection() *Graph {
	ret := G.copy()
	for k, a := range ret.atoms {
		a.Parity = a.Parity.Flip()
		ret.atoms[k] = a
	}
	return ret
}

//WithoutStereo returns a copy of G with all atom and bond parities removed.
func (G *Graph) WithoutStereo() *Graph {
	ret := G.copy()
	for k, a := range ret.atoms {
		a.Parity = NoParity
		ret.atoms[k] = a
	}
	for k, b := range ret.bonds {
		b.Parity = NoParity
		ret.bonds[k] = b
	}
	return ret
}

//StereoAtomKeys returns the keys of the atoms with a defined parity, ascending.
func (G *Graph) StereoAtomKeys() []int {
	ret := make([]int, 0)
	for k, a := range G.atoms {
		if a.Parity.Defined() {
			ret = append(ret, k)
		}
	}
	sort.Ints(ret)
	return ret
}

//StereoBondKeys returns the keys of the bonds with a defined parity, ascending.
func (G *Graph) StereoBondKeys() []BondKey {
	ret := make([]BondKey, 0)
	for k, b := range G.bonds {
		if b.Parity.Defined() {
			ret = append(ret, k)
		}
	}
	sortBondKeys(ret)
	return ret
}

//Equal returns true if G and H have exactly the same atom keys, bond keys and attributes.
//It is not an isomorphism test.
func (G *Graph) Equal(H *Graph) bool {
	if len(G.atoms) != len(H.atoms) || len(G.bonds) != len(H.bonds) {
		return false
	}
	for k, a := range G.atoms {
		if b, ok := H.atoms[k]; !ok || a != b {
			return false
		}
	}
	for k, a := range G.bonds {
		if b, ok := H.bonds[k]; !ok || a != b {
			return false
		}
	}
	return true
}

//HydrogenCount returns the total number of hydrogens, explicit and implicit.
func (G *Graph) HydrogenCount() int {
	n := 0
	for _, a := range G.atoms {
		n += a.ImplicitH
		if a.Symbol == "H" {
			n++
		}
	}
	return n
}

//Formula returns the molecular formula in Hill order (C, then H, then the
//rest alphabetically). Implicit hydrogens are counted.
func (G *Graph) Formula() string {
	count := make(map[string]int)
	for _, a := range G.atoms {
		count[a.Symbol]++
		if a.ImplicitH > 0 {
			count["H"] += a.ImplicitH
		}
	}
	syms := make([]string, 0, len(count))
	for s := range count {
		if s == "C" || s == "H" {
			continue
		}
		syms = append(syms, s)
	}
	sort.Strings(syms)
	if count["C"] > 0 {
		syms = append([]string{"C", "H"}, syms...)
	} else {
		syms = append([]string{"H"}, syms...)
		sort.Strings(syms)
	}
	var sb strings.Builder
	for _, s := range syms {
		n := count[s]
		if n == 0 {
			continue
		}
		sb.WriteString(s)
		if n > 1 {
			fmt.Fprintf(&sb, "%d", n)
		}
	}
	return sb.String()
}

//MolecularMass returns the mass of the molecule, implicit hydrogens included.
func (G *Graph) MolecularMass() (float64, error) {
	var m float64
	h, _ := Mass("H")
	for k, a := range G.atoms {
		am, ok := Mass(a.Symbol)
		if !ok {
			return 0, newError(ErrInvalidGraph, "MolecularMass", "unknown element %q for atom %d", a.Symbol, k)
		}
		m += am + float64(a.ImplicitH)*h
	}
	return m, nil
}

//String returns a compact, deterministic representation of the graph.
func (G *Graph) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, k := range G.AtomKeys() {
		a := G.atoms[k]
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d:%s", k, a.Symbol)
		if a.ImplicitH > 0 {
			fmt.Fprintf(&sb, "H%d", a.ImplicitH)
		}
		if a.Parity.Defined() {
			fmt.Fprintf(&sb, "(%s)", a.Parity)
		}
	}
	sb.WriteString(" | ")
	for i, k := range G.BondKeys() {
		b := G.bonds[k]
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "%d-%d:%d", k[0], k[1], b.Order)
		if b.Parity.Defined() {
			fmt.Fprintf(&sb, "(%s)", b.Parity)
		}
	}
	sb.WriteString("}")
	return sb.String()
}
