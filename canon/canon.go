/*
 * canon.go, part of molgraph.
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

//Package canon assigns a total order to the atoms of a molgraph graph. The order is
//used to decide which neighbor of a stereocenter comes "first" when its parity
//is encoded or read back.
package canon

import (
	"fmt"
	"sort"

	chem "github.com/rmera/molgraph"
)

//Ranker is anything that can assign a rank to every atom of a graph.
//The ranks must be the integers 0..n-1, each used once. For two graphs
//that differ only by a relabeling, the ranks of symmetry-distinct atoms
//must be related by the same relabeling.
type Ranker interface {
	AtomPriority(G *chem.Graph) (map[int]int, error)
}

//Morgan ranks atoms by iterative refinement of extended connectivities, starting from
//the atomic mass, the number of neighbors and the implicit hydrogen count of each atom.
//Atoms that remain in the same class after the refinement stops are ordered by key.
//Lower ranks go to lighter, less connected atoms.
type Morgan struct {
	MaxIterations int //0 means as many as the number of atoms.
}

type invariant struct {
	prev   int
	detail string
	key    int
}

//classes sorts the invariants and returns the class index of each atom
//(atoms with equal prev and detail share a class), plus the number of classes.
func classes(inv []invariant) (map[int]int, int) {
	sort.Slice(inv, func(i, j int) bool {
		if inv[i].prev != inv[j].prev {
			return inv[i].prev < inv[j].prev
		}
		if inv[i].detail != inv[j].detail {
			return inv[i].detail < inv[j].detail
		}
		return inv[i].key < inv[j].key
	})
	ret := make(map[int]int, len(inv))
	c := -1
	for i, v := range inv {
		if i == 0 || v.prev != inv[i-1].prev || v.detail != inv[i-1].detail {
			c++
		}
		ret[v.key] = c
	}
	return ret, c + 1
}

//AtomPriority returns the rank of each atom of G.
func (M Morgan) AtomPriority(G *chem.Graph) (map[int]int, error) {
	keys := G.AtomKeys()
	nb := G.NeighborMap()
	inv := make([]invariant, 0, len(keys))
	for _, k := range keys {
		a, _ := G.Atom(k)
		m, ok := chem.Mass(a.Symbol)
		if !ok {
			return nil, chem.NewError(chem.ErrInvalidGraph, "AtomPriority", "unknown element %q for atom %d", a.Symbol, k)
		}
		//the mass is formatted with a fixed width so the strings sort like the numbers.
		inv = append(inv, invariant{detail: fmt.Sprintf("%012.5f/%02d/%02d", m, len(nb[k]), a.ImplicitH), key: k})
	}
	class, n := classes(inv)
	iter := M.MaxIterations
	if iter <= 0 {
		iter = len(keys)
	}
	for i := 0; i < iter; i++ {
		inv = inv[:0]
		for _, k := range keys {
			nc := make([]string, 0, len(nb[k]))
			for _, o := range nb[k] {
				b, _ := G.Bond(k, o)
				nc = append(nc, fmt.Sprintf("%06d:%d", class[o], b.Order))
			}
			sort.Strings(nc)
			inv = append(inv, invariant{prev: class[k], detail: fmt.Sprint(nc), key: k})
		}
		newclass, newn := classes(inv)
		class = newclass
		if newn == n {
			break
		}
		n = newn
	}
	ret := make(map[int]int, len(keys))
	sort.SliceStable(keys, func(i, j int) bool {
		if class[keys[i]] != class[keys[j]] {
			return class[keys[i]] < class[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for r, k := range keys {
		ret[k] = r
	}
	return ret, nil
}

//Sorted returns keys sorted by ascending rank.
func Sorted(keys []int, ranks map[int]int) []int {
	ret := append([]int(nil), keys...)
	sort.Slice(ret, func(i, j int) bool { return ranks[ret[i]] < ranks[ret[j]] })
	return ret
}
