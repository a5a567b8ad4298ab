/*
 * stencil.go, part of molgraph.
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
	"sort"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/canon"
	"github.com/rmera/molgraph/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//The vertices of a tetrahedron centered at the origin.
var tetrahedron = [4]r3.Vec{
	{X: 1, Y: 1, Z: 1},
	{X: 1, Y: -1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
}

//Points of the frame for a stereo bond a=b, relative to a.
var (
	partnerPoint = r3.Vec{X: 1}
	aSubPoints   = [2]r3.Vec{{X: -1, Y: 1}, {X: -1, Y: -1}}
	bSubPoints   = [2]r3.Vec{{X: 2, Y: 1}, {X: 2, Y: -1}}
)

type roleKind int

const (
	plainRole roleKind = iota
	atomStereoRole
	bondStereoRole
)

//role is what an atom is for the purpose of placing its neighbors. It is decided once per atom.
type role struct {
	kind    roleKind
	parity  chem.Parity
	partner int //the other end of the stereo bond, for bondStereoRole
}

//directionParity returns the parity of a set of 3 or 4 directions from a center.
//With 4, it is true if det(u1-u0, u2-u0, u3-u0) > 0, with 3, if det(u0, u1, u2) > 0,
//where the u are the unit directions.
func directionParity(dirs []r3.Vec) (bool, bool) {
	u := make([]r3.Vec, len(dirs))
	for i, d := range dirs {
		if r3.Norm(d) == 0 {
			return false, false
		}
		u[i] = r3.Unit(d)
	}
	switch len(u) {
	case 4:
		return v3.Det(r3.Sub(u[1], u[0]), r3.Sub(u[2], u[0]), r3.Sub(u[3], u[0])) > 0, true
	case 3:
		return v3.Det(u[0], u[1], u[2]) > 0, true
	}
	return false, false
}

//byRankDesc returns keys sorted by descending rank.
func byRankDesc(keys []int, ranks map[int]int) []int {
	ret := append([]int(nil), keys...)
	sort.Slice(ret, func(i, j int) bool { return ranks[ret[i]] > ranks[ret[j]] })
	return ret
}

func without(keys []int, k int) []int {
	ret := make([]int, 0, len(keys))
	for _, v := range keys {
		if v != k {
			ret = append(ret, v)
		}
	}
	return ret
}

//plainStencil puts the anchor on the first vertex of the tetrahedron and the other
//neighbors, by ascending rank, on the rest.
func plainStencil(nbrs []int, anchor int, ranks map[int]int) map[int]r3.Vec {
	ret := make(map[int]r3.Vec, len(nbrs))
	ret[anchor] = tetrahedron[0]
	for i, n := range canon.Sorted(without(nbrs, anchor), ranks) {
		ret[n] = tetrahedron[i+1]
	}
	return ret
}

//atomStencil puts the neighbors, by ascending rank, on the vertices of the tetrahedron,
//swapping the last two if that is needed to get the given parity.
func atomStencil(nbrs []int, parity chem.Parity, ranks map[int]int) map[int]r3.Vec {
	sorted := canon.Sorted(nbrs, ranks)
	dirs := make([]r3.Vec, len(sorted))
	copy(dirs, tetrahedron[:len(sorted)])
	if p, _ := directionParity(dirs); p != parity.Bool() {
		l := len(dirs)
		dirs[l-1], dirs[l-2] = dirs[l-2], dirs[l-1]
	}
	ret := make(map[int]r3.Vec, len(sorted))
	for i, n := range sorted {
		ret[n] = dirs[i]
	}
	return ret
}

//bondStencil returns the planar frame of the stereo bond between a and b, relative to a. The
//highest ranked substituent of a goes to +y. The highest ranked substituent of b goes to +y
//too if the bond is cis (parity false), or to -y if it is trans.
func bondStencil(G *chem.Graph, a, b int, parity chem.Parity, ranks map[int]int) map[int]r3.Vec {
	ret := make(map[int]r3.Vec, 6)
	ret[b] = partnerPoint
	for i, s := range byRankDesc(without(G.Neighbors(a), b), ranks) {
		ret[s] = aSubPoints[i]
	}
	bsubs := byRankDesc(without(G.Neighbors(b), a), ranks)
	flip := parity.Bool()
	for i, s := range bsubs {
		p := bSubPoints[i]
		if flip {
			p.Y = -p.Y
		}
		ret[s] = p
	}
	return ret
}

//stencil returns the reference points for the neighbors of k (and, for stereo bonds,
//for the substituents of its partner), relative to k.
func stencil(G *chem.Graph, k, anchor int, r role, ranks map[int]int) map[int]r3.Vec {
	switch r.kind {
	case atomStereoRole:
		return atomStencil(G.Neighbors(k), r.parity, ranks)
	case bondStereoRole:
		return bondStencil(G, k, r.partner, r.parity, ranks)
	}
	return plainStencil(G.Neighbors(k), anchor, ranks)
}
