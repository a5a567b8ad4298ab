/*
 * synth.go, part of molgraph.
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
	"errors"
	"sort"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/canon"
	"github.com/rmera/molgraph/chemgraph"
	"github.com/rmera/molgraph/internal/logging"
	"github.com/rmera/molgraph/v3"
	"gonum.org/v1/gonum/spatial/r3"
)

//ErrParityMismatch is wrapped by the errors of Validate.
var ErrParityMismatch = errors.New("parity mismatch")

//Options control the coordinate synthesis.
type Options struct {
	Ranker           canon.Ranker //orders the neighbors of stereocenters. canon.Morgan if nil.
	ComponentSpacing float64      //distance along x between disconnected fragments. 10 if zero.
}

//Placement records the alignment of the stencil of an atom: Target is the direction
//from Key to Anchor that the rotated stencil points to.
type Placement struct {
	Key    int
	Anchor int
	Target r3.Vec
}

//Structure is a graph with a position for each of its atoms.
type Structure struct {
	Graph      *chem.Graph
	Coords     map[int]r3.Vec
	Placements []Placement
	Ranks      map[int]int //the ranks used to place the neighbors of stereocenters
}

//Matrix returns the coordinates as a Nx3 matrix, rows in ascending key order, and the keys.
func (S *Structure) Matrix() (*v3.Matrix, []int) {
	keys := S.Graph.AtomKeys()
	M := v3.Zeros(len(keys))
	for i, k := range keys {
		M.SetVec(i, S.Coords[k])
	}
	return M, keys
}

func unsupported(format string, args ...interface{}) error {
	return chem.NewError(chem.ErrUnsupportedStructure, "Synthesize", format, args...)
}

//roles checks that G can be handled and returns the role of each atom.
func roles(G *chem.Graph) (map[int]role, error) {
	if chemgraph.HasRings(G) {
		return nil, unsupported("rings are not supported")
	}
	nb := G.NeighborMap()
	ret := make(map[int]role, G.Len())
	for _, k := range G.StereoAtomKeys() {
		a, _ := G.Atom(k)
		if a.ImplicitH != 0 {
			return nil, unsupported("stereo atom %d has %d implicit hydrogens", k, a.ImplicitH)
		}
		if n := len(nb[k]); n != 3 && n != 4 {
			return nil, unsupported("stereo atom %d has %d neighbors", k, n)
		}
		ret[k] = role{kind: atomStereoRole, parity: a.Parity}
	}
	for _, bk := range G.StereoBondKeys() {
		b, _ := G.Bond(bk[0], bk[1])
		for i, k := range bk {
			a, _ := G.Atom(k)
			if a.ImplicitH != 0 {
				return nil, unsupported("atom %d of stereo bond %v has %d implicit hydrogens", k, bk, a.ImplicitH)
			}
			if n := len(nb[k]) - 1; n < 1 || n > 2 {
				return nil, unsupported("atom %d of stereo bond %v has %d substituents", k, bk, n)
			}
			if _, ok := ret[k]; ok {
				return nil, unsupported("atom %d has more than one stereo role", k)
			}
			ret[k] = role{kind: bondStereoRole, parity: b.Parity, partner: bk[1-i]}
		}
	}
	for _, k := range G.AtomKeys() {
		if _, ok := ret[k]; ok {
			continue
		}
		if n := len(nb[k]); n > 4 {
			return nil, unsupported("atom %d has %d neighbors", k, n)
		}
		ret[k] = role{kind: plainRole}
	}
	return ret, nil
}

//synth carries the state of one synthesis.
type synth struct {
	g          *chem.Graph
	ranks      map[int]int
	roles      map[int]role
	coords     map[int]r3.Vec
	placements []Placement
}

//visit places the neighbors of k that don't have coordinates yet, using the stencil for k
//aligned on the direction from k to anchor, then visits every neighbor but the anchor.
func (s *synth) visit(k, anchor int) error {
	st := stencil(s.g, k, anchor, s.roles[k], s.ranks)
	keys := make([]int, 0, len(st))
	for n := range st {
		keys = append(keys, n)
	}
	sort.Ints(keys)
	from := st[anchor]
	to := r3.Sub(s.coords[anchor], s.coords[k])
	R, err := v3.RotatorAlign(from, to)
	if err != nil {
		return chem.NewError(chem.ErrInvalidGraph, "visit", "atoms %d and %d share a position", k, anchor)
	}
	pts := make([]r3.Vec, 0, len(keys))
	for _, n := range keys {
		pts = append(pts, st[n])
	}
	M := v3.FromVecs(pts)
	M.Rotate(M, R)
	M.AddVec(M, s.coords[k])
	T := v3.FromVecs([]r3.Vec{r3.Unit(from)})
	T.Rotate(T, R)
	target := T.Vec(0)
	for i, n := range keys {
		if _, ok := s.coords[n]; ok {
			continue
		}
		s.coords[n] = M.Vec(i)
	}
	s.placements = append(s.placements, Placement{Key: k, Anchor: anchor, Target: target})
	for _, n := range canon.Sorted(s.g.Neighbors(k), s.ranks) {
		if n == anchor {
			continue
		}
		if err := s.visit(n, k); err != nil {
			return err
		}
	}
	return nil
}

//Synthesize returns coordinates for every atom of G that reproduce its stereo parities.
//It fails with chem.ErrUnsupportedStructure if G has rings, if a stereo atom or the end of
//a stereo bond has implicit hydrogens, or if an atom has more neighbors than its stencil has points.
func Synthesize(G *chem.Graph, o Options) (*Structure, error) {
	if o.Ranker == nil {
		o.Ranker = canon.Morgan{}
	}
	if o.ComponentSpacing == 0 {
		o.ComponentSpacing = 10
	}
	rl, err := roles(G)
	if err != nil {
		return nil, err
	}
	ranks, err := o.Ranker.AtomPriority(G)
	if err != nil {
		return nil, chem.ErrDecorate(err, "Synthesize")
	}
	for _, k := range G.AtomKeys() {
		if _, ok := ranks[k]; !ok {
			return nil, chem.NewError(chem.ErrInvalidGraph, "Synthesize", "the ranker gave no rank for atom %d", k)
		}
	}
	s := &synth{g: G, ranks: ranks, roles: rl, coords: make(map[int]r3.Vec, G.Len())}
	for i, comp := range chemgraph.Components(G) {
		root := comp[0]
		s.coords[root] = r3.Vec{X: float64(i) * o.ComponentSpacing}
		nbrs := G.Neighbors(root)
		if len(nbrs) == 0 {
			continue
		}
		first := canon.Sorted(nbrs, ranks)[0]
		s.coords[first] = r3.Add(s.coords[root], r3.Vec{X: 1})
		if err := s.visit(root, first); err != nil {
			return nil, chem.ErrDecorate(err, "Synthesize")
		}
		if err := s.visit(first, root); err != nil {
			return nil, chem.ErrDecorate(err, "Synthesize")
		}
	}
	return &Structure{Graph: G, Coords: s.coords, Placements: s.placements, Ranks: ranks}, nil
}

//Synthesizer wraps Synthesize with logging.
type Synthesizer struct {
	Options
	Log logging.Logger
}

//NewSynthesizer returns a Synthesizer with the given options that logs to l, or to the
//default logger if l is nil.
func NewSynthesizer(o Options, l logging.Logger) *Synthesizer {
	if l == nil {
		l = logging.Default()
	}
	return &Synthesizer{Options: o, Log: l.Named("stereo")}
}

//Synthesize builds and validates the coordinates of G.
func (S *Synthesizer) Synthesize(name string, G *chem.Graph) (*Structure, error) {
	log := S.Log.With(logging.String("species", name))
	st, err := Synthesize(G, S.Options)
	if err == nil {
		err = Validate(st)
	}
	if err != nil {
		if errors.Is(err, chem.ErrUnsupportedStructure) || errors.Is(err, chem.ErrInvalidGraph) {
			log.Warn("no coordinates", logging.Err(err))
		} else {
			log.Error("no coordinates", logging.Err(err))
		}
		return nil, err
	}
	log.Debug("coordinates built", logging.Int("atoms", G.Len()), logging.Int("stereocenters", len(G.StereoAtomKeys())+len(G.StereoBondKeys())))
	return st, nil
}
