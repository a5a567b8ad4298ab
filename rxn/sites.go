/*
 * sites.go, part of molgraph.
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

package rxn

import (
	"sort"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/iso"
)

//Abstraction holds the sites of a hydrogen abstraction QH -> Q.
//Keys refer to the explicit-hydrogen forms of the graphs (see chem.Graph.Explicit,
//which keeps existing keys).
type Abstraction struct {
	QH int //the transferred hydrogen, in QH
	Q  int //the radical site left behind, in Q
}

//AdditionSites holds the sites of an addition X + Y -> XY. Keys refer to the
//implicit-hydrogen forms of the graphs.
type AdditionSites struct {
	X, Y      int  //the atoms of X and Y that form the new bond
	XYX, XYY  int  //the images of X and Y in XY
	Multibond bool //true if a multiple bond of X was opened
}

//Migration holds the sites of a hydrogen migration R -> P. Keys refer to the
//explicit-hydrogen forms of the graphs.
type Migration struct {
	RH int //the migrating hydrogen, in R
	RA int //the radical site of R that accepts it
	PH int //the migrating hydrogen, in P
	PA int //the radical site of P it leaves behind
}

//hydrogens returns the keys of the hydrogen atoms of G with exactly one neighbor.
func hydrogens(G *chem.Graph) []int {
	nb := G.NeighborMap()
	ret := make([]int, 0)
	for _, k := range G.AtomKeys() {
		if a, _ := G.Atom(k); a.Symbol == "H" && len(nb[k]) == 1 {
			ret = append(ret, k)
		}
	}
	return ret
}

//explicitChecked returns the explicit form of G, after checking its valences.
func explicitChecked(G *chem.Graph, caller string) (*chem.Graph, error) {
	E, err := G.Explicit()
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	if _, err := chem.RadicalElectrons(E); err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	return E, nil
}

func implicitChecked(G *chem.Graph, caller string) (*chem.Graph, error) {
	I, err := G.Implicit()
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	if _, err := chem.RadicalElectrons(I); err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	return I, nil
}

//freeValenceSites returns the radical sites of the connectivity graph of G, i.e. the atoms
//that could take a hydrogen if their multiple bonds were broken.
func freeValenceSites(G *chem.Graph, caller string) ([]int, error) {
	s, err := chem.RadicalSites(G.WithoutBondOrders())
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	return s, nil
}

func abstractions(qh, q *chem.Graph, first bool) ([]Abstraction, error) {
	const caller = "HydrogenAbstraction"
	qhe, err := explicitChecked(qh, caller)
	if err != nil {
		return nil, err
	}
	qe, err := explicitChecked(q, caller)
	if err != nil {
		return nil, err
	}
	ret := make([]Abstraction, 0, 1)
	if qhe.Len() != qe.Len()+1 {
		return ret, nil
	}
	sites, err := freeValenceSites(qe, caller)
	if err != nil {
		return nil, err
	}
	hydrogenated := make([]*chem.Graph, len(sites))
	newh := make([]int, len(sites))
	for i, s := range sites {
		hydrogenated[i], newh[i], _ = qe.AddHydrogen(s)
	}
	for _, h := range hydrogens(qhe) {
		for i, s := range sites {
			if !iso.Isomorphic(qhe, hydrogenated[i], iso.WithoutBondOrders(), iso.WithSeed(map[int]int{h: newh[i]})) {
				continue
			}
			ret = append(ret, Abstraction{QH: h, Q: s})
			if first {
				return ret, nil
			}
		}
	}
	return ret, nil
}

//HydrogenAbstraction finds the hydrogen of qh that, removed, leaves q, and the radical
//site of q it came from. It returns false if qh and q are not related that way.
func HydrogenAbstraction(qh, q *chem.Graph) (Abstraction, bool, error) {
	r, err := abstractions(qh, q, true)
	if err != nil || len(r) == 0 {
		return Abstraction{}, false, err
	}
	return r[0], true, nil
}

//AllHydrogenAbstractions returns every (hydrogen, site) pair that relates qh and q.
func AllHydrogenAbstractions(qh, q *chem.Graph) ([]Abstraction, error) {
	return abstractions(qh, q, false)
}

//combined is a candidate addition product: X and Y bonded at x and y, in all its subresonances.
type combined struct {
	x, y      int
	yInUnion  int
	multibond bool
	graphs    []*chem.Graph
}

//bondedPairs returns every ordered pair of bonded atoms in G, sorted.
func bondedPairs(G *chem.Graph) [][2]int {
	ret := make([][2]int, 0)
	nb := G.NeighborMap()
	for _, a := range G.AtomKeys() {
		for _, b := range nb[a] {
			ret = append(ret, [2]int{a, b})
		}
	}
	return ret
}

//matchAddition looks for the smallest bonded pair of xy that the new bond of c can be mapped to.
func matchAddition(c combined, xy *chem.Graph, pairs [][2]int) (AdditionSites, bool) {
	for _, p := range pairs {
		for _, g := range c.graphs {
			if iso.Isomorphic(g, xy, iso.WithSeed(map[int]int{c.x: p[0], c.yInUnion: p[1]})) {
				return AdditionSites{X: c.x, Y: c.y, XYX: p[0], XYY: p[1], Multibond: c.multibond}, true
			}
		}
	}
	return AdditionSites{}, false
}

//multibondCandidates opens each multiple bond of x by one order and bonds one of its ends to a radical site of y.
func multibondCandidates(x, y *chem.Graph, ysites []int) ([]combined, error) {
	ret := make([]combined, 0)
	for _, xa := range x.AtomKeys() {
		for _, xb := range x.Neighbors(xa) {
			b, _ := x.Bond(xa, xb)
			if b.Order < 2 {
				continue
			}
			opened, err := x.SetBondOrder(xa, xb, b.Order-1)
			if err != nil {
				return nil, err
			}
			for _, ys := range ysites {
				c, err := bondSpecies(opened, y, xa, ys)
				if err != nil {
					return nil, err
				}
				c.multibond = true
				ret = append(ret, c)
			}
		}
	}
	return ret, nil
}

//radicalCandidates bonds each radical site of x to each radical site of y.
func radicalCandidates(x, y *chem.Graph, xsites, ysites []int) ([]combined, error) {
	ret := make([]combined, 0)
	for _, xs := range xsites {
		for _, ys := range ysites {
			c, err := bondSpecies(x, y, xs, ys)
			if err != nil {
				return nil, err
			}
			ret = append(ret, c)
		}
	}
	return ret, nil
}

func bondSpecies(x, y *chem.Graph, xa, ys int) (combined, error) {
	U, m := chem.Union(x, y)
	U, err := U.AddBond(xa, m[ys], chem.Bond{Order: 1})
	if err != nil {
		return combined{}, err
	}
	res, err := chem.Subresonances(U)
	if err != nil {
		return combined{}, err
	}
	return combined{x: xa, y: ys, yInUnion: m[ys], graphs: res}, nil
}

//candidates for the same x and y atoms are merged, so each (x, y) pair is tested once.
func mergeCandidates(cs []combined) []combined {
	ret := make([]combined, 0, len(cs))
	idx := make(map[[2]int]int)
	for _, c := range cs {
		k := [2]int{c.x, c.y}
		if i, ok := idx[k]; ok {
			ret[i].graphs = append(ret[i].graphs, c.graphs...)
			continue
		}
		idx[k] = len(ret)
		ret = append(ret, c)
	}
	sortCombined(ret)
	return ret
}

func sortCombined(cs []combined) {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].x != cs[j].x {
			return cs[i].x < cs[j].x
		}
		return cs[i].y < cs[j].y
	})
}

func additions(x, y, xy *chem.Graph, first bool) ([]AdditionSites, error) {
	const caller = "Addition"
	xi, err := implicitChecked(x, caller)
	if err != nil {
		return nil, err
	}
	yi, err := implicitChecked(y, caller)
	if err != nil {
		return nil, err
	}
	xyi, err := implicitChecked(xy, caller)
	if err != nil {
		return nil, err
	}
	ret := make([]AdditionSites, 0, 1)
	U, _ := chem.Union(xi, yi)
	if U.Formula() != xyi.Formula() {
		return ret, nil
	}
	xsites, err := chem.RadicalSites(xi)
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	ysites, err := chem.RadicalSites(yi)
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	pairs := bondedPairs(xyi)
	multi, err := multibondCandidates(xi, yi, ysites)
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	rad, err := radicalCandidates(xi, yi, xsites, ysites)
	if err != nil {
		return nil, chem.ErrDecorate(err, caller)
	}
	//radical-radical additions are only tried if no multiple bond addition matches.
	for _, cs := range [][]combined{mergeCandidates(multi), mergeCandidates(rad)} {
		for _, c := range cs {
			s, ok := matchAddition(c, xyi, pairs)
			if !ok {
				continue
			}
			ret = append(ret, s)
			if first {
				return ret, nil
			}
		}
		if len(ret) > 0 {
			break
		}
	}
	return ret, nil
}

//Addition finds the atoms of x and y that bond to form xy, and their keys in xy.
//Additions that open a multiple bond of x are tried first, then additions between
//radical sites of x and y. It returns false if xy is not an addition product of x and y.
func Addition(x, y, xy *chem.Graph) (AdditionSites, bool, error) {
	r, err := additions(x, y, xy, true)
	if err != nil || len(r) == 0 {
		return AdditionSites{}, false, err
	}
	return r[0], true, nil
}

//AllAdditions returns all the addition sites relating x, y and xy, from the first class
//(multiple bond, then radical-radical) that gives any.
func AllAdditions(x, y, xy *chem.Graph) ([]AdditionSites, error) {
	return additions(x, y, xy, false)
}

func migrations(r, p *chem.Graph, first bool) ([]Migration, error) {
	const caller = "HydrogenMigration"
	re, err := explicitChecked(r, caller)
	if err != nil {
		return nil, err
	}
	pe, err := explicitChecked(p, caller)
	if err != nil {
		return nil, err
	}
	ret := make([]Migration, 0, 1)
	if re.Len() != pe.Len() || re.Formula() != pe.Formula() {
		return ret, nil
	}
	rsites, err := freeValenceSites(re, caller)
	if err != nil {
		return nil, err
	}
	psites, err := freeValenceSites(pe, caller)
	if err != nil {
		return nil, err
	}
	rg := make([]*chem.Graph, len(rsites))
	rnew := make([]int, len(rsites))
	for i, s := range rsites {
		rg[i], rnew[i], _ = re.AddHydrogen(s)
	}
	pg := make([]*chem.Graph, len(psites))
	pnew := make([]int, len(psites))
	for i, s := range psites {
		pg[i], pnew[i], _ = pe.AddHydrogen(s)
	}
	rparent := re.NeighborMap()
	pparent := pe.NeighborMap()
	symbol := func(G *chem.Graph, k int) string {
		a, _ := G.Atom(k)
		return a.Symbol
	}
	rhs, phs := hydrogens(re), hydrogens(pe)
	for _, h := range rhs {
		for i, ra := range rsites {
			if rparent[h][0] == ra {
				continue
			}
			for _, ph := range phs {
				if symbol(pe, pparent[ph][0]) != symbol(re, ra) {
					continue
				}
				for j, pa := range psites {
					if symbol(pe, pa) != symbol(re, rparent[h][0]) {
						continue
					}
					//the migrating hydrogen ends as the one added to P, and the one added
					//to R ends as an original hydrogen of P.
					seed := map[int]int{h: pnew[j], rnew[i]: ph}
					if !iso.Isomorphic(rg[i], pg[j], iso.WithoutBondOrders(), iso.WithSeed(seed)) {
						continue
					}
					ret = append(ret, Migration{RH: h, RA: ra, PH: ph, PA: pa})
					if first {
						return ret, nil
					}
				}
			}
		}
	}
	return ret, nil
}

//HydrogenMigration finds the hydrogen that moves within r to give p, the radical site
//of r that takes it, the same hydrogen in p, and the radical site it leaves in p.
//Matches where the hydrogen doesn't actually move are not considered.
func HydrogenMigration(r, p *chem.Graph) (Migration, bool, error) {
	m, err := migrations(r, p, true)
	if err != nil || len(m) == 0 {
		return Migration{}, false, err
	}
	return m[0], true, nil
}

//AllHydrogenMigrations returns every migration relating r and p.
func AllHydrogenMigrations(r, p *chem.Graph) ([]Migration, error) {
	return migrations(r, p, false)
}
