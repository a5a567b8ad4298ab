/*
 * resonance.go, part of molgraph.
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

//RadicalElectrons returns, for each atom of G, the number of valence electrons
//not used in bonds or by implicit hydrogens. It fails if an element is unknown or if
//any atom has more bonded electrons than its valence, it never clamps.
func RadicalElectrons(G *Graph) (map[int]int, error) {
	bonded := make(map[int]int, len(G.atoms))
	for k, b := range G.bonds {
		bonded[k[0]] += b.Order
		bonded[k[1]] += b.Order
	}
	ret := make(map[int]int, len(G.atoms))
	for k, a := range G.atoms {
		v, ok := Valence(a.Symbol)
		if !ok {
			return nil, newError(ErrInvalidGraph, "RadicalElectrons", "unknown element %q for atom %d", a.Symbol, k)
		}
		r := v - a.ImplicitH - bonded[k]
		if r < 0 {
			return nil, newError(ErrInvalidGraph, "RadicalElectrons", "atom %d (%s) uses %d electrons, valence is %d", k, a.Symbol, a.ImplicitH+bonded[k], v)
		}
		ret[k] = r
	}
	return ret, nil
}

//RadicalSites returns the keys of the atoms with at least one radical electron, ascending.
func RadicalSites(G *Graph) ([]int, error) {
	rad, err := RadicalElectrons(G)
	if err != nil {
		return nil, ErrDecorate(err, "RadicalSites")
	}
	ret := make([]int, 0, 2)
	for _, k := range G.AtomKeys() {
		if rad[k] > 0 {
			ret = append(ret, k)
		}
	}
	return ret, nil
}

func totalRadicals(rad map[int]int) int {
	n := 0
	for _, v := range rad {
		n += v
	}
	return n
}

//PossibleSpinMultiplicities returns the spin multiplicities that the radical electrons
//of G allow: from 1 (even count) or 2 (odd count) up to the count plus one, in steps of 2.
func PossibleSpinMultiplicities(G *Graph) ([]int, error) {
	rad, err := RadicalElectrons(G)
	if err != nil {
		return nil, ErrDecorate(err, "PossibleSpinMultiplicities")
	}
	n := totalRadicals(rad)
	ret := make([]int, 0, n/2+1)
	for m := n%2 + 1; m <= n+1; m += 2 {
		ret = append(ret, m)
	}
	return ret, nil
}

//MaximumSpinMultiplicity returns the largest of the possible spin multiplicities of G.
func MaximumSpinMultiplicity(G *Graph) (int, error) {
	rad, err := RadicalElectrons(G)
	if err != nil {
		return 0, ErrDecorate(err, "MaximumSpinMultiplicity")
	}
	return totalRadicals(rad) + 1, nil
}

//a bond whose order can be raised, and by how much at most.
type bondSpan struct {
	key BondKey
	max int
}

//Subresonances returns every graph obtained by raising the orders of the bonds of G
//without exceeding any atom's valence. G itself is the first element.
//The range of each bond is bounded by the radical electrons of its ends before
//the enumeration starts, and the remaining budget of each atom is carried along, so
//inconsistent partial assignments are never extended.
func Subresonances(G *Graph) ([]*Graph, error) {
	rad, err := RadicalElectrons(G)
	if err != nil {
		return nil, ErrDecorate(err, "Subresonances")
	}
	spans := make([]bondSpan, 0)
	for _, k := range G.BondKeys() {
		m := rad[k[0]]
		if rad[k[1]] < m {
			m = rad[k[1]]
		}
		if m > 0 {
			spans = append(spans, bondSpan{key: k, max: m})
		}
	}
	budget := rad
	incr := make([]int, len(spans))
	ret := make([]*Graph, 0, 1)
	var rec func(i int)
	rec = func(i int) {
		if i == len(spans) {
			res := G.copy()
			for j, s := range spans {
				if incr[j] == 0 {
					continue
				}
				b := res.bonds[s.key]
				b.Order += incr[j]
				res.bonds[s.key] = b
			}
			ret = append(ret, res)
			return
		}
		s := spans[i]
		a, b := s.key[0], s.key[1]
		max := s.max
		if budget[a] < max {
			max = budget[a]
		}
		if budget[b] < max {
			max = budget[b]
		}
		for d := 0; d <= max; d++ {
			budget[a] -= d
			budget[b] -= d
			incr[i] = d
			rec(i + 1)
			budget[a] += d
			budget[b] += d
		}
		incr[i] = 0
	}
	rec(0)
	return ret, nil
}

//Resonances returns all the resonance structures for the connectivity of G,
//that is, the subresonances of G with all bond orders set to 1.
func Resonances(G *Graph) ([]*Graph, error) {
	ret, err := Subresonances(G.WithoutBondOrders())
	if err != nil {
		return nil, ErrDecorate(err, "Resonances")
	}
	return ret, nil
}

//spinSelect returns the resonance with the lowest (or highest) maximum spin
//multiplicity. The first one found wins ties.
func spinSelect(G *Graph, caller string, low bool) (*Graph, error) {
	res, err := Resonances(G)
	if err != nil {
		return nil, ErrDecorate(err, caller)
	}
	var best *Graph
	bestm := 0
	for _, r := range res {
		m, err := MaximumSpinMultiplicity(r)
		if err != nil {
			return nil, ErrDecorate(err, caller)
		}
		if best == nil || (low && m < bestm) || (!low && m > bestm) {
			best = r
			bestm = m
		}
	}
	return best, nil
}

//LowSpinResonance returns the resonance structure of G with the lowest maximum spin
//multiplicity, i.e. the one with the most bonds formed.
func LowSpinResonance(G *Graph) (*Graph, error) {
	return spinSelect(G, "LowSpinResonance", true)
}

//HighSpinResonance returns the resonance structure of G with the highest maximum spin
//multiplicity.
func HighSpinResonance(G *Graph) (*Graph, error) {
	return spinSelect(G, "HighSpinResonance", false)
}
