/*
 * iso.go, part of molgraph.
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

package iso

import (
	"fmt"
	"sort"

	chem "github.com/rmera/molgraph"
)

type options struct {
	stereo  bool
	noOrder bool
	seed    map[int]int
}

//Option modifies what an isomorphism search compares.
type Option func(*options)

//WithStereo makes the search compare atom and bond parities.
func WithStereo() Option {
	return func(o *options) { o.stereo = true }
}

//WithoutBondOrders makes the search compare connectivity only: every bond
//matches every other bond.
func WithoutBondOrders() Option {
	return func(o *options) { o.noOrder = true }
}

//WithSeed forces the search to map each key of the first graph in pairs to
//the corresponding key of the second graph.
func WithSeed(pairs map[int]int) Option {
	return func(o *options) {
		o.seed = make(map[int]int, len(pairs))
		for k, v := range pairs {
			o.seed[k] = v
		}
	}
}

type atomLabel struct {
	symbol string
	h      int
	parity chem.Parity
}

type bondLabel struct {
	order  int
	parity chem.Parity
}

func (o *options) atomLabel(a chem.Atom) atomLabel {
	l := atomLabel{symbol: a.Symbol, h: a.ImplicitH}
	if o.stereo {
		l.parity = a.Parity
	}
	return l
}

func (o *options) bondLabel(b chem.Bond) bondLabel {
	l := bondLabel{order: b.Order}
	if o.noOrder {
		l.order = 1
	}
	if o.stereo {
		l.parity = b.Parity
	}
	return l
}

//matcher holds the state of one search.
type matcher struct {
	o        *options
	g1, g2   *chem.Graph
	nb1, nb2 map[int][]int
	l1, l2   map[int]atomLabel
	order    []int
	m12, m21 map[int]int
}

func newMatcher(g1, g2 *chem.Graph, o *options) *matcher {
	m := &matcher{o: o, g1: g1, g2: g2, nb1: g1.NeighborMap(), nb2: g2.NeighborMap()}
	m.l1 = make(map[int]atomLabel, g1.Len())
	for k, a := range g1.Atoms() {
		m.l1[k] = o.atomLabel(a)
	}
	m.l2 = make(map[int]atomLabel, g2.Len())
	for k, a := range g2.Atoms() {
		m.l2[k] = o.atomLabel(a)
	}
	m.m12 = make(map[int]int, g1.Len())
	m.m21 = make(map[int]int, g2.Len())
	return m
}

//quickReject returns true if the graphs can't be isomorphic because
//of their sizes, their label multisets or their degree sequences.
func (m *matcher) quickReject() bool {
	if m.g1.Len() != m.g2.Len() || len(m.g1.BondKeys()) != len(m.g2.BondKeys()) {
		return true
	}
	count := make(map[string]int)
	for k, l := range m.l1 {
		count[fmt.Sprintf("%v/%d", l, len(m.nb1[k]))]++
	}
	for k, l := range m.l2 {
		s := fmt.Sprintf("%v/%d", l, len(m.nb2[k]))
		count[s]--
		if count[s] < 0 {
			return true
		}
	}
	bcount := make(map[bondLabel]int)
	for _, b := range m.g1.Bonds() {
		bcount[m.o.bondLabel(b)]++
	}
	for _, b := range m.g2.Bonds() {
		l := m.o.bondLabel(b)
		bcount[l]--
		if bcount[l] < 0 {
			return true
		}
	}
	return false
}

//matchOrder sets the order in which the atoms of g1 are matched: seeded atoms
//first, then breadth-first from the lowest unvisited key of each component.
func (m *matcher) matchOrder() {
	seen := make(map[int]bool, m.g1.Len())
	m.order = make([]int, 0, m.g1.Len())
	queue := make([]int, 0, m.g1.Len())
	seeds := make([]int, 0, len(m.o.seed))
	for k := range m.o.seed {
		seeds = append(seeds, k)
	}
	sort.Ints(seeds)
	starts := append(append([]int(nil), seeds...), m.g1.AtomKeys()...)
	for _, s := range starts {
		if seen[s] {
			continue
		}
		seen[s] = true
		queue = append(queue[:0], s)
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			m.order = append(m.order, u)
			for _, n := range m.nb1[u] {
				if !seen[n] {
					seen[n] = true
					queue = append(queue, n)
				}
			}
		}
	}
	//seeds go first even if BFS from an earlier seed reached them later.
	if len(seeds) > 0 {
		isSeed := make(map[int]bool, len(seeds))
		for _, s := range seeds {
			isSeed[s] = true
		}
		rest := make([]int, 0, len(m.order))
		for _, u := range m.order {
			if !isSeed[u] {
				rest = append(rest, u)
			}
		}
		m.order = append(append([]int(nil), seeds...), rest...)
	}
}

//feasible returns true if u (in g1) can be mapped to v (in g2) given the
//current partial mapping.
func (m *matcher) feasible(u, v int) bool {
	if _, ok := m.m21[v]; ok {
		return false
	}
	if m.l1[u] != m.l2[v] || len(m.nb1[u]) != len(m.nb2[v]) {
		return false
	}
	mapped := 0
	for _, n := range m.nb1[u] {
		w, ok := m.m12[n]
		if !ok {
			continue
		}
		mapped++
		b2, ok := m.g2.Bond(v, w)
		if !ok {
			return false
		}
		b1, _ := m.g1.Bond(u, n)
		if m.o.bondLabel(b1) != m.o.bondLabel(b2) {
			return false
		}
	}
	for _, n := range m.nb2[v] {
		if _, ok := m.m21[n]; ok {
			mapped--
		}
	}
	return mapped == 0
}

//candidates returns the atoms of g2 that u could be mapped to, ascending.
func (m *matcher) candidates(u int) []int {
	if s, ok := m.o.seed[u]; ok {
		return []int{s}
	}
	for _, n := range m.nb1[u] {
		if w, ok := m.m12[n]; ok {
			return m.nb2[w]
		}
	}
	return m.g2.AtomKeys()
}

func (m *matcher) match(depth int) bool {
	if depth == len(m.order) {
		return true
	}
	u := m.order[depth]
	for _, v := range m.candidates(u) {
		if !m.feasible(u, v) {
			continue
		}
		m.m12[u] = v
		m.m21[v] = u
		if m.match(depth + 1) {
			return true
		}
		delete(m.m12, u)
		delete(m.m21, v)
	}
	return false
}

//Isomorphism returns a bijection from the atom keys of g1 to those of g2 that
//preserves atom and bond attributes, and true, or nil and false if the graphs are
//not isomorphic.
func Isomorphism(g1, g2 *chem.Graph, opts ...Option) (map[int]int, bool) {
	o := new(options)
	for _, f := range opts {
		f(o)
	}
	for k, v := range o.seed {
		if !g1.HasAtom(k) || !g2.HasAtom(v) {
			return nil, false
		}
	}
	m := newMatcher(g1, g2, o)
	if m.quickReject() {
		return nil, false
	}
	m.matchOrder()
	if !m.match(0) {
		return nil, false
	}
	return m.m12, true
}

//Isomorphic returns true if g1 and g2 are isomorphic.
func Isomorphic(g1, g2 *chem.Graph, opts ...Option) bool {
	_, ok := Isomorphism(g1, g2, opts...)
	return ok
}

//BackboneIsomorphism returns an isomorphism between the implicit-hydrogen forms of
//g1 and g2, i.e. one that only maps backbone atoms and compares hydrogen counts.
func BackboneIsomorphism(g1, g2 *chem.Graph, opts ...Option) (map[int]int, bool, error) {
	i1, err := g1.Implicit()
	if err != nil {
		return nil, false, chem.ErrDecorate(err, "BackboneIsomorphism")
	}
	i2, err := g2.Implicit()
	if err != nil {
		return nil, false, chem.ErrDecorate(err, "BackboneIsomorphism")
	}
	iso, ok := Isomorphism(i1, i2, opts...)
	return iso, ok, nil
}

//Inverse returns the inverse of the bijection m.
func Inverse(m map[int]int) map[int]int {
	ret := make(map[int]int, len(m))
	for k, v := range m {
		ret[v] = k
	}
	return ret
}
