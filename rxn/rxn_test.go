/*
 * rxn_test.go, part of molgraph.
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
	"errors"
	"fmt"
	"testing"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/internal/logging"
	"github.com/rmera/molgraph/iso"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func chain(hs ...int) *chem.Graph {
	atoms := make(map[int]chem.Atom)
	bonds := make(map[chem.BondKey]chem.Bond)
	for i, h := range hs {
		atoms[i] = chem.Atom{Symbol: "C", ImplicitH: h}
		if i > 0 {
			bonds[chem.NewBondKey(i-1, i)] = chem.Bond{Order: 1}
		}
	}
	return chem.MustGraph(atoms, bonds)
}

func hydroxyl() *chem.Graph {
	return chem.MustGraph(map[int]chem.Atom{0: {Symbol: "O", ImplicitH: 1}}, nil)
}

func water() *chem.Graph {
	return chem.MustGraph(map[int]chem.Atom{0: {Symbol: "O", ImplicitH: 2}}, nil)
}

func ethylene() *chem.Graph {
	return chem.MustGraph(map[int]chem.Atom{
		0: {Symbol: "C", ImplicitH: 2},
		1: {Symbol: "C", ImplicitH: 2},
	}, map[chem.BondKey]chem.Bond{{0, 1}: {Order: 2}})
}

//HO-CH2-CH2.
func hydroxyethyl() *chem.Graph {
	return chem.MustGraph(map[int]chem.Atom{
		0: {Symbol: "C", ImplicitH: 2},
		1: {Symbol: "C", ImplicitH: 2},
		2: {Symbol: "O", ImplicitH: 1},
	}, map[chem.BondKey]chem.Bond{{0, 1}: {Order: 1}, {0, 2}: {Order: 1}})
}

func TestHydrogenAbstraction(Te *testing.T) {
	qh := chain(3, 2, 3)
	q := chain(2, 2, 3)
	a, ok, err := HydrogenAbstraction(qh, q)
	if err != nil {
		Te.Fatal(err)
	}
	if !ok {
		Te.Fatalf("propane and 1-propyl should be related by an abstraction")
	}
	if a.QH != 3 || a.Q != 0 {
		Te.Errorf("expected the first hydrogen of carbon 0, got %+v", a)
	}
	qhe, _ := qh.Explicit()
	qe, _ := q.Explicit()
	removed, err := qhe.RemoveAtoms(a.QH)
	if err != nil {
		Te.Fatal(err)
	}
	if !iso.Isomorphic(removed, qe, iso.WithoutBondOrders()) {
		Te.Errorf("removing %d from QH doesn't give Q", a.QH)
	}
	back, _, _ := qe.AddHydrogen(a.Q)
	if !iso.Isomorphic(back, qhe, iso.WithoutBondOrders()) {
		Te.Errorf("adding a hydrogen at %d to Q doesn't give QH", a.Q)
	}
	all, err := AllHydrogenAbstractions(qh, q)
	if err != nil {
		Te.Fatal(err)
	}
	//any of the 6 methyl hydrogens.
	if len(all) != 6 {
		Te.Errorf("expected 6 matches, got %v", all)
	}
	if all[0] != a {
		Te.Errorf("the first of all the matches should be the one returned, %v %v", all[0], a)
	}
}

func TestNoMatch(Te *testing.T) {
	ethanol := chem.MustGraph(map[int]chem.Atom{
		0: {Symbol: "C", ImplicitH: 3},
		1: {Symbol: "C", ImplicitH: 2},
		2: {Symbol: "O", ImplicitH: 1},
	}, map[chem.BondKey]chem.Bond{{0, 1}: {Order: 1}, {1, 2}: {Order: 1}})
	_, ok, err := HydrogenAbstraction(chain(3, 2, 3), ethanol)
	if err != nil {
		Te.Errorf("no match should not be an error: %v", err)
	}
	if ok {
		Te.Errorf("propane and ethanol are not related by an abstraction")
	}
	//same sizes, but the radical is not where the hydrogen was.
	_, ok, err = HydrogenAbstraction(chain(3, 2, 3), hydroxyethyl())
	if ok || err != nil {
		Te.Errorf("expected no match and no error, got %v %v", ok, err)
	}
	if _, ok, err := Addition(ethylene(), hydroxyl(), chain(3, 3)); ok || err != nil {
		Te.Errorf("expected no addition match and no error, got %v %v", ok, err)
	}
}

func TestInvalidGraph(Te *testing.T) {
	bad := chain(4, 3)
	if _, _, err := HydrogenAbstraction(bad, chain(3, 3)); !errors.Is(err, chem.ErrInvalidGraph) {
		Te.Errorf("expected ErrInvalidGraph, got %v", err)
	}
}

func TestMultibondAddition(Te *testing.T) {
	a, ok, err := Addition(ethylene(), hydroxyl(), hydroxyethyl())
	if err != nil {
		Te.Fatal(err)
	}
	if !ok {
		Te.Fatalf("ethylene + OH should give hydroxyethyl")
	}
	want := AdditionSites{X: 0, Y: 0, XYX: 0, XYY: 2, Multibond: true}
	if a != want {
		Te.Errorf("expected %+v, got %+v", want, a)
	}
	all, _ := AllAdditions(ethylene(), hydroxyl(), hydroxyethyl())
	if fmt.Sprint(all) != "[{0 0 0 2 true} {1 0 0 2 true}]" {
		Te.Errorf("unexpected additions %v", all)
	}
}

func TestRadicalAddition(Te *testing.T) {
	methyl := chain(3)
	methanol := chem.MustGraph(map[int]chem.Atom{
		0: {Symbol: "C", ImplicitH: 3},
		1: {Symbol: "O", ImplicitH: 1},
	}, map[chem.BondKey]chem.Bond{{0, 1}: {Order: 1}})
	a, ok, err := Addition(methyl, hydroxyl(), methanol)
	if err != nil || !ok {
		Te.Fatalf("CH3 + OH should give methanol: %v %v", ok, err)
	}
	want := AdditionSites{X: 0, Y: 0, XYX: 0, XYY: 1}
	if a != want {
		Te.Errorf("expected %+v, got %+v", want, a)
	}
}

func TestHydrogenMigration(Te *testing.T) {
	r := chain(2, 2, 3) //1-propyl
	p := chain(3, 1, 3) //2-propyl
	m, ok, err := HydrogenMigration(r, p)
	if err != nil {
		Te.Fatal(err)
	}
	if !ok {
		Te.Fatalf("1-propyl and 2-propyl are related by a migration")
	}
	want := Migration{RH: 5, RA: 0, PH: 3, PA: 1}
	if m != want {
		Te.Errorf("expected %+v, got %+v", want, m)
	}
	re, _ := r.Explicit()
	if nb := re.Neighbors(m.RH); nb[0] != 1 {
		Te.Errorf("the hydrogen should come from carbon 1, it is on %v", nb)
	}
	//1-propyl into itself: the 1,3 shift between the two terminal carbons.
	all, err := AllHydrogenMigrations(r, r)
	if err != nil {
		Te.Fatal(err)
	}
	if len(all) == 0 {
		Te.Errorf("the degenerate 1,3 shift should be found")
	}
	for _, v := range all {
		if nb := re.Neighbors(v.RH); nb[0] == v.RA {
			Te.Errorf("found a migration where the hydrogen doesn't move: %+v", v)
		}
	}
}

func TestClassify(Te *testing.T) {
	methane := chain(4)
	methyl := chain(3)
	c := NewCandidate([]Species{{"CH4", methane}, {"OH", hydroxyl()}}, []Species{{"CH3", methyl}, {"H2O", water()}})
	r, err := Classify(c)
	if err != nil {
		Te.Fatal(err)
	}
	if r.Class != HydrogenAbstractionClass {
		Te.Fatalf("expected an abstraction, got %s", r.Class)
	}
	if fmt.Sprint(r.Sites) != "[1 0 1 0]" || fmt.Sprint(r.Reactants) != "[CH4 OH]" {
		Te.Errorf("unexpected result %+v", r)
	}
	//the same reaction written the other way around.
	c = NewCandidate([]Species{{"OH", hydroxyl()}, {"CH4", methane}}, []Species{{"H2O", water()}, {"CH3", methyl}})
	r, _ = Classify(c)
	if r.Class != HydrogenAbstractionClass || fmt.Sprint(r.Products) != "[CH3 H2O]" {
		Te.Errorf("unexpected result %+v", r)
	}
	c = NewCandidate([]Species{{"OH", hydroxyl()}, {"C2H4", ethylene()}}, []Species{{"C2H4OH", hydroxyethyl()}})
	r, _ = Classify(c)
	if r.Class != AdditionClass || fmt.Sprint(r.Reactants) != "[C2H4 OH]" {
		Te.Errorf("expected an addition of OH to ethylene, got %+v", r)
	}
	c = NewCandidate([]Species{{"C2H4OH", hydroxyethyl()}}, []Species{{"OH", hydroxyl()}, {"C2H4", ethylene()}})
	r, _ = Classify(c)
	if r.Class != BetaScissionClass {
		Te.Errorf("expected a beta scission, got %+v", r)
	}
	c = NewCandidate([]Species{{"nC3H7", chain(2, 2, 3)}}, []Species{{"iC3H7", chain(3, 1, 3)}})
	r, _ = Classify(c)
	if r.Class != HydrogenMigrationClass {
		Te.Errorf("expected a migration, got %+v", r)
	}
	c = NewCandidate([]Species{{"CH4", methane}}, []Species{{"C2H4", ethylene()}})
	r, err = Classify(c)
	if err != nil || r.Class != Unclassified {
		Te.Errorf("expected an unclassified result, got %+v %v", r, err)
	}
}

func TestClassifierLogs(Te *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	C := NewClassifier(logging.FromCore(core))
	good := NewCandidate([]Species{{"CH4", chain(4)}, {"OH", hydroxyl()}}, []Species{{"CH3", chain(3)}, {"H2O", water()}})
	bad := NewCandidate([]Species{{"CH5", chain(5)}}, []Species{{"CH4", chain(4)}})
	res, errs := C.ClassifyAll([]Candidate{good, bad})
	if len(res) != 1 || len(errs) != 1 {
		Te.Fatalf("expected one result and one error, got %v %v", res, errs)
	}
	if !errors.Is(errs[bad.ID], chem.ErrInvalidGraph) {
		Te.Errorf("expected ErrInvalidGraph, got %v", errs[bad.ID])
	}
	if logs.FilterMessage("candidate not classified").FilterLevelExact(zapcore.WarnLevel).Len() != 1 {
		Te.Errorf("the invalid candidate should be logged as a warning")
	}
	if logs.FilterMessage("candidate classified").Len() != 1 {
		Te.Errorf("the classified candidate should be logged")
	}
}
