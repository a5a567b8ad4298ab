package chem

import (
	"errors"
	"fmt"
	"testing"
)

func benzeneSkeleton() *Graph {
	atoms := make(map[int]Atom)
	bonds := make(map[BondKey]Bond)
	for i := 0; i < 6; i++ {
		atoms[i] = Atom{Symbol: "C", ImplicitH: 1}
		bonds[NewBondKey(i, (i+1)%6)] = Bond{Order: 1}
	}
	return MustGraph(atoms, bonds)
}

func TestRadicalElectrons(Te *testing.T) {
	allyl := propaneLike(2, 1, 2)
	rad, err := RadicalElectrons(allyl)
	if err != nil {
		Te.Fatal(err)
	}
	for k, v := range rad {
		if v != 1 {
			Te.Errorf("atom %d should have 1 radical electron, has %d", k, v)
		}
	}
	sites, _ := RadicalSites(allyl)
	if fmt.Sprint(sites) != "[0 1 2]" {
		Te.Errorf("unexpected radical sites %v", sites)
	}
	mults, _ := PossibleSpinMultiplicities(allyl)
	if fmt.Sprint(mults) != "[2 4]" {
		Te.Errorf("unexpected multiplicities %v", mults)
	}
}

func TestValenceOverflow(Te *testing.T) {
	G := propaneLike(4, 2, 3)
	if _, err := RadicalElectrons(G); !errors.Is(err, ErrInvalidGraph) {
		Te.Errorf("pentavalent carbon should fail with ErrInvalidGraph, got %v", err)
	}
	if _, err := Subresonances(G); !errors.Is(err, ErrInvalidGraph) {
		Te.Errorf("Subresonances should fail fast, got %v", err)
	}
	X := MustGraph(map[int]Atom{0: {Symbol: "Xx"}}, nil)
	if _, err := RadicalElectrons(X); !errors.Is(err, ErrInvalidGraph) {
		Te.Errorf("unknown element should fail, got %v", err)
	}
}

func TestSubresonancesAllyl(Te *testing.T) {
	allyl := propaneLike(2, 1, 2)
	res, err := Subresonances(allyl)
	if err != nil {
		Te.Fatal(err)
	}
	if len(res) != 3 {
		Te.Fatalf("allyl has 3 subresonances, got %d", len(res))
	}
	if !res[0].Equal(allyl) {
		Te.Errorf("the first subresonance should be the graph itself")
	}
	low, err := LowSpinResonance(allyl)
	if err != nil {
		Te.Fatal(err)
	}
	if m, _ := MaximumSpinMultiplicity(low); m != 2 {
		Te.Errorf("low spin allyl should be a doublet, got %d", m)
	}
	high, _ := HighSpinResonance(allyl)
	if m, _ := MaximumSpinMultiplicity(high); m != 4 {
		Te.Errorf("high spin allyl should be a quartet, got %d", m)
	}
}

func TestResonancesBenzene(Te *testing.T) {
	bz := benzeneSkeleton()
	res, err := Resonances(bz)
	if err != nil {
		Te.Fatal(err)
	}
	//the matchings of a 6-cycle.
	if len(res) != 18 {
		Te.Errorf("benzene skeleton should have 18 resonances, got %d", len(res))
	}
	for _, r := range res {
		rad, err := RadicalElectrons(r)
		if err != nil {
			Te.Fatalf("resonance %s is not valid: %v", r, err)
		}
		for k, v := range rad {
			if v < 0 {
				Te.Errorf("atom %d has %d radical electrons in %s", k, v, r)
			}
		}
	}
	low, _ := LowSpinResonance(bz)
	doubles := 0
	for _, k := range low.BondKeys() {
		if b, _ := low.Bond(k[0], k[1]); b.Order == 2 {
			doubles++
		}
	}
	if doubles != 3 {
		Te.Errorf("Kekule structure should have 3 double bonds, got %s", low)
	}
}

func TestSubresonancesKeepOrders(Te *testing.T) {
	//ethylene already has its double bond, nothing to add.
	G := MustGraph(map[int]Atom{0: {Symbol: "C", ImplicitH: 2}, 1: {Symbol: "C", ImplicitH: 2}},
		map[BondKey]Bond{{0, 1}: {Order: 2}})
	res, err := Subresonances(G)
	if err != nil {
		Te.Fatal(err)
	}
	if len(res) != 1 {
		Te.Errorf("ethylene has a single subresonance, got %d", len(res))
	}
}
