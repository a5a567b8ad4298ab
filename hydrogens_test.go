package chem

import (
	"errors"
	"fmt"
	"testing"
)

func TestBackbone(Te *testing.T) {
	//H2: the lower key is the root of the cluster.
	H2 := MustGraph(map[int]Atom{0: {Symbol: "H"}, 1: {Symbol: "H"}}, map[BondKey]Bond{{0, 1}: {Order: 1}})
	if b := H2.BackboneKeys(); fmt.Sprint(b) != "[0]" {
		Te.Errorf("unexpected H2 backbone %v", b)
	}
	if h := H2.ExplicitHydrogens(0); fmt.Sprint(h) != "[1]" {
		Te.Errorf("unexpected H2 explicit hydrogens %v", h)
	}
	G := chiralBromoChloroFluoroMethane()
	if b := G.BackboneKeys(); fmt.Sprint(b) != "[0 2 3 4]" {
		Te.Errorf("unexpected backbone %v", b)
	}
	if G.IsBackbone(1) {
		Te.Errorf("hydrogen 1 should not be backbone")
	}
}

func TestImplicitExplicit(Te *testing.T) {
	G := propaneLike(3, 2, 3)
	E, err := G.Explicit()
	if err != nil {
		Te.Fatal(err)
	}
	if E.Len() != 11 {
		Te.Errorf("explicit propane should have 11 atoms, got %d", E.Len())
	}
	for _, k := range E.AtomKeys() {
		if a, _ := E.Atom(k); a.ImplicitH != 0 {
			Te.Errorf("atom %d still has implicit hydrogens", k)
		}
	}
	//the hydrogens of atom 0 come first.
	if h := E.ExplicitHydrogens(0); fmt.Sprint(h) != "[3 4 5]" {
		Te.Errorf("unexpected hydrogen keys %v", h)
	}
	E2, err := E.Explicit()
	if err != nil {
		Te.Fatal(err)
	}
	if !E2.Equal(E) {
		Te.Errorf("Explicit is not idempotent")
	}
	I, err := E.Implicit()
	if err != nil {
		Te.Fatal(err)
	}
	if !I.Equal(G) {
		Te.Errorf("round trip failed: %s vs %s", I, G)
	}
	I2, _ := I.Implicit()
	if !I2.Equal(I) {
		Te.Errorf("Implicit is not idempotent")
	}
}

func TestImplicitSelection(Te *testing.T) {
	G := chiralBromoChloroFluoroMethane()
	if _, err := G.Implicit(1); !errors.Is(err, ErrInvalidGraph) {
		Te.Errorf("folding a non-backbone atom should fail, got %v", err)
	}
	I, err := G.Implicit(0)
	if err != nil {
		Te.Fatal(err)
	}
	if a, _ := I.Atom(0); a.ImplicitH != 1 || a.Parity != ParityTrue {
		Te.Errorf("bad folded carbon %+v", a)
	}
}

func TestAddHydrogen(Te *testing.T) {
	G := propaneLike(3, 2, 2)
	H, k, err := G.AddHydrogen(2)
	if err != nil {
		Te.Fatal(err)
	}
	if k != 3 {
		Te.Errorf("new hydrogen should get key 3, got %d", k)
	}
	if _, ok := H.Bond(2, 3); !ok {
		Te.Errorf("hydrogen not bonded")
	}
	if G.Len() != 3 {
		Te.Errorf("the original graph was modified")
	}
}
