package canon

import (
	"testing"

	chem "github.com/rmera/molgraph"
)

func TestMorganTotalOrder(Te *testing.T) {
	G := chem.MustGraph(map[int]chem.Atom{
		3: {Symbol: "C", ImplicitH: 3},
		7: {Symbol: "C", ImplicitH: 2},
		9: {Symbol: "O", ImplicitH: 1},
		1: {Symbol: "Cl"},
	}, map[chem.BondKey]chem.Bond{
		{3, 7}: {Order: 1},
		{7, 9}: {Order: 1},
		{1, 3}: {Order: 1},
	})
	r, err := Morgan{}.AtomPriority(G)
	if err != nil {
		Te.Fatal(err)
	}
	seen := make(map[int]bool)
	for k, v := range r {
		if v < 0 || v >= G.Len() || seen[v] {
			Te.Errorf("rank %d of atom %d is not valid or repeated: %v", v, k, r)
		}
		seen[v] = true
	}
	if !(r[7] < r[3] && r[3] < r[9] && r[9] < r[1]) {
		Te.Errorf("carbons should rank below O, O below Cl, and the CH2 below the CH3: %v", r)
	}
}

func TestMorganRelabel(Te *testing.T) {
	//F-CH(Cl)-CH2-Br: no two atoms are equivalent.
	G := chem.MustGraph(map[int]chem.Atom{
		0: {Symbol: "C", ImplicitH: 1},
		1: {Symbol: "F"},
		2: {Symbol: "Cl"},
		3: {Symbol: "C", ImplicitH: 2},
		4: {Symbol: "Br"},
	}, map[chem.BondKey]chem.Bond{
		{0, 1}: {Order: 1},
		{0, 2}: {Order: 1},
		{0, 3}: {Order: 1},
		{3, 4}: {Order: 1},
	})
	mapping := map[int]int{0: 14, 1: 10, 2: 13, 3: 11, 4: 12}
	H, err := G.Relabel(mapping)
	if err != nil {
		Te.Fatal(err)
	}
	rg, _ := Morgan{}.AtomPriority(G)
	rh, _ := Morgan{}.AtomPriority(H)
	for k, v := range mapping {
		if rg[k] != rh[v] {
			Te.Errorf("atom %d has rank %d, its image %d has rank %d", k, rg[k], v, rh[v])
		}
	}
}

func TestMorganUnknownElement(Te *testing.T) {
	G := chem.MustGraph(map[int]chem.Atom{0: {Symbol: "Qq"}}, nil)
	if _, err := (Morgan{}).AtomPriority(G); err == nil {
		Te.Errorf("unknown elements should give an error")
	}
}
