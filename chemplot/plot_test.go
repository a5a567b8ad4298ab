package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/stereo"
)

func TestProjectionPlot(Te *testing.T) {
	G := chem.MustGraph(map[int]chem.Atom{
		0: {Symbol: "C"},
		1: {Symbol: "C"},
		2: {Symbol: "O"},
		3: {Symbol: "H"},
	}, map[chem.BondKey]chem.Bond{
		{0, 1}: {Order: 2},
		{1, 2}: {Order: 1},
		{2, 3}: {Order: 1},
	})
	S, err := stereo.Synthesize(G, stereo.Options{})
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "enol")
	for _, P := range []Plane{XY, XZ, YZ} {
		if err := ProjectionPlot(S, P, "Enol", name); err != nil {
			Te.Fatal(err)
		}
		info, err := os.Stat(name + ".png")
		if err != nil {
			Te.Fatal(err)
		}
		if info.Size() == 0 {
			Te.Errorf("empty plot")
		}
	}
}

func TestProjectionMissingAtom(Te *testing.T) {
	G := chem.MustGraph(map[int]chem.Atom{0: {Symbol: "O"}}, nil)
	S := &stereo.Structure{Graph: G}
	if _, err := Projection(S, XY, ""); err == nil {
		Te.Errorf("an atom without position should give an error")
	}
}

func TestElementColors(Te *testing.T) {
	c := elementColors(map[string]bool{"C": true, "O": true, "H": true})
	if c["C"] == c["O"] {
		Te.Errorf("C and O share a color %v", c["C"])
	}
	if c["H"].R != 160 {
		Te.Errorf("unexpected hydrogen color %v", c["H"])
	}
}
