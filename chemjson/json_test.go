package chemjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/rxn"
)

const yamlRecords = `
species:
  - name: CH4
    atoms:
      - {key: 0, symbol: C, hydrogens: 4}
  - name: OH
    atoms:
      - {key: 0, symbol: O, hydrogens: 1}
  - name: CH3
    atoms:
      - {key: 0, symbol: C, hydrogens: 3}
  - name: H2O
    atoms:
      - {key: 0, symbol: O, hydrogens: 2}
  - name: C2H4
    atoms:
      - {key: 0, symbol: C, hydrogens: 2}
      - {key: 1, symbol: C, hydrogens: 2}
    bonds:
      - {atoms: [0, 1], order: 2}
reactions:
  - reactants: [CH4, OH]
    products: [CH3, H2O]
  - reactants: [CH4]
    products: [C2H4]
`

const jsonRecords = `{"species": [
  {"name": "CHFClBr", "atoms": [
     {"key": 0, "symbol": "C", "parity": "true"},
     {"key": 1, "symbol": "H"}, {"key": 2, "symbol": "F"},
     {"key": 3, "symbol": "Cl"}, {"key": 4, "symbol": "Br"}],
   "bonds": [{"atoms": [0, 1], "order": 1}, {"atoms": [0, 2], "order": 1},
     {"atoms": [0, 3], "order": 1}, {"atoms": [0, 4], "order": 1}]}
]}`

func TestReadReactions(Te *testing.T) {
	cands, err := ReadReactions(strings.NewReader(yamlRecords))
	if err != nil {
		Te.Fatal(err)
	}
	if len(cands) != 2 {
		Te.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if s := cands[0].String(); s != "CH4 + OH = CH3 + H2O" {
		Te.Errorf("unexpected candidate %s", s)
	}
	if cands[0].ID == cands[1].ID {
		Te.Errorf("candidates share an ID")
	}
	r, err := rxn.Classify(cands[0])
	if err != nil || r.Class != rxn.HydrogenAbstractionClass {
		Te.Errorf("expected an abstraction, got %+v %v", r, err)
	}
	eth := cands[1].Products[0].Graph
	if b, ok := eth.Bond(0, 1); !ok || b.Order != 2 {
		Te.Errorf("ethylene lost its double bond: %s", eth)
	}
}

func TestReadSpeciesJSON(Te *testing.T) {
	sp, err := ReadSpecies(strings.NewReader(jsonRecords))
	if err != nil {
		Te.Fatal(err)
	}
	if len(sp) != 1 || sp[0].Name != "CHFClBr" {
		Te.Fatalf("unexpected species %v", sp)
	}
	if a, _ := sp[0].Graph.Atom(0); a.Parity != chem.ParityTrue {
		Te.Errorf("parity not read: %+v", a)
	}
	if n := sp[0].Graph.HydrogenCount(); n != 1 {
		Te.Errorf("expected 1 hydrogen, got %d", n)
	}
	fmt.Println(sp[0].Graph)
}

func TestBadRecords(Te *testing.T) {
	cases := map[string]string{
		"unknown species": "species:\n  - name: A\n    atoms: [{key: 0, symbol: C}]\nreactions:\n  - {reactants: [A], products: [B]}\n",
		"bad parity":      "species:\n  - name: A\n    atoms: [{key: 0, symbol: C, parity: maybe}]\n",
		"missing atom":    "species:\n  - name: A\n    atoms: [{key: 0, symbol: C}]\n    bonds: [{atoms: [0, 1], order: 1}]\n",
		"repeated name":   "species:\n  - name: A\n    atoms: [{key: 0, symbol: C}]\n  - name: A\n    atoms: [{key: 0, symbol: O}]\nreactions: [{reactants: [A], products: [A]}]\n",
		"not yaml":        "species: [",
	}
	for name, c := range cases {
		_, err := ReadReactions(strings.NewReader(c))
		var jerr *Error
		if !errors.As(err, &jerr) || !jerr.IsError {
			Te.Errorf("%s: expected a *chemjson.Error, got %v", name, err)
		}
	}
}

func TestSpeciesRoundTrip(Te *testing.T) {
	sp, err := ReadSpecies(strings.NewReader(jsonRecords))
	if err != nil {
		Te.Fatal(err)
	}
	var buf bytes.Buffer
	if jerr := EncodeSpecies(&buf, sp); jerr != nil {
		Te.Fatal(jerr)
	}
	back, err := ReadSpecies(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if !back[0].Graph.Equal(sp[0].Graph) {
		Te.Errorf("species changed: %s vs %s", back[0].Graph, sp[0].Graph)
	}
}

func TestSend(Te *testing.T) {
	cands, err := ReadReactions(strings.NewReader(yamlRecords))
	if err != nil {
		Te.Fatal(err)
	}
	r, _ := rxn.Classify(cands[0])
	failed := map[uuid.UUID]error{cands[1].ID: chem.NewError(chem.ErrUnsupportedStructure, "Classify", "test failure")}
	info := NewInfo(cands, []rxn.Result{r}, failed)
	var buf bytes.Buffer
	if jerr := info.Send(&buf); jerr != nil {
		Te.Fatal(jerr)
	}
	back := new(Info)
	if err := json.Unmarshal(buf.Bytes(), back); err != nil {
		Te.Fatal(err)
	}
	if back.Classified != 1 || back.Failed != 1 || len(back.Results) != 2 {
		Te.Fatalf("unexpected info %+v", back)
	}
	if back.Results[0].Class != "hydrogen abstraction" || back.Results[0].Error != nil {
		Te.Errorf("unexpected first result %+v", back.Results[0])
	}
	if e := back.Results[1].Error; e == nil || !e.InProcess || !strings.Contains(e.Message, "test failure") {
		Te.Errorf("unexpected second result %+v", back.Results[1])
	}
}
