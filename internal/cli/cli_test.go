package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rmera/molgraph/chemjson"
	"github.com/rmera/molgraph/molfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const records = `
species:
  - name: CH4
    atoms: [{key: 0, symbol: C, hydrogens: 4}]
  - name: OH
    atoms: [{key: 0, symbol: O, hydrogens: 1}]
  - name: CH3
    atoms: [{key: 0, symbol: C, hydrogens: 3}]
  - name: H2O
    atoms: [{key: 0, symbol: O, hydrogens: 2}]
  - name: CH5
    atoms: [{key: 0, symbol: C, hydrogens: 5}]
reactions:
  - reactants: [CH4, OH]
    products: [CH3, H2O]
  - reactants: [CH5]
    products: [CH4]
`

const allyl = `
species:
  - name: allyl
    atoms:
      - {key: 0, symbol: C, hydrogens: 2}
      - {key: 1, symbol: C, hydrogens: 1}
      - {key: 2, symbol: C, hydrogens: 2}
    bonds:
      - {atoms: [0, 1], order: 1}
      - {atoms: [1, 2], order: 1}
`

const chiral = `
species:
  - name: R/S CHFClBr
    atoms:
      - {key: 0, symbol: C, parity: "true"}
      - {key: 1, symbol: H}
      - {key: 2, symbol: F}
      - {key: 3, symbol: Cl}
      - {key: 4, symbol: Br}
    bonds:
      - {atoms: [0, 1], order: 1}
      - {atoms: [0, 2], order: 1}
      - {atoms: [0, 3], order: 1}
      - {atoms: [0, 4], order: 1}
  - name: ring
    atoms:
      - {key: 0, symbol: C, hydrogens: 2}
      - {key: 1, symbol: C, hydrogens: 2}
      - {key: 2, symbol: C, hydrogens: 2}
    bonds:
      - {atoms: [0, 1], order: 1}
      - {atoms: [1, 2], order: 1}
      - {atoms: [0, 2], order: 1}
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(buf)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, "classify", writeFile(t, "r.yaml", records), "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestClassifyText(t *testing.T) {
	out, err := execute(t, "classify", writeFile(t, "r.yaml", records))
	require.NoError(t, err)
	assert.Contains(t, out, "CH4 + OH = CH3 + H2O: hydrogen abstraction [1 0 1 0]")
	assert.Contains(t, out, "CH5 = CH4: error:")
	assert.Contains(t, out, "1 classified, 1 failed")
}

func TestClassifyJSONAndLedger(t *testing.T) {
	db := filepath.Join(t.TempDir(), "ledger.db")
	out, err := execute(t, "classify", writeFile(t, "r.yaml", records), "--format", "json", "--db", db)
	require.NoError(t, err)
	var info chemjson.Info
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, 1, info.Classified)
	assert.Equal(t, 1, info.Failed)
	require.Len(t, info.Results, 2)
	assert.Equal(t, "hydrogen abstraction", info.Results[0].Class)
	assert.FileExists(t, db)
}

func TestClassifyMissingFile(t *testing.T) {
	_, err := execute(t, "classify", filepath.Join(t.TempDir(), "none.yaml"))
	assert.Error(t, err)
}

func TestResonance(t *testing.T) {
	path := writeFile(t, "allyl.yaml", allyl)
	out, err := execute(t, "resonance", path)
	require.NoError(t, err)
	assert.Contains(t, out, "allyl: 3 resonance structures, multiplicities [2 4], radical sites [0 1 2]")

	out, err = execute(t, "resonance", path, "--records")
	require.NoError(t, err)
	sp, err := chemjson.ReadSpecies(strings.NewReader(out))
	require.NoError(t, err)
	require.Len(t, sp, 3)
	assert.Equal(t, "allyl/0", sp[0].Name)
	doubles := 0
	for _, k := range sp[0].Graph.BondKeys() {
		if b, _ := sp[0].Graph.Bond(k[0], k[1]); b.Order == 2 {
			doubles++
		}
	}
	assert.Equal(t, 1, doubles, "the low spin structure comes first")
}

func TestGeometry(t *testing.T) {
	dir := t.TempDir()
	cfg := writeFile(t, "molgraph.yaml", "geometry:\n  compress: true\n  plot: true\n")
	out, err := execute(t, "geometry", writeFile(t, "c.yaml", chiral), "--config", cfg, "--out", dir, "--format", "json")
	require.NoError(t, err)
	var res []GeometryOutput
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res, 2)
	mol := filepath.Join(dir, "R_S_CHFClBr.mol.zst")
	assert.Equal(t, []string{mol, filepath.Join(dir, "R_S_CHFClBr.xyz"), filepath.Join(dir, "R_S_CHFClBr.png")}, res[0].Files)
	assert.Contains(t, res[1].Error, "rings")
	G, coords, err := molfile.ReadFile(mol)
	require.NoError(t, err)
	assert.Equal(t, 5, G.Len())
	assert.Len(t, coords, 5)
	assert.FileExists(t, filepath.Join(dir, "R_S_CHFClBr.png"))
}
