/*
 * json.go, part of molgraph.
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
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

package chemjson

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/rxn"
	"gopkg.in/yaml.v3"
)

//AtomRecord is a ready-to-serialize container for an atom. Parity is "true", "false"
//or empty.
type AtomRecord struct {
	Key       int    `yaml:"key" json:"key"`
	Symbol    string `yaml:"symbol" json:"symbol"`
	Hydrogens int    `yaml:"hydrogens,omitempty" json:"hydrogens,omitempty"`
	Parity    string `yaml:"parity,omitempty" json:"parity,omitempty"`
}

//BondRecord is a ready-to-serialize container for a bond.
type BondRecord struct {
	Atoms  [2]int `yaml:"atoms" json:"atoms"`
	Order  int    `yaml:"order" json:"order"`
	Parity string `yaml:"parity,omitempty" json:"parity,omitempty"`
}

//SpeciesRecord is a named molecular graph.
type SpeciesRecord struct {
	Name  string       `yaml:"name" json:"name"`
	Atoms []AtomRecord `yaml:"atoms" json:"atoms"`
	Bonds []BondRecord `yaml:"bonds,omitempty" json:"bonds,omitempty"`
}

//ReactionRecord refers to its species by name.
type ReactionRecord struct {
	Reactants []string `yaml:"reactants" json:"reactants"`
	Products  []string `yaml:"products" json:"products"`
}

//Records is the content of a reaction file.
type Records struct {
	Species   []SpeciesRecord  `yaml:"species" json:"species"`
	Reactions []ReactionRecord `yaml:"reactions,omitempty" json:"reactions,omitempty"`
}

func parseParity(s string) (chem.Parity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return chem.NoParity, nil
	case "true":
		return chem.ParityTrue, nil
	case "false":
		return chem.ParityFalse, nil
	}
	return chem.NoParity, fmt.Errorf("invalid parity %q", s)
}

func parityString(p chem.Parity) string {
	if !p.Defined() {
		return ""
	}
	return p.String()
}

//Graph builds the molecular graph of the record.
func (S SpeciesRecord) Graph() (*chem.Graph, error) {
	atoms := make(map[int]chem.Atom, len(S.Atoms))
	for _, a := range S.Atoms {
		if _, ok := atoms[a.Key]; ok {
			return nil, chem.NewError(chem.ErrInvalidGraph, "SpeciesRecord.Graph", "species %s: repeated atom key %d", S.Name, a.Key)
		}
		p, err := parseParity(a.Parity)
		if err != nil {
			return nil, chem.NewError(chem.ErrInvalidGraph, "SpeciesRecord.Graph", "species %s, atom %d: %v", S.Name, a.Key, err)
		}
		atoms[a.Key] = chem.Atom{Symbol: a.Symbol, ImplicitH: a.Hydrogens, Parity: p}
	}
	bonds := make(map[chem.BondKey]chem.Bond, len(S.Bonds))
	for _, b := range S.Bonds {
		p, err := parseParity(b.Parity)
		if err != nil {
			return nil, chem.NewError(chem.ErrInvalidGraph, "SpeciesRecord.Graph", "species %s, bond %v: %v", S.Name, b.Atoms, err)
		}
		bonds[chem.NewBondKey(b.Atoms[0], b.Atoms[1])] = chem.Bond{Order: b.Order, Parity: p}
	}
	G, err := chem.NewGraph(atoms, bonds)
	if err != nil {
		return nil, chem.ErrDecorate(err, "SpeciesRecord.Graph")
	}
	return G, nil
}

//NewSpeciesRecord returns the record for the graph G with the given name.
func NewSpeciesRecord(name string, G *chem.Graph) SpeciesRecord {
	ret := SpeciesRecord{Name: name}
	for _, k := range G.AtomKeys() {
		a, _ := G.Atom(k)
		ret.Atoms = append(ret.Atoms, AtomRecord{Key: k, Symbol: a.Symbol, Hydrogens: a.ImplicitH, Parity: parityString(a.Parity)})
	}
	for _, k := range G.BondKeys() {
		b, _ := G.Bond(k[0], k[1])
		ret.Bonds = append(ret.Bonds, BondRecord{Atoms: [2]int(k), Order: b.Order, Parity: parityString(b.Parity)})
	}
	return ret
}

//DecodeRecords reads records in YAML or JSON (which YAML parsers also take) from in.
func DecodeRecords(in io.Reader) (*Records, *Error) {
	ret := new(Records)
	if err := yaml.NewDecoder(in).Decode(ret); err != nil && err != io.EOF {
		return nil, NewError("options", "DecodeRecords", err)
	}
	return ret, nil
}

//AllSpecies builds the graphs of all the species in R, in the order they were given.
func (R *Records) AllSpecies() ([]rxn.Species, *Error) {
	ret := make([]rxn.Species, 0, len(R.Species))
	for _, s := range R.Species {
		G, err := s.Graph()
		if err != nil {
			return nil, NewError("selection", "Records.AllSpecies", err)
		}
		ret = append(ret, rxn.Species{Name: s.Name, Graph: G})
	}
	return ret, nil
}

//Candidates builds a reaction candidate for each reaction in R.
func (R *Records) Candidates() ([]rxn.Candidate, *Error) {
	const funcname = "Records.Candidates"
	species, jerr := R.AllSpecies()
	if jerr != nil {
		jerr.Decorate(funcname)
		return nil, jerr
	}
	byname := make(map[string]rxn.Species, len(species))
	for _, s := range species {
		if _, ok := byname[s.Name]; ok {
			return nil, NewError("selection", funcname, fmt.Errorf("species %s defined twice", s.Name))
		}
		byname[s.Name] = s
	}
	side := func(names []string) ([]rxn.Species, error) {
		ret := make([]rxn.Species, 0, len(names))
		for _, n := range names {
			s, ok := byname[n]
			if !ok {
				return nil, fmt.Errorf("unknown species %s", n)
			}
			ret = append(ret, s)
		}
		return ret, nil
	}
	ret := make([]rxn.Candidate, 0, len(R.Reactions))
	for i, r := range R.Reactions {
		reac, err := side(r.Reactants)
		if err != nil {
			return nil, NewError("selection", funcname, fmt.Errorf("reaction %d: %w", i, err))
		}
		prod, err := side(r.Products)
		if err != nil {
			return nil, NewError("selection", funcname, fmt.Errorf("reaction %d: %w", i, err))
		}
		ret = append(ret, rxn.NewCandidate(reac, prod))
	}
	return ret, nil
}

//ReadReactions decodes the records in in and returns the reaction candidates they define.
func ReadReactions(in io.Reader) ([]rxn.Candidate, error) {
	R, jerr := DecodeRecords(in)
	if jerr != nil {
		return nil, jerr
	}
	c, jerr := R.Candidates()
	if jerr != nil {
		return nil, jerr
	}
	return c, nil
}

//ReadSpecies decodes the records in in and returns their species.
func ReadSpecies(in io.Reader) ([]rxn.Species, error) {
	R, jerr := DecodeRecords(in)
	if jerr != nil {
		return nil, jerr
	}
	s, jerr := R.AllSpecies()
	if jerr != nil {
		return nil, jerr
	}
	return s, nil
}

//ResultRecord is the serializable form of a classification, or of its failure.
type ResultRecord struct {
	ID        string   `json:"id"`
	Reaction  string   `json:"reaction"`
	Class     string   `json:"class,omitempty"`
	Reactants []string `json:"reactants,omitempty"`
	Products  []string `json:"products,omitempty"`
	Sites     []int    `json:"sites,omitempty"`
	Error     *Error   `json:"error,omitempty"`
}

//Info is the output of a classification batch, passed back to the calling program.
type Info struct {
	Classified int
	Failed     int
	Results    []ResultRecord
}

//NewInfo collects the results of classifying cands, and the errors of the ones that failed,
//in the order of cands.
func NewInfo(cands []rxn.Candidate, results []rxn.Result, failed map[uuid.UUID]error) *Info {
	byid := make(map[uuid.UUID]rxn.Result, len(results))
	for _, r := range results {
		byid[r.CandidateID] = r
	}
	ret := &Info{Classified: len(results), Failed: len(failed)}
	for _, c := range cands {
		rec := ResultRecord{ID: c.ID.String(), Reaction: c.String()}
		if err, ok := failed[c.ID]; ok {
			rec.Error = NewError("process", "Classify", err)
		} else if r, ok := byid[c.ID]; ok {
			rec.Class = r.Class.String()
			rec.Reactants = r.Reactants
			rec.Products = r.Products
			rec.Sites = r.Sites
		} else {
			continue
		}
		ret.Results = append(ret.Results, rec)
	}
	return ret
}

//Send Marshals the info and writes to out, returns an error or nil
func (J *Info) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(J); err != nil {
		return NewError("postprocess", "Info.Send", err)
	}
	return nil
}

//EncodeSpecies writes the records of the given species to out, in YAML.
func EncodeSpecies(out io.Writer, species []rxn.Species) *Error {
	R := Records{}
	for _, s := range species {
		R.Species = append(R.Species, NewSpeciesRecord(s.Name, s.Graph))
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(R); err != nil {
		return NewError("postprocess", "EncodeSpecies", err)
	}
	if err := enc.Close(); err != nil {
		return NewError("postprocess", "EncodeSpecies", err)
	}
	return nil
}
