/*
 * molfile.go, part of molgraph.
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

//Package molfile writes and reads molgraph structures in the MDL V2000 molfile format.
//Atoms are numbered in ascending key order. The atom stereo parity column holds
//the rank-based parity used by molgraph (1 for true, 2 for false), not the MDL
//numbering parity. Files with the .zst extension are compressed with z-standard.
package molfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/stereo"
	"gonum.org/v1/gonum/spatial/r3"
)

//ErrFormat is wrapped by the errors returned for malformed molfiles.
var ErrFormat = errors.New("malformed molfile")

const countsfmt = "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n"

func parityField(p chem.Parity) int {
	switch p {
	case chem.ParityTrue:
		return 1
	case chem.ParityFalse:
		return 2
	}
	return 0
}

func fieldParity(f int) chem.Parity {
	switch f {
	case 1:
		return chem.ParityTrue
	case 2:
		return chem.ParityFalse
	}
	return chem.NoParity
}

//Write writes S to w as a V2000 molfile with the given name in the header.
func Write(w io.Writer, name string, S *stereo.Structure) error {
	M, keys := S.Matrix()
	index := make(map[int]int, len(keys))
	for i, k := range keys {
		index[k] = i + 1
	}
	bonds := S.Graph.BondKeys()
	if len(keys) > 999 || len(bonds) > 999 {
		return chem.NewError(ErrFormat, "molfile.Write", "%d atoms and %d bonds don't fit in a V2000 counts line", len(keys), len(bonds))
	}
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "%s\n  molgraph\n\n", strings.TrimSpace(name))
	fmt.Fprintf(out, countsfmt, len(keys), len(bonds))
	for i, k := range keys {
		a, _ := S.Graph.Atom(k)
		v := M.Vec(i)
		hhh := 0
		if a.ImplicitH > 0 {
			hhh = a.ImplicitH + 1
		}
		fmt.Fprintf(out, "%10.4f%10.4f%10.4f %-3s 0  0%3d%3d  0  0  0  0  0  0  0  0\n", v.X, v.Y, v.Z, a.Symbol, parityField(a.Parity), hhh)
	}
	for _, b := range bonds {
		B, _ := S.Graph.Bond(b[0], b[1])
		fmt.Fprintf(out, "%3d%3d%3d  0\n", index[b[0]], index[b[1]], B.Order)
	}
	fmt.Fprint(out, "M  END\n")
	return out.Flush()
}

//WriteFile writes S to the file name, compressing it if name ends in .zst.
func WriteFile(name string, S *stereo.Structure) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	title := strings.TrimSuffix(strings.TrimSuffix(filepath.Base(name), ".zst"), ".mol")
	if !strings.HasSuffix(name, ".zst") {
		return Write(f, title, S)
	}
	z, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	if err = Write(z, title, S); err != nil {
		z.Close()
		return err
	}
	return z.Close()
}

func field(l string, from, to int) string {
	if len(l) < to {
		to = len(l)
	}
	if from >= to {
		return ""
	}
	return strings.TrimSpace(l[from:to])
}

func intField(l string, from, to int) (int, error) {
	s := field(l, from, to)
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func floatField(l string, from, to int) (float64, error) {
	return strconv.ParseFloat(field(l, from, to), 64)
}

//Read reads the first molecule of a V2000 molfile. The atom keys of the returned
//graph are the 0-based atom numbers of the file. Bond parities are not stored in the
//format, and are not set.
func Read(r io.Reader) (*chem.Graph, map[int]r3.Vec, error) {
	const funcname = "molfile.Read"
	sc := bufio.NewScanner(r)
	var lines []string
	for sc.Scan() {
		l := strings.TrimRight(sc.Text(), "\r")
		if strings.HasPrefix(l, "M  END") {
			break
		}
		lines = append(lines, l)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if len(lines) < 4 || !strings.Contains(lines[3], "V2000") {
		return nil, nil, chem.NewError(ErrFormat, funcname, "V2000 counts line not found")
	}
	natoms, err := intField(lines[3], 0, 3)
	if err != nil {
		return nil, nil, chem.NewError(ErrFormat, funcname, "bad atom count: %v", err)
	}
	nbonds, err := intField(lines[3], 3, 6)
	if err != nil {
		return nil, nil, chem.NewError(ErrFormat, funcname, "bad bond count: %v", err)
	}
	body := lines[4:]
	if len(body) < natoms+nbonds {
		return nil, nil, chem.NewError(ErrFormat, funcname, "expected %d atom and %d bond lines, got %d lines", natoms, nbonds, len(body))
	}
	atoms := make(map[int]chem.Atom, natoms)
	coords := make(map[int]r3.Vec, natoms)
	for i, l := range body[:natoms] {
		var c [3]float64
		for j := range c {
			if c[j], err = floatField(l, 10*j, 10*(j+1)); err != nil {
				return nil, nil, chem.NewError(ErrFormat, funcname, "atom %d: bad coordinate: %v", i+1, err)
			}
		}
		sss, err := intField(l, 39, 42)
		if err != nil {
			return nil, nil, chem.NewError(ErrFormat, funcname, "atom %d: bad parity: %v", i+1, err)
		}
		hhh, err := intField(l, 42, 45)
		if err != nil {
			return nil, nil, chem.NewError(ErrFormat, funcname, "atom %d: bad hydrogen count: %v", i+1, err)
		}
		a := chem.Atom{Symbol: field(l, 31, 34), Parity: fieldParity(sss)}
		if hhh > 0 {
			a.ImplicitH = hhh - 1
		}
		atoms[i] = a
		coords[i] = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	}
	bonds := make(map[chem.BondKey]chem.Bond, nbonds)
	for i, l := range body[natoms : natoms+nbonds] {
		var f [3]int
		for j := range f {
			if f[j], err = intField(l, 3*j, 3*(j+1)); err != nil {
				return nil, nil, chem.NewError(ErrFormat, funcname, "bond %d: %v", i+1, err)
			}
		}
		bonds[chem.NewBondKey(f[0]-1, f[1]-1)] = chem.Bond{Order: f[2]}
	}
	G, err := chem.NewGraph(atoms, bonds)
	if err != nil {
		return nil, nil, chem.ErrDecorate(err, funcname)
	}
	return G, coords, nil
}

//ReadFile reads a molfile, decompressing it if the name ends in .zst.
func ReadFile(name string) (*chem.Graph, map[int]r3.Vec, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	if !strings.HasSuffix(name, ".zst") {
		return Read(f)
	}
	z, err := zstd.NewReader(f)
	if err != nil {
		return nil, nil, err
	}
	defer z.Close()
	return Read(z)
}
