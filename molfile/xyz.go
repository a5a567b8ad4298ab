/*
 * xyz.go, part of molgraph.
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

package molfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/stereo"
	"gonum.org/v1/gonum/spatial/r3"
)

//WriteXYZ writes the coordinates of S to w in the XYZ format, atoms in ascending key order.
//The bonds are lost.
func WriteXYZ(w io.Writer, comment string, S *stereo.Structure) error {
	M, keys := S.Matrix()
	out := bufio.NewWriter(w)
	fmt.Fprintf(out, "%-4d\n", len(keys))
	fmt.Fprintf(out, "%s\n", strings.ReplaceAll(comment, "\n", " "))
	for i, k := range keys {
		a, _ := S.Graph.Atom(k)
		c := M.Vec(i)
		if _, err := fmt.Fprintf(out, "%-2s  %12.6f%12.6f%12.6f\n", a.Symbol, c.X, c.Y, c.Z); err != nil {
			return err
		}
	}
	return out.Flush()
}

//ReadXYZ reads an XYZ file. It returns the symbols and the positions of the atoms, with
//keys 0 to N-1 in the order of the file, and the comment line.
func ReadXYZ(r io.Reader) (map[int]string, map[int]r3.Vec, string, error) {
	const funcname = "molfile.ReadXYZ"
	xyz := bufio.NewReader(r)
	line, err := xyz.ReadString('\n')
	if err != nil {
		return nil, nil, "", chem.NewError(ErrFormat, funcname, "no atom count")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, nil, "", chem.NewError(ErrFormat, funcname, "bad atom count %q", strings.TrimSpace(line))
	}
	comment, err := xyz.ReadString('\n')
	if err != nil && natoms > 0 {
		return nil, nil, "", chem.NewError(ErrFormat, funcname, "no comment line")
	}
	symbols := make(map[int]string, natoms)
	coords := make(map[int]r3.Vec, natoms)
	for i := 0; i < natoms; i++ {
		line, err = xyz.ReadString('\n')
		if err != nil && line == "" {
			return nil, nil, "", chem.NewError(ErrFormat, funcname, "expected %d atoms, got %d", natoms, i)
		}
		fields := strings.Fields(line)
		if len(fields) < 4 {
			return nil, nil, "", chem.NewError(ErrFormat, funcname, "atom line %d ill formed", i+1)
		}
		var c [3]float64
		for j := range c {
			if c[j], err = strconv.ParseFloat(fields[j+1], 64); err != nil {
				return nil, nil, "", chem.NewError(ErrFormat, funcname, "atom line %d: %v", i+1, err)
			}
		}
		symbols[i] = fields[0]
		coords[i] = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
	}
	return symbols, coords, strings.TrimRight(comment, "\r\n"), nil
}
