/*
 * v3_test.go, part of molgraph.
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

package v3

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMatrixVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 3 {
		Te.Errorf("expected 3 vectors, got %d", A.NVecs())
	}
	View := A.VecView(1)
	View.Set(0, 0, 100)
	if v := A.Vec(1); v.X != 100 {
		Te.Errorf("view not reflected in the matrix: %v", A)
	}
	A.SetVec(2, r3.Vec{X: -1, Y: -2, Z: -3})
	if v := A.Vec(2); v != (r3.Vec{X: -1, Y: -2, Z: -3}) {
		Te.Errorf("SetVec failed: %v", v)
	}
	if _, err := NewMatrix([]float64{1, 2}); err == nil {
		Te.Errorf("a 2-element slice should not make a Matrix")
	}
	fmt.Println(A)
}

func TestAddVec(Te *testing.T) {
	A := FromVecs([]r3.Vec{{X: 1}, {Y: 1}})
	A.AddVec(A, r3.Vec{X: 1, Y: 1, Z: 1})
	if A.Vec(0) != (r3.Vec{X: 2, Y: 1, Z: 1}) || A.Vec(1) != (r3.Vec{X: 1, Y: 2, Z: 1}) {
		Te.Errorf("AddVec failed: %v", A)
	}
	A.SubVec(A, r3.Vec{X: 1, Y: 1, Z: 1})
	if A.Vec(0) != (r3.Vec{X: 1}) {
		Te.Errorf("SubVec failed: %v", A)
	}
}

func TestRotatorAlign(Te *testing.T) {
	cases := [][2]r3.Vec{
		{{X: 1}, {Y: 1}},
		{{X: 1, Y: 1, Z: 1}, {X: -1, Y: 0.5, Z: 2}},
		{{X: 1}, {X: 3}},
		{{X: 1, Y: 2, Z: 3}, {X: -1, Y: -2, Z: -3}},
		{{Z: 1}, {Z: -1}},
	}
	for _, c := range cases {
		R, err := RotatorAlign(c[0], c[1])
		if err != nil {
			Te.Fatal(err)
		}
		if d := mat.Det(R); math.Abs(d-1) > 1e-9 {
			Te.Errorf("rotation %v -> %v has determinant %f", c[0], c[1], d)
		}
		A := FromVecs([]r3.Vec{c[0]})
		A.Rotate(A, R)
		want := r3.Scale(r3.Norm(c[0]), r3.Unit(c[1]))
		if !Same(A.Vec(0), want, 1e-9) {
			Te.Errorf("rotation %v -> %v gives %v", c[0], c[1], A.Vec(0))
		}
	}
	if _, err := RotatorAlign(r3.Vec{}, r3.Vec{X: 1}); err == nil {
		Te.Errorf("aligning a zero vector should fail")
	}
}

func TestRotationKeepsDistances(Te *testing.T) {
	A := FromVecs([]r3.Vec{{X: 0}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: -1, Z: -1}, {X: -1, Y: 1, Z: -1}})
	R, _ := RotatorAlign(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: 0.3, Y: -2, Z: 0.1})
	B := Zeros(A.NVecs())
	B.Rotate(A, R)
	for i := 0; i < A.NVecs(); i++ {
		for j := i + 1; j < A.NVecs(); j++ {
			d1 := r3.Norm(r3.Sub(A.Vec(i), A.Vec(j)))
			d2 := r3.Norm(r3.Sub(B.Vec(i), B.Vec(j)))
			if math.Abs(d1-d2) > 1e-9 {
				Te.Errorf("distance %d-%d changed from %f to %f", i, j, d1, d2)
			}
		}
	}
	//a proper rotation keeps handedness
	d1 := Det(A.Vec(1), A.Vec(2), A.Vec(3))
	d2 := Det(B.Vec(1), B.Vec(2), B.Vec(3))
	if math.Abs(d1-d2) > 1e-9 {
		Te.Errorf("determinant changed from %f to %f", d1, d2)
	}
}

func TestPerpendicular(Te *testing.T) {
	for _, v := range []r3.Vec{{X: 1}, {Y: 2}, {Z: -1}, {X: 1, Y: 1, Z: 1}} {
		p := Perpendicular(v)
		if math.Abs(r3.Dot(p, v)) > 1e-9 || math.Abs(r3.Norm(p)-1) > 1e-9 {
			Te.Errorf("%v is not a unit vector perpendicular to %v", p, v)
		}
	}
}

func TestAngleDihedral(Te *testing.T) {
	//tetrahedral angle
	if a := Angle(r3.Vec{X: 1, Y: 1, Z: 1}, r3.Vec{X: 1, Y: -1, Z: -1}); math.Abs(a-math.Acos(-1.0/3)) > 1e-9 {
		Te.Errorf("wrong tetrahedral angle %f", a*180/math.Pi)
	}
	if a := Angle(r3.Vec{X: 2}, r3.Vec{X: 3}); a != 0 {
		Te.Errorf("parallel vectors should give 0, got %f", a)
	}
	a, b, c := r3.Vec{X: -1, Y: 1}, r3.Vec{}, r3.Vec{X: 1}
	cases := []struct {
		d    r3.Vec
		want float64
	}{
		{r3.Vec{X: 2, Y: 1}, 0},
		{r3.Vec{X: 2, Y: -1}, math.Pi},
		{r3.Vec{X: 1, Z: 1}, math.Pi / 2},
		{r3.Vec{X: 1, Z: -1}, -math.Pi / 2},
	}
	for _, v := range cases {
		if d := Dihedral(a, b, c, v.d); math.Abs(math.Abs(d)-math.Abs(v.want)) > 1e-9 {
			Te.Errorf("dihedral to %v should be %f, got %f", v.d, v.want, d)
		}
	}
	fmt.Println("cis", Dihedral(a, b, c, cases[0].d), "trans", Dihedral(a, b, c, cases[1].d))
}
