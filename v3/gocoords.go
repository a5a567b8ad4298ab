/*
 * gocoords.go, part of molgraph.
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
	"strings"

	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

//Everything equal or less than this is considered zero.
const appzero float64 = 1e-9

//AddVec adds vec to each vector of A, putting the result on the receiver.
//F and A can be the same Matrix.
func (F *Matrix) AddVec(A *Matrix, vec r3.Vec) {
	if A.NVecs() != F.NVecs() {
		panic(ErrShape)
	}
	for i := 0; i < A.NVecs(); i++ {
		F.SetVec(i, r3.Add(A.Vec(i), vec))
	}
}

//SubVec subtracts vec from each vector of A, putting the result on the receiver.
func (F *Matrix) SubVec(A *Matrix, vec r3.Vec) {
	F.AddVec(A, r3.Scale(-1, vec))
}

//Rotate applies the rotation operator R (a 3x3 matrix acting on column vectors)
//to each vector of A, and puts the result on the receiver.
func (F *Matrix) Rotate(A *Matrix, R mat.Matrix) {
	if r, c := R.Dims(); r != 3 || c != 3 {
		panic(ErrShape)
	}
	F.Mul(A, R.T())
}

//String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r := F.NVecs()
	v := make([]string, 0, r)
	for i := 0; i < r; i++ {
		x := F.Vec(i)
		v = append(v, fmt.Sprintf("%6.2f %6.2f %6.2f", x.X, x.Y, x.Z))
	}
	return "\n[" + strings.Join(v, "\n ") + " ]"
}

//Same returns true if a and b are equal to within tol in every coordinate.
func Same(a, b r3.Vec, tol float64) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) && scalar.EqualWithinAbs(a.Y, b.Y, tol) && scalar.EqualWithinAbs(a.Z, b.Z, tol)
}

//Det returns the determinant of the 3x3 matrix with rows a, b and c.
func Det(a, b, c r3.Vec) float64 {
	return mat.Det(FromVecs([]r3.Vec{a, b, c}).Dense)
}

//Perpendicular returns a unit vector perpendicular to v. It panics if v is zero.
func Perpendicular(v r3.Vec) r3.Vec {
	if r3.Norm(v) <= appzero {
		panic(ErrZeroVector)
	}
	//cross with the axis least aligned with v.
	axis := r3.Vec{X: 1}
	ax, ay, az := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	if ay <= ax && ay <= az {
		axis = r3.Vec{Y: 1}
	} else if az <= ax && az <= ay {
		axis = r3.Vec{Z: 1}
	}
	return r3.Unit(r3.Cross(v, axis))
}

//RotatorAlign returns the operator for the rotation that takes the direction
//of from onto the direction of to, acting on column vectors.
//It uses the Rodrigues formula, R = I + sin(t)K + (1-cos(t))K^2, where K is the
//cross product matrix of the unit rotation axis. When from and to are antiparallel
//the rotation is by Pi around any axis perpendicular to them.
func RotatorAlign(from, to r3.Vec) (*mat.Dense, error) {
	if r3.Norm(from) <= appzero || r3.Norm(to) <= appzero {
		return nil, Error{message: "can't align zero vectors", deco: []string{"RotatorAlign"}}
	}
	u := r3.Unit(from)
	w := r3.Unit(to)
	axis := r3.Cross(u, w)
	s := r3.Norm(axis)
	c := r3.Dot(u, w)
	R := mat.NewDense(3, 3, nil)
	if s <= appzero {
		if c > 0 {
			R.Copy(eye())
			return R, nil
		}
		//R = 2pp^T - I
		p := Perpendicular(u)
		pv := mat.NewVecDense(3, []float64{p.X, p.Y, p.Z})
		R.Outer(2, pv, pv)
		R.Sub(R, eye())
		return R, nil
	}
	k := r3.Scale(1/s, axis)
	K := mat.NewDense(3, 3, []float64{
		0, -k.Z, k.Y,
		k.Z, 0, -k.X,
		-k.Y, k.X, 0,
	})
	K2 := mat.NewDense(3, 3, nil)
	K2.Mul(K, K)
	K.Scale(s, K)
	K2.Scale(1-c, K2)
	R.Add(eye(), K)
	R.Add(R, K2)
	return R, nil
}

func eye() *mat.Dense {
	return mat.NewDense(3, 3, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
}
