/*
 * atomicdata.go, part of molgraph.
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

package chem

//A map for assigning mass to elements.
//Note that just common elements are present
var symbolMass = map[string]float64{
	"H":  1.008,
	"He": 4.003,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Ne": 20.18,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"Ar": 39.95,
	"Br": 79.904,
	"I":  126.90,
}

//A map for the total valence of each element, i.e. the number of electrons
//it can put into bonds, counting the bonds to hydrogens.
//The values are for the usual neutral, closed-shell valence states.
var symbolValence = map[string]int{
	"H":  1,
	"He": 0,
	"B":  3,
	"C":  4,
	"N":  3,
	"O":  2,
	"F":  1,
	"Ne": 0,
	"Si": 4,
	"P":  3,
	"S":  2,
	"Cl": 1,
	"Ar": 0,
	"Br": 1,
	"I":  1,
}

//Valence returns the total valence of the element with the given symbol, and
//false if the element is unknown.
func Valence(symbol string) (int, bool) {
	v, ok := symbolValence[symbol]
	return v, ok
}

//Mass returns the atomic mass of the element with the given symbol, and
//false if the element is unknown.
func Mass(symbol string) (float64, bool) {
	m, ok := symbolMass[symbol]
	return m, ok
}
