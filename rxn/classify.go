/*
 * classify.go, part of molgraph.
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

package rxn

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/internal/logging"
)

//Species is a molecule taking part in a reaction, tagged with the name the
//reaction record gives it.
type Species struct {
	Name  string
	Graph *chem.Graph
}

//Candidate is a reaction to classify. It lives only for one classification call.
type Candidate struct {
	ID        uuid.UUID
	Reactants []Species
	Products  []Species
}

//NewCandidate returns a candidate with a new random ID.
func NewCandidate(reactants, products []Species) Candidate {
	return Candidate{ID: uuid.New(), Reactants: reactants, Products: products}
}

//String returns the candidate as "A + B = C + D".
func (C Candidate) String() string {
	side := func(s []Species) string {
		ret := ""
		for i, v := range s {
			if i > 0 {
				ret += " + "
			}
			ret += v.Name
		}
		return ret
	}
	return side(C.Reactants) + " = " + side(C.Products)
}

//Class is the kind of reaction a candidate was found to be.
type Class int

const (
	Unclassified Class = iota
	HydrogenAbstractionClass
	AdditionClass
	BetaScissionClass
	HydrogenMigrationClass
)

func (c Class) String() string {
	switch c {
	case HydrogenAbstractionClass:
		return "hydrogen abstraction"
	case AdditionClass:
		return "addition"
	case BetaScissionClass:
		return "beta scission"
	case HydrogenMigrationClass:
		return "hydrogen migration"
	}
	return "unclassified"
}

//Result is the outcome of classifying a candidate. Reactants and Products give the
//species in the order the sites refer to them:
//	hydrogen abstraction, QH + R = Q + RH: [QH, Q, RH, R] from Abstraction on (QH, Q) and (RH, R).
//	addition, X + Y = XY: [X, Y, XYX, XYY].
//	beta scission, XY = X + Y: as the addition X + Y = XY.
//	hydrogen migration, R = P: [RH, RA, PH, PA].
type Result struct {
	CandidateID uuid.UUID
	Class       Class
	Reactants   []string
	Products    []string
	Sites       []int
}

func names(s ...Species) []string {
	ret := make([]string, len(s))
	for i, v := range s {
		ret[i] = v.Name
	}
	return ret
}

//Classify tries the reaction classes that fit the number of reactants and products of c
//and returns the first that matches. Candidates that match none give an Unclassified result,
//not an error.
func Classify(c Candidate) (Result, error) {
	ret := Result{CandidateID: c.ID, Class: Unclassified, Reactants: names(c.Reactants...), Products: names(c.Products...)}
	R, P := c.Reactants, c.Products
	switch {
	case len(R) == 1 && len(P) == 1:
		m, ok, err := HydrogenMigration(R[0].Graph, P[0].Graph)
		if err != nil || !ok {
			return ret, chem.ErrDecorate(err, "Classify")
		}
		ret.Class = HydrogenMigrationClass
		ret.Sites = []int{m.RH, m.RA, m.PH, m.PA}
	case len(R) == 2 && len(P) == 1:
		for _, o := range [][2]int{{0, 1}, {1, 0}} {
			a, ok, err := Addition(R[o[0]].Graph, R[o[1]].Graph, P[0].Graph)
			if err != nil {
				return ret, chem.ErrDecorate(err, "Classify")
			}
			if ok {
				ret.Class = AdditionClass
				ret.Reactants = names(R[o[0]], R[o[1]])
				ret.Sites = []int{a.X, a.Y, a.XYX, a.XYY}
				break
			}
		}
	case len(R) == 1 && len(P) == 2:
		for _, o := range [][2]int{{0, 1}, {1, 0}} {
			a, ok, err := Addition(P[o[0]].Graph, P[o[1]].Graph, R[0].Graph)
			if err != nil {
				return ret, chem.ErrDecorate(err, "Classify")
			}
			if ok {
				ret.Class = BetaScissionClass
				ret.Products = names(P[o[0]], P[o[1]])
				ret.Sites = []int{a.X, a.Y, a.XYX, a.XYY}
				break
			}
		}
	case len(R) == 2 && len(P) == 2:
		//QH is either reactant, Q either product.
		for _, d := range [][2]int{{0, 1}, {1, 0}} {
			for _, q := range [][2]int{{0, 1}, {1, 0}} {
				qh, r := R[d[0]], R[d[1]]
				qq, rh := P[q[0]], P[q[1]]
				a1, ok, err := HydrogenAbstraction(qh.Graph, qq.Graph)
				if err != nil {
					return ret, chem.ErrDecorate(err, "Classify")
				}
				if !ok {
					continue
				}
				a2, ok, err := HydrogenAbstraction(rh.Graph, r.Graph)
				if err != nil {
					return ret, chem.ErrDecorate(err, "Classify")
				}
				if !ok {
					continue
				}
				ret.Class = HydrogenAbstractionClass
				ret.Reactants = names(qh, r)
				ret.Products = names(qq, rh)
				ret.Sites = []int{a1.QH, a1.Q, a2.QH, a2.Q}
				return ret, nil
			}
		}
	}
	return ret, nil
}

//Classifier classifies candidates and logs each outcome.
type Classifier struct {
	Log logging.Logger
}

//NewClassifier returns a Classifier that logs to l, or to the default logger if l is nil.
func NewClassifier(l logging.Logger) *Classifier {
	if l == nil {
		l = logging.Default()
	}
	return &Classifier{Log: l.Named("rxn")}
}

//Classify is like the package-level Classify, but logs the result.
func (C *Classifier) Classify(c Candidate) (Result, error) {
	log := C.Log.With(logging.String("candidate", c.ID.String()), logging.String("reaction", c.String()))
	r, err := Classify(c)
	if err != nil {
		level := log.Error
		if errors.Is(err, chem.ErrInvalidGraph) || errors.Is(err, chem.ErrUnsupportedStructure) {
			level = log.Warn
		}
		level("candidate not classified", logging.Err(err))
		return r, err
	}
	log.Debug("candidate classified", logging.String("class", r.Class.String()), logging.String("sites", fmt.Sprint(r.Sites)))
	return r, nil
}

//ClassifyAll classifies every candidate. A candidate that fails doesn't stop the others,
//its error is returned in the map, under its ID.
func (C *Classifier) ClassifyAll(cands []Candidate) ([]Result, map[uuid.UUID]error) {
	ret := make([]Result, 0, len(cands))
	errs := make(map[uuid.UUID]error)
	for _, c := range cands {
		r, err := C.Classify(c)
		if err != nil {
			errs[c.ID] = err
			continue
		}
		ret = append(ret, r)
	}
	C.Log.Info("batch classified", logging.Int("candidates", len(cands)), logging.Int("failed", len(errs)))
	return ret, errs
}
