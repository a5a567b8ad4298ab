/*
 * plot.go, part of molgraph.
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

//Package chemplot draws 2D projections of synthesized molgraph structures, using gonum's plot.
package chemplot

import (
	"fmt"

	"github.com/rmera/molgraph/stereo"
	"gonum.org/v1/gonum/spatial/r3"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Plane is the plane the coordinates are projected on.
type Plane int

const (
	XY Plane = iota
	XZ
	YZ
)

func (P Plane) project(v r3.Vec) plotter.XY {
	switch P {
	case XZ:
		return plotter.XY{X: v.X, Y: v.Z}
	case YZ:
		return plotter.XY{X: v.Y, Y: v.Z}
	}
	return plotter.XY{X: v.X, Y: v.Y}
}

func (P Plane) labels() (string, string) {
	switch P {
	case XZ:
		return "x", "z"
	case YZ:
		return "y", "z"
	}
	return "x", "y"
}

//Projection returns a plot of S projected on the plane P. Bonds are drawn as
//lines, atoms as points colored by element and labeled with their symbol and key.
func Projection(S *stereo.Structure, P Plane, title string) (*plot.Plot, error) {
	if S == nil || S.Graph == nil {
		return nil, fmt.Errorf("chemplot.Projection: nil structure")
	}
	G := S.Graph
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text, p.Y.Label.Text = P.labels()
	p.Add(plotter.NewGrid())
	for _, b := range G.BondKeys() {
		line, err := plotter.NewLine(plotter.XYs{P.project(S.Coords[b[0]]), P.project(S.Coords[b[1]])})
		if err != nil {
			return nil, err
		}
		bond, _ := G.Bond(b[0], b[1])
		line.LineStyle.Width = vg.Points(float64(bond.Order))
		p.Add(line)
	}
	symbols := make(map[string]bool)
	for _, a := range G.Atoms() {
		symbols[a.Symbol] = true
	}
	colors := elementColors(symbols)
	keys := G.AtomKeys()
	labels := plotter.XYLabels{XYs: make(plotter.XYs, 0, len(keys)), Labels: make([]string, 0, len(keys))}
	for _, k := range keys {
		c, ok := S.Coords[k]
		if !ok {
			return nil, fmt.Errorf("chemplot.Projection: atom %d has no position", k)
		}
		a, _ := G.Atom(k)
		pt := P.project(c)
		s, err := plotter.NewScatter(plotter.XYs{pt})
		if err != nil {
			return nil, err
		}
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		s.GlyphStyle.Radius = vg.Points(4)
		s.GlyphStyle.Color = colors[a.Symbol]
		p.Add(s)
		labels.XYs = append(labels.XYs, pt)
		labels.Labels = append(labels.Labels, fmt.Sprintf("%s%d", a.Symbol, k))
	}
	l, err := plotter.NewLabels(labels)
	if err != nil {
		return nil, err
	}
	l.Offset = vg.Point{X: vg.Points(4), Y: vg.Points(4)}
	p.Add(l)
	return p, nil
}

//ProjectionPlot saves the projection of S on P as plotname.png.
func ProjectionPlot(S *stereo.Structure, P Plane, title, plotname string) error {
	p, err := Projection(S, P, title)
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("%s.png", plotname)
	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}
