//Package chemgraph puts molgraph graphs behind gonum's graph interfaces, so the
//gonum graph algorithms can be used on them.
package chemgraph

import (
	"sort"

	chem "github.com/rmera/molgraph"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Topology implements the gonum graph.Undirected and graph.Weighted interfaces
// for a chem.Graph. Node IDs are the atom keys.
type Topology struct {
	*simple.WeightedUndirectedGraph
	Mol *chem.Graph
}

// BondOrderWeight gives each edge the order of its bond as weight.
func BondOrderWeight(B chem.Bond) float64 {
	return float64(B.Order)
}

// TopologyFromChem builds the gonum view of mol. weightfunc gives the weight
// of each bond, if nil, BondOrderWeight is used.
func TopologyFromChem(mol *chem.Graph, weightfunc func(chem.Bond) float64) *Topology {
	if weightfunc == nil {
		weightfunc = BondOrderWeight
	}
	g := simple.NewWeightedUndirectedGraph(0, 0)
	for _, k := range mol.AtomKeys() {
		g.AddNode(simple.Node(int64(k)))
	}
	for _, k := range mol.BondKeys() {
		b, _ := mol.Bond(k[0], k[1])
		g.SetWeightedEdge(g.NewWeightedEdge(simple.Node(int64(k[0])), simple.Node(int64(k[1])), weightfunc(b)))
	}
	return &Topology{WeightedUndirectedGraph: g, Mol: mol}
}

func nodeKeys(nodes []graph.Node) []int {
	ret := make([]int, 0, len(nodes))
	for _, n := range nodes {
		ret = append(ret, int(n.ID()))
	}
	sort.Ints(ret)
	return ret
}

// Components returns the atom keys of each connected component of the graph,
// each one sorted, and the components sorted by their smallest key.
func (T *Topology) Components() [][]int {
	cc := topo.ConnectedComponents(T.WeightedUndirectedGraph)
	ret := make([][]int, 0, len(cc))
	for _, c := range cc {
		ret = append(ret, nodeKeys(c))
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i][0] < ret[j][0] })
	return ret
}

// HasRings returns true if the graph has at least one cycle, that is, if it
// has more edges than a forest with the same atoms and components.
func (T *Topology) HasRings() bool {
	nodes := T.Nodes().Len()
	edges := T.Edges().Len()
	return edges > nodes-len(T.Components())
}

// Components returns the connected components of mol, see Topology.Components.
func Components(mol *chem.Graph) [][]int {
	return TopologyFromChem(mol, nil).Components()
}

// HasRings returns true if mol has at least one ring.
func HasRings(mol *chem.Graph) bool {
	return TopologyFromChem(mol, nil).HasRings()
}

// Neighbors returns the keys of the atoms bonded to k, ascending.
func (T *Topology) Neighbors(k int) []int {
	return nodeKeys(graph.NodesOf(T.From(int64(k))))
}
