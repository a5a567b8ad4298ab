/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

/*Package chem is the main package of the molgraph library. It provides the molecular graph, where
atoms and bonds carry element, implicit hydrogen, bond order and stereo parity attributes,
and the resonance functions built on it.



	**molgraph Capabilities**


    Molecular graphs with arbitrary atom keys. Subgraphs, relabeling, disjoint unions.

    Folding of explicit hydrogens into implicit counts, and back (Implicit/Explicit).

    Mirror images (Reflection) of stereo graphs.

    Radical electron counts and spin multiplicities. Enumeration of resonance
	structures within the valence of each atom, and selection of the low and
	high-spin ones.

    Graph isomorphism with atom and bond attributes (package iso).

    Classification of reactions as hydrogen abstractions, additions or
	hydrogen migrations, with the atoms involved (package rxn).

    Synthesis of 3D coordinates that reproduce the parities of every
	stereocenter (package stereo), and their output as MDL molfiles (package molfile)
	for external identifier generators.



Graphs are immutable: all the functions that "change" a graph return a new one. Errors returned by
the library wrap one of ErrInvalidGraph, ErrUnsupportedStructure and ErrRelabelMismatch, and can be
checked with errors.Is. Not finding a match (an isomorphism, a reaction site) is not an error.*/
package chem
