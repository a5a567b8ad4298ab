package cli

import (
	"encoding/json"
	"fmt"

	chem "github.com/rmera/molgraph"
	"github.com/rmera/molgraph/chemjson"
	"github.com/rmera/molgraph/internal/logging"
	"github.com/rmera/molgraph/rxn"
	"github.com/spf13/cobra"
)

//ResonanceOutput summarizes the resonance structures of a species.
type ResonanceOutput struct {
	Species        string `json:"species"`
	Resonances     int    `json:"resonances"`
	Multiplicities []int  `json:"multiplicities"`
	RadicalSites   []int  `json:"radical_sites"`
}

//NewResonanceCommand creates the resonance command.
func NewResonanceCommand(rootOpts *RootOptions) *cobra.Command {
	var records bool
	cmd := &cobra.Command{
		Use:   "resonance <records>",
		Short: "Enumerate the resonance structures of the species in a records file",
		Long: `Count the resonance structures of each species, with their possible spin
multiplicities and radical sites. With --records, the structures themselves
are written as YAML records instead, named <species>/<n>, the low spin one first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResonance(rootOpts, args[0], records, cmd)
		},
	}
	cmd.Flags().BoolVar(&records, "records", false, "write the resonance structures as YAML records")
	return cmd
}

func summary(sp rxn.Species) (ResonanceOutput, []*chem.Graph, error) {
	o := ResonanceOutput{Species: sp.Name}
	res, err := chem.Resonances(sp.Graph)
	if err != nil {
		return o, nil, err
	}
	o.Resonances = len(res)
	if o.Multiplicities, err = chem.PossibleSpinMultiplicities(sp.Graph); err != nil {
		return o, nil, err
	}
	if o.RadicalSites, err = chem.RadicalSites(sp.Graph); err != nil {
		return o, nil, err
	}
	low, err := chem.LowSpinResonance(sp.Graph)
	if err != nil {
		return o, nil, err
	}
	ordered := []*chem.Graph{low}
	for _, r := range res {
		if !r.Equal(low) {
			ordered = append(ordered, r)
		}
	}
	return o, ordered, nil
}

func runResonance(opts *RootOptions, path string, records bool, cmd *cobra.Command) error {
	species, err := readSpecies(path)
	if err != nil {
		return err
	}
	var sums []ResonanceOutput
	var structs []rxn.Species
	for _, sp := range species {
		o, res, err := summary(sp)
		if err != nil {
			opts.Log.Warn("resonances not enumerated", logging.String("species", sp.Name), logging.Err(err))
			return fmt.Errorf("species %s: %w", sp.Name, err)
		}
		sums = append(sums, o)
		for i, r := range res {
			structs = append(structs, rxn.Species{Name: fmt.Sprintf("%s/%d", sp.Name, i), Graph: r})
		}
	}
	out := cmd.OutOrStdout()
	if records {
		if jerr := chemjson.EncodeSpecies(out, structs); jerr != nil {
			return jerr
		}
		return nil
	}
	if opts.json() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(sums)
	}
	for _, o := range sums {
		fmt.Fprintf(out, "%s: %d resonance structures, multiplicities %v, radical sites %v\n", o.Species, o.Resonances, o.Multiplicities, o.RadicalSites)
	}
	return nil
}
