package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rmera/molgraph/chemplot"
	"github.com/rmera/molgraph/molfile"
	"github.com/rmera/molgraph/stereo"
	"github.com/spf13/cobra"
)

//GeometryOutput lists the files written for one species.
type GeometryOutput struct {
	Species string   `json:"species"`
	Files   []string `json:"files,omitempty"`
	Error   string   `json:"error,omitempty"`
}

//NewGeometryCommand creates the geometry command.
func NewGeometryCommand(rootOpts *RootOptions) *cobra.Command {
	var outdir string
	var xyz bool
	cmd := &cobra.Command{
		Use:   "geometry <records>",
		Short: "Write 3D structures for the species in a records file",
		Long: `Build coordinates that reproduce the atom and bond parities of each
species of the records file, and write them as MDL molfiles (compressed if
geometry.compress is set), with a PNG projection if geometry.plot is set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGeometry(rootOpts, args[0], outdir, xyz, cmd)
		},
	}
	cmd.Flags().StringVarP(&outdir, "out", "o", ".", "output directory")
	cmd.Flags().BoolVar(&xyz, "xyz", false, "also write XYZ files")
	return cmd
}

func writeXYZ(name, species string, st *stereo.Structure) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return molfile.WriteXYZ(f, species, st)
}

func runGeometry(opts *RootOptions, path, outdir string, xyz bool, cmd *cobra.Command) error {
	species, err := readSpecies(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outdir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	gc := opts.Config.Geometry
	S := stereo.NewSynthesizer(stereo.Options{ComponentSpacing: gc.ComponentSpacing}, opts.Log)
	ret := make([]GeometryOutput, 0, len(species))
	failed := 0
	for _, sp := range species {
		o := GeometryOutput{Species: sp.Name}
		st, err := S.Synthesize(sp.Name, sp.Graph)
		if err != nil {
			o.Error = err.Error()
			ret = append(ret, o)
			failed++
			continue
		}
		base := filepath.Join(outdir, fileName(sp.Name))
		name := base + ".mol"
		if gc.Compress {
			name += ".zst"
		}
		if err := molfile.WriteFile(name, st); err != nil {
			return err
		}
		o.Files = append(o.Files, name)
		if xyz {
			if err := writeXYZ(base+".xyz", sp.Name, st); err != nil {
				return err
			}
			o.Files = append(o.Files, base+".xyz")
		}
		if gc.Plot {
			if err := chemplot.ProjectionPlot(st, chemplot.XY, sp.Name, base); err != nil {
				return err
			}
			o.Files = append(o.Files, base+".png")
		}
		ret = append(ret, o)
	}
	out := cmd.OutOrStdout()
	if opts.json() {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(ret)
	}
	for _, o := range ret {
		if o.Error != "" {
			fmt.Fprintf(out, "%s: error: %s\n", o.Species, o.Error)
			continue
		}
		fmt.Fprintf(out, "%s: %v\n", o.Species, o.Files)
	}
	fmt.Fprintf(out, "%d written, %d failed\n", len(ret)-failed, failed)
	return nil
}
