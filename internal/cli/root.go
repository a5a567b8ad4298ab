//Package cli implements the molgraph command line.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rmera/molgraph/chemjson"
	"github.com/rmera/molgraph/internal/config"
	"github.com/rmera/molgraph/internal/logging"
	"github.com/rmera/molgraph/rxn"
	"github.com/spf13/cobra"
)

//RootOptions holds the global flags, and the configuration and logger built from them.
type RootOptions struct {
	ConfigPath string
	Format     string //"text" or "json"
	Verbose    bool

	Config *config.Config
	Log    logging.Logger
}

//ValidFormats are the allowed output formats.
var ValidFormats = []string{"text", "json"}

//NewRootCommand creates the root command of the molgraph CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}
	cmd := &cobra.Command{
		Use:   "molgraph",
		Short: "molgraph - molecular graphs for reaction mechanisms",
		Long: `Classify elementary reactions (hydrogen abstraction, addition, beta scission,
hydrogen migration) from the graphs of their species, enumerate resonance
structures and build 3D coordinates that respect the stereochemistry.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return opts.setup() },
	}
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log at debug level")

	cmd.AddCommand(NewClassifyCommand(opts))
	cmd.AddCommand(NewGeometryCommand(opts))
	cmd.AddCommand(NewResonanceCommand(opts))
	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

//setup validates the flags, loads the configuration and builds the logger.
func (o *RootOptions) setup() error {
	if !isValidFormat(o.Format) {
		return fmt.Errorf("invalid format %q: must be one of %v", o.Format, ValidFormats)
	}
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if o.Verbose {
		cfg.Log.Level = "debug"
	}
	l, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	logging.SetDefault(l)
	o.Config = cfg
	o.Log = l
	return nil
}

func (o *RootOptions) json() bool {
	return o.Format == "json"
}

func openRecords(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open records: %w", err)
	}
	return f, nil
}

func readSpecies(path string) ([]rxn.Species, error) {
	f, err := openRecords(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return chemjson.ReadSpecies(f)
}

func readCandidates(path string) ([]rxn.Candidate, error) {
	f, err := openRecords(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return chemjson.ReadReactions(f)
}

//fileName turns a species name into something usable as a file name.
func fileName(species string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, species)
}
