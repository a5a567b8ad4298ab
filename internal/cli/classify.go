package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/rmera/molgraph/chemjson"
	"github.com/rmera/molgraph/internal/logging"
	"github.com/rmera/molgraph/rxn"
	"github.com/rmera/molgraph/store"
	"github.com/spf13/cobra"
)

//NewClassifyCommand creates the classify command.
func NewClassifyCommand(rootOpts *RootOptions) *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "classify <records>",
		Short: "Classify the reactions in a YAML or JSON records file",
		Long: `Classify each reaction of the records file as a hydrogen abstraction,
an addition, a beta scission or a hydrogen migration, and report the
reaction sites. A reaction that can't be processed doesn't stop the others.
Results are saved to the SQLite ledger if one is configured.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("db") {
				rootOpts.Config.Store.Path = db
			}
			return runClassify(rootOpts, args[0], cmd)
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "SQLite ledger for the results (overrides store.path)")
	return cmd
}

func runClassify(opts *RootOptions, path string, cmd *cobra.Command) error {
	cands, err := readCandidates(path)
	if err != nil {
		return err
	}
	C := rxn.NewClassifier(opts.Log)
	results, failed := C.ClassifyAll(cands)
	if p := opts.Config.Store.Path; p != "" {
		s, err := store.Open(p)
		if err != nil {
			return err
		}
		defer s.Close()
		run := uuid.New()
		if err := s.SaveRun(cmd.Context(), run, path, store.NewRecords(run, cands, results, failed)); err != nil {
			return err
		}
		opts.Log.Info("results saved", logging.String("run", run.String()), logging.String("db", p))
	}
	out := cmd.OutOrStdout()
	info := chemjson.NewInfo(cands, results, failed)
	if opts.json() {
		if jerr := info.Send(out); jerr != nil {
			return jerr
		}
		return nil
	}
	for _, r := range info.Results {
		if r.Error != nil {
			fmt.Fprintf(out, "%s: error: %s\n", r.Reaction, r.Error.Message)
			continue
		}
		fmt.Fprintf(out, "%s: %s %v\n", r.Reaction, r.Class, r.Sites)
	}
	fmt.Fprintf(out, "%d classified, %d failed\n", info.Classified, info.Failed)
	return nil
}
