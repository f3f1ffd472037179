package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/twoecproof/twoec/pkg/comps"
	"github.com/twoecproof/twoec/pkg/credit"
	"github.com/twoecproof/twoec/pkg/logger"
	"github.com/twoecproof/twoec/pkg/proof"
	"github.com/twoecproof/twoec/pkg/util"
)

// rootOptions holds the persistent flags shared by both proof modes.
// Zero values mean "not set"; setupRun only applies flags the user
// actually passed, so twoec.yaml keeps authority over the rest.
type rootOptions struct {
	verbose      bool
	selection    string
	outputDir    string
	outputDepth  int
	compress     bool
	shortCircuit bool
	parallel     bool
	numerator    int64
	denominator  int64
	maxDepth     int
	initialDepth int
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "twoec",
		Short: "Case prover for credit based 2-edge-connectivity augmentation",
		Long: `twoec discharges the case analyses behind the credit argument for
augmenting a spanning subgraph to 2-edge-connectivity. The tree mode
proves that a freshly attached leaf component always merges away, the
path mode proves progress along a partially constructed nice path.

Settings are read from twoec.yaml in the working directory or ./data/
and can be overridden per run with the flags below.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&opts.selection, "selection", "", "YAML file naming the leaf and inner components")
	pf.StringVarP(&opts.outputDir, "output", "o", "", "directory for the proof artifacts")
	pf.IntVar(&opts.outputDepth, "output-depth", 0, "collapse successful subtrees below this depth")
	pf.BoolVar(&opts.compress, "compress", false, "write bzip2 compressed artifacts")
	pf.BoolVar(&opts.shortCircuit, "short-circuit", true, "stop quantifiers at the first failing case")
	pf.BoolVar(&opts.parallel, "parallel", true, "prove independent cases concurrently")
	pf.Int64Var(&opts.numerator, "numerator", 0, "credit rate numerator")
	pf.Int64Var(&opts.denominator, "denominator", 0, "credit rate denominator")

	cmd.AddCommand(newTreeCommand(opts))
	cmd.AddCommand(newPathCommand(opts))

	return cmd
}

// runInputs bundles everything a proof run needs.
type runInputs struct {
	sel  *comps.Selection
	sc   credit.Scheme
	opts proof.Options
	log  *zap.Logger
}

// setupRun loads twoec.yaml, applies the flags the user passed, and
// builds the selection, scheme, and options for a proof run.
func setupRun(cmd *cobra.Command, opts *rootOptions) (*runInputs, error) {
	newLogger := logger.New
	if opts.verbose {
		newLogger = logger.NewDebug
	}
	log, err := newLogger()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}

	cfg, err := util.ReadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Dir = opts.outputDir
	}
	if flags.Changed("output-depth") {
		cfg.Output.Depth = opts.outputDepth
	}
	if flags.Changed("compress") {
		cfg.Output.Compress = opts.compress
	}
	if flags.Changed("short-circuit") {
		cfg.Proof.ShortCircuit = opts.shortCircuit
	}
	if flags.Changed("parallel") {
		cfg.Proof.Parallel = opts.parallel
	}
	if flags.Changed("numerator") {
		cfg.Credit.Numerator = opts.numerator
	}
	if flags.Changed("denominator") {
		cfg.Credit.Denominator = opts.denominator
	}
	if flags.Changed("max-depth") {
		cfg.Proof.MaxDepth = opts.maxDepth
	}
	if flags.Changed("initial-depth") {
		cfg.Proof.InitialDepth = opts.initialDepth
	}

	// Flag overrides bypass the config validation, re-check the
	// ranges the prover depends on.
	if cfg.Credit.Numerator < 1 || cfg.Credit.Denominator < 1 {
		return nil, fmt.Errorf("credit rate %d/%d out of range", cfg.Credit.Numerator, cfg.Credit.Denominator)
	}
	if cfg.Proof.MaxDepth < 1 || cfg.Proof.InitialDepth < 1 {
		return nil, fmt.Errorf("path depths %d/%d out of range", cfg.Proof.MaxDepth, cfg.Proof.InitialDepth)
	}

	sel := comps.DefaultSelection()
	if opts.selection != "" {
		sel, err = comps.LoadSelection(opts.selection)
		if err != nil {
			return nil, err
		}
	}

	return &runInputs{
		sel: sel,
		sc:  credit.NewInvariant(credit.New(cfg.Credit.Numerator, cfg.Credit.Denominator)),
		opts: proof.Options{
			OutputDir:    cfg.Output.Dir,
			OutputDepth:  cfg.Output.Depth,
			ShortCircuit: cfg.Proof.ShortCircuit,
			Compress:     cfg.Output.Compress,
			Parallel:     cfg.Proof.Parallel,
			MaxDepth:     cfg.Proof.MaxDepth,
			InitialDepth: cfg.Proof.InitialDepth,
		},
		log: log,
	}, nil
}

func newTreeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tree",
		Short: "Prove the tree cases",
		Long: `Prove, for every selected leaf component, that appending it to a
partially augmented tree always allows a merge that keeps the credit
invariant. One proof artifact is written per leaf component.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := setupRun(cmd, opts)
			if err != nil {
				return err
			}
			proved, err := proof.ProveTreeCases(in.sel, in.sc, in.opts, in.log)
			if err != nil {
				return err
			}
			if !proved {
				return errors.New("tree cases disproved, inspect the wrong_proof artifacts")
			}
			in.log.Info("all tree cases proved",
				zap.String("scheme", in.sc.String()),
				zap.String("artifacts", in.opts.OutputDir))
			return nil
		},
	}
}

func newPathCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Prove the nice path cases",
		Long: `Prove, for every selected last component, that a nice path either
gets longer, merges components locally, or rewires its last component
as a pendant. The search splits on 3-matchings and path extensions up
to --max-depth components. One proof artifact is written per last
component case.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := setupRun(cmd, opts)
			if err != nil {
				return err
			}
			proved, err := proof.ProvePathCases(in.sel, in.sc, in.opts, in.log)
			if err != nil {
				return err
			}
			if !proved {
				return errors.New("path cases disproved, inspect the wrong_proof artifacts")
			}
			in.log.Info("all path cases proved",
				zap.String("scheme", in.sc.String()),
				zap.String("artifacts", in.opts.OutputDir))
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.maxDepth, "max-depth", 0, "bound on the case split recursion")
	cmd.Flags().IntVar(&opts.initialDepth, "initial-depth", 0, "pre-expansion depth of the path instances")
	return cmd
}
