// Package cli is the bidfit command tree. Flags are bound through viper so
// every setting can also come from a BIDFIT_* environment variable or the
// fit section of a config file; precedence is flag > env > file > default.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Caseyio/federal-bid-prediction/internal/artifact"
	"github.com/Caseyio/federal-bid-prediction/internal/config"
	"github.com/Caseyio/federal-bid-prediction/internal/fitjob"
	"github.com/Caseyio/federal-bid-prediction/internal/gbm"
	"github.com/Caseyio/federal-bid-prediction/internal/logx"
	"github.com/Caseyio/federal-bid-prediction/internal/registry"
)

// EnvPrefix namespaces the environment variables bidfit reads.
const EnvPrefix = "BIDFIT"

// runFit is swapped by tests.
var runFit = fitjob.Run

// MainWithArgs runs bidfit with args and returns the process exit code.
func MainWithArgs(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := buildRootCmd(stdout, stderr)
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(stderr, "bidfit: %v\n", err)
		return 1
	}
	return 0
}

func buildRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "bidfit",
		Short:         "Fit and inspect the federal bid amount model",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (.yaml/.yml/.json/.toml); its fit section supplies defaults (env BIDFIT_CONFIG)")
	pf.String("log-level", "info", "Log level: debug|info|warn|error|off (env BIDFIT_LOG_LEVEL)")
	pf.String("log-format", "console", "Log format: console|json (env BIDFIT_LOG_FORMAT)")

	root.AddCommand(newTrainCmd(stderr), newInspectCmd(), newListCmd())

	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(cmd.OutOrStdout()) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(cmd.OutOrStdout(), true) }})
	completionCmd.AddCommand(&cobra.Command{Use: "powershell", Short: "PowerShell completion", RunE: func(cmd *cobra.Command, args []string) error {
		return root.GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
	}})
	root.AddCommand(completionCmd)
	return root
}

func newTrainCmd(stderr io.Writer) *cobra.Command {
	d := fitjob.DefaultOptions()
	p := gbm.DefaultParams()
	cmd := &cobra.Command{
		Use:     "train",
		Short:   "Fit the regressor on the award CSV and write the model artifact",
		Long: `Fit the gradient-boosted regressor on log1p(award_amount), print the
held-out RMSE and R², and write the model artifact.

The artifact is a gob-encoded file at outputs/xgb_model.gob by default. It
replaces the outputs/xgb_model.pkl pickle: same directory and stem, but it
is only readable by bidfit and bidpredict, not by Python tooling.`,
		Example: "  bidfit train\n  bidfit train --data data/health_it_cleaned.csv --out outputs/xgb_model.gob --n-estimators 200",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := newViper(cmd)
			if err != nil {
				return err
			}
			log, err := logx.NewWriter(stderr, v.GetString("log-level"), v.GetString("log-format"))
			if err != nil {
				return err
			}
			opts := trainOptions(v)
			opts.Logger = log
			if _, err := runFit(cmd.Context(), opts, cmd.OutOrStdout()); err != nil {
				log.Error().Err(err).Str("data", opts.DataPath).Msg("fit failed")
				return err
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.String("data", d.DataPath, "CSV of cleaned award records")
	f.String("out", d.OutPath, "Where to write the model artifact")
	f.Int64("seed", d.Seed, "Seed for the train/test split")
	f.Float64("test-ratio", d.TestRatio, "Fraction of rows held out for scoring")
	f.String("plot", "", "Optional predicted-vs-actual chart of the test rows (.png, .svg or .pdf)")
	f.Int("n-estimators", p.NEstimators, "Boosting rounds")
	f.Int("max-depth", p.MaxDepth, "Maximum tree depth (0 = unlimited)")
	f.Float64("learning-rate", p.LearningRate, "Shrinkage applied to each tree")
	f.Float64("lambda", p.Lambda, "L2 penalty on leaf weights")
	f.Float64("gamma", p.Gamma, "Minimum gain required to split")
	f.Float64("min-child-weight", p.MinChildWeight, "Minimum hessian sum per child")
	return cmd
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "inspect <artifact>",
		Short:   "Print an artifact's metadata as YAML",
		Example: "  bidfit inspect outputs/xgb_model.gob",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			meta, err := artifact.ReadMeta(args[0])
			if err != nil {
				return err
			}
			b, err := meta.YAML()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list [dir]",
		Short:   "List model artifacts in a directory (default: outputs)",
		Example: "  bidfit list\n  bidfit list ~/bidpredict/outputs",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "outputs"
			if len(args) == 1 {
				dir = args[0]
			}
			arts, err := registry.LoadDir(dir)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tRUN\tFEATURES\tLOG_RMSE\tLOG_R2\tERROR")
			for _, a := range arts {
				fmt.Fprintf(tw, "%s\t%s\t%d\t%.4f\t%.4f\t%s\n", a.ID, a.RunID, a.Features, a.LogRMSE, a.LogR2, a.Error)
			}
			return tw.Flush()
		},
	}
}

// newViper binds cmd's flags, BIDFIT_* env vars and, when --config is set,
// the file's fit section as defaults underneath both.
func newViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, err
	}
	if path := v.GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		fileDefaults(v, cfg.Fit)
	}
	return v, nil
}

// fileDefaults registers the set fields of f. Unset fields leave the flag
// default in place; explicit zeros in params are kept.
func fileDefaults(v *viper.Viper, f config.Fit) {
	str := func(key, val string) {
		if val != "" {
			v.SetDefault(key, val)
		}
	}
	str("data", f.DataPath)
	str("out", f.OutPath)
	str("plot", f.PlotPath)
	str("log-level", f.LogLevel)
	if f.Seed != nil {
		v.SetDefault("seed", *f.Seed)
	}
	if f.TestRatio != 0 {
		v.SetDefault("test-ratio", f.TestRatio)
	}
	// unset params resolve to the same defaults the flags carry
	p := f.Params.Apply(gbm.DefaultParams())
	v.SetDefault("n-estimators", p.NEstimators)
	v.SetDefault("max-depth", p.MaxDepth)
	v.SetDefault("learning-rate", p.LearningRate)
	v.SetDefault("lambda", p.Lambda)
	v.SetDefault("gamma", p.Gamma)
	v.SetDefault("min-child-weight", p.MinChildWeight)
}

func trainOptions(v *viper.Viper) fitjob.Options {
	o := fitjob.DefaultOptions()
	o.DataPath = v.GetString("data")
	o.OutPath = v.GetString("out")
	o.Seed = v.GetInt64("seed")
	o.TestRatio = v.GetFloat64("test-ratio")
	o.PlotPath = v.GetString("plot")
	o.Params = gbm.Params{
		NEstimators:    v.GetInt("n-estimators"),
		MaxDepth:       v.GetInt("max-depth"),
		LearningRate:   v.GetFloat64("learning-rate"),
		Lambda:         v.GetFloat64("lambda"),
		Gamma:          v.GetFloat64("gamma"),
		MinChildWeight: v.GetFloat64("min-child-weight"),
	}
	return o
}

// Main is the bidfit entry point used by cmd/bidfit.
func Main(ctx context.Context) int {
	return MainWithArgs(ctx, os.Args[1:], os.Stdout, os.Stderr)
}
