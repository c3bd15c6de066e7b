package cli

import (
	"context"
	"errors"
	"io"

	"github.com/specialistvlad/gretago/internal/app"
	"github.com/specialistvlad/gretago/internal/config"
	"github.com/specialistvlad/gretago/internal/hcl"
	"github.com/spf13/cobra"
)

// Exit codes.
const (
	CodeModel = 1
	CodeUsage = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// flags are the options shared by every command.
type flags struct {
	logLevel  string
	logFormat string
	precision string
	cores     int
	compile   bool
}

// Execute runs the command line. Failures are returned as *ExitError.
func Execute(ctx context.Context, args []string, outW, errW io.Writer) error {
	root := NewRootCommand(outW, errW)
	root.SetArgs(args)
	root.SetOut(outW)
	root.SetErr(errW)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr
	}
	// Anything cobra reports itself is a usage problem.
	return &ExitError{Code: CodeUsage, Message: err.Error()}
}

// NewRootCommand builds the command tree.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	f := &flags{}
	root := &cobra.Command{
		Use:   "gretago",
		Short: "Build, check and evaluate probabilistic model graphs",
		Long: `gretago loads model graphs declared in HCL files (data, variable,
operation and distribution blocks), validates that every disjoint sub-graph
has a probability density and an unknown variable, and lowers the result
into an executable evaluated by the local numeric engine.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&f.logLevel, "log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	pf.StringVar(&f.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	pf.StringVar(&f.precision, "precision", "", "Floating point precision: 'single' or 'double'. Overrides the model block.")
	pf.IntVar(&f.cores, "cores", 0, "Number of cores to evaluate on. 0 uses every available core. Overrides the model block.")
	pf.BoolVar(&f.compile, "compile", false, "Compile the executable ahead of time. Overrides the model block.")

	var output string
	buildCmd := &cobra.Command{
		Use:   "build PATH...",
		Short: "Build the model and print a summary",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "text" && output != "yaml" {
				return &ExitError{Code: CodeUsage, Message: "invalid output: must be 'text' or 'yaml'"}
			}
			return withApp(cmd, f, args, outW, errW, func(a *app.App) error {
				return a.Summary(cmd.Context(), output)
			})
		},
	}
	buildCmd.Flags().StringVarP(&output, "output", "o", "text", "Summary format. Options: 'text' or 'yaml'.")

	graphCmd := &cobra.Command{
		Use:   "graph PATH...",
		Short: "Print the model diagram in DOT format",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, f, args, outW, errW, func(a *app.App) error {
				return a.Graph(cmd.Context())
			})
		},
	}

	checkCmd := &cobra.Command{
		Use:   "check PATH...",
		Short: "Report every problem that prevents the model from being built",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, f, args, outW, errW, func(a *app.App) error {
				return a.Check(cmd.Context())
			})
		},
	}

	var assignments []string
	evalCmd := &cobra.Command{
		Use:   "eval PATH...",
		Short: "Evaluate the model for the given variable values",
		Example: `  gretago eval ./model --set mu=1.5 --set sd=1
  gretago eval model.hcl --set 'beta=[0.1, 0.2]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd, f, args, outW, errW, func(a *app.App) error {
				return a.Eval(cmd.Context(), assignments)
			})
		},
	}
	evalCmd.Flags().StringArrayVar(&assignments, "set", nil, "Assign a variable as name=value. Repeatable.")

	root.AddCommand(buildCmd, graphCmd, checkCmd, evalCmd)
	return root
}

// config translates the flags into an app configuration. Model settings are
// only overridden by flags that were set explicitly.
func (f *flags) config(cmd *cobra.Command, paths []string) (*app.Config, error) {
	cfg := app.Config{
		Paths:     paths,
		LogLevel:  f.logLevel,
		LogFormat: f.logFormat,
	}
	if cmd.Flags().Changed("precision") {
		cfg.Precision = &f.precision
	}
	if cmd.Flags().Changed("cores") {
		cfg.Cores = &f.cores
	}
	if cmd.Flags().Changed("compile") {
		cfg.Compile = &f.compile
	}
	return app.NewConfig(cfg)
}

func withApp(cmd *cobra.Command, f *flags, paths []string, outW, errW io.Writer, run func(a *app.App) error) error {
	cfg, err := f.config(cmd, paths)
	if err != nil {
		return &ExitError{Code: CodeUsage, Message: err.Error()}
	}

	loader := hcl.NewLoader()
	a, err := app.NewApp(cmd.Context(), outW, errW, cfg, loader)
	if err != nil {
		if loader.WriteDiagnostics(errW, err) {
			return &ExitError{Code: CodeModel, Message: "model definition has errors"}
		}
		return failure(err)
	}
	defer a.Close(cmd.Context())

	if err := run(a); err != nil {
		return failure(err)
	}
	return nil
}

func failure(err error) error {
	if errors.Is(err, config.ErrInvalidConfiguration) {
		return &ExitError{Code: CodeUsage, Message: err.Error()}
	}
	return &ExitError{Code: CodeModel, Message: err.Error()}
}
