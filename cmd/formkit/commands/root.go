// Package commands implements the CLI commands for formkit.
package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-formkit/internal/config"
	"github.com/goliatone/go-formkit/internal/logging"
	"github.com/goliatone/go-formkit/pkg/prompt"
	"github.com/goliatone/go-formkit/pkg/render"
)

const version = "0.1.0"

// errReported marks failures whose details were already printed.
var errReported = errors.New("formkit: reported")

// RootOption customises the command tree, mainly for tests.
type RootOption func(*app)

// WithPromptDriver replaces the survey driver used by the fill command.
func WithPromptDriver(driver prompt.Driver) RootOption {
	return func(a *app) {
		a.driver = driver
	}
}

type app struct {
	viper  *viper.Viper
	cfg    *config.Config
	logger *slog.Logger
	driver prompt.Driver

	configPath string
	envFile    string
	verbosity  int
	quiet      bool
}

// NewRootCmd builds the formkit command tree.
func NewRootCmd(opts ...RootOption) *cobra.Command {
	a := &app{viper: config.New(), logger: logging.NewDiscard()}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}

	root := &cobra.Command{
		Use:   "formkit",
		Short: "Declarative form validation from the terminal",
		Long: `formkit validates personal-data records against a declarative form
definition. It can fill a form interactively, check a record stored as JSON or
YAML, and lint form definitions.

Without --form the bundled registration form is used.`,
		Example: `  # Fill the registration form interactively
  formkit fill

  # Check a record file
  formkit validate record.json

  # Lint a custom definition
  formkit lint forms/signup.yaml`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}
	root.SetVersionTemplate("formkit version {{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default ./formkit.yaml)")
	flags.StringVar(&a.envFile, "env-file", "", "dotenv file exporting FORMKIT_* variables (default ./.env when present)")
	flags.CountVarP(&a.verbosity, "verbose", "v", "increase verbosity level (e.g., -v, -vv)")
	flags.BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")
	flags.String("log-format", "text", "log format: text, json")
	flags.String("form", "", "form definition file (default: bundled registration form)")
	flags.StringP("output", "o", config.OutputJSON, "output format: "+strings.Join(render.Default().List(), ", "))

	_ = a.viper.BindPFlag("log_format", flags.Lookup("log-format"))
	_ = a.viper.BindPFlag("form", flags.Lookup("form"))
	_ = a.viper.BindPFlag("output", flags.Lookup("output"))

	root.AddCommand(newFillCmd(a), newValidateCmd(a), newLintCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	if a.quiet && a.verbosity > 0 {
		return errors.New("cannot use --quiet and --verbose together")
	}

	if err := config.LoadEnvFile(a.envFile, a.envFile != ""); err != nil {
		return err
	}
	cfg, err := config.Load(a.viper, a.configPath)
	if err != nil {
		return err
	}
	if errs := config.Validate(cfg); len(errs) > 0 {
		return errors.Wrap(errors.Join(errs...), "invalid configuration")
	}
	a.cfg = cfg

	level := logging.LevelFromVerbosity(a.verbosity)
	switch {
	case a.quiet:
		level = slog.LevelError
	case a.verbosity == 0 && cfg.LogLevel != "":
		level, _ = config.ParseLevel(cfg.LogLevel)
	}

	a.logger = logging.New(logging.Config{
		Level:  level,
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	a.logger.Debug("configuration loaded", "form", cfg.Form, "output", cfg.Output)
	return nil
}

// Execute runs the root command against the process streams.
func Execute() error {
	return ExecuteContext(context.Background(), NewRootCmd(), os.Stderr)
}

// ExecuteContext runs root and prints any error that was not already
// reported to errOut.
func ExecuteContext(ctx context.Context, root *cobra.Command, errOut io.Writer) error {
	err := root.ExecuteContext(ctx)
	if err != nil && !errors.Is(err, errReported) {
		red := color.New(color.FgRed, color.Bold)
		_, _ = red.Fprint(errOut, "Error: ")
		_, _ = fmt.Fprintln(errOut, err)
	}
	return err
}
