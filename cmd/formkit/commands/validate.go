package commands

import (
	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func newValidateCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a JSON or YAML record against the form",
		Long: `Validate loads a record, replays every declared field as a change event
and submits it. Violations are printed in field order and the command exits
with status 1. Use "-" to read the record from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.loadSchema()
			if err != nil {
				return err
			}
			record, err := readRecord(args[0], cmd.InOrStdin())
			if err != nil {
				return err
			}

			controller := form.New(s, form.WithLogger(a.logger))
			for name, value := range record {
				if err := controller.OnFieldChange(name, value); err != nil {
					if strict || !errors.Is(err, form.ErrUnknownField) {
						return err
					}
					a.logger.Warn("ignoring undeclared field", "field", name)
				}
			}

			ok, err := controller.Submit(cmd.Context())
			if err != nil {
				return err
			}
			renderer, err := a.renderer()
			if err != nil {
				return err
			}
			result := validation.Result{Valid: ok, Issues: controller.Issues()}
			if ok && a.quiet {
				return nil
			}
			if err := renderer.RenderResult(cmd.OutOrStdout(), s, result); err != nil {
				return err
			}
			if !ok {
				return errors.Mark(errors.Newf("%d invalid field(s)", len(result.Issues)), errReported)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat undeclared fields as errors")
	return cmd
}
