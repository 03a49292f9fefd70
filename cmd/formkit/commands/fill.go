package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/form"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/prompt"
)

func newFillCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "fill",
		Short: "Fill the form interactively",
		Long: `Fill prompts for every field in order. Invalid answers show the field's
message and the question is asked again. Once every field validates the record
is submitted and printed in the configured output format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.loadSchema()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			renderer, err := a.renderer()
			if err != nil {
				return err
			}

			controller := form.New(s,
				form.WithLogger(a.logger),
				form.WithValidateOnChange(a.cfg.ValidateOnChange),
				form.WithValidateOnBlur(a.cfg.ValidateOnBlur),
				form.WithSubmitFunc(func(_ context.Context, values model.Record) error {
					return renderer.RenderRecord(out, s, values)
				}),
			)

			driver := a.driver
			if driver == nil {
				driver = prompt.NewSurveyDriver(cmd.ErrOrStderr())
			}
			session := prompt.NewSession(controller,
				prompt.WithDriver(driver),
				prompt.WithConfirmSubmit(a.cfg.ConfirmSubmit),
				prompt.WithMaxAttempts(a.cfg.MaxAttempts),
			)
			_, err = session.Run(cmd.Context())
			return err
		},
	}
}
