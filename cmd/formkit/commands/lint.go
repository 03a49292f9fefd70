package commands

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/goliatone/go-formkit/pkg/definition"
	"github.com/goliatone/go-formkit/pkg/model"
	"github.com/goliatone/go-formkit/pkg/validation"
)

func newLintCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lint [FILE...]",
		Short: "Compile form definitions and show field dependencies",
		Long: `Lint compiles each definition, reporting unknown rule kinds, patterns that
do not compile, malformed bounds and references to undeclared fields. For
valid definitions the cross-field dependency graph is printed.

Without arguments the configured form (or the bundled registration form) is
linted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			type target struct {
				source string
				load   func() (model.FormModel, error)
			}
			var targets []target
			for _, path := range args {
				path := path
				targets = append(targets, target{source: path, load: func() (model.FormModel, error) {
					return definition.LoadFile(path)
				}})
			}
			if len(targets) == 0 {
				if a.cfg.Form != "" {
					targets = append(targets, target{source: a.cfg.Form, load: func() (model.FormModel, error) {
						return definition.LoadFile(a.cfg.Form)
					}})
				} else {
					targets = append(targets, target{source: "registration (bundled)", load: func() (model.FormModel, error) {
						return definition.Registration(), nil
					}})
				}
			}

			failed := 0
			for _, t := range targets {
				s, err := lintOne(t.load)
				if err != nil {
					failed++
					_, _ = errorColor.Fprint(out, "✗ ")
					_, _ = fmt.Fprintf(out, "%s: %v\n", t.source, err)
					continue
				}
				_, _ = okColor.Fprint(out, "✓ ")
				_, _ = fmt.Fprintf(out, "%s: form %q, %d fields\n", t.source, s.ID(), len(s.Fields()))
				for _, field := range s.Fields() {
					if deps := s.Dependents(field.Name); len(deps) > 0 {
						_, _ = fmt.Fprintf(out, "    %s -> %s\n", field.Name, strings.Join(deps, ", "))
					}
				}
			}
			if failed > 0 {
				return errors.Mark(errors.Newf("%d definition(s) failed", failed), errReported)
			}
			return nil
		},
	}
}

func lintOne(load func() (model.FormModel, error)) (*validation.Schema, error) {
	form, err := load()
	if err != nil {
		return nil, err
	}
	return validation.Compile(form)
}
