package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/pasdam/batchRegexRenamer/cmd/batchrename/opts"
	"github.com/pasdam/batchRegexRenamer/pkg/pipeline"
)

// NewRulesCmd creates the rules command group
func NewRulesCmd(o *opts.RootOpts) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect rule scripts",
	}

	cmd.AddCommand(
		newRulesShowCmd(o),
		newRulesCheckCmd(o),
		newRulesFmtCmd(o),
	)
	return cmd
}

// scriptArg returns the script named on the command line, or the configured one
func scriptArg(o *opts.RootOpts, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if path := o.ScriptPath(); path != "" {
		return path, nil
	}
	return "", errors.New("no script: pass SCRIPT, --script or set script in the config")
}

func newRulesShowCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "show [SCRIPT]",
		Short: "List the rules of a script",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := scriptArg(o, args)
			if err != nil {
				return err
			}
			p := pipeline.New()
			if err := p.LoadScript(cmd.Context(), path); err != nil {
				return err
			}
			return o.UserLogger.RulesTable(p.Specs())
		},
	}
}

func newRulesCheckCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "check [SCRIPT]",
		Short: "Validate a script and every rule in it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := scriptArg(o, args)
			if err != nil {
				return err
			}

			p := pipeline.New()
			if err := p.LoadScript(cmd.Context(), path); err != nil {
				var scriptErr *pipeline.ScriptError
				if errors.As(err, &scriptErr) {
					o.UserLogger.LogValidation(false, fmt.Sprintf("%s line %d", path, scriptErr.Line), scriptErr.Err)
					return errors.Errorf("%s does not parse", path)
				}
				return err
			}

			invalid := 0
			for i, s := range p.Specs() {
				desc := fmt.Sprintf("rule %d %s", i, s.Kind())
				switch err := s.Validate(); {
				case err != nil && s.Enabled():
					invalid++
					o.UserLogger.LogValidation(false, desc, err)
				case err != nil:
					o.UserLogger.LogValidation(false, desc+" is disabled and invalid", nil)
				case !s.Enabled():
					o.UserLogger.LogValidation(false, desc+" is disabled", nil)
				default:
					o.UserLogger.LogValidation(true, desc, nil)
				}
			}

			if invalid > 0 {
				return errors.Errorf("%d invalid rules in %s", invalid, path)
			}
			o.UserLogger.LogValidation(true, fmt.Sprintf("%s: %d rules ok", path, p.Len()), nil)
			return nil
		},
	}
}

func newRulesFmtCmd(o *opts.RootOpts) *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [SCRIPT]",
		Short: "Rewrite a script in canonical form",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := scriptArg(o, args)
			if err != nil {
				return err
			}

			p := pipeline.New()
			if err := p.LoadScript(cmd.Context(), path); err != nil {
				return err
			}
			if err := p.SaveScript(cmd.Context(), path); err != nil {
				return err
			}
			o.UserLogger.LogValidation(true, fmt.Sprintf("%s: %d rules written", path, p.Len()), nil)
			return nil
		},
	}
}

