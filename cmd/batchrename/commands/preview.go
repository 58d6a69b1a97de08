package commands

import (
	"github.com/spf13/cobra"

	"github.com/pasdam/batchRegexRenamer/cmd/batchrename/opts"
	"github.com/pasdam/batchRegexRenamer/pkg/engine"
)

// NewPreviewCmd creates the preview command
func NewPreviewCmd(o *opts.RootOpts) *cobra.Command {
	var (
		table bool
		skip  []string
	)

	cmd := &cobra.Command{
		Use:   "preview DIR",
		Short: "Show what the rules would rename, without touching any file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			s, err := openSession(ctx, o, args[0], true)
			if err != nil {
				return err
			}

			listed, err := s.refresh(ctx, o.Config.Listing())
			if err != nil {
				return err
			}
			if err := s.skip(ctx, listed.Entries, skip); err != nil {
				return err
			}

			res, err := s.runner.Run(ctx, engine.Preview{})
			if err != nil {
				return err
			}

			if table {
				if err := o.UserLogger.PreviewTable(res); err != nil {
					return err
				}
			} else {
				o.Console.Header("preview")
				o.Console.Directory(s.dir)
				logPreview(ctx, o.Console, res)
				o.Console.LogNewline()
			}

			o.UserLogger.LogSummary(res, false)
			return nil
		},
	}

	cmd.Flags().BoolVar(&table, "table", false, "render the preview as a table")
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "leave files matching these globs untouched")
	return cmd
}
