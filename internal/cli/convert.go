package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pathmark/pathmark/pkg/convert"
	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/gpml"
)

func newConvertCmd(cfg Config) *cobra.Command {
	var (
		target string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Translate a pathway document between schema generations",
		Long: `Convert reads a pathway document, detects its generation, rewrites
constructs the target generation expresses differently, and writes the
result. Lossy changes are reported on stderr.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			to := gpml.Version(target)
			if !to.Valid() {
				return errors.New(errors.ErrCodeInvalidVersion, "unknown target version %q", target)
			}

			p, from, err := gpml.ReadFile(ctx, args[0])
			if err != nil {
				return err
			}
			logger.Debug("decoded", "version", string(from), "elements", len(p.Elements()))

			var report *convert.Report
			switch {
			case from == gpml.V2013a && to == gpml.V2021:
				report = convert.Upgrade(p)
			case from == gpml.V2021 && to == gpml.V2013a:
				report = convert.Downgrade(p)
			case from == to:
				logger.Debug("source already at target generation")
			}

			if report != nil {
				for _, c := range report.Lossy() {
					printWarn(fmt.Sprintf("lossy: %s %s: %s", c.ElementID, c.Field, c.Detail))
				}
				logger.Debug("converted", "changes", len(report.Changes), "lossy", len(report.Lossy()))
			}

			if output == "" || output == "-" {
				if err := gpml.Write(ctx, p, to, os.Stdout); err != nil {
					return err
				}
			} else {
				if err := gpml.WriteFile(ctx, p, to, output); err != nil {
					return err
				}
				printOK("wrote " + output)
			}
			prog.done(fmt.Sprintf("Converted %s to %s", args[0], string(to)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", cfg.Convert.Target, "target generation (GPML2013a or GPML2021)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
