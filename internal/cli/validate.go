package cli

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/pathmark/pathmark/pkg/errors"
	"github.com/pathmark/pathmark/pkg/gpml"
	"github.com/pathmark/pathmark/pkg/validate"
)

func newValidateCmd() *cobra.Command {
	var version string

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a pathway document against its schema generation",
		Long: `Validate parses a document and checks it against the schema tables:
unknown elements and attributes, missing required attributes, malformed
values, out-of-order children, and unresolved references. All findings are
reported, not just the first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			doc := etree.NewDocument()
			if err := doc.ReadFromFile(args[0]); err != nil {
				return errors.Wrap(errors.ErrCodeConversion, err, "parse %s", args[0])
			}

			ver := gpml.Version(version)
			if version == "" {
				detected, err := gpml.DetectVersion(doc)
				if err != nil {
					return err
				}
				ver = detected
			} else if !ver.Valid() {
				return errors.New(errors.ErrCodeInvalidVersion, "unknown version %q", version)
			}
			logger.Debug("validating", "version", string(ver))

			result := validate.Document(doc, ver)
			if result.Valid() {
				printOK(fmt.Sprintf("%s is valid %s", args[0], string(ver)))
				return nil
			}

			for _, issue := range result.Issues {
				printFail(issue.String())
			}
			return errors.New(errors.ErrCodeSchemaInvalid, "%d validation issues", len(result.Issues))
		},
	}

	cmd.Flags().StringVarP(&version, "schema", "s", "", "generation to validate against (default: detected)")
	return cmd
}
