package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vasquezjesus2710/next-form-project/internal/apperrors"
	"github.com/vasquezjesus2710/next-form-project/internal/manifest"
	"github.com/vasquezjesus2710/next-form-project/internal/schema"
)

const maxTestingCenters = 4

type validateOptions struct {
	importName      string
	manifestPath    string
	splitSchedule   string
	client          string
	testingCenters  []string
	toleranceWindow bool
	maxSizeMB       int
}

func newValidateCmd() *cobra.Command {
	opts := validateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Evaluate an import submission against the form ruleset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, &opts)
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)

	flags := cmd.Flags()
	flags.StringVar(&opts.importName, "import-name", "", "import name label")
	flags.StringVar(&opts.manifestPath, "manifest", "", "path to the manifest file")
	flags.StringVar(&opts.splitSchedule, "split-schedule", "", "split schedule label")
	flags.StringVar(&opts.client, "client", "", "client label")
	flags.StringArrayVar(&opts.testingCenters, "testing-center", nil, "testing center identifier (repeatable, up to 4)")
	flags.BoolVar(&opts.toleranceWindow, "tolerance-window", false, "tolerance window flag (must be passed explicitly)")
	flags.IntVar(&opts.maxSizeMB, "max-size-mb", 64, "manifest size cap in MB (0 disables)")

	return cmd
}

func runValidate(cmd *cobra.Command, opts *validateOptions) error {
	if len(opts.testingCenters) > maxTestingCenters {
		return fmt.Errorf("at most %d testing centers are supported, got %d", maxTestingCenters, len(opts.testingCenters))
	}

	sopts, err := schema.Load()
	if err != nil {
		return err
	}

	var desc *manifest.Descriptor
	if opts.manifestPath != "" {
		desc, err = manifest.FromPath(opts.manifestPath, int64(opts.maxSizeMB)*1024*1024)
		if err != nil {
			return fmt.Errorf("%s", apperrors.PublicMessage(err))
		}
		if !manifest.HasAllowedExt(desc.Name, sopts.ManifestExtensions) {
			return fmt.Errorf("%s: unsupported manifest extension", desc.Name)
		}
	}

	values := buildValues(opts, desc, cmd.Flags())
	issues := schema.Ruleset(sopts).Evaluate(values)

	out := cmd.OutOrStdout()
	if len(issues) == 0 {
		fmt.Fprintln(out, "submission is valid")
		return nil
	}
	for _, issue := range issues {
		fmt.Fprintln(out, issue.String())
	}
	return fmt.Errorf("%d field(s) failed validation", len(issues))
}

// buildValues maps the CLI flags onto the form value set. The tolerance
// flag is only present when it was passed explicitly; the ruleset treats
// an absent boolean as a failure, same as a pristine form.
func buildValues(opts *validateOptions, desc *manifest.Descriptor, flags *pflag.FlagSet) map[string]any {
	values := schema.InitialValues()
	values[schema.FieldImportName] = opts.importName
	values[schema.FieldSplitSchedule] = opts.splitSchedule
	values[schema.FieldClient] = opts.client
	if desc != nil {
		values[schema.FieldManifestFile] = desc
	}

	centerFields := []string{
		schema.FieldTestingCenter1,
		schema.FieldTestingCenter2,
		schema.FieldTestingCenter3,
		schema.FieldTestingCenter4,
	}
	for i, center := range opts.testingCenters {
		values[centerFields[i]] = center
	}

	if flags != nil && flags.Changed("tolerance-window") {
		values[schema.FieldToleranceWindow] = opts.toleranceWindow
	} else {
		delete(values, schema.FieldToleranceWindow)
	}
	return values
}
