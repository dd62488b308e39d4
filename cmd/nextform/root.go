package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vasquezjesus2710/next-form-project/internal/version"
)

func main() {
	execute()
}

func execute() {
	cmd := newRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nextform",
		Short: "Manifest import form, headless",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}

	cmd.Version = version.Info()
	cmd.SetVersionTemplate("{{.Version}}\n")
	cmd.SetUsageTemplate(rootUsageTemplate)

	cmd.AddCommand(
		newValidateCmd(),
		newSchemaCmd(),
		newAboutCmd(),
	)

	return cmd
}
