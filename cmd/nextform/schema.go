package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vasquezjesus2710/next-form-project/internal/schema"
)

type schemaFieldDoc struct {
	Name     string `yaml:"name"`
	Label    string `yaml:"label"`
	Required bool   `yaml:"required"`
}

type schemaDoc struct {
	Fields  []schemaFieldDoc `yaml:"fields"`
	Options schema.Options   `yaml:"options"`
}

func newSchemaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the form fields and allowed option labels",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := schema.Load()
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(buildSchemaDoc(opts))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}
	cmd.SetUsageTemplate(subcommandUsageTemplate)
	return cmd
}

func buildSchemaDoc(opts schema.Options) schemaDoc {
	doc := schemaDoc{Options: opts}
	for _, f := range schema.Fields() {
		doc.Fields = append(doc.Fields, schemaFieldDoc{
			Name:     f.Name,
			Label:    f.Label,
			Required: f.Required,
		})
	}
	return doc
}
