// Package schema declares the import form: its fields, initial values and
// validation ruleset. The allowed option labels live in an embedded YAML
// document so the CLI can print them and the GUI can build selects from
// the same source.
package schema

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vasquezjesus2710/next-form-project/internal/manifest"
	"github.com/vasquezjesus2710/next-form-project/internal/rules"
)

// Field names, shared between the GUI, the CLI and the ruleset.
const (
	FieldImportName      = "importName"
	FieldManifestFile    = "manifestFile"
	FieldSplitSchedule   = "splitSchedule"
	FieldClient          = "client"
	FieldTestingCenter1  = "testingCenter1"
	FieldTestingCenter2  = "testingCenter2"
	FieldTestingCenter3  = "testingCenter3"
	FieldTestingCenter4  = "testingCenter4"
	FieldToleranceWindow = "toleranceWindow"
)

//go:embed schema.yaml
var schemaYAML []byte

// Options carries the allowed labels per enumerated field.
type Options struct {
	ImportNames        []string `yaml:"importNames"`
	SplitSchedules     []string `yaml:"splitSchedules"`
	Clients            []string `yaml:"clients"`
	ManifestExtensions []string `yaml:"manifestExtensions"`
}

// Load parses the embedded options document.
func Load() (Options, error) {
	var opts Options
	if err := yaml.Unmarshal(schemaYAML, &opts); err != nil {
		return Options{}, fmt.Errorf("parse embedded schema: %w", err)
	}
	if len(opts.ImportNames) == 0 || len(opts.SplitSchedules) == 0 || len(opts.Clients) == 0 {
		return Options{}, fmt.Errorf("embedded schema is missing option labels")
	}
	return opts, nil
}

// MustLoad is Load for startup paths where a broken embed is unrecoverable.
func MustLoad() Options {
	opts, err := Load()
	if err != nil {
		panic(err)
	}
	return opts
}

// YAML re-serializes the options for the `nextform schema` command.
func (o Options) YAML() ([]byte, error) {
	return yaml.Marshal(o)
}

// Field describes one form field for rendering.
type Field struct {
	Name     string
	Label    string
	Required bool
}

// Fields returns the form fields in display order.
func Fields() []Field {
	return []Field{
		{Name: FieldImportName, Label: "Import name", Required: true},
		{Name: FieldManifestFile, Label: "Manifest file", Required: true},
		{Name: FieldSplitSchedule, Label: "Split schedule", Required: true},
		{Name: FieldClient, Label: "Client", Required: true},
		{Name: FieldTestingCenter1, Label: "Testing center 1", Required: false},
		{Name: FieldTestingCenter2, Label: "Testing center 2", Required: false},
		{Name: FieldTestingCenter3, Label: "Testing center 3", Required: false},
		{Name: FieldTestingCenter4, Label: "Testing center 4", Required: false},
		{Name: FieldToleranceWindow, Label: "Tolerance window", Required: true},
	}
}

// InitialValues returns the pristine value set: empty strings for text
// fields, a nil descriptor for the manifest and false for the tolerance
// flag. The manifest field is present-but-nil until a file is chosen.
func InitialValues() map[string]any {
	return map[string]any{
		FieldImportName:      "",
		FieldManifestFile:    (*manifest.Descriptor)(nil),
		FieldSplitSchedule:   "",
		FieldClient:          "",
		FieldTestingCenter1:  "",
		FieldTestingCenter2:  "",
		FieldTestingCenter3:  "",
		FieldTestingCenter4:  "",
		FieldToleranceWindow: false,
	}
}

// Ruleset builds the validation rules from the option labels.
// The testing center fields deliberately carry no rules.
func Ruleset(opts Options) rules.Ruleset {
	return rules.Ruleset{
		FieldImportName: {
			rules.Required{},
			rules.OneOf{Options: opts.ImportNames},
		},
		FieldManifestFile: {
			rules.Required{Message: "A manifest file is required"},
		},
		FieldSplitSchedule: {
			rules.Required{},
			rules.OneOf{Options: opts.SplitSchedules},
		},
		FieldClient: {
			rules.Required{},
			rules.OneOf{Options: opts.Clients},
		},
		FieldToleranceWindow: {
			rules.BoolRequired{},
		},
	}
}
