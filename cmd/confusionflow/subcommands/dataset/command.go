package dataset

import (
	dataset_import "github.com/opst/confusionflow/cmd/confusionflow/subcommands/dataset/import"
	dataset_template "github.com/opst/confusionflow/cmd/confusionflow/subcommands/dataset/template"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	imp, err := dataset_import.New()
	if err != nil {
		return nil, err
	}
	template, err := dataset_template.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Manipulate dataset descriptions.",
		struct{}{},
		flarc.WithSubcommand("import", imp),
		flarc.WithSubcommand("template", template),
	)
}
