package index

import (
	index_rebuild "github.com/opst/confusionflow/cmd/confusionflow/subcommands/index/rebuild"
	"github.com/youta-t/flarc"
)

func New() (flarc.Command, error) {
	rebuild, err := index_rebuild.New()
	if err != nil {
		return nil, err
	}

	return flarc.NewCommandGroup(
		"Maintain index files in logdir.",
		struct{}{},
		flarc.WithSubcommand("rebuild", rebuild),
	)
}
