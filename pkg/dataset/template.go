package dataset

import (
	"io"

	y "github.com/opst/confusionflow/pkg/utils/yamler"
	"gopkg.in/yaml.v3"
)

// Template builds a skeleton of dataset description.
//
// Descriptions are empty and class frequencies are zero; fill them before importing.
func Template(datasetId string, classes []string, foldnames []string) *yaml.Node {
	cls := make([]*yaml.Node, 0, len(classes))
	for _, c := range classes {
		cls = append(cls, y.Text(c))
	}

	folds := make([]*yaml.Node, 0, len(foldnames))
	for _, name := range foldnames {
		freqs := make([]*yaml.Node, 0, len(classes))
		for _, c := range classes {
			freqs = append(freqs, y.Map(y.Entry(y.Text(c), y.Number(0))))
		}
		folds = append(folds, y.Map(
			y.Entry(
				y.Text(name, y.WithLineComment("foldId: "+FoldId(datasetId, name))),
				y.Map(
					y.Entry(y.Text("description"), y.Quoted("")),
					y.Entry(
						y.Text("classfrequencies", y.WithHeadComment("number of instances for each class in this fold")),
						y.Seq(freqs...),
					),
				),
			),
		))
	}

	return y.Map(
		y.Entry(
			y.Text("dataset", y.WithHeadComment("dataset description for ConfusionFlow")),
			y.Quoted(datasetId),
		),
		y.Entry(y.Text("description"), y.Quoted("")),
		y.Entry(y.Text("classes"), y.FlowSeq(cls...)),
		y.Entry(y.Text("folds"), y.Seq(folds...)),
	)
}

// WriteTemplate writes the output of Template as a YAML document.
func WriteTemplate(w io.Writer, datasetId string, classes []string, foldnames []string) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Template(datasetId, classes, foldnames)); err != nil {
		return err
	}
	return enc.Close()
}
