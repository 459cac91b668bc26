// Package dataset imports dataset descriptions into the log store.
//
// A dataset description is a YAML document like below:
//
//	dataset: mnist
//	description: handwritten digits
//	classes: [0, 1]
//	folds:
//	  - train:
//	      description: training split
//	      classfrequencies:
//	        - 0: 5
//	        - 1: 5
//
// Folds and class frequencies are single-key mappings, and their order is kept.
package dataset

import (
	"fmt"
	"os"

	xe "github.com/opst/confusionflow/pkg/errors"
	"github.com/opst/confusionflow/pkg/logstore"
	kpath "github.com/opst/confusionflow/pkg/utils/path"
	"gopkg.in/yaml.v3"
)

type ClassCount struct {
	ClassName     string `json:"classname"`
	InstanceCount int    `json:"instancecount"`
}

type FoldSummary struct {
	FoldId       string       `json:"foldId"`
	Description  string       `json:"description"`
	Dataset      string       `json:"dataset"`
	NumInstances int          `json:"numinstances"`
	ClassCounts  []ClassCount `json:"classcounts"`
}

// Config is a normalized dataset description, as exported into the log store.
type Config struct {
	DatasetId   string        `json:"datasetId"`
	Description string        `json:"description"`
	NumClass    int           `json:"numclass"`
	NumFolds    int           `json:"numfolds"`
	Classes     []string      `json:"classes"`
	Folds       []FoldSummary `json:"folds"`
}

// FileName is the name of the file where the dataset is stored in.
func (c Config) FileName() string {
	return c.DatasetId + ".json"
}

// Fold returns FoldSummary with the foldId.
func (c Config) Fold(foldId string) (FoldSummary, bool) {
	for _, f := range c.Folds {
		if f.FoldId == foldId {
			return f, true
		}
	}
	return FoldSummary{}, false
}

// Parse reads a dataset description.
//
// It fails with ErrMalformedConfig when a required field is missing or ill-typed,
// or `classes` or `folds` are empty.
func Parse(raw []byte) (Config, error) {
	var desc description
	if err := yaml.Unmarshal(raw, &desc); err != nil {
		return Config{}, xe.Because(xe.ErrMalformedConfig, err, "can not parse dataset description")
	}
	return desc.normalize()
}

// Load reads a dataset description from the file.
//
// It fails with ErrConfigNotFound when the file does not exist,
// and with ErrMalformedConfig when the content is not a dataset description.
func Load(path string) (Config, error) {
	real, err := kpath.RealPath(path)
	if err != nil {
		return Config{}, xe.Because(xe.ErrConfigNotFound, err, "can not resolve %s", path)
	}
	if fi, err := os.Stat(real); err != nil {
		return Config{}, xe.Because(xe.ErrConfigNotFound, err, "file `%s` not found", real)
	} else if fi.IsDir() {
		return Config{}, xe.Wrapf(xe.ErrConfigNotFound, "`%s` is a directory", real)
	}

	content, err := os.ReadFile(real)
	if err != nil {
		return Config{}, xe.Wrap(err)
	}
	conf, err := Parse(content)
	if err != nil {
		return Config{}, xe.WrapWithNote(real, err)
	}
	return conf, nil
}

// Import reads a dataset description from the file, and writes it into the log store.
//
// The file is stored as datasets/{datasetId}.json. Then, datasets/index.json is rebuilt.
// Importing the same dataset again overwrites the file.
func Import(store *logstore.Store, path string) (Config, error) {
	conf, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if _, err := store.WriteJSON(logstore.Datasets, conf.FileName(), conf); err != nil {
		return Config{}, err
	}
	if err := store.RebuildIndex(logstore.Datasets); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// description is a schema of dataset description files.
//
// Required fields are pointers, to distinguish missing ones from empty ones.
type description struct {
	Dataset     *string     `yaml:"dataset"`
	Description *string     `yaml:"description"`
	Classes     []className `yaml:"classes"`
	Folds       []foldEntry `yaml:"folds"`
}

type foldBody struct {
	Description      *string           `yaml:"description"`
	ClassFrequencies *[]classFrequency `yaml:"classfrequencies"`
}

// foldEntry is `{foldname: {description: ..., classfrequencies: [...]}}`
type foldEntry struct {
	Name string
	Body foldBody
}

// classFrequency is `{classname: count}`
type classFrequency struct {
	ClassName string
	Count     int
}

// className accepts any scalar, like `0` or `cat`.
type className string

func (c *className) UnmarshalYAML(node *yaml.Node) error {
	s, err := scalar(node)
	if err != nil {
		return err
	}
	*c = className(s)
	return nil
}

func (f *foldEntry) UnmarshalYAML(node *yaml.Node) error {
	key, value, err := singleEntry(node)
	if err != nil {
		return fmt.Errorf("fold: %w", err)
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: fold %s: should be a mapping", value.Line, key)
	}
	var body foldBody
	if err := value.Decode(&body); err != nil {
		return fmt.Errorf("fold %s: %w", key, err)
	}
	f.Name = key
	f.Body = body
	return nil
}

func (c *classFrequency) UnmarshalYAML(node *yaml.Node) error {
	key, value, err := singleEntry(node)
	if err != nil {
		return fmt.Errorf("classfrequency: %w", err)
	}
	var count int
	if err := value.Decode(&count); err != nil {
		return fmt.Errorf("classfrequency %s: %w", key, err)
	}
	if count < 0 {
		return fmt.Errorf("line %d: classfrequency %s: negative count %d", value.Line, key, count)
	}
	c.ClassName = key
	c.Count = count
	return nil
}

// singleEntry takes key and value from a mapping node having just one entry.
func singleEntry(node *yaml.Node) (string, *yaml.Node, error) {
	if node.Kind != yaml.MappingNode || len(node.Content) != 2 {
		return "", nil, fmt.Errorf("line %d: should be a mapping with a single key", node.Line)
	}
	key, err := scalar(node.Content[0])
	if err != nil {
		return "", nil, err
	}
	return key, node.Content[1], nil
}

func scalar(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode || node.ShortTag() == "!!null" {
		return "", fmt.Errorf("line %d: should be a non-null scalar", node.Line)
	}
	return node.Value, nil
}

func malformed(format string, args ...any) error {
	return xe.Wrapf(xe.ErrMalformedConfig, format, args...)
}

func (d description) normalize() (Config, error) {
	if d.Dataset == nil || *d.Dataset == "" {
		return Config{}, malformed("required field missing: dataset")
	}
	datasetId := *d.Dataset
	if !kpath.IsPlainName(datasetId + ".json") {
		return Config{}, malformed("dataset %q can not be used as a file name", datasetId)
	}
	if d.Description == nil {
		return Config{}, malformed("required field missing: description")
	}
	if len(d.Classes) == 0 {
		return Config{}, malformed("classes should not be empty")
	}
	if len(d.Folds) == 0 {
		return Config{}, malformed("folds should not be empty")
	}

	classes := make([]string, len(d.Classes))
	for i, c := range d.Classes {
		classes[i] = string(c)
	}

	folds := make([]FoldSummary, 0, len(d.Folds))
	for _, f := range d.Folds {
		if f.Body.Description == nil {
			return Config{}, malformed("fold %s: required field missing: description", f.Name)
		}
		if f.Body.ClassFrequencies == nil {
			return Config{}, malformed("fold %s: required field missing: classfrequencies", f.Name)
		}

		summary := FoldSummary{
			FoldId:      FoldId(datasetId, f.Name),
			Description: *f.Body.Description,
			Dataset:     datasetId,
			ClassCounts: make([]ClassCount, 0, len(*f.Body.ClassFrequencies)),
		}
		for _, cf := range *f.Body.ClassFrequencies {
			summary.NumInstances += cf.Count
			summary.ClassCounts = append(summary.ClassCounts, ClassCount{
				ClassName: cf.ClassName, InstanceCount: cf.Count,
			})
		}
		folds = append(folds, summary)
	}

	return Config{
		DatasetId:   datasetId,
		Description: *d.Description,
		NumClass:    len(classes),
		NumFolds:    len(folds),
		Classes:     classes,
		Folds:       folds,
	}, nil
}

// FoldId is the identifier of a fold in a dataset.
func FoldId(datasetId, foldname string) string {
	return datasetId + "_" + foldname
}
