// Package config loads reconciliation run files. A run file is a single YAML
// document naming both dataset sources and the reconciliation rules to apply
// between them.
package config

import (
	"os"

	"github.com/goccy/go-yaml"

	"github.com/reconlab/tabdiff/pkg/errors"
	"github.com/reconlab/tabdiff/pkg/reconcile"
	"github.com/reconlab/tabdiff/pkg/source"
)

// RunFile is the parsed run configuration.
type RunFile struct {
	Left      source.Config    `yaml:"left" json:"left"`
	Right     source.Config    `yaml:"right" json:"right"`
	Reconcile reconcile.Config `yaml:"reconcile" json:"reconcile"`
}

// Load reads and parses a run file. Side display names default to the source
// names when the reconcile block does not set them.
func Load(path string) (*RunFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	var rf RunFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	if rf.Reconcile.Left.Name == "" {
		rf.Reconcile.Left.Name = rf.Left.Name
	}
	if rf.Reconcile.Right.Name == "" {
		rf.Reconcile.Right.Name = rf.Right.Name
	}

	return &rf, nil
}

// Sources builds both side loaders from the run file.
func (rf *RunFile) Sources() (left, right source.Source, err error) {
	left, err = source.New(rf.Left)
	if err != nil {
		return nil, nil, errors.WrapSource(string(rf.Left.Type), "left", err)
	}
	right, err = source.New(rf.Right)
	if err != nil {
		return nil, nil, errors.WrapSource(string(rf.Right.Type), "right", err)
	}
	return left, right, nil
}

// SetFilterValue overrides both sides' filter values in place. Used by the
// CLI's --filter-value flag to reslice a run without editing the file.
func (rf *RunFile) SetFilterValue(value string) {
	if !rf.Left.Filter.Empty() {
		rf.Left.Filter.Value = value
	}
	if !rf.Right.Filter.Empty() {
		rf.Right.Filter.Value = value
	}
}
