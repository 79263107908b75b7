package reconcile

import (
	"fmt"

	"github.com/reconlab/tabdiff/pkg/errors"
)

// DType identifies how a compare column's values are interpreted.
type DType string

const (
	// DTypeNumeric compares values as floating point with a tolerance.
	DTypeNumeric DType = "numeric"
	// DTypeText compares values as trimmed, case-insensitive strings.
	DTypeText DType = "text"
)

// SideConfig describes one side of the reconciliation. The name becomes the
// column prefix for that side's values in the result set.
type SideConfig struct {
	Name string `yaml:"name" json:"name"`
}

// KeySpec lists the join key fields per side. The lists are positional:
// entry i on the left corresponds to entry i on the right.
type KeySpec struct {
	Left  []string `yaml:"left" json:"left"`
	Right []string `yaml:"right" json:"right"`
}

// CompareColumn configures one field-pair comparison.
type CompareColumn struct {
	Left      string            `yaml:"left" json:"left"`
	Right     string            `yaml:"right" json:"right"`
	Label     string            `yaml:"label" json:"label"`
	DType     DType             `yaml:"dtype" json:"dtype"`
	Tolerance float64           `yaml:"tolerance" json:"tolerance"`
	ValueMap  map[string]string `yaml:"value_map" json:"value_map,omitempty"`
	Direction bool              `yaml:"direction" json:"direction"`
}

// AdditionalColumn configures a display-only column pair. It is never
// compared and never affects row classification.
type AdditionalColumn struct {
	Left  string `yaml:"left" json:"left,omitempty"`
	Right string `yaml:"right" json:"right,omitempty"`
	Label string `yaml:"label" json:"label"`
}

// Config is the full reconciliation configuration. It is validated once by
// New; a config that passes validation never fails mid-run.
type Config struct {
	Left              SideConfig         `yaml:"left" json:"left"`
	Right             SideConfig         `yaml:"right" json:"right"`
	Keys              KeySpec            `yaml:"keys" json:"keys"`
	CompareColumns    []CompareColumn    `yaml:"compare_columns" json:"compare_columns"`
	AdditionalColumns []AdditionalColumn `yaml:"additional_columns" json:"additional_columns,omitempty"`
	Labels            map[string]string  `yaml:"labels" json:"labels,omitempty"`
	ColumnOrder       []string           `yaml:"column_order" json:"column_order,omitempty"`
}

// normalize fills defaults in place: side names, compact column forms, and
// dtype defaults. Mirrors the compact-to-verbose normalization users rely on.
func (c *Config) normalize() {
	if c.Left.Name == "" {
		c.Left.Name = "Left"
	}
	if c.Right.Name == "" {
		c.Right.Name = "Right"
	}
	for i := range c.CompareColumns {
		cc := &c.CompareColumns[i]
		if cc.Label == "" {
			cc.Label = cc.Left
		}
		if cc.DType == "" {
			cc.DType = DTypeText
		}
	}
	for i := range c.AdditionalColumns {
		ac := &c.AdditionalColumns[i]
		if ac.Label == "" {
			if ac.Left != "" {
				ac.Label = ac.Left
			} else {
				ac.Label = ac.Right
			}
		}
	}
}

// Validate checks the configuration and returns a descriptive error for the
// first problem found. All checks happen before any comparison runs.
func (c *Config) Validate() error {
	if len(c.Keys.Left) == 0 || len(c.Keys.Right) == 0 {
		return errors.NewConfigError("keys", "both sides must declare at least one key field", nil)
	}
	if len(c.Keys.Left) != len(c.Keys.Right) {
		return errors.NewConfigError("keys",
			fmt.Sprintf("key field lists must have equal length: left has %d, right has %d",
				len(c.Keys.Left), len(c.Keys.Right)), nil)
	}
	for i, f := range c.Keys.Left {
		if f == "" {
			return errors.NewConfigError("keys", fmt.Sprintf("left key field %d is empty", i), nil)
		}
	}
	for i, f := range c.Keys.Right {
		if f == "" {
			return errors.NewConfigError("keys", fmt.Sprintf("right key field %d is empty", i), nil)
		}
	}

	if len(c.CompareColumns) == 0 {
		return errors.NewConfigError("compare_columns", "at least one compare column is required", nil)
	}

	seen := make(map[string]bool, len(c.CompareColumns)+len(c.AdditionalColumns))
	for i, cc := range c.CompareColumns {
		if cc.Left == "" || cc.Right == "" {
			return errors.NewConfigError("compare_columns",
				fmt.Sprintf("column %d (%q) must name both a left and a right field", i, cc.Label), nil)
		}
		if cc.Label == "" {
			return errors.NewConfigError("compare_columns",
				fmt.Sprintf("column %d has no label", i), nil)
		}
		if seen[cc.Label] {
			return errors.NewConfigError("compare_columns",
				fmt.Sprintf("duplicate label %q", cc.Label), nil)
		}
		seen[cc.Label] = true
		if cc.DType != DTypeNumeric && cc.DType != DTypeText {
			return errors.NewConfigError("compare_columns",
				fmt.Sprintf("column %q has unknown dtype %q", cc.Label, cc.DType), nil)
		}
		if cc.Tolerance < 0 {
			return errors.NewConfigError("compare_columns",
				fmt.Sprintf("column %q has negative tolerance %v", cc.Label, cc.Tolerance), nil)
		}
	}
	for i, ac := range c.AdditionalColumns {
		if ac.Label == "" {
			return errors.NewConfigError("additional_columns",
				fmt.Sprintf("column %d has no label and no field to derive one from", i), nil)
		}
		if seen[ac.Label] {
			return errors.NewConfigError("additional_columns",
				fmt.Sprintf("duplicate label %q", ac.Label), nil)
		}
		seen[ac.Label] = true
	}

	return nil
}
