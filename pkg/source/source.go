// Package source provides dataset loaders for reconciliation runs. A Source
// produces one side of a run from CSV files, SQL databases, or a deterministic
// mock generator; all loaders honor an optional column equality filter so only
// the slice under reconciliation is held in memory.
package source

import (
	"context"

	"github.com/reconlab/tabdiff/pkg/dataset"
	"github.com/reconlab/tabdiff/pkg/errors"
)

// Source loads one dataset for a reconciliation side.
type Source interface {
	// Name returns the source's human-readable identity for logs and errors.
	Name() string

	// Load reads the full (filtered) dataset into memory.
	Load(ctx context.Context) (*dataset.Dataset, error)
}

// Filter is an optional equality predicate applied while loading: rows whose
// Column does not equal Value are dropped. A zero Filter matches every row.
type Filter struct {
	Column string `yaml:"column" json:"column"`
	Value  string `yaml:"value" json:"value"`
}

// Empty reports whether the filter matches every row.
func (f Filter) Empty() bool {
	return f.Column == ""
}

// Kind identifies a loader implementation.
type Kind string

// Supported source kinds.
const (
	KindCSV  Kind = "csv"
	KindSQL  Kind = "sql"
	KindMock Kind = "mock"
)

// Config describes where one reconciliation side comes from.
type Config struct {
	Type   Kind       `yaml:"type" json:"type"`
	Name   string     `yaml:"name,omitempty" json:"name,omitempty"`
	Filter Filter     `yaml:"filter,omitempty" json:"filter,omitempty"`
	CSV    *CSVConfig  `yaml:"csv,omitempty" json:"csv,omitempty"`
	SQL    *SQLConfig  `yaml:"sql,omitempty" json:"sql,omitempty"`
	Mock   *MockConfig `yaml:"mock,omitempty" json:"mock,omitempty"`
}

// New builds the loader described by cfg.
func New(cfg Config) (Source, error) {
	switch cfg.Type {
	case KindCSV:
		if cfg.CSV == nil {
			return nil, errors.NewConfigError("source", "csv source requires a csv block", nil)
		}
		return NewCSVSource(cfg.Name, *cfg.CSV, cfg.Filter), nil
	case KindSQL:
		if cfg.SQL == nil {
			return nil, errors.NewConfigError("source", "sql source requires a sql block", nil)
		}
		return NewSQLSource(cfg.Name, *cfg.SQL, cfg.Filter)
	case KindMock:
		if cfg.Mock == nil {
			return nil, errors.NewConfigError("source", "mock source requires a mock block", nil)
		}
		return NewMockSource(cfg.Name, *cfg.Mock, cfg.Filter), nil
	default:
		return nil, errors.NewConfigError("source", "unknown source type: "+string(cfg.Type), nil)
	}
}
