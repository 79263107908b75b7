// Package reconcile implements the reconciliation engine: it joins two
// independently-sourced tabular datasets on a normalized composite key and
// produces a field-by-field difference report plus summary statistics.
//
// The engine is a pure function from (left dataset, right dataset, config)
// to (rows, summary): inputs are read-only, outputs are built once and never
// mutated, and identical inputs always produce identical output ordering.
package reconcile

import (
	"github.com/rs/zerolog"

	"github.com/reconlab/tabdiff/pkg/dataset"
	"github.com/reconlab/tabdiff/pkg/errors"
	"github.com/reconlab/tabdiff/pkg/logging"
)

// Engine runs reconciliations for one validated configuration.
type Engine struct {
	cfg     *Config
	labels  LabelSet
	columns []compiledColumn
	logger  zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New validates and compiles the configuration and returns a ready Engine.
// All configuration problems surface here, before any comparison runs.
func New(cfg *Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, errors.NewConfigError("reconcile", "nil configuration", nil)
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	labels, err := ResolveLabels(cfg.Labels, cfg.Left, cfg.Right)
	if err != nil {
		return nil, err
	}

	e := &Engine{
		cfg:     cfg,
		labels:  labels,
		columns: compileColumns(cfg.CompareColumns),
		logger:  *logging.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Labels returns the engine's resolved label set.
func (e *Engine) Labels() LabelSet {
	return e.labels
}

// Result is the complete output of one reconciliation run: the ordered row
// set with its final column order, plus aggregate statistics.
type Result struct {
	Columns []string
	Rows    []Row
	Summary Summary
}

// Dataset restates the result rows as a dataset over the resolved column
// order, for writers that consume datasets.
func (r *Result) Dataset() *dataset.Dataset {
	ds := dataset.New("result", r.Columns)
	for i := range r.Rows {
		ds.Append(r.Rows[i].Cells(r.Columns)...)
	}
	return ds
}

// Run reconciles the two datasets. Rows come out grouped Both, LeftOnly,
// RightOnly, each group in lexicographic join-key order, so output is stable
// across runs on identical input.
func (e *Engine) Run(left, right *dataset.Dataset) (*Result, error) {
	if left == nil || right == nil {
		return nil, errors.NewValidationError("dataset", nil, "both datasets are required")
	}

	p := newPartition(left, right, e.cfg.Keys)
	if p.dupLeft > 0 || p.dupRight > 0 {
		e.logger.Debug().
			Int("left_duplicates", p.dupLeft).
			Int("right_duplicates", p.dupRight).
			Msg("Duplicate join keys dropped, first record kept")
	}

	rows := make([]Row, 0, len(p.both)+len(p.leftOnly)+len(p.rightOnly))
	for _, key := range p.both {
		rows = append(rows, e.assembleBoth(key, p.left[key.id()], p.right[key.id()]))
	}
	for _, key := range p.leftOnly {
		rows = append(rows, e.assembleOneSided(key, p.left[key.id()], RowSourceLeftOnly))
	}
	for _, key := range p.rightOnly {
		rows = append(rows, e.assembleOneSided(key, p.right[key.id()], RowSourceRightOnly))
	}

	result := &Result{
		Columns: e.resolveColumnOrder(e.assembledColumns()),
		Rows:    rows,
		Summary: e.summarize(rows, p),
	}

	e.logger.Info().
		Int("rows", result.Summary.TotalRows).
		Int("both", result.Summary.BothRows).
		Int("left_only", result.Summary.LeftOnlyRows).
		Int("right_only", result.Summary.RightOnlyRows).
		Msg("Reconciliation complete")

	return result, nil
}
