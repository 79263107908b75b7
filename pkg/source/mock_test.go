package source

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconlab/tabdiff/pkg/dataset"
)

// TestGenerateMockPairDeterminism tests that the same seed reproduces the
// same pair exactly.
func TestGenerateMockPairDeterminism(t *testing.T) {
	cfg := MockConfig{Seed: 7}

	l1, r1 := GenerateMockPair(cfg)
	l2, r2 := GenerateMockPair(cfg)

	requireEqualDatasets(t, l1, l2)
	requireEqualDatasets(t, r1, r2)

	l3, _ := GenerateMockPair(MockConfig{Seed: 8})
	assert.NotEqual(t, flatten(l1), flatten(l3))
}

// TestGenerateMockPairShape tests field layouts and row counts.
func TestGenerateMockPairShape(t *testing.T) {
	left, right := GenerateMockPair(MockConfig{})

	assert.Equal(t, mockLeftFields, left.Fields)
	assert.Equal(t, mockRightFields, right.Fields)

	// Defaults: 8 counties x 6 specialties, 5% dropped per side.
	grid := 8 * 6
	assert.Greater(t, left.Len(), grid/2)
	assert.LessOrEqual(t, left.Len(), grid)
	assert.Greater(t, right.Len(), grid/2)
	assert.LessOrEqual(t, right.Len(), grid)

	for _, rec := range left.Records {
		assert.Equal(t, "TX", rec.Get("State").String())
		count, ok := rec.Get("Provider_Count").Float()
		require.True(t, ok)
		assert.GreaterOrEqual(t, count, 3.0)
		assert.LessOrEqual(t, count, 25.0)
		flag := rec.Get("Meets_Standard").String()
		assert.Contains(t, []string{"Y", "N"}, flag)
	}
}

// TestGenerateMockPairMismatches tests that mismatch injection leaves most
// shared rows intact.
func TestGenerateMockPairMismatches(t *testing.T) {
	left, right := GenerateMockPair(MockConfig{Seed: 42, MismatchRate: 0.15})

	leftIdx := indexMock(left, "County_Name", "Specialty")
	mismatched, shared := 0, 0
	for _, rec := range right.Records {
		key := rec.Get("county_name").String() + "/" + rec.Get("specialty_type").String()
		lrec, ok := leftIdx[key]
		if !ok {
			continue
		}
		shared++
		if lrec.Get("Provider_Count").String() != rec.Get("provider_cnt").String() ||
			lrec.Get("Meets_Standard").String() != rec.Get("meets_standard_flag").String() ||
			lrec.Get("Avg_Distance_Miles").String() != rec.Get("avg_distance").String() {
			mismatched++
		}
	}

	require.Greater(t, shared, 0)
	assert.Less(t, mismatched, shared/2)
}

// TestMockSourceLoad tests side selection and filtering.
func TestMockSourceLoad(t *testing.T) {
	t.Run("left side", func(t *testing.T) {
		src := NewMockSource("", MockConfig{Side: MockSideLeft}, Filter{})
		ds, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "mock-left", ds.Name)
		assert.Equal(t, mockLeftFields, ds.Fields)
	})

	t.Run("right side", func(t *testing.T) {
		src := NewMockSource("niq", MockConfig{Side: MockSideRight}, Filter{})
		ds, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "niq", ds.Name)
		assert.Equal(t, mockRightFields, ds.Fields)
	})

	t.Run("invalid side", func(t *testing.T) {
		src := NewMockSource("x", MockConfig{Side: "middle"}, Filter{})
		_, err := src.Load(context.Background())
		assert.Error(t, err)
	})

	t.Run("filter applies", func(t *testing.T) {
		src := NewMockSource("x", MockConfig{Side: MockSideLeft},
			Filter{Column: "State", Value: "CA"})
		ds, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
	})

	t.Run("matching filter keeps rows", func(t *testing.T) {
		src := NewMockSource("x", MockConfig{Side: MockSideLeft, State: "CA"},
			Filter{Column: "State", Value: "CA"})
		ds, err := src.Load(context.Background())
		require.NoError(t, err)
		assert.Greater(t, ds.Len(), 0)
	})
}

func requireEqualDatasets(t *testing.T, a, b *dataset.Dataset) {
	t.Helper()
	require.Equal(t, a.Fields, b.Fields)
	require.Equal(t, flatten(a), flatten(b))
}

func flatten(ds *dataset.Dataset) [][]string {
	out := make([][]string, 0, ds.Len())
	for _, rec := range ds.Records {
		row := make([]string, len(ds.Fields))
		for i, f := range ds.Fields {
			row[i] = rec.Get(f).String()
		}
		out = append(out, row)
	}
	return out
}

func indexMock(ds *dataset.Dataset, keyFields ...string) map[string]*dataset.Record {
	idx := make(map[string]*dataset.Record, ds.Len())
	for _, rec := range ds.Records {
		key := ""
		for i, f := range keyFields {
			if i > 0 {
				key += "/"
			}
			key += rec.Get(f).String()
		}
		idx[key] = rec
	}
	return idx
}
