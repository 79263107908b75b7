package reconcile

import (
	"slices"

	"github.com/reconlab/tabdiff/pkg/dataset"
)

// partition holds the disjoint join-key groups and the per-side record
// indexes. The three key slices are sorted lexicographically and together
// cover the union of both sides' key sets exactly once.
type partition struct {
	both      []JoinKey
	leftOnly  []JoinKey
	rightOnly []JoinKey

	left  map[string]*dataset.Record
	right map[string]*dataset.Record

	dupLeft  int
	dupRight int
}

// indexByKey builds a JoinKey index over a dataset. When multiple records
// share a key the first one in input order wins; the number of discarded
// records is returned so the summary can surface the data-quality gap.
func indexByKey(ds *dataset.Dataset, fields []string) (map[string]*dataset.Record, []JoinKey, int) {
	index := make(map[string]*dataset.Record, ds.Len())
	keys := make([]JoinKey, 0, ds.Len())
	duplicates := 0

	for _, rec := range ds.Records {
		key := makeJoinKey(rec, fields)
		id := key.id()
		if _, exists := index[id]; exists {
			duplicates++
			continue
		}
		index[id] = rec
		keys = append(keys, key)
	}

	return index, keys, duplicates
}

// newPartition joins the two datasets into Both / LeftOnly / RightOnly groups.
func newPartition(left, right *dataset.Dataset, keys KeySpec) *partition {
	leftIndex, leftKeys, dupLeft := indexByKey(left, keys.Left)
	rightIndex, rightKeys, dupRight := indexByKey(right, keys.Right)

	p := &partition{
		left:     leftIndex,
		right:    rightIndex,
		dupLeft:  dupLeft,
		dupRight: dupRight,
	}

	for _, k := range leftKeys {
		if _, ok := rightIndex[k.id()]; ok {
			p.both = append(p.both, k)
		} else {
			p.leftOnly = append(p.leftOnly, k)
		}
	}
	for _, k := range rightKeys {
		if _, ok := leftIndex[k.id()]; !ok {
			p.rightOnly = append(p.rightOnly, k)
		}
	}

	slices.SortFunc(p.both, compareJoinKeys)
	slices.SortFunc(p.leftOnly, compareJoinKeys)
	slices.SortFunc(p.rightOnly, compareJoinKeys)

	return p
}
