// Package generics implements small generic helpers missing from the
// stdlib.
package generics

import (
	"cmp"
	"maps"
	"slices"
)

// SortedKeys returns the keys of the map, sorted. Convenient, not fast.
func SortedKeys[M interface{ ~map[K]V }, K cmp.Ordered, V any](m M) []K {
	keys := slices.Collect(maps.Keys(m))
	slices.Sort(keys)
	return keys
}

// SliceMap executes fn sequentially for every element of in and returns the
// mapped slice.
func SliceMap[In, Out any](in []In, fn func(e In) Out) []Out {
	out := make([]Out, len(in))
	for ii, e := range in {
		out[ii] = fn(e)
	}
	return out
}
