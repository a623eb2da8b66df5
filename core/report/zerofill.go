package report

// Number is the set of values the aggregate tables accumulate.
type Number interface {
	~int | ~int64 | ~float64
}

// Entry is one key of a zero-filled table.
type Entry[K comparable, V Number] struct {
	Key   K
	Value V
}

// ZeroFill returns one entry per key, in key order, taking values from sparse
// and defaulting absent keys to zero.
func ZeroFill[K comparable, V Number](keys []K, sparse map[K]V) []Entry[K, V] {
	out := make([]Entry[K, V], len(keys))
	for i, k := range keys {
		out[i] = Entry[K, V]{Key: k, Value: sparse[k]}
	}
	return out
}
