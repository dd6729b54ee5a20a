package report

// GroupBySum merges a list into one record per distinct key, preserving the
// order of first appearance. The first-seen record supplies every field; merge
// is called to fold each later duplicate into it (typically adding a summed
// column).
func GroupBySum[T any, K comparable](items []T, key func(T) K, merge func(dst *T, src T)) []T {
	result := make([]T, 0, len(items))
	index := make(map[K]int, len(items))

	for _, item := range items {
		k := key(item)
		if i, ok := index[k]; ok {
			merge(&result[i], item)
			continue
		}
		index[k] = len(result)
		result = append(result, item)
	}

	return result
}
