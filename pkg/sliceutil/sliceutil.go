// Package sliceutil provides small generic helpers for slices and maps.
package sliceutil

import (
	"sort"
)

// Contains reports whether a string slice contains a specific string.
func Contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// Map transforms each element in a slice using the provided function.
// The input slice is not modified.
func Map[T, U any](slice []T, transform func(T) U) []U {
	result := make([]U, len(slice))
	for i, item := range slice {
		result[i] = transform(item)
	}
	return result
}

// Deduplicate returns a new slice with duplicate elements removed.
// The order of first occurrence is preserved.
func Deduplicate[T comparable](slice []T) []T {
	seen := make(map[T]bool, len(slice))
	result := make([]T, 0, len(slice))
	for _, item := range slice {
		if !seen[item] {
			seen[item] = true
			result = append(result, item)
		}
	}
	return result
}

// SortedKeys returns the keys of a string-keyed map in sorted order.
// Used wherever map contents feed deterministic output such as tables.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
