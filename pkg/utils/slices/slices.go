package slices

import "sort"

// Map applies mapper to each element and collects the results.
func Map[T any, R any](sli []T, mapper func(v T) R) []R {
	mapped := make([]R, len(sli))
	for i, v := range sli {
		mapped[i] = mapper(v)
	}
	return mapped
}

// MapUntilError applies mapper to each element, stopping at the first error.
func MapUntilError[T any, R any](sli []T, mapper func(v T) (R, error)) ([]R, error) {
	mapped := make([]R, 0, len(sli))
	for _, v := range sli {
		m, err := mapper(v)
		if err != nil {
			return nil, err
		}
		mapped = append(mapped, m)
	}
	return mapped, nil
}

// ToMap converts a slice to a map keyed by getkey.
//
// When keys collide, the later element wins.
func ToMap[T any, K comparable](sli []T, getkey func(v T) K) map[K]T {
	m := map[K]T{}
	for _, v := range sli {
		m[getkey(v)] = v
	}
	return m
}

// KeysOf lists the keys of m. Order is not defined.
func KeysOf[T any, K comparable](m map[K]T) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

// ValuesOf lists the values of m. Order is not defined.
func ValuesOf[T any, K comparable](m map[K]T) []T {
	values := make([]T, 0, len(m))
	for _, v := range m {
		values = append(values, v)
	}
	return values
}

// Filter returns elements satisfying predicator, keeping their order.
func Filter[T any](sli []T, predicator func(T) bool) []T {
	filtered := []T{}
	for _, v := range sli {
		if predicator(v) {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// First finds the first element satisfying predicator.
func First[T any](sli []T, predicator func(T) bool) (T, bool) {
	for _, v := range sli {
		if predicator(v) {
			return v, true
		}
	}
	return *new(T), false
}

// Contains tells whether sli has item.
func Contains[T comparable](sli []T, item T) bool {
	for _, v := range sli {
		if v == item {
			return true
		}
	}
	return false
}

// Deduped returns a copy of sli with later duplicates dropped.
func Deduped[T comparable](sli []T) []T {
	seen := map[T]struct{}{}
	deduped := make([]T, 0, len(sli))
	for _, v := range sli {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		deduped = append(deduped, v)
	}
	return deduped
}

// Sorted returns a sorted copy of sli. sli itself is kept untouched.
func Sorted[T any](sli []T, less func(a, b T) bool) []T {
	sorted := make([]T, len(sli))
	copy(sorted, sli)
	sort.SliceStable(sorted, func(i, j int) bool { return less(sorted[i], sorted[j]) })
	return sorted
}

// Concat joins slices into one.
func Concat[T any](sli ...[]T) []T {
	total := 0
	for _, s := range sli {
		total += len(s)
	}
	joined := make([]T, 0, total)
	for _, s := range sli {
		joined = append(joined, s...)
	}
	return joined
}
