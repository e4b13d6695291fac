package cmp

// SliceEq tells whether a and b have the same elements in the same order.
func SliceEq[T comparable](a, b []T) bool {
	return SliceEqWith(a, b, func(x, y T) bool { return x == y })
}

// SliceEqWith is SliceEq with a caller-supplied equality.
func SliceEqWith[T any, U any](a []T, b []U, eq func(T, U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !eq(a[i], b[i]) {
			return false
		}
	}
	return true
}

// SliceContentEq tells whether a and b have the same elements,
// ignoring order but not multiplicity.
func SliceContentEq[T comparable](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	counts := map[T]int{}
	for _, v := range a {
		counts[v] += 1
	}
	for _, v := range b {
		counts[v] -= 1
		if counts[v] < 0 {
			return false
		}
	}
	return true
}

// SliceContentEqWith is SliceContentEq with a caller-supplied equality.
//
// It costs O(len(a) * len(b)).
func SliceContentEqWith[T any, U any](a []T, b []U, eq func(T, U) bool) bool {
	if len(a) != len(b) {
		return false
	}
	used := make([]bool, len(b))
A:
	for _, va := range a {
		for i, vb := range b {
			if used[i] || !eq(va, vb) {
				continue
			}
			used[i] = true
			continue A
		}
		return false
	}
	return true
}

// SliceContains tells whether super contains all elements of sub,
// counting multiplicity.
func SliceContains[T comparable](super, sub []T) bool {
	counts := map[T]int{}
	for _, v := range super {
		counts[v] += 1
	}
	for _, v := range sub {
		counts[v] -= 1
		if counts[v] < 0 {
			return false
		}
	}
	return true
}
