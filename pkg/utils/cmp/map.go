package cmp

// MapEq tells whether a and b have the same key-value pairs.
func MapEq[K comparable, V comparable](a, b map[K]V) bool {
	return MapEqWith(a, b, func(x, y V) bool { return x == y })
}

// MapEqWith is MapEq with a caller-supplied value equality.
func MapEqWith[K comparable, V any, W any](a map[K]V, b map[K]W, eq func(V, W) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !eq(va, vb) {
			return false
		}
	}
	return true
}

// MapLeq tells whether a is a subset of b (a ⊆ b).
func MapLeq[K comparable, V comparable](a, b map[K]V) bool {
	return MapLeqWith(a, b, func(x, y V) bool { return x == y })
}

// MapLeqWith is MapLeq with a caller-supplied value equality.
func MapLeqWith[K comparable, V any, W any](a map[K]V, b map[K]W, eq func(V, W) bool) bool {
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !eq(va, vb) {
			return false
		}
	}
	return true
}

// MapGeq tells whether a is a superset of b (b ⊆ a).
func MapGeq[K comparable, V comparable](a, b map[K]V) bool {
	return MapGeqWith(a, b, func(x, y V) bool { return x == y })
}

// MapGeqWith is MapGeq with a caller-supplied value equality.
func MapGeqWith[K comparable, V any, W any](a map[K]V, b map[K]W, eq func(V, W) bool) bool {
	for k, vb := range b {
		va, ok := a[k]
		if !ok || !eq(va, vb) {
			return false
		}
	}
	return true
}

// MapMatch tells whether a and predicators have the same key set and
// predicators[k](a[k]) holds for every key.
func MapMatch[K comparable, V any](a map[K]V, predicators map[K]func(v V) bool) bool {
	for k, v := range a {
		p, ok := predicators[k]
		if !ok {
			return false
		}
		if !p(v) {
			return false
		}
	}
	for k := range predicators {
		if _, ok := a[k]; !ok {
			return false
		}
	}
	return true
}
