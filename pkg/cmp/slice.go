// Package cmp has equivalence helpers for tests.
package cmp

// SliceEq checks a and b have same elements in same order.
func SliceEq[T comparable](a []T, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for nth, va := range a {
		if va != b[nth] {
			return false
		}
	}
	return true
}

// SliceEqWith is SliceEq with a custom equivalence.
func SliceEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}

	for nth := range a {
		if !pred(a[nth], b[nth]) {
			return false
		}
	}

	return true
}

// SliceContentEq checks a and b have same elements, ignoring order.
//
// Each element of b is matched with at most one element of a.
func SliceContentEq[T comparable](a []T, b []T) bool {
	return SliceContentEqWith(a, b, func(x, y T) bool { return x == y })
}

// SliceContentEqWith is SliceContentEq with a custom equivalence.
func SliceContentEqWith[T any, U any](a []T, b []U, pred func(a T, b U) bool) bool {
	if len(a) != len(b) {
		return false
	}

	used := make([]bool, len(a))
B:
	for _, vb := range b {
		for nth, va := range a {
			if used[nth] || !pred(va, vb) {
				continue
			}
			used[nth] = true
			continue B
		}
		return false
	}
	return true
}
