// Package overflow provides overflow-checked integer arithmetic.
//
// Every function returns the mathematical result and an ok flag that is
// false when the result does not fit the target integer width. Callers are
// expected to surface the failure; nothing here saturates or wraps silently.
package overflow

import (
	"unsafe"

	"golang.org/x/exp/constraints"
)

// Add returns a+b, reporting overflow.
func Add[T constraints.Signed](a, b T) (T, bool) {
	result := a + b
	if (b > 0 && result < a) || (b < 0 && result > a) {
		return 0, false
	}
	return result, true
}

// Sub returns a-b, reporting overflow.
func Sub[T constraints.Signed](a, b T) (T, bool) {
	result := a - b
	if (b < 0 && result < a) || (b > 0 && result > a) {
		return 0, false
	}
	return result, true
}

// Mul returns a*b, reporting overflow.
func Mul[T constraints.Signed](a, b T) (T, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	result := a * b
	if result/b != a {
		return 0, false
	}
	// minimum value negated overflows back onto itself
	if (a == -1 && result == minOf[T]()) || (b == -1 && result == minOf[T]()) {
		return 0, false
	}
	return result, true
}

// Div returns a/b, reporting division by zero and the lone overflowing
// case of dividing the minimum value by -1.
func Div[T constraints.Signed](a, b T) (T, bool) {
	if b == 0 {
		return 0, false
	}
	if a == minOf[T]() && b == -1 {
		return 0, false
	}
	return a / b, true
}

// Mod returns a%b, reporting division by zero.
func Mod[T constraints.Signed](a, b T) (T, bool) {
	if b == 0 {
		return 0, false
	}
	if a == minOf[T]() && b == -1 {
		return 0, true
	}
	return a % b, true
}

// Neg returns -a, reporting the overflow at the minimum value.
func Neg[T constraints.Signed](a T) (T, bool) {
	if a == minOf[T]() {
		return 0, false
	}
	return -a, true
}

func minOf[T constraints.Signed]() T {
	var zero T
	bits := 8 * unsafe.Sizeof(zero)
	return T(-1) << (bits - 1)
}
